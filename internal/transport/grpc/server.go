// Package grpc provides the gRPC transport layer for the catalog service.
//
// The catalog service is registered from a hand-written service descriptor
// and exchanges JSON messages; clients dial with
//
//	grpc.WithDefaultCallOptions(grpc.CallContentSubtype("json"))
//
// The standard gRPC health service is registered alongside it.
package grpc

import (
	"context"
	"log/slog"
	"net"

	"google.golang.org/grpc"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/health"
	healthpb "google.golang.org/grpc/health/grpc_health_v1"
	"google.golang.org/grpc/metadata"
	"google.golang.org/grpc/status"

	"github.com/mvaleed/catalog/internal/service"
)

// actorKey is the metadata key carrying the acting user's ID.
const actorKey = "x-user-id"

// Server wraps the gRPC server with dependencies
type Server struct {
	grpcServer *grpc.Server
	health     *health.Server
	handlers   *service.Handlers
	logger     *slog.Logger
}

// NewServer creates a new gRPC server with the catalog and health services
// registered.
func NewServer(handlers *service.Handlers, logger *slog.Logger) *Server {
	s := &Server{
		handlers: handlers,
		health:   health.NewServer(),
		logger:   logger,
	}

	grpcServer := grpc.NewServer(
		grpc.ChainUnaryInterceptor(
			s.loggingInterceptor,
			s.recoveryInterceptor,
		),
	)

	grpcServer.RegisterService(&catalogServiceDesc, s)
	healthpb.RegisterHealthServer(grpcServer, s.health)
	s.health.SetServingStatus("", healthpb.HealthCheckResponse_SERVING)
	s.health.SetServingStatus(serviceName, healthpb.HealthCheckResponse_SERVING)

	s.grpcServer = grpcServer
	return s
}

// Serve starts the gRPC server on the given listener
func (s *Server) Serve(listener net.Listener) error {
	return s.grpcServer.Serve(listener)
}

// GracefulStop marks the server as not serving and waits for in-flight
// calls to finish.
func (s *Server) GracefulStop() {
	s.health.Shutdown()
	s.grpcServer.GracefulStop()
}

// loggingInterceptor logs all incoming requests
func (s *Server) loggingInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (any, error) {
	s.logger.InfoContext(ctx, "gRPC request",
		"method", info.FullMethod,
	)

	resp, err := handler(ctx, req)
	if err != nil {
		s.logger.WarnContext(ctx, "gRPC request failed",
			"method", info.FullMethod,
			"code", status.Code(err).String(),
		)
	}

	return resp, err
}

// recoveryInterceptor recovers from panics
func (s *Server) recoveryInterceptor(
	ctx context.Context,
	req any,
	info *grpc.UnaryServerInfo,
	handler grpc.UnaryHandler,
) (resp any, err error) {
	defer func() {
		if r := recover(); r != nil {
			s.logger.ErrorContext(ctx, "gRPC panic recovered",
				"method", info.FullMethod,
				"panic", r,
			)
			err = status.Error(codes.Internal, "internal server error")
		}
	}()

	return handler(ctx, req)
}

// actorFromContext returns the acting user's ID from incoming metadata.
func actorFromContext(ctx context.Context) string {
	md, ok := metadata.FromIncomingContext(ctx)
	if !ok {
		return ""
	}
	if values := md.Get(actorKey); len(values) > 0 {
		return values[0]
	}
	return ""
}
