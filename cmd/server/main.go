package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-playground/validator/v10"
	"google.golang.org/grpc"

	"github.com/mvaleed/catalog/internal/auth"
	"github.com/mvaleed/catalog/internal/config"
	"github.com/mvaleed/catalog/internal/event"
	"github.com/mvaleed/catalog/internal/logging"
	"github.com/mvaleed/catalog/internal/service"
	"github.com/mvaleed/catalog/internal/storage"
	"github.com/mvaleed/catalog/internal/storage/memory"
	"github.com/mvaleed/catalog/internal/storage/postgres"
	grpcTransport "github.com/mvaleed/catalog/internal/transport/grpc"
	httpTransport "github.com/mvaleed/catalog/internal/transport/http"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config: %v\n", err)
		os.Exit(1)
	}

	// Setup structured logging
	logger := logging.New(os.Stdout, cfg.SlogLevel())
	slog.SetDefault(logger)

	// Run the application
	if err := run(cfg, logger); err != nil {
		logger.Error("application error", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	var uow storage.UnitOfWorkFactory
	if cfg.UsesMemoryStore() {
		logger.Warn("DATABASE_URL not set, using in-memory store")
		uow = memory.New()
	} else {
		logger.Info("connecting to database")
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("connect to database: %w", err)
		}
		defer db.Close()
		logger.Info("database connected")
		uow = db
	}

	publisher := event.NewLoggingPublisher(logger)
	defer publisher.Close()

	hasher := auth.NewBcryptHasher(cfg.BcryptCost)
	handlers := service.NewHandlers(
		service.NewUserService(uow, hasher, publisher),
		service.NewGameService(uow, publisher),
		validator.New(validator.WithRequiredStructEnabled()),
		logger,
	)

	errChan := make(chan error, 2)

	httpServer := httpTransport.NewServer(cfg, handlers, logger)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.HTTPPort)
		logger.Info("starting HTTP server", "addr", addr)
		if err := httpServer.ListenAndServe(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errChan <- fmt.Errorf("HTTP server: %w", err)
		}
	}()

	// Start gRPC server
	grpcServer := grpcTransport.NewServer(handlers, logger)
	go func() {
		addr := fmt.Sprintf(":%d", cfg.GRPCPort)
		listener, err := net.Listen("tcp", addr)
		if err != nil {
			errChan <- fmt.Errorf("gRPC listen: %w", err)
			return
		}
		logger.Info("starting gRPC server", "addr", addr)
		if err := grpcServer.Serve(listener); err != nil && !errors.Is(err, grpc.ErrServerStopped) {
			errChan <- fmt.Errorf("gRPC server: %w", err)
		}
	}()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigChan:
		logger.Info("received shutdown signal", "signal", sig)
	case err := <-errChan:
		logger.Error("server error", "error", err)
		return err
	}

	logger.Info("initiating graceful shutdown")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	grpcServer.GracefulStop()

	cancel()

	logger.Info("shutdown complete")
	return nil
}
