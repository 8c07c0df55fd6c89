package grpc

import (
	"context"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/service"
)

const serviceName = "catalog.v1.CatalogService"

// catalogServer is the handler type checked by RegisterService.
type catalogServer interface {
	CreateUser(context.Context, *service.CreateUserCommand) (*UserReply, error)
	AuthenticateUser(context.Context, *service.AuthenticateUserQuery) (*UserReply, error)
	GetUser(context.Context, *service.GetUserQuery) (*UserReply, error)
	CreateGame(context.Context, *service.CreateGameCommand) (*GameReply, error)
	GetGame(context.Context, *service.GetGameQuery) (*GameReply, error)
	ChangeGamePrice(context.Context, *ChangeGamePriceRequest) (*GameReply, error)
	DeleteGame(context.Context, *DeleteGameRequest) (*DeleteGameReply, error)
}

var catalogServiceDesc = grpc.ServiceDesc{
	ServiceName: serviceName,
	HandlerType: (*catalogServer)(nil),
	Methods: []grpc.MethodDesc{
		unary("CreateUser", (*Server).CreateUser),
		unary("AuthenticateUser", (*Server).AuthenticateUser),
		unary("GetUser", (*Server).GetUser),
		unary("CreateGame", (*Server).CreateGame),
		unary("GetGame", (*Server).GetGame),
		unary("ChangeGamePrice", (*Server).ChangeGamePrice),
		unary("DeleteGame", (*Server).DeleteGame),
	},
	Streams:  []grpc.StreamDesc{},
	Metadata: "catalog/v1/catalog.json",
}

// unary adapts a typed Server method to a grpc.MethodDesc.
func unary[Req, Resp any](name string, call func(*Server, context.Context, *Req) (*Resp, error)) grpc.MethodDesc {
	return grpc.MethodDesc{
		MethodName: name,
		Handler: func(srv any, ctx context.Context, dec func(any) error, interceptor grpc.UnaryServerInterceptor) (any, error) {
			in := new(Req)
			if err := dec(in); err != nil {
				return nil, err
			}
			s := srv.(*Server)
			if interceptor == nil {
				return call(s, ctx, in)
			}
			info := &grpc.UnaryServerInfo{
				Server:     srv,
				FullMethod: "/" + serviceName + "/" + name,
			}
			return interceptor(ctx, in, info, func(ctx context.Context, req any) (any, error) {
				return call(s, ctx, req.(*Req))
			})
		},
	}
}

type UserReply struct {
	ID        string `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Email     string `json:"email"`
	Role      string `json:"role"`
	CreatedAt string `json:"createdAt"`
}

func toUserReply(u *domain.User) UserReply {
	return UserReply{
		ID:        u.ID().String(),
		FirstName: u.FirstName().String(),
		LastName:  u.LastName().String(),
		Email:     u.Email().String(),
		Role:      u.Role().String(),
		CreatedAt: u.CreatedAt().Format(time.RFC3339),
	}
}

type GameReply struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Description  string  `json:"description,omitempty"`
	Developer    string  `json:"developer"`
	Publisher    string  `json:"publisher"`
	Price        float64 `json:"price"`
	DiskSize     float64 `json:"diskSize"`
	AgeRating    string  `json:"ageRating"`
	ReleaseDate  string  `json:"releaseDate"`
	OfficialLink string  `json:"officialLink,omitempty"`
	CreatedAt    string  `json:"createdAt"`
}

func toGameReply(g *domain.Game) GameReply {
	return GameReply{
		ID:           g.ID().String(),
		Name:         g.Name().String(),
		Description:  g.Description().String(),
		Developer:    g.Developer().String(),
		Publisher:    g.Publisher().String(),
		Price:        g.Price().Amount(),
		DiskSize:     g.DiskSize().Gigabytes(),
		AgeRating:    g.AgeRating().String(),
		ReleaseDate:  g.ReleaseDate().Format(time.DateOnly),
		OfficialLink: g.OfficialLink(),
		CreatedAt:    g.CreatedAt().Format(time.RFC3339),
	}
}

// ChangeGamePriceRequest is sent with the actor's ID in the x-user-id
// metadata key.
type ChangeGamePriceRequest struct {
	GameID string  `json:"gameId"`
	Price  float64 `json:"price"`
}

// DeleteGameRequest is sent with the actor's ID in the x-user-id metadata
// key.
type DeleteGameRequest struct {
	GameID string `json:"gameId"`
}

type DeleteGameReply struct {
	ID string `json:"id"`
}

func (s *Server) CreateUser(ctx context.Context, in *service.CreateUserCommand) (*UserReply, error) {
	res, err := s.handlers.CreateUser.Execute(ctx, *in)
	return reply(ctx, s, res, err, toUserReply)
}

func (s *Server) AuthenticateUser(ctx context.Context, in *service.AuthenticateUserQuery) (*UserReply, error) {
	res, err := s.handlers.AuthenticateUser.Execute(ctx, *in)
	return reply(ctx, s, res, err, toUserReply)
}

func (s *Server) GetUser(ctx context.Context, in *service.GetUserQuery) (*UserReply, error) {
	res, err := s.handlers.GetUser.Execute(ctx, *in)
	return reply(ctx, s, res, err, toUserReply)
}

func (s *Server) CreateGame(ctx context.Context, in *service.CreateGameCommand) (*GameReply, error) {
	res, err := s.handlers.CreateGame.Execute(ctx, *in)
	return reply(ctx, s, res, err, toGameReply)
}

func (s *Server) GetGame(ctx context.Context, in *service.GetGameQuery) (*GameReply, error) {
	res, err := s.handlers.GetGame.Execute(ctx, *in)
	return reply(ctx, s, res, err, toGameReply)
}

func (s *Server) ChangeGamePrice(ctx context.Context, in *ChangeGamePriceRequest) (*GameReply, error) {
	res, err := s.handlers.ChangeGamePrice.Execute(ctx, service.ChangeGamePriceCommand{
		ActorID: actorFromContext(ctx),
		GameID:  in.GameID,
		Price:   in.Price,
	})
	return reply(ctx, s, res, err, toGameReply)
}

func (s *Server) DeleteGame(ctx context.Context, in *DeleteGameRequest) (*DeleteGameReply, error) {
	res, err := s.handlers.DeleteGame.Execute(ctx, service.DeleteGameCommand{
		ActorID: actorFromContext(ctx),
		GameID:  in.GameID,
	})
	return reply(ctx, s, res, err, func(id uuid.UUID) DeleteGameReply {
		return DeleteGameReply{ID: id.String()}
	})
}
