package service

import (
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/command"
	"github.com/mvaleed/catalog/internal/domain"
)

// Handlers exposes one pipeline per command and query.
type Handlers struct {
	CreateUser       command.Handler[CreateUserCommand, *domain.User]
	AuthenticateUser command.Handler[AuthenticateUserQuery, *domain.User]
	GetUser          command.Handler[GetUserQuery, *domain.User]

	CreateGame      command.Handler[CreateGameCommand, *domain.Game]
	GetGame         command.Handler[GetGameQuery, *domain.Game]
	ChangeGamePrice command.Handler[ChangeGamePriceCommand, *domain.Game]
	DeleteGame      command.Handler[DeleteGameCommand, uuid.UUID]
}

// NewHandlers wraps each service method in a pipeline that validates the
// command's struct tags with v before the method runs.
func NewHandlers(users *UserService, games *GameService, v *validator.Validate, logger *slog.Logger) *Handlers {
	return &Handlers{
		CreateUser: command.NewPipeline[CreateUserCommand, *domain.User]("CreateUser",
			command.HandlerFunc[CreateUserCommand, *domain.User](users.CreateUser), logger,
			command.NewStructValidator[CreateUserCommand](v)),
		AuthenticateUser: command.NewPipeline[AuthenticateUserQuery, *domain.User]("AuthenticateUser",
			command.HandlerFunc[AuthenticateUserQuery, *domain.User](users.AuthenticateUser), logger,
			command.NewStructValidator[AuthenticateUserQuery](v)),
		GetUser: command.NewPipeline[GetUserQuery, *domain.User]("GetUser",
			command.HandlerFunc[GetUserQuery, *domain.User](users.GetUser), logger,
			command.NewStructValidator[GetUserQuery](v)),

		CreateGame: command.NewPipeline[CreateGameCommand, *domain.Game]("CreateGame",
			command.HandlerFunc[CreateGameCommand, *domain.Game](games.CreateGame), logger,
			command.NewStructValidator[CreateGameCommand](v)),
		GetGame: command.NewPipeline[GetGameQuery, *domain.Game]("GetGame",
			command.HandlerFunc[GetGameQuery, *domain.Game](games.GetGame), logger,
			command.NewStructValidator[GetGameQuery](v)),
		ChangeGamePrice: command.NewPipeline[ChangeGamePriceCommand, *domain.Game]("ChangeGamePrice",
			command.HandlerFunc[ChangeGamePriceCommand, *domain.Game](games.ChangeGamePrice), logger,
			command.NewStructValidator[ChangeGamePriceCommand](v)),
		DeleteGame: command.NewPipeline[DeleteGameCommand, uuid.UUID]("DeleteGame",
			command.HandlerFunc[DeleteGameCommand, uuid.UUID](games.DeleteGame), logger,
			command.NewStructValidator[DeleteGameCommand](v)),
	}
}
