package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/event"
	"github.com/mvaleed/catalog/internal/result"
	"github.com/mvaleed/catalog/internal/storage"
)

// GameService handles catalog operations.
type GameService struct {
	uow       storage.UnitOfWorkFactory
	publisher event.Publisher
}

func NewGameService(uow storage.UnitOfWorkFactory, publisher event.Publisher) *GameService {
	return &GameService{
		uow:       uow,
		publisher: publisher,
	}
}

// CreateGame adds a game to the catalog. Name uniqueness is enforced by the
// store and reported as Name.AlreadyExists.
func (s *GameService) CreateGame(ctx context.Context, cmd CreateGameCommand) (result.Result[*domain.Game], error) {
	built := domain.NewGame(cmd.params())
	game, ok := built.Get()
	if !ok {
		return built, nil
	}

	uow := s.uow.New()
	uow.Games().Add(game)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return saveFailure[*domain.Game]("game", err)
	}

	_ = s.publisher.Publish(ctx, domain.GameCreatedEvent(game))

	return result.Success(game), nil
}

// GetGame loads a game by ID.
func (s *GameService) GetGame(ctx context.Context, q GetGameQuery) (result.Result[*domain.Game], error) {
	id := domain.ParseID(domain.FieldID, q.ID)
	if !id.IsOK() {
		return result.Failed[*domain.Game](id), nil
	}

	return s.load(ctx, s.uow.New().Games(), id.Value())
}

// ChangeGamePrice replaces a game's price. Only roles that may manage the
// catalog can do this.
func (s *GameService) ChangeGamePrice(ctx context.Context, cmd ChangeGamePriceCommand) (result.Result[*domain.Game], error) {
	actorID := domain.ParseID(domain.FieldActorID, cmd.ActorID)
	gameID := domain.ParseID(domain.FieldGameID, cmd.GameID)
	price := domain.NewPrice(cmd.Price)
	if failed, ok := result.Merge[*domain.Game](actorID, gameID, price); !ok {
		return failed, nil
	}

	uow := s.uow.New()
	if _, denied, err := authorize(ctx, uow.Users(), actorID.Value(), domain.ActionManageCatalog); !denied.IsOK() {
		return result.Failed[*domain.Game](denied), err
	}

	loaded, err := s.load(ctx, uow.Games(), gameID.Value())
	game, ok := loaded.Get()
	if !ok {
		return loaded, err
	}

	old := game.Price()
	game.ChangePrice(price.Value())
	uow.Games().Update(game)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return saveFailure[*domain.Game]("game", err)
	}

	_ = s.publisher.Publish(ctx, domain.GamePriceChangedEvent(game, old))

	return result.Success(game), nil
}

// DeleteGame removes a game from the catalog and returns its ID.
func (s *GameService) DeleteGame(ctx context.Context, cmd DeleteGameCommand) (result.Result[uuid.UUID], error) {
	actorID := domain.ParseID(domain.FieldActorID, cmd.ActorID)
	gameID := domain.ParseID(domain.FieldGameID, cmd.GameID)
	if failed, ok := result.Merge[uuid.UUID](actorID, gameID); !ok {
		return failed, nil
	}

	uow := s.uow.New()
	actor, denied, err := authorize(ctx, uow.Users(), actorID.Value(), domain.ActionManageCatalog)
	if !denied.IsOK() {
		return result.Failed[uuid.UUID](denied), err
	}

	uow.Games().Remove(gameID.Value())
	if _, err := uow.SaveChanges(ctx); err != nil {
		return saveFailure[uuid.UUID]("game", err)
	}

	_ = s.publisher.Publish(ctx, domain.GameDeletedEvent(gameID.Value(), actor.ID()))

	return result.Success(gameID.Value()), nil
}

func (s *GameService) load(ctx context.Context, games storage.GameRepository, id uuid.UUID) (result.Result[*domain.Game], error) {
	game, err := games.GetByID(ctx, id)
	if errors.Is(err, domain.ErrNotFound) {
		return result.NotFound[*domain.Game]("game not found"), nil
	}
	if err != nil {
		return result.Error[*domain.Game]("could not load game"), fmt.Errorf("get game: %w", err)
	}
	return result.Success(game), nil
}
