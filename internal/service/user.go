package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/event"
	"github.com/mvaleed/catalog/internal/result"
	"github.com/mvaleed/catalog/internal/storage"
)

// UserService handles account operations.
type UserService struct {
	uow       storage.UnitOfWorkFactory
	hasher    PasswordHasher
	publisher event.Publisher
}

func NewUserService(
	uow storage.UnitOfWorkFactory,
	hasher PasswordHasher,
	publisher event.Publisher,
) *UserService {
	return &UserService{
		uow:       uow,
		hasher:    hasher,
		publisher: publisher,
	}
}

// CreateUser registers a new account. The email uniqueness check before
// construction is advisory; a duplicate that slips past it is rejected by
// the store and reported as Email.AlreadyExists.
func (s *UserService) CreateUser(ctx context.Context, cmd CreateUserCommand) (result.Result[*domain.User], error) {
	uow := s.uow.New()
	users := uow.Users()

	built := domain.NewUser(ctx, cmd.params(), domain.EmailCheckerFunc(users.EmailExists), s.hasher)
	user, ok := built.Get()
	if !ok {
		return built, nil
	}

	users.Add(user)
	if _, err := uow.SaveChanges(ctx); err != nil {
		return saveFailure[*domain.User]("user", err)
	}

	_ = s.publisher.Publish(ctx, domain.UserCreatedEvent(user))

	return result.Success(user), nil
}

// GetUser loads an account by ID.
func (s *UserService) GetUser(ctx context.Context, q GetUserQuery) (result.Result[*domain.User], error) {
	id := domain.ParseID(domain.FieldID, q.ID)
	if !id.IsOK() {
		return result.Failed[*domain.User](id), nil
	}

	user, err := s.uow.New().Users().GetByID(ctx, id.Value())
	if errors.Is(err, domain.ErrNotFound) {
		return result.NotFound[*domain.User]("user not found"), nil
	}
	if err != nil {
		return result.Error[*domain.User]("could not load user"), fmt.Errorf("get user: %w", err)
	}

	return result.Success(user), nil
}
