package service

import (
	"context"
	"io"
	"log/slog"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/mock"

	"github.com/mvaleed/catalog/internal/auth"
	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/storage"
	"github.com/mvaleed/catalog/internal/storage/memory"
)

type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Compare(p, hash string) error {
	if hash != "hashed:"+p {
		return auth.ErrInvalidPassword
	}
	return nil
}

func (plainHasher) CompareDummy(string) error { return auth.ErrInvalidPassword }

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, e domain.Event) error {
	return m.Called(ctx, e).Error(0)
}

func (m *mockPublisher) PublishBatch(ctx context.Context, events []domain.Event) error {
	return m.Called(ctx, events).Error(0)
}

func (m *mockPublisher) Close() error { return m.Called().Error(0) }

func eventOfType(eventType string) any {
	return mock.MatchedBy(func(e domain.Event) bool { return e.Type == eventType })
}

// failingSave wraps a unit of work so SaveChanges returns err.
type failingSave struct {
	storage.UnitOfWork
	err error
}

func (f failingSave) SaveChanges(context.Context) (int, error) { return 0, f.err }

// blindUsers reports every email as available, so only the store's unique
// index can catch a duplicate.
type blindUsers struct {
	storage.UserRepository
}

func (blindUsers) EmailExists(context.Context, string) (bool, error) { return false, nil }

type blindUnitOfWork struct {
	storage.UnitOfWork
}

func (b blindUnitOfWork) Users() storage.UserRepository {
	return blindUsers{b.UnitOfWork.Users()}
}

type fixture struct {
	store     *memory.Store
	publisher *mockPublisher
	users     *UserService
	games     *GameService
	handlers  *Handlers
}

func newFixture() *fixture {
	store := memory.New()
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	return newFixtureWith(store, store, pub)
}

func newFixtureWith(store *memory.Store, uow storage.UnitOfWorkFactory, pub *mockPublisher) *fixture {
	users := NewUserService(uow, plainHasher{}, pub)
	games := NewGameService(uow, pub)
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	return &fixture{
		store:     store,
		publisher: pub,
		users:     users,
		games:     games,
		handlers:  NewHandlers(users, games, validator.New(validator.WithRequiredStructEnabled()), logger),
	}
}

func johnDoe() CreateUserCommand {
	return CreateUserCommand{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@doe.com",
		Password:  "Valid@1234",
		Role:      "User",
	}
}

func celeste() CreateGameCommand {
	return CreateGameCommand{
		Name:         "Celeste",
		Description:  "Climb the mountain.",
		Developer:    "Maddy Makes Games",
		Publisher:    "Maddy Makes Games",
		Price:        19.99,
		DiskSize:     1.2,
		AgeRating:    "E10+",
		ReleaseDate:  "2018-01-25",
		OfficialLink: "https://www.celestegame.com",
	}
}

func adminCommand(email string) CreateUserCommand {
	cmd := johnDoe()
	cmd.FirstName = "Ada"
	cmd.LastName = "Lovelace"
	cmd.Email = email
	cmd.Role = "Admin"
	return cmd
}
