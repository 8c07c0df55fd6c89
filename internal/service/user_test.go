package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/mvaleed/catalog/internal/command"
	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/result"
	"github.com/mvaleed/catalog/internal/storage"
	"github.com/mvaleed/catalog/internal/storage/memory"
)

func TestCreateUser_Succeeds(t *testing.T) {
	f := newFixture()

	res, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())

	require.NoError(t, err)
	require.True(t, res.IsOK(), res.String())
	assert.Equal(t, "john@doe.com", res.Value().Email().String())
	f.publisher.AssertCalled(t, "Publish", mock.Anything, eventOfType(domain.EventUserCreated))

	exists, err := f.store.New().Users().EmailExists(context.Background(), "john@doe.com")
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestCreateUser_ReportsEveryViolation(t *testing.T) {
	f := newFixture()
	cmd := johnDoe()
	cmd.FirstName = ""
	cmd.Email = "nope"
	cmd.Password = "short"

	res, err := f.handlers.CreateUser.Execute(context.Background(), cmd)

	require.NoError(t, err)
	assert.Equal(t, result.StatusInvalid, res.Status())
	assert.Equal(t, []string{
		"FirstName.Required",
		"Email.InvalidFormat",
		"Password.MinimumLength",
		"Password.Uppercase",
		"Password.Digit",
		"Password.SpecialCharacter",
	}, res.ErrorCodes())
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateUser_EmailTakenBeforeConstruction(t *testing.T) {
	f := newFixture()
	_, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())
	require.NoError(t, err)

	res, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())

	require.NoError(t, err)
	assert.Equal(t, []string{"Email.AlreadyExists"}, res.ErrorCodes())
}

func TestCreateUser_DuplicateKeyAtCommitBecomesInvalid(t *testing.T) {
	store := memory.New()
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	blind := storage.UnitOfWorkFactoryFunc(func() storage.UnitOfWork { return blindUnitOfWork{store.New()} })
	f := newFixtureWith(store, blind, pub)
	_, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())
	require.NoError(t, err)

	res, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())

	require.NoError(t, err)
	require.Len(t, res.ValidationErrors(), 1)
	assert.Equal(t, "Email", res.ValidationErrors()[0].Identifier)
	assert.Equal(t, "Email.AlreadyExists", res.ValidationErrors()[0].ErrorCode)
	pub.AssertNumberOfCalls(t, "Publish", 1)
}

func TestCreateUser_ConcurrentSameEmailOneWins(t *testing.T) {
	store := memory.New()
	pub := &mockPublisher{}
	pub.On("Publish", mock.Anything, mock.Anything).Return(nil).Maybe()
	blind := storage.UnitOfWorkFactoryFunc(func() storage.UnitOfWork { return blindUnitOfWork{store.New()} })
	f := newFixtureWith(store, blind, pub)

	const n = 6
	results := make([]result.Result[*domain.User], n)
	errs := make([]error, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		i := i
		wg.Add(1)
		go func() {
			defer wg.Done()
			results[i], errs[i] = f.handlers.CreateUser.Execute(context.Background(), johnDoe())
		}()
	}
	wg.Wait()

	ok := 0
	for i := 0; i < n; i++ {
		require.NoError(t, errs[i])
		if results[i].IsOK() {
			ok++
			continue
		}
		assert.Equal(t, []string{"Email.AlreadyExists"}, results[i].ErrorCodes())
	}
	assert.Equal(t, 1, ok)
}

func TestCreateUser_UnexpectedSaveErrorIsReturned(t *testing.T) {
	store := memory.New()
	pub := &mockPublisher{}
	boom := errors.New("disk full")
	failing := storage.UnitOfWorkFactoryFunc(func() storage.UnitOfWork { return failingSave{store.New(), boom} })
	f := newFixtureWith(store, failing, pub)

	res, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, result.StatusError, res.Status())
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestCreateUser_CancelledContext(t *testing.T) {
	f := newFixture()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	res, err := f.handlers.CreateUser.Execute(ctx, johnDoe())

	require.NoError(t, err)
	assert.Equal(t, result.StatusError, res.Status())
	exists, err := f.store.New().Users().EmailExists(context.Background(), "john@doe.com")
	require.NoError(t, err)
	assert.False(t, exists)
}

func TestCreateUser_TransportValidationSkipsHandler(t *testing.T) {
	f := newFixture()
	cmd := johnDoe()
	cmd.Role = "a-role-name-that-is-far-too-long-to-be-real"

	_, err := f.handlers.CreateUser.Execute(context.Background(), cmd)

	var vf *command.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "Role.MaximumLength", vf.Errors[0].ErrorCode)
	f.publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything)
}

func TestGetUser(t *testing.T) {
	f := newFixture()
	created, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())
	require.NoError(t, err)

	res, err := f.handlers.GetUser.Execute(context.Background(), GetUserQuery{ID: created.Value().ID().String()})
	require.NoError(t, err)
	require.True(t, res.IsOK())
	assert.Equal(t, "John Doe", res.Value().FullName())

	res, err = f.handlers.GetUser.Execute(context.Background(), GetUserQuery{ID: uuid.NewString()})
	require.NoError(t, err)
	assert.Equal(t, result.StatusNotFound, res.Status())

	_, err = f.handlers.GetUser.Execute(context.Background(), GetUserQuery{ID: "nope"})
	var vf *command.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Equal(t, "ID.InvalidFormat", vf.Errors[0].ErrorCode)
}

func TestAuthenticateUser(t *testing.T) {
	f := newFixture()
	_, err := f.handlers.CreateUser.Execute(context.Background(), johnDoe())
	require.NoError(t, err)

	res, err := f.handlers.AuthenticateUser.Execute(context.Background(), AuthenticateUserQuery{Email: "John@Doe.com", Password: "Valid@1234"})
	require.NoError(t, err)
	require.True(t, res.IsOK())
	assert.Equal(t, "john@doe.com", res.Value().Email().String())

	wrong, err := f.handlers.AuthenticateUser.Execute(context.Background(), AuthenticateUserQuery{Email: "john@doe.com", Password: "Wrong@1234"})
	require.NoError(t, err)
	unknown, err := f.handlers.AuthenticateUser.Execute(context.Background(), AuthenticateUserQuery{Email: "who@doe.com", Password: "Valid@1234"})
	require.NoError(t, err)

	assert.Equal(t, result.StatusUnauthorized, wrong.Status())
	assert.Equal(t, result.StatusUnauthorized, unknown.Status())
	assert.Equal(t, wrong.Errors(), unknown.Errors())
}

func TestAuthenticateUser_RequiresCredentials(t *testing.T) {
	f := newFixture()

	_, err := f.handlers.AuthenticateUser.Execute(context.Background(), AuthenticateUserQuery{})

	var vf *command.ValidationFailure
	require.ErrorAs(t, err, &vf)
	assert.Len(t, vf.Errors, 2)
}
