package domain

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mvaleed/catalog/internal/result"
)

type plainHasher struct{ err error }

func (h plainHasher) Hash(plain string) (string, error) {
	if h.err != nil {
		return "", h.err
	}
	return "hashed:" + plain, nil
}

func johnDoe() UserParams {
	return UserParams{
		FirstName: "John",
		LastName:  "Doe",
		Email:     "john@doe.com",
		Password:  "Valid@1234",
		Role:      "User",
	}
}

func TestNewUser_Valid(t *testing.T) {
	r := NewUser(context.Background(), johnDoe(), noEmailsTaken(), plainHasher{})

	require.True(t, r.IsOK(), r.String())
	u := r.Value()
	assert.NotEqual(t, uuid.Nil, u.ID())
	assert.Equal(t, "john@doe.com", u.Email().String())
	assert.Equal(t, "John Doe", u.FullName())
	assert.Equal(t, RoleUser, u.Role())
	assert.Equal(t, "hashed:Valid@1234", u.PasswordHash())
}

func TestNewUser_ReportsUnionOfFieldFailures(t *testing.T) {
	p := johnDoe()
	p.FirstName = ""
	p.Email = "nope"
	p.Password = "abc"
	p.Role = "Root"

	r := NewUser(context.Background(), p, noEmailsTaken(), plainHasher{})

	assert.Equal(t, result.StatusInvalid, r.Status())
	assert.Nil(t, r.Value())
	assert.Equal(t, []string{
		"FirstName.Required",
		"Email.InvalidFormat",
		"Password.MinimumLength",
		"Password.Uppercase",
		"Password.Digit",
		"Password.SpecialCharacter",
		"Role.Invalid",
	}, r.ErrorCodes())
}

func TestNewUser_EmailTaken(t *testing.T) {
	taken := EmailCheckerFunc(func(context.Context, string) (bool, error) { return true, nil })

	r := NewUser(context.Background(), johnDoe(), taken, plainHasher{})

	assert.Equal(t, []string{"Email.AlreadyExists"}, r.ErrorCodes())
}

func TestNewUser_CheckerFailureWinsOverInvalid(t *testing.T) {
	broken := EmailCheckerFunc(func(context.Context, string) (bool, error) { return false, errors.New("db down") })
	p := johnDoe()
	p.LastName = ""

	r := NewUser(context.Background(), p, broken, plainHasher{})

	assert.Equal(t, result.StatusError, r.Status())
	assert.Empty(t, r.ValidationErrors())
}

func TestNewUser_PasswordContainsName(t *testing.T) {
	p := johnDoe()
	p.Email = "jd@doe.com"
	p.Password = "John@12345"

	r := NewUser(context.Background(), p, noEmailsTaken(), plainHasher{})

	assert.Equal(t, []string{"Password.ContainsName"}, r.ErrorCodes())
}

func TestNewUser_PasswordContainsEmail(t *testing.T) {
	p := johnDoe()
	p.Email = "gamer@doe.com"
	p.Password = "xGAMER@99"

	r := NewUser(context.Background(), p, noEmailsTaken(), plainHasher{})

	assert.Equal(t, []string{"Password.ContainsEmail"}, r.ErrorCodes())
}

func TestNewUser_ShortNamesAreNotMatched(t *testing.T) {
	p := johnDoe()
	p.LastName = "Do"
	p.Password = "Do@123456x"

	r := NewUser(context.Background(), p, noEmailsTaken(), plainHasher{})

	assert.True(t, r.IsOK(), r.String())
}

func TestNewUser_NameLengthCountsCharacters(t *testing.T) {
	short := johnDoe()
	short.FirstName = "李明"
	short.Password = "Valid@1234李明"

	r := NewUser(context.Background(), short, noEmailsTaken(), plainHasher{})
	assert.True(t, r.IsOK(), r.String())

	long := johnDoe()
	long.LastName = "王小明"
	long.Password = "Valid@1王小明"

	r = NewUser(context.Background(), long, noEmailsTaken(), plainHasher{})
	assert.Equal(t, []string{"Password.ContainsName"}, r.ErrorCodes())
}

func TestNewUser_HashFailureIsAnError(t *testing.T) {
	r := NewUser(context.Background(), johnDoe(), noEmailsTaken(), plainHasher{err: errors.New("boom")})

	assert.Equal(t, result.StatusError, r.Status())
	assert.Contains(t, r.Errors()[0], "boom")
}

func TestAssembleUser_ReturnsOnlyAggregateErrors(t *testing.T) {
	parts := UserParts{
		FirstName: NewPersonName(FieldFirstName, "Alice").Value(),
		LastName:  NewPersonName(FieldLastName, "Smith").Value(),
		Email:     NewEmail("alice@smith.io").Value(),
		Password:  NewPassword("Smith@2024").Value(),
		Role:      RoleAdmin,
	}

	r := AssembleUser(parts, plainHasher{})

	require.Len(t, r.ValidationErrors(), 1)
	assert.Equal(t, "Password", r.ValidationErrors()[0].Identifier)
	assert.Equal(t, "Password.ContainsName", r.ValidationErrors()[0].ErrorCode)
}

func TestAssembleUser_RejectsZeroValueParts(t *testing.T) {
	r := AssembleUser(UserParts{}, plainHasher{})

	assert.Equal(t, []string{
		"FirstName.Required",
		"LastName.Required",
		"Email.Required",
		"Password.Required",
		"Role.Required",
	}, r.ErrorCodes())
}

func TestRestoreUser(t *testing.T) {
	rec := UserRecord{
		ID:           uuid.New(),
		FirstName:    "John",
		LastName:     "Doe",
		Email:        "john@doe.com",
		PasswordHash: "$2a$10$hash",
		Role:         "Admin",
		CreatedAt:    time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC),
	}

	r := RestoreUser(rec)

	require.True(t, r.IsOK())
	assert.Equal(t, rec, r.Value().Record())

	rec.Email = "broken"
	rec.PasswordHash = ""
	assert.Equal(t, []string{"Email.InvalidFormat", "Password.Required"}, RestoreUser(rec).ErrorCodes())
}

func TestUser_ChangeRole(t *testing.T) {
	u := NewUser(context.Background(), johnDoe(), noEmailsTaken(), plainHasher{}).Value()

	u.ChangeRole(RoleAdmin)

	assert.True(t, u.Role().IsAdmin())
}
