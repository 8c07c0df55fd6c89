package domain

import (
	"context"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/result"
)

const minNameFragment = 3

// UserParams holds the raw fields of a new account.
type UserParams struct {
	FirstName string
	LastName  string
	Email     string
	Password  string
	Role      string
}

// UserParts holds validated value objects for a new account.
type UserParts struct {
	FirstName PersonName
	LastName  PersonName
	Email     Email
	Password  Password
	Role      Role
}

// UserRecord is the stored form of a user.
type UserRecord struct {
	ID           uuid.UUID
	FirstName    string
	LastName     string
	Email        string
	PasswordHash string
	Role         string
	CreatedAt    time.Time
}

// User is the account aggregate root.
type User struct {
	id           uuid.UUID
	firstName    PersonName
	lastName     PersonName
	email        Email
	passwordHash string
	role         Role
	createdAt    time.Time
}

// NewUser validates every field, including the asynchronous email
// uniqueness check, and builds a user. The uniqueness check is advisory; the
// store's unique constraint has the final word at commit time.
func NewUser(ctx context.Context, p UserParams, emails EmailChecker, hasher PasswordHasher) result.Result[*User] {
	firstName := NewPersonName(FieldFirstName, p.FirstName)
	lastName := NewPersonName(FieldLastName, p.LastName)
	email := NewUniqueEmail(ctx, p.Email, emails)
	password := NewPassword(p.Password)
	role := NewRole(p.Role)

	if merged, ok := result.Merge[*User](firstName, lastName, email, password, role); !ok {
		return merged
	}
	return AssembleUser(UserParts{
		FirstName: firstName.Value(),
		LastName:  lastName.Value(),
		Email:     email.Value(),
		Password:  password.Value(),
		Role:      role.Value(),
	}, hasher)
}

// AssembleUser builds a user from validated parts, running only the
// aggregate-level rules. Email uniqueness is not re-checked here.
func AssembleUser(parts UserParts, hasher PasswordHasher) result.Result[*User] {
	if errs := validateUserParts(parts); len(errs) > 0 {
		return result.Invalid[*User](errs...)
	}

	hash, err := hasher.Hash(parts.Password.value)
	if err != nil {
		return result.Error[*User]("hash password: " + err.Error())
	}

	return result.Success(&User{
		id:           uuid.New(),
		firstName:    parts.FirstName,
		lastName:     parts.LastName,
		email:        parts.Email,
		passwordHash: hash,
		role:         parts.Role,
		createdAt:    time.Now().UTC(),
	})
}

// RestoreUser rebuilds a stored user, re-validating every stored field.
func RestoreUser(rec UserRecord) result.Result[*User] {
	firstName := NewPersonName(FieldFirstName, rec.FirstName)
	lastName := NewPersonName(FieldLastName, rec.LastName)
	email := NewEmail(rec.Email)
	role := NewRole(rec.Role)

	var hashCheck result.Result[string]
	if rec.PasswordHash == "" {
		hashCheck = result.Invalid[string](FieldPassword.Violation(RuleRequired, "password hash is missing"))
	} else {
		hashCheck = result.Success(rec.PasswordHash)
	}

	if merged, ok := result.Merge[*User](firstName, lastName, email, role, hashCheck); !ok {
		return merged
	}
	return result.Success(&User{
		id:           rec.ID,
		firstName:    firstName.Value(),
		lastName:     lastName.Value(),
		email:        email.Value(),
		passwordHash: rec.PasswordHash,
		role:         role.Value(),
		createdAt:    rec.CreatedAt,
	})
}

// validateUserParts checks the invariants spanning several value objects.
func validateUserParts(parts UserParts) []result.ValidationError {
	var errs []result.ValidationError

	if parts.FirstName.IsZero() {
		errs = append(errs, FieldFirstName.Violation(RuleRequired, "FirstName is required"))
	}
	if parts.LastName.IsZero() {
		errs = append(errs, FieldLastName.Violation(RuleRequired, "LastName is required"))
	}
	if parts.Email.IsZero() {
		errs = append(errs, FieldEmail.Violation(RuleRequired, "email is required"))
	}
	if parts.Password.IsZero() {
		errs = append(errs, FieldPassword.Violation(RuleRequired, "password is required"))
	}
	if parts.Role.IsZero() {
		errs = append(errs, FieldRole.Violation(RuleRequired, "role is required"))
	}

	for _, name := range []PersonName{parts.FirstName, parts.LastName} {
		if utf8.RuneCountInString(name.value) >= minNameFragment && parts.Password.contains(name.value) {
			errs = append(errs, FieldPassword.Violation(RuleContainsName, "password must not contain your name"))
			break
		}
	}
	if local := parts.Email.LocalPart(); utf8.RuneCountInString(local) >= minNameFragment && parts.Password.contains(local) {
		errs = append(errs, FieldPassword.Violation(RuleContainsEmail, "password must not contain your email address"))
	}

	return errs
}

// ChangeRole replaces the role value object.
func (u *User) ChangeRole(r Role) {
	u.role = r
}

func (u *User) ID() uuid.UUID         { return u.id }
func (u *User) FirstName() PersonName { return u.firstName }
func (u *User) LastName() PersonName  { return u.lastName }
func (u *User) Email() Email          { return u.email }
func (u *User) PasswordHash() string  { return u.passwordHash }
func (u *User) Role() Role            { return u.role }
func (u *User) CreatedAt() time.Time  { return u.createdAt }

// FullName joins first and last name.
func (u *User) FullName() string {
	return u.firstName.String() + " " + u.lastName.String()
}

// Record returns the stored form of the user.
func (u *User) Record() UserRecord {
	return UserRecord{
		ID:           u.id,
		FirstName:    u.firstName.String(),
		LastName:     u.lastName.String(),
		Email:        u.email.String(),
		PasswordHash: u.passwordHash,
		Role:         u.role.String(),
		CreatedAt:    u.createdAt,
	}
}
