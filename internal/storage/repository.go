// Package storage defines the repository and unit of work interfaces for
// persistence.
//
// Repositories stage changes; nothing reaches the store until the owning
// UnitOfWork's SaveChanges commits them in one transaction. The store's
// unique constraints are authoritative, and a violation surfaces as a
// *DuplicateKeyError from SaveChanges.
package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/domain"
)

// Constraint names shared by every store implementation.
const (
	ConstraintUserEmail = "users_email_key"
	ConstraintGameName  = "games_name_key"
)

// ErrCorruptRecord is returned when stored data no longer passes the
// domain's validation rules.
var ErrCorruptRecord = errors.New("stored record failed validation")

// UserRepository defines the operations for user persistence.
type UserRepository interface {
	// Add stages a new user for insertion.
	Add(user *domain.User)

	// GetByID retrieves a user by their ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByEmail retrieves a user by their normalized email. Returns ErrNotFound if not found.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// EmailExists reports whether a committed user already owns email.
	EmailExists(ctx context.Context, email string) (bool, error)
}

// GameRepository defines the operations for game persistence.
type GameRepository interface {
	// Add stages a new game for insertion.
	Add(game *domain.Game)

	// Update stages a full replacement of an existing game.
	Update(game *domain.Game)

	// Remove stages a deletion.
	Remove(id uuid.UUID)

	// GetByID retrieves a game by its ID. Returns ErrNotFound if not found.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error)
}

// UnitOfWork collects staged changes across repositories and commits them
// atomically.
type UnitOfWork interface {
	Users() UserRepository
	Games() GameRepository

	// SaveChanges commits every staged change and returns how many rows
	// were written. On error nothing is written. A unique constraint
	// violation is returned as *DuplicateKeyError.
	SaveChanges(ctx context.Context) (int, error)
}

// UnitOfWorkFactory opens a fresh unit of work per command.
type UnitOfWorkFactory interface {
	New() UnitOfWork
}

// UnitOfWorkFactoryFunc adapts a function to UnitOfWorkFactory.
type UnitOfWorkFactoryFunc func() UnitOfWork

func (f UnitOfWorkFactoryFunc) New() UnitOfWork { return f() }

// DuplicateKeyError reports a unique constraint violation at commit time.
type DuplicateKeyError struct {
	ConstraintName string
	TableName      string
	ColumnName     string
	Err            error
}

func (e *DuplicateKeyError) Error() string {
	return fmt.Sprintf("duplicate key violates unique constraint %q on %s", e.ConstraintName, e.TableName)
}

// Unwrap exposes domain.ErrAlreadyExists and the driver error, if any.
func (e *DuplicateKeyError) Unwrap() []error {
	if e.Err != nil {
		return []error{domain.ErrAlreadyExists, e.Err}
	}
	return []error{domain.ErrAlreadyExists}
}
