// Package service contains the business logic layer.
// Services orchestrate operations across repositories, commit through a
// unit of work, and publish events. They do not know about HTTP, gRPC, or
// transport details.
//
// Each exported service method has the command.Handler shape and is
// wrapped in a pipeline by NewHandlers.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/result"
	"github.com/mvaleed/catalog/internal/storage"
)

// PasswordHasher hashes new passwords and verifies stored ones.
type PasswordHasher interface {
	domain.PasswordHasher
	Compare(password, hash string) error
	// CompareDummy does the work of Compare for an unknown account and
	// always fails.
	CompareDummy(password string) error
}

// constraintFields maps store constraints to the field they protect.
var constraintFields = map[string]result.Field{
	storage.ConstraintUserEmail: domain.FieldEmail,
	storage.ConstraintGameName:  domain.FieldName,
}

// conflictResult rewrites a duplicate key error from SaveChanges into the
// same Invalid shape as up-front validation.
func conflictResult[T any](err error) (result.Result[T], bool) {
	var dup *storage.DuplicateKeyError
	if !errors.As(err, &dup) {
		return result.Result[T]{}, false
	}

	field, ok := constraintFields[dup.ConstraintName]
	if !ok {
		field = result.Field(pascalCase(dup.ColumnName))
	}
	if field == "" {
		field = "Record"
	}
	return result.Invalid[T](field.Violation(
		domain.RuleAlreadyExists,
		fmt.Sprintf("%s already exists", field.Name()),
	)), true
}

// saveFailure handles a SaveChanges error that is not a known conflict.
func saveFailure[T any](what string, err error) (result.Result[T], error) {
	if conflict, ok := conflictResult[T](err); ok {
		return conflict, nil
	}
	if errors.Is(err, domain.ErrNotFound) {
		return result.NotFound[T](what + " not found"), nil
	}
	return result.Error[T]("could not save " + what), fmt.Errorf("save %s: %w", what, err)
}

// authorize loads the acting user and checks that their role grants action.
func authorize(ctx context.Context, users storage.UserRepository, actorID uuid.UUID, action string) (*domain.User, result.Result[*domain.User], error) {
	actor, err := users.GetByID(ctx, actorID)
	if errors.Is(err, domain.ErrNotFound) {
		return nil, result.Unauthorized[*domain.User]("unknown actor"), nil
	}
	if err != nil {
		return nil, result.Error[*domain.User]("could not load actor"), fmt.Errorf("load actor: %w", err)
	}
	if !actor.Role().Can(action) {
		return nil, result.Forbidden[*domain.User](fmt.Sprintf("role %s may not perform %s", actor.Role(), action)), nil
	}
	return actor, result.Success(actor), nil
}

func pascalCase(snake string) string {
	var b strings.Builder
	for _, part := range strings.Split(snake, "_") {
		r := []rune(part)
		if len(r) == 0 {
			continue
		}
		r[0] = unicode.ToUpper(r[0])
		b.WriteString(string(r))
	}
	return b.String()
}
