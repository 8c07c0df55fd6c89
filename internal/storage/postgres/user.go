package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/storage"
)

const userColumns = `id, first_name, last_name, email, password_hash, role, created_at`

// UserRepository implements storage.UserRepository using PostgreSQL.
// Writes are staged on the owning unit of work.
type UserRepository struct {
	pool *pgxpool.Pool
	uow  *unitOfWork
}

// Add stages a new user.
func (r *UserRepository) Add(user *domain.User) {
	rec := user.Record()
	r.uow.stage(statement{
		sql: `INSERT INTO users (` + userColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		args: []any{
			rec.ID,
			rec.FirstName,
			rec.LastName,
			rec.Email,
			rec.PasswordHash,
			rec.Role,
			rec.CreatedAt,
		},
	})
}

// GetByID retrieves a user by their ID.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	db := getDB(ctx, r.pool)

	row := db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id)

	return scanUser(row)
}

// GetByEmail retrieves a user by their email.
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	db := getDB(ctx, r.pool)

	row := db.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)

	return scanUser(row)
}

// EmailExists reports whether a committed user owns email.
func (r *UserRepository) EmailExists(ctx context.Context, email string) (bool, error) {
	db := getDB(ctx, r.pool)

	var exists bool
	err := db.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM users WHERE lower(email) = lower($1))`, email).Scan(&exists)
	if err != nil {
		return false, mapError(err)
	}
	return exists, nil
}

func scanUser(row scannable) (*domain.User, error) {
	var rec domain.UserRecord

	err := row.Scan(
		&rec.ID,
		&rec.FirstName,
		&rec.LastName,
		&rec.Email,
		&rec.PasswordHash,
		&rec.Role,
		&rec.CreatedAt,
	)
	if err != nil {
		return nil, mapError(err)
	}

	r := domain.RestoreUser(rec)
	if !r.IsOK() {
		return nil, fmt.Errorf("user %s: %w: %s", rec.ID, storage.ErrCorruptRecord, r)
	}
	return r.Value(), nil
}
