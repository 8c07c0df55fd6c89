// Package postgres implements the storage interfaces using PostgreSQL.
//
// Expected schema:
//
//	CREATE TABLE users (
//		id            uuid PRIMARY KEY,
//		first_name    text NOT NULL,
//		last_name     text NOT NULL,
//		email         text NOT NULL,
//		password_hash text NOT NULL,
//		role          text NOT NULL,
//		created_at    timestamptz NOT NULL
//	);
//	CREATE UNIQUE INDEX users_email_key ON users (lower(email));
//
//	CREATE TABLE games (
//		id            uuid PRIMARY KEY,
//		name          text NOT NULL,
//		description   text NOT NULL DEFAULT '',
//		developer     text NOT NULL,
//		publisher     text NOT NULL,
//		price_cents   bigint NOT NULL,
//		disk_size_gb  double precision NOT NULL,
//		age_rating    text NOT NULL,
//		release_date  timestamptz NOT NULL,
//		official_link text NOT NULL DEFAULT '',
//		created_at    timestamptz NOT NULL
//	);
//	CREATE UNIQUE INDEX games_name_key ON games (lower(name));
package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/storage"
)

// DB wraps the PostgreSQL connection pool and opens units of work.
type DB struct {
	pool *pgxpool.Pool
}

// Open creates a new PostgreSQL database connection.
func Open(ctx context.Context, connString string) (*DB, error) {
	config, err := pgxpool.ParseConfig(connString)
	if err != nil {
		return nil, fmt.Errorf("parsing connection string: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, fmt.Errorf("creating connection pool: %w", err)
	}

	// Verify connection
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}

	return &DB{pool: pool}, nil
}

// Close closes all connections in the pool.
func (db *DB) Close() {
	db.pool.Close()
}

// New implements storage.UnitOfWorkFactory.
func (db *DB) New() storage.UnitOfWork {
	return &unitOfWork{db: db}
}

// WithTransaction executes fn within a database transaction.
// If fn returns an error, the transaction is rolled back.
func (db *DB) WithTransaction(ctx context.Context, fn func(ctx context.Context) error) error {
	tx, err := db.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}

	// Put the transaction in context so repositories can use it
	txCtx := context.WithValue(ctx, txKey{}, tx)

	if err := fn(txCtx); err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			return fmt.Errorf("rolling back transaction: %v (original error: %w)", rbErr, err)
		}
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing transaction: %w", mapError(err))
	}

	return nil
}

// txKey is the context key for the transaction.
type txKey struct{}

// DBTX is the interface satisfied by both *pgxpool.Pool and pgx.Tx.
// This allows repositories to work with or without an active transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// getDB returns the transaction from context if present, otherwise the pool.
func getDB(ctx context.Context, pool *pgxpool.Pool) DBTX {
	if tx, ok := ctx.Value(txKey{}).(pgx.Tx); ok {
		return tx
	}
	return pool
}

const uniqueViolationCode = "23505"

// constraintColumns names the column behind each expression index, which
// PostgreSQL does not report itself.
var constraintColumns = map[string]string{
	storage.ConstraintUserEmail: "email",
	storage.ConstraintGameName:  "name",
}

// mapError converts PostgreSQL errors to storage and domain errors.
func mapError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return domain.ErrNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		column := pgErr.ColumnName
		if column == "" {
			column = constraintColumns[pgErr.ConstraintName]
		}
		return &storage.DuplicateKeyError{
			ConstraintName: pgErr.ConstraintName,
			TableName:      pgErr.TableName,
			ColumnName:     column,
			Err:            err,
		}
	}

	return err
}

// scannable is satisfied by both pgx.Row and pgx.Rows
type scannable interface {
	Scan(dest ...any) error
}
