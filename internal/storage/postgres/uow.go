package postgres

import (
	"context"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/storage"
)

// statement is one staged write.
type statement struct {
	sql  string
	args []any
	// mustAffect turns zero affected rows into domain.ErrNotFound.
	mustAffect bool
}

type unitOfWork struct {
	db    *DB
	stmts []statement
}

func (u *unitOfWork) Users() storage.UserRepository {
	return &UserRepository{pool: u.db.pool, uow: u}
}

func (u *unitOfWork) Games() storage.GameRepository {
	return &GameRepository{pool: u.db.pool, uow: u}
}

func (u *unitOfWork) stage(s statement) {
	u.stmts = append(u.stmts, s)
}

// SaveChanges runs every staged statement in one transaction.
func (u *unitOfWork) SaveChanges(ctx context.Context) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if len(u.stmts) == 0 {
		return 0, nil
	}

	affected := 0
	err := u.db.WithTransaction(ctx, func(ctx context.Context) error {
		db := getDB(ctx, u.db.pool)
		for _, s := range u.stmts {
			tag, err := db.Exec(ctx, s.sql, s.args...)
			if err != nil {
				return mapError(err)
			}
			if s.mustAffect && tag.RowsAffected() == 0 {
				return domain.ErrNotFound
			}
			affected += int(tag.RowsAffected())
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	u.stmts = nil
	return affected, nil
}
