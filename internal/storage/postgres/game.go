package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/mvaleed/catalog/internal/domain"
	"github.com/mvaleed/catalog/internal/storage"
)

const gameColumns = `id, name, description, developer, publisher, price_cents,
	disk_size_gb, age_rating, release_date, official_link, created_at`

// GameRepository implements storage.GameRepository using PostgreSQL.
type GameRepository struct {
	pool *pgxpool.Pool
	uow  *unitOfWork
}

// Add stages a new game.
func (r *GameRepository) Add(game *domain.Game) {
	r.uow.stage(statement{
		sql:  `INSERT INTO games (` + gameColumns + `) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		args: gameArgs(game),
	})
}

// Update stages a full replacement of the game's columns.
func (r *GameRepository) Update(game *domain.Game) {
	r.uow.stage(statement{
		sql: `
		UPDATE games SET
			name = $2,
			description = $3,
			developer = $4,
			publisher = $5,
			price_cents = $6,
			disk_size_gb = $7,
			age_rating = $8,
			release_date = $9,
			official_link = $10
		WHERE id = $1`,
		args:       gameArgs(game)[:10],
		mustAffect: true,
	})
}

// Remove stages a hard delete.
func (r *GameRepository) Remove(id uuid.UUID) {
	r.uow.stage(statement{
		sql:        `DELETE FROM games WHERE id = $1`,
		args:       []any{id},
		mustAffect: true,
	})
}

// GetByID retrieves a game by its ID.
func (r *GameRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Game, error) {
	db := getDB(ctx, r.pool)

	row := db.QueryRow(ctx, `SELECT `+gameColumns+` FROM games WHERE id = $1`, id)

	return scanGame(row)
}

func gameArgs(g *domain.Game) []any {
	return []any{
		g.ID(),
		g.Name().String(),
		g.Description().String(),
		g.Developer().String(),
		g.Publisher().String(),
		g.Price().Cents(),
		g.DiskSize().Gigabytes(),
		g.AgeRating().String(),
		g.ReleaseDate(),
		g.OfficialLink(),
		g.CreatedAt(),
	}
}

func scanGame(row scannable) (*domain.Game, error) {
	var (
		id         uuid.UUID
		p          domain.GameParams
		priceCents int64
		createdAt  time.Time
	)

	err := row.Scan(
		&id,
		&p.Name,
		&p.Description,
		&p.Developer,
		&p.Publisher,
		&priceCents,
		&p.DiskSize,
		&p.AgeRating,
		&p.ReleaseDate,
		&p.OfficialLink,
		&createdAt,
	)
	if err != nil {
		return nil, mapError(err)
	}
	price := domain.PriceFromCents(priceCents)
	if !price.IsOK() {
		return nil, fmt.Errorf("game %s: %w: %s", id, storage.ErrCorruptRecord, price)
	}
	p.Price = price.Value().Amount()

	r := domain.RestoreGame(id, createdAt, p)
	if !r.IsOK() {
		return nil, fmt.Errorf("game %s: %w: %s", id, storage.ErrCorruptRecord, r)
	}
	return r.Value(), nil
}
