package service

import (
	"log/slog"
	"time"

	"github.com/mvaleed/catalog/internal/domain"
)

// dateLayout is the wire format of release dates.
const dateLayout = time.DateOnly

// Commands carry only transport-level shape rules in their tags. Domain
// rules are applied by the value objects with full aggregation.

type CreateUserCommand struct {
	FirstName string `json:"firstName" validate:"max=256"`
	LastName  string `json:"lastName" validate:"max=256"`
	Email     string `json:"email" validate:"max=512"`
	Password  string `json:"password" validate:"max=512"`
	Role      string `json:"role" validate:"max=32"`
}

func (c CreateUserCommand) params() domain.UserParams {
	return domain.UserParams{
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Email:     c.Email,
		Password:  c.Password,
		Role:      c.Role,
	}
}

func (c CreateUserCommand) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("first_name", c.FirstName),
		slog.String("last_name", c.LastName),
		slog.String("email", c.Email),
		slog.String("role", c.Role),
	)
}

type AuthenticateUserQuery struct {
	Email    string `json:"email" validate:"required,max=512"`
	Password string `json:"password" validate:"required,max=512"`
}

func (q AuthenticateUserQuery) LogValue() slog.Value {
	return slog.GroupValue(slog.String("email", q.Email))
}

type GetUserQuery struct {
	ID string `json:"id" validate:"required,uuid"`
}

func (q GetUserQuery) LogValue() slog.Value {
	return slog.GroupValue(slog.String("id", q.ID))
}

type CreateGameCommand struct {
	Name         string  `json:"name" validate:"max=512"`
	Description  string  `json:"description" validate:"max=8192"`
	Developer    string  `json:"developer" validate:"max=512"`
	Publisher    string  `json:"publisher" validate:"max=512"`
	Price        float64 `json:"price"`
	DiskSize     float64 `json:"diskSize"`
	AgeRating    string  `json:"ageRating" validate:"max=16"`
	ReleaseDate  string  `json:"releaseDate" validate:"required,datetime=2006-01-02"`
	OfficialLink string  `json:"officialLink" validate:"max=2048"`
}

func (c CreateGameCommand) params() domain.GameParams {
	// ReleaseDate is checked by the pipeline validator before this runs.
	released, _ := time.Parse(dateLayout, c.ReleaseDate)
	return domain.GameParams{
		Name:         c.Name,
		Description:  c.Description,
		Developer:    c.Developer,
		Publisher:    c.Publisher,
		Price:        c.Price,
		DiskSize:     c.DiskSize,
		AgeRating:    c.AgeRating,
		ReleaseDate:  released,
		OfficialLink: c.OfficialLink,
	}
}

func (c CreateGameCommand) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("name", c.Name),
		slog.Float64("price", c.Price),
		slog.String("release_date", c.ReleaseDate),
	)
}

type GetGameQuery struct {
	ID string `json:"id" validate:"required,uuid"`
}

func (q GetGameQuery) LogValue() slog.Value {
	return slog.GroupValue(slog.String("id", q.ID))
}

type ChangeGamePriceCommand struct {
	ActorID string  `json:"-" validate:"required,uuid"`
	GameID  string  `json:"-" validate:"required,uuid"`
	Price   float64 `json:"price"`
}

func (c ChangeGamePriceCommand) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("actor_id", c.ActorID),
		slog.String("game_id", c.GameID),
		slog.Float64("price", c.Price),
	)
}

type DeleteGameCommand struct {
	ActorID string `json:"-" validate:"required,uuid"`
	GameID  string `json:"-" validate:"required,uuid"`
}

func (c DeleteGameCommand) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("actor_id", c.ActorID),
		slog.String("game_id", c.GameID),
	)
}
