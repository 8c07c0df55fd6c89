package domain

import (
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/result"
)

// Game rules.
const (
	RuleBeforeEpoch = "BeforeEpoch"
)

var epoch = time.Unix(0, 0).UTC()

// GameParams holds the raw fields of a game as received from a caller.
type GameParams struct {
	Name         string
	Description  string
	Developer    string
	Publisher    string
	Price        float64
	DiskSize     float64
	AgeRating    string
	ReleaseDate  time.Time
	OfficialLink string
}

// GameParts holds already validated value objects plus the fields only the
// aggregate can judge.
type GameParts struct {
	Name         GameName
	Description  Description
	Developer    CompanyName
	Publisher    CompanyName
	Price        Price
	DiskSize     DiskSize
	AgeRating    AgeRating
	ReleaseDate  time.Time
	OfficialLink string
}

// Game is the catalog aggregate root.
type Game struct {
	id           uuid.UUID
	name         GameName
	description  Description
	developer    CompanyName
	publisher    CompanyName
	price        Price
	diskSize     DiskSize
	ageRating    AgeRating
	releaseDate  time.Time
	officialLink string
	createdAt    time.Time
}

// NewGame validates every field and builds a game. If any value object
// fails, the combined failures are returned and no game is created.
func NewGame(p GameParams) result.Result[*Game] {
	parts, failed := gamePartsFrom(p)
	if failed != nil {
		return *failed
	}
	return AssembleGame(parts)
}

// AssembleGame builds a game from validated parts, running only the
// aggregate-level rules.
func AssembleGame(parts GameParts) result.Result[*Game] {
	return assembleGame(uuid.New(), time.Now().UTC(), parts)
}

// RestoreGame rebuilds a stored game. Stored data goes through the same
// rules as new data.
func RestoreGame(id uuid.UUID, createdAt time.Time, p GameParams) result.Result[*Game] {
	parts, failed := gamePartsFrom(p)
	if failed != nil {
		return *failed
	}
	return assembleGame(id, createdAt, parts)
}

func gamePartsFrom(p GameParams) (GameParts, *result.Result[*Game]) {
	name := NewGameName(p.Name)
	description := NewDescription(p.Description)
	developer := NewCompanyName(FieldDeveloper, p.Developer)
	publisher := NewCompanyName(FieldPublisher, p.Publisher)
	price := NewPrice(p.Price)
	diskSize := NewDiskSize(p.DiskSize)
	ageRating := NewAgeRating(p.AgeRating)

	if merged, ok := result.Merge[*Game](name, description, developer, publisher, price, diskSize, ageRating); !ok {
		return GameParts{}, &merged
	}
	return GameParts{
		Name:         name.Value(),
		Description:  description.Value(),
		Developer:    developer.Value(),
		Publisher:    publisher.Value(),
		Price:        price.Value(),
		DiskSize:     diskSize.Value(),
		AgeRating:    ageRating.Value(),
		ReleaseDate:  p.ReleaseDate,
		OfficialLink: p.OfficialLink,
	}, nil
}

func assembleGame(id uuid.UUID, createdAt time.Time, parts GameParts) result.Result[*Game] {
	g := &Game{
		id:           id,
		name:         parts.Name,
		description:  parts.Description,
		developer:    parts.Developer,
		publisher:    parts.Publisher,
		price:        parts.Price,
		diskSize:     parts.DiskSize,
		ageRating:    parts.AgeRating,
		releaseDate:  parts.ReleaseDate.UTC(),
		officialLink: parts.OfficialLink,
		createdAt:    createdAt,
	}
	if errs := g.validate(); len(errs) > 0 {
		return result.Invalid[*Game](errs...)
	}
	return result.Success(g)
}

// validate checks the invariants that span the whole aggregate.
func (g *Game) validate() []result.ValidationError {
	var errs []result.ValidationError

	if g.name.IsZero() {
		errs = append(errs, FieldName.Violation(RuleRequired, "Name is required"))
	}
	if g.developer.IsZero() {
		errs = append(errs, FieldDeveloper.Violation(RuleRequired, "Developer is required"))
	}
	if g.publisher.IsZero() {
		errs = append(errs, FieldPublisher.Violation(RuleRequired, "Publisher is required"))
	}
	if g.diskSize.IsZero() {
		errs = append(errs, FieldDiskSize.Violation(RuleNonPositive, "disk size must be greater than zero"))
	}
	if g.ageRating.IsZero() {
		errs = append(errs, FieldAgeRating.Violation(RuleRequired, "age rating is required"))
	}

	if !g.releaseDate.After(epoch) {
		errs = append(errs, FieldReleaseDate.Violation(RuleBeforeEpoch, "release date must be after 1970-01-01"))
	}
	if g.officialLink != "" && !isWebURL(g.officialLink) {
		errs = append(errs, FieldOfficialLink.Violation(RuleInvalidFormat, "official link must be an absolute http or https URL"))
	}

	return errs
}

// ChangePrice replaces the price value object.
func (g *Game) ChangePrice(p Price) {
	g.price = p
}

func (g *Game) ID() uuid.UUID            { return g.id }
func (g *Game) Name() GameName           { return g.name }
func (g *Game) Description() Description { return g.description }
func (g *Game) Developer() CompanyName   { return g.developer }
func (g *Game) Publisher() CompanyName   { return g.publisher }
func (g *Game) Price() Price             { return g.price }
func (g *Game) DiskSize() DiskSize       { return g.diskSize }
func (g *Game) AgeRating() AgeRating     { return g.ageRating }
func (g *Game) ReleaseDate() time.Time   { return g.releaseDate }
func (g *Game) OfficialLink() string     { return g.officialLink }
func (g *Game) CreatedAt() time.Time     { return g.createdAt }

// Params returns the game's fields in primitive form, as stored.
func (g *Game) Params() GameParams {
	return GameParams{
		Name:         g.name.String(),
		Description:  g.description.String(),
		Developer:    g.developer.String(),
		Publisher:    g.publisher.String(),
		Price:        g.price.Amount(),
		DiskSize:     g.diskSize.Gigabytes(),
		AgeRating:    g.ageRating.String(),
		ReleaseDate:  g.releaseDate,
		OfficialLink: g.officialLink,
	}
}

func isWebURL(raw string) bool {
	u, err := url.ParseRequestURI(raw)
	if err != nil {
		return false
	}
	return (u.Scheme == "http" || u.Scheme == "https") && u.Host != ""
}
