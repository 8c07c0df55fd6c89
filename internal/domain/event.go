package domain

import (
	"time"

	"github.com/google/uuid"
)

// Event represents a domain event that occurred.
// Events are immutable facts about something that happened.
type Event struct {
	ID          uuid.UUID
	Type        string
	Timestamp   time.Time
	AggregateID uuid.UUID
	Data        map[string]any
}

// Event type constants
const (
	EventUserCreated      = "user.created"
	EventGameCreated      = "game.created"
	EventGamePriceChanged = "game.price_changed"
	EventGameDeleted      = "game.deleted"
)

// NewEvent creates a new domain event.
func NewEvent(eventType string, aggregateID uuid.UUID, data map[string]any) Event {
	if data == nil {
		data = make(map[string]any)
	}
	return Event{
		ID:          uuid.New(),
		Type:        eventType,
		Timestamp:   time.Now().UTC(),
		AggregateID: aggregateID,
		Data:        data,
	}
}

func UserCreatedEvent(u *User) Event {
	return NewEvent(EventUserCreated, u.ID(), map[string]any{
		"email": u.Email().String(),
		"role":  u.Role().String(),
	})
}

func GameCreatedEvent(g *Game) Event {
	return NewEvent(EventGameCreated, g.ID(), map[string]any{
		"name":        g.Name().String(),
		"price_cents": g.Price().Cents(),
	})
}

func GamePriceChangedEvent(g *Game, old Price) Event {
	return NewEvent(EventGamePriceChanged, g.ID(), map[string]any{
		"old_price_cents": old.Cents(),
		"new_price_cents": g.Price().Cents(),
	})
}

func GameDeletedEvent(gameID, actorID uuid.UUID) Event {
	return NewEvent(EventGameDeleted, gameID, map[string]any{
		"deleted_by": actorID.String(),
	})
}
