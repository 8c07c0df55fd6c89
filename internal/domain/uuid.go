package domain

import (
	"github.com/google/uuid"

	"github.com/mvaleed/catalog/internal/result"
)

// ParseID parses an aggregate identifier reported under field.
func ParseID(field result.Field, raw string) result.Result[uuid.UUID] {
	if raw == "" {
		return result.Invalid[uuid.UUID](field.Violation(RuleRequired, "identifier is required"))
	}
	id, err := uuid.Parse(raw)
	if err != nil || id == uuid.Nil {
		return result.Invalid[uuid.UUID](field.Violation(RuleInvalidFormat, "identifier must be a UUID"))
	}
	return result.Success(id)
}
