package domain

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/mvaleed/catalog/internal/result"
)

const (
	maxPersonNameLength  = 50
	maxGameNameLength    = 100
	maxCompanyNameLength = 100
	maxDescriptionLength = 2000
)

// checkText trims raw and applies the required and maximum length rules.
func checkText(field result.Field, raw string, required bool, max int) (string, []result.ValidationError) {
	value := strings.TrimSpace(raw)
	if value == "" {
		if required {
			return "", []result.ValidationError{
				field.Violation(RuleRequired, fmt.Sprintf("%s is required", field.Name())),
			}
		}
		return "", nil
	}
	if utf8.RuneCountInString(value) > max {
		return "", []result.ValidationError{
			field.Violation(RuleMaximumLength, fmt.Sprintf("%s must be at most %d characters", field.Name(), max)),
		}
	}
	return value, nil
}

// PersonName is a first or last name.
type PersonName struct {
	value string
}

// NewPersonName validates raw under field, which is FieldFirstName or FieldLastName.
func NewPersonName(field result.Field, raw string) result.Result[PersonName] {
	value, errs := checkText(field, raw, true, maxPersonNameLength)
	if len(errs) > 0 {
		return result.Invalid[PersonName](errs...)
	}
	return result.Success(PersonName{value: value})
}

func (n PersonName) String() string { return n.value }

func (n PersonName) IsZero() bool { return n.value == "" }

// GameName is the catalog title of a game. Titles are unique in the catalog.
type GameName struct {
	value string
}

func NewGameName(raw string) result.Result[GameName] {
	value, errs := checkText(FieldName, raw, true, maxGameNameLength)
	if len(errs) > 0 {
		return result.Invalid[GameName](errs...)
	}
	return result.Success(GameName{value: value})
}

func (n GameName) String() string { return n.value }

func (n GameName) IsZero() bool { return n.value == "" }

// Description is optional free text.
type Description struct {
	value string
}

func NewDescription(raw string) result.Result[Description] {
	value, errs := checkText(FieldDescription, raw, false, maxDescriptionLength)
	if len(errs) > 0 {
		return result.Invalid[Description](errs...)
	}
	return result.Success(Description{value: value})
}

func (d Description) String() string { return d.value }

// CompanyName names a developer or publisher.
type CompanyName struct {
	value string
}

// NewCompanyName validates raw under field, which is FieldDeveloper or FieldPublisher.
func NewCompanyName(field result.Field, raw string) result.Result[CompanyName] {
	value, errs := checkText(field, raw, true, maxCompanyNameLength)
	if len(errs) > 0 {
		return result.Invalid[CompanyName](errs...)
	}
	return result.Success(CompanyName{value: value})
}

func (c CompanyName) String() string { return c.value }

func (c CompanyName) IsZero() bool { return c.value == "" }
