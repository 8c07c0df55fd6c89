package command

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/go-playground/validator/v10"

	"github.com/mvaleed/catalog/internal/result"
)

// Validator checks a command before it reaches the handler. A non-nil
// error means the check itself could not run.
type Validator[C any] interface {
	Validate(ctx context.Context, cmd C) ([]result.ValidationError, error)
}

// ValidatorFunc adapts a function to Validator.
type ValidatorFunc[C any] func(ctx context.Context, cmd C) ([]result.ValidationError, error)

func (f ValidatorFunc[C]) Validate(ctx context.Context, cmd C) ([]result.ValidationError, error) {
	return f(ctx, cmd)
}

// StructValidator checks `validate` struct tags with an injected
// go-playground validator.
type StructValidator[C any] struct {
	v *validator.Validate
}

func NewStructValidator[C any](v *validator.Validate) StructValidator[C] {
	return StructValidator[C]{v: v}
}

func (s StructValidator[C]) Validate(ctx context.Context, cmd C) ([]result.ValidationError, error) {
	err := s.v.StructCtx(ctx, cmd)
	if err == nil {
		return nil, nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return nil, fmt.Errorf("struct validation: %w", err)
	}

	out := make([]result.ValidationError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		field := result.Field(fieldPath(fe.StructNamespace()))
		out = append(out, field.Violation(ruleFor(fe.Tag()), messageFor(fe)))
	}
	return out, nil
}

// fieldPath drops the root type name from a validator namespace.
func fieldPath(namespace string) string {
	if _, rest, ok := strings.Cut(namespace, "."); ok {
		return rest
	}
	return namespace
}

var tagRules = map[string]string{
	"required": "Required",
	"max":      "MaximumLength",
	"min":      "MinimumLength",
	"email":    "InvalidFormat",
	"uuid":     "InvalidFormat",
	"uuid4":    "InvalidFormat",
	"url":      "InvalidFormat",
	"http_url": "InvalidFormat",
	"oneof":    "Invalid",
	"gt":       "TooSmall",
	"gte":      "TooSmall",
	"lt":       "TooLarge",
	"lte":      "TooLarge",
}

func ruleFor(tag string) string {
	if rule, ok := tagRules[tag]; ok {
		return rule
	}
	r := []rune(tag)
	if len(r) == 0 {
		return "Invalid"
	}
	r[0] = unicode.ToUpper(r[0])
	return string(r)
}

func messageFor(fe validator.FieldError) string {
	if fe.Param() != "" {
		return fmt.Sprintf("%s failed the '%s=%s' check", fe.Field(), fe.Tag(), fe.Param())
	}
	return fmt.Sprintf("%s failed the '%s' check", fe.Field(), fe.Tag())
}
