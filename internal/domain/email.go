package domain

import (
	"context"
	"net/mail"
	"strings"

	"github.com/mvaleed/catalog/internal/result"
)

const maxEmailLength = 254

// EmailChecker reports whether an email address is already registered.
// It is the read-only uniqueness oracle consulted by NewUniqueEmail.
type EmailChecker interface {
	EmailExists(ctx context.Context, email string) (bool, error)
}

// EmailCheckerFunc adapts a function to EmailChecker.
type EmailCheckerFunc func(ctx context.Context, email string) (bool, error)

func (f EmailCheckerFunc) EmailExists(ctx context.Context, email string) (bool, error) {
	return f(ctx, email)
}

// Email is a lower-cased, syntactically valid email address.
type Email struct {
	value string
}

// NewEmail validates the shape of raw. It does not check uniqueness.
func NewEmail(raw string) result.Result[Email] {
	value := strings.ToLower(strings.TrimSpace(raw))
	if value == "" {
		return result.Invalid[Email](FieldEmail.Violation(RuleRequired, "email is required"))
	}

	var errs []result.ValidationError
	if len(value) > maxEmailLength {
		errs = append(errs, FieldEmail.Violation(RuleMaximumLength, "email must be at most 254 characters"))
	}
	if !isEmailShaped(value) {
		errs = append(errs, FieldEmail.Violation(RuleInvalidFormat, "email is not a valid address"))
	}
	if len(errs) > 0 {
		return result.Invalid[Email](errs...)
	}
	return result.Success(Email{value: value})
}

// NewUniqueEmail validates raw like NewEmail and then asks checker whether the
// address is taken. The check is skipped when the shape is already invalid.
// A failing checker or a cancelled ctx yields an Error result.
func NewUniqueEmail(ctx context.Context, raw string, checker EmailChecker) result.Result[Email] {
	r := NewEmail(raw)
	email, ok := r.Get()
	if !ok {
		return r
	}
	if err := ctx.Err(); err != nil {
		return result.Error[Email]("email uniqueness check aborted: " + err.Error())
	}

	exists, err := checker.EmailExists(ctx, email.value)
	if err != nil {
		return result.Error[Email]("email uniqueness check failed: " + err.Error())
	}
	if exists {
		return result.Invalid[Email](FieldEmail.Violation(RuleAlreadyExists, "email is already registered"))
	}
	return r
}

func (e Email) String() string { return e.value }

func (e Email) IsZero() bool { return e.value == "" }

// LocalPart returns the part before the @.
func (e Email) LocalPart() string {
	local, _, _ := strings.Cut(e.value, "@")
	return local
}

func isEmailShaped(value string) bool {
	addr, err := mail.ParseAddress(value)
	if err != nil || addr.Address != value {
		return false
	}
	local, host, ok := strings.Cut(value, "@")
	if !ok || local == "" {
		return false
	}
	dot := strings.LastIndexByte(host, '.')
	return dot > 0 && dot < len(host)-1
}
