package domain

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/mvaleed/catalog/internal/result"
)

// Password rules beyond the shared ones.
const (
	RuleUppercase        = "Uppercase"
	RuleLowercase        = "Lowercase"
	RuleDigit            = "Digit"
	RuleSpecialCharacter = "SpecialCharacter"
	RuleContainsName     = "ContainsName"
	RuleContainsEmail    = "ContainsEmail"
)

const (
	minPasswordLength = 8
	// bcrypt ignores everything past 72 bytes.
	maxPasswordBytes = 72
)

// PasswordHasher turns a validated password into its stored form.
type PasswordHasher interface {
	Hash(plain string) (string, error)
}

// Password is a plaintext password that satisfied every strength rule.
// It only lives for the duration of a command; aggregates keep the hash.
type Password struct {
	value string
}

// NewPassword checks every strength rule independently and reports all
// violations together.
func NewPassword(raw string) result.Result[Password] {
	if raw == "" {
		return result.Invalid[Password](FieldPassword.Violation(RuleRequired, "password is required"))
	}

	var errs []result.ValidationError
	if utf8.RuneCountInString(raw) < minPasswordLength {
		errs = append(errs, FieldPassword.Violation(RuleMinimumLength, "password must be at least 8 characters"))
	}
	if len(raw) > maxPasswordBytes {
		errs = append(errs, FieldPassword.Violation(RuleMaximumLength, "password must be at most 72 bytes"))
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, c := range raw {
		switch {
		case unicode.IsUpper(c):
			hasUpper = true
		case unicode.IsLower(c):
			hasLower = true
		case unicode.IsDigit(c):
			hasDigit = true
		case !unicode.IsLetter(c):
			hasSpecial = true
		}
	}
	if !hasUpper {
		errs = append(errs, FieldPassword.Violation(RuleUppercase, "password must contain at least one uppercase letter"))
	}
	if !hasLower {
		errs = append(errs, FieldPassword.Violation(RuleLowercase, "password must contain at least one lowercase letter"))
	}
	if !hasDigit {
		errs = append(errs, FieldPassword.Violation(RuleDigit, "password must contain at least one digit"))
	}
	if !hasSpecial {
		errs = append(errs, FieldPassword.Violation(RuleSpecialCharacter, "password must contain at least one special character"))
	}

	if len(errs) > 0 {
		return result.Invalid[Password](errs...)
	}
	return result.Success(Password{value: raw})
}

// String never reveals the password.
func (p Password) String() string { return "********" }

func (p Password) IsZero() bool { return p.value == "" }

func (p Password) contains(fragment string) bool {
	return fragment != "" && strings.Contains(strings.ToLower(p.value), strings.ToLower(fragment))
}
