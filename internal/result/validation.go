package result

import (
	"fmt"
	"strings"
)

// Severity grades a ValidationError.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
)

func (s Severity) String() string {
	switch s {
	case SeverityWarning:
		return "Warning"
	case SeverityInfo:
		return "Info"
	default:
		return "Error"
	}
}

// MarshalText renders the severity as Error, Warning or Info on the wire.
func (s Severity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Severity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "Error":
		*s = SeverityError
	case "Warning":
		*s = SeverityWarning
	case "Info":
		*s = SeverityInfo
	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}
	return nil
}

// ValidationError is a single field-scoped rule violation. Identifier and
// ErrorCode are part of the client-facing contract and must stay stable.
type ValidationError struct {
	Identifier   string   `json:"identifier"`
	ErrorMessage string   `json:"errorMessage"`
	ErrorCode    string   `json:"errorCode"`
	Severity     Severity `json:"severity"`
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (%s)", e.Identifier, e.ErrorMessage, e.ErrorCode)
}

// Field is a dotted field path such as "Email" or "Game.Price".
type Field string

// Child appends a segment to the path.
func (f Field) Child(name string) Field {
	if f == "" {
		return Field(name)
	}
	return Field(string(f) + "." + name)
}

// Name returns the last path segment.
func (f Field) Name() string {
	s := string(f)
	if i := strings.LastIndexByte(s, '.'); i >= 0 {
		return s[i+1:]
	}
	return s
}

// Violation builds an Error-severity ValidationError with code "{Name}.{rule}".
func (f Field) Violation(rule, message string) ValidationError {
	return ValidationError{
		Identifier:   string(f),
		ErrorMessage: message,
		ErrorCode:    f.Name() + "." + rule,
		Severity:     SeverityError,
	}
}

const missingCode = "Result.Missing"

func missing(expected string) ValidationError {
	return ValidationError{
		Identifier:   expected,
		ErrorMessage: fmt.Sprintf("no result was produced for %s", expected),
		ErrorCode:    missingCode,
		Severity:     SeverityError,
	}
}

// CollectErrors flattens the failures of every outcome into one list,
// preserving evaluation order. Ok outcomes contribute nothing. Non-validation
// failures contribute one entry per message, coded "Result.{Status}".
func CollectErrors(outcomes ...Outcome) []ValidationError {
	var errs []ValidationError
	for _, o := range outcomes {
		if o == nil {
			errs = append(errs, missing("result"))
			continue
		}
		switch o.Status() {
		case StatusOK:
		case StatusInvalid:
			errs = append(errs, o.ValidationErrors()...)
		default:
			for _, msg := range o.Errors() {
				errs = append(errs, ValidationError{
					ErrorMessage: msg,
					ErrorCode:    "Result." + o.Status().String(),
					Severity:     SeverityError,
				})
			}
		}
	}
	return errs
}

// Merge combines outcomes without short-circuiting. It reports ok=true when
// every outcome is Ok. Otherwise the returned result is Invalid with every
// validation error in order, unless some outcome failed with a
// non-validation status; then the first such status wins and carries the
// messages of every non-validation failure.
func Merge[T any](outcomes ...Outcome) (Result[T], bool) {
	var (
		validation []ValidationError
		messages   []string
		status     = StatusOK
	)
	for _, o := range outcomes {
		if o == nil {
			validation = append(validation, missing("result"))
			continue
		}
		switch s := o.Status(); s {
		case StatusOK:
		case StatusInvalid:
			validation = append(validation, o.ValidationErrors()...)
		default:
			if status == StatusOK {
				status = s
			}
			messages = append(messages, o.Errors()...)
		}
	}
	if status != StatusOK {
		return Result[T]{status: status, errors: messages}, false
	}
	if len(validation) > 0 {
		return Invalid[T](validation...), false
	}
	return Result[T]{}, true
}
