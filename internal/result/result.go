// Package result provides the tagged outcome type returned by value object
// factories, aggregate builders and command handlers.
//
// A Result is exactly one of Ok, Invalid, NotFound, Unauthorized, Forbidden or
// Error. The status is private and set only by the constructors below, so a
// value can never carry two statuses at once.
package result

import "fmt"

// Status tags a Result.
type Status int

const (
	StatusOK Status = iota
	StatusInvalid
	StatusNotFound
	StatusUnauthorized
	StatusForbidden
	StatusError
)

var statusNames = map[Status]string{
	StatusOK:           "Ok",
	StatusInvalid:      "Invalid",
	StatusNotFound:     "NotFound",
	StatusUnauthorized: "Unauthorized",
	StatusForbidden:    "Forbidden",
	StatusError:        "Error",
}

func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Status(%d)", int(s))
}

// Outcome is the type-erased view of a Result. It lets callers collect
// results of different value types in one pass.
type Outcome interface {
	Status() Status
	IsOK() bool
	Errors() []string
	ValidationErrors() []ValidationError
}

// Result carries either a usable value (Ok) or a categorized failure.
type Result[T any] struct {
	value            T
	status           Status
	errors           []string
	validationErrors []ValidationError
}

// Success returns an Ok result carrying value.
func Success[T any](value T) Result[T] {
	return Result[T]{value: value, status: StatusOK}
}

// Invalid returns a result carrying field-level validation errors.
func Invalid[T any](errs ...ValidationError) Result[T] {
	return Result[T]{status: StatusInvalid, validationErrors: clone(errs)}
}

func NotFound[T any](messages ...string) Result[T] {
	return Result[T]{status: StatusNotFound, errors: clone(messages)}
}

func Unauthorized[T any](messages ...string) Result[T] {
	return Result[T]{status: StatusUnauthorized, errors: clone(messages)}
}

func Forbidden[T any](messages ...string) Result[T] {
	return Result[T]{status: StatusForbidden, errors: clone(messages)}
}

// Error returns a result for a failure that is not the caller's fault.
func Error[T any](messages ...string) Result[T] {
	return Result[T]{status: StatusError, errors: clone(messages)}
}

func (r Result[T]) Status() Status { return r.status }

func (r Result[T]) IsOK() bool { return r.status == StatusOK }

// Value returns the carried value. It is the zero value for every non-Ok status.
func (r Result[T]) Value() T {
	if r.status != StatusOK {
		var zero T
		return zero
	}
	return r.value
}

// Get returns the value and whether the result is Ok.
func (r Result[T]) Get() (T, bool) {
	return r.Value(), r.IsOK()
}

func (r Result[T]) Errors() []string {
	return clone(r.errors)
}

func (r Result[T]) ValidationErrors() []ValidationError {
	return clone(r.validationErrors)
}

// ErrorCodes lists the ErrorCode of every validation error in order.
func (r Result[T]) ErrorCodes() []string {
	codes := make([]string, 0, len(r.validationErrors))
	for _, e := range r.validationErrors {
		codes = append(codes, e.ErrorCode)
	}
	return codes
}

func (r Result[T]) String() string {
	switch r.status {
	case StatusOK:
		return fmt.Sprintf("Ok(%v)", r.value)
	case StatusInvalid:
		return fmt.Sprintf("Invalid(%d errors)", len(r.validationErrors))
	default:
		return fmt.Sprintf("%s(%v)", r.status, r.errors)
	}
}

// Failed re-types a failed outcome so it can be propagated by a caller that
// returns a different value type. Passing an Ok outcome is a programming
// error and yields an Error result.
func Failed[U any](o Outcome) Result[U] {
	if o == nil {
		return Invalid[U](missing(typeName[U]()))
	}
	switch o.Status() {
	case StatusOK:
		return Error[U]("internal error: cannot propagate a successful result as a failure")
	case StatusInvalid:
		return Invalid[U](o.ValidationErrors()...)
	default:
		return Result[U]{status: o.Status(), errors: o.Errors()}
	}
}

// Map applies fn to the value of an Ok result and propagates failures as-is.
func Map[T, U any](r Result[T], fn func(T) U) Result[U] {
	if !r.IsOK() {
		return Failed[U](r)
	}
	return Success(fn(r.value))
}

// From adapts a possibly nil *Result into an Outcome. A nil pointer becomes
// an Invalid outcome naming the expected type instead of a panic.
func From[T any](r *Result[T]) Outcome {
	if r == nil {
		return Invalid[T](missing(typeName[T]()))
	}
	return *r
}

func typeName[T any]() string {
	var zero T
	return fmt.Sprintf("%T", &zero)[1:]
}

func clone[E any](s []E) []E {
	if len(s) == 0 {
		return nil
	}
	out := make([]E, len(s))
	copy(out, s)
	return out
}
