// Package command runs commands and queries through a fixed pipeline:
// pre-log, recover, validate, execute, post-log.
//
// Handlers report every domain outcome as a result.Result. The error
// return is reserved for a *ValidationFailure raised before the handler
// runs and for unexpected failures such as infrastructure errors or
// recovered panics.
package command

import (
	"context"
	"fmt"
	"strings"

	"github.com/mvaleed/catalog/internal/result"
)

// Handler executes one command or query type.
type Handler[C, R any] interface {
	Execute(ctx context.Context, cmd C) (result.Result[R], error)
}

// HandlerFunc adapts a function to Handler.
type HandlerFunc[C, R any] func(ctx context.Context, cmd C) (result.Result[R], error)

func (f HandlerFunc[C, R]) Execute(ctx context.Context, cmd C) (result.Result[R], error) {
	return f(ctx, cmd)
}

// Middleware wraps a handler.
type Middleware[C, R any] func(Handler[C, R]) Handler[C, R]

// Chain applies middlewares so the first one listed runs outermost.
func Chain[C, R any](h Handler[C, R], mws ...Middleware[C, R]) Handler[C, R] {
	for i := len(mws) - 1; i >= 0; i-- {
		h = mws[i](h)
	}
	return h
}

// ValidationFailure is returned when a command is rejected before its
// handler runs.
type ValidationFailure struct {
	Command string
	Errors  []result.ValidationError
}

func (e *ValidationFailure) Error() string {
	return fmt.Sprintf("%s: validation failed: %s", e.Command, strings.Join(codesOf(e.Errors), ", "))
}
