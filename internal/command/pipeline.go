package command

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime/debug"
	"time"

	"github.com/mvaleed/catalog/internal/result"
)

// NewPipeline wraps h so every call is logged before and after, panics are
// recovered, and validators run in order before h. The first validator to
// report violations stops the pipeline and h is not called.
func NewPipeline[C, R any](name string, h Handler[C, R], logger *slog.Logger, validators ...Validator[C]) Handler[C, R] {
	logger = logger.With(slog.String("command", name))
	return Chain(h,
		Logging[C, R](logger),
		Recover[C, R](name, logger),
		Validation[C, R](name, validators...),
	)
}

// Logging logs the command before it runs and its outcome afterwards. The
// command itself is logged only when it implements slog.LogValuer, so
// commands control which of their fields are written.
func Logging[C, R any](logger *slog.Logger) Middleware[C, R] {
	return func(next Handler[C, R]) Handler[C, R] {
		return HandlerFunc[C, R](func(ctx context.Context, cmd C) (result.Result[R], error) {
			started := []any{}
			if lv, ok := any(cmd).(slog.LogValuer); ok {
				started = append(started, slog.Any("input", lv))
			}
			logger.InfoContext(ctx, "command started", started...)

			start := time.Now()
			res, err := next.Execute(ctx, cmd)
			duration := slog.Duration("duration", time.Since(start))

			var vf *ValidationFailure
			switch {
			case errors.As(err, &vf):
				logger.WarnContext(ctx, "command rejected", duration, slog.Any("error_codes", codesOf(vf.Errors)))
			case err != nil:
				logger.ErrorContext(ctx, "command failed", duration, slog.String("error", err.Error()))
			case res.IsOK():
				logger.InfoContext(ctx, "command completed", duration, slog.String("status", res.Status().String()))
			default:
				logger.InfoContext(ctx, "command completed", duration,
					slog.String("status", res.Status().String()),
					slog.Any("error_codes", res.ErrorCodes()),
				)
			}
			return res, err
		})
	}
}

// Recover turns a panic in the rest of the pipeline into an error.
func Recover[C, R any](name string, logger *slog.Logger) Middleware[C, R] {
	return func(next Handler[C, R]) Handler[C, R] {
		return HandlerFunc[C, R](func(ctx context.Context, cmd C) (res result.Result[R], err error) {
			defer func() {
				if r := recover(); r != nil {
					logger.ErrorContext(ctx, "command panic recovered",
						slog.Any("panic", r),
						slog.String("stack", string(debug.Stack())),
					)
					res = result.Error[R]("internal error")
					err = fmt.Errorf("%s: panic: %v", name, r)
				}
			}()
			return next.Execute(ctx, cmd)
		})
	}
}

// Validation runs validators in order and stops at the first that reports
// violations.
func Validation[C, R any](name string, validators ...Validator[C]) Middleware[C, R] {
	return func(next Handler[C, R]) Handler[C, R] {
		if len(validators) == 0 {
			return next
		}
		return HandlerFunc[C, R](func(ctx context.Context, cmd C) (result.Result[R], error) {
			for _, v := range validators {
				errs, err := v.Validate(ctx, cmd)
				if err != nil {
					return result.Error[R]("validation could not complete"), fmt.Errorf("%s: %w", name, err)
				}
				if len(errs) > 0 {
					return result.Invalid[R](errs...), &ValidationFailure{Command: name, Errors: errs}
				}
			}
			return next.Execute(ctx, cmd)
		})
	}
}

func codesOf(errs []result.ValidationError) []string {
	codes := make([]string, len(errs))
	for i, ve := range errs {
		codes[i] = ve.ErrorCode
	}
	return codes
}
