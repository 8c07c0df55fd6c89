package grpc

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"google.golang.org/genproto/googleapis/rpc/errdetails"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/mvaleed/catalog/internal/command"
	"github.com/mvaleed/catalog/internal/result"
)

const errorDomain = "catalog"

var statusCodes = map[result.Status]codes.Code{
	result.StatusOK:           codes.OK,
	result.StatusInvalid:      codes.InvalidArgument,
	result.StatusNotFound:     codes.NotFound,
	result.StatusUnauthorized: codes.Unauthenticated,
	result.StatusForbidden:    codes.PermissionDenied,
	result.StatusError:        codes.Internal,
}

// StatusFromResult converts a failed result into a gRPC status error. It
// returns nil for Ok results. Messages of Error results are not exposed.
func StatusFromResult(o result.Outcome) error {
	switch o.Status() {
	case result.StatusOK:
		return nil
	case result.StatusInvalid:
		return invalidArgument(o.ValidationErrors())
	}

	code, ok := statusCodes[o.Status()]
	if !ok || code == codes.Internal {
		return status.Error(codes.Internal, "internal server error")
	}
	msg := strings.Join(o.Errors(), "; ")
	if msg == "" {
		msg = o.Status().String()
	}
	return status.Error(code, msg)
}

// ErrorToStatus converts an error returned from a pipeline. Validation
// failures keep their details; anything else becomes Internal.
func ErrorToStatus(err error) error {
	if err == nil {
		return nil
	}
	var vf *command.ValidationFailure
	if errors.As(err, &vf) {
		return invalidArgument(vf.Errors)
	}
	return status.Error(codes.Internal, "internal server error")
}

// invalidArgument builds an InvalidArgument status carrying a BadRequest
// with one violation per error, and an ErrorInfo listing the error codes
// in order.
func invalidArgument(errs []result.ValidationError) error {
	st := status.New(codes.InvalidArgument, "validation failed")

	br := &errdetails.BadRequest{}
	errorCodes := make([]string, 0, len(errs))
	for _, e := range errs {
		br.FieldViolations = append(br.FieldViolations, &errdetails.BadRequest_FieldViolation{
			Field:       e.Identifier,
			Description: e.ErrorMessage,
		})
		errorCodes = append(errorCodes, e.ErrorCode)
	}
	info := &errdetails.ErrorInfo{
		Reason:   "VALIDATION_FAILED",
		Domain:   errorDomain,
		Metadata: map[string]string{"codes": strings.Join(errorCodes, ",")},
	}

	detailed, err := st.WithDetails(br, info)
	if err != nil {
		return st.Err()
	}
	return detailed.Err()
}

// reply renders the outcome of a pipeline call.
func reply[T, V any](ctx context.Context, s *Server, res result.Result[T], err error, view func(T) V) (*V, error) {
	if err != nil {
		var vf *command.ValidationFailure
		if !errors.As(err, &vf) {
			s.logger.ErrorContext(ctx, "unhandled error", slog.String("error", err.Error()))
		}
		return nil, ErrorToStatus(err)
	}
	if value, ok := res.Get(); ok {
		out := view(value)
		return &out, nil
	}
	return nil, StatusFromResult(res)
}
