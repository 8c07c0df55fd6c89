package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"

	"github.com/mvaleed/catalog/internal/command"
	"github.com/mvaleed/catalog/internal/result"
)

// errorResponse is the body of every failed request.
type errorResponse struct {
	Status           string                   `json:"status"`
	Errors           []string                 `json:"errors,omitempty"`
	ValidationErrors []result.ValidationError `json:"validationErrors,omitempty"`
}

// statusCodes maps result statuses to HTTP status codes.
var statusCodes = map[result.Status]int{
	result.StatusOK:           http.StatusOK,
	result.StatusInvalid:      http.StatusBadRequest,
	result.StatusNotFound:     http.StatusNotFound,
	result.StatusUnauthorized: http.StatusUnauthorized,
	result.StatusForbidden:    http.StatusForbidden,
	result.StatusError:        http.StatusInternalServerError,
}

// HTTPStatus returns the response code for a result status.
func HTTPStatus(s result.Status) int {
	if code, ok := statusCodes[s]; ok {
		return code
	}
	return http.StatusInternalServerError
}

// respond renders the outcome of a pipeline call. Ok results are converted
// with view and written with okStatus.
func respond[T, V any](s *Server, w http.ResponseWriter, r *http.Request, res result.Result[T], err error, okStatus int, view func(T) V) {
	if err != nil {
		s.writeFailure(w, r, err)
		return
	}
	if value, ok := res.Get(); ok {
		s.writeJSON(w, okStatus, view(value))
		return
	}
	s.writeJSON(w, HTTPStatus(res.Status()), errorResponse{
		Status:           res.Status().String(),
		Errors:           res.Errors(),
		ValidationErrors: res.ValidationErrors(),
	})
}

// writeFailure renders an error returned from a pipeline. Only validation
// failures expose detail.
func (s *Server) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	var vf *command.ValidationFailure
	if errors.As(err, &vf) {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Status:           result.StatusInvalid.String(),
			ValidationErrors: vf.Errors,
		})
		return
	}

	s.logger.ErrorContext(r.Context(), "unhandled error",
		slog.String("error", err.Error()),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)
	s.writeJSON(w, http.StatusInternalServerError, errorResponse{
		Status: result.StatusError.String(),
		Errors: []string{"internal server error"},
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		s.logger.Error("failed to encode response", slog.String("error", err.Error()))
	}
}

// readJSON decodes the request body into v. A malformed body is reported
// in the same shape as a validation failure.
func (s *Server) readJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeJSON(w, http.StatusBadRequest, errorResponse{
			Status: result.StatusInvalid.String(),
			ValidationErrors: []result.ValidationError{
				result.Field("Body").Violation("InvalidFormat", "request body must be valid JSON"),
			},
		})
		return false
	}
	return true
}
