package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// errNotConfigured is returned by routes whose port was not wired.
var errNotConfigured = errors.New("service not configured")

// errorResponse is the body of every failed request.
type errorResponse struct {
	Error string `json:"error"`
}

// statusFor maps a domain error to an HTTP status code.
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput), errors.Is(err, domain.ErrNoReportContent):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUnsupportedType):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, domain.ErrUpstreamModel),
		errors.Is(err, domain.ErrModelOutputInvalid),
		errors.Is(err, domain.ErrResearchBackend):
		return http.StatusBadGateway
	case errors.Is(err, domain.ErrLLMUnavailable),
		errors.Is(err, domain.ErrResearchUnavailable),
		errors.Is(err, errNotConfigured):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// messageFor returns the text shown to the caller. Client errors carry
// their cause; rate limits and server errors only carry the user-facing
// message.
func messageFor(err error, status int) string {
	if status == http.StatusTooManyRequests {
		return domain.UserMessage(err)
	}
	if status < http.StatusInternalServerError {
		return err.Error()
	}
	if errors.Is(err, errNotConfigured) {
		return err.Error()
	}
	return domain.UserMessage(err)
}

// writeError writes err as a JSON error body with its mapped status.
func writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		logger.Error("Request failed: %v", err)
	}
	writeJSON(w, status, errorResponse{Error: messageFor(err, status)})
}

// writeJSON writes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Warn("Writing response: %v", err)
	}
}
