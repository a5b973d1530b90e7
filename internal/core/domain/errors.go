package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrUnsupportedType indicates an unknown chart kind or provider.
	ErrUnsupportedType = errors.New("unsupported type")

	// AI Flow Errors.

	// ErrLLMUnavailable indicates the LLM service is not configured.
	ErrLLMUnavailable = errors.New("LLM service unavailable")

	// ErrUpstreamModel indicates the hosted model call failed
	// (network failure or non-2xx response).
	ErrUpstreamModel = errors.New("model request failed")

	// ErrModelOutputInvalid indicates the model answered but the answer
	// could not be parsed into the flow's output schema.
	ErrModelOutputInvalid = errors.New("model output invalid")

	// ErrRateLimited indicates the provider rejected the request for quota reasons.
	ErrRateLimited = errors.New("rate limited")

	// Research Backend Errors.

	// ErrResearchUnavailable indicates no research backend is configured.
	ErrResearchUnavailable = errors.New("research backend unavailable")

	// ErrResearchBackend indicates the research backend failed or answered
	// with an unexpected shape.
	ErrResearchBackend = errors.New("research backend error")

	// Report Errors.

	// ErrNoReportContent indicates a report was requested without content.
	ErrNoReportContent = errors.New("no report content")
)

// Uniform user-facing messages.
const (
	// MsgChatFailure is shown when any chat downstream call fails.
	MsgChatFailure = "Sorry, I encountered an error. Please check my configuration or try again later."

	// MsgDashboardChatFailure is shown when a dashboard chat call fails.
	MsgDashboardChatFailure = "Sorry, I encountered an error processing your dashboard query."
)

// UserError pairs a message that is safe to show to a user with the
// underlying cause. errors.Is and errors.As see through to the cause.
type UserError struct {
	Message string
	Err     error
}

// NewUserError wraps err with a user-facing message.
func NewUserError(message string, err error) *UserError {
	return &UserError{Message: message, Err: err}
}

// Error returns the user-facing message followed by the cause.
func (e *UserError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return e.Message + ": " + e.Err.Error()
}

// Unwrap returns the underlying cause.
func (e *UserError) Unwrap() error {
	return e.Err
}

// UserMessage extracts the user-facing message from err.
// Errors that carry none get the generic chat failure message.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var ue *UserError
	if errors.As(err, &ue) {
		return ue.Message
	}
	return MsgChatFailure
}
