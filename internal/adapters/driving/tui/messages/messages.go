// Package messages defines Bubbletea message types for the chat TUI.
// Messages represent events and commands that flow through the Elm architecture.
package messages

import (
	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// SubmitRequested is a command to send text to the chat session.
type SubmitRequested struct {
	Text   string
	Intent domain.Intent
}

// ResponseReceived carries the assistant's answer back to the model.
// Exactly one of Message and Err is set.
type ResponseReceived struct {
	Message *domain.ChatMessage
	Err     error
}

// HasReport returns true when the answer carries a generated report.
func (r ResponseReceived) HasReport() bool {
	return r.Err == nil && r.Message != nil && r.Message.ReportDataURI != ""
}

// ReportSaved signals an attached report was written to disk.
type ReportSaved struct {
	Path string
	Err  error
}

// ModeChanged signals the chat mode was switched.
type ModeChanged struct {
	Mode domain.ChatMode
}

// SuggestionsLoaded carries the next canned questions.
type SuggestionsLoaded struct {
	Suggestions []string
}

// ErrorOccurred signals that an error happened.
type ErrorOccurred struct {
	Err error
}

// Quit signals the application should exit.
type Quit struct{}
