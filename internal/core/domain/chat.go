package domain

import (
	"fmt"
	"strings"
)

// Role identifies who authored a chat message.
type Role string

// Chat roles.
const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// IsValid returns true if the role is recognised.
func (r Role) IsValid() bool {
	return r == RoleUser || r == RoleAssistant
}

// ChatMessage is a single entry in a conversation log.
type ChatMessage struct {
	// ID uniquely identifies the message within a session.
	ID string `json:"id"`

	// Role is the author of the message.
	Role Role `json:"role"`

	// Content is the message text (Markdown for assistant messages).
	Content string `json:"content"`

	// ReportDataURI is set when the assistant attached a generated report.
	ReportDataURI string `json:"reportDataUri,omitempty"`
}

// ChatTurn is a prior exchange forwarded to the model as history.
type ChatTurn struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}

// MaxHistoryTurns is the number of prior turns forwarded to the model.
const MaxHistoryTurns = 5

// ChatMode selects where a chat query is answered.
type ChatMode string

// Chat modes.
const (
	// ChatModeNormal answers with the local model flows.
	ChatModeNormal ChatMode = "normal"

	// ChatModeDeeper forwards the query verbatim to the research backend.
	ChatModeDeeper ChatMode = "deeper"
)

// IsValid returns true if the mode is recognised. The empty mode is
// treated as normal.
func (m ChatMode) IsValid() bool {
	switch m {
	case "", ChatModeNormal, ChatModeDeeper:
		return true
	default:
		return false
	}
}

// ParseChatMode converts a string into a ChatMode.
func ParseChatMode(s string) (ChatMode, error) {
	m := ChatMode(strings.ToLower(strings.TrimSpace(s)))
	if m == "" {
		return ChatModeNormal, nil
	}
	if !m.IsValid() {
		return "", fmt.Errorf("%w: unknown chat mode %q", ErrInvalidInput, s)
	}
	return m, nil
}

// ChatQuery is a single user submission to the router.
type ChatQuery struct {
	// Text is the raw user query.
	Text string `json:"query"`

	// History holds prior turns, oldest first.
	History []ChatTurn `json:"history,omitempty"`

	// Intent is the caller-selected intent. IntentAuto falls back to
	// keyword detection on Text.
	Intent Intent `json:"intent,omitempty"`

	// Mode selects local flows or the research backend.
	Mode ChatMode `json:"mode,omitempty"`
}

// Validate checks the query is answerable.
func (q ChatQuery) Validate() error {
	if strings.TrimSpace(q.Text) == "" {
		return fmt.Errorf("%w: query is required", ErrInvalidInput)
	}
	if !q.Mode.IsValid() {
		return fmt.Errorf("%w: unknown chat mode %q", ErrInvalidInput, q.Mode)
	}
	if !q.Intent.IsValid() {
		return fmt.Errorf("%w: unknown intent %q", ErrInvalidInput, q.Intent)
	}
	for i, turn := range q.History {
		if !turn.Role.IsValid() {
			return fmt.Errorf("%w: history[%d] has unknown role %q", ErrInvalidInput, i, turn.Role)
		}
	}
	return nil
}

// RecentHistory returns at most MaxHistoryTurns of the newest turns.
func (q ChatQuery) RecentHistory() []ChatTurn {
	if len(q.History) <= MaxHistoryTurns {
		return q.History
	}
	return q.History[len(q.History)-MaxHistoryTurns:]
}

// ChatResult is the router's answer to a ChatQuery.
type ChatResult struct {
	// Intent is the intent that was actually served.
	Intent Intent `json:"intent"`

	// Response is the assistant text (Markdown).
	Response string `json:"response"`

	// Report is set when the report flow produced a document.
	Report *Document `json:"-"`
}

// ReportDataURI returns the attached report as a data URI, or "".
func (r *ChatResult) ReportDataURI() string {
	if r == nil || r.Report == nil {
		return ""
	}
	return r.Report.DataURI()
}

// DashboardMode is the dashboard a dashboard chat query comes from.
type DashboardMode string

// Dashboard modes.
const (
	DashboardDescriptive DashboardMode = "descriptive"
	DashboardPredictive  DashboardMode = "predictive"
)

// IsValid returns true if the dashboard mode is recognised.
func (m DashboardMode) IsValid() bool {
	return m == DashboardDescriptive || m == DashboardPredictive
}
