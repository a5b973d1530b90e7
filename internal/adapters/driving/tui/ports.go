// Package tui provides the interactive chat terminal user interface for
// bluequery. It implements a driving adapter following hexagonal
// architecture principles.
package tui

import (
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// Ports aggregates the driving port interfaces required by the TUI.
type Ports struct {
	// Session is the conversation the TUI drives.
	Session driving.ChatSession
}

// NewPorts creates a new Ports aggregate for the given session.
func NewPorts(session driving.ChatSession) *Ports {
	return &Ports{Session: session}
}

// Validate ensures all required ports are set.
func (p *Ports) Validate() error {
	if p == nil {
		return ErrInvalidPorts
	}
	if p.Session == nil {
		return ErrMissingChatSession
	}
	return nil
}
