// Package status provides the status bar component for the chat TUI.
package status

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// State represents the current chat state for display.
type State string

const (
	StateReady    State = "ready"
	StateThinking State = "thinking"
	StateError    State = "error"
	StateNotice   State = "notice"
)

// Bar displays the chat mode, progress and keybinding hints.
type Bar struct {
	styles       *styles.Styles
	keymap       *keymap.KeyMap
	state        State
	mode         domain.ChatMode
	message      string
	messageCount int
	width        int
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateReady,
		mode:   domain.ChatModeNormal,
		width:  80,
	}
}

// Init initialises the status bar.
func (s *Bar) Init() tea.Cmd {
	return nil
}

// Update handles status bar messages.
func (s *Bar) Update(_ tea.Msg) (*Bar, tea.Cmd) {
	// Bar is passive, updated via Set methods
	return s, nil
}

// View renders the status bar.
func (s *Bar) View() string {
	left := s.renderLeft()
	right := s.renderRight()

	padding := s.width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 1 {
		padding = 1
	}

	return s.styles.StatusBar.Width(s.width).Render(
		left + strings.Repeat(" ", padding) + right,
	)
}

// renderLeft renders the mode badge and the current state.
func (s *Bar) renderLeft() string {
	badge := s.styles.Muted.Render("[normal]")
	if s.mode == domain.ChatModeDeeper {
		badge = s.styles.DeeperBadge.Render("[deeper]")
	}

	var text string
	switch s.state {
	case StateThinking:
		text = s.styles.Muted.Render("Thinking...")
	case StateError:
		if s.message != "" {
			text = s.styles.Error.Render(s.message)
		} else {
			text = s.styles.Error.Render("Error")
		}
	case StateNotice:
		text = s.styles.Success.Render(s.message)
	default:
		if s.messageCount > 0 {
			text = s.styles.Normal.Render(fmt.Sprintf("%d messages", s.messageCount))
		} else {
			text = s.styles.Muted.Render("Ready")
		}
	}
	return badge + " " + text
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Help.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMode sets the displayed chat mode.
func (s *Bar) SetMode(mode domain.ChatMode) {
	s.mode = mode
}

// Mode returns the displayed chat mode.
func (s *Bar) Mode() domain.ChatMode {
	return s.mode
}

// SetMessage sets the error or notice text.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}

// SetMessageCount sets the number of messages in the conversation.
func (s *Bar) SetMessageCount(count int) {
	s.messageCount = count
}

// MessageCount returns the displayed message count.
func (s *Bar) MessageCount() int {
	return s.messageCount
}

// SetWidth sets the status bar width.
func (s *Bar) SetWidth(width int) {
	s.width = width
}

// Width returns the current width.
func (s *Bar) Width() int {
	return s.width
}

// Clear resets the state and message, keeping mode and count.
func (s *Bar) Clear() {
	s.state = StateReady
	s.message = ""
}
