// Package list provides list display components for the chat TUI.
package list

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/styles"
)

// Suggestions displays the canned questions a user can pick from.
type Suggestions struct {
	items    []string
	selected int
	styles   *styles.Styles
	width    int
}

// NewSuggestions creates a new suggestion list component.
func NewSuggestions(s *styles.Styles) *Suggestions {
	if s == nil {
		s = styles.DefaultStyles()
	}

	return &Suggestions{
		selected: -1,
		styles:   s,
		width:    80,
	}
}

// Init initialises the suggestion list.
func (l *Suggestions) Init() tea.Cmd {
	return nil
}

// Update is a no-op; the list is driven through Next and SetItems.
func (l *Suggestions) Update(_ tea.Msg) (*Suggestions, tea.Cmd) {
	return l, nil
}

// View renders the suggestions on a single wrapped block.
func (l *Suggestions) View() string {
	if len(l.items) == 0 {
		return ""
	}

	parts := make([]string, 0, len(l.items))
	for i, item := range l.items {
		label := fmt.Sprintf("%d. %s", i+1, truncate(item, l.width/len(l.items)))
		if i == l.selected {
			parts = append(parts, l.styles.Selected.Render(label))
		} else {
			parts = append(parts, l.styles.Muted.Render(label))
		}
	}
	return l.styles.Subtitle.Render("Try: ") + strings.Join(parts, "  ")
}

// SetItems replaces the suggestions and clears the selection.
func (l *Suggestions) SetItems(items []string) {
	l.items = items
	l.selected = -1
}

// Items returns the current suggestions.
func (l *Suggestions) Items() []string {
	return l.items
}

// Next advances the selection, wrapping around, and returns the
// selected suggestion. It returns "" when the list is empty.
func (l *Suggestions) Next() string {
	if len(l.items) == 0 {
		return ""
	}
	l.selected = (l.selected + 1) % len(l.items)
	return l.items[l.selected]
}

// Selected returns the index of the selected suggestion, or -1.
func (l *Suggestions) Selected() int {
	return l.selected
}

// SetWidth sets the component width.
func (l *Suggestions) SetWidth(width int) {
	l.width = width
}

// Count returns the number of suggestions.
func (l *Suggestions) Count() int {
	return len(l.items)
}

// truncate shortens s to at most n runes, marking the cut with "...".
func truncate(s string, n int) string {
	if n < 8 {
		n = 8
	}
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
