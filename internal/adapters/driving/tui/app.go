package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/components/input"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/components/list"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/styles"
	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// SuggestionCount is how many suggested questions are shown at a time.
const SuggestionCount = 3

// chrome is the number of lines used by everything except the viewport.
const chrome = 5

// App is the chat TUI following the Elm architecture.
// It implements tea.Model for use with Bubbletea.
type App struct {
	ports  *Ports
	ctx    context.Context
	styles *styles.Styles
	keymap *keymap.KeyMap

	input       *input.MessageInput
	suggestions *list.Suggestions
	statusBar   *status.Bar
	viewport    viewport.Model
	spinner     spinner.Model
	renderer    *glamour.TermRenderer

	// reportDir is where attached reports are written.
	reportDir string

	thinking bool
	err      error

	width  int
	height int
	ready  bool
}

// Ensure App implements tea.Model.
var _ tea.Model = (*App)(nil)

// NewApp creates a new chat TUI with the given ports.
func NewApp(ports *Ports) (*App, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("creating app: %w", err)
	}

	s := styles.DefaultStyles()
	km := keymap.DefaultKeyMap()

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = lipgloss.NewStyle().Foreground(s.Theme().Primary)

	bar := status.NewBar(s, km)
	bar.SetMode(ports.Session.Mode())

	return &App{
		ports:       ports,
		ctx:         context.Background(),
		styles:      s,
		keymap:      km,
		input:       input.NewMessageInput(s),
		suggestions: list.NewSuggestions(s),
		statusBar:   bar,
		viewport:    viewport.New(80, 20),
		spinner:     sp,
		reportDir:   ".",
	}, nil
}

// WithContext sets the context used for chat requests.
func (a *App) WithContext(ctx context.Context) *App {
	a.ctx = ctx
	return a
}

// WithReportDir sets the directory attached reports are saved to.
func (a *App) WithReportDir(dir string) *App {
	if dir != "" {
		a.reportDir = dir
	}
	return a
}

// Init implements tea.Model.
func (a *App) Init() tea.Cmd {
	return tea.Batch(
		textinput.Blink,
		tea.SetWindowTitle("Blue Query"),
		a.loadSuggestions(),
	)
}

// Update implements tea.Model.
//
//nolint:gocyclo // central message handler
func (a *App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.SetDimensions(msg.Width, msg.Height)
		return a, nil

	case tea.KeyMsg:
		return a.handleKey(msg)

	case spinner.TickMsg:
		if !a.thinking {
			return a, nil
		}
		var cmd tea.Cmd
		a.spinner, cmd = a.spinner.Update(msg)
		return a, cmd

	case messages.SubmitRequested:
		return a, a.submit(msg.Text, msg.Intent)

	case messages.ResponseReceived:
		a.thinking = false
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage(domain.UserMessage(msg.Err))
		} else {
			a.err = nil
			a.statusBar.SetState(status.StateReady)
			a.statusBar.SetMessage("")
			if msg.HasReport() {
				cmds = append(cmds, a.saveReport(msg.Message))
			}
		}
		a.refresh()
		cmds = append(cmds, a.loadSuggestions())
		return a, tea.Batch(cmds...)

	case messages.ReportSaved:
		if msg.Err != nil {
			a.err = msg.Err
			a.statusBar.SetState(status.StateError)
			a.statusBar.SetMessage("Report could not be saved: " + msg.Err.Error())
		} else {
			a.statusBar.SetState(status.StateNotice)
			a.statusBar.SetMessage("Report saved to " + msg.Path)
		}
		return a, nil

	case messages.ModeChanged:
		a.ports.Session.SetMode(msg.Mode)
		a.statusBar.SetMode(msg.Mode)
		return a, nil

	case messages.SuggestionsLoaded:
		a.suggestions.SetItems(msg.Suggestions)
		return a, nil

	case messages.ErrorOccurred:
		a.err = msg.Err
		a.statusBar.SetState(status.StateError)
		a.statusBar.SetMessage(domain.UserMessage(msg.Err))
		return a, nil

	case messages.Quit:
		return a, tea.Quit
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

func (a *App) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	k := msg.String()
	switch {
	case keymap.Matches(k, a.keymap.Quit):
		return a, tea.Quit

	case keymap.Matches(k, a.keymap.Send):
		return a, a.send(domain.IntentAuto)

	case keymap.Matches(k, a.keymap.Report):
		return a, a.send(domain.IntentReport)

	case keymap.Matches(k, a.keymap.Suggest):
		if next := a.suggestions.Next(); next != "" {
			a.input.SetValue(next)
		}
		return a, nil

	case keymap.Matches(k, a.keymap.ToggleMode):
		mode := domain.ChatModeDeeper
		if a.ports.Session.Mode() == domain.ChatModeDeeper {
			mode = domain.ChatModeNormal
		}
		return a, func() tea.Msg { return messages.ModeChanged{Mode: mode} }

	case keymap.Matches(k, a.keymap.ScrollUp):
		a.viewport.PageUp()
		return a, nil

	case keymap.Matches(k, a.keymap.ScrollDown):
		a.viewport.PageDown()
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	return a, cmd
}

// send takes the typed text and starts a request. Requests are not
// queued: input is ignored while an answer is pending.
func (a *App) send(intent domain.Intent) tea.Cmd {
	text := strings.TrimSpace(a.input.Value())
	if text == "" || a.thinking {
		return nil
	}
	a.input.Reset()
	return a.submit(text, intent)
}

func (a *App) submit(text string, intent domain.Intent) tea.Cmd {
	a.thinking = true
	a.err = nil
	a.statusBar.SetState(status.StateThinking)
	a.statusBar.SetMessage("")

	session := a.ports.Session
	ctx := a.ctx
	ask := func() tea.Msg {
		reply, err := session.Submit(ctx, text, intent)
		if err != nil {
			logger.Debug("Chat submit failed: %v", err)
			return messages.ResponseReceived{Err: err}
		}
		return messages.ResponseReceived{Message: reply}
	}

	// The user message is logged by Submit; show it while waiting.
	a.refreshPending(text)
	return tea.Batch(ask, a.spinner.Tick)
}

func (a *App) loadSuggestions() tea.Cmd {
	session := a.ports.Session
	return func() tea.Msg {
		return messages.SuggestionsLoaded{Suggestions: session.Suggestions(SuggestionCount)}
	}
}

func (a *App) saveReport(msg *domain.ChatMessage) tea.Cmd {
	dir := a.reportDir
	uri := msg.ReportDataURI
	id := msg.ID
	return func() tea.Msg {
		path, err := writeReport(dir, id, uri)
		return messages.ReportSaved{Path: path, Err: err}
	}
}

// writeReport decodes a report data URI and writes it under dir.
func writeReport(dir, id, uri string) (string, error) {
	doc, err := domain.DocumentFromDataURI(uri)
	if err != nil {
		return "", err
	}
	if len(id) > 8 {
		id = id[:8]
	}
	name := "bluequery-report" + doc.Extension()
	if id != "" {
		name = "bluequery-report-" + id + doc.Extension()
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, doc.Data, 0o600); err != nil {
		return "", fmt.Errorf("writing report: %w", err)
	}
	return path, nil
}

// View implements tea.Model.
func (a *App) View() string {
	if !a.ready {
		return "Initialising..."
	}

	var b strings.Builder
	b.WriteString(a.styles.Title.Render("Blue Query"))
	b.WriteString("\n")
	b.WriteString(a.viewport.View())
	b.WriteString("\n")
	if a.thinking {
		b.WriteString(a.spinner.View() + " " + a.styles.Muted.Render("Thinking..."))
	} else {
		b.WriteString(a.suggestions.View())
	}
	b.WriteString("\n")
	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.statusBar.View())
	return b.String()
}

// Run starts the TUI application.
func (a *App) Run() error {
	p := tea.NewProgram(a, tea.WithAltScreen(), tea.WithContext(a.ctx))
	_, err := p.Run()
	return err
}

// SetDimensions resizes every component to the terminal size.
func (a *App) SetDimensions(width, height int) {
	a.width = width
	a.height = height
	a.ready = true

	vh := height - chrome
	if vh < 3 {
		vh = 3
	}
	a.viewport.Width = width
	a.viewport.Height = vh
	a.input.SetWidth(width)
	a.suggestions.SetWidth(width)
	a.statusBar.SetWidth(width)

	wrap := width - 4
	if wrap < 20 {
		wrap = 20
	}
	r, err := glamour.NewTermRenderer(glamour.WithAutoStyle(), glamour.WithWordWrap(wrap))
	if err != nil {
		logger.Debug("Markdown renderer unavailable: %v", err)
		r = nil
	}
	a.renderer = r
	a.refresh()
}

// refresh re-renders the conversation into the viewport.
func (a *App) refresh() {
	a.viewport.SetContent(a.renderConversation(""))
	a.viewport.GotoBottom()
	a.statusBar.SetMessageCount(len(a.ports.Session.Messages()))
}

// refreshPending renders the conversation plus a message not yet logged.
func (a *App) refreshPending(text string) {
	a.viewport.SetContent(a.renderConversation(text))
	a.viewport.GotoBottom()
}

func (a *App) renderConversation(pending string) string {
	msgs := a.ports.Session.Messages()
	if len(msgs) == 0 && pending == "" {
		return a.styles.Muted.Render("Ask a question about ARGO floats, or press tab for a suggestion.")
	}

	var b strings.Builder
	for _, m := range msgs {
		b.WriteString(a.renderMessage(m))
		b.WriteString("\n")
	}
	if pending != "" {
		b.WriteString(a.renderMessage(domain.ChatMessage{Role: domain.RoleUser, Content: pending}))
		b.WriteString("\n")
	}
	if a.err != nil && !a.thinking {
		b.WriteString(a.styles.Error.Render(domain.UserMessage(a.err)))
		b.WriteString("\n")
	}
	return b.String()
}

func (a *App) renderMessage(m domain.ChatMessage) string {
	if m.Role == domain.RoleUser {
		return a.styles.UserLabel.Render("You") + "\n" + m.Content + "\n"
	}

	label := a.styles.AssistantLabel.Render("Blue Query")
	body := m.Content
	if a.renderer != nil {
		if out, err := a.renderer.Render(m.Content); err == nil {
			body = strings.TrimRight(out, "\n")
		}
	}
	if m.ReportDataURI != "" {
		body += "\n" + a.styles.Success.Render("(report attached)")
	}
	return label + "\n" + body + "\n"
}

// Thinking reports whether an answer is pending.
func (a *App) Thinking() bool {
	return a.thinking
}

// Err returns the last error that occurred.
func (a *App) Err() error {
	return a.err
}

// Ready returns whether the app has received its dimensions.
func (a *App) Ready() bool {
	return a.ready
}

// Input returns the message input component.
func (a *App) Input() *input.MessageInput {
	return a.input
}

// StatusBar returns the status bar component.
func (a *App) StatusBar() *status.Bar {
	return a.statusBar
}

// Suggestions returns the suggestions component.
func (a *App) Suggestions() *list.Suggestions {
	return a.suggestions
}
