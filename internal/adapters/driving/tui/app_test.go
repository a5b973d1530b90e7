package tui

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/components/status"
	"github.com/custodia-labs/bluequery/internal/adapters/driving/tui/messages"
	"github.com/custodia-labs/bluequery/internal/core/domain"
)

func newTestApp(t *testing.T) (*App, *MockChatSession) {
	t.Helper()
	session := newMockSession()
	app, err := NewApp(NewPorts(session))
	require.NoError(t, err)
	app.SetDimensions(100, 30)
	return app, session
}

// collect runs cmd and flattens any batches into their messages.
func collect(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	batch, ok := msg.(tea.BatchMsg)
	if !ok {
		return []tea.Msg{msg}
	}
	var out []tea.Msg
	for _, c := range batch {
		out = append(out, collect(c)...)
	}
	return out
}

func findResponse(t *testing.T, msgs []tea.Msg) messages.ResponseReceived {
	t.Helper()
	for _, m := range msgs {
		if r, ok := m.(messages.ResponseReceived); ok {
			return r
		}
	}
	require.Fail(t, "no ResponseReceived in batch")
	return messages.ResponseReceived{}
}

func key(k tea.KeyType) tea.KeyMsg {
	return tea.KeyMsg{Type: k}
}

func TestNewApp_Success(t *testing.T) {
	app, err := NewApp(NewPorts(newMockSession()))

	require.NoError(t, err)
	require.NotNil(t, app)
	assert.False(t, app.Ready())
	assert.False(t, app.Thinking())
}

func TestNewApp_InvalidPorts(t *testing.T) {
	app, err := NewApp(&Ports{})

	assert.ErrorIs(t, err, ErrMissingChatSession)
	assert.Nil(t, app)
}

func TestNewApp_UsesSessionMode(t *testing.T) {
	session := newMockSession()
	session.SetMode(domain.ChatModeDeeper)

	app, err := NewApp(NewPorts(session))

	require.NoError(t, err)
	assert.Equal(t, domain.ChatModeDeeper, app.StatusBar().Mode())
}

func TestApp_Init(t *testing.T) {
	app, _ := newTestApp(t)

	assert.NotNil(t, app.Init())
}

func TestApp_View_NotReady(t *testing.T) {
	app, err := NewApp(NewPorts(newMockSession()))
	require.NoError(t, err)

	assert.Equal(t, "Initialising...", app.View())
}

func TestApp_Update_WindowSize(t *testing.T) {
	app, err := NewApp(NewPorts(newMockSession()))
	require.NoError(t, err)

	model, cmd := app.Update(tea.WindowSizeMsg{Width: 120, Height: 40})

	assert.Same(t, app, model)
	assert.Nil(t, cmd)
	assert.True(t, app.Ready())
	assert.Equal(t, 120, app.StatusBar().Width())
	assert.Contains(t, app.View(), "Blue Query")
}

func TestApp_View_EmptyConversation(t *testing.T) {
	app, _ := newTestApp(t)

	assert.Contains(t, app.View(), "press tab for a suggestion")
}

func TestApp_Send(t *testing.T) {
	app, session := newTestApp(t)
	app.Input().SetValue("hello floats")

	_, cmd := app.Update(key(tea.KeyEnter))

	require.NotNil(t, cmd)
	assert.True(t, app.Thinking())
	assert.Empty(t, app.Input().Value())
	assert.Equal(t, status.StateThinking, app.StatusBar().State())

	resp := findResponse(t, collect(cmd))
	require.NoError(t, resp.Err)
	assert.Equal(t, "echo: hello floats", resp.Message.Content)
	assert.Equal(t, []domain.Intent{domain.IntentAuto}, session.Intents())

	app.Update(resp)

	assert.False(t, app.Thinking())
	assert.Equal(t, status.StateReady, app.StatusBar().State())
	assert.Equal(t, 2, app.StatusBar().MessageCount())
	assert.Contains(t, app.View(), "hello floats")
}

func TestApp_Send_Empty(t *testing.T) {
	app, _ := newTestApp(t)
	app.Input().SetValue("   ")

	_, cmd := app.Update(key(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.False(t, app.Thinking())
}

func TestApp_Send_WhileThinking(t *testing.T) {
	app, _ := newTestApp(t)
	app.Input().SetValue("first")
	app.Update(key(tea.KeyEnter))
	app.Input().SetValue("second")

	_, cmd := app.Update(key(tea.KeyEnter))

	assert.Nil(t, cmd)
	assert.Equal(t, "second", app.Input().Value())
}

func TestApp_Report(t *testing.T) {
	app, session := newTestApp(t)
	app.Input().SetValue("float 2902746")

	_, cmd := app.Update(key(tea.KeyCtrlR))

	findResponse(t, collect(cmd))
	assert.Equal(t, []domain.Intent{domain.IntentReport}, session.Intents())
}

func TestApp_SubmitRequested(t *testing.T) {
	app, session := newTestApp(t)

	_, cmd := app.Update(messages.SubmitRequested{Text: "hi", Intent: domain.IntentChat})

	findResponse(t, collect(cmd))
	assert.Equal(t, []domain.Intent{domain.IntentChat}, session.Intents())
}

func TestApp_ResponseError(t *testing.T) {
	app, session := newTestApp(t)
	failure := &domain.UserError{Message: domain.MsgChatFailure, Err: domain.ErrUpstreamModel}
	session.ReplyFunc = func(string) (*domain.ChatMessage, error) { return nil, failure }
	app.Input().SetValue("hello")

	_, cmd := app.Update(key(tea.KeyEnter))
	resp := findResponse(t, collect(cmd))
	app.Update(resp)

	assert.ErrorIs(t, app.Err(), domain.ErrUpstreamModel)
	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Equal(t, domain.MsgChatFailure, app.StatusBar().Message())
	assert.Contains(t, app.View(), "Sorry, I encountered an error")
}

func TestApp_ResponseWithReport_SavesFile(t *testing.T) {
	app, session := newTestApp(t)
	dir := t.TempDir()
	app.WithReportDir(dir)
	doc := &domain.Document{Title: "Report", MIMEType: domain.MIMETypePDF, Data: []byte("%PDF-1.4 test")}
	session.ReplyFunc = func(string) (*domain.ChatMessage, error) {
		return &domain.ChatMessage{
			ID:            "0123456789abcdef",
			Role:          domain.RoleAssistant,
			Content:       "Here is your report.",
			ReportDataURI: doc.DataURI(),
		}, nil
	}
	app.Input().SetValue("report please")

	_, cmd := app.Update(key(tea.KeyCtrlR))
	resp := findResponse(t, collect(cmd))
	require.True(t, resp.HasReport())

	_, cmd = app.Update(resp)
	var saved *messages.ReportSaved
	for _, m := range collect(cmd) {
		if s, ok := m.(messages.ReportSaved); ok {
			saved = &s
		}
	}
	require.NotNil(t, saved)
	require.NoError(t, saved.Err)
	assert.Equal(t, filepath.Join(dir, "bluequery-report-01234567.pdf"), saved.Path)

	data, err := os.ReadFile(saved.Path)
	require.NoError(t, err)
	assert.Equal(t, doc.Data, data)

	app.Update(*saved)
	assert.Equal(t, status.StateNotice, app.StatusBar().State())
	assert.Contains(t, app.StatusBar().Message(), saved.Path)
	assert.Contains(t, app.View(), "(report attached)")
}

func TestApp_ReportSaved_Error(t *testing.T) {
	app, _ := newTestApp(t)

	app.Update(messages.ReportSaved{Err: errors.New("disk full")})

	assert.Equal(t, status.StateError, app.StatusBar().State())
	assert.Contains(t, app.StatusBar().Message(), "disk full")
}

func TestWriteReport_InvalidURI(t *testing.T) {
	_, err := writeReport(t.TempDir(), "id", "not a data uri")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestWriteReport_NoID(t *testing.T) {
	dir := t.TempDir()
	doc := &domain.Document{MIMEType: domain.MIMETypePNG, Data: []byte{1, 2, 3}}

	path, err := writeReport(dir, "", doc.DataURI())

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "bluequery-report.png"), path)
}

func TestApp_Suggest(t *testing.T) {
	app, _ := newTestApp(t)
	app.Update(messages.SuggestionsLoaded{Suggestions: []string{"What is ARGO?", "Show salinity"}})

	app.Update(key(tea.KeyTab))
	assert.Equal(t, "What is ARGO?", app.Input().Value())

	app.Update(key(tea.KeyTab))
	assert.Equal(t, "Show salinity", app.Input().Value())
}

func TestApp_Suggest_NoneLoaded(t *testing.T) {
	app, _ := newTestApp(t)
	app.Input().SetValue("typed")

	app.Update(key(tea.KeyTab))

	assert.Equal(t, "typed", app.Input().Value())
}

func TestApp_LoadSuggestions(t *testing.T) {
	app, _ := newTestApp(t)

	msgs := collect(app.loadSuggestions())

	require.Len(t, msgs, 1)
	loaded, ok := msgs[0].(messages.SuggestionsLoaded)
	require.True(t, ok)
	assert.Len(t, loaded.Suggestions, SuggestionCount)
}

func TestApp_ToggleMode(t *testing.T) {
	app, session := newTestApp(t)

	_, cmd := app.Update(key(tea.KeyCtrlD))
	msgs := collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, messages.ModeChanged{Mode: domain.ChatModeDeeper}, msgs[0])

	app.Update(msgs[0])
	assert.Equal(t, domain.ChatModeDeeper, session.Mode())
	assert.Equal(t, domain.ChatModeDeeper, app.StatusBar().Mode())

	_, cmd = app.Update(key(tea.KeyCtrlD))
	msgs = collect(cmd)
	require.Len(t, msgs, 1)
	assert.Equal(t, messages.ModeChanged{Mode: domain.ChatModeNormal}, msgs[0])
}

func TestApp_Quit(t *testing.T) {
	tests := []struct {
		name string
		msg  tea.Msg
	}{
		{"esc", key(tea.KeyEsc)},
		{"ctrl+c", key(tea.KeyCtrlC)},
		{"quit message", messages.Quit{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := newTestApp(t)

			_, cmd := app.Update(tt.msg)

			require.NotNil(t, cmd)
			assert.Equal(t, tea.QuitMsg{}, cmd())
		})
	}
}

func TestApp_ErrorOccurred(t *testing.T) {
	app, _ := newTestApp(t)
	err := errors.New("boom")

	app.Update(messages.ErrorOccurred{Err: err})

	assert.Equal(t, err, app.Err())
	assert.Equal(t, status.StateError, app.StatusBar().State())
}

func TestApp_Typing(t *testing.T) {
	app, _ := newTestApp(t)
	app.Input().Focus()

	app.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("a")})

	assert.Equal(t, "a", app.Input().Value())
}

func TestApp_Scroll(t *testing.T) {
	app, _ := newTestApp(t)

	_, up := app.Update(key(tea.KeyPgUp))
	_, down := app.Update(key(tea.KeyPgDown))

	assert.Nil(t, up)
	assert.Nil(t, down)
}
