package services

import (
	"context"
	"sync"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// mockLLMService implements driven.LLMService for testing.
type mockLLMService struct {
	mu       sync.Mutex
	response string
	err      error

	calls    int
	prompts  []string
	messages [][]driven.ChatMessage
	genOpts  []driven.GenerateOptions
	chatOpts []driven.ChatOptions
}

func (m *mockLLMService) Generate(_ context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.prompts = append(m.prompts, prompt)
	m.genOpts = append(m.genOpts, opts)
	return m.response, m.err
}

func (m *mockLLMService) Chat(_ context.Context, msgs []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls++
	m.messages = append(m.messages, msgs)
	m.chatOpts = append(m.chatOpts, opts)
	return m.response, m.err
}

func (m *mockLLMService) ModelName() string { return "mock-llm" }

func (m *mockLLMService) Ping(_ context.Context) error { return nil }

func (m *mockLLMService) Close() error { return nil }

func (m *mockLLMService) callCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.calls
}

// mockPromptStore implements driven.PromptStore for testing.
type mockPromptStore struct {
	prompts map[string]string
}

func newMockPromptStore() *mockPromptStore {
	return &mockPromptStore{prompts: map[string]string{
		driven.PromptChat:            "Facts:{{range .Facts}} {{.Name}}{{end}}",
		driven.PromptDashboardChat:   "Dashboard Mode: {{.Mode}}. User Query: {{quote .Query}}; Context: {{.Context}}",
		driven.PromptFloatInsights:   "Float {{.FloatID}}: {{.Summary}}",
		driven.PromptVisualization:   "Query {{quote .Query}} components {{range .Components}}{{.}},{{end}}",
		driven.PromptLearningSummary: "Activity: {{.InteractionData}}",
		driven.PromptReportContent:   "Report on {{quote .Query}}",
	}}
}

func (m *mockPromptStore) Load(name string) (string, error) {
	p, ok := m.prompts[name]
	if !ok {
		return "", domain.ErrNotFound
	}
	return p, nil
}

func (m *mockPromptStore) Reload() {}

// mockFlowService implements driving.FlowService for testing.
type mockFlowService struct {
	mu sync.Mutex

	chat     *domain.ChatAnswer
	learning *domain.LearningSummary
	report   *domain.ReportContent
	err      error

	chatInputs     []domain.ChatInput
	learningInputs []domain.LearningSummaryInput
	reportInputs   []domain.ReportInput
	dashboardCalls int
}

var _ driving.FlowService = (*mockFlowService)(nil)

func (m *mockFlowService) Chat(_ context.Context, in domain.ChatInput) (*domain.ChatAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.chatInputs = append(m.chatInputs, in)
	if m.err != nil {
		return nil, m.err
	}
	return m.chat, nil
}

func (m *mockFlowService) DashboardChat(_ context.Context, _ domain.DashboardChatInput) (*domain.ChatAnswer, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dashboardCalls++
	if m.err != nil {
		return nil, m.err
	}
	return m.chat, nil
}

func (m *mockFlowService) FloatInsights(_ context.Context, _ domain.FloatInsightsInput) (*domain.FloatInsights, error) {
	return nil, m.err
}

func (m *mockFlowService) SuggestVisualizations(
	_ context.Context,
	_ domain.VisualizationInput,
) (*domain.VisualizationSuggestion, error) {
	return nil, m.err
}

func (m *mockFlowService) LearningSummary(_ context.Context, in domain.LearningSummaryInput) (*domain.LearningSummary, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.learningInputs = append(m.learningInputs, in)
	if m.err != nil {
		return nil, m.err
	}
	return m.learning, nil
}

func (m *mockFlowService) ReportContent(_ context.Context, in domain.ReportInput) (*domain.ReportContent, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.reportInputs = append(m.reportInputs, in)
	if m.err != nil {
		return nil, m.err
	}
	return m.report, nil
}

func (m *mockFlowService) totalCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.chatInputs) + len(m.learningInputs) + len(m.reportInputs) + m.dashboardCalls
}

// mockReportRenderer implements driven.ReportRenderer for testing.
type mockReportRenderer struct {
	err       error
	rendered  []*domain.ReportContent
	generated []time.Time
}

func (m *mockReportRenderer) Render(
	_ context.Context,
	content *domain.ReportContent,
	generated time.Time,
) (*domain.Document, error) {
	m.rendered = append(m.rendered, content)
	m.generated = append(m.generated, generated)
	if m.err != nil {
		return nil, m.err
	}
	return &domain.Document{
		Title:    content.Title,
		MIMEType: domain.MIMETypePDF,
		Data:     []byte("%PDF-1.3 " + content.Title),
		Pages:    1,
	}, nil
}

// mockSnapshotRenderer implements driven.SnapshotRenderer for testing.
type mockSnapshotRenderer struct {
	title  string
	panels []domain.ChartData
	format domain.SnapshotFormat
}

func (m *mockSnapshotRenderer) Render(
	_ context.Context,
	title string,
	panels []domain.ChartData,
	format domain.SnapshotFormat,
) (*domain.Document, error) {
	m.title, m.panels, m.format = title, panels, format
	return &domain.Document{Title: title, MIMEType: domain.MIMETypePNG, Data: []byte{0x89, 'P', 'N', 'G'}, Pages: 1}, nil
}

// mockResearchClient implements driven.ResearchClient for testing.
type mockResearchClient struct {
	answer  string
	err     error
	queries []string
}

func (m *mockResearchClient) Ask(_ context.Context, query string) (string, error) {
	m.queries = append(m.queries, query)
	return m.answer, m.err
}

// mockCanned implements driven.CannedAnswers for testing.
type mockCanned struct {
	questions []string
	answers   map[string]string
}

func (m *mockCanned) Lookup(q string) (string, bool) {
	a, ok := m.answers[q]
	return a, ok
}

func (m *mockCanned) Questions() []string { return m.questions }

// mockAIValidator implements driven.AIConfigValidator for testing.
type mockAIValidator struct {
	err    error
	config *domain.LLMSettings
}

func (m *mockAIValidator) ValidateLLM(cfg *domain.LLMSettings) error {
	m.config = cfg
	return m.err
}

// mockSeedSource implements driven.SeedSource for testing.
type mockSeedSource struct {
	floats []domain.Float
	err    error
	loads  int
}

func (m *mockSeedSource) Load() ([]domain.Float, error) {
	m.loads++
	return m.floats, m.err
}
