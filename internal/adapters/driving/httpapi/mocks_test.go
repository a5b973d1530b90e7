package httpapi

import (
	"context"
	"io"
	"sync"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	result    *domain.ChatResult
	answer    string
	err       error
	query     domain.ChatQuery
	dashboard domain.DashboardChatInput
}

func (m *mockChatService) Handle(_ context.Context, query domain.ChatQuery) (*domain.ChatResult, error) {
	m.query = query
	return m.result, m.err
}

func (m *mockChatService) DashboardChat(_ context.Context, input domain.DashboardChatInput) (string, error) {
	m.dashboard = input
	return m.answer, m.err
}

// mockFlowService is a mock implementation of driving.FlowService.
type mockFlowService struct {
	insights   *domain.FloatInsights
	suggestion *domain.VisualizationSuggestion
	summary    *domain.LearningSummary
	err        error

	insightsInput domain.FloatInsightsInput
	learningInput domain.LearningSummaryInput
}

func (m *mockFlowService) Chat(_ context.Context, _ domain.ChatInput) (*domain.ChatAnswer, error) {
	return nil, m.err
}

func (m *mockFlowService) DashboardChat(_ context.Context, _ domain.DashboardChatInput) (*domain.ChatAnswer, error) {
	return nil, m.err
}

func (m *mockFlowService) FloatInsights(_ context.Context, input domain.FloatInsightsInput) (*domain.FloatInsights, error) {
	m.insightsInput = input
	return m.insights, m.err
}

func (m *mockFlowService) SuggestVisualizations(
	_ context.Context,
	_ domain.VisualizationInput,
) (*domain.VisualizationSuggestion, error) {
	return m.suggestion, m.err
}

func (m *mockFlowService) LearningSummary(_ context.Context, input domain.LearningSummaryInput) (*domain.LearningSummary, error) {
	m.learningInput = input
	return m.summary, m.err
}

func (m *mockFlowService) ReportContent(_ context.Context, _ domain.ReportInput) (*domain.ReportContent, error) {
	return nil, m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	report   *driving.Report
	snapshot *domain.Document
	err      error

	kinds  []domain.ChartKind
	seed   uint32
	format domain.SnapshotFormat
}

func (m *mockReportService) Generate(_ context.Context, _ string) (*driving.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) Assemble(_ context.Context, _ *domain.ReportContent) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockReportService) Snapshot(
	_ context.Context,
	kinds []domain.ChartKind,
	seed uint32,
	format domain.SnapshotFormat,
) (*domain.Document, error) {
	m.kinds, m.seed, m.format = kinds, seed, format
	return m.snapshot, m.err
}

// mockDatasetService is a mock implementation of driving.DatasetService.
type mockDatasetService struct {
	data   domain.ChartData
	err    error
	kind   domain.ChartKind
	params domain.DatasetParams
	seed   uint32
}

func (m *mockDatasetService) Generate(
	_ context.Context,
	kind domain.ChartKind,
	params domain.DatasetParams,
) (domain.ChartData, error) {
	m.kind, m.params = kind, params
	return m.data, m.err
}

func (m *mockDatasetService) Dashboard(_ context.Context, seed uint32) (map[domain.ChartKind]domain.ChartData, error) {
	m.seed = seed
	if m.err != nil {
		return nil, m.err
	}
	return map[domain.ChartKind]domain.ChartData{m.data.Kind(): m.data}, nil
}

func (m *mockDatasetService) Kinds() []domain.ChartKind {
	return domain.AllChartKinds()
}

// mockFloatService is a mock implementation of driving.FloatService.
type mockFloatService struct {
	floats   []domain.Float
	err      error
	imported string
}

func (m *mockFloatService) List(_ context.Context) ([]domain.Float, error) {
	return m.floats, m.err
}

func (m *mockFloatService) Get(_ context.Context, id string) (*domain.Float, error) {
	if m.err != nil {
		return nil, m.err
	}
	for i := range m.floats {
		if m.floats[i].ID == id {
			return &m.floats[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *mockFloatService) Import(_ context.Context, r io.Reader) (int, error) {
	if m.err != nil {
		return 0, m.err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.imported = string(data)
	return 2, nil
}

// mockSession is a mock implementation of driving.ChatSession that echoes
// queries back.
type mockSession struct {
	mu       sync.Mutex
	mode     domain.ChatMode
	messages []domain.ChatMessage
	err      error
}

func (m *mockSession) Submit(_ context.Context, text string, _ domain.Intent) (*domain.ChatMessage, error) {
	if text == "" {
		return nil, domain.ErrInvalidInput
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	m.messages = append(m.messages, domain.ChatMessage{ID: "u", Role: domain.RoleUser, Content: text})
	msg := domain.ChatMessage{ID: "a", Role: domain.RoleAssistant, Content: string(m.mode) + ": " + text}
	m.messages = append(m.messages, msg)
	return &msg, nil
}

func (m *mockSession) setErr(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

func (m *mockSession) SetMode(mode domain.ChatMode) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.mode = mode
}

func (m *mockSession) Mode() domain.ChatMode {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.mode
}

func (m *mockSession) Messages() []domain.ChatMessage {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]domain.ChatMessage(nil), m.messages...)
}

func (m *mockSession) Suggestions(n int) []string {
	all := []string{"What is the temperature?", "What is salinity?", "Show me floats", "What is pH?"}
	if n > len(all) {
		n = len(all)
	}
	return all[:n]
}

func sampleFloats() []domain.Float {
	return []domain.Float{
		{ID: "2902755", Lat: 15.2, Lng: 65.1, Location: "Arabian Sea central", Sea: domain.SeaArabian},
		{ID: "2902756", Lat: 12.4, Lng: 88.3, Location: "Bay of Bengal south", Sea: domain.SeaBengal},
	}
}
