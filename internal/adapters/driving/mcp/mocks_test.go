package mcp

import (
	"context"
	"io"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// mockChatService is a mock implementation of driving.ChatService.
type mockChatService struct {
	result *domain.ChatResult
	err    error
	query  domain.ChatQuery
}

func (m *mockChatService) Handle(_ context.Context, query domain.ChatQuery) (*domain.ChatResult, error) {
	m.query = query
	return m.result, m.err
}

func (m *mockChatService) DashboardChat(_ context.Context, _ domain.DashboardChatInput) (string, error) {
	return "", m.err
}

// mockFlowService is a mock implementation of driving.FlowService.
type mockFlowService struct {
	suggestion *domain.VisualizationSuggestion
	err        error
}

func (m *mockFlowService) Chat(_ context.Context, _ domain.ChatInput) (*domain.ChatAnswer, error) {
	return nil, m.err
}

func (m *mockFlowService) DashboardChat(_ context.Context, _ domain.DashboardChatInput) (*domain.ChatAnswer, error) {
	return nil, m.err
}

func (m *mockFlowService) FloatInsights(_ context.Context, _ domain.FloatInsightsInput) (*domain.FloatInsights, error) {
	return nil, m.err
}

func (m *mockFlowService) SuggestVisualizations(
	_ context.Context,
	_ domain.VisualizationInput,
) (*domain.VisualizationSuggestion, error) {
	return m.suggestion, m.err
}

func (m *mockFlowService) LearningSummary(_ context.Context, _ domain.LearningSummaryInput) (*domain.LearningSummary, error) {
	return nil, m.err
}

func (m *mockFlowService) ReportContent(_ context.Context, _ domain.ReportInput) (*domain.ReportContent, error) {
	return nil, m.err
}

// mockReportService is a mock implementation of driving.ReportService.
type mockReportService struct {
	report *driving.Report
	err    error
}

func (m *mockReportService) Generate(_ context.Context, _ string) (*driving.Report, error) {
	return m.report, m.err
}

func (m *mockReportService) Assemble(_ context.Context, _ *domain.ReportContent) (*domain.Document, error) {
	return nil, m.err
}

func (m *mockReportService) Snapshot(
	_ context.Context,
	_ []domain.ChartKind,
	_ uint32,
	_ domain.SnapshotFormat,
) (*domain.Document, error) {
	return nil, m.err
}

// mockDatasetService is a mock implementation of driving.DatasetService.
type mockDatasetService struct {
	data   domain.ChartData
	err    error
	kind   domain.ChartKind
	params domain.DatasetParams
}

func (m *mockDatasetService) Generate(
	_ context.Context,
	kind domain.ChartKind,
	params domain.DatasetParams,
) (domain.ChartData, error) {
	m.kind, m.params = kind, params
	return m.data, m.err
}

func (m *mockDatasetService) Dashboard(_ context.Context, _ uint32) (map[domain.ChartKind]domain.ChartData, error) {
	return nil, m.err
}

func (m *mockDatasetService) Kinds() []domain.ChartKind {
	return domain.AllChartKinds()
}

// mockFloatService is a mock implementation of driving.FloatService.
type mockFloatService struct {
	floats []domain.Float
	err    error
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

func (m *mockFloatService) Import(_ context.Context, _ io.Reader) (int, error) {
	return 0, m.err
}

func sampleFloats() []domain.Float {
	return []domain.Float{
		{ID: "2902755", Lat: 15.2, Lng: 65.1, Location: "Arabian Sea central", Sea: domain.SeaArabian},
		{ID: "2902756", Lat: 12.4, Lng: 88.3, Location: "Bay of Bengal south", Sea: domain.SeaBengal},
	}
}
