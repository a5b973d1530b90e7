package cli

import (
	"bytes"
	"context"
	"io"
	"os"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	coreservices "github.com/custodia-labs/bluequery/internal/core/services"
)

// MockChatService implements driving.ChatService for testing.
type MockChatService struct {
	HandleFunc func(ctx context.Context, query domain.ChatQuery) (*domain.ChatResult, error)
}

func (m *MockChatService) Handle(ctx context.Context, query domain.ChatQuery) (*domain.ChatResult, error) {
	if m.HandleFunc != nil {
		return m.HandleFunc(ctx, query)
	}
	return &domain.ChatResult{Intent: domain.IntentChat, Response: "Hello from Blue Query"}, nil
}

func (m *MockChatService) DashboardChat(_ context.Context, _ domain.DashboardChatInput) (string, error) {
	return "dashboard answer", nil
}

// MockFlowService implements driving.FlowService for testing.
type MockFlowService struct {
	InsightsFunc func(ctx context.Context, input domain.FloatInsightsInput) (*domain.FloatInsights, error)
	LearningFunc func(ctx context.Context, input domain.LearningSummaryInput) (*domain.LearningSummary, error)
}

func (m *MockFlowService) Chat(_ context.Context, _ domain.ChatInput) (*domain.ChatAnswer, error) {
	return &domain.ChatAnswer{Answer: "answer"}, nil
}

func (m *MockFlowService) DashboardChat(_ context.Context, _ domain.DashboardChatInput) (*domain.ChatAnswer, error) {
	return &domain.ChatAnswer{Answer: "answer"}, nil
}

func (m *MockFlowService) FloatInsights(ctx context.Context, input domain.FloatInsightsInput) (*domain.FloatInsights, error) {
	if m.InsightsFunc != nil {
		return m.InsightsFunc(ctx, input)
	}
	return &domain.FloatInsights{Insights: []string{"Warm surface layer", "Stable salinity"}}, nil
}

func (m *MockFlowService) SuggestVisualizations(
	_ context.Context,
	_ domain.VisualizationInput,
) (*domain.VisualizationSuggestion, error) {
	return &domain.VisualizationSuggestion{
		Summary: "Temperature is best shown over time.",
		SuggestedCharts: []domain.SuggestedChart{
			{ChartType: "Line", ChartComponent: domain.ComponentMonthlyTrendArea, Reason: "trend over time"},
		},
		DefaultChart: domain.ComponentMonthlyTrendArea,
		Caption:      "Surface temperature",
	}, nil
}

func (m *MockFlowService) LearningSummary(ctx context.Context, input domain.LearningSummaryInput) (*domain.LearningSummary, error) {
	if m.LearningFunc != nil {
		return m.LearningFunc(ctx, input)
	}
	return &domain.LearningSummary{Summary: "Explore salinity next."}, nil
}

func (m *MockFlowService) ReportContent(_ context.Context, _ domain.ReportInput) (*domain.ReportContent, error) {
	return sampleContent(), nil
}

// MockReportService implements driving.ReportService for testing.
type MockReportService struct {
	GenerateFunc func(ctx context.Context, query string) (*driving.Report, error)
	SnapshotFunc func(ctx context.Context, kinds []domain.ChartKind, seed uint32, format domain.SnapshotFormat) (*domain.Document, error)
}

func (m *MockReportService) Generate(ctx context.Context, query string) (*driving.Report, error) {
	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, query)
	}
	return &driving.Report{Content: sampleContent(), Document: samplePDF()}, nil
}

func (m *MockReportService) Assemble(_ context.Context, _ *domain.ReportContent) (*domain.Document, error) {
	return samplePDF(), nil
}

func (m *MockReportService) Snapshot(
	ctx context.Context,
	kinds []domain.ChartKind,
	seed uint32,
	format domain.SnapshotFormat,
) (*domain.Document, error) {
	if m.SnapshotFunc != nil {
		return m.SnapshotFunc(ctx, kinds, seed, format)
	}
	return &domain.Document{Title: "Dashboard", MIMEType: domain.MIMETypePNG, Data: []byte("png"), Pages: 1}, nil
}

// MockFloatService implements driving.FloatService for testing.
type MockFloatService struct {
	Floats   []domain.Float
	Imported string
}

func (m *MockFloatService) List(_ context.Context) ([]domain.Float, error) {
	return m.Floats, nil
}

func (m *MockFloatService) Get(_ context.Context, id string) (*domain.Float, error) {
	for i := range m.Floats {
		if m.Floats[i].ID == id {
			return &m.Floats[i], nil
		}
	}
	return nil, domain.ErrNotFound
}

func (m *MockFloatService) Import(_ context.Context, r io.Reader) (int, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return 0, err
	}
	m.Imported = string(data)
	return strings.Count(strings.TrimSpace(m.Imported), "\n"), nil
}

// MockSettingsService implements driving.SettingsService for testing.
type MockSettingsService struct {
	Settings    domain.AppSettings
	ValidateErr error
	PingErr     error
}

func (m *MockSettingsService) Get() (*domain.AppSettings, error) {
	s := m.Settings
	return &s, nil
}

func (m *MockSettingsService) Save(settings *domain.AppSettings) error {
	m.Settings = *settings
	return nil
}

func (m *MockSettingsService) SetLLMProvider(provider domain.AIProvider, model, apiKey string) error {
	m.Settings.LLM.Provider = provider
	m.Settings.LLM.Model = model
	m.Settings.LLM.APIKey = apiKey
	return nil
}

func (m *MockSettingsService) SetResearch(url string, contract domain.ResearchContract) error {
	m.Settings.Research.URL = url
	m.Settings.Research.Contract = contract
	return nil
}

func (m *MockSettingsService) SetStorage(backend domain.StorageBackend, seedFile string) error {
	m.Settings.Storage.Backend = backend
	m.Settings.Storage.SeedFile = seedFile
	return nil
}

func (m *MockSettingsService) Validate() error {
	return m.ValidateErr
}

func (m *MockSettingsService) GetDefaults() domain.AppSettings {
	return domain.DefaultAppSettings()
}

func (m *MockSettingsService) ValidateLLMConfig() error {
	return m.PingErr
}

// MockWatcher implements Runner for testing.
type MockWatcher struct {
	runs atomic.Int32
}

func (m *MockWatcher) Run(ctx context.Context) error {
	m.runs.Add(1)
	<-ctx.Done()
	return nil
}

func sampleContent() *domain.ReportContent {
	return &domain.ReportContent{
		Title:           "Arabian Sea Overview",
		Introduction:    "Float activity in the Arabian Sea.",
		KeyInsights:     []string{"Surface waters are warming", "Salinity is stable"},
		Recommendations: "Deploy more floats.",
	}
}

func samplePDF() *domain.Document {
	return &domain.Document{Title: "Arabian Sea Overview", MIMEType: domain.MIMETypePDF, Data: []byte("%PDF-1.4"), Pages: 2}
}

func sampleFloats() []domain.Float {
	return []domain.Float{
		{ID: "2902755", Lat: 15.2, Lng: 65.1, Location: "Arabian Sea central", Sea: domain.SeaArabian},
		{ID: "2902756", Lat: 12.4, Lng: 88.3, Location: "Bay of Bengal south", Sea: domain.SeaBengal},
	}
}

// setupTestServices injects mock services and restores the package state
// when the test ends.
func setupTestServices(t *testing.T) *Services {
	t.Helper()
	fixed := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)
	s := &Services{
		Chat:     &MockChatService{},
		Flows:    &MockFlowService{},
		Reports:  &MockReportService{},
		Datasets: coreservices.NewDatasetService(func() time.Time { return fixed }),
		Floats:   &MockFloatService{Floats: sampleFloats()},
		Settings: &MockSettingsService{Settings: domain.DefaultAppSettings()},
	}
	SetServices(s)
	t.Cleanup(resetCLI)
	return s
}

// resetCLI restores services and flag variables between tests.
func resetCLI() {
	services, bootstrap, cleanup = nil, nil, nil
	verbose, configDir = false, ""
	askIntent, askMode, askOutput, askRaw, askJSON = "", "normal", "", false, false
	chatMode, chatReportDir = "normal", "."
	reportOutput, reportJSON = "", false
	snapshotKinds, snapshotSeed, snapshotFormat, snapshotOutput = nil, 0, "png", ""
	insightsSummary, insightsJSON, visualizeJSON, learnJSON = "", false, false, false
	dataSeed, dataCount, dataDashboard = 0, 0, false
	floatsJSON = false
	serveAddr = ""
	rootCmd.SetArgs(nil)
	rootCmd.SetIn(nil)
	rootCmd.SetOut(nil)
	rootCmd.SetErr(nil)
}

// execute runs the root command with args and stdin, returning the output.
func execute(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.ExecuteContext(context.Background())
	return buf.String(), err
}

func requireFile(t *testing.T, path string, want []byte) {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, want, data)
}

// syncBuffer is a bytes.Buffer safe for concurrent writers.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}
