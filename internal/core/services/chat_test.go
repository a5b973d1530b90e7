package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

func newTestChatService(flows *mockFlowService, research *mockResearchClient) *ChatService {
	reports := NewReportService(flows, &mockReportRenderer{}, nil, nil,
		WithClock(func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }))
	if research == nil {
		return NewChatService(flows, reports, nil)
	}
	return NewChatService(flows, reports, research)
}

func sampleReport() *domain.ReportContent {
	return &domain.ReportContent{
		Title:           "Temperature Anomalies",
		Introduction:    "Intro.",
		KeyInsights:     []string{"A", "B", "C"},
		Recommendations: "Keep monitoring.",
	}
}

func TestChatService_DefaultConversation(t *testing.T) {
	flows := &mockFlowService{chat: &domain.ChatAnswer{Answer: "An Argo float is an autonomous profiler."}}
	svc := newTestChatService(flows, nil)

	result, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "What is an Argo float?"})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentChat, result.Intent)
	assert.NotEmpty(t, result.Response)
	assert.Empty(t, result.ReportDataURI())
	require.Len(t, flows.chatInputs, 1)
	assert.Equal(t, "What is an Argo float?", flows.chatInputs[0].Query)
	assert.Empty(t, flows.reportInputs)
}

func TestChatService_ReportKeyword(t *testing.T) {
	flows := &mockFlowService{report: sampleReport()}
	svc := newTestChatService(flows, nil)

	result, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "Generate a report on temperature anomalies"})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentReport, result.Intent)
	assert.Equal(t, ReportReadyMessage, result.Response)
	uri := result.ReportDataURI()
	assert.True(t, strings.HasPrefix(uri, "data:application/pdf;base64,"))
	assert.Greater(t, len(uri), len("data:application/pdf;base64,"))
	assert.Empty(t, flows.chatInputs)
}

func TestChatService_LearningSummary(t *testing.T) {
	flows := &mockFlowService{learning: &domain.LearningSummary{Summary: "Explore oxygen minimum zones."}}
	svc := newTestChatService(flows, nil)

	result, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "Give me a Learning SUMMARY"})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentLearningSummary, result.Intent)
	assert.Equal(t, "Explore oxygen minimum zones.", result.Response)
	require.Len(t, flows.learningInputs, 1)
	assert.Equal(t, `User asked: "give me a learning summary"`, flows.learningInputs[0].InteractionData)
}

func TestChatService_ReportKeywordWinsOverSummary(t *testing.T) {
	flows := &mockFlowService{report: sampleReport()}
	svc := newTestChatService(flows, nil)

	result, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "summary report please"})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentReport, result.Intent)
	assert.Empty(t, flows.learningInputs)
}

func TestChatService_ExplicitIntentWins(t *testing.T) {
	flows := &mockFlowService{chat: &domain.ChatAnswer{Answer: "ok"}}
	svc := newTestChatService(flows, nil)

	result, err := svc.Handle(context.Background(), domain.ChatQuery{
		Text:   "What does a report on salinity usually contain?",
		Intent: domain.IntentChat,
	})

	require.NoError(t, err)
	assert.Equal(t, domain.IntentChat, result.Intent)
	assert.Empty(t, flows.reportInputs)
}

func TestChatService_TruncatesHistory(t *testing.T) {
	flows := &mockFlowService{chat: &domain.ChatAnswer{Answer: "ok"}}
	svc := newTestChatService(flows, nil)

	var history []domain.ChatTurn
	for i := 0; i < 8; i++ {
		role := domain.RoleUser
		if i%2 == 1 {
			role = domain.RoleAssistant
		}
		history = append(history, domain.ChatTurn{Role: role, Content: string(rune('a' + i))})
	}
	_, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "and then?", History: history})

	require.NoError(t, err)
	got := flows.chatInputs[0].History
	require.Len(t, got, domain.MaxHistoryTurns)
	assert.Equal(t, "d", got[0].Content)
	assert.Equal(t, "h", got[4].Content)
}

func TestChatService_InvalidQuery(t *testing.T) {
	flows := &mockFlowService{}
	svc := newTestChatService(flows, nil)

	_, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "  "})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = svc.Handle(context.Background(), domain.ChatQuery{Text: "q", Mode: "shallow"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	assert.Zero(t, flows.totalCalls())
}

func TestChatService_FlowFailureCarriesUserMessage(t *testing.T) {
	flows := &mockFlowService{err: domain.ErrUpstreamModel}
	svc := newTestChatService(flows, nil)

	_, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "What is salinity?"})

	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUpstreamModel)
	assert.Equal(t, domain.MsgChatFailure, domain.UserMessage(err))
}

func TestChatService_ReportRenderFailure(t *testing.T) {
	flows := &mockFlowService{report: sampleReport()}
	renderer := &mockReportRenderer{err: errors.New("font missing")}
	svc := NewChatService(flows, NewReportService(flows, renderer, nil, nil), nil)

	_, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "report please", Intent: domain.IntentReport})

	require.Error(t, err)
	assert.Equal(t, domain.MsgChatFailure, domain.UserMessage(err))
}

func TestChatService_DeeperMode(t *testing.T) {
	flows := &mockFlowService{}
	research := &mockResearchClient{answer: "Deep answer."}
	svc := newTestChatService(flows, research)

	result, err := svc.Handle(context.Background(), domain.ChatQuery{
		Text: "Generate a report on the Bay of Bengal",
		Mode: domain.ChatModeDeeper,
	})

	require.NoError(t, err)
	assert.Equal(t, "Deep answer.", result.Response)
	assert.Equal(t, []string{"Generate a report on the Bay of Bengal"}, research.queries)
	assert.Zero(t, flows.totalCalls())
}

func TestChatService_DeeperModeFailures(t *testing.T) {
	t.Run("not configured", func(t *testing.T) {
		svc := newTestChatService(&mockFlowService{}, nil)

		_, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "q", Mode: domain.ChatModeDeeper})

		assert.ErrorIs(t, err, domain.ErrResearchUnavailable)
		assert.Equal(t, domain.MsgChatFailure, domain.UserMessage(err))
	})

	t.Run("backend error", func(t *testing.T) {
		research := &mockResearchClient{err: domain.ErrResearchBackend}
		svc := newTestChatService(&mockFlowService{}, research)

		_, err := svc.Handle(context.Background(), domain.ChatQuery{Text: "q", Mode: domain.ChatModeDeeper})

		assert.ErrorIs(t, err, domain.ErrResearchBackend)
	})
}

func TestChatService_DashboardChat(t *testing.T) {
	flows := &mockFlowService{chat: &domain.ChatAnswer{Answer: "Temperatures peak in May."}}
	svc := newTestChatService(flows, nil)

	answer, err := svc.DashboardChat(context.Background(), domain.DashboardChatInput{
		Query: "When is it warmest?",
		Mode:  domain.DashboardDescriptive,
	})

	require.NoError(t, err)
	assert.Equal(t, "Temperatures peak in May.", answer)
	assert.Equal(t, 1, flows.dashboardCalls)
}

func TestChatService_DashboardChatFailure(t *testing.T) {
	flows := &mockFlowService{err: domain.ErrModelOutputInvalid}
	svc := newTestChatService(flows, nil)

	_, err := svc.DashboardChat(context.Background(), domain.DashboardChatInput{
		Query: "When is it warmest?",
		Mode:  domain.DashboardPredictive,
	})

	assert.ErrorIs(t, err, domain.ErrModelOutputInvalid)
	assert.Equal(t, domain.MsgDashboardChatFailure, domain.UserMessage(err))
}
