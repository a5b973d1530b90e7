package driving

import (
	"context"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// FlowService exposes the prompt-templated AI flows.
// Every method either returns a schema-valid output or an error;
// partial outputs are never returned.
type FlowService interface {
	// Chat answers a conversational query with history.
	Chat(ctx context.Context, input domain.ChatInput) (*domain.ChatAnswer, error)

	// DashboardChat answers a query about a dashboard.
	DashboardChat(ctx context.Context, input domain.DashboardChatInput) (*domain.ChatAnswer, error)

	// FloatInsights produces 3-4 insights for a float.
	FloatInsights(ctx context.Context, input domain.FloatInsightsInput) (*domain.FloatInsights, error)

	// SuggestVisualizations recommends charts for a query.
	SuggestVisualizations(ctx context.Context, input domain.VisualizationInput) (*domain.VisualizationSuggestion, error)

	// LearningSummary suggests what the user could learn next.
	LearningSummary(ctx context.Context, input domain.LearningSummaryInput) (*domain.LearningSummary, error)

	// ReportContent produces structured report content.
	ReportContent(ctx context.Context, input domain.ReportInput) (*domain.ReportContent, error)
}
