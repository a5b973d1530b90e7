package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
)

// Ensure FlowService implements the interface.
var _ driving.FlowService = (*FlowService)(nil)

// FlowService runs the prompt-templated AI flows.
type FlowService struct {
	chat          *Flow[domain.ChatInput, domain.ChatAnswer]
	dashboardChat *Flow[domain.DashboardChatInput, domain.ChatAnswer]
	insights      *Flow[domain.FloatInsightsInput, domain.FloatInsights]
	visualization *Flow[domain.VisualizationInput, domain.VisualizationSuggestion]
	learning      *Flow[domain.LearningSummaryInput, domain.LearningSummary]
	report        *Flow[domain.ReportInput, domain.ReportContent]
}

// NewFlowService creates the flows over a model and a prompt store.
// llm may be nil; every flow then fails with domain.ErrLLMUnavailable.
func NewFlowService(llm driven.LLMService, prompts driven.PromptStore) *FlowService {
	return &FlowService{
		chat: NewFlow(domain.FlowChat, driven.PromptChat, llm, prompts, chatAnswerSchema,
			WithInputValidation[domain.ChatInput, domain.ChatAnswer](func(in domain.ChatInput) error {
				return requireText("query", in.Query)
			}),
			WithTemplateData[domain.ChatInput, domain.ChatAnswer](func(in domain.ChatInput) any {
				return factSheetData{Query: in.Query, Facts: factSheet()}
			}),
			WithChatMessages[domain.ChatInput, domain.ChatAnswer](chatMessages),
		),
		dashboardChat: NewFlow(domain.FlowDashboardChat, driven.PromptDashboardChat, llm, prompts, chatAnswerSchema,
			WithInputValidation[domain.DashboardChatInput, domain.ChatAnswer](func(in domain.DashboardChatInput) error {
				if !in.Mode.IsValid() {
					return fmt.Errorf("%w: unknown dashboard mode %q", domain.ErrInvalidInput, in.Mode)
				}
				return requireText("query", in.Query)
			}),
			WithTemplateData[domain.DashboardChatInput, domain.ChatAnswer](func(in domain.DashboardChatInput) any {
				return dashboardData{DashboardChatInput: in, Facts: factSheet()}
			}),
		),
		insights: NewFlow(domain.FlowFloatInsights, driven.PromptFloatInsights, llm, prompts, floatInsightsSchema,
			WithInputValidation[domain.FloatInsightsInput, domain.FloatInsights](func(in domain.FloatInsightsInput) error {
				return requireText("float id", in.FloatID)
			}),
		),
		visualization: NewFlow(domain.FlowVisualization, driven.PromptVisualization, llm, prompts, visualizationSchema(),
			WithInputValidation[domain.VisualizationInput, domain.VisualizationSuggestion](func(in domain.VisualizationInput) error {
				return requireText("query", in.Query)
			}),
			WithTemplateData[domain.VisualizationInput, domain.VisualizationSuggestion](func(in domain.VisualizationInput) any {
				return visualizationData{Query: in.Query, Components: domain.AllChartComponents()}
			}),
		),
		learning: NewFlow(domain.FlowLearningSummary, driven.PromptLearningSummary, llm, prompts, learningSummarySchema,
			WithInputValidation[domain.LearningSummaryInput, domain.LearningSummary](func(in domain.LearningSummaryInput) error {
				return requireText("interaction data", in.InteractionData)
			}),
		),
		report: NewFlow(domain.FlowReportContent, driven.PromptReportContent, llm, prompts, reportContentSchema,
			WithInputValidation[domain.ReportInput, domain.ReportContent](func(in domain.ReportInput) error {
				return requireText("query", in.Query)
			}),
			WithGenerateOptions[domain.ReportInput, domain.ReportContent](driven.GenerateOptions{Temperature: 0.3}),
		),
	}
}

// Chat answers a conversational query with history.
func (s *FlowService) Chat(ctx context.Context, input domain.ChatInput) (*domain.ChatAnswer, error) {
	return s.chat.Run(ctx, input)
}

// DashboardChat answers a query about a dashboard.
func (s *FlowService) DashboardChat(ctx context.Context, input domain.DashboardChatInput) (*domain.ChatAnswer, error) {
	return s.dashboardChat.Run(ctx, input)
}

// FloatInsights produces 3-4 insights for a float.
func (s *FlowService) FloatInsights(ctx context.Context, input domain.FloatInsightsInput) (*domain.FloatInsights, error) {
	return s.insights.Run(ctx, input)
}

// SuggestVisualizations recommends charts for a query.
func (s *FlowService) SuggestVisualizations(
	ctx context.Context,
	input domain.VisualizationInput,
) (*domain.VisualizationSuggestion, error) {
	return s.visualization.Run(ctx, input)
}

// LearningSummary suggests what the user could learn next.
func (s *FlowService) LearningSummary(ctx context.Context, input domain.LearningSummaryInput) (*domain.LearningSummary, error) {
	return s.learning.Run(ctx, input)
}

// ReportContent produces structured report content.
func (s *FlowService) ReportContent(ctx context.Context, input domain.ReportInput) (*domain.ReportContent, error) {
	return s.report.Run(ctx, input)
}

func requireText(field, value string) error {
	if strings.TrimSpace(value) == "" {
		return fmt.Errorf("%w: %s is required", domain.ErrInvalidInput, field)
	}
	return nil
}

// chatMessages forwards the recent history followed by the query.
func chatMessages(in domain.ChatInput) []driven.ChatMessage {
	history := domain.ChatQuery{Text: in.Query, History: in.History}.RecentHistory()
	msgs := make([]driven.ChatMessage, 0, len(history)+1)
	for _, turn := range history {
		role := driven.RoleUser
		if turn.Role == domain.RoleAssistant {
			role = driven.RoleAssistant
		}
		msgs = append(msgs, driven.ChatMessage{Role: role, Content: turn.Content})
	}
	return append(msgs, driven.ChatMessage{Role: driven.RoleUser, Content: in.Query})
}

// Fact is one line of the dataset fact sheet rendered into chat prompts.
type Fact struct {
	Group string
	Name  string
	Min   string
	Max   string
	Unit  string
}

type factSheetData struct {
	Query string
	Facts []Fact
}

type dashboardData struct {
	domain.DashboardChatInput
	Facts []Fact
}

type visualizationData struct {
	Query      string
	Components []domain.ChartComponent
}

// factSheet formats the parameter catalogue with each parameter's precision.
func factSheet() []Fact {
	params := domain.Parameters()
	facts := make([]Fact, 0, len(params))
	for _, p := range params {
		facts = append(facts, Fact{
			Group: string(p.Group),
			Name:  string(p.Name),
			Min:   fmt.Sprintf("%.*f", p.Digits, p.Range.Min),
			Max:   fmt.Sprintf("%.*f", p.Digits, p.Range.Max),
			Unit:  p.Unit,
		})
	}
	return facts
}
