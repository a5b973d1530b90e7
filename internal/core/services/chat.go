package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// Ensure ChatService implements the interface.
var _ driving.ChatService = (*ChatService)(nil)

// ReportReadyMessage is the assistant reply that accompanies a generated report.
const ReportReadyMessage = "I've generated a PDF report for you based on your request. " +
	"Click the button below to download it."

// ChatService routes chat queries to the report, learning summary or
// conversational flow, or to the research backend in deeper mode.
type ChatService struct {
	flows    driving.FlowService
	reports  driving.ReportService
	research driven.ResearchClient
}

// NewChatService creates a new chat router. research may be nil.
func NewChatService(
	flows driving.FlowService,
	reports driving.ReportService,
	research driven.ResearchClient,
) *ChatService {
	return &ChatService{
		flows:    flows,
		reports:  reports,
		research: research,
	}
}

// Handle answers a chat query.
func (s *ChatService) Handle(ctx context.Context, query domain.ChatQuery) (*domain.ChatResult, error) {
	logger.Section("Chat Routing")
	if err := query.Validate(); err != nil {
		return nil, err
	}

	if query.Mode == domain.ChatModeDeeper {
		logger.Debug("Deeper mode: forwarding query to research backend")
		return s.deeper(ctx, query.Text)
	}

	intent := query.Intent.Resolve(query.Text)
	logger.Info("Intent: %s (requested %s)", intent, query.Intent)

	switch intent {
	case domain.IntentReport:
		return s.report(ctx, query.Text)
	case domain.IntentLearningSummary:
		return s.learning(ctx, query.Text)
	default:
		return s.chat(ctx, query)
	}
}

// DashboardChat answers a question asked from a dashboard.
func (s *ChatService) DashboardChat(ctx context.Context, input domain.DashboardChatInput) (string, error) {
	if err := requireText("query", input.Query); err != nil {
		return "", err
	}
	answer, err := s.flows.DashboardChat(ctx, input)
	if err != nil {
		logger.Error("Dashboard chat failed: %v", err)
		return "", domain.NewUserError(domain.MsgDashboardChatFailure, err)
	}
	return answer.Answer, nil
}

func (s *ChatService) deeper(ctx context.Context, text string) (*domain.ChatResult, error) {
	if s.research == nil {
		return nil, fail(fmt.Errorf("deeper mode: %w", domain.ErrResearchUnavailable))
	}
	answer, err := s.research.Ask(ctx, text)
	if err != nil {
		return nil, fail(fmt.Errorf("deeper mode: %w", err))
	}
	return &domain.ChatResult{Intent: domain.IntentChat, Response: answer}, nil
}

func (s *ChatService) report(ctx context.Context, text string) (*domain.ChatResult, error) {
	report, err := s.reports.Generate(ctx, text)
	if err != nil {
		return nil, fail(err)
	}
	return &domain.ChatResult{
		Intent:   domain.IntentReport,
		Response: ReportReadyMessage,
		Report:   report.Document,
	}, nil
}

func (s *ChatService) learning(ctx context.Context, text string) (*domain.ChatResult, error) {
	summary, err := s.flows.LearningSummary(ctx, domain.LearningSummaryInput{
		InteractionData: `User asked: "` + strings.ToLower(text) + `"`,
	})
	if err != nil {
		return nil, fail(err)
	}
	return &domain.ChatResult{Intent: domain.IntentLearningSummary, Response: summary.Summary}, nil
}

func (s *ChatService) chat(ctx context.Context, query domain.ChatQuery) (*domain.ChatResult, error) {
	answer, err := s.flows.Chat(ctx, domain.ChatInput{
		Query:   query.Text,
		History: query.RecentHistory(),
	})
	if err != nil {
		return nil, fail(err)
	}
	return &domain.ChatResult{Intent: domain.IntentChat, Response: answer.Answer}, nil
}

// fail logs a downstream failure and wraps it with the uniform message.
func fail(err error) error {
	logger.Error("Chat failed: %v", err)
	return domain.NewUserError(domain.MsgChatFailure, err)
}
