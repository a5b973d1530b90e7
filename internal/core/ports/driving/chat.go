package driving

import (
	"context"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// ChatService routes chat queries to the right flow.
type ChatService interface {
	// Handle answers a chat query. Empty queries return
	// domain.ErrInvalidInput; downstream failures are wrapped in a
	// *domain.UserError carrying the uniform failure message.
	Handle(ctx context.Context, query domain.ChatQuery) (*domain.ChatResult, error)

	// DashboardChat answers a question asked from a dashboard.
	DashboardChat(ctx context.Context, input domain.DashboardChatInput) (string, error)
}

// ChatSession is one user's conversation in front of the ChatService.
type ChatSession interface {
	// Submit records text, answers it and records the answer.
	Submit(ctx context.Context, text string, intent domain.Intent) (*domain.ChatMessage, error)

	// SetMode switches between normal and deeper mode.
	SetMode(mode domain.ChatMode)

	// Mode returns the current chat mode.
	Mode() domain.ChatMode

	// Messages returns the conversation so far, oldest first.
	Messages() []domain.ChatMessage

	// Suggestions returns the next n suggested questions.
	Suggestions(n int) []string
}

// ChatSessionFactory creates independent chat sessions.
type ChatSessionFactory func() ChatSession
