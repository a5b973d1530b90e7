package services

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// Conversation is an append-only, insertion-ordered message log.
// It is safe for concurrent use.
type Conversation struct {
	mu       sync.RWMutex
	messages []domain.ChatMessage
}

// NewConversation creates an empty conversation.
func NewConversation() *Conversation {
	return &Conversation{}
}

// Append adds a message, assigning an ID when it has none, and returns it.
func (c *Conversation) Append(msg domain.ChatMessage) domain.ChatMessage {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.messages = append(c.messages, msg)
	return msg
}

// Messages returns a copy of every message, oldest first.
func (c *Conversation) Messages() []domain.ChatMessage {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]domain.ChatMessage, len(c.messages))
	copy(out, c.messages)
	return out
}

// Len returns the number of messages.
func (c *Conversation) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.messages)
}

// RecentTurns returns at most n of the newest messages as history turns.
func (c *Conversation) RecentTurns(n int) []domain.ChatTurn {
	c.mu.RLock()
	defer c.mu.RUnlock()
	start := len(c.messages) - n
	if start < 0 {
		start = 0
	}
	turns := make([]domain.ChatTurn, 0, len(c.messages)-start)
	for _, m := range c.messages[start:] {
		turns = append(turns, domain.ChatTurn{Role: m.Role, Content: m.Content})
	}
	return turns
}

// InteractionSummary describes what the user asked so far, one line per
// question, for the learning summary flow.
func (c *Conversation) InteractionSummary() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	var lines []string
	for _, m := range c.messages {
		if m.Role == domain.RoleUser {
			lines = append(lines, `User asked: "`+m.Content+`"`)
		}
	}
	return strings.Join(lines, "\n")
}

// Ensure ChatSession implements the interface.
var _ driving.ChatSession = (*ChatSession)(nil)

// ChatSession is one user's chat: a conversation log in front of the
// router. In normal mode an exact match of a canned question is answered
// without calling the router.
type ChatSession struct {
	chat   driving.ChatService
	canned driven.CannedAnswers
	log    *Conversation

	mu        sync.Mutex
	mode      domain.ChatMode
	suggested int
}

// NewChatSession creates a session. canned may be nil.
func NewChatSession(chat driving.ChatService, canned driven.CannedAnswers) *ChatSession {
	return &ChatSession{
		chat:   chat,
		canned: canned,
		log:    NewConversation(),
		mode:   domain.ChatModeNormal,
	}
}

// Conversation returns the session's message log.
func (s *ChatSession) Conversation() *Conversation {
	return s.log
}

// Messages returns every message in the session, oldest first.
func (s *ChatSession) Messages() []domain.ChatMessage {
	return s.log.Messages()
}

// SetMode switches between normal and deeper mode.
func (s *ChatSession) SetMode(mode domain.ChatMode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.mode = mode
}

// Mode returns the current chat mode.
func (s *ChatSession) Mode() domain.ChatMode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// Submit records the user's text, answers it and records the answer.
// On failure the user message stays in the log, no assistant message is
// added and the error carries a user-facing message.
func (s *ChatSession) Submit(ctx context.Context, text string, intent domain.Intent) (*domain.ChatMessage, error) {
	mode := s.Mode()
	query := domain.ChatQuery{
		Text:    text,
		History: s.log.RecentTurns(domain.MaxHistoryTurns),
		Intent:  intent,
		Mode:    mode,
	}
	if err := query.Validate(); err != nil {
		return nil, err
	}

	s.log.Append(domain.ChatMessage{Role: domain.RoleUser, Content: text})

	if mode != domain.ChatModeDeeper && s.canned != nil {
		if answer, ok := s.canned.Lookup(text); ok {
			logger.Debug("Canned answer for %q", text)
			msg := s.log.Append(domain.ChatMessage{Role: domain.RoleAssistant, Content: answer})
			return &msg, nil
		}
	}

	result, err := s.chat.Handle(ctx, query)
	if err != nil {
		return nil, err
	}
	msg := s.log.Append(domain.ChatMessage{
		Role:          domain.RoleAssistant,
		Content:       result.Response,
		ReportDataURI: result.ReportDataURI(),
	})
	return &msg, nil
}

// Suggestions returns the next n canned questions, cycling through the
// full list.
func (s *ChatSession) Suggestions(n int) []string {
	if s.canned == nil || n <= 0 {
		return nil
	}
	questions := s.canned.Questions()
	if len(questions) == 0 {
		return nil
	}
	if n > len(questions) {
		n = len(questions)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, n)
	for i := 0; i < n; i++ {
		out = append(out, questions[(s.suggested+i)%len(questions)])
	}
	s.suggested = (s.suggested + n) % len(questions)
	return out
}
