package httpapi

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/gorilla/websocket"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// SuggestionCount is the number of canned questions offered per frame.
const SuggestionCount = 3

// Frame types sent to websocket clients.
const (
	frameSuggestions = "suggestions"
	frameMessage     = "message"
	frameError       = "error"
)

// socketRequest is a chat query sent by the client.
type socketRequest struct {
	Query  string `json:"query"`
	Intent string `json:"intent,omitempty"`
	Mode   string `json:"mode,omitempty"`
}

// socketFrame is a server reply.
type socketFrame struct {
	Type        string              `json:"type"`
	Message     *domain.ChatMessage `json:"message,omitempty"`
	Suggestions []string            `json:"suggestions,omitempty"`
	Error       string              `json:"error,omitempty"`
}

// handleChatSocket runs one chat session for the lifetime of the
// connection. Every client frame is answered by exactly one server frame.
func (s *Server) handleChatSocket(w http.ResponseWriter, r *http.Request) {
	if s.ports.Sessions == nil {
		writeError(w, errNotConfigured)
		return
	}
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Warn("Websocket upgrade failed: %v", err)
		return
	}
	defer conn.Close()

	ctx := r.Context()
	stop := context.AfterFunc(ctx, func() {
		conn.Close()
	})
	defer stop()

	session := s.ports.Sessions()
	logger.Debug("Chat session opened from %s", r.RemoteAddr)

	hello := socketFrame{Type: frameSuggestions, Suggestions: session.Suggestions(SuggestionCount)}
	if err := conn.WriteJSON(hello); err != nil {
		return
	}

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if ctx.Err() == nil && !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debug("Chat session read: %v", err)
			}
			return
		}
		if err := conn.WriteJSON(answerFrame(ctx, session, data)); err != nil {
			logger.Debug("Chat session write: %v", err)
			return
		}
	}
}

// answerFrame submits one client frame to the session.
func answerFrame(ctx context.Context, session driving.ChatSession, data []byte) socketFrame {
	var req socketRequest
	if err := json.Unmarshal(data, &req); err != nil {
		return errorFrame(fmt.Errorf("%w: decoding frame: %v", domain.ErrInvalidInput, err))
	}
	intent, err := domain.ParseIntent(req.Intent)
	if err != nil {
		return errorFrame(err)
	}
	if req.Mode != "" {
		mode, err := domain.ParseChatMode(req.Mode)
		if err != nil {
			return errorFrame(err)
		}
		session.SetMode(mode)
	}

	msg, err := session.Submit(ctx, req.Query, intent)
	if err != nil {
		return errorFrame(err)
	}
	return socketFrame{
		Type:        frameMessage,
		Message:     msg,
		Suggestions: session.Suggestions(SuggestionCount),
	}
}

func errorFrame(err error) socketFrame {
	return socketFrame{Type: frameError, Error: messageFor(err, statusFor(err))}
}
