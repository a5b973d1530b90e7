// Package httpapi serves Blue Query over HTTP: JSON endpoints for the
// chat router, AI flows, reports, datasets and floats, plus a websocket
// chat that keeps one conversation per connection.
package httpapi

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/custodia-labs/bluequery/internal/logger"
)

// Server timeouts. Flow calls can take tens of seconds, so the write
// timeout is generous.
const (
	ReadTimeout     = 15 * time.Second
	WriteTimeout    = 120 * time.Second
	ShutdownTimeout = 5 * time.Second
)

// Server is the HTTP API server for Blue Query.
type Server struct {
	ports    *Ports
	upgrader websocket.Upgrader
	handler  http.Handler
}

// NewServer creates a new HTTP API server with the given ports.
func NewServer(ports *Ports) (*Server, error) {
	if err := ports.Validate(); err != nil {
		return nil, fmt.Errorf("validating ports: %w", err)
	}

	s := &Server{
		ports: ports,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(_ *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
	}
	s.handler = corsMiddleware(loggingMiddleware(recoverMiddleware(s.routes())))
	return s, nil
}

// Handler returns the root handler with middleware applied.
func (s *Server) Handler() http.Handler {
	return s.handler
}

func (s *Server) routes() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", s.handleHealth)

	mux.HandleFunc("POST /api/chat", s.handleChat)
	mux.HandleFunc("POST /api/dashboard/chat", s.handleDashboardChat)
	mux.HandleFunc("POST /api/insights", s.handleInsights)
	mux.HandleFunc("POST /api/visualizations", s.handleVisualizations)
	mux.HandleFunc("POST /api/learning", s.handleLearning)
	mux.HandleFunc("POST /api/reports", s.handleReport)
	mux.HandleFunc("POST /api/snapshot", s.handleSnapshot)

	mux.HandleFunc("GET /api/datasets", s.handleListKinds)
	mux.HandleFunc("GET /api/datasets/{kind}", s.handleDataset)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)

	mux.HandleFunc("GET /api/floats", s.handleListFloats)
	mux.HandleFunc("GET /api/floats/{id}", s.handleGetFloat)
	mux.HandleFunc("POST /api/floats/import", s.handleImportFloats)

	mux.HandleFunc("GET /ws/chat", s.handleChatSocket)

	return mux
}

// Run serves the API on addr.
// It blocks until the context is cancelled or an error occurs.
func (s *Server) Run(ctx context.Context, addr string) error {
	httpServer := &http.Server{
		Addr:              addr,
		Handler:           s.handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       ReadTimeout,
		WriteTimeout:      WriteTimeout,
		BaseContext: func(net.Listener) context.Context {
			return ctx
		},
	}

	// Graceful shutdown when context is cancelled
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), ShutdownTimeout)
		defer cancel()
		httpServer.Shutdown(shutdownCtx) //nolint:errcheck
	}()

	logger.Info("HTTP API listening on %s", addr)
	err := httpServer.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
