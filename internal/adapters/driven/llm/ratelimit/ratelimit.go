// Package ratelimit wraps an LLM service with client-side rate limiting so
// that bursts of flow calls stay under provider quotas.
package ratelimit

import (
	"context"
	"errors"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// Ensure LLMService implements the interface.
var _ driven.LLMService = (*LLMService)(nil)

// DefaultBackoff is how long calls are held after the provider reports a
// quota error.
const DefaultBackoff = 30 * time.Second

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit. Zero or less
	// disables the token bucket.
	RequestsPerSecond float64

	// BurstSize is the maximum burst size (default: 1).
	BurstSize int

	// Backoff is the pause after a rate limit error (default: 30s).
	Backoff time.Duration
}

// LLMService limits the calls made to an inner LLM service. A call that
// fails with domain.ErrRateLimited is not retried; it makes later calls
// wait out the backoff instead.
type LLMService struct {
	inner   driven.LLMService
	limiter *rate.Limiter
	backoff time.Duration

	mu      sync.Mutex
	retryAt time.Time
	now     func() time.Time
}

// Wrap returns inner limited by cfg.
func Wrap(inner driven.LLMService, cfg Config) *LLMService {
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = DefaultBackoff
	}
	limit := rate.Inf
	if cfg.RequestsPerSecond > 0 {
		limit = rate.Limit(cfg.RequestsPerSecond)
	}
	return &LLMService{
		inner:   inner,
		limiter: rate.NewLimiter(limit, cfg.BurstSize),
		backoff: cfg.Backoff,
		now:     time.Now,
	}
}

// Generate waits for a token and delegates.
func (s *LLMService) Generate(ctx context.Context, prompt string, opts driven.GenerateOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	out, err := s.inner.Generate(ctx, prompt, opts)
	s.record(err)
	return out, err
}

// Chat waits for a token and delegates.
func (s *LLMService) Chat(ctx context.Context, messages []driven.ChatMessage, opts driven.ChatOptions) (string, error) {
	if err := s.wait(ctx); err != nil {
		return "", err
	}
	out, err := s.inner.Chat(ctx, messages, opts)
	s.record(err)
	return out, err
}

// wait blocks until a request can be made without exceeding the rate
// limit. It also respects any backoff set by a previous quota error.
func (s *LLMService) wait(ctx context.Context) error {
	s.mu.Lock()
	delay := s.retryAt.Sub(s.now())
	s.mu.Unlock()

	if delay > 0 {
		logger.Debug("Rate limited: holding model call for %s", delay.Round(time.Second))
		timer := time.NewTimer(delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-timer.C:
		}
	}

	return s.limiter.Wait(ctx)
}

func (s *LLMService) record(err error) {
	if !errors.Is(err, domain.ErrRateLimited) {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.retryAt = s.now().Add(s.backoff)
	logger.Warn("Provider rate limit hit, backing off for %s", s.backoff)
}

// ModelName returns the inner model name.
func (s *LLMService) ModelName() string {
	return s.inner.ModelName()
}

// Ping bypasses the limiter.
func (s *LLMService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close closes the inner service.
func (s *LLMService) Close() error {
	return s.inner.Close()
}
