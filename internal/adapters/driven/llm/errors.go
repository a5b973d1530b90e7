// Package llm holds the language model adapters and the error mapping
// they share.
package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// maxErrorBody caps how much of a failed response body ends up in an error.
const maxErrorBody = 512

// StatusError maps a non-2xx provider response to a domain error.
// 429 becomes domain.ErrRateLimited, everything else domain.ErrUpstreamModel.
func StatusError(provider string, status int, body []byte) error {
	if len(body) > maxErrorBody {
		body = body[:maxErrorBody]
	}
	if status == http.StatusTooManyRequests {
		return fmt.Errorf("%s: %w (status %d): %s", provider, domain.ErrRateLimited, status, body)
	}
	return fmt.Errorf("%s: %w (status %d): %s", provider, domain.ErrUpstreamModel, status, body)
}

// TransportError wraps a failed request. Context cancellation is kept as is.
func TransportError(provider string, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}
	return fmt.Errorf("%s: %w: %w", provider, domain.ErrUpstreamModel, err)
}
