// Package research provides the HTTP client for the external research
// backend used by deeper chat mode.
package research

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// Ensure Client implements the interface.
var _ driven.ResearchClient = (*Client)(nil)

// DefaultTimeout bounds a research request when none is configured.
const DefaultTimeout = 60 * time.Second

// NoAnswer is the legacy reply when the backend sent none of the known fields.
const NoAnswer = "The research backend did not return an answer."

// maxResponseBody caps the response size read from the backend.
const maxResponseBody = 4 << 20

// Config holds configuration for the research client.
type Config struct {
	// URL receives POST {"query": ...}. Empty makes every call fail with
	// domain.ErrResearchUnavailable.
	URL string

	// Contract selects how responses are parsed (default: v1).
	Contract domain.ResearchContract

	// Timeout is the request timeout (default: 60s).
	Timeout time.Duration
}

// Client forwards queries to the research backend.
type Client struct {
	client   *http.Client
	url      string
	contract domain.ResearchContract
}

type askRequest struct {
	Query string `json:"query"`
}

// v1Response is the strict response contract.
type v1Response struct {
	Version string `json:"version"`
	Answer  string `json:"answer"`
}

// legacyResponse holds every field older deployments answered with.
type legacyResponse struct {
	Result *struct {
		Raw string `json:"raw"`
	} `json:"result"`
	Answer  string `json:"answer"`
	Message string `json:"message"`
}

// NewClient creates a research client.
func NewClient(cfg Config) *Client {
	if cfg.Contract == "" {
		cfg.Contract = domain.ResearchContractV1
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = DefaultTimeout
	}
	return &Client{
		client:   &http.Client{Timeout: cfg.Timeout},
		url:      cfg.URL,
		contract: cfg.Contract,
	}
}

// Ask sends the query verbatim and returns the answer text.
func (c *Client) Ask(ctx context.Context, query string) (string, error) {
	if c.url == "" {
		return "", domain.ErrResearchUnavailable
	}

	body, err := json.Marshal(askRequest{Query: query})
	if err != nil {
		return "", fmt.Errorf("marshal request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("%w: create request: %w", domain.ErrResearchBackend, err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return "", err
		}
		return "", fmt.Errorf("%w: send request: %w", domain.ErrResearchBackend, err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return "", fmt.Errorf("%w: read response: %w", domain.ErrResearchBackend, err)
	}
	logger.Debug("Research backend answered %d in %s", resp.StatusCode, time.Since(start).Round(time.Millisecond))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: status %d: %s", domain.ErrResearchBackend, resp.StatusCode, truncate(data, 256))
	}

	if c.contract == domain.ResearchContractLegacy {
		return parseLegacy(data)
	}
	return parseV1(data)
}

func parseV1(data []byte) (string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	var out v1Response
	if err := dec.Decode(&out); err != nil {
		return "", fmt.Errorf("%w: unexpected response shape: %w", domain.ErrResearchBackend, err)
	}
	if out.Version != "1" {
		return "", fmt.Errorf("%w: unsupported response version %q", domain.ErrResearchBackend, out.Version)
	}
	if strings.TrimSpace(out.Answer) == "" {
		return "", fmt.Errorf("%w: empty answer", domain.ErrResearchBackend)
	}
	return out.Answer, nil
}

// parseLegacy tries result.raw, then answer, then message.
func parseLegacy(data []byte) (string, error) {
	var out legacyResponse
	if err := json.Unmarshal(data, &out); err != nil {
		return "", fmt.Errorf("%w: unexpected response shape: %w", domain.ErrResearchBackend, err)
	}
	switch {
	case out.Result != nil && out.Result.Raw != "":
		return out.Result.Raw, nil
	case out.Answer != "":
		return out.Answer, nil
	case out.Message != "":
		return out.Message, nil
	default:
		return NoAnswer, nil
	}
}

func truncate(b []byte, n int) string {
	if len(b) > n {
		return string(b[:n]) + "..."
	}
	return string(b)
}
