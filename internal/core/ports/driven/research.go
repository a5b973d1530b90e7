package driven

import "context"

// ResearchClient forwards a query to the external research backend.
type ResearchClient interface {
	// Ask sends the query verbatim and returns the answer text.
	// Non-2xx responses and unexpected shapes return domain.ErrResearchBackend.
	Ask(ctx context.Context, query string) (string, error)
}
