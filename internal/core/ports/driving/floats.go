package driving

import (
	"context"
	"io"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// FloatService manages the float dataset.
type FloatService interface {
	// List returns every float.
	List(ctx context.Context) ([]domain.Float, error)

	// Get returns a float by ID.
	Get(ctx context.Context, id string) (*domain.Float, error)

	// Import replaces the dataset with the floats in a CSV document.
	// The import is all-or-nothing; it returns the number of floats loaded.
	Import(ctx context.Context, r io.Reader) (int, error)
}
