package driven

import (
	"context"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// FloatStore persists the float dataset.
type FloatStore interface {
	// List returns every float in insertion order.
	List(ctx context.Context) ([]domain.Float, error)

	// Get returns a float by ID.
	// Returns domain.ErrNotFound if it does not exist.
	Get(ctx context.Context, id string) (*domain.Float, error)

	// ReplaceAll atomically replaces the dataset. On error the previous
	// dataset is left untouched.
	ReplaceAll(ctx context.Context, floats []domain.Float) error

	// Count returns the number of floats.
	Count(ctx context.Context) (int, error)
}

// SeedSource supplies the initial float dataset.
type SeedSource interface {
	// Load returns the seed floats.
	Load() ([]domain.Float, error)
}
