package memory

import (
	"context"
	"fmt"
	"sync"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

// Ensure FloatStore implements the interface.
var _ driven.FloatStore = (*FloatStore)(nil)

// FloatStore is an in-memory implementation of driven.FloatStore.
type FloatStore struct {
	mu     sync.RWMutex
	floats []domain.Float
	byID   map[string]int
}

// NewFloatStore creates a new in-memory float store.
func NewFloatStore() *FloatStore {
	return &FloatStore{byID: make(map[string]int)}
}

// List returns every float in insertion order.
func (s *FloatStore) List(_ context.Context) ([]domain.Float, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]domain.Float, len(s.floats))
	copy(out, s.floats)
	return out, nil
}

// Get returns a float by ID.
func (s *FloatStore) Get(_ context.Context, id string) (*domain.Float, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	i, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("float %s: %w", id, domain.ErrNotFound)
	}
	f := s.floats[i]
	return &f, nil
}

// ReplaceAll swaps in a new dataset. Duplicate IDs are rejected and leave
// the current dataset untouched.
func (s *FloatStore) ReplaceAll(_ context.Context, floats []domain.Float) error {
	byID := make(map[string]int, len(floats))
	for i, f := range floats {
		if _, dup := byID[f.ID]; dup {
			return fmt.Errorf("%w: duplicate float id %s", domain.ErrInvalidInput, f.ID)
		}
		byID[f.ID] = i
	}
	next := make([]domain.Float, len(floats))
	copy(next, floats)

	s.mu.Lock()
	defer s.mu.Unlock()
	s.floats = next
	s.byID = byID
	return nil
}

// Count returns the number of floats.
func (s *FloatStore) Count(_ context.Context) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.floats), nil
}
