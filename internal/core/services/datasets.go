package services

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/logger"
	"github.com/custodia-labs/bluequery/internal/synth"
)

// Ensure DatasetService implements the interface.
var _ driving.DatasetService = (*DatasetService)(nil)

// DatasetService serves the seeded synthetic datasets.
type DatasetService struct {
	now func() time.Time
}

// NewDatasetService creates a dataset service. A nil clock uses time.Now.
func NewDatasetService(now func() time.Time) *DatasetService {
	if now == nil {
		now = time.Now
	}
	return &DatasetService{now: now}
}

// Generate returns the dataset of the given kind.
func (s *DatasetService) Generate(
	ctx context.Context,
	kind domain.ChartKind,
	params domain.DatasetParams,
) (domain.ChartData, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if params.End.IsZero() {
		params.End = s.now()
	}
	start := time.Now()
	data, err := synth.Generate(kind, params)
	if err != nil {
		return nil, err
	}
	logger.Debug("Generated %s in %s", kind, time.Since(start).Round(time.Microsecond))
	return data, nil
}

// Dashboard generates every descriptive dashboard dataset concurrently.
// A zero seed selects the default dashboard seed.
func (s *DatasetService) Dashboard(ctx context.Context, seed uint32) (map[domain.ChartKind]domain.ChartData, error) {
	var (
		mu  sync.Mutex
		out = make(map[domain.ChartKind]domain.ChartData)
		end = s.now()
	)
	g, ctx := errgroup.WithContext(ctx)
	for _, kind := range domain.DashboardChartKinds() {
		g.Go(func() error {
			data, err := s.Generate(ctx, kind, domain.DatasetParams{Seed: seed, End: end})
			if err != nil {
				return err
			}
			mu.Lock()
			out[kind] = data
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// Kinds returns every supported kind.
func (s *DatasetService) Kinds() []domain.ChartKind {
	return domain.AllChartKinds()
}
