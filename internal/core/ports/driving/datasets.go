package driving

import (
	"context"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// DatasetService serves the synthetic chart datasets.
type DatasetService interface {
	// Generate returns the dataset of the given kind.
	// Unknown kinds return domain.ErrUnsupportedType.
	Generate(ctx context.Context, kind domain.ChartKind, params domain.DatasetParams) (domain.ChartData, error)

	// Dashboard returns every descriptive dashboard dataset for a seed.
	Dashboard(ctx context.Context, seed uint32) (map[domain.ChartKind]domain.ChartData, error)

	// Kinds returns every supported kind.
	Kinds() []domain.ChartKind
}
