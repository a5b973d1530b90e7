package driven

import (
	"context"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// ReportRenderer turns structured report content into a document.
type ReportRenderer interface {
	// Render lays out content with the given generation date.
	Render(ctx context.Context, content *domain.ReportContent, generated time.Time) (*domain.Document, error)
}

// SnapshotRenderer rasterizes chart panels into a single document.
type SnapshotRenderer interface {
	// Render draws panels in order and encodes them in format.
	Render(ctx context.Context, title string, panels []domain.ChartData, format domain.SnapshotFormat) (*domain.Document, error)
}
