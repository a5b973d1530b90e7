package driving

import (
	"context"

	"github.com/custodia-labs/bluequery/internal/core/domain"
)

// Report is a generated report together with the content it was built from.
type Report struct {
	Content  *domain.ReportContent
	Document *domain.Document
}

// ReportService assembles downloadable reports.
type ReportService interface {
	// Generate runs the report content flow for query and renders it.
	Generate(ctx context.Context, query string) (*Report, error)

	// Assemble renders existing content. Nil content returns
	// domain.ErrNoReportContent.
	Assemble(ctx context.Context, content *domain.ReportContent) (*domain.Document, error)

	// Snapshot rasterizes the given datasets into a single document.
	Snapshot(ctx context.Context, kinds []domain.ChartKind, seed uint32, format domain.SnapshotFormat) (*domain.Document, error)
}
