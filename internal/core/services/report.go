package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
	"github.com/custodia-labs/bluequery/internal/core/ports/driving"
	"github.com/custodia-labs/bluequery/internal/logger"
)

// Ensure ReportService implements the interface.
var _ driving.ReportService = (*ReportService)(nil)

// SnapshotTitle heads every dashboard snapshot.
const SnapshotTitle = "Blue Query Dashboard"

// ReportService produces report documents and dashboard snapshots.
type ReportService struct {
	flows    driving.FlowService
	renderer driven.ReportRenderer
	snapshot driven.SnapshotRenderer
	datasets driving.DatasetService
	now      func() time.Time
}

// ReportOption configures a ReportService.
type ReportOption func(*ReportService)

// WithClock sets the time source used for report dates.
func WithClock(now func() time.Time) ReportOption {
	return func(s *ReportService) { s.now = now }
}

// NewReportService creates a report service. snapshot and datasets may be
// nil when snapshots are not needed.
func NewReportService(
	flows driving.FlowService,
	renderer driven.ReportRenderer,
	snapshot driven.SnapshotRenderer,
	datasets driving.DatasetService,
	opts ...ReportOption,
) *ReportService {
	s := &ReportService{
		flows:    flows,
		renderer: renderer,
		snapshot: snapshot,
		datasets: datasets,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Generate asks the report content flow for content and renders it.
func (s *ReportService) Generate(ctx context.Context, query string) (*driving.Report, error) {
	content, err := s.flows.ReportContent(ctx, domain.ReportInput{Query: query})
	if err != nil {
		return nil, err
	}
	doc, err := s.Assemble(ctx, content)
	if err != nil {
		return nil, err
	}
	return &driving.Report{Content: content, Document: doc}, nil
}

// Assemble renders content into a document dated now.
func (s *ReportService) Assemble(ctx context.Context, content *domain.ReportContent) (*domain.Document, error) {
	if content == nil || strings.TrimSpace(content.Title) == "" {
		return nil, domain.ErrNoReportContent
	}
	doc, err := s.renderer.Render(ctx, content, s.now())
	if err != nil {
		return nil, fmt.Errorf("render report: %w", err)
	}
	logger.Info("Rendered report %q (%d pages, %d bytes)", doc.Title, doc.Pages, len(doc.Data))
	return doc, nil
}

// Snapshot generates the datasets for kinds and rasterizes them into one
// document. No kinds selects the descriptive dashboard.
func (s *ReportService) Snapshot(
	ctx context.Context,
	kinds []domain.ChartKind,
	seed uint32,
	format domain.SnapshotFormat,
) (*domain.Document, error) {
	if s.snapshot == nil || s.datasets == nil {
		return nil, fmt.Errorf("%w: snapshots are not configured", domain.ErrUnsupportedType)
	}
	if len(kinds) == 0 {
		kinds = domain.DashboardChartKinds()
	}

	panels := make([]domain.ChartData, 0, len(kinds))
	for _, kind := range kinds {
		data, err := s.datasets.Generate(ctx, kind, domain.DatasetParams{Seed: seed, End: s.now()})
		if err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", kind, err)
		}
		panels = append(panels, data)
	}

	doc, err := s.snapshot.Render(ctx, SnapshotTitle, panels, format)
	if err != nil {
		return nil, fmt.Errorf("render snapshot: %w", err)
	}
	return doc, nil
}
