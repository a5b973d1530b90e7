package render

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/png"
	"strings"

	"github.com/go-pdf/fpdf"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

// Ensure SnapshotRenderer implements the interface.
var _ driven.SnapshotRenderer = (*SnapshotRenderer)(nil)

// Snapshot grid geometry, in pixels.
const (
	panelWidth   = 420
	panelHeight  = 260
	panelGap     = 16
	headerHeight = 48
	plotInset    = 28
)

// SnapshotRenderer rasterizes chart panels into a grid.
type SnapshotRenderer struct {
	columns int
}

// NewSnapshotRenderer creates a snapshot renderer laying panels out in
// columns (default 3).
func NewSnapshotRenderer(columns int) *SnapshotRenderer {
	if columns <= 0 {
		columns = 3
	}
	return &SnapshotRenderer{columns: columns}
}

// Render draws panels in order and encodes the image as PNG, or as a
// single-page PDF embedding that PNG.
func (r *SnapshotRenderer) Render(
	ctx context.Context,
	title string,
	panels []domain.ChartData,
	format domain.SnapshotFormat,
) (*domain.Document, error) {
	if len(panels) == 0 {
		return nil, fmt.Errorf("%w: no panels to render", domain.ErrInvalidInput)
	}

	img, err := r.rasterize(ctx, title, panels)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}

	switch format {
	case domain.SnapshotPNG, "":
		return &domain.Document{Title: title, MIMEType: domain.MIMETypePNG, Data: buf.Bytes(), Pages: 1}, nil
	case domain.SnapshotPDF:
		data, err := wrapPDF(title, buf.Bytes(), img.Bounds())
		if err != nil {
			return nil, err
		}
		return &domain.Document{Title: title, MIMEType: domain.MIMETypePDF, Data: data, Pages: 1}, nil
	default:
		return nil, fmt.Errorf("%w: unknown snapshot format %q", domain.ErrInvalidInput, format)
	}
}

func (r *SnapshotRenderer) rasterize(ctx context.Context, title string, panels []domain.ChartData) (*image.RGBA, error) {
	cols := min(r.columns, len(panels))
	rows := (len(panels) + cols - 1) / cols
	width := cols*panelWidth + (cols+1)*panelGap
	height := headerHeight + rows*panelHeight + (rows+1)*panelGap

	c := newCanvas(width, height)
	c.fill(image.Rect(0, 0, width, headerHeight), seriesColor(0))
	c.text(panelGap, headerHeight/2+5, title, colorBackground)

	for i, panel := range panels {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		x := panelGap + (i%cols)*(panelWidth+panelGap)
		y := headerHeight + panelGap + (i/cols)*(panelHeight+panelGap)
		frame := image.Rect(x, y, x+panelWidth, y+panelHeight)

		c.fill(frame, colorPanel)
		c.outline(frame, colorBorder)
		c.text(frame.Min.X+8, frame.Min.Y+16, panelTitle(panel.Kind()), colorText)

		p := &painter{
			c: c,
			area: image.Rect(
				frame.Min.X+plotInset/2, frame.Min.Y+plotInset+12,
				frame.Max.X-plotInset/2, frame.Max.Y-plotInset,
			),
		}
		if err := panel.Accept(p); err != nil {
			return nil, fmt.Errorf("draw %s: %w", panel.Kind(), err)
		}
	}
	return c.img, nil
}

// wrapPDF places the PNG on a single landscape A4 page, scaled to fit.
func wrapPDF(title string, pngData []byte, bounds image.Rectangle) ([]byte, error) {
	pdf := fpdf.New("L", "mm", "A4", "")
	pdf.SetTitle(title, true)
	pdf.SetCreator(FooterSuffix, true)
	pdf.SetCatalogSort(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	opts := fpdf.ImageOptions{ImageType: "PNG"}
	pdf.RegisterImageOptionsReader("snapshot", opts, bytes.NewReader(pngData))

	pageW, pageH := pdf.GetPageSize()
	const margin = 10.0
	w := pageW - 2*margin
	h := w * float64(bounds.Dy()) / float64(bounds.Dx())
	if h > pageH-2*margin {
		h = pageH - 2*margin
		w = h * float64(bounds.Dx()) / float64(bounds.Dy())
	}
	pdf.ImageOptions("snapshot", (pageW-w)/2, margin, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}
	return buf.Bytes(), nil
}

// panelTitle turns a chart kind into a heading.
func panelTitle(kind domain.ChartKind) string {
	switch kind {
	case domain.ChartKPI:
		return "KPI Comparison"
	case domain.ChartTSDiagram:
		return "T-S Diagram"
	case domain.ChartQCDistribution:
		return "QC Distribution"
	}
	words := strings.Split(string(kind), "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
