package render

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/custodia-labs/bluequery/internal/core/domain"
	"github.com/custodia-labs/bluequery/internal/core/ports/driven"
)

// Ensure PDFRenderer implements the interface.
var _ driven.ReportRenderer = (*PDFRenderer)(nil)

// Report layout, in millimetres on an A4 portrait page.
const (
	marginLeft   = 14.0
	marginTop    = 14.0
	marginBottom = 20.0
	pdfTextWidth = 180.0
	lineHeight   = 6.0

	// FooterSuffix follows the page counter on every page.
	FooterSuffix = "Blue Query AI Report"

	// DateLayout formats the "Report Generated" stamp.
	DateLayout = "1/2/2006"
)

// Key Insights table header colour.
var tealHeader = [3]int{30, 136, 169}

// PDFRenderer lays out report content as an A4 PDF.
type PDFRenderer struct {
	compress bool
}

// NewPDFRenderer creates a PDF report renderer.
func NewPDFRenderer() *PDFRenderer {
	return &PDFRenderer{compress: true}
}

// Render lays out content and returns the encoded PDF.
func (r *PDFRenderer) Render(ctx context.Context, content *domain.ReportContent, generated time.Time) (*domain.Document, error) {
	if content == nil {
		return nil, domain.ErrNoReportContent
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(marginLeft, marginTop, marginLeft)
	pdf.SetAutoPageBreak(true, marginBottom)
	pdf.SetCreationDate(generated)
	pdf.SetModificationDate(generated)
	pdf.SetCatalogSort(true)
	pdf.SetCompression(r.compress)
	pdf.SetTitle(content.Title, true)
	pdf.SetCreator(FooterSuffix, true)
	pdf.AliasNbPages("")

	// Core fonts are cp1252; translate so accents and dashes survive.
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	_, pageHeight := pdf.GetPageSize()
	pdf.SetFooterFunc(func() {
		pdf.SetY(pageHeight - 14)
		pdf.SetFont("Helvetica", "", 8)
		pdf.SetTextColor(150, 150, 150)
		pdf.CellFormat(0, 6, tr(fmt.Sprintf("Page %d of {nb} | %s", pdf.PageNo(), FooterSuffix)), "", 0, "L", false, 0, "")
	})

	pdf.AddPage()

	// Title block.
	pdf.SetFont("Helvetica", "B", 22)
	pdf.SetTextColor(30, 30, 30)
	pdf.MultiCell(pdfTextWidth, 10, tr(content.Title), "", "L", false)
	pdf.SetFont("Helvetica", "", 10)
	pdf.SetTextColor(100, 100, 100)
	pdf.CellFormat(pdfTextWidth, 6, "Report Generated: "+generated.Format(DateLayout), "", 1, "L", false, 0, "")
	pdf.Ln(8)

	// Introduction.
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(pdfTextWidth, lineHeight, tr(content.Introduction), "", "L", false)
	pdf.Ln(6)

	writeInsightsTable(pdf, tr, content.KeyInsights)
	pdf.Ln(8)

	// Recommendations.
	pdf.SetFont("Helvetica", "B", 14)
	pdf.SetTextColor(30, 30, 30)
	pdf.CellFormat(pdfTextWidth, 8, "Recommendations", "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 12)
	pdf.SetTextColor(40, 40, 40)
	pdf.MultiCell(pdfTextWidth, lineHeight, tr(content.Recommendations), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("encode pdf: %w", err)
	}

	return &domain.Document{
		Title:    content.Title,
		MIMEType: domain.MIMETypePDF,
		Data:     buf.Bytes(),
		Pages:    pdf.PageCount(),
	}, nil
}

// writeInsightsTable draws a single-column table with a teal header and
// striped rows.
func writeInsightsTable(pdf *fpdf.Fpdf, tr func(string) string, insights []string) {
	pdf.SetDrawColor(220, 220, 220)
	pdf.SetFont("Helvetica", "B", 12)
	pdf.SetFillColor(tealHeader[0], tealHeader[1], tealHeader[2])
	pdf.SetTextColor(255, 255, 255)
	pdf.CellFormat(pdfTextWidth, 9, "Key Insights", "1", 1, "L", true, 0, "")

	pdf.SetFont("Helvetica", "", 11)
	pdf.SetTextColor(40, 40, 40)
	for i, insight := range insights {
		if i%2 == 1 {
			pdf.SetFillColor(245, 245, 245)
		} else {
			pdf.SetFillColor(255, 255, 255)
		}
		pdf.MultiCell(pdfTextWidth, lineHeight+1, tr(insight), "LRB", "L", true)
	}
}
