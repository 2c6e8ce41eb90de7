package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// A4 portrait in millimetres.
const (
	pageWidth    = 210.0
	pageHeight   = 297.0
	pageMargin   = 15.0
	footerHeight = 10.0
	rowHeight    = 6.5
)

// renderPDF lays doc out on A4 pages. When the next row would cross the
// bottom margin a new page is started and the table header repeated, so
// long tables continue until every row is placed.
func renderPDF(doc Document) (*fpdf.Fpdf, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, pageMargin)
	pdf.AliasNbPages("{nb}")
	pdf.SetTitle(doc.Title, true)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.SetFooterFunc(func() {
		pdf.SetY(-pageMargin)
		pdf.SetFont("Helvetica", "I", 8)
		pdf.SetTextColor(110, 110, 105)
		pdf.CellFormat(0, 5, tr(fmt.Sprintf("%s  -  page %d of {nb}", doc.Title, pdf.PageNo())), "", 0, "C", false, 0, "")
	})

	bottom := pageHeight - pageMargin - footerHeight
	usable := pageWidth - 2*pageMargin

	pdf.AddPage()
	pdf.SetFont("Helvetica", "B", 16)
	pdf.CellFormat(0, 9, tr(doc.Title), "", 1, "L", false, 0, "")
	if doc.Subtitle != "" {
		pdf.SetFont("Helvetica", "", 11)
		pdf.CellFormat(0, 6, tr(doc.Subtitle), "", 1, "L", false, 0, "")
	}
	if !doc.Generated.IsZero() {
		pdf.SetFont("Helvetica", "", 8)
		pdf.CellFormat(0, 5, "Generated "+doc.Generated.Format("2006-01-02 15:04"), "", 1, "L", false, 0, "")
	}
	pdf.Ln(3)

	ensure := func(h float64) bool {
		if pdf.GetY()+h > bottom {
			pdf.AddPage()
			return true
		}
		return false
	}

	for _, f := range doc.Facts {
		ensure(rowHeight)
		pdf.SetFont("Helvetica", "B", 10)
		pdf.CellFormat(usable*0.4, rowHeight, tr(f.Label), "", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 10)
		pdf.CellFormat(usable*0.6, rowHeight, tr(f.Value), "", 1, "L", false, 0, "")
	}

	for _, t := range doc.Tables {
		if len(t.Headers) == 0 {
			continue
		}
		widths := columnWidths(pdf, t, usable, tr)

		header := func() {
			pdf.SetFont("Helvetica", "B", 9)
			pdf.SetFillColor(230, 228, 217)
			for i, h := range t.Headers {
				pdf.CellFormat(widths[i], rowHeight, tr(h), "1", 0, align(i), true, 0, "")
			}
			pdf.Ln(-1)
			pdf.SetFont("Helvetica", "", 9)
		}

		pdf.Ln(4)
		ensure(8 + 2*rowHeight)
		pdf.SetFont("Helvetica", "B", 12)
		pdf.CellFormat(0, 8, tr(t.Title), "", 1, "L", false, 0, "")
		header()

		for _, row := range t.Rows {
			if ensure(rowHeight) {
				header()
			}
			for i := range t.Headers {
				cell := ""
				if i < len(row) {
					cell = row[i]
				}
				pdf.CellFormat(widths[i], rowHeight, tr(cell), "1", 0, align(i), false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	if err := pdf.Error(); err != nil {
		return nil, fmt.Errorf("rendering pdf: %w", err)
	}
	return pdf, nil
}

func align(col int) string {
	if col == 0 {
		return "L"
	}
	return "R"
}

// columnWidths sizes columns to their widest cell and scales them to fill
// the usable page width. Cells are measured after tr, as they are drawn.
func columnWidths(pdf *fpdf.Fpdf, t Table, usable float64, tr func(string) string) []float64 {
	pdf.SetFont("Helvetica", "B", 9)
	widths := make([]float64, len(t.Headers))
	for i, h := range t.Headers {
		widths[i] = pdf.GetStringWidth(tr(h)) + 4
	}
	pdf.SetFont("Helvetica", "", 9)
	for _, row := range t.Rows {
		for i := 0; i < len(widths) && i < len(row); i++ {
			widths[i] = max(widths[i], pdf.GetStringWidth(tr(row[i]))+4)
		}
	}

	total := 0.0
	for _, w := range widths {
		total += w
	}
	for i := range widths {
		widths[i] = widths[i] / total * usable
	}
	return widths
}

func writePDF(w io.Writer, doc Document) error {
	pdf, err := renderPDF(doc)
	if err != nil {
		return err
	}
	return pdf.Output(w)
}
