package export

import (
	"bytes"
	"fmt"

	"github.com/go-pdf/fpdf"
)

// PDF layout constants (millimetres on A4 portrait).
const (
	pdfFontFamily  = "Helvetica"
	pdfTitleSize   = 18.0
	pdfSectionSize = 13.0
	pdfBodySize    = 10.0
	pdfFooterSize  = 8.0
	pdfLineHeight  = 7.0
	pdfLabelColW   = 95.0
	pdfValueColW   = 85.0
)

// renderPDF draws the document tree with fpdf. Every page carries the
// "Page X of Y" footer via the page-count alias.
func renderPDF(doc *Document) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(doc.Title+" - "+doc.Subtitle, false)
	pdf.AliasNbPages("")
	pdf.SetFooterFunc(func() {
		pdf.SetY(-15)
		pdf.SetFont(pdfFontFamily, "I", pdfFooterSize)
		pdf.CellFormat(0, 10, fmt.Sprintf("Page %d of {nb}", pdf.PageNo()), "", 0, "C", false, 0, "")
	})
	pdf.AddPage()

	// Branded header.
	pdf.SetFont(pdfFontFamily, "B", pdfTitleSize)
	pdf.CellFormat(0, 10, doc.Title, "", 1, "L", false, 0, "")
	pdf.SetFont(pdfFontFamily, "", pdfSectionSize)
	pdf.CellFormat(0, 8, doc.Subtitle, "", 1, "L", false, 0, "")
	pdf.Ln(2)

	pdf.SetFont(pdfFontFamily, "", pdfBodySize)
	for _, line := range doc.Meta {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}

	for _, section := range doc.Sections {
		pdf.Ln(6)
		pdf.SetFont(pdfFontFamily, "B", pdfSectionSize)
		pdf.CellFormat(0, 8, section.Title, "", 1, "L", false, 0, "")

		switch {
		case section.Table != nil:
			drawTable(pdf, section.Table)
		case len(section.List) > 0:
			drawList(pdf, section.List)
		case section.Note != "":
			pdf.SetFont(pdfFontFamily, "I", pdfBodySize)
			pdf.CellFormat(0, pdfLineHeight, section.Note, "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func drawTable(pdf *fpdf.Fpdf, table *Table) {
	pdf.SetFont(pdfFontFamily, "B", pdfBodySize)
	pdf.SetFillColor(235, 235, 235)
	for i, col := range table.Columns {
		pdf.CellFormat(columnWidth(i), pdfLineHeight, col, "1", 0, "L", true, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont(pdfFontFamily, "", pdfBodySize)
	for _, row := range table.Rows {
		for i, cell := range row {
			pdf.CellFormat(columnWidth(i), pdfLineHeight, cell, "1", 0, "L", false, 0, "")
		}
		pdf.Ln(-1)
	}
}

func drawList(pdf *fpdf.Fpdf, items []string) {
	pdf.SetFont(pdfFontFamily, "", pdfBodySize)
	for _, item := range items {
		pdf.MultiCell(0, 6, "- "+item, "", "L", false)
	}
}

func columnWidth(i int) float64 {
	if i == 0 {
		return pdfLabelColW
	}
	return pdfValueColW
}
