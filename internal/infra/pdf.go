package infra

// pdf.go: RFQ / ORS sheet rendering using go-pdf/fpdf.
// A4 portrait layout:
//   - Centered title
//   - Date and party lines
//   - Field / Value table
//   - Formulation table (when the SKU has one)
//   - Required documents list

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"biowearth/internal/document"

	"github.com/go-pdf/fpdf"
)

const (
	pageMargin = 14.0
	rowHeight  = 7.0
)

// RenderSheetPDF lays out one sheet and returns the encoded PDF.
func RenderSheetPDF(sheet document.Sheet) ([]byte, error) {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(pageMargin, 20, pageMargin)
	pdf.SetAutoPageBreak(true, 20)
	pdf.AddPage()
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	text := func(s string) string { return tr(strings.ReplaceAll(s, "₹", "Rs.")) }

	pageW, _ := pdf.GetPageSize()
	contentW := pageW - 2*pageMargin

	// ── Header ───────────────────────────────────────────────────────────────
	pdf.SetFont("Helvetica", "B", 20)
	pdf.CellFormat(contentW, 10, text(sheet.Title), "", 1, "C", false, 0, "")
	pdf.Ln(4)

	pdf.SetFont("Helvetica", "", 10)
	pdf.CellFormat(contentW, 5, text("Date: "+sheet.Date), "", 1, "L", false, 0, "")
	pdf.CellFormat(contentW, 5, text(fmt.Sprintf("%s: %s", sheet.PartyLabel, sheet.PartyName)), "", 1, "L", false, 0, "")
	pdf.Ln(4)

	// ── Field / Value table ─────────────────────────────────────────────────
	fieldW := contentW * 0.35
	valueW := contentW - fieldW
	pdf.SetFillColor(41, 128, 185)
	pdf.SetTextColor(255, 255, 255)
	pdf.SetFont("Helvetica", "B", 10)
	pdf.CellFormat(fieldW, rowHeight, "Field", "1", 0, "L", true, 0, "")
	pdf.CellFormat(valueW, rowHeight, "Details", "1", 1, "L", true, 0, "")

	pdf.SetTextColor(0, 0, 0)
	pdf.SetFont("Helvetica", "", 9)
	for _, r := range sheet.Rows {
		pdf.SetFont("Helvetica", "B", 9)
		pdf.CellFormat(fieldW, rowHeight, text(r.Field), "1", 0, "L", false, 0, "")
		pdf.SetFont("Helvetica", "", 9)
		pdf.CellFormat(valueW, rowHeight, text(r.Value), "1", 1, "L", false, 0, "")
	}

	// ── Formulation ──────────────────────────────────────────────────────────
	if len(sheet.Ingredients) > 0 {
		sectionHeading(pdf, contentW, "Formulation Details:")
		widths := []float64{contentW * 0.32, contentW * 0.14, contentW * 0.18, contentW * 0.18, contentW * 0.18}
		pdf.SetFillColor(39, 174, 96)
		pdf.SetTextColor(255, 255, 255)
		pdf.SetFont("Helvetica", "B", 9)
		for i, h := range document.IngredientHeader {
			pdf.CellFormat(widths[i], rowHeight, h, "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)

		pdf.SetTextColor(0, 0, 0)
		pdf.SetFont("Helvetica", "", 9)
		for _, ing := range sheet.Ingredients {
			cells := []string{ing.Name, ing.Type, ing.Per100g, ing.PerServing, ing.PerUnit}
			for i, c := range cells {
				align := "C"
				if i == 0 {
					align = "L"
				}
				pdf.CellFormat(widths[i], rowHeight, text(c), "1", 0, align, false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	// ── Required documents ───────────────────────────────────────────────────
	if len(sheet.RequiredDocs) > 0 {
		sectionHeading(pdf, contentW, "Required Documents:")
		pdf.SetFont("Helvetica", "", 9)
		for _, d := range sheet.RequiredDocs {
			pdf.CellFormat(contentW, rowHeight, text("- "+d), "", 1, "L", false, 0, "")
		}
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("pdf: render %s: %w", sheet.FileName, err)
	}
	return buf.Bytes(), nil
}

func sectionHeading(pdf *fpdf.Fpdf, w float64, title string) {
	pdf.Ln(6)
	pdf.SetFont("Helvetica", "B", 11)
	pdf.CellFormat(w, 6, title, "", 1, "L", false, 0, "")
	pdf.Ln(1)
}

// WriteSheetPDF renders sheet into storagePath/sheet.FileName (the directory is
// created if needed) and returns the file path.
func WriteSheetPDF(sheet document.Sheet, storagePath string) (string, error) {
	if err := os.MkdirAll(storagePath, 0755); err != nil {
		return "", fmt.Errorf("pdf: create storage dir: %w", err)
	}
	data, err := RenderSheetPDF(sheet)
	if err != nil {
		return "", err
	}
	filePath := filepath.Join(storagePath, filepath.Base(sheet.FileName))
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return "", fmt.Errorf("pdf: write %s: %w", filePath, err)
	}
	return filePath, nil
}
