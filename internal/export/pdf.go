// Package export renders derived views into downloadable documents.
package export

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"weekly-dinner-planner/internal/mealplan"
)

const (
	pageBottomLimit = 270 // mm, A4 with bottom margin
	leftMargin      = 20
	itemIndent      = 28
)

// ShoppingListPDF renders a shopping list into a paginated A4 PDF: one title
// header, a bold heading per category and one bullet line per item. A new
// page is started whenever the vertical space is exhausted.
func ShoppingListPDF(list []mealplan.CategoryItems) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	tr := pdf.UnicodeTranslatorFromDescriptor("")
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 20)
	pdf.SetXY(leftMargin, 20)
	pdf.Cell(0, 10, tr("Einkaufsliste"))
	pdf.SetY(38)

	for _, category := range list {
		ensureSpace(pdf, 12)
		pdf.SetFont("Helvetica", "B", 14)
		pdf.SetX(leftMargin)
		pdf.Cell(0, 8, tr(category.Category))
		pdf.Ln(10)

		pdf.SetFont("Helvetica", "", 12)
		for _, item := range category.Items {
			ensureSpace(pdf, 7)
			line := fmt.Sprintf("• %s: %s %s", item.Name, formatAmount(item.Amount), item.Unit)
			pdf.SetX(itemIndent)
			pdf.Cell(0, 6, tr(line))
			pdf.Ln(7)
		}
		pdf.Ln(3)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("failed to render shopping list PDF: %w", err)
	}
	return buf.Bytes(), nil
}

func ensureSpace(pdf *gofpdf.Fpdf, needed float64) {
	if pdf.GetY()+needed > pageBottomLimit {
		pdf.AddPage()
		pdf.SetY(20)
	}
}

func formatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}
