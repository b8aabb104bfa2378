package invoice

import (
	"bytes"
	"fmt"
	"time"

	"github.com/jung-kurt/gofpdf"

	"github.com/craftroot/checkout-api/internal/money"
)

// RenderPDF renders the invoice as an A4 PDF.
func RenderPDF(inv Invoice) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "B", 14)
	pdf.AddPage()

	pdf.Cell(0, 8, "Tax Invoice")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Invoice: %s", inv.Number))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Order: %s", inv.OrderID))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Issued: %s", inv.IssuedAt.Format(time.RFC3339)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Place of supply: %s", inv.PlaceOfSupply))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Currency: %s", inv.Currency))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 9)
	pdf.CellFormat(52, 6, "Item", "1", 0, "L", false, 0, "")
	pdf.CellFormat(20, 6, "HSN", "1", 0, "C", false, 0, "")
	pdf.CellFormat(10, 6, "Qty", "1", 0, "C", false, 0, "")
	pdf.CellFormat(24, 6, "Taxable", "1", 0, "C", false, 0, "")
	pdf.CellFormat(12, 6, "Rate", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 6, "CGST", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 6, "SGST", "1", 0, "C", false, 0, "")
	pdf.CellFormat(18, 6, "IGST", "1", 0, "C", false, 0, "")
	pdf.CellFormat(22, 6, "Total", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 9)
	for _, ln := range inv.Lines {
		pdf.CellFormat(52, 6, ln.Description, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, ln.HSNCode, "1", 0, "C", false, 0, "")
		pdf.CellFormat(10, 6, fmt.Sprintf("%d", ln.Qty), "1", 0, "C", false, 0, "")
		pdf.CellFormat(24, 6, money.Format(ln.TaxableAmount), "1", 0, "R", false, 0, "")
		pdf.CellFormat(12, 6, fmt.Sprintf("%d%%", ln.RatePercent), "1", 0, "C", false, 0, "")
		pdf.CellFormat(18, 6, money.Format(ln.CGST), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 6, money.Format(ln.SGST), "1", 0, "R", false, 0, "")
		pdf.CellFormat(18, 6, money.Format(ln.IGST), "1", 0, "R", false, 0, "")
		pdf.CellFormat(22, 6, money.Format(ln.Total), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	pdf.Ln(4)
	writeTotal := func(label, value string) {
		pdf.CellFormat(140, 6, label, "", 0, "R", false, 0, "")
		pdf.CellFormat(54, 6, value, "", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}
	writeTotal("Taxable amount", money.Format(inv.Totals.TaxableAmount))
	writeTotal("CGST", money.Format(inv.Totals.CGST))
	writeTotal("SGST", money.Format(inv.Totals.SGST))
	writeTotal("IGST", money.Format(inv.Totals.IGST))
	writeTotal("Shipping", money.Format(inv.Totals.ShippingCharge))
	writeTotal("Shipping tax", money.Format(inv.Totals.ShippingTax))
	writeTotal("Discount", "-"+money.Format(inv.Totals.Discount))
	writeTotal(fmt.Sprintf("Effective GST %% (blended): %s", money.Format(inv.Totals.BlendedRatePercent)), "")
	pdf.SetFont("Arial", "B", 10)
	writeTotal("Grand total", money.Format(inv.Totals.GrandTotal))

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("invoice: render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
