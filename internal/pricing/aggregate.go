package pricing

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/region"
)

// Line is one product line in an order being priced. It is assembled from the
// cart plus the product's tax metadata and stays immutable for the duration
// of one computation.
type Line struct {
	ProductID        uuid.UUID
	Title            string
	HSNCode          string
	UnitPrice        money.Amount
	Qty              int
	TaxRatePercent   int
	PriceIncludesTax bool
}

// PricedLine is a line with its resolved amounts. HSNCode and TaxRatePercent
// are passed through unchanged for invoice rendering.
type PricedLine struct {
	Line
	Amount     money.Amount
	Base       money.Amount
	Tax        money.Amount
	Components Components
}

// OrderTaxSummary aggregates the priced order. It is a value object
// recomputed on demand, never mutated in place.
type OrderTaxSummary struct {
	Mode           region.Mode
	Lines          []PricedLine
	Subtotal       money.Amount
	ItemTax        money.Amount
	ShippingCharge money.Amount
	ShippingTax    money.Amount
	Components     Components
	Discount       money.Amount
	GrandTotal     money.Amount
}

// PriceLines resolves tax for every line and returns the priced lines with
// the running subtotal (tax-exclusive) and item tax. Tax is resolved once on
// the summed line amount, not per unit. Splitting happens per line so invoice
// lines can individually show their split components.
func PriceLines(lines []Line, mode region.Mode) (priced []PricedLine, subtotal, itemTax money.Amount) {
	priced = make([]PricedLine, 0, len(lines))
	subtotal = money.Zero
	itemTax = money.Zero
	for _, ln := range lines {
		amount := money.Round2(ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Qty))))
		tb := ResolveTax(amount, ln.TaxRatePercent, ln.PriceIncludesTax)
		priced = append(priced, PricedLine{
			Line:       ln,
			Amount:     amount,
			Base:       tb.Base,
			Tax:        tb.Tax,
			Components: SplitTax(tb.Tax, mode),
		})
		subtotal = subtotal.Add(tb.Base)
		itemTax = itemTax.Add(tb.Tax)
	}
	return priced, subtotal, itemTax
}

// ComputeOrderTotals runs the single-pass pricing pipeline: price every line,
// quote shipping on the pre-shipping order value, split shipping tax under
// the same jurisdiction mode and fold everything into the grand total. It is
// total over valid inputs; callers gate with ValidateLines first.
func ComputeOrderTotals(lines []Line, mode region.Mode, ship ShippingConfig, discount money.Amount) OrderTaxSummary {
	priced, subtotal, itemTax := PriceLines(lines, mode)

	components := Components{}
	for _, pl := range priced {
		components = components.Add(pl.Components)
	}

	quote := QuoteShipping(subtotal.Add(itemTax), ship)
	components = components.Add(SplitTax(quote.Tax, mode))

	grand := money.Round2(subtotal.
		Add(itemTax).
		Add(quote.Charge).
		Add(quote.Tax).
		Sub(discount))

	return OrderTaxSummary{
		Mode:           mode,
		Lines:          priced,
		Subtotal:       subtotal,
		ItemTax:        itemTax,
		ShippingCharge: quote.Charge,
		ShippingTax:    quote.Tax,
		Components:     components,
		Discount:       discount,
		GrandTotal:     grand,
	}
}
