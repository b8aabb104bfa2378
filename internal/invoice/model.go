package invoice

import (
	"time"

	"github.com/google/uuid"

	"github.com/craftroot/checkout-api/internal/money"
)

// Invoice is the tax invoice rendered for a placed order.
type Invoice struct {
	Number        string
	OrderID       uuid.UUID
	IssuedAt      time.Time
	PlaceOfSupply string
	Mode          string
	Currency      string
	Lines         []Line
	Totals        Totals
}

// Line is one invoice row. HSN code and tax percent come through from the
// order unchanged; the invoice never recomputes them.
type Line struct {
	Description   string
	HSNCode       string
	Qty           int
	UnitPrice     money.Amount
	TaxableAmount money.Amount
	RatePercent   int
	CGST          money.Amount
	SGST          money.Amount
	IGST          money.Amount
	Total         money.Amount
}

// Totals holds the invoice roll-up.
type Totals struct {
	TaxableAmount  money.Amount
	CGST           money.Amount
	SGST           money.Amount
	IGST           money.Amount
	ShippingCharge money.Amount
	ShippingTax    money.Amount
	Discount       money.Amount
	GrandTotal     money.Amount
	// BlendedRatePercent is total GST over taxable amount, shown for
	// reference only. With mixed slabs it matches no single line's rate.
	BlendedRatePercent money.Amount
}
