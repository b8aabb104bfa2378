package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/region"
)

// Components carries a tax amount divided across GST heads. For SplitLocal
// deliveries the CGST/SGST pair is populated; for SingleCross only IGST.
type Components struct {
	CGST money.Amount `json:"cgst"`
	SGST money.Amount `json:"sgst"`
	IGST money.Amount `json:"igst"`
}

var two = decimal.NewFromInt(2)

// SplitTax divides a tax amount according to the jurisdiction mode. The local
// split computes the first half by rounding and assigns the remainder to the
// second half, so the pair always sums exactly to the input even for
// odd-minor-unit amounts. The second component is never derived from the rate
// independently; that can drift by one minor unit.
func SplitTax(tax money.Amount, mode region.Mode) Components {
	if mode == region.SplitLocal {
		half := money.Round2(tax.Div(two))
		return Components{CGST: half, SGST: tax.Sub(half)}
	}
	return Components{IGST: tax}
}

// Add accumulates another set of components.
func (c Components) Add(other Components) Components {
	return Components{
		CGST: c.CGST.Add(other.CGST),
		SGST: c.SGST.Add(other.SGST),
		IGST: c.IGST.Add(other.IGST),
	}
}

// Total sums all heads back into a single tax amount.
func (c Components) Total() money.Amount {
	return c.CGST.Add(c.SGST).Add(c.IGST)
}
