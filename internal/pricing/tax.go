package pricing

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/craftroot/checkout-api/internal/money"
)

// SupportedRates enumerates the GST slabs a product may carry.
var SupportedRates = []int{0, 5, 12, 18}

// ValidRate reports whether the percentage belongs to a supported GST slab.
func ValidRate(ratePercent int) bool {
	for _, r := range SupportedRates {
		if r == ratePercent {
			return true
		}
	}
	return false
}

// TaxBreakdown is the result of resolving tax for one monetary amount.
type TaxBreakdown struct {
	Base money.Amount
	Tax  money.Amount
}

var hundred = decimal.NewFromInt(100)

// ResolveTax computes the tax-exclusive base and the tax charged for an
// amount. When the amount already includes tax the base is extracted by
// dividing out the rate; otherwise tax is added on top. Both results round
// half away from zero at each step so that invoice totals reproduce the
// displayed values exactly. A zero rate yields the amount unchanged.
func ResolveTax(amount money.Amount, ratePercent int, inclusive bool) TaxBreakdown {
	if ratePercent <= 0 {
		return TaxBreakdown{Base: money.Round2(amount), Tax: money.Zero}
	}
	rate := decimal.NewFromInt(int64(ratePercent))
	if inclusive {
		base := money.Round2(amount.Mul(hundred).Div(hundred.Add(rate)))
		tax := money.Round2(amount.Sub(base))
		return TaxBreakdown{Base: base, Tax: tax}
	}
	tax := money.Round2(amount.Mul(rate).Div(hundred))
	return TaxBreakdown{Base: money.Round2(amount), Tax: tax}
}

// BlendedRatePercent derives the effective order-level GST percentage shown
// on invoices. With mixed slabs in one order it is a display simplification
// and may not equal any single line's rate.
func BlendedRatePercent(subtotal, itemTax money.Amount) money.Amount {
	if !subtotal.IsPositive() {
		return money.Zero
	}
	return money.Round2(itemTax.Mul(hundred).Div(subtotal))
}

// ErrInvalidLine signals a caller contract violation detected before the
// aggregator runs.
type ErrInvalidLine struct {
	Index  int
	Reason string
}

func (e ErrInvalidLine) Error() string {
	return fmt.Sprintf("pricing: line %d: %s", e.Index, e.Reason)
}

// ValidateLines rejects lines the aggregator is not defined over: negative
// prices, quantities below one and unsupported tax slabs.
func ValidateLines(lines []Line) error {
	for i, ln := range lines {
		if ln.UnitPrice.IsNegative() {
			return ErrInvalidLine{Index: i, Reason: "unit price must not be negative"}
		}
		if ln.Qty < 1 {
			return ErrInvalidLine{Index: i, Reason: "quantity must be at least 1"}
		}
		if !ValidRate(ln.TaxRatePercent) {
			return ErrInvalidLine{Index: i, Reason: fmt.Sprintf("unsupported tax rate %d%%", ln.TaxRatePercent)}
		}
	}
	return nil
}
