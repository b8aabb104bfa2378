package pricing

import "github.com/craftroot/checkout-api/internal/money"

// ShippingConfig is the per-region rule set for delivery charges.
type ShippingConfig struct {
	BaseCharge money.Amount `json:"baseCharge"`
	// FreeAbove waives the charge once the order value reaches the
	// threshold. Nil means no free-delivery threshold is offered.
	FreeAbove *money.Amount `json:"freeAbove,omitempty"`
	// TaxRatePercent is the slab applied to the shipping charge itself,
	// fixed per region and distinct from per-product rates.
	TaxRatePercent int `json:"taxRatePercent"`
}

// ShippingQuote is the result of applying shipping rules to an order value.
type ShippingQuote struct {
	Charge money.Amount `json:"charge"`
	Tax    money.Amount `json:"tax"`
}

// QuoteShipping determines the delivery charge for the given pre-shipping
// order value. Meeting the free-delivery threshold (>=) zeroes the charge.
// The charge is always treated as tax-exclusive.
func QuoteShipping(orderValue money.Amount, cfg ShippingConfig) ShippingQuote {
	charge := money.Round2(cfg.BaseCharge)
	if cfg.FreeAbove != nil && orderValue.GreaterThanOrEqual(*cfg.FreeAbove) {
		charge = money.Zero
	}
	tax := ResolveTax(charge, cfg.TaxRatePercent, false).Tax
	return ShippingQuote{Charge: charge, Tax: tax}
}
