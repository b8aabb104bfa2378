package invoice

import (
	"fmt"
	"strings"
	"time"

	"github.com/craftroot/checkout-api/internal/pricing"
	"github.com/craftroot/checkout-api/internal/store"
)

// NumberFor derives the stable invoice number for an order.
func NumberFor(o store.Order) string {
	short := strings.ToUpper(strings.ReplaceAll(o.ID.String(), "-", ""))[:10]
	return fmt.Sprintf("INV-%s-%s", o.CreatedAt.Format("200601"), short)
}

// FromOrder assembles the invoice value from a persisted order. All amounts
// are the frozen values computed at checkout; nothing is re-derived here
// except the display-only blended rate.
func FromOrder(o store.Order, issuedAt time.Time) Invoice {
	inv := Invoice{
		Number:        NumberFor(o),
		OrderID:       o.ID,
		IssuedAt:      issuedAt,
		PlaceOfSupply: o.DeliveryRegion,
		Mode:          o.Mode,
		Currency:      o.Currency,
		Lines:         make([]Line, 0, len(o.Lines)),
	}
	for _, ln := range o.Lines {
		inv.Lines = append(inv.Lines, Line{
			Description:   ln.Title,
			HSNCode:       ln.HSNCode,
			Qty:           ln.Qty,
			UnitPrice:     ln.UnitPrice,
			TaxableAmount: ln.Base,
			RatePercent:   ln.TaxRatePercent,
			CGST:          ln.CGST,
			SGST:          ln.SGST,
			IGST:          ln.IGST,
			Total:         ln.Base.Add(ln.Tax),
		})
	}
	inv.Totals = Totals{
		TaxableAmount:      o.Subtotal,
		CGST:               o.CGST,
		SGST:               o.SGST,
		IGST:               o.IGST,
		ShippingCharge:     o.ShippingCharge,
		ShippingTax:        o.ShippingTax,
		Discount:           o.Discount,
		GrandTotal:         o.GrandTotal,
		BlendedRatePercent: pricing.BlendedRatePercent(o.Subtotal, o.ItemTax),
	}
	return inv
}
