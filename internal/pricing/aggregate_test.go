package pricing

import (
	"testing"

	"github.com/google/uuid"

	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/region"
)

func testLines() []Line {
	return []Line{
		{
			ProductID:        uuid.New(),
			Title:            "steel bottle",
			HSNCode:          "7310",
			UnitPrice:        money.MustParse("100.00"),
			Qty:              2,
			TaxRatePercent:   5,
			PriceIncludesTax: true,
		},
		{
			ProductID:      uuid.New(),
			Title:          "phone case",
			HSNCode:        "3926",
			UnitPrice:      money.MustParse("49.50"),
			Qty:            1,
			TaxRatePercent: 18,
		},
	}
}

func TestPriceLines(t *testing.T) {
	priced, subtotal, itemTax := PriceLines(testLines(), region.SplitLocal)
	if len(priced) != 2 {
		t.Fatalf("priced %d lines, want 2", len(priced))
	}
	if got := money.Format(subtotal); got != "239.98" {
		t.Fatalf("subtotal = %s, want 239.98", got)
	}
	if got := money.Format(itemTax); got != "18.43" {
		t.Fatalf("item tax = %s, want 18.43", got)
	}
	// Inclusive line: 2 x 100.00 at 5% incl resolves on the summed amount.
	if got := money.Format(priced[0].Base); got != "190.48" {
		t.Fatalf("line 0 base = %s, want 190.48", got)
	}
	if got := money.Format(priced[0].Tax); got != "9.52" {
		t.Fatalf("line 0 tax = %s, want 9.52", got)
	}
}

func TestComputeOrderTotalsLocal(t *testing.T) {
	threshold := money.MustParse("500.00")
	ship := ShippingConfig{
		BaseCharge:     money.MustParse("40.00"),
		FreeAbove:      &threshold,
		TaxRatePercent: 18,
	}
	s := ComputeOrderTotals(testLines(), region.SplitLocal, ship, money.MustParse("10.00"))

	if got := money.Format(s.ShippingCharge); got != "40.00" {
		t.Fatalf("shipping charge = %s, want 40.00", got)
	}
	if got := money.Format(s.ShippingTax); got != "7.20" {
		t.Fatalf("shipping tax = %s, want 7.20", got)
	}
	// 239.98 + 18.43 + 40.00 + 7.20 - 10.00
	if got := money.Format(s.GrandTotal); got != "295.61" {
		t.Fatalf("grand total = %s, want 295.61", got)
	}

	// Components must conserve the full tax charged on the order.
	totalTax := s.ItemTax.Add(s.ShippingTax)
	if !s.Components.Total().Equal(totalTax) {
		t.Fatalf("components total %s != item+shipping tax %s",
			money.Format(s.Components.Total()), money.Format(totalTax))
	}
	if !s.Components.IGST.IsZero() {
		t.Fatal("IGST must be zero for local delivery")
	}
}

func TestComputeOrderTotalsCross(t *testing.T) {
	ship := ShippingConfig{BaseCharge: money.MustParse("40.00"), TaxRatePercent: 18}
	s := ComputeOrderTotals(testLines(), region.SingleCross, ship, money.Zero)

	if !s.Components.CGST.IsZero() || !s.Components.SGST.IsZero() {
		t.Fatal("CGST/SGST must be zero for cross delivery")
	}
	if !s.Components.IGST.Equal(s.ItemTax.Add(s.ShippingTax)) {
		t.Fatalf("IGST %s != total tax %s",
			money.Format(s.Components.IGST), money.Format(s.ItemTax.Add(s.ShippingTax)))
	}
	// Same cart, same totals, regardless of how the tax is split.
	if got := money.Format(s.GrandTotal); got != "305.61" {
		t.Fatalf("grand total = %s, want 305.61", got)
	}
}

func TestComputeOrderTotalsFreeShipping(t *testing.T) {
	threshold := money.MustParse("250.00")
	ship := ShippingConfig{
		BaseCharge:     money.MustParse("40.00"),
		FreeAbove:      &threshold,
		TaxRatePercent: 18,
	}
	// Pre-shipping order value 258.41 clears the threshold.
	s := ComputeOrderTotals(testLines(), region.SplitLocal, ship, money.Zero)
	if !s.ShippingCharge.IsZero() || !s.ShippingTax.IsZero() {
		t.Fatalf("expected free shipping, got charge %s tax %s",
			money.Format(s.ShippingCharge), money.Format(s.ShippingTax))
	}
	if got := money.Format(s.GrandTotal); got != "258.41" {
		t.Fatalf("grand total = %s, want 258.41", got)
	}
}
