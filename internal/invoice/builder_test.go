package invoice

import (
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/store"
)

func sampleOrder() store.Order {
	return store.Order{
		ID:             uuid.MustParse("11111111-2222-3333-4444-555555555555"),
		DeliveryRegion: "karnataka",
		Mode:           "SPLIT_LOCAL",
		Currency:       "INR",
		Subtotal:       money.MustParse("239.98"),
		ItemTax:        money.MustParse("18.43"),
		ShippingCharge: money.MustParse("40.00"),
		ShippingTax:    money.MustParse("7.20"),
		CGST:           money.MustParse("12.82"),
		SGST:           money.MustParse("12.81"),
		Discount:       money.MustParse("10.00"),
		GrandTotal:     money.MustParse("295.61"),
		CreatedAt:      time.Date(2026, time.March, 15, 10, 0, 0, 0, time.UTC),
		Lines: []store.OrderLine{
			{
				ProductID:      uuid.New(),
				Title:          "steel bottle",
				HSNCode:        "7310",
				Qty:            2,
				UnitPrice:      money.MustParse("100.00"),
				Amount:         money.MustParse("200.00"),
				Base:           money.MustParse("190.48"),
				Tax:            money.MustParse("9.52"),
				TaxRatePercent: 5,
				CGST:           money.MustParse("4.76"),
				SGST:           money.MustParse("4.76"),
			},
		},
	}
}

func TestNumberFor(t *testing.T) {
	got := NumberFor(sampleOrder())
	if got != "INV-202603-1111111122" {
		t.Fatalf("number = %s, want INV-202603-1111111122", got)
	}
	// Stable: the same order always yields the same number.
	if again := NumberFor(sampleOrder()); again != got {
		t.Fatalf("number not stable: %s vs %s", got, again)
	}
}

func TestFromOrderFreezesAmounts(t *testing.T) {
	o := sampleOrder()
	issued := time.Date(2026, time.March, 16, 9, 0, 0, 0, time.UTC)
	inv := FromOrder(o, issued)

	if inv.OrderID != o.ID {
		t.Fatalf("order id = %s", inv.OrderID)
	}
	if !inv.IssuedAt.Equal(issued) {
		t.Fatalf("issued at = %s", inv.IssuedAt)
	}
	if inv.PlaceOfSupply != "karnataka" || inv.Mode != "SPLIT_LOCAL" {
		t.Fatalf("place/mode = %s/%s", inv.PlaceOfSupply, inv.Mode)
	}
	if got := money.Format(inv.Totals.GrandTotal); got != "295.61" {
		t.Fatalf("grand total = %s, want 295.61", got)
	}
	if len(inv.Lines) != 1 {
		t.Fatalf("lines = %d, want 1", len(inv.Lines))
	}
	ln := inv.Lines[0]
	if ln.HSNCode != "7310" || ln.RatePercent != 5 {
		t.Fatalf("hsn/rate = %s/%d", ln.HSNCode, ln.RatePercent)
	}
	if got := money.Format(ln.Total); got != "200.00" {
		t.Fatalf("line total = %s, want 200.00", got)
	}
	// Blended rate is display-only, derived from the frozen totals.
	if got := money.Format(inv.Totals.BlendedRatePercent); got != "7.68" {
		t.Fatalf("blended rate = %s, want 7.68", got)
	}
}

func TestRenderPDFProducesDocument(t *testing.T) {
	inv := FromOrder(sampleOrder(), time.Now().UTC())
	pdf, err := RenderPDF(inv)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if len(pdf) == 0 {
		t.Fatal("empty pdf output")
	}
	if string(pdf[:5]) != "%PDF-" {
		t.Fatalf("output does not look like a PDF: %q", pdf[:5])
	}
}
