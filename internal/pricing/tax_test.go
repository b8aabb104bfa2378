package pricing

import (
	"errors"
	"testing"

	"github.com/craftroot/checkout-api/internal/money"
)

func TestResolveTaxInclusive(t *testing.T) {
	// 200.00 at 5% inclusive: base 190.48, tax 9.52.
	tb := ResolveTax(money.MustParse("200.00"), 5, true)
	if got := money.Format(tb.Base); got != "190.48" {
		t.Fatalf("base = %s, want 190.48", got)
	}
	if got := money.Format(tb.Tax); got != "9.52" {
		t.Fatalf("tax = %s, want 9.52", got)
	}
	if got := money.Format(tb.Base.Add(tb.Tax)); got != "200.00" {
		t.Fatalf("base+tax = %s, want 200.00", got)
	}
}

func TestResolveTaxExclusive(t *testing.T) {
	tb := ResolveTax(money.MustParse("49.50"), 18, false)
	if got := money.Format(tb.Base); got != "49.50" {
		t.Fatalf("base = %s, want 49.50", got)
	}
	if got := money.Format(tb.Tax); got != "8.91" {
		t.Fatalf("tax = %s, want 8.91", got)
	}
}

func TestResolveTaxZeroRate(t *testing.T) {
	for _, inclusive := range []bool{true, false} {
		tb := ResolveTax(money.MustParse("123.45"), 0, inclusive)
		if got := money.Format(tb.Base); got != "123.45" {
			t.Fatalf("inclusive=%v: base = %s, want 123.45", inclusive, got)
		}
		if !tb.Tax.IsZero() {
			t.Fatalf("inclusive=%v: tax = %s, want 0", inclusive, money.Format(tb.Tax))
		}
	}
}

func TestResolveTaxInclusiveRoundTrip(t *testing.T) {
	// Extracting the base and re-adding tax must reproduce the displayed
	// price to the minor unit for every supported slab.
	amounts := []string{"99.99", "100.00", "250.00", "1234.56", "0.01"}
	for _, raw := range amounts {
		for _, rate := range SupportedRates {
			amount := money.MustParse(raw)
			tb := ResolveTax(amount, rate, true)
			diff := tb.Base.Add(tb.Tax).Sub(amount).Abs()
			if diff.GreaterThan(money.MustParse("0.01")) {
				t.Fatalf("amount %s rate %d%%: round trip off by %s", raw, rate, money.Format(diff))
			}
		}
	}
}

func TestBlendedRatePercent(t *testing.T) {
	got := BlendedRatePercent(money.MustParse("200.00"), money.MustParse("24.00"))
	if money.Format(got) != "12.00" {
		t.Fatalf("blended rate = %s, want 12.00", money.Format(got))
	}
	if !BlendedRatePercent(money.Zero, money.MustParse("5.00")).IsZero() {
		t.Fatal("zero subtotal must yield zero blended rate")
	}
}

func TestValidateLines(t *testing.T) {
	valid := Line{UnitPrice: money.MustParse("10.00"), Qty: 1, TaxRatePercent: 5}
	cases := []struct {
		name string
		line Line
		ok   bool
	}{
		{"valid", valid, true},
		{"negative price", Line{UnitPrice: money.MustParse("-1.00"), Qty: 1, TaxRatePercent: 5}, false},
		{"zero qty", Line{UnitPrice: money.MustParse("10.00"), Qty: 0, TaxRatePercent: 5}, false},
		{"unsupported rate", Line{UnitPrice: money.MustParse("10.00"), Qty: 1, TaxRatePercent: 7}, false},
	}
	for _, tc := range cases {
		err := ValidateLines([]Line{tc.line})
		if tc.ok && err != nil {
			t.Fatalf("%s: unexpected error %v", tc.name, err)
		}
		if !tc.ok {
			var invalid ErrInvalidLine
			if !errors.As(err, &invalid) {
				t.Fatalf("%s: expected ErrInvalidLine, got %v", tc.name, err)
			}
		}
	}
}
