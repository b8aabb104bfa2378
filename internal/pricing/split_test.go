package pricing

import (
	"testing"

	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/region"
)

func TestSplitTaxLocalConservation(t *testing.T) {
	// The two local halves must always sum back to the input exactly,
	// including amounts with an odd minor unit.
	for _, raw := range []string{"10.00", "10.01", "0.01", "9.52", "8.91", "123.45"} {
		tax := money.MustParse(raw)
		c := SplitTax(tax, region.SplitLocal)
		if !c.CGST.Add(c.SGST).Equal(tax) {
			t.Fatalf("%s: CGST %s + SGST %s != %s", raw,
				money.Format(c.CGST), money.Format(c.SGST), raw)
		}
		if !c.IGST.IsZero() {
			t.Fatalf("%s: IGST must be zero for local split", raw)
		}
	}
}

func TestSplitTaxOddMinorUnit(t *testing.T) {
	c := SplitTax(money.MustParse("10.01"), region.SplitLocal)
	if got := money.Format(c.CGST); got != "5.01" {
		t.Fatalf("CGST = %s, want 5.01", got)
	}
	if got := money.Format(c.SGST); got != "5.00" {
		t.Fatalf("SGST = %s, want 5.00", got)
	}
}

func TestSplitTaxCross(t *testing.T) {
	tax := money.MustParse("18.43")
	c := SplitTax(tax, region.SingleCross)
	if !c.IGST.Equal(tax) {
		t.Fatalf("IGST = %s, want %s", money.Format(c.IGST), money.Format(tax))
	}
	if !c.CGST.IsZero() || !c.SGST.IsZero() {
		t.Fatal("CGST/SGST must be zero for cross-jurisdiction delivery")
	}
}

func TestComponentsAddTotal(t *testing.T) {
	a := SplitTax(money.MustParse("9.52"), region.SplitLocal)
	b := SplitTax(money.MustParse("7.20"), region.SplitLocal)
	sum := a.Add(b)
	if got := money.Format(sum.Total()); got != "16.72" {
		t.Fatalf("total = %s, want 16.72", got)
	}
}
