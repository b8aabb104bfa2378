package money

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Amount represents a monetary value with arbitrary precision.
type Amount = decimal.Decimal

// Zero is the additive identity for amounts.
var Zero = decimal.Zero

// Round2 rounds half away from zero to two decimal places. Every pricing step
// rounds through this helper so intermediate values and displayed values agree.
func Round2(a Amount) Amount {
	return a.Round(2)
}

// FromInt converts a whole currency amount.
func FromInt(v int64) Amount {
	return decimal.NewFromInt(v)
}

// Parse converts a decimal string such as "799.00" into an Amount.
func Parse(s string) (Amount, error) {
	trimmed := strings.TrimSpace(s)
	if trimmed == "" {
		return decimal.Zero, fmt.Errorf("money: empty amount")
	}
	a, err := decimal.NewFromString(trimmed)
	if err != nil {
		return decimal.Zero, fmt.Errorf("money: parse %q: %w", s, err)
	}
	return a, nil
}

// MustParse is Parse for literals in tests and seeds.
func MustParse(s string) Amount {
	a, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return a
}

// Format renders an amount with exactly two decimal places for display,
// persistence and invoice output.
func Format(a Amount) string {
	return a.StringFixed(2)
}
