package coupon

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/craftroot/checkout-api/internal/money"
)

var (
	// ErrNotFound is returned when no coupon exists for the supplied code.
	ErrNotFound = errors.New("coupon not found")
	// ErrInactive is returned when the coupon exists but is disabled.
	ErrInactive = errors.New("coupon not active")
	// ErrMinimumSpendUnmet indicates the order subtotal did not meet the coupon requirement.
	ErrMinimumSpendUnmet = errors.New("coupon minimum order value not met")
)

// DiscountType enumerates the supported discount strategies.
type DiscountType string

const (
	// DiscountPercentage applies a percentage of the order subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountFixed applies a fixed amount capped at the order subtotal.
	DiscountFixed DiscountType = "fixed"
)

// Rule captures the runtime constraints of a coupon.
type Rule struct {
	Code          string
	Type          DiscountType
	Value         money.Amount
	MinOrderValue *money.Amount
	Active        bool
}

// Validate ensures the rule can be applied to the given order subtotal.
func (r Rule) Validate(subtotal money.Amount) error {
	if !r.Active {
		return ErrInactive
	}
	if r.MinOrderValue != nil && subtotal.LessThan(*r.MinOrderValue) {
		return ErrMinimumSpendUnmet
	}
	return nil
}

var hundred = decimal.NewFromInt(100)

// Compute determines the discount amount for the subtotal. Fixed discounts
// are clamped to the subtotal so the grand total can never go negative.
func Compute(r Rule, subtotal money.Amount) money.Amount {
	if !subtotal.IsPositive() {
		return money.Zero
	}
	var discount money.Amount
	if strings.EqualFold(string(r.Type), string(DiscountPercentage)) {
		discount = money.Round2(subtotal.Mul(r.Value).Div(hundred))
	} else {
		discount = money.Round2(r.Value)
	}
	if discount.GreaterThan(subtotal) {
		discount = subtotal
	}
	if discount.IsNegative() {
		return money.Zero
	}
	return discount
}
