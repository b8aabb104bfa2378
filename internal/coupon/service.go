package coupon

import (
	"context"
	"errors"
	"strings"

	"github.com/craftroot/checkout-api/internal/money"
)

// Store resolves coupon rules by code.
type Store interface {
	GetCouponByCode(ctx context.Context, code string) (Rule, error)
}

// Service resolves coupon codes against the store and computes discounts.
type Service struct {
	Store Store
}

// Resolve looks up the code and returns the discount amount for the
// subtotal. Rejections are sentinel errors the checkout surface maps to
// user-facing messages; the order proceeds without a discount.
func (s *Service) Resolve(ctx context.Context, code string, subtotal money.Amount) (money.Amount, error) {
	if s == nil || s.Store == nil {
		return money.Zero, errors.New("coupon: store not configured")
	}
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return money.Zero, nil
	}
	rule, err := s.Store.GetCouponByCode(ctx, trimmed)
	if err != nil {
		return money.Zero, err
	}
	if err := rule.Validate(subtotal); err != nil {
		return money.Zero, err
	}
	return Compute(rule, subtotal), nil
}
