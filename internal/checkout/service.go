package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/craftroot/checkout-api/internal/common"
	"github.com/craftroot/checkout-api/internal/coupon"
	"github.com/craftroot/checkout-api/internal/invoice"
	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/obs"
	"github.com/craftroot/checkout-api/internal/pricing"
	"github.com/craftroot/checkout-api/internal/queue"
	"github.com/craftroot/checkout-api/internal/region"
	"github.com/craftroot/checkout-api/internal/shipping"
	"github.com/craftroot/checkout-api/internal/store"
)

// LineInput is one cart line submitted for pricing.
type LineInput struct {
	ProductID string `json:"productId" validate:"required,uuid"`
	Qty       int    `json:"qty" validate:"required,min=1"`
}

// QuoteInput is the payload for quote and checkout requests.
type QuoteInput struct {
	Lines          []LineInput `json:"lines" validate:"required,min=1,dive"`
	DeliveryRegion string      `json:"deliveryRegion" validate:"required"`
	CouponCode     string      `json:"couponCode,omitempty"`
}

// Quote is the computed pricing result plus the coupon outcome. A rejected
// coupon is a recoverable, user-facing note; the order proceeds undiscounted.
type Quote struct {
	Summary         pricing.OrderTaxSummary
	CouponRejection string
}

// TaskEnqueuer schedules background work after an order is placed.
type TaskEnqueuer interface {
	Enqueue(ctx context.Context, t queue.Task) error
}

// Service runs the pricing pipeline against live product, coupon and
// shipping data and persists placed orders.
type Service struct {
	Store      *store.Store
	Coupons    *coupon.Service
	Shipping   *shipping.Service
	Classifier region.Classifier
	Tasks      TaskEnqueuer
	Currency   string
	Logger     zerolog.Logger
	Now        func() time.Time
}

// Quote prices the submitted cart without persisting anything.
func (s *Service) Quote(ctx context.Context, in QuoteInput) (Quote, error) {
	lines, err := s.resolveLines(ctx, in.Lines)
	if err != nil {
		return Quote{}, err
	}
	if err := pricing.ValidateLines(lines); err != nil {
		return Quote{}, common.NewAppError("INVALID_LINE", err.Error(), http.StatusUnprocessableEntity, err)
	}

	mode := s.Classifier.Classify(in.DeliveryRegion)

	_, subtotal, _ := pricing.PriceLines(lines, mode)
	discount := money.Zero
	var rejection string
	if in.CouponCode != "" {
		discount, err = s.Coupons.Resolve(ctx, in.CouponCode, subtotal)
		switch {
		case err == nil:
		case errors.Is(err, coupon.ErrNotFound),
			errors.Is(err, coupon.ErrInactive),
			errors.Is(err, coupon.ErrMinimumSpendUnmet):
			rejection = err.Error()
			discount = money.Zero
		default:
			return Quote{}, err
		}
	}

	shipCfg, err := s.Shipping.ConfigForRegion(ctx, in.DeliveryRegion)
	if err != nil {
		if errors.Is(err, shipping.ErrNotConfigured) {
			return Quote{}, common.NewAppError("SHIPPING_NOT_CONFIGURED",
				fmt.Sprintf("delivery to %q is not available", in.DeliveryRegion),
				http.StatusUnprocessableEntity, err)
		}
		return Quote{}, err
	}

	summary := pricing.ComputeOrderTotals(lines, mode, shipCfg, discount)
	obs.IncQuote(mode.String())
	return Quote{Summary: summary, CouponRejection: rejection}, nil
}

// Place prices the cart, persists the order with its frozen values and
// schedules invoice rendering.
func (s *Service) Place(ctx context.Context, in QuoteInput) (uuid.UUID, Quote, error) {
	q, err := s.Quote(ctx, in)
	if err != nil {
		return uuid.Nil, Quote{}, err
	}
	now := s.Now
	if now == nil {
		now = time.Now
	}

	orderID := uuid.New()
	order := store.Order{
		ID:             orderID,
		DeliveryRegion: in.DeliveryRegion,
		Mode:           q.Summary.Mode.String(),
		Currency:       s.Currency,
		Subtotal:       q.Summary.Subtotal,
		ItemTax:        q.Summary.ItemTax,
		ShippingCharge: q.Summary.ShippingCharge,
		ShippingTax:    q.Summary.ShippingTax,
		CGST:           q.Summary.Components.CGST,
		SGST:           q.Summary.Components.SGST,
		IGST:           q.Summary.Components.IGST,
		Discount:       q.Summary.Discount,
		GrandTotal:     q.Summary.GrandTotal,
		CreatedAt:      now().UTC(),
	}
	if in.CouponCode != "" && q.CouponRejection == "" {
		code := in.CouponCode
		order.CouponCode = &code
	}
	for _, pl := range q.Summary.Lines {
		order.Lines = append(order.Lines, store.OrderLine{
			ProductID:      pl.ProductID,
			Title:          pl.Title,
			HSNCode:        pl.HSNCode,
			Qty:            pl.Qty,
			UnitPrice:      pl.UnitPrice,
			Amount:         pl.Amount,
			Base:           pl.Base,
			Tax:            pl.Tax,
			TaxRatePercent: pl.TaxRatePercent,
			CGST:           pl.Components.CGST,
			SGST:           pl.Components.SGST,
			IGST:           pl.Components.IGST,
		})
	}
	if err := s.Store.CreateOrder(ctx, order); err != nil {
		return uuid.Nil, Quote{}, err
	}
	obs.IncOrder()

	if s.Tasks != nil {
		payload, _ := json.Marshal(invoice.RenderPayload{OrderID: orderID.String()})
		if err := s.Tasks.Enqueue(ctx, queue.Task{
			Kind:           invoice.TaskKind,
			Payload:        payload,
			IdempotencyKey: orderID.String(),
		}); err != nil {
			// The order is already committed; rendering can be replayed later.
			s.Logger.Error().Err(err).Str("order_id", orderID.String()).Msg("enqueue invoice render failed")
		}
	}
	return orderID, q, nil
}

func (s *Service) resolveLines(ctx context.Context, inputs []LineInput) ([]pricing.Line, error) {
	ids := make([]uuid.UUID, 0, len(inputs))
	for _, in := range inputs {
		id, err := uuid.Parse(in.ProductID)
		if err != nil {
			return nil, common.NewAppError("BAD_REQUEST",
				fmt.Sprintf("invalid product id %q", in.ProductID), http.StatusBadRequest, err)
		}
		ids = append(ids, id)
	}
	products, err := s.Store.GetProductPricing(ctx, ids)
	if err != nil {
		return nil, err
	}
	lines := make([]pricing.Line, 0, len(inputs))
	for i, in := range inputs {
		p, ok := products[ids[i]]
		if !ok {
			return nil, common.NewAppError("PRODUCT_NOT_FOUND",
				fmt.Sprintf("product %s does not exist", in.ProductID), http.StatusUnprocessableEntity, nil)
		}
		lines = append(lines, pricing.Line{
			ProductID:        p.ID,
			Title:            p.Title,
			HSNCode:          p.HSNCode,
			UnitPrice:        p.UnitPrice,
			Qty:              in.Qty,
			TaxRatePercent:   p.TaxRatePercent,
			PriceIncludesTax: p.PriceIncludesTax,
		})
	}
	return lines, nil
}
