package invoice

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/craftroot/checkout-api/internal/obs"
	"github.com/craftroot/checkout-api/internal/queue"
	"github.com/craftroot/checkout-api/internal/store"
)

// TaskKind is the queue kind for invoice rendering jobs.
const TaskKind = "invoice:render"

// RenderPayload is the task payload enqueued at checkout.
type RenderPayload struct {
	OrderID string `json:"orderId"`
}

// Renderer consumes render tasks: load the order, build the invoice, render
// the PDF and persist it. Re-renders are idempotent upserts.
type Renderer struct {
	Store  *store.Store
	Logger zerolog.Logger
	Now    func() time.Time
}

// Handle processes one render task.
func (r Renderer) Handle(ctx context.Context, task queue.Task) error {
	var payload RenderPayload
	if err := json.Unmarshal(task.Payload, &payload); err != nil {
		return fmt.Errorf("invoice: decode payload: %w", err)
	}
	orderID, err := uuid.Parse(payload.OrderID)
	if err != nil {
		return fmt.Errorf("invoice: invalid order id %q: %w", payload.OrderID, err)
	}
	order, err := r.Store.GetOrder(ctx, orderID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			r.Logger.Warn().Str("order_id", payload.OrderID).Msg("render task for unknown order dropped")
			return nil
		}
		return err
	}
	now := r.Now
	if now == nil {
		now = time.Now
	}
	inv := FromOrder(order, now().UTC())
	pdf, err := RenderPDF(inv)
	if err != nil {
		return err
	}
	if err := r.Store.SaveInvoicePDF(ctx, orderID, inv.Number, pdf); err != nil {
		return err
	}
	obs.IncInvoiceRendered()
	r.Logger.Info().
		Str("order_id", payload.OrderID).
		Str("invoice", inv.Number).
		Int("bytes", len(pdf)).
		Msg("invoice rendered")
	return nil
}
