package order

import (
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/craftroot/checkout-api/internal/common"
	"github.com/craftroot/checkout-api/internal/money"
	"github.com/craftroot/checkout-api/internal/store"
)

// Handler exposes read endpoints for placed orders.
type Handler struct {
	Store *store.Store
}

type orderPayload struct {
	ID             string        `json:"id"`
	DeliveryRegion string        `json:"deliveryRegion"`
	Mode           string        `json:"mode"`
	CouponCode     *string       `json:"couponCode,omitempty"`
	Currency       string        `json:"currency"`
	Subtotal       string        `json:"subtotal"`
	ItemTax        string        `json:"itemTax"`
	ShippingCharge string        `json:"shippingCharge"`
	ShippingTax    string        `json:"shippingTax"`
	CGST           string        `json:"cgst"`
	SGST           string        `json:"sgst"`
	IGST           string        `json:"igst"`
	Discount       string        `json:"discount"`
	GrandTotal     string        `json:"grandTotal"`
	CreatedAt      time.Time     `json:"createdAt"`
	Lines          []linePayload `json:"lines"`
}

type linePayload struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	HSNCode   string `json:"hsnCode"`
	Qty       int    `json:"qty"`
	UnitPrice string `json:"unitPrice"`
	Amount    string `json:"amount"`
	Base      string `json:"baseAmount"`
	Tax       string `json:"taxAmount"`
	Rate      int    `json:"taxRatePercent"`
	CGST      string `json:"cgst"`
	SGST      string `json:"sgst"`
	IGST      string `json:"igst"`
}

func (h *Handler) orderID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "orderId")
	id, err := uuid.Parse(raw)
	if err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid order id", nil)
		return uuid.Nil, false
	}
	return id, true
}

// Get returns the persisted order with its frozen pricing breakdown.
func (h *Handler) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	o, err := h.Store.GetOrder(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "order not found", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load order", nil)
		return
	}
	payload := orderPayload{
		ID:             o.ID.String(),
		DeliveryRegion: o.DeliveryRegion,
		Mode:           o.Mode,
		CouponCode:     o.CouponCode,
		Currency:       o.Currency,
		Subtotal:       money.Format(o.Subtotal),
		ItemTax:        money.Format(o.ItemTax),
		ShippingCharge: money.Format(o.ShippingCharge),
		ShippingTax:    money.Format(o.ShippingTax),
		CGST:           money.Format(o.CGST),
		SGST:           money.Format(o.SGST),
		IGST:           money.Format(o.IGST),
		Discount:       money.Format(o.Discount),
		GrandTotal:     money.Format(o.GrandTotal),
		CreatedAt:      o.CreatedAt,
		Lines:          make([]linePayload, 0, len(o.Lines)),
	}
	for _, ln := range o.Lines {
		payload.Lines = append(payload.Lines, linePayload{
			ProductID: ln.ProductID.String(),
			Title:     ln.Title,
			HSNCode:   ln.HSNCode,
			Qty:       ln.Qty,
			UnitPrice: money.Format(ln.UnitPrice),
			Amount:    money.Format(ln.Amount),
			Base:      money.Format(ln.Base),
			Tax:       money.Format(ln.Tax),
			Rate:      ln.TaxRatePercent,
			CGST:      money.Format(ln.CGST),
			SGST:      money.Format(ln.SGST),
			IGST:      money.Format(ln.IGST),
		})
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": payload})
}

// Invoice serves the rendered PDF for an order. 404 until the background
// renderer has produced it.
func (h *Handler) Invoice(w http.ResponseWriter, r *http.Request) {
	id, ok := h.orderID(w, r)
	if !ok {
		return
	}
	number, pdf, err := h.Store.GetInvoicePDF(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			common.JSONError(w, http.StatusNotFound, "NOT_FOUND", "invoice not rendered yet", nil)
			return
		}
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "failed to load invoice", nil)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+number+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}
