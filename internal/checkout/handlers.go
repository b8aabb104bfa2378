package checkout

import (
	"encoding/json"
	"net/http"

	validator "github.com/go-playground/validator/v10"

	"github.com/craftroot/checkout-api/internal/common"
	"github.com/craftroot/checkout-api/internal/money"
)

// Handler exposes the quote and checkout endpoints.
type Handler struct {
	Svc      *Service
	Validate *validator.Validate
}

type summaryPayload struct {
	Mode            string             `json:"mode"`
	Subtotal        string             `json:"subtotal"`
	ItemTax         string             `json:"itemTax"`
	ShippingCharge  string             `json:"shippingCharge"`
	ShippingTax     string             `json:"shippingTax"`
	CGST            string             `json:"cgst"`
	SGST            string             `json:"sgst"`
	IGST            string             `json:"igst"`
	Discount        string             `json:"discount"`
	GrandTotal      string             `json:"grandTotal"`
	Lines           []linePayload      `json:"lines"`
	CouponRejection string             `json:"couponRejection,omitempty"`
}

type linePayload struct {
	ProductID string `json:"productId"`
	Title     string `json:"title"`
	HSNCode   string `json:"hsnCode"`
	Qty       int    `json:"qty"`
	Rate      int    `json:"taxRatePercent"`
	Amount    string `json:"amount"`
	Base      string `json:"baseAmount"`
	Tax       string `json:"taxAmount"`
	CGST      string `json:"cgst"`
	SGST      string `json:"sgst"`
	IGST      string `json:"igst"`
}

func toPayload(q Quote) summaryPayload {
	s := q.Summary
	out := summaryPayload{
		Mode:            s.Mode.String(),
		Subtotal:        money.Format(s.Subtotal),
		ItemTax:         money.Format(s.ItemTax),
		ShippingCharge:  money.Format(s.ShippingCharge),
		ShippingTax:     money.Format(s.ShippingTax),
		CGST:            money.Format(s.Components.CGST),
		SGST:            money.Format(s.Components.SGST),
		IGST:            money.Format(s.Components.IGST),
		Discount:        money.Format(s.Discount),
		GrandTotal:      money.Format(s.GrandTotal),
		Lines:           make([]linePayload, 0, len(s.Lines)),
		CouponRejection: q.CouponRejection,
	}
	for _, ln := range s.Lines {
		out.Lines = append(out.Lines, linePayload{
			ProductID: ln.ProductID.String(),
			Title:     ln.Title,
			HSNCode:   ln.HSNCode,
			Qty:       ln.Qty,
			Rate:      ln.TaxRatePercent,
			Amount:    money.Format(ln.Amount),
			Base:      money.Format(ln.Base),
			Tax:       money.Format(ln.Tax),
			CGST:      money.Format(ln.Components.CGST),
			SGST:      money.Format(ln.Components.SGST),
			IGST:      money.Format(ln.Components.IGST),
		})
	}
	return out
}

func (h *Handler) decode(w http.ResponseWriter, r *http.Request) (QuoteInput, bool) {
	var in QuoteInput
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		common.JSONError(w, http.StatusBadRequest, "BAD_REQUEST", "invalid payload", nil)
		return QuoteInput{}, false
	}
	if h.Validate != nil {
		if err := h.Validate.Struct(in); err != nil {
			common.JSONError(w, http.StatusBadRequest, "VALIDATION_FAILED", err.Error(), nil)
			return QuoteInput{}, false
		}
	}
	return in, true
}

// Quote prices a cart for the checkout summary view.
func (h *Handler) Quote(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	q, err := h.Svc.Quote(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusOK, map[string]any{"data": toPayload(q)})
}

// Checkout places the order with the quoted, frozen pricing values.
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	if h.Svc == nil {
		common.JSONError(w, http.StatusInternalServerError, "INTERNAL", "checkout service not configured", nil)
		return
	}
	in, ok := h.decode(w, r)
	if !ok {
		return
	}
	orderID, q, err := h.Svc.Place(r.Context(), in)
	if err != nil {
		common.WriteError(w, err)
		return
	}
	common.JSON(w, http.StatusCreated, map[string]any{"data": map[string]any{
		"orderId": orderID.String(),
		"pricing": toPayload(q),
	}})
}
