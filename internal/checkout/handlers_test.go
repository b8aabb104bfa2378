package checkout_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	validator "github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/require"

	"github.com/craftroot/checkout-api/internal/checkout"
)

func newHandler() *checkout.Handler {
	return &checkout.Handler{Svc: &checkout.Service{}, Validate: validator.New()}
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body struct {
		Error struct {
			Code string `json:"code"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error.Code
}

func TestQuoteRejectsMalformedJSON(t *testing.T) {
	h := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader("{not json"))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "BAD_REQUEST", decodeError(t, rec))
}

func TestQuoteRejectsMissingFields(t *testing.T) {
	h := newHandler()
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(`{"lines":[]}`))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_FAILED", decodeError(t, rec))
}

func TestQuoteRejectsInvalidProductID(t *testing.T) {
	h := newHandler()
	payload := `{"lines":[{"productId":"not-a-uuid","qty":1}],"deliveryRegion":"karnataka"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout/quote", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Quote(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_FAILED", decodeError(t, rec))
}

func TestCheckoutRejectsZeroQty(t *testing.T) {
	h := newHandler()
	payload := `{"lines":[{"productId":"11111111-1111-1111-1111-111111111111","qty":0}],"deliveryRegion":"karnataka"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/checkout", strings.NewReader(payload))
	rec := httptest.NewRecorder()
	h.Checkout(rec, req)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	require.Equal(t, "VALIDATION_FAILED", decodeError(t, rec))
}
