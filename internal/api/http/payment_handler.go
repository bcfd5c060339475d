package http

import (
	"encoding/json"
	"io"
	"net/http"

	"bilio-backend/internal/service"
)

// Stripe webhook payloads are small; cap reads well above their size.
const maxWebhookBodyBytes = 1 << 16

type PaymentHandler struct {
	paymentService service.PaymentService
}

func NewPaymentHandler(paymentService service.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

type createCheckoutRequest struct {
	PackageID int64 `json:"package_id"`
}

func (h *PaymentHandler) CreateCheckout(w http.ResponseWriter, r *http.Request) {
	ident, _ := IdentityFromContext(r.Context())

	var req createCheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "invalid request body")
		return
	}

	checkoutURL, err := h.paymentService.CreateCheckout(r.Context(), ident, req.PackageID)
	if err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"checkout_url": checkoutURL})
}

// Webhook receives Stripe events. Authentication is the signature header,
// not a user session.
func (h *PaymentHandler) Webhook(w http.ResponseWriter, r *http.Request) {
	payload, err := io.ReadAll(io.LimitReader(r.Body, maxWebhookBodyBytes))
	if err != nil {
		respondError(w, http.StatusBadRequest, ErrCodeBadRequest, "failed to read payload")
		return
	}

	if err := h.paymentService.HandleWebhookEvent(r.Context(), payload, r.Header.Get("Stripe-Signature")); err != nil {
		respondServiceError(w, r, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
