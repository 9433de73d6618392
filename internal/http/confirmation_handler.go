package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/notifier"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
)

// ConfirmationHandler exposes the confirmation-email trigger used by
// the storefront client after an order is placed.
type ConfirmationHandler struct {
	notifier notifier.Notifier
	timeout  time.Duration
}

func NewConfirmationHandler(n notifier.Notifier, timeout time.Duration) *ConfirmationHandler {
	return &ConfirmationHandler{notifier: n, timeout: timeout}
}

type SendConfirmationRequestDTO struct {
	Email      string           `json:"email"`
	Name       string           `json:"name"`
	OrderID    string           `json:"orderId"`
	Items      []order.LineItem `json:"items"`
	GrandTotal float64          `json:"grandTotal"`
}

type SendConfirmationResponseDTO struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// POST /api/v1/send-confirmation
//
// 200 {success:true,data} on success, 400 {error} when the email
// provider rejects the request, 500 {error} on malformed input.
func (h *ConfirmationHandler) Send(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req SendConfirmationRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "invalid request body"})
		return
	}
	if req.Email == "" || req.OrderID == "" || req.Items == nil {
		respondJSON(w, http.StatusInternalServerError, map[string]string{"error": "email, orderId and items are required"})
		return
	}

	err := h.notifier.SendConfirmation(ctx, notifier.Confirmation{
		To:         req.Email,
		Name:       req.Name,
		OrderID:    req.OrderID,
		Items:      req.Items,
		GrandTotal: req.GrandTotal,
	})
	if err != nil {
		log.Error().Err(err).Str("order_id", req.OrderID).Msg("http: confirmation email rejected")
		respondJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	respondJSON(w, http.StatusOK, SendConfirmationResponseDTO{
		Success: true,
		Data:    map[string]string{"order_id": req.OrderID},
	})
}
