package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/checkout"
)

// CheckoutService is what the handler needs from the submission
// pipeline. Consumers define this interface, not the pipeline.
type CheckoutService interface {
	Submit(ctx context.Context, sessionID string, in checkout.Input) (*checkout.Confirmation, error)
	State(sessionID string) checkout.State
}

type CheckoutHandler struct {
	service CheckoutService
}

func NewCheckoutHandler(service CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{service: service}
}

type CheckoutStateResponseDTO struct {
	State string `json:"state"`
}

// POST /api/v1/checkout
func (h *CheckoutHandler) Submit(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	var in checkout.Input
	if err := json.NewDecoder(r.Body).Decode(&in); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	confirmation, err := h.service.Submit(r.Context(), sessionID, in)
	if err != nil {
		var verrs checkout.ValidationErrors
		switch {
		case errors.As(err, &verrs):
			respondFieldErrors(w, verrs)
		case errors.Is(err, checkout.ErrEmptyCart):
			respondError(w, http.StatusBadRequest, "empty_cart", "cannot check out an empty cart")
		case errors.Is(err, checkout.ErrSubmissionInFlight):
			respondError(w, http.StatusConflict, "submission_in_flight", "a submission is already in progress")
		case errors.Is(err, checkout.ErrStorage):
			respondError(w, http.StatusServiceUnavailable, "order_failed", "something went wrong placing your order, please try again")
		default:
			respondError(w, http.StatusInternalServerError, "internal_error", "unexpected error")
		}
		return
	}

	respondJSON(w, http.StatusCreated, confirmation)
}

// GET /api/v1/checkout/state
func (h *CheckoutHandler) State(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	respondJSON(w, http.StatusOK, CheckoutStateResponseDTO{State: h.service.State(sessionID).String()})
}
