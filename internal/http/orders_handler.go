package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/order"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/repository"
)

type OrdersHandler struct {
	repo    repository.OrderRepository
	timeout time.Duration
}

func NewOrdersHandler(repo repository.OrderRepository, timeout time.Duration) *OrdersHandler {
	return &OrdersHandler{repo: repo, timeout: timeout}
}

type OrdersResponseDTO struct {
	Orders []order.Order `json:"orders"`
}

// GET /api/v1/orders/{order_id}
func (h *OrdersHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	orderID := chi.URLParam(r, "order_id")
	if orderID == "" {
		respondError(w, http.StatusBadRequest, "missing_order_id", "order_id is required")
		return
	}

	o, err := h.repo.GetByID(ctx, orderID)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrInvalidOrderID):
			respondError(w, http.StatusBadRequest, "invalid_order_id", "order_id is not a valid id")
		case errors.Is(err, repository.ErrOrderNotFound):
			respondError(w, http.StatusNotFound, "order_not_found", "no order with id "+orderID)
		default:
			respondError(w, http.StatusServiceUnavailable, "storage_error", "failed to load order")
		}
		return
	}

	respondJSON(w, http.StatusOK, o)
}

// GET /api/v1/orders?email=
func (h *OrdersHandler) ListByEmail(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	email := r.URL.Query().Get("email")
	if email == "" {
		respondError(w, http.StatusBadRequest, "missing_email", "email query parameter is required")
		return
	}

	orders, err := h.repo.FindByEmail(ctx, email)
	if err != nil {
		respondError(w, http.StatusServiceUnavailable, "storage_error", "failed to load orders")
		return
	}
	if orders == nil {
		orders = []order.Order{}
	}

	respondJSON(w, http.StatusOK, OrdersResponseDTO{Orders: orders})
}
