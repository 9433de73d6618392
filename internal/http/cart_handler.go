package http

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/cart"
	"github.com/Danielagboola52/audiophile-ecommerce/internal/catalog"
)

type CartHandler struct {
	store   *cart.Store
	catalog *catalog.Catalog
}

func NewCartHandler(store *cart.Store, c *catalog.Catalog) *CartHandler {
	return &CartHandler{store: store, catalog: c}
}

type AddItemRequestDTO struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type UpdateQuantityRequestDTO struct {
	Quantity int `json:"quantity"`
}

type CartResponseDTO struct {
	Items []cart.Item `json:"items"`
	Total float64     `json:"total"`
}

func cartResponse(c cart.Cart) CartResponseDTO {
	items := c.Items
	if items == nil {
		items = []cart.Item{}
	}
	return CartResponseDTO{Items: items, Total: c.Total()}
}

// GET /api/v1/cart
func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(h.store.Get(sessionID)))
}

// POST /api/v1/cart/items
func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	var req AddItemRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	if req.Quantity <= 0 || req.Quantity > 99 {
		respondError(w, http.StatusBadRequest, "invalid_quantity", "quantity must be between 1 and 99")
		return
	}

	// The catalog owns product data; the cart stores a priced snapshot.
	p, ok := h.catalog.ByID(req.ProductID)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "no product with id "+req.ProductID)
		return
	}

	updated := h.store.AddItem(sessionID, cart.Item{
		ProductID: p.ID,
		Name:      p.Name,
		ShortName: p.ShortName,
		Price:     p.Price,
		Quantity:  req.Quantity,
		Image:     p.Images.Mobile,
	})

	respondJSON(w, http.StatusCreated, cartResponse(updated))
}

// PUT /api/v1/cart/items/{product_id}
func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	productID := chi.URLParam(r, "product_id")

	var req UpdateQuantityRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}

	updated, err := h.store.UpdateQuantity(sessionID, productID, req.Quantity)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "item_not_found", "no such item in cart")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(updated))
}

// DELETE /api/v1/cart/items/{product_id}
func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	productID := chi.URLParam(r, "product_id")

	updated, err := h.store.RemoveItem(sessionID, productID)
	if err != nil {
		if errors.Is(err, cart.ErrItemNotFound) {
			respondError(w, http.StatusNotFound, "item_not_found", "no such item in cart")
			return
		}
		respondError(w, http.StatusInternalServerError, "internal_error", "failed to update cart")
		return
	}

	respondJSON(w, http.StatusOK, cartResponse(updated))
}

// DELETE /api/v1/cart
func (h *CartHandler) ClearCart(w http.ResponseWriter, r *http.Request) {
	sessionID := getSessionID(r.Context())
	if sessionID == "" {
		respondError(w, http.StatusBadRequest, "missing_session", "no cart session")
		return
	}

	h.store.Clear(sessionID)
	respondJSON(w, http.StatusOK, cartResponse(h.store.Get(sessionID)))
}
