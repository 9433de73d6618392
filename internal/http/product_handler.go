package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Danielagboola52/audiophile-ecommerce/internal/catalog"
)

type ProductHandler struct {
	catalog *catalog.Catalog
}

func NewProductHandler(c *catalog.Catalog) *ProductHandler {
	return &ProductHandler{catalog: c}
}

type ProductsResponse struct {
	Products []catalog.Product `json:"products"`
}

type ProductDetailResponse struct {
	catalog.Product
	Related []catalog.Product `json:"related"`
}

// GET /api/v1/products?category=
func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")

	var products []catalog.Product
	if category != "" {
		products = h.catalog.ByCategory(category)
	} else {
		products = h.catalog.All()
	}
	if products == nil {
		products = []catalog.Product{}
	}

	respondJSON(w, http.StatusOK, &ProductsResponse{Products: products})
}

// GET /api/v1/products/{slug}
func (h *ProductHandler) GetBySlug(w http.ResponseWriter, r *http.Request) {
	slug := chi.URLParam(r, "slug")

	p, ok := h.catalog.BySlug(slug)
	if !ok {
		respondError(w, http.StatusNotFound, "product_not_found", "no product with slug "+slug)
		return
	}

	respondJSON(w, http.StatusOK, &ProductDetailResponse{
		Product: *p,
		Related: h.catalog.Related(p),
	})
}
