package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// RouterDeps collects the handlers the router wires up.
type RouterDeps struct {
	Products     *ProductHandler
	Cart         *CartHandler
	Checkout     *CheckoutHandler
	Orders       *OrdersHandler
	Confirmation *ConfirmationHandler

	RequestTimeout time.Duration
}

func NewRouter(deps RouterDeps) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(RequestLogger)
	r.Use(middleware.Timeout(deps.RequestTimeout))
	r.Use(middleware.Compress(5))
	r.Use(SessionMiddleware)

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// API routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", deps.Products.List)
			r.Get("/{slug}", deps.Products.GetBySlug)
		})

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", deps.Cart.GetCart)
			r.Delete("/", deps.Cart.ClearCart)
			r.Post("/items", deps.Cart.AddItem)
			r.Put("/items/{product_id}", deps.Cart.UpdateQuantity)
			r.Delete("/items/{product_id}", deps.Cart.RemoveItem)
		})

		r.Route("/checkout", func(r chi.Router) {
			r.Post("/", deps.Checkout.Submit)
			r.Get("/state", deps.Checkout.State)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", deps.Orders.ListByEmail)
			r.Get("/{order_id}", deps.Orders.GetOrder)
		})

		r.Post("/send-confirmation", deps.Confirmation.Send)
	})

	return r
}
