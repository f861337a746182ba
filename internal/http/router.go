package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handlers struct {
	Guard    *GuardHandler
	Checkout *CheckoutHandler
	Cart     *CartHandler
	Pricing  *PricingHandler
}

func NewRouter(h Handlers) chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/cart", func(r chi.Router) {
			r.Post("/validate-variant", h.Guard.ValidateVariant)
			r.Get("/inspect", h.Cart.Inspect)
			r.Post("/remove-greenmile", h.Cart.RemoveGreenmile)
		})
		r.Post("/checkout/direct", h.Checkout.DirectCheckout)
		r.Post("/product-info", h.Pricing.ProductInfo)
	})

	return r
}
