package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/Aadcode/greenmile-integration/internal/pricing"
)

// PricingClient is what the widget endpoint needs from the pricing backend.
type PricingClient interface {
	ProductInfo(ctx context.Context, req pricing.ProductInfoRequest) (*pricing.ProductInfo, error)
}

type PricingHandler struct {
	client  PricingClient
	shop    string
	timeout time.Duration
	log     *slog.Logger
}

func NewPricingHandler(client PricingClient, shop string, timeout time.Duration, log *slog.Logger) *PricingHandler {
	if log == nil {
		log = slog.Default()
	}
	return &PricingHandler{client: client, shop: shop, timeout: timeout, log: log}
}

type ProductInfoRequestDTO struct {
	ProductID    string           `json:"product_id"`
	VariantID    string           `json:"variant_id"`
	ProductPrice float64          `json:"product_price"`
	Location     pricing.Location `json:"location"`
}

// POST /api/v1/product-info
// Widget data lookup. The widget renders nothing on failure, so every error
// here is a 204: never show broken UI, never leak backend details.
func (h *PricingHandler) ProductInfo(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductInfoRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	info, err := h.client.ProductInfo(ctx, pricing.ProductInfoRequest{
		Shop:         h.shop,
		ProductID:    req.ProductID,
		VariantID:    req.VariantID,
		ProductPrice: req.ProductPrice,
		Variant:      "Default",
		Location:     req.Location,
	})
	if err != nil {
		h.log.Warn("product info lookup failed", "product_id", req.ProductID, "err", err)
		w.WriteHeader(http.StatusNoContent)
		return
	}

	respondJSON(w, http.StatusOK, info)
}
