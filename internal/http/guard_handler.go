package http

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/Aadcode/greenmile-integration/internal/guard"
)

type GuardHandler struct {
	guard   *guard.Guard
	events  EventSink
	timeout time.Duration
}

func NewGuardHandler(g *guard.Guard, events EventSink, timeout time.Duration) *GuardHandler {
	if events == nil {
		events = noopSink{}
	}
	return &GuardHandler{guard: g, events: events, timeout: timeout}
}

type ValidateVariantRequestDTO struct {
	VariantID string `json:"variant_id"`
}

// POST /api/v1/cart/validate-variant
// The storefront calls this before letting its own add-to-cart proceed.
// Like the guard itself, the endpoint fails open: a bad body still allows.
func (h *GuardHandler) ValidateVariant(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ValidateVariantRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusOK, guard.Decision{Allow: true})
		return
	}

	decision := h.guard.Decide(ctx, guard.AddToCartEvent{VariantID: req.VariantID})
	if !decision.Allow {
		h.events.CartIntercepted(ctx, req.VariantID, decision.Reason)
	}
	respondJSON(w, http.StatusOK, decision)
}
