package http

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/Aadcode/greenmile-integration/internal/checkout"
	"github.com/Aadcode/greenmile-integration/internal/session"
)

type CheckoutHandler struct {
	flow     *checkout.Flow
	sessions session.Manager
	events   EventSink
	timeout  time.Duration
}

func NewCheckoutHandler(flow *checkout.Flow, sessions session.Manager, events EventSink, timeout time.Duration) *CheckoutHandler {
	if events == nil {
		events = noopSink{}
	}
	return &CheckoutHandler{flow: flow, sessions: sessions, events: events, timeout: timeout}
}

type DirectCheckoutRequestDTO struct {
	VariantID   string `json:"variant_id"`
	Quantity    int    `json:"quantity"`
	CountryCode string `json:"country_code"`
}

type DirectCheckoutResponseDTO struct {
	CartID      string `json:"cart_id"`
	RedirectURL string `json:"redirect_url"`
}

// POST /api/v1/checkout/direct
// Runs the direct-checkout flow, binds the ephemeral cart to the browser via
// the checkout cookie, and redirects (or answers JSON for XHR callers). The
// primary cart cookie is never touched here.
func (h *CheckoutHandler) DirectCheckout(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req DirectCheckoutRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid_request", "invalid JSON body")
		return
	}
	if req.VariantID == "" {
		respondError(w, http.StatusBadRequest, "missing_variant_id", "variant_id is required")
		return
	}
	if len(req.CountryCode) != 2 {
		respondError(w, http.StatusBadRequest, "invalid_country_code", "country_code must be a two-letter ISO code")
		return
	}

	handoff, err := h.flow.DirectCheckout(ctx, req.VariantID, req.Quantity, req.CountryCode)
	if err != nil {
		handleCheckoutError(w, err)
		return
	}

	h.events.CheckoutInitiated(ctx, handoff.AttemptID, req.VariantID, req.CountryCode)
	h.sessions.SetCheckoutCart(w, handoff.CartID)
	h.events.CheckoutReady(ctx, handoff.CartID, req.CountryCode)

	if wantsJSON(r) {
		respondJSON(w, http.StatusOK, DirectCheckoutResponseDTO{
			CartID:      handoff.CartID,
			RedirectURL: handoff.RedirectURL,
		})
		return
	}
	http.Redirect(w, r, handoff.RedirectURL, http.StatusSeeOther)
}

func handleCheckoutError(w http.ResponseWriter, err error) {
	var rnf *checkout.RegionNotFoundError
	switch {
	case errors.As(err, &rnf):
		respondError(w, http.StatusUnprocessableEntity, "region_not_found", rnf.Error())
	case errors.Is(err, checkout.ErrItemNotAdded):
		respondError(w, http.StatusBadGateway, "item_not_added", err.Error())
	case errors.Is(err, checkout.ErrNoCommerceClient):
		respondError(w, http.StatusServiceUnavailable, "commerce_unavailable", err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		respondError(w, http.StatusGatewayTimeout, "timeout", "checkout timed out")
	default:
		respondError(w, http.StatusBadGateway, "checkout_failed", err.Error())
	}
}

func wantsJSON(r *http.Request) bool {
	return strings.Contains(r.Header.Get("Accept"), "application/json")
}
