package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/Aadcode/greenmile-integration/internal/cart"
	"github.com/Aadcode/greenmile-integration/internal/domain"
	"github.com/Aadcode/greenmile-integration/internal/medusa"
	"github.com/Aadcode/greenmile-integration/internal/session"
)

// CartBackend is what the cart endpoints need from the commerce client.
type CartBackend interface {
	GetCart(ctx context.Context, cartID string) (*domain.Cart, error)
	DeleteLineItem(ctx context.Context, cartID, itemID string) error
}

type CartHandler struct {
	backend  CartBackend
	mutator  *cart.Mutator
	sessions session.Manager
	events   EventSink
	timeout  time.Duration
}

func NewCartHandler(backend CartBackend, mutator *cart.Mutator, sessions session.Manager, events EventSink, timeout time.Duration) *CartHandler {
	if events == nil {
		events = noopSink{}
	}
	return &CartHandler{backend: backend, mutator: mutator, sessions: sessions, events: events, timeout: timeout}
}

type InspectResponseDTO struct {
	State          domain.CartState  `json:"state"`
	Source         domain.CartSource `json:"source"`
	GreenmileItems []domain.CartItem `json:"greenmile_items"`
}

// GET /api/v1/cart/inspect
// Drives the storefront's repair prompt on page load. Backend failures
// degrade to "empty": the prompt is skipped rather than shown on bad data.
func (h *CartHandler) Inspect(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	empty := InspectResponseDTO{State: domain.StateEmpty, Source: domain.SourceNormal, GreenmileItems: []domain.CartItem{}}

	cartID := h.sessions.PrimaryCartID(r)
	if cartID == "" {
		respondJSON(w, http.StatusOK, empty)
		return
	}

	c, err := h.backend.GetCart(ctx, cartID)
	if err != nil && !errors.Is(err, medusa.ErrNotFound) {
		// degrade, never surface a broken prompt
		respondJSON(w, http.StatusOK, empty)
		return
	}

	items := cart.GreenmileItems(c)
	if items == nil {
		items = []domain.CartItem{}
	}
	respondJSON(w, http.StatusOK, InspectResponseDTO{
		State:          cart.Classify(c),
		Source:         cart.SourceOf(c),
		GreenmileItems: items,
	})
}

// POST /api/v1/cart/remove-greenmile
// Repair action: strips Greenmile items from the primary cart. On success
// the primary cart cookie is cleared so the storefront starts a clean cart.
func (h *CartHandler) RemoveGreenmile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	cartID := h.sessions.PrimaryCartID(r)
	if cartID == "" {
		respondJSON(w, http.StatusOK, cart.RemovalResult{Status: cart.RemovalSuccess, IsEmpty: true})
		return
	}

	retrieve := func(ctx context.Context) (*domain.Cart, error) {
		return h.backend.GetCart(ctx, cartID)
	}
	deleteItem := func(ctx context.Context, itemID string) error {
		return h.backend.DeleteLineItem(ctx, cartID, itemID)
	}

	result := h.mutator.RemoveGreenmileItems(ctx, retrieve, deleteItem)
	if result.Success() {
		h.sessions.ClearPrimaryCart(w)
		h.events.CartRepaired(ctx, cartID, len(result.Items))
	}
	respondJSON(w, http.StatusOK, result)
}
