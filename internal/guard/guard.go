// Package guard vetoes add-to-cart actions for Greenmile variants. The core
// is a plain observer: the host feeds it add-to-cart events and applies the
// decision; no UI framework is assumed.
package guard

import (
	"context"
	"log/slog"

	"github.com/Aadcode/greenmile-integration/internal/domain"
	"github.com/Aadcode/greenmile-integration/internal/variant"
)

// BlockedReason is the user-facing message attached to a veto.
const BlockedReason = "This is a GreenMile product. Please use the Buy Now button for direct checkout."

// AddToCartEvent is a UI add-to-cart trigger the host observed.
type AddToCartEvent struct {
	VariantID string `json:"variant_id"`
}

// Decision tells the host whether to let the default add-to-cart proceed.
type Decision struct {
	Allow  bool   `json:"allowed"`
	Reason string `json:"reason,omitempty"`
}

// VariantSource fetches a variant fresh from the backend; client-side state
// is not trusted for classification.
type VariantSource interface {
	Variant(ctx context.Context, variantID string) (*domain.Variant, error)
}

type Guard struct {
	source VariantSource
	log    *slog.Logger
}

func New(source VariantSource, log *slog.Logger) *Guard {
	if log == nil {
		log = slog.Default()
	}
	return &Guard{source: source, log: log}
}

// Decide classifies the triggering variant and vetoes the add when it is a
// Greenmile variant. Every failure path allows: a classification problem
// must never block a legitimate purchase.
func (g *Guard) Decide(ctx context.Context, ev AddToCartEvent) Decision {
	if ev.VariantID == "" {
		return Decision{Allow: true}
	}

	v, err := g.source.Variant(ctx, ev.VariantID)
	if err != nil {
		g.log.Warn("variant lookup failed, allowing add to cart", "variant_id", ev.VariantID, "err", err)
		return Decision{Allow: true}
	}

	if variant.IsGreenmile(v) {
		g.log.Info("blocked greenmile variant from cart", "variant_id", ev.VariantID, "title", v.Title)
		return Decision{Allow: false, Reason: BlockedReason}
	}
	return Decision{Allow: true}
}

// DecisionFunc receives the guard's verdict for one observed event.
type DecisionFunc func(AddToCartEvent, Decision)

// Listen consumes add-to-cart events until the context is cancelled or the
// channel closes, calling onDecision for each. This is the wiring point for
// hosts that dispatch UI events over a channel instead of calling Decide
// directly.
func (g *Guard) Listen(ctx context.Context, events <-chan AddToCartEvent, onDecision DecisionFunc) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			onDecision(ev, g.Decide(ctx, ev))
		}
	}
}
