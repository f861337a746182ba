package http

import "context"

// EventSink receives bridge activity notifications. Implementations must be
// best-effort; handlers never check for failure.
type EventSink interface {
	CheckoutInitiated(ctx context.Context, attemptID, variantID, countryCode string)
	CheckoutReady(ctx context.Context, cartID, countryCode string)
	CartRepaired(ctx context.Context, cartID string, removed int)
	CartIntercepted(ctx context.Context, variantID, reason string)
}

// noopSink keeps handlers nil-safe when events are not wired.
type noopSink struct{}

func (noopSink) CheckoutInitiated(context.Context, string, string, string) {}
func (noopSink) CheckoutReady(context.Context, string, string)             {}
func (noopSink) CartRepaired(context.Context, string, int)                 {}
func (noopSink) CartIntercepted(context.Context, string, string)           {}
