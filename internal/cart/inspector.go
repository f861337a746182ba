// Package cart classifies and repairs the user's primary cart with respect
// to Greenmile line items. It never creates carts; that is the checkout
// flow's job.
package cart

import (
	"github.com/Aadcode/greenmile-integration/internal/domain"
	"github.com/Aadcode/greenmile-integration/internal/variant"
)

// Classify scans every item and reports whether the cart is empty, normal,
// or contains at least one Greenmile variant. Malformed carts (nil, or no
// items slice) classify as empty. The cart is never mutated.
func Classify(c *domain.Cart) domain.CartState {
	if c == nil || len(c.Items) == 0 {
		return domain.StateEmpty
	}
	for _, item := range c.Items {
		if variant.IsGreenmile(item.Variant) {
			return domain.StateContainsGreenmile
		}
	}
	return domain.StateNormal
}

// SourceOf decides which checkout flow a cart belongs to by inspecting only
// the FIRST item's title prefix. This is a deliberate approximation: a mixed
// cart whose first item is normal reports SourceNormal even if Greenmile
// items follow. Routing only; removal logic does a full scan.
func SourceOf(c *domain.Cart) domain.CartSource {
	if c == nil || len(c.Items) == 0 {
		return domain.SourceNormal
	}
	if variant.HasMarkerPrefix(c.Items[0].Title) {
		return domain.SourceGreenmile
	}
	return domain.SourceNormal
}

// GreenmileItems returns the items whose variant classifies as Greenmile,
// in cart order. Used to populate the repair prompt.
func GreenmileItems(c *domain.Cart) []domain.CartItem {
	if c == nil {
		return nil
	}
	var out []domain.CartItem
	for _, item := range c.Items {
		if variant.IsGreenmile(item.Variant) {
			out = append(out, item)
		}
	}
	return out
}
