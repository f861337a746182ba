package variant

import (
	"strings"

	"github.com/Aadcode/greenmile-integration/internal/domain"
)

// Marker is the title token that flags a variant for isolated checkout.
// There is no backend flag; the title convention is the contract.
const Marker = "greenmile"

// IsGreenmile reports whether a variant requires the direct-checkout path.
// A nil variant or one without a title is treated as normal, so a broken
// lookup can never block a regular purchase.
func IsGreenmile(v *domain.Variant) bool {
	if v == nil || v.Title == "" {
		return false
	}
	return strings.Contains(strings.ToLower(v.Title), Marker)
}

// HasMarkerPrefix reports whether a line-item title names a Greenmile
// product, using the "brand - name" convention: the token before the first
// dash, trimmed and lower-cased, must equal the marker.
func HasMarkerPrefix(title string) bool {
	if title == "" {
		return false
	}
	brand, _, _ := strings.Cut(title, "-")
	return strings.ToLower(strings.TrimSpace(brand)) == Marker
}
