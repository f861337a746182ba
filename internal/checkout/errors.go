package checkout

import (
	"errors"
	"fmt"
)

var (
	ErrNoCommerceClient = errors.New("commerce client not configured")

	// ErrItemNotAdded means the add call reported success but the re-fetched
	// cart had zero items.
	ErrItemNotAdded = errors.New("failed to add item to cart")
)

type RegionNotFoundError struct {
	CountryCode string
}

func (e *RegionNotFoundError) Error() string {
	return fmt.Sprintf("region not found for country code: %s", e.CountryCode)
}
