package domain

// CartItem is a line item in a cart owned by the external cart service.
// This system only reads items and requests deletions by ID.
type CartItem struct {
	ID      string   `json:"id"`
	Title   string   `json:"title"`
	Variant *Variant `json:"variant,omitempty"`
}

type Cart struct {
	ID    string     `json:"id"`
	Items []CartItem `json:"items"`
}

// LineItem is the backend's acknowledgement of an item added to a cart.
type LineItem struct {
	ID        string `json:"id"`
	CartID    string `json:"cart_id"`
	VariantID string `json:"variant_id"`
	Quantity  int    `json:"quantity"`
}

// CartState is the result of a full scan of a cart's items.
type CartState string

const (
	StateEmpty             CartState = "empty"
	StateNormal            CartState = "normal"
	StateContainsGreenmile CartState = "contains_greenmile"
)

// CartSource routes a cart to a checkout flow. The values mirror the two
// storefront flows: the Greenmile direct checkout and the regular one.
type CartSource string

const (
	SourceGreenmile CartSource = "greenmile"
	SourceNormal    CartSource = "medusa"
)
