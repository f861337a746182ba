package domain

// Price is a single money amount on a variant, as the commerce backend
// reports it (minor units plus ISO currency code).
type Price struct {
	Amount       int64  `json:"amount"`
	CurrencyCode string `json:"currency_code"`
}

// Variant is a purchasable product variant. Classification as a Greenmile
// variant is derived solely from Title; the backend carries no flag for it.
type Variant struct {
	ID     string  `json:"id"`
	Title  string  `json:"title"`
	Prices []Price `json:"prices,omitempty"`
}

type OptionValue struct {
	Value string `json:"value"`
}

type Option struct {
	ID     string        `json:"id"`
	Title  string        `json:"title"`
	Values []OptionValue `json:"values"`
}

type Product struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description,omitempty"`
	Variants    []Variant `json:"variants"`
	Options     []Option  `json:"options"`
}
