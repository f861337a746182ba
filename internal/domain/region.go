package domain

type Country struct {
	ISO2 string `json:"iso_2"`
}

// Region groups the countries an order can be priced and shipped in.
// Every cart is created against exactly one region.
type Region struct {
	ID        string    `json:"id"`
	Countries []Country `json:"countries"`
}
