package models

// CartLine is one in-progress purchase entry: a product plus quantity and an
// optional selected size. Two lines with the same product but different sizes
// are distinct entries; identity for merge/lookup is (ProductID, SelectedSize).
type CartLine struct {
	Product
	Quantity     int    `json:"quantity"`
	SelectedSize string `json:"selected_size,omitempty"`
}
