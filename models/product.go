package models

import "time"

// Categories is the fixed set the storefront sells. The admin form only
// offers these values.
var Categories = []string{"Essentials", "Streetwear", "Outerwear", "Limited Edition"}

// IsValidCategory reports whether c is one of the storefront categories.
func IsValidCategory(c string) bool {
	for _, cat := range Categories {
		if cat == c {
			return true
		}
	}
	return false
}

// Product is a document in the "products" collection. The ID is the
// backend-assigned document ID, not a stored field.
type Product struct {
	ID          string    `json:"id" firestore:"-"`
	Title       string    `json:"title" firestore:"title"`
	Category    string    `json:"category" firestore:"category"`
	Price       string    `json:"price" firestore:"price"` // display string, e.g. "$50.00"
	Description string    `json:"description,omitempty" firestore:"description,omitempty"`
	Images      []string  `json:"images" firestore:"images"`
	CreatedAt   time.Time `json:"created_at" firestore:"createdAt"`
	UpdatedAt   time.Time `json:"updated_at" firestore:"updatedAt"`
}
