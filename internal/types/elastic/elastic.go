package elastic

import "time"

// ListingDoc is the search index projection of a listing.
type ListingDoc struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    string    `json:"category,omitempty"`
	SellerID    string    `json:"sellerId"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
