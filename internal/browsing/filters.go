package browsing

import (
	"strings"

	types "mazdady-market/internal/types/market"
)

// Filters is the ephemeral browse query. It is never persisted as domain
// data; callers own it.
type Filters struct {
	Query       string   `json:"query"`
	Categories  []string `json:"categories"`
	Condition   string   `json:"condition"`
	PriceMin    float64  `json:"priceMin"`
	PriceMax    float64  `json:"priceMax"`
	SellerTiers []string `json:"sellerTiers"`
}

// Apply filters down to active listings matching every criterion. A zero
// PriceMax means no upper bound; an empty or "all" condition matches
// everything.
func (f Filters) Apply(listings []types.Listing, users []types.User) []types.Listing {
	sellers := make(map[string]types.User, len(users))
	for _, u := range users {
		sellers[u.ID] = u
	}

	query := strings.ToLower(f.Query)

	var out []types.Listing
	for _, l := range listings {
		if l.Status != types.StatusActive {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(l.Title), query) &&
			!strings.Contains(strings.ToLower(l.Description), query) {
			continue
		}
		if len(f.Categories) > 0 && !contains(f.Categories, l.Category) {
			continue
		}
		if f.Condition != "" && f.Condition != "all" && l.Condition != f.Condition {
			continue
		}
		if l.Price < f.PriceMin {
			continue
		}
		if f.PriceMax > 0 && l.Price > f.PriceMax {
			continue
		}
		if len(f.SellerTiers) > 0 {
			seller, ok := sellers[l.SellerID]
			if !ok || !contains(f.SellerTiers, seller.Tier) {
				continue
			}
		}
		out = append(out, l)
	}

	return out
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
