package marketplace

import (
	"time"

	"golang.org/x/crypto/bcrypt"

	types "mazdady-market/internal/types/market"
)

// seedState builds the first-launch dataset: a handful of sellers and
// listings so the marketplace is browsable before anyone registers.
// Derived ratings are computed, not hard-coded, so the seed can never
// violate the aggregate invariants.
func seedState() types.State {
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("mazdady-admin"), bcrypt.DefaultCost) // nolint:errcheck

	users := []types.User{
		{
			ID: "seller-1", Name: "TechieTom", Email: "tom@example.com",
			Bio: "Your go-to for the latest gadgets and electronics.", Tier: "gold",
			CreatedAt: time.Date(2022, 1, 15, 10, 0, 0, 0, time.UTC),
			IsVerified: true, Status: types.StatusActive,
		},
		{
			ID: "seller-2", Name: "FashionistaFiona", Email: "fiona@example.com",
			Bio: "Curated vintage and modern fashion pieces.", Tier: "platinum",
			CreatedAt: time.Date(2021, 3, 20, 14, 30, 0, 0, time.UTC),
			IsVerified: true, Status: types.StatusActive,
		},
		{
			ID: "seller-3", Name: "NewbieNick", Email: "nick@example.com",
			Bio: "Just getting started, selling some old stuff!", Tier: "normal",
			CreatedAt: time.Date(2024, 2, 15, 16, 0, 0, 0, time.UTC),
			Status:    types.StatusActive,
		},
		{
			ID: "seller-admin", Name: "AdminAnna", Email: "admin@example.com",
			Bio: "MAZDADY Marketplace Administrator.", Tier: "MAZ",
			CreatedAt: time.Date(2018, 1, 1, 0, 0, 0, 0, time.UTC),
			IsVerified: true, IsAdmin: true, Status: types.StatusActive,
			PasswordHash: string(adminHash),
		},
	}

	listings := []types.Listing{
		seedListing("ad-01", "seller-1", "Pristine iPhone 14 Pro",
			"Barely used iPhone 14 Pro, 256GB, Deep Purple. Comes with original box and cable.",
			850, "electronics", "used",
			types.Location{City: "San Francisco", Country: "USA", Coordinates: &types.Coordinates{Lat: 37.7749, Lng: -122.4194}},
			[]float64{5, 5},
		),
		seedListing("ad-02", "seller-1", "Dell XPS 15 Laptop",
			"Powerful developer laptop. Intel i7, 32GB RAM, 1TB SSD, 4K OLED screen.",
			1600, "electronics", "used",
			types.Location{City: "San Francisco", Country: "USA", Coordinates: &types.Coordinates{Lat: 37.7749, Lng: -122.4194}},
			[]float64{5, 4},
		),
		seedListing("ad-03", "seller-2", "Vintage Leather Jacket",
			"Genuine 80s leather jacket, size M. Aged to perfection.",
			120, "fashion", "used",
			types.Location{City: "New York", Country: "USA", Coordinates: &types.Coordinates{Lat: 40.7128, Lng: -74.0060}},
			[]float64{5, 5, 4},
		),
		seedListing("ad-04", "seller-3", "Boxed Old Board Games",
			"A pile of board games from my attic. Some shrink-wrapped.",
			35, "home-garden", "used",
			types.Location{City: "Austin", Country: "USA", Coordinates: &types.Coordinates{Lat: 30.2672, Lng: -97.7431}},
			nil,
		),
	}

	state := types.State{
		Listings:   listings,
		Users:      users,
		Categories: types.DefaultCategories(),
		Tiers:      types.DefaultTiers(),
		Reports:    []types.Report{},
	}

	// derive seller aggregates from the seeded reviews
	for i := range state.Users {
		var sum float64
		var count int
		for j := range state.Listings {
			if state.Listings[j].SellerID != state.Users[i].ID {
				continue
			}
			for _, r := range state.Listings[j].Reviews {
				sum += r.Rating
				count++
			}
		}
		if count > 0 {
			state.Users[i].Rating = sum / float64(count)
		}
		state.Users[i].ReviewCount = count
	}

	return state
}

func seedListing(id, sellerID, title, description string, price float64, category, condition string, loc types.Location, reviewRatings []float64) types.Listing {
	created := time.Date(2024, 5, 20, 10, 0, 0, 0, time.UTC)

	reviews := make([]types.Comment, 0, len(reviewRatings))
	for i, rating := range reviewRatings {
		reviews = append(reviews, types.Comment{
			ID:         id + "-review-" + string(rune('a'+i)),
			AuthorID:   "seller-admin",
			AuthorName: "AdminAnna",
			Text:       "Great seller, smooth deal.",
			Rating:     rating,
			Replies:    []types.Comment{},
			CreatedAt:  created.AddDate(0, 0, i+1),
		})
	}

	return types.Listing{
		ID:          id,
		SellerID:    sellerID,
		Title:       title,
		Description: description,
		Price:       price,
		Currency:    "USD",
		Category:    category,
		Condition:   condition,
		Location:    loc,
		Stats: types.Stats{
			CreatedAt: created,
			UpdatedAt: created,
		},
		Availability: types.Availability{Quantity: 1, InStock: true},
		Status:       types.StatusActive,
		Rating:       meanRating(reviews),
		Reviews:      reviews,
		Comments:     []types.Comment{},
		Reports:      []types.Report{},
	}
}
