package browsing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	types "mazdady-market/internal/types/market"
)

func listing(id, sellerID string, price float64, likes, views int, createdAt time.Time, coords *types.Coordinates) types.Listing {
	return types.Listing{
		ID:       id,
		SellerID: sellerID,
		Price:    price,
		Status:   types.StatusActive,
		Stats: types.Stats{
			Likes:     likes,
			Views:     views,
			CreatedAt: createdAt,
		},
		Location: types.Location{Coordinates: coords},
	}
}

func ids(listings []types.Listing) []string {
	out := make([]string, 0, len(listings))
	for _, l := range listings {
		out = append(out, l.ID)
	}
	return out
}

func TestHaversine(t *testing.T) {
	paris := types.Coordinates{Lat: 48.8566, Lng: 2.3522}
	berlin := types.Coordinates{Lat: 52.52, Lng: 13.405}

	// identical points
	assert.Zero(t, Haversine(paris, paris))

	// symmetric
	assert.InDelta(t, Haversine(paris, berlin), Haversine(berlin, paris), 1e-9)

	// Paris to Berlin is about 878 km; stay within 1% of the true value
	d := Haversine(paris, berlin)
	assert.InDelta(t, 877.46, d, 8.78)
}

func TestSort_PriceAndDate(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	listings := []types.Listing{
		listing("a", "s1", 300, 0, 0, base.AddDate(0, 0, 2), nil),
		listing("b", "s1", 100, 0, 0, base, nil),
		listing("c", "s1", 200, 0, 0, base.AddDate(0, 0, 1), nil),
	}

	assert.Equal(t, []string{"b", "c", "a"}, ids(Sort(listings, nil, SortPriceLowHigh, nil)))
	assert.Equal(t, []string{"a", "c", "b"}, ids(Sort(listings, nil, SortPriceHighLow, nil)))
	assert.Equal(t, []string{"a", "c", "b"}, ids(Sort(listings, nil, SortDateNewOld, nil)))
	assert.Equal(t, []string{"b", "c", "a"}, ids(Sort(listings, nil, SortDateOldNew, nil)))

	// input order is untouched
	assert.Equal(t, []string{"a", "b", "c"}, ids(listings))
}

func TestSort_MostLikedIsStable(t *testing.T) {
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	listings := []types.Listing{
		listing("a", "s1", 0, 5, 0, base, nil),
		listing("b", "s1", 0, 9, 0, base, nil),
		listing("c", "s1", 0, 5, 0, base, nil),
		listing("d", "s1", 0, 5, 0, base, nil),
	}

	// the three listings sharing 5 likes keep their original relative order
	assert.Equal(t, []string{"b", "a", "c", "d"}, ids(Sort(listings, nil, SortMostLiked, nil)))
}

func TestSort_RatingUsesSellerAggregateWithReviewCountTieBreak(t *testing.T) {
	users := []types.User{
		{ID: "s1", Rating: 4.8, ReviewCount: 10},
		{ID: "s2", Rating: 4.8, ReviewCount: 50},
		{ID: "s3", Rating: 3.1, ReviewCount: 200},
	}
	base := time.Now()
	listings := []types.Listing{
		listing("a", "s1", 0, 0, 0, base, nil),
		listing("b", "s3", 0, 0, 0, base, nil),
		listing("c", "s2", 0, 0, 0, base, nil),
	}

	// equal ratings fall back to review count, same direction
	assert.Equal(t, []string{"c", "a", "b"}, ids(Sort(listings, users, SortRatingHighLow, nil)))
	assert.Equal(t, []string{"b", "a", "c"}, ids(Sort(listings, users, SortRatingLowHigh, nil)))
}

func TestSort_VerifiedFirst(t *testing.T) {
	users := []types.User{
		{ID: "s1", IsVerified: true},
		{ID: "s2"},
	}
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	listings := []types.Listing{
		listing("old-verified", "s1", 0, 0, 0, base, nil),
		listing("new-unverified", "s2", 0, 0, 0, base.AddDate(0, 0, 5), nil),
		listing("new-verified", "s1", 0, 0, 0, base.AddDate(0, 0, 3), nil),
	}

	// verified before unverified, newest first within each group
	assert.Equal(t,
		[]string{"new-verified", "old-verified", "new-unverified"},
		ids(Sort(listings, users, SortVerifiedFirst, nil)),
	)
}

func TestSort_NearbyFirst(t *testing.T) {
	sf := &types.Coordinates{Lat: 37.7749, Lng: -122.4194}
	la := &types.Coordinates{Lat: 34.0522, Lng: -118.2437}
	ny := &types.Coordinates{Lat: 40.7128, Lng: -74.0060}
	austin := &types.Coordinates{Lat: 30.2672, Lng: -97.7431}

	base := time.Now()
	listings := []types.Listing{
		listing("ny", "s1", 0, 0, 0, base, ny),
		listing("la", "s1", 0, 0, 0, base, la),
		listing("austin", "s1", 0, 0, 0, base, austin),
	}

	assert.Equal(t, []string{"la", "austin", "ny"}, ids(Sort(listings, nil, SortNearbyFirst, sf)))

	// a listing with no coordinates contributes no ordering
	listings = append(listings, listing("nowhere", "s1", 0, 0, 0, base, nil))
	sorted := Sort(listings, nil, SortNearbyFirst, sf)
	require.Len(t, sorted, 4)
	assert.Equal(t, "la", sorted[0].ID)
}

func TestSort_NearbyWithoutLocationKeepsOrder(t *testing.T) {
	base := time.Now()
	listings := []types.Listing{
		listing("a", "s1", 0, 0, 0, base, &types.Coordinates{Lat: 1, Lng: 1}),
		listing("b", "s1", 0, 0, 0, base, &types.Coordinates{Lat: 2, Lng: 2}),
	}

	assert.Equal(t, []string{"a", "b"}, ids(Sort(listings, nil, SortNearbyFirst, nil)))
}

func TestAvailable(t *testing.T) {
	assert.True(t, Available(SortPriceLowHigh, nil))
	assert.False(t, Available(SortNearbyFirst, nil))
	assert.True(t, Available(SortNearbyFirst, &types.Coordinates{Lat: 1, Lng: 1}))
}
