package browsing

import (
	"sort"

	types "mazdady-market/internal/types/market"
)

type SortOption string

const (
	SortPriceLowHigh  SortOption = "price-low-high"
	SortPriceHighLow  SortOption = "price-high-low"
	SortDateNewOld    SortOption = "date-new-old"
	SortDateOldNew    SortOption = "date-old-new"
	SortRatingHighLow SortOption = "rating-high-low"
	SortRatingLowHigh SortOption = "rating-low-high"
	SortMostLiked     SortOption = "most-liked"
	SortMostViewed    SortOption = "most-viewed"
	SortVerifiedFirst SortOption = "verified-first"
	SortNearbyFirst   SortOption = "nearby-first"
)

// Available reports whether a sort option can actually order anything
// right now. Only nearby-first has a precondition: without a caller
// coordinate it cannot rank, and the UI should disable or relabel it.
func Available(by SortOption, userLocation *types.Coordinates) bool {
	if by == SortNearbyFirst {
		return userLocation != nil
	}
	return true
}

// Sort orders listings by the given option and returns a new slice. The
// sort is stable on purpose: several options leave large equivalence
// classes and equal elements must keep their prior relative order.
// Rating options rank by the seller aggregate, not the listing's own
// rating, with the seller review count as tie-break.
func Sort(listings []types.Listing, users []types.User, by SortOption, userLocation *types.Coordinates) []types.Listing {
	sorted := make([]types.Listing, len(listings))
	copy(sorted, listings)

	sellers := make(map[string]types.User, len(users))
	for _, u := range users {
		sellers[u.ID] = u
	}

	less := comparator(by, sellers, userLocation)
	if less == nil {
		return sorted
	}

	sort.SliceStable(sorted, func(i, j int) bool {
		return less(&sorted[i], &sorted[j])
	})

	return sorted
}

func comparator(by SortOption, sellers map[string]types.User, userLocation *types.Coordinates) func(a, b *types.Listing) bool {
	switch by {
	case SortPriceLowHigh:
		return func(a, b *types.Listing) bool { return a.Price < b.Price }
	case SortPriceHighLow:
		return func(a, b *types.Listing) bool { return a.Price > b.Price }
	case SortDateNewOld:
		return func(a, b *types.Listing) bool { return a.Stats.CreatedAt.After(b.Stats.CreatedAt) }
	case SortDateOldNew:
		return func(a, b *types.Listing) bool { return a.Stats.CreatedAt.Before(b.Stats.CreatedAt) }
	case SortRatingHighLow:
		return func(a, b *types.Listing) bool {
			sa, sb := sellers[a.SellerID], sellers[b.SellerID]
			if sa.Rating != sb.Rating {
				return sa.Rating > sb.Rating
			}
			return sa.ReviewCount > sb.ReviewCount
		}
	case SortRatingLowHigh:
		return func(a, b *types.Listing) bool {
			sa, sb := sellers[a.SellerID], sellers[b.SellerID]
			if sa.Rating != sb.Rating {
				return sa.Rating < sb.Rating
			}
			return sa.ReviewCount < sb.ReviewCount
		}
	case SortMostLiked:
		return func(a, b *types.Listing) bool { return a.Stats.Likes > b.Stats.Likes }
	case SortMostViewed:
		return func(a, b *types.Listing) bool { return a.Stats.Views > b.Stats.Views }
	case SortVerifiedFirst:
		return func(a, b *types.Listing) bool {
			va := sellers[a.SellerID].IsVerified
			vb := sellers[b.SellerID].IsVerified
			if va != vb {
				return va
			}
			return a.Stats.CreatedAt.After(b.Stats.CreatedAt)
		}
	case SortNearbyFirst:
		if userLocation == nil {
			// no caller coordinate: contributes no ordering at all
			return nil
		}
		return func(a, b *types.Listing) bool {
			if a.Location.Coordinates == nil || b.Location.Coordinates == nil {
				return false
			}
			return Haversine(*userLocation, *a.Location.Coordinates) < Haversine(*userLocation, *b.Location.Coordinates)
		}
	default:
		return nil
	}
}
