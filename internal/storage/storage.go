package storage

import "context"

// Namespaced keys for every logical dataset. One blob per key, no sharing.
const (
	KeyMarketplaceState = "marketplaceState"
	KeyAdminConfig      = "adminConfig"
	KeyLikedAds         = "likedAds"
	KeyFavoritedAds     = "favoritedAds"
)

// Storage is the persistence boundary: key to JSON blob, nothing more.
// Writes happen on every mutation, so implementations must tolerate being
// called far more often than the medium's practical write rate. Failures
// are reported to the caller, which logs them and carries on: the in-memory
// snapshot stays the source of truth.
type Storage interface {
	// Set marshals value to JSON and stores it under key.
	Set(ctx context.Context, key string, value interface{}) error
	// Get unmarshals the blob under key into dest.
	// Returns errors.ErrNotFound when the key is absent.
	Get(ctx context.Context, key string, dest interface{}) error
	// Remove deletes the blob under key. Removing an absent key is not an error.
	Remove(ctx context.Context, key string) error
}
