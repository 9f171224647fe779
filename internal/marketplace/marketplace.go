package marketplace

import (
	"context"
	"encoding/json"
	"errors"
	"sync"

	"go.uber.org/zap"

	"mazdady-market/internal/social"
	"mazdady-market/internal/storage"
	myErr "mazdady-market/internal/types/errors"
	types "mazdady-market/internal/types/market"
)

// Marketplace owns the canonical in-memory snapshot: listings, users,
// categories, the tier table and the admin config. Every mutation runs to
// completion under the lock and then re-persists the full snapshot
// asynchronously. Readers always see the latest complete snapshot; storage
// is never consulted on the read path.
type Marketplace struct {
	Storage storage.Storage
	Logger  *zap.SugaredLogger
	Social  social.SetsRepo

	mu    sync.RWMutex
	state types.State
	admin types.AdminConfig
}

func NewMarketplace(st storage.Storage, logger *zap.SugaredLogger, sets social.SetsRepo) *Marketplace {
	return &Marketplace{
		Storage: st,
		Logger:  logger,
		Social:  sets,
	}
}

// Load restores the snapshot and the admin config from storage. A missing
// snapshot means first launch: the bundled seed data takes its place and is
// written out immediately.
func (m *Marketplace) Load(ctx context.Context) error {
	var state types.State
	err := m.Storage.Get(ctx, storage.KeyMarketplaceState, &state)
	switch {
	case err == nil && len(state.Listings) > 0:
		// loaded
	case err == nil || errors.Is(err, myErr.ErrNotFound):
		state = seedState()
		if persistErr := m.Storage.Set(ctx, storage.KeyMarketplaceState, state); persistErr != nil {
			m.Logger.Errorf("Failed to persist seed state: %v", persistErr)
		}
	default:
		return err
	}

	admin := types.DefaultAdminConfig()
	if err := m.Storage.Get(ctx, storage.KeyAdminConfig, &admin); err != nil && !errors.Is(err, myErr.ErrNotFound) {
		return err
	}

	m.mu.Lock()
	m.state = state
	m.admin = admin
	m.mu.Unlock()

	m.Logger.Infow("marketplace state loaded",
		"listings", len(state.Listings),
		"users", len(state.Users),
	)

	return nil
}

// persistState serializes the snapshot while the caller still holds the
// write lock, then hands the bytes to storage in the background. A failed
// write is logged and nothing is rolled back: memory stays authoritative.
func (m *Marketplace) persistState() {
	data, err := json.Marshal(m.state)
	if err != nil {
		m.Logger.Errorf("Failed to marshal marketplace state: %v", err)
		return
	}

	go func() {
		if err := m.Storage.Set(context.Background(), storage.KeyMarketplaceState, json.RawMessage(data)); err != nil {
			m.Logger.Errorf("Failed to persist marketplace state: %v", err)
		}
	}()
}

func (m *Marketplace) persistAdminConfig() {
	cfg := m.admin
	go func() {
		if err := m.Storage.Set(context.Background(), storage.KeyAdminConfig, cfg); err != nil {
			m.Logger.Errorf("Failed to persist admin config: %v", err)
		}
	}()
}

// ListingByID returns a deep copy, so callers can hold it without racing
// against later mutations.
func (m *Marketplace) ListingByID(id string) (*types.Listing, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.state.Listings {
		if m.state.Listings[i].ID == id {
			l := cloneListing(m.state.Listings[i])
			return &l, nil
		}
	}
	return nil, myErr.ErrNotFound
}

func (m *Marketplace) Listings() []types.Listing {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Listing, 0, len(m.state.Listings))
	for i := range m.state.Listings {
		out = append(out, cloneListing(m.state.Listings[i]))
	}
	return out
}

func (m *Marketplace) ListingsBySeller(sellerID string) []types.Listing {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []types.Listing
	for i := range m.state.Listings {
		if m.state.Listings[i].SellerID == sellerID {
			out = append(out, cloneListing(m.state.Listings[i]))
		}
	}
	return out
}

func (m *Marketplace) UserByID(id string) (*types.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for i := range m.state.Users {
		if m.state.Users[i].ID == id {
			u := m.state.Users[i]
			return &u, nil
		}
	}
	return nil, myErr.ErrNotFound
}

func (m *Marketplace) Users() []types.User {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.User, len(m.state.Users))
	copy(out, m.state.Users)
	return out
}

func (m *Marketplace) Categories() []types.Category {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.Category, len(m.state.Categories))
	copy(out, m.state.Categories)
	return out
}

func (m *Marketplace) Tiers() []types.UserTier {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]types.UserTier, len(m.state.Tiers))
	copy(out, m.state.Tiers)
	return out
}

func (m *Marketplace) AdminConfig() types.AdminConfig {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.admin
}

// findListing returns a pointer into the live snapshot. Write lock must be
// held by the caller.
func (m *Marketplace) findListing(id string) *types.Listing {
	for i := range m.state.Listings {
		if m.state.Listings[i].ID == id {
			return &m.state.Listings[i]
		}
	}
	return nil
}

func (m *Marketplace) findUser(id string) *types.User {
	for i := range m.state.Users {
		if m.state.Users[i].ID == id {
			return &m.state.Users[i]
		}
	}
	return nil
}

func cloneListing(l types.Listing) types.Listing {
	out := l
	out.Images = append([]string(nil), l.Images...)
	out.Reviews = cloneComments(l.Reviews)
	out.Comments = cloneComments(l.Comments)
	out.Reports = append([]types.Report(nil), l.Reports...)
	if l.Location.Coordinates != nil {
		coords := *l.Location.Coordinates
		out.Location.Coordinates = &coords
	}
	return out
}

func cloneComments(comments []types.Comment) []types.Comment {
	if comments == nil {
		return nil
	}
	out := make([]types.Comment, len(comments))
	for i, c := range comments {
		out[i] = c
		out[i].Replies = cloneComments(c.Replies)
	}
	return out
}
