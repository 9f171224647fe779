package social

import (
	"context"
	"errors"
	"sort"
	"sync"

	"go.uber.org/zap"

	"mazdady-market/internal/storage"
	myErr "mazdady-market/internal/types/errors"
)

// Sets tracks which listings the local user has liked and favorited. The
// two sets are independent and live under their own storage keys; every
// toggle re-persists the affected set, best effort.
type SetsRepo interface {
	ToggleLike(adID string) bool
	ToggleFavorite(adID string) bool
	IsLiked(adID string) bool
	IsFavorited(adID string) bool
	Liked() []string
	Favorited() []string
}

type Sets struct {
	Storage storage.Storage
	Logger  *zap.SugaredLogger

	mu        sync.Mutex
	liked     map[string]struct{}
	favorited map[string]struct{}
}

func NewSets(st storage.Storage, logger *zap.SugaredLogger) *Sets {
	return &Sets{
		Storage:   st,
		Logger:    logger,
		liked:     make(map[string]struct{}),
		favorited: make(map[string]struct{}),
	}
}

// Load restores both sets from storage. Absent keys mean empty sets.
func (s *Sets) Load(ctx context.Context) error {
	liked, err := s.loadSet(ctx, storage.KeyLikedAds)
	if err != nil {
		return err
	}
	favorited, err := s.loadSet(ctx, storage.KeyFavoritedAds)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.liked = liked
	s.favorited = favorited
	s.mu.Unlock()

	return nil
}

func (s *Sets) loadSet(ctx context.Context, key string) (map[string]struct{}, error) {
	var ids []string
	if err := s.Storage.Get(ctx, key, &ids); err != nil {
		if errors.Is(err, myErr.ErrNotFound) {
			return make(map[string]struct{}), nil
		}
		return nil, err
	}

	set := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// ToggleLike flips membership and reports the new state: true means the
// listing is liked after the call.
func (s *Sets) ToggleLike(adID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	liked := toggle(s.liked, adID)
	s.persist(storage.KeyLikedAds, s.liked)
	return liked
}

func (s *Sets) ToggleFavorite(adID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	favorited := toggle(s.favorited, adID)
	s.persist(storage.KeyFavoritedAds, s.favorited)
	return favorited
}

func (s *Sets) IsLiked(adID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.liked[adID]
	return ok
}

func (s *Sets) IsFavorited(adID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.favorited[adID]
	return ok
}

func (s *Sets) Liked() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.liked)
}

func (s *Sets) Favorited() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return sortedIDs(s.favorited)
}

func toggle(set map[string]struct{}, id string) bool {
	if _, ok := set[id]; ok {
		delete(set, id)
		return false
	}
	set[id] = struct{}{}
	return true
}

// persist writes the set asynchronously; a failed write is logged and the
// in-memory set stays authoritative. Caller holds the lock, so the slice
// is built before the goroutine starts.
func (s *Sets) persist(key string, set map[string]struct{}) {
	ids := sortedIDs(set)
	go func() {
		if err := s.Storage.Set(context.Background(), key, ids); err != nil {
			s.Logger.Errorf("Failed to persist %s: %v", key, err)
		}
	}()
}

func sortedIDs(set map[string]struct{}) []string {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
