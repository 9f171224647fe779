package storage

import (
	"context"
	"encoding/json"
	"sync"

	myErr "mazdady-market/internal/types/errors"
)

// MemoryStorage keeps blobs in a map. It backs tests and serves as the
// fallback when no Redis address is configured: the process still runs,
// state just does not survive a restart.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{
		blobs: make(map[string][]byte),
	}
}

func (ms *MemoryStorage) Set(_ context.Context, key string, value interface{}) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	ms.mu.Lock()
	ms.blobs[key] = data
	ms.mu.Unlock()

	return nil
}

func (ms *MemoryStorage) Get(_ context.Context, key string, dest interface{}) error {
	ms.mu.RLock()
	data, ok := ms.blobs[key]
	ms.mu.RUnlock()

	if !ok {
		return myErr.ErrNotFound
	}

	return json.Unmarshal(data, dest)
}

func (ms *MemoryStorage) Remove(_ context.Context, key string) error {
	ms.mu.Lock()
	delete(ms.blobs, key)
	ms.mu.Unlock()

	return nil
}
