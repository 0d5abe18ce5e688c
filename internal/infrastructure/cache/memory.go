package cache

import (
	"context"
	"sync"
	"time"

	"github.com/pantrylens/backend/internal/domain"
)

// MemoryCache is a thread-safe in-process catalog snapshot cache with TTL.
// It holds one snapshot; batches within the TTL share it.
type MemoryCache struct {
	mutex      sync.RWMutex
	entries    []domain.CatalogEntry
	expiration time.Time
}

// NewMemoryCache creates an empty in-memory snapshot cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{}
}

// GetCatalog returns the cached snapshot, or ErrCacheMiss when empty or
// expired.
func (c *MemoryCache) GetCatalog(ctx context.Context) ([]domain.CatalogEntry, error) {
	c.mutex.RLock()
	defer c.mutex.RUnlock()

	if c.entries == nil || time.Now().After(c.expiration) {
		return nil, domain.ErrCacheMiss
	}

	// Return a copy so callers cannot mutate the cached snapshot
	snapshot := make([]domain.CatalogEntry, len(c.entries))
	copy(snapshot, c.entries)
	return snapshot, nil
}

// SetCatalog stores a snapshot with the given TTL.
func (c *MemoryCache) SetCatalog(ctx context.Context, entries []domain.CatalogEntry, ttl time.Duration) error {
	stored := make([]domain.CatalogEntry, len(entries))
	copy(stored, entries)

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = stored
	c.expiration = time.Now().Add(ttl)
	return nil
}

// Invalidate drops the cached snapshot.
func (c *MemoryCache) Invalidate(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries = nil
	c.expiration = time.Time{}
	return nil
}

// Size returns the number of cached entries (for debugging/monitoring).
func (c *MemoryCache) Size() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.entries)
}
