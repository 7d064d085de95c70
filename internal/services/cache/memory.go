package cache

import (
	"context"
	"strings"
	"sync"
	"sync/atomic"
	"time"
)

// MemoryCache implements an in-memory cache. It is process-wide state: a
// multi-instance deployment must swap this for a shared store behind the same
// interface.
type MemoryCache struct {
	mu          sync.RWMutex
	items       map[string]*cacheItem
	maxSizeMB   int64
	currentSize int64
	stats       CacheStats
	stopCh      chan struct{}
	wg          sync.WaitGroup
	now         func() time.Time
}

type cacheItem struct {
	value  []byte
	expiry time.Time
	size   int64
}

// NewMemoryCache creates a new in-memory cache
func NewMemoryCache(maxSizeMB int64) *MemoryCache {
	mc := &MemoryCache{
		items:     make(map[string]*cacheItem),
		maxSizeMB: maxSizeMB * 1024 * 1024, // Convert MB to bytes
		stopCh:    make(chan struct{}),
		now:       time.Now,
	}

	// Start cleanup goroutine
	mc.wg.Add(1)
	go mc.cleanupExpired()

	return mc
}

// SetClock overrides the cache's time source. Tests use this to cross TTL
// boundaries without sleeping.
func (mc *MemoryCache) SetClock(now func() time.Time) {
	mc.mu.Lock()
	mc.now = now
	mc.mu.Unlock()
}

// Get retrieves a value from the cache
func (mc *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool) {
	mc.mu.RLock()
	item, exists := mc.items[key]
	now := mc.now()
	mc.mu.RUnlock()

	if !exists {
		atomic.AddInt64(&mc.stats.Misses, 1)
		return nil, false
	}

	// Expired entries are treated as absent and must be recomputed
	if now.After(item.expiry) {
		_ = mc.Delete(ctx, key)
		atomic.AddInt64(&mc.stats.Misses, 1)
		return nil, false
	}

	atomic.AddInt64(&mc.stats.Hits, 1)
	return item.value, true
}

// Set stores a value in the cache with a TTL
func (mc *MemoryCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if ttl <= 0 {
		ttl = 24 * time.Hour // Default TTL
	}

	size := int64(len(key) + len(value))

	// Check if we need to make room
	mc.makeRoom(size)

	mc.mu.Lock()
	item := &cacheItem{
		value:  value,
		expiry: mc.now().Add(ttl),
		size:   size,
	}
	// If replacing, adjust size
	if oldItem, exists := mc.items[key]; exists {
		atomic.AddInt64(&mc.currentSize, -(oldItem.size))
	}
	mc.items[key] = item
	atomic.AddInt64(&mc.currentSize, size)
	mc.mu.Unlock()

	atomic.AddInt64(&mc.stats.Sets, 1)
	return nil
}

// Delete removes a value from the cache
func (mc *MemoryCache) Delete(ctx context.Context, key string) error {
	mc.mu.Lock()
	if item, exists := mc.items[key]; exists {
		delete(mc.items, key)
		atomic.AddInt64(&mc.currentSize, -(item.size))
		atomic.AddInt64(&mc.stats.Deletes, 1)
	}
	mc.mu.Unlock()
	return nil
}

// DeletePrefix removes every key with the given prefix. Used to clear all
// cached languages for one video in a single call.
func (mc *MemoryCache) DeletePrefix(ctx context.Context, prefix string) error {
	mc.mu.Lock()
	for key, item := range mc.items {
		if strings.HasPrefix(key, prefix) {
			delete(mc.items, key)
			atomic.AddInt64(&mc.currentSize, -(item.size))
			atomic.AddInt64(&mc.stats.Deletes, 1)
		}
	}
	mc.mu.Unlock()
	return nil
}

// Clear removes all values from the cache
func (mc *MemoryCache) Clear(ctx context.Context) error {
	mc.mu.Lock()
	mc.items = make(map[string]*cacheItem)
	atomic.StoreInt64(&mc.currentSize, 0)
	mc.mu.Unlock()
	return nil
}

// Has checks if a key exists in the cache
func (mc *MemoryCache) Has(ctx context.Context, key string) bool {
	mc.mu.RLock()
	item, exists := mc.items[key]
	now := mc.now()
	mc.mu.RUnlock()

	return exists && now.Before(item.expiry)
}

// Stats returns cache statistics
func (mc *MemoryCache) Stats() CacheStats {
	stats := mc.stats
	stats.Size = atomic.LoadInt64(&mc.currentSize)
	stats.MaxSize = mc.maxSizeMB
	return stats
}

// Stop gracefully shuts down the cache
func (mc *MemoryCache) Stop() {
	close(mc.stopCh)
	mc.wg.Wait()
}

// cleanupExpired removes expired items periodically
func (mc *MemoryCache) cleanupExpired() {
	defer mc.wg.Done()
	ticker := time.NewTicker(1 * time.Minute)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			mc.removeExpired()
		case <-mc.stopCh:
			return
		}
	}
}

// removeExpired removes all expired items
func (mc *MemoryCache) removeExpired() {
	mc.mu.Lock()
	now := mc.now()
	for key, item := range mc.items {
		if now.After(item.expiry) {
			delete(mc.items, key)
			atomic.AddInt64(&mc.currentSize, -(item.size))
			atomic.AddInt64(&mc.stats.Evictions, 1)
		}
	}
	mc.mu.Unlock()
}

// makeRoom ensures there's room for new data by evicting old items if necessary
func (mc *MemoryCache) makeRoom(sizeNeeded int64) {
	currentSize := atomic.LoadInt64(&mc.currentSize)
	if mc.maxSizeMB <= 0 || currentSize+sizeNeeded <= mc.maxSizeMB {
		return
	}

	// Simple eviction: remove expired items first, then arbitrary items
	mc.removeExpired()

	currentSize = atomic.LoadInt64(&mc.currentSize)
	if currentSize+sizeNeeded > mc.maxSizeMB {
		mc.mu.Lock()
		targetSize := mc.maxSizeMB - sizeNeeded
		for key, item := range mc.items {
			if atomic.LoadInt64(&mc.currentSize) <= targetSize {
				break
			}
			delete(mc.items, key)
			atomic.AddInt64(&mc.currentSize, -(item.size))
			atomic.AddInt64(&mc.stats.Evictions, 1)
		}
		mc.mu.Unlock()
	}
}
