package cache

import (
	"sync"
	"time"
)

// MemoryStore is an in-process key-value store with per-entry expiry
type MemoryStore[V any] struct {
	mu    sync.RWMutex
	items map[string]memoryItem[V]
	stop  chan struct{}
	once  sync.Once
}

type memoryItem[V any] struct {
	value      V
	expireTime time.Time
}

// NewMemoryStore creates a store that sweeps expired entries every cleanupEvery
func NewMemoryStore[V any](cleanupEvery time.Duration) *MemoryStore[V] {
	store := &MemoryStore[V]{
		items: make(map[string]memoryItem[V]),
		stop:  make(chan struct{}),
	}
	if cleanupEvery > 0 {
		go store.cleanupExpired(cleanupEvery)
	}
	return store
}

// Set stores value under key until ttl elapses
func (ms *MemoryStore[V]) Set(key string, value V, ttl time.Duration) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	ms.items[key] = memoryItem[V]{
		value:      value,
		expireTime: time.Now().Add(ttl),
	}
}

// Get returns the live value for key
func (ms *MemoryStore[V]) Get(key string) (V, bool) {
	ms.mu.RLock()
	defer ms.mu.RUnlock()

	item, exists := ms.items[key]
	if !exists || time.Now().After(item.expireTime) {
		var zero V
		return zero, false
	}
	return item.value, true
}

// Delete removes a key
func (ms *MemoryStore[V]) Delete(key string) {
	ms.mu.Lock()
	defer ms.mu.Unlock()

	delete(ms.items, key)
}

// Len counts stored entries, expired ones included until swept
func (ms *MemoryStore[V]) Len() int {
	ms.mu.RLock()
	defer ms.mu.RUnlock()
	return len(ms.items)
}

// Close stops the sweeper
func (ms *MemoryStore[V]) Close() {
	ms.once.Do(func() { close(ms.stop) })
}

func (ms *MemoryStore[V]) cleanupExpired(every time.Duration) {
	ticker := time.NewTicker(every)
	defer ticker.Stop()

	for {
		select {
		case <-ms.stop:
			return
		case <-ticker.C:
			ms.sweep(time.Now())
		}
	}
}

func (ms *MemoryStore[V]) sweep(now time.Time) {
	ms.mu.Lock()
	defer ms.mu.Unlock()
	for key, item := range ms.items {
		if now.After(item.expireTime) {
			delete(ms.items, key)
		}
	}
}
