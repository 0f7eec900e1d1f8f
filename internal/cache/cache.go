package cache

import (
	"context"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Memo is an append-only memoization cache with singleflight coalescing per
// key. Entries never expire: a stored value is served for the lifetime of
// the process. Failed fetches store nothing, so callers are free to degrade
// to a default without poisoning the cache.
type Memo[V any] struct {
	mu    sync.RWMutex
	items map[string]V
	group singleflight.Group
}

func NewMemo[V any]() *Memo[V] {
	return &Memo[V]{items: make(map[string]V)}
}

// GetOrFetch returns the memoized value for key, or runs fetch to populate
// it. Concurrent misses on the same key are coalesced into one fetch.
// Returns the value and its source ("cache" or "fetch").
func (m *Memo[V]) GetOrFetch(ctx context.Context, key string, fetch func(context.Context) (V, error)) (V, string, error) {
	m.mu.RLock()
	v, ok := m.items[key]
	m.mu.RUnlock()
	if ok {
		return v, "cache", nil
	}

	res, err, _ := m.group.Do(key, func() (interface{}, error) {
		v, err := fetch(ctx)
		if err != nil {
			return nil, err
		}
		m.mu.Lock()
		m.items[key] = v
		m.mu.Unlock()
		return v, nil
	})
	if err != nil {
		var zero V
		return zero, "", err
	}
	return res.(V), "fetch", nil
}

// Len reports the number of memoized entries.
func (m *Memo[V]) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.items)
}
