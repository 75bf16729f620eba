package cache

import (
	"fmt"
	"sync"
	"time"

	"github.com/dgraph-io/ristretto/v2"
)

// Ristretto is a TTL cache on top of ristretto with per-group key tracking.
// ristretto cannot enumerate its keys, so group membership is kept alongside.
type Ristretto[T any] struct {
	cache *ristretto.Cache[string, T]
	ttl   time.Duration

	mu     sync.Mutex
	groups map[string]map[string]struct{}
}

var _ Grouped[int] = (*Ristretto[int])(nil)

// NewRistretto creates a cache holding up to maxItems entries for ttl each.
func NewRistretto[T any](maxItems int64, ttl time.Duration) (*Ristretto[T], error) {
	if maxItems <= 0 {
		maxItems = 1000
	}
	c, err := ristretto.NewCache(&ristretto.Config[string, T]{
		NumCounters: maxItems * 10, // number of keys to track frequency of
		MaxCost:     maxItems,      // every entry costs 1
		BufferItems: 64,            // number of keys per Get buffer
	})
	if err != nil {
		return nil, fmt.Errorf("create ristretto cache: %w", err)
	}
	return &Ristretto[T]{
		cache:  c,
		ttl:    ttl,
		groups: make(map[string]map[string]struct{}),
	}, nil
}

func (r *Ristretto[T]) Get(key string) (T, bool) {
	return r.cache.Get(key)
}

// Set stores data and waits for ristretto's write buffer so a following Get sees it.
func (r *Ristretto[T]) Set(key string, data T) {
	r.cache.SetWithTTL(key, data, 1, r.ttl)
	r.cache.Wait()
}

func (r *Ristretto[T]) Delete(key string) {
	r.cache.Del(key)
}

// SetInGroup stores data under key and records it in group. Keys of the group
// that ristretto already expired or evicted are dropped from the record.
func (r *Ristretto[T]) SetInGroup(group, key string, data T) {
	r.mu.Lock()
	keys, ok := r.groups[group]
	if !ok {
		keys = make(map[string]struct{})
		r.groups[group] = keys
	}
	for k := range keys {
		if _, live := r.cache.GetTTL(k); !live {
			delete(keys, k)
		}
	}
	keys[key] = struct{}{}
	r.mu.Unlock()
	r.Set(key, data)
}

// InvalidateGroup deletes every key recorded for group and returns how many there were.
func (r *Ristretto[T]) InvalidateGroup(group string) int {
	r.mu.Lock()
	keys := r.groups[group]
	delete(r.groups, group)
	r.mu.Unlock()
	for key := range keys {
		r.cache.Del(key)
	}
	return len(keys)
}

func (r *Ristretto[T]) Close() {
	r.cache.Close()
}
