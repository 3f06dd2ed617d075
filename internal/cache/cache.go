package cache

import (
	"sort"
	"sync"
)

// Memo is a generic thread-safe cache with a soft size limit.
// When the memo exceeds its limit, the least recently used quarter of the
// entries is evicted.
type Memo[K comparable, V any] struct {
	mu      sync.Mutex
	entries map[K]*entry[V]
	limit   int
	tick    int64 // Monotonic access counter
	hits    uint64
	misses  uint64
}

type entry[V any] struct {
	value V
	atime int64
}

// New creates a memo with the given soft limit.
// A limit of 0 means unlimited.
func New[K comparable, V any](limit int) *Memo[K, V] {
	return &Memo[K, V]{
		entries: make(map[K]*entry[V]),
		limit:   limit,
	}
}

// GetOrCreate returns the memoised value or computes and stores it.
// create runs under the lock, so it must not call back into the memo.
func (m *Memo[K, V]) GetOrCreate(key K, create func() V) V {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.tick++
	if e, ok := m.entries[key]; ok {
		m.hits++
		e.atime = m.tick
		return e.value
	}
	m.misses++
	v := create()
	m.entries[key] = &entry[V]{value: v, atime: m.tick}
	if m.limit > 0 && len(m.entries) > m.limit {
		m.evict()
	}
	return v
}

// Stats returns hit and miss counters.
func (m *Memo[K, V]) Stats() Stats {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Stats{Len: len(m.entries), Limit: m.limit, Hits: m.hits, Misses: m.misses}
}

// evict drops the oldest entries until the memo is at 3/4 of its limit.
// Caller must hold m.mu.
func (m *Memo[K, V]) evict() {
	target := m.limit * 3 / 4
	if target < 1 {
		target = 1
	}
	n := len(m.entries) - target
	if n <= 0 {
		return
	}

	type aged struct {
		key   K
		atime int64
	}
	all := make([]aged, 0, len(m.entries))
	for k, e := range m.entries {
		all = append(all, aged{key: k, atime: e.atime})
	}
	sort.Slice(all, func(i, j int) bool { return all[i].atime < all[j].atime })
	for _, a := range all[:n] {
		delete(m.entries, a.key)
	}
}

// Stats contains memo statistics.
type Stats struct {
	Len    int
	Limit  int
	Hits   uint64
	Misses uint64
}
