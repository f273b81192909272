package cache

import (
	"context"
	"hash/fnv"
	"slices"
	"sync"
	"sync/atomic"
	"time"
)

const (
	// shardCount must be a power of two.
	shardCount = 16
	shardMask  = shardCount - 1

	// DefaultShardCapacity is the default maximum entries per shard.
	DefaultShardCapacity = 64
)

// Memory is a sharded in-process LRU Store. Each shard has its own lock
// and evicts its least recently used entry when full. Expired entries are
// dropped when they are read.
type Memory struct {
	shards   [shardCount]*memoryShard
	capacity int
	now      func() time.Time

	hits      atomic.Uint64
	misses    atomic.Uint64
	evictions atomic.Uint64
}

type memoryShard struct {
	mu      sync.Mutex
	entries map[string]*memoryEntry
	lru     lruList
}

type memoryEntry struct {
	val     []byte
	expires time.Time
	node    *lruNode
}

// NewMemory returns a store holding about capacity*16 entries. A capacity
// of 0 or less uses DefaultShardCapacity.
func NewMemory(capacity int) *Memory {
	if capacity <= 0 {
		capacity = DefaultShardCapacity
	}
	m := &Memory{capacity: capacity, now: time.Now}
	for i := range m.shards {
		m.shards[i] = &memoryShard{entries: make(map[string]*memoryEntry)}
	}
	return m
}

func (m *Memory) shard(key string) *memoryShard {
	h := fnv.New64a()
	_, _ = h.Write([]byte(key)) // fnv.Write never returns an error
	return m.shards[h.Sum64()&shardMask]
}

// Get returns a copy of the value stored under key.
func (m *Memory) Get(_ context.Context, key string) ([]byte, bool, error) {
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if ok && !e.expires.IsZero() && !m.now().Before(e.expires) {
		s.lru.Remove(e.node)
		delete(s.entries, key)
		ok = false
	}
	if !ok {
		m.misses.Add(1)
		return nil, false, nil
	}
	s.lru.MoveToFront(e.node)
	m.hits.Add(1)
	return slices.Clone(e.val), true, nil
}

// Set stores a copy of val.
func (m *Memory) Set(_ context.Context, key string, val []byte, ttl time.Duration) error {
	var expires time.Time
	if ttl > 0 {
		expires = m.now().Add(ttl)
	}
	val = slices.Clone(val)

	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.entries[key]; ok {
		e.val, e.expires = val, expires
		s.lru.MoveToFront(e.node)
		return nil
	}
	for s.lru.Len() >= m.capacity {
		oldest, ok := s.lru.RemoveOldest()
		if !ok {
			break
		}
		delete(s.entries, oldest)
		m.evictions.Add(1)
	}
	s.entries[key] = &memoryEntry{val: val, expires: expires, node: s.lru.PushFront(key)}
	return nil
}

// Delete removes key. Deleting a missing key is not an error.
func (m *Memory) Delete(_ context.Context, key string) error {
	s := m.shard(key)
	s.mu.Lock()
	defer s.mu.Unlock()
	if e, ok := s.entries[key]; ok {
		s.lru.Remove(e.node)
		delete(s.entries, key)
	}
	return nil
}

// Len returns the number of entries, expired ones included.
func (m *Memory) Len() int {
	n := 0
	for _, s := range m.shards {
		s.mu.Lock()
		n += len(s.entries)
		s.mu.Unlock()
	}
	return n
}

// Stats contains store statistics.
type Stats struct {
	Len       int
	Capacity  int
	Hits      uint64
	Misses    uint64
	HitRate   float64
	Evictions uint64
}

// Stats returns current statistics.
func (m *Memory) Stats() Stats {
	hits, misses := m.hits.Load(), m.misses.Load()
	var rate float64
	if total := hits + misses; total > 0 {
		rate = float64(hits) / float64(total)
	}
	return Stats{
		Len:       m.Len(),
		Capacity:  m.capacity * shardCount,
		Hits:      hits,
		Misses:    misses,
		HitRate:   rate,
		Evictions: m.evictions.Load(),
	}
}

var _ Store = (*Memory)(nil)
