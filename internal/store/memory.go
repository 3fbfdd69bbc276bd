package store

import (
	"encoding/binary"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// MemoryStore caches rendered views by content key. It is an optimization
// only: a miss always rebuilds the same value.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[uint64]any
	limit   int
	hits    func()
	misses  func()
}

func NewMemoryStore(limit int) *MemoryStore {
	return &MemoryStore{entries: make(map[uint64]any), limit: limit}
}

// OnLookup registers hit/miss callbacks, e.g. for metrics.
func (s *MemoryStore) OnLookup(hit, miss func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hits, s.misses = hit, miss
}

// Key hashes the parts into a cache key. Each part is length-prefixed, so no
// choice of part contents can make two different part lists collide.
func Key(parts ...string) uint64 {
	d := xxhash.New()
	var n [binary.MaxVarintLen64]byte
	for _, p := range parts {
		d.Write(n[:binary.PutUvarint(n[:], uint64(len(p)))])
		d.WriteString(p)
	}
	return d.Sum64()
}

func (s *MemoryStore) get(k uint64) (any, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.entries[k]
	if ok && s.hits != nil {
		s.hits()
	}
	if !ok && s.misses != nil {
		s.misses()
	}
	return v, ok
}

func (s *MemoryStore) put(k uint64, v any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.limit <= 0 {
		return
	}
	if len(s.entries) >= s.limit {
		// drop everything; views are cheap to rebuild
		s.entries = make(map[uint64]any)
	}
	s.entries[k] = v
}

func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) Purge() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = make(map[uint64]any)
}

// Memo returns the cached value for k or builds, stores and returns it.
// Errors are not cached. A nil store always builds.
func Memo[T any](s *MemoryStore, k uint64, build func() (T, error)) (T, error) {
	if s == nil {
		return build()
	}
	if v, ok := s.get(k); ok {
		if t, ok := v.(T); ok {
			return t, nil
		}
	}
	t, err := build()
	if err != nil {
		return t, err
	}
	s.put(k, t)
	return t, nil
}
