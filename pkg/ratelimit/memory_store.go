package ratelimit

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"
)

// MemoryStore keeps timestamps in process memory. Each key expires one window
// after its last write, by which point all its timestamps are stale, and a
// janitor evicts expired keys every sweep interval.
type MemoryStore struct {
	cache *cache.Cache
}

// NewMemoryStore creates a store whose entries live for ttl after the last Put.
func NewMemoryStore(ttl, sweepInterval time.Duration) *MemoryStore {
	if ttl <= 0 {
		ttl = DefaultWindow
	}
	if sweepInterval <= 0 {
		sweepInterval = 5 * time.Minute
	}
	return &MemoryStore{
		cache: cache.New(ttl, sweepInterval),
	}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]time.Time, error) {
	v, ok := s.cache.Get(key)
	if !ok {
		return nil, nil
	}
	stamps := v.([]time.Time)
	out := make([]time.Time, len(stamps))
	copy(out, stamps)
	return out, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, timestamps []time.Time) error {
	stored := make([]time.Time, len(timestamps))
	copy(stored, timestamps)
	s.cache.Set(key, stored, cache.DefaultExpiration)
	return nil
}

// Len returns the number of tracked keys, expired-but-unswept included.
func (s *MemoryStore) Len() int {
	return s.cache.ItemCount()
}
