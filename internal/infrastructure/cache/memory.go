package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
)

const defaultCleanupInterval = 30 * time.Second

type entry struct {
	value     []byte
	expiresAt time.Time
}

func (e entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && now.After(e.expiresAt)
}

// MemoryStore is a process-local Store. It does not share state across
// instances.
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]entry
	logger  *zap.Logger
	now     func() time.Time
	stopCh  chan struct{}
	stopped atomic.Bool

	hits   atomic.Int64
	misses atomic.Int64
}

// NewMemoryStore creates a store and starts its expiry sweeper
func NewMemoryStore(logger *zap.Logger) *MemoryStore {
	s := &MemoryStore{
		entries: make(map[string]entry),
		logger:  logger,
		now:     time.Now,
		stopCh:  make(chan struct{}),
	}
	go s.sweep(defaultCleanupInterval)
	return s
}

// Get returns a copy of the stored value
func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()

	if !ok || e.expired(s.now()) {
		s.misses.Add(1)
		return nil, false, nil
	}
	s.hits.Add(1)
	return append([]byte(nil), e.value...), true, nil
}

// Set stores a copy of value; a non-positive ttl never expires
func (s *MemoryStore) Set(_ context.Context, key string, value []byte, ttl time.Duration) error {
	e := entry{value: append([]byte(nil), value...)}
	if ttl > 0 {
		e.expiresAt = s.now().Add(ttl)
	}
	s.mu.Lock()
	s.entries[key] = e
	s.mu.Unlock()
	return nil
}

// Delete removes keys
func (s *MemoryStore) Delete(_ context.Context, keys ...string) error {
	s.mu.Lock()
	for _, k := range keys {
		delete(s.entries, k)
	}
	s.mu.Unlock()
	return nil
}

// Close stops the sweeper
func (s *MemoryStore) Close() error {
	if s.stopped.CompareAndSwap(false, true) {
		close(s.stopCh)
	}
	return nil
}

// Stats returns hit and miss counts
func (s *MemoryStore) Stats() (hits, misses int64) {
	return s.hits.Load(), s.misses.Load()
}

// Len returns the number of entries, expired or not
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *MemoryStore) sweep(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-s.stopCh:
			return
		case <-ticker.C:
			if removed := s.removeExpired(); removed > 0 {
				s.logger.Debug("Cache sweep", zap.Int("removed", removed))
			}
		}
	}
}

func (s *MemoryStore) removeExpired() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for k, e := range s.entries {
		if e.expired(now) {
			delete(s.entries, k)
			removed++
		}
	}
	return removed
}

var _ Store = (*MemoryStore)(nil)
