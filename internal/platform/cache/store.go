package cache

import (
	"context"
	"sync"
	"time"
)

type entry struct {
	value     string
	expiresAt time.Time
}

// Store is an in-process key-value store. Entries older than the retention
// window are evicted lazily on read and by Sweep.
type Store struct {
	mu        sync.RWMutex
	entries   map[string]entry
	retention time.Duration
	now       func() time.Time
}

func NewStore(retention time.Duration) *Store {
	return &Store{
		entries:   make(map[string]entry),
		retention: retention,
		now:       time.Now,
	}
}

func (s *Store) Get(_ context.Context, key string) (string, bool, error) {
	if key == "" {
		return "", false, nil
	}

	s.mu.RLock()
	e, ok := s.entries[key]
	s.mu.RUnlock()
	if !ok {
		return "", false, nil
	}
	if s.expired(e) {
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && s.expired(current) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		return "", false, nil
	}

	return e.value, true, nil
}

func (s *Store) Set(_ context.Context, key, value string) error {
	if key == "" {
		return nil
	}

	expiresAt := time.Time{}
	if s.retention > 0 {
		expiresAt = s.now().Add(s.retention)
	}

	s.mu.Lock()
	s.entries[key] = entry{
		value:     value,
		expiresAt: expiresAt,
	}
	s.mu.Unlock()
	return nil
}

// Sweep drops every expired entry and returns how many were removed.
func (s *Store) Sweep() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for key, e := range s.entries {
		if s.expired(e) {
			delete(s.entries, key)
			removed++
		}
	}
	return removed
}

func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

func (s *Store) expired(e entry) bool {
	return !e.expiresAt.IsZero() && !e.expiresAt.After(s.now())
}
