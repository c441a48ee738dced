package ratelimit

import (
	"context"
	"sync"
	"time"
)

// MemoryStore keeps one timestamp log per client key, guarded by a
// single mutex. Purge, count, and append happen inside one critical
// section so two concurrent requests from the same client cannot both
// observe an under-threshold count. State is process-lifetime only; a
// restart resets every window.
type MemoryStore struct {
	mu           sync.Mutex
	windows      map[string][]time.Time
	limit        int
	window       time.Duration
	cleanupEvery time.Duration
}

// MemoryStoreOption customizes a MemoryStore.
type MemoryStoreOption func(*MemoryStore)

// WithCleanupEvery sets the janitor interval for idle keys.
func WithCleanupEvery(d time.Duration) MemoryStoreOption {
	return func(s *MemoryStore) { s.cleanupEvery = d }
}

// NewMemoryStore creates a store admitting limit requests per window.
func NewMemoryStore(limit int, window time.Duration, opts ...MemoryStoreOption) *MemoryStore {
	s := &MemoryStore{
		windows:      make(map[string][]time.Time),
		limit:        limit,
		window:       window,
		cleanupEvery: 2 * time.Minute,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Admit implements Store. The rejected attempt itself is not appended,
// so a throttled client does not push its own window forward.
func (s *MemoryStore) Admit(_ context.Context, key string, now time.Time) (bool, error) {
	cutoff := now.Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	times := s.windows[key]
	kept := times[:0]
	for _, t := range times {
		if t.After(cutoff) {
			kept = append(kept, t)
		}
	}

	if len(kept) >= s.limit {
		s.windows[key] = kept
		return false, nil
	}

	s.windows[key] = append(kept, now)
	return true, nil
}

// Cleanup drops keys whose every timestamp has left the window.
func (s *MemoryStore) Cleanup() {
	cutoff := time.Now().Add(-s.window)

	s.mu.Lock()
	defer s.mu.Unlock()

	for key, times := range s.windows {
		expired := true
		for _, t := range times {
			if t.After(cutoff) {
				expired = false
				break
			}
		}
		if expired {
			delete(s.windows, key)
		}
	}
}

// StartJanitor runs Cleanup periodically until ctx is cancelled.
func (s *MemoryStore) StartJanitor(ctx context.Context) {
	if s.cleanupEvery <= 0 {
		return
	}
	t := time.NewTicker(s.cleanupEvery)
	go func() {
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				s.Cleanup()
			}
		}
	}()
}
