// Package ratelimit implements a per-client sliding-window-log
// admission policy: at most Limit requests within the trailing Window,
// counted from real request timestamps rather than fixed calendar
// buckets. Rejected attempts are never recorded.
package ratelimit

import (
	"context"
	"errors"
	"time"
)

// ErrRateLimited is returned by Admit when the caller's window is full.
var ErrRateLimited = errors.New("rate limit exceeded")

// Store is the injectable counter store behind a Limiter. Admit must
// purge entries older than now−window, count the remainder, and append
// now — all as one atomic step per key.
type Store interface {
	Admit(ctx context.Context, key string, now time.Time) (bool, error)
}

// Limiter gates requests through a Store.
type Limiter struct {
	store Store
}

// New creates a Limiter over the given store.
func New(store Store) *Limiter {
	return &Limiter{store: store}
}

// Admit records the request attempt for key and returns nil when it is
// within the window cap, ErrRateLimited when the cap is reached, or
// the store's error when the backend is unreachable.
func (l *Limiter) Admit(ctx context.Context, key string) error {
	ok, err := l.store.Admit(ctx, key, time.Now())
	if err != nil {
		return err
	}
	if !ok {
		return ErrRateLimited
	}
	return nil
}
