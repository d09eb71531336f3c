// Package ratelimit implements a rolling-window limiter keyed by client identity.
//
// Only timestamps newer than now-window count toward the limit. A rejected
// attempt is never recorded, so it does not consume a slot.
package ratelimit

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
)

const (
	DefaultLimit  = 5
	DefaultWindow = time.Hour
)

// Store persists the accepted timestamps per key.
type Store interface {
	Get(ctx context.Context, key string) ([]time.Time, error)
	Put(ctx context.Context, key string, timestamps []time.Time) error
}

// AtomicStore performs the whole prune-check-append step in one operation.
type AtomicStore interface {
	Admit(ctx context.Context, key string, now time.Time, window time.Duration, limit int) (Decision, error)
}

// Decision is the outcome of a single check.
type Decision struct {
	Allowed   bool
	Limit     int
	Remaining int
	// ResetAt is when the oldest counted attempt leaves the window.
	ResetAt time.Time
}

// RetryAfter returns the wait before another attempt could be admitted.
func (d Decision) RetryAfter(now time.Time) time.Duration {
	if d.Allowed || d.ResetAt.IsZero() {
		return 0
	}
	if wait := d.ResetAt.Sub(now); wait > 0 {
		return wait
	}
	return 0
}

// Option configures a Limiter.
type Option func(*Limiter)

// WithFallback sets a store used when the primary store returns an error.
func WithFallback(s Store) Option {
	return func(l *Limiter) {
		l.fallback = s
	}
}

// WithOnDegraded registers a callback invoked whenever the fallback is used.
func WithOnDegraded(fn func(key string, err error)) Option {
	return func(l *Limiter) {
		l.onDegraded = fn
	}
}

type Limiter struct {
	store      Store
	atomic     AtomicStore
	fallback   Store
	onDegraded func(key string, err error)
	limit      int
	window     time.Duration
	// mu serializes read-prune-check-append for non-atomic stores.
	mu sync.Mutex
}

// NewLimiter creates a limiter admitting at most limit attempts per window.
// Non-positive values fall back to 5 per hour.
func NewLimiter(store Store, limit int, window time.Duration, opts ...Option) *Limiter {
	l := newLimiter(limit, window, opts)
	l.store = store
	return l
}

// NewAtomicLimiter creates a limiter whose primary store admits in one round trip.
// A fallback set with WithFallback still goes through Get/Put.
func NewAtomicLimiter(store AtomicStore, limit int, window time.Duration, opts ...Option) *Limiter {
	l := newLimiter(limit, window, opts)
	l.atomic = store
	return l
}

func newLimiter(limit int, window time.Duration, opts []Option) *Limiter {
	if limit <= 0 {
		limit = DefaultLimit
	}
	if window <= 0 {
		window = DefaultWindow
	}
	l := &Limiter{
		limit:  limit,
		window: window,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(l)
		}
	}
	return l
}

func (l *Limiter) Limit() int { return l.limit }

func (l *Limiter) Window() time.Duration { return l.window }

// Allow checks key at instant now and records the attempt when admitted.
func (l *Limiter) Allow(ctx context.Context, key string, now time.Time) (Decision, error) {
	var (
		d   Decision
		err error
	)
	if l.atomic != nil {
		d, err = l.atomic.Admit(ctx, key, now, l.window, l.limit)
	} else {
		d, err = l.check(ctx, l.store, key, now)
	}
	if err == nil || l.fallback == nil {
		return d, err
	}
	if l.onDegraded != nil {
		l.onDegraded(key, err)
	}
	return l.check(ctx, l.fallback, key, now)
}

func (l *Limiter) check(ctx context.Context, s Store, key string, now time.Time) (Decision, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	stamps, err := s.Get(ctx, key)
	if err != nil {
		return Decision{}, fmt.Errorf("ratelimit: get %q: %w", key, err)
	}

	stamps = prune(stamps, now, l.window)
	if len(stamps) >= l.limit {
		return Decision{
			Allowed: false,
			Limit:   l.limit,
			ResetAt: oldest(stamps).Add(l.window),
		}, nil
	}

	stamps = append(stamps, now)
	if err := s.Put(ctx, key, stamps); err != nil {
		return Decision{}, fmt.Errorf("ratelimit: put %q: %w", key, err)
	}

	return Decision{
		Allowed:   true,
		Limit:     l.limit,
		Remaining: l.limit - len(stamps),
		ResetAt:   oldest(stamps).Add(l.window),
	}, nil
}

// prune keeps timestamps strictly after now-window.
func prune(stamps []time.Time, now time.Time, window time.Duration) []time.Time {
	cutoff := now.Add(-window)
	return lo.Filter(stamps, func(ts time.Time, _ int) bool {
		return ts.After(cutoff)
	})
}

func oldest(stamps []time.Time) time.Time {
	return lo.MinBy(stamps, func(a, b time.Time) bool {
		return a.Before(b)
	})
}
