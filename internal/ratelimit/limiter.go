// Package ratelimit provides a concurrency-safe, per-identity token bucket
// rate limiter. Each caller identity (verified token subject or client
// address) gets an independent bucket; buckets refill continuously at
// capacity per window.
package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/time/rate"

	"github.com/allisson/books/internal/clock"
)

// Decision is the outcome of an admission attempt.
type Decision struct {
	// Allowed reports whether the request may proceed.
	Allowed bool
	// Remaining is the whole number of tokens left in the bucket after a
	// successful admission. Zero when the request is rejected.
	Remaining int
	// RetryAfter is the time until one full token accrues at the current
	// refill rate. Zero when the request is admitted.
	RetryAfter time.Duration
}

// bucket pairs a token bucket with last-access bookkeeping for cleanup.
// All reads and writes go through mu so that refill and consumption are
// serialized per bucket without contending with other buckets. Once evicted
// is set the bucket is gone from the registry and must not be consumed from.
type bucket struct {
	mu         sync.Mutex
	limiter    *rate.Limiter
	lastAccess time.Time
	evicted    bool
}

// Limiter maintains one token bucket per caller identity.
//
// Identity strings are case-sensitive and opaque; an empty identity is a
// valid (if degenerate) bucket key. Buckets are created lazily on first use
// and live until swept by CleanupStale.
type Limiter struct {
	buckets  sync.Map // map[string]*bucket
	capacity int
	window   time.Duration
	clock    clock.Clock
	logger   *slog.Logger
}

// NewLimiter creates a Limiter where each identity may burst up to capacity
// requests and regains full capacity over the given window.
func NewLimiter(capacity int, window time.Duration, clk clock.Clock, logger *slog.Logger) *Limiter {
	return &Limiter{
		capacity: capacity,
		window:   window,
		clock:    clk,
		logger:   logger,
	}
}

// Allow attempts to consume one token from the identity's bucket.
//
// The check-and-decrement is atomic per bucket: concurrent requests for the
// same identity never double-spend a token, and requests for different
// identities never block each other. Rejection applies refill bookkeeping
// but does not consume.
func (l *Limiter) Allow(identity string) Decision {
	now := l.clock.Now()

	for {
		b := l.bucket(identity)
		b.mu.Lock()

		// The cleanup sweep may have evicted this bucket between the map
		// lookup and the lock. Retry so the consume lands on the live
		// bucket instead of a dangling one.
		if b.evicted {
			b.mu.Unlock()
			continue
		}

		b.lastAccess = now

		if b.limiter.AllowN(now, 1) {
			decision := Decision{
				Allowed:   true,
				Remaining: int(b.limiter.TokensAt(now)),
			}
			b.mu.Unlock()
			return decision
		}

		// Compute how long until one full token accrues, then cancel the
		// reservation so the rejected request leaves the bucket untouched.
		reservation := b.limiter.ReserveN(now, 1)
		retryAfter := reservation.DelayFrom(now)
		reservation.CancelAt(now)
		b.mu.Unlock()

		return Decision{
			Allowed:    false,
			RetryAfter: retryAfter,
		}
	}
}

// bucket returns the bucket for the identity, creating it on first use.
// LoadOrStore guarantees at most one bucket per identity even when many
// first-time requests race.
func (l *Limiter) bucket(identity string) *bucket {
	if val, ok := l.buckets.Load(identity); ok {
		return val.(*bucket)
	}

	created := &bucket{
		limiter: rate.NewLimiter(rate.Limit(float64(l.capacity)/l.window.Seconds()), l.capacity),
	}

	actual, loaded := l.buckets.LoadOrStore(identity, created)
	if !loaded {
		l.logger.Debug("created rate limit bucket",
			slog.String("identity", identity))
	}
	return actual.(*bucket)
}

// CleanupStale periodically removes buckets that haven't been accessed for
// maxIdle. Runs until the context is cancelled. A swept identity simply gets
// a fresh full bucket on its next request, which is indistinguishable from a
// bucket that refilled to capacity while idle.
func (l *Limiter) CleanupStale(ctx context.Context, interval, maxIdle time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			l.sweep(l.clock.Now().Add(-maxIdle))
		}
	}
}

// sweep evicts every bucket whose last access predates threshold. Staleness
// is re-checked and the evicted flag set under the bucket lock, so a
// concurrent Allow either refreshes lastAccess first (and the bucket stays)
// or observes the flag and retries against a fresh bucket. Eviction therefore
// never lets one identity consume from two buckets at once.
func (l *Limiter) sweep(threshold time.Time) {
	l.buckets.Range(func(key, value any) bool {
		b := value.(*bucket)
		b.mu.Lock()
		if b.lastAccess.Before(threshold) {
			b.evicted = true
			l.buckets.CompareAndDelete(key, value)
		}
		b.mu.Unlock()
		return true
	})
}
