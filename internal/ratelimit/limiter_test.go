package ratelimit

import (
	"context"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeClock is a mutable time source for driving refill deterministically.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)}
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

func newTestLimiter(capacity int, window time.Duration) (*Limiter, *fakeClock) {
	clk := newFakeClock()
	return NewLimiter(capacity, window, clk, slog.Default()), clk
}

func TestLimiter_BurstThenReject(t *testing.T) {
	limiter, _ := newTestLimiter(5, 30*time.Second)

	// First 5 attempts succeed with strictly decreasing remaining
	for i, expectedRemaining := range []int{4, 3, 2, 1, 0} {
		decision := limiter.Allow("client-1")
		require.True(t, decision.Allowed, "attempt %d should be admitted", i+1)
		assert.Equal(t, expectedRemaining, decision.Remaining)
		assert.Zero(t, decision.RetryAfter)
	}

	// 6th immediate attempt is rejected with positive retry-after
	decision := limiter.Allow("client-1")
	require.False(t, decision.Allowed)
	assert.Greater(t, decision.RetryAfter, time.Duration(0))

	// One token accrues every window/capacity = 6 seconds
	assert.InDelta(t, 6.0, decision.RetryAfter.Seconds(), 0.001)
}

func TestLimiter_RefillAfterFullWindow(t *testing.T) {
	limiter, clk := newTestLimiter(5, 30*time.Second)

	// Drain the bucket
	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("client-1").Allowed)
	}
	require.False(t, limiter.Allow("client-1").Allowed)

	// After the full refill window the bucket is back at capacity
	clk.Advance(30 * time.Second)

	decision := limiter.Allow("client-1")
	require.True(t, decision.Allowed)
	assert.Equal(t, 4, decision.Remaining)
}

func TestLimiter_ContinuousRefill(t *testing.T) {
	limiter, clk := newTestLimiter(5, 30*time.Second)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("client-1").Allowed)
	}

	// A single refill interval accrues exactly one token
	clk.Advance(6 * time.Second)

	decision := limiter.Allow("client-1")
	require.True(t, decision.Allowed)
	assert.Equal(t, 0, decision.Remaining)

	// And only one
	require.False(t, limiter.Allow("client-1").Allowed)
}

func TestLimiter_RejectionDoesNotConsume(t *testing.T) {
	limiter, clk := newTestLimiter(5, 30*time.Second)

	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("client-1").Allowed)
	}

	// Repeated rejected attempts must not slow down refill
	for i := 0; i < 10; i++ {
		require.False(t, limiter.Allow("client-1").Allowed)
	}

	clk.Advance(6 * time.Second)

	require.True(t, limiter.Allow("client-1").Allowed)
	require.False(t, limiter.Allow("client-1").Allowed)
}

func TestLimiter_IsolationBetweenIdentities(t *testing.T) {
	limiter, _ := newTestLimiter(5, 30*time.Second)

	// Drain client-1's bucket
	for i := 0; i < 5; i++ {
		require.True(t, limiter.Allow("client-1").Allowed)
	}
	require.False(t, limiter.Allow("client-1").Allowed)

	// client-2 is unaffected
	decision := limiter.Allow("client-2")
	require.True(t, decision.Allowed)
	assert.Equal(t, 4, decision.Remaining)
}

func TestLimiter_IdentitiesAreCaseSensitive(t *testing.T) {
	limiter, _ := newTestLimiter(5, 30*time.Second)

	first := limiter.Allow("Client")
	second := limiter.Allow("client")

	require.True(t, first.Allowed)
	require.True(t, second.Allowed)
	assert.Equal(t, 4, first.Remaining)
	assert.Equal(t, 4, second.Remaining)
}

func TestLimiter_EmptyIdentityIsValid(t *testing.T) {
	limiter, _ := newTestLimiter(5, 30*time.Second)

	decision := limiter.Allow("")
	require.True(t, decision.Allowed)
	assert.Equal(t, 4, decision.Remaining)
}

func TestLimiter_ConcurrentFirstRequests(t *testing.T) {
	limiter, _ := newTestLimiter(5, 30*time.Second)

	const requests = 50
	var wg sync.WaitGroup
	decisions := make([]Decision, requests)

	for i := 0; i < requests; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			decisions[i] = limiter.Allow("new-client")
		}(i)
	}
	wg.Wait()

	// Exactly capacity admissions, no double-spend, no negative remaining
	admitted := 0
	for _, decision := range decisions {
		if decision.Allowed {
			admitted++
			assert.GreaterOrEqual(t, decision.Remaining, 0)
		}
	}
	assert.Equal(t, 5, admitted)

	// Exactly one bucket exists despite the first-request race
	buckets := 0
	limiter.buckets.Range(func(key, value any) bool {
		buckets++
		return true
	})
	assert.Equal(t, 1, buckets)
}

func TestLimiter_SweepEvictsOnlyStaleBuckets(t *testing.T) {
	limiter, clk := newTestLimiter(5, 30*time.Second)

	require.True(t, limiter.Allow("idle-client").Allowed)
	clk.Advance(2 * time.Hour)
	require.True(t, limiter.Allow("active-client").Allowed)

	limiter.sweep(clk.Now().Add(-time.Hour))

	_, ok := limiter.buckets.Load("idle-client")
	assert.False(t, ok)
	_, ok = limiter.buckets.Load("active-client")
	assert.True(t, ok)
}

func TestLimiter_EvictedBucketIsNeverConsumedFrom(t *testing.T) {
	limiter, clk := newTestLimiter(5, 30*time.Second)

	require.True(t, limiter.Allow("client-1").Allowed)

	val, ok := limiter.buckets.Load("client-1")
	require.True(t, ok)
	old := val.(*bucket)

	clk.Advance(2 * time.Hour)
	limiter.sweep(clk.Now().Add(-time.Hour))

	// The old bucket is flagged and gone from the registry
	assert.True(t, old.evicted)
	_, ok = limiter.buckets.Load("client-1")
	assert.False(t, ok)

	// The next request lands on a fresh bucket, not the dangling pointer,
	// so the identity never draws from two buckets at once
	decision := limiter.Allow("client-1")
	require.True(t, decision.Allowed)
	assert.Equal(t, 4, decision.Remaining)

	val, ok = limiter.buckets.Load("client-1")
	require.True(t, ok)
	assert.NotSame(t, old, val.(*bucket))
}

func TestLimiter_CleanupStale(t *testing.T) {
	limiter, clk := newTestLimiter(5, 30*time.Second)

	require.True(t, limiter.Allow("idle-client").Allowed)
	clk.Advance(2 * time.Hour)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan struct{})
	go func() {
		limiter.CleanupStale(ctx, 10*time.Millisecond, time.Hour)
		close(done)
	}()

	// Wait for at least one sweep
	assert.Eventually(t, func() bool {
		_, ok := limiter.buckets.Load("idle-client")
		return !ok
	}, time.Second, 10*time.Millisecond)

	cancel()
	<-done

	// A returning identity gets a fresh full bucket
	decision := limiter.Allow("idle-client")
	require.True(t, decision.Allowed)
	assert.Equal(t, 4, decision.Remaining)
}
