package inmem

import (
	"context"
	"math"
	"sync"
	"time"

	"employeeapi/internal/api"
)

// DefaultStaleAfter is how long a client's bucket may sit idle before Sweep drops it.
const DefaultStaleAfter = 10 * time.Minute

// RateLimiter is a per-key token bucket. Keys are client IPs; the limiter runs
// before authentication so that password guessing is throttled too.
type RateLimiter struct {
	rate       float64 // tokens per second
	burst      int     // bucket capacity
	staleAfter time.Duration
	now        func() time.Time

	mu      sync.Mutex
	buckets map[string]*bucket
}

type bucket struct {
	tokens   float64
	lastSeen time.Time
}

// NewRateLimiter creates a rate limiter refilling rate tokens per second up to burst.
// clock is injectable for deterministic testing.
func NewRateLimiter(rate float64, burst int, clock func() time.Time) *RateLimiter {
	return &RateLimiter{
		rate:       rate,
		burst:      burst,
		staleAfter: DefaultStaleAfter,
		now:        clock,
		buckets:    make(map[string]*bucket),
	}
}

// Allow takes one token from key's bucket if one is available.
func (rl *RateLimiter) Allow(key string) api.RateLimitResult {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	b, ok := rl.buckets[key]
	if !ok {
		b = &bucket{tokens: float64(rl.burst), lastSeen: now}
		rl.buckets[key] = b
	}

	b.tokens = math.Min(float64(rl.burst), b.tokens+now.Sub(b.lastSeen).Seconds()*rl.rate)
	b.lastSeen = now

	if b.tokens >= 1 {
		b.tokens--
		return api.RateLimitResult{Allowed: true}
	}

	wait := max(int(math.Ceil((1.0-b.tokens)/rl.rate)), 1)
	return api.RateLimitResult{RetryAfter: wait}
}

// Sweep drops buckets idle for longer than the stale threshold and returns how many were removed.
func (rl *RateLimiter) Sweep() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	now := rl.now()
	removed := 0
	for key, b := range rl.buckets {
		if now.Sub(b.lastSeen) > rl.staleAfter {
			delete(rl.buckets, key)
			removed++
		}
	}
	return removed
}

// RunSweeper calls Sweep every interval until ctx is done.
func (rl *RateLimiter) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			rl.Sweep()
		}
	}
}

// BucketCount returns the number of tracked clients.
func (rl *RateLimiter) BucketCount() int {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	return len(rl.buckets)
}
