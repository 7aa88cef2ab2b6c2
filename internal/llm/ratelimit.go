package llm

import (
	"context"
	"sync"
	"time"
)

// tokenBucket holds up to capacity tokens refilled at a steady rate.
type tokenBucket struct {
	capacity   int
	refillRate float64 // tokens per second
	tokens     float64
	lastRefill time.Time
	mu         sync.Mutex
}

func newTokenBucket(capacity int, refillRate float64) *tokenBucket {
	return &tokenBucket{
		capacity:   capacity,
		refillRate: refillRate,
		tokens:     float64(capacity), // Start with full bucket
		lastRefill: time.Now(),
	}
}

// reserve takes one token and returns how long the caller must wait before
// using it. A zero duration means a token was available.
func (tb *tokenBucket) reserve() time.Duration {
	tb.mu.Lock()
	defer tb.mu.Unlock()

	now := time.Now()
	elapsed := now.Sub(tb.lastRefill)
	tb.tokens = min(float64(tb.capacity), tb.tokens+elapsed.Seconds()*tb.refillRate)
	tb.lastRefill = now

	// Tokens may go negative; the debt is paid back by waiting.
	tb.tokens--
	if tb.tokens >= 0 {
		return 0
	}
	return time.Duration(-tb.tokens / tb.refillRate * float64(time.Second))
}

// RateLimitedClient spaces calls to the wrapped client so that no more than
// perMinute requests start in any minute after the initial burst.
type RateLimitedClient struct {
	next   Client
	bucket *tokenBucket
}

// NewRateLimitedClient wraps next. perMinute <= 0 disables limiting and
// returns next unchanged.
func NewRateLimitedClient(next Client, perMinute, burst int) Client {
	if perMinute <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &RateLimitedClient{
		next:   next,
		bucket: newTokenBucket(burst, float64(perMinute)/60),
	}
}

// GenerateJSON waits for a token, then delegates.
func (c *RateLimitedClient) GenerateJSON(ctx context.Context, prompt string, tier ModelTier) (string, error) {
	if wait := c.bucket.reserve(); wait > 0 {
		timer := time.NewTimer(wait)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return "", ctx.Err()
		case <-timer.C:
		}
	}
	return c.next.GenerateJSON(ctx, prompt, tier)
}

// Close closes the wrapped client.
func (c *RateLimitedClient) Close() error {
	return c.next.Close()
}
