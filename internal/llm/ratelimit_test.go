package llm

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type countingClient struct {
	calls  int
	closed bool
}

func (c *countingClient) GenerateJSON(context.Context, string, ModelTier) (string, error) {
	c.calls++
	return "[]", nil
}

func (c *countingClient) Close() error {
	c.closed = true
	return nil
}

func TestTokenBucket_Reserve(t *testing.T) {
	bucket := newTokenBucket(3, 1.0)

	// Burst is served immediately
	for i := 0; i < 3; i++ {
		assert.Zero(t, bucket.reserve(), "request %d", i+1)
	}

	// The next token is about a second away, the one after about two
	wait := bucket.reserve()
	assert.InDelta(t, time.Second.Seconds(), wait.Seconds(), 0.1)
	wait = bucket.reserve()
	assert.InDelta(t, (2 * time.Second).Seconds(), wait.Seconds(), 0.1)
}

func TestNewRateLimitedClient_Disabled(t *testing.T) {
	next := &countingClient{}
	assert.Same(t, next, NewRateLimitedClient(next, 0, 1))
}

func TestRateLimitedClient_DelegatesWithinBurst(t *testing.T) {
	next := &countingClient{}
	client := NewRateLimitedClient(next, 60, 2)

	for i := 0; i < 2; i++ {
		out, err := client.GenerateJSON(context.Background(), "p", TierStandard)
		require.NoError(t, err)
		assert.Equal(t, "[]", out)
	}
	assert.Equal(t, 2, next.calls)

	require.NoError(t, client.Close())
	assert.True(t, next.closed)
}

func TestRateLimitedClient_CancelledWhileWaiting(t *testing.T) {
	next := &countingClient{}
	client := NewRateLimitedClient(next, 1, 1) // one call per minute

	_, err := client.GenerateJSON(context.Background(), "p", TierStandard)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	_, err = client.GenerateJSON(ctx, "p", TierStandard)
	require.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, 1, next.calls)
}
