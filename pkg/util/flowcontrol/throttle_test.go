package flowcontrol

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenBucketBurstThenThrottle(t *testing.T) {
	limiter := NewTokenBucketRateLimiter(1, 3)
	defer limiter.Stop()

	// the bucket starts full
	for i := 0; i < 3; i++ {
		assert.True(t, limiter.TryAccept(), "burst token %d", i)
	}
	assert.False(t, limiter.TryAccept(), "bucket should be drained")
	assert.Equal(t, float32(1), limiter.QPS())
}

func TestWaitHonorsContext(t *testing.T) {
	limiter := NewTokenBucketRateLimiter(0.001, 1)
	defer limiter.Stop()

	require.NoError(t, limiter.Wait(context.Background()), "first token is free")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	// throttled requests are delayed, not dropped: the only way out early
	// is the caller's context
	assert.Error(t, limiter.Wait(ctx))
}

func TestFakeAlwaysRateLimiter(t *testing.T) {
	limiter := NewFakeAlwaysRateLimiter()
	assert.True(t, limiter.TryAccept())
	require.NoError(t, limiter.Wait(context.Background()))
}
