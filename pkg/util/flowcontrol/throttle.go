package flowcontrol

import (
	"context"

	"github.com/nanokube/kubeclient/pkg/util/clock"
	"golang.org/x/time/rate"
)

// RateLimiter paces outbound requests to the API server.
type RateLimiter interface {
	// TryAccept returns true if a token is taken immediately. Otherwise,
	// it returns false.
	TryAccept() bool
	// Accept returns once a token becomes available.
	Accept()
	// Wait returns nil if a token is taken before the Context is done.
	Wait(ctx context.Context) error
	// Stop stops the rate limiter; subsequent calls to TryAccept will return false.
	Stop()
	// QPS returns the steady-state rate of this limiter.
	QPS() float32
}

type tokenBucketRateLimiter struct {
	limiter *rate.Limiter
	qps     float32
	clock   clock.Clock
}

// NewTokenBucketRateLimiter creates a rate limiter which implements a token bucket
// approach. The rate limiter allows bursts of up to 'burst' to exceed the QPS, while
// still maintaining a smoothed qps rate of 'qps'. The bucket is initially filled with
// 'burst' tokens, and refills at a rate of 'qps'.
func NewTokenBucketRateLimiter(qps float32, burst int) RateLimiter {
	return NewTokenBucketRateLimiterWithClock(qps, burst, clock.RealClock{})
}

// NewTokenBucketRateLimiterWithClock is identical to NewTokenBucketRateLimiter
// but allows an injectable clock, for testing.
func NewTokenBucketRateLimiterWithClock(qps float32, burst int, c clock.Clock) RateLimiter {
	return &tokenBucketRateLimiter{
		limiter: rate.NewLimiter(rate.Limit(qps), burst),
		qps:     qps,
		clock:   c,
	}
}

func (tbrl *tokenBucketRateLimiter) TryAccept() bool {
	return tbrl.limiter.AllowN(tbrl.clock.Now(), 1)
}

// Accept will block until a token becomes available
func (tbrl *tokenBucketRateLimiter) Accept() {
	now := tbrl.clock.Now()
	tbrl.clock.Sleep(tbrl.limiter.ReserveN(now, 1).DelayFrom(now))
}

func (tbrl *tokenBucketRateLimiter) Wait(ctx context.Context) error {
	return tbrl.limiter.Wait(ctx)
}

func (tbrl *tokenBucketRateLimiter) Stop() {}

func (tbrl *tokenBucketRateLimiter) QPS() float32 {
	return tbrl.qps
}

type fakeAlwaysRateLimiter struct{}

// NewFakeAlwaysRateLimiter returns a limiter that never throttles.
func NewFakeAlwaysRateLimiter() RateLimiter {
	return &fakeAlwaysRateLimiter{}
}

func (t *fakeAlwaysRateLimiter) TryAccept() bool { return true }

func (t *fakeAlwaysRateLimiter) Stop() {}

func (t *fakeAlwaysRateLimiter) Accept() {}

func (t *fakeAlwaysRateLimiter) QPS() float32 { return 1 }

func (t *fakeAlwaysRateLimiter) Wait(_ context.Context) error { return nil }

var (
	_ RateLimiter = (*tokenBucketRateLimiter)(nil)
	_ RateLimiter = (*fakeAlwaysRateLimiter)(nil)
)

// Int64Min returns the minimum of the params
func Int64Min(a, b int64) int64 {
	if b < a {
		return b
	}
	return a
}
