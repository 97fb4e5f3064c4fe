package wait

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	apierrors "github.com/nanokube/kubeclient/pkg/api/errors"
	"github.com/nanokube/kubeclient/pkg/util/clock"
)

// stepClock advances fc whenever a poll loop is parked on a timer, until stop
// is closed.
func stepClock(fc *clock.FakeClock, stop chan struct{}) {
	for {
		select {
		case <-stop:
			return
		default:
		}
		if fc.HasWaiters() {
			fc.Step(time.Second)
		}
		time.Sleep(time.Millisecond)
	}
}

func TestPollUntilTimeoutNeverBefore(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	start := fc.Now()

	var reads int32
	done := make(chan error, 1)
	go func() {
		done <- PollUntilWithClock(context.Background(), fc, time.Second, 3*time.Second, func(context.Context) (bool, error) {
			atomic.AddInt32(&reads, 1)
			return false, nil
		})
	}()

	stop := make(chan struct{})
	go stepClock(fc, stop)
	err := <-done
	close(stop)

	var timeoutErr *apierrors.TimeoutError
	require.True(t, errors.As(err, &timeoutErr), "expected TimeoutError, got %v", err)
	assert.Equal(t, 3*time.Second, timeoutErr.After)
	// the deadline is computed once; the loop may observe it only after a
	// final sleep, but never before the full timeout has elapsed.
	assert.GreaterOrEqual(t, fc.Since(start), 3*time.Second)
	assert.GreaterOrEqual(t, atomic.LoadInt32(&reads), int32(3))
}

func TestPollUntilStopsAtFirstSuccess(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())

	var reads int32
	done := make(chan error, 1)
	go func() {
		done <- PollUntilWithClock(context.Background(), fc, time.Second, time.Minute, func(context.Context) (bool, error) {
			return atomic.AddInt32(&reads, 1) >= 3, nil
		})
	}()

	stop := make(chan struct{})
	go stepClock(fc, stop)
	err := <-done
	close(stop)

	require.NoError(t, err)
	assert.Equal(t, int32(3), atomic.LoadInt32(&reads))
}

func TestPollUntilConditionError(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	boom := xerrors.New("read failed")

	err := PollUntilWithClock(context.Background(), fc, time.Second, time.Minute, func(context.Context) (bool, error) {
		return false, boom
	})
	assert.Equal(t, boom, err)
}

func TestPollUntilContextCanceled(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() {
		done <- PollUntilWithClock(ctx, fc, time.Second, time.Minute, func(context.Context) (bool, error) {
			return false, nil
		})
	}()
	cancel()
	assert.Equal(t, context.Canceled, <-done)
}

func TestForReturnsMatchingObject(t *testing.T) {
	fc := clock.NewFakeClock(time.Now())

	var reads int32
	done := make(chan struct{})
	var got string
	var err error
	go func() {
		defer close(done)
		got, err = For(context.Background(), fc, time.Second, time.Minute,
			func(context.Context) (string, error) {
				n := atomic.AddInt32(&reads, 1)
				if n >= 3 {
					return "ready", nil
				}
				return "pending", nil
			},
			func(s string) bool { return s == "ready" })
	}()

	stop := make(chan struct{})
	go stepClock(fc, stop)
	<-done
	close(stop)

	require.NoError(t, err)
	assert.Equal(t, "ready", got)
	assert.Equal(t, int32(3), atomic.LoadInt32(&reads))
}
