// Package wait provides deadline-bounded polling. The poll loop re-runs a
// condition at a fixed interval until it holds or the deadline passes; the
// deadline is computed once at entry and never reset.
package wait

import (
	"context"
	"time"

	apierrors "github.com/nanokube/kubeclient/pkg/api/errors"
	"github.com/nanokube/kubeclient/pkg/util/clock"
)

// DefaultPollInterval is the interval between condition checks when the
// caller does not choose one.
const DefaultPollInterval = time.Second

// ConditionFunc returns true if the condition is satisfied, or an error
// if the loop should be aborted.
type ConditionFunc func(ctx context.Context) (done bool, err error)

// PollUntil checks condition at the given interval until it returns true, an
// error occurs, or the timeout is reached. The condition is always checked at
// least once, before any sleep. The deadline check happens strictly after the
// condition check, so a slow condition may push total wall time slightly past
// the timeout.
func PollUntil(ctx context.Context, interval, timeout time.Duration, condition ConditionFunc) error {
	return PollUntilWithClock(ctx, clock.RealClock{}, interval, timeout, condition)
}

// PollUntilWithClock is PollUntil with an injectable clock for tests.
func PollUntilWithClock(ctx context.Context, c clock.Clock, interval, timeout time.Duration, condition ConditionFunc) error {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	deadline := c.Now().Add(timeout)
	for {
		done, err := condition(ctx)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
		if c.Now().After(deadline) {
			return apierrors.NewClientTimeout("timed out waiting for the condition", timeout)
		}

		t := c.NewTimer(interval)
		select {
		case <-ctx.Done():
			t.Stop()
			return ctx.Err()
		case <-t.C():
		}
	}
}

// For re-reads an object until predicate holds, returning the object from the
// first read that satisfied it. No read happens after the predicate holds. A
// read error aborts the loop immediately; there are no retries.
func For[T any](ctx context.Context, c clock.Clock, interval, timeout time.Duration, read func(ctx context.Context) (T, error), predicate func(T) bool) (T, error) {
	var last T
	err := PollUntilWithClock(ctx, c, interval, timeout, func(ctx context.Context) (bool, error) {
		obj, err := read(ctx)
		if err != nil {
			return false, err
		}
		last = obj
		return predicate(obj), nil
	})
	return last, err
}
