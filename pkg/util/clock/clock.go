package clock

import (
	"sync"
	"time"
)

// PassiveClock allows for injecting fake or real clocks into code
// that needs to read the current time.
type PassiveClock interface {
	Now() time.Time
	Since(time.Time) time.Duration
}

// Clock allows for injecting fake or real clocks into code that
// needs to do arbitrary things based on time.
type Clock interface {
	PassiveClock
	Sleep(d time.Duration)
	NewTimer(d time.Duration) Timer
}

// Timer allows for injecting fake or real timers into code that needs to do
// arbitrary things based on time.
type Timer interface {
	C() <-chan time.Time
	Stop() bool
	Reset(d time.Duration) bool
}

// RealClock really calls time.Now()
type RealClock struct{}

func (RealClock) Now() time.Time {
	return time.Now()
}

func (RealClock) Since(ts time.Time) time.Duration {
	return time.Since(ts)
}

func (RealClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (RealClock) NewTimer(d time.Duration) Timer {
	return &realTimer{timer: time.NewTimer(d)}
}

type realTimer struct {
	timer *time.Timer
}

func (r *realTimer) C() <-chan time.Time {
	return r.timer.C
}

func (r *realTimer) Stop() bool {
	return r.timer.Stop()
}

func (r *realTimer) Reset(d time.Duration) bool {
	return r.timer.Reset(d)
}

// FakeClock implements Clock, but returns an arbitrary time and advances
// only when told to. Sleepers are woken as the fake time passes them.
type FakeClock struct {
	lock sync.RWMutex
	time time.Time

	waiters []*fakeClockWaiter
}

type fakeClockWaiter struct {
	targetTime time.Time
	stopped    bool
	destChan   chan time.Time
}

var _ Clock = (*FakeClock)(nil)

func NewFakeClock(t time.Time) *FakeClock {
	return &FakeClock{time: t}
}

func (f *FakeClock) Now() time.Time {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.time
}

func (f *FakeClock) Since(ts time.Time) time.Duration {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return f.time.Sub(ts)
}

func (f *FakeClock) Sleep(d time.Duration) {
	<-f.NewTimer(d).C()
}

func (f *FakeClock) NewTimer(d time.Duration) Timer {
	f.lock.Lock()
	defer f.lock.Unlock()
	w := &fakeClockWaiter{
		targetTime: f.time.Add(d),
		destChan:   make(chan time.Time, 1),
	}
	if d <= 0 {
		w.destChan <- f.time
		w.stopped = true
	} else {
		f.waiters = append(f.waiters, w)
	}
	return &fakeTimer{clock: f, waiter: w}
}

// Step advances the fake time by d, waking any sleeper whose deadline passed.
func (f *FakeClock) Step(d time.Duration) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.setTimeLocked(f.time.Add(d))
}

// SetTime moves the fake time to t.
func (f *FakeClock) SetTime(t time.Time) {
	f.lock.Lock()
	defer f.lock.Unlock()
	f.setTimeLocked(t)
}

func (f *FakeClock) setTimeLocked(t time.Time) {
	f.time = t
	newWaiters := make([]*fakeClockWaiter, 0, len(f.waiters))
	for _, w := range f.waiters {
		if w.targetTime.After(t) {
			newWaiters = append(newWaiters, w)
			continue
		}
		if !w.stopped {
			w.destChan <- t
			w.stopped = true
		}
	}
	f.waiters = newWaiters
}

// HasWaiters returns true if any sleeper is blocked on this clock.
func (f *FakeClock) HasWaiters() bool {
	f.lock.RLock()
	defer f.lock.RUnlock()
	return len(f.waiters) > 0
}

type fakeTimer struct {
	clock  *FakeClock
	waiter *fakeClockWaiter
}

func (f *fakeTimer) C() <-chan time.Time {
	return f.waiter.destChan
}

func (f *fakeTimer) Stop() bool {
	f.clock.lock.Lock()
	defer f.clock.lock.Unlock()
	active := !f.waiter.stopped
	f.waiter.stopped = true
	newWaiters := f.clock.waiters[:0]
	for _, w := range f.clock.waiters {
		if w != f.waiter {
			newWaiters = append(newWaiters, w)
		}
	}
	f.clock.waiters = newWaiters
	return active
}

func (f *fakeTimer) Reset(d time.Duration) bool {
	f.clock.lock.Lock()
	defer f.clock.lock.Unlock()
	active := !f.waiter.stopped
	f.waiter.stopped = false
	f.waiter.targetTime = f.clock.time.Add(d)
	found := false
	for _, w := range f.clock.waiters {
		if w == f.waiter {
			found = true
		}
	}
	if !found {
		f.clock.waiters = append(f.clock.waiters, f.waiter)
	}
	return active
}
