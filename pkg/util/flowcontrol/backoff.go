package flowcontrol

import (
	"sync"
	"time"

	"github.com/nanokube/kubeclient/pkg/util/clock"
)

type backoffEntry struct {
	backoff    time.Duration
	lastUpdate time.Time
}

// Backoff tracks an exponentially growing delay per id, capped at maxDuration.
// An entry that has been idle for 2*maxDuration restarts from the initial
// delay on its next update.
type Backoff struct {
	sync.RWMutex
	Clock           clock.Clock
	defaultDuration time.Duration
	maxDuration     time.Duration
	perItemBackoff  map[string]*backoffEntry
}

func NewBackOff(initial, max time.Duration) *Backoff {
	return newBackoff(clock.RealClock{}, initial, max)
}

func newBackoff(c clock.Clock, initial, max time.Duration) *Backoff {
	return &Backoff{
		perItemBackoff:  map[string]*backoffEntry{},
		Clock:           c,
		defaultDuration: initial,
		maxDuration:     max,
	}
}

// Get returns the current delay for id, zero when id has no entry.
func (p *Backoff) Get(id string) time.Duration {
	p.RLock()
	defer p.RUnlock()
	var delay time.Duration
	if entry, ok := p.perItemBackoff[id]; ok {
		delay = entry.backoff
	}
	return delay
}

// Next doubles the delay for id, capping at maxDuration.
func (p *Backoff) Next(id string, eventTime time.Time) {
	p.Lock()
	defer p.Unlock()
	entry, ok := p.perItemBackoff[id]
	if !ok || hasExpired(eventTime, entry.lastUpdate, p.maxDuration) {
		entry = p.initEntryUnsafe(id)
	} else {
		entry.backoff = time.Duration(Int64Min(int64(entry.backoff*2), int64(p.maxDuration)))
	}
	entry.lastUpdate = p.Clock.Now()
}

// Reset clears all backoff state for id.
func (p *Backoff) Reset(id string) {
	p.Lock()
	defer p.Unlock()
	delete(p.perItemBackoff, id)
}

// initEntryUnsafe requires the caller to hold the write lock.
func (p *Backoff) initEntryUnsafe(id string) *backoffEntry {
	entry := &backoffEntry{backoff: p.defaultDuration}
	p.perItemBackoff[id] = entry
	return entry
}

func hasExpired(eventTime time.Time, lastUpdate time.Time, maxDuration time.Duration) bool {
	return eventTime.Sub(lastUpdate) > maxDuration*2
}
