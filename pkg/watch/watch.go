// Package watch exposes a long-lived stream of changes to a set of resources
// as a channel of typed events.
package watch

import (
	"sync"

	"github.com/nanokube/kubeclient/pkg/runtime"
)

// Interface is implemented by anything that can deliver a stream of change
// notifications for watched resources.
type Interface interface {
	// Stop tears the watch down and closes the channel returned by
	// ResultChan. Safe to call more than once.
	Stop()

	// ResultChan returns the channel events arrive on. The channel is closed
	// when the stream ends, whether by Stop or by the source going away.
	ResultChan() <-chan Event
}

// EventType names the kind of change an event describes.
type EventType string

const (
	Added    EventType = "ADDED"
	Modified EventType = "MODIFIED"
	Deleted  EventType = "DELETED"
	Bookmark EventType = "BOOKMARK"
	Error    EventType = "ERROR"
)

// Event pairs a change type with the object it applies to.
type Event struct {
	Type EventType

	// Object holds the new state for Added and Modified, the final state for
	// Deleted, and an otherwise-empty object carrying only a resourceVersion
	// for Bookmark. For Error events it is the server's *meta.Status when one
	// was sent.
	Object runtime.Object
}

type emptyWatch chan Event

// NewEmptyWatch returns a watch whose result channel is already closed. Useful
// when a caller needs an Interface but there is nothing to deliver.
func NewEmptyWatch() Interface {
	ch := make(chan Event)
	close(ch)
	return emptyWatch(ch)
}

func (w emptyWatch) Stop() {}

func (w emptyWatch) ResultChan() <-chan Event {
	return chan Event(w)
}

// ProxyWatcher adapts a plain event channel into an Interface. All methods are
// safe for concurrent use.
type ProxyWatcher struct {
	result chan Event
	stopCh chan struct{}

	mutex   sync.Mutex
	stopped bool
}

var _ Interface = &ProxyWatcher{}

// NewProxyWatcher wraps ch. The caller keeps ownership of the channel and is
// responsible for closing it when the stream ends.
func NewProxyWatcher(ch chan Event) *ProxyWatcher {
	return &ProxyWatcher{
		result: ch,
		stopCh: make(chan struct{}),
	}
}

// Stop implements Interface.
func (pw *ProxyWatcher) Stop() {
	pw.mutex.Lock()
	defer pw.mutex.Unlock()
	if !pw.stopped {
		pw.stopped = true
		close(pw.stopCh)
	}
}

// Stopping reports whether Stop has been called.
func (pw *ProxyWatcher) Stopping() bool {
	pw.mutex.Lock()
	defer pw.mutex.Unlock()
	return pw.stopped
}

// ResultChan implements Interface.
func (pw *ProxyWatcher) ResultChan() <-chan Event {
	return pw.result
}

// StopChan lets producers select on watcher shutdown.
func (pw *ProxyWatcher) StopChan() <-chan struct{} {
	return pw.stopCh
}
