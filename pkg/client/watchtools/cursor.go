// Package watchtools drives a watch.Interface and maintains the resource
// version cursor a caller needs to resume a watch where the previous one
// left off. It never reconnects on its own; when the stream ends, control
// returns to the caller together with the cursor position.
package watchtools

import (
	"context"

	apierrors "github.com/nanokube/kubeclient/pkg/api/errors"
	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/watch"
	"golang.org/x/xerrors"
)

// EventHandler processes a single watch event. Returning false stops the
// watch cleanly; returning an error aborts it with that error. The next
// event is not read until the handler returns.
type EventHandler func(event watch.Event) (cont bool, err error)

// Cursor tracks the resource version of the most recently handled event of a
// watch session. It is owned by a single call stack and is not safe for
// concurrent use.
type Cursor struct {
	resourceVersion string
}

// NewCursor returns a cursor starting at the given resource version. An empty
// version means "start from the server's current state".
func NewCursor(resourceVersion string) *Cursor {
	return &Cursor{resourceVersion: resourceVersion}
}

// ResourceVersion returns the version of the most recently handled event, or
// the initial version if none has been handled yet. Passing it as
// ListOptions.ResourceVersion on a new watch resumes without redelivery.
func (c *Cursor) ResourceVersion() string {
	return c.resourceVersion
}

// observe advances the cursor past a handled event. Bookmark objects carry
// only a fresh resource version, so the accessor path covers them too.
func (c *Cursor) observe(event watch.Event) {
	if event.Object == nil {
		return
	}
	accessor, err := meta.Accessor(event.Object)
	if err != nil {
		return
	}
	if rv := accessor.GetResourceVersion(); len(rv) > 0 {
		c.resourceVersion = rv
	}
}

// Run dispatches events from w to handler in arrival order until the stream
// ends, the handler stops it, or ctx is canceled. The watcher is always
// stopped before returning.
//
// An ERROR event produced by a frame that could not be decoded aborts the
// stream with a DecodeError without invoking the handler. A server-emitted
// ERROR event is delivered to the handler first and then aborts the stream
// with a StreamClosedError, since the server considers the session invalid
// past that point. A stream that ends without an ERROR event returns nil.
func (c *Cursor) Run(ctx context.Context, w watch.Interface, handler EventHandler) error {
	defer w.Stop()
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case event, ok := <-w.ResultChan():
			if !ok {
				return nil
			}
			if event.Type == watch.Error {
				status, _ := event.Object.(*meta.Status)
				if status != nil && status.Reason == meta.StatusReasonClientWatchDecoding {
					return apierrors.NewDecodeError(xerrors.New(status.Message))
				}
				if _, err := handler(event); err != nil {
					return err
				}
				return apierrors.NewStreamClosed(status, "watch stream ended with an error event")
			}

			cont, err := handler(event)
			if err != nil {
				return err
			}
			c.observe(event)
			if !cont {
				return nil
			}
		}
	}
}
