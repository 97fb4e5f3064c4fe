package watch

import (
	"io"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime"
)

type fakeDecoderItem struct {
	action EventType
	obj    runtime.Object
	err    error
}

// fakeDecoder replays a fixed script; after the script it blocks until Close.
type fakeDecoder struct {
	items  []fakeDecoderItem
	closed chan struct{}
}

func newFakeDecoder(items ...fakeDecoderItem) *fakeDecoder {
	return &fakeDecoder{items: items, closed: make(chan struct{})}
}

func (d *fakeDecoder) Decode() (EventType, runtime.Object, error) {
	if len(d.items) == 0 {
		<-d.closed
		return "", nil, io.EOF
	}
	item := d.items[0]
	d.items = d.items[1:]
	return item.action, item.obj, item.err
}

func (d *fakeDecoder) Close() {
	select {
	case <-d.closed:
	default:
		close(d.closed)
	}
}

type statusReporter struct{}

func (statusReporter) AsObject(err error) runtime.Object {
	return &meta.Status{Status: meta.StatusFailure, Message: err.Error()}
}

func pod(name string) *meta.Pod {
	p := &meta.Pod{}
	p.Name = name
	return p
}

func recv(t *testing.T, w Interface) (Event, bool) {
	t.Helper()
	select {
	case event, open := <-w.ResultChan():
		return event, open
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for event")
		return Event{}, false
	}
}

func TestStreamWatcherDeliversEventsThenCloses(t *testing.T) {
	sw := NewStreamWatcher(newFakeDecoder(
		fakeDecoderItem{action: Added, obj: pod("a")},
		fakeDecoderItem{action: Modified, obj: pod("a")},
		fakeDecoderItem{err: io.EOF},
	), statusReporter{})

	event, open := recv(t, sw)
	require.True(t, open)
	assert.Equal(t, Added, event.Type)

	event, open = recv(t, sw)
	require.True(t, open)
	assert.Equal(t, Modified, event.Type)

	_, open = recv(t, sw)
	assert.False(t, open, "channel should close on EOF")
}

func TestStreamWatcherReportsDecodeFailure(t *testing.T) {
	sw := NewStreamWatcher(newFakeDecoder(
		fakeDecoderItem{err: xerrors.New("short buffer")},
	), statusReporter{})

	event, open := recv(t, sw)
	require.True(t, open)
	require.Equal(t, Error, event.Type)
	status, ok := event.Object.(*meta.Status)
	require.True(t, ok, "expected *meta.Status, got %T", event.Object)
	assert.Contains(t, status.Message, "short buffer")

	_, open = recv(t, sw)
	assert.False(t, open, "channel should close after the error event")
}

func TestStreamWatcherStopClosesDecoder(t *testing.T) {
	decoder := newFakeDecoder()
	sw := NewStreamWatcher(decoder, statusReporter{})

	sw.Stop()
	select {
	case <-decoder.closed:
	case <-time.After(5 * time.Second):
		t.Fatal("Stop did not close the decoder")
	}

	_, open := recv(t, sw)
	assert.False(t, open)
}

func TestStreamWatcherStopIsIdempotent(t *testing.T) {
	sw := NewStreamWatcher(newFakeDecoder(), statusReporter{})
	sw.Stop()
	sw.Stop()
}
