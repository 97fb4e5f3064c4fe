package errors

import (
	"errors"
	"fmt"
	"time"

	"github.com/nanokube/kubeclient/pkg/api/meta"
)

// DecodeError indicates the response body could not be turned into the
// expected envelope: malformed JSON, or a present field whose type does not
// match the destination. It wraps the underlying serializer failure.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("unable to decode server response: %v", e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// NewDecodeError wraps err as a DecodeError.
func NewDecodeError(err error) *DecodeError {
	return &DecodeError{Err: err}
}

// IsDecodeError returns true when err is, or wraps, a DecodeError.
func IsDecodeError(err error) bool {
	return errors.As(err, new(*DecodeError))
}

// TimeoutError indicates a client-side deadline elapsed: a poll loop ran out
// of time, or a watch was torn down by its overall timeout.
type TimeoutError struct {
	Message string
	After   time.Duration
}

func (e *TimeoutError) Error() string {
	if e.After > 0 {
		return fmt.Sprintf("%s (after %s)", e.Message, e.After)
	}
	return e.Message
}

// NewClientTimeout builds a TimeoutError for the given wait.
func NewClientTimeout(message string, after time.Duration) *TimeoutError {
	return &TimeoutError{Message: message, After: after}
}

// TransportError wraps an opaque network or HTTP-layer failure. The underlying
// error is preserved unchanged for callers that need to inspect it.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("transport failure: %v", e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }

// NewTransportError wraps err as a TransportError.
func NewTransportError(err error) *TransportError {
	return &TransportError{Err: err}
}

// IsTransportError returns true when err is, or wraps, a TransportError.
func IsTransportError(err error) bool {
	return errors.As(err, new(*TransportError))
}

// StreamClosedError indicates a watch session is no longer usable: the server
// emitted an ERROR event (for example a compacted resourceVersion), or the
// stream closed in a way the client did not ask for.
type StreamClosedError struct {
	// Status carries the server's explanation when the stream ended with an
	// ERROR event; nil for bare connection drops.
	Status *meta.Status
	Reason string
}

// NewStreamClosed builds a StreamClosedError, optionally carrying the server's
// terminal Status.
func NewStreamClosed(status *meta.Status, reason string) *StreamClosedError {
	if status != nil && reason == "" {
		reason = status.Message
	}
	return &StreamClosedError{Status: status, Reason: reason}
}

func (e *StreamClosedError) Error() string {
	msg := "watch stream closed"
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Status != nil && e.Status.Message != "" && e.Status.Message != e.Reason {
		msg += ": " + e.Status.Message
	}
	return msg
}

// IsStreamClosed returns true when err is, or wraps, a StreamClosedError.
func IsStreamClosed(err error) bool {
	return errors.As(err, new(*StreamClosedError))
}
