package errors

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/xerrors"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

var podsResource = schema.GroupResource{Resource: "pods"}

func TestNewNotFound(t *testing.T) {
	err := NewNotFound(podsResource, "web-0")
	assert.True(t, IsNotFound(err))
	assert.False(t, IsConflict(err))
	assert.Equal(t, int32(http.StatusNotFound), err.ErrStatus.Code)
	assert.Equal(t, meta.StatusReasonNotFound, err.ErrStatus.Reason)
	assert.Contains(t, err.Error(), "web-0")
}

func TestNewConflict(t *testing.T) {
	err := NewConflict(podsResource, "web-0", xerrors.New("object was modified"))
	assert.True(t, IsConflict(err))
	assert.Equal(t, int32(http.StatusConflict), err.ErrStatus.Code)
}

func TestGenericServerResponseMapping(t *testing.T) {
	cases := []struct {
		code   int
		reason meta.StatusReason
		check  func(error) bool
	}{
		{http.StatusNotFound, meta.StatusReasonNotFound, IsNotFound},
		{http.StatusConflict, meta.StatusReasonConflict, IsConflict},
		{http.StatusRequestTimeout, meta.StatusReasonTimeout, IsTimeout},
	}
	for _, tc := range cases {
		err := NewGenericServerResponse(tc.code, "get", podsResource, "web-0", "boom", 0, true)
		assert.Equal(t, tc.reason, err.ErrStatus.Reason, "code %d", tc.code)
		assert.True(t, tc.check(err), "code %d", tc.code)
	}
}

func TestFromStatus(t *testing.T) {
	status := meta.Status{
		Status:  meta.StatusFailure,
		Message: `pods "web-0" not found`,
		Reason:  meta.StatusReasonNotFound,
		Code:    http.StatusNotFound,
	}
	err := FromStatus(status)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, status, err.Status())
}

func TestDecodeError(t *testing.T) {
	cause := xerrors.New("unexpected end of JSON input")
	err := NewDecodeError(cause)
	assert.True(t, IsDecodeError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsDecodeError(cause))
}

func TestTransportError(t *testing.T) {
	cause := xerrors.New("connection refused")
	err := NewTransportError(cause)
	assert.True(t, IsTransportError(err))
	assert.ErrorIs(t, err, cause)
	assert.False(t, IsNotFound(err))
}

func TestStreamClosedError(t *testing.T) {
	status := &meta.Status{
		Status:  meta.StatusFailure,
		Reason:  meta.StatusReasonExpired,
		Message: "too old resource version",
		Code:    http.StatusGone,
	}
	err := NewStreamClosed(status, "watch stream ended with an error event")
	require.True(t, IsStreamClosed(err))
	assert.Contains(t, err.Error(), "too old resource version")
}
