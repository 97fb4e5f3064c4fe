package rest

import (
	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime"
)

// ErrorReporter converts generic errors into runtime.Object errors without
// requiring the caller to take a dependency on the meta package (where Status
// lives). This prevents circular dependencies in core watch code.
type ErrorReporter struct {
	code   int
	verb   string
	reason string
}

// NewClientErrorReporter will respond with valid Status objects that report
// unexpected server responses. Primarily used by watch to report errors when
// we attempt to decode a response from the server and it is not in the form
// we expect. The reason is passed through on the returned status, otherwise
// the generic "ClientError" is used.
func NewClientErrorReporter(code int, verb string, reason string) *ErrorReporter {
	if len(reason) == 0 {
		reason = "ClientError"
	}
	return &ErrorReporter{
		code:   code,
		verb:   verb,
		reason: reason,
	}
}

// AsObject returns a valid error runtime.Object (a Status) for the given
// error, using the code and verb of the reporter type. The error is set to
// indicate that this was an unexpected server response.
func (r *ErrorReporter) AsObject(err error) runtime.Object {
	status := &meta.Status{
		Status:  meta.StatusFailure,
		Message: err.Error(),
		Reason:  meta.StatusReason(r.reason),
		Code:    int32(r.code),
	}
	status.Kind = "Status"
	status.APIVersion = "v1"
	return status
}
