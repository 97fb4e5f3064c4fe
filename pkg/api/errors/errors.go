// Package errors holds the typed failures a client call can surface: every
// operation returns either a fully decoded value or exactly one of these.
package errors

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// StatusError is an error intended for consumption by a REST API server; it
// can also be reconstructed by clients from a REST response. Public to allow
// easy type switches.
type StatusError struct {
	ErrStatus meta.Status
}

var _ error = &StatusError{}

func (e *StatusError) Error() string {
	return e.ErrStatus.Message
}

// Status allows access to e's status without having to know the detailed workings
// of StatusError.
func (e *StatusError) Status() meta.Status {
	return e.ErrStatus
}

// NewNotFound returns a new error which indicates that the resource of the kind and the name was not found.
func NewNotFound(qualifiedResource schema.GroupResource, name string) *StatusError {
	return &StatusError{meta.Status{
		Status: meta.StatusFailure,
		Code:   http.StatusNotFound,
		Reason: meta.StatusReasonNotFound,
		Details: &meta.StatusDetails{
			Group: qualifiedResource.Group,
			Kind:  qualifiedResource.Resource,
			Name:  name,
		},
		Message: fmt.Sprintf("%s %q not found", qualifiedResource.String(), name),
	}}
}

// NewConflict returns an error indicating the item can't be updated as provided.
func NewConflict(qualifiedResource schema.GroupResource, name string, err error) *StatusError {
	return &StatusError{meta.Status{
		Status: meta.StatusFailure,
		Code:   http.StatusConflict,
		Reason: meta.StatusReasonConflict,
		Details: &meta.StatusDetails{
			Group: qualifiedResource.Group,
			Kind:  qualifiedResource.Resource,
			Name:  name,
		},
		Message: fmt.Sprintf("operation cannot be fulfilled on %s %q: %v", qualifiedResource.String(), name, err),
	}}
}

// NewTimeoutError returns an error indicating that a timeout occurred before
// the request could be completed.
func NewTimeoutError(message string, retryAfterSeconds int) *StatusError {
	return &StatusError{meta.Status{
		Status:  meta.StatusFailure,
		Code:    http.StatusGatewayTimeout,
		Reason:  meta.StatusReasonTimeout,
		Message: fmt.Sprintf("timeout: %s", message),
		Details: &meta.StatusDetails{
			RetryAfterSeconds: int32(retryAfterSeconds),
		},
	}}
}

// NewGenericServerResponse returns a new error for server responses that are
// not in a recognizable form. The method and status code are mapped onto the
// closest reason in the taxonomy.
func NewGenericServerResponse(code int, verb string, qualifiedResource schema.GroupResource, name, serverMessage string, retryAfterSeconds int, isUnexpectedResponse bool) *StatusError {
	reason := meta.StatusReasonUnknown
	message := fmt.Sprintf("the server responded with the status code %d but did not return more information", code)
	switch code {
	case http.StatusConflict:
		if verb == "POST" {
			reason = meta.StatusReasonAlreadyExists
		} else {
			reason = meta.StatusReasonConflict
		}
		message = "the server reported a conflict"
	case http.StatusNotFound:
		reason = meta.StatusReasonNotFound
		message = "the server could not find the requested resource"
	case http.StatusBadRequest:
		reason = meta.StatusReasonBadRequest
		message = "the server rejected our request for an unknown reason"
	case http.StatusUnauthorized:
		reason = meta.StatusReasonUnauthorized
		message = "the server has asked for the client to provide credentials"
	case http.StatusForbidden:
		reason = meta.StatusReasonForbidden
		message = "the server does not allow access to the requested resource"
	case http.StatusGatewayTimeout, http.StatusRequestTimeout:
		reason = meta.StatusReasonTimeout
		message = "the server was unable to return a response in the time allotted, but may still be processing the request"
	case http.StatusInternalServerError:
		reason = meta.StatusReasonInternalError
		message = "an error on the server has prevented the request from succeeding"
	}
	if len(name) != 0 {
		message = fmt.Sprintf("%s (%s %s %s)", message, strings.ToLower(verb), qualifiedResource.String(), name)
	} else {
		message = fmt.Sprintf("%s (%s %s)", message, strings.ToLower(verb), qualifiedResource.String())
	}
	var causes []meta.StatusCause
	if isUnexpectedResponse {
		causes = []meta.StatusCause{{
			Reason:  "UnexpectedServerResponse",
			Message: serverMessage,
		}}
	}
	return &StatusError{meta.Status{
		Status: meta.StatusFailure,
		Code:   int32(code),
		Reason: reason,
		Details: &meta.StatusDetails{
			Group:             qualifiedResource.Group,
			Kind:              qualifiedResource.Resource,
			Name:              name,
			Causes:            causes,
			RetryAfterSeconds: int32(retryAfterSeconds),
		},
		Message: message,
	}}
}

// FromStatus builds the matching StatusError for a failure Status decoded off
// the wire.
func FromStatus(status meta.Status) *StatusError {
	return &StatusError{ErrStatus: status}
}

// IsNotFound returns true if the specified error was created by NewNotFound or
// carries the NotFound reason or code.
func IsNotFound(err error) bool {
	return reasonAndCodeForError(err, meta.StatusReasonNotFound, http.StatusNotFound)
}

// IsConflict determines if the err is an error which indicates the provided
// update conflicts.
func IsConflict(err error) bool {
	return reasonAndCodeForError(err, meta.StatusReasonConflict, http.StatusConflict)
}

// IsAlreadyExists determines if the err is an error which indicates that a
// specified resource already exists.
func IsAlreadyExists(err error) bool {
	return reasonForError(err) == meta.StatusReasonAlreadyExists
}

// IsTimeout determines if err indicates that a deadline elapsed before the
// condition of interest was observed, either server- or client-side.
func IsTimeout(err error) bool {
	if errors.As(err, new(*TimeoutError)) {
		return true
	}
	return reasonAndCodeForError(err, meta.StatusReasonTimeout, http.StatusGatewayTimeout)
}

func reasonForError(err error) meta.StatusReason {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		return statusErr.ErrStatus.Reason
	}
	return meta.StatusReasonUnknown
}

func reasonAndCodeForError(err error, reason meta.StatusReason, code int32) bool {
	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		if statusErr.ErrStatus.Reason == reason {
			return true
		}
		if statusErr.ErrStatus.Reason == meta.StatusReasonUnknown && statusErr.ErrStatus.Code == code {
			return true
		}
	}
	return false
}
