package meta

import (
	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// Status is a return value for calls that don't return other objects: every
// delete, and every error response. It is the one envelope whose shape differs
// from the resource it refers to.
type Status struct {
	TypeMeta `json:",inline"`
	ListMeta `json:"metadata,omitempty"`

	// Status of the operation.
	// One of: "Success" or "Failure".
	Status string `json:"status,omitempty"`
	// A human-readable description of the status of this operation.
	Message string `json:"message,omitempty"`
	// A machine-readable description of why this operation is in the
	// "Failure" status. If this value is empty there is no information
	// available. A Reason clarifies an HTTP status code but does not
	// override it.
	Reason StatusReason `json:"reason,omitempty"`
	// Extended data associated with the reason. Each reason may define its
	// own extended details.
	Details *StatusDetails `json:"details,omitempty"`
	// Suggested HTTP return code for this status, 0 if not set.
	Code int32 `json:"code,omitempty"`
}

func (m *Status) GetObjectKind() schema.ObjectKind { return m }

func (m *Status) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*Status)
}

// Values of Status.Status
const (
	StatusSuccess = "Success"
	StatusFailure = "Failure"
)

// StatusReason is an enumeration of possible failure causes. The empty reason
// carries no information beyond the HTTP status code.
type StatusReason string

const (
	StatusReasonUnknown       StatusReason = ""
	StatusReasonNotFound      StatusReason = "NotFound"
	StatusReasonAlreadyExists StatusReason = "AlreadyExists"
	StatusReasonConflict      StatusReason = "Conflict"
	StatusReasonBadRequest    StatusReason = "BadRequest"
	StatusReasonForbidden     StatusReason = "Forbidden"
	StatusReasonUnauthorized  StatusReason = "Unauthorized"
	StatusReasonTimeout       StatusReason = "Timeout"
	StatusReasonExpired       StatusReason = "Expired"
	StatusReasonInternalError StatusReason = "InternalError"

	// StatusReasonClientWatchDecoding is generated client-side when a frame
	// on a watch stream cannot be decoded.
	StatusReasonClientWatchDecoding StatusReason = "ClientWatchDecoding"
)

// StatusDetails is a set of additional properties that MAY be set by the
// server to provide additional information about a response. The Reason
// field of a Status object defines what attributes will be set. Clients
// must ignore fields that do not match the defined type of each attribute,
// and should assume that any attribute may be empty, invalid, or under
// defined.
type StatusDetails struct {
	// The name attribute of the resource associated with the status StatusReason
	// (when there is a single name which can be described).
	Name string `json:"name,omitempty"`
	// The group attribute of the resource associated with the status StatusReason.
	Group string `json:"group,omitempty"`
	// The kind attribute of the resource associated with the status StatusReason.
	// On some operations may differ from the requested resource Kind.
	Kind string `json:"kind,omitempty"`
	// UID of the resource (when there is a single resource which can be described).
	UID string `json:"uid,omitempty"`
	// The Causes array includes more details associated with the StatusReason
	// failure. Not all StatusReasons may provide detailed causes.
	Causes []StatusCause `json:"causes,omitempty"`
	// If specified, the time in seconds before the operation should be retried.
	RetryAfterSeconds int32 `json:"retryAfterSeconds,omitempty"`
}

// StatusCause provides more information about an api.Status failure, including
// cases when multiple errors are encountered.
type StatusCause struct {
	// A machine-readable description of the cause of the error.
	Reason string `json:"reason,omitempty"`
	// A human-readable description of the cause of the error.
	Message string `json:"message,omitempty"`
	// The field of the resource that has caused this error, as named by its JSON
	// serialization.
	Field string `json:"field,omitempty"`
}
