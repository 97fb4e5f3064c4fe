package meta

// GetOptions is the standard query options to the standard REST get call.
type GetOptions struct {
	TypeMeta `json:",inline"`
	// ResourceVersion sets a constraint on what resource versions a request may be
	// served from. Defaults to unset.
	ResourceVersion string `json:"resourceVersion,omitempty"`
}

// ListOptions is the query options to a standard REST list call, and doubles as
// the option set for watch calls.
type ListOptions struct {
	TypeMeta `json:",inline"`

	// A selector to restrict the list of returned objects by their labels.
	// Defaults to everything.
	LabelSelector string `json:"labelSelector,omitempty"`
	// A selector to restrict the list of returned objects by their fields.
	// Defaults to everything.
	FieldSelector string `json:"fieldSelector,omitempty"`

	// Watch for changes to the described resources and return them as a stream of
	// add, update, and remove notifications. Specify resourceVersion.
	Watch bool `json:"watch,omitempty"`
	// AllowWatchBookmarks requests watch events with type "BOOKMARK".
	// Servers that do not implement bookmarks may ignore this flag and
	// bookmarks are sent at the server's discretion. Clients should not
	// assume bookmarks are returned at any specific interval, nor may they
	// assume the server will send any BOOKMARK event during a session.
	AllowWatchBookmarks bool `json:"allowWatchBookmarks,omitempty"`

	// ResourceVersion sets a constraint on what resource versions a request may be
	// served from. For watches it is the point in history to resume from.
	ResourceVersion string `json:"resourceVersion,omitempty"`

	// TimeoutSeconds limits the duration of the call, regardless of any activity
	// or inactivity.
	TimeoutSeconds *int64 `json:"timeoutSeconds,omitempty"`

	// Limit is a maximum number of responses to return for a list call. It is a
	// page-size hint, not a hard cap: if more items exist the server sets the
	// `continue` field on the list metadata, and a page may hold fewer items than
	// requested (down to zero) with more pages still remaining.
	Limit int64 `json:"limit,omitempty"`
	// Continue is a token returned by a previous chunked list call; setting it
	// retrieves the next page.
	Continue string `json:"continue,omitempty"`
}

// CreateOptions may be provided when creating an API object.
type CreateOptions struct {
	TypeMeta `json:",inline"`

	// When present, indicates that modifications should not be persisted. An
	// invalid or unrecognized dryRun directive will result in an error response
	// and no further processing of the request. Valid values are:
	// - All: all dry run stages will be processed
	DryRun []string `json:"dryRun,omitempty"`

	// FieldManager is a name associated with the actor or entity that is making
	// these changes.
	FieldManager string `json:"fieldManager,omitempty"`
}

// UpdateOptions may be provided when updating an API object. All fields in
// UpdateOptions should also be present in CreateOptions.
type UpdateOptions struct {
	TypeMeta `json:",inline"`

	DryRun       []string `json:"dryRun,omitempty"`
	FieldManager string   `json:"fieldManager,omitempty"`
}

// PatchOptions may be provided when patching an API object.
// PatchOptions is meant to be a superset of UpdateOptions.
type PatchOptions struct {
	TypeMeta `json:",inline"`

	DryRun []string `json:"dryRun,omitempty"`
	// Force is going to "force" Apply requests. It means user will re-acquire
	// conflicting fields owned by other people. Force flag must be unset for
	// non-apply patch requests.
	Force        *bool  `json:"force,omitempty"`
	FieldManager string `json:"fieldManager,omitempty"`
}

// DeleteOptions may be provided when deleting an API object.
type DeleteOptions struct {
	TypeMeta `json:",inline"`

	// GracePeriodSeconds is the duration in seconds before the object should be
	// deleted. The value zero indicates delete immediately. If this value is nil,
	// the default grace period for the specified type will be used.
	GracePeriodSeconds *int64 `json:"gracePeriodSeconds,omitempty"`

	// Preconditions must be fulfilled before a deletion is carried out. If not
	// possible, a 409 Conflict status will be returned.
	Preconditions *Preconditions `json:"preconditions,omitempty"`

	// PropagationPolicy decides whether and how garbage collection will be
	// performed. Acceptable values are: 'Orphan' - orphan the dependents;
	// 'Background' - allow the garbage collector to delete the dependents in the
	// background; 'Foreground' - a cascading policy that deletes all dependents
	// in the foreground.
	PropagationPolicy *string `json:"propagationPolicy,omitempty"`

	DryRun []string `json:"dryRun,omitempty"`
}

// Preconditions must be fulfilled before an operation (update, delete, etc.) is
// carried out.
type Preconditions struct {
	// Specifies the target UID.
	UID *string `json:"uid,omitempty"`
	// Specifies the target ResourceVersion.
	ResourceVersion *string `json:"resourceVersion,omitempty"`
}

// Patch content types accepted by the server.
const (
	JSONPatchType           = "application/json-patch+json"
	MergePatchType          = "application/merge-patch+json"
	StrategicMergePatchType = "application/strategic-merge-patch+json"
)
