package meta

import (
	"time"

	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// TypeMeta describes an individual object in an API response or request
// with strings representing the type of the object and its API schema version.
// Structures that are versioned or persisted should inline TypeMeta.
type TypeMeta struct {
	// Kind is a string value representing the REST resource this object represents.
	// Servers may infer this from the endpoint the client submits requests to.
	// In CamelCase.
	Kind string `json:"kind,omitempty"`

	// APIVersion defines the versioned schema of this representation of an object.
	APIVersion string `json:"apiVersion,omitempty"`
}

func (t *TypeMeta) SetGroupVersionKind(gvk schema.GroupVersionKind) {
	t.APIVersion, t.Kind = gvk.GroupVersion().Identifier(), gvk.Kind
}

func (t *TypeMeta) GroupVersionKind() schema.GroupVersionKind {
	gv, _ := schema.ParseGroupVersion(t.APIVersion)
	return gv.WithKind(t.Kind)
}

// ObjectMeta is metadata that all persisted resources must have. Name plus
// Namespace (for namespace-scoped kinds) uniquely identify an object;
// everything else is optional and may be absent in sparse server responses.
type ObjectMeta struct {
	Name string `json:"name,omitempty"`

	// Namespace defines the space within which each name must be unique. An empty
	// namespace is equivalent to the "default" namespace for namespaced kinds, and
	// not applicable for cluster-scoped kinds.
	Namespace string `json:"namespace,omitempty"`

	UID string `json:"uid,omitempty"`

	// ResourceVersion is an opaque value that identifies the server's internal
	// version of this object. Clients must treat it as opaque and pass it back
	// unmodified.
	ResourceVersion string `json:"resourceVersion,omitempty"`
	Generation      int64  `json:"generation,omitempty"`

	CreationTimestamp          *time.Time `json:"creationTimestamp,omitempty"`
	DeletionTimestamp          *time.Time `json:"deletionTimestamp,omitempty"`
	DeletionGracePeriodSeconds *int64     `json:"deletionGracePeriodSeconds,omitempty"`

	Labels      map[string]string `json:"labels,omitempty"`
	Annotations map[string]string `json:"annotations,omitempty"`

	Finalizers []string `json:"finalizers,omitempty"`
}

func (o *ObjectMeta) GetObjectMeta() Object { return o }

func (o *ObjectMeta) GetName() string { return o.Name }

func (o *ObjectMeta) SetName(name string) { o.Name = name }

func (o *ObjectMeta) GetNamespace() string { return o.Namespace }

func (o *ObjectMeta) SetNamespace(namespace string) { o.Namespace = namespace }

func (o *ObjectMeta) GetUID() string { return o.UID }

func (o *ObjectMeta) SetUID(uid string) { o.UID = uid }

func (o *ObjectMeta) GetResourceVersion() string { return o.ResourceVersion }

func (o *ObjectMeta) SetResourceVersion(version string) { o.ResourceVersion = version }

func (o *ObjectMeta) GetGeneration() int64 { return o.Generation }

func (o *ObjectMeta) SetGeneration(generation int64) { o.Generation = generation }

func (o *ObjectMeta) GetCreationTimestamp() *time.Time { return o.CreationTimestamp }

func (o *ObjectMeta) SetCreationTimestamp(ts *time.Time) { o.CreationTimestamp = ts }

func (o *ObjectMeta) GetDeletionTimestamp() *time.Time { return o.DeletionTimestamp }

func (o *ObjectMeta) SetDeletionTimestamp(ts *time.Time) { o.DeletionTimestamp = ts }

func (o *ObjectMeta) GetLabels() map[string]string { return o.Labels }

func (o *ObjectMeta) SetLabels(labels map[string]string) { o.Labels = labels }

func (o *ObjectMeta) GetAnnotations() map[string]string { return o.Annotations }

func (o *ObjectMeta) SetAnnotations(annotations map[string]string) { o.Annotations = annotations }

// ListMeta describes metadata that synthetic resources must have, including lists and
// various status objects. A resource may have only one of {ObjectMeta, ListMeta}.
type ListMeta struct {
	// ResourceVersion identifies the server's internal version of this collection.
	// Value must be treated as opaque by clients and passed unmodified back to the server.
	ResourceVersion string `json:"resourceVersion,omitempty"`

	// Continue may be set if the user set a limit on the number of items returned, and
	// indicates that the server has more data available. The value is opaque and may be
	// used to issue another request to the endpoint that served this list to retrieve the
	// next set of available objects. Its presence is the only signal that more pages
	// remain; its absence means the list is exhausted.
	Continue string `json:"continue,omitempty"`

	// RemainingItemCount is the number of subsequent items in the list which are not
	// included in this list response. Servers may leave it unset; clients should only
	// treat it as an estimate.
	RemainingItemCount *int64 `json:"remainingItemCount,omitempty"`
}

func (l *ListMeta) GetListMeta() List { return l }

func (l *ListMeta) GetResourceVersion() string { return l.ResourceVersion }

func (l *ListMeta) SetResourceVersion(version string) { l.ResourceVersion = version }

func (l *ListMeta) GetContinue() string { return l.Continue }

func (l *ListMeta) SetContinue(c string) { l.Continue = c }

func (l *ListMeta) GetRemainingItemCount() *int64 { return l.RemainingItemCount }

func (l *ListMeta) SetRemainingItemCount(c *int64) { l.RemainingItemCount = c }
