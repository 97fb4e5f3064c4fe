package schema

import "strings"

// SchemeGroupVersion is the group version used by the core API. The core group
// is addressed by the empty string, following API conventions.
var SchemeGroupVersion = GroupVersion{Group: "", Version: "v1"}

// GroupVersionKind names a kind together with the group/version it belongs to.
// The fields stay separate rather than embedding GroupVersion so the zero
// value marshals plainly and comparison stays field-wise.
type GroupVersionKind struct {
	Group   string
	Version string
	Kind    string
}

// Empty reports whether no field is set.
func (gvk GroupVersionKind) Empty() bool {
	return len(gvk.Group) == 0 && len(gvk.Version) == 0 && len(gvk.Kind) == 0
}

func (gvk GroupVersionKind) GroupVersion() GroupVersion {
	return GroupVersion{Group: gvk.Group, Version: gvk.Version}
}

func (gvk GroupVersionKind) String() string {
	return gvk.Group + "/" + gvk.Version + ", Kind=" + gvk.Kind
}

// GroupVersion identifies an API group at a particular version.
type GroupVersion struct {
	Group   string
	Version string
}

// Empty reports whether both fields are unset.
func (gv GroupVersion) Empty() bool {
	return len(gv.Group) == 0 && len(gv.Version) == 0
}

// String renders "group/version", or just "version" for the core group.
func (gv GroupVersion) String() string {
	if len(gv.Group) > 0 {
		return gv.Group + "/" + gv.Version
	}
	return gv.Version
}

// Identifier is the form used in the apiVersion field of serialized objects.
func (gv GroupVersion) Identifier() string {
	return gv.String()
}

// WithKind qualifies a kind with the receiver's group and version.
func (gv GroupVersion) WithKind(kind string) GroupVersionKind {
	return GroupVersionKind{Group: gv.Group, Version: gv.Version, Kind: kind}
}

// ParseGroupVersion splits an apiVersion string into its GroupVersion. The
// second return is false when the string has too many separators to be valid.
func ParseGroupVersion(gv string) (GroupVersion, bool) {
	if len(gv) == 0 || gv == "/" {
		return GroupVersion{}, true
	}
	switch strings.Count(gv, "/") {
	case 0:
		return GroupVersion{Version: gv}, true
	case 1:
		i := strings.Index(gv, "/")
		return GroupVersion{Group: gv[:i], Version: gv[i+1:]}, true
	default:
		return GroupVersion{}, false
	}
}

// GroupResource names a resource without pinning a version, which is how
// error statuses refer to the thing that was acted on.
type GroupResource struct {
	Group    string
	Resource string
}

func (gr GroupResource) Empty() bool {
	return len(gr.Group) == 0 && len(gr.Resource) == 0
}

func (gr GroupResource) String() string {
	if len(gr.Group) == 0 {
		return gr.Resource
	}
	return gr.Resource + "." + gr.Group
}
