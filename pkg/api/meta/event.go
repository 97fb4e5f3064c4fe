package meta

import (
	"encoding/json"

	"golang.org/x/xerrors"

	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// WatchEvent is the wire form of a single watch record: one JSON object per
// line of a watch response body.
type WatchEvent struct {
	// The type of the event: ADDED, MODIFIED, DELETED, BOOKMARK, or ERROR.
	Type string `json:"type"`

	// For ADDED or MODIFIED: the new state of the object; for DELETED: the state
	// immediately before deletion; for BOOKMARK: an object carrying only a fresh
	// resourceVersion; for ERROR: a Status describing the failure.
	Object RawExtension `json:"object"`
}

func (m *WatchEvent) GetObjectKind() schema.ObjectKind { return schema.EmptyObjectKind }

func (m *WatchEvent) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*WatchEvent)
}

// RawExtension holds an unparsed fragment of an API document, deferring the
// choice of concrete type to whoever consumes it.
type RawExtension struct {
	// Raw is the underlying serialization of this object.
	Raw []byte `json:"-"`
	// Object can hold a decoded representation of this extension.
	Object runtime.Object `json:"-"`
}

func (re *RawExtension) UnmarshalJSON(in []byte) error {
	if re == nil {
		return xerrors.New("RawExtension: UnmarshalJSON on nil pointer")
	}
	if string(in) == "null" {
		return nil
	}
	re.Raw = append(re.Raw[0:0], in...)
	return nil
}

func (re RawExtension) MarshalJSON() ([]byte, error) {
	if re.Raw == nil {
		if re.Object != nil {
			return json.Marshal(re.Object)
		}
		return []byte("null"), nil
	}
	return re.Raw, nil
}
