package meta

import (
	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// Unknown allows api objects with unknown types to be passed-though. This can
// be used to deal with the API objects from a plug-in. Unknown objects still
// have functioning TypeMeta features-- kind, version, etc.
type Unknown struct {
	TypeMeta `json:",inline"`
	// Raw will hold the complete serialized object which couldn't be matched
	// with a registered type. Most likely, nothing should be done with this
	// except for passing it through the system.
	Raw []byte `json:"-"`
}

func (m *Unknown) GetObjectKind() schema.ObjectKind { return m }

func (m *Unknown) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*Unknown)
}

func (m *Unknown) UnmarshalJSON(in []byte) error {
	if string(in) == "null" {
		return nil
	}
	m.Raw = append(m.Raw[0:0], in...)
	type identity struct {
		Kind       string `json:"kind,omitempty"`
		APIVersion string `json:"apiVersion,omitempty"`
	}
	var id identity
	if err := jsonUnmarshal(in, &id); err != nil {
		return err
	}
	m.Kind, m.APIVersion = id.Kind, id.APIVersion
	return nil
}

func (m Unknown) MarshalJSON() ([]byte, error) {
	if m.Raw != nil {
		return m.Raw, nil
	}
	type plain struct {
		Kind       string `json:"kind,omitempty"`
		APIVersion string `json:"apiVersion,omitempty"`
	}
	return jsonMarshal(plain{Kind: m.Kind, APIVersion: m.APIVersion})
}
