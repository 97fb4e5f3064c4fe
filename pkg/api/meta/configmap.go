package meta

import (
	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// ConfigMap holds configuration data for pods to consume.
type ConfigMap struct {
	TypeMeta   `json:",inline"`
	ObjectMeta `json:"metadata,omitempty"`

	Data       map[string]string `json:"data,omitempty"`
	BinaryData map[string][]byte `json:"binaryData,omitempty"`
	Immutable  *bool             `json:"immutable,omitempty"`
}

func (m *ConfigMap) GetObjectKind() schema.ObjectKind { return m }

func (m *ConfigMap) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*ConfigMap)
}

// ConfigMapList is a resource containing a list of ConfigMap objects.
type ConfigMapList struct {
	TypeMeta `json:",inline"`
	ListMeta `json:"metadata,omitempty"`

	Items []ConfigMap `json:"items"`
}

func (m *ConfigMapList) GetObjectKind() schema.ObjectKind { return m }

func (m *ConfigMapList) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*ConfigMapList)
}
