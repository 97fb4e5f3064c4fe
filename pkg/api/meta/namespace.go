package meta

import (
	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// Namespace provides a scope for names. Namespaces are cluster-scoped: they
// are addressed by name alone.
type Namespace struct {
	TypeMeta   `json:",inline"`
	ObjectMeta `json:"metadata,omitempty"`

	Spec   *NamespaceSpec   `json:"spec,omitempty"`
	Status *NamespaceStatus `json:"status,omitempty"`
}

func (m *Namespace) GetObjectKind() schema.ObjectKind { return m }

func (m *Namespace) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*Namespace)
}

// NamespaceList is a list of Namespaces.
type NamespaceList struct {
	TypeMeta `json:",inline"`
	ListMeta `json:"metadata,omitempty"`

	Items []Namespace `json:"items"`
}

func (m *NamespaceList) GetObjectKind() schema.ObjectKind { return m }

func (m *NamespaceList) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*NamespaceList)
}

// NamespaceSpec describes the attributes on a Namespace.
type NamespaceSpec struct {
	Finalizers []string `json:"finalizers,omitempty"`
}

// NamespacePhase describes the lifecycle phase of a Namespace.
type NamespacePhase string

const (
	NamespaceActive      NamespacePhase = "Active"
	NamespaceTerminating NamespacePhase = "Terminating"
)

// NamespaceStatus is information about the current status of a Namespace.
type NamespaceStatus struct {
	Phase NamespacePhase `json:"phase,omitempty"`
}
