package meta

import (
	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// Node is a worker machine in the cluster. Nodes are cluster-scoped.
type Node struct {
	TypeMeta   `json:",inline"`
	ObjectMeta `json:"metadata,omitempty"`

	Spec   *NodeSpec   `json:"spec,omitempty"`
	Status *NodeStatus `json:"status,omitempty"`
}

func (m *Node) GetObjectKind() schema.ObjectKind { return m }

func (m *Node) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*Node)
}

// NodeList is the whole list of all Nodes which have been registered with the
// control plane.
type NodeList struct {
	TypeMeta `json:",inline"`
	ListMeta `json:"metadata,omitempty"`

	Items []Node `json:"items"`
}

func (m *NodeList) GetObjectKind() schema.ObjectKind { return m }

func (m *NodeList) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*NodeList)
}

// NodeSpec describes the attributes that a node is created with.
type NodeSpec struct {
	Unschedulable bool   `json:"unschedulable,omitempty"`
	ProviderID    string `json:"providerID,omitempty"`
}

// NodeStatus is information about the current status of a node.
type NodeStatus struct {
	Addresses  []NodeAddress     `json:"addresses,omitempty"`
	Conditions []NodeCondition   `json:"conditions,omitempty"`
	Capacity   map[string]string `json:"capacity,omitempty"`
}

// NodeAddress contains information for the node's address.
type NodeAddress struct {
	Type    string `json:"type"`
	Address string `json:"address"`
}

// NodeCondition contains condition information for a node.
type NodeCondition struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Reason  string `json:"reason,omitempty"`
	Message string `json:"message,omitempty"`
}
