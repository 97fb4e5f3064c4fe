package meta

import (
	"time"

	deepcopy "github.com/barkimedes/go-deepcopy"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// Pod is a collection of containers that can run on a host.
type Pod struct {
	TypeMeta   `json:",inline"`
	ObjectMeta `json:"metadata,omitempty"`

	Spec   *PodSpec   `json:"spec,omitempty"`
	Status *PodStatus `json:"status,omitempty"`
}

func (m *Pod) GetObjectKind() schema.ObjectKind { return m }

func (m *Pod) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*Pod)
}

// PodList is a list of Pods.
type PodList struct {
	TypeMeta `json:",inline"`
	ListMeta `json:"metadata,omitempty"`

	Items []Pod `json:"items"`
}

func (m *PodList) GetObjectKind() schema.ObjectKind { return m }

func (m *PodList) DeepCopyObject() runtime.Object {
	a, _ := deepcopy.Anything(m)
	return a.(*PodList)
}

// PodSpec is a description of a pod.
type PodSpec struct {
	Containers    []Container `json:"containers,omitempty"`
	NodeName      string      `json:"nodeName,omitempty"`
	RestartPolicy string      `json:"restartPolicy,omitempty"`
	HostNetwork   bool        `json:"hostNetwork,omitempty"`
}

// Container represents a single container within a pod.
type Container struct {
	Name    string   `json:"name"`
	Image   string   `json:"image,omitempty"`
	Command []string `json:"command,omitempty"`
	Args    []string `json:"args,omitempty"`
}

// PodPhase is a label for the condition of a pod at the current time.
type PodPhase string

const (
	PodPending   PodPhase = "Pending"
	PodRunning   PodPhase = "Running"
	PodSucceeded PodPhase = "Succeeded"
	PodFailed    PodPhase = "Failed"
	PodUnknown   PodPhase = "Unknown"
)

// PodStatus represents information about the status of a pod. Status may trail
// the actual state of a system, especially if the node that hosts the pod
// cannot contact the control plane.
type PodStatus struct {
	Phase             PodPhase          `json:"phase,omitempty"`
	Message           string            `json:"message,omitempty"`
	Reason            string            `json:"reason,omitempty"`
	HostIP            string            `json:"hostIP,omitempty"`
	PodIP             string            `json:"podIP,omitempty"`
	StartTime         *time.Time        `json:"startTime,omitempty"`
	ContainerStatuses []ContainerStatus `json:"containerStatuses,omitempty"`
}

// PodLogOptions are the query options for a pod's log subresource.
type PodLogOptions struct {
	TypeMeta `json:",inline"`

	// The container for which to return logs. Defaults to the only container
	// when the pod has exactly one.
	Container string `json:"container,omitempty"`
	// Follow the log stream of the pod.
	Follow bool `json:"follow,omitempty"`
	// Return previous terminated container logs.
	Previous bool `json:"previous,omitempty"`
	// A relative time in seconds before the current time from which to show logs.
	SinceSeconds *int64 `json:"sinceSeconds,omitempty"`
	// Add an RFC3339 timestamp at the beginning of every line.
	Timestamps bool `json:"timestamps,omitempty"`
	// Number of lines from the end of the logs to show.
	TailLines *int64 `json:"tailLines,omitempty"`
	// Limit the number of bytes of log output.
	LimitBytes *int64 `json:"limitBytes,omitempty"`
}

// ContainerStatus contains details for the current status of this container.
type ContainerStatus struct {
	Name         string `json:"name"`
	Ready        bool   `json:"ready"`
	RestartCount int32  `json:"restartCount"`
	Image        string `json:"image,omitempty"`
	ContainerID  string `json:"containerID,omitempty"`
}
