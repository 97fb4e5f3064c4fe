package v1

import (
	"context"
	"time"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/client/generic"
	"github.com/nanokube/kubeclient/pkg/client/rest"
	"github.com/nanokube/kubeclient/pkg/util/clock"
	"github.com/nanokube/kubeclient/pkg/util/wait"
	"github.com/nanokube/kubeclient/pkg/watch"
)

type PodsGetter interface {
	Pods(namespace string) PodInterface
}

type PodInterface interface {
	Create(ctx context.Context, pod *meta.Pod, opts meta.CreateOptions) (*meta.Pod, error)
	Update(ctx context.Context, pod *meta.Pod, opts meta.UpdateOptions) (*meta.Pod, error)
	Delete(ctx context.Context, name string, opts meta.DeleteOptions) (*meta.Status, error)
	Get(ctx context.Context, name string, opts meta.GetOptions) (*meta.Pod, error)
	List(ctx context.Context, opts meta.ListOptions) (*meta.PodList, error)
	Watch(ctx context.Context, opts meta.ListOptions) (watch.Interface, error)
	Patch(ctx context.Context, name string, pt string, data []byte, opts meta.PatchOptions, subresources ...string) (*meta.Pod, error)

	PodExpansion
}

// The PodExpansion interface holds the manually added helpers for pods.
type PodExpansion interface {
	GetLogs(name string, opts *meta.PodLogOptions) *rest.Request
	WaitUntilReady(ctx context.Context, name string, timeout time.Duration) (*meta.Pod, error)
	WaitUntilRunning(ctx context.Context, name string, timeout time.Duration) (*meta.Pod, error)
}

type pods struct {
	*generic.Client[*meta.Pod, *meta.PodList]
	client rest.Interface
	ns     string
	clock  clock.Clock
}

func newPods(c *CoreV1Client, namespace string) *pods {
	return &pods{
		Client: generic.NewNamespacedClient(c.RESTClient(), "pods", namespace,
			func() *meta.Pod { return &meta.Pod{} },
			func() *meta.PodList { return &meta.PodList{} }),
		client: c.RESTClient(),
		ns:     namespace,
		clock:  c.clock,
	}
}

// GetLogs constructs a request for getting the logs for a pod.
func (c *pods) GetLogs(name string, opts *meta.PodLogOptions) *rest.Request {
	return c.client.Get().
		Namespace(c.ns).
		Resource("pods").
		Name(name).
		SubResource("log").
		VersionedParams(opts)
}

// WaitUntilReady blocks until every container of the named pod reports ready,
// re-reading the pod once per second. The deadline is fixed when the call is
// made. Returns the first pod read that satisfied the predicate.
func (c *pods) WaitUntilReady(ctx context.Context, name string, timeout time.Duration) (*meta.Pod, error) {
	return wait.For(ctx, c.clock, wait.DefaultPollInterval, timeout,
		func(ctx context.Context) (*meta.Pod, error) {
			return c.Get(ctx, name, meta.GetOptions{})
		},
		PodReady)
}

// WaitUntilRunning blocks until the named pod reaches the Running phase.
func (c *pods) WaitUntilRunning(ctx context.Context, name string, timeout time.Duration) (*meta.Pod, error) {
	return wait.For(ctx, c.clock, wait.DefaultPollInterval, timeout,
		func(ctx context.Context) (*meta.Pod, error) {
			return c.Get(ctx, name, meta.GetOptions{})
		},
		PodRunning)
}

// PodReady returns true when the pod reports at least one container status
// and every container is ready.
func PodReady(pod *meta.Pod) bool {
	if pod == nil || pod.Status == nil || len(pod.Status.ContainerStatuses) == 0 {
		return false
	}
	for _, cs := range pod.Status.ContainerStatuses {
		if !cs.Ready {
			return false
		}
	}
	return true
}

// PodRunning returns true when the pod reports the Running phase.
func PodRunning(pod *meta.Pod) bool {
	return pod != nil && pod.Status != nil && pod.Status.Phase == meta.PodRunning
}
