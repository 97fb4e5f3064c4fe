package v1

import (
	"context"
	"time"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/client/generic"
	"github.com/nanokube/kubeclient/pkg/util/clock"
	"github.com/nanokube/kubeclient/pkg/util/wait"
	"github.com/nanokube/kubeclient/pkg/watch"
)

type NamespacesGetter interface {
	Namespaces() NamespaceInterface
}

type NamespaceInterface interface {
	Create(ctx context.Context, namespace *meta.Namespace, opts meta.CreateOptions) (*meta.Namespace, error)
	Update(ctx context.Context, namespace *meta.Namespace, opts meta.UpdateOptions) (*meta.Namespace, error)
	Delete(ctx context.Context, name string, opts meta.DeleteOptions) (*meta.Status, error)
	Get(ctx context.Context, name string, opts meta.GetOptions) (*meta.Namespace, error)
	List(ctx context.Context, opts meta.ListOptions) (*meta.NamespaceList, error)
	Watch(ctx context.Context, opts meta.ListOptions) (watch.Interface, error)
	Patch(ctx context.Context, name string, pt string, data []byte, opts meta.PatchOptions, subresources ...string) (*meta.Namespace, error)

	NamespaceExpansion
}

// The NamespaceExpansion interface holds the manually added helpers for namespaces.
type NamespaceExpansion interface {
	WaitUntilActive(ctx context.Context, name string, timeout time.Duration) (*meta.Namespace, error)
}

type namespaces struct {
	*generic.Client[*meta.Namespace, *meta.NamespaceList]
	clock clock.Clock
}

func newNamespaces(c *CoreV1Client) *namespaces {
	return &namespaces{
		Client: generic.NewClient(c.RESTClient(), "namespaces",
			func() *meta.Namespace { return &meta.Namespace{} },
			func() *meta.NamespaceList { return &meta.NamespaceList{} }),
		clock: c.clock,
	}
}

// WaitUntilActive blocks until the named namespace reports the Active phase.
func (c *namespaces) WaitUntilActive(ctx context.Context, name string, timeout time.Duration) (*meta.Namespace, error) {
	return wait.For(ctx, c.clock, wait.DefaultPollInterval, timeout,
		func(ctx context.Context) (*meta.Namespace, error) {
			return c.Get(ctx, name, meta.GetOptions{})
		},
		func(ns *meta.Namespace) bool {
			return ns != nil && ns.Status != nil && ns.Status.Phase == meta.NamespaceActive
		})
}
