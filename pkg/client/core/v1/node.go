package v1

import (
	"context"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/client/generic"
	"github.com/nanokube/kubeclient/pkg/watch"
)

type NodesGetter interface {
	Nodes() NodeInterface
}

type NodeInterface interface {
	Create(ctx context.Context, node *meta.Node, opts meta.CreateOptions) (*meta.Node, error)
	Update(ctx context.Context, node *meta.Node, opts meta.UpdateOptions) (*meta.Node, error)
	Delete(ctx context.Context, name string, opts meta.DeleteOptions) (*meta.Status, error)
	Get(ctx context.Context, name string, opts meta.GetOptions) (*meta.Node, error)
	List(ctx context.Context, opts meta.ListOptions) (*meta.NodeList, error)
	Watch(ctx context.Context, opts meta.ListOptions) (watch.Interface, error)
	Patch(ctx context.Context, name string, pt string, data []byte, opts meta.PatchOptions, subresources ...string) (*meta.Node, error)
}

type nodes struct {
	*generic.Client[*meta.Node, *meta.NodeList]
}

func newNodes(c *CoreV1Client) *nodes {
	return &nodes{
		Client: generic.NewClient(c.RESTClient(), "nodes",
			func() *meta.Node { return &meta.Node{} },
			func() *meta.NodeList { return &meta.NodeList{} }),
	}
}
