package v1

import (
	"context"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/client/generic"
	"github.com/nanokube/kubeclient/pkg/watch"
)

type ConfigMapsGetter interface {
	ConfigMaps(namespace string) ConfigMapInterface
}

type ConfigMapInterface interface {
	Create(ctx context.Context, cm *meta.ConfigMap, opts meta.CreateOptions) (*meta.ConfigMap, error)
	Update(ctx context.Context, cm *meta.ConfigMap, opts meta.UpdateOptions) (*meta.ConfigMap, error)
	Delete(ctx context.Context, name string, opts meta.DeleteOptions) (*meta.Status, error)
	Get(ctx context.Context, name string, opts meta.GetOptions) (*meta.ConfigMap, error)
	List(ctx context.Context, opts meta.ListOptions) (*meta.ConfigMapList, error)
	Watch(ctx context.Context, opts meta.ListOptions) (watch.Interface, error)
	Patch(ctx context.Context, name string, pt string, data []byte, opts meta.PatchOptions, subresources ...string) (*meta.ConfigMap, error)
}

type configMaps struct {
	*generic.Client[*meta.ConfigMap, *meta.ConfigMapList]
}

func newConfigMaps(c *CoreV1Client, namespace string) *configMaps {
	return &configMaps{
		Client: generic.NewNamespacedClient(c.RESTClient(), "configmaps", namespace,
			func() *meta.ConfigMap { return &meta.ConfigMap{} },
			func() *meta.ConfigMapList { return &meta.ConfigMapList{} }),
	}
}
