// Package generic implements typed resource access on top of the REST client.
// A single Client covers the CRUD, list, and watch conventions shared by every
// resource so the per-resource clients only declare their types and endpoint.
package generic

import (
	"context"
	"time"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/client/rest"
	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/watch"
)

// Interface is the set of operations a resource client supports. T is the
// object type and L its list type.
type Interface[T runtime.Object, L runtime.Object] interface {
	Create(ctx context.Context, obj T, opts meta.CreateOptions) (T, error)
	Update(ctx context.Context, obj T, opts meta.UpdateOptions) (T, error)
	Delete(ctx context.Context, name string, opts meta.DeleteOptions) (*meta.Status, error)
	Get(ctx context.Context, name string, opts meta.GetOptions) (T, error)
	List(ctx context.Context, opts meta.ListOptions) (L, error)
	Watch(ctx context.Context, opts meta.ListOptions) (watch.Interface, error)
	Patch(ctx context.Context, name string, pt string, data []byte, opts meta.PatchOptions, subresources ...string) (T, error)
}

// Client provides the standard verbs for a single resource endpoint. A
// namespaced Client is bound to exactly one namespace; use Namespace to
// derive a Client for another one.
type Client[T runtime.Object, L runtime.Object] struct {
	client     rest.Interface
	resource   string
	namespace  string
	namespaced bool
	newObject  func() T
	newList    func() L
}

// NewClient returns a cluster-scoped resource client.
func NewClient[T runtime.Object, L runtime.Object](c rest.Interface, resource string, newObject func() T, newList func() L) *Client[T, L] {
	return &Client[T, L]{
		client:    c,
		resource:  resource,
		newObject: newObject,
		newList:   newList,
	}
}

// NewNamespacedClient returns a resource client bound to the given namespace.
func NewNamespacedClient[T runtime.Object, L runtime.Object](c rest.Interface, resource, namespace string, newObject func() T, newList func() L) *Client[T, L] {
	return &Client[T, L]{
		client:     c,
		resource:   resource,
		namespace:  namespace,
		namespaced: true,
		newObject:  newObject,
		newList:    newList,
	}
}

// Namespace returns a copy of the client bound to the provided namespace.
// Only valid for namespaced resources.
func (c *Client[T, L]) Namespace(namespace string) *Client[T, L] {
	out := *c
	out.namespace = namespace
	out.namespaced = true
	return &out
}

func (c *Client[T, L]) Create(ctx context.Context, obj T, opts meta.CreateOptions) (T, error) {
	result := c.newObject()
	err := c.client.Post().
		NamespaceIfScoped(c.namespace, c.namespaced).
		Resource(c.resource).
		VersionedParams(&opts).
		Body(obj).
		Do(ctx).
		Into(result)
	return result, err
}

func (c *Client[T, L]) Update(ctx context.Context, obj T, opts meta.UpdateOptions) (T, error) {
	accessor, err := meta.Accessor(obj)
	if err != nil {
		return c.newObject(), err
	}
	result := c.newObject()
	err = c.client.Put().
		NamespaceIfScoped(c.namespace, c.namespaced).
		Resource(c.resource).
		Name(accessor.GetName()).
		VersionedParams(&opts).
		Body(obj).
		Do(ctx).
		Into(result)
	return result, err
}

// Delete removes the named object and returns the Status the server reported
// for the deletion.
func (c *Client[T, L]) Delete(ctx context.Context, name string, opts meta.DeleteOptions) (*meta.Status, error) {
	result := &meta.Status{}
	err := c.client.Delete().
		NamespaceIfScoped(c.namespace, c.namespaced).
		Resource(c.resource).
		Name(name).
		VersionedParams(&opts).
		Do(ctx).
		Into(result)
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (c *Client[T, L]) Get(ctx context.Context, name string, opts meta.GetOptions) (T, error) {
	result := c.newObject()
	err := c.client.Get().
		NamespaceIfScoped(c.namespace, c.namespaced).
		Resource(c.resource).
		Name(name).
		VersionedParams(&opts).
		Do(ctx).
		Into(result)
	return result, err
}

func (c *Client[T, L]) List(ctx context.Context, opts meta.ListOptions) (L, error) {
	var timeout time.Duration
	if opts.TimeoutSeconds != nil {
		timeout = time.Duration(*opts.TimeoutSeconds) * time.Second
	}
	result := c.newList()
	err := c.client.Get().
		NamespaceIfScoped(c.namespace, c.namespaced).
		Resource(c.resource).
		VersionedParams(&opts).
		Timeout(timeout).
		Do(ctx).
		Into(result)
	return result, err
}

// Watch begins a watch at opts.ResourceVersion. The returned stream ends when
// the server closes the connection; the caller decides whether to resume.
func (c *Client[T, L]) Watch(ctx context.Context, opts meta.ListOptions) (watch.Interface, error) {
	var timeout time.Duration
	if opts.TimeoutSeconds != nil {
		timeout = time.Duration(*opts.TimeoutSeconds) * time.Second
	}
	opts.Watch = true
	return c.client.Get().
		NamespaceIfScoped(c.namespace, c.namespaced).
		Resource(c.resource).
		VersionedParams(&opts).
		Timeout(timeout).
		Watch(ctx)
}

func (c *Client[T, L]) Patch(ctx context.Context, name string, pt string, data []byte, opts meta.PatchOptions, subresources ...string) (T, error) {
	result := c.newObject()
	err := c.client.Patch(pt).
		NamespaceIfScoped(c.namespace, c.namespaced).
		Resource(c.resource).
		Name(name).
		SubResource(subresources...).
		VersionedParams(&opts).
		Body(data).
		Do(ctx).
		Into(result)
	return result, err
}
