// Package pager follows list continue tokens so callers can consume large
// collections in fixed-size chunks without holding every page in memory.
package pager

import (
	"context"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime"
)

const defaultPageSize = 500

// ListPageFunc returns a list object for the given list options.
type ListPageFunc func(ctx context.Context, opts meta.ListOptions) (runtime.Object, error)

// ListPager assists client code in breaking large list queries into multiple
// smaller chunks of PageSize or smaller.
type ListPager struct {
	PageSize int64
	PageFn   ListPageFunc
}

// New creates a new pager from the provided pager function using the default
// options.
func New(fn ListPageFunc) *ListPager {
	return &ListPager{
		PageSize: defaultPageSize,
		PageFn:   fn,
	}
}

// List returns a single list object, but attempts to retrieve smaller chunks
// from the server to reduce the impact on the server. If any page fails, the
// partial result is discarded and the error is returned; the caller restarts
// the list from the beginning.
func (p *ListPager) List(ctx context.Context, opts meta.ListOptions) (runtime.Object, error) {
	if opts.Limit == 0 {
		opts.Limit = p.PageSize
	}
	var list *meta.ItemList
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		obj, err := p.PageFn(ctx, opts)
		if err != nil {
			return nil, err
		}
		m, err := meta.ListAccessor(obj)
		if err != nil {
			return nil, err
		}

		// exit early and return the object we got if we haven't processed any pages
		if len(m.GetContinue()) == 0 && list == nil {
			return obj, nil
		}

		// initialize the list and fill its contents
		if list == nil {
			list = &meta.ItemList{}
			list.ResourceVersion = m.GetResourceVersion()
		}
		if err := meta.EachListItem(obj, func(item runtime.Object) error {
			list.Items = append(list.Items, item)
			return nil
		}); err != nil {
			return nil, err
		}

		// if we have no more items, return the list
		if len(m.GetContinue()) == 0 {
			return list, nil
		}

		// set the next loop up
		opts.Continue = m.GetContinue()
		// Clear the ResourceVersion on the subsequent List calls to avoid the
		// `specifying resource version is not allowed when using continue` error.
		opts.ResourceVersion = ""
	}
}

// EachListItem fetches runtime.Object items using this ListPager and invokes
// fn on each item. An empty page carrying a continue token does not terminate
// iteration; the pager keeps following tokens until the server omits one. If
// fn returns an error, processing stops and that error is returned. If a page
// request fails, the error is returned without invoking fn on its items.
func (p *ListPager) EachListItem(ctx context.Context, opts meta.ListOptions, fn func(obj runtime.Object) error) error {
	if opts.Limit == 0 {
		opts.Limit = p.PageSize
	}
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		obj, err := p.PageFn(ctx, opts)
		if err != nil {
			return err
		}
		m, err := meta.ListAccessor(obj)
		if err != nil {
			return err
		}
		if err := meta.EachListItem(obj, fn); err != nil {
			return err
		}

		if len(m.GetContinue()) == 0 {
			return nil
		}
		opts.Continue = m.GetContinue()
		opts.ResourceVersion = ""
	}
}
