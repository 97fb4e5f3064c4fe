package rest

import (
	"strconv"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"golang.org/x/xerrors"
)

// VersionedParams serializes the provided options struct onto the request
// query string following the API conventions: zero values are omitted, and
// previously set parameters are appended to.
func (r *Request) VersionedParams(obj interface{}) *Request {
	if r.err != nil || obj == nil {
		return r
	}
	switch opts := obj.(type) {
	case *meta.GetOptions:
		if opts == nil {
			return r
		}
		if len(opts.ResourceVersion) > 0 {
			r.setParam("resourceVersion", opts.ResourceVersion)
		}
	case *meta.ListOptions:
		if opts == nil {
			return r
		}
		if len(opts.LabelSelector) > 0 {
			r.setParam("labelSelector", opts.LabelSelector)
		}
		if len(opts.FieldSelector) > 0 {
			r.setParam("fieldSelector", opts.FieldSelector)
		}
		if opts.Watch {
			r.setParam("watch", "true")
		}
		if opts.AllowWatchBookmarks {
			r.setParam("allowWatchBookmarks", "true")
		}
		if len(opts.ResourceVersion) > 0 {
			r.setParam("resourceVersion", opts.ResourceVersion)
		}
		if opts.TimeoutSeconds != nil {
			r.setParam("timeoutSeconds", strconv.FormatInt(*opts.TimeoutSeconds, 10))
		}
		if opts.Limit > 0 {
			r.setParam("limit", strconv.FormatInt(opts.Limit, 10))
		}
		if len(opts.Continue) > 0 {
			r.setParam("continue", opts.Continue)
		}
	case *meta.CreateOptions:
		if opts == nil {
			return r
		}
		for _, v := range opts.DryRun {
			r.setParam("dryRun", v)
		}
		if len(opts.FieldManager) > 0 {
			r.setParam("fieldManager", opts.FieldManager)
		}
	case *meta.UpdateOptions:
		if opts == nil {
			return r
		}
		for _, v := range opts.DryRun {
			r.setParam("dryRun", v)
		}
		if len(opts.FieldManager) > 0 {
			r.setParam("fieldManager", opts.FieldManager)
		}
	case *meta.PatchOptions:
		if opts == nil {
			return r
		}
		for _, v := range opts.DryRun {
			r.setParam("dryRun", v)
		}
		if opts.Force != nil && *opts.Force {
			r.setParam("force", "true")
		}
		if len(opts.FieldManager) > 0 {
			r.setParam("fieldManager", opts.FieldManager)
		}
	case *meta.DeleteOptions:
		if opts == nil {
			return r
		}
		if opts.GracePeriodSeconds != nil {
			r.setParam("gracePeriodSeconds", strconv.FormatInt(*opts.GracePeriodSeconds, 10))
		}
		if opts.PropagationPolicy != nil {
			r.setParam("propagationPolicy", string(*opts.PropagationPolicy))
		}
		for _, v := range opts.DryRun {
			r.setParam("dryRun", v)
		}
	case *meta.PodLogOptions:
		if opts == nil {
			return r
		}
		if len(opts.Container) > 0 {
			r.setParam("container", opts.Container)
		}
		if opts.Follow {
			r.setParam("follow", "true")
		}
		if opts.Previous {
			r.setParam("previous", "true")
		}
		if opts.SinceSeconds != nil {
			r.setParam("sinceSeconds", strconv.FormatInt(*opts.SinceSeconds, 10))
		}
		if opts.Timestamps {
			r.setParam("timestamps", "true")
		}
		if opts.TailLines != nil {
			r.setParam("tailLines", strconv.FormatInt(*opts.TailLines, 10))
		}
		if opts.LimitBytes != nil {
			r.setParam("limitBytes", strconv.FormatInt(*opts.LimitBytes, 10))
		}
	default:
		r.err = xerrors.Errorf("unknown options type %T", obj)
	}
	return r
}
