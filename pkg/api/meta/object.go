package meta

import (
	"fmt"
	"time"

	"golang.org/x/xerrors"

	"github.com/nanokube/kubeclient/pkg/runtime"
)

type ObjectMetaAccessor interface {
	GetObjectMeta() Object
}

// Object lets you work with object metadata from any of the versioned API
// objects. Attempting to set or retrieve a field on an object that does not
// support that field will be a no-op and return a default value.
type Object interface {
	GetName() string
	SetName(name string)
	GetNamespace() string
	SetNamespace(namespace string)
	GetUID() string
	SetUID(uid string)
	GetResourceVersion() string
	SetResourceVersion(version string)
	GetGeneration() int64
	SetGeneration(generation int64)
	GetCreationTimestamp() *time.Time
	SetCreationTimestamp(timestamp *time.Time)
	GetDeletionTimestamp() *time.Time
	SetDeletionTimestamp(timestamp *time.Time)
	GetLabels() map[string]string
	SetLabels(labels map[string]string)
	GetAnnotations() map[string]string
	SetAnnotations(annotations map[string]string)
}

// Accessor returns the Object metadata view of obj, or an error when obj
// carries no object metadata.
func Accessor(obj interface{}) (Object, error) {
	switch t := obj.(type) {
	case Object:
		return t, nil
	case ObjectMetaAccessor:
		if m := t.GetObjectMeta(); m != nil {
			return m, nil
		}
		return nil, xerrors.Errorf("object does not implement the Object interfaces")
	default:
		return nil, xerrors.Errorf("object does not implement the Object interfaces")
	}
}

type List ListInterface

type ListMetaAccessor interface {
	GetListMeta() List
}

// ListInterface lets you work with list metadata from any of the versioned API
// objects.
type ListInterface interface {
	GetResourceVersion() string
	SetResourceVersion(version string)
	GetContinue() string
	SetContinue(c string)
	GetRemainingItemCount() *int64
	SetRemainingItemCount(c *int64)
}

// ListAccessor returns the List metadata view of obj, or an error when obj
// carries no list metadata.
func ListAccessor(obj interface{}) (List, error) {
	switch t := obj.(type) {
	case List:
		return t, nil
	case ListMetaAccessor:
		if m := t.GetListMeta(); m != nil {
			return m, nil
		}
		return nil, xerrors.Errorf("object does not implement the List interfaces")
	default:
		return nil, xerrors.Errorf("object does not implement the List interfaces")
	}
}

// ExtractList returns obj's Items element as a runtime.Object slice. Returns
// an error if obj is not a List type (does not have an Items member).
func ExtractList(obj runtime.Object) ([]runtime.Object, error) {
	itemsPtr, err := runtime.GetItemsPtr(obj)
	if err != nil {
		return nil, err
	}
	items, err := runtime.EnforcePtr(itemsPtr)
	if err != nil {
		return nil, err
	}
	list := make([]runtime.Object, items.Len())
	for i := range list {
		raw := items.Index(i)
		switch item := raw.Interface().(type) {
		case RawExtension:
			switch {
			case item.Object != nil:
				list[i] = item.Object
			case item.Raw != nil:
				list[i] = &Unknown{Raw: item.Raw}
			default:
				list[i] = nil
			}
		case runtime.Object:
			list[i] = item
		default:
			var found bool
			if list[i], found = raw.Addr().Interface().(runtime.Object); !found {
				return nil, fmt.Errorf("%v: item[%v]: expected object, got %#v(%s)", obj, i, raw.Interface(), raw.Kind())
			}
		}
	}
	return list, nil
}

// EachListItem invokes fn on each runtime.Object in the list. Any error
// immediately terminates the loop.
func EachListItem(obj runtime.Object, fn func(runtime.Object) error) error {
	items, err := ExtractList(obj)
	if err != nil {
		return err
	}
	for _, item := range items {
		if err := fn(item); err != nil {
			return err
		}
	}
	return nil
}

// FactoryNewObject returns an empty object for the given kind. Kinds outside
// the core API surface decode into Unknown, which preserves the raw bytes.
func FactoryNewObject(kind string) runtime.Object {
	switch kind {
	case "Pod":
		return &Pod{}
	case "PodList":
		return &PodList{}
	case "Namespace":
		return &Namespace{}
	case "NamespaceList":
		return &NamespaceList{}
	case "Node":
		return &Node{}
	case "NodeList":
		return &NodeList{}
	case "ConfigMap":
		return &ConfigMap{}
	case "ConfigMapList":
		return &ConfigMapList{}
	case "Status":
		return &Status{}
	default:
		return &Unknown{}
	}
}
