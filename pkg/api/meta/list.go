package meta

import (
	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// ItemList is a generic collection assembled on the client, used when pages
// of differently fetched items are concatenated into one list.
type ItemList struct {
	TypeMeta `json:",inline"`
	ListMeta `json:"metadata,omitempty"`

	Items []runtime.Object `json:"items"`
}

func (l *ItemList) GetObjectKind() schema.ObjectKind { return l }

func (l *ItemList) DeepCopyObject() runtime.Object {
	if l == nil {
		return nil
	}
	out := &ItemList{
		TypeMeta: l.TypeMeta,
		ListMeta: l.ListMeta,
	}
	if l.Items != nil {
		out.Items = make([]runtime.Object, 0, len(l.Items))
		for _, item := range l.Items {
			out.Items = append(out.Items, item.DeepCopyObject())
		}
	}
	return out
}
