package meta

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanokube/kubeclient/pkg/runtime"
)

func TestAccessor(t *testing.T) {
	pod := &Pod{}
	pod.Name = "web-0"
	pod.Namespace = "default"
	pod.ResourceVersion = "7"

	accessor, err := Accessor(pod)
	require.NoError(t, err)
	assert.Equal(t, "web-0", accessor.GetName())
	assert.Equal(t, "default", accessor.GetNamespace())
	assert.Equal(t, "7", accessor.GetResourceVersion())

	_, err = Accessor("not an object")
	require.Error(t, err)
}

func TestListAccessor(t *testing.T) {
	list := &PodList{}
	list.ResourceVersion = "10"
	list.Continue = "token-1"

	m, err := ListAccessor(list)
	require.NoError(t, err)
	assert.Equal(t, "10", m.GetResourceVersion())
	assert.Equal(t, "token-1", m.GetContinue())
}

func TestExtractList(t *testing.T) {
	list := &PodList{Items: []Pod{
		{ObjectMeta: ObjectMeta{Name: "a"}},
		{ObjectMeta: ObjectMeta{Name: "b"}},
	}}

	items, err := ExtractList(list)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "a", items[0].(*Pod).Name)
	assert.Equal(t, "b", items[1].(*Pod).Name)
}

func TestEachListItemOrder(t *testing.T) {
	list := &PodList{Items: []Pod{
		{ObjectMeta: ObjectMeta{Name: "a"}},
		{ObjectMeta: ObjectMeta{Name: "b"}},
		{ObjectMeta: ObjectMeta{Name: "c"}},
	}}

	var seen []string
	err := EachListItem(list, func(obj runtime.Object) error {
		seen = append(seen, obj.(*Pod).Name)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, seen)
}

func TestFactoryNewObject(t *testing.T) {
	cases := map[string]runtime.Object{
		"Pod":           &Pod{},
		"PodList":       &PodList{},
		"Namespace":     &Namespace{},
		"NamespaceList": &NamespaceList{},
		"Node":          &Node{},
		"ConfigMap":     &ConfigMap{},
		"Status":        &Status{},
	}
	for kind, want := range cases {
		got := FactoryNewObject(kind)
		assert.IsType(t, want, got, kind)
	}

	assert.IsType(t, &Unknown{}, FactoryNewObject("Mystery"))
}

func TestRawExtensionRoundTrip(t *testing.T) {
	raw := []byte(`{"kind":"Pod","metadata":{"name":"a"}}`)
	var ext RawExtension
	require.NoError(t, ext.UnmarshalJSON(raw))
	assert.JSONEq(t, string(raw), string(ext.Raw))

	out, err := ext.MarshalJSON()
	require.NoError(t, err)
	assert.JSONEq(t, string(raw), string(out))
}
