package json

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

func TestDecodeInto(t *testing.T) {
	s := NewSerializer(meta.FactoryNewObject)

	data := []byte(`{"apiVersion":"v1","kind":"Pod","metadata":{"name":"web-0","namespace":"default","resourceVersion":"42"}}`)
	pod := &meta.Pod{}
	obj, gvk, err := s.Decode(data, nil, pod)
	require.NoError(t, err)
	require.Same(t, pod, obj.(*meta.Pod))
	assert.Equal(t, "Pod", gvk.Kind)
	assert.Equal(t, "v1", gvk.Version)
	assert.Equal(t, "web-0", pod.Name)
	assert.Equal(t, "default", pod.Namespace)
	assert.Equal(t, "42", pod.ResourceVersion)
}

func TestDecodeWithCreater(t *testing.T) {
	s := NewSerializer(meta.FactoryNewObject)

	data := []byte(`{"apiVersion":"v1","kind":"Namespace","metadata":{"name":"prod"}}`)
	obj, _, err := s.Decode(data, nil, nil)
	require.NoError(t, err)
	ns, ok := obj.(*meta.Namespace)
	require.True(t, ok, "expected *meta.Namespace, got %T", obj)
	assert.Equal(t, "prod", ns.Name)
}

func TestDecodeDefaultsFillOmittedIdentity(t *testing.T) {
	s := NewSerializer(meta.FactoryNewObject)

	data := []byte(`{"metadata":{"name":"web-0"}}`)
	pod := &meta.Pod{}
	_, gvk, err := s.Decode(data, &schema.GroupVersionKind{Version: "v1", Kind: "Pod"}, pod)
	require.NoError(t, err)
	assert.Equal(t, "Pod", gvk.Kind)
	assert.Equal(t, "v1", gvk.Version)
}

func TestDecodeMalformed(t *testing.T) {
	s := NewSerializer(meta.FactoryNewObject)

	_, _, err := s.Decode([]byte(`{"apiVersion":"v1","kind":`), nil, &meta.Pod{})
	require.Error(t, err)
}

func TestDecodeRequiresObjectIdentity(t *testing.T) {
	s := NewSerializer(meta.FactoryNewObject)

	// A single-object document with no metadata at all is rejected.
	_, _, err := s.Decode([]byte(`{"kind":"Pod","apiVersion":"v1"}`), nil, &meta.Pod{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "metadata")

	// So is one whose metadata names neither the object nor a version.
	_, _, err = s.Decode([]byte(`{"kind":"Pod","apiVersion":"v1","metadata":{"namespace":"default"}}`), nil, &meta.Pod{})
	require.Error(t, err)

	// Bookmark objects carry only a resourceVersion.
	pod := &meta.Pod{}
	_, _, err = s.Decode([]byte(`{"kind":"Pod","apiVersion":"v1","metadata":{"resourceVersion":"12"}}`), nil, pod)
	require.NoError(t, err)
	assert.Equal(t, "12", pod.ResourceVersion)

	// Status and list envelopes have no object metadata to require.
	_, _, err = s.Decode([]byte(`{"kind":"Status","apiVersion":"v1","status":"Failure","code":404}`), nil, &meta.Status{})
	require.NoError(t, err)
	_, _, err = s.Decode([]byte(`{"kind":"PodList","apiVersion":"v1","items":[]}`), nil, &meta.PodList{})
	require.NoError(t, err)
}

func TestDecodeListEnvelope(t *testing.T) {
	s := NewSerializer(meta.FactoryNewObject)

	data := []byte(`{"apiVersion":"v1","kind":"PodList","metadata":{"resourceVersion":"10"},"items":[{"metadata":{"name":"a"}},{"metadata":{"name":"b"}}]}`)
	list := &meta.PodList{}
	_, _, err := s.Decode(data, nil, list)
	require.NoError(t, err)
	assert.Equal(t, "10", list.ResourceVersion)
	assert.Empty(t, list.Continue)
	require.Len(t, list.Items, 2)
	assert.Equal(t, "a", list.Items[0].Name)
	assert.Equal(t, "b", list.Items[1].Name)
}

func TestEncodeIsNewlineDelimited(t *testing.T) {
	s := NewSerializer(meta.FactoryNewObject)

	var buf bytes.Buffer
	pod := &meta.Pod{}
	pod.Kind = "Pod"
	pod.APIVersion = "v1"
	pod.Name = "web-0"
	require.NoError(t, s.Encode(pod, &buf))
	require.NoError(t, s.Encode(pod, &buf))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 2)
	for _, line := range lines {
		assert.True(t, strings.HasPrefix(line, `{`))
	}
}
