package streaming

import (
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nanokube/kubeclient/pkg/api/meta"
	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/serializer/json"
)

func newFrameReader(s string) io.ReadCloser {
	return runtime.JSONFramer.NewFrameReader(io.NopCloser(strings.NewReader(s)))
}

func TestDecoderReadsFramesInOrder(t *testing.T) {
	stream := `{"apiVersion":"v1","kind":"Pod","metadata":{"name":"a","resourceVersion":"1"}}
{"apiVersion":"v1","kind":"Pod","metadata":{"name":"b","resourceVersion":"2"}}
`
	d := NewDecoder(newFrameReader(stream), json.NewSerializer(meta.FactoryNewObject))
	defer func() { _ = d.Close() }()

	for i, want := range []string{"a", "b"} {
		obj, _, err := d.Decode(nil, nil)
		require.NoError(t, err, "frame %d", i)
		pod, ok := obj.(*meta.Pod)
		require.True(t, ok)
		assert.Equal(t, want, pod.Name)
	}

	_, _, err := d.Decode(nil, nil)
	assert.Equal(t, io.EOF, err)
}

func TestDecoderGrowsBufferForLargeFrames(t *testing.T) {
	// larger than the decoder's initial 1024 byte buffer
	big := strings.Repeat("x", 4096)
	stream := `{"apiVersion":"v1","kind":"Pod","metadata":{"name":"big","annotations":{"payload":"` + big + `"}}}` + "\n"

	d := NewDecoder(newFrameReader(stream), json.NewSerializer(meta.FactoryNewObject))
	defer func() { _ = d.Close() }()

	obj, _, err := d.Decode(nil, nil)
	require.NoError(t, err)
	pod := obj.(*meta.Pod)
	assert.Equal(t, "big", pod.Name)
	assert.Equal(t, big, pod.Annotations["payload"])
}

func TestDecoderMalformedFrame(t *testing.T) {
	d := NewDecoder(newFrameReader("{not json}\n"), json.NewSerializer(meta.FactoryNewObject))
	defer func() { _ = d.Close() }()

	_, _, err := d.Decode(nil, nil)
	require.Error(t, err)
}
