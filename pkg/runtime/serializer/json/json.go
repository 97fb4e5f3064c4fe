package json

import (
	"io"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"golang.org/x/xerrors"

	"github.com/nanokube/kubeclient/pkg/runtime"
	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

var iterator = jsoniter.ConfigCompatibleWithStandardLibrary

// Serializer handles the JSON wire format for API objects: single documents and
// the newline-delimited stream variant used by watch responses.
type Serializer struct {
	creater runtime.ObjectCreater
}

// NewSerializer creates a JSON serializer. The creater is consulted when no
// destination object is supplied to Decode; it may be nil if callers always
// decode into typed values.
func NewSerializer(creater runtime.ObjectCreater) *Serializer {
	return &Serializer{creater: creater}
}

var _ runtime.Serializer = (*Serializer)(nil)

// typeMeta is the subset of every envelope used for identity resolution.
type typeMeta struct {
	APIVersion string `json:"apiVersion,omitempty"`
	Kind       string `json:"kind,omitempty"`
}

// identityMeta is the subset of object metadata checked on single-object
// documents. Bookmark objects carry only a resourceVersion, so either field
// satisfies the check.
type identityMeta struct {
	Metadata struct {
		Name            string `json:"name,omitempty"`
		ResourceVersion string `json:"resourceVersion,omitempty"`
	} `json:"metadata,omitempty"`
}

// requiresIdentity reports whether a document claiming the given kind must
// carry object metadata. Status carries no metadata, list envelopes carry
// list metadata instead, and kindless documents (watch event frames, typed
// destinations relying on defaults) are the destination's concern.
func requiresIdentity(kind string) bool {
	return len(kind) != 0 && kind != "Status" && !strings.HasSuffix(kind, "List")
}

// Decode deserializes data into into, if provided, or into a freshly created
// object of the kind named by the document. The kind and apiVersion of the
// document win over the defaults; defaults fill in whatever the document
// omits. A document that is not a JSON object, whose present fields do not
// match the destination types, or that names a single-object kind without any
// identifying metadata, is a decode error.
func (s *Serializer) Decode(data []byte, defaults *schema.GroupVersionKind, into runtime.Object) (runtime.Object, *schema.GroupVersionKind, error) {
	var tm typeMeta
	if err := iterator.Unmarshal(data, &tm); err != nil {
		return nil, nil, xerrors.Errorf("unable to read type identity: %w", err)
	}

	if requiresIdentity(tm.Kind) {
		var im identityMeta
		if err := iterator.Unmarshal(data, &im); err != nil {
			return nil, nil, xerrors.Errorf("unable to read object metadata: %w", err)
		}
		if len(im.Metadata.Name) == 0 && len(im.Metadata.ResourceVersion) == 0 {
			return nil, nil, xerrors.Errorf("%q document has no metadata.name or metadata.resourceVersion", tm.Kind)
		}
	}

	actual := &schema.GroupVersionKind{Kind: tm.Kind}
	if gv, ok := schema.ParseGroupVersion(tm.APIVersion); ok {
		actual.Group, actual.Version = gv.Group, gv.Version
	}
	if defaults != nil {
		if len(actual.Kind) == 0 {
			actual.Kind = defaults.Kind
		}
		if len(actual.Version) == 0 {
			actual.Group, actual.Version = defaults.Group, defaults.Version
		}
	}

	obj := into
	if obj == nil {
		if s.creater == nil {
			return nil, actual, xerrors.Errorf("no destination object and no object creater for kind %q", actual.Kind)
		}
		if len(actual.Kind) == 0 {
			return nil, actual, xerrors.Errorf("document has no kind and no destination object was provided")
		}
		obj = s.creater(actual.Kind)
		if obj == nil {
			return nil, actual, xerrors.Errorf("no registered type for kind %q", actual.Kind)
		}
	}

	if err := iterator.Unmarshal(data, obj); err != nil {
		return nil, actual, xerrors.Errorf("unable to decode %q: %w", actual.Kind, err)
	}
	obj.GetObjectKind().SetGroupVersionKind(*actual)
	return obj, actual, nil
}

// Encode serializes obj to w as a single JSON document followed by a newline,
// which makes encoded objects self-delimiting on a stream.
func (s *Serializer) Encode(obj runtime.Object, w io.Writer) error {
	encoder := iterator.NewEncoder(w)
	return encoder.Encode(obj)
}

// Identifier implements runtime.Encoder.
func (s *Serializer) Identifier() runtime.Identifier {
	return runtime.Identifier("json")
}

type basicNegotiatedSerializer struct {
	info runtime.SerializerInfo
}

// NewBasicNegotiatedSerializer exposes the JSON serializer as the only
// supported media type, with newline framing for streams.
func NewBasicNegotiatedSerializer(creater runtime.ObjectCreater) runtime.NegotiatedSerializer {
	s := NewSerializer(creater)
	return &basicNegotiatedSerializer{
		info: runtime.SerializerInfo{
			MediaType:     runtime.ContentTypeJSON,
			EncodesAsText: true,
			Serializer:    s,
			StreamSerializer: &runtime.StreamSerializerInfo{
				EncodesAsText: true,
				Serializer:    s,
				Framer:        runtime.JSONFramer,
			},
		},
	}
}

func (n *basicNegotiatedSerializer) SupportedMediaTypes() []runtime.SerializerInfo {
	return []runtime.SerializerInfo{n.info}
}
