package runtime

import (
	"io"

	"github.com/nanokube/kubeclient/pkg/runtime/schema"
)

// Object interface must be supported by all API types. Since objects are expected
// to be serialized to the wire, the interface an Object must provide allows
// serializers to set the kind, version, and group the object is represented as.
type Object interface {
	GetObjectKind() schema.ObjectKind
	DeepCopyObject() Object
}

// ObjectCreater constructs an empty Object for the named kind, returning nil
// when the kind is unknown. It is how the streaming decoder materializes typed
// values without a full type registry.
type ObjectCreater func(kind string) Object

// Encoder writes objects to a serialized form
type Encoder interface {
	// Encode writes an object to a stream. Implementations may return errors if the versions are
	// incompatible, or if no conversion is defined.
	Encode(obj Object, w io.Writer) error
	// Identifier returns an identifier of the encoder.
	// Identifiers of two different encoders should be equal if and only if for every input
	// object it will be encoded to the same representation by both of them.
	Identifier() Identifier
}

// Decoder attempts to load an object from data.
type Decoder interface {
	// Decode attempts to deserialize the provided data using either the innate typing of the
	// serializer or the default kind, group, and version provided. It returns a decoded object as
	// well as the kind, group, and version from the serialized data, or an error. If into is
	// non-nil, it will be used as the target type and implementations may choose to use it rather
	// than reallocating an object.
	Decode(data []byte, defaults *schema.GroupVersionKind, into Object) (Object, *schema.GroupVersionKind, error)
}

// Serializer is the core interface for transforming objects into a serialized format and back.
type Serializer interface {
	Encoder
	Decoder
}

// Identifier represents an identifier.
// Identifier of two different objects should be equal if and only if for every
// input the output they produce is exactly the same.
type Identifier string

// Framer is a factory for creating readers and writers that obey a particular framing pattern.
type Framer interface {
	NewFrameReader(r io.ReadCloser) io.ReadCloser
	NewFrameWriter(w io.Writer) io.Writer
}

// SerializerInfo contains information about a specific serialization format
type SerializerInfo struct {
	// MediaType is the value that represents this serializer over the wire.
	MediaType string
	// EncodesAsText indicates this serializer can be encoded to UTF-8 safely.
	EncodesAsText bool
	// Serializer is the individual object serializer for this media type.
	Serializer Serializer
	// StreamSerializer, if set, describes the streaming serialization format
	// for this media type.
	StreamSerializer *StreamSerializerInfo
}

// StreamSerializerInfo contains information about a specific stream serialization format
type StreamSerializerInfo struct {
	// EncodesAsText indicates this serializer can be encoded to UTF-8 safely.
	EncodesAsText bool
	// Serializer is the top level object serializer for this type when streaming
	Serializer
	// Framer is the factory for retrieving streams that separate objects on the wire
	Framer
}

// NegotiatedSerializer is an interface used for obtaining encoders, decoders, and serializers
// for multiple supported media types.
type NegotiatedSerializer interface {
	// SupportedMediaTypes is the media types supported for reading and writing single objects.
	SupportedMediaTypes() []SerializerInfo
}

// ClientNegotiator handles turning of the content type into the right encoders and
// decoders for a client consuming an API.
type ClientNegotiator interface {
	// Encoder returns the appropriate encoder for the provided contentType, or an error.
	Encoder(contentType string) (Encoder, error)
	// Decoder returns the appropriate decoder for the provided contentType, or an error.
	Decoder(contentType string) (Decoder, error)
	// StreamDecoder returns the decoder for framed content of the provided contentType: the
	// decoder for embedded objects, the serializer for individual frames, and the framer that
	// splits the stream into frames.
	StreamDecoder(contentType string) (Decoder, Serializer, Framer, error)
}
