package runtime

import (
	"mime"

	"golang.org/x/xerrors"
)

// NegotiateError is returned when a ClientNegotiator is unable to locate a
// serializer for the requested content type.
type NegotiateError struct {
	ContentType string
	Stream      bool
}

func (e NegotiateError) Error() string {
	if e.Stream {
		return "no stream serializers registered for " + e.ContentType
	}
	return "no serializers registered for " + e.ContentType
}

type clientNegotiator struct {
	serializer NegotiatedSerializer
}

// NewClientNegotiator returns a ClientNegotiator that picks serializers from
// the provided NegotiatedSerializer by media type.
func NewClientNegotiator(serializer NegotiatedSerializer) ClientNegotiator {
	return &clientNegotiator{serializer: serializer}
}

func (n *clientNegotiator) Encoder(contentType string) (Encoder, error) {
	info, err := n.info(contentType)
	if err != nil {
		return nil, err
	}
	return info.Serializer, nil
}

func (n *clientNegotiator) Decoder(contentType string) (Decoder, error) {
	info, err := n.info(contentType)
	if err != nil {
		return nil, err
	}
	return info.Serializer, nil
}

func (n *clientNegotiator) StreamDecoder(contentType string) (Decoder, Serializer, Framer, error) {
	info, err := n.info(contentType)
	if err != nil {
		return nil, nil, nil, err
	}
	if info.StreamSerializer == nil {
		return nil, nil, nil, NegotiateError{ContentType: info.MediaType, Stream: true}
	}
	return info.Serializer, info.StreamSerializer.Serializer, info.StreamSerializer.Framer, nil
}

func (n *clientNegotiator) info(contentType string) (SerializerInfo, error) {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return SerializerInfo{}, xerrors.Errorf("parse media type %q: %w", contentType, err)
	}
	info, ok := SerializerInfoForMediaType(n.serializer.SupportedMediaTypes(), mediaType)
	if !ok {
		return SerializerInfo{}, NegotiateError{ContentType: mediaType}
	}
	return info, nil
}
