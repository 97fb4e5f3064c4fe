package runtime

import "bytes"

// Encode serializes obj with e and returns the resulting bytes.
func Encode(e Encoder, obj Object) ([]byte, error) {
	buf := &bytes.Buffer{}
	if err := e.Encode(obj, buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Decode deserializes data with d. When obj is nil the decoder allocates a
// destination based on the kind found in the data.
func Decode(d Decoder, data []byte, obj Object) (Object, error) {
	obj, _, err := d.Decode(data, nil, obj)
	return obj, err
}

// SerializerInfoForMediaType picks the serializer matching mediaType, falling
// back to the entry with an empty media type when nothing matches exactly.
// Media-type parameters must already be stripped by the caller.
func SerializerInfoForMediaType(types []SerializerInfo, mediaType string) (SerializerInfo, bool) {
	for _, info := range types {
		if info.MediaType == mediaType {
			return info, true
		}
	}
	for _, info := range types {
		if len(info.MediaType) == 0 {
			return info, true
		}
	}
	return SerializerInfo{}, false
}
