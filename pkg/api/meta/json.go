package meta

import jsoniter "github.com/json-iterator/go"

var iterator = jsoniter.ConfigCompatibleWithStandardLibrary

func jsonUnmarshal(data []byte, v interface{}) error {
	return iterator.Unmarshal(data, v)
}

func jsonMarshal(v interface{}) ([]byte, error) {
	return iterator.Marshal(v)
}
