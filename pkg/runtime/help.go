package runtime

import (
	"reflect"

	"golang.org/x/xerrors"
)

// GetItemsPtr returns a pointer to the Items slice of a list object. Anything
// without an addressable Items slice is rejected as not being a list.
func GetItemsPtr(list Object) (interface{}, error) {
	obj, err := getItemsPtr(list)
	if err != nil {
		return nil, xerrors.Errorf("%T is not a list: %v", list, err)
	}
	return obj, nil
}

func getItemsPtr(list Object) (interface{}, error) {
	v, err := EnforcePtr(list)
	if err != nil {
		return nil, err
	}

	items := v.FieldByName("Items")
	if !items.IsValid() {
		return nil, xerrors.New("no Items field in list object")
	}
	switch items.Kind() {
	case reflect.Interface, reflect.Pointer:
		target := reflect.TypeOf(items.Interface()).Elem()
		if target.Kind() != reflect.Slice {
			return nil, xerrors.New("items field is not a slice")
		}
		return items.Interface(), nil
	case reflect.Slice:
		return items.Addr().Interface(), nil
	default:
		return nil, xerrors.New("items field is not a slice")
	}
}

// EnforcePtr dereferences obj, which must be a non-nil pointer, and returns
// the settable value it points at.
func EnforcePtr(obj interface{}) (reflect.Value, error) {
	v := reflect.ValueOf(obj)
	if v.Kind() != reflect.Pointer {
		if v.Kind() == reflect.Invalid {
			return reflect.Value{}, xerrors.Errorf("expected pointer, but got invalid kind")
		}
		return reflect.Value{}, xerrors.Errorf("expected pointer, but got %v type", v.Type())
	}
	if v.IsNil() {
		return reflect.Value{}, xerrors.Errorf("expected pointer, but got nil")
	}
	return v.Elem(), nil
}
