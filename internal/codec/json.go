package codec

import (
	"errors"
	"fmt"
	"reflect"
	"unicode/utf8"

	jsoniter "github.com/json-iterator/go"
)

// JSONAPI is shared by every JSON encode/decode in the module so keys are
// sorted and output matches encoding/json byte for byte.
var JSONAPI = jsoniter.ConfigCompatibleWithStandardLibrary

// ErrInvalidUTF8 is returned by the JSON codec for strings it would otherwise
// rewrite with U+FFFD, which would not load back as the same key or value.
var ErrInvalidUTF8 = errors.New("string is not valid UTF-8")

type jsonCodec struct{}

func (jsonCodec) Name() string { return JSON }
func (jsonCodec) Ext() string  { return ".json" }

func (jsonCodec) Encode(v any) ([]byte, error) {
	if err := checkUTF8(reflect.ValueOf(v), map[uintptr]bool{}); err != nil {
		return nil, err
	}
	return JSONAPI.Marshal(v)
}

func (jsonCodec) Decode(data []byte, v any) error {
	return JSONAPI.Unmarshal(data, v)
}

// checkUTF8 walks every string JSON would emit. seen guards pointer cycles.
func checkUTF8(v reflect.Value, seen map[uintptr]bool) error {
	switch v.Kind() {
	case reflect.String:
		if !utf8.ValidString(v.String()) {
			return fmt.Errorf("%w: %q", ErrInvalidUTF8, v.String())
		}
	case reflect.Pointer:
		if v.IsNil() || seen[v.Pointer()] {
			return nil
		}
		seen[v.Pointer()] = true
		return checkUTF8(v.Elem(), seen)
	case reflect.Interface:
		if !v.IsNil() {
			return checkUTF8(v.Elem(), seen)
		}
	case reflect.Map:
		iter := v.MapRange()
		for iter.Next() {
			if err := checkUTF8(iter.Key(), seen); err != nil {
				return err
			}
			if err := checkUTF8(iter.Value(), seen); err != nil {
				return err
			}
		}
	case reflect.Slice:
		// []byte is emitted as base64.
		if v.Type().Elem().Kind() == reflect.Uint8 {
			return nil
		}
		fallthrough
	case reflect.Array:
		for i := 0; i < v.Len(); i++ {
			if err := checkUTF8(v.Index(i), seen); err != nil {
				return err
			}
		}
	case reflect.Struct:
		t := v.Type()
		for i := 0; i < v.NumField(); i++ {
			if !t.Field(i).IsExported() {
				continue
			}
			if err := checkUTF8(v.Field(i), seen); err != nil {
				return err
			}
		}
	}
	return nil
}
