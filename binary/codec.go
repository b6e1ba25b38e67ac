package binary

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"reflect"
	"unsafe"
)

// MakeBuffer builds a Buffer holding the byte image of x, following the
// decision tree in spec §4.1: if NeedsSerialization[T] is false, the bytes
// are a direct reinterpretation of x's storage (copied into the buffer);
// otherwise x is encoded with the binary codec.
func MakeBuffer[T any](x T) (Buffer, error) {
	if NeedsSerialization[T]() {
		data, err := encode(x)
		if err != nil {
			return Buffer{}, fmt.Errorf("binary: serialize: %w", err)
		}
		return NewBuffer(data), nil
	}
	data, err := rawBytes(x)
	if err != nil {
		return Buffer{}, err
	}
	return FromBytes(data), nil
}

// FromBuffer is the inverse of MakeBuffer: it reconstructs a T from the
// buffer's bytes, running the codec's decoder when T needs serialization
// and reinterpreting raw bytes otherwise.
func FromBuffer[T any](b Buffer) (T, error) {
	var zero T
	if NeedsSerialization[T]() {
		out := zero
		if err := decode(b.Data(), &out); err != nil {
			return zero, fmt.Errorf("binary: deserialize: %w", err)
		}
		return out, nil
	}
	return fromRawBytes[T](b.Data())
}

func encode(x any) ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(x); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func decode(data []byte, out any) error {
	if len(data) == 0 {
		return nil
	}
	return gob.NewDecoder(bytes.NewReader(data)).Decode(out)
}

func rawBytes(x any) ([]byte, error) {
	v := reflect.ValueOf(x)
	switch v.Kind() {
	case reflect.String:
		return []byte(v.String()), nil
	case reflect.Slice:
		n := v.Len()
		if n == 0 {
			return nil, nil
		}
		elemSize := int(v.Type().Elem().Size())
		out := make([]byte, n*elemSize)
		src := unsafe.Slice((*byte)(unsafe.Pointer(v.Pointer())), n*elemSize)
		copy(out, src)
		return out, nil
	default:
		return nil, fmt.Errorf("binary: type %s is not string or a contiguous fixed-width slice", v.Type())
	}
}

func fromRawBytes[T any](data []byte) (T, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return zero, fmt.Errorf("binary: cannot reconstruct an untyped value")
	}
	switch t.Kind() {
	case reflect.String:
		out := any(string(data)).(T)
		return out, nil
	case reflect.Slice:
		elemType := t.Elem()
		elemSize := int(elemType.Size())
		if elemSize == 0 {
			return zero, fmt.Errorf("binary: zero-size element type %s", elemType)
		}
		if len(data)%elemSize != 0 {
			return zero, fmt.Errorf("binary: buffer size %d is not a multiple of element size %d", len(data), elemSize)
		}
		n := len(data) / elemSize
		sliceVal := reflect.MakeSlice(t, n, n)
		if n > 0 {
			dst := unsafe.Slice((*byte)(unsafe.Pointer(sliceVal.Pointer())), n*elemSize)
			copy(dst, data)
		}
		return sliceVal.Interface().(T), nil
	default:
		return zero, fmt.Errorf("binary: type %s is not string or a contiguous fixed-width slice", t)
	}
}

// ElementSize returns sizeof(element_of(T)) for a slice or array type T, or
// an error if T is neither. The element type is not checked for being
// fixed-width.
func ElementSize[T any]() (int, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil || (t.Kind() != reflect.Slice && t.Kind() != reflect.Array) {
		return 0, fmt.Errorf("binary: type %T has no element size", zero)
	}
	return int(t.Elem().Size()), nil
}
