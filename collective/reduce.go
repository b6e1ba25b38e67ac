package collective

import (
	"errors"
	"fmt"
	"reflect"
	"unsafe"

	"github.com/behrlich/pzgo/binary"
	"github.com/behrlich/pzgo/commpp"
	"github.com/behrlich/pzgo/substrate"
)

// Reduce combines one T value per rank with op, elementwise when T is a
// slice of a reducible atom type (spec §4.5, §8 Laws: reduce is
// left-to-right over ascending rank for the non-commutative ops). It tries
// the substrate's native reduction first and falls back to gathering every
// rank's value and folding locally when the substrate reports
// substrate.ErrUnsupportedReduce or T has no atom mapping at all.
func Reduce[T any](c commpp.Comm, x T, op binary.ReduceOp, root ...int) (Gathered[T], error) {
	atom, count, ok := elementAtom[T](x)
	if ok {
		out, err := c.Reduce(atom, op, count, rawBytesOf(x), root...)
		if err == nil {
			if out == nil {
				return absent[T](), nil
			}
			v, derr := decodeLike(x, out)
			if derr != nil {
				return Gathered[T]{}, derr
			}
			return present(v), nil
		}
		if !errors.Is(err, substrate.ErrUnsupportedReduce) {
			return Gathered[T]{}, err
		}
		// Native path declined (unsupported op/atom on this substrate): fall
		// through to gather-then-fold below.
	}
	return reduceByGather(c, x, op, root...)
}

// elementAtom reports the atom and element count for T: a scalar T has
// count 1, a slice T has count len(x) and the atom of its element type.
func elementAtom[T any](x T) (binary.Atom, int, bool) {
	v := reflect.ValueOf(x)
	if v.Kind() == reflect.Slice {
		if v.Len() == 0 {
			return binary.AtomUnknown, 0, false
		}
		elem := reflect.New(v.Type().Elem()).Elem().Interface()
		atom, ok := atomOfValue(elem)
		return atom, v.Len(), ok
	}
	atom, ok := atomOfValue(x)
	return atom, 1, ok
}

func atomOfValue(x any) (binary.Atom, bool) {
	switch x.(type) {
	case byte:
		return binary.AtomByte, true
	case int8:
		return binary.AtomInt8, true
	case int16:
		return binary.AtomInt16, true
	case int32:
		return binary.AtomInt32, true
	case int64:
		return binary.AtomInt64, true
	case int:
		return binary.AtomInt64, true
	case uint16:
		return binary.AtomUint16, true
	case uint32:
		return binary.AtomUint32, true
	case uint64:
		return binary.AtomUint64, true
	case uint:
		return binary.AtomUint64, true
	case float32:
		return binary.AtomFloat32, true
	case float64:
		return binary.AtomFloat64, true
	case bool:
		return binary.AtomBool, true
	default:
		return binary.AtomUnknown, false
	}
}

// rawBytesOf reinterprets x's storage directly rather than going through
// binary.MakeBuffer: elementAtom already established x is a scalar numeric
// or a slice of one, both always fixed-width, and Reduce needs the native
// in-memory layout regardless of MakeBuffer's general needs-serialization
// decision (a bare numeric scalar isn't one of MakeBuffer's raw-path
// kinds, but it is always safe to reinterpret here).
func rawBytesOf[T any](x T) []byte {
	v := reflect.ValueOf(x)
	if v.Kind() == reflect.Slice {
		n := v.Len()
		if n == 0 {
			return nil
		}
		elemSize := int(v.Type().Elem().Size())
		out := make([]byte, n*elemSize)
		copy(out, unsafe.Slice((*byte)(unsafe.Pointer(v.Pointer())), n*elemSize))
		return out
	}
	size := int(v.Type().Size())
	addr := reflect.New(v.Type())
	addr.Elem().Set(v)
	out := make([]byte, size)
	copy(out, unsafe.Slice((*byte)(unsafe.Pointer(addr.Pointer())), size))
	return out
}

// decodeLike is rawBytesOf's inverse, keyed off T's own shape rather than
// MakeBuffer's trait decision, for the same reason.
func decodeLike[T any](_ T, data []byte) (T, error) {
	var zero T
	t := reflect.TypeOf(zero)
	if t.Kind() == reflect.Slice {
		elemSize := int(t.Elem().Size())
		if elemSize == 0 || len(data)%elemSize != 0 {
			return zero, fmt.Errorf("collective: reduce result size %d is not a multiple of element size %d", len(data), elemSize)
		}
		n := len(data) / elemSize
		sliceVal := reflect.MakeSlice(t, n, n)
		if n > 0 {
			copy(unsafe.Slice((*byte)(unsafe.Pointer(sliceVal.Pointer())), n*elemSize), data)
		}
		return sliceVal.Interface().(T), nil
	}
	size := int(t.Size())
	if len(data) < size {
		return zero, fmt.Errorf("collective: reduce result has %d bytes, want %d", len(data), size)
	}
	addr := reflect.New(t)
	copy(unsafe.Slice((*byte)(unsafe.Pointer(addr.Pointer())), size), data[:size])
	return addr.Elem().Interface().(T), nil
}

// reduceByGather is the substrate-agnostic fallback: gather every rank's
// raw value, then fold locally in ascending rank order. Used whenever the
// substrate has no native reduction for this atom/op pair, and as the only
// path for types with no atom mapping at all (spec §4.5's "reduce of a
// non-atomic, needs-serialization type" case, which has no native wire
// representation to reduce in place).
func reduceByGather[T any](c commpp.Comm, x T, op binary.ReduceOp, root ...int) (Gathered[T], error) {
	gathered, err := gatherSeq(c, x, root, false)
	if err != nil {
		return Gathered[T]{}, fmt.Errorf("collective: reduce fallback gather: %w", err)
	}
	if !gathered.Present {
		return absent[T](), nil
	}
	vals := gathered.Value
	if len(vals) == 0 {
		return absent[T](), nil
	}
	folded, err := foldValues(vals, op)
	if err != nil {
		return Gathered[T]{}, err
	}
	return present(folded), nil
}

// foldValues folds a same-typed sequence with op when T is itself
// reducible (numeric scalar or slice of one); any other T has no generic
// fold rule and is rejected outright rather than silently picking the
// first value.
func foldValues[T any](vals []T, op binary.ReduceOp) (T, error) {
	acc := vals[0]
	for _, v := range vals[1:] {
		combined, err := combineGeneric(acc, v, op)
		if err != nil {
			var zero T
			return zero, err
		}
		acc = combined.(T)
	}
	return acc, nil
}

func combineGeneric(a, b any, op binary.ReduceOp) (any, error) {
	av, bv := reflect.ValueOf(a), reflect.ValueOf(b)
	if av.Kind() == reflect.Slice {
		if av.Len() != bv.Len() {
			return nil, fmt.Errorf("collective: reduce fallback requires equal-length contributions, got %d and %d", av.Len(), bv.Len())
		}
		out := reflect.MakeSlice(av.Type(), av.Len(), av.Len())
		for i := 0; i < av.Len(); i++ {
			c, err := combineScalarGeneric(av.Index(i).Interface(), bv.Index(i).Interface(), op)
			if err != nil {
				return nil, err
			}
			out.Index(i).Set(reflect.ValueOf(c).Convert(av.Type().Elem()))
		}
		return out.Interface(), nil
	}
	return combineScalarGeneric(a, b, op)
}

func combineScalarGeneric(a, b any, op binary.ReduceOp) (any, error) {
	af, aok := toFloat64(a)
	bf, bok := toFloat64(b)
	if !aok || !bok {
		return nil, fmt.Errorf("collective: reduce fallback has no fold rule for %T", a)
	}
	var out float64
	switch op {
	case binary.OpPlus:
		out = af + bf
	case binary.OpMultiplies:
		out = af * bf
	case binary.OpLogicalAnd:
		out = boolF(af != 0 && bf != 0)
	case binary.OpLogicalOr:
		out = boolF(af != 0 || bf != 0)
	case binary.OpLogicalXor:
		out = boolF((af != 0) != (bf != 0))
	case binary.OpBitAnd:
		out = float64(int64(af) & int64(bf))
	case binary.OpBitOr:
		out = float64(int64(af) | int64(bf))
	case binary.OpBitXor:
		out = float64(int64(af) ^ int64(bf))
	default:
		return nil, fmt.Errorf("collective: unsupported reduce op %d", op)
	}
	return fromFloat64(a, out), nil
}

func boolF(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func toFloat64(x any) (float64, bool) {
	switch v := x.(type) {
	case byte:
		return float64(v), true
	case int8:
		return float64(v), true
	case int16:
		return float64(v), true
	case int32:
		return float64(v), true
	case int64:
		return float64(v), true
	case int:
		return float64(v), true
	case uint16:
		return float64(v), true
	case uint32:
		return float64(v), true
	case uint64:
		return float64(v), true
	case uint:
		return float64(v), true
	case float32:
		return float64(v), true
	case float64:
		return v, true
	case bool:
		return boolF(v), true
	default:
		return 0, false
	}
}

func fromFloat64(like any, f float64) any {
	switch like.(type) {
	case byte:
		return byte(f)
	case int8:
		return int8(f)
	case int16:
		return int16(f)
	case int32:
		return int32(f)
	case int64:
		return int64(f)
	case int:
		return int(f)
	case uint16:
		return uint16(f)
	case uint32:
		return uint32(f)
	case uint64:
		return uint64(f)
	case uint:
		return uint(f)
	case float32:
		return float32(f)
	case float64:
		return f
	case bool:
		return f != 0
	default:
		return f
	}
}
