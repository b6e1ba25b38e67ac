package binary

import "reflect"

// Atom identifies a primitive numeric (or byte) type at the wire level, the
// Go analogue of the spec's atom_type<T> map. Substrate implementations use
// it to pick a native reduction/transport type instead of falling back to
// an opaque byte stream.
type Atom int

const (
	AtomUnknown Atom = iota
	AtomByte
	AtomInt8
	AtomInt16
	AtomInt32
	AtomInt64
	AtomUint8
	AtomUint16
	AtomUint32
	AtomUint64
	AtomFloat32
	AtomFloat64
	AtomBool
	AtomComplex64
	AtomComplex128
)

// ReduceOp names a reduction functor the spec maps to a substrate
// reduction-operator identifier (plus, multiplies, logical/bitwise
// and/or/xor).
type ReduceOp int

const (
	OpPlus ReduceOp = iota
	OpMultiplies
	OpLogicalAnd
	OpLogicalOr
	OpLogicalXor
	OpBitAnd
	OpBitOr
	OpBitXor
)

var bufferType = reflect.TypeOf(Buffer{})
var viewType = reflect.TypeOf(View{})
var readViewType = reflect.TypeOf(ReadView{})

// serializableOverride lets callers extend the open trait set declaratively
// (spec §4.2, §9 "Serialization trait as open set"). Keyed by
// reflect.Type, true means "needs serialization", false means "does not".
// Built-in false cases (string, binary.Buffer/View/ReadView, fixed-width
// slices) can never be overridden to true by a caller; RegisterSerializable
// only adds new false/true entries for types the built-in rules don't
// already decide.
var serializableOverride = map[reflect.Type]bool{}

// RegisterSerializable extends the needs-serialization trait for type T.
func RegisterSerializable[T any](needsSerialization bool) {
	var zero T
	serializableOverride[reflect.TypeOf(zero)] = needsSerialization
}

// NeedsSerialization reports whether T must be encoded before it can be
// transmitted as bytes, or whether its in-memory representation can be
// used directly (string, any contiguous sequence of a fixed-width element
// type, and Buffer/View/ReadView themselves are the built-in false cases).
func NeedsSerialization[T any]() bool {
	var zero T
	return needsSerializationOf(reflect.TypeOf(zero))
}

func needsSerializationOf(t reflect.Type) bool {
	if t == nil {
		// An interface-typed zero value carries no static type; treat
		// conservatively as "needs serialization".
		return true
	}
	if t.Kind() == reflect.String {
		return false
	}
	if t == bufferType || t == viewType || t == readViewType {
		return false
	}
	if t.Kind() == reflect.Slice || t.Kind() == reflect.Array {
		if isFixedWidthKind(t.Elem().Kind()) {
			return false
		}
	}
	if needs, ok := serializableOverride[t]; ok {
		return needs
	}
	return true
}

func isFixedWidthKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64, reflect.Int,
		reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uint,
		reflect.Float32, reflect.Float64,
		reflect.Bool,
		reflect.Complex64, reflect.Complex128:
		return true
	default:
		return false
	}
}

// atomOverride lets callers register an atom mapping for a type the
// built-in table doesn't cover.
var atomOverride = map[reflect.Type]Atom{}

// RegisterAtom extends the atom_type map for type T.
func RegisterAtom[T any](atom Atom) {
	var zero T
	atomOverride[reflect.TypeOf(zero)] = atom
}

// AtomOf returns the substrate atomic identifier for T, or (AtomUnknown,
// false) if T has no mapping.
func AtomOf[T any]() (Atom, bool) {
	var zero T
	t := reflect.TypeOf(zero)
	if t == nil {
		return AtomUnknown, false
	}
	if a, ok := builtinAtoms[t]; ok {
		return a, true
	}
	if a, ok := atomOverride[t]; ok {
		return a, true
	}
	return AtomUnknown, false
}

var builtinAtoms = map[reflect.Type]Atom{
	reflect.TypeOf(byte(0)):       AtomByte,
	reflect.TypeOf(int8(0)):       AtomInt8,
	reflect.TypeOf(int16(0)):      AtomInt16,
	reflect.TypeOf(int32(0)):      AtomInt32,
	reflect.TypeOf(int64(0)):      AtomInt64,
	reflect.TypeOf(int(0)):        AtomInt64,
	reflect.TypeOf(uint16(0)):     AtomUint16,
	reflect.TypeOf(uint32(0)):     AtomUint32,
	reflect.TypeOf(uint64(0)):     AtomUint64,
	reflect.TypeOf(uint(0)):       AtomUint64,
	reflect.TypeOf(float32(0)):    AtomFloat32,
	reflect.TypeOf(float64(0)):    AtomFloat64,
	reflect.TypeOf(false):         AtomBool,
	reflect.TypeOf(complex64(0)):  AtomComplex64,
	reflect.TypeOf(complex128(0)): AtomComplex128,
}

// ReduceOpAtom maps a ReduceOp to whether it has a native substrate
// mapping. All eight ops defined here report true. A substrate that cannot
// reduce a given (atom, op) pair natively returns
// substrate.ErrUnsupportedReduce from its Reduce, which makes the
// collective layer fall back to gather-then-fold.
func ReduceOpAtom(op ReduceOp) (ReduceOp, bool) {
	switch op {
	case OpPlus, OpMultiplies, OpLogicalAnd, OpLogicalOr, OpLogicalXor, OpBitAnd, OpBitOr, OpBitXor:
		return op, true
	default:
		return op, false
	}
}
