package localmpi

import (
	"encoding/binary"
	"fmt"
	"math"

	pzbinary "github.com/behrlich/pzgo/binary"
)

var order = binary.LittleEndian

func atomWidth(atom pzbinary.Atom) (int, error) {
	switch atom {
	case pzbinary.AtomByte, pzbinary.AtomInt8, pzbinary.AtomBool:
		return 1, nil
	case pzbinary.AtomInt16, pzbinary.AtomUint16:
		return 2, nil
	case pzbinary.AtomInt32, pzbinary.AtomUint32, pzbinary.AtomFloat32:
		return 4, nil
	case pzbinary.AtomInt64, pzbinary.AtomUint64, pzbinary.AtomFloat64, pzbinary.AtomComplex64:
		return 8, nil
	case pzbinary.AtomComplex128:
		return 16, nil
	default:
		return 0, fmt.Errorf("localmpi: unknown atom %d", atom)
	}
}

// decodeFloat64s converts a byte chunk of the given atom and count into a
// float64 slice for arithmetic combination. Only used internally for the
// numeric reduction fast path.
func decodeFloat64s(atom pzbinary.Atom, count int, data []byte) ([]float64, error) {
	width, err := atomWidth(atom)
	if err != nil {
		return nil, err
	}
	if len(data) < width*count {
		return nil, fmt.Errorf("localmpi: short buffer for %d elements of atom %d", count, atom)
	}
	out := make([]float64, count)
	for i := 0; i < count; i++ {
		chunk := data[i*width : (i+1)*width]
		switch atom {
		case pzbinary.AtomFloat64:
			out[i] = math.Float64frombits(order.Uint64(chunk))
		case pzbinary.AtomFloat32:
			out[i] = float64(math.Float32frombits(order.Uint32(chunk)))
		case pzbinary.AtomInt32:
			out[i] = float64(int32(order.Uint32(chunk)))
		case pzbinary.AtomInt64:
			out[i] = float64(int64(order.Uint64(chunk)))
		case pzbinary.AtomUint32:
			out[i] = float64(order.Uint32(chunk))
		case pzbinary.AtomUint64:
			out[i] = float64(order.Uint64(chunk))
		case pzbinary.AtomByte, pzbinary.AtomInt8:
			out[i] = float64(chunk[0])
		case pzbinary.AtomBool:
			if chunk[0] != 0 {
				out[i] = 1
			}
		default:
			return nil, fmt.Errorf("localmpi: atom %d has no numeric reduction", atom)
		}
	}
	return out, nil
}

func encodeFloat64s(atom pzbinary.Atom, vals []float64) ([]byte, error) {
	width, err := atomWidth(atom)
	if err != nil {
		return nil, err
	}
	out := make([]byte, width*len(vals))
	for i, v := range vals {
		chunk := out[i*width : (i+1)*width]
		switch atom {
		case pzbinary.AtomFloat64:
			order.PutUint64(chunk, math.Float64bits(v))
		case pzbinary.AtomFloat32:
			order.PutUint32(chunk, math.Float32bits(float32(v)))
		case pzbinary.AtomInt32:
			order.PutUint32(chunk, uint32(int32(v)))
		case pzbinary.AtomInt64:
			order.PutUint64(chunk, uint64(int64(v)))
		case pzbinary.AtomUint32:
			order.PutUint32(chunk, uint32(v))
		case pzbinary.AtomUint64:
			order.PutUint64(chunk, uint64(v))
		case pzbinary.AtomByte, pzbinary.AtomInt8:
			chunk[0] = byte(int64(v))
		case pzbinary.AtomBool:
			if v != 0 {
				chunk[0] = 1
			}
		default:
			return nil, fmt.Errorf("localmpi: atom %d has no numeric reduction", atom)
		}
	}
	return out, nil
}

// foldNumeric folds a fixed-point-order list of per-rank float64 slices
// using op, left-to-right by ascending rank, matching the fallback order
// the spec prescribes for reduce (§4.5, §8 Laws).
func foldNumeric(op pzbinary.ReduceOp, perRank [][]float64, count int) ([]float64, error) {
	out := make([]float64, count)
	copy(out, perRank[0])
	for _, contribution := range perRank[1:] {
		for i := 0; i < count; i++ {
			combined, err := combineScalar(op, out[i], contribution[i])
			if err != nil {
				return nil, err
			}
			out[i] = combined
		}
	}
	return out, nil
}

func combineScalar(op pzbinary.ReduceOp, a, b float64) (float64, error) {
	switch op {
	case pzbinary.OpPlus:
		return a + b, nil
	case pzbinary.OpMultiplies:
		return a * b, nil
	case pzbinary.OpLogicalAnd:
		return boolToFloat(a != 0 && b != 0), nil
	case pzbinary.OpLogicalOr:
		return boolToFloat(a != 0 || b != 0), nil
	case pzbinary.OpLogicalXor:
		return boolToFloat((a != 0) != (b != 0)), nil
	case pzbinary.OpBitAnd:
		return float64(int64(a) & int64(b)), nil
	case pzbinary.OpBitOr:
		return float64(int64(a) | int64(b)), nil
	case pzbinary.OpBitXor:
		return float64(int64(a) ^ int64(b)), nil
	default:
		return 0, fmt.Errorf("localmpi: unsupported reduce op %d", op)
	}
}

func boolToFloat(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
