package binframe

import "unsafe"

// fixedInt covers every fixed-width integer the wire format knows about.
// uint and int take the width of the host platform.
type fixedInt interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uint |
		~int8 | ~int16 | ~int32 | ~int64 | ~int
}

// appendFixed appends v to dst in the selected byte order. One generic codec
// replaces a per-width method family; signedness rides on the two's-complement
// representation.
func appendFixed[T fixedInt](dst []byte, v T, e Endianness) []byte {
	o := e.order()
	switch unsafe.Sizeof(v) {
	case 1:
		return append(dst, byte(v))
	case 2:
		return o.AppendUint16(dst, uint16(v))
	case 4:
		return o.AppendUint32(dst, uint32(v))
	default:
		return o.AppendUint64(dst, uint64(v))
	}
}

// fixedFrom is the inverse of appendFixed. b must hold exactly the width of T;
// narrowing conversions restore the sign bit for signed targets.
func fixedFrom[T fixedInt](b []byte, e Endianness) T {
	o := e.order()
	switch len(b) {
	case 1:
		return T(b[0])
	case 2:
		return T(o.Uint16(b))
	case 4:
		return T(o.Uint32(b))
	default:
		return T(o.Uint64(b))
	}
}

// fixedSize reports the encoded width of T in bytes.
func fixedSize[T fixedInt]() int {
	var zero T
	return int(unsafe.Sizeof(zero))
}
