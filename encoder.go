package binframe

import "math"

// Encoder builds an output byte sequence by appending primitives, strings and
// recursively framed composite values. An Encoder is created per encode
// operation and discarded when the caller has taken the result; it is not safe
// for concurrent use.
type Encoder struct {
	buf     []byte
	options EncodeOptions
}

// NewEncoder returns an empty encoder with default options.
func NewEncoder() *Encoder {
	return &Encoder{options: DefaultEncodeOptions()}
}

// NewEncoderWithOptions returns an empty encoder using opts.
func NewEncoderWithOptions(opts EncodeOptions) *Encoder {
	return &Encoder{options: opts}
}

// SetOptions replaces the encoder's configuration. Only subsequent writes are
// affected; bytes already in the buffer keep the layout they were written with.
func (e *Encoder) SetOptions(opts EncodeOptions) {
	e.options = opts
}

// Options returns the active configuration.
func (e *Encoder) Options() EncodeOptions {
	return e.options
}

// addItem is the single append chokepoint. The optional u32 size prefix is
// applied here and nowhere else.
func (e *Encoder) addItem(data []byte) {
	if e.options.PrependDataSize {
		e.buf = appendFixed(e.buf, uint32(len(data)), e.options.Endianness)
	}
	e.buf = append(e.buf, data...)
}

// addNum converts via the endian codec and appends as one item.
func addNum[T fixedInt](e *Encoder, v T) {
	var scratch [8]byte
	e.addItem(appendFixed(scratch[:0], v, e.options.Endianness))
}

// AddBytes appends a raw byte slice as one item, honoring the size-prefix
// toggle. The mirrored read is GetBytesPrefixed when the toggle is set, or
// GetBytes with a known length when it is not.
func (e *Encoder) AddBytes(data []byte) {
	e.addItem(data)
}

func (e *Encoder) AddUint8(v uint8)   { addNum(e, v) }
func (e *Encoder) AddUint16(v uint16) { addNum(e, v) }
func (e *Encoder) AddUint32(v uint32) { addNum(e, v) }
func (e *Encoder) AddUint64(v uint64) { addNum(e, v) }
func (e *Encoder) AddUint(v uint)     { addNum(e, v) }
func (e *Encoder) AddInt8(v int8)     { addNum(e, v) }
func (e *Encoder) AddInt16(v int16)   { addNum(e, v) }
func (e *Encoder) AddInt32(v int32)   { addNum(e, v) }
func (e *Encoder) AddInt64(v int64)   { addNum(e, v) }
func (e *Encoder) AddInt(v int)       { addNum(e, v) }

func (e *Encoder) AddFloat32(v float32) { addNum(e, math.Float32bits(v)) }
func (e *Encoder) AddFloat64(v float64) { addNum(e, math.Float64bits(v)) }

// AddBool appends a single byte, 0x01 for true and 0x00 for false. Booleans
// are never size-prefixed: the flag byte is part of the format itself.
func (e *Encoder) AddBool(v bool) {
	if v {
		e.buf = append(e.buf, 0x01)
		return
	}
	e.buf = append(e.buf, 0x00)
}

// AddString appends a u32 byte length followed by the UTF-8 bytes of s. The
// length prefix is part of the string format and is written regardless of the
// size-prefix toggle.
func (e *Encoder) AddString(s string) {
	e.buf = appendFixed(e.buf, uint32(len(s)), e.options.Endianness)
	e.buf = append(e.buf, s...)
}

// Data returns the accumulated byte sequence. The returned slice aliases the
// encoder's buffer: treat it as read-only, or copy before further appends.
func (e *Encoder) Data() []byte {
	return e.buf
}

// Len returns the number of bytes accumulated so far.
func (e *Encoder) Len() int {
	return len(e.buf)
}

// Reset truncates the buffer, keeping its capacity and the active options.
func (e *Encoder) Reset() {
	e.buf = e.buf[:0]
}
