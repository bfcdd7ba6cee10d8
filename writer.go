package binframe

import (
	"fmt"
	"io"
	"math"
)

// Writer is the stream-backed twin of Encoder: the same framing protocol,
// written field by field to an io.Writer instead of an in-memory buffer.
// Failures of the underlying sink surface wrapped in ErrIO.
type Writer struct {
	w       io.Writer
	options EncodeOptions
}

// StreamEncodable is the stream-oriented mirror of Encodable.
type StreamEncodable interface {
	EncodeToWriter(w *Writer) error
}

// NewWriter returns a writer targeting w with default options.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w, options: DefaultEncodeOptions()}
}

// NewWriterWithOptions returns a writer targeting w configured by opts.
func NewWriterWithOptions(w io.Writer, opts EncodeOptions) *Writer {
	return &Writer{w: w, options: opts}
}

// SetOptions replaces the writer's configuration for subsequent writes.
func (w *Writer) SetOptions(opts EncodeOptions) {
	w.options = opts
}

// Options returns the active configuration.
func (w *Writer) Options() EncodeOptions {
	return w.options
}

// Flush flushes the underlying sink when it supports flushing (for example a
// bufio.Writer); otherwise it is a no-op.
func (w *Writer) Flush() error {
	if f, ok := w.w.(interface{ Flush() error }); ok {
		if err := f.Flush(); err != nil {
			return fmt.Errorf("%w: %w", ErrIO, err)
		}
	}
	return nil
}

func (w *Writer) write(data []byte) error {
	if _, err := w.w.Write(data); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

// addItem mirrors Encoder.addItem, applying the optional u32 size prefix.
func (w *Writer) addItem(data []byte) error {
	if w.options.PrependDataSize {
		var scratch [4]byte
		prefix := appendFixed(scratch[:0], uint32(len(data)), w.options.Endianness)
		if err := w.write(prefix); err != nil {
			return err
		}
	}
	return w.write(data)
}

func writeNum[T fixedInt](w *Writer, v T) error {
	var scratch [8]byte
	return w.addItem(appendFixed(scratch[:0], v, w.options.Endianness))
}

// AddBytes writes a raw byte slice as one item, honoring the size-prefix
// toggle.
func (w *Writer) AddBytes(data []byte) error {
	return w.addItem(data)
}

func (w *Writer) AddUint8(v uint8) error   { return writeNum(w, v) }
func (w *Writer) AddUint16(v uint16) error { return writeNum(w, v) }
func (w *Writer) AddUint32(v uint32) error { return writeNum(w, v) }
func (w *Writer) AddUint64(v uint64) error { return writeNum(w, v) }
func (w *Writer) AddUint(v uint) error     { return writeNum(w, v) }
func (w *Writer) AddInt8(v int8) error     { return writeNum(w, v) }
func (w *Writer) AddInt16(v int16) error   { return writeNum(w, v) }
func (w *Writer) AddInt32(v int32) error   { return writeNum(w, v) }
func (w *Writer) AddInt64(v int64) error   { return writeNum(w, v) }
func (w *Writer) AddInt(v int) error       { return writeNum(w, v) }

func (w *Writer) AddFloat32(v float32) error { return writeNum(w, math.Float32bits(v)) }
func (w *Writer) AddFloat64(v float64) error { return writeNum(w, math.Float64bits(v)) }

// AddBool writes the single flag byte, never size-prefixed.
func (w *Writer) AddBool(v bool) error {
	if v {
		return w.write([]byte{0x01})
	}
	return w.write([]byte{0x00})
}

// AddString writes the unconditional u32 length prefix followed by the UTF-8
// bytes of s.
func (w *Writer) AddString(s string) error {
	var scratch [4]byte
	if err := w.write(appendFixed(scratch[:0], uint32(len(s)), w.options.Endianness)); err != nil {
		return err
	}
	return w.write([]byte(s))
}

// WriteSlice streams the standard vector framing. Each item is first encoded
// into an isolated in-memory sub-encoder (its byte length must be known
// before it can be framed), then emitted as [u32 item_len][item bytes].
func WriteSlice[T Encodable](w *Writer, items []T) error {
	return WriteSliceFunc(w, items, func(sub *Encoder, v T) error { return v.EncodeTo(sub) })
}

// WriteSliceFunc is WriteSlice for element types encoded by a function.
func WriteSliceFunc[T any](w *Writer, items []T, enc EncodeFunc[T]) error {
	if err := w.AddUint32(uint32(len(items))); err != nil {
		return err
	}
	for _, item := range items {
		sub := NewEncoderWithOptions(w.options)
		if err := enc(sub, item); err != nil {
			return err
		}
		if err := w.AddUint32(uint32(sub.Len())); err != nil {
			return err
		}
		if err := w.write(sub.Data()); err != nil {
			return err
		}
	}
	return nil
}

// WriteOption streams the nullable framing: flag byte, then the value when
// present.
func WriteOption[T StreamEncodable](w *Writer, v *T) error {
	if v == nil {
		return w.AddBool(false)
	}
	if err := w.AddBool(true); err != nil {
		return err
	}
	return (*v).EncodeToWriter(w)
}

// WriteArray streams the fixed-size framing: plain concatenation, no count.
func WriteArray[T StreamEncodable](w *Writer, items []T) error {
	for _, item := range items {
		if err := item.EncodeToWriter(w); err != nil {
			return err
		}
	}
	return nil
}
