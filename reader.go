package binframe

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"math"
)

// Reader is the stream-backed twin of Parser: the same framing protocol,
// consumed field by field from an io.Reader. Exhaustion of the source maps to
// ErrUnexpectedEOF; other source failures surface wrapped in ErrIO.
type Reader struct {
	r       io.Reader
	options ParseOptions
}

// StreamDecodable is the stream-oriented mirror of Decodable.
type StreamDecodable interface {
	DecodeFromReader(r *Reader) error
}

// streamDecodablePtr mirrors decodablePtr for the stream contract.
type streamDecodablePtr[T any] interface {
	*T
	StreamDecodable
}

// NewReader returns a reader consuming r with default options.
func NewReader(r io.Reader) *Reader {
	return &Reader{r: r, options: DefaultParseOptions()}
}

// NewReaderWithOptions returns a reader consuming r configured by opts.
func NewReaderWithOptions(r io.Reader, opts ParseOptions) *Reader {
	return &Reader{r: r, options: opts}
}

// SetOptions replaces the reader's configuration for subsequent reads.
func (r *Reader) SetOptions(opts ParseOptions) {
	r.options = opts
}

// Options returns the active configuration.
func (r *Reader) Options() ParseOptions {
	return r.options
}

// GetBytes reads exactly n bytes from the source.
func (r *Reader) GetBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.r, buf); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return nil, ErrUnexpectedEOF
		}
		return nil, fmt.Errorf("%w: %w", ErrIO, err)
	}
	return buf, nil
}

// GetBytesPrefixed reads a bare u32 byte length and that many bytes,
// mirroring Writer.AddBytes under PrependDataSize.
func (r *Reader) GetBytesPrefixed() ([]byte, error) {
	n, err := readerFixed[uint32](r)
	if err != nil {
		return nil, err
	}
	return r.GetBytes(int(n))
}

// GetByte reads a single byte.
func (r *Reader) GetByte() (byte, error) {
	b, err := r.GetBytes(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetBool reads a single byte and reports whether it is non-zero.
func (r *Reader) GetBool() (bool, error) {
	b, err := r.GetByte()
	return b != 0, err
}

func readerFixed[T fixedInt](r *Reader) (T, error) {
	var zero T
	b, err := r.GetBytes(fixedSize[T]())
	if err != nil {
		return zero, err
	}
	return fixedFrom[T](b, r.options.Endianness), nil
}

// readerNum mirrors the slice parser's numeric path: when
// LengthPrefixedFields is set the typed read happens inside an isolated
// sub-parser over the extracted envelope.
func readerNum[T fixedInt](r *Reader) (T, error) {
	if !r.options.LengthPrefixedFields {
		return readerFixed[T](r)
	}
	var zero T
	n, err := readerFixed[uint32](r)
	if err != nil {
		return zero, err
	}
	raw, err := r.GetBytes(int(n))
	if err != nil {
		return zero, err
	}
	return readFixed[T](newSubParser(raw, r.options))
}

func (r *Reader) GetUint8() (uint8, error)   { return readerNum[uint8](r) }
func (r *Reader) GetUint16() (uint16, error) { return readerNum[uint16](r) }
func (r *Reader) GetUint32() (uint32, error) { return readerNum[uint32](r) }
func (r *Reader) GetUint64() (uint64, error) { return readerNum[uint64](r) }
func (r *Reader) GetUint() (uint, error)     { return readerNum[uint](r) }
func (r *Reader) GetInt8() (int8, error)     { return readerNum[int8](r) }
func (r *Reader) GetInt16() (int16, error)   { return readerNum[int16](r) }
func (r *Reader) GetInt32() (int32, error)   { return readerNum[int32](r) }
func (r *Reader) GetInt64() (int64, error)   { return readerNum[int64](r) }
func (r *Reader) GetInt() (int, error)       { return readerNum[int](r) }

func (r *Reader) GetFloat32() (float32, error) {
	bits, err := readerNum[uint32](r)
	return math.Float32frombits(bits), err
}

func (r *Reader) GetFloat64() (float64, error) {
	bits, err := readerNum[uint64](r)
	return math.Float64frombits(bits), err
}

// GetString reads the u32 length prefix and the text payload, applying the
// same strictness and trimming rules as Parser.GetString.
func (r *Reader) GetString(useUTF16 bool) (string, error) {
	strLen, err := readerFixed[uint32](r)
	if err != nil {
		return "", err
	}
	raw, err := r.GetBytes(int(strLen))
	if err != nil {
		return "", err
	}
	return decodeText(newSubParser(raw, r.options), raw, useUTF16)
}

// ReadVector streams the standard vector framing: each item's byte region is
// extracted from the stream and decoded by an isolated sub-reader.
func ReadVector[T any, PT streamDecodablePtr[T]](r *Reader) ([]T, error) {
	count, err := r.GetUint32()
	if err != nil {
		return nil, err
	}
	var out []T
	for i := uint32(0); i < count; i++ {
		itemLen, err := r.GetUint32()
		if err != nil {
			return nil, err
		}
		raw, err := r.GetBytes(int(itemLen))
		if err != nil {
			return nil, err
		}
		sub := NewReaderWithOptions(bytes.NewReader(raw), r.options)
		var item T
		if err := PT(&item).DecodeFromReader(sub); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// ReadOption streams the nullable framing.
func ReadOption[T any, PT streamDecodablePtr[T]](r *Reader) (*T, error) {
	present, err := r.GetBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	var item T
	if err := PT(&item).DecodeFromReader(r); err != nil {
		return nil, err
	}
	return &item, nil
}

// ReadArray streams the fixed-size framing: exactly n items, no count prefix.
func ReadArray[T any, PT streamDecodablePtr[T]](r *Reader, n int) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		if err := PT(&out[i]).DecodeFromReader(r); err != nil {
			return nil, err
		}
	}
	return out, nil
}
