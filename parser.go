package binframe

import (
	"fmt"
	"math"
)

// Parser consumes a byte region through a monotonic cursor, producing
// primitives, strings and recursively framed composite values. It mirrors the
// Encoder's framing exactly: under matching options the two are bit-exact
// inverses. A Parser is created per decode operation and is not safe for
// concurrent use.
type Parser struct {
	buf     buffer
	cursor  int
	options ParseOptions
}

// NewParser returns a parser borrowing data, with default options. The caller
// must not mutate data while the parser is in use.
func NewParser(data []byte) *Parser {
	return &Parser{buf: borrowedBuffer(data), options: DefaultParseOptions()}
}

// NewParserWithOptions returns a parser borrowing data, configured by opts.
func NewParserWithOptions(data []byte, opts ParseOptions) *Parser {
	return &Parser{buf: borrowedBuffer(data), options: opts}
}

// newSubParser wraps an independently owned copy of bytes carved out for one
// isolated sub-region. No cursor state is shared with the parent.
func newSubParser(data []byte, opts ParseOptions) *Parser {
	return &Parser{buf: ownedBuffer(data), options: opts}
}

// SetOptions replaces the parser's configuration for subsequent reads.
func (p *Parser) SetOptions(opts ParseOptions) {
	p.options = opts
}

// Options returns the active configuration.
func (p *Parser) Options() ParseOptions {
	return p.options
}

// Size returns the total length of the underlying buffer.
func (p *Parser) Size() int {
	return p.buf.len()
}

// Remaining returns the number of unconsumed bytes.
func (p *Parser) Remaining() int {
	return p.buf.len() - p.cursor
}

// take consumes the next n bytes and advances the cursor. It is the single
// chokepoint for all consumption: every read is built on it, so every read
// gets the same all-or-nothing bounds check. On failure the cursor does not
// move.
func (p *Parser) take(n int) ([]byte, error) {
	if p.Remaining() < n {
		return nil, p.eofError(n)
	}
	start := p.cursor
	p.cursor += n
	return p.buf.bytes()[start:p.cursor], nil
}

func (p *Parser) eofError(n int) error {
	if !p.options.VerboseErrors {
		return ErrUnexpectedEOF
	}
	logger.Debug().
		Int("offset", p.cursor).
		Int("needed", n).
		Int("have", p.Remaining()).
		Hex("remaining", p.buf.bytes()[p.cursor:]).
		Msg("take failed")
	return fmt.Errorf("%w: need %d bytes at offset %d, have %d",
		ErrUnexpectedEOF, n, p.cursor, p.Remaining())
}

func (p *Parser) conversionError(format string, args ...any) error {
	if !p.options.VerboseErrors {
		return ErrInvalidConversion
	}
	return fmt.Errorf("%w: %s", ErrInvalidConversion, fmt.Sprintf(format, args...))
}

// Peek returns the next n bytes without advancing the cursor.
func (p *Parser) Peek(n int) ([]byte, error) {
	if p.Remaining() < n {
		return nil, p.eofError(n)
	}
	return p.buf.bytes()[p.cursor : p.cursor+n], nil
}

// GetBytes consumes byte_len bytes and returns them as an independent copy.
func (p *Parser) GetBytes(byteLen int) ([]byte, error) {
	b, err := p.take(byteLen)
	if err != nil {
		return nil, err
	}
	out := make([]byte, byteLen)
	copy(out, b)
	return out, nil
}

// GetBytesPrefixed reads a bare u32 byte length followed by exactly that many
// bytes. It is the mirrored read for AddBytes under PrependDataSize: the
// prefix is the item framing itself, so it is read bare regardless of
// LengthPrefixedFields.
func (p *Parser) GetBytesPrefixed() ([]byte, error) {
	n, err := readFixed[uint32](p)
	if err != nil {
		return nil, err
	}
	return p.GetBytes(int(n))
}

// GetByte consumes a single byte.
func (p *Parser) GetByte() (byte, error) {
	b, err := p.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// GetBool consumes a single byte and reports whether it is non-zero.
func (p *Parser) GetBool() (bool, error) {
	b, err := p.GetByte()
	return b != 0, err
}

// readFixed reads the natural width of T through take.
func readFixed[T fixedInt](p *Parser) (T, error) {
	b, err := p.take(fixedSize[T]())
	if err != nil {
		var zero T
		return zero, err
	}
	return fixedFrom[T](b, p.options.Endianness), nil
}

// parseWithLengthPrefix reads a u32 length, slices exactly that many bytes
// into an isolated sub-region and runs f inside it. The declared length may
// exceed the value's natural width: trailing envelope bytes are discarded,
// which makes length-prefixed fields a forward-compatible container.
func parseWithLengthPrefix[T any](p *Parser, f func(*Parser) (T, error)) (T, error) {
	n, err := readFixed[uint32](p)
	if err != nil {
		var zero T
		return zero, err
	}
	raw, err := p.GetBytes(int(n))
	if err != nil {
		var zero T
		return zero, err
	}
	return f(newSubParser(raw, p.options))
}

// getNum is the shared numeric read path: a plain fixed-width read, or an
// envelope-wrapped one when LengthPrefixedFields is set.
func getNum[T fixedInt](p *Parser) (T, error) {
	if p.options.LengthPrefixedFields {
		return parseWithLengthPrefix(p, readFixed[T])
	}
	return readFixed[T](p)
}

func (p *Parser) GetUint8() (uint8, error)   { return getNum[uint8](p) }
func (p *Parser) GetUint16() (uint16, error) { return getNum[uint16](p) }
func (p *Parser) GetUint32() (uint32, error) { return getNum[uint32](p) }
func (p *Parser) GetUint64() (uint64, error) { return getNum[uint64](p) }
func (p *Parser) GetUint() (uint, error)     { return getNum[uint](p) }
func (p *Parser) GetInt8() (int8, error)     { return getNum[int8](p) }
func (p *Parser) GetInt16() (int16, error)   { return getNum[int16](p) }
func (p *Parser) GetInt32() (int32, error)   { return getNum[int32](p) }
func (p *Parser) GetInt64() (int64, error)   { return getNum[int64](p) }
func (p *Parser) GetInt() (int, error)       { return getNum[int](p) }

func (p *Parser) GetFloat32() (float32, error) {
	bits, err := getNum[uint32](p)
	return math.Float32frombits(bits), err
}

func (p *Parser) GetFloat64() (float64, error) {
	bits, err := getNum[uint64](p)
	return math.Float64frombits(bits), err
}

// GetRaw reads one byte and narrows it into T. With signed set the byte is
// interpreted as a two's-complement int8 first. Values that do not fit T fail
// with ErrInvalidConversion.
func GetRaw[T fixedInt](p *Parser, signed bool) (T, error) {
	var zero T
	b, err := p.GetByte()
	if err != nil {
		return zero, err
	}
	signedTarget := zero-1 < zero
	if signed {
		v := int8(b)
		if v < 0 && !signedTarget {
			return zero, p.conversionError("cannot narrow %d (i8) into unsigned target", v)
		}
		return T(v), nil
	}
	if b > math.MaxInt8 && signedTarget && fixedSize[T]() == 1 {
		return zero, p.conversionError("cannot narrow %d (u8) into int8", b)
	}
	return T(b), nil
}

// ParseUntil consumes bytes one at a time until terminator reports true,
// returning the collected bytes with the terminator excluded. A negative
// maxLen disables the limit. The limit is checked before each read: once
// maxLen bytes have been collected, any remaining input fails with
// ErrLimitExceeded, even when the next byte would be the terminator.
func (p *Parser) ParseUntil(terminator func(byte) bool, maxLen int) ([]byte, error) {
	var collected []byte
	for p.Remaining() > 0 {
		if maxLen >= 0 && len(collected) >= maxLen {
			return nil, fmt.Errorf("%w: parse until collected %d bytes", ErrLimitExceeded, maxLen)
		}
		b, err := p.GetByte()
		if err != nil {
			return nil, err
		}
		if terminator(b) {
			break
		}
		collected = append(collected, b)
	}
	return collected, nil
}

// ParseWith applies a parser function to p. Convenience for function-style
// combinators.
func ParseWith[T any](p *Parser, fn ParseFn[T]) (T, error) {
	return fn(p)
}
