package binframe

import (
	"bytes"
	"fmt"
)

// ParseFn is a composable parsing step. Combinators are stateless and
// reentrant; they compose by function application and introduce no framing of
// their own beyond take and GetByte.
type ParseFn[T any] func(p *Parser) (T, error)

// DelimExtract returns a parser that consumes exactly len(expected) bytes and
// fails with ErrMismatch unless they equal expected byte for byte.
func DelimExtract(expected []byte) ParseFn[[]byte] {
	return func(p *Parser) ([]byte, error) {
		actual, err := p.take(len(expected))
		if err != nil {
			return nil, err
		}
		if !bytes.Equal(actual, expected) {
			return nil, fmt.Errorf("%w: tag expected % X, got % X", ErrMismatch, expected, actual)
		}
		return actual, nil
	}
}

// Map returns a parser that runs inner and applies the pure transform f to its
// result.
func Map[A, B any](inner ParseFn[A], f func(A) B) ParseFn[B] {
	return func(p *Parser) (B, error) {
		a, err := inner(p)
		if err != nil {
			var zero B
			return zero, err
		}
		return f(a), nil
	}
}

// ParseBetween returns a parser that consumes start, runs inner, consumes end,
// and returns inner's result. A wrong delimiter byte fails with ErrMismatch.
func ParseBetween[T any](inner ParseFn[T], start, end byte) ParseFn[T] {
	return func(p *Parser) (T, error) {
		var zero T
		b, err := p.GetByte()
		if err != nil {
			return zero, err
		}
		if b != start {
			return zero, fmt.Errorf("%w: expected start delimiter 0x%02X, found 0x%02X", ErrMismatch, start, b)
		}
		value, err := inner(p)
		if err != nil {
			return zero, err
		}
		b, err = p.GetByte()
		if err != nil {
			return zero, err
		}
		if b != end {
			return zero, fmt.Errorf("%w: expected end delimiter 0x%02X, found 0x%02X", ErrMismatch, end, b)
		}
		return value, nil
	}
}
