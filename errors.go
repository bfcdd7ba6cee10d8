package binframe

import "errors"

var (
	// ErrUnexpectedEOF reports that the buffer or stream ran out of bytes
	// before a read completed. The read never partially advances.
	ErrUnexpectedEOF = errors.New("unexpected end of input")

	// ErrInvalidConversion reports malformed text or a numeric narrowing
	// that does not fit the target type.
	ErrInvalidConversion = errors.New("invalid conversion")

	// ErrMismatch reports a tag or delimiter that did not match the
	// expected bytes.
	ErrMismatch = errors.New("mismatch")

	// ErrLimitExceeded reports that ParseUntil ran past its length limit.
	ErrLimitExceeded = errors.New("length limit exceeded")

	// ErrCrypto reports a key, IV or padding failure in the encryption
	// boundary.
	ErrCrypto = errors.New("crypto error")

	// ErrIO wraps failures of an underlying byte source or sink.
	ErrIO = errors.New("io error")
)
