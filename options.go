package binframe

import "encoding/binary"

// Endianness selects the byte order for multi-byte numeric values.
type Endianness int

const (
	// BigEndian writes the most significant byte first (network order, default).
	BigEndian Endianness = iota
	// LittleEndian writes the least significant byte first.
	LittleEndian
	// NativeEndian matches the byte order of the host machine.
	NativeEndian
)

// byteOrder combines the put/get and append views of encoding/binary so the
// codec can use a single selector for both directions.
type byteOrder interface {
	binary.ByteOrder
	binary.AppendByteOrder
}

func (e Endianness) order() byteOrder {
	switch e {
	case LittleEndian:
		return binary.LittleEndian
	case NativeEndian:
		return binary.NativeEndian
	default:
		return binary.BigEndian
	}
}

func (e Endianness) String() string {
	switch e {
	case LittleEndian:
		return "little"
	case NativeEndian:
		return "native"
	default:
		return "big"
	}
}

// ParseOptions configures how a Parser or Reader interprets bytes.
//
// Options are plain values: they are copied into sub-parsers created for
// isolated item decoding and are never shared mutably.
type ParseOptions struct {
	// Endianness is the byte order used for numeric reads.
	Endianness Endianness

	// LengthPrefixedFields expects every numeric field to be wrapped in a
	// u32 length envelope. Must match the encode side's PrependDataSize.
	LengthPrefixedFields bool

	// StrictEncoding rejects invalid UTF-8/UTF-16 input instead of
	// substituting the replacement character.
	StrictEncoding bool

	// TrimNullStrings strips trailing NUL runes from decoded strings.
	TrimNullStrings bool

	// VerboseErrors enriches failure messages with offset and byte-count
	// diagnostics and emits them on the package logger.
	VerboseErrors bool

	// Key and IV enable AES-256-CBC decryption of the buffer.
	Key []byte
	IV  []byte
}

// DefaultParseOptions returns the default decode configuration:
// big-endian, every toggle off, no encryption.
func DefaultParseOptions() ParseOptions {
	return ParseOptions{Endianness: BigEndian}
}

// WithEndianness returns a copy with the byte order set.
func (o ParseOptions) WithEndianness(e Endianness) ParseOptions {
	o.Endianness = e
	return o
}

// WithLengthPrefixedFields returns a copy expecting u32 length envelopes
// around numeric fields.
func (o ParseOptions) WithLengthPrefixedFields() ParseOptions {
	o.LengthPrefixedFields = true
	return o
}

// WithStrictEncoding returns a copy that rejects malformed text.
func (o ParseOptions) WithStrictEncoding() ParseOptions {
	o.StrictEncoding = true
	return o
}

// WithTrimNullStrings returns a copy that strips trailing NULs from strings.
func (o ParseOptions) WithTrimNullStrings() ParseOptions {
	o.TrimNullStrings = true
	return o
}

// WithVerboseErrors returns a copy with diagnostic error messages enabled.
func (o ParseOptions) WithVerboseErrors() ParseOptions {
	o.VerboseErrors = true
	return o
}

// WithEncryption returns a copy carrying the AES-256 key and IV.
func (o ParseOptions) WithEncryption(key, iv []byte) ParseOptions {
	o.Key = key
	o.IV = iv
	return o
}

// EncodeOptions configures how an Encoder or Writer lays out bytes.
type EncodeOptions struct {
	// Endianness is the byte order used for numeric writes.
	Endianness Endianness

	// PrependDataSize prefixes every numeric and raw item write with its
	// u32 byte length. The decode side must set LengthPrefixedFields.
	PrependDataSize bool

	// Key and IV enable AES-256-CBC encryption of the output buffer.
	Key []byte
	IV  []byte
}

// DefaultEncodeOptions returns the default encode configuration:
// big-endian, no size prefixing, no encryption.
func DefaultEncodeOptions() EncodeOptions {
	return EncodeOptions{Endianness: BigEndian}
}

// WithEndianness returns a copy with the byte order set.
func (o EncodeOptions) WithEndianness(e Endianness) EncodeOptions {
	o.Endianness = e
	return o
}

// WithPrependedDataSize returns a copy that writes a u32 size prefix before
// every item.
func (o EncodeOptions) WithPrependedDataSize() EncodeOptions {
	o.PrependDataSize = true
	return o
}

// WithEncryption returns a copy carrying the AES-256 key and IV.
func (o EncodeOptions) WithEncryption(key, iv []byte) EncodeOptions {
	o.Key = key
	o.IV = iv
	return o
}
