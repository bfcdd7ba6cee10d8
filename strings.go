package binframe

import (
	"strings"
	"unicode/utf16"
	"unicode/utf8"
)

// GetString reads a u32 byte length followed by that many bytes of text.
// The length prefix is part of the string format and is read regardless of
// LengthPrefixedFields. With useUTF16 the payload is interpreted as UTF-16 in
// native byte order, otherwise as UTF-8. StrictEncoding and TrimNullStrings
// apply after the length-bounded extraction.
func (p *Parser) GetString(useUTF16 bool) (string, error) {
	strLen, err := readFixed[uint32](p)
	if err != nil {
		return "", err
	}
	b, err := p.take(int(strLen))
	if err != nil {
		return "", err
	}
	return decodeText(p, b, useUTF16)
}

// GetStringRaw reads a NUL-terminated string with no length prefix, stopping
// at the terminator or the end of the buffer, whichever comes first.
func (p *Parser) GetStringRaw(useUTF16 bool) (string, error) {
	if useUTF16 {
		var units []uint16
		for p.Remaining() >= 2 {
			b, err := p.take(2)
			if err != nil {
				return "", err
			}
			u := NativeEndian.order().Uint16(b)
			if u == 0 {
				break
			}
			units = append(units, u)
		}
		return finishUTF16(p, units)
	}
	var raw []byte
	for p.Remaining() > 0 {
		b, err := p.GetByte()
		if err != nil {
			return "", err
		}
		if b == 0 {
			break
		}
		raw = append(raw, b)
	}
	return decodeUTF8(p, raw)
}

func decodeText(p *Parser, b []byte, useUTF16 bool) (string, error) {
	if useUTF16 {
		return decodeUTF16(p, b)
	}
	return decodeUTF8(p, b)
}

func decodeUTF8(p *Parser, b []byte) (string, error) {
	if p.options.StrictEncoding && !utf8.Valid(b) {
		return "", p.conversionError("invalid UTF-8 at offset %d", p.cursor)
	}
	s := lossyUTF8(b)
	if p.options.TrimNullStrings {
		s = strings.TrimRight(s, "\x00")
	}
	return s, nil
}

// lossyUTF8 substitutes U+FFFD for each maximal invalid subsequence, so two
// adjacent invalid bytes yield two replacements while a truncated multi-byte
// sequence yields one. strings.ToValidUTF8 collapses whole invalid runs into
// a single replacement, which loses that distinction.
func lossyUTF8(b []byte) string {
	if utf8.Valid(b) {
		return string(b)
	}
	var sb strings.Builder
	sb.Grow(len(b))
	for i := 0; i < len(b); {
		r, size := utf8.DecodeRune(b[i:])
		if r == utf8.RuneError && size == 1 {
			i += invalidPrefixLen(b[i:])
			sb.WriteRune(utf8.RuneError)
			continue
		}
		sb.Write(b[i : i+size])
		i += size
	}
	return sb.String()
}

// invalidPrefixLen reports the length of the maximal subpart of an ill-formed
// sequence at the start of b: the leading byte plus every continuation byte
// that is still admissible for it.
func invalidPrefixLen(b []byte) int {
	b0 := b[0]
	var need int
	lo, hi := byte(0x80), byte(0xBF)
	switch {
	case b0 < 0xC2 || b0 > 0xF4:
		return 1
	case b0 <= 0xDF:
		need = 1
	case b0 <= 0xEF:
		need = 2
		if b0 == 0xE0 {
			lo = 0xA0
		} else if b0 == 0xED {
			hi = 0x9F
		}
	default:
		need = 3
		if b0 == 0xF0 {
			lo = 0x90
		} else if b0 == 0xF4 {
			hi = 0x8F
		}
	}
	n := 1
	for ; n <= need && n < len(b); n++ {
		if b[n] < lo || b[n] > hi {
			break
		}
		lo, hi = 0x80, 0xBF
	}
	return n
}

// decodeUTF16 interprets b as UTF-16 code units in native byte order, per the
// wire format.
func decodeUTF16(p *Parser, b []byte) (string, error) {
	if len(b)%2 != 0 {
		return "", p.conversionError("UTF-16 input length must be even, got %d", len(b))
	}
	order := NativeEndian.order()
	units := make([]uint16, 0, len(b)/2)
	for i := 0; i < len(b); i += 2 {
		units = append(units, order.Uint16(b[i:]))
	}
	return finishUTF16(p, units)
}

func finishUTF16(p *Parser, units []uint16) (string, error) {
	if p.options.StrictEncoding {
		if err := validateUTF16(p, units); err != nil {
			return "", err
		}
	}
	// utf16.Decode substitutes U+FFFD for unpaired surrogates, which is
	// exactly the lossy path.
	s := string(utf16.Decode(units))
	if p.options.TrimNullStrings {
		s = strings.TrimRight(s, "\x00")
	}
	return s, nil
}

// validateUTF16 rejects unpaired surrogates outright; the x/text decoders
// only offer replacement decoding, so strict mode needs its own walk.
func validateUTF16(p *Parser, units []uint16) error {
	for i := 0; i < len(units); i++ {
		u := units[i]
		switch {
		case u >= 0xD800 && u <= 0xDBFF:
			if i+1 >= len(units) || units[i+1] < 0xDC00 || units[i+1] > 0xDFFF {
				return p.conversionError("unpaired high surrogate 0x%04X at unit %d", u, i)
			}
			i++
		case u >= 0xDC00 && u <= 0xDFFF:
			return p.conversionError("unpaired low surrogate 0x%04X at unit %d", u, i)
		}
	}
	return nil
}
