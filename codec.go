package binframe

// Encodable is implemented by types that can serialize themselves into an
// Encoder. Composite and user-defined types implement it to participate in
// framing.
type Encodable interface {
	EncodeTo(e *Encoder) error
}

// Decodable is implemented by types that can reconstruct themselves from a
// Parser. The receiver is a pointer to the value being populated.
type Decodable interface {
	DecodeFrom(p *Parser) error
}

// decodablePtr constrains PT to a pointer to T that implements Decodable,
// letting the generic decode helpers construct values in place.
type decodablePtr[T any] interface {
	*T
	Decodable
}

// EncodeFunc serializes one element of a built-in type into an encoder.
// Built-in element support comes from the Fixed and String helpers below, or
// from small closures over the Add methods.
type EncodeFunc[T any] func(e *Encoder, v T) error

// DecodeFunc produces one element of a built-in type from a parser. Method
// expressions such as (*Parser).GetUint32 satisfy it directly.
type DecodeFunc[T any] func(p *Parser) (T, error)

// EncodeSlice frames a variable-size collection: a u32 count, then for each
// item a u32 byte length followed by the item's bytes. Every item is encoded
// into a fresh isolated sub-encoder carrying the same options, so an item's
// internal framing can never leak into or corrupt sibling framing.
func EncodeSlice[T Encodable](e *Encoder, items []T) error {
	return EncodeSliceFunc(e, items, func(sub *Encoder, v T) error { return v.EncodeTo(sub) })
}

// EncodeSliceFunc is EncodeSlice for element types encoded by a function
// instead of the Encodable interface.
func EncodeSliceFunc[T any](e *Encoder, items []T, enc EncodeFunc[T]) error {
	e.AddUint32(uint32(len(items)))
	for _, item := range items {
		sub := NewEncoderWithOptions(e.options)
		if err := enc(sub, item); err != nil {
			return err
		}
		e.AddUint32(uint32(sub.Len()))
		e.buf = append(e.buf, sub.Data()...)
	}
	return nil
}

// DecodeVector mirrors EncodeSlice: a u32 count, then per item a u32 length
// and exactly that many bytes, copied into an isolated sub-parser and decoded
// there. A malformed or over-long item cannot consume bytes belonging to its
// siblings.
func DecodeVector[T any, PT decodablePtr[T]](p *Parser) ([]T, error) {
	return DecodeVectorFunc(p, func(sub *Parser) (T, error) {
		var item T
		err := PT(&item).DecodeFrom(sub)
		return item, err
	})
}

// DecodeVectorFunc is DecodeVector for element types decoded by a function.
func DecodeVectorFunc[T any](p *Parser, dec DecodeFunc[T]) ([]T, error) {
	count, err := p.GetUint32()
	if err != nil {
		return nil, err
	}
	// Allocation guard: a hostile count cannot reserve more than the input
	// could possibly frame (each item costs at least its u32 length).
	out := make([]T, 0, min(int(count), p.Remaining()/4))
	for i := uint32(0); i < count; i++ {
		itemLen, err := p.GetUint32()
		if err != nil {
			return nil, err
		}
		raw, err := p.GetBytes(int(itemLen))
		if err != nil {
			return nil, err
		}
		item, err := dec(newSubParser(raw, p.options))
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

// EncodeOption frames a nullable value: a single flag byte, 0x01 followed by
// the value's bytes when v is non-nil, 0x00 alone otherwise.
func EncodeOption[T Encodable](e *Encoder, v *T) error {
	if v == nil {
		e.AddBool(false)
		return nil
	}
	e.AddBool(true)
	return (*v).EncodeTo(e)
}

// EncodeOptionFunc is EncodeOption for element types encoded by a function.
func EncodeOptionFunc[T any](e *Encoder, v *T, enc EncodeFunc[T]) error {
	if v == nil {
		e.AddBool(false)
		return nil
	}
	e.AddBool(true)
	return enc(e, *v)
}

// DecodeOption mirrors EncodeOption, returning nil for an absent value.
func DecodeOption[T any, PT decodablePtr[T]](p *Parser) (*T, error) {
	return DecodeOptionFunc(p, func(sub *Parser) (T, error) {
		var item T
		err := PT(&item).DecodeFrom(sub)
		return item, err
	})
}

// DecodeOptionFunc is DecodeOption for element types decoded by a function.
func DecodeOptionFunc[T any](p *Parser, dec DecodeFunc[T]) (*T, error) {
	present, err := p.GetBool()
	if err != nil {
		return nil, err
	}
	if !present {
		return nil, nil
	}
	item, err := dec(p)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// EncodeArray frames a fixed-size collection: items are concatenated directly
// into e with no count prefix and no per-item isolation, since the size is
// static and known to both sides. The asymmetry with EncodeSlice is a
// deliberate wire-compatibility choice.
func EncodeArray[T Encodable](e *Encoder, items []T) error {
	for _, item := range items {
		if err := item.EncodeTo(e); err != nil {
			return err
		}
	}
	return nil
}

// DecodeArray mirrors EncodeArray, decoding exactly n items straight from p.
func DecodeArray[T any, PT decodablePtr[T]](p *Parser, n int) ([]T, error) {
	out := make([]T, n)
	for i := range out {
		if err := PT(&out[i]).DecodeFrom(p); err != nil {
			return nil, err
		}
	}
	return out, nil
}

// EncodeFixedSlice frames a slice of fixed-width integers with the standard
// vector format. The per-item isolated encoding of an integer is its endian
// bytes, size-prefixed when PrependDataSize is set.
func EncodeFixedSlice[T fixedInt](e *Encoder, items []T) error {
	return EncodeSliceFunc(e, items, func(sub *Encoder, v T) error {
		addNum(sub, v)
		return nil
	})
}

// DecodeFixedVector mirrors EncodeFixedSlice.
func DecodeFixedVector[T fixedInt](p *Parser) ([]T, error) {
	return DecodeVectorFunc(p, getNum[T])
}

// EncodeStringSlice frames a slice of strings with the standard vector
// format; each item's isolated encoding is the string format itself.
func EncodeStringSlice(e *Encoder, items []string) error {
	return EncodeSliceFunc(e, items, func(sub *Encoder, s string) error {
		sub.AddString(s)
		return nil
	})
}

// DecodeStringVector mirrors EncodeStringSlice.
func DecodeStringVector(p *Parser, useUTF16 bool) ([]string, error) {
	return DecodeVectorFunc(p, func(sub *Parser) (string, error) {
		return sub.GetString(useUTF16)
	})
}
