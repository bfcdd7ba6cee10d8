package binframe

import (
	"bufio"
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// frame is the stream-contract twin of header.
type frame struct {
	Seq  uint32
	Last bool
}

func (f frame) EncodeToWriter(w *Writer) error {
	if err := w.AddUint32(f.Seq); err != nil {
		return err
	}
	return w.AddBool(f.Last)
}

func (f frame) EncodeTo(e *Encoder) error {
	e.AddUint32(f.Seq)
	e.AddBool(f.Last)
	return nil
}

func (f *frame) DecodeFromReader(r *Reader) error {
	var err error
	if f.Seq, err = r.GetUint32(); err != nil {
		return err
	}
	f.Last, err = r.GetBool()
	return err
}

type failingWriter struct{ err error }

func (f failingWriter) Write([]byte) (int, error) { return 0, f.err }

func TestWriterMatchesEncoder(t *testing.T) {
	for _, opts := range []EncodeOptions{
		DefaultEncodeOptions(),
		DefaultEncodeOptions().WithEndianness(LittleEndian),
		DefaultEncodeOptions().WithPrependedDataSize(),
	} {
		e := NewEncoderWithOptions(opts)
		e.AddInt32(123)
		e.AddString("Hello, world!")
		e.AddBool(true)
		e.AddFloat64(2.5)
		e.AddBytes([]byte{9, 8, 7})

		var sink bytes.Buffer
		w := NewWriterWithOptions(&sink, opts)
		require.NoError(t, w.AddInt32(123))
		require.NoError(t, w.AddString("Hello, world!"))
		require.NoError(t, w.AddBool(true))
		require.NoError(t, w.AddFloat64(2.5))
		require.NoError(t, w.AddBytes([]byte{9, 8, 7}))

		assert.Equal(t, e.Data(), sink.Bytes(), "options %+v", opts)
	}
}

func TestWriteSliceMatchesEncodeSlice(t *testing.T) {
	items := []frame{{Seq: 1, Last: false}, {Seq: 2, Last: true}}

	e := NewEncoder()
	require.NoError(t, EncodeSlice(e, items))

	var sink bytes.Buffer
	w := NewWriter(&sink)
	require.NoError(t, WriteSlice(w, items))
	assert.Equal(t, e.Data(), sink.Bytes())
}

func TestReaderDecodesReferencePayload(t *testing.T) {
	r := NewReader(bytes.NewReader(referencePayload))
	n, err := r.GetInt32()
	require.NoError(t, err)
	assert.Equal(t, int32(123), n)
	s, err := r.GetString(false)
	require.NoError(t, err)
	assert.Equal(t, "Hello, world!", s)

	count, err := r.GetUint32()
	require.NoError(t, err)
	require.Equal(t, uint32(3), count)
	var vec []byte
	for i := uint32(0); i < count; i++ {
		itemLen, err := r.GetUint32()
		require.NoError(t, err)
		raw, err := r.GetBytes(int(itemLen))
		require.NoError(t, err)
		vec = append(vec, raw...)
	}
	assert.Equal(t, []byte{1, 2, 3}, vec)
}

func TestStreamRoundTrip(t *testing.T) {
	items := []frame{{Seq: 10, Last: false}, {Seq: 11, Last: true}}
	one := frame{Seq: 99, Last: true}

	var sink bytes.Buffer
	w := NewWriter(&sink)
	require.NoError(t, WriteSlice(w, items))
	require.NoError(t, WriteOption(w, &one))
	require.NoError(t, WriteOption[frame](w, nil))
	require.NoError(t, WriteArray(w, items))

	r := NewReader(&sink)
	gotItems, err := ReadVector[frame](r)
	require.NoError(t, err)
	assert.Equal(t, items, gotItems)
	gotOne, err := ReadOption[frame](r)
	require.NoError(t, err)
	require.NotNil(t, gotOne)
	assert.Equal(t, one, *gotOne)
	gotNone, err := ReadOption[frame](r)
	require.NoError(t, err)
	assert.Nil(t, gotNone)
	gotArr, err := ReadArray[frame](r, 2)
	require.NoError(t, err)
	assert.Equal(t, items, gotArr)
}

func TestStreamPrependSizeInterop(t *testing.T) {
	var sink bytes.Buffer
	w := NewWriterWithOptions(&sink, DefaultEncodeOptions().WithPrependedDataSize())
	require.NoError(t, w.AddUint16(0xBEEF))
	require.NoError(t, w.AddInt64(-5))
	require.NoError(t, w.AddBytes([]byte{0xCA, 0xFE}))

	r := NewReaderWithOptions(&sink, DefaultParseOptions().WithLengthPrefixedFields())
	u16, err := r.GetUint16()
	require.NoError(t, err)
	assert.Equal(t, uint16(0xBEEF), u16)
	i64, err := r.GetInt64()
	require.NoError(t, err)
	assert.Equal(t, int64(-5), i64)
	raw, err := r.GetBytesPrefixed()
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCA, 0xFE}, raw)
}

func TestReaderExhaustion(t *testing.T) {
	r := NewReader(bytes.NewReader([]byte{0x01, 0x02}))
	_, err := r.GetUint32()
	require.ErrorIs(t, err, ErrUnexpectedEOF)

	r = NewReader(bytes.NewReader(nil))
	_, err = r.GetByte()
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestReaderStringOptions(t *testing.T) {
	e := NewEncoder()
	e.AddString("abc\x00")
	r := NewReaderWithOptions(bytes.NewReader(e.Data()),
		DefaultParseOptions().WithTrimNullStrings())
	s, err := r.GetString(false)
	require.NoError(t, err)
	assert.Equal(t, "abc", s)

	r = NewReaderWithOptions(bytes.NewReader([]byte{0, 0, 0, 1, 0xFF}),
		DefaultParseOptions().WithStrictEncoding())
	_, err = r.GetString(false)
	require.ErrorIs(t, err, ErrInvalidConversion)
}

func TestWriterSinkFailure(t *testing.T) {
	sinkErr := errors.New("disk full")
	w := NewWriter(failingWriter{err: sinkErr})
	err := w.AddUint32(1)
	require.ErrorIs(t, err, ErrIO)
	require.ErrorIs(t, err, sinkErr)
}

func TestWriterFlush(t *testing.T) {
	var sink bytes.Buffer
	bw := bufio.NewWriter(&sink)
	w := NewWriter(bw)
	require.NoError(t, w.AddUint32(0xA1B2C3D4))
	// Buffered: nothing reaches the sink until Flush.
	assert.Zero(t, sink.Len())
	require.NoError(t, w.Flush())
	assert.Equal(t, []byte{0xA1, 0xB2, 0xC3, 0xD4}, sink.Bytes())

	// Flush on an unbuffered sink is a no-op.
	require.NoError(t, NewWriter(&sink).Flush())
}
