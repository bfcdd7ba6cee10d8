package binframe

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDelimExtract(t *testing.T) {
	magic := DelimExtract([]byte{0xCA, 0xFE})

	p := NewParser([]byte{0xCA, 0xFE, 0x01})
	got, err := magic(p)
	require.NoError(t, err)
	assert.Equal(t, []byte{0xCA, 0xFE}, got)
	assert.Equal(t, 1, p.Remaining())

	p = NewParser([]byte{0xCA, 0xFF})
	_, err = magic(p)
	require.ErrorIs(t, err, ErrMismatch)

	p = NewParser([]byte{0xCA})
	_, err = magic(p)
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestMap(t *testing.T) {
	doubled := Map((*Parser).GetUint16, func(v uint16) uint32 { return uint32(v) * 2 })

	p := NewParser([]byte{0x00, 0x15})
	got, err := doubled(p)
	require.NoError(t, err)
	assert.Equal(t, uint32(42), got)

	_, err = doubled(NewParser([]byte{0x00}))
	require.ErrorIs(t, err, ErrUnexpectedEOF)
}

func TestParseBetween(t *testing.T) {
	bracketed := ParseBetween((*Parser).GetUint8, '[', ']')

	t.Run("well formed", func(t *testing.T) {
		p := NewParser([]byte{'[', 0x2A, ']'})
		got, err := bracketed(p)
		require.NoError(t, err)
		assert.Equal(t, uint8(42), got)
		assert.Zero(t, p.Remaining())
	})
	t.Run("wrong start delimiter", func(t *testing.T) {
		_, err := bracketed(NewParser([]byte{'(', 0x2A, ']'}))
		require.ErrorIs(t, err, ErrMismatch)
	})
	t.Run("wrong end delimiter", func(t *testing.T) {
		_, err := bracketed(NewParser([]byte{'[', 0x2A, ')'}))
		require.ErrorIs(t, err, ErrMismatch)
	})
	t.Run("missing end delimiter", func(t *testing.T) {
		_, err := bracketed(NewParser([]byte{'[', 0x2A}))
		require.ErrorIs(t, err, ErrUnexpectedEOF)
	})
}

func TestCombinatorComposition(t *testing.T) {
	// A framed u32 between markers, then its textual width via Map.
	width := Map(
		ParseBetween((*Parser).GetUint32, '<', '>'),
		func(v uint32) int { return len(string(rune(v))) },
	)
	p := NewParser([]byte{'<', 0x00, 0x00, 0x00, 0x41, '>'})
	got, err := ParseWith(p, width)
	require.NoError(t, err)
	assert.Equal(t, 1, got)
}
