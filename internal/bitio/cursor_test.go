package bitio

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCursor_Uint(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		n    int
		want uint64
	}{
		{"single byte full width", []byte{0xAB}, 8, 0xAB},
		{"top nibble", []byte{0xF0}, 4, 0xF},
		{"bottom nibble", []byte{0x0F}, 4, 0},
		{"cross byte boundary", []byte{0x0F, 0xF0}, 12, 0xFF},
		{"three byte span", []byte{0x00, 0xFF, 0x00}, 24, 0x00FF00},
		{"single bit set", []byte{0x80}, 1, 1},
		{"single bit clear", []byte{0x00}, 1, 0},
		{"16 bits big endian", []byte{0x12, 0x34}, 16, 0x1234},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.data)
			got, err := c.Uint(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.n, c.BitPos())
		})
	}
}

func TestCursor_Uint_SequentialReads(t *testing.T) {
	// 0001 0010 0011 0100 -> read 4,4,8
	c := New([]byte{0x12, 0x34})
	a, err := c.Uint(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x1), a)

	b, err := c.Uint(4)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x2), b)

	d, err := c.Uint(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x34), d)

	assert.Equal(t, 0, c.Remaining())
}

func TestCursor_Int_SignExtension(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		n    int
		want int64
	}{
		{"positive 8 bit", []byte{0x7F}, 8, 127},
		{"negative 8 bit -1", []byte{0xFF}, 8, -1},
		{"negative 8 bit min", []byte{0x80}, 8, -128},
		{"positive 4 bit", []byte{0x30}, 4, 3},
		{"negative 4 bit", []byte{0x80}, 4, -8},
		{"negative 14 bit", []byte{0xFF, 0xFC}, 14, -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(tt.data)
			got, err := c.Int(tt.n)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestCursor_Bit(t *testing.T) {
	c := New([]byte{0xA0}) // 1010 0000
	b1, err := c.Bit()
	require.NoError(t, err)
	assert.True(t, b1)

	b2, err := c.Bit()
	require.NoError(t, err)
	assert.False(t, b2)

	b3, err := c.Bit()
	require.NoError(t, err)
	assert.True(t, b3)
}

func TestCursor_Skip(t *testing.T) {
	c := New([]byte{0x12, 0x34})
	require.NoError(t, c.Skip(8))
	v, err := c.Uint(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x34), v)
}

func TestCursor_SkipBytes(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03})
	require.NoError(t, c.SkipBytes(2))
	v, err := c.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x03), v)
}

func TestCursor_Truncation(t *testing.T) {
	c := New([]byte{0xFF})
	_, err := c.Uint(9)
	assert.ErrorIs(t, err, ErrTruncated)

	c2 := New([]byte{0xFF})
	require.NoError(t, c2.Skip(8))
	assert.ErrorIs(t, c2.Skip(1), ErrTruncated)

	c3 := New(nil)
	_, err = c3.Byte()
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestCursor_InvalidWidth(t *testing.T) {
	c := New([]byte{0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00})
	_, err := c.Uint(0)
	assert.Error(t, err)
	_, err = c.Uint(65)
	assert.Error(t, err)
}

func TestCursor_Bytes(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03, 0x04})
	b, err := c.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x01, 0x02}, b)

	rest, err := c.Bytes(2)
	require.NoError(t, err)
	assert.Equal(t, []byte{0x03, 0x04}, rest)

	_, err = c.Bytes(1)
	assert.ErrorIs(t, err, ErrTruncated)
}

func TestCursor_Bytes_RequiresAlignment(t *testing.T) {
	c := New([]byte{0xFF, 0xFF})
	_, err := c.Bit()
	require.NoError(t, err)
	_, err = c.Bytes(1)
	assert.Error(t, err)
}

func TestCursor_AlignedByte_RequiresAlignment(t *testing.T) {
	c := New([]byte{0xFF})
	_, err := c.Bit()
	require.NoError(t, err)
	_, err = c.AlignedByte()
	assert.Error(t, err)
}

func TestCursor_PeekByte(t *testing.T) {
	c := New([]byte{0x01, 0x02, 0x03})
	require.NoError(t, c.SkipBytes(1))

	next, err := c.PeekByte(0)
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), next)

	afterNext, err := c.PeekByte(1)
	require.NoError(t, err)
	assert.Equal(t, byte(0x03), afterNext)

	_, err = c.PeekByte(2)
	assert.ErrorIs(t, err, ErrTruncated)

	// PeekByte must not advance the cursor.
	v, err := c.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x02), v)
}

func TestCursor_Reset(t *testing.T) {
	c := New([]byte{0x12, 0x34})
	_, err := c.Uint(16)
	require.NoError(t, err)
	assert.Equal(t, 0, c.Remaining())

	c.Reset(0)
	v, err := c.Uint(8)
	require.NoError(t, err)
	assert.Equal(t, uint64(0x12), v)
}
