package bytesio

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestReaderIntegers(t *testing.T) {
	buf := []byte{0x01, 0x02, 0x03, 0x04, 0x05, 0x06, 0x07, 0x08}
	r := New(buf)

	require.Equal(t, 8, r.Len())

	u8, err := r.Uint8(0)
	require.NoError(t, err)
	require.Equal(t, uint8(0x01), u8)

	u16, err := r.Uint16(0)
	require.NoError(t, err)
	require.Equal(t, uint16(0x0201), u16)

	u32, err := r.Uint32(0)
	require.NoError(t, err)
	require.Equal(t, uint32(0x04030201), u32)

	u64, err := r.Uint64(0)
	require.NoError(t, err)
	require.Equal(t, uint64(0x0807060504030201), u64)
}

func TestReaderSliceBounds(t *testing.T) {
	r := New(make([]byte, 4))

	s, err := r.Slice(0, 4)
	require.NoError(t, err)
	require.Len(t, s, 4)

	_, err = r.Slice(0, 5)
	require.ErrorIs(t, err, ErrInvalidOffset)

	_, err = r.Slice(-1, 2)
	require.ErrorIs(t, err, ErrInvalidOffset)

	_, err = r.Uint32(1)
	require.ErrorIs(t, err, ErrInvalidOffset)
}
