package bcbuf

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestVarIntBoundaries(t *testing.T) {
	cases := []struct {
		v    uint64
		size int
	}{
		{0xFC, 1},
		{0xFD, 3},
		{0x10000, 5},
		{0x100000000, 9},
	}
	for _, c := range cases {
		buf := NewWriteBuffer(9)
		buf.PutVarInt(c.v)
		require.Len(t, buf.Bytes(), c.size)
		require.Equal(t, c.size, VarIntSize(c.v))

		r := NewBuffer(buf.Bytes())
		got, err := r.GetVarInt()
		require.NoError(t, err)
		require.Equal(t, c.v, got)
	}
}

func TestVarIntRoundTrip(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		v := rapid.Uint64().Draw(rt, "v")
		buf := NewWriteBuffer(9)
		buf.PutVarInt(v)

		r := NewBuffer(buf.Bytes())
		got, err := r.GetVarIntStrict()
		require.NoError(rt, err)
		require.Equal(rt, v, got)
		require.Equal(rt, 0, r.Remaining())
	})
}

func TestVarIntRejectsNonMinimal(t *testing.T) {
	// 0x00 fits in one byte; encoding it with the 0xFD prefix is
	// non-minimal and must be rejected on peer-originated fields.
	buf := NewWriteBuffer(3)
	buf.PutUint8(varIntPrefix16)
	buf.PutUint16LE(0)

	_, err := NewBuffer(buf.Bytes()).GetVarIntStrict()
	require.Error(t, err)
	var nm ErrNonMinimalVarInt
	require.ErrorAs(t, err, &nm)

	// GetVarInt (non-strict) still decodes it for internal callers.
	r := NewBuffer(buf.Bytes())
	v, err := r.GetVarInt()
	require.NoError(t, err)
	require.Equal(t, uint64(0), v)
}

func TestEndOfData(t *testing.T) {
	buf := NewBuffer([]byte{0xFD, 0x01})
	_, err := buf.GetVarInt()
	require.Error(t, err)
	var eod ErrEndOfData
	require.ErrorAs(t, err, &eod)
}

func TestVarBytesCap(t *testing.T) {
	buf := NewWriteBuffer(8)
	buf.PutVarBytes(make([]byte, 10))

	r := NewBuffer(buf.Bytes())
	_, err := r.GetVarBytes(5)
	require.Error(t, err)
	var tooLong ErrVarBytesTooLong
	require.ErrorAs(t, err, &tooLong)
}

func TestFixedWidthRoundTrip(t *testing.T) {
	buf := NewWriteBuffer(0)
	buf.PutUint16LE(0xBEEF)
	buf.PutUint32LE(0xDEADBEEF)
	buf.PutUint64LE(0x0123456789ABCDEF)

	r := NewBuffer(buf.Bytes())
	u16, err := r.GetUint16LE()
	require.NoError(t, err)
	require.Equal(t, uint16(0xBEEF), u16)

	u32, err := r.GetUint32LE()
	require.NoError(t, err)
	require.Equal(t, uint32(0xDEADBEEF), u32)

	u64, err := r.GetUint64LE()
	require.NoError(t, err)
	require.Equal(t, uint64(0x0123456789ABCDEF), u64)
}
