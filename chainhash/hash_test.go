package chainhash

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestZeroHashIsZero(t *testing.T) {
	var h Hash
	require.True(t, h.IsZero())
	require.True(t, h.Equal(ZeroHash))
}

func TestReversedRoundTrips(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), HashSize, HashSize).Draw(rt, "bytes")
		h, err := NewHash(raw)
		require.NoError(rt, err)
		require.Equal(rt, h, h.Reversed().Reversed())
	})
}

func TestStringIsHexOfHeldBytes(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		raw := rapid.SliceOfN(rapid.Byte(), HashSize, HashSize).Draw(rt, "bytes")
		h, err := NewHash(raw)
		require.NoError(rt, err)

		require.Equal(rt, hexEncode(raw), h.String())

		back, err := NewHashFromStr(h.String())
		require.NoError(rt, err)
		require.Equal(rt, h, back)
	})
}

func hexEncode(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0xf]
	}
	return string(out)
}

func TestDoubleSum(t *testing.T) {
	got := DoubleSum([]byte("hello"))
	first := Sum([]byte("hello"))
	want := Sum(first[:])
	require.Equal(t, want, got)
}

func TestHash160Length(t *testing.T) {
	out := Hash160([]byte("some public key bytes"))
	require.Len(t, out, 20)
}
