package txmodel

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCompactToBigKnownValues(t *testing.T) {
	// 0x1d00ffff is Bitcoin mainnet's genesis difficulty bits.
	got := CompactToBig(0x1d00ffff)
	want := new(big.Int).Lsh(big.NewInt(0x00ffff), 8*(0x1d-3))
	require.Equal(t, 0, got.Cmp(want))
}

func TestCompactBigRoundTrip(t *testing.T) {
	for _, compact := range []uint32{0x1d00ffff, 0x207fffff, 0x1b0404cb, 0x01010000} {
		n := CompactToBig(compact)
		require.Equal(t, compact, BigToCompact(n))
	}
}
