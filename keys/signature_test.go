package keys

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/satoshinet/p2pcore/chainhash"
)

func TestSignVerifyRoundTrip(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)

	digest := chainhash.Sum([]byte("a message worth signing"))
	sig, err := Sign(k, digest[:])
	require.NoError(t, err)

	require.True(t, sig.Verify(digest[:], k.Pub))
}

func TestSignIsDeterministic(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)

	digest := chainhash.Sum([]byte("determinism matters for interop"))
	a, err := Sign(k, digest[:])
	require.NoError(t, err)
	b, err := Sign(k, digest[:])
	require.NoError(t, err)

	require.Equal(t, a.Serialize(), b.Serialize())
}

func TestVerifyRejectsWrongKey(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)
	other, err := GenerateECKey(0)
	require.NoError(t, err)

	digest := chainhash.Sum([]byte("signed by k"))
	sig, err := Sign(k, digest[:])
	require.NoError(t, err)

	require.False(t, sig.Verify(digest[:], other.Pub))
}

func TestSignatureDERRoundTrip(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)
	digest := chainhash.Sum([]byte("der round trip"))
	sig, err := Sign(k, digest[:])
	require.NoError(t, err)

	der := sig.Serialize()
	parsed, err := ParseSignature(der)
	require.NoError(t, err)
	require.Equal(t, sig.R, parsed.R)
	require.Equal(t, sig.S, parsed.S)
	require.True(t, parsed.Verify(digest[:], k.Pub))
}

func TestCanonicalizeProducesLowS(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)
	digest := chainhash.Sum([]byte("low-s check"))
	sig, err := Sign(k, digest[:])
	require.NoError(t, err)

	require.True(t, sig.S.Cmp(halfOrder) <= 0)

	highS := new(big.Int).Sub(curveOrder, sig.S)
	flipped := &Signature{R: sig.R, S: highS}
	require.True(t, flipped.S.Cmp(halfOrder) > 0)
	flipped.Canonicalize()
	require.True(t, flipped.S.Cmp(halfOrder) <= 0)
	require.Equal(t, sig.S, flipped.S)
}
