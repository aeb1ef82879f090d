package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSignMessageVerifyMessageRoundTrip(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)

	sig, err := SignMessage(k, "hello from a peer")
	require.NoError(t, err)
	require.Len(t, sig, 65)

	ok, err := VerifyMessage(sig, "hello from a peer", k.Pub)
	require.NoError(t, err)
	require.True(t, ok)
}

func TestVerifyMessageRejectsTamperedMessage(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)

	sig, err := SignMessage(k, "original message")
	require.NoError(t, err)

	ok, err := VerifyMessage(sig, "tampered message", k.Pub)
	require.NoError(t, err)
	require.False(t, ok)
}

func TestRecoverCompactReportsCompressionFlag(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)

	sig, err := SignMessage(k, "compression flag")
	require.NoError(t, err)

	digest := messageDigest("compression flag")
	_, compressed, err := RecoverCompact(sig, digest[:])
	require.NoError(t, err)
	require.Equal(t, k.Compressed, compressed)
}
