package keys

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)
	priv := k.Priv.Serialize()

	enc, err := EncryptPrivateKey(priv, "correct horse battery staple")
	require.NoError(t, err)
	require.Len(t, enc.IV, 16)
	require.Len(t, enc.Salt, 8)

	decrypted, err := enc.Decrypt("correct horse battery staple")
	require.NoError(t, err)
	require.Equal(t, priv, decrypted)
}

func TestDecryptRejectsWrongPassphrase(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)
	priv := k.Priv.Serialize()

	enc, err := EncryptPrivateKey(priv, "right passphrase")
	require.NoError(t, err)

	_, err = enc.Decrypt("wrong passphrase")
	require.Error(t, err)
}

func TestEncryptUsesFreshSaltAndIVEachCall(t *testing.T) {
	k, err := GenerateECKey(0)
	require.NoError(t, err)
	priv := k.Priv.Serialize()

	a, err := EncryptPrivateKey(priv, "same passphrase")
	require.NoError(t, err)
	b, err := EncryptPrivateKey(priv, "same passphrase")
	require.NoError(t, err)

	require.NotEqual(t, a.Salt, b.Salt)
	require.NotEqual(t, a.IV, b.IV)
	require.NotEqual(t, a.Ciphertext, b.Ciphertext)
}
