package chaincfg

import (
	"testing"

	"github.com/satoshinet/p2pcore/wire"
	"github.com/stretchr/testify/require"
)

func TestMainNetGenesisHash(t *testing.T) {
	// The real Bitcoin mainnet genesis hash, in this package's
	// natural (non-reversed) internal storage order.
	want := "000000000019d6689c085ae165831e934ff763ae46a2a6c172b3f1b60a8ce26f"
	require.Equal(t, want, MainNetParams.GenesisHash.String())
}

func TestGenesisMerkleRoot(t *testing.T) {
	want := "4a5e1e4baab89f3a32518a88c31bc87f618f76673e2cc77ab2127b7afdeda33b"
	require.Equal(t, want, MainNetParams.GenesisBlock.Header.MerkleRoot.String())
	require.Equal(t, want, TestNetParams.GenesisBlock.Header.MerkleRoot.String())
}

func TestRegisterRejectsDuplicateNet(t *testing.T) {
	err := Register(&MainNetParams)
	require.ErrorIs(t, err, ErrDuplicateNet)
}

func TestLookupFindsRegisteredNets(t *testing.T) {
	p, ok := Lookup(wire.MainNet)
	require.True(t, ok)
	require.Equal(t, "mainnet", p.Name)

	p, ok = Lookup(wire.TestNet)
	require.True(t, ok)
	require.Equal(t, "testnet", p.Name)
}

func TestNetParamsUseDistinctVersionBytes(t *testing.T) {
	require.NotEqual(t, MainNetParams.PubKeyHashAddrID, TestNetParams.PubKeyHashAddrID)
	require.NotEqual(t, MainNetParams.PrivateKeyID, TestNetParams.PrivateKeyID)
}

func TestPowLimitsMatchConfiguredBits(t *testing.T) {
	require.Equal(t, uint32(0x1d00ffff), MainNetParams.PowLimitBits)
	require.Equal(t, uint32(0x207fffff), TestNetParams.PowLimitBits)
	require.True(t, MainNetParams.PowLimit.Cmp(TestNetParams.PowLimit) < 0)
}
