package wire

import (
	"net"
	"testing"

	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/txmodel"
	"github.com/stretchr/testify/require"
)

func sampleTx(t *testing.T) *txmodel.Transaction {
	t.Helper()
	in := txmodel.TransactionInput{
		Index:           0,
		PreviousOut:     txmodel.NewOutPoint(chainhash.Hash{}, -1),
		SignatureScript: []byte{0x01, 0x02},
		Sequence:        0xffffffff,
	}
	out := txmodel.TransactionOutput{
		Index:    0,
		Value:    5000000000,
		PkScript: []byte{0x76, 0xa9, 0x14},
	}
	tx, err := txmodel.NewTransaction(1, []txmodel.TransactionInput{in}, []txmodel.TransactionOutput{out}, 0)
	require.NoError(t, err)
	return tx
}

func sampleBlock(t *testing.T, n int) *txmodel.Block {
	t.Helper()
	txs := make([]*txmodel.Transaction, n)
	for i := range txs {
		in := txmodel.TransactionInput{
			Index:           0,
			PreviousOut:     txmodel.NewOutPoint(chainhash.Hash{}, int32(i)),
			SignatureScript: []byte{byte(i)},
			Sequence:        0xffffffff,
		}
		out := txmodel.TransactionOutput{
			Index:    0,
			Value:    int64(1000 + i),
			PkScript: []byte{0x51},
		}
		tx, err := txmodel.NewTransaction(1, []txmodel.TransactionInput{in}, []txmodel.TransactionOutput{out}, 0)
		require.NoError(t, err)
		txs[i] = tx
	}

	header := &txmodel.BlockHeader{
		Version:   1,
		PrevBlock: chainhash.Hash{},
		Timestamp: 1600000000,
		Bits:      0x1d00ffff,
		Nonce:     0,
	}
	blk := txmodel.NewBlock(header, txs)
	header.MerkleRoot = blk.MerkleRoot()
	return blk
}

func sampleNetAddress() NetAddress {
	return *NewNetAddressIPPort(net.ParseIP("127.0.0.1"), 8333, SFNodeNetwork)
}
