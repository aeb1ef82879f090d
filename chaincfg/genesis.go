package chaincfg

import (
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/txmodel"
)

// genesisCoinbaseTx is the coinbase transaction shared by the genesis
// block of every network this package registers.
var genesisCoinbaseTx = mustTx(1, []txmodel.TransactionInput{
	{
		Index:       0,
		PreviousOut: txmodel.NewOutPoint(chainhash.Hash{}, -1),
		SignatureScript: []byte{
			0x04, 0xff, 0xff, 0x00, 0x1d, 0x01, 0x04, 0x45,
			0x54, 0x68, 0x65, 0x20, 0x54, 0x69, 0x6d, 0x65,
			0x73, 0x20, 0x30, 0x33, 0x2f, 0x4a, 0x61, 0x6e,
			0x2f, 0x32, 0x30, 0x30, 0x39, 0x20, 0x43, 0x68,
			0x61, 0x6e, 0x63, 0x65, 0x6c, 0x6c, 0x6f, 0x72,
			0x20, 0x6f, 0x6e, 0x20, 0x62, 0x72, 0x69, 0x6e,
			0x6b, 0x20, 0x6f, 0x66, 0x20, 0x73, 0x65, 0x63,
			0x6f, 0x6e, 0x64, 0x20, 0x62, 0x61, 0x69, 0x6c,
			0x6f, 0x75, 0x74, 0x20, 0x66, 0x6f, 0x72, 0x20,
			0x62, 0x61, 0x6e, 0x6b, 0x73,
		},
		Sequence: 0xffffffff,
	},
}, []txmodel.TransactionOutput{
	{
		Index: 0,
		Value: 0x12a05f200,
		PkScript: []byte{
			0x41, 0x04, 0x67, 0x8a, 0xfd, 0xb0, 0xfe, 0x55,
			0x48, 0x27, 0x19, 0x67, 0xf1, 0xa6, 0x71, 0x30,
			0xb7, 0x10, 0x5c, 0xd6, 0xa8, 0x28, 0xe0, 0x39,
			0x09, 0xa6, 0x79, 0x62, 0xe0, 0xea, 0x1f, 0x61,
			0xde, 0xb6, 0x49, 0xf6, 0xbc, 0x3f, 0x4c, 0xef,
			0x38, 0xc4, 0xf3, 0x55, 0x04, 0xe5, 0x1e, 0xc1,
			0x12, 0xde, 0x5c, 0x38, 0x4d, 0xf7, 0xba, 0x0b,
			0x8d, 0x57, 0x8a, 0x4c, 0x70, 0x2b, 0x6b, 0xf1,
			0x1d, 0x5f, 0xac,
		},
	},
}, 0)

// mustTx wraps txmodel.NewTransaction for use in package-level genesis
// initializers, panicking on error since it is only ever called with
// hard-coded, known-good values.
func mustTx(version int32, in []txmodel.TransactionInput, out []txmodel.TransactionOutput, lockTime uint32) *txmodel.Transaction {
	tx, err := txmodel.NewTransaction(version, in, out, lockTime)
	if err != nil {
		panic(err)
	}
	return tx
}

// newGenesisBlock builds a genesis block from the shared coinbase and the
// given header fields, computing the header's hash the same way
// ParseBlockHeader would for a block arriving over the wire.
func newGenesisBlock(timestamp int64, bits, nonce uint32) *txmodel.Block {
	header := &txmodel.BlockHeader{
		Version:   1,
		PrevBlock: chainhash.Hash{},
		Timestamp: timestamp,
		Bits:      bits,
		Nonce:     nonce,
	}
	blk := txmodel.NewBlock(header, []*txmodel.Transaction{genesisCoinbaseTx})
	header.MerkleRoot = blk.MerkleRoot()
	header.Hash = chainhash.DoubleSum(header.Serialize()).Reversed()
	return blk
}

// mainNetGenesisBlock is the real Bitcoin mainnet genesis block: mined
// 2009-01-03, the famous "Chancellor on brink of second bailout for
// banks" coinbase.
var mainNetGenesisBlock = newGenesisBlock(0x495fab29, 0x1d00ffff, 0x7c2bac1d)

// testNetGenesisBlock reuses the same coinbase under the lower,
// always-passing proof-of-work limit (0x207fffff) that this package's
// test network advertises, mined 2011-02-02.
var testNetGenesisBlock = newGenesisBlock(1296688602, 0x207fffff, 2)
