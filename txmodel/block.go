package txmodel

import (
	"sync"

	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/merkle"
)

// Block is a header plus its full ordered transaction list. The Merkle
// tree is built lazily on the first call to MerkleRoot rather than at
// construction, since most callers that only need the header (e.g. an
// SPV client relaying inventory) never touch it.
type Block struct {
	Header       *BlockHeader
	Transactions []*Transaction

	treeOnce sync.Once
	tree     []chainhash.Hash
}

// NewBlock constructs a Block from an already-parsed header and
// transaction list.
func NewBlock(header *BlockHeader, txs []*Transaction) *Block {
	return &Block{Header: header, Transactions: txs}
}

// ParseBlock decodes a full block: an 80-byte header followed by a
// var-int transaction count and that many transactions.
func ParseBlock(buf *bcbuf.Buffer) (*Block, error) {
	header, err := ParseBlockHeader(buf)
	if err != nil {
		return nil, err
	}

	count, err := buf.GetVarIntStrict()
	if err != nil {
		return nil, err
	}

	txs := make([]*Transaction, count)
	for i := range txs {
		tx, err := ParseTransaction(buf)
		if err != nil {
			return nil, err
		}
		txs[i] = tx
	}

	return NewBlock(header, txs), nil
}

// Serialize encodes the full block: header, var-int tx count, then each
// transaction's canonical serialization.
func (b *Block) Serialize() []byte {
	buf := bcbuf.NewWriteBuffer(1024)
	buf.PutBytes(b.Header.Serialize())
	buf.PutVarInt(uint64(len(b.Transactions)))
	for _, tx := range b.Transactions {
		buf.PutBytes(tx.Bytes())
	}
	return buf.Bytes()
}

// MerkleRoot returns the root of the block's transaction Merkle tree,
// building and caching the tree on first call.
func (b *Block) MerkleRoot() chainhash.Hash {
	b.treeOnce.Do(func() {
		leaves := make([]chainhash.Hash, len(b.Transactions))
		for i, tx := range b.Transactions {
			leaves[i] = tx.Hash()
		}
		b.tree = merkle.BuildTreeStore(leaves)
	})
	if len(b.tree) == 0 {
		return chainhash.ZeroHash
	}
	return b.tree[len(b.tree)-1]
}
