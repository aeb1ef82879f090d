package wire

import (
	"fmt"

	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/merkle"
	"github.com/satoshinet/p2pcore/txmodel"
)

// maxMerkleHashesPerMsg mirrors the block transaction-count cap: a
// partial tree can carry at most one hash per leaf.
const maxMerkleHashesPerMsg = 1_000_000

// maxMerkleFlagBytes bounds the flag byte vector at roughly one bit per
// possible leaf.
const maxMerkleFlagBytes = maxMerkleHashesPerMsg / 8

// MsgMerkleBlock carries a block header plus a partial Merkle branch
// proving a subset of its transactions, used to reset or service a
// Bloom filter without transferring the full block.
type MsgMerkleBlock struct {
	Header        *txmodel.BlockHeader
	TotalTxCount  uint32
	Tree          *merkle.PartialTree
	MatchedHashes []chainhash.Hash
}

// NewMsgMerkleBlock builds a merkleblock message from a block and a
// caller-supplied predicate over transaction index, proving the
// inclusion of every transaction the predicate matches.
func NewMsgMerkleBlock(blk *txmodel.Block, matches func(i int) bool) (*MsgMerkleBlock, error) {
	leaves := make([]chainhash.Hash, len(blk.Transactions))
	matched := make([]bool, len(blk.Transactions))
	for i, tx := range blk.Transactions {
		leaves[i] = tx.Hash()
		matched[i] = matches(i)
	}

	tree, err := merkle.Build(leaves, matched)
	if err != nil {
		return nil, err
	}
	return &MsgMerkleBlock{
		Header:       blk.Header,
		TotalTxCount: uint32(len(blk.Transactions)),
		Tree:         tree,
	}, nil
}

func (m *MsgMerkleBlock) Command() string { return CmdMerkleBlock }

func (m *MsgMerkleBlock) Encode(buf *bcbuf.Buffer, pver uint32) error {
	if len(m.Tree.Hashes) > maxMerkleHashesPerMsg {
		return fmt.Errorf("merkleblock carries %d hashes, max %d", len(m.Tree.Hashes), maxMerkleHashesPerMsg)
	}
	if len(m.Tree.Flags) > maxMerkleFlagBytes {
		return fmt.Errorf("merkleblock carries %d flag bytes, max %d", len(m.Tree.Flags), maxMerkleFlagBytes)
	}

	buf.PutBytes(m.Header.Serialize())
	buf.PutUint32LE(m.TotalTxCount)

	buf.PutVarInt(uint64(len(m.Tree.Hashes)))
	for _, h := range m.Tree.Hashes {
		buf.PutBytes(bcbuf.Reverse(h[:]))
	}

	buf.PutVarInt(uint64(len(m.Tree.Flags)))
	buf.PutBytes(m.Tree.Flags)
	return nil
}

// Decode parses the header and partial tree, then reconstructs the
// Merkle root from the partial tree and verifies it equals the header's
// stated root.
func (m *MsgMerkleBlock) Decode(buf *bcbuf.Buffer, pver uint32) error {
	header, err := txmodel.ParseBlockHeader(buf)
	if err != nil {
		return err
	}
	m.Header = header

	totalTx, err := buf.GetUint32LE()
	if err != nil {
		return err
	}
	m.TotalTxCount = totalTx

	hashCount, err := buf.GetVarIntStrict()
	if err != nil {
		return err
	}
	if hashCount > maxMerkleHashesPerMsg {
		return fmt.Errorf("merkleblock carries %d hashes, max %d", hashCount, maxMerkleHashesPerMsg)
	}
	hashes := make([]chainhash.Hash, hashCount)
	for i := range hashes {
		raw, err := buf.GetBytes(chainhash.HashSize)
		if err != nil {
			return err
		}
		h, err := chainhash.NewHash(bcbuf.Reverse(raw))
		if err != nil {
			return err
		}
		hashes[i] = h
	}

	flags, err := buf.GetVarBytes(maxMerkleFlagBytes)
	if err != nil {
		return err
	}

	m.Tree = &merkle.PartialTree{
		NumLeaves: int(totalTx),
		Hashes:    hashes,
		Flags:     flags,
	}

	root, matched, _, err := m.Tree.ExtractMatches()
	if err != nil {
		return fmt.Errorf("reconstructing partial merkle tree: %w", err)
	}
	if root != m.Header.MerkleRoot {
		return fmt.Errorf("merkleblock partial tree root %s does not match header root %s", root, m.Header.MerkleRoot)
	}
	m.MatchedHashes = matched
	return nil
}
