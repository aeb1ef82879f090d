package merkle

import (
	"fmt"

	"github.com/satoshinet/p2pcore/chainhash"
)

// PartialTree is the compact proof a merkleblock message carries: enough
// of a block's Merkle tree to prove a chosen subset of transactions is
// included, without sending every transaction hash. It mirrors the
// construction Bitcoin Core calls CPartialMerkleTree.
//
// Flags packs one bit per tree node visited in depth-first order, least
// significant bit of each byte first, zero-padded in the final byte.
// There is no third-party bit-stream library in the dependency set that
// packs bits in this order (the one candidate, a Gorilla-style bit
// writer, packs most-significant-bit first per byte), so the packer
// below is a direct, dependency-free implementation of the order the
// wire format requires.
type PartialTree struct {
	NumLeaves int
	Hashes    []chainhash.Hash
	Flags     []byte
}

func treeWidth(numLeaves, height int) int {
	return (numLeaves + (1 << height) - 1) >> height
}

func treeHeight(numLeaves int) int {
	h := 0
	for treeWidth(numLeaves, h) > 1 {
		h++
	}
	return h
}

// Build constructs a partial Merkle tree proving the inclusion of every
// leaf for which matches[i] is true. len(leaves) must equal len(matches).
func Build(leaves []chainhash.Hash, matches []bool) (*PartialTree, error) {
	if len(leaves) != len(matches) {
		return nil, fmt.Errorf("merkle: leaves and matches length mismatch: %d != %d", len(leaves), len(matches))
	}
	if len(leaves) == 0 {
		return &PartialTree{}, nil
	}

	b := &builder{
		leaves:  leaves,
		matches: matches,
		height:  treeHeight(len(leaves)),
	}
	b.traverse(b.height, 0)

	return &PartialTree{
		NumLeaves: len(leaves),
		Hashes:    b.hashes,
		Flags:     packBits(b.bits),
	}, nil
}

type builder struct {
	leaves  []chainhash.Hash
	matches []bool
	height  int
	bits    []bool
	hashes  []chainhash.Hash
}

func (b *builder) calcHash(height, pos int) chainhash.Hash {
	if height == 0 {
		return b.leaves[pos]
	}
	left := b.calcHash(height-1, pos*2)
	if treeWidth(len(b.leaves), height-1) > pos*2+1 {
		right := b.calcHash(height-1, pos*2+1)
		return hashPair(left, right)
	}
	return hashPair(left, left)
}

func (b *builder) traverse(height, pos int) {
	parentOfMatch := false
	from := pos << uint(height)
	to := (pos + 1) << uint(height)
	if to > len(b.leaves) {
		to = len(b.leaves)
	}
	for i := from; i < to; i++ {
		if b.matches[i] {
			parentOfMatch = true
			break
		}
	}
	b.bits = append(b.bits, parentOfMatch)

	if height == 0 || !parentOfMatch {
		b.hashes = append(b.hashes, b.calcHash(height, pos))
		return
	}

	b.traverse(height-1, pos*2)
	if treeWidth(len(b.leaves), height-1) > pos*2+1 {
		b.traverse(height-1, pos*2+1)
	}
}

// ExtractMatches reconstructs the Merkle root implied by the partial
// tree, along with the matched leaf hashes and their positions in leaf
// order. It returns an error if the encoded tree is malformed (too few
// or too many bits/hashes consumed).
func (t *PartialTree) ExtractMatches() (root chainhash.Hash, matchedHashes []chainhash.Hash, matchedIndexes []int, err error) {
	if t.NumLeaves == 0 {
		return chainhash.ZeroHash, nil, nil, nil
	}

	bits := unpackBits(t.Flags)
	x := &extractor{
		numLeaves: t.NumLeaves,
		height:    treeHeight(t.NumLeaves),
		bits:      bits,
		hashes:    t.Hashes,
	}
	root, err = x.traverse(x.height, 0)
	if err != nil {
		return chainhash.Hash{}, nil, nil, err
	}
	if x.bitPos != len(bits) && !allFalse(bits[x.bitPos:]) {
		return chainhash.Hash{}, nil, nil, fmt.Errorf("merkle: not all flag bits consumed")
	}
	if x.hashPos != len(x.hashes) {
		return chainhash.Hash{}, nil, nil, fmt.Errorf("merkle: not all hashes consumed")
	}
	return root, x.matched, x.matchedIdx, nil
}

type extractor struct {
	numLeaves  int
	height     int
	bits       []bool
	hashes     []chainhash.Hash
	bitPos     int
	hashPos    int
	matched    []chainhash.Hash
	matchedIdx []int
}

func (x *extractor) traverse(height, pos int) (chainhash.Hash, error) {
	if x.bitPos >= len(x.bits) {
		return chainhash.Hash{}, fmt.Errorf("merkle: ran out of flag bits")
	}
	parentOfMatch := x.bits[x.bitPos]
	x.bitPos++

	if height == 0 || !parentOfMatch {
		if x.hashPos >= len(x.hashes) {
			return chainhash.Hash{}, fmt.Errorf("merkle: ran out of hashes")
		}
		h := x.hashes[x.hashPos]
		x.hashPos++
		if height == 0 && parentOfMatch {
			x.matched = append(x.matched, h)
			x.matchedIdx = append(x.matchedIdx, pos)
		}
		return h, nil
	}

	left, err := x.traverse(height-1, pos*2)
	if err != nil {
		return chainhash.Hash{}, err
	}
	var right chainhash.Hash
	if treeWidth(x.numLeaves, height-1) > pos*2+1 {
		right, err = x.traverse(height-1, pos*2+1)
		if err != nil {
			return chainhash.Hash{}, err
		}
	} else {
		right = left
	}
	return hashPair(left, right), nil
}

func packBits(bits []bool) []byte {
	out := make([]byte, (len(bits)+7)/8)
	for i, bit := range bits {
		if bit {
			out[i/8] |= 1 << uint(i%8)
		}
	}
	return out
}

func unpackBits(b []byte) []bool {
	out := make([]bool, len(b)*8)
	for i := range out {
		out[i] = b[i/8]&(1<<uint(i%8)) != 0
	}
	return out
}

func allFalse(bits []bool) bool {
	for _, b := range bits {
		if b {
			return false
		}
	}
	return true
}
