// Package merkle builds and verifies the Merkle trees transactions are
// committed to inside a block header, including the partial Merkle
// branch an SPV client receives in a merkleblock message.
package merkle

import "github.com/satoshinet/p2pcore/chainhash"

// nextPowerOfTwo returns the smallest power of two >= n.
func nextPowerOfTwo(n int) int {
	if n == 0 {
		return 0
	}
	if n&(n-1) == 0 {
		return n
	}
	p := 1
	for p < n {
		p <<= 1
	}
	return p
}

// hashPair returns the double-SHA-256 of the concatenation of left and
// right, the interior-node rule used throughout the tree.
func hashPair(left, right chainhash.Hash) chainhash.Hash {
	var buf [chainhash.HashSize * 2]byte
	copy(buf[:chainhash.HashSize], left[:])
	copy(buf[chainhash.HashSize:], right[:])
	return chainhash.DoubleSum(buf[:])
}

// BuildTreeStore builds a full Merkle tree from leaf hashes and returns
// it as a linear array: the leaves first, then each level of interior
// nodes, with the root as the final element. An odd node at any level
// is paired with itself (the duplicate-last-node rule) rather than left
// unpaired.
func BuildTreeStore(leaves []chainhash.Hash) []chainhash.Hash {
	if len(leaves) == 0 {
		return nil
	}

	nextPoT := nextPowerOfTwo(len(leaves))
	arraySize := nextPoT*2 - 1
	nodes := make([]chainhash.Hash, arraySize)
	present := make([]bool, arraySize)

	for i, h := range leaves {
		nodes[i] = h
		present[i] = true
	}

	offset := nextPoT
	for i := 0; i < arraySize-1; i += 2 {
		switch {
		case !present[i]:
			// no children; parent stays absent too.
		case !present[i+1]:
			nodes[offset] = hashPair(nodes[i], nodes[i])
			present[offset] = true
		default:
			nodes[offset] = hashPair(nodes[i], nodes[i+1])
			present[offset] = true
		}
		offset++
	}

	return nodes
}

// CalcRoot computes the Merkle root over leaves without retaining the
// interior nodes. It returns the zero hash for an empty leaf set.
func CalcRoot(leaves []chainhash.Hash) chainhash.Hash {
	if len(leaves) == 0 {
		return chainhash.ZeroHash
	}
	if len(leaves) == 1 {
		return leaves[0]
	}

	level := make([]chainhash.Hash, len(leaves))
	copy(level, leaves)

	for len(level) > 1 {
		next := make([]chainhash.Hash, 0, (len(level)+1)/2)
		for i := 0; i < len(level); i += 2 {
			if i+1 == len(level) {
				next = append(next, hashPair(level[i], level[i]))
			} else {
				next = append(next, hashPair(level[i], level[i+1]))
			}
		}
		level = next
	}
	return level[0]
}
