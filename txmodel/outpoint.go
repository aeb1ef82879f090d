package txmodel

import "github.com/satoshinet/p2pcore/chainhash"

// OutPoint references a specific output of a specific transaction. An
// index of -1 together with a zero hash denotes a coinbase input.
type OutPoint struct {
	Hash  chainhash.Hash
	Index int32
}

// NewOutPoint constructs an OutPoint.
func NewOutPoint(hash chainhash.Hash, index int32) OutPoint {
	return OutPoint{Hash: hash, Index: index}
}

// IsCoinbase reports whether the outpoint is the coinbase sentinel: a
// zero hash with index -1.
func (o OutPoint) IsCoinbase() bool {
	return o.Index == -1 && o.Hash.IsZero()
}
