package txmodel

import "math/big"

// CompactToBig expands the 32-bit "compact" proof-of-work target
// encoding (as stored in a block header's Bits field) into its full
// big-integer value. The encoding is a base-256 floating point form:
// the high byte is an unsigned exponent, the low 23 bits are the
// mantissa, and bit 23 is the sign.
func CompactToBig(compact uint32) *big.Int {
	mantissa := compact & 0x007fffff
	isNegative := compact&0x00800000 != 0
	exponent := compact >> 24

	var bn *big.Int
	if exponent <= 3 {
		mantissa >>= 8 * (3 - exponent)
		bn = big.NewInt(int64(mantissa))
	} else {
		bn = big.NewInt(int64(mantissa))
		bn.Lsh(bn, uint(8*(exponent-3)))
	}

	if isNegative {
		bn = bn.Neg(bn)
	}
	return bn
}

// BigToCompact is the inverse of CompactToBig: it packs a big-integer
// target back into the 32-bit compact encoding, rounding toward zero
// when the value needs more precision than three mantissa bytes allow.
func BigToCompact(n *big.Int) uint32 {
	if n.Sign() == 0 {
		return 0
	}

	isNegative := n.Sign() < 0
	work := new(big.Int).Abs(n)

	exponent := uint((work.BitLen() + 7) / 8)
	var mantissa uint32
	if exponent <= 3 {
		mantissa = uint32(work.Int64())
		mantissa <<= 8 * (3 - exponent)
	} else {
		shifted := new(big.Int).Rsh(work, 8*(exponent-3))
		mantissa = uint32(shifted.Int64())
	}

	if mantissa&0x00800000 != 0 {
		mantissa >>= 8
		exponent++
	}

	compact := exponent<<24 | mantissa
	if isNegative {
		compact |= 0x00800000
	}
	return compact
}
