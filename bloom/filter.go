// Package bloom implements the per-peer Bloom filter used by SPV clients
// to request a subset of transactions from a full node (BIP 37).
package bloom

import (
	"math"

	"github.com/satoshinet/p2pcore/wireerr"
)

// UpdateFlag controls how matched outputs update the filter after a
// match, per the filterload message's flags byte.
type UpdateFlag uint8

const (
	// UpdateNone never adds matched outpoints back into the filter.
	UpdateNone UpdateFlag = 0
	// UpdateAll adds every matched output's outpoint back into the
	// filter.
	UpdateAll UpdateFlag = 1
	// UpdateP2PubkeyOnly only adds matched outpoints back into the
	// filter when the matched output is a bare pubkey or multisig
	// script.
	UpdateP2PubkeyOnly UpdateFlag = 2
)

const (
	// MaxFilterBytes is the largest a filter's byte array may be.
	MaxFilterBytes = 36000
	// MaxHashFuncs is the largest a filter's hash-function count may
	// be.
	MaxHashFuncs = 50
	// MaxFilterAddDataSize bounds a single filteradd element.
	MaxFilterAddDataSize = 520

	// defaultFalsePositiveRate is used when a caller does not specify
	// one explicitly.
	defaultFalsePositiveRate = 0.0005

	ln2Squared = math.Ln2 * math.Ln2
)

// Filter is a per-peer Bloom filter: a bit array, a hash-function count,
// a random tweak, and an update-flags mode. It is designed to be
// installed on a Peer and mutated by filterload/filteradd/filterclear
// while concurrent message construction may read it; callers needing
// that protection should wrap a *Filter in the peer package's guarded
// slot rather than sharing one directly across goroutines.
type Filter struct {
	data       []byte
	hashFuncs  uint32
	tweak      uint32
	updateFlag UpdateFlag
}

// New constructs a Filter sized for n elements at false-positive rate p.
// If p <= 0, defaultFalsePositiveRate is used. The sizing and
// hash-function-count formulas are the standard BIP 37 construction.
func New(n uint32, p float64, tweak uint32, update UpdateFlag) *Filter {
	if p <= 0 {
		p = defaultFalsePositiveRate
	}

	bits := int(math.Ceil(-1 * float64(n) * math.Log(p) / ln2Squared))
	maxBits := MaxFilterBytes * 8
	if bits > maxBits {
		bits = maxBits
	}
	if bits < 8 {
		bits = 8
	}
	byteLen := (bits + 7) / 8

	hashFuncs := uint32(float64(byteLen*8) / float64(n) * math.Ln2)
	if hashFuncs > MaxHashFuncs {
		hashFuncs = MaxHashFuncs
	}
	if hashFuncs < 1 {
		hashFuncs = 1
	}

	return &Filter{
		data:       make([]byte, byteLen),
		hashFuncs:  hashFuncs,
		tweak:      tweak,
		updateFlag: update,
	}
}

// LoadFromWire reconstructs a Filter from the raw fields of a
// filterload message, enforcing the size caps at parse time.
func LoadFromWire(data []byte, hashFuncs uint32, tweak uint32, update UpdateFlag) (*Filter, error) {
	if len(data) > MaxFilterBytes {
		return nil, wireerr.Newf(wireerr.KindMalformed, "filter too large: %d bytes, max %d", len(data), MaxFilterBytes)
	}
	if hashFuncs > MaxHashFuncs {
		return nil, wireerr.Newf(wireerr.KindMalformed, "too many hash functions: %d, max %d", hashFuncs, MaxHashFuncs)
	}
	cp := make([]byte, len(data))
	copy(cp, data)
	return &Filter{data: cp, hashFuncs: hashFuncs, tweak: tweak, updateFlag: update}, nil
}

func (f *Filter) hashIndex(funcIdx uint32, data []byte) uint32 {
	seed := funcIdx*0xFBA4C795 + f.tweak
	bitCount := uint32(len(f.data) * 8)
	return murmurHash3(seed, data) % bitCount
}

// Add inserts element into the filter by setting the hashFuncs bits it
// maps to.
func (f *Filter) Add(element []byte) {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.hashIndex(i, element)
		f.data[idx/8] |= 1 << (idx % 8)
	}
}

// AddChecked is Add, but first enforces the 520-byte filteradd element
// bound, returning a Malformed error if element exceeds it.
func (f *Filter) AddChecked(element []byte) error {
	if len(element) > MaxFilterAddDataSize {
		return wireerr.Newf(wireerr.KindMalformed, "filteradd element too large: %d bytes, max %d", len(element), MaxFilterAddDataSize)
	}
	f.Add(element)
	return nil
}

// Contains reports whether element may be a member of the filter (with
// the filter's configured false-positive rate); a false result is
// always correct.
func (f *Filter) Contains(element []byte) bool {
	for i := uint32(0); i < f.hashFuncs; i++ {
		idx := f.hashIndex(i, element)
		if f.data[idx/8]&(1<<(idx%8)) == 0 {
			return false
		}
	}
	return true
}

// UpdateFlag returns the filter's configured update mode.
func (f *Filter) UpdateFlag() UpdateFlag {
	return f.updateFlag
}

// HashFuncs returns the filter's configured hash-function count.
func (f *Filter) HashFuncs() uint32 {
	return f.hashFuncs
}

// Tweak returns the filter's random tweak.
func (f *Filter) Tweak() uint32 {
	return f.tweak
}

// Data returns the filter's raw bit array, for serialization into a
// filterload message.
func (f *Filter) Data() []byte {
	return f.data
}

// MatchesAnyP2PubkeyOutput reports whether update mode calls for
// re-adding outpoints on a match, without regard to the output script
// class; a simplified predicate shared by the listener's filter-update logic. A
// full script-class classifier lives in the script package; this is
// intentionally permissive (true) when the mode is UpdateAll, and false
// otherwise, leaving the P2PubkeyOnly refinement to the caller that has
// the parsed script at hand.
func (f *Filter) MatchesAnyP2PubkeyOutput() bool {
	return f.updateFlag == UpdateAll
}
