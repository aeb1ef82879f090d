// Package chainhash provides the 256-bit hash value type used throughout
// the protocol, along with the hashing routines that feed it.
package chainhash

import (
	"encoding/hex"
	"fmt"
	"math/big"

	"golang.org/x/crypto/ripemd160"
)

// HashSize is the number of bytes in a Hash256.
const HashSize = 32

// ErrHashStrSize describes an error when a hash string is not the
// expected number of hex characters.
type ErrHashStrSize struct {
	Got int
}

func (e ErrHashStrSize) Error() string {
	return fmt.Sprintf("max hash string length is %d bytes, got %d", HashSize*2, e.Got)
}

// Hash is a 256-bit hash held in natural (big-endian) byte order.
// Transaction and block identifiers are the double-SHA-256 digest
// byte-reversed into this order. The wire encoding reverses the held
// bytes (see Reversed); the text display prints them as held (see
// String).
type Hash [HashSize]byte

// ZeroHash is the Hash value of all zero bytes, used for the outpoint of
// a coinbase input and as a sentinel "no hash" value.
var ZeroHash Hash

// IsZero reports whether h is the all-zero sentinel hash.
func (h Hash) IsZero() bool {
	return h == ZeroHash
}

// Equal reports whether h and other hold the same bytes.
func (h Hash) Equal(other Hash) bool {
	return h == other
}

// CloneBytes returns a newly allocated copy of the hash's bytes in
// natural (big-endian) order.
func (h Hash) CloneBytes() []byte {
	out := make([]byte, HashSize)
	copy(out, h[:])
	return out
}

// Reversed returns a new Hash holding the same bytes in reverse order.
// This is the form the wire protocol serializes a hash in, and the form
// taken by the var-length locator/stop hashes in getblocks/getheaders.
func (h Hash) Reversed() Hash {
	var out Hash
	for i := 0; i < HashSize; i++ {
		out[i] = h[HashSize-1-i]
	}
	return out
}

// String returns the conventional big-endian hex display form: the
// bytes held by h, in the order they are held, matching how block
// explorers and RPC responses print transaction and block hashes.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// NewHash constructs a Hash from a natural-order byte slice, which must
// be exactly HashSize bytes long.
func NewHash(b []byte) (Hash, error) {
	var h Hash
	if len(b) != HashSize {
		return h, fmt.Errorf("invalid hash length of %d, want %d", len(b), HashSize)
	}
	copy(h[:], b)
	return h, nil
}

// NewHashFromStr parses a big-endian display-form hex string (the form
// String returns) back into a Hash.
func NewHashFromStr(s string) (Hash, error) {
	var h Hash
	if len(s) > HashSize*2 {
		return h, ErrHashStrSize{Got: len(s)}
	}
	// Hex decoders require an even number of digits, so the string is
	// zero-padded on the left exactly as real chain-hash parsers do.
	var padded [HashSize * 2]byte
	for i := range padded {
		padded[i] = '0'
	}
	copy(padded[HashSize*2-len(s):], s)
	if _, err := hex.Decode(h[:], padded[:]); err != nil {
		return Hash{}, err
	}
	return h, nil
}

// Big returns a big-endian big.Int view of the hash, used to compare a
// block hash numerically against a proof-of-work target.
func (h Hash) Big() *big.Int {
	return new(big.Int).SetBytes(h[:])
}

// Sum returns the single SHA-256 digest of b.
func Sum(b []byte) Hash {
	return sum256(b)
}

// DoubleSum returns SHA-256(SHA-256(b)), the hash used for transaction
// and block identifiers.
func DoubleSum(b []byte) Hash {
	first := sum256(b)
	return sum256(first[:])
}

// Hash160 returns RIPEMD-160(SHA-256(b)), used for address and
// public-key hashing.
func Hash160(b []byte) [20]byte {
	sha := sum256(b)
	r := ripemd160.New()
	r.Write(sha[:])
	var out [20]byte
	copy(out[:], r.Sum(nil))
	return out
}
