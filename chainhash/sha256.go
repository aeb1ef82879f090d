package chainhash

import "crypto/sha256"

// sum256 computes the plain (single-round) SHA-256 digest of b as a Hash.
func sum256(b []byte) Hash {
	return Hash(sha256.Sum256(b))
}
