package keys

import (
	"math/big"

	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcec/v2/ecdsa"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/satoshinet/p2pcore/wireerr"
)

// curveOrder is the order of the secp256k1 base point, used to decide
// whether a signature's S value is in the canonical "low-S" half of
// the field.
var curveOrder, _ = new(big.Int).SetString("FFFFFFFFFFFFFFFFFFFFFFFFFFFFFFFEBAAEDCE6AF48A03BBFD25E8CD0364141", 16)

var halfOrder = new(big.Int).Rsh(curveOrder, 1)

// Signature is an ECDSA (R, S) pair.
type Signature struct {
	R, S *big.Int
}

// Sign produces a deterministic (RFC 6979) signature over hash, which
// must already be the digest to sign (typically a double-SHA-256). The
// nonce derivation is delegated to the secp256k1 reference
// implementation, so two callers signing the same digest with the same
// key always produce the same signature, and the result is always in
// canonical low-S form.
func Sign(k *ECKey, hash []byte) (*Signature, error) {
	if k.Priv == nil {
		return nil, wireerr.New(wireerr.KindCryptographicFailure, "cannot sign: key pair has no private key")
	}
	dcrPriv := secp256k1.PrivKeyFromBytes(k.Priv.Serialize())
	dcrSig := dcrecdsa.Sign(dcrPriv, hash)

	sig, err := ParseSignature(dcrSig.Serialize())
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindCryptographicFailure, "re-parsing signature: %v", err)
	}
	return sig, nil
}

// Verify reports whether sig is a valid signature over hash by pub.
func (sig *Signature) Verify(hash []byte, pub *btcec.PublicKey) bool {
	parsed, err := ecdsa.ParseDERSignature(sig.Serialize())
	if err != nil {
		return false
	}
	return parsed.Verify(hash, pub)
}

// Serialize encodes sig as a DER SEQUENCE of two INTEGERs, the format
// used in a transaction's scriptSig (preceding its trailing
// sighash-type byte).
func (sig *Signature) Serialize() []byte {
	rBytes := derInt(sig.R)
	sBytes := derInt(sig.S)

	body := make([]byte, 0, 4+len(rBytes)+len(sBytes))
	body = append(body, 0x02, byte(len(rBytes)))
	body = append(body, rBytes...)
	body = append(body, 0x02, byte(len(sBytes)))
	body = append(body, sBytes...)

	out := make([]byte, 0, 2+len(body))
	out = append(out, 0x30, byte(len(body)))
	out = append(out, body...)
	return out
}

// derInt encodes n as a DER INTEGER's content bytes: big-endian,
// minimal length, with a leading zero byte inserted if the high bit
// would otherwise be mistaken for a sign bit.
func derInt(n *big.Int) []byte {
	b := n.Bytes()
	if len(b) == 0 {
		return []byte{0x00}
	}
	if b[0]&0x80 != 0 {
		return append([]byte{0x00}, b...)
	}
	return b
}

// ParseSignature decodes a strict DER-encoded (R, S) signature.
func ParseSignature(der []byte) (*Signature, error) {
	if len(der) < 8 || der[0] != 0x30 {
		return nil, wireerr.New(wireerr.KindMalformed, "signature is not a DER sequence")
	}
	seqLen := int(der[1])
	if seqLen+2 != len(der) {
		return nil, wireerr.Newf(wireerr.KindMalformed, "signature sequence declares length %d, have %d bytes", seqLen, len(der)-2)
	}

	rest := der[2:]
	r, rest, err := parseDERInt(rest)
	if err != nil {
		return nil, err
	}
	s, rest, err := parseDERInt(rest)
	if err != nil {
		return nil, err
	}
	if len(rest) != 0 {
		return nil, wireerr.Newf(wireerr.KindMalformed, "%d trailing bytes after signature", len(rest))
	}
	return &Signature{R: r, S: s}, nil
}

func parseDERInt(b []byte) (*big.Int, []byte, error) {
	if len(b) < 3 || b[0] != 0x02 {
		return nil, nil, wireerr.New(wireerr.KindMalformed, "expected a DER INTEGER")
	}
	n := int(b[1])
	if n == 0 || len(b) < 2+n {
		return nil, nil, wireerr.New(wireerr.KindMalformed, "truncated DER INTEGER")
	}
	return new(big.Int).SetBytes(b[2 : 2+n]), b[2+n:], nil
}

// Canonicalize rewrites sig in place to the low-S form Bitcoin requires
// of standard transactions: if S is greater than half the curve order,
// it is replaced by (order - S).
func (sig *Signature) Canonicalize() *Signature {
	if sig.S.Cmp(halfOrder) > 0 {
		sig.S = new(big.Int).Sub(curveOrder, sig.S)
	}
	return sig
}
