package keys

import (
	"github.com/btcsuite/btcd/btcec/v2"

	secp256k1 "github.com/decred/dcrd/dcrec/secp256k1/v4"
	dcrecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"

	"github.com/satoshinet/p2pcore/bcbuf"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/wireerr"
)

// messageMagic is prepended to every message before it is hashed and
// signed, so a signature over a plain Bitcoin message can never be
// replayed as a signature over wire protocol data or vice versa.
const messageMagic = "Bitcoin Signed Message:\n"

// SignCompact produces the 65-byte recoverable signature format: a
// header byte encoding the recovery id and whether the signing key's
// public key is compressed, followed by R and S, each 32 bytes.
func SignCompact(k *ECKey, hash []byte) ([]byte, error) {
	if k.Priv == nil {
		return nil, wireerr.New(wireerr.KindCryptographicFailure, "cannot sign: key pair has no private key")
	}
	dcrPriv := secp256k1.PrivKeyFromBytes(k.Priv.Serialize())
	return dcrecdsa.SignCompact(dcrPriv, hash, k.Compressed), nil
}

// RecoverCompact recovers the public key that produced a 65-byte
// compact signature over hash.
func RecoverCompact(sig, hash []byte) (pub *btcec.PublicKey, compressed bool, err error) {
	dcrPub, wasCompressed, err := dcrecdsa.RecoverCompact(sig, hash)
	if err != nil {
		return nil, false, wireerr.Newf(wireerr.KindCryptographicFailure, "recovering public key: %v", err)
	}
	pub, err = btcec.ParsePubKey(dcrPub.SerializeCompressed())
	if err != nil {
		return nil, false, wireerr.Newf(wireerr.KindCryptographicFailure, "converting recovered public key: %v", err)
	}
	return pub, wasCompressed, nil
}

// messageDigest reproduces the exact byte sequence a Bitcoin Signed
// Message hashes: the magic string and the message, each encoded as a
// wire var-length string, then double-SHA-256'd.
func messageDigest(message string) chainhash.Hash {
	buf := bcbuf.NewWriteBuffer(len(messageMagic) + len(message) + 2)
	buf.PutVarString(messageMagic)
	buf.PutVarString(message)
	return chainhash.DoubleSum(buf.Bytes())
}

// SignMessage signs message in the standard Bitcoin Signed Message
// format and returns the compact 65-byte signature.
func SignMessage(k *ECKey, message string) ([]byte, error) {
	digest := messageDigest(message)
	return SignCompact(k, digest[:])
}

// VerifyMessage recovers the signer of a Bitcoin Signed Message and
// reports whether it matches expected.
func VerifyMessage(sig []byte, message string, expected *btcec.PublicKey) (bool, error) {
	digest := messageDigest(message)
	pub, _, err := RecoverCompact(sig, digest[:])
	if err != nil {
		return false, err
	}
	return pub.IsEqual(expected), nil
}
