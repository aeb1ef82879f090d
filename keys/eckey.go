// Package keys implements secp256k1 key pairs and the address, WIF, and
// encrypted-key encodings built on top of them.
package keys

import (
	"github.com/btcsuite/btcd/btcec/v2"
	"github.com/btcsuite/btcd/btcutil/base58"

	"github.com/satoshinet/p2pcore/chaincfg"
	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/wireerr"
)

// ECKey is a secp256k1 key pair. Priv is nil for a public-key-only
// ECKey, e.g. one recovered from a signature or parsed from an address.
type ECKey struct {
	Priv       *btcec.PrivateKey
	Pub        *btcec.PublicKey
	Compressed bool
	CreatedAt  int64
	Encrypted  *EncryptedPrivateKey
}

// GenerateECKey creates a new random key pair, serialized in compressed
// form.
func GenerateECKey(createdAt int64) (*ECKey, error) {
	priv, err := btcec.NewPrivateKey()
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindCryptographicFailure, "generating key pair: %v", err)
	}
	return &ECKey{
		Priv:       priv,
		Pub:        priv.PubKey(),
		Compressed: true,
		CreatedAt:  createdAt,
	}, nil
}

// NewECKeyFromPrivateKeyBytes builds an ECKey from a 32-byte private
// scalar.
func NewECKeyFromPrivateKeyBytes(b []byte, compressed bool, createdAt int64) (*ECKey, error) {
	if len(b) != 32 {
		return nil, wireerr.Newf(wireerr.KindMalformed, "private key scalar is %d bytes, want 32", len(b))
	}
	priv := btcec.PrivKeyFromBytes(b)
	return &ECKey{
		Priv:       priv,
		Pub:        priv.PubKey(),
		Compressed: compressed,
		CreatedAt:  createdAt,
	}, nil
}

// NewECKeyFromPublicKeyBytes builds a public-key-only ECKey from its
// compressed (33-byte) or uncompressed (65-byte) serialization.
func NewECKeyFromPublicKeyBytes(b []byte) (*ECKey, error) {
	pub, err := btcec.ParsePubKey(b)
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindCryptographicFailure, "parsing public key: %v", err)
	}
	return &ECKey{
		Pub:        pub,
		Compressed: len(b) == 33,
	}, nil
}

// HasPrivateKey reports whether k can sign.
func (k *ECKey) HasPrivateKey() bool { return k.Priv != nil }

// SerializePublicKey returns the public key in the form (compressed or
// uncompressed) this key pair was created with.
func (k *ECKey) SerializePublicKey() []byte {
	if k.Compressed {
		return k.Pub.SerializeCompressed()
	}
	return k.Pub.SerializeUncompressed()
}

// Address derives the Base58Check P2PKH address for this key's public
// key under params: version byte, then RIPEMD-160(SHA-256(pubkey)).
func (k *ECKey) Address(params *chaincfg.Params) string {
	hash := chainhash.Hash160(k.SerializePublicKey())
	return base58.CheckEncode(hash[:], params.PubKeyHashAddrID)
}

// ParseAddress decodes a Base58Check P2PKH address into its 20-byte
// public key hash, checking the version byte against params.
func ParseAddress(addr string, params *chaincfg.Params) ([20]byte, error) {
	var out [20]byte
	decoded, version, err := base58.CheckDecode(addr)
	if err != nil {
		return out, wireerr.Newf(wireerr.KindMalformed, "decoding address %q: %v", addr, err)
	}
	if version != params.PubKeyHashAddrID {
		return out, wireerr.Newf(wireerr.KindInvalid, "address %q has version byte %#02x, network %q expects %#02x", addr, version, params.Name, params.PubKeyHashAddrID)
	}
	if len(decoded) != 20 {
		return out, wireerr.Newf(wireerr.KindMalformed, "address %q payload is %d bytes, want 20", addr, len(decoded))
	}
	copy(out[:], decoded)
	return out, nil
}

// WIF encodes this key's private scalar in Wallet Import Format:
// version byte, 32-byte scalar, an optional 0x01 compression flag, all
// Base58Check-encoded.
func (k *ECKey) WIF(params *chaincfg.Params) (string, error) {
	if k.Priv == nil {
		return "", wireerr.New(wireerr.KindCryptographicFailure, "cannot dump WIF: key pair has no private key")
	}
	payload := k.Priv.Serialize()
	if k.Compressed {
		payload = append(payload, 0x01)
	}
	return base58.CheckEncode(payload, params.PrivateKeyID), nil
}

// ParseWIF decodes a Wallet Import Format string into a key pair,
// checking the version byte against params.
func ParseWIF(s string, params *chaincfg.Params) (*ECKey, error) {
	decoded, version, err := base58.CheckDecode(s)
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindMalformed, "decoding WIF: %v", err)
	}
	if version != params.PrivateKeyID {
		return nil, wireerr.Newf(wireerr.KindInvalid, "WIF has version byte %#02x, network %q expects %#02x", version, params.Name, params.PrivateKeyID)
	}

	compressed := false
	switch len(decoded) {
	case 33:
		if decoded[32] != 0x01 {
			return nil, wireerr.Newf(wireerr.KindMalformed, "WIF compression flag byte is %#02x, want 0x01", decoded[32])
		}
		compressed = true
		decoded = decoded[:32]
	case 32:
	default:
		return nil, wireerr.Newf(wireerr.KindMalformed, "WIF payload is %d bytes, want 32 or 33", len(decoded))
	}

	return NewECKeyFromPrivateKeyBytes(decoded, compressed, 0)
}
