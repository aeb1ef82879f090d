package keys

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"

	"github.com/satoshinet/p2pcore/chainhash"
	"github.com/satoshinet/p2pcore/wireerr"
)

// EncryptedPrivateKey is a passphrase-protected container for a 32-byte
// private key scalar: AES-256-CBC with PKCS#7 padding, keyed by
// double-SHA-256(salt || SHA-256(passphrase)).
type EncryptedPrivateKey struct {
	Ciphertext []byte
	IV         []byte
	Salt       []byte
}

func deriveKey(passphrase string, salt []byte) []byte {
	passHash := chainhash.Sum([]byte(passphrase))
	combined := append(append([]byte{}, salt...), passHash[:]...)
	key := chainhash.DoubleSum(combined)
	return key[:]
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	pad := blockSize - len(b)%blockSize
	padded := make([]byte, len(b)+pad)
	copy(padded, b)
	for i := len(b); i < len(padded); i++ {
		padded[i] = byte(pad)
	}
	return padded
}

func pkcs7Unpad(b []byte) ([]byte, error) {
	if len(b) == 0 {
		return nil, wireerr.New(wireerr.KindCryptographicFailure, "cannot unpad empty plaintext")
	}
	pad := int(b[len(b)-1])
	if pad == 0 || pad > len(b) || pad > aes.BlockSize {
		return nil, wireerr.New(wireerr.KindCryptographicFailure, "invalid PKCS#7 padding")
	}
	for _, p := range b[len(b)-pad:] {
		if int(p) != pad {
			return nil, wireerr.New(wireerr.KindCryptographicFailure, "invalid PKCS#7 padding")
		}
	}
	return b[:len(b)-pad], nil
}

// EncryptPrivateKey encrypts a 32-byte private key scalar under
// passphrase, generating a random salt and IV.
func EncryptPrivateKey(privKey []byte, passphrase string) (*EncryptedPrivateKey, error) {
	salt := make([]byte, 8)
	if _, err := rand.Read(salt); err != nil {
		return nil, wireerr.Newf(wireerr.KindCryptographicFailure, "generating salt: %v", err)
	}

	key := deriveKey(passphrase, salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindCryptographicFailure, "building cipher: %v", err)
	}

	iv := make([]byte, aes.BlockSize)
	if _, err := rand.Read(iv); err != nil {
		return nil, wireerr.Newf(wireerr.KindCryptographicFailure, "generating IV: %v", err)
	}

	plaintext := pkcs7Pad(privKey, aes.BlockSize)
	ciphertext := make([]byte, len(plaintext))
	cipher.NewCBCEncrypter(block, iv).CryptBlocks(ciphertext, plaintext)

	return &EncryptedPrivateKey{Ciphertext: ciphertext, IV: iv, Salt: salt}, nil
}

// Decrypt recovers the private key scalar protected by e, given the
// same passphrase it was encrypted with.
func (e *EncryptedPrivateKey) Decrypt(passphrase string) ([]byte, error) {
	if len(e.Ciphertext)%aes.BlockSize != 0 {
		return nil, wireerr.New(wireerr.KindMalformed, "ciphertext is not a whole number of AES blocks")
	}
	if len(e.IV) != aes.BlockSize {
		return nil, wireerr.Newf(wireerr.KindMalformed, "IV is %d bytes, want %d", len(e.IV), aes.BlockSize)
	}

	key := deriveKey(passphrase, e.Salt)
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, wireerr.Newf(wireerr.KindCryptographicFailure, "building cipher: %v", err)
	}

	plaintext := make([]byte, len(e.Ciphertext))
	cipher.NewCBCDecrypter(block, e.IV).CryptBlocks(plaintext, e.Ciphertext)

	return pkcs7Unpad(plaintext)
}
