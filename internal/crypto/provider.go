// SPDX-License-Identifier: Apache-2.0

package crypto

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"io"
)

// AESKeySize is the size in bytes of every symmetric key handled by the
// engine (AES-256).
const AESKeySize = 32

// rsaKeyBits is the modulus size of generated RSA keypairs.
const rsaKeyBits = 2048

// provider is the private stdlib implementation of [CipherProvider].
type provider struct{}

// NewProvider constructs the default [CipherProvider] backed by the Go
// standard library: crypto/rand for randomness, RSA-OAEP(SHA-256) for
// asymmetric operations and AES-256-GCM for symmetric ones.
func NewProvider() CipherProvider {
	return &provider{}
}

// RandomBytes implements [CipherProvider]. It reads n bytes from the OS
// CSPRNG. Returns an error if the random read fails.
func (p *provider) RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(rand.Reader, buf); err != nil {
		return nil, fmt.Errorf("read random bytes: %w", err)
	}
	return buf, nil
}

// DigestSHA256 implements [CipherProvider].
func (p *provider) DigestSHA256(data []byte) []byte {
	sum := sha256.Sum256(data)
	return sum[:]
}

// GenerateRSAKeyPair implements [CipherProvider].
func (p *provider) GenerateRSAKeyPair() (*rsa.PrivateKey, error) {
	key, err := rsa.GenerateKey(rand.Reader, rsaKeyBits)
	if err != nil {
		return nil, fmt.Errorf("generate rsa keypair: %w", err)
	}
	return key, nil
}

// ImportRSAPublicKey implements [CipherProvider].
func (p *provider) ImportRSAPublicKey(spkiDER []byte) (*rsa.PublicKey, error) {
	key, err := x509.ParsePKIXPublicKey(spkiDER)
	if err != nil {
		return nil, fmt.Errorf("parse spki public key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PublicKey)
	if !ok {
		return nil, fmt.Errorf("public key is %T, not RSA", key)
	}
	return rsaKey, nil
}

// ImportRSAPrivateKey implements [CipherProvider].
func (p *provider) ImportRSAPrivateKey(pkcs8DER []byte) (*rsa.PrivateKey, error) {
	key, err := x509.ParsePKCS8PrivateKey(pkcs8DER)
	if err != nil {
		return nil, fmt.Errorf("parse pkcs8 private key: %w", err)
	}
	rsaKey, ok := key.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("private key is %T, not RSA", key)
	}
	return rsaKey, nil
}

// ExportRSAPublicKey implements [CipherProvider].
func (p *provider) ExportRSAPublicKey(pub *rsa.PublicKey) ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(pub)
	if err != nil {
		return nil, fmt.Errorf("marshal spki public key: %w", err)
	}
	return der, nil
}

// ExportRSAPrivateKey implements [CipherProvider].
func (p *provider) ExportRSAPrivateKey(priv *rsa.PrivateKey) ([]byte, error) {
	der, err := x509.MarshalPKCS8PrivateKey(priv)
	if err != nil {
		return nil, fmt.Errorf("marshal pkcs8 private key: %w", err)
	}
	return der, nil
}

// EncryptRSA implements [CipherProvider].
func (p *provider) EncryptRSA(pub *rsa.PublicKey, plaintext []byte) ([]byte, error) {
	ct, err := rsa.EncryptOAEP(sha256.New(), rand.Reader, pub, plaintext, nil)
	if err != nil {
		return nil, fmt.Errorf("rsa encrypt: %w", err)
	}
	return ct, nil
}

// DecryptRSA implements [CipherProvider].
func (p *provider) DecryptRSA(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error) {
	pt, err := rsa.DecryptOAEP(sha256.New(), rand.Reader, priv, ciphertext, nil)
	if err != nil {
		return nil, fmt.Errorf("rsa decrypt: %w", err)
	}
	return pt, nil
}

// ImportAESKey implements [CipherProvider]. Only 256-bit keys are legal in
// the engine; shorter WebCrypto-style keys are rejected here rather than
// deep inside a failing GCM call.
func (p *provider) ImportAESKey(raw []byte) ([]byte, error) {
	if len(raw) != AESKeySize {
		return nil, fmt.Errorf("invalid aes key length: %d", len(raw))
	}
	key := make([]byte, AESKeySize)
	copy(key, raw)
	return key, nil
}

// EncryptAES implements [CipherProvider]. A random 12-byte nonce is prepended
// to the ciphertext so that the decryption side can locate it:
// blob = nonce ‖ ciphertext.
func (p *provider) EncryptAES(key, plaintext []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonce := make([]byte, gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return nil, fmt.Errorf("generate nonce: %w", err)
	}

	ct := gcm.Seal(nil, nonce, plaintext, nil)
	return append(nonce, ct...), nil
}

// DecryptAES implements [CipherProvider].
func (p *provider) DecryptAES(key, blob []byte) ([]byte, error) {
	gcm, err := newGCM(key)
	if err != nil {
		return nil, err
	}

	nonceSize := gcm.NonceSize()
	if len(blob) < nonceSize {
		return nil, fmt.Errorf("ciphertext too short")
	}

	nonce, ct := blob[:nonceSize], blob[nonceSize:]
	pt, err := gcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("aes decrypt: %w", err)
	}
	return pt, nil
}

func newGCM(key []byte) (cipher.AEAD, error) {
	if len(key) != AESKeySize {
		return nil, fmt.Errorf("invalid aes key length: %d", len(key))
	}
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("create cipher: %w", err)
	}
	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("create gcm: %w", err)
	}
	return gcm, nil
}
