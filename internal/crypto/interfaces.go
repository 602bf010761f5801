package crypto

import "crypto/rsa"

//go:generate mockgen -source=interfaces.go -destination=../mock/cipher_provider_mock.go -package=mock

// CipherProvider abstracts the cryptographic primitives the engine is built
// on: CSPRNG reads, SHA-256 digests, RSA keypair handling and AES symmetric
// encryption. It knows nothing about owners, delegations or persistence.
//
// The engine only ever calls these primitives; swapping the provider (e.g.
// for an HSM-backed one, or a failing mock in tests) changes no other code.
//
// Encoding conventions shared by all implementations:
//   - RSA public keys travel as SPKI DER, private keys as PKCS#8 DER;
//   - RSA encryption is OAEP with SHA-256;
//   - AES keys are raw 32-byte (256-bit) strings;
//   - AES ciphertext blobs are nonce ‖ ciphertext (AES-256-GCM).
type CipherProvider interface {
	// RandomBytes returns n bytes read from a CSPRNG.
	RandomBytes(n int) ([]byte, error)

	// DigestSHA256 returns the SHA-256 digest of data.
	DigestSHA256(data []byte) []byte

	// GenerateRSAKeyPair generates a fresh 2048-bit RSA keypair.
	GenerateRSAKeyPair() (*rsa.PrivateKey, error)

	// ImportRSAPublicKey parses an SPKI DER public key.
	ImportRSAPublicKey(spkiDER []byte) (*rsa.PublicKey, error)

	// ImportRSAPrivateKey parses a PKCS#8 DER private key.
	ImportRSAPrivateKey(pkcs8DER []byte) (*rsa.PrivateKey, error)

	// ExportRSAPublicKey serialises a public key to SPKI DER.
	ExportRSAPublicKey(pub *rsa.PublicKey) ([]byte, error)

	// ExportRSAPrivateKey serialises a private key to PKCS#8 DER. This is the
	// canonical byte encoding used for Shamir splitting and keystore storage.
	ExportRSAPrivateKey(priv *rsa.PrivateKey) ([]byte, error)

	// EncryptRSA encrypts plaintext under pub with RSA-OAEP(SHA-256).
	EncryptRSA(pub *rsa.PublicKey, plaintext []byte) ([]byte, error)

	// DecryptRSA decrypts an RSA-OAEP(SHA-256) ciphertext with priv.
	DecryptRSA(priv *rsa.PrivateKey, ciphertext []byte) ([]byte, error)

	// ImportAESKey validates raw symmetric key material and returns it in the
	// form expected by EncryptAES/DecryptAES. Only 256-bit keys are accepted.
	ImportAESKey(raw []byte) ([]byte, error)

	// EncryptAES encrypts plaintext under key with AES-256-GCM and returns
	// the blob nonce ‖ ciphertext.
	EncryptAES(key, plaintext []byte) ([]byte, error)

	// DecryptAES opens a nonce ‖ ciphertext blob produced by EncryptAES.
	// Returns an error if the key is wrong or the blob is corrupted
	// (authentication-tag mismatch).
	DecryptAES(key, blob []byte) ([]byte, error)
}
