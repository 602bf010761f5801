package models

// KeyPair is the portable at-rest form of an owner's RSA keypair as stored in
// the local keystore. Both fields are hex-encoded DER: SPKI for the public
// key, PKCS#8 for the private key.
//
// The private key never leaves the local keystore in this form; when shared
// for recovery it is split into Shamir partitions first.
type KeyPair struct {
	// PublicKey is the hex-encoded SPKI DER public key.
	PublicKey string `json:"publicKey"`

	// PrivateKey is the hex-encoded PKCS#8 DER private key.
	PrivateKey string `json:"privateKey"`
}
