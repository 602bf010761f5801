package service

import "errors"

var (
	// ErrKeyPairMismatch is returned by LoadKeyPair when the supplied private
	// key does not match the public key published in the directory.
	ErrKeyPairMismatch = errors.New("private key does not match directory public key")

	// ErrMissingSelfKey is returned when the owner has no decryptable
	// self-addressed hc-party key, so keychain material cannot be protected.
	ErrMissingSelfKey = errors.New("no self hc-party key available")

	// ErrMissingKeychainCertificate is returned when a keychain operation
	// needs a certificate that is present neither side of the sync.
	ErrMissingKeychainCertificate = errors.New("no keychain certificate")
)
