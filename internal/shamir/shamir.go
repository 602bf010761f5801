// Package shamir is the secret-sharing engine of the crypto engine: it
// splits a byte string into N shares recoverable by any threshold-subset and
// combines shares back into the original.
//
// The polynomial arithmetic over GF(2^8) is delegated to the
// hashicorp/vault/shamir implementation; this package adds the parameter
// validation the key recovery manager relies on. The degenerate single-notary
// case (share == whole secret) is handled by the caller, not here.
package shamir

import (
	"errors"
	"fmt"

	"github.com/hashicorp/vault/shamir"
)

// Sentinel errors returned for invalid split/combine parameters. Callers
// should use [errors.Is] to match against these values.
var (
	// ErrInvalidParts is returned when the requested number of shares is
	// outside [2, 255].
	ErrInvalidParts = errors.New("parts must be between 2 and 255")

	// ErrInvalidThreshold is returned when the recovery threshold is below 2
	// or above the number of shares.
	ErrInvalidThreshold = errors.New("threshold must be between 2 and parts")

	// ErrTooFewShares is returned by Combine when fewer than two shares are
	// supplied. Threshold enforcement beyond that is the caller's job: the
	// underlying scheme cannot detect an under-threshold combine by itself.
	ErrTooFewShares = errors.New("at least two shares are required")
)

// Split divides secret into parts shares, any threshold of which reconstruct
// it. Each share is one byte longer than the secret (a GF(256) x-coordinate
// tag is appended). Fewer than threshold shares reveal nothing about the
// secret.
func Split(secret []byte, parts, threshold int) ([][]byte, error) {
	if len(secret) == 0 {
		return nil, errors.New("cannot split an empty secret")
	}
	if parts < 2 || parts > 255 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidParts, parts)
	}
	if threshold < 2 || threshold > parts {
		return nil, fmt.Errorf("%w: got threshold %d for %d parts", ErrInvalidThreshold, threshold, parts)
	}

	shares, err := shamir.Split(secret, parts, threshold)
	if err != nil {
		return nil, fmt.Errorf("split secret: %w", err)
	}
	return shares, nil
}

// Combine reconstructs the original secret from shares produced by [Split].
//
// The scheme interpolates whatever it is given: combining fewer shares than
// the original threshold yields garbage, not an error, so callers must
// enforce the threshold themselves before calling Combine.
func Combine(shares [][]byte) ([]byte, error) {
	if len(shares) < 2 {
		return nil, ErrTooFewShares
	}

	secret, err := shamir.Combine(shares)
	if err != nil {
		return nil, fmt.Errorf("combine shares: %w", err)
	}
	return secret, nil
}
