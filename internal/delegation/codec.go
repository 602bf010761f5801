// SPDX-License-Identifier: Apache-2.0

// Package delegation encodes and decodes the three parallel delegation
// tables attached to every encrypted entity: delegations (secret foreign
// keys), cryptedForeignKeys (encrypted parent references) and encryptionKeys
// (content secret ids).
//
// All three tables share one entry format: the AES-GCM ciphertext of
// "<entityId>:<secretId>" under the pairwise key between the entry's owner
// and its delegate. The codec never mutates input entities; it clones,
// extends and returns.
package delegation

import (
	"errors"
	"fmt"
	"strings"

	"github.com/medvault/go-med-vault/internal/crypto"
	"github.com/medvault/go-med-vault/internal/directory"
	"github.com/medvault/go-med-vault/internal/keymanager"
	"github.com/medvault/go-med-vault/internal/logger"
)

// ErrInvalidParameter is the sentinel wrapped by every
// [InvalidParameterError]; match with [errors.Is].
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports an empty required identifier. It is raised
// before any cryptographic work begins.
type InvalidParameterError struct {
	// Method is the codec operation that rejected the call.
	Method string
	// Param is the name of the offending parameter.
	Param string
	// Args echoes the call arguments for diagnostics.
	Args []string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("%s: parameter %s is empty (args: %s)", e.Method, e.Param, strings.Join(e.Args, ", "))
}

func (e *InvalidParameterError) Unwrap() error { return ErrInvalidParameter }

// requireParam returns an *InvalidParameterError when value is empty.
func requireParam(method, param, value string, args ...string) error {
	if value == "" {
		return &InvalidParameterError{Method: method, Param: param, Args: args}
	}
	return nil
}

// Codec builds and opens delegation entries. Construct with [NewCodec].
type Codec struct {
	cipher   crypto.CipherProvider
	keys     *keymanager.Manager
	resolver *directory.Resolver
	log      *logger.Logger
}

// NewCodec constructs a Codec on top of the pairwise key manager and the
// owner directory.
func NewCodec(cipher crypto.CipherProvider, keys *keymanager.Manager, resolver *directory.Resolver, log *logger.Logger) *Codec {
	return &Codec{
		cipher:   cipher,
		keys:     keys,
		resolver: resolver,
		log:      log,
	}
}

// payload builds the cleartext of a delegation entry.
func payload(entityID, secretID string) []byte {
	return []byte(entityID + ":" + secretID)
}

// splitPayload splits a decrypted entry into entity id and secret id.
func splitPayload(cleartext []byte) (entityID, secretID string, ok bool) {
	entityID, secretID, ok = strings.Cut(string(cleartext), ":")
	return entityID, secretID, ok
}
