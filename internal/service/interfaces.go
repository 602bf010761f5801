// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"

	"github.com/medvault/go-med-vault/internal/keymanager"
)

// Keystore is the local persistence contract the facade needs: owner key
// pairs for the key manager plus named blobs for the keychain certificate.
// *keystore.Store satisfies it.
type Keystore interface {
	keymanager.PrivateKeyStore

	// SaveBlob upserts the named blob.
	SaveBlob(ctx context.Context, name, value string) error
	// GetBlob returns the named blob, or a wrapped keystore.ErrBlobNotFound.
	GetBlob(ctx context.Context, name string) (string, error)
	// DeleteBlob removes the named blob; removing an absent blob is not an
	// error.
	DeleteBlob(ctx context.Context, name string) error
}
