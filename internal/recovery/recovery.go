// SPDX-License-Identifier: Apache-2.0

// Package recovery implements social recovery of data owner private keys.
//
// An owner's exported private key is split among trusted notaries: each
// notary receives one share, AES-encrypted under the owner↔notary pairwise
// key and stored on the owner's record. Any threshold-sized subset of
// notaries can later cooperate to reconstruct the key; fewer reveal
// nothing.
package recovery

import (
	"bytes"
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/medvault/go-med-vault/internal/crypto"
	"github.com/medvault/go-med-vault/internal/directory"
	"github.com/medvault/go-med-vault/internal/keymanager"
	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/internal/shamir"
	"github.com/medvault/go-med-vault/models"
)

// ErrInsufficientShares is returned by ReconstructFromNotaries when fewer
// shares survive decryption than the reconstruction threshold demands.
var ErrInsufficientShares = errors.New("not enough recoverable shares")

// shibboleth is the known plaintext used by VerifyPrivateKey to probe that a
// stored private key matches the owner's published public key.
const shibboleth = "shibboleth"

// Manager performs private key splitting and reconstruction. Construct with
// [NewManager].
type Manager struct {
	cipher   crypto.CipherProvider
	resolver *directory.Resolver
	keys     *keymanager.Manager
	store    keymanager.PrivateKeyStore
	log      *logger.Logger
}

// NewManager constructs a recovery Manager on top of the pairwise key
// manager and the local keystore.
func NewManager(cipher crypto.CipherProvider, resolver *directory.Resolver, keys *keymanager.Manager, store keymanager.PrivateKeyStore, log *logger.Logger) *Manager {
	return &Manager{
		cipher:   cipher,
		resolver: resolver,
		keys:     keys,
		store:    store,
		log:      log,
	}
}

// SplitAmongNotaries splits ownerID's private key among the given notaries
// and persists the encrypted shares on the owner's record.
//
// With a single notary no splitting happens: the notary holds the whole
// exported key. threshold is the number of shares needed to reconstruct;
// 0 means all notaries. Notaries are processed sequentially because each
// step may generate a pairwise key and re-persist the owner. A notary that
// cannot receive its share (no usable key) is logged and skipped; the split
// is best-effort per notary, not atomic.
func (m *Manager) SplitAmongNotaries(ctx context.Context, ownerID string, notaryIDs []string, threshold int) (models.DataOwner, error) {
	if len(notaryIDs) == 0 {
		return nil, fmt.Errorf("split key of owner %s: no notaries given", ownerID)
	}

	privDER, err := m.exportedPrivateKey(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("split key of owner %s: %w", ownerID, err)
	}

	shares := [][]byte{privDER}
	if len(notaryIDs) > 1 {
		if threshold == 0 {
			threshold = len(notaryIDs)
		}
		shares, err = shamir.Split(privDER, len(notaryIDs), threshold)
		if err != nil {
			return nil, fmt.Errorf("split key of owner %s: %w", ownerID, err)
		}
	}

	resolved, err := m.resolver.Resolve(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("split key of owner %s: %w", ownerID, err)
	}
	owner := resolved.Owner

	stored := 0
	for i, notaryID := range notaryIDs {
		updated, dk, err := m.keys.GetOrCreateHcPartyKey(ctx, owner, notaryID)
		if err != nil {
			m.log.Warn().Err(err).
				Str("ownerId", ownerID).
				Str("notaryId", notaryID).
				Msg("skipping notary without usable pairwise key")
			continue
		}
		owner = updated

		blob, err := m.cipher.EncryptAES(dk.Key, shares[i])
		if err != nil {
			m.log.Warn().Err(err).
				Str("ownerId", ownerID).
				Str("notaryId", notaryID).
				Msg("skipping notary, share encryption failed")
			continue
		}
		owner.SetShamirPartition(notaryID, hex.EncodeToString(blob))
		stored++
	}

	if stored == 0 {
		return nil, fmt.Errorf("split key of owner %s: no notary could receive a share", ownerID)
	}

	putResult, err := m.resolver.Put(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("split key of owner %s: %w", ownerID, err)
	}
	return putResult.Owner, nil
}

// ReconstructFromNotaries rebuilds ownerID's private key from the encrypted
// shares held by the given notaries (whose private keys must be loaded in
// this engine instance), persists the reconstructed pair into the keystore
// and makes it available for decryption.
//
// Per-notary failures (missing partition, undecryptable pairwise key or
// share) are logged and the notary excluded. threshold is the number of
// shares required; 0 means all notaries. Returns [ErrInsufficientShares]
// when fewer shares survive.
func (m *Manager) ReconstructFromNotaries(ctx context.Context, ownerID string, notaryIDs []string, threshold int) error {
	if len(notaryIDs) == 0 {
		return fmt.Errorf("reconstruct key of owner %s: no notaries given", ownerID)
	}
	if threshold == 0 {
		threshold = len(notaryIDs)
	}

	resolved, err := m.resolver.Resolve(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("reconstruct key of owner %s: %w", ownerID, err)
	}
	owner := resolved.Owner
	partitions := owner.GetShamirPartitions()
	pairwise := owner.GetHcPartyKeys()

	var shares [][]byte
	for _, notaryID := range notaryIDs {
		share, err := m.decryptShare(ctx, ownerID, notaryID, partitions, pairwise)
		if err != nil {
			m.log.Warn().Err(err).
				Str("ownerId", ownerID).
				Str("notaryId", notaryID).
				Msg("excluding notary from reconstruction")
			continue
		}
		shares = append(shares, share)
	}

	var privDER []byte
	if len(notaryIDs) == 1 {
		if len(shares) == 0 {
			return fmt.Errorf("reconstruct key of owner %s: %w", ownerID, ErrInsufficientShares)
		}
		privDER = shares[0]
	} else {
		if len(shares) < threshold {
			return fmt.Errorf("reconstruct key of owner %s: %d of %d shares recovered: %w", ownerID, len(shares), threshold, ErrInsufficientShares)
		}
		privDER, err = shamir.Combine(shares)
		if err != nil {
			return fmt.Errorf("reconstruct key of owner %s: %w", ownerID, err)
		}
	}

	if err = m.keys.LoadPrivateKey(ctx, ownerID, privDER); err != nil {
		return fmt.Errorf("reconstruct key of owner %s: %w", ownerID, err)
	}

	m.log.Info().Str("ownerId", ownerID).Int("shares", len(shares)).Msg("private key reconstructed")
	return nil
}

// decryptShare recovers one notary's share using the notary's side of the
// owner↔notary pairwise key.
func (m *Manager) decryptShare(ctx context.Context, ownerID, notaryID string, partitions map[string]string, pairwise map[string][2]string) ([]byte, error) {
	partitionHex, ok := partitions[notaryID]
	if !ok {
		return nil, fmt.Errorf("no partition stored for notary")
	}
	pair, ok := pairwise[notaryID]
	if !ok {
		return nil, fmt.Errorf("no pairwise key towards notary")
	}

	dk, err := m.keys.DecryptHcPartyKey(ctx, ownerID, notaryID, pair[1], false)
	if err != nil {
		return nil, err
	}

	blob, err := hex.DecodeString(partitionHex)
	if err != nil {
		return nil, fmt.Errorf("decode partition: %w", err)
	}
	share, err := m.cipher.DecryptAES(dk.Key, blob)
	if err != nil {
		return nil, fmt.Errorf("decrypt partition: %w", err)
	}
	return share, nil
}

// VerifyPrivateKey checks that the private key currently stored for ownerID
// matches the owner's published public key, by encrypting a known plaintext
// with the public key and decrypting it with the stored private key. Used as
// a correctness probe after reconstruction.
func (m *Manager) VerifyPrivateKey(ctx context.Context, ownerID string) (bool, error) {
	resolved, err := m.resolver.Resolve(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("verify key of owner %s: %w", ownerID, err)
	}
	pubHex := resolved.Owner.GetPublicKey()
	if pubHex == "" {
		return false, fmt.Errorf("verify key of owner %s: owner has no public key", ownerID)
	}

	pubDER, err := hex.DecodeString(pubHex)
	if err != nil {
		return false, fmt.Errorf("verify key of owner %s: %w", ownerID, err)
	}
	pub, err := m.cipher.ImportRSAPublicKey(pubDER)
	if err != nil {
		return false, fmt.Errorf("verify key of owner %s: %w", ownerID, err)
	}

	privDER, err := m.exportedPrivateKey(ctx, ownerID)
	if err != nil {
		return false, fmt.Errorf("verify key of owner %s: %w", ownerID, err)
	}
	priv, err := m.cipher.ImportRSAPrivateKey(privDER)
	if err != nil {
		return false, fmt.Errorf("verify key of owner %s: %w", ownerID, err)
	}

	ciphertext, err := m.cipher.EncryptRSA(pub, []byte(shibboleth))
	if err != nil {
		return false, fmt.Errorf("verify key of owner %s: %w", ownerID, err)
	}
	cleartext, err := m.cipher.DecryptRSA(priv, ciphertext)
	if err != nil {
		return false, nil // wrong key, not an operational failure
	}
	return bytes.Equal(cleartext, []byte(shibboleth)), nil
}

// exportedPrivateKey loads ownerID's stored private key as PKCS#8 DER.
func (m *Manager) exportedPrivateKey(ctx context.Context, ownerID string) ([]byte, error) {
	kp, err := m.store.GetKeyPair(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	der, err := hex.DecodeString(kp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("decode stored private key: %w", err)
	}
	return der, nil
}
