// SPDX-License-Identifier: Apache-2.0

package keymanager

import (
	"context"
	"crypto/rsa"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/medvault/go-med-vault/internal/crypto"
	"github.com/medvault/go-med-vault/models"
)

// GetOrCreateHcPartyKey returns the raw AES key owner uses towards
// delegateID, generating and persisting a fresh pairwise key when none
// exists yet. The returned owner carries the new pairwise key (and revision)
// when generation happened; otherwise it is the input owner unchanged.
func (m *Manager) GetOrCreateHcPartyKey(ctx context.Context, owner models.DataOwner, delegateID string) (models.DataOwner, DelegatorAndKeys, error) {
	if pair, ok := owner.GetHcPartyKeys()[delegateID]; ok {
		dk, err := m.DecryptHcPartyKey(ctx, owner.GetID(), delegateID, pair[0], true)
		if err != nil {
			return owner, DelegatorAndKeys{}, err
		}
		return owner, dk, nil
	}

	updated, err := m.GenerateKeyForDelegate(ctx, owner.GetID(), delegateID)
	if err != nil {
		return owner, DelegatorAndKeys{}, err
	}

	pair, ok := updated.GetHcPartyKeys()[delegateID]
	if !ok {
		return owner, DelegatorAndKeys{}, fmt.Errorf("owner %s: generated hc-party key for %s not present after update", owner.GetID(), delegateID)
	}

	dk, err := m.DecryptHcPartyKey(ctx, updated.GetID(), delegateID, pair[0], true)
	if err != nil {
		return updated, DelegatorAndKeys{}, err
	}
	return updated, dk, nil
}

// GenerateKeyForDelegate ensures a pairwise key exists from ownerID towards
// delegateID and returns the owner carrying it.
//
// The operation is idempotent: when the owner record already holds a key for
// the delegate it is returned as is. Generation for one owner id is
// serialized within the engine instance, so two concurrent calls for the
// same owner produce a single key and a single persistence round trip.
//
// Returns [ErrMissingDelegatePublicKey] when the delegate has not published
// a public key; generation also fails when the owner itself has none, since
// the key must be recoverable by both parties.
func (m *Manager) GenerateKeyForDelegate(ctx context.Context, ownerID, delegateID string) (models.DataOwner, error) {
	lock := m.generationLock(ownerID)
	lock.Lock()
	defer lock.Unlock()

	resolved, err := m.resolver.Resolve(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: %w", err)
	}
	owner := resolved.Owner

	// Another caller may have generated while we waited for the lock.
	if _, ok := owner.GetHcPartyKeys()[delegateID]; ok {
		return owner, nil
	}

	delegateResolved, err := m.resolver.Resolve(ctx, delegateID)
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: %w", err)
	}
	delegate := delegateResolved.Owner

	if delegate.GetPublicKey() == "" {
		return nil, fmt.Errorf("delegate %s: %w", delegateID, ErrMissingDelegatePublicKey)
	}
	if owner.GetPublicKey() == "" {
		return nil, fmt.Errorf("generate hc-party key: owner %s has no public key", ownerID)
	}

	ownerPub, err := m.importPublicKey(owner.GetPublicKey())
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: owner %s: %w", ownerID, err)
	}
	delegatePub, err := m.importPublicKey(delegate.GetPublicKey())
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: delegate %s: %w", delegateID, err)
	}

	raw, err := m.cipher.RandomBytes(crypto.AESKeySize)
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: %w", err)
	}

	forOwner, err := m.cipher.EncryptRSA(ownerPub, raw)
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: encrypt for owner %s: %w", ownerID, err)
	}
	forDelegate, err := m.cipher.EncryptRSA(delegatePub, raw)
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: encrypt for delegate %s: %w", delegateID, err)
	}

	owner.SetHcPartyKey(delegateID, [2]string{
		hex.EncodeToString(forOwner),
		hex.EncodeToString(forDelegate),
	})

	stored, err := m.resolver.Put(ctx, owner)
	if err != nil {
		return nil, fmt.Errorf("generate hc-party key: persist owner %s: %w", ownerID, err)
	}

	m.log.Debug().
		Str("ownerId", ownerID).
		Str("delegateId", delegateID).
		Msg("generated hc-party key")

	m.primeListing(delegateID, ownerID, hex.EncodeToString(forDelegate))

	return stored.Owner, nil
}

func (m *Manager) importPublicKey(pubHex string) (*rsa.PublicKey, error) {
	der, err := hex.DecodeString(pubHex)
	if err != nil {
		return nil, fmt.Errorf("decode public key: %w", err)
	}
	return m.cipher.ImportRSAPublicKey(der)
}

// generationLock returns the per-owner mutex, creating it on first use.
func (m *Manager) generationLock(ownerID string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	lock, ok := m.genLocks[ownerID]
	if !ok {
		lock = &sync.Mutex{}
		m.genLocks[ownerID] = lock
	}
	return lock
}
