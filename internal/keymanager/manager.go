// SPDX-License-Identifier: Apache-2.0

// Package keymanager manages the pairwise AES keys (hc-party keys) that
// protect every delegation between two data owners.
//
// A pairwise key is a random AES-256 key encrypted twice with RSA-OAEP: once
// under the delegator's public key and once under the delegate's. The two
// hex ciphertexts live side by side on the delegator's record, so either
// party can recover the symmetric key with its own private key.
//
// The manager caches decrypted keys per (delegator, delegate, direction),
// serializes key generation per owner id, and maintains the delegate-side
// key-listing cache used when an owner needs the keys other owners created
// towards it.
package keymanager

import (
	"context"
	"crypto/rsa"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/medvault/go-med-vault/internal/crypto"
	"github.com/medvault/go-med-vault/internal/directory"
	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/models"
)

var (
	// ErrMissingDelegatePublicKey is returned by GenerateKeyForDelegate when
	// the delegate owner has not published an RSA public key.
	ErrMissingDelegatePublicKey = errors.New("delegate owner has no public key")

	// ErrKeyDecryptionFailed is returned when a pairwise key ciphertext cannot
	// be decrypted with the available private key. The failure is cached:
	// decrypting the same ciphertext again is never retried within an engine
	// instance.
	ErrKeyDecryptionFailed = errors.New("hc-party key decryption failed")

	// ErrMissingPrivateKey is returned when no private key has been loaded
	// into the keystore for the owner that must decrypt.
	ErrMissingPrivateKey = errors.New("no private key loaded for owner")
)

// DefaultListingRefreshInterval is the minimum delay between two forced
// refreshes of one delegate's key listing.
const DefaultListingRefreshInterval = time.Minute

// DelegatorAndKeys is one decrypted pairwise key: the delegator that created
// it and the symmetric key material in the two forms callers need.
type DelegatorAndKeys struct {
	// DelegatorID is the owner that generated the pairwise key.
	DelegatorID string
	// Key is the imported raw AES-256 key.
	Key []byte
	// RawKeyHex is the hex encoding of Key, used as the dedup fingerprint
	// when merging delegation tables.
	RawKeyHex string
}

// PrivateKeyStore is the slice of the keystore the manager needs: loading
// and saving per-owner RSA key pairs.
type PrivateKeyStore interface {
	GetKeyPair(ctx context.Context, ownerID string) (models.KeyPair, error)
	SaveKeyPair(ctx context.Context, ownerID string, kp models.KeyPair) error
}

// KeyListingAPI is the slice of the backend the manager needs to list, for a
// delegate, every pairwise key other owners created towards it.
// [adapter.DirectoryAPI] satisfies it.
type KeyListingAPI interface {
	GetPatientHcPartyKeysForDelegate(ctx context.Context, delegateID string) (map[string]string, error)
	GetHcPartyKeysForDelegate(ctx context.Context, delegateID string) (map[string]string, error)
}

// cachedKey is a memoized DecryptHcPartyKey outcome. done is closed once the
// fields are final.
type cachedKey struct {
	done   chan struct{}
	result DelegatorAndKeys
	err    error
}

// Manager holds the per-instance pairwise key state. Construct with
// [NewManager]; the zero value is not usable.
type Manager struct {
	cipher   crypto.CipherProvider
	resolver *directory.Resolver
	keys     PrivateKeyStore
	listing  KeyListingAPI
	log      *logger.Logger

	// minListingRefresh guards ListKeysForDelegate force refreshes.
	minListingRefresh time.Duration

	mu       sync.Mutex
	decrypts map[string]*cachedKey      // "delegator|delegate|direction"
	rsaKeys  map[string]*rsa.PrivateKey // owner id → parsed private key
	genLocks map[string]*sync.Mutex     // owner id → generation lock
	listings map[string]*cachedListing  // delegate id → key listing
}

// NewManager constructs a Manager. minListingRefresh bounds how often one
// delegate's key listing may be force-refreshed; pass 0 for
// [DefaultListingRefreshInterval].
func NewManager(cipher crypto.CipherProvider, resolver *directory.Resolver, keys PrivateKeyStore, listing KeyListingAPI, minListingRefresh time.Duration, log *logger.Logger) *Manager {
	if minListingRefresh <= 0 {
		minListingRefresh = DefaultListingRefreshInterval
	}
	return &Manager{
		cipher:            cipher,
		resolver:          resolver,
		keys:              keys,
		listing:           listing,
		log:               log,
		minListingRefresh: minListingRefresh,
		decrypts:          make(map[string]*cachedKey),
		rsaKeys:           make(map[string]*rsa.PrivateKey),
		genLocks:          make(map[string]*sync.Mutex),
		listings:          make(map[string]*cachedListing),
	}
}

// LoadPrivateKey imports a PKCS#8 DER private key for ownerID, pairs it with
// the owner's published public key and persists the pair in the keystore.
// The key becomes immediately available to all decryption paths.
func (m *Manager) LoadPrivateKey(ctx context.Context, ownerID string, pkcs8DER []byte) error {
	priv, err := m.cipher.ImportRSAPrivateKey(pkcs8DER)
	if err != nil {
		return fmt.Errorf("load private key for owner %s: %w", ownerID, err)
	}

	pubDER, err := m.cipher.ExportRSAPublicKey(&priv.PublicKey)
	if err != nil {
		return fmt.Errorf("load private key for owner %s: %w", ownerID, err)
	}

	kp := models.KeyPair{
		PublicKey:  hex.EncodeToString(pubDER),
		PrivateKey: hex.EncodeToString(pkcs8DER),
	}
	if err = m.keys.SaveKeyPair(ctx, ownerID, kp); err != nil {
		return fmt.Errorf("load private key for owner %s: %w", ownerID, err)
	}

	m.mu.Lock()
	m.rsaKeys[ownerID] = priv
	m.mu.Unlock()

	return nil
}

// privateKeyOf returns the parsed private key of ownerID, reading through to
// the keystore on first use.
func (m *Manager) privateKeyOf(ctx context.Context, ownerID string) (*rsa.PrivateKey, error) {
	m.mu.Lock()
	if priv, ok := m.rsaKeys[ownerID]; ok {
		m.mu.Unlock()
		return priv, nil
	}
	m.mu.Unlock()

	kp, err := m.keys.GetKeyPair(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("owner %s: %w", ownerID, errors.Join(ErrMissingPrivateKey, err))
	}

	der, err := hex.DecodeString(kp.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("decode stored private key of owner %s: %w", ownerID, err)
	}
	priv, err := m.cipher.ImportRSAPrivateKey(der)
	if err != nil {
		return nil, fmt.Errorf("parse stored private key of owner %s: %w", ownerID, err)
	}

	m.mu.Lock()
	m.rsaKeys[ownerID] = priv
	m.mu.Unlock()

	return priv, nil
}

// DecryptHcPartyKey decrypts one pairwise key ciphertext.
//
// cipherHex is the hex RSA ciphertext taken from the delegator's record:
// the owner-encrypted half when forDelegator is true (the caller is the
// delegator decrypting with its own private key), the delegate-encrypted
// half otherwise.
//
// Outcomes are cached per (delegator, delegate, direction). A decryption
// failure is cached as [ErrKeyDecryptionFailed] and never retried; failures
// to obtain the private key are transient and not cached.
func (m *Manager) DecryptHcPartyKey(ctx context.Context, delegatorID, delegateID, cipherHex string, forDelegator bool) (DelegatorAndKeys, error) {
	direction := "delegate"
	if forDelegator {
		direction = "delegator"
	}
	cacheKey := delegatorID + "|" + delegateID + "|" + direction

	m.mu.Lock()
	if c, ok := m.decrypts[cacheKey]; ok {
		m.mu.Unlock()
		select {
		case <-c.done:
		case <-ctx.Done():
			return DelegatorAndKeys{}, ctx.Err()
		}
		return c.result, c.err
	}
	c := &cachedKey{done: make(chan struct{})}
	m.decrypts[cacheKey] = c
	m.mu.Unlock()

	c.result, c.err = m.decryptHcPartyKey(ctx, delegatorID, delegateID, cipherHex, forDelegator)
	if c.err != nil && !errors.Is(c.err, ErrKeyDecryptionFailed) {
		// Transient: evict so the next call retries once the key is loaded.
		m.mu.Lock()
		delete(m.decrypts, cacheKey)
		m.mu.Unlock()
	}
	close(c.done)

	return c.result, c.err
}

func (m *Manager) decryptHcPartyKey(ctx context.Context, delegatorID, delegateID, cipherHex string, forDelegator bool) (DelegatorAndKeys, error) {
	selfID := delegateID
	if forDelegator {
		selfID = delegatorID
	}

	priv, err := m.privateKeyOf(ctx, selfID)
	if err != nil {
		return DelegatorAndKeys{}, err
	}

	ciphertext, err := hex.DecodeString(cipherHex)
	if err != nil {
		return DelegatorAndKeys{}, fmt.Errorf("hc-party key %s→%s: malformed ciphertext: %w", delegatorID, delegateID, ErrKeyDecryptionFailed)
	}

	raw, err := m.cipher.DecryptRSA(priv, ciphertext)
	if err != nil {
		m.log.Debug().
			Str("delegatorId", delegatorID).
			Str("delegateId", delegateID).
			Bool("forDelegator", forDelegator).
			Msg("hc-party key decryption failed")
		return DelegatorAndKeys{}, fmt.Errorf("hc-party key %s→%s: %w", delegatorID, delegateID, ErrKeyDecryptionFailed)
	}

	key, err := m.cipher.ImportAESKey(raw)
	if err != nil {
		return DelegatorAndKeys{}, fmt.Errorf("hc-party key %s→%s: %w", delegatorID, delegateID, ErrKeyDecryptionFailed)
	}

	return DelegatorAndKeys{
		DelegatorID: delegatorID,
		Key:         key,
		RawKeyHex:   hex.EncodeToString(raw),
	}, nil
}

// EmptyCaches drops all cached decryptions, parsed private keys and key
// listings involving ownerID. Used when an owner's keys are rotated or the
// owner logs out of the engine instance.
func (m *Manager) EmptyCaches(ownerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.rsaKeys, ownerID)
	delete(m.listings, ownerID)
	for key := range m.decrypts {
		// cache keys are "delegator|delegate|direction"
		delegator, rest, _ := strings.Cut(key, "|")
		delegate, _, _ := strings.Cut(rest, "|")
		if delegator == ownerID || delegate == ownerID {
			delete(m.decrypts, key)
		}
	}
}
