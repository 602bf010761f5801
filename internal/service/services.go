// SPDX-License-Identifier: Apache-2.0

// Package service assembles the engine facade. CryptoService owns the
// directory resolver, the key manager, the delegation codec and the recovery
// manager, and exposes the operations that cut across them: key pair
// loading, keychain certificate sync and per-owner cache teardown.
package service

import (
	"context"
	"fmt"
	"time"

	"github.com/medvault/go-med-vault/internal/adapter"
	"github.com/medvault/go-med-vault/internal/config"
	"github.com/medvault/go-med-vault/internal/crypto"
	"github.com/medvault/go-med-vault/internal/delegation"
	"github.com/medvault/go-med-vault/internal/directory"
	"github.com/medvault/go-med-vault/internal/keymanager"
	"github.com/medvault/go-med-vault/internal/keystore"
	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/internal/recovery"
)

// CryptoService is the engine facade. Each instance carries its own caches;
// two instances share nothing.
type CryptoService struct {
	Directory   *directory.Resolver
	Keys        *keymanager.Manager
	Delegations *delegation.Codec
	Recovery    *recovery.Manager

	cipher crypto.CipherProvider
	api    adapter.DirectoryAPI
	store  Keystore
	log    *logger.Logger
}

// NewCryptoService wires the engine components around the given directory
// collaborator and local key store. listingRefresh bounds forced key-listing
// refreshes; zero or negative keeps the key manager default.
func NewCryptoService(api adapter.DirectoryAPI, store Keystore, listingRefresh time.Duration, log *logger.Logger) *CryptoService {
	if listingRefresh <= 0 {
		listingRefresh = keymanager.DefaultListingRefreshInterval
	}

	cipher := crypto.NewProvider()
	resolver := directory.NewResolver(api, log)
	keys := keymanager.NewManager(cipher, resolver, store, api, listingRefresh, log)

	return &CryptoService{
		Directory:   resolver,
		Keys:        keys,
		Delegations: delegation.NewCodec(cipher, keys, resolver, log),
		Recovery:    recovery.NewManager(cipher, resolver, keys, store, log),
		cipher:      cipher,
		api:         api,
		store:       store,
		log:         log,
	}
}

// NewCryptoServiceFromConfig opens and migrates the SQLite key store named
// by the configuration, builds an HTTP directory client, and wires the
// facade around them.
func NewCryptoServiceFromConfig(ctx context.Context, cfg *config.EngineConfig, log *logger.Logger) (*CryptoService, error) {
	db, err := keystore.NewConnectSQLite(ctx, cfg.Storage.DB.DSN, log)
	if err != nil {
		return nil, fmt.Errorf("open key store: %w", err)
	}
	if err := db.Migrate(); err != nil {
		return nil, fmt.Errorf("migrate key store: %w", err)
	}

	api := adapter.NewHTTPDirectoryAdapter(adapter.HTTPClientConfig{
		BaseURL:   cfg.Adapter.BaseURL,
		AuthToken: cfg.Adapter.AuthToken,
		Timeout:   cfg.Adapter.RequestTimeout,
	})

	return NewCryptoService(api, keystore.NewStore(db, log), cfg.Keys.ListingRefreshInterval, log), nil
}

// LoadKeyPair imports the owner's PKCS#8 DER private key, persists it in the
// local key store together with the derived public key, then checks it
// against the public key published in the directory. Returns
// [ErrKeyPairMismatch] when the supplied key does not match the directory.
func (s *CryptoService) LoadKeyPair(ctx context.Context, ownerID string, pkcs8DER []byte) error {
	if err := s.Keys.LoadPrivateKey(ctx, ownerID, pkcs8DER); err != nil {
		return fmt.Errorf("load key pair for %s: %w", ownerID, err)
	}

	ok, err := s.Recovery.VerifyPrivateKey(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("verify key pair for %s: %w", ownerID, err)
	}
	if !ok {
		return fmt.Errorf("key pair for %s: %w", ownerID, ErrKeyPairMismatch)
	}

	return nil
}

// EmptyOwnerCaches drops every cached artifact tied to ownerID: the resolved
// directory record, the imported private key, the memoized pairwise key
// decryptions and the delegate key listing.
func (s *CryptoService) EmptyOwnerCaches(ownerID string) {
	s.Directory.Invalidate(ownerID)
	s.Keys.EmptyCaches(ownerID)
}

// selfEncryptionKey returns the AES key the owner shares with itself,
// decrypted with the owner's private key via the delegate key listing.
func (s *CryptoService) selfEncryptionKey(ctx context.Context, ownerID string) ([]byte, error) {
	decrypted, err := s.Keys.DecryptKeysForDelegators(ctx, []string{ownerID}, ownerID)
	if err != nil {
		return nil, fmt.Errorf("self key of %s: %w", ownerID, err)
	}
	for _, dk := range decrypted {
		if dk.DelegatorID == ownerID {
			return dk.Key, nil
		}
	}
	return nil, fmt.Errorf("self key of %s: %w", ownerID, ErrMissingSelfKey)
}
