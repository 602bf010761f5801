// SPDX-License-Identifier: Apache-2.0

package service

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"

	"github.com/medvault/go-med-vault/internal/keystore"
	"github.com/medvault/go-med-vault/models"
)

// Healthcare-party option keys carrying the keychain certificate and its
// validity date.
const (
	optionKeychainCert     = "eHealthCRTCrypt"
	optionKeychainCertDate = "eHealthCRTDate"
)

// Local key store blob name prefixes for the keychain certificate.
const (
	keychainBlobPrefix     = "keychain."
	keychainDateBlobPrefix = "keychain-date."
)

// KeychainStatus reports where a keychain certificate currently exists after
// a sync pass.
type KeychainStatus struct {
	// Local is true when the certificate is present in the local key store.
	Local bool
	// Remote is true when the certificate is present on the owner's
	// directory record.
	Remote bool
}

// SaveKeychainCertificate stores the certificate and its validity date in
// the local key store. An empty validityDate clears the stored date.
func (s *CryptoService) SaveKeychainCertificate(ctx context.Context, ownerID string, cert []byte, validityDate string) error {
	if err := s.store.SaveBlob(ctx, keychainBlobPrefix+ownerID, hex.EncodeToString(cert)); err != nil {
		return fmt.Errorf("save keychain certificate for %s: %w", ownerID, err)
	}

	if validityDate == "" {
		if err := s.store.DeleteBlob(ctx, keychainDateBlobPrefix+ownerID); err != nil {
			return fmt.Errorf("clear keychain validity date for %s: %w", ownerID, err)
		}
		return nil
	}
	if err := s.store.SaveBlob(ctx, keychainDateBlobPrefix+ownerID, validityDate); err != nil {
		return fmt.Errorf("save keychain validity date for %s: %w", ownerID, err)
	}
	return nil
}

// LocalKeychainCertificate returns the certificate stored in the local key
// store, or a wrapped [ErrMissingKeychainCertificate] if there is none.
func (s *CryptoService) LocalKeychainCertificate(ctx context.Context, ownerID string) ([]byte, error) {
	certHex, err := s.store.GetBlob(ctx, keychainBlobPrefix+ownerID)
	if errors.Is(err, keystore.ErrBlobNotFound) {
		return nil, fmt.Errorf("local keychain certificate for %s: %w", ownerID, ErrMissingKeychainCertificate)
	}
	if err != nil {
		return nil, fmt.Errorf("local keychain certificate for %s: %w", ownerID, err)
	}

	cert, err := hex.DecodeString(certHex)
	if err != nil {
		return nil, fmt.Errorf("local keychain certificate for %s: %w", ownerID, err)
	}
	return cert, nil
}

// PushKeychainCertificate encrypts the locally stored certificate with the
// owner's self hc-party key and publishes it, along with the validity date,
// on the owner's healthcare-party record.
func (s *CryptoService) PushKeychainCertificate(ctx context.Context, ownerID string) (*models.HealthcareParty, error) {
	hcp, err := s.api.GetHealthcareParty(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("push keychain for %s: %w", ownerID, err)
	}

	cert, err := s.LocalKeychainCertificate(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	key, err := s.selfEncryptionKey(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("push keychain for %s: %w", ownerID, err)
	}

	blob, err := s.cipher.EncryptAES(key, cert)
	if err != nil {
		return nil, fmt.Errorf("push keychain for %s: encrypt certificate: %w", ownerID, err)
	}

	if hcp.Options == nil {
		hcp.Options = make(map[string]string)
	}
	hcp.Options[optionKeychainCert] = hex.EncodeToString(blob)

	date, err := s.store.GetBlob(ctx, keychainDateBlobPrefix+ownerID)
	switch {
	case err == nil:
		hcp.Options[optionKeychainCertDate] = date
	case !errors.Is(err, keystore.ErrBlobNotFound):
		return nil, fmt.Errorf("push keychain for %s: %w", ownerID, err)
	}

	stored, err := s.Directory.Put(ctx, hcp)
	if err != nil {
		return nil, fmt.Errorf("push keychain for %s: %w", ownerID, err)
	}

	s.log.Debug().
		Str("func", "PushKeychainCertificate").
		Str("ownerId", ownerID).
		Msg("keychain certificate published")

	out, ok := stored.Owner.(*models.HealthcareParty)
	if !ok {
		return nil, fmt.Errorf("push keychain for %s: stored owner is not a healthcare party", ownerID)
	}
	return out, nil
}

// PullKeychainCertificate fetches the certificate published on the owner's
// healthcare-party record, decrypts it with the owner's self hc-party key and
// stores it (and the published validity date) in the local key store.
func (s *CryptoService) PullKeychainCertificate(ctx context.Context, ownerID string) error {
	hcp, err := s.api.GetHealthcareParty(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("pull keychain for %s: %w", ownerID, err)
	}

	if date := hcp.Options[optionKeychainCertDate]; date != "" {
		if err := s.store.SaveBlob(ctx, keychainDateBlobPrefix+ownerID, date); err != nil {
			return fmt.Errorf("pull keychain for %s: %w", ownerID, err)
		}
	}

	encHex := hcp.Options[optionKeychainCert]
	if encHex == "" {
		return fmt.Errorf("pull keychain for %s: %w", ownerID, ErrMissingKeychainCertificate)
	}
	blob, err := hex.DecodeString(encHex)
	if err != nil {
		return fmt.Errorf("pull keychain for %s: %w", ownerID, err)
	}

	key, err := s.selfEncryptionKey(ctx, ownerID)
	if err != nil {
		return fmt.Errorf("pull keychain for %s: %w", ownerID, err)
	}

	cert, err := s.cipher.DecryptAES(key, blob)
	if err != nil {
		return fmt.Errorf("pull keychain for %s: decrypt certificate: %w", ownerID, err)
	}

	if err := s.store.SaveBlob(ctx, keychainBlobPrefix+ownerID, hex.EncodeToString(cert)); err != nil {
		return fmt.Errorf("pull keychain for %s: %w", ownerID, err)
	}

	s.log.Debug().
		Str("func", "PullKeychainCertificate").
		Str("ownerId", ownerID).
		Msg("keychain certificate imported")
	return nil
}

// SyncKeychainCertificate reconciles the keychain certificate between the
// directory record and the local key store. A certificate published on the
// record is imported locally; a pull failure is reported in the returned
// status rather than as an error.
func (s *CryptoService) SyncKeychainCertificate(ctx context.Context, ownerID string) (KeychainStatus, error) {
	hcp, err := s.api.GetHealthcareParty(ctx, ownerID)
	if err != nil {
		return KeychainStatus{}, fmt.Errorf("sync keychain for %s: %w", ownerID, err)
	}

	remote := hcp.Options[optionKeychainCert] != ""
	_, err = s.store.GetBlob(ctx, keychainBlobPrefix+ownerID)
	local := err == nil

	if !remote {
		return KeychainStatus{Local: local, Remote: false}, nil
	}

	if err := s.PullKeychainCertificate(ctx, ownerID); err != nil {
		s.log.Warn().Err(err).
			Str("func", "SyncKeychainCertificate").
			Str("ownerId", ownerID).
			Msg("could not import published keychain certificate")
		return KeychainStatus{Local: local, Remote: true}, nil
	}
	return KeychainStatus{Local: true, Remote: true}, nil
}
