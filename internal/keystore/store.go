// SPDX-License-Identifier: Apache-2.0

package keystore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/models"
)

var (
	// ErrKeyPairNotFound is returned when no key pair is stored for an owner.
	ErrKeyPairNotFound = errors.New("key pair not found")
	// ErrBlobNotFound is returned when no blob is stored under a name.
	ErrBlobNotFound = errors.New("blob not found")
)

// Store is the SQLite-backed repository for RSA key pairs and named blobs.
type Store struct {
	db     *DB
	logger *logger.Logger
}

// NewStore constructs a [Store] backed by the provided database connection.
func NewStore(db *DB, log *logger.Logger) *Store {
	log.Debug().Msg("creating key store repository")
	return &Store{db: db, logger: log}
}

// SaveKeyPair upserts the key pair held for ownerID. Keys are stored as the
// hex encodings produced by the cipher provider's export functions.
func (s *Store) SaveKeyPair(ctx context.Context, ownerID string, kp models.KeyPair) error {
	log := logger.FromContext(ctx)

	_, err := s.db.ExecContext(ctx, saveKeyPair, ownerID, kp.PublicKey, kp.PrivateKey)
	if err != nil {
		log.Err(err).
			Str("func", "*Store.SaveKeyPair").
			Str("owner_id", ownerID).
			Msg("failed to execute upsert for key pair")
		return fmt.Errorf("failed to save key pair (owner_id=%s): %w", ownerID, err)
	}

	return nil
}

// GetKeyPair loads the key pair held for ownerID. Returns
// [ErrKeyPairNotFound] if none is stored.
func (s *Store) GetKeyPair(ctx context.Context, ownerID string) (models.KeyPair, error) {
	log := logger.FromContext(ctx)

	var kp models.KeyPair
	row := s.db.QueryRowContext(ctx, getKeyPair, ownerID)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*Store.GetKeyPair").
			Str("owner_id", ownerID).
			Msg("failed to execute query for key pair")
		return models.KeyPair{}, fmt.Errorf("failed to query key pair: %w", err)
	}

	if err := row.Scan(&kp.PublicKey, &kp.PrivateKey); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return models.KeyPair{}, ErrKeyPairNotFound
		}
		log.Err(err).
			Str("func", "*Store.GetKeyPair").
			Str("owner_id", ownerID).
			Msg("failed to scan key pair row")
		return models.KeyPair{}, fmt.Errorf("failed to scan key pair row: %w", err)
	}

	return kp, nil
}

// DeleteKeyPair removes the key pair held for ownerID. Deleting an absent
// key pair is not an error.
func (s *Store) DeleteKeyPair(ctx context.Context, ownerID string) error {
	log := logger.FromContext(ctx)

	if _, err := s.db.ExecContext(ctx, deleteKeyPair, ownerID); err != nil {
		log.Err(err).
			Str("func", "*Store.DeleteKeyPair").
			Str("owner_id", ownerID).
			Msg("failed to delete key pair")
		return fmt.Errorf("failed to delete key pair (owner_id=%s): %w", ownerID, err)
	}

	return nil
}

// SaveBlob upserts a named blob.
func (s *Store) SaveBlob(ctx context.Context, name, value string) error {
	log := logger.FromContext(ctx)

	if _, err := s.db.ExecContext(ctx, saveBlob, name, value); err != nil {
		log.Err(err).
			Str("func", "*Store.SaveBlob").
			Str("name", name).
			Msg("failed to execute upsert for blob")
		return fmt.Errorf("failed to save blob (name=%s): %w", name, err)
	}

	return nil
}

// GetBlob loads the blob stored under name. Returns [ErrBlobNotFound] if
// none is stored.
func (s *Store) GetBlob(ctx context.Context, name string) (string, error) {
	log := logger.FromContext(ctx)

	var value string
	row := s.db.QueryRowContext(ctx, getBlob, name)
	if err := row.Err(); err != nil {
		log.Err(err).
			Str("func", "*Store.GetBlob").
			Str("name", name).
			Msg("failed to execute query for blob")
		return "", fmt.Errorf("failed to query blob: %w", err)
	}

	if err := row.Scan(&value); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", ErrBlobNotFound
		}
		log.Err(err).
			Str("func", "*Store.GetBlob").
			Str("name", name).
			Msg("failed to scan blob row")
		return "", fmt.Errorf("failed to scan blob row: %w", err)
	}

	return value, nil
}

// DeleteBlob removes the blob stored under name. Deleting an absent blob is
// not an error.
func (s *Store) DeleteBlob(ctx context.Context, name string) error {
	log := logger.FromContext(ctx)

	if _, err := s.db.ExecContext(ctx, deleteBlob, name); err != nil {
		log.Err(err).
			Str("func", "*Store.DeleteBlob").
			Str("name", name).
			Msg("failed to delete blob")
		return fmt.Errorf("failed to delete blob (name=%s): %w", name, err)
	}

	return nil
}
