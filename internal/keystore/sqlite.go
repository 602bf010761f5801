// SPDX-License-Identifier: Apache-2.0

// Package keystore persists RSA key pairs and small named blobs in a local
// SQLite database.
//
// The engine never sends private key material to the backend; loaded key
// pairs live here, keyed by data owner id. Blobs hold auxiliary encrypted
// payloads such as the keychain certificate pulled from the owner record.
package keystore

import (
	"context"
	"database/sql"
	"fmt"
	"os"

	_ "github.com/mattn/go-sqlite3"

	"github.com/medvault/go-med-vault/internal/logger"
	"github.com/medvault/go-med-vault/migrations"
)

// DB wraps the SQLite connection used by the key store.
type DB struct {
	*sql.DB
	logger *logger.Logger
}

// NewConnectSQLite opens (creating the file if needed) the SQLite database at
// dsn and verifies the connection. Use ":memory:" for an ephemeral store.
func NewConnectSQLite(ctx context.Context, dsn string, log *logger.Logger) (*DB, error) {
	if dsn != ":memory:" {
		if err := createLocalDBFileIfNotExists(dsn); err != nil {
			log.Err(err).Str("func", "NewConnectSQLite").Msg("error creating database file")
			return nil, fmt.Errorf("error creating database file")
		}
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database")
		return nil, fmt.Errorf("error opening connection to DB")
	}

	// ping database
	err = conn.PingContext(ctx)
	if err != nil {
		log.Err(err).Str("func", "NewConnectSQLite").Msg("error connecting database (ping)")
		return nil, err
	}
	log.Debug().Str("func", "NewConnectSQLite").Msg("connected to key store database")

	return &DB{DB: conn, logger: log}, nil
}

// Migrate brings the key store schema up to date.
func (db *DB) Migrate() error {
	return migrations.Migrate(db.DB)
}

func createLocalDBFileIfNotExists(dbFile string) error {
	if _, err := os.Stat(dbFile); os.IsNotExist(err) {
		// if not found - create
		f, err := os.Create(dbFile)
		if err != nil {
			return fmt.Errorf("error creating DB file: %w", err)
		}
		f.Close()
	}

	// file already exists
	return nil
}
