// SPDX-License-Identifier: Apache-2.0

package config

import (
	"time"
)

// StructuredConfig is the top-level configuration container for the
// go-med-vault engine. It aggregates all sub-configurations and is populated
// by merging values from environment variables and an optional JSON file.
//
// Struct tags:
//   - envPrefix — prefix applied to all nested env tag lookups (caarlos0/env).
//   - env       — direct environment variable name for scalar fields.
type StructuredConfig struct {
	// Adapter holds the connection settings for the remote directory
	// service hosting patients, devices and healthcare parties.
	Adapter Adapter `envPrefix:"ADAPTER_"`

	// Storage holds configuration for the local key store backend.
	Storage Storage `envPrefix:"STORAGE_"`

	// Keys holds tuning knobs for the key manager caches.
	Keys Keys `envPrefix:"KEYS_"`

	// Workers holds configuration for background worker processes such as
	// the keychain certificate sync loop.
	Workers Workers `envPrefix:"WORKERS_"`

	// JSONFilePath is the optional path to a JSON configuration file.
	// When non-empty, the file is parsed and merged with the values
	// already loaded from environment variables; environment variables
	// take precedence over the file for fields set in both.
	// Populated via the CONFIG environment variable.
	JSONFilePath string `env:"CONFIG"`
}

// Adapter holds network settings for the remote directory service.
type Adapter struct {
	// BaseURL is the root URL of the directory REST API
	// (e.g. "https://vault.example.com/rest/v1").
	// Env: ADAPTER_BASE_URL
	BaseURL string `env:"BASE_URL"`

	// AuthToken is the bearer token presented on every outbound request.
	// Must be kept confidential.
	// Env: ADAPTER_AUTH_TOKEN
	AuthToken string `env:"AUTH_TOKEN"`

	// RequestTimeout is the maximum duration allowed for a single outbound
	// request before the client cancels it (e.g. "30s", "1m").
	// Env: ADAPTER_REQUEST_TIMEOUT
	RequestTimeout time.Duration `env:"REQUEST_TIMEOUT"`
}

// Storage groups the configuration for the local persistence backends.
type Storage struct {
	// DB holds the local key store database settings.
	DB DB `envPrefix:"DB_"`
}

// DB holds connection settings for the local key store database.
type DB struct {
	// DSN is the SQLite Data Source Name used to open the key store
	// (e.g. "/var/lib/medvault/keystore.db" or ":memory:").
	// Env: STORAGE_DB_DATABASE_URI
	DSN string `env:"DATABASE_URI"`
}

// Keys holds tuning knobs for the key manager.
type Keys struct {
	// ListingRefreshInterval is the minimum time between forced refreshes
	// of a delegate's key listing (e.g. "1m"). Zero keeps the key manager
	// default.
	// Env: KEYS_LISTING_REFRESH_INTERVAL
	ListingRefreshInterval time.Duration `env:"LISTING_REFRESH_INTERVAL"`
}

// Workers holds configuration for background worker processes.
type Workers struct {
	// SyncInterval defines how often the keychain certificate sync worker
	// runs (e.g. "5m").
	// Env: WORKERS_SYNC_INTERVAL
	SyncInterval time.Duration `env:"SYNC_INTERVAL"`
}

// GetStructuredConfig loads and merges the engine configuration from all
// available sources in the following priority order (first source wins for
// fields set in both):
//  1. Environment variables
//  2. JSON file (path resolved from source 1)
//
// Returns a fully populated *StructuredConfig or an error if any source
// fails to load.
func GetStructuredConfig() (*StructuredConfig, error) {
	return newConfigBuilder().
		withEnv().
		withJSON().
		build()
}
