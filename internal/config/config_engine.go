package config

import (
	"fmt"
	"time"
)

// EngineAdapter holds network settings used by the directory transport layer.
type EngineAdapter struct {
	// BaseURL is the root URL of the directory REST API.
	BaseURL string
	// AuthToken is the bearer token presented on every outbound request.
	AuthToken string
	// RequestTimeout is the default timeout for outbound requests.
	RequestTimeout time.Duration
}

// EngineDB contains local key store connection settings.
type EngineDB struct {
	// DSN is the SQLite connection string used by the key store.
	DSN string
}

// EngineStorage groups local storage backend settings.
type EngineStorage struct {
	// DB holds the key store database settings.
	DB EngineDB
}

// EngineKeys contains key manager cache settings.
type EngineKeys struct {
	// ListingRefreshInterval is the minimum time between forced key
	// listing refreshes. Zero keeps the key manager default.
	ListingRefreshInterval time.Duration
}

// EngineWorkers contains background worker settings.
type EngineWorkers struct {
	// SyncInterval defines how often the keychain sync worker runs.
	SyncInterval time.Duration
}

// EngineConfig is the top-level engine configuration assembled from
// [StructuredConfig].
type EngineConfig struct {
	// Adapter contains directory transport addresses and timeouts.
	Adapter EngineAdapter
	// Storage contains local key store settings.
	Storage EngineStorage
	// Keys contains key manager cache settings.
	Keys EngineKeys
	// Workers contains background job settings.
	Workers EngineWorkers
}

// GetEngineConfig builds and validates an engine-specific config view from
// the merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the engine runtime, and validates the resulting [EngineConfig].
func GetEngineConfig() (*EngineConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	engineCfg := &EngineConfig{
		Adapter: EngineAdapter{
			BaseURL:        cfg.Adapter.BaseURL,
			AuthToken:      cfg.Adapter.AuthToken,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: EngineStorage{
			DB: EngineDB{
				DSN: cfg.Storage.DB.DSN,
			},
		},
		Keys: EngineKeys{
			ListingRefreshInterval: cfg.Keys.ListingRefreshInterval,
		},
		Workers: EngineWorkers{SyncInterval: cfg.Workers.SyncInterval},
	}

	return engineCfg, engineCfg.validate()
}
