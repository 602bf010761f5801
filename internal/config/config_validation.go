// SPDX-License-Identifier: Apache-2.0

package config

// validate checks the merged [StructuredConfig] for structural problems
// before it is handed out.
//
// Currently a no-op placeholder; the engine-facing invariants are enforced
// by [EngineConfig.validate] once the engine view is assembled.
//
// Returns nil if the configuration is valid, or a descriptive error otherwise.
func (cfg *StructuredConfig) validate() error {
	return nil
}

func (cfg *EngineConfig) validate() error {
	if cfg.Adapter.BaseURL == "" || cfg.Adapter.RequestTimeout == 0 {
		return ErrInvalidAdapterConfigs
	}

	if cfg.Storage.DB.DSN == "" {
		return ErrInvalidStorageConfigs
	}

	if cfg.Workers.SyncInterval == 0 {
		return ErrInvalidWorkerConfigs
	}

	return nil
}
