package config

import (
	"encoding/json"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ── helpers ───────────────────────────────────────────────────────────────────

func writeTempJSONConfig(t *testing.T, v any) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	f, err := os.CreateTemp(t.TempDir(), "config-*.json")
	require.NoError(t, err)
	_, err = f.Write(data)
	require.NoError(t, err)
	require.NoError(t, f.Close())
	return f.Name()
}

// ── newConfigBuilder ──────────────────────────────────────────────────────────

// TestNewConfigBuilder_InitialState verifies that a freshly created builder
// has no error and an empty configs slice.
func TestNewConfigBuilder_InitialState(t *testing.T) {
	b := newConfigBuilder()
	require.NotNil(t, b)
	assert.NoError(t, b.err)
	assert.Empty(t, b.configs)
}

// ── build ─────────────────────────────────────────────────────────────────────

// TestBuild_EmptyBuilder verifies that building with no configs returns a
// zero-value StructuredConfig.
func TestBuild_EmptyBuilder(t *testing.T) {
	cfg, err := newConfigBuilder().build()
	require.NoError(t, err)
	assert.Equal(t, &StructuredConfig{}, cfg)
}

// TestBuild_PropagatesBuilderError verifies that a pre-set b.err is wrapped
// and returned, with nil config.
func TestBuild_PropagatesBuilderError(t *testing.T) {
	b := newConfigBuilder()
	b.err = assert.AnError

	cfg, err := b.build()
	assert.Nil(t, cfg)
	require.Error(t, err)
	assert.ErrorIs(t, err, assert.AnError)
}

// TestBuild_MergesMultipleConfigs verifies that fields from multiple configs
// are merged into a single result.
func TestBuild_MergesMultipleConfigs(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{BaseURL: "https://vault.example.com"}},
		&StructuredConfig{Storage: Storage{DB: DB{DSN: ":memory:"}}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "https://vault.example.com", cfg.Adapter.BaseURL)
	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
}

// TestBuild_EarlierConfigWins verifies the merge precedence: a field set by
// an earlier layer is not overridden by a later one.
func TestBuild_EarlierConfigWins(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{Adapter: Adapter{BaseURL: "https://from-env"}},
		&StructuredConfig{Adapter: Adapter{BaseURL: "https://from-json", AuthToken: "json-token"}},
	)

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, "https://from-env", cfg.Adapter.BaseURL)
	assert.Equal(t, "json-token", cfg.Adapter.AuthToken)
}

// TestBuild_SingleConfig verifies that a single config is returned as-is.
func TestBuild_SingleConfig(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		Workers: Workers{SyncInterval: 5 * time.Minute},
	})

	cfg, err := b.build()
	require.NoError(t, err)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

// ── withEnv ───────────────────────────────────────────────────────────────────

// TestWithEnv_ReturnsBuilder verifies the fluent interface.
func TestWithEnv_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withEnv())
}

// TestWithEnv_AppendsOneConfig verifies that withEnv appends exactly one entry.
func TestWithEnv_AppendsOneConfig(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.Len(t, b.configs, 1)
}

// TestWithEnv_ReadsEnvVars verifies that environment variables are picked up.
func TestWithEnv_ReadsEnvVars(t *testing.T) {
	t.Setenv("ADAPTER_BASE_URL", "https://env-vault")
	t.Setenv("ADAPTER_AUTH_TOKEN", "env-token")

	b := newConfigBuilder()
	b.withEnv()

	require.Len(t, b.configs, 1)
	assert.Equal(t, "https://env-vault", b.configs[0].Adapter.BaseURL)
	assert.Equal(t, "env-token", b.configs[0].Adapter.AuthToken)
}

// TestWithEnv_NoErrorOnEmptyEnv verifies that withEnv does not set b.err
// when no relevant env vars are present.
func TestWithEnv_NoErrorOnEmptyEnv(t *testing.T) {
	b := newConfigBuilder()
	b.withEnv()
	assert.NoError(t, b.err)
}

// ── withJSON ──────────────────────────────────────────────────────────────────

// TestWithJSON_ReturnsBuilder verifies the fluent interface.
func TestWithJSON_ReturnsBuilder(t *testing.T) {
	b := newConfigBuilder()
	assert.Same(t, b, b.withJSON())
}

// TestWithJSON_NoOp_WhenNoPathSet verifies that withJSON does nothing when
// no config has a JSONFilePath.
func TestWithJSON_NoOp_WhenNoPathSet(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})
	b.withJSON()

	assert.Len(t, b.configs, 1)
	assert.NoError(t, b.err)
}

// TestWithJSON_AppendsConfig_WhenValidFile verifies that a valid JSON file is
// parsed and appended.
func TestWithJSON_AppendsConfig_WhenValidFile(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.BaseURL = "https://json-vault"
	payload.Adapter.AuthToken = "json-token"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 2)
	assert.Equal(t, "https://json-vault", b.configs[1].Adapter.BaseURL)
	assert.Equal(t, "json-token", b.configs[1].Adapter.AuthToken)
}

// TestWithJSON_SetsError_WhenFileNotFound verifies that a missing file path
// sets b.err.
func TestWithJSON_SetsError_WhenFileNotFound(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{
		JSONFilePath: "/nonexistent/config.json",
	})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_SetsError_WhenMalformedJSON verifies that invalid JSON content
// sets b.err.
func TestWithJSON_SetsError_WhenMalformedJSON(t *testing.T) {
	f, err := os.CreateTemp(t.TempDir(), "bad-*.json")
	require.NoError(t, err)
	_, err = f.WriteString("{not valid json")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: f.Name()})
	b.withJSON()

	assert.Error(t, b.err)
}

// TestWithJSON_UsesLastPath verifies that when multiple configs have a
// JSONFilePath, the last non-empty one wins.
func TestWithJSON_UsesLastPath(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.BaseURL = "https://last-wins"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.configs = append(b.configs,
		&StructuredConfig{JSONFilePath: ""},
		&StructuredConfig{JSONFilePath: path},
	)
	b.withJSON()

	require.NoError(t, b.err)
	require.Len(t, b.configs, 3)
	assert.Equal(t, "https://last-wins", b.configs[2].Adapter.BaseURL)
}

// TestWithJSON_DoesNotAppend_WhenErrorAlreadySet verifies that if b.err is
// already set before withJSON is called, the error is preserved.
func TestWithJSON_DoesNotAppend_WhenErrorAlreadySet(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.BaseURL = "https://should-not-matter"
	path := writeTempJSONConfig(t, payload)

	b := newConfigBuilder()
	b.err = assert.AnError
	b.configs = append(b.configs, &StructuredConfig{JSONFilePath: path})
	b.withJSON()

	// withJSON itself succeeds (file is valid), so it still appends —
	// the pre-existing error is preserved alongside.
	assert.ErrorIs(t, b.err, assert.AnError)
}

// ── GetEngineConfig ───────────────────────────────────────────────────────────

// TestGetEngineConfig_FromEnv verifies the full env-to-engine path including
// validation.
func TestGetEngineConfig_FromEnv(t *testing.T) {
	clearEnvVars(t)
	t.Setenv("ADAPTER_BASE_URL", "https://vault.example.com/rest/v1")
	t.Setenv("ADAPTER_REQUEST_TIMEOUT", "30s")
	t.Setenv("STORAGE_DB_DATABASE_URI", ":memory:")
	t.Setenv("WORKERS_SYNC_INTERVAL", "5m")

	cfg, err := GetEngineConfig()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "https://vault.example.com/rest/v1", cfg.Adapter.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.Adapter.RequestTimeout)
	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
	assert.Equal(t, 5*time.Minute, cfg.Workers.SyncInterval)
}

// TestGetEngineConfig_EnvOverridesJSON verifies source precedence: an env
// value wins over the same field in the JSON file, while JSON fills gaps.
func TestGetEngineConfig_EnvOverridesJSON(t *testing.T) {
	payload := StructuredJSONConfig{}
	payload.Adapter.BaseURL = "https://from-json"
	payload.Adapter.AuthToken = "json-token"
	payload.Adapter.RequestTimeout = Duration(time.Minute)
	payload.Storage.DB.DSN = ":memory:"
	payload.Workers.SyncInterval = Duration(5 * time.Minute)
	path := writeTempJSONConfig(t, payload)

	clearEnvVars(t)
	t.Setenv("CONFIG", path)
	t.Setenv("ADAPTER_BASE_URL", "https://from-env")

	cfg, err := GetEngineConfig()
	require.NoError(t, err)

	assert.Equal(t, "https://from-env", cfg.Adapter.BaseURL)
	assert.Equal(t, "json-token", cfg.Adapter.AuthToken)
	assert.Equal(t, time.Minute, cfg.Adapter.RequestTimeout)
	assert.Equal(t, ":memory:", cfg.Storage.DB.DSN)
}

// TestGetEngineConfig_ValidationErrors exercises the required-group checks.
func TestGetEngineConfig_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		env     map[string]string
		wantErr error
	}{
		{
			name: "missing adapter",
			env: map[string]string{
				"STORAGE_DB_DATABASE_URI": ":memory:",
				"WORKERS_SYNC_INTERVAL":   "5m",
			},
			wantErr: ErrInvalidAdapterConfigs,
		},
		{
			name: "missing storage",
			env: map[string]string{
				"ADAPTER_BASE_URL":        "https://vault.example.com",
				"ADAPTER_REQUEST_TIMEOUT": "30s",
				"WORKERS_SYNC_INTERVAL":   "5m",
			},
			wantErr: ErrInvalidStorageConfigs,
		},
		{
			name: "missing workers",
			env: map[string]string{
				"ADAPTER_BASE_URL":        "https://vault.example.com",
				"ADAPTER_REQUEST_TIMEOUT": "30s",
				"STORAGE_DB_DATABASE_URI": ":memory:",
			},
			wantErr: ErrInvalidWorkerConfigs,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnvVars(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg, err := GetEngineConfig()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
			_ = cfg
		})
	}
}
