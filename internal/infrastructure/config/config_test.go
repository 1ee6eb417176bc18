package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vitos/vault_scanner/internal/infrastructure/config"
)

// clearEnv unsets the given variables for the duration of the test.
func clearEnv(t *testing.T, keys ...string) {
	t.Helper()
	for _, k := range keys {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_EnvOnly(t *testing.T) {
	clearEnv(t, "EXPAND_BASE_URL", "EXPAND_LOG_LEVEL")
	t.Setenv("EXPAND_KEY", "env-key")

	cfg, err := config.Load(filepath.Join(t.TempDir(), "missing.yaml"), "")
	require.NoError(t, err)
	assert.Equal(t, "env-key", cfg.Expand.APIKey)
	assert.Equal(t, config.DefaultBaseURL, cfg.Expand.BaseURL)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_MissingKey(t *testing.T) {
	clearEnv(t, "EXPAND_KEY", "EXPAND_BASE_URL", "EXPAND_LOG_LEVEL")

	_, err := config.Load("", "")
	require.Error(t, err)
	assert.True(t, errors.Is(err, config.ErrMissingAPIKey))
	assert.Contains(t, err.Error(), "EXPAND_KEY")
}

func TestLoad_FileThenEnvOverride(t *testing.T) {
	clearEnv(t, "EXPAND_KEY", "EXPAND_BASE_URL", "EXPAND_LOG_LEVEL")
	path := writeFile(t, "config.yaml", `
expand:
  api_key: file-key
  base_url: https://file.example/
logging:
  level: debug
`)

	cfg, err := config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Expand.APIKey)
	assert.Equal(t, "https://file.example", cfg.Expand.BaseURL)
	assert.Equal(t, "debug", cfg.Logging.Level)

	t.Setenv("EXPAND_BASE_URL", "http://localhost:9999")
	cfg, err = config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.Expand.APIKey)
	assert.Equal(t, "http://localhost:9999", cfg.Expand.BaseURL)
}

func TestLoad_DotEnv(t *testing.T) {
	clearEnv(t, "EXPAND_KEY", "EXPAND_BASE_URL", "EXPAND_LOG_LEVEL")
	envFile := writeFile(t, ".env", "EXPAND_KEY=dotenv-key\nEXPAND_BASE_URL=https://dotenv.example\n")

	cfg, err := config.Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "dotenv-key", cfg.Expand.APIKey)
	assert.Equal(t, "https://dotenv.example", cfg.Expand.BaseURL)
}

func TestLoad_DotEnvDoesNotOverrideEnvironment(t *testing.T) {
	clearEnv(t, "EXPAND_BASE_URL", "EXPAND_LOG_LEVEL")
	t.Setenv("EXPAND_KEY", "real-key")
	envFile := writeFile(t, ".env", "EXPAND_KEY=dotenv-key\n")

	cfg, err := config.Load("", envFile)
	require.NoError(t, err)
	assert.Equal(t, "real-key", cfg.Expand.APIKey)
}

func TestLoad_MissingDotEnvIsFine(t *testing.T) {
	clearEnv(t, "EXPAND_BASE_URL", "EXPAND_LOG_LEVEL")
	t.Setenv("EXPAND_KEY", "k")

	_, err := config.Load("", filepath.Join(t.TempDir(), ".env"))
	require.NoError(t, err)
}

func TestLoad_BadYAML(t *testing.T) {
	t.Setenv("EXPAND_KEY", "k")
	path := writeFile(t, "config.yaml", "expand: [not, a, map")

	_, err := config.Load(path, "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode config")
}

func TestLoad_EmptyYAML(t *testing.T) {
	clearEnv(t, "EXPAND_BASE_URL", "EXPAND_LOG_LEVEL")
	t.Setenv("EXPAND_KEY", "k")
	path := writeFile(t, "config.yaml", "")

	cfg, err := config.Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, config.DefaultBaseURL, cfg.Expand.BaseURL)
}
