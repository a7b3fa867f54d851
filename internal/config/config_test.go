package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfigContent = `
[development]
api_base_url = "http://localhost:5000/api/"
log_level = "trace"
log_to_stdout = true
credentials_path = "/tmp/fittrack-test/credentials.json"

[production]
api_base_url = "https://api.fittrack.example.com/api"
log_level = "info"
logs_path = "/var/log/fittrack/client"
sentry_enabled = true
snapshot_cache_ttl_seconds = 300
`

func writeTestConfig(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(testConfigContent), 0o600))
	return path
}

func TestLoad_Development(t *testing.T) {
	cfg, err := Load("development", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "development", cfg.Environment)
	// trailing slash gets trimmed
	assert.Equal(t, "http://localhost:5000/api", cfg.APIBaseURL)
	assert.Equal(t, "trace", cfg.LogLevel)
	assert.True(t, cfg.LogToStdout)
	assert.Equal(t, "/tmp/fittrack-test/credentials.json", cfg.CredentialsPath)
	// default TTL applied
	assert.Equal(t, 60, cfg.SnapshotCacheTTLSeconds)
}

func TestLoad_Production(t *testing.T) {
	cfg, err := Load("prod", writeTestConfig(t))
	require.NoError(t, err)

	assert.Equal(t, "https://api.fittrack.example.com/api", cfg.APIBaseURL)
	assert.True(t, cfg.SentryEnabled)
	assert.Equal(t, 300, cfg.SnapshotCacheTTLSeconds)
	// credentials path defaulted under the user config dir
	assert.Contains(t, cfg.CredentialsPath, "fittrack")
}

func TestLoad_UnknownEnv(t *testing.T) {
	_, err := Load("staging", writeTestConfig(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown env")
}
