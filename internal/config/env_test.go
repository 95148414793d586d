package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseEnv(t *testing.T) {
	isolateEnv(t)

	t.Setenv(envDatabasePath, "/var/lib/dashlens.db")
	t.Setenv(envLogFormat, "json")
	t.Setenv(envShutdownTimeout, "250ms")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "/var/lib/dashlens.db", cfg.DatabasePath)
	assert.Equal(t, "127.0.0.1:50061", cfg.ListenAddr)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, 250*time.Millisecond, cfg.ShutdownTimeout)
}

func TestParseEnv_EmptyValuesIgnored(t *testing.T) {
	isolateEnv(t)
	t.Setenv(envListenAddr, "")

	cfg := defaults()
	parseEnv(cfg)
	assert.Equal(t, "127.0.0.1:50061", cfg.ListenAddr)
}

func TestParseEnv_InvalidTimeoutPanics(t *testing.T) {
	isolateEnv(t)
	t.Setenv(envShutdownTimeout, "forever")

	assert.Panics(t, func() { parseEnv(defaults()) })
}

func TestParseEnv_DotenvFile(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("DASHLENS_LOG_LEVEL=warn\nDASHLENS_LISTEN_ADDR=127.0.0.1:3333\n"), 0o600))
	dotenvFiles = []string{path}

	// A variable already present in the process wins over the file.
	t.Setenv(envListenAddr, "127.0.0.1:4444")

	cfg := defaults()
	parseEnv(cfg)

	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, "127.0.0.1:4444", cfg.ListenAddr)
}

func TestParseEnv_MissingDotenvIsFine(t *testing.T) {
	isolateEnv(t)
	dotenvFiles = []string{filepath.Join(t.TempDir(), ".env")}

	assert.NotPanics(t, func() { parseEnv(defaults()) })
}
