package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolateEnv clears every DASHLENS_* variable for the duration of t and
// disables .env loading.
func isolateEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{envDatabasePath, envListenAddr, envLogLevel, envLogFormat, envShutdownTimeout} {
		t.Setenv(k, "")
		require.NoError(t, os.Unsetenv(k))
	}

	orig := dotenvFiles
	dotenvFiles = nil
	t.Cleanup(func() { dotenvFiles = orig })
}

func defaults() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

func TestLoadDefaults(t *testing.T) {
	var c Config
	c.LoadDefaults()

	assert.Equal(t, "dashlens.db", c.DatabasePath)
	assert.Equal(t, "127.0.0.1:50061", c.ListenAddr)
	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "text", c.LogFormat)
	assert.Equal(t, 5*time.Second, c.ShutdownTimeout)
}

func TestLoadConfig_NoSources(t *testing.T) {
	isolateEnv(t)

	cfg := LoadConfig(nil)
	require.NotNil(t, cfg)
	assert.Empty(t, cmp.Diff(defaults(), cfg))
}

func TestLoadConfig_Precedence(t *testing.T) {
	isolateEnv(t)

	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"database_path": "file.db",
		"listen_addr": "127.0.0.1:1111",
		"log_level": "warn",
		"log_format": "json",
		"shutdown_timeout": "9s"
	}`), 0o600))

	t.Setenv(envListenAddr, "127.0.0.1:2222")
	t.Setenv(envLogLevel, "error")

	cfg := LoadConfig([]string{"-c", path, "-l", "debug"})

	want := &Config{
		DatabasePath:    "file.db",        // file
		ListenAddr:      "127.0.0.1:2222", // env over file
		LogLevel:        "debug",          // flag over env
		LogFormat:       "json",
		ShutdownTimeout: 9 * time.Second,
	}
	assert.Empty(t, cmp.Diff(want, cfg))
}

func TestLoadConfig_UnknownFlagsIgnored(t *testing.T) {
	isolateEnv(t)

	cfg := LoadConfig([]string{"-user", "alice", "-d", "x.db"})
	assert.Equal(t, "x.db", cfg.DatabasePath)
}
