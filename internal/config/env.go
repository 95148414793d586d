package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

const (
	envDatabasePath    = "DASHLENS_DB_PATH"
	envListenAddr      = "DASHLENS_LISTEN_ADDR"
	envLogLevel        = "DASHLENS_LOG_LEVEL"
	envLogFormat       = "DASHLENS_LOG_FORMAT"
	envShutdownTimeout = "DASHLENS_SHUTDOWN_TIMEOUT"
)

// dotenvFiles are loaded before reading the environment. Missing files are
// fine; variables already set in the process are never overwritten.
var dotenvFiles = []string{".env"}

// parseEnv overlays cfg with DASHLENS_* variables.
// It panics when DASHLENS_SHUTDOWN_TIMEOUT is not a valid duration.
func parseEnv(cfg *Config) {
	for _, f := range dotenvFiles {
		if _, err := os.Stat(f); err == nil {
			if err := godotenv.Load(f); err != nil {
				panic(err)
			}
		}
	}

	if v, ok := os.LookupEnv(envDatabasePath); ok && v != "" {
		cfg.DatabasePath = v
	}
	if v, ok := os.LookupEnv(envListenAddr); ok && v != "" {
		cfg.ListenAddr = v
	}
	if v, ok := os.LookupEnv(envLogLevel); ok && v != "" {
		cfg.LogLevel = v
	}
	if v, ok := os.LookupEnv(envLogFormat); ok && v != "" {
		cfg.LogFormat = v
	}
	if v, ok := os.LookupEnv(envShutdownTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.ShutdownTimeout = d
	}
}
