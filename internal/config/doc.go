// Package config loads runtime configuration for the DashLens backend.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional config file selected with -c or -config. Files ending in
//     .yaml or .yml are read as YAML, anything else as JSON.
//  3. Environment variables, after loading a .env file from the working
//     directory when one exists.
//  4. Command-line flags, which override everything else.
//
// Supported flags
//
//	-d string   path to the SQLite database file
//	-a string   listen address of the bridge gRPC server
//	-l string   log level (debug, info, warn, error)
//
// Environment
//
//	DASHLENS_DB_PATH, DASHLENS_LISTEN_ADDR, DASHLENS_LOG_LEVEL,
//	DASHLENS_LOG_FORMAT, DASHLENS_SHUTDOWN_TIMEOUT
//
// # File schema
//
// Durations use timex.Duration, so they may be written as "5s" or as integer
// nanoseconds:
//
//	{
//	  "database_path": "dashlens.db",
//	  "listen_addr": "127.0.0.1:50061",
//	  "log_level": "info",
//	  "log_format": "text",
//	  "shutdown_timeout": "5s"
//	}
package config
