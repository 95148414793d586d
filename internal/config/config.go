package config

import "time"

// Config holds runtime settings for the backend process.
//
// Units: ShutdownTimeout bounds how long a graceful stop of the bridge may
// take before the server is stopped forcibly.
type Config struct {
	DatabasePath    string
	ListenAddr      string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.DatabasePath = "dashlens.db"
	c.ListenAddr = "127.0.0.1:50061"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.ShutdownTimeout = 5 * time.Second
}

// LoadConfig builds a Config from defaults, then the config file, then the
// environment, then flags found in args (typically os.Args[1:]).
// It panics if the config file or a flag value cannot be parsed.
func LoadConfig(args []string) *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseFile(cfg, args)
	parseEnv(cfg)
	parseFlags(cfg, args)
	return cfg
}
