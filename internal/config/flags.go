package config

import (
	"flag"
	"io"

	"github.com/dashlens/dashlens/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
//	-d string   database file path
//	-a string   bridge listen address
//	-l string   log level
//
// Only these flags are picked out of args, so other components may define
// their own.
func parseFlags(cfg *Config, args []string) {
	filtered := flagx.FilterArgs(args, []string{"-d", "-a", "-l"})

	fs := flag.NewFlagSet("dashlens", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "path to the SQLite database file")
	fs.StringVar(&cfg.ListenAddr, "a", cfg.ListenAddr, "bridge listen address")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(filtered); err != nil {
		panic(err)
	}
}
