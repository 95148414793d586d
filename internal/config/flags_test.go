package config

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		name        string
		args        []string
		expected    *Config
		expectPanic bool
	}{
		{
			name:     "all flags",
			args:     []string{"-d", "x.db", "-a", "127.0.0.1:9090", "-l", "debug"},
			expected: &Config{DatabasePath: "x.db", ListenAddr: "127.0.0.1:9090", LogLevel: "debug"},
		},
		{
			name:     "equals form",
			args:     []string{"-a=:1234"},
			expected: &Config{ListenAddr: ":1234"},
		},
		{
			name:     "foreign flags ignored",
			args:     []string{"-c", "cfg.json", "-user", "bob", "-l", "warn"},
			expected: &Config{LogLevel: "warn"},
		},
		{
			name:        "missing value",
			args:        []string{"-d"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(cfg, tt.args) })
				return
			}

			require.NotPanics(t, func() { parseFlags(cfg, tt.args) })
			assert.Empty(t, cmp.Diff(tt.expected, cfg))
		})
	}
}
