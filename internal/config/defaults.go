package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/zertz.yaml
var defaultYAML []byte

// DefaultConfig returns the hard-coded default configuration.
func DefaultConfig() Config {
	return Config{
		Variant: "standard",
		Log: LogConfig{
			Level: "info",
		},
		Storage: StorageConfig{
			Path: "~/.zertz/sessions.db",
		},
		Server: ServerConfig{
			Address:     ":23235",
			IdleTimeout: 30 * time.Minute,
		},
	}
}

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultYAML
}
