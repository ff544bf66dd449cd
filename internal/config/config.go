// Package config provides YAML-based configuration loading for the game,
// the terminal client and the SSH server.
package config

import "time"

// Config contains all configuration for zertz.
type Config struct {
	Variant string        `yaml:"variant"`
	Board   BoardConfig   `yaml:"board"`
	Balls   BallsConfig   `yaml:"balls"`
	Log     LogConfig     `yaml:"log"`
	Storage StorageConfig `yaml:"storage"`
	Server  ServerConfig  `yaml:"server"`
}

// BoardConfig overrides the board of the selected variant.
type BoardConfig struct {
	Radius int `yaml:"radius"` // 0 = use the variant's radius
}

// BallsConfig overrides the ball counts of the selected variant.
// A zero count keeps the variant's value.
type BallsConfig struct {
	White int `yaml:"white"`
	Grey  int `yaml:"grey"`
	Black int `yaml:"black"`
}

// LogConfig defines logging parameters.
type LogConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
	File  string `yaml:"file"`  // Log file used while the TUI owns the terminal
}

// StorageConfig defines where session statistics are kept.
type StorageConfig struct {
	Path string `yaml:"path"`
}

// ServerConfig defines SSH server parameters.
type ServerConfig struct {
	Address     string        `yaml:"address"`
	HostKey     string        `yaml:"host_key"`
	IdleTimeout time.Duration `yaml:"idle_timeout"`
}
