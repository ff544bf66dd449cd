package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/zertz/internal/registry"
)

// Load loads the configuration.
// Search order: customPath -> ~/.zertz/config.yaml -> ./configs/zertz.yaml -> embedded default
// Fields missing from the file keep their DefaultConfig values.
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := Parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := Parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/zertz.yaml"); err == nil {
		if cfg, err := Parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := Parse(defaultYAML)
	if err != nil {
		return DefaultConfig(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// Parse decodes YAML on top of DefaultConfig.
func Parse(data []byte) (Config, error) {
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".zertz", filename)
}

// Resolve returns the effective variant: the registered preset named by
// Variant with the non-zero board and ball overrides applied.
func (c Config) Resolve() (registry.Variant, error) {
	id := c.Variant
	if id == "" {
		id = "standard"
	}

	v, err := registry.Get(id)
	if err != nil {
		return registry.Variant{}, fmt.Errorf("config: %w", err)
	}

	if c.Board.Radius != 0 {
		v.Radius = c.Board.Radius
	}
	if c.Balls.White != 0 {
		v.White = c.Balls.White
	}
	if c.Balls.Grey != 0 {
		v.Grey = c.Balls.Grey
	}
	if c.Balls.Black != 0 {
		v.Black = c.Balls.Black
	}
	return v, nil
}

// Validate checks that the configuration can start a game.
func (c Config) Validate() error {
	if c.Board.Radius < 0 {
		return fmt.Errorf("config: board.radius must not be negative, got %d", c.Board.Radius)
	}
	if c.Balls.White < 0 || c.Balls.Grey < 0 || c.Balls.Black < 0 {
		return fmt.Errorf("config: ball counts must not be negative")
	}
	if c.Server.IdleTimeout < 0 {
		return fmt.Errorf("config: server.idle_timeout must not be negative")
	}
	if c.Log.Level != "" {
		if _, err := log.ParseLevel(c.Log.Level); err != nil {
			return fmt.Errorf("config: log.level: %w", err)
		}
	}
	if _, err := c.Resolve(); err != nil {
		return err
	}
	return nil
}

// ApplyVariant overrides the configured variant when id is not empty.
func ApplyVariant(cfg *Config, id string) {
	if id != "" {
		cfg.Variant = id
	}
}

// ExpandPath expands a leading ~ to the user's home directory.
func ExpandPath(path string) (string, error) {
	if path == "" || path[0] != '~' {
		return path, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("config: cannot expand home directory: %w", err)
	}
	return filepath.Join(home, path[1:]), nil
}
