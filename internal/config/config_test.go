package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	_ "github.com/vovakirdan/zertz/internal/zertz" // registers built-in variants
)

func TestEmbeddedDefaultsParse(t *testing.T) {
	cfg, err := Parse(DefaultYAML())
	if err != nil {
		t.Fatalf("Parse(default) failed: %v", err)
	}

	if cfg.Variant != "standard" {
		t.Errorf("Variant = %q, expected standard", cfg.Variant)
	}
	if cfg.Server.IdleTimeout != 30*time.Minute {
		t.Errorf("IdleTimeout = %v, expected 30m", cfg.Server.IdleTimeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() failed on defaults: %v", err)
	}
}

func TestLoadCustomPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zertz.yaml")
	data := []byte("variant: blitz\nballs:\n  black: 12\nlog:\n  level: debug\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	// Unset sections keep their defaults.
	if cfg.Storage.Path != DefaultConfig().Storage.Path {
		t.Errorf("Storage.Path = %q, expected default", cfg.Storage.Path)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("Log.Level = %q, expected debug", cfg.Log.Level)
	}

	v, err := cfg.Resolve()
	if err != nil {
		t.Fatalf("Resolve() failed: %v", err)
	}
	if v.ID != "blitz" || v.White != 5 || v.Grey != 7 || v.Black != 12 || v.Radius != 3 {
		t.Errorf("Resolve() = %+v, expected blitz with 12 black", v)
	}
}

func TestLoadMissingCustomPath(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() should fail for a missing custom path")
	}
}

func TestLoadInvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("variant: [unclosed"), 0o600); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() should fail for invalid YAML")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"defaults", func(c *Config) {}, false},
		{"radius override", func(c *Config) { c.Board.Radius = 4 }, false},
		{"negative radius", func(c *Config) { c.Board.Radius = -1 }, true},
		{"negative balls", func(c *Config) { c.Balls.Grey = -2 }, true},
		{"unknown variant", func(c *Config) { c.Variant = "tournament" }, true},
		{"bad log level", func(c *Config) { c.Log.Level = "loud" }, true},
		{"negative timeout", func(c *Config) { c.Server.IdleTimeout = -time.Second }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestApplyVariant(t *testing.T) {
	cfg := DefaultConfig()

	ApplyVariant(&cfg, "")
	if cfg.Variant != "standard" {
		t.Errorf("empty override changed variant to %q", cfg.Variant)
	}

	ApplyVariant(&cfg, "blitz")
	if cfg.Variant != "blitz" {
		t.Errorf("Variant = %q, expected blitz", cfg.Variant)
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	got, err := ExpandPath("~/.zertz/sessions.db")
	if err != nil {
		t.Fatalf("ExpandPath() failed: %v", err)
	}
	if want := filepath.Join(home, ".zertz", "sessions.db"); got != want {
		t.Errorf("ExpandPath() = %q, expected %q", got, want)
	}

	if got, _ := ExpandPath("/tmp/x.db"); got != "/tmp/x.db" {
		t.Errorf("ExpandPath() changed an absolute path: %q", got)
	}
}
