// zertz is a terminal table for a Zertz-like marble game.
//
// Usage:
//
//	zertz play               - Pick a variant and play in the terminal
//	zertz play --variant X   - Play variant X directly
//	zertz variants           - List available variants
//	zertz serve              - Start SSH server for remote play
//	zertz sessions           - Browse recorded session statistics
//	zertz config             - Print the default configuration
//
// Global flags:
//
//	--config <path>     - Configuration file (default: search ~/.zertz, ./configs)
//	--db <path>         - Session database path (default: from config)
//	--log-level <level> - debug, info, warn or error (default: from config)
package main

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/zertz/internal/config"
	"github.com/vovakirdan/zertz/internal/registry"

	// Import the rules to register the built-in variants
	_ "github.com/vovakirdan/zertz/internal/zertz"
)

var (
	// Global flags
	flagConfig   string
	flagDBPath   string
	flagLogLevel string

	// appConfig is loaded before every command runs.
	appConfig config.Config
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "zertz",
	Short: "Zertz - a marble game table in your terminal",
	Long: `Zertz is a terminal table for a Zertz-like marble game: a hexagonal
board of removable rings, three ball piles and unlimited undo.

Available commands:
  play      - Play in the terminal
  variants  - Show all available variants
  serve     - Start SSH server for remote play
  sessions  - Browse recorded session statistics
  config    - Print the default configuration

Examples:
  zertz play
  zertz play --variant blitz
  zertz serve --ssh :2222
  zertz sessions`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "Path to sessions database (overrides config)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(variantsCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(sessionsCmd)
	rootCmd.AddCommand(configCmd)
}

// loadConfig loads the configuration file and applies the global flags.
func loadConfig(_ *cobra.Command, _ []string) error {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		return err
	}

	if flagDBPath != "" {
		cfg.Storage.Path = flagDBPath
	}
	if flagLogLevel != "" {
		cfg.Log.Level = flagLogLevel
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	appConfig = cfg
	return nil
}

// newLogger creates a logger writing to w at the configured level.
func newLogger(w io.Writer) *log.Logger {
	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "zertz",
	})
	if level, err := log.ParseLevel(appConfig.Log.Level); err == nil {
		logger.SetLevel(level)
	}
	return logger
}

// resolveVariant returns the variant id with the configured overrides applied.
func resolveVariant(id string) (registry.Variant, error) {
	cfg := appConfig
	config.ApplyVariant(&cfg, id)
	return cfg.Resolve()
}
