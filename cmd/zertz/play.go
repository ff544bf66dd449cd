package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zertz/internal/config"
	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/platform/tui"
	"github.com/vovakirdan/zertz/internal/registry"
	"github.com/vovakirdan/zertz/internal/storage"
)

var flagVariant string

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play in the terminal",
	Long: `Open a table in the terminal. Without --variant a picker is shown
with the configured variant preselected.

Controls:
  Arrows/WASD  - Move the cursor
  Tab/S-Tab    - Switch between board, table and player piles
  Enter/Space  - Select a ball, then a cell or a pile
                 Select an empty cell twice to remove it
  U            - Undo
  Esc          - Clear the selection
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Examples:
  zertz play
  zertz play --variant blitz
  zertz play --config ./my-zertz.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagVariant, "variant", "", "Variant to play (skips the picker)")
}

func runPlay(_ *cobra.Command, _ []string) {
	if flagVariant != "" && !registry.Exists(flagVariant) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", flagVariant)
		fmt.Fprintln(os.Stderr, "Run 'zertz variants' to see available variants.")
		os.Exit(1)
	}
	config.ApplyVariant(&appConfig, flagVariant)

	// playTable releases its log file and store before we exit.
	if err := playTable(); err != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", err)
		os.Exit(1)
	}
}

func playTable() error {
	// Get terminal size for the picker
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	// The terminal belongs to the table: log to a file or nowhere.
	logOut, closeLog, err := openLogFile(appConfig.Log.File)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}
	defer closeLog()
	logger := newLogger(logOut)

	// Open session storage
	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open sessions database: %v\n", err)
		// Continue without storage - the game still works
		store = nil
	}
	if store != nil {
		defer store.Close()
	}

	return tui.RunApp(tui.AppConfig{
		Runtime: core.RuntimeConfig{
			ScreenW: width,
			ScreenH: height,
			Variant: appConfig.Variant,
		},
		SkipMenu: flagVariant != "",
		Resolve:  resolveVariant,
		Store:    store,
		Logger:   logger,
	})
}

// openLogFile opens the configured log file for appending. With no path, or
// when the file cannot be used, logs are discarded and the error says why.
// The returned close function is always safe to call.
func openLogFile(path string) (io.Writer, func(), error) {
	if path == "" {
		return io.Discard, func() {}, nil
	}

	expanded, err := config.ExpandPath(path)
	if err != nil {
		return io.Discard, func() {}, fmt.Errorf("could not resolve log file %q: %w", path, err)
	}

	f, err := os.OpenFile(expanded, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return io.Discard, func() {}, fmt.Errorf("could not open log file: %w", err)
	}
	return f, func() { f.Close() }, nil
}
