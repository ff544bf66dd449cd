package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/zertz/internal/platform/tui"
	"github.com/vovakirdan/zertz/internal/registry"
	"github.com/vovakirdan/zertz/internal/storage"
)

var (
	flagLimit int
	flagPlain bool
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions [variant]",
	Short: "Show recorded session statistics",
	Long: `Browse statistics of finished sessions: moves, undos, removed rings and
play time. Game positions are never stored.

In a terminal an interactive browser opens; with --plain, or when output is
redirected, the most recent sessions are printed instead.

Examples:
  zertz sessions
  zertz sessions --plain
  zertz sessions blitz --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	Run:  runSessions,
}

func init() {
	sessionsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of sessions to print with --plain")
	sessionsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print instead of opening the browser")
}

func runSessions(_ *cobra.Command, args []string) {
	variant := ""
	if len(args) == 1 {
		variant = args[0]
		if !registry.Exists(variant) {
			fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", variant)
			fmt.Fprintln(os.Stderr, "Run 'zertz variants' to see available variants.")
			os.Exit(1)
		}
	}

	store, err := storage.Open(appConfig.Storage.Path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening sessions database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	fd := int(os.Stdout.Fd())
	if !flagPlain && variant == "" && term.IsTerminal(fd) {
		width, height, sizeErr := term.GetSize(fd)
		if sizeErr != nil {
			width, height = 80, 24
		}
		if err := tui.RunSessions(store, width, height); err != nil {
			fmt.Fprintf(os.Stderr, "Error running browser: %v\n", err)
			os.Exit(1)
		}
		return
	}

	if err := printSessions(store, variant, flagLimit); err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving sessions: %v\n", err)
		os.Exit(1)
	}
}

// printSessions prints the latest sessions, optionally for a single variant.
func printSessions(store *storage.Store, variant string, limit int) error {
	fetch := limit
	if variant != "" {
		fetch = limit * 20 // Filtered below
	}
	sessions, err := store.RecentSessions(fetch)
	if err != nil {
		return err
	}

	title := "Recent sessions"
	if variant != "" {
		title += " - " + variant
	}
	fmt.Println(title)
	fmt.Println()

	// Print header
	fmt.Printf("  %-16s  %-10s  %-10s  %5s  %4s  %5s  %8s\n", "Date", "Variant", "User", "Moves", "Undo", "Rings", "Time")
	fmt.Printf("  %-16s  %-10s  %-10s  %5s  %4s  %5s  %8s\n", "----", "-------", "----", "-----", "----", "-----", "----")

	printed := 0
	for _, s := range sessions {
		if variant != "" && s.Variant != variant {
			continue
		}
		if printed == limit {
			break
		}
		user := s.User
		if user == "" {
			user = "local"
		}
		fmt.Printf("  %-16s  %-10s  %-10s  %5d  %4d  %5d  %8s\n",
			s.CreatedAt.Format("2006-01-02 15:04"),
			s.Variant,
			user,
			s.Applied,
			s.Undone,
			s.CellsRemoved,
			time.Duration(s.Duration)*time.Second,
		)
		printed++
	}

	if printed == 0 {
		fmt.Println()
		fmt.Println("No sessions recorded yet.")
		fmt.Println("Play 'zertz play' to record one!")
		return nil
	}

	// Show aggregate for the variant
	if variant != "" {
		stats, err := store.GetVariantStats(variant)
		if err == nil && stats.Sessions > 0 {
			fmt.Println()
			fmt.Printf("%d sessions, %d moves, %d undos\n", stats.Sessions, stats.TotalApplied, stats.TotalUndone)
		}
	}
	return nil
}
