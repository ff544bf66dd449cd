package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zertz/internal/registry"
)

var variantsCmd = &cobra.Command{
	Use:   "variants",
	Short: "List all available variants",
	Long: `Shows every registered rule variant with its board radius and ball counts.
The configured default is marked with *.`,
	Args: cobra.NoArgs,
	Run:  runVariants,
}

func runVariants(_ *cobra.Command, _ []string) {
	variants := registry.List()

	if len(variants) == 0 {
		fmt.Println("No variants available.")
		return
	}

	fmt.Println("Available variants:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, v := range variants {
		if len(v.ID) > maxIDLen {
			maxIDLen = len(v.ID)
		}
	}

	// Print header
	fmt.Printf("    %-*s  %-10s  %6s  %5s  %4s  %5s\n", maxIDLen, "ID", "Title", "Radius", "White", "Grey", "Black")
	fmt.Printf("    %-*s  %-10s  %6s  %5s  %4s  %5s\n", maxIDLen, "--", "-----", "------", "-----", "----", "-----")

	// Print variants
	for _, v := range variants {
		mark := " "
		if v.ID == appConfig.Variant {
			mark = "*"
		}
		fmt.Printf("  %s %-*s  %-10s  %6d  %5d  %4d  %5d\n",
			mark, maxIDLen, v.ID, v.Title, v.Radius, v.White, v.Grey, v.Black)
	}

	// Show the effective setup when the config overrides the default variant
	if effective, err := appConfig.Resolve(); err == nil {
		if base, baseErr := registry.Get(effective.ID); baseErr == nil && base != effective {
			fmt.Println()
			fmt.Printf("Config overrides %s: radius %d, balls %d/%d/%d\n",
				effective.ID, effective.Radius, effective.White, effective.Grey, effective.Black)
		}
	}

	fmt.Println()
	fmt.Println("Run 'zertz play --variant <id>' to play a variant.")
}
