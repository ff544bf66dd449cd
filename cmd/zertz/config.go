package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/zertz/internal/config"
)

var flagEffective bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Print the default configuration",
	Long: `Print the embedded default configuration, ready to be saved as
~/.zertz/config.yaml. With --effective the loaded configuration, including
flags, is printed instead.

Examples:
  zertz config > ~/.zertz/config.yaml
  zertz config --effective --config ./my-zertz.yaml`,
	Args: cobra.NoArgs,
	Run:  runConfig,
}

func init() {
	configCmd.Flags().BoolVar(&flagEffective, "effective", false, "Print the loaded configuration")
}

func runConfig(_ *cobra.Command, _ []string) {
	if !flagEffective {
		os.Stdout.Write(config.DefaultYAML())
		return
	}

	out, err := yaml.Marshal(appConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	os.Stdout.Write(out)
}
