package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/zertz/internal/config"
	"github.com/vovakirdan/zertz/internal/platform/tui"
	"github.com/vovakirdan/zertz/internal/registry"
)

var (
	flagSSHAddr     string
	flagHostKey     string
	flagIdleTimeout time.Duration
	flagServeVar    string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the zertz SSH server",
	Long: `Start an SSH server that lets users connect and play.

Each SSH connection gets its own table with a variant picker. Tables are
independent: connections never share a game. Session statistics are
recorded in the server's database.

Host key handling:
  - If --host-key (or server.host_key) is set, uses that key file
  - Otherwise, auto-generates a key at ~/.zertz/host_key

Examples:
  zertz serve                           # Listen on the configured address
  zertz serve --ssh :2222               # Listen on port 2222
  zertz serve --host-key ./my_host_key  # Use specific host key
  zertz serve --idle-timeout 10m        # Disconnect idle users sooner

Users can connect with:
  ssh localhost -p 23235`,
	Args: cobra.NoArgs,
	Run:  runServe,
}

func init() {
	serveCmd.Flags().StringVar(&flagSSHAddr, "ssh", "", "SSH server address (host:port)")
	serveCmd.Flags().StringVar(&flagHostKey, "host-key", "", "Path to host key file (auto-generated if not specified)")
	serveCmd.Flags().DurationVar(&flagIdleTimeout, "idle-timeout", 0, "Idle timeout before disconnecting, e.g. 30m (0 = from config)")
	serveCmd.Flags().StringVar(&flagServeVar, "variant", "", "Variant preselected in the picker")
}

func runServe(_ *cobra.Command, _ []string) {
	srvCfg := appConfig.Server
	if flagSSHAddr != "" {
		srvCfg.Address = flagSSHAddr
	}
	if flagHostKey != "" {
		srvCfg.HostKey = flagHostKey
	}
	if flagIdleTimeout > 0 {
		srvCfg.IdleTimeout = flagIdleTimeout
	}
	if flagServeVar != "" && !registry.Exists(flagServeVar) {
		fmt.Fprintf(os.Stderr, "Error: unknown variant %q\n", flagServeVar)
		os.Exit(1)
	}
	config.ApplyVariant(&appConfig, flagServeVar)

	hostKey, err := config.ExpandPath(srvCfg.HostKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	server, err := tui.NewSSHServer(tui.SSHServerConfig{
		Address:     srvCfg.Address,
		HostKeyPath: hostKey,
		DBPath:      appConfig.Storage.Path,
		IdleTimeout: srvCfg.IdleTimeout,
		Variant:     appConfig.Variant,
		Resolve:     resolveVariant,
		Logger:      newLogger(os.Stderr),
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating server: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Starting zertz SSH server on %s\n", server.Addr())
	fmt.Println("Press Ctrl+C to stop")

	if err := server.ListenAndServe(); err != nil {
		fmt.Fprintf(os.Stderr, "Server error: %v\n", err)
		os.Exit(1)
	}
}
