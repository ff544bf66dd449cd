package tui

import (
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/activeterm"
	"github.com/charmbracelet/wish/bubbletea"

	"github.com/vovakirdan/zertz/internal/core"
	"github.com/vovakirdan/zertz/internal/registry"
	"github.com/vovakirdan/zertz/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23235").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.zertz/host_key.
	HostKeyPath string

	// DBPath is the path to the session statistics database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// Variant is preselected in the picker of every connection.
	Variant string

	// Resolve applies configured overrides to a variant. Defaults to registry.Get.
	Resolve func(id string) (registry.Variant, error)

	// Logger receives server and session events. Defaults to stderr.
	Logger *log.Logger
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23235",
		DBPath:      "~/.zertz/sessions.db",
		IdleTimeout: 30 * time.Minute,
		Variant:     "standard",
	}
}

// SSHServer wraps a Wish SSH server. Every connection plays its own table;
// connections never share a game.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger

	mu     sync.Mutex
	active map[string]*Session // Keyed by SSH session ID
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.NewWithOptions(os.Stderr, log.Options{
			ReportTimestamp: true,
			Prefix:          "zertz-ssh",
		})
	}

	// Resolve host key path
	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("tui: cannot get home directory: %w", err)
		}
		hostKeyPath = filepath.Join(home, ".zertz", "host_key")
	}

	// Ensure host key directory exists
	if err := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); err != nil {
		return nil, fmt.Errorf("tui: cannot create host key directory: %w", err)
	}

	// Open storage last so the failures above have nothing to release.
	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open sessions database", "error", err)
		// Continue without storage
		store = nil
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
		active: make(map[string]*Session),
	}

	// Middlewares run last to first: logging wraps session tracking, which
	// wraps the program.
	server, err := wish.NewServer(
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			activeterm.Middleware(),
			srv.trackingMiddleware,
			srv.loggingMiddleware,
		),
	)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("tui: cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, _ := sshSession.Pty()
	sid := sshSession.Context().SessionID()

	s.mu.Lock()
	store := s.store
	s.mu.Unlock()

	cfg := AppConfig{
		Runtime: core.RuntimeConfig{
			ScreenW: pty.Window.Width,
			ScreenH: pty.Window.Height,
			Variant: s.config.Variant,
		},
		Resolve: s.config.Resolve,
		Store:   store,
		Logger:  s.logger.With("user", sshSession.User()),
		User:    sshSession.User(),
		OnStart: func(table *Session) {
			s.track(sid, table)
		},
	}

	return NewAppModel(cfg), []tea.ProgramOption{
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	}
}

// track registers the table played by an SSH session.
func (s *SSHServer) track(sid string, table *Session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.active[sid] = table
	s.logger.Debug("table started", "session", table.ID(), "variant", table.Variant().ID)
}

// untrack removes and returns the table of an SSH session.
func (s *SSHServer) untrack(sid string) *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	table := s.active[sid]
	delete(s.active, sid)
	return table
}

// Active returns the number of tables currently being played.
func (s *SSHServer) Active() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.active)
}

// trackingMiddleware records the table of a session once the connection
// ends, whether the player quit or the connection dropped.
func (s *SSHServer) trackingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		next(sshSession)
		if table := s.untrack(sshSession.Context().SessionID()); table != nil {
			table.Finish()
		}
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		start := time.Now()
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
			"duration", time.Since(start).Round(time.Second),
		)
	}
}

// ListenAndServe listens on the configured address and serves until SIGINT
// or SIGTERM.
func (s *SSHServer) ListenAndServe() error {
	ln, err := net.Listen("tcp", s.config.Address)
	if err != nil {
		s.closeStore()
		return fmt.Errorf("tui: SSH server: %w", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln until ctx is done or the server is closed.
// Either way, open tables are recorded and the store is closed on return.
func (s *SSHServer) Serve(ctx context.Context, ln net.Listener) error {
	s.logger.Info("starting SSH server", "address", ln.Addr().String())

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.server.Serve(ln)
	}()

	select {
	case err := <-errCh:
		s.finishOpen()
		s.closeStore()
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("tui: SSH server: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server, finishing tables that are still open.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	err := s.server.Shutdown(ctx)
	s.finishOpen()
	s.closeStore()
	return err
}

// finishOpen records and forgets every table still being played.
func (s *SSHServer) finishOpen() {
	s.mu.Lock()
	open := make([]*Session, 0, len(s.active))
	for sid, table := range s.active {
		open = append(open, table)
		delete(s.active, sid)
	}
	s.mu.Unlock()

	for _, table := range open {
		table.Finish()
	}
}

func (s *SSHServer) closeStore() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.store != nil {
		s.store.Close()
		s.store = nil
	}
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}
