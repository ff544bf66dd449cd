package tui

import (
	"context"
	"errors"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zertz/internal/controller"
	"github.com/vovakirdan/zertz/internal/zertz"
)

func newTestSSHServer(t *testing.T) *SSHServer {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultSSHServerConfig()
	cfg.Address = "127.0.0.1:0"
	cfg.HostKeyPath = filepath.Join(dir, "keys", "host_key")
	cfg.DBPath = filepath.Join(dir, "sessions.db")
	cfg.Logger = log.New(io.Discard)

	srv, err := NewSSHServer(cfg)
	if err != nil {
		t.Fatalf("NewSSHServer: %v", err)
	}
	if srv.store == nil {
		t.Fatal("sessions database should be open")
	}
	return srv
}

func TestSSHServerHostKeyDirFailureOpensNothing(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatal(err)
	}
	dbPath := filepath.Join(dir, "sessions.db")

	cfg := DefaultSSHServerConfig()
	cfg.HostKeyPath = filepath.Join(blocker, "host_key")
	cfg.DBPath = dbPath
	cfg.Logger = log.New(io.Discard)

	if _, err := NewSSHServer(cfg); err == nil {
		t.Fatal("expected an error when the host key directory cannot be created")
	}
	if _, err := os.Stat(dbPath); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("sessions database should not be opened, stat err = %v", err)
	}
}

func TestSSHServerCleanCloseFinishesTables(t *testing.T) {
	srv := newTestSSHServer(t)

	table, err := NewSession(SessionConfig{Variant: standardVariant(t), Store: srv.store})
	if err != nil {
		t.Fatalf("NewSession: %v", err)
	}
	table.Click(controller.BallTarget(0))
	table.Click(controller.CellTarget(zertz.QR{Q: 3, R: 3}))
	srv.track("conn-1", table)
	if srv.Active() != 1 {
		t.Fatalf("Active() = %d, want 1", srv.Active())
	}

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(context.Background(), ln)
	}()

	// Closing the server before its listener makes Serve see ErrServerClosed.
	srv.server.Close()
	ln.Close()

	select {
	case err := <-done:
		if err != nil {
			t.Fatalf("Serve() = %v, want nil on a clean close", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Serve did not return")
	}

	if !table.Saved() {
		t.Error("open table should be recorded when the server stops")
	}
	if srv.Active() != 0 {
		t.Errorf("Active() = %d, want 0", srv.Active())
	}
	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.store != nil {
		t.Error("store should be closed")
	}
}

func TestSSHServerShutdownOnContext(t *testing.T) {
	srv := newTestSSHServer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("net.Listen: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	// Wait for the SSH banner so the server is accepting connections.
	conn, err := net.DialTimeout("tcp", ln.Addr().String(), 5*time.Second)
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	_ = conn.SetReadDeadline(time.Now().Add(5 * time.Second))
	banner := make([]byte, 4)
	if _, err := io.ReadFull(conn, banner); err != nil || string(banner) != "SSH-" {
		t.Fatalf("banner = %q, %v", banner, err)
	}
	conn.Close()

	cancel()
	select {
	case err := <-done:
		if err != nil {
			t.Errorf("Serve() = %v, want nil", err)
		}
	case <-time.After(15 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}

	srv.mu.Lock()
	defer srv.mu.Unlock()
	if srv.store != nil {
		t.Error("store should be closed")
	}
}
