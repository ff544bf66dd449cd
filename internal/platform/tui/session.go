package tui

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/zertz/internal/controller"
	"github.com/vovakirdan/zertz/internal/registry"
	"github.com/vovakirdan/zertz/internal/storage"
	"github.com/vovakirdan/zertz/internal/zertz"
)

// SessionConfig describes one play session.
type SessionConfig struct {
	Variant registry.Variant
	User    string         // Empty for local play
	Store   *storage.Store // Optional; statistics are dropped when nil
	Logger  *log.Logger    // Optional
}

// Session is one table: an engine, the controller pairing clicks, and the
// bookkeeping needed to record statistics when play ends.
// Session is safe for concurrent use so the SSH server can finish a
// session that is being torn down while its program still runs.
type Session struct {
	mu      sync.Mutex
	id      string
	user    string
	variant registry.Variant
	engine  *zertz.Engine
	ctrl    *controller.Controller
	store   *storage.Store
	logger  *log.Logger
	started time.Time

	finishOnce sync.Once
	saved      bool
}

// NewSession starts a fresh engine for the given variant.
func NewSession(cfg SessionConfig) (*Session, error) {
	logger := cfg.Logger
	if logger == nil {
		logger = log.New(io.Discard)
	}

	engine, err := zertz.New(
		zertz.WithSetup(zertz.SetupFromVariant(cfg.Variant)),
		zertz.WithLogger(logger.With("variant", cfg.Variant.ID)),
	)
	if err != nil {
		return nil, fmt.Errorf("tui: cannot start %s: %w", cfg.Variant.ID, err)
	}

	owner := cfg.User
	if owner == "" {
		owner = "local"
	}
	now := time.Now()

	return &Session{
		id:      fmt.Sprintf("%s-%d", owner, now.UnixNano()),
		user:    cfg.User,
		variant: cfg.Variant,
		engine:  engine,
		ctrl:    controller.New(engine),
		store:   cfg.Store,
		logger:  logger,
		started: now,
	}, nil
}

// ID returns the unique session identifier.
func (s *Session) ID() string {
	return s.id
}

// Variant returns the variant being played.
func (s *Session) Variant() registry.Variant {
	return s.variant
}

// State returns the latest snapshot.
func (s *Session) State() zertz.GameState {
	return s.engine.Latest()
}

// Depth returns the number of snapshots in the history.
func (s *Session) Depth() int {
	return s.engine.Depth()
}

// Click forwards a click to the controller.
func (s *Session) Click(t controller.Target) controller.Result {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Click(t)
}

// Pending returns the pending selection, if any.
func (s *Session) Pending() (controller.Target, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Pending()
}

// Cancel drops the pending selection.
func (s *Session) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ctrl.Cancel()
}

// Stats returns the controller counters.
func (s *Session) Stats() controller.Stats {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.ctrl.Stats()
}

// Record summarizes the session for the statistics store.
func (s *Session) Record() storage.SessionRecord {
	st := s.Stats()
	return storage.SessionRecord{
		SessionID:    s.id,
		User:         s.user,
		Variant:      s.variant.ID,
		Applied:      st.Applied,
		Rejected:     st.Rejected,
		Undone:       st.Undone,
		CellsRemoved: st.CellsRemoved,
		FinalDepth:   s.engine.Depth(),
		Duration:     int(time.Since(s.started).Seconds()),
	}
}

// Finish records the session once. Later calls do nothing.
// Sessions without any click are not recorded.
func (s *Session) Finish() {
	s.finishOnce.Do(func() {
		rec := s.Record()
		s.logger.Info("session finished",
			"session", rec.SessionID,
			"applied", rec.Applied,
			"rejected", rec.Rejected,
			"undone", rec.Undone,
			"depth", rec.FinalDepth,
		)

		if s.store == nil || rec.Applied+rec.Rejected+rec.Undone == 0 {
			return
		}
		if _, err := s.store.SaveSession(rec); err != nil {
			s.logger.Warn("could not save session", "session", rec.SessionID, "error", err)
			return
		}
		s.mu.Lock()
		s.saved = true
		s.mu.Unlock()
	})
}

// Saved reports whether Finish wrote the session to the store.
func (s *Session) Saved() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saved
}
