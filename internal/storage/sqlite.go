// Package storage provides SQLite-based persistence for play-session statistics.
// Uses the pure-Go modernc.org/sqlite driver to avoid CGO dependencies.
// Game positions themselves are never stored.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// Store manages the SQLite database connection.
type Store struct {
	db *sql.DB
}

// SessionRecord is the summary of one finished play session.
type SessionRecord struct {
	ID           int64
	SessionID    string
	User         string // Empty for local sessions
	Variant      string
	Applied      int // Successful moves and removals
	Rejected     int // Rejected actions
	Undone       int // Successful undos
	CellsRemoved int
	FinalDepth   int // History length when the session ended
	Duration     int // Duration in seconds
	CreatedAt    time.Time
}

// VariantStats contains aggregated statistics for a variant.
type VariantStats struct {
	Variant      string
	Sessions     int
	TotalApplied int64
	TotalUndone  int64
	AvgDuration  float64
	LastPlayed   time.Time
}

// Open creates or opens a SQLite database at the given path.
// It creates the parent directories if needed and runs migrations.
func Open(dbPath string) (*Store, error) {
	// Expand ~ to home directory
	if dbPath != "" && dbPath[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("storage: cannot expand home directory: %w", err)
		}
		dbPath = filepath.Join(home, dbPath[1:])
	}

	// Create parent directories
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("storage: cannot create directory %s: %w", dir, err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot open database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: cannot connect to database: %w", err)
	}

	store := &Store{db: db}

	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("storage: migration failed: %w", err)
	}

	return store, nil
}

// migrate creates the database schema if it doesn't exist.
func (s *Store) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS sessions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			session_id TEXT NOT NULL UNIQUE,
			user TEXT NOT NULL DEFAULT '',
			variant TEXT NOT NULL,
			applied INTEGER NOT NULL DEFAULT 0,
			rejected INTEGER NOT NULL DEFAULT 0,
			undone INTEGER NOT NULL DEFAULT 0,
			cells_removed INTEGER NOT NULL DEFAULT 0,
			final_depth INTEGER NOT NULL DEFAULT 1,
			duration_secs INTEGER NOT NULL DEFAULT 0,
			created_at DATETIME DEFAULT CURRENT_TIMESTAMP
		);
		CREATE INDEX IF NOT EXISTS idx_sessions_variant ON sessions(variant);
		CREATE INDEX IF NOT EXISTS idx_sessions_user ON sessions(user);
	`

	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

// SaveSession records a finished session.
// Returns the ID of the inserted record.
func (s *Store) SaveSession(r SessionRecord) (int64, error) {
	res, err := s.db.Exec(
		`INSERT INTO sessions
		 (session_id, user, variant, applied, rejected, undone, cells_removed, final_depth, duration_secs)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		r.SessionID,
		r.User,
		r.Variant,
		r.Applied,
		r.Rejected,
		r.Undone,
		r.CellsRemoved,
		r.FinalDepth,
		r.Duration,
	)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot save session: %w", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("storage: cannot get inserted ID: %w", err)
	}

	return id, nil
}

// SessionByID retrieves a session by its session ID.
// Returns nil if no such session exists.
func (s *Store) SessionByID(sessionID string) (*SessionRecord, error) {
	row := s.db.QueryRow(
		`SELECT id, session_id, user, variant, applied, rejected, undone,
		        cells_removed, final_depth, duration_secs, created_at
		 FROM sessions
		 WHERE session_id = ?`,
		sessionID,
	)

	r, err := scanSession(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query session: %w", err)
	}
	return &r, nil
}

// RecentSessions retrieves the most recent sessions, newest first.
func (s *Store) RecentSessions(limit int) ([]SessionRecord, error) {
	if limit <= 0 {
		limit = 20
	}

	rows, err := s.db.Query(
		`SELECT id, session_id, user, variant, applied, rejected, undone,
		        cells_removed, final_depth, duration_secs, created_at
		 FROM sessions
		 ORDER BY created_at DESC, id DESC
		 LIMIT ?`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query sessions: %w", err)
	}
	defer rows.Close()

	var results []SessionRecord
	for rows.Next() {
		r, err := scanSession(rows)
		if err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		results = append(results, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}

	return results, nil
}

// GetVariantStats retrieves aggregated statistics for a variant.
func (s *Store) GetVariantStats(variant string) (*VariantStats, error) {
	stats := &VariantStats{Variant: variant}

	var lastPlayed any
	err := s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(SUM(applied), 0), COALESCE(SUM(undone), 0),
		        COALESCE(AVG(duration_secs), 0), MAX(created_at)
		 FROM sessions WHERE variant = ?`,
		variant,
	).Scan(&stats.Sessions, &stats.TotalApplied, &stats.TotalUndone, &stats.AvgDuration, &lastPlayed)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get variant stats: %w", err)
	}
	stats.LastPlayed = parseTime(lastPlayed)

	return stats, nil
}

// rowScanner is implemented by *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func scanSession(row rowScanner) (SessionRecord, error) {
	var r SessionRecord
	var createdAt any
	err := row.Scan(
		&r.ID,
		&r.SessionID,
		&r.User,
		&r.Variant,
		&r.Applied,
		&r.Rejected,
		&r.Undone,
		&r.CellsRemoved,
		&r.FinalDepth,
		&r.Duration,
		&createdAt,
	)
	if err != nil {
		return SessionRecord{}, err
	}
	r.CreatedAt = parseTime(createdAt)
	return r, nil
}

// parseTime handles both time.Time and string datetime values.
func parseTime(v any) time.Time {
	switch v := v.(type) {
	case time.Time:
		return v
	case string:
		if parsed, err := time.Parse("2006-01-02 15:04:05", v); err == nil {
			return parsed
		}
	}
	return time.Time{}
}
