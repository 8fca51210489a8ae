// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package history archives finished chat turns to a local SQLite
// database so past tutoring sessions survive process restarts.
package history

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // Pure Go SQLite driver

	"github.com/jeranaias/tutor-tui/internal/model"
)

// =============================================================================
// ERRORS
// =============================================================================

var (
	ErrClosed        = errors.New("history store closed")
	ErrDatabaseError = errors.New("database error")
)

// =============================================================================
// SCHEMA
// =============================================================================

const schema = `
CREATE TABLE IF NOT EXISTS metadata (
    key TEXT PRIMARY KEY,
    value TEXT NOT NULL
) WITHOUT ROWID;

-- One row per portal chat session opened by this client.
CREATE TABLE IF NOT EXISTS sessions (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    portal_id INTEGER NOT NULL,
    subject TEXT NOT NULL,
    level TEXT NOT NULL,
    model_id INTEGER NOT NULL,
    opened_at INTEGER NOT NULL  -- Unix timestamp
);

CREATE INDEX IF NOT EXISTS idx_sessions_opened_at ON sessions(opened_at);
CREATE INDEX IF NOT EXISTS idx_sessions_portal_id ON sessions(portal_id);

-- One row per completed turn within a session.
CREATE TABLE IF NOT EXISTS turns (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    session_id INTEGER NOT NULL,
    turn_id TEXT NOT NULL,
    role TEXT NOT NULL,
    content TEXT NOT NULL,
    status TEXT NOT NULL,
    feedback TEXT NOT NULL DEFAULT '',
    created_at INTEGER NOT NULL,
    FOREIGN KEY(session_id) REFERENCES sessions(id) ON DELETE CASCADE
);

CREATE INDEX IF NOT EXISTS idx_turns_session_id ON turns(session_id);
CREATE UNIQUE INDEX IF NOT EXISTS idx_turns_turn_id ON turns(session_id, turn_id);
`

// =============================================================================
// STORE
// =============================================================================

// Store persists chat sessions and turns to SQLite.
type Store struct {
	db *sql.DB
}

// SessionRecord is a persisted session with its local row id.
type SessionRecord struct {
	ID       int64
	PortalID int
	Subject  string
	Level    model.LearningLevel
	ModelID  int
	OpenedAt time.Time
}

// Open opens (creating if needed) the history database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer at a time, so limit connections
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA foreign_keys=ON",
	}
	for _, pragma := range pragmas {
		if _, err := db.Exec(pragma); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to set pragma: %w", err)
		}
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database handle.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

// RecordSession inserts a newly opened session and returns its local id.
func (s *Store) RecordSession(ctx context.Context, portalID int, subject string, level model.LearningLevel, modelID int) (int64, error) {
	if s.db == nil {
		return 0, ErrClosed
	}
	res, err := s.db.ExecContext(ctx,
		`INSERT INTO sessions (portal_id, subject, level, model_id, opened_at)
		 VALUES (?, ?, ?, ?, ?)`,
		portalID, subject, string(level), modelID, time.Now().Unix())
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return id, nil
}

// RecordTurn upserts a completed turn under the given local session id.
// Re-recording the same turn id replaces its content and feedback, which
// covers both regenerated answers and feedback changes.
func (s *Store) RecordTurn(ctx context.Context, sessionID int64, turn *model.Turn) error {
	if s.db == nil {
		return ErrClosed
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO turns (session_id, turn_id, role, content, status, feedback, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(session_id, turn_id) DO UPDATE SET
		     content = excluded.content,
		     status = excluded.status,
		     feedback = excluded.feedback`,
		sessionID, turn.ID, string(turn.Role), turn.Content,
		string(turn.Status), string(turn.Feedback), turn.Timestamp.Unix())
	if err != nil {
		return fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	return nil
}

// RecentSessions returns the most recently opened sessions, newest first.
func (s *Store) RecentSessions(ctx context.Context, limit int) ([]SessionRecord, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT id, portal_id, subject, level, model_id, opened_at
		 FROM sessions ORDER BY opened_at DESC, id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []SessionRecord
	for rows.Next() {
		var rec SessionRecord
		var level string
		var opened int64
		if err := rows.Scan(&rec.ID, &rec.PortalID, &rec.Subject, &level, &rec.ModelID, &opened); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		rec.Level = model.LearningLevel(level)
		rec.OpenedAt = time.Unix(opened, 0)
		out = append(out, rec)
	}
	return out, rows.Err()
}

// SessionTurns returns the turns recorded under a local session id in
// insertion order.
func (s *Store) SessionTurns(ctx context.Context, sessionID int64) ([]*model.Turn, error) {
	if s.db == nil {
		return nil, ErrClosed
	}
	rows, err := s.db.QueryContext(ctx,
		`SELECT turn_id, role, content, status, feedback, created_at
		 FROM turns WHERE session_id = ? ORDER BY id ASC`, sessionID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
	}
	defer rows.Close()

	var out []*model.Turn
	for rows.Next() {
		var turn model.Turn
		var role, status, feedback string
		var created int64
		if err := rows.Scan(&turn.ID, &role, &turn.Content, &status, &feedback, &created); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDatabaseError, err)
		}
		turn.Role = model.Role(role)
		turn.Status = model.TurnStatus(status)
		turn.Feedback = model.Feedback(feedback)
		turn.Timestamp = time.Unix(created, 0)
		out = append(out, &turn)
	}
	return out, rows.Err()
}
