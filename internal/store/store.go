// Package store handles SQLite persistence.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/verte-zerg/lookbusy/internal/model"

	_ "modernc.org/sqlite" // SQLite driver.
)

// StateKey is the namespace key the app state is stored under.
const StateKey = "lookbusy-storage"

// Store wraps SQLite access for app state and work history.
type Store struct {
	db *sql.DB
}

// Open opens or creates the SQLite database and applies migrations.
func Open(path string) (*Store, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data dir: %w", err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		if cerr := db.Close(); cerr != nil {
			// Best-effort close on migration failure.
			_ = cerr
		}
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return store, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS work_sessions (
			id INTEGER PRIMARY KEY,
			started_at TEXT NOT NULL,
			ended_at TEXT NOT NULL,
			job TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			chars_revealed INTEGER NOT NULL,
			mutations INTEGER NOT NULL,
			files_opened INTEGER NOT NULL,
			panics INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS session_file_stats (
			session_id INTEGER NOT NULL,
			file TEXT NOT NULL,
			ticks INTEGER NOT NULL,
			chars INTEGER NOT NULL,
			PRIMARY KEY (session_id, file)
		);`,
		`CREATE INDEX IF NOT EXISTS idx_work_sessions_ended_at ON work_sessions(ended_at);`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// LoadState returns the stored app state, or the default state when nothing
// has been saved yet. A well-formed value with an unknown job or status also
// loads as the default state; malformed JSON is an error.
func (s *Store) LoadState(ctx context.Context) (model.AppState, error) {
	var raw string
	err := s.db.QueryRowContext(ctx, `SELECT value FROM kv WHERE key = ?`, StateKey).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return model.DefaultAppState(), nil
	}
	if err != nil {
		return model.AppState{}, fmt.Errorf("failed to load state: %w", err)
	}
	state := model.DefaultAppState()
	if err := json.Unmarshal([]byte(raw), &state); err != nil {
		var syntaxErr *json.SyntaxError
		if errors.As(err, &syntaxErr) {
			return model.AppState{}, fmt.Errorf("failed to decode state: %w", err)
		}
		return model.DefaultAppState(), nil
	}
	if state.Status == "" {
		state.Status = model.StatusIdle
	}
	if !state.Status.Valid() {
		return model.DefaultAppState(), nil
	}
	return state, nil
}

// SaveState replaces the stored app state.
func (s *Store) SaveState(ctx context.Context, state model.AppState) error {
	raw, err := json.Marshal(state)
	if err != nil {
		return fmt.Errorf("failed to encode state: %w", err)
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		StateKey, string(raw), time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("failed to save state: %w", err)
	}
	return nil
}

// InsertWorkSession stores a finished work session and its per-file activity.
func (s *Store) InsertWorkSession(ctx context.Context, ws model.WorkSession, files []model.FileActivity) (id int64, err error) {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			if rerr := tx.Rollback(); rerr != nil {
				// Best-effort rollback.
				_ = rerr
			}
		}
	}()

	res, err := tx.ExecContext(ctx,
		`INSERT INTO work_sessions (started_at, ended_at, job, ticks, chars_revealed, mutations, files_opened, panics, duration_ms)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		ws.StartedAt.Format(time.RFC3339Nano),
		ws.EndedAt.Format(time.RFC3339Nano),
		string(ws.Job),
		ws.Ticks,
		ws.CharsRevealed,
		ws.Mutations,
		ws.FilesOpened,
		ws.Panics,
		ws.DurationMs,
	)
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}

	if len(files) > 0 {
		stmt, perr := tx.PrepareContext(ctx,
			`INSERT INTO session_file_stats (session_id, file, ticks, chars) VALUES (?, ?, ?, ?)
			 ON CONFLICT(session_id, file) DO UPDATE SET ticks = ticks + excluded.ticks, chars = chars + excluded.chars`)
		if perr != nil {
			err = perr
			return 0, err
		}
		defer func() {
			if cerr := stmt.Close(); cerr != nil {
				// Best-effort statement close.
				_ = cerr
			}
		}()
		for _, fa := range files {
			if _, err = stmt.ExecContext(ctx, id, fa.File, fa.Ticks, fa.Chars); err != nil {
				return 0, err
			}
		}
	}

	if err = tx.Commit(); err != nil {
		return 0, err
	}
	return id, nil
}

// ListWorkSessions returns sessions matching filter, oldest first. Last keeps
// only the most recent sessions.
func (s *Store) ListWorkSessions(ctx context.Context, filter model.StatsFilter) ([]model.WorkSession, error) {
	clauses := []string{"1=1"}
	args := []any{}
	if filter.Job != model.JobNone {
		clauses = append(clauses, "job = ?")
		args = append(args, string(filter.Job))
	}
	if filter.Since != nil {
		clauses = append(clauses, "ended_at >= ?")
		args = append(args, filter.Since.Format(time.RFC3339Nano))
	}
	query := fmt.Sprintf(`SELECT id, started_at, ended_at, job, ticks, chars_revealed, mutations, files_opened, panics, duration_ms
		FROM work_sessions
		WHERE %s
		ORDER BY ended_at ASC, id ASC`, strings.Join(clauses, " AND "))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var sessions []model.WorkSession
	for rows.Next() {
		var ws model.WorkSession
		var startedAt, endedAt, job string
		if err := rows.Scan(&ws.ID, &startedAt, &endedAt, &job, &ws.Ticks, &ws.CharsRevealed,
			&ws.Mutations, &ws.FilesOpened, &ws.Panics, &ws.DurationMs); err != nil {
			return nil, err
		}
		if ws.StartedAt, err = time.Parse(time.RFC3339Nano, startedAt); err != nil {
			return nil, err
		}
		if ws.EndedAt, err = time.Parse(time.RFC3339Nano, endedAt); err != nil {
			return nil, err
		}
		ws.Job = model.Job(job)
		sessions = append(sessions, ws)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if filter.Last > 0 && len(sessions) > filter.Last {
		sessions = sessions[len(sessions)-filter.Last:]
	}
	return sessions, nil
}

// ListFileActivity aggregates per-file activity across sessions.
func (s *Store) ListFileActivity(ctx context.Context, sessionIDs []int64) ([]model.FileActivity, error) {
	if len(sessionIDs) == 0 {
		return nil, nil
	}
	placeholders := make([]string, len(sessionIDs))
	args := make([]any, len(sessionIDs))
	for i, id := range sessionIDs {
		placeholders[i] = "?"
		args[i] = id
	}
	query := fmt.Sprintf(`SELECT file, SUM(ticks) AS ticks, SUM(chars) AS chars
		FROM session_file_stats
		WHERE session_id IN (%s)
		GROUP BY file
		ORDER BY file`, strings.Join(placeholders, ","))
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer func() {
		if cerr := rows.Close(); cerr != nil {
			// Best-effort rows close.
			_ = cerr
		}
	}()

	var result []model.FileActivity
	for rows.Next() {
		var fa model.FileActivity
		if err := rows.Scan(&fa.File, &fa.Ticks, &fa.Chars); err != nil {
			return nil, err
		}
		result = append(result, fa)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return result, nil
}
