// Package history records every products API call in a SQLite activity log.
package history

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/studiowebux/catalog/internal/config"
	"github.com/studiowebux/catalog/internal/migrations"
	"github.com/studiowebux/catalog/internal/types"
)

// DefaultLimit caps how many entries Recent returns when asked for <= 0
const DefaultLimit = 50

// Manager owns the activity log database
type Manager struct {
	db    *sql.DB
	cache *statsCache
}

func NewManager(dbPath string) (*Manager, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, config.DirPermissions); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to history database: %w", err)
	}

	if err := migrations.Run(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &Manager{db: db, cache: newStatsCache(StatsCacheTTL)}, nil
}

// Record stores one call; it satisfies api.Recorder
func (m *Manager) Record(ctx context.Context, call types.Call) error {
	ts := call.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}

	var callErr sql.NullString
	if call.Error != "" {
		callErr = sql.NullString{String: call.Error, Valid: true}
	}

	_, err := m.db.ExecContext(ctx, `
		INSERT INTO calls (timestamp, method, path, status, duration_ms, error)
		VALUES (?, ?, ?, ?, ?, ?)
	`,
		ts.UTC(),
		call.Method,
		call.Path,
		call.Status,
		call.DurationMs,
		callErr,
	)
	if err != nil {
		return fmt.Errorf("failed to save history entry: %w", err)
	}

	m.cache.invalidate()
	return nil
}

// Recent returns the newest entries first
func (m *Manager) Recent(ctx context.Context, limit int) ([]types.Call, error) {
	if limit <= 0 {
		limit = DefaultLimit
	}

	rows, err := m.db.QueryContext(ctx, `
		SELECT id, timestamp, method, path, status, duration_ms, COALESCE(error, '')
		FROM calls
		ORDER BY timestamp DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	defer rows.Close()

	var calls []types.Call
	for rows.Next() {
		var call types.Call
		if err := rows.Scan(&call.ID, &call.Timestamp, &call.Method, &call.Path, &call.Status, &call.DurationMs, &call.Error); err != nil {
			return nil, fmt.Errorf("failed to scan history entry: %w", err)
		}
		call.Timestamp = call.Timestamp.Local()
		calls = append(calls, call)
	}

	return calls, rows.Err()
}

// Clear deletes every entry
func (m *Manager) Clear(ctx context.Context) error {
	if _, err := m.db.ExecContext(ctx, "DELETE FROM calls"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	m.cache.invalidate()
	return nil
}

func (m *Manager) Close() error {
	if m.db != nil {
		return m.db.Close()
	}
	return nil
}
