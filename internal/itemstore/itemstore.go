// Package itemstore opens the target application's embedded database and
// mirrors key/value writes into its generic ItemTable.
package itemstore

import (
	"database/sql"
	"fmt"
	"log/slog"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/mesh-intelligence/wardrobe/pkg/types"
)

// The engine is probed once per process. A failed probe is cached as a
// terminal "unavailable" state rather than retried per call; callers then
// proceed with JSON-only state.
var (
	engineOnce sync.Once
	engineErr  error
)

// Available reports whether the embedded engine can be initialized in this
// process. The probe opens and pings an in-memory database exactly once.
func Available() error {
	engineOnce.Do(func() {
		db, err := sql.Open("sqlite", ":memory:")
		if err != nil {
			engineErr = fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
			return
		}
		defer db.Close()
		if err := db.Ping(); err != nil {
			engineErr = fmt.Errorf("%w: %v", types.ErrStoreUnavailable, err)
		}
	})
	return engineErr
}

// Store wraps an open database handle over one state file.
type Store struct {
	db     *sql.DB
	path   string
	logger *slog.Logger
}

// Open opens the database file at path and ensures the ItemTable exists.
// Returns ErrStoreUnavailable when the engine cannot be initialized. Open
// does not check for file existence; callers that must not create a new
// state file stat the path first.
func Open(path string) (*Store, error) {
	if err := Available(); err != nil {
		return nil, err
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("%w: opening %s: %v", types.ErrStoreUnavailable, path, err)
	}

	// The target application creates this table itself; ensure it exists so
	// a freshly-provisioned state file behaves the same way.
	createSQL := fmt.Sprintf(
		"CREATE TABLE IF NOT EXISTS %s (key TEXT UNIQUE ON CONFLICT REPLACE, value BLOB)",
		types.ItemTableName,
	)
	if _, err := db.Exec(createSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: ensuring ItemTable in %s: %v", types.ErrStoreUnavailable, path, err)
	}

	return &Store{
		db:     db,
		path:   path,
		logger: slog.Default().With("component", "itemstore"),
	}, nil
}

// Upsert writes value under key: UPDATE first, INSERT when no row matched.
func (s *Store) Upsert(key, value string) error {
	res, err := s.db.Exec(
		fmt.Sprintf("UPDATE %s SET value = ? WHERE key = ?", types.ItemTableName),
		value, key,
	)
	if err != nil {
		return fmt.Errorf("updating %s: %w", key, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking affected rows for %s: %w", key, err)
	}
	if affected > 0 {
		return nil
	}

	if _, err := s.db.Exec(
		fmt.Sprintf("INSERT INTO %s (key, value) VALUES (?, ?)", types.ItemTableName),
		key, value,
	); err != nil {
		return fmt.Errorf("inserting %s: %w", key, err)
	}
	return nil
}

// Get returns the value stored under key, or ErrNotFound.
func (s *Store) Get(key string) (string, error) {
	var value string
	err := s.db.QueryRow(
		fmt.Sprintf("SELECT value FROM %s WHERE key = ?", types.ItemTableName),
		key,
	).Scan(&value)
	if err == sql.ErrNoRows {
		return "", types.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", key, err)
	}
	return value, nil
}

// Close releases the database handle. Changes are already persisted to the
// file by the engine at this point.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	if err != nil {
		return fmt.Errorf("closing %s: %w", s.path, err)
	}
	s.logger.Debug("item store closed", "path", s.path)
	return nil
}
