// internal/store/sqlite.go
//
// SQLite-backed game store.
// Responsibilities:
//   - Opening the database file with safe defaults (WAL, busy timeout).
//   - Bootstrapping the single games table.
//   - Round-tripping versioned game snapshots as JSON blobs.
//
// One row per game, keyed by the opaque game key. The snapshot codec
// owns the schema of the blob; this layer never looks inside it.

package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog/log"

	"github.com/mixtape-audio/html-scrabble/internal/game"
)

// SQLite is a durable snapshot store in a single database file.
type SQLite struct {
	db *sql.DB
}

// OpenSQLite opens (and creates if missing) the database at dsn.
func OpenSQLite(dsn string) (*SQLite, error) {
	// Ensure directory exists for ./data/games.db, etc.
	dir := filepath.Dir(dsn)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("mkdir %s: %w", dir, err)
		}
	}

	db, err := sql.Open("sqlite3", dsn+"?_busy_timeout=5000&_journal_mode=WAL")
	if err != nil {
		return nil, err
	}
	if _, err := db.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		return nil, fmt.Errorf("set pragmas: %w", err)
	}
	if _, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS games (
            key        TEXT PRIMARY KEY,
            data       BLOB NOT NULL,
            updated_at TEXT NOT NULL
        );`); err != nil {
		return nil, fmt.Errorf("create games table: %w", err)
	}

	log.Info().Str("dsn", dsn).Msg("game store opened")
	return &SQLite{db: db}, nil
}

// Close closes the underlying database.
func (s *SQLite) Close() error { return s.db.Close() }

// Put upserts the snapshot blob for key.
func (s *SQLite) Put(ctx context.Context, key string, snap *game.Snapshot) error {
	data, err := game.EncodeSnapshot(snap)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx, `
        INSERT INTO games (key, data, updated_at) VALUES (?, ?, ?)
        ON CONFLICT(key) DO UPDATE SET data=excluded.data, updated_at=excluded.updated_at`,
		key, data, time.Now().UTC().Format(time.RFC3339))
	return err
}

// Get loads and decodes the snapshot for key; a missing row is
// game.ErrGameNotFound.
func (s *SQLite) Get(ctx context.Context, key string) (*game.Snapshot, error) {
	var data []byte
	err := s.db.QueryRowContext(ctx, `SELECT data FROM games WHERE key=?`, key).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, game.ErrGameNotFound
	}
	if err != nil {
		return nil, err
	}
	return game.DecodeSnapshot(data)
}
