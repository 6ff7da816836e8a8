// Package sqlite stores per-file editor state in a local SQLite database.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/zjrosen/inkwell/internal/log"
)

// migrations are applied in order; PRAGMA user_version records how many ran.
var migrations = []string{
	`CREATE TABLE positions (
		path       TEXT PRIMARY KEY,
		line       INTEGER NOT NULL DEFAULT 0,
		col        INTEGER NOT NULL DEFAULT 0,
		scroll_px  INTEGER NOT NULL DEFAULT 0,
		updated_at INTEGER NOT NULL
	)`,
	`CREATE INDEX idx_positions_updated_at ON positions(updated_at)`,
}

// DB wraps the database connection.
type DB struct {
	conn      *sql.DB
	positions *PositionRepository
}

// NewDB opens the database at path, creating its directory and applying
// migrations. Use ":memory:" for a throwaway database.
func NewDB(path string) (*DB, error) {
	dsn := path
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
			return nil, fmt.Errorf("creating database directory: %w", err)
		}
		dsn = "file:" + path + "?_pragma=busy_timeout(5000)&_pragma=journal_mode(wal)"
	}

	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	// One connection keeps an in-memory database alive and serializes writers.
	conn.SetMaxOpenConns(1)

	if err := migrate(conn); err != nil {
		_ = conn.Close()
		return nil, err
	}
	log.Debug(log.CatStore, "Database opened", "path", path)

	return &DB{conn: conn, positions: NewPositionRepository(conn)}, nil
}

// Positions returns the cursor position repository.
func (db *DB) Positions() *PositionRepository { return db.positions }

// Close releases the connection.
func (db *DB) Close() error {
	return db.conn.Close()
}

func migrate(conn *sql.DB) error {
	var version int
	if err := conn.QueryRow(`PRAGMA user_version`).Scan(&version); err != nil {
		return fmt.Errorf("reading schema version: %w", err)
	}
	if version > len(migrations) {
		return fmt.Errorf("database schema version %d is newer than supported %d", version, len(migrations))
	}
	for i := version; i < len(migrations); i++ {
		tx, err := conn.Begin()
		if err != nil {
			return fmt.Errorf("starting migration %d: %w", i+1, err)
		}
		if _, err := tx.Exec(migrations[i]); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("applying migration %d: %w", i+1, err)
		}
		// PRAGMA does not accept bound parameters.
		if _, err := tx.Exec(fmt.Sprintf(`PRAGMA user_version = %d`, i+1)); err != nil {
			_ = tx.Rollback()
			return fmt.Errorf("recording migration %d: %w", i+1, err)
		}
		if err := tx.Commit(); err != nil {
			return fmt.Errorf("committing migration %d: %w", i+1, err)
		}
		log.Debug(log.CatStore, "Applied migration", "version", i+1)
	}
	return nil
}
