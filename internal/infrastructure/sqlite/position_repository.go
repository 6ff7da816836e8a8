package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// ErrPositionNotFound is returned when no position is stored for a path.
var ErrPositionNotFound = errors.New("position not found")

// PositionRepository reads and writes remembered cursor positions.
type PositionRepository struct {
	db *sql.DB
}

// NewPositionRepository creates a repository over an open connection.
func NewPositionRepository(db *sql.DB) *PositionRepository {
	return &PositionRepository{db: db}
}

// Save inserts or replaces the position for p.Path.
func (r *PositionRepository) Save(ctx context.Context, p Position) error {
	m := toPositionModel(p)
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO positions (path, line, col, scroll_px, updated_at)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			line = excluded.line,
			col = excluded.col,
			scroll_px = excluded.scroll_px,
			updated_at = excluded.updated_at`,
		m.Path, m.Line, m.Col, m.ScrollPx, m.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save position: %w", err)
	}
	return nil
}

// Find returns the position stored for path, or ErrPositionNotFound.
func (r *PositionRepository) Find(ctx context.Context, path string) (Position, error) {
	var m PositionModel
	err := r.db.QueryRowContext(ctx,
		`SELECT path, line, col, scroll_px, updated_at FROM positions WHERE path = ?`,
		path,
	).Scan(&m.Path, &m.Line, &m.Col, &m.ScrollPx, &m.UpdatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return Position{}, ErrPositionNotFound
	}
	if err != nil {
		return Position{}, fmt.Errorf("failed to find position: %w", err)
	}
	return m.toDomain(), nil
}

// Delete removes the position for path. Deleting a missing path is not an error.
func (r *PositionRepository) Delete(ctx context.Context, path string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to delete position: %w", err)
	}
	return nil
}

// Prune removes positions not updated since before and returns how many went.
func (r *PositionRepository) Prune(ctx context.Context, before time.Time) (int, error) {
	result, err := r.db.ExecContext(ctx, `DELETE FROM positions WHERE updated_at < ?`, before.Unix())
	if err != nil {
		return 0, fmt.Errorf("failed to prune positions: %w", err)
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}
	return int(n), nil
}

// Count returns the number of stored positions.
func (r *PositionRepository) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM positions`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return n, nil
}
