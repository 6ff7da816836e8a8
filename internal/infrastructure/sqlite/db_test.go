package sqlite

import (
	"context"
	"os"
	"path/filepath"
	"runtime"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/editor"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNewDB_CreatesDirectory(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "subdir", "nested", "inkwell.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	defer db.Close()

	info, err := os.Stat(filepath.Dir(dbPath))
	require.NoError(t, err)
	require.True(t, info.IsDir())
	if runtime.GOOS != "windows" {
		require.Equal(t, os.FileMode(0o700), info.Mode().Perm())
	}

	_, err = os.Stat(dbPath)
	require.NoError(t, err, "database file exists after NewDB")
}

func TestNewDB_AppliesMigrations(t *testing.T) {
	db := newTestDB(t)

	var version int
	require.NoError(t, db.conn.QueryRow(`PRAGMA user_version`).Scan(&version))
	require.Equal(t, len(migrations), version)

	var name string
	err := db.conn.QueryRow(
		"SELECT name FROM sqlite_master WHERE type='table' AND name='positions'",
	).Scan(&name)
	require.NoError(t, err)
	require.Equal(t, "positions", name)
}

func TestNewDB_ReopenKeepsData(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "inkwell.db")
	ctx := context.Background()

	db1, err := NewDB(dbPath)
	require.NoError(t, err)
	require.NoError(t, db1.Positions().Save(ctx, Position{Path: "/a.md", Cursor: editor.Cursor{Line: 4, Col: 2}}))
	require.NoError(t, db1.Close())

	db2, err := NewDB(dbPath)
	require.NoError(t, err, "reopening does not re-run migrations")
	defer db2.Close()

	p, err := db2.Positions().Find(ctx, "/a.md")
	require.NoError(t, err)
	require.Equal(t, editor.Cursor{Line: 4, Col: 2}, p.Cursor)
}

func TestNewDB_NewerSchemaRejected(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "inkwell.db")

	db, err := NewDB(dbPath)
	require.NoError(t, err)
	_, err = db.conn.Exec(`PRAGMA user_version = 99`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	_, err = NewDB(dbPath)
	require.ErrorContains(t, err, "newer than supported")
}

func TestPositions_SaveAndFind(t *testing.T) {
	repo := newTestDB(t).Positions()
	ctx := context.Background()
	at := time.Unix(1_700_000_000, 0)

	require.NoError(t, repo.Save(ctx, Position{
		Path:      "/book/ch1.md",
		Cursor:    editor.Cursor{Line: 12, Col: 7},
		ScrollPx:  40,
		UpdatedAt: at,
	}))

	p, err := repo.Find(ctx, "/book/ch1.md")
	require.NoError(t, err)
	require.Equal(t, Position{
		Path:      "/book/ch1.md",
		Cursor:    editor.Cursor{Line: 12, Col: 7},
		ScrollPx:  40,
		UpdatedAt: at,
	}, p)
}

func TestPositions_SaveReplaces(t *testing.T) {
	repo := newTestDB(t).Positions()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, Position{Path: "/a.md", Cursor: editor.Cursor{Line: 1}}))
	require.NoError(t, repo.Save(ctx, Position{Path: "/a.md", Cursor: editor.Cursor{Line: 9, Col: 3}}))

	p, err := repo.Find(ctx, "/a.md")
	require.NoError(t, err)
	require.Equal(t, editor.Cursor{Line: 9, Col: 3}, p.Cursor)

	n, err := repo.Count(ctx)
	require.NoError(t, err)
	require.Equal(t, 1, n)
}

func TestPositions_NegativeValuesClamped(t *testing.T) {
	repo := newTestDB(t).Positions()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, Position{Path: "/a.md", Cursor: editor.Cursor{Line: -3, Col: -1}, ScrollPx: -5}))

	p, err := repo.Find(ctx, "/a.md")
	require.NoError(t, err)
	require.Equal(t, editor.Cursor{}, p.Cursor)
	require.Zero(t, p.ScrollPx)
}

func TestPositions_NotFound(t *testing.T) {
	repo := newTestDB(t).Positions()

	_, err := repo.Find(context.Background(), "/missing.md")
	require.ErrorIs(t, err, ErrPositionNotFound)
}

func TestPositions_Delete(t *testing.T) {
	repo := newTestDB(t).Positions()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, Position{Path: "/a.md"}))
	require.NoError(t, repo.Delete(ctx, "/a.md"))
	require.NoError(t, repo.Delete(ctx, "/a.md"), "deleting twice is fine")

	_, err := repo.Find(ctx, "/a.md")
	require.ErrorIs(t, err, ErrPositionNotFound)
}

func TestPositions_Prune(t *testing.T) {
	repo := newTestDB(t).Positions()
	ctx := context.Background()
	now := time.Unix(1_700_000_000, 0)

	require.NoError(t, repo.Save(ctx, Position{Path: "/old.md", UpdatedAt: now.Add(-48 * time.Hour)}))
	require.NoError(t, repo.Save(ctx, Position{Path: "/new.md", UpdatedAt: now}))

	n, err := repo.Prune(ctx, now.Add(-24*time.Hour))
	require.NoError(t, err)
	require.Equal(t, 1, n)

	_, err = repo.Find(ctx, "/old.md")
	require.ErrorIs(t, err, ErrPositionNotFound)
	_, err = repo.Find(ctx, "/new.md")
	require.NoError(t, err)
}

func TestPositions_CancelledContext(t *testing.T) {
	repo := newTestDB(t).Positions()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := repo.Save(ctx, Position{Path: "/a.md"})
	require.Error(t, err)
}
