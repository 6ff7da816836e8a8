package watcher_test

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/watcher"
)

func startWatcher(t *testing.T, path string) <-chan struct{} {
	t.Helper()
	w, err := watcher.New(watcher.Config{Path: path, Debounce: 50 * time.Millisecond})
	require.NoError(t, err)
	t.Cleanup(func() { _ = w.Stop() })

	onChange, err := w.Start()
	require.NoError(t, err)
	return onChange
}

func requireSignal(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("expected notification but got timeout")
	}
}

func requireQuiet(t *testing.T, ch <-chan struct{}, d time.Duration) {
	t.Helper()
	select {
	case <-ch:
		t.Fatal("unexpected notification")
	case <-time.After(d):
	}
}

func TestWatcher_DebounceMultipleWrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))
	onChange := startWatcher(t, path)

	for i := 0; i < 10; i++ {
		require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf("draft %d", i)), 0o644))
		time.Sleep(10 * time.Millisecond)
	}

	requireSignal(t, onChange)
	requireQuiet(t, onChange, 150*time.Millisecond)
}

func TestWatcher_AtomicReplace(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chapter.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))
	onChange := startWatcher(t, path)

	tmp := filepath.Join(dir, ".chapter.md.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("rewritten"), 0o644))
	require.NoError(t, os.Rename(tmp, path))

	requireSignal(t, onChange)
}

func TestWatcher_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "chapter.md")
	other := filepath.Join(dir, "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))
	require.NoError(t, os.WriteFile(other, []byte("initial"), 0o644))
	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(other, []byte("changed"), 0o644))

	requireQuiet(t, onChange, 150*time.Millisecond)
}

func TestWatcher_FileCreatedLater(t *testing.T) {
	path := filepath.Join(t.TempDir(), "new.md")
	onChange := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("hello"), 0o644))

	requireSignal(t, onChange)
}

func TestWatcher_StopIsIdempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chapter.md")
	require.NoError(t, os.WriteFile(path, []byte("draft"), 0o644))

	w, err := watcher.New(watcher.Config{Path: path})
	require.NoError(t, err)
	_, err = w.Start()
	require.NoError(t, err)

	done := make(chan struct{})
	go func() {
		_ = w.Stop()
		_ = w.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() timed out - possible deadlock")
	}
}

func TestWatcher_MissingDirectory(t *testing.T) {
	w, err := watcher.New(watcher.Config{Path: filepath.Join(t.TempDir(), "gone", "a.md")})
	require.NoError(t, err)
	defer func() { _ = w.Stop() }()

	_, err = w.Start()
	require.ErrorContains(t, err, "watching directory")
}
