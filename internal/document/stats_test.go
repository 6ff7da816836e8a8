package document

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/editor"
)

func writeFile(t *testing.T, path, text string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
}

func TestStat_Directory(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "one.md"), "three little words")
	writeFile(t, filepath.Join(root, "part", "two.markdown"), "two words\nand more")
	writeFile(t, filepath.Join(root, "notes.txt"), "x")
	writeFile(t, filepath.Join(root, "image.png"), "not text at all")
	writeFile(t, filepath.Join(root, ".drafts", "hidden.md"), "skipped entirely")
	writeFile(t, filepath.Join(root, ".hidden.md"), "also skipped")

	rep, err := Stat(root)
	require.NoError(t, err)

	require.Len(t, rep.Files, 3)
	require.Equal(t, editor.Stats{Words: 8, Chars: 18 + 17 + 1, Lines: 4}, rep.Total)
}

func TestStat_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "README")
	writeFile(t, path, "one two")

	rep, err := Stat(path)
	require.NoError(t, err)
	require.Equal(t, []FileStats{{Path: path, Stats: editor.Stats{Words: 2, Chars: 7, Lines: 1}}}, rep.Files)
}

func TestStat_MultiplePaths(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	writeFile(t, a, "alpha")
	writeFile(t, b, "beta gamma")

	rep, err := Stat(a, b)
	require.NoError(t, err)
	require.Len(t, rep.Files, 2)
	require.Equal(t, 3, rep.Total.Words)
	require.Equal(t, 1, rep.Total.ReadingMinutes())
}

func TestStat_Missing(t *testing.T) {
	_, err := Stat(filepath.Join(t.TempDir(), "gone"))
	require.ErrorContains(t, err, "stat")
}
