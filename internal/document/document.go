// Package document loads and stores the text files inkwell edits.
package document

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/zjrosen/inkwell/internal/log"
)

// DefaultFileMode is used when writing a file that does not exist yet.
const DefaultFileMode fs.FileMode = 0o644

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Load reads the file at path. A leading UTF-8 byte order mark is dropped.
// A missing file is reported with an error wrapping fs.ErrNotExist.
func Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("loading %s: %w", path, err)
	}
	return string(bytes.TrimPrefix(data, utf8BOM)), nil
}

// LoadOrEmpty reads path, treating a missing file as an empty new document.
func LoadOrEmpty(path string) (text string, exists bool, err error) {
	text, err = Load(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return text, true, nil
}

// FilePersister writes session text to a file. It satisfies editor.Persister.
type FilePersister struct {
	Path string
}

// NewFilePersister returns a persister for path.
func NewFilePersister(path string) *FilePersister {
	return &FilePersister{Path: path}
}

// Persist atomically replaces the file contents with text. An existing
// file keeps its permissions.
func (p *FilePersister) Persist(ctx context.Context, text string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	mode := DefaultFileMode
	if info, err := os.Stat(p.Path); err == nil {
		mode = info.Mode().Perm()
	}
	if err := WriteAtomic(p.Path, []byte(text), mode); err != nil {
		return err
	}
	log.Debug(log.CatStore, "Document written", "path", p.Path, "bytes", len(text))
	return nil
}

// WriteAtomic writes data to a temp file next to path and renames it into
// place, so readers never observe a partial file.
func WriteAtomic(path string, data []byte, mode fs.FileMode) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp.*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return fmt.Errorf("syncing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Chmod(tmpPath, mode); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("renaming temp file: %w", err)
	}
	return nil
}
