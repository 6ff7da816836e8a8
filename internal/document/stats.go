package document

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/zjrosen/inkwell/internal/editor"
)

// TextExtensions are the file types Stat counts when walking a directory.
var TextExtensions = []string{".md", ".markdown", ".txt"}

// FileStats is the counts for one file.
type FileStats struct {
	Path  string
	Stats editor.Stats
}

// Report is the result of Stat.
type Report struct {
	Files []FileStats
	Total editor.Stats
}

// Stat counts words, characters and lines in each path. Directories are
// walked for text files, skipping hidden entries. Files named explicitly
// are counted whatever their extension.
func Stat(paths ...string) (Report, error) {
	var rep Report
	add := func(path string) error {
		text, err := Load(path)
		if err != nil {
			return err
		}
		st := editor.CountText(text)
		rep.Files = append(rep.Files, FileStats{Path: path, Stats: st})
		rep.Total.Words += st.Words
		rep.Total.Chars += st.Chars
		rep.Total.Lines += st.Lines
		return nil
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return Report{}, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			if err := add(root); err != nil {
				return Report{}, err
			}
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if path != root && strings.HasPrefix(d.Name(), ".") {
				if d.IsDir() {
					return filepath.SkipDir
				}
				return nil
			}
			if d.IsDir() || !isTextFile(path) {
				return nil
			}
			return add(path)
		})
		if err != nil {
			return Report{}, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return rep, nil
}

func isTextFile(path string) bool {
	return slices.Contains(TextExtensions, strings.ToLower(filepath.Ext(path)))
}
