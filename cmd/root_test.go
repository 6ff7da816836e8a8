package cmd

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/ui/markdown"
)

func TestLoadConfig_WritesDefaultToUserDir(t *testing.T) {
	t.Chdir(t.TempDir())
	userDir := filepath.Join(t.TempDir(), "inkwell")

	c, path, err := loadConfig("", userDir)

	require.NoError(t, err)
	require.Equal(t, filepath.Join(userDir, "config.yaml"), path)
	require.FileExists(t, path)
	require.Equal(t, config.DefaultEditor(), c.Editor)
}

func TestLoadConfig_PrefersLocalFile(t *testing.T) {
	t.Chdir(t.TempDir())
	require.NoError(t, os.MkdirAll(".inkwell", 0o750))
	require.NoError(t, os.WriteFile(localConfigPath, []byte("editor:\n  tab_width: 8\n  focus_dimming: true\n"), 0o600))

	c, path, err := loadConfig("", t.TempDir())

	require.NoError(t, err)
	require.Equal(t, localConfigPath, path)
	require.Equal(t, 8, c.Editor.TabWidth)
	require.True(t, c.Editor.FocusDimming)
	// Unset keys keep their defaults.
	require.Equal(t, config.DefaultEditor().UndoLevels, c.Editor.UndoLevels)
}

func TestLoadConfig_ExplicitFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(path, []byte("flags:\n  cursor-resume: false\n"), 0o600))

	c, got, err := loadConfig(path, "")

	require.NoError(t, err)
	require.Equal(t, path, got)
	require.False(t, c.Flags["cursor-resume"])
}

func TestLoadConfig_ExplicitMissing(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yaml")

	_, _, err := loadConfig(path, "")

	require.Error(t, err)
	require.NoFileExists(t, path)
}

func TestLoadConfig_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("editor: [unclosed\n"), 0o600))

	_, _, err := loadConfig(path, "")

	require.ErrorContains(t, err, "reading config")
}

func TestCheckConfig(t *testing.T) {
	t.Cleanup(func() { cfg, cfgErr = config.Config{}, nil })

	cfg, cfgErr = config.Defaults(), nil
	require.NoError(t, checkConfig(nil, nil))

	cfg.Editor.TabWidth = -1
	require.ErrorContains(t, checkConfig(nil, nil), "invalid configuration")
}

func TestMarkdownStyle(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	require.Equal(t, markdown.StyleDark, markdownStyle("dark", light))
	require.Equal(t, markdown.StyleLight, markdownStyle("light", dark))
	require.Equal(t, markdown.StyleDark, markdownStyle("", dark))
	require.Equal(t, markdown.StyleLight, markdownStyle("", light))
}

func TestRunEdit_NeedsTerminal(t *testing.T) {
	// Test binaries run with stdin and stdout attached to pipes.
	err := runEdit(nil, []string{filepath.Join(t.TempDir(), "draft.md")})

	require.ErrorIs(t, err, errNotTerminal)
}

func TestStatsCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { statsJSON = false })
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "one.md"), []byte("three little words"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "two.txt"), []byte("two words"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skip.go"), []byte("package skip"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"stats", "--json", dir})
	require.NoError(t, rootCmd.Execute())

	var rep struct {
		Files []struct{ Path string }
		Total struct{ Words int }
	}
	require.NoError(t, json.Unmarshal(out.Bytes(), &rep))
	require.Len(t, rep.Files, 2)
	require.Equal(t, 5, rep.Total.Words)
}

func TestPreviewCommand(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Cleanup(func() { previewWidth = 0 })
	path := filepath.Join(t.TempDir(), "doc.md")
	require.NoError(t, os.WriteFile(path, []byte("# Heading\n\nBody text.\n"), 0o644))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"preview", "--width", "40", path})
	require.NoError(t, rootCmd.Execute())

	require.Contains(t, out.String(), "Heading")
	require.Contains(t, out.String(), "Body text.")
}
