package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSaveEditor_CreatesNewFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")

	e := DefaultEditor()
	e.TypewriterEnabled = true
	require.NoError(t, SaveEditor(configPath, e))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	assert.Contains(t, content, "editor:")
	assert.Contains(t, content, "typewriter_enabled: true")
	assert.Contains(t, content, "tab_width: 2")

	cfg := loadConfigFromYAML(t, content)
	require.Equal(t, e, cfg.Editor)
}

func TestSaveEditor_PreservesCommentsAndSections(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := `# my settings
editor:
  # centre the cursor line
  typewriter_enabled: false
  tab_width: 4
theme:
  preset: nord
flags:
  cursor-resume: false
`
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	e := DefaultEditor()
	e.TabWidth = 4
	e.TypewriterEnabled = true
	e.FocusDimming = true
	require.NoError(t, SaveEditor(configPath, e))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "# my settings")
	assert.Contains(t, content, "# centre the cursor line")
	assert.Contains(t, content, "preset: nord")
	assert.Contains(t, content, "cursor-resume: false")
	assert.Contains(t, content, "typewriter_enabled: true")
	assert.Contains(t, content, "focus_dimming: true")

	cfg := loadConfigFromYAML(t, content)
	require.Equal(t, e, cfg.Editor)
	require.Equal(t, "nord", cfg.Theme.Preset)
}

func TestSaveEditor_KeepsKeyOrder(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	initial := "editor:\n  focus_dimming: false\n  tab_width: 2\n"
	require.NoError(t, os.WriteFile(configPath, []byte(initial), 0o600))

	require.NoError(t, SaveEditor(configPath, DefaultEditor()))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	content := string(data)
	require.Less(t,
		strings.Index(content, "focus_dimming"),
		strings.Index(content, "tab_width"),
		"existing keys stay where they were")
}

func TestSaveEditor_NullSection(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("editor:\n"), 0o600))

	require.NoError(t, SaveEditor(configPath, DefaultEditor()))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	cfg := loadConfigFromYAML(t, string(data))
	require.Equal(t, DefaultEditor(), cfg.Editor)
}

func TestSaveEditor_CommentOnlyFile(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("# nothing yet\n"), 0o600))

	require.NoError(t, SaveEditor(configPath, DefaultEditor()))

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	cfg := loadConfigFromYAML(t, string(data))
	require.Equal(t, DefaultEditor(), cfg.Editor)
}

func TestSaveEditor_InvalidYAML(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("editor: [unclosed\n"), 0o600))

	err := SaveEditor(configPath, DefaultEditor())
	require.ErrorContains(t, err, "parsing config")

	data, err := os.ReadFile(configPath)
	require.NoError(t, err)
	require.Equal(t, "editor: [unclosed\n", string(data), "file is untouched on error")
}

func TestSaveEditor_TopLevelList(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(configPath, []byte("- a\n- b\n"), 0o600))

	err := SaveEditor(configPath, DefaultEditor())
	require.ErrorContains(t, err, "not a mapping")
}

func TestSaveEditor_NoTempFilesLeft(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "config.yaml")

	require.NoError(t, SaveEditor(configPath, DefaultEditor()))
	require.NoError(t, SaveEditor(configPath, DefaultEditor()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	require.Equal(t, "config.yaml", entries[0].Name())
}
