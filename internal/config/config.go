// Package config provides configuration types, defaults, and persistence for inkwell.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// Config holds all inkwell configuration.
type Config struct {
	Editor  EditorConfig    `mapstructure:"editor"`
	Theme   ThemeConfig     `mapstructure:"theme"`
	Store   StoreConfig     `mapstructure:"store"`
	Tracing TracingConfig   `mapstructure:"tracing"`
	Flags   map[string]bool `mapstructure:"flags"`
}

// EditorConfig holds the options an editing session is opened with.
type EditorConfig struct {
	TabWidth             int  `mapstructure:"tab_width"`
	AutoSaveIntervalMs   int  `mapstructure:"auto_save_interval_ms"`
	TypewriterEnabled    bool `mapstructure:"typewriter_enabled"`
	TypewriterFocusLines int  `mapstructure:"typewriter_focus_lines"`
	FocusDimming         bool `mapstructure:"focus_dimming"`
	WordWrap             bool `mapstructure:"word_wrap"`
	UndoLevels           int  `mapstructure:"undo_levels"`
	RecenterDelayMs      int  `mapstructure:"recenter_delay_ms"`
}

// ThemeConfig holds theme customization.
type ThemeConfig struct {
	// Preset is the name of a built-in theme (e.g., "dracula", "nord").
	Preset string `mapstructure:"preset"`
	// Mode forces "light" or "dark" colours. Empty follows the terminal.
	Mode string `mapstructure:"mode"`
	// Colors overrides individual tokens. Nested YAML maps are flattened
	// so "text: {primary: ...}" and "text.primary: ..." are equivalent.
	Colors map[string]any `mapstructure:"colors"`
}

// StoreConfig holds the location of the positions database.
type StoreConfig struct {
	// Path is the SQLite file. Empty uses DefaultStorePath.
	Path string `mapstructure:"path"`
}

// TracingConfig configures OpenTelemetry tracing.
type TracingConfig struct {
	Enabled bool `mapstructure:"enabled"`
	// Exporter is one of "none", "file", "stdout" or "otlp".
	Exporter     string  `mapstructure:"exporter"`
	FilePath     string  `mapstructure:"file_path"`
	OTLPEndpoint string  `mapstructure:"otlp_endpoint"`
	SampleRate   float64 `mapstructure:"sample_rate"`
}

// FlattenedColors returns Colors with nested maps joined into dotted keys.
func (t ThemeConfig) FlattenedColors() map[string]string {
	out := make(map[string]string)
	flattenColors("", t.Colors, out)
	return out
}

func flattenColors(prefix string, in map[string]any, out map[string]string) {
	for k, v := range in {
		key := k
		if prefix != "" {
			key = prefix + "." + k
		}
		switch val := v.(type) {
		case string:
			out[key] = val
		case map[string]any:
			flattenColors(key, val, out)
		case map[any]any:
			nested := make(map[string]any, len(val))
			for nk, nv := range val {
				nested[fmt.Sprint(nk)] = nv
			}
			flattenColors(key, nested, out)
		}
	}
}

// Styles converts the theme section to the styles package form.
func (t ThemeConfig) Styles() styles.ThemeConfig {
	return styles.ThemeConfig{Preset: t.Preset, Mode: t.Mode, Colors: t.FlattenedColors()}
}

// ToEditor converts the editor section to session options.
func (e EditorConfig) ToEditor() editor.Config {
	cfg := editor.DefaultConfig()
	cfg.TabWidth = e.TabWidth
	cfg.AutoSaveInterval = time.Duration(e.AutoSaveIntervalMs) * time.Millisecond
	cfg.TypewriterEnabled = e.TypewriterEnabled
	cfg.TypewriterFocusLines = e.TypewriterFocusLines
	cfg.FocusDimming = e.FocusDimming
	cfg.WordWrap = e.WordWrap
	cfg.RecenterDelay = time.Duration(e.RecenterDelayMs) * time.Millisecond
	cfg.Undo.Capacity = e.UndoLevels
	return cfg
}

// Defaults returns the default configuration.
func Defaults() Config {
	return Config{
		Editor: DefaultEditor(),
		Store:  StoreConfig{Path: DefaultStorePath()},
		Tracing: TracingConfig{
			Exporter:   "file",
			FilePath:   DefaultTracesFilePath(),
			SampleRate: 1.0,
		},
	}
}

// DefaultEditor returns the default editor section.
func DefaultEditor() EditorConfig {
	return EditorConfig{
		TabWidth:             editor.DefaultTabWidth,
		AutoSaveIntervalMs:   int(editor.DefaultAutoSaveInterval / time.Millisecond),
		TypewriterFocusLines: editor.DefaultFocusRadius,
		WordWrap:             true,
		UndoLevels:           editor.DefaultUndoCapacity,
		RecenterDelayMs:      int(editor.DefaultRecenterDelay / time.Millisecond),
	}
}

// ConfigDir returns ~/.config/inkwell or an empty string if the home
// directory is unavailable.
func ConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", "inkwell")
}

// DefaultStorePath returns ~/.config/inkwell/inkwell.db.
func DefaultStorePath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "inkwell.db")
}

// DefaultTracesFilePath returns ~/.config/inkwell/traces/traces.jsonl.
func DefaultTracesFilePath() string {
	dir := ConfigDir()
	if dir == "" {
		return ""
	}
	return filepath.Join(dir, "traces", "traces.jsonl")
}

// Validate checks every section of cfg.
func Validate(cfg Config) error {
	if err := ValidateEditor(cfg.Editor); err != nil {
		return err
	}
	if err := ValidateTheme(cfg.Theme); err != nil {
		return err
	}
	return ValidateTracing(cfg.Tracing)
}

// ValidateEditor checks the editor section for out-of-range values.
func ValidateEditor(e EditorConfig) error {
	if e.TabWidth < 1 || e.TabWidth > 16 {
		return fmt.Errorf("editor.tab_width must be between 1 and 16, got %d", e.TabWidth)
	}
	if e.AutoSaveIntervalMs < 0 {
		return fmt.Errorf("editor.auto_save_interval_ms must not be negative, got %d", e.AutoSaveIntervalMs)
	}
	if e.TypewriterFocusLines < 0 {
		return fmt.Errorf("editor.typewriter_focus_lines must not be negative, got %d", e.TypewriterFocusLines)
	}
	if e.UndoLevels < 1 {
		return fmt.Errorf("editor.undo_levels must be at least 1, got %d", e.UndoLevels)
	}
	if e.RecenterDelayMs < 0 {
		return fmt.Errorf("editor.recenter_delay_ms must not be negative, got %d", e.RecenterDelayMs)
	}
	return nil
}

// ValidateTheme checks the preset, mode and colour overrides.
func ValidateTheme(t ThemeConfig) error {
	if err := styles.ValidateTheme(t.Styles()); err != nil {
		return fmt.Errorf("theme: %w", err)
	}
	return nil
}

// ValidateTracing checks the tracing section.
func ValidateTracing(tracing TracingConfig) error {
	if tracing.SampleRate < 0.0 || tracing.SampleRate > 1.0 {
		return fmt.Errorf("tracing.sample_rate must be between 0.0 and 1.0, got %v", tracing.SampleRate)
	}

	switch tracing.Exporter {
	case "", "none", "file", "stdout", "otlp":
	default:
		return fmt.Errorf("tracing.exporter must be \"none\", \"file\", \"stdout\", or \"otlp\", got %q", tracing.Exporter)
	}

	// Path requirements only matter when tracing is on.
	if tracing.Enabled {
		if tracing.Exporter == "file" && tracing.FilePath == "" {
			return fmt.Errorf("tracing.file_path is required when exporter is \"file\"")
		}
		if tracing.Exporter == "otlp" && tracing.OTLPEndpoint == "" {
			return fmt.Errorf("tracing.otlp_endpoint is required when exporter is \"otlp\"")
		}
	}
	return nil
}

// DefaultConfigTemplate returns a commented config written on first run.
func DefaultConfigTemplate() string {
	return `# Inkwell Configuration
# Location: .inkwell/config.yaml or ~/.config/inkwell/config.yaml

editor:
  # Spaces inserted for the tab key, and the width tabs render at
  tab_width: 2

  # Quiet period after an edit before the file is saved (0 disables)
  auto_save_interval_ms: 30000

  # Keep the cursor line vertically centred
  typewriter_enabled: false

  # Lines above and below the cursor kept at full brightness
  typewriter_focus_lines: 1

  # Dim lines outside the focus window
  focus_dimming: false

  word_wrap: true

  # Undo steps kept per session
  undo_levels: 100

  # Delay before re-centring after cursor motion
  recenter_delay_ms: 80

# Theme
# Presets: default, catppuccin-mocha, catppuccin-latte, dracula, nord, high-contrast
# theme:
#   preset: dracula
#   mode: dark
#   colors:
#     text.dimmed: "#555555"
#     cursor.insert: "#FF79C6"

# Cursor positions are remembered per file in this database
# store:
#   path: ~/.config/inkwell/inkwell.db

# tracing:
#   enabled: false
#   exporter: file        # none, file, stdout, otlp
#   file_path: ~/.config/inkwell/traces/traces.jsonl
#   otlp_endpoint: localhost:4317
#   sample_rate: 1.0

# flags:
#   cursor-resume: true
#   external-reload: true
`
}

// WriteDefaultConfig creates a config file with the default template.
// It creates the parent directory if needed.
func WriteDefaultConfig(configPath string) error {
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(configPath, []byte(DefaultConfigTemplate()), 0o600); err != nil {
		return fmt.Errorf("writing config file: %w", err)
	}
	return nil
}
