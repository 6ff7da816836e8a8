package editor

import "time"

const (
	DefaultTabWidth         = 2
	DefaultAutoSaveInterval = 30 * time.Second
	DefaultRecenterDelay    = 80 * time.Millisecond
	defaultPageLines        = 20
)

// Config holds per-session options.
type Config struct {
	TabWidth int
	// AutoSaveInterval is the quiet period after an edit before auto-save
	// fires. Zero disables auto-save.
	AutoSaveInterval time.Duration
	// TypewriterEnabled turns on centering.
	TypewriterEnabled bool
	// TypewriterFocusLines is the focus radius. Negative means the default.
	TypewriterFocusLines int
	// FocusDimming turns on dimming outside the focus window.
	FocusDimming bool
	WordWrap     bool
	// RecenterDelay debounces centering after cursor motion. Zero recenters
	// on every frame.
	RecenterDelay time.Duration
	Undo          UndoConfig
}

// DefaultConfig returns the stock session options.
func DefaultConfig() Config {
	return Config{
		TabWidth:             DefaultTabWidth,
		AutoSaveInterval:     DefaultAutoSaveInterval,
		TypewriterFocusLines: DefaultFocusRadius,
		WordWrap:             true,
		RecenterDelay:        DefaultRecenterDelay,
		Undo:                 DefaultUndoConfig(),
	}
}

func (c Config) normalized() Config {
	if c.TabWidth <= 0 {
		c.TabWidth = DefaultTabWidth
	}
	if c.TypewriterFocusLines < 0 {
		c.TypewriterFocusLines = DefaultFocusRadius
	}
	if c.AutoSaveInterval < 0 {
		c.AutoSaveInterval = 0
	}
	if c.RecenterDelay < 0 {
		c.RecenterDelay = 0
	}
	return c
}

// Typewriter returns the display transforms selected by c.
func (c Config) Typewriter() TypewriterConfig {
	return TypewriterConfig{
		Centering:   c.TypewriterEnabled,
		Dimming:     c.FocusDimming,
		FocusRadius: c.TypewriterFocusLines,
	}
}
