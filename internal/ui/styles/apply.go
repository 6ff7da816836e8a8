package styles

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// styleRebuilders holds callbacks to rebuild styles in other packages.
var styleRebuilders []func()

// RegisterStyleRebuilder adds a callback that runs after ApplyTheme updates colors.
func RegisterStyleRebuilder(fn func()) {
	styleRebuilders = append(styleRebuilders, fn)
}

// ThemeConfig mirrors config.ThemeConfig to avoid circular imports.
type ThemeConfig struct {
	Preset string
	Mode   string
	Colors map[string]string
}

// ValidateTheme reports the first problem in cfg without applying it.
func ValidateTheme(cfg ThemeConfig) error {
	switch cfg.Mode {
	case "", "light", "dark":
	default:
		return fmt.Errorf("unknown theme mode: %s", cfg.Mode)
	}
	if cfg.Preset != "" && cfg.Preset != "default" {
		if _, ok := Presets[cfg.Preset]; !ok {
			return fmt.Errorf("unknown theme preset: %s", cfg.Preset)
		}
	}
	for key, value := range cfg.Colors {
		if !isValidToken(ColorToken(key)) {
			return fmt.Errorf("unknown color token: %s", key)
		}
		if !isValidHexColor(value) {
			return fmt.Errorf("invalid hex color for %s: %s", key, value)
		}
	}
	return nil
}

// ApplyTheme applies a complete theme configuration.
// Order of application:
// 1. Start with default colors
// 2. Apply preset (if specified)
// 3. Apply individual color overrides
// 4. Rebuild all Style objects
func ApplyTheme(cfg ThemeConfig) error {
	if err := ValidateTheme(cfg); err != nil {
		return err
	}
	switch cfg.Mode {
	case "light":
		lipgloss.SetHasDarkBackground(false)
	case "dark":
		lipgloss.SetHasDarkBackground(true)
	}

	colors := maps.Clone(DefaultPreset.Colors)
	if preset, ok := Presets[cfg.Preset]; ok {
		maps.Copy(colors, preset.Colors)
	}
	for key, value := range cfg.Colors {
		colors[ColorToken(key)] = value
	}

	applyColors(colors)
	rebuildStyles()
	return nil
}

// PresetNames returns the built-in preset names in sorted order.
func PresetNames() []string {
	return slices.Sorted(maps.Keys(Presets))
}

func applyColors(colors map[ColorToken]string) {
	targets := map[ColorToken]*lipgloss.AdaptiveColor{
		TokenTextPrimary:      &TextPrimaryColor,
		TokenTextDimmed:       &TextDimmedColor,
		TokenTextMuted:        &TextMutedColor,
		TokenCursorNavigation: &CursorNavigationColor,
		TokenCursorInsert:     &CursorInsertColor,
		TokenSelectionBg:      &SelectionBgColor,
		TokenSearchMatch:      &SearchMatchColor,
		TokenStatusBarFg:      &StatusBarFgColor,
		TokenStatusBarBg:      &StatusBarBgColor,
		TokenModeNavigationBg: &ModeNavigationBgColor,
		TokenModeInsertBg:     &ModeInsertBgColor,
		TokenStatusSuccess:    &StatusSuccessColor,
		TokenStatusWarning:    &StatusWarningColor,
		TokenStatusError:      &StatusErrorColor,
		TokenPrompt:           &PromptColor,
	}
	for token, hex := range colors {
		if dst, ok := targets[token]; ok {
			*dst = lipgloss.AdaptiveColor{Light: hex, Dark: hex}
		}
	}
}

func isValidToken(token ColorToken) bool {
	return slices.Contains(AllTokens(), token)
}

func isValidHexColor(s string) bool {
	if !strings.HasPrefix(s, "#") {
		return false
	}
	hex := s[1:]
	if len(hex) != 3 && len(hex) != 6 {
		return false
	}
	_, err := strconv.ParseUint(hex, 16, 64)
	return err == nil
}
