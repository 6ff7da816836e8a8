package styles

// Preset represents a complete color theme.
type Preset struct {
	Name        string
	Description string
	Colors      map[ColorToken]string
}

// Presets contains all built-in theme presets.
var Presets = map[string]Preset{
	"default":          DefaultPreset,
	"catppuccin-mocha": CatppuccinMochaPreset,
	"catppuccin-latte": CatppuccinLattePreset,
	"dracula":          DraculaPreset,
	"nord":             NordPreset,
	"high-contrast":    HighContrastPreset,
}

// DefaultPreset is the stock inkwell color scheme.
var DefaultPreset = Preset{
	Name:        "default",
	Description: "Default inkwell theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#CCCCCC",
		TokenTextDimmed:  "#5A5A5A",
		TokenTextMuted:   "#696969",

		TokenCursorNavigation: "#54A0FF",
		TokenCursorInsert:     "#73F59F",
		TokenSelectionBg:      "#1A5276",
		TokenSearchMatch:      "#FECA57",

		TokenStatusBarFg:      "#BBBBBB",
		TokenStatusBarBg:      "#2D3436",
		TokenModeNavigationBg: "#1A5276",
		TokenModeInsertBg:     "#2E7D4F",

		TokenStatusSuccess: "#73F59F",
		TokenStatusWarning: "#FECA57",
		TokenStatusError:   "#FF8787",

		TokenPrompt: "#FFFFFF",
	},
}

// CatppuccinMochaPreset is the dark Catppuccin flavour.
var CatppuccinMochaPreset = Preset{
	Name:        "catppuccin-mocha",
	Description: "Warm, cozy dark theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#CDD6F4", // text
		TokenTextDimmed:  "#585B70", // surface2
		TokenTextMuted:   "#6C7086", // overlay0

		TokenCursorNavigation: "#89B4FA", // blue
		TokenCursorInsert:     "#A6E3A1", // green
		TokenSelectionBg:      "#45475A", // surface1
		TokenSearchMatch:      "#F9E2AF", // yellow

		TokenStatusBarFg:      "#BAC2DE", // subtext1
		TokenStatusBarBg:      "#313244", // surface0
		TokenModeNavigationBg: "#89B4FA", // blue
		TokenModeInsertBg:     "#A6E3A1", // green

		TokenStatusSuccess: "#A6E3A1", // green
		TokenStatusWarning: "#F9E2AF", // yellow
		TokenStatusError:   "#F38BA8", // red

		TokenPrompt: "#CBA6F7", // mauve
	},
}

// CatppuccinLattePreset is the light Catppuccin flavour.
var CatppuccinLattePreset = Preset{
	Name:        "catppuccin-latte",
	Description: "Warm, cozy light theme",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#4C4F69", // text
		TokenTextDimmed:  "#ACB0BE", // surface2
		TokenTextMuted:   "#9CA0B0", // overlay0

		TokenCursorNavigation: "#1E66F5", // blue
		TokenCursorInsert:     "#40A02B", // green
		TokenSelectionBg:      "#BCC0CC", // surface1
		TokenSearchMatch:      "#DF8E1D", // yellow

		TokenStatusBarFg:      "#5C5F77", // subtext1
		TokenStatusBarBg:      "#CCD0DA", // surface0
		TokenModeNavigationBg: "#1E66F5", // blue
		TokenModeInsertBg:     "#40A02B", // green

		TokenStatusSuccess: "#40A02B", // green
		TokenStatusWarning: "#DF8E1D", // yellow
		TokenStatusError:   "#D20F39", // red

		TokenPrompt: "#8839EF", // mauve
	},
}

// DraculaPreset is the Dracula palette.
var DraculaPreset = Preset{
	Name:        "dracula",
	Description: "Dark theme with vibrant colors",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#F8F8F2", // foreground
		TokenTextDimmed:  "#4D5272",
		TokenTextMuted:   "#6272A4", // comment

		TokenCursorNavigation: "#BD93F9", // purple
		TokenCursorInsert:     "#50FA7B", // green
		TokenSelectionBg:      "#44475A", // current line
		TokenSearchMatch:      "#F1FA8C", // yellow

		TokenStatusBarFg:      "#F8F8F2", // foreground
		TokenStatusBarBg:      "#44475A", // current line
		TokenModeNavigationBg: "#BD93F9", // purple
		TokenModeInsertBg:     "#50FA7B", // green

		TokenStatusSuccess: "#50FA7B", // green
		TokenStatusWarning: "#F1FA8C", // yellow
		TokenStatusError:   "#FF5555", // red

		TokenPrompt: "#FF79C6", // pink
	},
}

// NordPreset is the Nord palette.
var NordPreset = Preset{
	Name:        "nord",
	Description: "Arctic, north-bluish palette",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#ECEFF4", // snow storm 3
		TokenTextDimmed:  "#434C5E", // polar night 3
		TokenTextMuted:   "#4C566A", // polar night 4

		TokenCursorNavigation: "#88C0D0", // frost 2
		TokenCursorInsert:     "#A3BE8C", // aurora green
		TokenSelectionBg:      "#434C5E", // polar night 3
		TokenSearchMatch:      "#EBCB8B", // aurora yellow

		TokenStatusBarFg:      "#E5E9F0", // snow storm 2
		TokenStatusBarBg:      "#3B4252", // polar night 2
		TokenModeNavigationBg: "#5E81AC", // frost 4
		TokenModeInsertBg:     "#A3BE8C", // aurora green

		TokenStatusSuccess: "#A3BE8C", // aurora green
		TokenStatusWarning: "#EBCB8B", // aurora yellow
		TokenStatusError:   "#BF616A", // aurora red

		TokenPrompt: "#B48EAD", // aurora purple
	},
}

// HighContrastPreset favours legibility over subtlety. Dimmed text stays readable.
var HighContrastPreset = Preset{
	Name:        "high-contrast",
	Description: "High contrast for accessibility",
	Colors: map[ColorToken]string{
		TokenTextPrimary: "#FFFFFF",
		TokenTextDimmed:  "#A0A0A0",
		TokenTextMuted:   "#FFFFFF",

		TokenCursorNavigation: "#00FFFF",
		TokenCursorInsert:     "#00FF00",
		TokenSelectionBg:      "#0000FF",
		TokenSearchMatch:      "#FFFF00",

		TokenStatusBarFg:      "#FFFFFF",
		TokenStatusBarBg:      "#000000",
		TokenModeNavigationBg: "#0000FF",
		TokenModeInsertBg:     "#008000",

		TokenStatusSuccess: "#00FF00",
		TokenStatusWarning: "#FFFF00",
		TokenStatusError:   "#FF0000",

		TokenPrompt: "#FFFF00",
	},
}
