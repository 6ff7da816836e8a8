package styles

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func resetTheme(t *testing.T) {
	t.Helper()
	t.Cleanup(func() { _ = ApplyTheme(ThemeConfig{}) })
}

func TestApplyTheme_Default(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, DefaultPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
	require.Equal(t, DefaultPreset.Colors[TokenTextDimmed], TextDimmedColor.Dark)
}

func TestApplyTheme_Preset(t *testing.T) {
	resetTheme(t)
	require.NoError(t, ApplyTheme(ThemeConfig{Preset: "catppuccin-mocha"}))
	require.Equal(t, "#CDD6F4", TextPrimaryColor.Dark)
	require.Equal(t, "#585B70", TextDimmedColor.Dark)
}

func TestApplyTheme_PresetWithOverride(t *testing.T) {
	resetTheme(t)
	err := ApplyTheme(ThemeConfig{
		Preset: "nord",
		Colors: map[string]string{"text.dimmed": "#123456"},
	})
	require.NoError(t, err)
	require.Equal(t, "#123456", TextDimmedColor.Dark)
	require.Equal(t, NordPreset.Colors[TokenTextPrimary], TextPrimaryColor.Dark)
}

func TestApplyTheme_Errors(t *testing.T) {
	resetTheme(t)
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Preset: "solarized"}), "unknown theme preset")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"issue.bug": "#FFF"}}), "unknown color token")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Colors: map[string]string{"text.primary": "red"}}), "invalid hex color")
	require.ErrorContains(t, ApplyTheme(ThemeConfig{Mode: "sepia"}), "unknown theme mode")
}

func TestApplyTheme_RebuildsRegisteredStyles(t *testing.T) {
	resetTheme(t)
	calls := 0
	RegisterStyleRebuilder(func() { calls++ })
	t.Cleanup(func() { styleRebuilders = styleRebuilders[:len(styleRebuilders)-1] })

	require.NoError(t, ApplyTheme(ThemeConfig{}))
	require.Equal(t, 1, calls)
}

func TestIsValidHexColor(t *testing.T) {
	for _, c := range []string{"#FFF", "#a1b2c3"} {
		require.True(t, isValidHexColor(c), c)
	}
	for _, c := range []string{"FFF", "#FFFF", "#GGGGGG", ""} {
		require.False(t, isValidHexColor(c), c)
	}
}
