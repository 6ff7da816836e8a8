// Package styles contains Lip Gloss style definitions.
package styles

// ColorToken represents a named, themeable color.
type ColorToken string

// Color tokens users can override in their config.
const (
	// Document text
	TokenTextPrimary ColorToken = "text.primary"
	TokenTextDimmed  ColorToken = "text.dimmed"
	TokenTextMuted   ColorToken = "text.muted"

	// Cursor and highlights
	TokenCursorNavigation ColorToken = "cursor.navigation"
	TokenCursorInsert     ColorToken = "cursor.insert"
	TokenSelectionBg      ColorToken = "selection.bg"
	TokenSearchMatch      ColorToken = "search.match"

	// Status line
	TokenStatusBarFg      ColorToken = "status.bar.fg"
	TokenStatusBarBg      ColorToken = "status.bar.bg"
	TokenModeNavigationBg ColorToken = "mode.navigation"
	TokenModeInsertBg     ColorToken = "mode.insert"

	// Messages
	TokenStatusSuccess ColorToken = "status.success"
	TokenStatusWarning ColorToken = "status.warning"
	TokenStatusError   ColorToken = "status.error"

	// Command prompt
	TokenPrompt ColorToken = "prompt"
)

// AllTokens returns all valid color tokens for validation.
func AllTokens() []ColorToken {
	return []ColorToken{
		TokenTextPrimary,
		TokenTextDimmed,
		TokenTextMuted,

		TokenCursorNavigation,
		TokenCursorInsert,
		TokenSelectionBg,
		TokenSearchMatch,

		TokenStatusBarFg,
		TokenStatusBarBg,
		TokenModeNavigationBg,
		TokenModeInsertBg,

		TokenStatusSuccess,
		TokenStatusWarning,
		TokenStatusError,

		TokenPrompt,
	}
}
