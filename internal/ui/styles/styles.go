package styles

import "github.com/charmbracelet/lipgloss"

var (
	// Document text
	TextPrimaryColor = lipgloss.AdaptiveColor{Light: "#333333", Dark: "#CCCCCC"}
	TextDimmedColor  = lipgloss.AdaptiveColor{Light: "#BBBBBB", Dark: "#5A5A5A"} // Lines outside the focus window
	TextMutedColor   = lipgloss.AdaptiveColor{Light: "#999999", Dark: "#696969"} // Hints, line markers

	// Cursor and highlights
	CursorNavigationColor = lipgloss.AdaptiveColor{Light: "#1E66F5", Dark: "#54A0FF"}
	CursorInsertColor     = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	SelectionBgColor      = lipgloss.AdaptiveColor{Light: "#BCC0CC", Dark: "#1A5276"}
	SearchMatchColor      = lipgloss.AdaptiveColor{Light: "#DF8E1D", Dark: "#FECA57"}

	// Status line
	StatusBarFgColor      = lipgloss.AdaptiveColor{Light: "#444444", Dark: "#BBBBBB"}
	StatusBarBgColor      = lipgloss.AdaptiveColor{Light: "#E6E6E6", Dark: "#2D3436"}
	ModeNavigationBgColor = lipgloss.AdaptiveColor{Light: "#1A5276", Dark: "#1A5276"}
	ModeInsertBgColor     = lipgloss.AdaptiveColor{Light: "#2E7D4F", Dark: "#2E7D4F"}

	// Messages
	StatusSuccessColor = lipgloss.AdaptiveColor{Light: "#43BF6D", Dark: "#73F59F"}
	StatusWarningColor = lipgloss.AdaptiveColor{Light: "#FECA57", Dark: "#FECA57"}
	StatusErrorColor   = lipgloss.AdaptiveColor{Light: "#FF6B6B", Dark: "#FF8787"}

	PromptColor = lipgloss.AdaptiveColor{Light: "#000000", Dark: "#FFFFFF"}

	TextStyle        lipgloss.Style
	DimmedTextStyle  lipgloss.Style
	MutedStyle       lipgloss.Style
	SelectionStyle   lipgloss.Style
	SearchMatchStyle lipgloss.Style

	NavigationCursorStyle lipgloss.Style
	InsertCursorStyle     lipgloss.Style

	StatusBarStyle      lipgloss.Style
	ModeNavigationStyle lipgloss.Style
	ModeInsertStyle     lipgloss.Style

	SuccessStyle lipgloss.Style
	WarningStyle lipgloss.Style
	ErrorStyle   lipgloss.Style
	PromptStyle  lipgloss.Style
)

func init() {
	rebuildStyles()
}

// rebuildStyles recreates all Style objects with the current colors.
// lipgloss.Style captures colors at creation time.
func rebuildStyles() {
	TextStyle = lipgloss.NewStyle().Foreground(TextPrimaryColor)
	DimmedTextStyle = lipgloss.NewStyle().Foreground(TextDimmedColor)
	MutedStyle = lipgloss.NewStyle().Foreground(TextMutedColor)
	SelectionStyle = lipgloss.NewStyle().Background(SelectionBgColor)
	SearchMatchStyle = lipgloss.NewStyle().Foreground(SearchMatchColor).Underline(true)

	NavigationCursorStyle = lipgloss.NewStyle().Reverse(true).Foreground(CursorNavigationColor)
	InsertCursorStyle = lipgloss.NewStyle().Underline(true).Foreground(CursorInsertColor)

	StatusBarStyle = lipgloss.NewStyle().
		Foreground(StatusBarFgColor).
		Background(StatusBarBgColor).
		Padding(0, 1)

	modeBadge := lipgloss.NewStyle().Bold(true).Padding(0, 1).Foreground(lipgloss.Color("#FFFFFF"))
	ModeNavigationStyle = modeBadge.Background(ModeNavigationBgColor)
	ModeInsertStyle = modeBadge.Background(ModeInsertBgColor)

	SuccessStyle = lipgloss.NewStyle().Foreground(StatusSuccessColor)
	WarningStyle = lipgloss.NewStyle().Foreground(StatusWarningColor).Bold(true)
	ErrorStyle = lipgloss.NewStyle().Foreground(StatusErrorColor).Bold(true)
	PromptStyle = lipgloss.NewStyle().Foreground(PromptColor)

	for _, fn := range styleRebuilders {
		fn()
	}
}
