package styles

import (
	"fmt"

	"github.com/charmbracelet/x/ansi"
)

// TruncateString truncates s to maxWidth cells, ending with an ellipsis when cut.
func TruncateString(s string, maxWidth int) string {
	if maxWidth < 1 {
		return ""
	}
	if ansi.StringWidth(s) <= maxWidth {
		return s
	}
	if maxWidth <= 3 {
		return ansi.Truncate("...", maxWidth, "")
	}
	return ansi.Truncate(s, maxWidth, "...")
}

// FormatWordCount renders a count such as "1 word" or "1,204 words".
func FormatWordCount(n int) string {
	unit := "words"
	if n == 1 {
		unit = "word"
	}
	return fmt.Sprintf("%s %s", groupThousands(n), unit)
}

func groupThousands(n int) string {
	if n < 0 {
		return "-" + groupThousands(-n)
	}
	s := fmt.Sprint(n)
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
