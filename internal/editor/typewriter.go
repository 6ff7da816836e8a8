package editor

// TypewriterConfig holds the two independent display transforms.
type TypewriterConfig struct {
	// Centering keeps the cursor line at the vertical centre of the viewport.
	Centering bool
	// Dimming flags lines outside the focus window as dimmed.
	Dimming bool
	// FocusRadius is the number of lines above and below the cursor kept in focus.
	FocusRadius int
}

// DefaultFocusRadius is the focus radius used when none is configured.
const DefaultFocusRadius = 1

// CenterScroll returns the scroll offset that puts cursorLine at the
// vertical centre of the viewport, clamped to [0, total-viewport].
func CenterScroll(cursorLine, viewportHeightPx, lineHeightPx, topPaddingPx, totalContentHeightPx int) int {
	lineTop := topPaddingPx + cursorLine*lineHeightPx
	target := lineTop + lineHeightPx/2 - viewportHeightPx/2
	return clampInt(target, 0, totalContentHeightPx-viewportHeightPx)
}

// VisibleScroll returns the smallest change to prev that keeps the cursor
// line fully inside the viewport.
func VisibleScroll(prev, cursorLine, viewportHeightPx, lineHeightPx, topPaddingPx, totalContentHeightPx int) int {
	lineTop := topPaddingPx + cursorLine*lineHeightPx
	lineBottom := lineTop + lineHeightPx
	scroll := prev
	if lineTop < scroll {
		scroll = lineTop
	}
	if lineBottom > scroll+viewportHeightPx {
		scroll = lineBottom - viewportHeightPx
	}
	return clampInt(scroll, 0, totalContentHeightPx-viewportHeightPx)
}

// FocusWindow is the band of lines around the cursor rendered at full emphasis.
type FocusWindow struct {
	Center int
	Radius int
}

// Contains reports whether line is within [Center-Radius, Center+Radius].
func (w FocusWindow) Contains(line int) bool {
	return line >= w.Center-w.Radius && line <= w.Center+w.Radius
}

// Bounds returns the focused line range clipped to a document of lineCount lines.
func (w FocusWindow) Bounds(lineCount int) (first, last int) {
	if lineCount <= 0 {
		return 0, -1
	}
	first = clampInt(w.Center-w.Radius, 0, lineCount-1)
	last = clampInt(w.Center+w.Radius, 0, lineCount-1)
	return first, last
}

// Emphasis is how brightly a line is drawn.
type Emphasis int

const (
	EmphasisFull Emphasis = iota
	EmphasisDimmed
)

func (e Emphasis) String() string {
	if e == EmphasisDimmed {
		return "dimmed"
	}
	return "full"
}

// FocusEmphasis returns the emphasis of every line. With dimming off every
// line is full.
func FocusEmphasis(lineCount int, w FocusWindow, dimming bool) []Emphasis {
	out := make([]Emphasis, lineCount)
	if !dimming {
		return out
	}
	for i := range out {
		if !w.Contains(i) {
			out[i] = EmphasisDimmed
		}
	}
	return out
}
