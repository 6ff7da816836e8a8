package editor

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Viewport describes the area a render plan is computed for.
// A terminal host uses a line height of 1 so pixels are rows.
type Viewport struct {
	HeightPx     int
	LineHeightPx int
	TopPaddingPx int
}

func (v Viewport) normalized() Viewport {
	if v.LineHeightPx <= 0 {
		v.LineHeightPx = 1
	}
	if v.HeightPx < v.LineHeightPx {
		v.HeightPx = v.LineHeightPx
	}
	return v
}

// Lines returns how many full lines fit in the viewport.
func (v Viewport) Lines() int {
	v = v.normalized()
	return max(v.HeightPx/v.LineHeightPx, 1)
}

// RenderLine is one document line with its emphasis.
type RenderLine struct {
	Text     string
	Emphasis Emphasis
}

// ScreenPosition locates the cursor relative to the viewport. X is in
// terminal cells, Y in pixels from the top of the viewport.
type ScreenPosition struct {
	X int
	Y int
}

// RenderPlan is everything a renderer needs to paint one frame.
type RenderPlan struct {
	Lines          []RenderLine
	ScrollOffsetPx int
	Cursor         ScreenPosition
	Mode           Mode
	// Selection is the highlighted range, if any.
	Selection *Selection
}

// FirstVisibleLine returns the index of the topmost visible line.
func (p RenderPlan) FirstVisibleLine(vp Viewport) int {
	vp = vp.normalized()
	return max((p.ScrollOffsetPx-vp.TopPaddingPx)/vp.LineHeightPx, 0)
}

// PlanInput is the state a render plan is derived from.
type PlanInput struct {
	Buffer     *Buffer
	Cursor     Cursor
	Mode       Mode
	Selection  *Selection
	Viewport   Viewport
	Typewriter TypewriterConfig
	TabWidth   int
	// PrevScrollPx is used when centering is off, or Hold is set, to scroll
	// only as far as needed to keep the cursor visible.
	PrevScrollPx int
	// Hold suppresses centering for this frame.
	Hold bool
}

// Plan computes the render plan. It has no side effects.
func Plan(in PlanInput) RenderPlan {
	vp := in.Viewport.normalized()
	b := in.Buffer
	c := b.Clamp(in.Cursor)
	total := vp.TopPaddingPx + b.LineCount()*vp.LineHeightPx

	var scroll int
	if in.Typewriter.Centering && !in.Hold {
		scroll = CenterScroll(c.Line, vp.HeightPx, vp.LineHeightPx, vp.TopPaddingPx, total)
	} else {
		scroll = VisibleScroll(in.PrevScrollPx, c.Line, vp.HeightPx, vp.LineHeightPx, vp.TopPaddingPx, total)
	}

	radius := in.Typewriter.FocusRadius
	if radius < 0 {
		radius = 0
	}
	emphasis := FocusEmphasis(b.LineCount(), FocusWindow{Center: c.Line, Radius: radius}, in.Typewriter.Dimming)
	lines := make([]RenderLine, b.LineCount())
	for i := range lines {
		lines[i] = RenderLine{Text: b.lines[i], Emphasis: emphasis[i]}
	}

	var sel *Selection
	if in.Selection != nil {
		s := b.ClampSelection(*in.Selection)
		sel = &s
	}

	return RenderPlan{
		Lines:          lines,
		ScrollOffsetPx: scroll,
		Cursor: ScreenPosition{
			X: DisplayColumn(b.LineAt(c.Line), c.Col, in.TabWidth),
			Y: vp.TopPaddingPx + c.Line*vp.LineHeightPx - scroll,
		},
		Mode:      in.Mode,
		Selection: sel,
	}
}

// DisplayColumn returns the terminal cell where grapheme col of line starts.
// Tabs advance to the next multiple of tabWidth.
func DisplayColumn(line string, col, tabWidth int) int {
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	x := 0
	for i, g := range graphemes(line) {
		if i >= col {
			break
		}
		if g == "\t" {
			x += tabWidth - x%tabWidth
			continue
		}
		x += runewidth.StringWidth(g)
	}
	return x
}

// ExpandTabs replaces tabs with spaces up to the next tab stop.
func ExpandTabs(line string, tabWidth int) string {
	if !strings.ContainsRune(line, '\t') {
		return line
	}
	if tabWidth <= 0 {
		tabWidth = DefaultTabWidth
	}
	var sb strings.Builder
	x := 0
	for _, g := range graphemes(line) {
		if g == "\t" {
			n := tabWidth - x%tabWidth
			sb.WriteString(strings.Repeat(" ", n))
			x += n
			continue
		}
		sb.WriteString(g)
		x += runewidth.StringWidth(g)
	}
	return sb.String()
}
