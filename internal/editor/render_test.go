package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func numberedBuffer(n int) *Buffer {
	lines := make([]string, n)
	for i := range lines {
		lines[i] = "line"
	}
	return NewBufferFromLines(lines)
}

// TestPlan_CenteringAndDimmingAreIndependent verifies each transform works without the other.
func TestPlan_CenteringAndDimmingAreIndependent(t *testing.T) {
	b := numberedBuffer(40)
	vp := Viewport{HeightPx: 10, LineHeightPx: 1}
	cur := Cursor{Line: 20}

	centred := Plan(PlanInput{Buffer: b, Cursor: cur, Viewport: vp, Typewriter: TypewriterConfig{Centering: true, FocusRadius: 1}})
	require.Equal(t, 15, centred.ScrollOffsetPx)
	for _, l := range centred.Lines {
		require.Equal(t, EmphasisFull, l.Emphasis)
	}

	dimmed := Plan(PlanInput{Buffer: b, Cursor: cur, Viewport: vp, Typewriter: TypewriterConfig{Dimming: true, FocusRadius: 1}})
	require.Equal(t, 11, dimmed.ScrollOffsetPx, "plain scrolling keeps the cursor at the bottom edge")
	require.Equal(t, EmphasisDimmed, dimmed.Lines[18].Emphasis)
	require.Equal(t, EmphasisFull, dimmed.Lines[19].Emphasis)
	require.Equal(t, EmphasisFull, dimmed.Lines[21].Emphasis)
	require.Equal(t, EmphasisDimmed, dimmed.Lines[22].Emphasis)
}

// TestPlan_Hold verifies a held frame keeps the previous scroll while the cursor is visible.
func TestPlan_Hold(t *testing.T) {
	b := numberedBuffer(40)
	in := PlanInput{
		Buffer:       b,
		Cursor:       Cursor{Line: 12},
		Viewport:     Viewport{HeightPx: 10, LineHeightPx: 1},
		Typewriter:   TypewriterConfig{Centering: true},
		PrevScrollPx: 5,
		Hold:         true,
	}
	require.Equal(t, 5, Plan(in).ScrollOffsetPx)

	in.Hold = false
	require.Equal(t, 7, Plan(in).ScrollOffsetPx)
}

// TestPlan_CursorScreenPosition verifies the cursor is placed relative to the scroll.
func TestPlan_CursorScreenPosition(t *testing.T) {
	b := NewBuffer("a\n\tb\nc")
	p := Plan(PlanInput{
		Buffer:     b,
		Cursor:     Cursor{Line: 1, Col: 1},
		Mode:       ModeInsert,
		Viewport:   Viewport{HeightPx: 200, LineHeightPx: 20, TopPaddingPx: 10},
		TabWidth:   4,
		Typewriter: TypewriterConfig{FocusRadius: 1},
	})
	require.Equal(t, ScreenPosition{X: 4, Y: 30}, p.Cursor)
	require.Equal(t, ModeInsert, p.Mode)
	require.Len(t, p.Lines, 3)
	require.Nil(t, p.Selection)
}

// TestPlan_ClampsInputs verifies out-of-range cursors and selections are clamped.
func TestPlan_ClampsInputs(t *testing.T) {
	b := NewBuffer("ab")
	sel := &Selection{Anchor: Cursor{Col: -2}, Head: Cursor{Line: 3, Col: 9}}
	p := Plan(PlanInput{Buffer: b, Cursor: Cursor{Line: 5, Col: 5}, Selection: sel, Viewport: Viewport{HeightPx: 5}})
	require.Equal(t, 2, p.Cursor.X)
	require.Equal(t, 0, p.Cursor.Y)
	require.Equal(t, &Selection{Anchor: Cursor{}, Head: Cursor{Col: 2}}, p.Selection)
}

// TestViewport_Lines verifies degenerate viewports still hold a line.
func TestViewport_Lines(t *testing.T) {
	require.Equal(t, 1, Viewport{}.Lines())
	require.Equal(t, 12, Viewport{HeightPx: 250, LineHeightPx: 20}.Lines())
	require.Equal(t, 10, RenderPlan{ScrollOffsetPx: 210}.FirstVisibleLine(Viewport{HeightPx: 100, LineHeightPx: 20, TopPaddingPx: 10}))
}

// TestDisplayColumn verifies tab stops and wide characters.
func TestDisplayColumn(t *testing.T) {
	require.Equal(t, 0, DisplayColumn("abc", 0, 2))
	require.Equal(t, 3, DisplayColumn("abc", 3, 2))
	require.Equal(t, 4, DisplayColumn("a\tb", 2, 4))
	require.Equal(t, 4, DisplayColumn("日本", 2, 2))
	require.Equal(t, 2, DisplayColumn("\t", 1, 0), "zero tab width falls back to the default")
}

// TestExpandTabs verifies tabs become spaces up to the next stop.
func TestExpandTabs(t *testing.T) {
	require.Equal(t, "plain", ExpandTabs("plain", 4))
	require.Equal(t, "a   b", ExpandTabs("a\tb", 4))
	require.Equal(t, "    x", ExpandTabs("\t\tx", 2))
}
