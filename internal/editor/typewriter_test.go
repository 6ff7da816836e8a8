package editor

import (
	"testing"

	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

// TestCenterScroll verifies the cursor line is centred and the result is clamped.
func TestCenterScroll(t *testing.T) {
	// 100 lines of 20px in a 200px viewport.
	total := 100 * 20
	require.Equal(t, 0, CenterScroll(0, 200, 20, 0, total), "top clamps to zero")
	require.Equal(t, 0, CenterScroll(4, 200, 20, 0, total))
	require.Equal(t, 910, CenterScroll(50, 200, 20, 0, total))
	require.Equal(t, 1800, CenterScroll(99, 200, 20, 0, total), "bottom clamps to total-viewport")
}

// TestCenterScroll_ShortDocument verifies a document shorter than the viewport never scrolls.
func TestCenterScroll_ShortDocument(t *testing.T) {
	require.Equal(t, 0, CenterScroll(3, 200, 20, 0, 5*20))
}

// TestCenterScroll_TopPadding verifies padding shifts the centred line.
func TestCenterScroll_TopPadding(t *testing.T) {
	require.Equal(t, 940, CenterScroll(50, 200, 20, 30, 30+100*20))
}

// TestCenterScroll_Clamped checks the scroll range for arbitrary layouts.
func TestCenterScroll_Clamped(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		lines := rapid.IntRange(1, 500).Draw(t, "lines")
		lh := rapid.IntRange(1, 40).Draw(t, "lineHeight")
		vp := rapid.IntRange(1, 2000).Draw(t, "viewport")
		pad := rapid.IntRange(0, 100).Draw(t, "padding")
		line := rapid.IntRange(0, lines-1).Draw(t, "cursorLine")
		total := pad + lines*lh

		got := CenterScroll(line, vp, lh, pad, total)
		require.GreaterOrEqual(t, got, 0)
		require.LessOrEqual(t, got, max(total-vp, 0))
	})
}

// TestVisibleScroll verifies the scroll only moves enough to show the cursor.
func TestVisibleScroll(t *testing.T) {
	total := 50
	require.Equal(t, 0, VisibleScroll(0, 5, 10, 1, 0, total), "already visible")
	require.Equal(t, 3, VisibleScroll(0, 12, 10, 1, 0, total), "scroll down to the bottom edge")
	require.Equal(t, 7, VisibleScroll(20, 7, 10, 1, 0, total), "scroll up to the top edge")
	require.Equal(t, 40, VisibleScroll(45, 49, 10, 1, 0, total), "clamped to the end")
}

// TestFocusWindow verifies containment and clipped bounds.
func TestFocusWindow(t *testing.T) {
	w := FocusWindow{Center: 0, Radius: 1}
	require.True(t, w.Contains(0))
	require.True(t, w.Contains(1))
	require.False(t, w.Contains(2))

	first, last := w.Bounds(10)
	require.Equal(t, 0, first)
	require.Equal(t, 1, last)

	first, last = FocusWindow{Center: 9, Radius: 3}.Bounds(10)
	require.Equal(t, 6, first)
	require.Equal(t, 9, last)

	first, last = w.Bounds(0)
	require.Greater(t, first, last)
}

// TestFocusEmphasis verifies the dimmed lines are exactly those outside the window.
func TestFocusEmphasis(t *testing.T) {
	got := FocusEmphasis(5, FocusWindow{Center: 2, Radius: 1}, true)
	require.Equal(t, []Emphasis{EmphasisDimmed, EmphasisFull, EmphasisFull, EmphasisFull, EmphasisDimmed}, got)

	got = FocusEmphasis(5, FocusWindow{Center: 2, Radius: 0}, false)
	for _, e := range got {
		require.Equal(t, EmphasisFull, e)
	}
}

// TestFocusEmphasis_Bounds checks the focused set is the clipped window for arbitrary inputs.
func TestFocusEmphasis_Bounds(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 200).Draw(t, "lines")
		c := rapid.IntRange(0, n-1).Draw(t, "cursor")
		r := rapid.IntRange(0, 10).Draw(t, "radius")

		w := FocusWindow{Center: c, Radius: r}
		first, last := w.Bounds(n)
		em := FocusEmphasis(n, w, true)
		require.Len(t, em, n)
		for i, e := range em {
			inside := i >= first && i <= last
			require.Equal(t, inside, e == EmphasisFull, "line %d", i)
		}
		require.Equal(t, max(0, c-r), first)
		require.Equal(t, min(n-1, c+r), last)
	})
}
