package overlay

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func screen(width, height int, fill string) string {
	return strings.TrimSuffix(strings.Repeat(strings.Repeat(fill, width)+"\n", height), "\n")
}

func TestPlace_Center(t *testing.T) {
	out := Place(Config{Width: 7, Height: 5}, "XXX\nXXX", screen(7, 5, "."))

	require.Equal(t, []string{
		".......",
		"..XXX..",
		"..XXX..",
		".......",
		".......",
	}, strings.Split(out, "\n"))
}

func TestPlace_Top(t *testing.T) {
	out := Place(Config{Width: 5, Height: 4, Position: Top, PadY: 1}, "X", screen(5, 4, "."))

	require.Equal(t, []string{".....", "..X..", ".....", "....."}, strings.Split(out, "\n"))
}

func TestPlace_KeepsBackgroundAroundBox(t *testing.T) {
	out := Place(Config{Width: 5, Height: 3}, "X", "ABCDE\nFGHIJ\nKLMNO")

	require.Equal(t, "FGXIJ", strings.Split(out, "\n")[1])
}

func TestPlace_PadsShortBackground(t *testing.T) {
	out := Place(Config{Width: 6, Height: 3}, "XX", "ab")

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 3)
	require.Equal(t, "  XX", lines[1], "short lines are padded up to the box")
}

func TestPlace_OversizedBoxStartsAtOrigin(t *testing.T) {
	out := Place(Config{Width: 3, Height: 2}, "XXXXX\nXXXXX\nXXXXX", screen(3, 2, "."))

	lines := strings.Split(out, "\n")
	require.Len(t, lines, 2, "rows below the screen are dropped")
	require.Equal(t, "XXXXX", lines[0])
}

func TestPlace_PreservesANSI(t *testing.T) {
	bg := "\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m\n\x1b[31mRED\x1b[0m"

	out := Place(Config{Width: 3, Height: 3}, "X", bg)

	require.Contains(t, out, "\x1b[31m")
	require.Contains(t, out, "X")
}

func TestOrigin(t *testing.T) {
	tests := []struct {
		name  string
		cfg   Config
		w, h  int
		wantX int
		wantY int
	}{
		{"center", Config{Width: 10, Height: 10}, 4, 2, 3, 4},
		{"top", Config{Width: 10, Height: 10, Position: Top, PadY: 2}, 4, 2, 3, 2},
		{"clamped", Config{Width: 5, Height: 5}, 10, 10, 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			x, y := origin(tt.cfg, tt.w, tt.h)
			require.Equal(t, tt.wantX, x)
			require.Equal(t, tt.wantY, y)
		})
	}
}
