// Package overlay draws a box on top of an already rendered screen.
package overlay

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

// Position is where the box is anchored.
type Position int

const (
	Center Position = iota
	Top
)

// Config describes the screen the box is placed on.
type Config struct {
	Width    int
	Height   int
	Position Position
	// PadY is the distance from the top edge for Top.
	PadY int
}

// Place splices fg over bg. Styling on both sides of the box survives
// because cuts are made with ANSI-aware truncation.
func Place(cfg Config, fg, bg string) string {
	screen := strings.Split(bg, "\n")
	for len(screen) < cfg.Height {
		screen = append(screen, "")
	}
	box := strings.Split(fg, "\n")
	x, y := origin(cfg, lipgloss.Width(fg), len(box))

	for i, line := range box {
		if y+i >= len(screen) {
			break
		}
		screen[y+i] = splice(screen[y+i], line, x)
	}
	return strings.Join(screen, "\n")
}

// splice replaces the cells of under starting at x with over.
func splice(under, over string, x int) string {
	left := ansi.Truncate(under, x, "")
	if w := ansi.StringWidth(left); w < x {
		left += strings.Repeat(" ", x-w)
	}
	end := x + ansi.StringWidth(over)
	var right string
	if end < ansi.StringWidth(under) {
		right = ansi.TruncateLeft(under, end, "")
	}
	return left + over + right
}

func origin(cfg Config, w, h int) (x, y int) {
	x = max((cfg.Width-w)/2, 0)
	switch cfg.Position {
	case Top:
		y = cfg.PadY
	default:
		y = (cfg.Height - h) / 2
	}
	return x, max(y, 0)
}
