// Package logview shows recent debug log entries on top of the editor.
package logview

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

const (
	// Capacity is how many entries are kept; older ones are dropped.
	Capacity = 500

	viewportMaxHeight = 20
	viewportMinHeight = 3
	boxMaxWidth       = 140
	boxMinWidth       = 30
)

// Model holds received entries and the overlay state.
type Model struct {
	entries  []string
	visible  bool
	minLevel log.Level
	width    int
	height   int
	viewport viewport.Model
}

// New creates a hidden log view showing every level.
func New() Model {
	return Model{minLevel: log.LevelDebug}
}

// Append records an entry, dropping the oldest past Capacity.
func (m Model) Append(entry string) Model {
	entry = strings.TrimSuffix(entry, "\n")
	if len(m.entries) == Capacity {
		m.entries = append(m.entries[:0:0], m.entries[1:]...)
	}
	m.entries = append(m.entries, entry)
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// Len returns the number of kept entries.
func (m Model) Len() int { return len(m.entries) }

// Visible reports whether the overlay is shown.
func (m Model) Visible() bool { return m.visible }

// Toggle shows or hides the overlay.
func (m Model) Toggle() Model {
	m.visible = !m.visible
	if m.visible {
		m = m.refresh()
		m.viewport.GotoBottom()
	}
	return m
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m.refresh()
}

// Update handles keys while the overlay is shown.
func (m Model) Update(msg tea.KeyMsg) Model {
	switch msg.String() {
	case "c":
		m.entries = nil
		return m.refresh()
	case "d":
		m.minLevel = log.LevelDebug
		return m.refresh()
	case "i":
		m.minLevel = log.LevelInfo
		return m.refresh()
	case "w":
		m.minLevel = log.LevelWarn
		return m.refresh()
	case "e":
		m.minLevel = log.LevelError
		return m.refresh()
	case "j", "down":
		m.viewport.ScrollDown(1)
	case "k", "up":
		m.viewport.ScrollUp(1)
	case "g":
		m.viewport.GotoTop()
	case "G":
		m.viewport.GotoBottom()
	case "esc", "q", "ctrl+l":
		m.visible = false
	}
	return m
}

// Overlay draws the box centred over bg.
func (m Model) Overlay(bg string) string {
	if !m.visible {
		return bg
	}
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.box(), bg)
}

func (m Model) box() string {
	width := m.boxWidth()
	divider := styles.MutedStyle.Render(strings.Repeat("─", width))
	title := lipgloss.NewStyle().Bold(true).Foreground(styles.CursorNavigationColor).PaddingLeft(1).Render("Log")

	var b strings.Builder
	b.WriteString(title + "\n")
	b.WriteString(divider + "\n")
	b.WriteString(m.viewport.View() + "\n")
	b.WriteString(divider + "\n")
	b.WriteString(m.filterHint())

	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(styles.TextMutedColor).
		Width(width).
		Render(b.String())
}

func (m Model) refresh() Model {
	if m.width == 0 || m.height == 0 {
		return m
	}
	// Title, two dividers, hint and borders take six rows.
	h := max(min(viewportMaxHeight, m.height-6), viewportMinHeight)
	m.viewport = viewport.New(m.boxWidth(), h)
	m.viewport.SetContent(m.content())
	return m
}

func (m Model) content() string {
	var lines []string
	for _, e := range m.entries {
		if log.LevelOf(e) >= m.minLevel {
			lines = append(lines, colorize(e, m.boxWidth()))
		}
	}
	if len(lines) == 0 {
		return styles.MutedStyle.Italic(true).Render("No log entries")
	}
	return strings.Join(lines, "\n")
}

func (m Model) boxWidth() int {
	return max(min(m.width-6, boxMaxWidth), boxMinWidth)
}

func (m Model) filterHint() string {
	hint := lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	active := lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Bold(true)

	parts := []string{hint.Render("[c] clear")}
	for _, f := range []struct {
		label string
		level log.Level
	}{
		{"[d] debug", log.LevelDebug},
		{"[i] info", log.LevelInfo},
		{"[w] warn", log.LevelWarn},
		{"[e] error", log.LevelError},
	} {
		if f.level == m.minLevel {
			parts = append(parts, active.Render(f.label))
		} else {
			parts = append(parts, hint.Render(f.label))
		}
	}
	return strings.Join(parts, "  ")
}

func colorize(entry string, width int) string {
	if ansi.StringWidth(entry) > width {
		entry = ansi.Truncate(entry, width, "...")
	}
	switch log.LevelOf(entry) {
	case log.LevelDebug:
		return styles.MutedStyle.Render(entry)
	case log.LevelWarn:
		return styles.WarningStyle.Render(entry)
	case log.LevelError:
		return styles.ErrorStyle.Render(entry)
	}
	return styles.TextStyle.Render(entry)
}
