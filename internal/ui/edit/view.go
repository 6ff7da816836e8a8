package edit

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// View implements tea.Model.
func (m Model) View() string {
	if m.quitting || m.width < 1 || m.height < 1 {
		return ""
	}
	if m.previewing {
		return m.preview.View() + "\n" + m.statusLine()
	}
	screen := m.editorView()
	if m.showHelp {
		screen = m.help.Overlay(screen)
	}
	return m.logView.Overlay(screen)
}

func (m Model) editorView() string {
	vp := editor.Viewport{HeightPx: m.textHeight(), LineHeightPx: 1}
	plan := m.session.Plan(vp)
	p := painter{
		width:    m.width,
		height:   m.textHeight(),
		wrap:     m.settings.WordWrap,
		tabWidth: m.settings.TabWidth,
	}
	rows := p.paint(plan, plan.FirstVisibleLine(vp), m.session.Cursor(), m.session.Matches())
	return strings.Join(rows, "\n") + "\n" + m.bottomRow()
}

func (m Model) bottomRow() string {
	switch m.promptKind {
	case promptSearch:
		return styles.PromptStyle.Render("/") + m.prompt.View()
	case promptCommand:
		return styles.PromptStyle.Render(":") + m.prompt.View()
	}
	return m.statusLine()
}

// statusLine is the mode badge, file name and message on the left, and
// position, word count and toggles on the right.
func (m Model) statusLine() string {
	badge := styles.ModeNavigationStyle
	if m.session.Mode() == editor.ModeInsert {
		badge = styles.ModeInsertStyle
	}
	left := badge.Render(m.session.Mode().String())

	name := "[No Name]"
	if m.opts.Path != "" {
		name = filepath.Base(m.opts.Path)
	}
	if m.session.Modified() {
		name += " [+]"
	}
	left += " " + name
	if m.status != "" {
		left += "  " + m.statusStyle().Render(m.status)
	}

	var right []string
	if p := m.resolver.Pending(); p != "" {
		right = append(right, p)
	}
	c := m.session.Cursor()
	right = append(right,
		fmt.Sprintf("Ln %d, Col %d", c.Line+1, c.Col+1),
		styles.FormatWordCount(m.session.Stats().Words),
	)
	if m.settings.TypewriterEnabled {
		right = append(right, "tw")
	}
	if m.settings.FocusDimming {
		right = append(right, "dim")
	}
	rightText := strings.Join(right, "  ")

	inner := max(m.width-styles.StatusBarStyle.GetHorizontalPadding(), 1)
	rightWidth := lipgloss.Width(rightText)
	left = styles.TruncateString(left, max(inner-rightWidth-1, 0))
	gap := max(inner-lipgloss.Width(left)-rightWidth, 1)
	line := styles.TruncateString(left+strings.Repeat(" ", gap)+rightText, inner)
	return styles.StatusBarStyle.Width(m.width).MaxWidth(m.width).Render(line)
}

func (m Model) statusStyle() lipgloss.Style {
	switch m.statusLevel {
	case statusSuccess:
		return styles.SuccessStyle
	case statusWarning:
		return styles.WarningStyle
	case statusError:
		return styles.ErrorStyle
	}
	return lipgloss.NewStyle()
}
