// Package help contains the keybinding overlay.
package help

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"

	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/ui/overlay"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// CommandHelp describes one ':' command.
type CommandHelp struct {
	Command string
	Desc    string
}

// Commands returns the ':' commands shown in the overlay.
func Commands() []CommandHelp {
	return []CommandHelp{
		{Command: ":w", Desc: "write"},
		{Command: ":q  :q!", Desc: "quit, discard"},
		{Command: ":wq  :x", Desc: "write and quit"},
		{Command: ":s/a/b/", Desc: "replace next"},
		{Command: ":%s/a/b/", Desc: "replace all"},
		{Command: "flags", Desc: "i w r c g"},
		{Command: ":noh", Desc: "clear search"},
		{Command: ":typewriter", Desc: "centering"},
		{Command: ":dim", Desc: "focus dimming"},
		{Command: ":preview", Desc: "rendered markdown"},
	}
}

// Styles are rebuilt with the theme; see init.
var (
	titleStyle   lipgloss.Style
	sectionStyle lipgloss.Style
	keyStyle     lipgloss.Style
	commandStyle lipgloss.Style
	descStyle    lipgloss.Style
	boxStyle     lipgloss.Style
	footerStyle  lipgloss.Style
)

func init() {
	rebuild()
	styles.RegisterStyleRebuilder(rebuild)
}

func rebuild() {
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.CursorNavigationColor).PaddingLeft(2)
	sectionStyle = lipgloss.NewStyle().Bold(true).Foreground(styles.CursorNavigationColor).MarginTop(1)
	keyStyle = lipgloss.NewStyle().Foreground(styles.TextPrimaryColor).Width(9)
	commandStyle = keyStyle.Width(12)
	descStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor)
	boxStyle = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(styles.TextMutedColor)
	footerStyle = lipgloss.NewStyle().Foreground(styles.TextMutedColor).MarginTop(1)
}

// commandsMinWidth is the screen width from which the ':' commands get
// their own column.
const commandsMinWidth = 100

// Model holds the help view state.
type Model struct {
	nav    keys.NavigationKeyMap
	insert keys.InsertKeyMap
	shell  keys.ShellKeyMap
	width  int
	height int
}

// New creates a help view for the default bindings.
func New() Model {
	return Model{
		nav:    keys.DefaultNavigationKeyMap(),
		insert: keys.DefaultInsertKeyMap(),
		shell:  keys.DefaultShellKeyMap(),
	}
}

// SetSize updates dimensions.
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	return m
}

// View renders the help box centred on an empty screen.
func (m Model) View() string {
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, m.box())
}

// Overlay renders the help box on top of background.
func (m Model) Overlay(background string) string {
	return overlay.Place(overlay.Config{
		Width:    m.width,
		Height:   m.height,
		Position: overlay.Center,
	}, m.box(), background)
}

func (m Model) box() string {
	column := lipgloss.NewStyle().MarginRight(3)

	var motion strings.Builder
	motion.WriteString(sectionStyle.Render("Motion") + "\n")
	for _, b := range []key.Binding{m.nav.Left, m.nav.Right, m.nav.Up, m.nav.Down, m.nav.WordForward, m.nav.WordBackward, m.nav.LineStart, m.nav.LineEnd} {
		motion.WriteString(renderBinding(b))
	}
	motion.WriteString(renderKeyDesc("gg  G", "start, end"))
	motion.WriteString(renderKeyDesc("ctrl+b/f", "page up/down"))

	var editing strings.Builder
	editing.WriteString(sectionStyle.Render("Editing") + "\n")
	editing.WriteString(renderKeyDesc("i a I A", "insert"))
	editing.WriteString(renderKeyDesc("o O", "open line"))
	editing.WriteString(renderBinding(m.insert.Leave))
	for _, b := range []key.Binding{m.nav.DeleteUnder, m.nav.DeleteBefore} {
		editing.WriteString(renderBinding(b))
	}
	editing.WriteString(renderKeyDesc("dd", "delete line"))
	editing.WriteString(renderBinding(m.nav.Undo))
	editing.WriteString(renderBinding(m.nav.Redo))
	editing.WriteString(renderKeyDesc("yy", "copy line"))
	editing.WriteString(renderBinding(m.nav.Cut))
	editing.WriteString(renderBinding(m.nav.Paste))

	var search strings.Builder
	search.WriteString(sectionStyle.Render("Search") + "\n")
	for _, b := range []key.Binding{m.nav.Search, m.nav.FindNext, m.nav.FindPrevious} {
		search.WriteString(renderBinding(b))
	}
	search.WriteString(sectionStyle.Render("General") + "\n")
	for _, b := range []key.Binding{m.shell.Save, m.shell.Quit, m.shell.ToggleCentering, m.shell.ToggleDimming, m.shell.Command, m.shell.ShowLog, m.shell.Help} {
		search.WriteString(renderBinding(b))
	}

	cols := []string{
		column.Render(motion.String()),
		column.Render(editing.String()),
		search.String(),
	}
	if m.width >= commandsMinWidth {
		var commands strings.Builder
		commands.WriteString(sectionStyle.Render("Commands") + "\n")
		for _, c := range Commands() {
			commands.WriteString(commandStyle.Render(c.Command) + descStyle.Render(c.Desc) + "\n")
		}
		cols[2] = column.Render(cols[2])
		cols = append(cols, commands.String())
	}
	columns := lipgloss.JoinHorizontal(lipgloss.Top, cols...)
	body := lipgloss.NewStyle().Padding(0, 2).Render(columns + "\n" + footerStyle.Render("Press ? or Esc to close"))
	width := lipgloss.Width(body)

	var content strings.Builder
	content.WriteString(titleStyle.Render("Keybindings") + "\n")
	content.WriteString(descStyle.Render(strings.Repeat("─", width)) + "\n")
	content.WriteString(body)
	return boxStyle.Render(content.String())
}

func renderBinding(b key.Binding) string {
	h := b.Help()
	return renderKeyDesc(h.Key, h.Desc)
}

func renderKeyDesc(k, desc string) string {
	return keyStyle.Render(k) + descStyle.Render(desc) + "\n"
}
