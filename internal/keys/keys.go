// Package keys contains keybinding definitions and resolves terminal key
// presses into the editor's logical keys.
package keys

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/editor"
)

// NavigationKeyMap defines the navigation mode bindings.
type NavigationKeyMap struct {
	// Entering insert
	InsertBefore    key.Binding
	InsertAfter     key.Binding
	InsertLineStart key.Binding
	InsertLineEnd   key.Binding
	OpenBelow       key.Binding
	OpenAbove       key.Binding

	// Motion
	Left         key.Binding
	Right        key.Binding
	Up           key.Binding
	Down         key.Binding
	WordForward  key.Binding
	WordBackward key.Binding
	LineStart    key.Binding
	LineEnd      key.Binding
	DocEnd       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding

	// Editing
	DeleteUnder  key.Binding
	DeleteBefore key.Binding
	Undo         key.Binding
	Redo         key.Binding
	Cut          key.Binding
	Paste        key.Binding

	// Search
	Search       key.Binding
	FindNext     key.Binding
	FindPrevious key.Binding
}

// DefaultNavigationKeyMap returns the vim-style navigation bindings. The
// two-key chords dd, gg and yy are resolved by a Sequencer, not here.
func DefaultNavigationKeyMap() NavigationKeyMap {
	return NavigationKeyMap{
		InsertBefore: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "insert"),
		),
		InsertAfter: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "append"),
		),
		InsertLineStart: key.NewBinding(
			key.WithKeys("I"),
			key.WithHelp("I", "insert at line start"),
		),
		InsertLineEnd: key.NewBinding(
			key.WithKeys("A"),
			key.WithHelp("A", "append at line end"),
		),
		OpenBelow: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "open line below"),
		),
		OpenAbove: key.NewBinding(
			key.WithKeys("O"),
			key.WithHelp("O", "open line above"),
		),

		Left: key.NewBinding(
			key.WithKeys("h", "left"),
			key.WithHelp("h/←", "move left"),
		),
		Right: key.NewBinding(
			key.WithKeys("l", "right"),
			key.WithHelp("l/→", "move right"),
		),
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/↑", "move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/↓", "move down"),
		),
		WordForward: key.NewBinding(
			key.WithKeys("w"),
			key.WithHelp("w", "next word"),
		),
		WordBackward: key.NewBinding(
			key.WithKeys("b"),
			key.WithHelp("b", "previous word"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("0", "home"),
			key.WithHelp("0", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("$", "end"),
			key.WithHelp("$", "line end"),
		),
		DocEnd: key.NewBinding(
			key.WithKeys("G"),
			key.WithHelp("G", "document end"),
		),
		PageUp: key.NewBinding(
			key.WithKeys("pgup", "ctrl+b"),
			key.WithHelp("ctrl+b", "page up"),
		),
		PageDown: key.NewBinding(
			key.WithKeys("pgdown", "ctrl+f"),
			key.WithHelp("ctrl+f", "page down"),
		),

		DeleteUnder: key.NewBinding(
			key.WithKeys("x", "delete"),
			key.WithHelp("x", "delete char"),
		),
		DeleteBefore: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "delete before"),
		),
		Undo: key.NewBinding(
			key.WithKeys("u", "ctrl+z"),
			key.WithHelp("u", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+r", "ctrl+y"),
			key.WithHelp("ctrl+r", "redo"),
		),
		Cut: key.NewBinding(
			key.WithKeys("ctrl+x"),
			key.WithHelp("ctrl+x", "cut line"),
		),
		Paste: key.NewBinding(
			key.WithKeys("p", "ctrl+v"),
			key.WithHelp("p", "paste"),
		),

		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		FindNext: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next match"),
		),
		FindPrevious: key.NewBinding(
			key.WithKeys("N"),
			key.WithHelp("N", "prev match"),
		),
	}
}

func (k NavigationKeyMap) table() []mapping {
	return []mapping{
		{k.InsertBefore, editor.KeyInsertBefore},
		{k.InsertAfter, editor.KeyInsertAfter},
		{k.InsertLineStart, editor.KeyInsertLineStart},
		{k.InsertLineEnd, editor.KeyInsertLineEnd},
		{k.OpenBelow, editor.KeyOpenBelow},
		{k.OpenAbove, editor.KeyOpenAbove},
		{k.Left, editor.KeyLeft},
		{k.Right, editor.KeyRight},
		{k.Up, editor.KeyUp},
		{k.Down, editor.KeyDown},
		{k.WordForward, editor.KeyWordForward},
		{k.WordBackward, editor.KeyWordBackward},
		{k.LineStart, editor.KeyLineStart},
		{k.LineEnd, editor.KeyLineEnd},
		{k.DocEnd, editor.KeyDocEnd},
		{k.PageUp, editor.KeyPageUp},
		{k.PageDown, editor.KeyPageDown},
		{k.DeleteUnder, editor.KeyDeleteUnder},
		{k.DeleteBefore, editor.KeyDeleteBefore},
		{k.Undo, editor.KeyUndo},
		{k.Redo, editor.KeyRedo},
		{k.Cut, editor.KeyCut},
		{k.Paste, editor.KeyPaste},
		{k.Search, editor.KeySearchForward},
		{k.FindNext, editor.KeyFindNext},
		{k.FindPrevious, editor.KeyFindPrevious},
	}
}

// ShortHelp returns keybindings for the short help view.
func (k NavigationKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.InsertBefore, k.Search, k.Undo}
}

// FullHelp returns keybindings for the full help view.
func (k NavigationKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.InsertBefore, k.InsertAfter, k.InsertLineStart, k.InsertLineEnd, k.OpenBelow, k.OpenAbove},
		{k.Left, k.Right, k.Up, k.Down, k.WordForward, k.WordBackward, k.LineStart, k.LineEnd, k.DocEnd, k.PageUp, k.PageDown},
		{k.DeleteUnder, k.DeleteBefore, k.Undo, k.Redo, k.Cut, k.Paste},
		{k.Search, k.FindNext, k.FindPrevious},
	}
}

// InsertKeyMap defines the insert mode bindings. Everything else that
// carries text is typed.
type InsertKeyMap struct {
	Leave     key.Binding
	Newline   key.Binding
	Backspace key.Binding
	Delete    key.Binding
	Tab       key.Binding
	Left      key.Binding
	Right     key.Binding
	Up        key.Binding
	Down      key.Binding
	PageUp    key.Binding
	PageDown  key.Binding
	LineStart key.Binding
	LineEnd   key.Binding
	Undo      key.Binding
	Redo      key.Binding
	Paste     key.Binding
}

// DefaultInsertKeyMap returns the insert mode bindings.
func DefaultInsertKeyMap() InsertKeyMap {
	return InsertKeyMap{
		Leave: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "navigate"),
		),
		Newline: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "new line"),
		),
		Backspace: key.NewBinding(
			key.WithKeys("backspace", "ctrl+h"),
			key.WithHelp("backspace", "delete before"),
		),
		Delete: key.NewBinding(
			key.WithKeys("delete"),
			key.WithHelp("del", "delete under"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "indent"),
		),
		LineStart: key.NewBinding(
			key.WithKeys("home"),
			key.WithHelp("home", "line start"),
		),
		LineEnd: key.NewBinding(
			key.WithKeys("end"),
			key.WithHelp("end", "line end"),
		),
		Undo: key.NewBinding(
			key.WithKeys("ctrl+z"),
			key.WithHelp("ctrl+z", "undo"),
		),
		Redo: key.NewBinding(
			key.WithKeys("ctrl+y"),
			key.WithHelp("ctrl+y", "redo"),
		),
		Paste: key.NewBinding(
			key.WithKeys("ctrl+v"),
			key.WithHelp("ctrl+v", "paste"),
		),
		Left:     key.NewBinding(key.WithKeys("left")),
		Right:    key.NewBinding(key.WithKeys("right")),
		Up:       key.NewBinding(key.WithKeys("up")),
		Down:     key.NewBinding(key.WithKeys("down")),
		PageUp:   key.NewBinding(key.WithKeys("pgup")),
		PageDown: key.NewBinding(key.WithKeys("pgdown")),
	}
}

func (k InsertKeyMap) table() []mapping {
	return []mapping{
		{k.Leave, editor.KeyLeaveInsert},
		{k.Newline, editor.KeyNewline},
		{k.Backspace, editor.KeyBackspace},
		{k.Delete, editor.KeyDelete},
		{k.Tab, editor.KeyTab},
		{k.Left, editor.KeyLeft},
		{k.Right, editor.KeyRight},
		{k.Up, editor.KeyUp},
		{k.Down, editor.KeyDown},
		{k.PageUp, editor.KeyPageUp},
		{k.PageDown, editor.KeyPageDown},
		{k.LineStart, editor.KeyLineStart},
		{k.LineEnd, editor.KeyLineEnd},
		{k.Undo, editor.KeyUndo},
		{k.Redo, editor.KeyRedo},
		{k.Paste, editor.KeyPaste},
	}
}

// ShortHelp returns keybindings for the short help view.
func (k InsertKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Leave}
}

// FullHelp returns keybindings for the full help view.
func (k InsertKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Leave, k.Newline, k.Backspace, k.Delete, k.Tab},
		{k.LineStart, k.LineEnd, k.Undo, k.Redo, k.Paste},
	}
}

// ShellKeyMap holds bindings handled by the terminal shell in either mode.
type ShellKeyMap struct {
	Save            key.Binding
	Quit            key.Binding
	ToggleCentering key.Binding
	ToggleDimming   key.Binding
	Command         key.Binding
	Help            key.Binding
	// ShowLog opens the debug log; it only does anything with --debug.
	ShowLog         key.Binding
}

// DefaultShellKeyMap returns the shell bindings. Command and Help are only
// honoured in navigation mode, where ":" and "?" are not typed.
func DefaultShellKeyMap() ShellKeyMap {
	return ShellKeyMap{
		Save: key.NewBinding(
			key.WithKeys("ctrl+s"),
			key.WithHelp("ctrl+s", "save"),
		),
		Quit: key.NewBinding(
			key.WithKeys("ctrl+q", "ctrl+c"),
			key.WithHelp("ctrl+q", "quit"),
		),
		ToggleCentering: key.NewBinding(
			key.WithKeys("ctrl+t"),
			key.WithHelp("ctrl+t", "typewriter"),
		),
		ToggleDimming: key.NewBinding(
			key.WithKeys("ctrl+g"),
			key.WithHelp("ctrl+g", "focus dimming"),
		),
		Command: key.NewBinding(
			key.WithKeys(":"),
			key.WithHelp(":", "command"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		ShowLog: key.NewBinding(
			key.WithKeys("ctrl+l"),
			key.WithHelp("ctrl+l", "debug log"),
		),
	}
}

// ShortHelp returns keybindings for the short help view.
func (k ShellKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Save, k.Quit, k.Help}
}

// FullHelp returns keybindings for the full help view.
func (k ShellKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{{k.Save, k.Quit, k.ToggleCentering, k.ToggleDimming, k.Command, k.ShowLog, k.Help}}
}

type mapping struct {
	binding key.Binding
	key     editor.Key
}

func lookup(table []mapping, msg tea.KeyMsg) (editor.Key, bool) {
	for _, m := range table {
		if key.Matches(msg, m.binding) {
			return m.key, true
		}
	}
	return editor.KeyNone, false
}

// Literal returns the text a key press would type, or "" when it types nothing.
func Literal(msg tea.KeyMsg) string {
	if msg.Alt {
		return ""
	}
	switch msg.Type {
	case tea.KeyRunes:
		return string(msg.Runes)
	case tea.KeySpace:
		return " "
	}
	return ""
}
