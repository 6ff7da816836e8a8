package edit

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/ui/markdown"
)

// runSearch searches for query. An empty query repeats the last search.
// The search is case-sensitive only when query has an upper-case letter.
func (m Model) runSearch(query string) Model {
	if query == "" {
		if m.session.SearchState() == nil {
			return m
		}
		m.session.FindNext()
		return m.reportSearch()
	}
	opts := editor.SearchOptions{CaseSensitive: strings.IndexFunc(query, unicode.IsUpper) >= 0}
	if m.session.Search(query, opts) == 0 {
		return m.setStatus(statusWarning, "pattern not found: "+query)
	}
	m.session.FindNext()
	return m.reportSearch()
}

func (m Model) reportSearch() Model {
	st := m.session.SearchState()
	switch {
	case st == nil:
		return m.setStatus(statusWarning, "no previous search")
	case len(st.Matches) == 0:
		return m.setStatus(statusWarning, "pattern not found: "+st.Query)
	}
	return m.setStatus(statusInfo, fmt.Sprintf("/%s  %s", st.Query, st.Summary()))
}

func (m Model) runCommand(input string) (tea.Model, tea.Cmd) {
	cmd, err := ParseCommand(input)
	if errors.Is(err, errEmptyCommand) {
		return m, nil
	}
	if err != nil {
		return m.setStatus(statusError, err.Error()), nil
	}
	log.Debug(log.CatUI, "Command", "input", input)

	switch cmd.Kind {
	case CmdWrite:
		return m.write(), nil
	case CmdQuit:
		return m.quit(false)
	case CmdForceQuit:
		return m.quit(true)
	case CmdWriteQuit:
		if err := m.session.Save(m.ctx); err != nil {
			return m.saveError(err), nil
		}
		return m.quit(true)
	case CmdSubstitute:
		return m.substitute(cmd), nil
	case CmdTypewriter:
		return m.setTypewriter(cmd.Toggle.apply(m.settings.TypewriterEnabled))
	case CmdDim:
		return m.setDimming(cmd.Toggle.apply(m.settings.FocusDimming))
	case CmdNoHighlight:
		m.session.ClearSearch()
		return m, nil
	case CmdPreview:
		return m.openPreview(), nil
	}
	return m, nil
}

func (t Toggle) apply(current bool) bool {
	switch t {
	case ToggleOn:
		return true
	case ToggleOff:
		return false
	}
	return !current
}

// write saves the document. The status line is updated from the session
// event, which auto-save shares.
func (m Model) write() Model {
	if err := m.session.Save(m.ctx); err != nil {
		return m.saveError(err)
	}
	return m
}

func (m Model) saveError(err error) Model {
	if errors.Is(err, editor.ErrNoPersister) {
		return m.setStatus(statusError, "no file name")
	}
	return m.setStatus(statusError, err.Error())
}

// quit leaves the editor. Without force it refuses while there are
// unsaved edits.
func (m Model) quit(force bool) (tea.Model, tea.Cmd) {
	if !force && m.session.Modified() {
		return m.setStatus(statusError, "unsaved changes (:w to write, :q! to discard)"), nil
	}
	store := m.storePosition()
	m.quitting = true
	m.session.Close()
	m.cancel()
	log.Debug(log.CatUI, "Editor closed", "path", m.opts.Path)
	return m, tea.Sequence(store, tea.Quit)
}

func (m Model) substitute(cmd Command) Model {
	if m.session.Search(cmd.Pattern, cmd.Options) == 0 {
		m.session.ClearSearch()
		return m.setStatus(statusWarning, "pattern not found: "+cmd.Pattern)
	}
	if cmd.All {
		n := m.session.ReplaceAll(cmd.Replacement)
		m.session.ClearSearch()
		return m.setStatus(statusInfo, plural(n, "substitution"))
	}
	m.session.FindNext()
	if !m.session.ReplaceOne(cmd.Replacement) {
		return m.setStatus(statusWarning, "pattern not found: "+cmd.Pattern)
	}
	return m.setStatus(statusInfo, plural(1, "substitution"))
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}

func (m Model) setTypewriter(on bool) (tea.Model, tea.Cmd) {
	m.settings.TypewriterEnabled = on
	m.session.SetCentering(on)
	m = m.setStatus(statusInfo, "typewriter "+onOff(on))
	return m, m.persistSettings()
}

func (m Model) setDimming(on bool) (tea.Model, tea.Cmd) {
	m.settings.FocusDimming = on
	m.session.SetDimming(on)
	m = m.setStatus(statusInfo, "focus dimming "+onOff(on))
	return m, m.persistSettings()
}

func onOff(on bool) string {
	if on {
		return "on"
	}
	return "off"
}

// persistSettings writes the editor section back to the config file.
func (m Model) persistSettings() tea.Cmd {
	if m.opts.ConfigPath == "" {
		return nil
	}
	path, settings := m.opts.ConfigPath, m.settings
	return func() tea.Msg {
		return configSavedMsg{err: config.SaveEditor(path, settings)}
	}
}

func (m Model) openPreview() Model {
	r, err := markdown.New(max(m.width, 20), m.opts.MarkdownStyle)
	if err != nil {
		return m.setStatus(statusError, err.Error())
	}
	out, err := r.Render(m.session.Text())
	if err != nil {
		return m.setStatus(statusError, err.Error())
	}
	m.preview = viewport.New(m.width, m.textHeight())
	m.preview.SetContent(out)
	m.previewing = true
	return m
}

func (m Model) handleSessionEvent(ev editor.SessionEvent) Model {
	switch ev.Kind {
	case editor.EventSaved:
		return m.setStatus(statusSuccess, fmt.Sprintf("%q written", filepath.Base(m.opts.Path)))
	case editor.EventSaveFailed:
		return m.setStatus(statusError, fmt.Sprintf("save failed: %v", ev.Err))
	case editor.EventReloaded:
		return m.setStatus(statusInfo, "reloaded from disk")
	}
	return m
}
