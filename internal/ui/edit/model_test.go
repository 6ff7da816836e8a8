package edit

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/exp/teatest"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/flags"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/ui/markdown"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

type recordingPersister struct {
	mu     sync.Mutex
	writes []string
	err    error
}

func (p *recordingPersister) Persist(_ context.Context, text string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.writes = append(p.writes, text)
	return nil
}

func (p *recordingPersister) Writes() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]string(nil), p.writes...)
}

type fakePositions struct {
	mu    sync.Mutex
	found sqlite.Position
	err   error
	saved []sqlite.Position
}

func (f *fakePositions) Find(_ context.Context, path string) (sqlite.Position, error) {
	if f.err != nil {
		return sqlite.Position{}, f.err
	}
	p := f.found
	p.Path = path
	return p, nil
}

func (f *fakePositions) Save(_ context.Context, p sqlite.Position) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saved = append(f.saved, p)
	return nil
}

func newModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.Settings == (config.EditorConfig{}) {
		opts.Settings = config.DefaultEditor()
	}
	if opts.MarkdownStyle == "" {
		opts.MarkdownStyle = markdown.StylePlain
	}
	m := New(opts)
	t.Cleanup(func() {
		m.session.Close()
		m.cancel()
	})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 80, Height: 24})
	return next.(Model)
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// press sends each rune of s as its own key.
func press(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m, _ = update(t, m, keyRunes(string(r)))
	}
	return m
}

func pressType(t *testing.T, m Model, kt tea.KeyType) (Model, tea.Cmd) {
	t.Helper()
	return update(t, m, tea.KeyMsg{Type: kt})
}

// command types ":input" and enter.
func command(t *testing.T, m Model, input string) (Model, tea.Cmd) {
	t.Helper()
	m = press(t, m, ":")
	require.Equal(t, promptCommand, m.promptKind)
	m = press(t, m, input)
	return pressType(t, m, tea.KeyEnter)
}

func insertText(t *testing.T, m Model, s string) Model {
	t.Helper()
	m = press(t, m, "i")
	require.Equal(t, editor.ModeInsert, m.Session().Mode())
	m = press(t, m, s)
	m, _ = pressType(t, m, tea.KeyEsc)
	require.Equal(t, editor.ModeNavigation, m.Session().Mode())
	return m
}

func TestModel_InsertAndWrite(t *testing.T) {
	p := &recordingPersister{}
	m := newModel(t, Options{Path: "notes.md", Persister: p})

	m = insertText(t, m, "hello")
	require.True(t, m.Session().Modified())

	m, _ = command(t, m, "w")
	require.Equal(t, []string{"hello"}, p.Writes())
	require.False(t, m.Session().Modified())

	m, _ = update(t, m, pubsub.Event[editor.SessionEvent]{Payload: editor.SessionEvent{Kind: editor.EventSaved}})
	require.Equal(t, `"notes.md" written`, m.Status())
}

func TestModel_CtrlSWrites(t *testing.T) {
	p := &recordingPersister{}
	m := newModel(t, Options{Path: "notes.md", Text: "draft", Persister: p})

	m, _ = pressType(t, m, tea.KeyCtrlS)

	require.Equal(t, []string{"draft"}, p.Writes())
	require.Empty(t, m.Status())
}

func TestModel_WriteWithoutFile(t *testing.T) {
	m := newModel(t, Options{Text: "draft"})

	m, _ = command(t, m, "w")

	require.Equal(t, "no file name", m.Status())
}

func TestModel_WriteFailure(t *testing.T) {
	p := &recordingPersister{err: errors.New("disk full")}
	m := newModel(t, Options{Path: "notes.md", Persister: p})
	m = insertText(t, m, "x")

	m, _ = command(t, m, "w")
	require.Contains(t, m.Status(), "disk full")
	require.True(t, m.Session().Modified())

	m, _ = update(t, m, pubsub.Event[editor.SessionEvent]{Payload: editor.SessionEvent{Kind: editor.EventSaveFailed, Err: p.err}})
	require.Equal(t, "save failed: disk full", m.Status())
}

func TestModel_QuitRefusesUnsavedChanges(t *testing.T) {
	m := newModel(t, Options{Path: "notes.md", Persister: &recordingPersister{}})
	m = insertText(t, m, "x")

	m, cmd := command(t, m, "q")
	require.Nil(t, cmd)
	require.False(t, m.Quitting())
	require.Contains(t, m.Status(), "unsaved changes")

	m, cmd = pressType(t, m, tea.KeyCtrlQ)
	require.Nil(t, cmd)
	require.False(t, m.Quitting())

	m, cmd = command(t, m, "q!")
	require.NotNil(t, cmd)
	require.True(t, m.Quitting())
	require.True(t, m.Session().Closed())
	require.Empty(t, m.View())
}

func TestModel_WriteQuit(t *testing.T) {
	p := &recordingPersister{}
	m := newModel(t, Options{Path: "notes.md", Persister: p})
	m = insertText(t, m, "done")

	m, cmd := command(t, m, "wq")

	require.NotNil(t, cmd)
	require.True(t, m.Quitting())
	require.Equal(t, []string{"done"}, p.Writes())
}

func TestModel_WriteQuitStaysOnFailure(t *testing.T) {
	p := &recordingPersister{err: errors.New("read-only")}
	m := newModel(t, Options{Path: "notes.md", Persister: p})
	m = insertText(t, m, "x")

	m, _ = command(t, m, "x")

	require.False(t, m.Quitting())
	require.Contains(t, m.Status(), "read-only")
}

func TestModel_UnknownCommand(t *testing.T) {
	m := newModel(t, Options{})

	m, _ = command(t, m, "frobnicate")

	require.Equal(t, "not an editor command: frobnicate", m.Status())
}

func TestModel_PromptCancel(t *testing.T) {
	m := newModel(t, Options{Text: "abc"})

	m = press(t, m, ":wq")
	m, _ = pressType(t, m, tea.KeyEsc)
	require.Equal(t, promptNone, m.promptKind)
	require.False(t, m.Quitting())

	m = press(t, m, "/")
	require.Equal(t, promptSearch, m.promptKind)
	m, _ = pressType(t, m, tea.KeyBackspace)
	require.Equal(t, promptNone, m.promptKind)
}

func TestModel_Search(t *testing.T) {
	m := newModel(t, Options{Text: "a cat and a cat"})

	m = press(t, m, "/")
	require.Equal(t, promptSearch, m.promptKind)
	m = press(t, m, "cat")
	m, _ = pressType(t, m, tea.KeyEnter)

	require.Equal(t, promptNone, m.promptKind)
	require.Equal(t, "/cat  1/2", m.Status())
	require.Equal(t, editor.Cursor{Line: 0, Col: 2}, m.Session().Cursor())
	require.Len(t, m.Session().Matches(), 2)

	m = press(t, m, "n")
	require.Equal(t, "/cat  2/2", m.Status())
	require.Equal(t, editor.Cursor{Line: 0, Col: 12}, m.Session().Cursor())

	m = press(t, m, "N")
	require.Equal(t, "/cat  1/2", m.Status())
}

func TestModel_SearchSmartCase(t *testing.T) {
	m := newModel(t, Options{Text: "Cat cat"})

	m = press(t, m, "/cat")
	m, _ = pressType(t, m, tea.KeyEnter)
	require.Len(t, m.Session().Matches(), 2)

	m = press(t, m, "/Cat")
	m, _ = pressType(t, m, tea.KeyEnter)
	require.Len(t, m.Session().Matches(), 1)
}

func TestModel_SearchNotFound(t *testing.T) {
	m := newModel(t, Options{Text: "abc"})

	m = press(t, m, "/zzz")
	m, _ = pressType(t, m, tea.KeyEnter)
	require.Equal(t, "pattern not found: zzz", m.Status())

	m, _ = command(t, m, "noh")
	m = press(t, m, "n")
	require.Equal(t, "no previous search", m.Status())
}

func TestModel_SubstituteAll(t *testing.T) {
	m := newModel(t, Options{Text: "cat cat\ncat"})

	m, _ = command(t, m, "%s/cat/dog/")

	require.Equal(t, "dog dog\ndog", m.Session().Text())
	require.Equal(t, "3 substitutions", m.Status())
	require.Nil(t, m.Session().SearchState())
}

func TestModel_SubstituteNext(t *testing.T) {
	m := newModel(t, Options{Text: "cat cat\ncat"})

	m, _ = command(t, m, "s/cat/dog/")

	require.Equal(t, "dog cat\ncat", m.Session().Text())
	require.Equal(t, "1 substitution", m.Status())
}

func TestModel_SubstituteNoMatch(t *testing.T) {
	m := newModel(t, Options{Text: "cat"})

	m, _ = command(t, m, "%s/Dog/x/")

	require.Equal(t, "cat", m.Session().Text())
	require.Equal(t, "pattern not found: Dog", m.Status())
}

func TestModel_TogglesPersistSettings(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	m := newModel(t, Options{ConfigPath: path})

	m, cmd := command(t, m, "typewriter on")
	require.True(t, m.Settings().TypewriterEnabled)
	require.True(t, m.Session().Config().TypewriterEnabled)
	require.Equal(t, "typewriter on", m.Status())
	require.NotNil(t, cmd)

	msg := cmd()
	require.Equal(t, configSavedMsg{}, msg)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "typewriter_enabled: true")

	m, cmd = pressType(t, m, tea.KeyCtrlG)
	require.True(t, m.Settings().FocusDimming)
	require.Equal(t, "focus dimming on", m.Status())
	cmd()

	data, err = os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "focus_dimming: true")
}

func TestModel_ToggleWithoutConfigPath(t *testing.T) {
	m := newModel(t, Options{})

	m, cmd := pressType(t, m, tea.KeyCtrlT)

	require.Nil(t, cmd)
	require.True(t, m.Settings().TypewriterEnabled)
}

func TestModel_ConfigSaveError(t *testing.T) {
	m := newModel(t, Options{})

	m, _ = update(t, m, configSavedMsg{err: errors.New("permission denied")})

	require.Equal(t, "saving settings: permission denied", m.Status())
}

func TestModel_DiskChangeReloadsCleanBuffer(t *testing.T) {
	m := newModel(t, Options{Path: "notes.md", Text: "old", Persister: &recordingPersister{}})

	m, _ = update(t, m, diskReadMsg{text: "new"})

	require.Equal(t, "new", m.Session().Text())
	require.False(t, m.Session().Modified())
}

func TestModel_DiskChangeWarnsWhenModified(t *testing.T) {
	m := newModel(t, Options{Path: "notes.md", Text: "old", Persister: &recordingPersister{}})
	m = insertText(t, m, "x")

	m, _ = update(t, m, diskReadMsg{text: "other\nlines"})

	require.Equal(t, "xold", m.Session().Text())
	require.True(t, strings.HasPrefix(m.Status(), "file changed on disk: "), m.Status())
}

func TestModel_DiskChangeWarnsWhenReloadDisabled(t *testing.T) {
	m := newModel(t, Options{
		Path:      "notes.md",
		Text:      "old",
		Persister: &recordingPersister{},
		Flags:     flags.New(map[string]bool{flags.FlagExternalReload: false}),
	})

	m, _ = update(t, m, diskReadMsg{text: "new"})

	require.Equal(t, "old", m.Session().Text())
	require.Contains(t, m.Status(), "file changed on disk")
}

func TestModel_DiskChangeIgnoresOwnWrite(t *testing.T) {
	m := newModel(t, Options{Path: "notes.md", Persister: &recordingPersister{}})
	m = insertText(t, m, "mine")
	m, _ = command(t, m, "w")
	m = insertText(t, m, "more")

	m, _ = update(t, m, diskReadMsg{text: "mine"})

	require.Empty(t, m.Status())
	require.Equal(t, "minmoree", m.Session().Text())
}

func TestModel_DiskFileRemoved(t *testing.T) {
	m := newModel(t, Options{Path: "notes.md", Text: "old"})

	m, _ = update(t, m, diskReadMsg{err: os.ErrNotExist})

	require.Equal(t, "file removed from disk", m.Status())
	require.Equal(t, "old", m.Session().Text())
}

func TestReadDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.md")
	require.NoError(t, os.WriteFile(path, []byte("on disk\n"), 0o644))

	msg := readDisk(path)().(diskReadMsg)

	require.NoError(t, msg.err)
	require.Equal(t, "on disk\n", msg.text)
}

func TestWaitChange(t *testing.T) {
	ch := make(chan struct{}, 1)
	ch <- struct{}{}
	require.Equal(t, fileChangedMsg{}, waitChange(context.Background(), ch)())

	close(ch)
	require.Nil(t, waitChange(context.Background(), ch)())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	require.Nil(t, waitChange(ctx, make(chan struct{}))())
}

func TestModel_FileChangedReadsDisk(t *testing.T) {
	m := newModel(t, Options{Path: "notes.md", Changes: make(chan struct{})})

	_, cmd := update(t, m, fileChangedMsg{})

	require.NotNil(t, cmd)
}

func TestModel_RestoresPosition(t *testing.T) {
	store := &fakePositions{found: sqlite.Position{Cursor: editor.Cursor{Line: 2, Col: 1}, ScrollPx: 1}}
	m := newModel(t, Options{Path: "notes.md", Text: "a\nb\ncd", Positions: store})

	msg := m.restorePosition()()
	require.IsType(t, positionMsg{}, msg)
	m, _ = update(t, m, msg)

	require.Equal(t, editor.Cursor{Line: 2, Col: 1}, m.Session().Cursor())
}

func TestModel_RestorePositionSkipsAfterMovement(t *testing.T) {
	store := &fakePositions{found: sqlite.Position{Cursor: editor.Cursor{Line: 2}}}
	m := newModel(t, Options{Path: "notes.md", Text: "a\nb\nc", Positions: store})
	m = press(t, m, "j")

	m, _ = update(t, m, m.restorePosition()())

	require.Equal(t, editor.Cursor{Line: 1}, m.Session().Cursor())
}

func TestModel_RestorePositionNotFound(t *testing.T) {
	store := &fakePositions{err: sqlite.ErrPositionNotFound}
	m := newModel(t, Options{Path: "notes.md", Positions: store})

	require.Nil(t, m.restorePosition()())
}

func TestModel_StorePosition(t *testing.T) {
	store := &fakePositions{}
	m := newModel(t, Options{Path: "notes.md", Text: "a\nbc", Positions: store})
	m = press(t, m, "jl")

	cmd := m.storePosition()
	require.NotNil(t, cmd)
	cmd()

	require.Len(t, store.saved, 1)
	assert.Equal(t, "notes.md", store.saved[0].Path)
	assert.Equal(t, editor.Cursor{Line: 1, Col: 1}, store.saved[0].Cursor)
}

func TestModel_StorePositionDisabled(t *testing.T) {
	store := &fakePositions{}
	m := newModel(t, Options{
		Path:      "notes.md",
		Positions: store,
		Flags:     flags.New(map[string]bool{flags.FlagCursorResume: false}),
	})

	require.Nil(t, m.storePosition())
}

func TestModel_HelpOverlay(t *testing.T) {
	m := newModel(t, Options{Text: "hello"})

	m = press(t, m, "?")
	require.Contains(t, m.View(), "Keybindings")

	m = press(t, m, "j")
	require.Equal(t, editor.Cursor{}, m.Session().Cursor())

	m, _ = pressType(t, m, tea.KeyEsc)
	require.NotContains(t, m.View(), "Keybindings")
}

func TestModel_Preview(t *testing.T) {
	m := newModel(t, Options{Path: "notes.md", Text: "# Title\n\nSome *prose*."})

	m, _ = command(t, m, "preview")
	require.True(t, m.previewing)
	view := m.View()
	require.Contains(t, view, "Title")
	require.Contains(t, view, "prose")

	m = press(t, m, "q")
	require.False(t, m.previewing)
	require.False(t, m.Quitting())
}

func TestModel_View(t *testing.T) {
	m := newModel(t, Options{Path: "/tmp/notes.md", Text: "two words"})

	view := m.View()
	lines := strings.Split(view, "\n")

	require.Len(t, lines, 24)
	require.Equal(t, "two words", lines[0])
	status := lines[23]
	assert.Contains(t, status, "NAVIGATION")
	assert.Contains(t, status, "notes.md")
	assert.Contains(t, status, "Ln 1, Col 1")
	assert.Contains(t, status, "2 words")
	assert.Equal(t, 80, lipgloss.Width(status))

	m = insertText(t, m, "x")
	assert.Contains(t, m.View(), "notes.md [+]")

	m = press(t, m, ":")
	lines = strings.Split(m.View(), "\n")
	assert.True(t, strings.HasPrefix(lines[23], ":"), lines[23])
}

func TestModel_PendingChordShown(t *testing.T) {
	m := newModel(t, Options{Text: "a\nb"})

	m = press(t, m, "d")

	lines := strings.Split(m.View(), "\n")
	assert.Contains(t, lines[23], " d ")
}

func TestModel_CopyCutPaste(t *testing.T) {
	clip := editor.NewRegister()
	m := newModel(t, Options{Text: "first\nsecond", Clipboard: clip})

	m = press(t, m, "yyp")
	require.Equal(t, "first\nfirst\nsecond", m.Session().Text())
	got, err := clip.ReadAll()
	require.NoError(t, err)
	require.Equal(t, "first\n", got)

	m, _ = pressType(t, m, tea.KeyCtrlX)
	require.Equal(t, "first\nsecond", m.Session().Text())

	m, _ = pressType(t, m, tea.KeyCtrlZ)
	require.Equal(t, "first\nfirst\nsecond", m.Session().Text())
}

func TestModel_AutoSave(t *testing.T) {
	p := &recordingPersister{}
	settings := config.DefaultEditor()
	settings.AutoSaveIntervalMs = 10
	m := newModel(t, Options{Path: "notes.md", Persister: p, Settings: settings})
	m = insertText(t, m, "auto")

	deadline := time.After(2 * time.Second)
	for len(p.Writes()) == 0 {
		select {
		case ev := <-m.Session().Timers():
			m, _ = update(t, m, timerMsg{ev: ev})
		case <-deadline:
			t.Fatal("auto-save did not fire")
		}
	}
	require.Equal(t, []string{"auto"}, p.Writes())
	require.False(t, m.Session().Modified())
}

func TestModel_Program(t *testing.T) {
	p := &recordingPersister{}
	m := New(Options{Path: "notes.md", Persister: p, Settings: config.DefaultEditor(), MarkdownStyle: markdown.StylePlain})

	tm := teatest.NewTestModel(t, m, teatest.WithInitialTermSize(80, 24))
	tm.Send(keyRunes("i"))
	tm.Send(keyRunes("h"))
	tm.Send(keyRunes("i"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEsc})
	tm.Send(keyRunes(":"))
	tm.Send(keyRunes("w"))
	tm.Send(keyRunes("q"))
	tm.Send(tea.KeyMsg{Type: tea.KeyEnter})

	final := tm.FinalModel(t, teatest.WithFinalTimeout(3*time.Second)).(Model)
	require.True(t, final.Quitting())
	require.Equal(t, "hi", final.Session().Text())
	require.Equal(t, []string{"hi"}, p.Writes())
}

func TestModel_LogViewNeedsDebug(t *testing.T) {
	m := newModel(t, Options{})

	m, _ = pressType(t, m, tea.KeyCtrlL)

	require.False(t, m.logView.Visible())
	require.Equal(t, "debug log is off (run with --debug)", m.Status())
}

func TestModel_LogEntriesCollected(t *testing.T) {
	m := newModel(t, Options{Text: "hello"})

	m, cmd := update(t, m, log.LogEvent{Payload: "t [WARN] [ui] careful\n"})
	require.Nil(t, cmd)
	require.Equal(t, 1, m.logView.Len())

	m.logView = m.logView.Toggle()
	require.Contains(t, m.View(), "careful")

	m = press(t, m, "q")
	require.False(t, m.logView.Visible())
	require.False(t, m.Quitting())
}
