// Package edit is the terminal shell around an editing session.
package edit

import (
	"context"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/inkwell/internal/config"
	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/flags"
	"github.com/zjrosen/inkwell/internal/keys"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/tracing"
	"github.com/zjrosen/inkwell/internal/ui/help"
	"github.com/zjrosen/inkwell/internal/ui/logview"
)

// Options configures a Model.
type Options struct {
	// Path is the file being edited. It keys the stored cursor position
	// and is where the default persister writes.
	Path string
	// Text is the initial document.
	Text     string
	Settings config.EditorConfig
	// ConfigPath receives toggled editor settings. Empty keeps toggles
	// for this run only.
	ConfigPath string
	Flags      *flags.Registry
	// Positions remembers the cursor between runs. Nil disables resume.
	Positions PositionStore
	// Changes signals that Path changed on disk, typically from a
	// watcher.Watcher.
	Changes <-chan struct{}
	// Persister overrides the file persister for Path.
	Persister editor.Persister
	// Clipboard backs copy, cut and paste. Nil keeps them in-process.
	Clipboard     editor.Clipboard
	Tracer        trace.Tracer
	MarkdownStyle string
}

type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptCommand
)

type statusLevel int

const (
	statusInfo statusLevel = iota
	statusSuccess
	statusWarning
	statusError
)

// Model is the editor screen.
type Model struct {
	opts     Options
	session  *editor.Session
	resolver *keys.Resolver
	shell    keys.ShellKeyMap
	settings config.EditorConfig
	flags    *flags.Registry
	tracer   trace.Tracer
	disk     *diskState

	ctx    context.Context
	cancel context.CancelFunc
	events *pubsub.ContinuousListener[editor.SessionEvent]
	// logs is nil unless the debug log is enabled.
	logs *log.LogListener

	width  int
	height int

	prompt     textinput.Model
	promptKind promptKind

	status      string
	statusLevel statusLevel

	help     help.Model
	showHelp bool

	preview    viewport.Model
	previewing bool

	logView logview.Model

	quitting bool
}

// New opens a session for opts.Text.
func New(opts Options) Model {
	if opts.Flags == nil {
		opts.Flags = flags.New(nil)
	}
	if opts.Tracer == nil {
		opts.Tracer = noop.NewTracerProvider().Tracer(tracing.DefaultServiceName)
	}
	disk := &diskState{text: normalize(opts.Text)}

	sessionOpts := []editor.Option{editor.WithTracer(opts.Tracer)}
	persister := opts.Persister
	if persister == nil && opts.Path != "" {
		persister = document.NewFilePersister(opts.Path)
	}
	if persister != nil {
		sessionOpts = append(sessionOpts, editor.WithPersister(&trackingPersister{inner: persister, disk: disk}))
	}
	if opts.Clipboard != nil {
		sessionOpts = append(sessionOpts, editor.WithClipboard(opts.Clipboard))
	}
	session := editor.OpenSession(opts.Text, opts.Settings.ToEditor(), sessionOpts...)

	ctx, cancel := context.WithCancel(context.Background())
	prompt := textinput.New()
	prompt.Prompt = ""
	prompt.CharLimit = 512

	log.Debug(log.CatUI, "Editor opened", "path", opts.Path, "session", session.ID())
	return Model{
		opts:     opts,
		session:  session,
		resolver: keys.NewResolver(),
		shell:    keys.DefaultShellKeyMap(),
		settings: opts.Settings,
		flags:    opts.Flags,
		tracer:   opts.Tracer,
		disk:     disk,
		ctx:      ctx,
		cancel:   cancel,
		events:   pubsub.NewContinuousListener(ctx, session.Broker()),
		logs:     log.NewListener(ctx),
		prompt:   prompt,
		help:     help.New(),
		logView:  logview.New(),
	}
}

// Session returns the editing session behind the screen.
func (m Model) Session() *editor.Session { return m.session }

// Settings returns the editor settings including any toggles.
func (m Model) Settings() config.EditorConfig { return m.settings }

// Quitting reports whether the user has left the editor.
func (m Model) Quitting() bool { return m.quitting }

// Status returns the message shown on the status line.
func (m Model) Status() string { return m.status }

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.events.Listen(), m.waitTimer()}
	if m.opts.Changes != nil {
		cmds = append(cmds, waitChange(m.ctx, m.opts.Changes))
	}
	if m.resumeEnabled() {
		cmds = append(cmds, m.restorePosition())
	}
	if m.logs != nil {
		cmds = append(cmds, m.logs.Listen())
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help = m.help.SetSize(msg.Width, msg.Height)
		m.logView = m.logView.SetSize(msg.Width, msg.Height)
		m.preview.Width = msg.Width
		m.preview.Height = m.textHeight()
		m.prompt.Width = max(msg.Width-2, 1)
		return m, nil

	case timerMsg:
		if err := m.session.HandleTimer(m.ctx, msg.ev); err != nil {
			log.ErrorErr(log.CatUI, "Timer failed", err, "kind", msg.ev.Kind.String())
		}
		return m, m.waitTimer()

	case pubsub.Event[editor.SessionEvent]:
		m = m.handleSessionEvent(msg.Payload)
		return m, m.events.Listen()

	case log.LogEvent:
		// Must not log here, or each entry would produce another.
		m.logView = m.logView.Append(msg.Payload)
		if m.logs == nil {
			return m, nil
		}
		return m, m.logs.Listen()

	case fileChangedMsg:
		return m, tea.Batch(readDisk(m.opts.Path), waitChange(m.ctx, m.opts.Changes))

	case diskReadMsg:
		return m.handleDiskRead(msg), nil

	case positionMsg:
		return m.applyPosition(msg), nil

	case configSavedMsg:
		if msg.err != nil {
			log.ErrorErr(log.CatConfig, "Saving editor settings failed", msg.err)
			m = m.setStatus(statusError, "saving settings: "+msg.err.Error())
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case m.logView.Visible():
		if key.Matches(msg, m.shell.Quit) {
			return m.quit(false)
		}
		m.logView = m.logView.Update(msg)
		return m, nil
	case m.previewing:
		return m.handlePreviewKey(msg)
	case m.showHelp:
		if key.Matches(msg, m.shell.Quit) {
			return m.quit(false)
		}
		if msg.Type == tea.KeyEsc || key.Matches(msg, m.shell.Help) {
			m.showHelp = false
		}
		return m, nil
	case m.promptKind != promptNone:
		return m.handlePromptKey(msg)
	}

	switch {
	case key.Matches(msg, m.shell.Quit):
		return m.quit(false)
	case key.Matches(msg, m.shell.Save):
		return m.write(), nil
	case key.Matches(msg, m.shell.ToggleCentering):
		return m.setTypewriter(!m.settings.TypewriterEnabled)
	case key.Matches(msg, m.shell.ToggleDimming):
		return m.setDimming(!m.settings.FocusDimming)
	case key.Matches(msg, m.shell.ShowLog):
		if m.logs == nil {
			return m.setStatus(statusInfo, "debug log is off (run with --debug)"), nil
		}
		m.logView = m.logView.Toggle()
		return m, nil
	}

	mode := m.session.Mode()
	if mode == editor.ModeNavigation && m.resolver.Pending() == "" {
		switch {
		case key.Matches(msg, m.shell.Command):
			return m.openPrompt(promptCommand), nil
		case key.Matches(msg, m.shell.Help):
			m.showHelp = true
			return m, nil
		}
	}

	ev, ok := m.resolver.Resolve(mode, msg)
	if !ok {
		return m, nil
	}
	m.status = ""
	switch m.session.HandleKey(ev) {
	case editor.ActionSearchForward:
		m = m.openPrompt(promptSearch)
	case editor.ActionFindNext, editor.ActionFindPrevious:
		m = m.reportSearch()
	}
	return m, nil
}

func (m Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m.closePrompt(), nil
	case tea.KeyEnter:
		input, kind := m.prompt.Value(), m.promptKind
		m = m.closePrompt()
		if kind == promptSearch {
			return m.runSearch(input), nil
		}
		return m.runCommand(input)
	case tea.KeyBackspace:
		if m.prompt.Value() == "" {
			return m.closePrompt(), nil
		}
	}
	var cmd tea.Cmd
	m.prompt, cmd = m.prompt.Update(msg)
	return m, cmd
}

func (m Model) handlePreviewKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if key.Matches(msg, m.shell.Quit) {
		return m.quit(false)
	}
	if msg.Type == tea.KeyEsc || msg.String() == "q" {
		m.previewing = false
		return m, nil
	}
	var cmd tea.Cmd
	m.preview, cmd = m.preview.Update(msg)
	return m, cmd
}

func (m Model) openPrompt(k promptKind) Model {
	m.promptKind = k
	m.prompt.Reset()
	m.prompt.Focus()
	m.status = ""
	return m
}

func (m Model) closePrompt() Model {
	m.promptKind = promptNone
	m.prompt.Blur()
	m.prompt.Reset()
	return m
}

func (m Model) setStatus(level statusLevel, msg string) Model {
	m.status = msg
	m.statusLevel = level
	return m
}

// textHeight is the number of rows above the status line.
func (m Model) textHeight() int {
	return max(m.height-1, 1)
}

func (m Model) resumeEnabled() bool {
	return m.opts.Positions != nil && m.opts.Path != "" && m.flags.Enabled(flags.FlagCursorResume)
}
