package edit

import (
	"context"
	"errors"
	"io/fs"

	tea "github.com/charmbracelet/bubbletea"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/inkwell/internal/document"
	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/flags"
	"github.com/zjrosen/inkwell/internal/infrastructure/sqlite"
	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/tracing"
)

// PositionStore remembers where the cursor was when a file was closed.
// *sqlite.PositionRepository implements it.
type PositionStore interface {
	Find(ctx context.Context, path string) (sqlite.Position, error)
	Save(ctx context.Context, p sqlite.Position) error
}

type (
	timerMsg       struct{ ev editor.TimerEvent }
	fileChangedMsg struct{}
	diskReadMsg    struct {
		text string
		err  error
	}
	positionMsg    struct{ pos sqlite.Position }
	configSavedMsg struct{ err error }
)

// diskState is the text last known to be on disk, so the watcher can tell
// the editor's own writes from someone else's.
type diskState struct {
	text string
}

// trackingPersister records what it wrote in a diskState.
type trackingPersister struct {
	inner editor.Persister
	disk  *diskState
}

func (p *trackingPersister) Persist(ctx context.Context, text string) error {
	if err := p.inner.Persist(ctx, text); err != nil {
		return err
	}
	p.disk.text = text
	return nil
}

func normalize(text string) string {
	return editor.NewBuffer(text).Text()
}

func (m Model) waitTimer() tea.Cmd {
	ctx, ch := m.ctx, m.session.Timers()
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case ev := <-ch:
			return timerMsg{ev: ev}
		}
	}
}

func waitChange(ctx context.Context, ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		select {
		case <-ctx.Done():
			return nil
		case _, ok := <-ch:
			if !ok {
				return nil
			}
			return fileChangedMsg{}
		}
	}
}

func readDisk(path string) tea.Cmd {
	return func() tea.Msg {
		text, err := document.Load(path)
		return diskReadMsg{text: text, err: err}
	}
}

// handleDiskRead reconciles the buffer with a changed file. The editor's
// own writes are ignored. An unmodified buffer is reloaded; otherwise the
// user is warned with a summary of what differs.
func (m Model) handleDiskRead(msg diskReadMsg) Model {
	if msg.err != nil {
		if errors.Is(msg.err, fs.ErrNotExist) {
			return m.setStatus(statusWarning, "file removed from disk")
		}
		log.ErrorErr(log.CatWatcher, "Reading changed file failed", msg.err, "path", m.opts.Path)
		return m.setStatus(statusError, msg.err.Error())
	}

	onDisk := normalize(msg.text)
	if onDisk == m.disk.text || onDisk == m.session.Text() {
		m.disk.text = onDisk
		return m
	}
	if !m.session.Modified() && m.flags.Enabled(flags.FlagExternalReload) {
		log.Info(log.CatWatcher, "Reloading changed file", "path", m.opts.Path)
		m.session.Reload(onDisk)
		m.disk.text = onDisk
		return m
	}
	change := document.DiffSummary(m.session.Text(), onDisk)
	log.Warn(log.CatWatcher, "File changed on disk", "path", m.opts.Path, "change", change.String())
	return m.setStatus(statusWarning, "file changed on disk: "+change.String())
}

func (m Model) restorePosition() tea.Cmd {
	store, path, tracer := m.opts.Positions, m.opts.Path, m.tracer
	return func() tea.Msg {
		ctx, span := tracer.Start(context.Background(), tracing.SpanPositionRestore,
			trace.WithAttributes(attribute.String(tracing.AttrDocumentPath, path)))
		defer span.End()

		pos, err := store.Find(ctx, path)
		if errors.Is(err, sqlite.ErrPositionNotFound) {
			return nil
		}
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "find failed")
			log.ErrorErr(log.CatStore, "Restoring cursor failed", err, "path", path)
			return nil
		}
		return positionMsg{pos: pos}
	}
}

// applyPosition moves to the stored position unless the user got there first.
func (m Model) applyPosition(msg positionMsg) Model {
	if m.session.Closed() || m.session.Modified() || m.session.Cursor() != (editor.Cursor{}) {
		return m
	}
	m.session.SetCursor(msg.pos.Cursor)
	m.session.SetScrollOffset(msg.pos.ScrollPx)
	log.Debug(log.CatStore, "Cursor restored", "path", m.opts.Path, "line", m.session.Cursor().Line)
	return m
}

// storePosition returns a command that saves the cursor, or nil when
// resume is off.
func (m Model) storePosition() tea.Cmd {
	if !m.resumeEnabled() {
		return nil
	}
	store, tracer := m.opts.Positions, m.tracer
	pos := sqlite.Position{
		Path:     m.opts.Path,
		Cursor:   m.session.Cursor(),
		ScrollPx: m.session.ScrollOffset(),
	}
	return func() tea.Msg {
		ctx, span := tracer.Start(context.Background(), tracing.SpanPositionStore,
			trace.WithAttributes(attribute.String(tracing.AttrDocumentPath, pos.Path)))
		defer span.End()

		if err := store.Save(ctx, pos); err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "save failed")
			log.ErrorErr(log.CatStore, "Storing cursor failed", err, "path", pos.Path)
		}
		return nil
	}
}
