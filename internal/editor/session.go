package editor

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/tracing"
)

var (
	// ErrSessionClosed is returned by operations on a closed session.
	ErrSessionClosed = errors.New("session closed")
	// ErrNoPersister is returned by Save when the session has nowhere to write.
	ErrNoPersister = errors.New("session has no persister")
)

// Session is one open document with its cursor, mode, history and search.
// A session is driven from a single goroutine; only its timers run
// elsewhere and they never touch the document.
type Session struct {
	id  string
	cfg Config

	buf          *Buffer
	cursor       Cursor
	preferredCol int
	selection    *Selection
	mode         Mode
	insertStart  bool

	history   *History
	search    *SearchState
	searcher  *Searcher
	clipboard Clipboard

	persister  Persister
	tracer     trace.Tracer
	broker     *pubsub.Broker[SessionEvent]
	ownsBroker bool

	timers   chan TimerEvent
	autoSave *debouncer
	recenter *debouncer

	scrollPx  int
	hold      bool
	pageLines int
	modified  bool
	closed    bool
}

// Option configures a Session.
type Option func(*Session)

// WithPersister sets where Save and auto-save write the text.
func WithPersister(p Persister) Option {
	return func(s *Session) { s.persister = p }
}

// WithTracer sets the tracer used for save and replace spans.
func WithTracer(t trace.Tracer) Option {
	return func(s *Session) { s.tracer = t }
}

// WithSearcher shares a Searcher, and its pattern cache, between sessions.
func WithSearcher(sr *Searcher) Option {
	return func(s *Session) { s.searcher = sr }
}

// WithBroker publishes session events on an external broker. The session
// does not close a broker it does not own.
func WithBroker(b *pubsub.Broker[SessionEvent]) Option {
	return func(s *Session) { s.broker = b }
}

// WithID overrides the generated session ID.
func WithID(id string) Option {
	return func(s *Session) { s.id = id }
}

// OpenSession seeds a session from text.
func OpenSession(text string, cfg Config, opts ...Option) *Session {
	cfg = cfg.normalized()
	s := &Session{
		id:        uuid.NewString(),
		cfg:       cfg,
		buf:       NewBuffer(text),
		history:   NewHistory(cfg.Undo),
		pageLines: defaultPageLines,
		timers:    make(chan TimerEvent, 2),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.searcher == nil {
		s.searcher = NewCachedSearcher()
	}
	if s.clipboard == nil {
		s.clipboard = NewRegister()
	}
	if s.tracer == nil {
		s.tracer = noop.NewTracerProvider().Tracer(tracing.DefaultServiceName)
	}
	if s.broker == nil {
		s.broker = pubsub.NewBroker[SessionEvent]()
		s.ownsBroker = true
	}
	s.autoSave = newDebouncer(TimerAutoSave, s.id, cfg.AutoSaveInterval, s.timers)
	s.recenter = newDebouncer(TimerRecenter, s.id, cfg.RecenterDelay, s.timers)

	log.Debug(log.CatSession, "Session opened", "id", s.id, "lines", s.buf.LineCount())
	s.publish(pubsub.OpenedEvent, EventOpened, nil)
	return s
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Config returns the session options.
func (s *Session) Config() Config { return s.cfg }

// Text joins the document lines with LF.
func (s *Session) Text() string { return s.buf.Text() }

// Lines returns a copy of the document lines.
func (s *Session) Lines() []string { return s.buf.Lines() }

// LineCount returns the number of lines.
func (s *Session) LineCount() int { return s.buf.LineCount() }

// LineAt returns line i.
func (s *Session) LineAt(i int) string { return s.buf.LineAt(i) }

// Cursor returns the cursor position.
func (s *Session) Cursor() Cursor { return s.cursor }

// Offset returns the cursor position in the joined-text view.
func (s *Session) Offset() int { return s.buf.ToOffset(s.cursor) }

// Mode returns the active mode.
func (s *Session) Mode() Mode { return s.mode }

// Selection returns the active selection or nil.
func (s *Session) Selection() *Selection {
	if s.selection == nil {
		return nil
	}
	sel := *s.selection
	return &sel
}

// SearchState returns the active search or nil.
func (s *Session) SearchState() *SearchState { return s.search }

// Modified reports whether there are edits since the last save.
func (s *Session) Modified() bool { return s.modified }

// Closed reports whether Close has been called.
func (s *Session) Closed() bool { return s.closed }

// Stats counts words, characters and lines.
func (s *Session) Stats() Stats { return s.buf.Stats() }

// CanUndo reports whether undo would change anything.
func (s *Session) CanUndo() bool { return s.history.CanUndo() }

// CanRedo reports whether redo would change anything.
func (s *Session) CanRedo() bool { return s.history.CanRedo() }

// SetCursor moves the cursor, clamped, without recording history.
func (s *Session) SetCursor(c Cursor) {
	s.cursor = c
	s.clampCursor()
	s.preferredCol = s.cursor.Col
	s.selection = nil
}

// ScrollOffset returns the scroll offset of the last Plan.
func (s *Session) ScrollOffset() int { return s.scrollPx }

// SetScrollOffset seeds the scroll offset used when centering is off.
// The next Plan still clamps it so the cursor stays visible.
func (s *Session) SetScrollOffset(px int) { s.scrollPx = max(px, 0) }

// SetCentering toggles typewriter centering.
func (s *Session) SetCentering(on bool) {
	s.cfg.TypewriterEnabled = on
	if !on {
		s.recenter.cancel()
		s.hold = false
	}
}

// SetDimming toggles focus dimming.
func (s *Session) SetDimming(on bool) { s.cfg.FocusDimming = on }

// SetFocusRadius changes the focus window radius. Negative values are ignored.
func (s *Session) SetFocusRadius(r int) {
	if r >= 0 {
		s.cfg.TypewriterFocusLines = r
	}
}

// Subscribe returns a channel of session events for the lifetime of ctx.
func (s *Session) Subscribe(ctx context.Context) <-chan pubsub.Event[SessionEvent] {
	return s.broker.Subscribe(ctx)
}

// Broker returns the broker session events are published on.
func (s *Session) Broker() *pubsub.Broker[SessionEvent] { return s.broker }

// Timers delivers fired timers. Pass each event to HandleTimer.
func (s *Session) Timers() <-chan TimerEvent { return s.timers }

// HandleTimer runs the work of a fired timer. Events for cancelled or
// superseded timers, other sessions, or a closed session are ignored.
func (s *Session) HandleTimer(ctx context.Context, ev TimerEvent) error {
	if s.closed || ev.SessionID != s.id {
		return nil
	}
	switch ev.Kind {
	case TimerAutoSave:
		if !s.autoSave.consume(ev) || !s.modified || s.persister == nil {
			return nil
		}
		log.Debug(log.CatSession, "Auto-save fired", "id", s.id)
		return s.Save(ctx)
	case TimerRecenter:
		if !s.recenter.consume(ev) {
			return nil
		}
		s.hold = false
		s.publish(pubsub.UpdatedEvent, EventRecentered, nil)
	}
	return nil
}

// AutoSavePending reports whether an auto-save timer is scheduled.
func (s *Session) AutoSavePending() bool { return s.autoSave.isPending() }

// RecenterPending reports whether a re-center timer is scheduled.
func (s *Session) RecenterPending() bool { return s.recenter.isPending() }

// Save hands the current text to the persister.
func (s *Session) Save(ctx context.Context) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.persister == nil {
		return ErrNoPersister
	}

	ctx, span := s.tracer.Start(ctx, tracing.SpanSessionSave, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, s.id),
		attribute.Int(tracing.AttrDocumentLines, s.buf.LineCount()),
		attribute.Int(tracing.AttrDocumentBytes, s.buf.Size()),
	))
	defer span.End()

	if err := s.persister.Persist(ctx, s.buf.Text()); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persist failed")
		log.ErrorErr(log.CatSession, "Save failed", err, "id", s.id)
		s.publish(pubsub.UpdatedEvent, EventSaveFailed, err)
		return fmt.Errorf("saving session: %w", err)
	}

	s.modified = false
	s.autoSave.cancel()
	log.Debug(log.CatSession, "Session saved", "id", s.id)
	s.publish(pubsub.UpdatedEvent, EventSaved, nil)
	return nil
}

// Reload replaces the document with text read from outside, for example
// after the file changed on disk. The previous state stays undoable.
func (s *Session) Reload(text string) {
	if s.closed {
		return
	}
	s.history.Push(captureFrame(s.buf, s.cursor))
	// Typing after a reload must not fold into the reload's frame.
	s.insertStart = true
	s.buf.Replace(text)
	s.clampCursor()
	s.search = nil
	s.selection = nil
	s.modified = false
	s.autoSave.cancel()
	s.publish(pubsub.UpdatedEvent, EventReloaded, nil)
}

// MarkSaved clears the modified flag after the host persisted the text itself.
func (s *Session) MarkSaved() {
	s.modified = false
	s.autoSave.cancel()
}

// Plan computes the render plan for vp and remembers the scroll offset.
func (s *Session) Plan(vp Viewport) RenderPlan {
	plan := Plan(PlanInput{
		Buffer:       s.buf,
		Cursor:       s.cursor,
		Mode:         s.mode,
		Selection:    s.selection,
		Viewport:     vp,
		Typewriter:   s.cfg.Typewriter(),
		TabWidth:     s.cfg.TabWidth,
		PrevScrollPx: s.scrollPx,
		Hold:         s.hold,
	})
	s.scrollPx = plan.ScrollOffsetPx
	s.pageLines = vp.Lines()
	return plan
}

// Close cancels pending timers and releases the session. Later calls are no-ops.
func (s *Session) Close() {
	if s.closed {
		return
	}
	s.autoSave.stop()
	s.recenter.stop()
	s.closed = true
	s.search = nil
	s.selection = nil
	log.Debug(log.CatSession, "Session closed", "id", s.id, "modified", s.modified)
	s.publish(pubsub.ClosedEvent, EventClosed, nil)
	if s.ownsBroker {
		s.broker.Close()
	}
}

func (s *Session) publish(t pubsub.EventType, kind SessionEventKind, err error) {
	s.broker.Publish(t, SessionEvent{
		Kind:      kind,
		SessionID: s.id,
		Mode:      s.mode,
		Cursor:    s.cursor,
		Modified:  s.modified,
		Err:       err,
	})
}
