package editor

import (
	"context"
	"math"
	"strings"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/zjrosen/inkwell/internal/log"
	"github.com/zjrosen/inkwell/internal/pubsub"
	"github.com/zjrosen/inkwell/internal/tracing"
)

// HandleKey dispatches ev in the current mode, applies the result and
// returns the action taken. Closed sessions ignore keys.
func (s *Session) HandleKey(ev KeyEvent) Action {
	if s.closed {
		return ActionNone
	}
	a := Dispatch(s.mode, ev)
	s.apply(a, ev)
	return a
}

func (s *Session) apply(a Action, ev KeyEvent) {
	switch a {
	case ActionNone:
		return

	// Mode changes
	case ActionInsertBefore:
		s.enterInsert()
	case ActionInsertAfter:
		if s.buf.LineLen(s.cursor.Line) > 0 {
			s.cursor.Col++
		}
		s.enterInsert()
	case ActionInsertLineStart:
		s.cursor.Col = 0
		s.enterInsert()
	case ActionInsertLineEnd:
		s.cursor.Col = s.buf.LineLen(s.cursor.Line)
		s.enterInsert()
	case ActionOpenBelow:
		s.enterInsert()
		s.checkpoint(EditStructural)
		s.cursor = s.buf.InsertLine(s.cursor.Line+1, "")
		s.edited()
	case ActionOpenAbove:
		s.enterInsert()
		s.checkpoint(EditStructural)
		s.cursor = s.buf.InsertLine(s.cursor.Line, "")
		s.edited()
	case ActionLeaveInsert:
		s.leaveInsert()

	// Motions
	case ActionMoveLeft:
		s.moveTo(Cursor{Line: s.cursor.Line, Col: s.cursor.Col - 1})
	case ActionMoveRight:
		if s.cursor.Col < s.maxCol(s.cursor.Line) {
			s.moveTo(Cursor{Line: s.cursor.Line, Col: s.cursor.Col + 1})
		}
	case ActionMoveUp:
		s.moveVertical(-1)
	case ActionMoveDown:
		s.moveVertical(1)
	case ActionPageUp:
		s.moveVertical(-max(s.pageLines-1, 1))
	case ActionPageDown:
		s.moveVertical(max(s.pageLines-1, 1))
	case ActionWordForward:
		s.moveTo(s.buf.NextWordStart(s.cursor))
	case ActionWordBackward:
		s.moveTo(s.buf.PrevWordStart(s.cursor))
	case ActionLineStart:
		s.moveTo(Cursor{Line: s.cursor.Line})
	case ActionLineEnd:
		s.moveTo(Cursor{Line: s.cursor.Line, Col: s.buf.LineLen(s.cursor.Line)})
		s.preferredCol = math.MaxInt
	case ActionDocStart:
		s.moveTo(Cursor{})
	case ActionDocEnd:
		last := s.buf.LineCount() - 1
		s.moveTo(Cursor{Line: last, Col: s.buf.LineLen(last)})
	case ActionFindNext:
		s.FindNext()
	case ActionFindPrevious:
		s.FindPrevious()

	// Navigation edits
	case ActionDeleteUnder:
		if s.cursor.Col < s.buf.LineLen(s.cursor.Line) {
			s.checkpoint(EditDelete)
			s.cursor = s.buf.DeleteRange(s.cursor, Cursor{Line: s.cursor.Line, Col: s.cursor.Col + 1})
			s.edited()
		}
	case ActionDeleteBefore:
		if s.cursor.Col > 0 {
			s.checkpoint(EditDelete)
			s.cursor = s.buf.DeleteRange(Cursor{Line: s.cursor.Line, Col: s.cursor.Col - 1}, s.cursor)
			s.edited()
		}
	case ActionDeleteLine:
		s.checkpoint(EditStructural)
		s.cursor = s.buf.DeleteLine(s.cursor.Line)
		s.edited()
	case ActionUndo:
		s.Undo()
	case ActionRedo:
		s.Redo()
	case ActionSearchForward:
		// The host collects the query and calls Search.
		s.selection = nil
	case ActionCopyLine:
		s.copyLine()
	case ActionCut:
		s.cutLine()
	case ActionPaste:
		s.paste()

	// Insert edits
	case ActionInsertText:
		s.insert(ev.Text)
	case ActionInsertTab:
		s.insert(strings.Repeat(" ", s.cfg.TabWidth))
	case ActionSplitLine:
		s.checkpoint(EditTyping)
		s.cursor = s.buf.SplitLine(s.cursor)
		s.edited()
	case ActionBackspace:
		s.backspace()
	case ActionDeleteForward:
		s.deleteForward()
	}

	s.clampCursor()
	if a.IsMotion() {
		s.moved()
	}
}

func (s *Session) insert(text string) {
	if text == "" {
		return
	}
	s.checkpoint(EditTyping)
	s.cursor = s.buf.InsertText(s.cursor, text)
	s.edited()
}

func (s *Session) backspace() {
	switch {
	case s.cursor.Col > 0:
		s.checkpoint(EditDelete)
		s.cursor = s.buf.DeleteRange(Cursor{Line: s.cursor.Line, Col: s.cursor.Col - 1}, s.cursor)
		s.edited()
	case s.cursor.Line > 0:
		s.checkpoint(EditDelete)
		s.cursor = s.buf.JoinLine(s.cursor.Line - 1)
		s.edited()
	}
}

func (s *Session) deleteForward() {
	n := s.buf.LineLen(s.cursor.Line)
	switch {
	case s.cursor.Col < n:
		s.checkpoint(EditDelete)
		s.cursor = s.buf.DeleteRange(s.cursor, Cursor{Line: s.cursor.Line, Col: s.cursor.Col + 1})
		s.edited()
	case s.cursor.Line < s.buf.LineCount()-1:
		s.checkpoint(EditDelete)
		s.cursor = s.buf.JoinLine(s.cursor.Line)
		s.edited()
	}
}

func (s *Session) enterInsert() {
	s.mode = ModeInsert
	s.insertStart = true
	s.selection = nil
	s.cursor = s.buf.Clamp(s.cursor)
	s.preferredCol = s.cursor.Col
	log.Debug(log.CatEditor, "Entered insert mode", "cursor", s.cursor)
	s.publish(pubsub.UpdatedEvent, EventModeChanged, nil)
}

func (s *Session) leaveInsert() {
	s.mode = ModeNavigation
	s.insertStart = false
	s.clampCursor()
	s.preferredCol = s.cursor.Col
	s.publish(pubsub.UpdatedEvent, EventModeChanged, nil)
}

// maxCol is the last column the cursor may rest on in the current mode.
// Navigation mode cannot rest past the last character of a non-empty line.
func (s *Session) maxCol(line int) int {
	n := s.buf.LineLen(line)
	if s.mode == ModeNavigation && n > 0 {
		return n - 1
	}
	return n
}

func (s *Session) clampCursor() {
	s.cursor = s.buf.Clamp(s.cursor)
	s.cursor.Col = min(s.cursor.Col, s.maxCol(s.cursor.Line))
}

func (s *Session) moveTo(c Cursor) {
	s.cursor = c
	s.clampCursor()
	s.preferredCol = s.cursor.Col
	s.selection = nil
}

// moveVertical moves by delta lines, restoring the sticky column when the
// destination line is long enough.
func (s *Session) moveVertical(delta int) {
	target := clampInt(s.cursor.Line+delta, 0, s.buf.LineCount()-1)
	s.selection = nil
	if target == s.cursor.Line {
		return
	}
	s.cursor = Cursor{Line: target, Col: min(s.preferredCol, s.maxCol(target))}
}

// checkpoint offers the state about to change to the history.
func (s *Session) checkpoint(kind EditKind) {
	pending := PendingEdit{
		Kind:         kind,
		SessionStart: s.mode == ModeNavigation || s.insertStart,
		Size:         s.buf.Size(),
		Lines:        s.buf.LineCount(),
	}
	s.insertStart = false
	if s.history.Checkpoint(pending, func() Frame { return captureFrame(s.buf, s.cursor) }) {
		log.Debug(log.CatUndo, "Captured undo frame", "depth", s.history.UndoDepth(), "kind", kind)
	}
}

// edited runs after every document mutation.
func (s *Session) edited() {
	s.search = nil
	s.selection = nil
	s.changed()
	s.preferredCol = s.cursor.Col
}

func (s *Session) changed() {
	s.modified = true
	s.hold = false
	s.recenter.cancel()
	s.autoSave.schedule()
	s.publish(pubsub.UpdatedEvent, EventEdited, nil)
}

// moved runs after every cursor motion.
func (s *Session) moved() {
	if !s.cfg.TypewriterEnabled || s.cfg.RecenterDelay <= 0 {
		return
	}
	s.hold = true
	s.recenter.schedule()
}

func (s *Session) restore(f Frame) {
	s.buf.ReplaceLines(f.Lines)
	s.cursor = f.Cursor
	s.clampCursor()
	s.preferredCol = s.cursor.Col
	s.search = nil
	s.selection = nil
	// Typing after an undo in insert mode starts its own frame.
	s.insertStart = true
	s.changed()
}

// Undo restores the previous frame. It reports false on an empty stack.
func (s *Session) Undo() bool {
	if s.closed {
		return false
	}
	f, ok := s.history.Undo(captureFrame(s.buf, s.cursor))
	if !ok {
		return false
	}
	s.restore(f)
	log.Debug(log.CatUndo, "Undo", "undo", s.history.UndoDepth(), "redo", s.history.RedoDepth())
	return true
}

// Redo reapplies the most recently undone frame. It reports false on an empty stack.
func (s *Session) Redo() bool {
	if s.closed {
		return false
	}
	f, ok := s.history.Redo(captureFrame(s.buf, s.cursor))
	if !ok {
		return false
	}
	s.restore(f)
	log.Debug(log.CatUndo, "Redo", "undo", s.history.UndoDepth(), "redo", s.history.RedoDepth())
	return true
}

// Search starts a search and returns the match count. The next FindNext
// lands on the first match at or after the cursor.
func (s *Session) Search(query string, opts SearchOptions) int {
	s.runSearch(query, opts, s.buf.ToOffset(s.cursor))
	log.Debug(log.CatSearch, "Search", "query", query, "matches", len(s.search.Matches))
	return len(s.search.Matches)
}

func (s *Session) runSearch(query string, opts SearchOptions, from int) {
	s.search = &SearchState{
		Query:   query,
		Options: opts,
		Matches: s.searcher.Search(s.buf.Text(), query, opts),
	}
	s.search.startBefore(from)
}

// ClearSearch discards the active search and its selection.
func (s *Session) ClearSearch() {
	s.search = nil
	s.selection = nil
}

// Matches returns the active search matches as document ranges.
func (s *Session) Matches() []Selection {
	if s.search == nil {
		return nil
	}
	out := make([]Selection, len(s.search.Matches))
	for i, sp := range s.search.Matches {
		out[i] = Selection{Anchor: s.buf.ToCursor(sp.Start), Head: s.buf.ToCursor(sp.End)}
	}
	return out
}

// FindNext selects the next match, wrapping past the last one.
func (s *Session) FindNext() (Span, bool) {
	if s.search == nil {
		return Span{}, false
	}
	sp, ok := s.search.Next()
	if ok {
		s.selectSpan(sp)
	}
	return sp, ok
}

// FindPrevious selects the previous match, wrapping past the first one.
func (s *Session) FindPrevious() (Span, bool) {
	if s.search == nil {
		return Span{}, false
	}
	sp, ok := s.search.Previous()
	if ok {
		s.selectSpan(sp)
	}
	return sp, ok
}

func (s *Session) selectSpan(sp Span) {
	start, end := s.buf.ToCursor(sp.Start), s.buf.ToCursor(sp.End)
	s.cursor = start
	s.clampCursor()
	s.preferredCol = s.cursor.Col
	s.selection = &Selection{Anchor: start, Head: end}
}

// ReplaceOne replaces the current match when the selection still holds its
// text, then selects the next match. It reports false otherwise.
func (s *Session) ReplaceOne(repl string) bool {
	sp, ok := s.search.CurrentMatch()
	if !ok || s.selection == nil || s.closed {
		return false
	}
	start, end := s.selection.Ordered()
	if s.buf.TextRange(start, end) != matchText(s.buf, sp) {
		return false
	}
	query, opts := s.search.Query, s.search.Options
	before := s.buf.Len()
	text, ok := s.searcher.ReplaceAt(s.buf.Text(), query, opts, sp, repl)
	if !ok {
		return false
	}

	s.checkpoint(EditStructural)
	s.buf.Replace(text)
	after := sp.End + s.buf.Len() - before
	s.cursor = s.buf.ToCursor(sp.Start)
	s.clampCursor()
	s.selection = nil
	s.changed()

	s.runSearch(query, opts, after)
	s.FindNext()
	return true
}

// ReplaceAll replaces every match of the active search and returns the count.
func (s *Session) ReplaceAll(repl string) int {
	if s.search == nil || s.closed {
		return 0
	}
	query, opts := s.search.Query, s.search.Options
	_, span := s.tracer.Start(context.Background(), tracing.SpanSessionReplaceAll, trace.WithAttributes(
		attribute.String(tracing.AttrSessionID, s.id),
		attribute.Bool(tracing.AttrSearchPattern, opts.IsPattern),
	))
	defer span.End()

	text, n := s.searcher.ReplaceAll(s.buf.Text(), query, opts, repl)
	span.SetAttributes(attribute.Int(tracing.AttrSearchReplacements, n))
	if n == 0 {
		return 0
	}

	off := s.buf.ToOffset(s.cursor)
	s.checkpoint(EditStructural)
	s.buf.Replace(text)
	s.cursor = s.buf.ToCursor(off)
	s.clampCursor()
	s.preferredCol = s.cursor.Col
	s.selection = nil
	s.changed()
	s.runSearch(query, opts, s.buf.ToOffset(s.cursor))
	log.Info(log.CatSearch, "Replaced all matches", "query", query, "count", n)
	return n
}
