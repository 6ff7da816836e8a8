package editor

import (
	"strings"
	"sync"

	"github.com/atotto/clipboard"

	"github.com/zjrosen/inkwell/internal/log"
)

// Clipboard is where copy, cut and paste exchange text.
type Clipboard interface {
	ReadAll() (string, error)
	WriteAll(text string) error
}

// Register is an in-process clipboard. Sessions use one unless
// WithClipboard supplies another.
type Register struct {
	mu   sync.Mutex
	text string
}

// NewRegister creates an empty register.
func NewRegister() *Register { return &Register{} }

func (r *Register) ReadAll() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.text, nil
}

func (r *Register) WriteAll(text string) error {
	r.mu.Lock()
	r.text = text
	r.mu.Unlock()
	return nil
}

type systemClipboard struct{}

func (systemClipboard) ReadAll() (string, error)   { return clipboard.ReadAll() }
func (systemClipboard) WriteAll(text string) error { return clipboard.WriteAll(text) }

// SystemClipboard returns the operating system clipboard, or a Register
// when the platform has no clipboard tool (no xclip, xsel or wl-copy).
func SystemClipboard() Clipboard {
	if clipboard.Unsupported {
		log.Warn(log.CatEditor, "System clipboard unavailable, using an in-process register")
		return NewRegister()
	}
	return systemClipboard{}
}

// WithClipboard sets the clipboard used by copy, cut and paste.
func WithClipboard(c Clipboard) Option {
	return func(s *Session) { s.clipboard = c }
}

// copyLine puts the cursor line on the clipboard. A trailing newline marks
// the text as whole lines for paste.
func (s *Session) copyLine() bool {
	text := s.buf.LineAt(s.cursor.Line) + "\n"
	if err := s.clipboard.WriteAll(text); err != nil {
		log.Warn(log.CatEditor, "Copy failed", "error", err)
		return false
	}
	return true
}

// cutLine copies the cursor line and deletes it. Nothing is deleted when
// the copy fails.
func (s *Session) cutLine() {
	if !s.copyLine() {
		return
	}
	s.checkpoint(EditStructural)
	s.cursor = s.buf.DeleteLine(s.cursor.Line)
	s.edited()
}

// paste inserts the clipboard text as a single undo step. In navigation
// mode whole lines go below the cursor line and other text goes after the
// cursor character; in insert mode text lands at the cursor.
func (s *Session) paste() {
	text, err := s.clipboard.ReadAll()
	if err != nil {
		log.Warn(log.CatEditor, "Paste failed", "error", err)
		return
	}
	text = normalizeNewlines(text)
	if text == "" {
		return
	}
	s.checkpoint(EditStructural)
	switch {
	case s.mode == ModeNavigation && strings.HasSuffix(text, "\n"):
		s.cursor = s.buf.InsertLine(s.cursor.Line+1, strings.TrimSuffix(text, "\n"))
	case s.mode == ModeNavigation && s.buf.LineLen(s.cursor.Line) > 0:
		end := s.buf.InsertText(Cursor{Line: s.cursor.Line, Col: s.cursor.Col + 1}, text)
		s.cursor = Cursor{Line: end.Line, Col: end.Col - 1}
	default:
		s.cursor = s.buf.InsertText(s.cursor, text)
	}
	s.edited()
	// Typing after a paste starts its own frame.
	s.insertStart = true
	log.Debug(log.CatEditor, "Pasted", "bytes", len(text), "cursor", s.cursor)
}
