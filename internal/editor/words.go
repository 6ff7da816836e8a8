package editor

import "strings"

// scanner walks the document one grapheme at a time. A position at the end
// of a non-final line stands for the line separator.
type scanner struct {
	b     *Buffer
	line  int
	col   int
	cells []string
}

func newScanner(b *Buffer, c Cursor) *scanner {
	c = b.Clamp(c)
	s := &scanner{b: b, line: c.Line, col: c.Col}
	s.cells = graphemes(b.lines[s.line])
	return s
}

func (s *scanner) pos() Cursor { return Cursor{Line: s.line, Col: s.col} }

func (s *scanner) atEnd() bool {
	return s.line == len(s.b.lines)-1 && s.col >= len(s.cells)
}

func (s *scanner) atStart() bool { return s.line == 0 && s.col == 0 }

// word reports whether the grapheme under the scanner is a word character.
func (s *scanner) word() bool {
	return s.col < len(s.cells) && isWordCluster(s.cells[s.col])
}

// prevWord reports whether the grapheme before the scanner is a word character.
func (s *scanner) prevWord() bool {
	return s.col > 0 && isWordCluster(s.cells[s.col-1])
}

func (s *scanner) forward() {
	if s.col < len(s.cells) {
		s.col++
		return
	}
	if s.line < len(s.b.lines)-1 {
		s.line++
		s.col = 0
		s.cells = graphemes(s.b.lines[s.line])
	}
}

func (s *scanner) back() {
	if s.col > 0 {
		s.col--
		return
	}
	if s.line > 0 {
		s.line--
		s.cells = graphemes(s.b.lines[s.line])
		s.col = len(s.cells)
	}
}

// NextWordStart skips the word run at c, then the non-word run after it,
// and returns the first word character found or the end of the document.
func (b *Buffer) NextWordStart(c Cursor) Cursor {
	s := newScanner(b, c)
	for !s.atEnd() && s.word() {
		s.forward()
	}
	for !s.atEnd() && !s.word() {
		s.forward()
	}
	return s.pos()
}

// PrevWordStart skips the non-word run before c, then the word run before
// that, and returns the start of that word or the start of the document.
func (b *Buffer) PrevWordStart(c Cursor) Cursor {
	s := newScanner(b, c)
	for !s.atStart() && !s.prevWord() {
		s.back()
	}
	for !s.atStart() && s.prevWord() {
		s.back()
	}
	return s.pos()
}

// Stats holds document counts.
type Stats struct {
	Words int
	Chars int
	Lines int
}

// WordsPerMinute is the reading speed used for reading time estimates.
const WordsPerMinute = 200

// ReadingMinutes returns the estimated reading time, rounded up.
func (s Stats) ReadingMinutes() int {
	if s.Words == 0 {
		return 0
	}
	return (s.Words + WordsPerMinute - 1) / WordsPerMinute
}

// Stats counts whitespace-separated words and characters.
// Line separators are not counted as characters.
func (b *Buffer) Stats() Stats {
	st := Stats{Lines: len(b.lines)}
	for _, l := range b.lines {
		st.Words += len(strings.Fields(l))
		st.Chars += graphemeLen(l)
	}
	return st
}

// CountText computes Stats for raw text.
func CountText(text string) Stats {
	return NewBuffer(text).Stats()
}
