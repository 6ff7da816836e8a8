package editor

import "fmt"

// Cursor is a position in the buffer. Col is a grapheme index and may equal
// the line length (end of line).
type Cursor struct {
	Line int
	Col  int
}

// Before reports whether c sorts before o in document order.
func (c Cursor) Before(o Cursor) bool {
	if c.Line != o.Line {
		return c.Line < o.Line
	}
	return c.Col < o.Col
}

func (c Cursor) String() string {
	return fmt.Sprintf("%d:%d", c.Line+1, c.Col+1)
}

// Selection is a range between an anchor and a moving head.
// The covered text is [start, end) in document order.
type Selection struct {
	Anchor Cursor
	Head   Cursor
}

// Ordered returns the selection endpoints in document order.
func (s Selection) Ordered() (start, end Cursor) {
	if s.Head.Before(s.Anchor) {
		return s.Head, s.Anchor
	}
	return s.Anchor, s.Head
}

// Empty reports whether the selection covers no text.
func (s Selection) Empty() bool {
	return s.Anchor == s.Head
}
