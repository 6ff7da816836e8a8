package editor

import (
	"slices"
	"strings"
)

// Buffer holds a document as an ordered list of lines without terminators.
// A buffer always has at least one line.
type Buffer struct {
	lines []string
}

// NewBuffer creates a buffer by splitting text on line terminators.
// CRLF, CR and LF are all accepted.
func NewBuffer(text string) *Buffer {
	return &Buffer{lines: strings.Split(normalizeNewlines(text), "\n")}
}

// NewBufferFromLines creates a buffer holding a copy of lines.
func NewBufferFromLines(lines []string) *Buffer {
	if len(lines) == 0 {
		return &Buffer{lines: []string{""}}
	}
	return &Buffer{lines: slices.Clone(lines)}
}

// Text joins the lines with LF.
func (b *Buffer) Text() string {
	return strings.Join(b.lines, "\n")
}

// Lines returns a copy of the buffer lines.
func (b *Buffer) Lines() []string {
	return slices.Clone(b.lines)
}

// LineCount returns the number of lines, always at least one.
func (b *Buffer) LineCount() int {
	return len(b.lines)
}

// LineAt returns line i, or "" when i is out of range.
func (b *Buffer) LineAt(i int) string {
	if i < 0 || i >= len(b.lines) {
		return ""
	}
	return b.lines[i]
}

// LineLen returns the grapheme length of line i.
func (b *Buffer) LineLen(i int) int {
	return graphemeLen(b.LineAt(i))
}

// Len returns the length of the offset view: graphemes plus one per separator.
func (b *Buffer) Len() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += graphemeLen(l)
	}
	return n
}

// Size returns the byte size of Text without building it.
func (b *Buffer) Size() int {
	n := len(b.lines) - 1
	for _, l := range b.lines {
		n += len(l)
	}
	return n
}

// Clamp forces c onto a valid position.
func (b *Buffer) Clamp(c Cursor) Cursor {
	c.Line = clampInt(c.Line, 0, len(b.lines)-1)
	c.Col = clampInt(c.Col, 0, graphemeLen(b.lines[c.Line]))
	return c
}

// ClampSelection clamps both endpoints of s.
func (b *Buffer) ClampSelection(s Selection) Selection {
	return Selection{Anchor: b.Clamp(s.Anchor), Head: b.Clamp(s.Head)}
}

// InsertText inserts text at c and returns the cursor just past it.
// Newlines in text split lines.
func (b *Buffer) InsertText(c Cursor, text string) Cursor {
	c = b.Clamp(c)
	if text == "" {
		return c
	}
	parts := strings.Split(normalizeNewlines(text), "\n")
	line := b.lines[c.Line]
	at := byteOffset(line, c.Col)
	before, after := line[:at], line[at:]

	if len(parts) == 1 {
		b.lines[c.Line] = before + text + after
		return Cursor{Line: c.Line, Col: graphemeLen(before + text)}
	}

	last := parts[len(parts)-1]
	repl := make([]string, 0, len(parts))
	repl = append(repl, before+parts[0])
	repl = append(repl, parts[1:len(parts)-1]...)
	repl = append(repl, last+after)
	b.lines = slices.Replace(b.lines, c.Line, c.Line+1, repl...)
	return Cursor{Line: c.Line + len(parts) - 1, Col: graphemeLen(last)}
}

// DeleteRange removes the text in [from, to) and returns the start position.
// Endpoints may be given in either order.
func (b *Buffer) DeleteRange(from, to Cursor) Cursor {
	from, to = b.Clamp(from), b.Clamp(to)
	if to.Before(from) {
		from, to = to, from
	}
	if from == to {
		return from
	}
	head := b.lines[from.Line][:byteOffset(b.lines[from.Line], from.Col)]
	tail := b.lines[to.Line][byteOffset(b.lines[to.Line], to.Col):]
	b.lines = slices.Replace(b.lines, from.Line, to.Line+1, head+tail)
	return from
}

// TextRange returns the text in [from, to).
func (b *Buffer) TextRange(from, to Cursor) string {
	from, to = b.Clamp(from), b.Clamp(to)
	if to.Before(from) {
		from, to = to, from
	}
	if from.Line == to.Line {
		l := b.lines[from.Line]
		return l[byteOffset(l, from.Col):byteOffset(l, to.Col)]
	}
	var sb strings.Builder
	first := b.lines[from.Line]
	sb.WriteString(first[byteOffset(first, from.Col):])
	for i := from.Line + 1; i < to.Line; i++ {
		sb.WriteByte('\n')
		sb.WriteString(b.lines[i])
	}
	sb.WriteByte('\n')
	last := b.lines[to.Line]
	sb.WriteString(last[:byteOffset(last, to.Col)])
	return sb.String()
}

// SplitLine breaks the line at c and returns the start of the new line.
func (b *Buffer) SplitLine(c Cursor) Cursor {
	return b.InsertText(c, "\n")
}

// JoinLine appends line i+1 to line i and returns the join point.
// Joining the last line is a no-op.
func (b *Buffer) JoinLine(i int) Cursor {
	i = clampInt(i, 0, len(b.lines)-1)
	at := Cursor{Line: i, Col: graphemeLen(b.lines[i])}
	if i == len(b.lines)-1 {
		return at
	}
	b.lines = slices.Replace(b.lines, i, i+2, b.lines[i]+b.lines[i+1])
	return at
}

// SetLine replaces line i. Newlines in text produce additional lines.
func (b *Buffer) SetLine(i int, text string) {
	if i < 0 || i >= len(b.lines) {
		return
	}
	parts := strings.Split(normalizeNewlines(text), "\n")
	b.lines = slices.Replace(b.lines, i, i+1, parts...)
}

// InsertLine inserts a new line so that it becomes line i.
// Indices past the end append.
func (b *Buffer) InsertLine(i int, text string) Cursor {
	i = clampInt(i, 0, len(b.lines))
	b.lines = slices.Insert(b.lines, i, "")
	b.SetLine(i, text)
	return Cursor{Line: i}
}

// DeleteLine removes line i. Deleting the only line leaves one empty line.
func (b *Buffer) DeleteLine(i int) Cursor {
	if i < 0 || i >= len(b.lines) {
		return b.Clamp(Cursor{Line: i})
	}
	if len(b.lines) == 1 {
		b.lines[0] = ""
		return Cursor{}
	}
	b.lines = slices.Delete(b.lines, i, i+1)
	return Cursor{Line: min(i, len(b.lines)-1)}
}

// Replace swaps the whole document for text.
func (b *Buffer) Replace(text string) {
	b.lines = strings.Split(normalizeNewlines(text), "\n")
}

// ReplaceLines swaps the whole document for a copy of lines.
func (b *Buffer) ReplaceLines(lines []string) {
	if len(lines) == 0 {
		b.lines = []string{""}
		return
	}
	b.lines = slices.Clone(lines)
}

// ToOffset converts c to an offset in the joined-text view.
func (b *Buffer) ToOffset(c Cursor) int {
	c = b.Clamp(c)
	off := 0
	for i := 0; i < c.Line; i++ {
		off += graphemeLen(b.lines[i]) + 1
	}
	return off + c.Col
}

// ToCursor converts an offset in the joined-text view back to a cursor.
// Offsets outside the document are clamped.
func (b *Buffer) ToCursor(off int) Cursor {
	if off <= 0 {
		return Cursor{}
	}
	for i, l := range b.lines {
		n := graphemeLen(l)
		if off <= n {
			return Cursor{Line: i, Col: off}
		}
		off -= n + 1
	}
	last := len(b.lines) - 1
	return Cursor{Line: last, Col: graphemeLen(b.lines[last])}
}
