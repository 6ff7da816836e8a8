package edit

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
	"github.com/mattn/go-runewidth"
	"github.com/muesli/reflow/wordwrap"
	"github.com/rivo/uniseg"

	"github.com/zjrosen/inkwell/internal/editor"
	"github.com/zjrosen/inkwell/internal/ui/styles"
)

// painter turns a render plan into terminal rows.
type painter struct {
	width    int
	height   int
	wrap     bool
	tabWidth int
}

// cellKind is what a cell is highlighted as, in increasing priority.
type cellKind int

const (
	cellText cellKind = iota
	cellMatch
	cellSelected
	cellCursor
)

// cell is one grapheme after tab expansion. A tab becomes several cells
// that share its column.
type cell struct {
	text  string
	width int
	col   int
}

// row is a run of cells [start, end) drawn on one terminal line. tail
// marks the last row of a line, where a cursor past the end is drawn.
type row struct {
	line       int
	start, end int
	tail       bool
}

// paint returns exactly p.height rows for plan, starting at document line
// first. matches are search ranges highlighted beside the selection.
func (p painter) paint(plan editor.RenderPlan, first int, cursor editor.Cursor, matches []editor.Selection) []string {
	if p.width < 1 || p.height < 1 {
		return nil
	}

	cells := make([][]cell, len(plan.Lines))
	lineCells := func(i int) []cell {
		if cells[i] == nil {
			cells[i] = toCells(plan.Lines[i].Text, p.tabWidth)
		}
		return cells[i]
	}

	hscroll := 0
	if !p.wrap {
		hscroll = max(plan.Cursor.X-p.width+1, 0)
	}

	var rows []row
	cursorRow := -1
	for i := first; i < len(plan.Lines); i++ {
		cur := -1
		if i == cursor.Line {
			cur = cellIndex(lineCells(i), cursor.Col)
		}
		var segs []row
		if p.wrap {
			segs = wrapRows(i, lineCells(i), p.width, cur)
		} else {
			segs = []row{{line: i, start: 0, end: len(lineCells(i)), tail: true}}
		}
		if cur >= 0 {
			cursorRow = len(rows) + cursorSegment(segs, cur)
		}
		rows = append(rows, segs...)
		// Keep going past the viewport until the cursor row is known.
		if len(rows) >= p.height && (cursorRow >= 0 || cursor.Line < first) {
			break
		}
	}
	if cursorRow >= p.height {
		rows = rows[cursorRow-p.height+1:]
	}
	if len(rows) > p.height {
		rows = rows[:p.height]
	}

	out := make([]string, p.height)
	for r, rw := range rows {
		cs := lineCells(rw.line)
		base := styles.TextStyle
		if plan.Lines[rw.line].Emphasis == editor.EmphasisDimmed {
			base = styles.DimmedTextStyle
		}
		cur := -1
		if rw.line == cursor.Line {
			cur = cellIndex(cs, cursor.Col)
		}
		spans := highlightSpans(rw.line, plan.Selection, matches)
		out[r] = p.paintRow(cs, rw, hscroll, base, spans, cur, plan.Mode)
	}
	return out
}

// paintRow styles the cells of rw. cur is the cursor's cell index on this
// line, or -1; it equals len(cs) when the cursor sits past the end.
func (p painter) paintRow(cs []cell, rw row, hscroll int, base lipgloss.Style, spans []span, cur int, mode editor.Mode) string {
	var b strings.Builder
	kind := cellText
	var run strings.Builder
	flush := func() {
		if run.Len() == 0 {
			return
		}
		b.WriteString(styleFor(kind, base, mode).Render(run.String()))
		run.Reset()
	}
	emit := func(k cellKind, text string) {
		if k != kind {
			flush()
			kind = k
		}
		run.WriteString(text)
	}

	x := 0
	for i := rw.start; i < rw.end; i++ {
		c := cs[i]
		if !p.wrap {
			if x < hscroll {
				x += c.width
				continue
			}
			if x+c.width-hscroll > p.width {
				break
			}
		}
		x += c.width
		switch {
		case i == cur:
			emit(cellCursor, c.text)
		case inSpans(spans, c.col, cellSelected):
			emit(cellSelected, c.text)
		case inSpans(spans, c.col, cellMatch):
			emit(cellMatch, c.text)
		default:
			emit(cellText, c.text)
		}
	}
	if rw.tail && cur == len(cs) {
		emit(cellCursor, " ")
	}
	flush()
	return ansi.Truncate(b.String(), p.width, "")
}

func styleFor(k cellKind, base lipgloss.Style, mode editor.Mode) lipgloss.Style {
	switch k {
	case cellCursor:
		if mode.CursorStyle() == editor.CursorBar {
			return styles.InsertCursorStyle
		}
		return styles.NavigationCursorStyle
	case cellSelected:
		return styles.SelectionStyle
	case cellMatch:
		return styles.SearchMatchStyle
	}
	return base
}

// toCells splits line into display cells with tabs expanded.
func toCells(line string, tabWidth int) []cell {
	if tabWidth <= 0 {
		tabWidth = editor.DefaultTabWidth
	}
	var cs []cell
	x, col := 0, 0
	gr := uniseg.NewGraphemes(line)
	for gr.Next() {
		g := gr.Str()
		if g == "\t" {
			n := tabWidth - x%tabWidth
			for range n {
				cs = append(cs, cell{text: " ", width: 1, col: col})
			}
			x += n
		} else {
			w := runewidth.StringWidth(g)
			cs = append(cs, cell{text: g, width: w, col: col})
			x += w
		}
		col++
	}
	return cs
}

// cellIndex returns the index of the first cell of grapheme col, or
// len(cs) when col is past the end of the line.
func cellIndex(cs []cell, col int) int {
	for i, c := range cs {
		if c.col >= col {
			return i
		}
	}
	return len(cs)
}

// wrapRows breaks a line into rows. Break points follow reflow's word
// wrapping; words wider than a row are cut. The spaces wordwrap drops at
// a break stay at the end of the row they follow.
func wrapRows(line int, cs []cell, width int, cur int) []row {
	total := 0
	for _, c := range cs {
		total += c.width
	}
	if total <= width {
		return withTail(line, []row{{line: line, start: 0, end: len(cs)}}, cs, width, cur)
	}

	var plain strings.Builder
	for _, c := range cs {
		plain.WriteString(c.text)
	}
	wrapped := wordwrap.String(plain.String(), width)

	rowOf := make([]int, len(cs))
	r, pos := 0, 0
	for i, c := range cs {
		for {
			if strings.HasPrefix(wrapped[pos:], c.text) {
				pos += len(c.text)
				break
			}
			if pos < len(wrapped) && wrapped[pos] == '\n' && !isSpace(c.text) {
				pos++
				r++
				continue
			}
			// Dropped by wordwrap at a break.
			break
		}
		rowOf[i] = r
	}

	var rows []row
	start := 0
	for i := 1; i <= len(cs); i++ {
		if i == len(cs) || rowOf[i] != rowOf[start] {
			rows = append(rows, cutRow(line, cs, start, i, width)...)
			start = i
		}
	}
	return withTail(line, rows, cs, width, cur)
}

// withTail marks the last row as the line's tail. A cursor past the end
// of a full row gets an empty tail row of its own.
func withTail(line int, rows []row, cs []cell, width, cur int) []row {
	last := len(rows) - 1
	if cur == len(cs) && len(cs) > 0 && rowWidth(cs, rows[last]) >= width {
		return append(rows, row{line: line, start: len(cs), end: len(cs), tail: true})
	}
	rows[last].tail = true
	return rows
}

// cutRow splits [start, end) into pieces of at most width cells. Trailing
// spaces are not counted, so a break's dropped spaces never force a cut.
func cutRow(line int, cs []cell, start, end, width int) []row {
	var rows []row
	x := 0
	from := start
	for i := start; i < end; i++ {
		if x+cs[i].width > width && !isSpace(cs[i].text) && i > from {
			rows = append(rows, row{line: line, start: from, end: i})
			from, x = i, 0
		}
		x += cs[i].width
	}
	return append(rows, row{line: line, start: from, end: end})
}

func rowWidth(cs []cell, r row) int {
	w := 0
	for i := r.start; i < r.end; i++ {
		w += cs[i].width
	}
	return w
}

// cursorSegment returns which of segs holds cell index cur.
func cursorSegment(segs []row, cur int) int {
	for i, s := range segs {
		if cur >= s.start && cur < s.end {
			return i
		}
	}
	return len(segs) - 1
}

func isSpace(s string) bool {
	return strings.TrimSpace(s) == ""
}

// span is a highlighted half-open column range on one line.
type span struct {
	from, to int
	kind     cellKind
}

func highlightSpans(line int, sel *editor.Selection, matches []editor.Selection) []span {
	var out []span
	add := func(s editor.Selection, k cellKind) {
		start, end := s.Ordered()
		if line < start.Line || line > end.Line {
			return
		}
		from, to := 0, int(^uint(0)>>1)
		if line == start.Line {
			from = start.Col
		}
		if line == end.Line {
			to = end.Col
		}
		if from < to {
			out = append(out, span{from: from, to: to, kind: k})
		}
	}
	for _, m := range matches {
		add(m, cellMatch)
	}
	if sel != nil {
		add(*sel, cellSelected)
	}
	return out
}

func inSpans(spans []span, col int, k cellKind) bool {
	for _, s := range spans {
		if s.kind == k && col >= s.from && col < s.to {
			return true
		}
	}
	return false
}
