package editor

import (
	"context"
	"fmt"
	"regexp"
	"slices"
	"time"

	"github.com/rivo/uniseg"

	"github.com/zjrosen/inkwell/internal/cachemanager"
	"github.com/zjrosen/inkwell/internal/log"
)

// SearchOptions controls how a query is matched.
type SearchOptions struct {
	CaseSensitive bool
	WholeWord     bool
	// IsPattern treats the query as a regular expression instead of a literal.
	IsPattern bool
}

// Span is a half-open match range in the joined-text offset view.
type Span struct {
	Start int
	End   int
}

// Len returns the span length in graphemes.
func (s Span) Len() int { return s.End - s.Start }

// patternTTL is how long a compiled query stays cached after its last use.
const patternTTL = 5 * time.Minute

type patternInput struct {
	query string
	opts  SearchOptions
}

// Searcher compiles queries and scans text. Compiled patterns are cached.
type Searcher struct {
	patterns *cachemanager.Loader[string, *regexp.Regexp, patternInput]
}

// NewSearcher creates a Searcher backed by cache. A nil cache disables caching.
func NewSearcher(cache cachemanager.CacheManager[string, *regexp.Regexp]) *Searcher {
	return &Searcher{
		patterns: cachemanager.NewLoader(cache, patternInput.key, compilePattern, patternTTL),
	}
}

// NewCachedSearcher creates a Searcher with its own in-memory pattern cache.
func NewCachedSearcher() *Searcher {
	return NewSearcher(cachemanager.NewInMemory[string, *regexp.Regexp](
		"search-patterns", patternTTL, cachemanager.DefaultCleanupInterval))
}

func compilePattern(_ context.Context, in patternInput) (*regexp.Regexp, error) {
	expr := in.query
	if !in.opts.IsPattern {
		expr = regexp.QuoteMeta(expr)
	}
	if in.opts.WholeWord {
		expr = `\b(?:` + expr + `)\b`
	}
	if !in.opts.CaseSensitive {
		expr = "(?i)" + expr
	}
	return regexp.Compile(expr)
}

func (in patternInput) key() string {
	return fmt.Sprintf("%t|%t|%t|%s", in.opts.CaseSensitive, in.opts.WholeWord, in.opts.IsPattern, in.query)
}

func (s *Searcher) compile(query string, opts SearchOptions) (*regexp.Regexp, bool) {
	if query == "" {
		return nil, false
	}
	re, err := s.patterns.Load(context.Background(), patternInput{query: query, opts: opts})
	if err != nil {
		log.Debug(log.CatSearch, "Query did not compile", "query", query, "error", err)
		return nil, false
	}
	return re, true
}

// Search returns the non-overlapping matches of query in text, left to right.
// Empty queries, empty matches and patterns that fail to compile yield no spans.
func (s *Searcher) Search(text, query string, opts SearchOptions) []Span {
	re, ok := s.compile(query, opts)
	if !ok {
		return nil
	}
	idx := newCellIndex(text)
	var spans []Span
	for _, m := range re.FindAllStringIndex(text, -1) {
		if m[0] == m[1] {
			continue
		}
		sp := Span{Start: idx.floor(m[0]), End: idx.ceil(m[1])}
		if sp.Len() == 0 {
			continue
		}
		spans = append(spans, sp)
	}
	return spans
}

// ReplaceAll replaces every match and returns the new text and the count.
// Pattern queries may reference groups in repl with $1 or ${name}.
func (s *Searcher) ReplaceAll(text, query string, opts SearchOptions, repl string) (string, int) {
	re, ok := s.compile(query, opts)
	if !ok {
		return text, 0
	}
	matches := nonEmpty(re.FindAllStringSubmatchIndex(text, -1))
	if len(matches) == 0 {
		return text, 0
	}
	// Right to left so earlier byte offsets stay valid.
	out := []byte(text)
	for i := len(matches) - 1; i >= 0; i-- {
		m := matches[i]
		r := expand(re, text, m, repl, opts.IsPattern)
		out = slices.Replace(out, m[0], m[1], []byte(r)...)
	}
	return string(out), len(matches)
}

// ReplaceAt replaces the single match covering span. It reports false when
// no match of query occupies exactly that span.
func (s *Searcher) ReplaceAt(text, query string, opts SearchOptions, span Span, repl string) (string, bool) {
	re, ok := s.compile(query, opts)
	if !ok {
		return text, false
	}
	idx := newCellIndex(text)
	for _, m := range nonEmpty(re.FindAllStringSubmatchIndex(text, -1)) {
		if idx.floor(m[0]) != span.Start || idx.ceil(m[1]) != span.End {
			continue
		}
		return text[:m[0]] + expand(re, text, m, repl, opts.IsPattern) + text[m[1]:], true
	}
	return text, false
}

// Search is a convenience wrapper that compiles without caching.
func Search(text, query string, opts SearchOptions) []Span {
	return uncached.Search(text, query, opts)
}

var uncached = NewSearcher(nil)

func expand(re *regexp.Regexp, text string, m []int, repl string, pattern bool) string {
	if !pattern {
		return repl
	}
	return string(re.ExpandString(nil, repl, text, m))
}

func nonEmpty(matches [][]int) [][]int {
	out := matches[:0]
	for _, m := range matches {
		if m[0] != m[1] {
			out = append(out, m)
		}
	}
	return out
}

// cellIndex maps byte offsets in a string to grapheme offsets.
type cellIndex struct {
	starts []int
}

func newCellIndex(text string) cellIndex {
	starts := make([]int, 0, len(text))
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		start, _ := g.Positions()
		starts = append(starts, start)
	}
	return cellIndex{starts: starts}
}

// floor returns the grapheme containing byte b.
func (c cellIndex) floor(b int) int {
	i, found := slices.BinarySearch(c.starts, b)
	if found {
		return i
	}
	return max(i-1, 0)
}

// ceil returns the first grapheme starting at or after byte b.
func (c cellIndex) ceil(b int) int {
	i, _ := slices.BinarySearch(c.starts, b)
	return i
}

// SearchState tracks the matches of the active search.
// Current is -1 until the first Next or Previous.
type SearchState struct {
	Query   string
	Options SearchOptions
	Matches []Span
	Current int

	// anchor is the first match at or after the cursor when the search
	// started. The first Next lands on it and the first Previous just before it.
	anchor int
}

// Next advances cyclically and returns the new current match.
func (s *SearchState) Next() (Span, bool) {
	n := len(s.Matches)
	if n == 0 {
		return Span{}, false
	}
	if s.Current < 0 {
		s.Current = s.anchor % n
	} else {
		s.Current = (s.Current + 1) % n
	}
	return s.Matches[s.Current], true
}

// Previous steps back cyclically and returns the new current match.
func (s *SearchState) Previous() (Span, bool) {
	n := len(s.Matches)
	if n == 0 {
		return Span{}, false
	}
	from := s.Current
	if from < 0 {
		from = s.anchor % n
	}
	s.Current = (from - 1 + n) % n
	return s.Matches[s.Current], true
}

// CurrentMatch returns the match at Current, if any.
func (s *SearchState) CurrentMatch() (Span, bool) {
	if s == nil || s.Current < 0 || s.Current >= len(s.Matches) {
		return Span{}, false
	}
	return s.Matches[s.Current], true
}

// Summary formats the position for a status line, for example "2/5".
// Before any match is selected it reports the count, for example "5 matches".
func (s *SearchState) Summary() string {
	if s == nil || len(s.Matches) == 0 {
		return "no matches"
	}
	if s.Current < 0 || s.Current >= len(s.Matches) {
		if len(s.Matches) == 1 {
			return "1 match"
		}
		return fmt.Sprintf("%d matches", len(s.Matches))
	}
	return fmt.Sprintf("%d/%d", s.Current+1, len(s.Matches))
}

// startBefore clears the selection and anchors on the first match starting
// at or after offset, wrapping to the first match.
func (s *SearchState) startBefore(offset int) {
	s.Current = -1
	k, _ := slices.BinarySearchFunc(s.Matches, offset, func(sp Span, off int) int {
		return sp.Start - off
	})
	if k >= len(s.Matches) {
		k = 0
	}
	s.anchor = k
}

func matchText(b *Buffer, sp Span) string {
	return b.TextRange(b.ToCursor(sp.Start), b.ToCursor(sp.End))
}
