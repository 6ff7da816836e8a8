package editor

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// graphemes splits s into grapheme clusters.
func graphemes(s string) []string {
	if s == "" {
		return nil
	}
	out := make([]string, 0, len(s))
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		out = append(out, g.Str())
	}
	return out
}

// graphemeLen returns the number of grapheme clusters in s.
func graphemeLen(s string) int {
	if s == "" {
		return 0
	}
	return uniseg.GraphemeClusterCount(s)
}

// byteOffset returns the byte index where grapheme col begins.
// Columns at or past the end map to len(s).
func byteOffset(s string, col int) int {
	if col <= 0 {
		return 0
	}
	g := uniseg.NewGraphemes(s)
	i := 0
	for g.Next() {
		if i == col {
			start, _ := g.Positions()
			return start
		}
		i++
	}
	return len(s)
}

// isWordCluster reports whether a grapheme cluster belongs to the word class [A-Za-z0-9_].
func isWordCluster(g string) bool {
	r, _ := utf8.DecodeRuneInString(g)
	return r == '_' ||
		(r >= 'a' && r <= 'z') ||
		(r >= 'A' && r <= 'Z') ||
		(r >= '0' && r <= '9')
}

// normalizeNewlines folds CRLF and lone CR into LF.
func normalizeNewlines(s string) string {
	if !strings.ContainsRune(s, '\r') {
		return s
	}
	s = strings.ReplaceAll(s, "\r\n", "\n")
	return strings.ReplaceAll(s, "\r", "\n")
}

func clampInt(v, lo, hi int) int {
	if hi < lo {
		hi = lo
	}
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
