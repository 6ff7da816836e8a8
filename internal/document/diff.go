package document

import (
	"fmt"
	"unicode/utf8"

	"github.com/sergi/go-diff/diffmatchpatch"
)

// Change summarizes how the text on disk differs from the text in memory.
type Change struct {
	// Added and Removed count characters present only on disk and only in
	// memory respectively.
	Added   int
	Removed int
	// Lines counts lines added plus lines removed, so an edited line
	// counts twice.
	Lines int
}

// Empty reports whether the two texts were identical.
func (c Change) Empty() bool { return c.Added == 0 && c.Removed == 0 }

func (c Change) String() string {
	if c.Empty() {
		return "no changes"
	}
	return fmt.Sprintf("+%d -%d chars, %d lines changed", c.Added, c.Removed, c.Lines)
}

// DiffSummary compares the in-memory text with the text now on disk.
func DiffSummary(inMemory, onDisk string) Change {
	if inMemory == onDisk {
		return Change{}
	}
	dmp := diffmatchpatch.New()

	diffs := dmp.DiffMain(inMemory, onDisk, false)
	diffs = dmp.DiffCleanupSemantic(diffs)

	var c Change
	for _, d := range diffs {
		switch d.Type {
		case diffmatchpatch.DiffInsert:
			c.Added += utf8.RuneCountInString(d.Text)
		case diffmatchpatch.DiffDelete:
			c.Removed += utf8.RuneCountInString(d.Text)
		}
	}

	// Line level pass: each line hashes to one rune so the diff counts lines.
	// A trailing newline on both sides keeps the last line comparable.
	a, b, _ := dmp.DiffLinesToRunes(inMemory+"\n", onDisk+"\n")
	for _, d := range dmp.DiffMainRunes(a, b, false) {
		if d.Type != diffmatchpatch.DiffEqual {
			c.Lines += utf8.RuneCountInString(d.Text)
		}
	}
	return c
}
