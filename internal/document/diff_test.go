package document

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDiffSummary(t *testing.T) {
	tests := []struct {
		name     string
		inMemory string
		onDisk   string
		want     Change
	}{
		{"identical", "same\ntext", "same\ntext", Change{}},
		{"appended line", "one", "one\ntwo", Change{Added: 4, Lines: 1}},
		{"removed word", "a quick fox", "a fox", Change{Removed: 6, Lines: 2}},
		{"from empty", "", "hello", Change{Added: 5, Lines: 2}},
		{"to empty", "héllo", "", Change{Removed: 5, Lines: 2}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.want, DiffSummary(tt.inMemory, tt.onDisk))
		})
	}
}

func TestDiffSummary_Replacement(t *testing.T) {
	c := DiffSummary("line one\nline two\nline three", "line one\nline 2\nline three")
	require.False(t, c.Empty())
	require.Positive(t, c.Added)
	require.Positive(t, c.Removed)
	require.Equal(t, 2, c.Lines, "one line removed and one added")
}

func TestChange_String(t *testing.T) {
	require.Equal(t, "no changes", Change{}.String())
	require.Equal(t, "+3 -1 chars, 2 lines changed", Change{Added: 3, Removed: 1, Lines: 2}.String())
}
