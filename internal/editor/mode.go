package editor

// Mode is the editing mode.
type Mode int

const (
	// ModeNavigation is the initial mode. Keys are commands and never insert text.
	ModeNavigation Mode = iota
	// ModeInsert inserts unrecognized printable keys as literal text.
	ModeInsert
)

func (m Mode) String() string {
	switch m {
	case ModeNavigation:
		return "NAVIGATION"
	case ModeInsert:
		return "INSERT"
	default:
		return "UNKNOWN"
	}
}

// CursorStyle is the cursor marker a renderer should draw for a mode.
type CursorStyle int

const (
	CursorBlock CursorStyle = iota
	CursorBar
)

// CursorStyle returns the marker for the mode.
func (m Mode) CursorStyle() CursorStyle {
	if m == ModeInsert {
		return CursorBar
	}
	return CursorBlock
}
