package editor

// Key is a logical key. Physical bindings are resolved by the host.
type Key int

const (
	KeyNone Key = iota
	// KeyRune is a printable key; the literal is carried in KeyEvent.Text.
	KeyRune

	KeyInsertBefore
	KeyInsertAfter
	KeyInsertLineStart
	KeyInsertLineEnd
	KeyOpenBelow
	KeyOpenAbove

	KeyLeft
	KeyRight
	KeyUp
	KeyDown
	KeyWordForward
	KeyWordBackward
	KeyLineStart
	KeyLineEnd
	KeyDocStart
	KeyDocEnd
	KeyPageUp
	KeyPageDown

	KeyDeleteUnder
	KeyDeleteBefore
	KeyDeleteLine
	KeyUndo
	KeyRedo
	KeySearchForward
	KeyFindNext
	KeyFindPrevious
	KeyCopyLine
	KeyCut
	KeyPaste

	KeyLeaveInsert
	KeyNewline
	KeyBackspace
	KeyDelete
	KeyTab
)

var keyNames = map[Key]string{
	KeyNone:            "none",
	KeyRune:            "rune",
	KeyInsertBefore:    "insert-before",
	KeyInsertAfter:     "insert-after",
	KeyInsertLineStart: "insert-line-start",
	KeyInsertLineEnd:   "insert-line-end",
	KeyOpenBelow:       "open-below",
	KeyOpenAbove:       "open-above",
	KeyLeft:            "left",
	KeyRight:           "right",
	KeyUp:              "up",
	KeyDown:            "down",
	KeyWordForward:     "word-forward",
	KeyWordBackward:    "word-backward",
	KeyLineStart:       "line-start",
	KeyLineEnd:         "line-end",
	KeyDocStart:        "doc-start",
	KeyDocEnd:          "doc-end",
	KeyPageUp:          "page-up",
	KeyPageDown:        "page-down",
	KeyDeleteUnder:     "delete-under",
	KeyDeleteBefore:    "delete-before",
	KeyDeleteLine:      "delete-line",
	KeyUndo:            "undo",
	KeyRedo:            "redo",
	KeySearchForward:   "search-forward",
	KeyFindNext:        "find-next",
	KeyFindPrevious:    "find-previous",
	KeyCopyLine:        "copy-line",
	KeyCut:             "cut",
	KeyPaste:           "paste",
	KeyLeaveInsert:     "leave-insert",
	KeyNewline:         "newline",
	KeyBackspace:       "backspace",
	KeyDelete:          "delete",
	KeyTab:             "tab",
}

func (k Key) String() string {
	if n, ok := keyNames[k]; ok {
		return n
	}
	return "unknown"
}

// KeyEvent is a logical key plus the literal text the physical key produced, if any.
type KeyEvent struct {
	Key  Key
	Text string
}

// Rune builds a printable key event.
func Rune(text string) KeyEvent {
	return KeyEvent{Key: KeyRune, Text: text}
}

// Press builds a key event without literal text.
func Press(k Key) KeyEvent {
	return KeyEvent{Key: k}
}
