package editor

// Action is the operation a key resolves to in a given mode.
type Action int

const (
	// ActionNone means the key is unhandled and nothing happens.
	ActionNone Action = iota

	ActionInsertBefore
	ActionInsertAfter
	ActionInsertLineStart
	ActionInsertLineEnd
	ActionOpenBelow
	ActionOpenAbove

	ActionMoveLeft
	ActionMoveRight
	ActionMoveUp
	ActionMoveDown
	ActionWordForward
	ActionWordBackward
	ActionLineStart
	ActionLineEnd
	ActionDocStart
	ActionDocEnd
	ActionPageUp
	ActionPageDown

	ActionDeleteUnder
	ActionDeleteBefore
	ActionDeleteLine
	ActionUndo
	ActionRedo
	ActionSearchForward
	ActionFindNext
	ActionFindPrevious
	ActionCopyLine
	ActionCut
	ActionPaste

	ActionLeaveInsert
	ActionInsertText
	ActionSplitLine
	ActionBackspace
	ActionDeleteForward
	ActionInsertTab
)

var actionNames = map[Action]string{
	ActionNone:            "none",
	ActionInsertBefore:    "insert-before",
	ActionInsertAfter:     "insert-after",
	ActionInsertLineStart: "insert-line-start",
	ActionInsertLineEnd:   "insert-line-end",
	ActionOpenBelow:       "open-below",
	ActionOpenAbove:       "open-above",
	ActionMoveLeft:        "move-left",
	ActionMoveRight:       "move-right",
	ActionMoveUp:          "move-up",
	ActionMoveDown:        "move-down",
	ActionWordForward:     "word-forward",
	ActionWordBackward:    "word-backward",
	ActionLineStart:       "line-start",
	ActionLineEnd:         "line-end",
	ActionDocStart:        "doc-start",
	ActionDocEnd:          "doc-end",
	ActionPageUp:          "page-up",
	ActionPageDown:        "page-down",
	ActionDeleteUnder:     "delete-under",
	ActionDeleteBefore:    "delete-before",
	ActionDeleteLine:      "delete-line",
	ActionUndo:            "undo",
	ActionRedo:            "redo",
	ActionSearchForward:   "search-forward",
	ActionFindNext:        "find-next",
	ActionFindPrevious:    "find-previous",
	ActionCopyLine:        "copy-line",
	ActionCut:             "cut",
	ActionPaste:           "paste",
	ActionLeaveInsert:     "leave-insert",
	ActionInsertText:      "insert-text",
	ActionSplitLine:       "split-line",
	ActionBackspace:       "backspace",
	ActionDeleteForward:   "delete-forward",
	ActionInsertTab:       "insert-tab",
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "unknown"
}

// IsModeChange reports whether the action switches modes.
func (a Action) IsModeChange() bool {
	switch a {
	case ActionInsertBefore, ActionInsertAfter, ActionInsertLineStart, ActionInsertLineEnd,
		ActionOpenBelow, ActionOpenAbove, ActionLeaveInsert:
		return true
	}
	return false
}

// IsMotion reports whether the action only moves the cursor.
func (a Action) IsMotion() bool {
	switch a {
	case ActionMoveLeft, ActionMoveRight, ActionMoveUp, ActionMoveDown,
		ActionWordForward, ActionWordBackward, ActionLineStart, ActionLineEnd,
		ActionDocStart, ActionDocEnd, ActionPageUp, ActionPageDown,
		ActionFindNext, ActionFindPrevious:
		return true
	}
	return false
}

// Dispatch resolves a key event in a mode. Every (mode, key) pair yields an
// action; ActionNone marks the key as unhandled.
func Dispatch(mode Mode, ev KeyEvent) Action {
	switch mode {
	case ModeNavigation:
		return dispatchNavigation(ev)
	case ModeInsert:
		return dispatchInsert(ev)
	}
	return ActionNone
}

// dispatchNavigation is closed: keys outside the command set are swallowed.
func dispatchNavigation(ev KeyEvent) Action {
	switch ev.Key {
	case KeyInsertBefore:
		return ActionInsertBefore
	case KeyInsertAfter:
		return ActionInsertAfter
	case KeyInsertLineStart:
		return ActionInsertLineStart
	case KeyInsertLineEnd:
		return ActionInsertLineEnd
	case KeyOpenBelow:
		return ActionOpenBelow
	case KeyOpenAbove:
		return ActionOpenAbove
	case KeyLeft:
		return ActionMoveLeft
	case KeyRight:
		return ActionMoveRight
	case KeyUp:
		return ActionMoveUp
	case KeyDown:
		return ActionMoveDown
	case KeyWordForward:
		return ActionWordForward
	case KeyWordBackward:
		return ActionWordBackward
	case KeyLineStart:
		return ActionLineStart
	case KeyLineEnd:
		return ActionLineEnd
	case KeyDocStart:
		return ActionDocStart
	case KeyDocEnd:
		return ActionDocEnd
	case KeyPageUp:
		return ActionPageUp
	case KeyPageDown:
		return ActionPageDown
	case KeyDeleteUnder:
		return ActionDeleteUnder
	case KeyDeleteBefore:
		return ActionDeleteBefore
	case KeyDeleteLine:
		return ActionDeleteLine
	case KeyUndo:
		return ActionUndo
	case KeyRedo:
		return ActionRedo
	case KeySearchForward:
		return ActionSearchForward
	case KeyFindNext:
		return ActionFindNext
	case KeyFindPrevious:
		return ActionFindPrevious
	case KeyCopyLine:
		return ActionCopyLine
	case KeyCut:
		return ActionCut
	case KeyPaste:
		return ActionPaste
	case KeyNone, KeyRune, KeyLeaveInsert, KeyNewline, KeyBackspace, KeyDelete, KeyTab:
		return ActionNone
	}
	return ActionNone
}

// dispatchInsert is open: any key carrying literal text that is not an
// insert-mode command is inserted. Keys shared with navigation only act
// when they carry no text.
func dispatchInsert(ev KeyEvent) Action {
	switch ev.Key {
	case KeyLeaveInsert:
		return ActionLeaveInsert
	case KeyNewline:
		return ActionSplitLine
	case KeyBackspace:
		return ActionBackspace
	case KeyDelete:
		return ActionDeleteForward
	case KeyTab:
		return ActionInsertTab
	case KeyLeft:
		return ActionMoveLeft
	case KeyRight:
		return ActionMoveRight
	case KeyUp:
		return ActionMoveUp
	case KeyDown:
		return ActionMoveDown
	case KeyPageUp:
		return ActionPageUp
	case KeyPageDown:
		return ActionPageDown
	case KeyLineStart:
		return unlessText(ev, ActionLineStart)
	case KeyLineEnd:
		return unlessText(ev, ActionLineEnd)
	case KeyUndo:
		return unlessText(ev, ActionUndo)
	case KeyRedo:
		return unlessText(ev, ActionRedo)
	case KeyPaste:
		return unlessText(ev, ActionPaste)
	case KeyNone, KeyRune,
		KeyInsertBefore, KeyInsertAfter, KeyInsertLineStart, KeyInsertLineEnd, KeyOpenBelow, KeyOpenAbove,
		KeyWordForward, KeyWordBackward, KeyDocStart, KeyDocEnd,
		KeyDeleteUnder, KeyDeleteBefore, KeyDeleteLine,
		KeySearchForward, KeyFindNext, KeyFindPrevious, KeyCopyLine, KeyCut:
		return literal(ev)
	}
	return literal(ev)
}

func unlessText(ev KeyEvent, a Action) Action {
	if ev.Text != "" {
		return ActionInsertText
	}
	return a
}

func literal(ev KeyEvent) Action {
	if ev.Text == "" {
		return ActionNone
	}
	return ActionInsertText
}
