package editor

import (
	"slices"

	"github.com/zjrosen/inkwell/internal/log"
)

// DefaultUndoCapacity is the number of frames kept when none is configured.
const DefaultUndoCapacity = 100

// Thresholds for DefaultCoalesce. These are tuning values, not a contract.
const (
	coalesceMaxBytes = 30
	coalesceMaxLines = 2
)

// Frame is a snapshot of the document and cursor, captured by value.
type Frame struct {
	Lines  []string
	Cursor Cursor
	// Size is the byte size of the document at capture time.
	Size int
}

func captureFrame(b *Buffer, c Cursor) Frame {
	return Frame{Lines: b.Lines(), Cursor: c, Size: b.Size()}
}

// EditKind classifies a pending edit for the coalescing policy.
type EditKind int

const (
	EditTyping EditKind = iota
	EditDelete
	// EditStructural is a multi-character operation such as a line
	// deletion or a replace; it always starts a new frame.
	EditStructural
)

// PendingEdit describes the edit about to be applied.
type PendingEdit struct {
	Kind EditKind
	// SessionStart is set for the first edit after entering insert mode and
	// for every edit issued from navigation mode.
	SessionStart bool
	// Size and Lines describe the document just before the edit.
	Size  int
	Lines int
}

// CoalescePolicy decides whether a pending edit folds into the frame on top
// of the undo stack (true) or needs a fresh frame (false).
type CoalescePolicy func(prev Frame, pending PendingEdit) bool

// DefaultCoalesce coalesces by edit-session boundary: a run of typing in one
// insert session shares a frame until it drifts too far from the snapshot.
func DefaultCoalesce(prev Frame, pending PendingEdit) bool {
	if pending.SessionStart || pending.Kind == EditStructural {
		return false
	}
	if absInt(pending.Size-prev.Size) > coalesceMaxBytes {
		return false
	}
	if absInt(pending.Lines-len(prev.Lines)) > coalesceMaxLines {
		return false
	}
	return true
}

// NeverCoalesce captures a frame before every edit.
func NeverCoalesce(Frame, PendingEdit) bool { return false }

// UndoConfig configures a History.
type UndoConfig struct {
	// Capacity bounds the undo stack; the oldest frame is evicted on overflow.
	Capacity int
	Coalesce CoalescePolicy
}

// DefaultUndoConfig returns a capacity of 100 with DefaultCoalesce.
func DefaultUndoConfig() UndoConfig {
	return UndoConfig{Capacity: DefaultUndoCapacity, Coalesce: DefaultCoalesce}
}

// History holds undo and redo stacks. There is no branching: any new
// checkpoint clears redo.
type History struct {
	undo     []Frame
	redo     []Frame
	capacity int
	coalesce CoalescePolicy
}

// NewHistory creates a history from cfg, filling zero values with defaults.
func NewHistory(cfg UndoConfig) *History {
	if cfg.Capacity <= 0 {
		cfg.Capacity = DefaultUndoCapacity
	}
	if cfg.Coalesce == nil {
		cfg.Coalesce = DefaultCoalesce
	}
	return &History{capacity: cfg.Capacity, coalesce: cfg.Coalesce}
}

// Checkpoint is called before every edit. It clears redo and pushes the
// frame returned by capture unless the policy folds the edit into the top
// frame. Returns whether a frame was pushed.
func (h *History) Checkpoint(pending PendingEdit, capture func() Frame) bool {
	h.redo = nil
	if len(h.undo) > 0 && h.coalesce(h.undo[len(h.undo)-1], pending) {
		return false
	}
	h.push(capture())
	return true
}

// Push captures current unconditionally and clears redo.
func (h *History) Push(current Frame) {
	h.redo = nil
	h.push(current)
}

func (h *History) push(f Frame) {
	h.undo = append(h.undo, f)
	if over := len(h.undo) - h.capacity; over > 0 {
		h.undo = slices.Delete(h.undo, 0, over)
		log.Debug(log.CatUndo, "Evicted oldest undo frame", "capacity", h.capacity)
	}
}

// Undo pops the most recent frame and stores current on the redo stack.
// Returns false when there is nothing to undo.
func (h *History) Undo(current Frame) (Frame, bool) {
	if len(h.undo) == 0 {
		return Frame{}, false
	}
	f := h.undo[len(h.undo)-1]
	h.undo = h.undo[:len(h.undo)-1]
	h.redo = append(h.redo, current)
	return f, true
}

// Redo is the mirror of Undo.
func (h *History) Redo(current Frame) (Frame, bool) {
	if len(h.redo) == 0 {
		return Frame{}, false
	}
	f := h.redo[len(h.redo)-1]
	h.redo = h.redo[:len(h.redo)-1]
	h.push(current)
	return f, true
}

// CanUndo reports whether the undo stack is non-empty.
func (h *History) CanUndo() bool { return len(h.undo) > 0 }

// CanRedo reports whether the redo stack is non-empty.
func (h *History) CanRedo() bool { return len(h.redo) > 0 }

// UndoDepth returns the number of undo frames.
func (h *History) UndoDepth() int { return len(h.undo) }

// RedoDepth returns the number of redo frames.
func (h *History) RedoDepth() int { return len(h.redo) }

// Clear drops both stacks.
func (h *History) Clear() {
	h.undo = nil
	h.redo = nil
}

func absInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
