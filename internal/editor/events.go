package editor

import "context"

// SessionEventKind names what happened in a session.
type SessionEventKind string

const (
	EventOpened      SessionEventKind = "opened"
	EventEdited      SessionEventKind = "edited"
	EventModeChanged SessionEventKind = "mode-changed"
	EventSaved       SessionEventKind = "saved"
	EventSaveFailed  SessionEventKind = "save-failed"
	EventReloaded    SessionEventKind = "reloaded"
	EventRecentered  SessionEventKind = "recentered"
	EventClosed      SessionEventKind = "closed"
)

// SessionEvent is published on the session broker.
type SessionEvent struct {
	Kind      SessionEventKind
	SessionID string
	Mode      Mode
	Cursor    Cursor
	Modified  bool
	Err       error
}

// Persister stores the final text of a session.
type Persister interface {
	Persist(ctx context.Context, text string) error
}

// PersisterFunc adapts a function to Persister.
type PersisterFunc func(ctx context.Context, text string) error

func (f PersisterFunc) Persist(ctx context.Context, text string) error {
	return f(ctx, text)
}
