package keys

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zjrosen/inkwell/internal/editor"
)

// ChordTimeout is how long the first key of a chord waits for the second.
const ChordTimeout = 500 * time.Millisecond

// DefaultChords are the two-key navigation chords.
var DefaultChords = map[string]editor.Key{
	"dd": editor.KeyDeleteLine,
	"gg": editor.KeyDocStart,
	"yy": editor.KeyCopyLine,
}

// SeqResult is what feeding one key into a Sequencer produced.
type SeqResult int

const (
	// SeqMiss means the key is not part of a chord and should be resolved
	// on its own. Any pending prefix has been dropped.
	SeqMiss SeqResult = iota
	// SeqPending means the key started a chord and was consumed.
	SeqPending
	// SeqComplete means the key finished a chord.
	SeqComplete
)

// Sequencer resolves two-key chords within a timeout.
type Sequencer struct {
	chords  map[string]editor.Key
	timeout time.Duration
	now     func() time.Time

	pending string
	at      time.Time
}

// NewSequencer creates a sequencer for chords. A nil map uses DefaultChords.
func NewSequencer(chords map[string]editor.Key, timeout time.Duration) *Sequencer {
	if chords == nil {
		chords = DefaultChords
	}
	if timeout <= 0 {
		timeout = ChordTimeout
	}
	return &Sequencer{chords: chords, timeout: timeout, now: time.Now}
}

// Feed offers one key press, named the way tea.KeyMsg.String names it.
func (s *Sequencer) Feed(k string) (editor.Key, SeqResult) {
	now := s.now()
	if s.pending != "" {
		prefix := s.pending
		fresh := now.Sub(s.at) <= s.timeout
		s.pending = ""
		if fresh {
			if target, ok := s.chords[prefix+k]; ok {
				return target, SeqComplete
			}
		}
	}
	if s.isPrefix(k) {
		s.pending = k
		s.at = now
		return editor.KeyNone, SeqPending
	}
	return editor.KeyNone, SeqMiss
}

// Pending returns the unfinished chord prefix, or "" when none.
func (s *Sequencer) Pending() string {
	if s.pending != "" && s.now().Sub(s.at) > s.timeout {
		return ""
	}
	return s.pending
}

// Reset drops any pending prefix.
func (s *Sequencer) Reset() { s.pending = "" }

func (s *Sequencer) isPrefix(k string) bool {
	for chord := range s.chords {
		if len(chord) > len(k) && chord[:len(k)] == k {
			return true
		}
	}
	return false
}

// Resolver turns terminal key presses into editor key events.
type Resolver struct {
	Navigation NavigationKeyMap
	Insert     InsertKeyMap
	seq        *Sequencer
}

// NewResolver creates a resolver with the default bindings and chords.
func NewResolver() *Resolver {
	return &Resolver{
		Navigation: DefaultNavigationKeyMap(),
		Insert:     DefaultInsertKeyMap(),
		seq:        NewSequencer(nil, ChordTimeout),
	}
}

// Resolve maps msg to an editor key event for mode. It returns false while
// a chord prefix is pending, when there is nothing to hand to the session.
func (r *Resolver) Resolve(mode editor.Mode, msg tea.KeyMsg) (editor.KeyEvent, bool) {
	text := Literal(msg)
	if mode == editor.ModeInsert {
		r.seq.Reset()
		if k, ok := lookup(r.Insert.table(), msg); ok {
			return editor.Press(k), true
		}
		if text != "" {
			return editor.Rune(text), true
		}
		return editor.Press(editor.KeyNone), true
	}

	switch k, res := r.seq.Feed(msg.String()); res {
	case SeqComplete:
		return editor.Press(k), true
	case SeqPending:
		return editor.KeyEvent{}, false
	}
	if k, ok := lookup(r.Navigation.table(), msg); ok {
		return editor.KeyEvent{Key: k, Text: text}, true
	}
	if text != "" {
		return editor.Rune(text), true
	}
	return editor.Press(editor.KeyNone), true
}

// Pending returns the chord prefix waiting for its second key.
func (r *Resolver) Pending() string { return r.seq.Pending() }

// Reset drops any pending chord prefix.
func (r *Resolver) Reset() { r.seq.Reset() }
