package editor

import (
	"sync"
	"time"
)

// TimerKind identifies a session timer.
type TimerKind int

const (
	TimerAutoSave TimerKind = iota
	TimerRecenter
)

func (k TimerKind) String() string {
	switch k {
	case TimerAutoSave:
		return "auto-save"
	case TimerRecenter:
		return "recenter"
	default:
		return "unknown"
	}
}

// TimerEvent is delivered on Session.Timers when a timer fires. The host
// passes it back to Session.HandleTimer on its own event loop.
type TimerEvent struct {
	Kind      TimerKind
	SessionID string
	gen       uint64
}

// debouncer keeps at most one pending timer. Rescheduling cancels the
// pending one; events from superseded timers are rejected by consume.
type debouncer struct {
	mu        sync.Mutex
	kind      TimerKind
	sessionID string
	delay     time.Duration
	timer     *time.Timer
	gen       uint64
	pending   bool
	out       chan<- TimerEvent
	done      chan struct{}
	stopped   bool
}

func newDebouncer(kind TimerKind, sessionID string, delay time.Duration, out chan<- TimerEvent) *debouncer {
	return &debouncer{
		kind:      kind,
		sessionID: sessionID,
		delay:     delay,
		out:       out,
		done:      make(chan struct{}),
	}
}

func (d *debouncer) schedule() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || d.delay <= 0 {
		return
	}
	if d.timer != nil {
		d.timer.Stop()
	}
	d.gen++
	d.pending = true
	ev := TimerEvent{Kind: d.kind, SessionID: d.sessionID, gen: d.gen}
	d.timer = time.AfterFunc(d.delay, func() {
		select {
		case d.out <- ev:
		case <-d.done:
		}
	})
}

// cancel drops the pending timer, if any.
func (d *debouncer) cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.timer != nil {
		d.timer.Stop()
	}
	d.pending = false
}

// consume reports whether ev belongs to the pending timer and clears it.
func (d *debouncer) consume(ev TimerEvent) bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped || !d.pending || ev.gen != d.gen {
		return false
	}
	d.pending = false
	return true
}

func (d *debouncer) isPending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending
}

// stop cancels the pending timer and releases any blocked send.
func (d *debouncer) stop() {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.stopped {
		return
	}
	d.stopped = true
	d.pending = false
	if d.timer != nil {
		d.timer.Stop()
	}
	close(d.done)
}
