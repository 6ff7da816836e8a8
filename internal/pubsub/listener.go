package pubsub

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
)

// ContinuousListener turns one subscription into a stream of tea.Cmds.
// Update must call Listen again after each delivered event.
type ContinuousListener[T any] struct {
	done <-chan struct{}
	ch   <-chan Event[T]
}

// NewContinuousListener subscribes to broker for the lifetime of ctx.
func NewContinuousListener[T any](ctx context.Context, broker Subscriber[T]) *ContinuousListener[T] {
	return &ContinuousListener[T]{done: ctx.Done(), ch: broker.Subscribe(ctx)}
}

// Next blocks until an event arrives. It reports false once the context
// is done or the broker has closed the subscription.
func (l *ContinuousListener[T]) Next() (Event[T], bool) {
	select {
	case <-l.done:
		return Event[T]{}, false
	case ev, ok := <-l.ch:
		return ev, ok
	}
}

// Listen returns a command yielding the next event, or nil when Next
// reports false so the program stops listening.
func (l *ContinuousListener[T]) Listen() tea.Cmd {
	return func() tea.Msg {
		ev, ok := l.Next()
		if !ok {
			return nil
		}
		return ev
	}
}
