// Package pubsub fans events out from editing sessions and the logger to
// any number of listeners, including Bubble Tea programs.
package pubsub

import (
	"context"
	"time"
)

// EventType is the lifecycle stage an event reports.
type EventType string

const (
	OpenedEvent  EventType = "opened"
	UpdatedEvent EventType = "updated"
	ClosedEvent  EventType = "closed"
)

// Event wraps a payload with its type and publish time.
type Event[T any] struct {
	Type      EventType
	Payload   T
	Timestamp time.Time
}

// Subscriber provides a subscription channel for events.
type Subscriber[T any] interface {
	Subscribe(ctx context.Context) <-chan Event[T]
}

// Publisher allows publishing events with a typed payload.
type Publisher[T any] interface {
	Publish(eventType EventType, payload T) int
}
