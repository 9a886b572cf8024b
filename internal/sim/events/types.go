package events

import (
	"time"
)

// Event is the base interface for all episode events
type Event interface {
	// Type returns the event type as a string for filtering and logging
	Type() string
	// Timestamp returns when the event occurred
	Timestamp() time.Time
	// EpisodeID returns the ID of the episode this event belongs to
	EpisodeID() string
}

// BaseEvent provides common fields for all events
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Episode   string    `json:"episode_id"`
	Tick      int       `json:"tick"`
}

func newBase(eventType, episodeID string, tick int) BaseEvent {
	return BaseEvent{
		EventType: eventType,
		Time:      time.Now(),
		Episode:   episodeID,
		Tick:      tick,
	}
}

// Type implements Event interface
func (e BaseEvent) Type() string { return e.EventType }

// Timestamp implements Event interface
func (e BaseEvent) Timestamp() time.Time { return e.Time }

// EpisodeID implements Event interface
func (e BaseEvent) EpisodeID() string { return e.Episode }

// EventHandler is a function that processes events
type EventHandler func(Event)

// Subscriber represents an entity that can receive events
type Subscriber interface {
	// ID returns a unique identifier for this subscriber
	ID() string
	// HandleEvent processes an event
	HandleEvent(Event)
	// InterestedIn returns true if the subscriber wants to receive this event type
	InterestedIn(eventType string) bool
}

// Publisher is the interface for publishing events
type Publisher interface {
	Publish(Event)
}

// Bus is the main event bus interface
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
