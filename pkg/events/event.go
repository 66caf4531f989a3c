package events

import (
	"context"
	"time"
)

// Event types carried on the bus. The subject is "events.<type>".
const (
	DOCUMENT_CREATED = "DOCUMENT_CREATED"
	DOCUMENT_UPDATED = "DOCUMENT_UPDATED"
	DOCUMENT_DELETED = "DOCUMENT_DELETED"
	SUBTOPIC_CREATED = "SUBTOPIC_CREATED"
	SUBJECTS_CHANGED = "SUBJECTS_CHANGED"
	ARTICLE_CREATED  = "ARTICLE_CREATED"
	ARTICLE_UPDATED  = "ARTICLE_UPDATED"
	ARTICLE_DELETED  = "ARTICLE_DELETED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "DOCUMENT_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// Publisher is anything that can put an event on the bus.
type Publisher interface {
	Publish(ctx context.Context, event Event) error
}

type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func NewEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now().UTC(),
	}
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NopPublisher drops every event. Used when no bus is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }

// Recorder keeps published events in memory.
type Recorder struct {
	Events []Event
}

func (r *Recorder) Publish(_ context.Context, event Event) error {
	r.Events = append(r.Events, event)
	return nil
}

// Types returns the recorded event types in publish order.
func (r *Recorder) Types() []string {
	out := make([]string, len(r.Events))
	for i, e := range r.Events {
		out[i] = e.EventType()
	}
	return out
}
