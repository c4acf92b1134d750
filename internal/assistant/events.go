package assistant

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type EventKind string

const (
	EventTaskAdded     EventKind = "task_added"
	EventTaskCompleted EventKind = "task_completed"
)

// Event is published by the mutation helpers. Title and Description are
// short human-readable notification text.
type Event struct {
	ID          string    `json:"id"`
	Kind        EventKind `json:"kind"`
	PersonID    string    `json:"personId"`
	PersonName  string    `json:"personName"`
	TaskID      string    `json:"taskId"`
	TaskTitle   string    `json:"taskTitle"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	At          time.Time `json:"at"`
}

func newEvent(kind EventKind, at time.Time) Event {
	return Event{ID: uuid.New().String(), Kind: kind, At: at}
}

// EventSink receives mutation notifications. Implementations must not
// block for long; Publish has no error return.
type EventSink interface {
	Publish(ctx context.Context, ev Event)
}

// NopSink discards every event.
type NopSink struct{}

func (NopSink) Publish(context.Context, Event) {}

// SinkFunc adapts a function to EventSink.
type SinkFunc func(ctx context.Context, ev Event)

func (f SinkFunc) Publish(ctx context.Context, ev Event) { f(ctx, ev) }

// MultiSink fans out to every sink in order.
type MultiSink []EventSink

func (m MultiSink) Publish(ctx context.Context, ev Event) {
	for _, s := range m {
		if s != nil {
			s.Publish(ctx, ev)
		}
	}
}

// RecordingSink keeps every event it receives. Intended for tests and
// short-lived command runs.
type RecordingSink struct {
	Events []Event
}

func (r *RecordingSink) Publish(_ context.Context, ev Event) {
	r.Events = append(r.Events, ev)
}
