package wallet

// Event is a notification about a state change. Events are emitted by
// handlers and delivered to observers only after the state change is
// committed.
type Event interface {
	// Name is the event kind, for example "Submission".
	Name() string
	// Attributes returns a flat representation of the event payload.
	Attributes() map[string]string
}

// EventSink is an observer of committed events.
type EventSink interface {
	Publish(Context, Event) error
}

// NopSink is an EventSink that drops all events.
type NopSink struct{}

var _ EventSink = NopSink{}

func (NopSink) Publish(Context, Event) error {
	return nil
}
