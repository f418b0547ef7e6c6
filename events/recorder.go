package events

import (
	"sync"

	"github.com/iov-one/wallet"
)

// Recorder is an EventSink that keeps all published events in memory.
type Recorder struct {
	mu     sync.Mutex
	events []wallet.Event
}

var _ wallet.EventSink = (*Recorder)(nil)

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Publish(_ wallet.Context, e wallet.Event) error {
	r.mu.Lock()
	r.events = append(r.events, e)
	r.mu.Unlock()
	return nil
}

// Events returns all recorded events in the publication order.
func (r *Recorder) Events() []wallet.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]wallet.Event(nil), r.events...)
}

// Names returns the name of all recorded events in the publication order.
func (r *Recorder) Names() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	names := make([]string, len(r.events))
	for i, e := range r.events {
		names[i] = e.Name()
	}
	return names
}

// Reset drops all recorded events.
func (r *Recorder) Reset() {
	r.mu.Lock()
	r.events = nil
	r.mu.Unlock()
}
