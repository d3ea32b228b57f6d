package events

import "sync"

// Emitted is one recorded publication.
type Emitted struct {
	Event   string
	Payload any
}

// Recorder is a Publisher that remembers everything published to it.
// Tests inject it in place of the broker-backed publisher and assert on
// the recorded sequence.
type Recorder struct {
	mu      sync.Mutex
	emitted []Emitted
}

// Publish implements Publisher.
func (r *Recorder) Publish(event string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted = append(r.emitted, Emitted{Event: event, Payload: payload})
}

// All returns a copy of every recorded publication, oldest first.
func (r *Recorder) All() []Emitted {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Emitted(nil), r.emitted...)
}

// Named returns the recorded publications matching the given event name.
func (r *Recorder) Named(event string) []Emitted {
	var out []Emitted
	for _, e := range r.All() {
		if e.Event == event {
			out = append(out, e)
		}
	}
	return out
}

// Reset forgets everything recorded so far.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.emitted = nil
}
