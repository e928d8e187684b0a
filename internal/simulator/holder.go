package simulator

import (
	"sync"

	"github.com/pulseops/regionpulse/internal/event"
)

// Holder keeps the most recent batch for the feed server. The tick loop
// writes, request handlers read, so both go through the mutex.
type Holder struct {
	mu    sync.Mutex
	batch []event.Event
}

func NewHolder() *Holder {
	return &Holder{}
}

// Set replaces the current batch.
func (h *Holder) Set(batch []event.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.batch = batch
}

// Latest returns a copy of the current batch, never nil.
func (h *Holder) Latest() []event.Event {
	h.mu.Lock()
	defer h.mu.Unlock()

	out := make([]event.Event, len(h.batch))
	copy(out, h.batch)
	return out
}
