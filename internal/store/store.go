// Package store holds the reporter's bounded in-memory report buffer.
// Reports live only for the lifetime of the process; once capacity is
// reached the oldest report is evicted to make room for the newest.
package store

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/pulseops/regionpulse/internal/report"
)

// DefaultMaxHistory is how many reports the buffer keeps when no
// capacity is given.
const DefaultMaxHistory = 200

// Store is a fixed-capacity FIFO ring buffer of reports. A single mutex
// serializes every write and every read, so listers never observe a
// half-applied eviction.
type Store struct {
	mu       sync.Mutex
	capacity int
	reports  []report.Report
}

// New builds an empty store. Non-positive capacity takes the default.
func New(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultMaxHistory
	}
	return &Store{
		capacity: capacity,
		reports:  make([]report.Report, 0, capacity),
	}
}

// Ingest wraps a submission with a server-assigned ID and timestamp and
// appends it. At capacity the oldest report is evicted first; the
// newest is never dropped.
func (s *Store) Ingest(sub report.Submission) report.Report {
	r := report.Report{
		ID:         uuid.New(),
		ReceivedAt: time.Now().UTC(),
		Submission: sub,
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if len(s.reports) == s.capacity {
		copy(s.reports, s.reports[1:])
		s.reports[len(s.reports)-1] = r
		return r
	}
	s.reports = append(s.reports, r)
	return r
}

// List returns a snapshot copy of the buffer in insertion order, oldest
// first. The copy is taken under the write mutex.
func (s *Store) List() []report.Report {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]report.Report, len(s.reports))
	copy(out, s.reports)
	return out
}

// Len reports how many reports are currently buffered.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.reports)
}
