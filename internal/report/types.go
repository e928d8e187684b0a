package report

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/pulseops/regionpulse/internal/decision"
)

// Submission is the payload the agent POSTs to the reporting server for
// one region: the decision plus the data that led to it. The bundle is
// kept raw so the sink stores exactly what was submitted.
type Submission struct {
	Region     string            `json:"region"`
	Decision   decision.Decision `json:"decision"`
	DataBundle json.RawMessage   `json:"data_bundle,omitempty"`
}

// Report is a stored submission with sink-assigned identity.
type Report struct {
	ID         uuid.UUID `json:"id"`
	ReceivedAt time.Time `json:"received_at"`
	Submission
}
