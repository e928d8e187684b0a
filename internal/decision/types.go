package decision

import (
	"github.com/pulseops/regionpulse/internal/event"
	"github.com/pulseops/regionpulse/internal/happiness"
	"github.com/pulseops/regionpulse/internal/perception"
)

// Actions the decision service may choose. Anything else is rejected at
// the boundary.
const (
	ActionSendAlert        = "send_alert"
	ActionDraftSocialReply = "draft_social_reply"
	ActionLogAndMonitor    = "log_and_monitor"
)

// Bundle is everything the decision service sees for one region in one
// cycle. The happiness snapshot is a detached copy.
type Bundle struct {
	HappinessState happiness.Snapshot        `json:"happiness_state"`
	NetworkMetrics []event.Event             `json:"network_metrics"`
	RecentPosts    []perception.AnalyzedPost `json:"recent_posts"`
}

// Decision is the single proactive action chosen for a region.
// Parameters are free-form and pass through to the report untouched.
type Decision struct {
	Action     string         `json:"action"`
	Parameters map[string]any `json:"parameters"`
}
