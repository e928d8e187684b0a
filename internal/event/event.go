package event

// Kinds carried by the upstream feed. The batch is a flat JSON array;
// event_type discriminates which fields are populated.
const (
	KindNetworkMetric      = "network_metric"
	KindSocialMediaPost    = "social_media_post"
	KindSupportInteraction = "support_interaction"
	KindAppCrash           = "app_crash"
)

// RegionGlobal marks events that belong to no single region (app crashes).
const RegionGlobal = "global"

// Event is one feed item. Unknown event_type values decode fine and are
// ignored downstream.
type Event struct {
	Type      string  `json:"event_type"`
	Region    string  `json:"region"`
	Timestamp float64 `json:"timestamp"` // unix seconds

	// network_metric
	LatencyMS         float64 `json:"latency_ms,omitempty"`
	PacketLossPercent float64 `json:"packet_loss_percent,omitempty"`

	// social_media_post
	Source string `json:"source,omitempty"`
	Text   string `json:"text,omitempty"`

	// support_interaction
	Channel string `json:"channel,omitempty"`
	Log     string `json:"log,omitempty"`

	// app_crash
	Platform   string `json:"platform,omitempty"`
	AppVersion string `json:"app_version,omitempty"`
}

// TextBody returns the free-text payload of a social post or support
// interaction, empty for everything else.
func (e Event) TextBody() string {
	if e.Text != "" {
		return e.Text
	}
	return e.Log
}

// IsTextual reports whether the event carries analyzable customer text.
func (e Event) IsTextual() bool {
	return e.Type == KindSocialMediaPost || e.Type == KindSupportInteraction
}
