package event

import (
	"encoding/json"
	"testing"
)

func TestDecodeBatch(t *testing.T) {
	raw := `[
		{"event_type": "network_metric", "region": "Dallas", "timestamp": 1761489300.5, "latency_ms": 42.7, "packet_loss_percent": 0.3},
		{"event_type": "social_media_post", "region": "Chicago", "timestamp": 1761489301.0, "source": "X (Twitter)", "text": "my connection is flawless today"},
		{"event_type": "support_interaction", "region": "Rural Iowa", "timestamp": 1761489302.0, "channel": "chat", "log": "customer reports dropped calls"},
		{"event_type": "app_crash", "region": "global", "timestamp": 1761489303.0, "platform": "iOS", "app_version": "5.2.1"},
		{"event_type": "carrier_pigeon", "region": "Dallas", "timestamp": 1761489304.0}
	]`

	var events []Event
	if err := json.Unmarshal([]byte(raw), &events); err != nil {
		t.Fatalf("failed to decode batch: %v", err)
	}
	if len(events) != 5 {
		t.Fatalf("expected 5 events, got %d", len(events))
	}

	metric := events[0]
	if metric.Type != KindNetworkMetric {
		t.Errorf("expected kind %q, got %q", KindNetworkMetric, metric.Type)
	}
	if metric.Region != "Dallas" {
		t.Errorf("expected region Dallas, got %q", metric.Region)
	}
	if metric.LatencyMS != 42.7 {
		t.Errorf("expected latency 42.7, got %f", metric.LatencyMS)
	}
	if metric.PacketLossPercent != 0.3 {
		t.Errorf("expected loss 0.3, got %f", metric.PacketLossPercent)
	}

	post := events[1]
	if post.Source != "X (Twitter)" {
		t.Errorf("expected source X (Twitter), got %q", post.Source)
	}
	if post.Text != "my connection is flawless today" {
		t.Errorf("unexpected text %q", post.Text)
	}

	crash := events[3]
	if crash.Region != RegionGlobal {
		t.Errorf("expected global region, got %q", crash.Region)
	}
	if crash.Platform != "iOS" {
		t.Errorf("expected platform iOS, got %q", crash.Platform)
	}

	// Unknown kinds decode without error.
	if events[4].Type != "carrier_pigeon" {
		t.Errorf("expected unknown kind preserved, got %q", events[4].Type)
	}
}

func TestTextBody(t *testing.T) {
	tests := []struct {
		name string
		evt  Event
		want string
	}{
		{"social post uses text", Event{Type: KindSocialMediaPost, Text: "great signal"}, "great signal"},
		{"support interaction uses log", Event{Type: KindSupportInteraction, Log: "billing dispute"}, "billing dispute"},
		{"network metric has none", Event{Type: KindNetworkMetric, LatencyMS: 40}, ""},
		{"empty post has none", Event{Type: KindSocialMediaPost}, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.evt.TextBody(); got != tt.want {
				t.Errorf("TextBody() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestIsTextual(t *testing.T) {
	tests := []struct {
		kind string
		want bool
	}{
		{KindSocialMediaPost, true},
		{KindSupportInteraction, true},
		{KindNetworkMetric, false},
		{KindAppCrash, false},
		{"carrier_pigeon", false},
	}

	for _, tt := range tests {
		t.Run(tt.kind, func(t *testing.T) {
			if got := (Event{Type: tt.kind}).IsTextual(); got != tt.want {
				t.Errorf("IsTextual() for %q = %v, want %v", tt.kind, got, tt.want)
			}
		})
	}
}

func TestMetricRoundTrip(t *testing.T) {
	evt := Event{
		Type:              KindNetworkMetric,
		Region:            "New York",
		Timestamp:         1761489300,
		LatencyMS:         61.2,
		PacketLossPercent: 0.4,
	}

	data, err := json.Marshal(evt)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	var decoded map[string]any
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}

	// Kind-specific fields of other kinds must not leak into the wire form.
	for _, key := range []string{"text", "log", "source", "channel", "platform", "app_version"} {
		if _, ok := decoded[key]; ok {
			t.Errorf("unexpected key %q in marshaled metric", key)
		}
	}
	if decoded["latency_ms"].(float64) != 61.2 {
		t.Errorf("expected latency 61.2, got %v", decoded["latency_ms"])
	}
}
