package config

import (
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Clear any env vars that might be set
	for _, key := range []string{
		"AGENT_PORT", "REPORTER_PORT", "SIMULATOR_PORT", "LOG_LEVEL",
		"FEED_URL", "REPORT_URL", "OPENROUTER_API_KEY", "OPENROUTER_MODEL",
		"OPENROUTER_BASE_URL", "GEMINI_API_KEY", "GEMINI_MODEL",
		"NATS_URL", "NATS_TOKEN", "POLL_INTERVAL", "GRAPH_INTERVAL",
		"TICK_INTERVAL", "CALL_TIMEOUT", "MAX_HISTORY",
		"SHORT_WINDOW", "LONG_WINDOW", "GRAPH_HISTORY_LENGTH",
	} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.AgentPort != 8100 {
		t.Errorf("expected default agent port 8100, got %d", cfg.AgentPort)
	}
	if cfg.ReporterPort != 8001 {
		t.Errorf("expected default reporter port 8001, got %d", cfg.ReporterPort)
	}
	if cfg.SimulatorPort != 8000 {
		t.Errorf("expected default simulator port 8000, got %d", cfg.SimulatorPort)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("expected default log level info, got %s", cfg.LogLevel)
	}
	if cfg.FeedURL != "http://localhost:8000/" {
		t.Errorf("expected default feed url, got %s", cfg.FeedURL)
	}
	if cfg.ReportURL != "http://localhost:8001" {
		t.Errorf("expected default report url, got %s", cfg.ReportURL)
	}
	if cfg.OpenRouterModel != "nvidia/nemotron-nano-9b-v2" {
		t.Errorf("expected default model, got %s", cfg.OpenRouterModel)
	}
	if cfg.NatsURL != "" {
		t.Errorf("expected bus disabled by default, got %s", cfg.NatsURL)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("expected default poll interval 5s, got %s", cfg.PollInterval)
	}
	if cfg.GraphInterval != 60*time.Second {
		t.Errorf("expected default graph interval 60s, got %s", cfg.GraphInterval)
	}
	if cfg.CallTimeout != 30*time.Second {
		t.Errorf("expected default call timeout 30s, got %s", cfg.CallTimeout)
	}
	if cfg.MaxHistory != 200 {
		t.Errorf("expected default max history 200, got %d", cfg.MaxHistory)
	}
	if cfg.ShortWindow != 10 || cfg.LongWindow != 100 || cfg.HistoryLength != 50 {
		t.Errorf("expected default windows 10/100/50, got %d/%d/%d",
			cfg.ShortWindow, cfg.LongWindow, cfg.HistoryLength)
	}
}

func TestLoad_CustomValues(t *testing.T) {
	t.Setenv("AGENT_PORT", "9100")
	t.Setenv("FEED_URL", "http://sim:8000/")
	t.Setenv("REPORT_URL", "http://reporter:8001")
	t.Setenv("OPENROUTER_API_KEY", "sk-or-test")
	t.Setenv("OPENROUTER_BASE_URL", "http://localhost:4000")
	t.Setenv("NATS_URL", "nats://bus:4222")
	t.Setenv("NATS_TOKEN", "s3cr3t-token")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("POLL_INTERVAL", "250ms")
	t.Setenv("MAX_HISTORY", "500")
	t.Setenv("LONG_WINDOW", "20")

	cfg := Load()

	if cfg.AgentPort != 9100 {
		t.Errorf("expected agent port 9100, got %d", cfg.AgentPort)
	}
	if cfg.FeedURL != "http://sim:8000/" {
		t.Errorf("expected custom feed url, got %s", cfg.FeedURL)
	}
	if cfg.ReportURL != "http://reporter:8001" {
		t.Errorf("expected custom report url, got %s", cfg.ReportURL)
	}
	if cfg.OpenRouterAPIKey != "sk-or-test" {
		t.Errorf("expected custom api key, got %s", cfg.OpenRouterAPIKey)
	}
	if cfg.OpenRouterBaseURL != "http://localhost:4000" {
		t.Errorf("expected custom base url, got %s", cfg.OpenRouterBaseURL)
	}
	if cfg.NatsURL != "nats://bus:4222" {
		t.Errorf("expected custom nats url, got %s", cfg.NatsURL)
	}
	if cfg.NatsToken != "s3cr3t-token" {
		t.Errorf("expected custom nats token, got %s", cfg.NatsToken)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("expected debug log level, got %s", cfg.LogLevel)
	}
	if cfg.PollInterval != 250*time.Millisecond {
		t.Errorf("expected poll interval 250ms, got %s", cfg.PollInterval)
	}
	if cfg.MaxHistory != 500 {
		t.Errorf("expected max history 500, got %d", cfg.MaxHistory)
	}
	if cfg.LongWindow != 20 {
		t.Errorf("expected long window 20, got %d", cfg.LongWindow)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("AGENT_PORT", "notanumber")
	t.Setenv("POLL_INTERVAL", "whenever")

	cfg := Load()

	if cfg.AgentPort != 8100 {
		t.Errorf("expected default port on invalid value, got %d", cfg.AgentPort)
	}
	if cfg.PollInterval != 5*time.Second {
		t.Errorf("expected default poll interval on invalid value, got %s", cfg.PollInterval)
	}
}
