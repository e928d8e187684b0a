package config

import (
	"os"
	"strconv"
	"time"
)

type Config struct {
	AgentPort     int
	ReporterPort  int
	SimulatorPort int
	LogLevel      string

	FeedURL   string
	ReportURL string

	OpenRouterAPIKey  string
	OpenRouterModel   string
	OpenRouterBaseURL string

	GeminiAPIKey string
	GeminiModel  string

	NatsURL   string
	NatsToken string

	PollInterval  time.Duration
	GraphInterval time.Duration
	TickInterval  time.Duration
	CallTimeout   time.Duration

	MaxHistory    int
	ShortWindow   int
	LongWindow    int
	HistoryLength int
}

func Load() Config {
	return Config{
		AgentPort:     envInt("AGENT_PORT", 8100),
		ReporterPort:  envInt("REPORTER_PORT", 8001),
		SimulatorPort: envInt("SIMULATOR_PORT", 8000),
		LogLevel:      envStr("LOG_LEVEL", "info"),

		FeedURL:   envStr("FEED_URL", "http://localhost:8000/"),
		ReportURL: envStr("REPORT_URL", "http://localhost:8001"),

		OpenRouterAPIKey:  envStr("OPENROUTER_API_KEY", ""),
		OpenRouterModel:   envStr("OPENROUTER_MODEL", "nvidia/nemotron-nano-9b-v2"),
		OpenRouterBaseURL: envStr("OPENROUTER_BASE_URL", ""),

		GeminiAPIKey: envStr("GEMINI_API_KEY", ""),
		GeminiModel:  envStr("GEMINI_MODEL", "gemini-flash-lite-latest"),

		NatsURL:   envStr("NATS_URL", ""),
		NatsToken: envStr("NATS_TOKEN", ""),

		PollInterval:  envDuration("POLL_INTERVAL", 5*time.Second),
		GraphInterval: envDuration("GRAPH_INTERVAL", 60*time.Second),
		TickInterval:  envDuration("TICK_INTERVAL", 5*time.Second),
		CallTimeout:   envDuration("CALL_TIMEOUT", 30*time.Second),

		MaxHistory:    envInt("MAX_HISTORY", 200),
		ShortWindow:   envInt("SHORT_WINDOW", 10),
		LongWindow:    envInt("LONG_WINDOW", 100),
		HistoryLength: envInt("GRAPH_HISTORY_LENGTH", 50),
	}
}

func envStr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
