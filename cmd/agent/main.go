package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseops/regionpulse/internal/api"
	"github.com/pulseops/regionpulse/internal/bus"
	"github.com/pulseops/regionpulse/internal/config"
	"github.com/pulseops/regionpulse/internal/decision"
	"github.com/pulseops/regionpulse/internal/feed"
	"github.com/pulseops/regionpulse/internal/happiness"
	"github.com/pulseops/regionpulse/internal/openrouter"
	"github.com/pulseops/regionpulse/internal/perception"
	"github.com/pulseops/regionpulse/internal/processor"
	"github.com/pulseops/regionpulse/internal/report"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("agent starting", "port", cfg.AgentPort, "feed", cfg.FeedURL)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// LLM client
	if cfg.OpenRouterAPIKey == "" {
		slog.Error("OPENROUTER_API_KEY is required")
		os.Exit(1)
	}
	llm := openrouter.NewClient(cfg.OpenRouterAPIKey, cfg.OpenRouterModel, cfg.OpenRouterBaseURL)
	slog.Info("openrouter client ready", "model", cfg.OpenRouterModel)

	// Happiness tracker
	tracker := happiness.NewTracker(happiness.Config{
		ShortWindow:   cfg.ShortWindow,
		LongWindow:    cfg.LongWindow,
		HistoryLength: cfg.HistoryLength,
	})

	// Swarm bus (optional — the agent works without NATS, just no swarm signals)
	var busClient *bus.Client
	if cfg.NatsURL != "" {
		var err error
		busClient, err = bus.NewClient(cfg.NatsURL, cfg.NatsToken, slog.Default())
		if err != nil {
			slog.Error("failed to connect to NATS", "error", err)
			os.Exit(1)
		}
		defer busClient.Close()
		slog.Info("NATS connected", "url", cfg.NatsURL)
	} else {
		slog.Warn("NATS not configured — running without swarm signals")
	}

	// Processor — the aggregate/decide/report pipeline
	proc := processor.New(
		tracker,
		perception.NewAnalyzer(llm, slog.Default()),
		decision.NewMaker(llm, slog.Default()),
		report.NewClient(cfg.ReportURL, slog.Default()),
		busClient,
		cfg.CallTimeout,
		slog.Default(),
	)

	driver := processor.NewDriver(
		feed.NewClient(cfg.FeedURL, slog.Default()),
		proc,
		tracker,
		os.Stdout,
		cfg.PollInterval,
		cfg.GraphInterval,
		slog.Default(),
	)

	// Status API
	srv := api.NewServer(cfg.AgentPort, tracker)
	go func() {
		if err := srv.Start(); err != nil {
			slog.Error("HTTP server error", "error", err)
		}
	}()

	// Announce registration
	if busClient != nil {
		if err := busClient.Publish(bus.SubjectAgentRegistered, map[string]any{
			"timestamp": time.Now().UTC().Format(time.RFC3339),
			"port":      cfg.AgentPort,
		}); err != nil {
			slog.Warn("failed to publish registration", "error", err)
		}
	}

	// Graceful shutdown
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutting down")
		cancel()
	}()

	driver.Run(ctx)

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("agent stopped")
}

func setupLogging(level string) {
	var lvl slog.Level
	switch level {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	default:
		lvl = slog.LevelInfo
	}
	handler := slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: lvl})
	slog.SetDefault(slog.New(handler))
}
