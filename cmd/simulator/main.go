package main

import (
	"context"
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/pulseops/regionpulse/internal/config"
	"github.com/pulseops/regionpulse/internal/simulator"
)

func main() {
	cfg := config.Load()
	setupLogging(cfg.LogLevel)

	slog.Info("simulator starting", "port", cfg.SimulatorPort, "tick_interval", cfg.TickInterval)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	// Text source (Gemini when configured, canned pools otherwise)
	var text simulator.TextSource
	if cfg.GeminiAPIKey != "" {
		src, err := simulator.NewGeminiSource(ctx, cfg.GeminiAPIKey, cfg.GeminiModel)
		if err != nil {
			slog.Error("failed to create gemini source", "error", err)
			os.Exit(1)
		}
		text = src
		slog.Info("gemini text source ready", "model", cfg.GeminiModel)
	} else {
		text = simulator.NewCannedSource(rng)
		slog.Warn("GEMINI_API_KEY not set — using canned text pools")
	}

	gen := simulator.NewGenerator(simulator.DefaultProfiles(), text, rng, slog.Default())
	holder := simulator.NewHolder()

	srv := simulator.NewFeedServer(cfg.SimulatorPort, holder, slog.Default())
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server error", "error", err)
			os.Exit(1)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigCh
		slog.Info("shutting down")
		cancel()
	}()

	// Tick loop: generate a batch immediately, then on every tick.
	holder.Set(gen.NextBatch(ctx))
	ticker := time.NewTicker(cfg.TickInterval)
	defer ticker.Stop()

loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-ticker.C:
			batch := gen.NextBatch(ctx)
			holder.Set(batch)
			slog.Info("batch generated", "events", len(batch))
		}
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		slog.Error("HTTP server shutdown error", "error", err)
	}
	slog.Info("simulator stopped")
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
