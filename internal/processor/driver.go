package processor

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"time"

	"github.com/pulseops/regionpulse/internal/feed"
	"github.com/pulseops/regionpulse/internal/graph"
	"github.com/pulseops/regionpulse/internal/happiness"
)

// Default cadences match the upstream feed: a batch every 5 seconds and
// a console happiness report once a minute.
const (
	DefaultPollInterval  = 5 * time.Second
	DefaultGraphInterval = 60 * time.Second
)

// Driver owns the polling loop: fetch a batch, run a cycle, and render
// the diagnostic graph on the slow tick.
type Driver struct {
	feed          *feed.Client
	proc          *Processor
	tracker       *happiness.Tracker
	graphW        io.Writer
	pollInterval  time.Duration
	graphInterval time.Duration
	logger        *slog.Logger
}

func NewDriver(fc *feed.Client, proc *Processor, tracker *happiness.Tracker, graphW io.Writer, pollInterval, graphInterval time.Duration, logger *slog.Logger) *Driver {
	if pollInterval <= 0 {
		pollInterval = DefaultPollInterval
	}
	if graphInterval <= 0 {
		graphInterval = DefaultGraphInterval
	}
	return &Driver{
		feed:          fc,
		proc:          proc,
		tracker:       tracker,
		graphW:        graphW,
		pollInterval:  pollInterval,
		graphInterval: graphInterval,
		logger:        logger,
	}
}

// Run blocks until ctx is cancelled. The first cycle runs immediately;
// after that the tickers own the cadence. A failed or empty fetch skips
// the cycle and the next tick retries.
func (d *Driver) Run(ctx context.Context) {
	d.logger.Info("driver starting",
		"poll_interval", d.pollInterval,
		"graph_interval", d.graphInterval,
	)

	d.cycle(ctx)

	poll := time.NewTicker(d.pollInterval)
	defer poll.Stop()
	graphTick := time.NewTicker(d.graphInterval)
	defer graphTick.Stop()

	for {
		select {
		case <-ctx.Done():
			d.logger.Info("driver stopping")
			return
		case <-poll.C:
			d.cycle(ctx)
		case <-graphTick.C:
			graph.Render(d.graphW, time.Now(), d.tracker.Snapshots())
		}
	}
}

func (d *Driver) cycle(ctx context.Context) {
	events, err := d.feed.Fetch(ctx)
	if err != nil {
		switch {
		case errors.Is(err, feed.ErrMalformed):
			d.logger.Warn("feed returned a malformed batch, skipping cycle", "error", err)
		default:
			d.logger.Warn("feed unavailable, skipping cycle", "error", err)
		}
		return
	}
	if len(events) == 0 {
		d.logger.Debug("empty batch, skipping cycle")
		return
	}

	d.logger.Info("cycle starting", "events", len(events))
	d.proc.RunCycle(ctx, events)
}
