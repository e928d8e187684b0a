// Package processor wires the pipeline together: it turns a fetched
// event batch into per-region buckets, feeds sentiment into the
// happiness tracker, asks the decision service for one action per
// region, and submits the outcome to the reporter.
package processor

import (
	"context"
	"encoding/json"
	"log/slog"
	"sort"
	"time"

	"github.com/pulseops/regionpulse/internal/bus"
	"github.com/pulseops/regionpulse/internal/decision"
	"github.com/pulseops/regionpulse/internal/event"
	"github.com/pulseops/regionpulse/internal/happiness"
	"github.com/pulseops/regionpulse/internal/perception"
	"github.com/pulseops/regionpulse/internal/report"
)

// DefaultCallTimeout bounds every external call made during a cycle.
const DefaultCallTimeout = 30 * time.Second

// RegionBucket collects one region's events for a single cycle.
type RegionBucket struct {
	NetworkMetrics []event.Event
	AnalyzedPosts  []perception.AnalyzedPost
}

// Processor orchestrates the aggregate/decide/report cycle. The bus is
// optional; a nil bus skips swarm publishing.
type Processor struct {
	tracker     *happiness.Tracker
	analyzer    *perception.Analyzer
	maker       *decision.Maker
	reporter    *report.Client
	bus         *bus.Client
	logger      *slog.Logger
	callTimeout time.Duration
}

func New(tracker *happiness.Tracker, analyzer *perception.Analyzer, maker *decision.Maker, reporter *report.Client, b *bus.Client, callTimeout time.Duration, logger *slog.Logger) *Processor {
	if callTimeout <= 0 {
		callTimeout = DefaultCallTimeout
	}
	return &Processor{
		tracker:     tracker,
		analyzer:    analyzer,
		maker:       maker,
		reporter:    reporter,
		bus:         b,
		logger:      logger,
		callTimeout: callTimeout,
	}
}

// Aggregate groups a batch by region. Network metrics pass through
// verbatim; text events go through the classifier and feed the tracker.
// A classifier failure drops that one event and nothing else. Global
// and region-less events (app crashes) are out of scope for tracking.
func (p *Processor) Aggregate(ctx context.Context, events []event.Event) map[string]*RegionBucket {
	buckets := make(map[string]*RegionBucket)

	bucket := func(region string) *RegionBucket {
		b, ok := buckets[region]
		if !ok {
			b = &RegionBucket{}
			buckets[region] = b
		}
		return b
	}

	for _, evt := range events {
		if evt.Region == "" || evt.Region == event.RegionGlobal {
			continue
		}

		switch {
		case evt.Type == event.KindNetworkMetric:
			b := bucket(evt.Region)
			b.NetworkMetrics = append(b.NetworkMetrics, evt)

		case evt.IsTextual():
			text := evt.TextBody()
			if text == "" {
				continue
			}

			callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
			analysis, err := p.analyzer.Analyze(callCtx, text)
			cancel()
			if err != nil {
				p.logger.Warn("dropping unanalyzable event",
					"region", evt.Region,
					"type", evt.Type,
					"error", err,
				)
				continue
			}

			state := p.tracker.AddScore(evt.Region, analysis.Sentiment.Score())
			p.publishCrossover(evt.Region, state)

			b := bucket(evt.Region)
			b.AnalyzedPosts = append(b.AnalyzedPosts, perception.AnalyzedPost{
				Event:    evt,
				Analysis: analysis,
			})
		}
	}

	return buckets
}

// RunCycle aggregates the batch and runs the per-region decision loop.
// Every failure is local to its region; the cycle always finishes.
func (p *Processor) RunCycle(ctx context.Context, events []event.Event) {
	buckets := p.Aggregate(ctx, events)
	if len(buckets) == 0 {
		p.logger.Debug("nothing to decide on this cycle")
		return
	}

	regions := make([]string, 0, len(buckets))
	for region := range buckets {
		regions = append(regions, region)
	}
	sort.Strings(regions)

	for _, region := range regions {
		p.decideRegion(ctx, region, buckets[region])
	}
}

func (p *Processor) decideRegion(ctx context.Context, region string, b *RegionBucket) {
	bundle := decision.Bundle{
		HappinessState: p.tracker.Snapshot(region),
		NetworkMetrics: b.NetworkMetrics,
		RecentPosts:    b.AnalyzedPosts,
	}

	callCtx, cancel := context.WithTimeout(ctx, p.callTimeout)
	dec, err := p.maker.Decide(callCtx, region, bundle)
	cancel()
	if err != nil {
		p.logger.Warn("no decision for region", "region", region, "error", err)
		return
	}

	data, err := json.Marshal(bundle)
	if err != nil {
		p.logger.Error("failed to marshal bundle", "region", region, "error", err)
		return
	}

	sub := report.Submission{
		Region:     region,
		Decision:   dec,
		DataBundle: data,
	}

	callCtx, cancel = context.WithTimeout(ctx, p.callTimeout)
	err = p.reporter.Submit(callCtx, sub)
	cancel()
	if err != nil {
		p.logger.Warn("report submission failed", "region", region, "error", err)
		return
	}

	if p.bus != nil {
		if err := p.bus.Publish(bus.SubjectDecisionMade, bus.DecisionSignal{
			Region: region,
			Action: dec.Action,
		}); err != nil {
			p.logger.Warn("failed to publish decision", "error", err)
		}
	}
}

// publishCrossover announces TRENDING_UP/DOWN transitions. AddScore
// only returns those labels on the crossover call itself, so the state
// alone is the signal.
func (p *Processor) publishCrossover(region string, state happiness.State) {
	if p.bus == nil {
		return
	}
	if state != happiness.StateTrendingUp && state != happiness.StateTrendingDown {
		return
	}

	direction := "up"
	if state == happiness.StateTrendingDown {
		direction = "down"
	}
	snap := p.tracker.Snapshot(region)

	if err := p.bus.Publish(bus.SubjectTrendCrossed, bus.CrossoverSignal{
		Region:    region,
		Direction: direction,
		ShortAvg:  snap.ShortTermAvg,
		LongAvg:   snap.LongTermAvg,
	}); err != nil {
		p.logger.Warn("failed to publish crossover", "region", region, "error", err)
	}
}
