package simulator

import (
	"context"
	"log/slog"
	"math"
	"math/rand"
	"time"

	"github.com/pulseops/regionpulse/internal/event"
)

// Event cadence: every region gets a network metric each tick, a social
// post every third tick, and a support interaction every tenth.
const (
	tweetEvery   = 3
	supportEvery = 10
	crashChance  = 0.005
)

// Generator produces one synthetic batch per tick. Text failures drop
// that one event and never the batch.
type Generator struct {
	profiles []Profile
	text     TextSource
	rng      *rand.Rand
	logger   *slog.Logger
	tick     int
}

func NewGenerator(profiles []Profile, text TextSource, rng *rand.Rand, logger *slog.Logger) *Generator {
	return &Generator{
		profiles: profiles,
		text:     text,
		rng:      rng,
		logger:   logger,
	}
}

// NextBatch advances the tick and builds the events for it.
func (g *Generator) NextBatch(ctx context.Context) []event.Event {
	g.tick++
	now := float64(time.Now().UnixNano()) / float64(time.Second)

	var batch []event.Event
	for _, p := range g.profiles {
		batch = append(batch, g.networkMetric(p, now))

		if g.tick%tweetEvery == 0 {
			text, err := g.text.Tweet(ctx, p)
			if err != nil {
				g.logger.Warn("tweet generation failed", "region", p.DisplayName, "error", err)
			} else {
				batch = append(batch, event.Event{
					Type:      event.KindSocialMediaPost,
					Region:    p.DisplayName,
					Timestamp: now,
					Source:    "X (Twitter)",
					Text:      text,
				})
			}
		}

		if g.tick%supportEvery == 0 {
			log, err := g.text.SupportLog(ctx, p)
			if err != nil {
				g.logger.Warn("support log generation failed", "region", p.DisplayName, "error", err)
			} else {
				channels := []string{"email", "chat", "phone"}
				batch = append(batch, event.Event{
					Type:      event.KindSupportInteraction,
					Region:    p.DisplayName,
					Timestamp: now,
					Channel:   channels[g.rng.Intn(len(channels))],
					Log:       log,
				})
			}
		}
	}

	if g.rng.Float64() < crashChance {
		platforms := []string{"iOS", "Android"}
		versions := []string{"10.1.2", "10.1.1", "10.0.4"}
		batch = append(batch, event.Event{
			Type:       event.KindAppCrash,
			Region:     event.RegionGlobal,
			Timestamp:  now,
			Platform:   platforms[g.rng.Intn(len(platforms))],
			AppVersion: versions[g.rng.Intn(len(versions))],
		})
	}

	return batch
}

func (g *Generator) networkMetric(p Profile, now float64) event.Event {
	latency := g.uniform(p.LatencyMin, p.LatencyMax)
	loss := g.uniform(p.LossMin, p.LossMax)

	if g.rng.Float64() < p.SpikeChance {
		latency = g.uniform(latency*2, latency*5)
		loss = g.uniform(loss*2, loss*5)
	}

	return event.Event{
		Type:              event.KindNetworkMetric,
		Region:            p.DisplayName,
		Timestamp:         now,
		LatencyMS:         round2(latency),
		PacketLossPercent: round2(loss),
	}
}

func (g *Generator) uniform(min, max float64) float64 {
	return min + g.rng.Float64()*(max-min)
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
