// Package happiness maintains per-region sentiment trend state using a
// dual moving average over incoming scores. A short window reacts to
// recent swings, a long window anchors the baseline, and crossovers
// between the two flip the region's trend label.
package happiness

import "sync"

// State labels a region's happiness trend.
type State string

const (
	// StatePriming means the long window has not filled yet and the
	// label cannot be trusted.
	StatePriming State = "PRIMING"
	// StateTrendingUp marks the call where the short average crossed
	// above the long average (golden cross). One call only.
	StateTrendingUp State = "TRENDING_UP"
	// StateTrendingDown marks the call where the short average crossed
	// below the long average (death cross). One call only.
	StateTrendingDown State = "TRENDING_DOWN"
	// StateMaintainGood holds while the short average stays above the
	// long average with no crossover this call.
	StateMaintainGood State = "MAINTAIN_GOOD"
	// StateMaintainPoor holds while the short average stays at or below
	// the long average with no crossover this call.
	StateMaintainPoor State = "MAINTAIN_POOR"
)

// Window defaults. The short window is deliberately fast so regional
// mood swings show up within a handful of posts.
const (
	DefaultShortWindow   = 10
	DefaultLongWindow    = 100
	DefaultHistoryLength = 50
)

// Config sizes the tracker's windows. Zero values take the defaults.
type Config struct {
	ShortWindow   int
	LongWindow    int
	HistoryLength int
}

// Tracker accumulates sentiment scores per region and derives trend
// state. Safe for concurrent use; the status API reads snapshots while
// the cycle writes scores.
type Tracker struct {
	mu      sync.Mutex
	cfg     Config
	regions map[string]*regionState
}

type regionState struct {
	shortScores []int
	longScores  []int
	shortAvg    float64
	longAvg     float64
	wasAbove    *bool // nil until the long window first fills
	state       State
	history     []float64
}

// Snapshot is a fully detached copy of one region's state. Mutating the
// tracker after taking a snapshot never changes the snapshot.
type Snapshot struct {
	ShortTermScores []int     `json:"short_term_scores"`
	LongTermScores  []int     `json:"long_term_scores"`
	ShortTermAvg    float64   `json:"short_term_avg"`
	LongTermAvg     float64   `json:"long_term_avg"`
	WasAbove        *bool     `json:"was_above"`
	State           State     `json:"state"`
	History         []float64 `json:"history"`
}

func NewTracker(cfg Config) *Tracker {
	if cfg.ShortWindow <= 0 {
		cfg.ShortWindow = DefaultShortWindow
	}
	if cfg.LongWindow <= 0 {
		cfg.LongWindow = DefaultLongWindow
	}
	if cfg.HistoryLength <= 0 {
		cfg.HistoryLength = DefaultHistoryLength
	}
	return &Tracker{
		cfg:     cfg,
		regions: make(map[string]*regionState),
	}
}

// AddScore feeds one sentiment score into a region, creating the region
// on first sight, and returns the region's resulting state. TRENDING_UP
// and TRENDING_DOWN appear only on the crossover call itself, so the
// return value doubles as the crossover signal.
func (t *Tracker) AddScore(region string, score int) State {
	t.mu.Lock()
	defer t.mu.Unlock()

	rs := t.getOrCreate(region)

	rs.shortScores = append(rs.shortScores, score)
	if len(rs.shortScores) > t.cfg.ShortWindow {
		rs.shortScores = rs.shortScores[1:]
	}

	rs.longScores = append(rs.longScores, score)
	if len(rs.longScores) > t.cfg.LongWindow {
		rs.longScores = rs.longScores[1:]
	}

	if len(rs.shortScores) > 0 {
		rs.shortAvg = mean(rs.shortScores)
	}
	if len(rs.longScores) > 0 {
		rs.longAvg = mean(rs.longScores)
	}

	t.updateState(rs)

	rs.history = append(rs.history, rs.shortAvg)
	if len(rs.history) > t.cfg.HistoryLength {
		rs.history = rs.history[1:]
	}

	return rs.state
}

// updateState flips the trend label on moving-average crossovers.
func (t *Tracker) updateState(rs *regionState) {
	isAbove := rs.shortAvg > rs.longAvg

	// The label is not trusted until the long window has filled.
	if len(rs.longScores) < t.cfg.LongWindow {
		rs.state = StatePriming
		return
	}

	// The call that fills the long window only records the baseline
	// relation; the label keeps its previous value and trend labels
	// begin on the next call. A crossover landing exactly on this call
	// goes unlabeled.
	if rs.wasAbove == nil {
		rs.wasAbove = &isAbove
		return
	}

	switch {
	case isAbove && !*rs.wasAbove:
		rs.state = StateTrendingUp
	case !isAbove && *rs.wasAbove:
		rs.state = StateTrendingDown
	case isAbove:
		rs.state = StateMaintainGood
	default:
		rs.state = StateMaintainPoor
	}
	rs.wasAbove = &isAbove
}

// Snapshot returns a detached copy of one region's state, creating the
// region with defaults if it has never been scored.
func (t *Tracker) Snapshot(region string) Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.getOrCreate(region).snapshot()
}

// Snapshots returns detached copies of every tracked region.
func (t *Tracker) Snapshots() map[string]Snapshot {
	t.mu.Lock()
	defer t.mu.Unlock()

	out := make(map[string]Snapshot, len(t.regions))
	for region, rs := range t.regions {
		out[region] = rs.snapshot()
	}
	return out
}

func (t *Tracker) getOrCreate(region string) *regionState {
	rs, ok := t.regions[region]
	if !ok {
		rs = &regionState{state: StatePriming}
		t.regions[region] = rs
	}
	return rs
}

func (rs *regionState) snapshot() Snapshot {
	snap := Snapshot{
		ShortTermScores: copyInts(rs.shortScores),
		LongTermScores:  copyInts(rs.longScores),
		ShortTermAvg:    rs.shortAvg,
		LongTermAvg:     rs.longAvg,
		State:           rs.state,
		History:         copyFloats(rs.history),
	}
	if rs.wasAbove != nil {
		v := *rs.wasAbove
		snap.WasAbove = &v
	}
	return snap
}

func mean(scores []int) float64 {
	sum := 0
	for _, s := range scores {
		sum += s
	}
	return float64(sum) / float64(len(scores))
}

func copyInts(s []int) []int {
	out := make([]int, len(s))
	copy(out, s)
	return out
}

func copyFloats(s []float64) []float64 {
	out := make([]float64, len(s))
	copy(out, s)
	return out
}
