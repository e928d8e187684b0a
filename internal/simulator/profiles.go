// Package simulator produces synthetic regional telemetry batches and
// serves the latest one over HTTP, standing in for the real event feed.
package simulator

// Mood biases a region's generated sentiment.
type Mood string

const (
	// MoodAnomalyGood is the interesting case: clean network numbers
	// paired with unhappy customers, so sentiment and telemetry diverge.
	MoodAnomalyGood Mood = "anomaly_good"
	MoodGood        Mood = "good"
	MoodNeutral     Mood = "neutral"
	MoodPoor        Mood = "poor"
)

// Profile shapes everything generated for one region: metric ranges,
// the chance of a latency spike, and the bias handed to the text
// source.
type Profile struct {
	Name        string // descriptive, used in generation prompts
	DisplayName string // clean region name used on the wire
	Mood        Mood

	LatencyMin  float64
	LatencyMax  float64
	LossMin     float64
	LossMax     float64
	SpikeChance float64

	Bias string
}

// DefaultProfiles returns the four standard regions.
func DefaultProfiles() []Profile {
	return []Profile{
		{
			Name:        "Dallas (Good Signal, Bad Sentiment)",
			DisplayName: "Dallas",
			Mood:        MoodAnomalyGood,
			LatencyMin:  20, LatencyMax: 80,
			LossMin: 0, LossMax: 0.5,
			SpikeChance: 0.01,
			Bias: "The sentiment should be surprisingly mostly neutral and some negative, despite good signal. " +
				"Topics are about billing issues, poor customer service, or confusing promotions. " +
				"Users are frustrated with the carrier, not the signal.",
		},
		{
			Name:        "New York (Good)",
			DisplayName: "New York",
			Mood:        MoodGood,
			LatencyMin:  30, LatencyMax: 90,
			LossMin: 0, LossMax: 0.6,
			SpikeChance: 0.02,
			Bias:        "The sentiment should be mostly positive or neutral. Topics are about reliable coverage in a busy city.",
		},
		{
			Name:        "Chicago (Neutral)",
			DisplayName: "Chicago",
			Mood:        MoodNeutral,
			LatencyMin:  50, LatencyMax: 150,
			LossMin: 0.5, LossMax: 1.5,
			SpikeChance: 0.05,
			Bias: "The sentiment can be positive, negative, or neutral. Topics are mixed: " +
				"some complaints about spotty downtown coverage, some praise for suburban speeds.",
		},
		{
			Name:        "Rural Iowa (Poor)",
			DisplayName: "Rural Iowa",
			Mood:        MoodPoor,
			LatencyMin:  150, LatencyMax: 500,
			LossMin: 1.5, LossMax: 5,
			SpikeChance: 0.20,
			Bias:        "The sentiment should be mostly negative or neutral. Topics are almost always complaints about dropped calls, no signal, or slow data.",
		},
	}
}

// supportTopics picks the issue pool for a support interaction prompt.
func (p Profile) supportTopics() string {
	switch p.Mood {
	case MoodPoor:
		return "a network outage, poor signal, or dropped calls"
	case MoodNeutral:
		return "a billing question, spotty network, or upgrade eligibility"
	case MoodAnomalyGood:
		return "a complex billing dispute, a promotion not being applied, or a rude customer service agent"
	default:
		return "a simple billing question, upgrade eligibility, or an international plan"
	}
}
