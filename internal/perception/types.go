package perception

import "github.com/pulseops/regionpulse/internal/event"

// Sentiment is the classifier's verdict on customer mood.
type Sentiment string

const (
	SentimentPositive Sentiment = "positive"
	SentimentNegative Sentiment = "negative"
	SentimentNeutral  Sentiment = "neutral"
)

// Score maps a sentiment label onto the tracker's scale. Unrecognized
// labels count as neutral.
func (s Sentiment) Score() int {
	switch s {
	case SentimentPositive:
		return 1
	case SentimentNegative:
		return -1
	default:
		return 0
	}
}

// Analysis is the structured classification of one piece of customer
// text. Topic and urgency are advisory context for the decision step.
type Analysis struct {
	Sentiment Sentiment `json:"sentiment"`
	Topic     string    `json:"topic"`
	Urgency   string    `json:"urgency"`
}

// AnalyzedPost is the original event annotated with its analysis. The
// event fields stay flat on the wire with the analysis nested alongside.
type AnalyzedPost struct {
	event.Event
	Analysis Analysis `json:"analysis"`
}
