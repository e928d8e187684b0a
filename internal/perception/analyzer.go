package perception

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pulseops/regionpulse/internal/openrouter"
)

// Analyzer turns raw customer text into a validated Analysis via the
// chat-completions service.
type Analyzer struct {
	llm    *openrouter.Client
	logger *slog.Logger
}

func NewAnalyzer(llm *openrouter.Client, logger *slog.Logger) *Analyzer {
	return &Analyzer{llm: llm, logger: logger}
}

// Analyze classifies one piece of text. A transport failure or a
// response that does not decode as a JSON object is an error; the
// caller drops the event and moves on.
func (a *Analyzer) Analyze(ctx context.Context, text string) (Analysis, error) {
	prompt := fmt.Sprintf(analysisPrompt, text)

	a.logger.Debug("analyzing text", "text_len", len(text))

	raw, err := a.llm.Complete(ctx, prompt, true)
	if err != nil {
		return Analysis{}, fmt.Errorf("llm analysis: %w", err)
	}

	var analysis Analysis
	if err := json.Unmarshal([]byte(raw), &analysis); err != nil {
		a.logger.Error("failed to parse analysis response",
			"error", err,
			"raw", raw,
		)
		return Analysis{}, fmt.Errorf("parse analysis: %w", err)
	}

	a.logger.Debug("analysis complete",
		"sentiment", analysis.Sentiment,
		"topic", analysis.Topic,
		"urgency", analysis.Urgency,
	)

	return analysis, nil
}
