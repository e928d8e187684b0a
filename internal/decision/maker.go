package decision

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/pulseops/regionpulse/internal/openrouter"
)

// Maker asks the chat-completions service for one proactive action per
// region and validates the answer.
type Maker struct {
	llm    *openrouter.Client
	logger *slog.Logger
}

func NewMaker(llm *openrouter.Client, logger *slog.Logger) *Maker {
	return &Maker{llm: llm, logger: logger}
}

// Decide submits the region's bundle and returns the chosen action.
// Transport failures, undecodable responses, and unknown actions are all
// errors; the caller skips the region for this cycle.
func (m *Maker) Decide(ctx context.Context, region string, bundle Bundle) (Decision, error) {
	data, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return Decision{}, fmt.Errorf("marshal bundle: %w", err)
	}

	prompt := fmt.Sprintf(decisionPrompt, region, string(data))

	m.logger.Info("requesting decision",
		"region", region,
		"metrics", len(bundle.NetworkMetrics),
		"posts", len(bundle.RecentPosts),
	)

	raw, err := m.llm.Complete(ctx, prompt, true)
	if err != nil {
		return Decision{}, fmt.Errorf("llm decision: %w", err)
	}

	var dec Decision
	if err := json.Unmarshal([]byte(raw), &dec); err != nil {
		m.logger.Error("failed to parse decision response",
			"error", err,
			"raw", raw,
		)
		return Decision{}, fmt.Errorf("parse decision: %w", err)
	}

	if !ValidAction(dec.Action) {
		return Decision{}, fmt.Errorf("unknown action %q", dec.Action)
	}

	return dec, nil
}

// ValidAction reports whether the action is one the system can carry out.
func ValidAction(action string) bool {
	switch action {
	case ActionSendAlert, ActionDraftSocialReply, ActionLogAndMonitor:
		return true
	}
	return false
}
