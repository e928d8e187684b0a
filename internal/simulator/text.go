package simulator

import (
	"context"
	"fmt"
	"math/rand"
	"strings"

	"google.golang.org/genai"
)

// TextSource produces the free-text bodies of social posts and support
// interactions for a region.
type TextSource interface {
	Tweet(ctx context.Context, p Profile) (string, error)
	SupportLog(ctx context.Context, p Profile) (string, error)
}

// CannedSource draws from fixed per-mood pools. It needs no network and
// is deterministic under a seeded RNG, so it is the default and what
// tests use.
type CannedSource struct {
	rng *rand.Rand
}

func NewCannedSource(rng *rand.Rand) *CannedSource {
	return &CannedSource{rng: rng}
}

var cannedTweets = map[Mood][]string{
	MoodAnomalyGood: {
		"Signal is fine but my bill went up AGAIN with zero explanation. #overcharged",
		"Third call to support about the promo they never applied. Great coverage, terrible company. #frustrated",
		"Full bars everywhere, but why does customer service hang up on me? #help",
	},
	MoodGood: {
		"Streaming on the subway with zero buffering. Coverage here is unreal. #5G",
		"Moved downtown and my phone has never been faster. #happycustomer",
		"Another week of flawless calls. No complaints here. #coverage",
	},
	MoodNeutral: {
		"Downtown coverage is spotty but the suburbs are blazing fast. Mixed bag. #network",
		"Phone works fine most days. Occasional dead zone near the loop. #meh",
		"Upgraded my plan, speeds are decent. Nothing special. #mobile",
	},
	MoodPoor: {
		"Dropped THREE calls today. How is this still a thing out here? #nosignal",
		"One bar on a good day. Rural customers deserve better. #deadzone",
		"Data so slow the map loaded after I got there. #slowdata",
	},
}

var cannedSupportLogs = map[Mood][]string{
	MoodAnomalyGood: {
		"Customer: My promotion discount still isn't on this month's bill. Agent: I see the promo was never attached; I've applied a credit and escalated to billing.",
		"Customer: The last agent I spoke to was dismissive about my billing dispute. Agent: I apologize for that experience; I've reopened the dispute and flagged the interaction for review.",
	},
	MoodGood: {
		"Customer: Am I eligible for an upgrade on my current plan? Agent: Yes, your line qualifies this month; I've sent the upgrade options to your email.",
		"Customer: I'm traveling abroad next week, what are my options? Agent: Your plan includes international roaming; I've enabled it effective today.",
	},
	MoodNeutral: {
		"Customer: My bill looks higher this month, can you check? Agent: A one-time activation fee posted; the rest is unchanged from last cycle.",
		"Customer: Coverage drops near my office downtown. Agent: There is a known congestion issue at that site; engineering has it scheduled for an upgrade.",
	},
	MoodPoor: {
		"Customer: Calls drop every time I leave town, this is the fourth complaint. Agent: I've logged another outage ticket for your area; a tower repair is pending.",
		"Customer: No signal at my farm for two days straight. Agent: The nearest site is degraded; crews are scheduled but I don't have a firm restore time.",
	},
}

func (s *CannedSource) Tweet(ctx context.Context, p Profile) (string, error) {
	pool := cannedTweets[p.Mood]
	return pool[s.rng.Intn(len(pool))], nil
}

func (s *CannedSource) SupportLog(ctx context.Context, p Profile) (string, error) {
	pool := cannedSupportLogs[p.Mood]
	return pool[s.rng.Intn(len(pool))], nil
}

// GeminiSource generates text through the Gemini API, biased by the
// region profile. Used when GEMINI_API_KEY is configured.
type GeminiSource struct {
	client *genai.Client
	model  string
}

func NewGeminiSource(ctx context.Context, apiKey, model string) (*GeminiSource, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	if model == "" {
		model = "gemini-flash-lite-latest"
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey: apiKey,
	})
	if err != nil {
		return nil, fmt.Errorf("create genai client: %w", err)
	}

	return &GeminiSource{client: client, model: model}, nil
}

func (s *GeminiSource) Tweet(ctx context.Context, p Profile) (string, error) {
	prompt := fmt.Sprintf(`You are a social media user from %s.
Generate one single, realistic tweet about your mobile carrier.
The tweet must be short, like a real tweet, and include a relevant hashtag.

Apply this regional bias: %s`, p.Name, p.Bias)

	return s.generate(ctx, prompt)
}

func (s *GeminiSource) SupportLog(ctx context.Context, p Profile) (string, error) {
	prompt := fmt.Sprintf(`You are a customer experience simulator. Generate a single, short, simulated
mobile carrier customer service interaction from the %s region.
Randomly pick one format: [short email, chat log, or phone call transcript summary].

The issue must be about: [%s].

Create both the customer's query and a brief, simulated agent response.
Output it as a single block of text.`, p.Name, p.supportTopics())

	return s.generate(ctx, prompt)
}

func (s *GeminiSource) generate(ctx context.Context, prompt string) (string, error) {
	result, err := s.client.Models.GenerateContent(ctx, s.model, genai.Text(prompt), nil)
	if err != nil {
		return "", fmt.Errorf("gemini generate: %w", err)
	}

	text := strings.TrimSpace(result.Text())
	if text == "" {
		return "", fmt.Errorf("gemini returned empty text")
	}
	return text, nil
}
