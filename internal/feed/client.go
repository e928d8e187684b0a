package feed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/pulseops/regionpulse/internal/event"
)

// ErrUnavailable marks transport failures and non-200 answers from the
// feed. The cycle skips the tick and retries on the next one.
var ErrUnavailable = errors.New("feed unavailable")

// ErrMalformed marks a feed answer that does not decode as an event
// batch.
var ErrMalformed = errors.New("malformed feed response")

// Client fetches the latest event batch from the upstream feed.
type Client struct {
	url    string
	client *http.Client
	logger *slog.Logger
}

func NewClient(url string, logger *slog.Logger) *Client {
	return &Client{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		logger: logger,
	}
}

// Fetch GETs the feed and decodes the batch. Errors wrap ErrUnavailable
// or ErrMalformed for errors.Is checks.
func (c *Client) Fetch(ctx context.Context) ([]event.Event, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.url, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	}

	var events []event.Event
	if err := json.NewDecoder(resp.Body).Decode(&events); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}

	c.logger.Debug("batch fetched", "events", len(events))
	return events, nil
}
