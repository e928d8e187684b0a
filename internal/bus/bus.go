// Package bus is the optional NATS side channel. The agent announces
// itself, trend crossovers, and submitted decisions so that swarm peers
// can react; the pipeline runs unchanged when NATS is not configured.
package bus

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"
)

// Subjects published by the agent.
const (
	SubjectAgentRegistered = "pulse.agent.registered"
	SubjectTrendCrossed    = "pulse.trend.crossed"
	SubjectDecisionMade    = "pulse.decision.made"
)

// CrossoverSignal is published the moment a region's short-term average
// crosses its long-term average.
type CrossoverSignal struct {
	Region    string  `json:"region"`
	Direction string  `json:"direction"` // "up" or "down"
	ShortAvg  float64 `json:"short_avg"`
	LongAvg   float64 `json:"long_avg"`
}

// DecisionSignal is published after a decision is submitted to the
// reporter.
type DecisionSignal struct {
	Region string `json:"region"`
	Action string `json:"action"`
}

type Client struct {
	conn   *nats.Conn
	subs   []*nats.Subscription
	logger *slog.Logger
}

func NewClient(url, token string, logger *slog.Logger) (*Client, error) {
	opts := []nats.Option{
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(60),
		nats.ReconnectWait(2 * time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.Warn("nats disconnected", "error", err)
			}
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logger.Info("nats reconnected")
		}),
	}
	if token != "" {
		opts = append(opts, nats.Token(token))
	}

	nc, err := nats.Connect(url, opts...)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}

	return &Client{conn: nc, logger: logger}, nil
}

func (c *Client) Publish(subject string, data any) error {
	payload, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("marshal payload: %w", err)
	}
	return c.conn.Publish(subject, payload)
}

func (c *Client) Subscribe(subject string, handler func(subject string, data []byte)) error {
	sub, err := c.conn.Subscribe(subject, func(msg *nats.Msg) {
		handler(msg.Subject, msg.Data)
	})
	if err != nil {
		return fmt.Errorf("subscribe %s: %w", subject, err)
	}
	c.subs = append(c.subs, sub)
	c.logger.Info("subscribed", "subject", subject)
	return nil
}

func (c *Client) Close() {
	for _, sub := range c.subs {
		_ = sub.Unsubscribe()
	}
	c.conn.Close()
}
