package client

import (
	"context"
	"time"
)

const defaultPollInterval = 2 * time.Second

// WaitForReveal polls the question's ledger until answers from two
// distinct participants exist, then returns nil. Readiness is
// re-derived from the server on every tick, so a push event lost while
// this device was offline cannot strand it. Cancelling the context is
// the only other way out.
func (c *Client) WaitForReveal(ctx context.Context, questionID uint, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		resp, err := c.answers(questionID)
		if err == nil && resp.DistinctCount >= 2 {
			return nil
		}
		// Transient errors just mean "try again next tick".

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		}
	}
}

// WaitForRevealHinted listens on the push channel while polling at a
// relaxed interval. Events only accelerate the next ledger check; the
// decision always comes from the ledger itself.
func (c *Client) WaitForRevealHinted(ctx context.Context, roomCode string, questionID uint, interval time.Duration) error {
	if interval <= 0 {
		interval = defaultPollInterval
	}

	events, err := c.Subscribe(ctx, roomCode)
	if err != nil {
		// No push channel; plain polling still converges.
		return c.WaitForReveal(ctx, questionID, interval)
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		resp, err := c.answers(questionID)
		if err == nil && resp.DistinctCount >= 2 {
			return nil
		}

		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
		case _, ok := <-events:
			if !ok {
				// Channel dropped; keep polling.
				events = nil
			}
		}
	}
}
