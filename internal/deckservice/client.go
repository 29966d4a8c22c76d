package deckservice

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/deck"
)

// HTTPSource draws cards from a deck service over HTTP
type HTTPSource struct {
	baseURL string
	client  *http.Client
	logger  *log.Logger
	clock   quartz.Clock
}

// NewHTTPSource creates a card source for the service at baseURL. A zero
// timeout waits indefinitely.
func NewHTTPSource(baseURL string, timeout time.Duration, logger *log.Logger, clock quartz.Clock) *HTTPSource {
	return &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
		logger:  logger.WithPrefix("deck-client"),
		clock:   clock,
	}
}

// Reshuffle asks the service to restore and shuffle its deck
func (c *HTTPSource) Reshuffle(ctx context.Context) error {
	var resp Response
	if _, err := c.get(ctx, "/shuffle", &resp); err != nil {
		return fmt.Errorf("shuffle: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("shuffle: service declined: %s", resp.Error)
	}
	return nil
}

// Draw requests one card and returns its rank
func (c *HTTPSource) Draw(ctx context.Context) (cards.Rank, error) {
	var resp Response
	status, err := c.get(ctx, "/get-card", &resp)
	if err != nil {
		return 0, fmt.Errorf("get card: %w", err)
	}
	if status == http.StatusGone {
		return 0, deck.ErrExhausted
	}
	return rankOf(resp)
}

func (c *HTTPSource) get(ctx context.Context, path string, out *Response) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return 0, err
	}

	start := c.clock.Now()
	res, err := c.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer func() {
		_ = res.Body.Close()
	}()
	c.logger.Debug("Deck service request", "path", path, "status", res.StatusCode, "elapsed", c.clock.Since(start))

	if res.StatusCode != http.StatusOK && res.StatusCode != http.StatusGone {
		return res.StatusCode, fmt.Errorf("unexpected status %s", res.Status)
	}
	if err := json.NewDecoder(res.Body).Decode(out); err != nil {
		return res.StatusCode, fmt.Errorf("decode response: %w", err)
	}
	return res.StatusCode, nil
}

// rankOf reads the rank from a card code, keeping both digits of a ten
func rankOf(resp Response) (cards.Rank, error) {
	if resp.Error != "" {
		if resp.Error == deck.ErrExhausted.Error() {
			return 0, deck.ErrExhausted
		}
		return 0, fmt.Errorf("deck service: %s", resp.Error)
	}
	card, err := cards.ParseCode(resp.Card)
	if err != nil {
		return 0, err
	}
	return card.Rank, nil
}
