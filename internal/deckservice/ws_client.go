package deckservice

import (
	"context"
	"fmt"
	"net/url"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/cards"
)

// WSSource draws cards from a deck service over a single websocket
type WSSource struct {
	mu      sync.Mutex
	conn    *websocket.Conn
	timeout time.Duration
	logger  *log.Logger
}

// DialWebSocket connects to a deck service websocket endpoint. http and
// https URLs are rewritten to ws and wss. A non-zero timeout bounds each
// request.
func DialWebSocket(ctx context.Context, serverURL string, timeout time.Duration, logger *log.Logger) (*WSSource, error) {
	u, err := url.Parse(serverURL)
	if err != nil {
		return nil, fmt.Errorf("invalid deck service URL: %w", err)
	}

	switch u.Scheme {
	case "http":
		u.Scheme = "ws"
	case "https":
		u.Scheme = "wss"
	case "ws", "wss":
	default:
		u.Scheme = "ws"
	}
	if u.Path == "" || u.Path == "/" {
		u.Path = "/ws"
	}

	logger = logger.WithPrefix("deck-client")
	logger.Info("Connecting to deck service", "url", u.String())

	conn, _, err := websocket.DefaultDialer.DialContext(ctx, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to connect: %w", err)
	}
	return &WSSource{conn: conn, timeout: timeout, logger: logger}, nil
}

// Reshuffle asks the service to restore and shuffle its deck
func (s *WSSource) Reshuffle(ctx context.Context) error {
	resp, err := s.roundTrip(ctx, OpShuffle)
	if err != nil {
		return fmt.Errorf("shuffle: %w", err)
	}
	if !resp.OK {
		return fmt.Errorf("shuffle: service declined: %s", resp.Error)
	}
	return nil
}

// Draw requests one card and returns its rank
func (s *WSSource) Draw(ctx context.Context) (cards.Rank, error) {
	resp, err := s.roundTrip(ctx, OpDraw)
	if err != nil {
		return 0, fmt.Errorf("get card: %w", err)
	}
	return rankOf(resp)
}

// Close sends a close frame and closes the connection
func (s *WSSource) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_ = s.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
	return s.conn.Close()
}

func (s *WSSource) roundTrip(ctx context.Context, op string) (Response, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return Response{}, err
	}

	deadline, _ := ctx.Deadline()
	if s.timeout > 0 {
		if limit := time.Now().Add(s.timeout); deadline.IsZero() || limit.Before(deadline) {
			deadline = limit
		}
	}
	_ = s.conn.SetWriteDeadline(deadline)
	_ = s.conn.SetReadDeadline(deadline)

	if err := s.conn.WriteJSON(Request{Op: op}); err != nil {
		return Response{}, fmt.Errorf("send %s: %w", op, err)
	}

	var resp Response
	if err := s.conn.ReadJSON(&resp); err != nil {
		return Response{}, fmt.Errorf("read %s: %w", op, err)
	}
	s.logger.Debug("Deck service reply", "op", op, "card", resp.Card, "remaining", resp.Remaining)
	return resp, nil
}
