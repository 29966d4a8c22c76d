package deckservice

import (
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/lox/blackjack/internal/deck"
)

// Server hands out cards from a single deck to any number of clients
type Server struct {
	deck     *deck.Deck
	logger   *log.Logger
	clock    quartz.Clock
	upgrader websocket.Upgrader

	mu         sync.Mutex
	shuffles   int
	shuffledAt time.Time
}

// NewServer creates a deck server around d
func NewServer(d *deck.Deck, logger *log.Logger, clock quartz.Clock) *Server {
	return &Server{
		deck:   d,
		logger: logger.WithPrefix("deck-server"),
		clock:  clock,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				return true
			},
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		shuffledAt: clock.Now(),
	}
}

// Handler returns the HTTP routes for the service
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /shuffle", s.handleShuffle)
	mux.HandleFunc("GET /get-card", s.handleGetCard)
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	return mux
}

func (s *Server) shuffle() Response {
	s.deck.Reset()

	s.mu.Lock()
	s.shuffles++
	s.shuffledAt = s.clock.Now()
	s.mu.Unlock()

	s.logger.Info("Deck shuffled")
	return Response{OK: true, Remaining: s.deck.Remaining()}
}

func (s *Server) draw() (Response, int) {
	card, err := s.deck.Deal()
	if errors.Is(err, deck.ErrExhausted) {
		s.logger.Warn("Card requested from an empty deck")
		return Response{Error: deck.ErrExhausted.Error()}, http.StatusGone
	}
	s.logger.Debug("Dealt card", "card", card.Code(), "remaining", s.deck.Remaining())
	return Response{Card: card.Code(), Remaining: s.deck.Remaining()}, http.StatusOK
}

func (s *Server) handleShuffle(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, s.shuffle())
}

func (s *Server) handleGetCard(w http.ResponseWriter, r *http.Request) {
	resp, status := s.draw()
	s.writeJSON(w, status, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	resp := HealthResponse{
		Status:     "ok",
		Remaining:  s.deck.Remaining(),
		Shuffles:   s.shuffles,
		ShuffledAt: s.shuffledAt,
	}
	s.mu.Unlock()
	s.writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		return
	}
	defer func() {
		_ = conn.Close()
	}()

	logger := s.logger.With("conn", uuid.NewString()[:8])
	logger.Info("Client connected", "remote", r.RemoteAddr)

	for {
		var req Request
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Warn("Connection closed unexpectedly", "error", err)
			} else {
				logger.Info("Client disconnected")
			}
			return
		}

		var resp Response
		switch req.Op {
		case OpShuffle:
			resp = s.shuffle()
		case OpDraw:
			resp, _ = s.draw()
		default:
			resp = Response{Error: "unknown op " + req.Op, Remaining: s.deck.Remaining()}
		}

		if err := conn.WriteJSON(resp); err != nil {
			logger.Error("Failed to write response", "error", err)
			return
		}
	}
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("Failed to encode response", "error", err)
	}
}
