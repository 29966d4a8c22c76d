// Package deckservice serves a shuffled deck over HTTP and websocket and
// provides card sources that draw from it remotely.
package deckservice

import "time"

// Websocket operations
const (
	OpShuffle = "shuffle"
	OpDraw    = "draw"
)

// Request is a websocket request frame
type Request struct {
	Op string `json:"op"`
}

// Response is returned by /shuffle and /get-card and for every websocket
// request
type Response struct {
	OK        bool   `json:"ok,omitempty"`
	Card      string `json:"card,omitempty"`
	Remaining int    `json:"remaining"`
	Error     string `json:"error,omitempty"`
}

// HealthResponse is returned by /health
type HealthResponse struct {
	Status     string    `json:"status"`
	Remaining  int       `json:"remaining"`
	Shuffles   int       `json:"shuffles"`
	ShuffledAt time.Time `json:"shuffled_at"`
}
