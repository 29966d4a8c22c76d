package blackjack

import (
	"time"

	"github.com/lox/blackjack/internal/cards"
)

// EventType identifies what happened at the table
type EventType string

const (
	EventTypeSessionStart EventType = "session_start"
	EventTypeSeated       EventType = "seated"
	EventTypeRoundStart   EventType = "round_start"
	EventTypeCardDealt    EventType = "card_dealt"
	EventTypePlayerTurn   EventType = "player_turn"
	EventTypePlayerStand  EventType = "player_stand"
	EventTypePlayerBust   EventType = "player_bust"
	EventTypeDealerStand  EventType = "dealer_stand"
	EventTypeDealerBust   EventType = "dealer_bust"
	EventTypeRoundResult  EventType = "round_result"
	EventTypeInvalidInput EventType = "invalid_input"
	EventTypeSessionEnd   EventType = "session_end"
	EventTypeFatal        EventType = "fatal"
)

// String returns the string representation of the event type
func (et EventType) String() string {
	return string(et)
}

// Event is a single observation of table progress. Only the fields relevant
// to the event type are populated.
type Event struct {
	Type    EventType
	Time    time.Time
	Session string
	Round   int

	// Player is the acting player's name, or DealerName for dealer cards
	Player string
	Rank   cards.Rank
	Hand   HandState
	Dealer HandState

	Outcome   Outcome
	Players   []string
	Rounds    int
	Standings []Standing

	Message string
	Err     error
}

// Reporter receives table events. Reporting is purely observational.
type Reporter interface {
	Report(Event)
}

// ReporterFunc adapts a function to the Reporter interface
type ReporterFunc func(Event)

// Report calls f(e)
func (f ReporterFunc) Report(e Event) {
	f(e)
}

// Discard is a Reporter that drops every event
var Discard Reporter = ReporterFunc(func(Event) {})
