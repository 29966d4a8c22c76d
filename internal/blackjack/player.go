package blackjack

import (
	"slices"

	"github.com/lox/blackjack/internal/cards"
)

// DealerName labels dealer cards in events and logs
const DealerName = "Dealer"

// HandState is a hand together with the values derived from it
type HandState struct {
	Cards  Hand
	Score  int
	Busted bool
}

// Soft reports whether an ace in the hand counts as 11
func (s HandState) Soft() bool {
	return IsSoft(s.Cards)
}

func (s *HandState) add(rank cards.Rank) {
	s.Cards = append(s.Cards, rank)
	s.Score = Score(s.Cards)
	s.Busted = s.Score > BustLimit
}

func (s HandState) clone() HandState {
	s.Cards = slices.Clone(s.Cards)
	return s
}

// PlayerState is a read-only copy of a player
type PlayerState struct {
	Name string
	HandState
}

// Player is one seat at the table. Score and bust status are only ever
// changed together with the hand through DealCard and ResetForRound.
type Player struct {
	name  string
	state HandState
}

// NewPlayer creates a player with an empty hand
func NewPlayer(name string) *Player {
	return &Player{name: name}
}

// Name returns the player's name
func (p *Player) Name() string {
	return p.name
}

// DealCard adds a card and returns the resulting state
func (p *Player) DealCard(rank cards.Rank) PlayerState {
	p.state.add(rank)
	return p.Snapshot()
}

// ResetForRound empties the hand, keeping the name
func (p *Player) ResetForRound() {
	p.state = HandState{}
}

// Snapshot returns a copy of the player's current state
func (p *Player) Snapshot() PlayerState {
	return PlayerState{Name: p.name, HandState: p.state.clone()}
}

// Dealer holds the house hand
type Dealer struct {
	state HandState
}

// DealCard adds a card to the dealer's hand and returns the resulting state
func (d *Dealer) DealCard(rank cards.Rank) HandState {
	d.state.add(rank)
	return d.Snapshot()
}

// ResetForRound empties the dealer's hand
func (d *Dealer) ResetForRound() {
	d.state = HandState{}
}

// Snapshot returns a copy of the dealer's hand
func (d *Dealer) Snapshot() HandState {
	return d.state.clone()
}
