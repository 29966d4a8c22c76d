package deck

import (
	"context"

	"github.com/lox/blackjack/internal/cards"
)

// Stacked deals a fixed sequence of ranks in order. Reshuffling does not
// reorder it, which makes a table session fully scripted.
type Stacked struct {
	ranks      []cards.Rank
	next       int
	reshuffles int
}

// NewStacked returns a deck that deals ranks in the given order
func NewStacked(ranks ...cards.Rank) *Stacked {
	return &Stacked{ranks: ranks}
}

// Reshuffle counts the request and leaves the order untouched
func (s *Stacked) Reshuffle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.reshuffles++
	return nil
}

// Draw returns the next rank or ErrExhausted
func (s *Stacked) Draw(ctx context.Context) (cards.Rank, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s.next >= len(s.ranks) {
		return 0, ErrExhausted
	}
	r := s.ranks[s.next]
	s.next++
	return r, nil
}

// Drawn returns how many ranks have been dealt
func (s *Stacked) Drawn() int { return s.next }

// Reshuffles returns how many reshuffles were requested
func (s *Stacked) Reshuffles() int { return s.reshuffles }
