package deck

import (
	"context"
	"errors"
	rand "math/rand/v2"
	"sync"

	"github.com/lox/blackjack/internal/cards"
)

// ErrExhausted is returned when a card is requested from an empty deck
var ErrExhausted = errors.New("deck exhausted")

// Deck is a shuffled 52-card deck. It is safe for concurrent use so a single
// deck can back the deck service for several clients.
type Deck struct {
	mu    sync.Mutex
	cards []cards.Card
	rng   *rand.Rand
}

// New creates a full, shuffled deck driven by rng
func New(rng *rand.Rand) *Deck {
	d := &Deck{
		cards: make([]cards.Card, 0, 52),
		rng:   rng,
	}
	d.Reset()
	return d
}

// NewSeeded creates a deck whose shuffles are reproducible for a given seed
func NewSeeded(seed int64) *Deck {
	return New(NewRand(seed))
}

// Reset restores the deck to all 52 cards and shuffles it
func (d *Deck) Reset() {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.cards = append(d.cards[:0], cards.NewDeck()...)
	d.rng.Shuffle(len(d.cards), func(i, j int) {
		d.cards[i], d.cards[j] = d.cards[j], d.cards[i]
	})
}

// Deal removes and returns the top card
func (d *Deck) Deal() (cards.Card, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if len(d.cards) == 0 {
		return cards.Card{}, ErrExhausted
	}
	card := d.cards[0]
	d.cards = d.cards[1:]
	return card, nil
}

// Remaining returns the number of cards left
func (d *Deck) Remaining() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return len(d.cards)
}

// Reshuffle implements the card source contract by restoring a full deck
func (d *Deck) Reshuffle(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.Reset()
	return nil
}

// Draw implements the card source contract, yielding only the rank
func (d *Deck) Draw(ctx context.Context) (cards.Rank, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	card, err := d.Deal()
	if err != nil {
		return 0, err
	}
	return card.Rank, nil
}
