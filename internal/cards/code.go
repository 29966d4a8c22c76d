package cards

import (
	"fmt"
	"strings"
)

// Card is a rank and a suit
type Card struct {
	Rank Rank
	Suit Suit
}

// String returns the display form of a card (e.g., "10♥")
func (c Card) String() string {
	return c.Rank.String() + c.Suit.String()
}

// Code returns the wire form of a card (e.g., "10H", "QS")
func (c Card) Code() string {
	return c.Rank.String() + c.Suit.Code()
}

// NewDeck returns the 52 cards of a standard deck in suit then rank order
func NewDeck() []Card {
	deck := make([]Card, 0, 52)
	for suit := Spades; suit <= Clubs; suit++ {
		for rank := Two; rank <= Ace; rank++ {
			deck = append(deck, Card{Rank: rank, Suit: suit})
		}
	}
	return deck
}

// ParseCode parses a card code such as "10H", "qs" or "A". The suit letter
// is optional; a code without one yields Spades since suits carry no value
// in scoring.
func ParseCode(code string) (Card, error) {
	s := strings.ToUpper(strings.TrimSpace(code))
	if s == "" {
		return Card{}, fmt.Errorf("%w: empty card code", ErrInvalidCard)
	}

	suit := Spades
	rankPart := s
	switch s[len(s)-1] {
	case 'S':
		rankPart = s[:len(s)-1]
	case 'H':
		suit, rankPart = Hearts, s[:len(s)-1]
	case 'D':
		suit, rankPart = Diamonds, s[:len(s)-1]
	case 'C':
		suit, rankPart = Clubs, s[:len(s)-1]
	}

	rank, err := ParseRank(rankPart)
	if err != nil {
		return Card{}, fmt.Errorf("%w: card code %q", ErrInvalidCard, code)
	}
	return Card{Rank: rank, Suit: suit}, nil
}
