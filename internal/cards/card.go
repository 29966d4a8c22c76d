package cards

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCard is returned when a rank or card code cannot be parsed
var ErrInvalidCard = errors.New("invalid card")

// Suit represents a card suit. Suits never affect scoring.
type Suit int

const (
	Spades Suit = iota
	Hearts
	Diamonds
	Clubs
)

// String returns the symbol for a suit
func (s Suit) String() string {
	switch s {
	case Spades:
		return "♠"
	case Hearts:
		return "♥"
	case Diamonds:
		return "♦"
	case Clubs:
		return "♣"
	default:
		return "?"
	}
}

// Code returns the single letter used for a suit in card codes
func (s Suit) Code() string {
	switch s {
	case Spades:
		return "S"
	case Hearts:
		return "H"
	case Diamonds:
		return "D"
	case Clubs:
		return "C"
	default:
		return "?"
	}
}

// IsRed returns true if the suit is red (Hearts or Diamonds)
func (s Suit) IsRed() bool {
	return s == Hearts || s == Diamonds
}

// Rank represents a card rank
type Rank int

const (
	Two Rank = iota + 2
	Three
	Four
	Five
	Six
	Seven
	Eight
	Nine
	Ten
	Jack
	Queen
	King
	Ace
)

// String returns the symbol for a rank. Ten is written "10".
func (r Rank) String() string {
	switch {
	case r >= Two && r <= Ten:
		return fmt.Sprintf("%d", int(r))
	case r == Jack:
		return "J"
	case r == Queen:
		return "Q"
	case r == King:
		return "K"
	case r == Ace:
		return "A"
	default:
		return "?"
	}
}

// Valid reports whether r is one of the thirteen ranks
func (r Rank) Valid() bool {
	return r >= Two && r <= Ace
}

// IsAce returns true if the rank is an Ace
func (r Rank) IsAce() bool {
	return r == Ace
}

// IsFace returns true for J, Q and K
func (r Rank) IsFace() bool {
	return r >= Jack && r <= King
}

// Ranks returns all thirteen ranks in ascending order
func Ranks() []Rank {
	ranks := make([]Rank, 0, 13)
	for r := Two; r <= Ace; r++ {
		ranks = append(ranks, r)
	}
	return ranks
}

// ParseRank parses a rank symbol. It accepts 2-10, J, Q, K, A and T for
// ten, case-insensitively.
func ParseRank(s string) (Rank, error) {
	switch strings.ToUpper(strings.TrimSpace(s)) {
	case "2":
		return Two, nil
	case "3":
		return Three, nil
	case "4":
		return Four, nil
	case "5":
		return Five, nil
	case "6":
		return Six, nil
	case "7":
		return Seven, nil
	case "8":
		return Eight, nil
	case "9":
		return Nine, nil
	case "10", "T":
		return Ten, nil
	case "J":
		return Jack, nil
	case "Q":
		return Queen, nil
	case "K":
		return King, nil
	case "A":
		return Ace, nil
	}
	return 0, fmt.Errorf("%w: rank %q", ErrInvalidCard, s)
}

// MustParseRanks parses a space separated list of ranks, panicking on error.
// Intended for tests and fixtures.
func MustParseRanks(s string) []Rank {
	fields := strings.Fields(s)
	ranks := make([]Rank, 0, len(fields))
	for _, f := range fields {
		r, err := ParseRank(f)
		if err != nil {
			panic(err)
		}
		ranks = append(ranks, r)
	}
	return ranks
}
