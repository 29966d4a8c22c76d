package blackjack

import (
	"strings"

	"github.com/lox/blackjack/internal/cards"
)

// BustLimit is the highest score a hand can hold without busting
const BustLimit = 21

// Hand is the ordered list of ranks a player or the dealer holds
type Hand []cards.Rank

// String returns the ranks separated by spaces (e.g., "A 6 K")
func (h Hand) String() string {
	parts := make([]string, len(h))
	for i, r := range h {
		parts[i] = r.String()
	}
	return strings.Join(parts, " ")
}

// Score totals a hand. Non-ace cards are summed first, J/Q/K as 10. Each ace
// then adds 11 unless the running total already exceeds 10, in which case it
// adds 1.
func Score(hand Hand) int {
	total, aces := splitAces(hand)
	for range aces {
		if total > 10 {
			total++
		} else {
			total += 11
		}
	}
	return total
}

// IsSoft reports whether an ace in the hand is counted as 11
func IsSoft(hand Hand) bool {
	total, aces := splitAces(hand)
	return aces > 0 && total <= 10 && Score(hand) <= BustLimit
}

func splitAces(hand Hand) (total, aces int) {
	for _, r := range hand {
		switch {
		case r.IsAce():
			aces++
		case r.IsFace():
			total += 10
		default:
			total += int(r)
		}
	}
	return total, aces
}
