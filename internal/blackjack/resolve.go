package blackjack

// Outcome is a player's result for one round against the dealer
type Outcome int

const (
	Lose Outcome = iota
	Tie
	Win
)

// String returns the string representation of an outcome
func (o Outcome) String() string {
	switch o {
	case Win:
		return "WIN"
	case Lose:
		return "LOSE"
	case Tie:
		return "TIE"
	default:
		return "UNKNOWN"
	}
}

// Resolve decides a player's outcome from both final hands. A player bust
// loses even when the dealer also busts.
func Resolve(player, dealer HandState) Outcome {
	switch {
	case player.Busted:
		return Lose
	case dealer.Busted:
		return Win
	case player.Score > dealer.Score:
		return Win
	case player.Score == dealer.Score:
		return Tie
	default:
		return Lose
	}
}

// Result is one player's resolved round
type Result struct {
	Player  PlayerState
	Outcome Outcome
}

// ResolveRound resolves every player against the dealer in seat order
func ResolveRound(players []PlayerState, dealer HandState) []Result {
	results := make([]Result, len(players))
	for i, p := range players {
		results[i] = Result{Player: p, Outcome: Resolve(p.HandState, dealer)}
	}
	return results
}

// Standing tallies a player's outcomes over a session
type Standing struct {
	Player string
	Wins   int
	Losses int
	Ties   int
}

// Record adds one outcome to the tally
func (s *Standing) Record(o Outcome) {
	switch o {
	case Win:
		s.Wins++
	case Lose:
		s.Losses++
	case Tie:
		s.Ties++
	}
}

// Played returns the number of rounds tallied
func (s Standing) Played() int {
	return s.Wins + s.Losses + s.Ties
}
