package console

import (
	"fmt"
	"io"
	"strings"

	"github.com/lox/blackjack/internal/blackjack"
)

// Reporter writes one line per table event
type Reporter struct {
	w      io.Writer
	styles Styles
	rounds int
}

// NewReporter creates a reporter writing to w
func NewReporter(w io.Writer, noColor bool) *Reporter {
	return &Reporter{
		w:      w,
		styles: NewStyles(w, noColor),
	}
}

// Styles returns the styles the reporter renders with
func (r *Reporter) Styles() Styles {
	return r.styles
}

// Report implements blackjack.Reporter
func (r *Reporter) Report(e blackjack.Event) {
	for _, line := range r.format(e) {
		_, _ = fmt.Fprintln(r.w, line)
	}
}

func (r *Reporter) format(e blackjack.Event) []string {
	s := r.styles

	switch e.Type {
	case blackjack.EventTypeSessionStart:
		return []string{s.Info.Render("Shuffling the deck...")}

	case blackjack.EventTypeSeated:
		r.rounds = e.Rounds
		names := make([]string, len(e.Players))
		for i, n := range e.Players {
			names[i] = s.Player.Render(n)
		}
		return []string{fmt.Sprintf("Seated: %s. Rounds: %d", strings.Join(names, ", "), e.Rounds)}

	case blackjack.EventTypeRoundStart:
		return []string{"", s.Title.Render(fmt.Sprintf(" Round %d of %d ", e.Round, r.rounds))}

	case blackjack.EventTypeCardDealt:
		return []string{fmt.Sprintf("%s draws %s %s",
			r.name(e.Player), s.Card.Render(e.Rank.String()), r.hand(e.Hand))}

	case blackjack.EventTypePlayerTurn:
		return []string{fmt.Sprintf("%s holds %s", r.name(e.Player), r.hand(e.Hand))}

	case blackjack.EventTypePlayerStand:
		return []string{fmt.Sprintf("%s stood!", r.name(e.Player))}

	case blackjack.EventTypePlayerBust:
		return []string{s.Error.Render(fmt.Sprintf("%s busted! - You lose", e.Player))}

	case blackjack.EventTypeDealerStand:
		return []string{fmt.Sprintf("%s stands %s", r.name(e.Player), r.hand(e.Hand))}

	case blackjack.EventTypeDealerBust:
		return []string{s.Success.Render(fmt.Sprintf("Dealer busted with %d!", e.Hand.Score))}

	case blackjack.EventTypeRoundResult:
		summary := fmt.Sprintf("Dealer: %d. %s: %d", e.Dealer.Score, e.Player, e.Hand.Score)
		return []string{summary, r.outcome(e)}

	case blackjack.EventTypeInvalidInput:
		msg := "Invalid answer, try again"
		if e.Err != nil {
			msg = fmt.Sprintf("Invalid answer (%v), try again", e.Err)
		}
		return []string{s.Warning.Render(msg)}

	case blackjack.EventTypeSessionEnd:
		lines := []string{"", s.Title.Render(" Final standings ")}
		for _, st := range e.Standings {
			lines = append(lines, fmt.Sprintf("  %-12s  %d won, %d lost, %d tied",
				st.Player, st.Wins, st.Losses, st.Ties))
		}
		return lines

	case blackjack.EventTypeFatal:
		return []string{s.Error.Render(e.Message)}
	}
	return nil
}

func (r *Reporter) outcome(e blackjack.Event) string {
	s := r.styles
	switch e.Outcome {
	case blackjack.Win:
		if e.Dealer.Busted {
			return s.Success.Render(fmt.Sprintf("Dealer busted! - %s wins!", e.Player))
		}
		return s.Success.Render(fmt.Sprintf("%s won!", e.Player))
	case blackjack.Tie:
		return s.Warning.Render(fmt.Sprintf("It's a tie for %s!", e.Player))
	default:
		return s.Error.Render(fmt.Sprintf("Dealer won against %s!", e.Player))
	}
}

func (r *Reporter) name(name string) string {
	if name == blackjack.DealerName {
		return r.styles.Dealer.Render(name)
	}
	return r.styles.Player.Render(name)
}

func (r *Reporter) hand(h blackjack.HandState) string {
	soft := ""
	if h.Soft() {
		soft = " soft"
	}
	return r.styles.Info.Render(fmt.Sprintf("[%s] (%d%s)", h.Cards, h.Score, soft))
}
