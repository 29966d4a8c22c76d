package blackjack

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/lox/blackjack/internal/cards"
)

// DealerThreshold is the score at which the default dealer policy stands
const DealerThreshold = 17

// CardSource deals one rank per request. Draw returns an error wrapping
// deck.ErrExhausted once no cards remain.
type CardSource interface {
	Reshuffle(ctx context.Context) error
	Draw(ctx context.Context) (cards.Rank, error)
}

// Choice is a player's decision during their turn
type Choice int

const (
	Stand Choice = iota
	Hit
)

// String returns the string representation of a choice
func (c Choice) String() string {
	if c == Hit {
		return "hit"
	}
	return "stand"
}

// ChoiceParser maps a raw answer to a Choice
type ChoiceParser func(answer string) Choice

// ParseChoice treats "h" in either case as Hit and every other answer,
// including blank or misspelt ones, as Stand without asking again
func ParseChoice(answer string) Choice {
	if strings.EqualFold(answer, "h") {
		return Hit
	}
	return Stand
}

// DealerPolicy reports whether the dealer draws at the given score
type DealerPolicy func(score int) bool

// HitBelow returns a policy that draws while the score is under threshold
func HitBelow(threshold int) DealerPolicy {
	return func(score int) bool {
		return score < threshold
	}
}

// TurnEngine runs player and dealer turns against a card source
type TurnEngine struct {
	source       CardSource
	prompter     Prompter
	reporter     Reporter
	logger       *log.Logger
	parseChoice  ChoiceParser
	dealerPolicy DealerPolicy
}

// NewTurnEngine creates a turn engine with the default policies. A nil
// reporter or logger discards output.
func NewTurnEngine(source CardSource, prompter Prompter, reporter Reporter, logger *log.Logger) *TurnEngine {
	if reporter == nil {
		reporter = Discard
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}
	return &TurnEngine{
		source:       source,
		prompter:     prompter,
		reporter:     reporter,
		logger:       logger.WithPrefix("turn"),
		parseChoice:  ParseChoice,
		dealerPolicy: HitBelow(DealerThreshold),
	}
}

// PlayerTurn offers hit or stand until the player stands or busts
func (e *TurnEngine) PlayerTurn(ctx context.Context, p *Player) error {
	logger := e.logger.With("player", p.Name())

	state := p.Snapshot()
	for !state.Busted {
		e.reporter.Report(Event{Type: EventTypePlayerTurn, Player: state.Name, Hand: state.HandState})

		msg := fmt.Sprintf("%s: Your current score is %d would you like to Hit or Stand? (H/S) ", state.Name, state.Score)
		answer, err := e.prompter.Prompt(ctx, msg)
		if err != nil {
			return fmt.Errorf("prompt %s: %w", state.Name, err)
		}

		choice := e.parseChoice(answer)
		logger.Debug("Player chose", "answer", answer, "choice", choice, "score", state.Score)
		if choice != Hit {
			e.reporter.Report(Event{Type: EventTypePlayerStand, Player: state.Name, Hand: state.HandState})
			return nil
		}

		rank, err := e.draw(ctx)
		if err != nil {
			return err
		}
		state = p.DealCard(rank)
		e.reporter.Report(Event{Type: EventTypeCardDealt, Player: state.Name, Rank: rank, Hand: state.HandState})
	}

	logger.Info("Player busted", "score", state.Score, "hand", state.Cards.String())
	e.reporter.Report(Event{Type: EventTypePlayerBust, Player: state.Name, Hand: state.HandState})
	return nil
}

// DealerTurn draws for the dealer while the policy asks for a card. The
// decision is made on the score before each draw.
func (e *TurnEngine) DealerTurn(ctx context.Context, d *Dealer) error {
	state := d.Snapshot()
	for !state.Busted && e.dealerPolicy(state.Score) {
		rank, err := e.draw(ctx)
		if err != nil {
			return err
		}
		state = d.DealCard(rank)
		e.reporter.Report(Event{Type: EventTypeCardDealt, Player: DealerName, Rank: rank, Hand: state})
	}

	e.logger.Debug("Dealer finished", "score", state.Score, "busted", state.Busted)
	if state.Busted {
		e.reporter.Report(Event{Type: EventTypeDealerBust, Player: DealerName, Hand: state})
	} else {
		e.reporter.Report(Event{Type: EventTypeDealerStand, Player: DealerName, Hand: state})
	}
	return nil
}

func (e *TurnEngine) draw(ctx context.Context) (cards.Rank, error) {
	rank, err := e.source.Draw(ctx)
	if err != nil {
		return 0, fmt.Errorf("draw card: %w", err)
	}
	if !rank.Valid() {
		return 0, fmt.Errorf("draw card: %w: rank %d", cards.ErrInvalidCard, int(rank))
	}
	return rank, nil
}
