package blackjack

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/lox/blackjack/internal/deck"
)

const (
	MinPlayers    = 1
	MaxPlayers    = 5
	MaxNameLength = 12

	// MaxRoundsInputLength bounds the round count answer by characters,
	// not by value
	MaxRoundsInputLength = 12

	cardsPerDeck = 52
)

// RoundHint is the suggested maximum number of rounds for a player count.
// It is displayed only and never enforced.
func RoundHint(playerCount int) int {
	return cardsPerDeck / (playerCount + 1) / 2
}

// Option configures a Table
type Option func(*Table)

// WithLogger sets the table's logger
func WithLogger(logger *log.Logger) Option {
	return func(t *Table) {
		t.logger = logger
	}
}

// WithClock sets the clock used to timestamp events
func WithClock(clock quartz.Clock) Option {
	return func(t *Table) {
		t.clock = clock
	}
}

// WithSessionID labels events and logs with a session identifier
func WithSessionID(id string) Option {
	return func(t *Table) {
		t.session = id
	}
}

// WithDealerPolicy replaces the dealer's hit-below-17 policy
func WithDealerPolicy(policy DealerPolicy) Option {
	return func(t *Table) {
		t.dealerPolicy = policy
	}
}

// WithChoiceParser replaces the hit/stand answer parser
func WithChoiceParser(parser ChoiceParser) Option {
	return func(t *Table) {
		t.parseChoice = parser
	}
}

// WithStrictRounds requires the round count to be a positive integer
// instead of accepting any 1-12 character answer
func WithStrictRounds(strict bool) Option {
	return func(t *Table) {
		t.strictRounds = strict
	}
}

// Table sequences a blackjack session: seating, then a fixed number of
// rounds against the dealer
type Table struct {
	source   CardSource
	prompter Prompter
	reporter Reporter
	logger   *log.Logger
	clock    quartz.Clock
	session  string

	dealerPolicy DealerPolicy
	parseChoice  ChoiceParser
	strictRounds bool
	turns        *TurnEngine

	players   []*Player
	dealer    *Dealer
	rounds    int
	round     int
	standings []Standing
}

// NewTable creates a table that deals from source and asks prompter for
// every answer
func NewTable(source CardSource, prompter Prompter, reporter Reporter, opts ...Option) *Table {
	t := &Table{
		source:       source,
		prompter:     prompter,
		reporter:     reporter,
		logger:       log.New(io.Discard),
		clock:        quartz.NewReal(),
		dealerPolicy: HitBelow(DealerThreshold),
		parseChoice:  ParseChoice,
		dealer:       &Dealer{},
	}
	for _, opt := range opts {
		opt(t)
	}
	if t.reporter == nil {
		t.reporter = Discard
	}

	t.logger = t.logger.WithPrefix("table")
	if t.session != "" {
		t.logger = t.logger.With("session", t.session)
	}

	t.turns = NewTurnEngine(source, prompter, ReporterFunc(t.emit), t.logger)
	t.turns.parseChoice = t.parseChoice
	t.turns.dealerPolicy = t.dealerPolicy
	return t
}

// Run plays a full session: reshuffle, seating, every round, then the
// final standings. A card source failure ends the session with an error.
func (t *Table) Run(ctx context.Context) error {
	t.emit(Event{Type: EventTypeSessionStart})
	start := t.clock.Now()

	if err := t.run(ctx); err != nil {
		t.logger.Error("Session ended early", "round", t.round, "error", err)
		if !errors.Is(err, ErrAborted) && !errors.Is(err, context.Canceled) {
			t.emit(Event{Type: EventTypeFatal, Message: fatalMessage(err), Err: err})
		}
		return err
	}

	t.logger.Info("Session complete", "rounds", t.rounds, "elapsed", t.clock.Since(start))
	t.emit(Event{Type: EventTypeSessionEnd, Rounds: t.rounds, Standings: t.Standings()})
	return nil
}

func (t *Table) run(ctx context.Context) error {
	if err := t.source.Reshuffle(ctx); err != nil {
		return fmt.Errorf("reshuffle: %w", err)
	}
	if err := t.Setup(ctx); err != nil {
		return err
	}
	for t.round < t.rounds {
		if err := t.PlayRound(ctx); err != nil {
			return fmt.Errorf("round %d: %w", t.round, err)
		}
	}
	return nil
}

func fatalMessage(err error) string {
	switch {
	case errors.Is(err, deck.ErrExhausted):
		return "The deck has run out of cards, the game cannot continue."
	default:
		return fmt.Sprintf("The game cannot continue: %v", err)
	}
}

// Setup collects the player count, one name per seat and the round count
func (t *Table) Setup(ctx context.Context) error {
	count, err := Collect(ctx, t.prompter,
		fmt.Sprintf("How many players? (%d-%d) ", MinPlayers, MaxPlayers),
		IntInRange(MinPlayers, MaxPlayers), t.invalid)
	if err != nil {
		return fmt.Errorf("player count: %w", err)
	}

	names := make([]string, 0, count)
	for seat := 1; seat <= count; seat++ {
		name, err := Collect(ctx, t.prompter,
			fmt.Sprintf("Enter a name for player %d (1-%d characters) ", seat, MaxNameLength),
			LengthBetween(1, MaxNameLength), t.invalid)
		if err != nil {
			return fmt.Errorf("player %d name: %w", seat, err)
		}
		names = append(names, name)
	}

	validate := LooseRoundCount(MaxRoundsInputLength)
	if t.strictRounds {
		validate = StrictRoundCount(MaxRoundsInputLength)
	}
	rounds, err := Collect(ctx, t.prompter,
		fmt.Sprintf("How many rounds would you like to play? (max %d) ", RoundHint(count)),
		validate, t.invalid)
	if err != nil {
		return fmt.Errorf("round count: %w", err)
	}
	if rounds == 0 {
		t.logger.Warn("Round count answer did not name a positive number, no rounds will be played")
	}

	t.Seat(names, rounds)
	return nil
}

// Seat replaces the seating and round count. Setup calls it with the
// collected answers.
func (t *Table) Seat(names []string, rounds int) {
	t.players = make([]*Player, len(names))
	t.standings = make([]Standing, len(names))
	for i, name := range names {
		t.players[i] = NewPlayer(name)
		t.standings[i] = Standing{Player: name}
	}
	t.rounds = rounds
	t.round = 0

	t.logger.Info("Table seated", "players", names, "rounds", rounds, "hint", RoundHint(len(names)))
	t.emit(Event{Type: EventTypeSeated, Players: names, Rounds: rounds})
}

// PlayRound plays the next round: reset, deal, player turns in seat order,
// dealer turn, then one result per player
func (t *Table) PlayRound(ctx context.Context) error {
	t.round++
	t.emit(Event{Type: EventTypeRoundStart})

	for _, p := range t.players {
		p.ResetForRound()
	}
	t.dealer.ResetForRound()

	for _, p := range t.players {
		for range 2 {
			rank, err := t.turns.draw(ctx)
			if err != nil {
				return err
			}
			state := p.DealCard(rank)
			t.emit(Event{Type: EventTypeCardDealt, Player: state.Name, Rank: rank, Hand: state.HandState})
		}
	}
	for range 2 {
		rank, err := t.turns.draw(ctx)
		if err != nil {
			return err
		}
		state := t.dealer.DealCard(rank)
		t.emit(Event{Type: EventTypeCardDealt, Player: DealerName, Rank: rank, Hand: state})
	}

	for _, p := range t.players {
		if err := t.turns.PlayerTurn(ctx, p); err != nil {
			return err
		}
	}
	if err := t.turns.DealerTurn(ctx, t.dealer); err != nil {
		return err
	}

	dealer := t.dealer.Snapshot()
	for i, result := range ResolveRound(t.Players(), dealer) {
		t.standings[i].Record(result.Outcome)
		t.logger.Info("Round resolved",
			"round", t.round,
			"player", result.Player.Name,
			"score", result.Player.Score,
			"dealer", dealer.Score,
			"outcome", result.Outcome)
		t.emit(Event{
			Type:    EventTypeRoundResult,
			Player:  result.Player.Name,
			Hand:    result.Player.HandState,
			Dealer:  dealer,
			Outcome: result.Outcome,
		})
	}
	return nil
}

// Players returns a snapshot of every seat in order
func (t *Table) Players() []PlayerState {
	states := make([]PlayerState, len(t.players))
	for i, p := range t.players {
		states[i] = p.Snapshot()
	}
	return states
}

// Dealer returns a snapshot of the dealer's hand
func (t *Table) Dealer() HandState {
	return t.dealer.Snapshot()
}

// Rounds returns the configured number of rounds
func (t *Table) Rounds() int {
	return t.rounds
}

// Round returns the number of the round in progress or last played
func (t *Table) Round() int {
	return t.round
}

// Standings returns each player's tally for the session so far
func (t *Table) Standings() []Standing {
	return append([]Standing(nil), t.standings...)
}

func (t *Table) invalid(answer string, err error) {
	t.logger.Debug("Rejected answer", "answer", answer, "error", err)
	t.emit(Event{Type: EventTypeInvalidInput, Message: answer, Err: err})
}

func (t *Table) emit(e Event) {
	e.Time = t.clock.Now()
	e.Session = t.session
	e.Round = t.round
	t.reporter.Report(e)
}
