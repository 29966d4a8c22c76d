package blackjack

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/cards"
	"github.com/lox/blackjack/internal/deck"
)

func quietLogger() *log.Logger {
	return log.NewWithOptions(io.Discard, log.Options{Level: log.ErrorLevel})
}

func TestRoundHint(t *testing.T) {
	assert.Equal(t, 13, RoundHint(1))
	assert.Equal(t, 8, RoundHint(2))
	assert.Equal(t, 6, RoundHint(3))
	assert.Equal(t, 5, RoundHint(4))
	assert.Equal(t, 4, RoundHint(5))
}

func TestSinglePlayerBustsAndLoses(t *testing.T) {
	// Player 5 6, dealer 9 8, then the player's hits 10 and A
	src := deck.NewStacked(cards.MustParseRanks("5 6 9 8 10 A")...)
	p := newScriptedPrompter("1", "Alice", "1", "h", "h")
	rec := &recorder{}

	table := NewTable(src, p, rec, WithLogger(quietLogger()))
	require.NoError(t, table.Run(context.Background()))

	assert.Equal(t, 1, src.Reshuffles())
	assert.Equal(t, 6, src.Drawn())
	assert.Empty(t, p.answers)

	var scores []int
	for _, e := range rec.ofType(EventTypeCardDealt) {
		if e.Player == "Alice" {
			scores = append(scores, e.Hand.Score)
		}
	}
	assert.Equal(t, []int{5, 11, 21, 22}, scores)

	alice := table.Players()[0]
	assert.True(t, alice.Busted)
	assert.Equal(t, 17, table.Dealer().Score)
	assert.Len(t, rec.ofType(EventTypeDealerStand), 1)

	results := rec.ofType(EventTypeRoundResult)
	require.Len(t, results, 1)
	assert.Equal(t, "Alice", results[0].Player)
	assert.Equal(t, Lose, results[0].Outcome)
	assert.Equal(t, 17, results[0].Dealer.Score)

	end := rec.ofType(EventTypeSessionEnd)
	require.Len(t, end, 1)
	assert.Equal(t, []Standing{{Player: "Alice", Losses: 1}}, end[0].Standings)
}

func TestTwoPlayersTwoRounds(t *testing.T) {
	src := deck.NewStacked(cards.MustParseRanks(
		// round 1: Ann 10 7, Bob 9 9, dealer 10 6 then draws K
		"10 7 9 9 10 6 K " +
			// round 2: Ann A K, Bob 10 Q, dealer 10 Q
			"A K 10 Q 10 Q")...)
	p := newScriptedPrompter("2", "Ann", "Bob", "2", "s", "x", "s", "s")
	rec := &recorder{}

	table := NewTable(src, p, rec, WithLogger(quietLogger()))
	require.NoError(t, table.Run(context.Background()))

	assert.Equal(t, 13, src.Drawn())
	assert.Equal(t, 2, table.Rounds())
	assert.Contains(t, p.prompts[3], "(max 8)")

	var outcomes []string
	for _, e := range rec.ofType(EventTypeRoundResult) {
		outcomes = append(outcomes, e.Player+":"+e.Outcome.String())
	}
	assert.Equal(t, []string{"Ann:WIN", "Bob:WIN", "Ann:WIN", "Bob:TIE"}, outcomes)
	assert.Len(t, rec.ofType(EventTypeDealerBust), 1)

	assert.Equal(t, []Standing{
		{Player: "Ann", Wins: 2},
		{Player: "Bob", Wins: 1, Ties: 1},
	}, table.Standings())

	// Hands are reset between rounds
	assert.Equal(t, Hand{cards.Ace, cards.King}, table.Players()[0].Cards)
	assert.Equal(t, Hand{cards.Ten, cards.Queen}, table.Dealer().Cards)
}

func TestDealOrder(t *testing.T) {
	src := deck.NewStacked(cards.MustParseRanks("2 3 4 5 6 7 8 9")...)
	p := newScriptedPrompter("3", "A", "B", "C", "1", "s", "s", "s")
	rec := &recorder{}

	table := NewTable(src, p, rec, WithLogger(quietLogger()))
	require.NoError(t, table.Run(context.Background()))

	var order []string
	for _, e := range rec.ofType(EventTypeCardDealt) {
		order = append(order, e.Player+"="+e.Rank.String())
	}
	// Two cards per seat in order, then the dealer, who holds 17 and stands
	assert.Equal(t, []string{"A=2", "A=3", "B=4", "B=5", "C=6", "C=7", "Dealer=8", "Dealer=9"}, order)
}

func TestSetupRepromptsInvalidAnswers(t *testing.T) {
	p := newScriptedPrompter(
		"0", "abc", "2",
		"", "ThirteenChars", "Ann", "Bob",
		"", "3",
	)
	rec := &recorder{}

	table := NewTable(deck.NewStacked(), p, rec, WithLogger(quietLogger()))
	require.NoError(t, table.Setup(context.Background()))

	assert.Len(t, p.prompts, 9)
	assert.Len(t, rec.ofType(EventTypeInvalidInput), 5)
	assert.Equal(t, 3, table.Rounds())

	names := []string{}
	for _, s := range table.Players() {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{"Ann", "Bob"}, names)
}

func TestNonNumericRoundCountPlaysNoRounds(t *testing.T) {
	src := deck.NewStacked(cards.MustParseRanks("2 3 4 5")...)
	p := newScriptedPrompter("1", "Ann", "many")
	rec := &recorder{}

	table := NewTable(src, p, rec, WithLogger(quietLogger()))
	require.NoError(t, table.Run(context.Background()))

	assert.Zero(t, table.Rounds())
	assert.Zero(t, src.Drawn())
	assert.Empty(t, rec.ofType(EventTypeRoundStart))
	assert.Len(t, rec.ofType(EventTypeSessionEnd), 1)
}

func TestStrictRoundCount(t *testing.T) {
	p := newScriptedPrompter("1", "Ann", "many", "0", "2")
	rec := &recorder{}

	table := NewTable(deck.NewStacked(), p, rec, WithLogger(quietLogger()), WithStrictRounds(true))
	require.NoError(t, table.Setup(context.Background()))

	assert.Equal(t, 2, table.Rounds())
	assert.Len(t, rec.ofType(EventTypeInvalidInput), 2)
}

func TestExhaustionIsFatal(t *testing.T) {
	src := deck.NewStacked(cards.MustParseRanks("5 6 9")...)
	p := newScriptedPrompter("1", "Ann", "3")
	rec := &recorder{}

	table := NewTable(src, p, rec, WithLogger(quietLogger()))
	err := table.Run(context.Background())

	require.ErrorIs(t, err, deck.ErrExhausted)
	assert.Equal(t, 1, table.Round())

	fatal := rec.ofType(EventTypeFatal)
	require.Len(t, fatal, 1)
	assert.Contains(t, fatal[0].Message, "run out of cards")
	assert.Empty(t, rec.ofType(EventTypeRoundResult))
	assert.Empty(t, rec.ofType(EventTypeSessionEnd))
}

func TestAbortedSessionIsNotReportedAsFatal(t *testing.T) {
	p := newScriptedPrompter("1")
	rec := &recorder{}

	table := NewTable(deck.NewStacked(), p, rec, WithLogger(quietLogger()))
	err := table.Run(context.Background())

	assert.ErrorIs(t, err, ErrAborted)
	assert.Empty(t, rec.ofType(EventTypeFatal))
}

func TestCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	src := deck.NewStacked(cards.Two)
	table := NewTable(src, newScriptedPrompter(), nil, WithLogger(quietLogger()))

	err := table.Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Zero(t, src.Reshuffles())
}

func TestPolicyOptions(t *testing.T) {
	// Always hit until bust, dealer stands on anything
	src := deck.NewStacked(cards.MustParseRanks("10 2 2 3 10")...)
	p := newScriptedPrompter("1", "Ann", "1", "whatever")
	rec := &recorder{}

	table := NewTable(src, p, rec,
		WithLogger(quietLogger()),
		WithChoiceParser(func(string) Choice { return Hit }),
		WithDealerPolicy(func(int) bool { return false }),
	)
	require.NoError(t, table.Run(context.Background()))

	assert.Equal(t, 22, table.Players()[0].Score)
	assert.Equal(t, 5, table.Dealer().Score)

	results := rec.ofType(EventTypeRoundResult)
	require.Len(t, results, 1)
	assert.Equal(t, Lose, results[0].Outcome)
}

func TestEventsAreStamped(t *testing.T) {
	mock := quartz.NewMock(t)
	src := deck.NewStacked(cards.MustParseRanks("10 9 10 8")...)
	p := newScriptedPrompter("1", "Ann", "1", "s")
	rec := &recorder{}

	table := NewTable(src, p, rec,
		WithLogger(quietLogger()),
		WithClock(mock),
		WithSessionID("session-1"),
	)
	require.NoError(t, table.Run(context.Background()))

	require.NotEmpty(t, rec.events)
	for _, e := range rec.events {
		assert.Equal(t, mock.Now(), e.Time, e.Type.String())
		assert.Equal(t, "session-1", e.Session)
	}

	assert.Equal(t, 0, rec.ofType(EventTypeSessionStart)[0].Round)
	assert.Equal(t, 1, rec.ofType(EventTypeRoundResult)[0].Round)
	assert.Equal(t, Win, rec.ofType(EventTypeRoundResult)[0].Outcome)
}
