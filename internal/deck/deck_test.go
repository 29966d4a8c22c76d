package deck

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/cards"
)

func TestDeckDealsAllCardsThenExhausts(t *testing.T) {
	d := NewSeeded(42)
	require.Equal(t, 52, d.Remaining())

	seen := make(map[cards.Card]bool)
	for range 52 {
		c, err := d.Deal()
		require.NoError(t, err)
		assert.False(t, seen[c], "card %s dealt twice", c)
		seen[c] = true
	}

	_, err := d.Deal()
	assert.ErrorIs(t, err, ErrExhausted)

	_, err = d.Draw(context.Background())
	assert.ErrorIs(t, err, ErrExhausted)
}

func TestDeckSeedIsDeterministic(t *testing.T) {
	a := NewSeeded(7)
	b := NewSeeded(7)
	c := NewSeeded(8)

	var seqA, seqB, seqC []cards.Card
	for range 10 {
		ca, _ := a.Deal()
		cb, _ := b.Deal()
		cc, _ := c.Deal()
		seqA, seqB, seqC = append(seqA, ca), append(seqB, cb), append(seqC, cc)
	}

	assert.Equal(t, seqA, seqB)
	assert.NotEqual(t, seqA, seqC)
}

func TestDeckReshuffleRestoresFullDeck(t *testing.T) {
	ctx := context.Background()
	d := NewSeeded(1)

	for range 20 {
		_, err := d.Draw(ctx)
		require.NoError(t, err)
	}
	require.Equal(t, 32, d.Remaining())

	require.NoError(t, d.Reshuffle(ctx))
	assert.Equal(t, 52, d.Remaining())
}

func TestDeckHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := NewSeeded(1)
	_, err := d.Draw(ctx)
	assert.ErrorIs(t, err, context.Canceled)
	assert.ErrorIs(t, d.Reshuffle(ctx), context.Canceled)
	assert.Equal(t, 52, d.Remaining())
}

func TestStacked(t *testing.T) {
	ctx := context.Background()
	s := NewStacked(cards.MustParseRanks("5 6 A")...)

	require.NoError(t, s.Reshuffle(ctx))
	assert.Equal(t, 1, s.Reshuffles())

	for _, want := range []cards.Rank{cards.Five, cards.Six, cards.Ace} {
		got, err := s.Draw(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	assert.Equal(t, 3, s.Drawn())

	_, err := s.Draw(ctx)
	assert.ErrorIs(t, err, ErrExhausted)
}
