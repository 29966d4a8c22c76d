package main

import (
	"context"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/deckservice"
)

func TestResolveSeed(t *testing.T) {
	flag := int64(0)
	assert.Equal(t, int64(0), resolveSeed(&flag, 5), "explicit flag wins, even zero")
	assert.Equal(t, int64(5), resolveSeed(nil, 5))
	assert.NotZero(t, resolveSeed(nil, 0))
}

func TestApplyOverrides(t *testing.T) {
	cfg := config.DefaultConfig()
	cmd := &PlayCmd{
		Deck:           "ws://localhost:9090/ws",
		DealerStandsOn: 18,
		StrictRounds:   true,
		LogLevel:       "debug",
		LogFile:        "-",
	}
	cmd.applyOverrides(cfg)

	assert.Equal(t, "ws://localhost:9090/ws", cfg.Deck.Source)
	assert.Equal(t, 18, cfg.Table.DealerStandsOn)
	assert.True(t, cfg.Table.StrictRoundCount)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "-", cfg.Log.File)
	require.NoError(t, cfg.Validate())

	// Empty flags leave config alone
	cfg = config.DefaultConfig()
	(&PlayCmd{}).applyOverrides(cfg)
	assert.Equal(t, config.DefaultConfig(), cfg)
}

func TestOpenSource(t *testing.T) {
	logger := log.New(io.Discard)
	ctx := context.Background()

	seed := int64(3)
	src, closer, err := openSource(ctx, &config.DeckSettings{Source: "local"}, &seed, logger)
	require.NoError(t, err)
	assert.IsType(t, &deck.Deck{}, src)
	assert.NoError(t, closer.Close())

	src, closer, err = openSource(ctx, &config.DeckSettings{Source: "http://localhost:9090", RequestTimeout: 1}, nil, logger)
	require.NoError(t, err)
	assert.IsType(t, &deckservice.HTTPSource{}, src)
	assert.NoError(t, closer.Close())
}

func TestSetupLogger(t *testing.T) {
	logger, closer, err := setupLogger("warn", "")
	require.NoError(t, err)
	assert.Equal(t, log.WarnLevel, logger.GetLevel())
	assert.NoError(t, closer.Close())

	_, _, err = setupLogger("loud", "")
	assert.Error(t, err)
}
