package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/google/uuid"

	"github.com/lox/blackjack/internal/blackjack"
	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/console"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/deckservice"
)

// PlayCmd runs an interactive session at the terminal
type PlayCmd struct {
	Deck           string `help:"Card source: local, or an http(s):// or ws(s):// deck service URL (overrides config)"`
	Seed           *int64 `help:"Seed for the local deck (overrides config)"`
	DealerStandsOn int    `help:"Score at which the dealer stops drawing (overrides config)"`
	StrictRounds   bool   `help:"Require the round count to be a positive number"`
	LogLevel       string `help:"Log level (debug|info|warn|error) (overrides config)"`
	LogFile        string `help:"Log file, '-' for stderr (overrides config)"`
	NoColor        bool   `help:"Disable colored output"`
}

func (c *PlayCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	c.applyOverrides(cfg)
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, logCloser, err := setupLogger(cfg.Log.Level, cfg.Log.File)
	if err != nil {
		return err
	}
	defer func() {
		_ = logCloser.Close()
	}()

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	session := uuid.NewString()
	logger.Info("Starting session", "session", session, "deck", cfg.Deck.Source)

	source, sourceCloser, err := openSource(ctx, cfg.Deck, c.Seed, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := sourceCloser.Close(); err != nil {
			logger.Error("Failed to close card source", "error", err)
		}
	}()

	reporter := console.NewReporter(os.Stdout, c.NoColor)
	fmt.Println(reporter.Styles().Title.Render(" ♠ ♥ Blackjack ♦ ♣ "))
	fmt.Println()

	prompter, err := console.NewPrompter(console.PrompterConfig{NoColor: c.NoColor})
	if err != nil {
		return err
	}
	defer func() {
		if err := prompter.Close(); err != nil {
			logger.Error("Failed to close terminal", "error", err)
		}
	}()

	table := blackjack.NewTable(source, prompter, reporter,
		blackjack.WithLogger(logger),
		blackjack.WithClock(quartz.NewReal()),
		blackjack.WithSessionID(session),
		blackjack.WithDealerPolicy(blackjack.HitBelow(cfg.Table.DealerStandsOn)),
		blackjack.WithStrictRounds(cfg.Table.StrictRoundCount),
	)

	err = table.Run(ctx)
	switch {
	case errors.Is(err, blackjack.ErrAborted), errors.Is(err, context.Canceled):
		fmt.Println(reporter.Styles().Info.Render("Thanks for playing!"))
		return nil
	case err != nil:
		return err
	}
	return nil
}

func (c *PlayCmd) applyOverrides(cfg *config.Config) {
	if c.Deck != "" {
		cfg.Deck.Source = c.Deck
	}
	if c.DealerStandsOn != 0 {
		cfg.Table.DealerStandsOn = c.DealerStandsOn
	}
	if c.StrictRounds {
		cfg.Table.StrictRoundCount = true
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if c.LogFile != "" {
		cfg.Log.File = c.LogFile
	}
}

// openSource connects the configured card source. The returned closer is
// always non-nil.
func openSource(ctx context.Context, settings *config.DeckSettings, seedFlag *int64, logger *log.Logger) (blackjack.CardSource, io.Closer, error) {
	timeout := time.Duration(settings.RequestTimeout) * time.Second

	switch {
	case settings.IsHTTP():
		return deckservice.NewHTTPSource(settings.Source, timeout, logger, quartz.NewReal()), io.NopCloser(nil), nil

	case settings.IsWebSocket():
		src, err := deckservice.DialWebSocket(ctx, settings.Source, timeout, logger)
		if err != nil {
			return nil, nil, err
		}
		return src, src, nil

	default:
		seed := resolveSeed(seedFlag, settings.Seed)
		logger.Info("Using local deck", "seed", seed)
		return deck.NewSeeded(seed), io.NopCloser(nil), nil
	}
}

// resolveSeed prefers the flag, then a non-zero configured seed, then the
// current time
func resolveSeed(flag *int64, configured int64) int64 {
	switch {
	case flag != nil:
		return *flag
	case configured != 0:
		return configured
	default:
		return time.Now().UnixNano()
	}
}
