package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/lox/blackjack/internal/config"
	"github.com/lox/blackjack/internal/deck"
	"github.com/lox/blackjack/internal/deckservice"
)

// DeckServerCmd serves a deck to remote tables
type DeckServerCmd struct {
	Addr     string `help:"Address to listen on (overrides config)"`
	Seed     *int64 `help:"Deterministic shuffle seed (overrides config)"`
	LogLevel string `help:"Log level (debug|info|warn|error) (overrides config)"`
}

func (c *DeckServerCmd) Run(cli *CLI) error {
	cfg, err := config.Load(cli.Config)
	if err != nil {
		return err
	}
	if c.Addr != "" {
		cfg.DeckServer.Address = c.Addr
	}
	if c.LogLevel != "" {
		cfg.Log.Level = c.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	logger, logCloser, err := setupLogger(cfg.Log.Level, "-")
	if err != nil {
		return err
	}
	defer func() {
		_ = logCloser.Close()
	}()

	seed := resolveSeed(c.Seed, cfg.DeckServer.Seed)
	logger.Info("Using seed", "seed", seed)

	srv := deckservice.NewServer(deck.NewSeeded(seed), logger, quartz.NewReal())
	httpServer := &http.Server{
		Addr:              cfg.DeckServer.Address,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, cancel := setupSignalHandler(logger)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("Starting deck server", "addr", httpServer.Addr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("Shutting down deck server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return httpServer.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
