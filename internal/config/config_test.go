package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "blackjack.hcl")
	src := `
table {
  dealer_stands_on   = 18
  strict_round_count = true
}

deck {
  source          = "http://localhost:9090"
  seed            = 42
  request_timeout = 3
}

log {
  level = "debug"
}
`
	require.NoError(t, os.WriteFile(path, []byte(src), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 18, cfg.Table.DealerStandsOn)
	assert.True(t, cfg.Table.StrictRoundCount)
	assert.Equal(t, "http://localhost:9090", cfg.Deck.Source)
	assert.True(t, cfg.Deck.IsHTTP())
	assert.Equal(t, int64(42), cfg.Deck.Seed)
	assert.Equal(t, 3, cfg.Deck.RequestTimeout)
	assert.Equal(t, "debug", cfg.Log.Level)

	// Unset values fall back to defaults
	assert.Equal(t, "blackjack.log", cfg.Log.File)
	assert.Equal(t, ":9090", cfg.DeckServer.Address)
}

func TestParsePartialBlocks(t *testing.T) {
	cfg, err := Parse([]byte(`deck_server {
  seed = 7
}
`), "inline.hcl")
	require.NoError(t, err)

	assert.Equal(t, int64(7), cfg.DeckServer.Seed)
	assert.Equal(t, ":9090", cfg.DeckServer.Address)
	assert.Equal(t, 17, cfg.Table.DealerStandsOn)
	assert.True(t, cfg.Deck.IsLocal())
}

func TestParseErrors(t *testing.T) {
	_, err := Parse([]byte(`table {`), "broken.hcl")
	assert.ErrorContains(t, err, "failed to parse HCL file")

	_, err = Parse([]byte(`table { unknown = 1 }`), "unknown.hcl")
	assert.ErrorContains(t, err, "failed to decode HCL")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "websocket source", mutate: func(c *Config) { c.Deck.Source = "ws://localhost:9090/ws" }},
		{name: "dealer threshold too high", mutate: func(c *Config) { c.Table.DealerStandsOn = 22 }, wantErr: "dealer_stands_on"},
		{name: "unknown source", mutate: func(c *Config) { c.Deck.Source = "ftp://cards" }, wantErr: "source"},
		{name: "negative timeout", mutate: func(c *Config) { c.Deck.RequestTimeout = -1 }, wantErr: "request_timeout"},
		{name: "bad log level", mutate: func(c *Config) { c.Log.Level = "loud" }, wantErr: "invalid level"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}
