package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
)

// DefaultFile is the configuration file read when none is named
const DefaultFile = "blackjack.hcl"

// Config represents the complete blackjack configuration. Every block is
// optional.
type Config struct {
	Table      *TableSettings      `hcl:"table,block"`
	Deck       *DeckSettings       `hcl:"deck,block"`
	Log        *LogSettings        `hcl:"log,block"`
	DeckServer *DeckServerSettings `hcl:"deck_server,block"`
}

// TableSettings controls table rules
type TableSettings struct {
	DealerStandsOn   int  `hcl:"dealer_stands_on,optional"`
	StrictRoundCount bool `hcl:"strict_round_count,optional"`
}

// DeckSettings selects the card source. Source is "local" for an
// in-process deck, or an http(s):// or ws(s):// deck service URL.
type DeckSettings struct {
	Source         string `hcl:"source,optional"`
	Seed           int64  `hcl:"seed,optional"`
	RequestTimeout int    `hcl:"request_timeout,optional"` // seconds, 0 disables
}

// LogSettings controls diagnostic logging
type LogSettings struct {
	Level string `hcl:"level,optional"`
	File  string `hcl:"file,optional"`
}

// DeckServerSettings configures the standalone deck service
type DeckServerSettings struct {
	Address string `hcl:"address,optional"`
	Seed    int64  `hcl:"seed,optional"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Table: &TableSettings{
			DealerStandsOn:   17,
			StrictRoundCount: false,
		},
		Deck: &DeckSettings{
			Source:         "local",
			RequestTimeout: 10,
		},
		Log: &LogSettings{
			Level: "info",
			File:  "blackjack.log",
		},
		DeckServer: &DeckServerSettings{
			Address: ":9090",
		},
	}
}

// Load reads configuration from an HCL file. A missing file yields the
// defaults.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source and fills in defaults for anything unset
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var config Config
	diags = gohcl.DecodeBody(file.Body, nil, &config)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}

	config.applyDefaults()
	return &config, nil
}

func (c *Config) applyDefaults() {
	defaults := DefaultConfig()

	if c.Table == nil {
		c.Table = defaults.Table
	}
	if c.Table.DealerStandsOn == 0 {
		c.Table.DealerStandsOn = defaults.Table.DealerStandsOn
	}

	if c.Deck == nil {
		c.Deck = defaults.Deck
	}
	if c.Deck.Source == "" {
		c.Deck.Source = defaults.Deck.Source
	}

	if c.Log == nil {
		c.Log = defaults.Log
	}
	if c.Log.Level == "" {
		c.Log.Level = defaults.Log.Level
	}
	if c.Log.File == "" {
		c.Log.File = defaults.Log.File
	}

	if c.DeckServer == nil {
		c.DeckServer = defaults.DeckServer
	}
	if c.DeckServer.Address == "" {
		c.DeckServer.Address = defaults.DeckServer.Address
	}
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Table.DealerStandsOn < 2 || c.Table.DealerStandsOn > 21 {
		return fmt.Errorf("table: dealer_stands_on must be between 2 and 21, got %d", c.Table.DealerStandsOn)
	}

	if !c.Deck.IsLocal() && !c.Deck.IsHTTP() && !c.Deck.IsWebSocket() {
		return fmt.Errorf("deck: source must be \"local\" or an http(s):// or ws(s):// URL, got %q", c.Deck.Source)
	}
	if c.Deck.RequestTimeout < 0 {
		return fmt.Errorf("deck: request_timeout must not be negative")
	}

	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("log: invalid level %q", c.Log.Level)
	}

	return nil
}

// IsLocal reports whether cards come from an in-process deck
func (d *DeckSettings) IsLocal() bool {
	return d.Source == "local"
}

// IsHTTP reports whether cards come from a deck service over HTTP
func (d *DeckSettings) IsHTTP() bool {
	return strings.HasPrefix(d.Source, "http://") || strings.HasPrefix(d.Source, "https://")
}

// IsWebSocket reports whether cards come from a deck service websocket
func (d *DeckSettings) IsWebSocket() bool {
	return strings.HasPrefix(d.Source, "ws://") || strings.HasPrefix(d.Source, "wss://")
}
