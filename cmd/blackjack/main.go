package main

import (
	"github.com/alecthomas/kong"
)

// version is set by ldflags during build
var version = "dev"

type CLI struct {
	Version    kong.VersionFlag `short:"v" help:"Show version"`
	Config     string           `short:"c" default:"blackjack.hcl" help:"Path to HCL configuration file"`
	Play       PlayCmd          `cmd:"" default:"1" help:"Play an interactive blackjack session"`
	DeckServer DeckServerCmd    `cmd:"deck-server" help:"Serve a shuffled deck over HTTP and websocket"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("blackjack"),
		kong.Description("Multiplayer blackjack at the terminal"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli)
	ctx.FatalIfErrorf(err)
}
