package main

import (
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/log"

	"github.com/pradprat/poker-in-place/internal/config"
)

// version is set by ldflags during build
var version = "dev"

// Globals are flags shared by every command.
type Globals struct {
	Config   string `short:"c" help:"Path to HCL config file" default:"poker.hcl" type:"path"`
	LogLevel string `help:"Log level, overriding the config file (debug, info, warn, error)"`
}

type CLI struct {
	Globals

	Version  kong.VersionFlag `short:"v" help:"Show version"`
	Simulate SimulateCmd      `cmd:"" help:"Play seeded games with bots and check every pot"`
	Replay   ReplayCmd        `cmd:"" help:"Validate the hands of a saved game"`
	Settle   SettleCmd        `cmd:"" help:"Rank players and settle debts for a saved game"`
}

// load reads and validates the config file and builds the logger it asks for.
func (g *Globals) load() (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(g.Config)
	if err != nil {
		return nil, nil, err
	}
	if g.LogLevel != "" {
		cfg.Log.Level = g.LogLevel
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("%s: %w", g.Config, err)
	}

	logger := log.NewWithOptions(os.Stderr, log.Options{
		Level:           cfg.LogLevel(),
		ReportTimestamp: true,
		Prefix:          "pokerinplace",
	})
	return cfg, logger, nil
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("pokerinplace"),
		kong.Description("Hand engine and settlement tools for poker-in-place games"),
		kong.UsageOnError(),
		kong.ConfigureHelp(kong.HelpOptions{
			Compact: true,
		}),
		kong.Vars{
			"version": version,
		},
	)
	err := ctx.Run(&cli.Globals)
	ctx.FatalIfErrorf(err)
}
