// Package config loads table, blind, payout and seating configuration from HCL.
//
//	log {
//	  level = "debug"
//	}
//
//	table "main" {
//	  type            = "tournament"
//	  buy_in          = 1000
//	  big_blind       = 20
//	  blind_interval  = 10
//	  seed            = 42
//	}
//
//	payout {
//	  rank    = 1
//	  percent = 65
//	}
//
//	player "alice" {
//	  name = "Alice"
//	}
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/charmbracelet/log"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"

	"github.com/pradprat/poker-in-place/internal/chips"
	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/settlement"
)

// Config is the complete configuration file.
type Config struct {
	Log     *LogSettings   `hcl:"log,block"`
	Tables  []TableConfig  `hcl:"table,block"`
	Payouts []PayoutConfig `hcl:"payout,block"`
	Players []PlayerConfig `hcl:"player,block"`
}

// LogSettings configures logging.
type LogSettings struct {
	Level string `hcl:"level,optional"`
}

// TableConfig describes one table and its blind structure.
type TableConfig struct {
	Name           string `hcl:"name,label"`
	Type           string `hcl:"type,optional"`
	BuyIn          int64  `hcl:"buy_in,optional"`
	BigBlind       int64  `hcl:"big_blind"`
	BlindIncrement int64  `hcl:"blind_increment,optional"`
	BlindInterval  int    `hcl:"blind_interval,optional"`
	Rebuys         bool   `hcl:"rebuys,optional"`
	Seed           int64  `hcl:"seed,optional"`
}

// PayoutConfig is one paid finishing rank. Percent is of the whole prize pool.
type PayoutConfig struct {
	Rank    int     `hcl:"rank"`
	Percent float64 `hcl:"percent"`
}

// PlayerConfig seats a player. An empty Table seats the player at every table.
type PlayerConfig struct {
	ID    string `hcl:"id,label"`
	Name  string `hcl:"name,optional"`
	Table string `hcl:"table,optional"`
}

// Default returns the configuration used when no file exists.
func Default() *Config {
	c := &Config{
		Tables: []TableConfig{{Name: "main", BigBlind: 20}},
	}
	c.applyDefaults()
	return c
}

// Load reads configuration from filename, falling back to Default when the
// file does not exist.
func Load(filename string) (*Config, error) {
	src, err := os.ReadFile(filename)
	if errors.Is(err, os.ErrNotExist) {
		return Default(), nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	return Parse(src, filename)
}

// Parse decodes HCL source. filename is only used in error messages.
func Parse(src []byte, filename string) (*Config, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("failed to parse HCL file: %s", diags.Error())
	}

	var c Config
	if diags := gohcl.DecodeBody(file.Body, nil, &c); diags.HasErrors() {
		return nil, fmt.Errorf("failed to decode HCL: %s", diags.Error())
	}
	c.applyDefaults()
	return &c, nil
}

func (c *Config) applyDefaults() {
	if c.Log == nil {
		c.Log = &LogSettings{}
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	for i := range c.Tables {
		t := &c.Tables[i]
		if t.Type == "" {
			t.Type = string(game.TypeCash)
		}
		if t.BuyIn == 0 {
			t.BuyIn = t.BigBlind * 100
		}
	}
	for i := range c.Players {
		if c.Players[i].Name == "" {
			c.Players[i].Name = c.Players[i].ID
		}
	}
}

// Validate checks the configuration for values the engine cannot play with.
func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log: %w", err)
	}

	if len(c.Tables) == 0 {
		return errors.New("at least one table must be configured")
	}
	tables := make(map[string]bool, len(c.Tables))
	for _, t := range c.Tables {
		if tables[t.Name] {
			return fmt.Errorf("table %s: defined twice", t.Name)
		}
		tables[t.Name] = true

		switch game.Type(t.Type) {
		case game.TypeCash, game.TypeTournament, game.TypeMultiTableTournament:
		default:
			return fmt.Errorf("table %s: invalid type %q", t.Name, t.Type)
		}
		if t.BigBlind < 2 {
			return fmt.Errorf("table %s: big blind must be at least 2", t.Name)
		}
		if t.BuyIn < t.BigBlind {
			return fmt.Errorf("table %s: buy-in must cover the big blind", t.Name)
		}
		if t.BlindIncrement < 0 || t.BlindInterval < 0 {
			return fmt.Errorf("table %s: blind schedule must not be negative", t.Name)
		}
	}

	if len(c.Payouts) > 0 {
		if err := c.Tournament("").Validate(); err != nil {
			return fmt.Errorf("payout: %w", err)
		}
	}

	players := make(map[string]bool, len(c.Players))
	for _, p := range c.Players {
		if players[p.ID] {
			return fmt.Errorf("player %s: defined twice", p.ID)
		}
		players[p.ID] = true
		if p.Table != "" && !tables[p.Table] {
			return fmt.Errorf("player %s: unknown table %s", p.ID, p.Table)
		}
	}
	return nil
}

// LogLevel returns the configured level. Call Validate first.
func (c *Config) LogLevel() log.Level {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		return log.InfoLevel
	}
	return level
}

// Table returns the named table.
func (c *Config) Table(name string) (TableConfig, bool) {
	for _, t := range c.Tables {
		if t.Name == name {
			return t, true
		}
	}
	return TableConfig{}, false
}

// PlayersAt returns the players seated at the named table, in file order.
func (c *Config) PlayersAt(table string) []PlayerConfig {
	var players []PlayerConfig
	for _, p := range c.Players {
		if p.Table == "" || p.Table == table {
			players = append(players, p)
		}
	}
	return players
}

// Options returns the game options for the table.
func (t TableConfig) Options() []game.GameOption {
	return []game.GameOption{
		game.WithType(game.Type(t.Type)),
		game.WithBuyIn(t.BuyIn),
		game.WithBlinds(game.Blinds{
			Starting:  t.BigBlind,
			Increment: t.BlindIncrement,
			Interval:  t.BlindInterval,
		}),
		game.WithSeed(t.Seed),
		game.WithRebuys(t.Rebuys),
	}
}

// NewGame creates a game for the named table with its configured players
// seated in file order.
func (c *Config) NewGame(table, id string) (*game.Game, error) {
	t, ok := c.Table(table)
	if !ok {
		return nil, fmt.Errorf("unknown table %s", table)
	}
	g := game.NewGame(id, t.Options()...)
	for i, p := range c.PlayersAt(table) {
		if err := g.AddPlayer(p.ID, p.Name, i); err != nil {
			return nil, fmt.Errorf("table %s: %w", table, err)
		}
	}
	return g, nil
}

// Tournament returns the payout schedule as tournament details with no
// players yet.
func (c *Config) Tournament(id string) *settlement.Tournament {
	t := &settlement.Tournament{
		ID:      id,
		Players: make(map[string]settlement.TournamentPlayer),
		Status:  settlement.StatusRegistering,
	}
	for _, p := range c.Payouts {
		t.Winners = append(t.Winners, settlement.WinnerShare{
			Rank:        p.Rank,
			BasisPoints: chips.BasisPoints(p.Percent / 100),
		})
	}
	return t
}
