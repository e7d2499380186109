package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradprat/poker-in-place/internal/game"
)

const sample = `
log {
  level = "debug"
}

table "main" {
  type           = "tournament"
  buy_in         = 1500
  big_blind      = 20
  blind_interval = 10
  seed           = 42
}

table "side" {
  big_blind = 50
  rebuys    = true
}

payout {
  rank    = 1
  percent = 65
}

payout {
  rank    = 2
  percent = 35
}

player "alice" {
  name = "Alice"
}

player "bob" {
  table = "main"
}

player "carol" {
  table = "side"
}
`

func TestParse(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)
	require.NoError(t, c.Validate())

	assert.Equal(t, log.DebugLevel, c.LogLevel())
	require.Len(t, c.Tables, 2)

	main, ok := c.Table("main")
	require.True(t, ok)
	assert.Equal(t, "tournament", main.Type)
	assert.Equal(t, int64(1500), main.BuyIn)
	assert.Equal(t, 10, main.BlindInterval)

	side, _ := c.Table("side")
	assert.Equal(t, "cash", side.Type, "default type")
	assert.Equal(t, int64(5000), side.BuyIn, "default buy-in is 100 big blinds")
	assert.True(t, side.Rebuys)

	assert.Equal(t, "bob", c.Players[1].Name, "name defaults to id")
}

func TestNewGame(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)

	g, err := c.NewGame("main", "g1")
	require.NoError(t, err)
	assert.Equal(t, game.TypeTournament, g.Type)
	assert.Equal(t, int64(42), g.Seed)
	assert.Equal(t, game.Blinds{Starting: 20, Current: 20, Interval: 10}, g.Blinds)
	require.Len(t, g.Players, 2)
	assert.Equal(t, "Alice", g.Players["alice"].Name)
	assert.Equal(t, int64(1500), g.Players["bob"].Stack)
	assert.Equal(t, 1, g.Players["bob"].Position)

	_, err = c.NewGame("missing", "g2")
	assert.Error(t, err)
}

func TestTournamentShares(t *testing.T) {
	t.Parallel()

	c, err := Parse([]byte(sample), "sample.hcl")
	require.NoError(t, err)

	tour := c.Tournament("t1")
	require.NoError(t, tour.Validate())
	require.Len(t, tour.Winners, 2)
	assert.Equal(t, int64(6500), tour.Winners[0].BasisPoints)
	assert.Equal(t, int64(3500), tour.Winners[1].BasisPoints)
}

func TestValidateErrors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		src  string
	}{
		{"no tables", `player "a" {}`},
		{"bad type", `table "t" {
  type      = "league"
  big_blind = 20
}`},
		{"tiny blind", `table "t" {
  big_blind = 1
}`},
		{"short buy-in", `table "t" {
  big_blind = 20
  buy_in    = 10
}`},
		{"payouts short of 100", `table "t" {
  big_blind = 20
}
payout {
  rank    = 1
  percent = 90
}`},
		{"unknown table", `table "t" {
  big_blind = 20
}
player "a" {
  table = "u"
}`},
		{"duplicate table", `table "t" {
  big_blind = 20
}
table "t" {
  big_blind = 40
}`},
		{"bad log level", `log {
  level = "loud"
}
table "t" {
  big_blind = 20
}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			c, err := Parse([]byte(tt.src), "test.hcl")
			require.NoError(t, err)
			assert.Error(t, c.Validate())
		})
	}
}

func TestParseErrors(t *testing.T) {
	t.Parallel()

	_, err := Parse([]byte(`table "t" {`), "broken.hcl")
	assert.Error(t, err)

	_, err = Parse([]byte(`table "t" {}`), "missing.hcl")
	assert.Error(t, err, "big_blind is required")
}

func TestLoad(t *testing.T) {
	t.Parallel()

	c, err := Load(filepath.Join(t.TempDir(), "missing.hcl"))
	require.NoError(t, err)
	require.NoError(t, c.Validate())
	assert.Equal(t, Default(), c)

	path := filepath.Join(t.TempDir(), "poker.hcl")
	require.NoError(t, os.WriteFile(path, []byte(sample), 0o644))
	c, err = Load(path)
	require.NoError(t, err)
	assert.Len(t, c.Players, 3)
}
