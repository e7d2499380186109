package main

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradprat/poker-in-place/internal/config"
	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/settlement"
)

func testGlobals(t *testing.T) *Globals {
	t.Helper()
	return &Globals{Config: filepath.Join(t.TempDir(), "missing.hcl"), LogLevel: "error"}
}

// paidHand is a heads-up hand where "a" and "b" each put in 20 and "a" was
// paid amount.
func paidHand(amount int64) *game.Hand {
	return &game.Hand{
		ID:        "g1-1",
		PlayerIDs: []string{"a", "b"},
		PlayerStates: map[string]*game.PlayerState{
			"a": {StartingStack: 100, Stack: 80},
			"b": {StartingStack: 100, Stack: 80},
		},
		Rounds: []*game.Round{{
			Type: game.StreetPreFlop,
			Actions: []game.Action{
				{PlayerID: "a", Type: game.Bet, Contribution: 20, Total: 20},
				{PlayerID: "b", Type: game.Call, Contribution: 20, Total: 20, Voluntary: true},
			},
		}},
		Payouts:        []game.Payout{{PlayerID: "a", Amount: amount}, {PlayerID: "b"}},
		PayoutsApplied: true,
	}
}

func writeGame(t *testing.T, g *game.Game) string {
	t.Helper()
	data, err := json.Marshal(g)
	require.NoError(t, err)
	path := filepath.Join(t.TempDir(), "game.json")
	require.NoError(t, os.WriteFile(path, data, 0o644))
	return path
}

func twoPlayerGame(h *game.Hand) *game.Game {
	g := game.NewGame("g1", game.WithBuyIn(100))
	_ = g.AddPlayer("a", "Alice", 0)
	_ = g.AddPlayer("b", "Bob", 1)
	g.Hands = []*game.Hand{h}
	return g
}

func TestReplay(t *testing.T) {
	t.Parallel()

	ok := twoPlayerGame(paidHand(40))
	dir := t.TempDir()
	cmd := &ReplayCmd{File: writeGame(t, ok), PHHDir: dir}
	require.NoError(t, cmd.Run(testGlobals(t)))
	assert.FileExists(t, filepath.Join(dir, "g1-1.phh"))

	leaky := twoPlayerGame(paidHand(30))
	cmd = &ReplayCmd{File: writeGame(t, leaky)}
	err := cmd.Run(testGlobals(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 hands")
}

func TestSettleWritesRows(t *testing.T) {
	t.Parallel()

	g := twoPlayerGame(paidHand(40))
	g.Players["a"].Stack = 120
	g.Players["b"].Stack = 80

	out := filepath.Join(t.TempDir(), "rows.json")
	cmd := &SettleCmd{File: writeGame(t, g), Out: out}
	require.NoError(t, cmd.Run(testGlobals(t)))

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	var rows []settlement.RankingRow
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "a", rows[0].PlayerID)
	assert.Equal(t, int64(20), rows[0].Net)
	assert.Equal(t, []settlement.Payment{{From: "b", To: "a", Amount: 20}}, rows[0].Payments)
}

func TestSettleTournamentFromConfig(t *testing.T) {
	t.Parallel()

	cfg, err := config.Parse([]byte(`
table "main" {
  big_blind = 20
}
payout {
  rank    = 1
  percent = 70
}
payout {
  rank    = 2
  percent = 30
}
`), "test.hcl")
	require.NoError(t, err)

	g := twoPlayerGame(paidHand(40))
	cmd := &SettleCmd{}

	tour, err := cmd.tournament(cfg, g)
	require.NoError(t, err)
	assert.Nil(t, tour, "cash games have no payout schedule")

	g.Type = game.TypeTournament
	tour, err = cmd.tournament(cfg, g)
	require.NoError(t, err)
	assert.Equal(t, settlement.StatusActive, tour.Status)
	assert.Len(t, tour.Players, 2)
	require.NoError(t, tour.Validate())

	g.Stage = game.StageEnded
	tour, err = cmd.tournament(cfg, g)
	require.NoError(t, err)
	assert.Equal(t, settlement.StatusFinalized, tour.Status)
}

func TestRenderTable(t *testing.T) {
	t.Parallel()

	out := renderTable([]string{"Player", "Net"}, [][]string{{"Alice", "20"}, {"Bob", "-20"}}, 1)
	assert.True(t, strings.Contains(out, "Alice"))
	assert.True(t, strings.Contains(out, "-20"))
}

func TestSettleRanksEveryTableOfATournament(t *testing.T) {
	t.Parallel()

	g := twoPlayerGame(paidHand(40))
	g.Type = game.TypeMultiTableTournament

	seated := func(id string, stack, busted int64, table string) settlement.TournamentPlayer {
		return settlement.TournamentPlayer{
			Player:  game.Player{ID: id, Name: id, Stack: stack, Contributed: 100, BustedTimestamp: busted},
			TableID: table,
		}
	}
	tour := settlement.Tournament{
		ID: "t1",
		Players: map[string]settlement.TournamentPlayer{
			"a": seated("a", 150, 0, "g1"),
			"b": seated("b", 0, 10, "g1"),
			"c": seated("c", 150, 0, "g2"),
		},
		Winners: []settlement.WinnerShare{{Rank: 1, BasisPoints: 7000}, {Rank: 2, BasisPoints: 3000}},
		Status:  settlement.StatusFinalized,
	}
	data, err := json.Marshal(tour)
	require.NoError(t, err)
	tourPath := filepath.Join(t.TempDir(), "tournament.json")
	require.NoError(t, os.WriteFile(tourPath, data, 0o644))

	out := filepath.Join(t.TempDir(), "rows.json")
	cmd := &SettleCmd{File: writeGame(t, g), Tournament: tourPath, Out: out}
	require.NoError(t, cmd.Run(testGlobals(t)))

	data, err = os.ReadFile(out)
	require.NoError(t, err)
	var rows []settlement.RankingRow
	require.NoError(t, json.Unmarshal(data, &rows))
	require.Len(t, rows, 3)

	winnings := map[string]int64{}
	for _, r := range rows {
		winnings[r.PlayerID] = r.Winnings
	}
	assert.Equal(t, map[string]int64{"a": 150, "b": 0, "c": 150}, winnings)
}
