package main

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/pradprat/poker-in-place/internal/config"
	"github.com/pradprat/poker-in-place/internal/fileutil"
	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/settlement"
)

// SettleCmd prints the ranking of a saved game and who pays whom.
type SettleCmd struct {
	File       string `arg:"" name:"file" help:"Path to a JSON game snapshot" type:"existingfile"`
	Tournament string `help:"JSON tournament snapshot (default: build one from the config payout schedule)" type:"existingfile"`
	Out        string `short:"o" help:"Also write the ranking rows as JSON to this file" type:"path"`
}

func (cmd *SettleCmd) Run(globals *Globals) error {
	cfg, logger, err := globals.load()
	if err != nil {
		return err
	}
	g, err := loadGame(cmd.File)
	if err != nil {
		return err
	}

	t, err := cmd.tournament(cfg, g)
	if err != nil {
		return err
	}

	// A tournament snapshot ranks everyone across its tables.
	players := gamePlayers(g)
	if t != nil && len(t.Players) > 0 {
		players = t.GamePlayers()
	}
	rows, err := settlement.CalculateRankingRows(players, g.Hands, t)
	if err != nil {
		return err
	}
	logger.Debug("ranked", "game", g.ID, "players", len(rows))

	fmt.Println(titleStyle.Render("Ranking"))
	ranking := make([][]string, 0, len(rows))
	for _, r := range rows {
		ranking = append(ranking, []string{
			strconv.Itoa(r.Rank),
			r.Name,
			strconv.FormatInt(r.Contributed, 10),
			strconv.FormatInt(r.Winnings, 10),
			strconv.FormatInt(r.Net, 10),
			fmt.Sprintf("%d/%d", r.HandsWon, r.HandsPlayed),
		})
	}
	fmt.Println(renderTable([]string{"#", "Player", "In", "Out", "Net", "Won/Played"}, ranking, 4))

	payments := settlement.SettleDebts(rows)
	if len(payments) > 0 {
		names := make(map[string]string, len(rows))
		for _, r := range rows {
			names[r.PlayerID] = r.Name
		}
		fmt.Println(titleStyle.Render("Payments"))
		transfers := make([][]string, 0, len(payments))
		for _, p := range payments {
			transfers = append(transfers, []string{names[p.From], names[p.To], strconv.FormatInt(p.Amount, 10)})
		}
		fmt.Println(renderTable([]string{"From", "To", "Amount"}, transfers, -1))
	}

	if cmd.Out != "" {
		data, err := json.MarshalIndent(rows, "", "  ")
		if err != nil {
			return err
		}
		if err := fileutil.WriteFileAtomic(cmd.Out, data, 0o644); err != nil {
			return err
		}
		logger.Info("wrote ranking", "path", cmd.Out)
	}
	return nil
}

// tournament returns the tournament to settle against, or nil for a cash
// game. Without a snapshot the payout schedule comes from the config and
// the tournament is finalized once the game has ended.
func (cmd *SettleCmd) tournament(cfg *config.Config, g *game.Game) (*settlement.Tournament, error) {
	if cmd.Tournament != "" {
		t, err := loadTournament(cmd.Tournament)
		if err != nil {
			return nil, err
		}
		return t, t.Validate()
	}
	if g.Type == game.TypeCash || len(cfg.Payouts) == 0 {
		return nil, nil
	}

	t := cfg.Tournament(g.ID)
	for _, p := range g.Players {
		t.Players[p.ID] = settlement.TournamentPlayer{Player: *p, TableID: g.ID}
	}
	t.Status = settlement.StatusActive
	if g.Stage == game.StageEnded {
		t.Status = settlement.StatusFinalized
	}
	return t, nil
}
