package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/settlement"
)

// loadGame reads a JSON game snapshot.
func loadGame(path string) (*game.Game, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var g game.Game
	if err := json.Unmarshal(data, &g); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	if g.Players == nil {
		return nil, fmt.Errorf("%s: game has no players", path)
	}
	return &g, nil
}

// loadTournament reads a JSON tournament snapshot.
func loadTournament(path string) (*settlement.Tournament, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var t settlement.Tournament
	if err := json.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("decode %s: %w", path, err)
	}
	return &t, nil
}

func gamePlayers(g *game.Game) []game.Player {
	players := make([]game.Player, 0, len(g.Players))
	for _, p := range g.SortedPlayers() {
		players = append(players, *p)
	}
	return players
}
