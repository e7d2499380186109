// Package settlement turns the final state of a game or tournament into
// rankings, payouts and the payments that settle everyone's net result.
// Nothing in this package modifies its inputs.
package settlement

import (
	"cmp"
	"errors"
	"fmt"
	"slices"

	"github.com/pradprat/poker-in-place/internal/chips"
	"github.com/pradprat/poker-in-place/internal/game"
)

var (
	ErrTournamentNotFinished = errors.New("tournament has not finished")
	ErrInvalidPayoutSchedule = errors.New("invalid payout schedule")
)

// Status is a tournament's lifecycle stage.
type Status string

const (
	StatusRegistering Status = "registering"
	StatusActive      Status = "active"
	StatusEnded       Status = "ended"
	StatusFinalized   Status = "finalized"
)

// TournamentPlayer is a player together with the table they were seated at.
type TournamentPlayer struct {
	game.Player
	TableID string `json:"tableId"`
}

// WinnerShare is the fraction of the prize pool paid to a finishing rank,
// in basis points.
type WinnerShare struct {
	Rank        int   `json:"rank"`
	BasisPoints int64 `json:"basisPoints"`
}

// Tournament holds what settlement needs to know about a tournament.
type Tournament struct {
	ID      string                      `json:"id"`
	Players map[string]TournamentPlayer `json:"players"`
	Winners []WinnerShare               `json:"winners"`
	Status  Status                      `json:"status"`
}

// Validate checks the payout schedule: ranks run 1..n in order and the shares
// add up to the whole prize pool.
func (t *Tournament) Validate() error {
	if len(t.Winners) == 0 {
		return fmt.Errorf("%w: no paid ranks", ErrInvalidPayoutSchedule)
	}
	var total int64
	for i, w := range t.Winners {
		if w.Rank != i+1 {
			return fmt.Errorf("%w: rank %d listed in position %d", ErrInvalidPayoutSchedule, w.Rank, i+1)
		}
		if w.BasisPoints <= 0 {
			return fmt.Errorf("%w: rank %d pays %d", ErrInvalidPayoutSchedule, w.Rank, w.BasisPoints)
		}
		total += w.BasisPoints
	}
	if total != chips.FullShare {
		return fmt.Errorf("%w: shares add up to %d of %d", ErrInvalidPayoutSchedule, total, chips.FullShare)
	}
	return nil
}

// Finished reports whether payouts can be computed.
func (t *Tournament) Finished() bool {
	return t.Status == StatusEnded || t.Status == StatusFinalized
}

// GamePlayers returns the tournament's players from every table, ordered by
// ID.
func (t *Tournament) GamePlayers() []game.Player {
	players := make([]game.Player, 0, len(t.Players))
	for _, p := range t.Players {
		players = append(players, p.Player)
	}
	slices.SortFunc(players, func(a, b game.Player) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return players
}
