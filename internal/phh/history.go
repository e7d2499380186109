package phh

import (
	"errors"
	"slices"
	"strconv"
	"time"

	"github.com/pradprat/poker-in-place/internal/game"
)

// ErrHandNotPaid is returned for hands that are still being played.
var ErrHandNotPaid = errors.New("phh: hand has not been paid out")

// FromHand builds the history of a paid hand. g supplies player names and the
// table name and may be nil.
func FromHand(g *game.Game, h *game.Hand) (*HandHistory, error) {
	if !h.PayoutsApplied {
		return nil, ErrHandNotPaid
	}

	seats := seatOrder(h)
	index := make(map[string]int, len(seats))
	for i, id := range seats {
		index[id] = i
	}

	n := len(seats)
	hh := &HandHistory{
		Variant:           "NT",
		SeatCount:         n,
		Antes:             make([]int64, n),
		BlindsOrStraddles: make([]int64, n),
		MinBet:            h.BigBlind,
		StartingStacks:    make([]int64, n),
		FinishingStacks:   make([]int64, n),
		Winnings:          make([]int64, n),
		HandID:            h.ID,
		Metadata: map[string]any{
			"number": h.Number,
			"seed":   h.Seed,
			"dealer": index[h.DealerID] + 1,
		},
	}
	if g != nil {
		hh.Table = g.ID
	}

	hh.BlindsOrStraddles[index[h.SmallBlindID]] = h.SmallBlind
	hh.BlindsOrStraddles[index[h.BigBlindID]] = h.BigBlind

	contributions := h.Contributions()
	for i, id := range seats {
		hh.Seats = append(hh.Seats, i+1)
		name := id
		if g != nil {
			if p, ok := g.Players[id]; ok && p.Name != "" {
				name = p.Name
			}
		}
		hh.Players = append(hh.Players, name)

		ps := h.PlayerStates[id]
		hh.StartingStacks[i] = ps.StartingStack
		payout, _ := h.Payout(id)
		hh.Winnings[i] = payout.Amount
		hh.FinishingStacks[i] = ps.StartingStack - contributions[id] + payout.Amount

		hh.Actions = append(hh.Actions, "d dh "+seatName(i)+" "+joinCards(ps.Cards))
	}

	for _, r := range h.Rounds {
		if len(r.Cards) > 0 {
			hh.Actions = append(hh.Actions, "d db "+joinCards(r.Cards))
			for _, c := range r.Cards {
				hh.Board = append(hh.Board, c.String())
			}
		}
		for _, a := range r.Actions {
			if s, ok := FormatAction(index[a.PlayerID], a); ok {
				hh.Actions = append(hh.Actions, s)
			}
		}
	}

	for _, id := range seats {
		if payout, ok := h.Payout(id); ok && len(payout.Cards) > 0 {
			hh.Actions = append(hh.Actions, seatName(index[id])+" sm "+joinCards(payout.Cards))
		}
	}

	ts := time.UnixMilli(h.Timestamp).UTC()
	hh.Timestamp = ts
	hh.Time = ts.Format(time.TimeOnly)
	hh.TimeZone = "UTC"
	hh.Day, hh.Month, hh.Year = ts.Day(), int(ts.Month()), ts.Year()
	return hh, nil
}

// seatOrder returns the hand's players starting left of the dealer.
func seatOrder(h *game.Hand) []string {
	d := max(slices.Index(h.PlayerIDs, h.DealerID), 0)
	n := len(h.PlayerIDs)
	order := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		order = append(order, h.PlayerIDs[(d+i)%n])
	}
	return order
}

func seatName(i int) string {
	return "p" + strconv.Itoa(i+1)
}
