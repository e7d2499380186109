package settlement

import (
	"cmp"
	"slices"

	"github.com/pradprat/poker-in-place/internal/game"
)

// Payment is one transfer that settles part of a debt.
type Payment struct {
	From   string `json:"from"`
	To     string `json:"to"`
	Amount int64  `json:"amount"`
}

// RankingRow is one line of a game's results.
type RankingRow struct {
	PlayerID    string    `json:"playerId"`
	Name        string    `json:"name"`
	Rank        int       `json:"rank"`
	Winnings    int64     `json:"winnings"`
	Contributed int64     `json:"contributed"`
	HandsPlayed int       `json:"handsPlayed"`
	HandsWon    int       `json:"handsWon"`
	Net         int64     `json:"net"`
	Payments    []Payment `json:"payments,omitempty"`
}

// CalculateRankingRows builds one row per player, sorted by net result, with
// the payments each player makes or receives. Winnings are the tournament
// payout once the tournament is finalized and the final stack otherwise.
// Players sharing a stack, and in a tournament a bust time, share a rank.
func CalculateRankingRows(players []game.Player, hands []*game.Hand, t *Tournament) ([]RankingRow, error) {
	var payouts map[string]int64
	if t != nil && t.Status == StatusFinalized {
		var err error
		if payouts, err = CalculatePlayerPayouts(players, t); err != nil {
			return nil, err
		}
	}

	played, won := handCounts(hands)
	ranked := RankPlayers(players, t)
	rows := make([]RankingRow, len(ranked))
	for i, p := range ranked {
		rank := i + 1
		if i > 0 && sameFinish(ranked[i-1], p, t) {
			rank = rows[i-1].Rank
		}
		winnings := p.Stack
		if payouts != nil {
			winnings = payouts[p.ID]
		}
		rows[i] = RankingRow{
			PlayerID:    p.ID,
			Name:        p.Name,
			Rank:        rank,
			Winnings:    winnings,
			Contributed: p.Contributed,
			HandsPlayed: played[p.ID],
			HandsWon:    won[p.ID],
			Net:         winnings - p.Contributed,
		}
	}

	slices.SortStableFunc(rows, func(a, b RankingRow) int {
		return cmp.Compare(b.Net, a.Net)
	})

	for _, pay := range SettleDebts(rows) {
		for i := range rows {
			if rows[i].PlayerID == pay.From || rows[i].PlayerID == pay.To {
				rows[i].Payments = append(rows[i].Payments, pay)
			}
		}
	}
	return rows, nil
}

// handCounts counts, per player, the hands in which they took any action
// other than a fold, blinds and forced actions included, and the hands that
// paid them.
func handCounts(hands []*game.Hand) (played, won map[string]int) {
	played = make(map[string]int)
	won = make(map[string]int)
	for _, h := range hands {
		for _, id := range h.PlayerIDs {
			for _, a := range h.ActionsFor(id) {
				if a.Type != game.Fold {
					played[id]++
					break
				}
			}
		}
		for _, p := range h.Payouts {
			if p.Amount > 0 {
				won[p.PlayerID]++
			}
		}
	}
	return played, won
}

// SettleDebts returns the payments that bring every row's net to zero. It
// walks the rows sorted by net from both ends, paying each debtor's balance
// to the largest remaining creditor. Every payment clears at least one
// balance, so n rows with a non-zero net need at most n-1 payments.
func SettleDebts(rows []RankingRow) []Payment {
	sorted := slices.Clone(rows)
	slices.SortStableFunc(sorted, func(a, b RankingRow) int {
		return cmp.Compare(b.Net, a.Net)
	})
	remaining := make([]int64, len(sorted))
	for i, r := range sorted {
		remaining[i] = r.Net
	}

	var payments []Payment
	start, end := 0, len(sorted)-1
	for start < end {
		switch {
		case remaining[start] == 0:
			start++
			continue
		case remaining[end] == 0:
			end--
			continue
		case remaining[start] < 0 || remaining[end] > 0:
			return payments
		}

		amount := min(remaining[start], -remaining[end])
		payments = append(payments, Payment{
			From:   sorted[end].PlayerID,
			To:     sorted[start].PlayerID,
			Amount: amount,
		})
		remaining[start] -= amount
		remaining[end] += amount
		if remaining[end] == 0 {
			end--
		}
		if remaining[start] == 0 {
			start++
		}
	}
	return payments
}
