package game

import (
	"slices"

	"github.com/pradprat/poker-in-place/internal/chips"
	"github.com/pradprat/poker-in-place/poker"
)

// HandResult is one player's share of a resolved hand.
type HandResult struct {
	Contribution int64 `json:"contribution"`
	Allocated    int64 `json:"allocated"` // size of the pots the player could win
	Payout       int64 `json:"payout"`

	// Contested is set when the player won part of a pot that another
	// player was also eligible for.
	Contested bool `json:"contested,omitempty"`
}

type pot struct {
	amount   int64
	eligible []string
}

// buildPots layers contributions into a main pot and side pots. Each distinct
// contribution level closes a layer funded by everyone up to that level, and
// only contenders who reached the level may win it. Folded players fund
// layers without being eligible for them. A layer nobody can win is added to
// the pot below it.
func buildPots(contributions map[string]int64, contenders []string) []pot {
	var levels []int64
	for _, c := range contributions {
		if c > 0 && !slices.Contains(levels, c) {
			levels = append(levels, c)
		}
	}
	slices.Sort(levels)

	var pots []pot
	var prev, carry int64
	for _, level := range levels {
		layer := carry
		for _, c := range contributions {
			layer += min(c, level) - min(c, prev)
		}
		prev = level

		var eligible []string
		for _, id := range contenders {
			if contributions[id] >= level {
				eligible = append(eligible, id)
			}
		}

		switch {
		case len(eligible) == 0 && len(pots) == 0:
			carry = layer
			continue
		case len(eligible) == 0:
			pots[len(pots)-1].amount += layer
		case len(pots) > 0 && slices.Equal(pots[len(pots)-1].eligible, eligible):
			pots[len(pots)-1].amount += layer
		default:
			pots = append(pots, pot{amount: layer, eligible: eligible})
		}
		carry = 0
	}
	if carry > 0 && len(contenders) > 0 {
		pots = append(pots, pot{amount: carry, eligible: slices.Clone(contenders)})
	}
	return pots
}

// CalculateHandWinners resolves a hand's pots. Every player dealt in gets an
// entry. With a single contender no cards are evaluated. Tied winners split a
// pot evenly and the odd chips go one at a time to the winners in seat order
// starting left of the dealer. When nobody can win, because every player
// still in the hand was removed, each player's contribution is returned.
func CalculateHandWinners(g *Game, h *Hand) map[string]HandResult {
	contributions := h.Contributions()
	contenders := h.contenders(g)

	ranks := make(map[string]poker.HandRank, len(contenders))
	if len(contenders) > 1 {
		board := h.Board()
		for _, id := range contenders {
			ranks[id] = poker.EvaluateBest(append(slices.Clone(h.PlayerStates[id].Cards), board...)).Rank
		}
	}

	results := make(map[string]HandResult, len(h.PlayerIDs))
	for _, id := range h.PlayerIDs {
		results[id] = HandResult{Contribution: contributions[id]}
	}
	if len(contenders) == 0 {
		for id, r := range results {
			r.Allocated, r.Payout = r.Contribution, r.Contribution
			results[id] = r
		}
		return results
	}

	for _, p := range buildPots(contributions, contenders) {
		for _, id := range p.eligible {
			r := results[id]
			r.Allocated += p.amount
			results[id] = r
		}

		winners := bestHands(p.eligible, ranks)
		share, odd := chips.Split(p.amount, len(winners))
		for i, id := range winners {
			r := results[id]
			r.Payout += share
			if int64(i) < odd {
				r.Payout++
			}
			r.Contested = r.Contested || len(p.eligible) > 1
			results[id] = r
		}
	}
	return results
}

// bestHands returns the players holding the strongest hand, keeping their order.
func bestHands(eligible []string, ranks map[string]poker.HandRank) []string {
	if len(eligible) < 2 {
		return eligible
	}
	var best poker.HandRank
	for _, id := range eligible {
		best = max(best, ranks[id])
	}
	var winners []string
	for _, id := range eligible {
		if ranks[id] == best {
			winners = append(winners, id)
		}
	}
	return winners
}
