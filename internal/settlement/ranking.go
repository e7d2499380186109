package settlement

import (
	"cmp"
	"math"
	"slices"

	"github.com/pradprat/poker-in-place/internal/chips"
	"github.com/pradprat/poker-in-place/internal/game"
)

// bustKey orders eliminations: a later bust is a better finish and players
// still in count as busting last.
func bustKey(p game.Player) int64 {
	if !p.Busted() {
		return math.MaxInt64
	}
	return p.BustedTimestamp
}

func sameFinish(a, b game.Player, t *Tournament) bool {
	if a.Stack != b.Stack {
		return false
	}
	return t == nil || bustKey(a) == bustKey(b)
}

// RankPlayers orders players by stack, largest first. In a tournament, ties
// go to whoever busted later and then to the lower player ID, so the order
// never depends on the input order. Outside a tournament ties keep their
// input order.
func RankPlayers(players []game.Player, t *Tournament) []game.Player {
	ranked := slices.Clone(players)
	slices.SortStableFunc(ranked, func(a, b game.Player) int {
		if c := cmp.Compare(b.Stack, a.Stack); c != 0 || t == nil {
			return c
		}
		return cmp.Or(cmp.Compare(bustKey(b), bustKey(a)), cmp.Compare(a.ID, b.ID))
	})
	return ranked
}

// CalculatePlayerPayouts splits the prize pool, the sum of everything players
// contributed, according to the tournament's payout schedule. Players who
// finished together, meaning the same bust timestamp and the same stack,
// share the ranks they occupy. Survivors holding different stacks are
// separate finishes even though none of them busted. Each group takes the sum of
// those ranks' shares and splits it evenly, rounding up for earlier members
// so the group never pays out more than its share. The group that takes the
// last paid rank receives whatever is left of the pool, so the whole pool is
// always paid.
func CalculatePlayerPayouts(players []game.Player, t *Tournament) (map[string]int64, error) {
	if t == nil || !t.Finished() {
		return nil, ErrTournamentNotFinished
	}

	ranked := RankPlayers(players, t)
	payouts := make(map[string]int64, len(ranked))
	var pot int64
	for _, p := range ranked {
		pot += p.Contributed
		payouts[p.ID] = 0
	}

	potRemaining := pot
	slot := 0
	for i := 0; i < len(ranked) && slot < len(t.Winners); {
		j := i + 1
		for j < len(ranked) && sameFinish(ranked[i], ranked[j], t) {
			j++
		}
		group := ranked[i:j]
		i = j

		last := min(slot+len(group), len(t.Winners))
		var share int64
		for _, w := range t.Winners[slot:last] {
			share += w.BasisPoints
		}
		amount := chips.Percent(pot, share)
		if last == len(t.Winners) {
			amount = potRemaining
		}
		amount = min(amount, potRemaining)
		slot = last

		each := chips.CeilDiv(amount, int64(len(group)))
		groupRemaining := amount
		for _, p := range group {
			paid := min(each, groupRemaining)
			payouts[p.ID] += paid
			groupRemaining -= paid
		}
		potRemaining -= amount
	}
	return payouts, nil
}
