package game

import "fmt"

// minRaise is the smallest legal raise on the street: the largest full bet or
// raise so far, and never less than the big blind.
func (h *Hand) minRaise(r *Round) int64 {
	m := h.BigBlind
	for _, a := range r.Actions {
		if a.Conforming && a.Raise > m {
			m = a.Raise
		}
	}
	return m
}

// canRaise reports whether betting is open to the player. A player who has
// acted since the last full raise may only call or fold, so a short all-in
// does not reopen the action. Raising also needs an opponent who can respond.
func (h *Hand) canRaise(g *Game, r *Round, playerID string) bool {
	lastFull := 0
	for i, a := range r.Actions {
		if a.Conforming && a.Raise > 0 {
			lastFull = i
		}
	}
	for _, a := range r.Actions[lastFull:] {
		if a.PlayerID == playerID && !a.blind() {
			return false
		}
	}
	for _, id := range h.PlayerIDs {
		if id != playerID && h.canAct(g, id) {
			return true
		}
	}
	return false
}

func (h *Hand) liveCount(g *Game) int {
	n := 0
	for _, id := range h.PlayerIDs {
		if h.canAct(g, id) {
			n++
		}
	}
	return n
}

// needsToAct reports whether the player owes a decision on the street: they
// are behind the highest commitment, or they have not acted yet and someone
// else could still respond to them.
func (h *Hand) needsToAct(g *Game, r *Round, playerID string, target int64, live int) bool {
	if !h.canAct(g, playerID) {
		return false
	}
	if r.TotalFor(playerID) < target {
		return true
	}
	return live >= 2 && !r.acted(playerID)
}

// nextToAct returns the player whose turn it is, or "" when the street is
// complete. Turn order continues from the last player to decide, or from
// the street's first seat when nobody has.
func (h *Hand) nextToAct(g *Game) string {
	r := h.CurrentRound()
	if r == nil || len(h.PlayerIDs) == 0 {
		return ""
	}

	n := len(h.PlayerIDs)
	start := r.FirstToActOffset
	for i := len(r.Actions) - 1; i >= 0; i-- {
		if !r.Actions[i].blind() {
			start = h.seatIndex(r.Actions[i].PlayerID) + 1
			break
		}
	}

	target, live := r.target(), h.liveCount(g)
	for i := range n {
		id := h.PlayerIDs[(start+i)%n]
		if h.needsToAct(g, r, id, target, live) {
			return id
		}
	}
	return ""
}

// legalActions returns a template for each action the player may take. Bet
// and raise templates carry the minimum legal size.
func (h *Hand) legalActions(g *Game, playerID string) []Action {
	r := h.CurrentRound()
	ps := h.PlayerStates[playerID]
	if r == nil || ps == nil || !h.canAct(g, playerID) {
		return nil
	}

	current, target := r.TotalFor(playerID), r.target()
	toCall := max(target-current, 0)
	template := func(t ActionType, total int64) Action {
		return Action{
			PlayerID:     playerID,
			Type:         t,
			Contribution: total - current,
			Total:        total,
			Raise:        max(total-target, 0),
			Voluntary:    true,
			AllIn:        total-current == ps.Stack && total > current,
			Conforming:   true,
		}
	}

	actions := []Action{template(Fold, current)}
	if toCall == 0 {
		actions = append(actions, template(Check, current))
	} else {
		actions = append(actions, template(Call, current+min(toCall, ps.Stack)))
	}
	if ps.Stack <= toCall || !h.canRaise(g, r, playerID) {
		return actions
	}

	minRaise := h.minRaise(r)
	all := current + ps.Stack
	if total := target + minRaise; total < all {
		t := Raise
		if target == 0 {
			t = Bet
		}
		actions = append(actions, template(t, total))
	}
	allIn := template(AllIn, all)
	allIn.Conforming = allIn.Raise >= minRaise
	return append(actions, allIn)
}

// LegalActions returns the action templates for the player whose turn it is.
func LegalActions(g *Game) []Action {
	h := g.ActiveHand()
	if h == nil || h.ActingPlayerID == "" {
		return nil
	}
	return h.legalActions(g, h.ActingPlayerID)
}

// applyAction validates a and records it on the current street. Nothing is
// modified when an error is returned.
func (h *Hand) applyAction(g *Game, a Action, now int64) (Action, error) {
	r := h.CurrentRound()
	ps := h.PlayerStates[a.PlayerID]
	if r == nil || ps == nil || !h.canAct(g, a.PlayerID) {
		return Action{}, ErrNotYourTurn
	}
	if !a.Voluntary && a.Type != Check && a.Type != Call && a.Type != Fold {
		return Action{}, fmt.Errorf("%w: %s cannot be forced", ErrInvalidAction, a.Type)
	}

	current, target := r.TotalFor(a.PlayerID), r.target()
	toCall := max(target-current, 0)
	all := current + ps.Stack
	minRaise := h.minRaise(r)

	rec := Action{
		PlayerID:   a.PlayerID,
		Type:       a.Type,
		Total:      current,
		Voluntary:  a.Voluntary,
		Conforming: true,
		Timestamp:  now,
	}

	switch a.Type {
	case Fold:
	case Check:
		if toCall > 0 {
			return Action{}, fmt.Errorf("%w: %d to call", ErrCannotCheck, toCall)
		}
	case Call:
		if toCall == 0 {
			return Action{}, ErrNothingToCall
		}
		rec.Total = min(target, all)
	case Bet, Raise:
		if a.Type == Bet && target > 0 {
			return Action{}, fmt.Errorf("%w: %d to call", ErrBetNotAllowed, toCall)
		}
		if a.Type == Raise && target == 0 {
			return Action{}, fmt.Errorf("%w: nothing to raise", ErrInvalidAction)
		}
		total := a.Total
		if total == 0 && a.Contribution > 0 {
			total = current + a.Contribution
		}
		switch {
		case total <= target:
			return Action{}, fmt.Errorf("%w: %s to %d with %d to match", ErrInvalidAmount, a.Type, total, target)
		case total > all:
			return Action{}, fmt.Errorf("%w: %s to %d with %d behind", ErrInsufficientChips, a.Type, total, all)
		case !h.canRaise(g, r, a.PlayerID):
			return Action{}, ErrRaiseNotAllowed
		}
		rec.Total = total
		rec.Raise = total - target
		if rec.Raise < minRaise {
			if total < all {
				if a.Type == Bet {
					return Action{}, fmt.Errorf("%w: %d, minimum %d", ErrBetTooSmall, rec.Raise, minRaise)
				}
				return Action{}, fmt.Errorf("%w: %d, minimum %d", ErrRaiseTooSmall, rec.Raise, minRaise)
			}
			rec.Conforming = false
		}
	case AllIn:
		rec.Total = all
		if all > target {
			if !h.canRaise(g, r, a.PlayerID) {
				return Action{}, ErrRaiseNotAllowed
			}
			rec.Raise = all - target
			rec.Conforming = rec.Raise >= minRaise
		}
	default:
		return Action{}, fmt.Errorf("%w: %q", ErrInvalidAction, a.Type)
	}

	rec.Contribution = rec.Total - current
	ps.Stack -= rec.Contribution
	if p := g.Players[a.PlayerID]; p != nil {
		p.Stack -= rec.Contribution
	}
	if rec.Contribution > 0 && ps.Stack == 0 {
		ps.AllIn = true
		rec.AllIn = true
	}
	if a.Type == Fold {
		ps.Folded = true
	}
	r.Actions = append(r.Actions, rec)
	return rec, nil
}
