package game

import (
	"fmt"
	"maps"
	"slices"

	"github.com/pradprat/poker-in-place/poker"
)

// Street is a betting round, plus the sentinels before dealing and after
// the hand is resolved.
type Street string

const (
	StreetDeal     Street = "deal"
	StreetPreFlop  Street = "pre-flop"
	StreetFlop     Street = "flop"
	StreetTurn     Street = "turn"
	StreetRiver    Street = "river"
	StreetShowdown Street = "showdown"
)

// next returns the street that follows s and how many community cards it
// reveals.
func (s Street) next() (Street, int) {
	switch s {
	case StreetDeal:
		return StreetPreFlop, 0
	case StreetPreFlop:
		return StreetFlop, 3
	case StreetFlop:
		return StreetTurn, 1
	case StreetTurn:
		return StreetRiver, 1
	default:
		return StreetShowdown, 0
	}
}

// PlayerState is a player's private view of one hand.
type PlayerState struct {
	Cards         []poker.Card `json:"cards"`
	StartingStack int64        `json:"startingStack"`
	Stack         int64        `json:"stack"`
	Folded        bool         `json:"folded,omitempty"`
	AllIn         bool         `json:"allIn,omitempty"`
}

// Round is one betting street. Actions are append-only.
type Round struct {
	Type             Street       `json:"type"`
	Cards            []poker.Card `json:"cards,omitempty"`
	Actions          []Action     `json:"actions"`
	FirstToActOffset int          `json:"firstToActOffset"`
	Active           bool         `json:"active"`
	Timestamp        int64        `json:"timestamp"`
}

// TotalFor returns the player's commitment on this street.
func (r *Round) TotalFor(playerID string) int64 {
	var total int64
	for _, a := range r.Actions {
		if a.PlayerID == playerID {
			total += a.Contribution
		}
	}
	return total
}

// target is the highest commitment on the street.
func (r *Round) target() int64 {
	var target int64
	for _, a := range r.Actions {
		target = max(target, a.Total)
	}
	return target
}

// acted reports whether the player has made a decision on this street.
// Posting a blind does not count.
func (r *Round) acted(playerID string) bool {
	for _, a := range r.Actions {
		if a.PlayerID == playerID && !a.blind() {
			return true
		}
	}
	return false
}

// Payout is one player's result for a hand.
type Payout struct {
	PlayerID string `json:"playerId"`

	// Amount is what the player won from the pots and Total is the size of
	// all pots they were eligible for.
	Amount int64 `json:"amount"`
	Total  int64 `json:"total"`

	Cards           []poker.Card `json:"cards,omitempty"`
	HandCards       []poker.Card `json:"handCards,omitempty"`
	HandDescription string       `json:"handDescription,omitempty"`
	SoleWinner      bool         `json:"soleWinner"`
}

// Hand is one deal.
type Hand struct {
	ID           string `json:"id"`
	Number       int    `json:"number"`
	Seed         int64  `json:"seed"`
	DealerID     string `json:"dealerId"`
	SmallBlindID string `json:"smallBlindId"`
	BigBlindID   string `json:"bigBlindId"`
	SmallBlind   int64  `json:"smallBlind"`
	BigBlind     int64  `json:"bigBlind"`

	// PlayerIDs are the players dealt in, in seat order.
	PlayerIDs    []string                `json:"playerIds"`
	PlayerStates map[string]*PlayerState `json:"playerStates"`

	Rounds         []*Round `json:"rounds"`
	ActiveRound    Street   `json:"activeRound"`
	ActingPlayerID string   `json:"actingPlayerId,omitempty"`
	CardsDealt     int      `json:"cardsDealt"`

	Payouts            []Payout `json:"payouts,omitempty"`
	PayoutsApplied     bool     `json:"payoutsApplied"`
	Timestamp          int64    `json:"timestamp"`
	CompletedTimestamp int64    `json:"completedTimestamp,omitempty"`
}

// Clone returns a copy of h whose states, rounds and payouts can be modified
// independently. Dealt cards are shared.
func (h *Hand) Clone() *Hand {
	c := *h
	c.PlayerStates = maps.Clone(h.PlayerStates)
	for id, ps := range c.PlayerStates {
		psCopy := *ps
		c.PlayerStates[id] = &psCopy
	}
	c.Rounds = make([]*Round, len(h.Rounds))
	for i, r := range h.Rounds {
		rCopy := *r
		rCopy.Actions = slices.Clone(r.Actions)
		c.Rounds[i] = &rCopy
	}
	if h.Rounds == nil {
		c.Rounds = nil
	}
	c.Payouts = slices.Clone(h.Payouts)
	return &c
}

// CurrentRound returns the street being bet, or nil once the hand is resolved.
func (h *Hand) CurrentRound() *Round {
	if len(h.Rounds) == 0 {
		return nil
	}
	r := h.Rounds[len(h.Rounds)-1]
	if !r.Active {
		return nil
	}
	return r
}

// Board returns the community cards revealed so far.
func (h *Hand) Board() []poker.Card {
	var board []poker.Card
	for _, r := range h.Rounds {
		board = append(board, r.Cards...)
	}
	return board
}

// ActionsFor returns the player's actions across all streets.
func (h *Hand) ActionsFor(playerID string) []Action {
	var actions []Action
	for _, r := range h.Rounds {
		for _, a := range r.Actions {
			if a.PlayerID == playerID {
				actions = append(actions, a)
			}
		}
	}
	return actions
}

// Contributions returns what each player put into the pot.
func (h *Hand) Contributions() map[string]int64 {
	contributions := make(map[string]int64, len(h.PlayerIDs))
	for _, r := range h.Rounds {
		for _, a := range r.Actions {
			contributions[a.PlayerID] += a.Contribution
		}
	}
	return contributions
}

// Pot returns the total contributed so far.
func (h *Hand) Pot() int64 {
	var pot int64
	for _, c := range h.Contributions() {
		pot += c
	}
	return pot
}

// Payout returns the player's payout entry, if the hand has been paid.
func (h *Hand) Payout(playerID string) (Payout, bool) {
	for _, p := range h.Payouts {
		if p.PlayerID == playerID {
			return p, true
		}
	}
	return Payout{}, false
}

func (h *Hand) seatIndex(playerID string) int {
	return slices.Index(h.PlayerIDs, playerID)
}

// fromDealer returns the players in seat order starting left of the dealer.
func (h *Hand) fromDealer() []string {
	n := len(h.PlayerIDs)
	d := max(h.seatIndex(h.DealerID), 0)
	order := make([]string, 0, n)
	for i := 1; i <= n; i++ {
		order = append(order, h.PlayerIDs[(d+i)%n])
	}
	return order
}

// contender reports whether the player can still win the pot.
func (h *Hand) contender(g *Game, playerID string) bool {
	ps, ok := h.PlayerStates[playerID]
	if !ok || ps.Folded {
		return false
	}
	p, ok := g.Players[playerID]
	return ok && !p.Removed
}

func (h *Hand) contenders(g *Game) []string {
	var ids []string
	for _, id := range h.fromDealer() {
		if h.contender(g, id) {
			ids = append(ids, id)
		}
	}
	return ids
}

// canAct reports whether the player still has decisions to make this hand.
func (h *Hand) canAct(g *Game, playerID string) bool {
	return h.contender(g, playerID) && !h.PlayerStates[playerID].AllIn
}

// ValidateHand checks that a paid hand distributed exactly what was put in.
func ValidateHand(h *Hand) error {
	if !h.PayoutsApplied {
		return fmt.Errorf("hand %s has not been paid", h.ID)
	}
	var paid int64
	for _, p := range h.Payouts {
		if p.Amount < 0 {
			return fmt.Errorf("%w: hand %s pays %s %d", ErrPotMismatch, h.ID, p.PlayerID, p.Amount)
		}
		paid += p.Amount
	}
	if pot := h.Pot(); paid != pot {
		return fmt.Errorf("%w: hand %s paid %d from a pot of %d", ErrPotMismatch, h.ID, paid, pot)
	}
	return nil
}
