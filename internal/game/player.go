package game

import "slices"

// RebuyRecord is one purchase of additional chips.
type RebuyRecord struct {
	Amount    int64 `json:"amount"`
	Timestamp int64 `json:"timestamp"`
}

// Player is a participant in a game. Stack and Contributed are chip units and
// never negative. Contributed accumulates the buy-in and every rebuy and is
// never reset between hands.
type Player struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Position    int           `json:"position"`
	Stack       int64         `json:"stack"`
	Contributed int64         `json:"contributed"`
	Active      bool          `json:"active"`
	Removed     bool          `json:"removed,omitempty"`
	Away        bool          `json:"away,omitempty"`
	Rebuys      []RebuyRecord `json:"rebuys,omitempty"`

	// BustedTimestamp is when the player was eliminated, in unix
	// milliseconds. Zero means the player never busted.
	BustedTimestamp int64 `json:"bustedTimestamp,omitempty"`
}

// Busted reports whether the player has been eliminated.
func (p *Player) Busted() bool {
	return p.BustedTimestamp != 0
}

// eligible reports whether the player can be dealt into the next hand.
func (p *Player) eligible() bool {
	return p.Active && !p.Removed && !p.Away && p.Stack > 0
}

func (p *Player) awaitingRebuy() bool {
	return p.Active && p.Away && !p.Removed && p.Stack == 0 && !p.Busted()
}

func (p *Player) clone() *Player {
	c := *p
	c.Rebuys = slices.Clone(p.Rebuys)
	return &c
}
