package game

import (
	"cmp"
	"fmt"
	"slices"
)

// Stage is the lifecycle stage of a game.
type Stage string

const (
	StageInitialized Stage = "initialized"
	StageWaiting     Stage = "waiting"
	StageActive      Stage = "active"
	StagePaused      Stage = "paused"
	StageEnded       Stage = "ended"
)

// Type distinguishes cash games from tournaments.
type Type string

const (
	TypeCash                 Type = "cash"
	TypeTournament           Type = "tournament"
	TypeMultiTableTournament Type = "multi-table-tournament"
)

// Blinds describes the big blind schedule. The small blind is always half the
// big blind.
type Blinds struct {
	Starting  int64 `json:"starting"`
	Current   int64 `json:"current"`
	Increment int64 `json:"increment"` // 0 doubles the blind at each level
	Interval  int   `json:"interval"`  // hands per level, 0 keeps the blinds fixed
}

// BigBlindForHand returns the big blind for the 1-based hand number.
func (b Blinds) BigBlindForHand(number int) int64 {
	bb := b.Starting
	if b.Interval <= 0 || number <= 1 {
		return bb
	}
	for range (number - 1) / b.Interval {
		if b.Increment > 0 {
			bb += b.Increment
		} else {
			bb *= 2
		}
	}
	return bb
}

// Game is one table: its players, the hands played so far and the settings
// needed to deal the next one.
type Game struct {
	ID            string             `json:"id"`
	Type          Type               `json:"type"`
	Stage         Stage              `json:"stage"`
	Players       map[string]*Player `json:"players"`
	Hands         []*Hand            `json:"hands"`
	ActiveHandID  string             `json:"activeHandId,omitempty"`
	BuyIn         int64              `json:"buyIn"`
	Blinds        Blinds             `json:"blinds"`
	Seed          int64              `json:"seed"`
	RebuysAllowed bool               `json:"rebuysAllowed"`
}

// GameOption configures a Game during creation.
type GameOption func(*Game)

// WithType sets the game type. Default is TypeCash.
func WithType(t Type) GameOption {
	return func(g *Game) {
		g.Type = t
	}
}

// WithBuyIn sets the stack each player receives on AddPlayer. Default is 1000.
func WithBuyIn(amount int64) GameOption {
	return func(g *Game) {
		g.BuyIn = amount
	}
}

// WithBlinds sets the blind schedule. Current defaults to Starting.
func WithBlinds(b Blinds) GameOption {
	return func(g *Game) {
		if b.Current == 0 {
			b.Current = b.Starting
		}
		g.Blinds = b
	}
}

// WithSeed sets the seed every hand's deck is derived from.
func WithSeed(seed int64) GameOption {
	return func(g *Game) {
		g.Seed = seed
	}
}

// WithRebuys allows busted players to buy back in.
func WithRebuys(allowed bool) GameOption {
	return func(g *Game) {
		g.RebuysAllowed = allowed
	}
}

// NewGame creates an empty game ready for players to be added.
func NewGame(id string, opts ...GameOption) *Game {
	g := &Game{
		ID:      id,
		Type:    TypeCash,
		Stage:   StageInitialized,
		Players: make(map[string]*Player),
		BuyIn:   1000,
		Blinds:  Blinds{Starting: 20, Current: 20},
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// AddPlayer seats a new player with a stack of one buy-in.
func (g *Game) AddPlayer(id, name string, position int) error {
	if _, ok := g.Players[id]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicatePlayer, id)
	}
	for _, p := range g.Players {
		if p.Position == position {
			return fmt.Errorf("%w: position %d", ErrSeatTaken, position)
		}
	}
	g.Players[id] = &Player{
		ID:          id,
		Name:        name,
		Position:    position,
		Stack:       g.BuyIn,
		Contributed: g.BuyIn,
		Active:      true,
	}
	return nil
}

// Clone returns a copy that can be modified without affecting g. Finished
// hands are never modified again and are shared between the copies.
func (g *Game) Clone() *Game {
	c := *g
	c.Players = make(map[string]*Player, len(g.Players))
	for id, p := range g.Players {
		c.Players[id] = p.clone()
	}
	c.Hands = slices.Clone(g.Hands)
	if n := len(c.Hands); n > 0 {
		c.Hands[n-1] = c.Hands[n-1].Clone()
	}
	return &c
}

// SortedPlayers returns the players in seat order.
func (g *Game) SortedPlayers() []*Player {
	players := make([]*Player, 0, len(g.Players))
	for _, p := range g.Players {
		players = append(players, p)
	}
	slices.SortFunc(players, func(a, b *Player) int {
		return cmp.Or(cmp.Compare(a.Position, b.Position), cmp.Compare(a.ID, b.ID))
	})
	return players
}

// LastHand returns the most recent hand, or nil before the first deal.
func (g *Game) LastHand() *Hand {
	if len(g.Hands) == 0 {
		return nil
	}
	return g.Hands[len(g.Hands)-1]
}

// ActiveHand returns the hand in progress, or nil between hands.
func (g *Game) ActiveHand() *Hand {
	h := g.LastHand()
	if h == nil || h.PayoutsApplied || h.ID != g.ActiveHandID {
		return nil
	}
	return h
}

func (g *Game) eligiblePlayers() []*Player {
	var eligible []*Player
	for _, p := range g.SortedPlayers() {
		if p.eligible() {
			eligible = append(eligible, p)
		}
	}
	return eligible
}

func (g *Game) awaitingRebuy() *Player {
	for _, p := range g.SortedPlayers() {
		if p.awaitingRebuy() {
			return p
		}
	}
	return nil
}

// Rebuy adds amount to a player's stack and to what they have contributed to
// the game. It clears Away so the player is dealt into the next hand.
func Rebuy(g *Game, playerID string, amount, timestamp int64) (*Game, error) {
	if !g.RebuysAllowed {
		return g, ErrRebuysDisabled
	}
	p, ok := g.Players[playerID]
	if !ok {
		return g, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if amount <= 0 {
		return g, fmt.Errorf("%w: rebuy of %d", ErrInvalidAmount, amount)
	}
	if p.Busted() || p.Removed {
		return g, fmt.Errorf("%w: %s", ErrPlayerEliminated, playerID)
	}
	if h := g.ActiveHand(); h != nil {
		if _, seated := h.PlayerStates[playerID]; seated {
			return g, fmt.Errorf("%w: %s", ErrHandInProgress, h.ID)
		}
	}

	next := g.Clone()
	p = next.Players[playerID]
	p.Stack += amount
	p.Contributed += amount
	p.Rebuys = append(p.Rebuys, RebuyRecord{Amount: amount, Timestamp: timestamp})
	p.Active = true
	p.Away = false
	return next, nil
}

// DeclineRebuy eliminates a player who was offered a rebuy and turned it down.
func DeclineRebuy(g *Game, playerID string, timestamp int64) (*Game, error) {
	p, ok := g.Players[playerID]
	if !ok {
		return g, fmt.Errorf("%w: %s", ErrUnknownPlayer, playerID)
	}
	if !p.awaitingRebuy() {
		return g, fmt.Errorf("%w: %s is not waiting on a rebuy", ErrInvalidAction, playerID)
	}

	next := g.Clone()
	p = next.Players[playerID]
	p.BustedTimestamp = timestamp
	p.Active = false
	p.Away = false
	return next, nil
}
