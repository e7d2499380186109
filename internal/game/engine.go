package game

import (
	"fmt"
	"io"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"

	"github.com/pradprat/poker-in-place/internal/randutil"
	"github.com/pradprat/poker-in-place/poker"
)

// Directive tells the orchestrator what a transition did.
type Directive string

const (
	NextToAct       Directive = "next-to-act"       // waiting on ActingPlayerID
	NextRound       Directive = "next-round"        // a street was dealt
	NextHand        Directive = "next-hand"         // a hand was dealt
	HandPayout      Directive = "hand-payout"       // pots awarded at showdown
	ShortHandPayout Directive = "short-hand-payout" // pot awarded uncontested
	RebuyOption     Directive = "rebuy-option"      // ActingPlayerID busted and may rebuy
	EliminatePlayer Directive = "eliminate-player"  // busted players were eliminated
	End             Directive = "end"               // fewer than two players can play
)

// Result is the outcome of one transition. When Err is set Game is the
// unchanged input.
type Result struct {
	Game           *Game
	Directive      Directive
	ActingPlayerID string
	Actions        []Action
	Err            error
}

// Engine advances games. It holds no game state and is safe for concurrent use.
type Engine struct {
	clock  quartz.Clock
	logger *log.Logger
	deck   func(seed int64) *poker.Deck
}

// Option configures an Engine.
type Option func(*Engine)

// WithClock sets the clock used for timestamps.
func WithClock(clock quartz.Clock) Option {
	return func(e *Engine) {
		e.clock = clock
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// WithDeckSource replaces how a hand's deck is built from its seed. Tests use
// it to stack the deck.
func WithDeckSource(deck func(seed int64) *poker.Deck) Option {
	return func(e *Engine) {
		e.deck = deck
	}
}

// NewEngine creates an engine using the wall clock and seeded decks.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{
		clock:  quartz.NewReal(),
		logger: log.New(io.Discard),
		deck: func(seed int64) *poker.Deck {
			return poker.NewDeck(randutil.New(seed))
		},
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// AdvanceHand applies action, or with a nil action performs the next
// automatic step: open a street, pay a finished hand, handle busted players
// or deal the next hand. g is never modified.
func (e *Engine) AdvanceHand(g *Game, action *Action) Result {
	if g.Stage == StageEnded {
		return Result{Game: g.Clone(), Directive: End}
	}

	next := g.Clone()
	now := e.clock.Now().UnixMilli()
	h := next.ActiveHand()

	if action != nil {
		if h == nil || h.ActingPlayerID == "" || action.PlayerID != h.ActingPlayerID {
			return e.reject(g, action, ErrNotYourTurn)
		}
		rec, err := h.applyAction(next, *action, now)
		if err != nil {
			return e.reject(g, action, err)
		}
		e.logger.Debug("action", "hand", h.ID, "player", rec.PlayerID, "type", rec.Type,
			"contribution", rec.Contribution, "total", rec.Total, "allIn", rec.AllIn)

		if h.ActingPlayerID = h.nextToAct(next); h.ActingPlayerID != "" {
			return e.toAct(next, h, NextToAct)
		}
		return e.step(next, g, now)
	}

	if h != nil && h.ActingPlayerID != "" {
		if len(h.contenders(next)) <= 1 {
			return e.step(next, g, now)
		}
		if !h.canAct(next, h.ActingPlayerID) {
			h.ActingPlayerID = h.nextToAct(next)
		}
		if h.ActingPlayerID != "" {
			return e.toAct(next, h, NextToAct)
		}
	}
	return e.step(next, g, now)
}

// step performs one automatic transition when nobody owes a decision.
func (e *Engine) step(g, orig *Game, now int64) Result {
	if h := g.ActiveHand(); h != nil {
		switch {
		case len(h.contenders(g)) <= 1:
			return e.settle(g, h, now, ShortHandPayout)
		case h.ActiveRound == StreetRiver:
			return e.settle(g, h, now, HandPayout)
		default:
			return e.openStreet(g, h, now)
		}
	}

	if res, ok := e.handleBusts(g, now); ok {
		return res
	}

	eligible := g.eligiblePlayers()
	if len(eligible) < 2 {
		if p := g.awaitingRebuy(); p != nil {
			return Result{Game: g, Directive: RebuyOption, ActingPlayerID: p.ID}
		}
		g.Stage = StageEnded
		e.logger.Info("game over", "game", g.ID, "hands", len(g.Hands))
		return Result{Game: g, Directive: End}
	}
	if g.Stage == StagePaused {
		return e.reject(orig, nil, ErrGamePaused)
	}
	return e.deal(g, eligible, now)
}

func (e *Engine) deckFor(h *Hand) *poker.Deck {
	d := e.deck(h.Seed)
	d.Skip(h.CardsDealt)
	return d
}

// deal starts the next hand: moves the dealer, posts blinds and deals hole
// cards one at a time starting left of the dealer.
func (e *Engine) deal(g *Game, eligible []*Player, now int64) Result {
	number := len(g.Hands) + 1
	g.Blinds.Current = g.Blinds.BigBlindForHand(number)
	bb := g.Blinds.Current

	ids := make([]string, len(eligible))
	for i, p := range eligible {
		ids[i] = p.ID
	}
	n := len(ids)
	d := nextDealer(g, eligible)
	sb, big, first := (d+1)%n, (d+2)%n, (d+3)%n
	if n == 2 {
		sb, big, first = d, (d+1)%n, d
	}

	h := &Hand{
		ID:           fmt.Sprintf("%s-%d", g.ID, number),
		Number:       number,
		Seed:         randutil.Derive(g.Seed, number),
		DealerID:     ids[d],
		SmallBlindID: ids[sb],
		BigBlindID:   ids[big],
		SmallBlind:   bb / 2,
		BigBlind:     bb,
		PlayerIDs:    ids,
		PlayerStates: make(map[string]*PlayerState, n),
		ActiveRound:  StreetPreFlop,
		Timestamp:    now,
	}
	for _, p := range eligible {
		h.PlayerStates[p.ID] = &PlayerState{StartingStack: p.Stack, Stack: p.Stack}
	}

	deck := e.deckFor(h)
	order := h.fromDealer()
	for range 2 {
		for _, id := range order {
			ps := h.PlayerStates[id]
			ps.Cards = append(ps.Cards, deck.Deal(1)...)
		}
	}
	h.CardsDealt = 2 * n

	round := &Round{Type: StreetPreFlop, FirstToActOffset: first, Active: true, Timestamp: now}
	h.Rounds = []*Round{round}
	posted := h.postBlind(g, round, ids[sb], Bet, h.SmallBlind, 0, now)
	h.postBlind(g, round, ids[big], Raise, h.BigBlind, posted, now)

	g.Hands = append(g.Hands, h)
	g.ActiveHandID = h.ID
	g.Stage = StageActive
	h.ActingPlayerID = h.nextToAct(g)

	e.logger.Debug("deal", "hand", h.ID, "dealer", h.DealerID, "players", n,
		"smallBlind", h.SmallBlind, "bigBlind", h.BigBlind)
	return e.toAct(g, h, NextHand)
}

// nextDealer returns the index in eligible of the first player seated after
// the previous dealer.
func nextDealer(g *Game, eligible []*Player) int {
	prev := g.LastHand()
	if prev == nil {
		return 0
	}
	p, ok := g.Players[prev.DealerID]
	if !ok {
		return 0
	}
	for i, q := range eligible {
		if q.Position > p.Position {
			return i
		}
	}
	return 0
}

func (h *Hand) postBlind(g *Game, r *Round, playerID string, t ActionType, amount, prior, now int64) int64 {
	ps := h.PlayerStates[playerID]
	c := min(amount, ps.Stack)
	ps.Stack -= c
	g.Players[playerID].Stack -= c
	ps.AllIn = ps.Stack == 0
	r.Actions = append(r.Actions, Action{
		PlayerID:     playerID,
		Type:         t,
		Contribution: c,
		Total:        c,
		Raise:        max(c-prior, 0),
		AllIn:        ps.AllIn,
		Conforming:   true,
		Timestamp:    now,
	})
	return c
}

func (e *Engine) openStreet(g *Game, h *Hand, now int64) Result {
	street, n := h.ActiveRound.next()
	cards := e.deckFor(h).Deal(n)
	h.CardsDealt += n

	for _, r := range h.Rounds {
		r.Active = false
	}
	h.Rounds = append(h.Rounds, &Round{
		Type:             street,
		Cards:            cards,
		FirstToActOffset: (max(h.seatIndex(h.DealerID), 0) + 1) % len(h.PlayerIDs),
		Active:           true,
		Timestamp:        now,
	})
	h.ActiveRound = street
	h.ActingPlayerID = h.nextToAct(g)

	e.logger.Debug("street", "hand", h.ID, "street", street, "cards", poker.FormatCards(cards))
	return e.toAct(g, h, NextRound)
}

// settle pays out a finished hand. Hole cards are only shown at showdown.
func (e *Engine) settle(g *Game, h *Hand, now int64, directive Directive) Result {
	results := CalculateHandWinners(g, h)
	board := h.Board()

	// A player only refunded their uncalled chips is not a winner unless
	// nobody won a contested pot.
	winners, contested := 0, 0
	for _, r := range results {
		if r.Payout > 0 {
			winners++
		}
		if r.Contested {
			contested++
		}
	}
	sole := func(r HandResult) bool {
		if contested > 0 {
			return contested == 1 && r.Contested
		}
		return winners == 1 && r.Payout > 0
	}

	h.Payouts = make([]Payout, 0, len(h.PlayerIDs))
	for _, id := range h.PlayerIDs {
		r := results[id]
		payout := Payout{
			PlayerID:   id,
			Amount:     r.Payout,
			Total:      r.Allocated,
			SoleWinner: sole(r),
		}
		ps := h.PlayerStates[id]
		if directive == HandPayout && h.contender(g, id) {
			best := poker.EvaluateBest(append(slices.Clone(ps.Cards), board...))
			payout.Cards = ps.Cards
			payout.HandCards = best.Cards
			payout.HandDescription = best.Description()
		}
		ps.Stack += r.Payout
		if p := g.Players[id]; p != nil {
			p.Stack += r.Payout
		}
		h.Payouts = append(h.Payouts, payout)
	}

	for _, r := range h.Rounds {
		r.Active = false
	}
	h.ActiveRound = StreetShowdown
	h.ActingPlayerID = ""
	h.PayoutsApplied = true
	h.CompletedTimestamp = now

	e.logger.Debug("payout", "hand", h.ID, "directive", directive, "pot", h.Pot(), "winners", winners)
	return Result{Game: g, Directive: directive}
}

// handleBusts deals with players left without chips by the last hand. With
// rebuys allowed they are offered one at a time and sit out until they
// decide. Otherwise they are eliminated together, sharing one timestamp.
func (e *Engine) handleBusts(g *Game, now int64) (Result, bool) {
	var busted []*Player
	for _, p := range g.SortedPlayers() {
		if p.Active && !p.Removed && !p.Away && !p.Busted() && p.Stack == 0 {
			busted = append(busted, p)
		}
	}
	if len(busted) == 0 {
		return Result{}, false
	}

	if g.RebuysAllowed {
		p := busted[0]
		p.Away = true
		e.logger.Debug("rebuy offered", "game", g.ID, "player", p.ID)
		return Result{Game: g, Directive: RebuyOption, ActingPlayerID: p.ID}, true
	}

	ts := now
	if last := g.LastHand(); last != nil && last.CompletedTimestamp != 0 {
		ts = last.CompletedTimestamp
	}
	for _, p := range busted {
		p.BustedTimestamp = ts
		p.Active = false
		e.logger.Info("player eliminated", "game", g.ID, "player", p.ID)
	}
	return Result{Game: g, Directive: EliminatePlayer, ActingPlayerID: busted[0].ID}, true
}

func (e *Engine) toAct(g *Game, h *Hand, d Directive) Result {
	return Result{
		Game:           g,
		Directive:      d,
		ActingPlayerID: h.ActingPlayerID,
		Actions:        h.legalActions(g, h.ActingPlayerID),
	}
}

// reject reports err against the untouched input game.
func (e *Engine) reject(g *Game, a *Action, err error) Result {
	if a != nil {
		e.logger.Warn("action rejected", "game", g.ID, "player", a.PlayerID, "type", a.Type, "err", err)
	} else {
		e.logger.Warn("advance rejected", "game", g.ID, "err", err)
	}
	res := Result{Game: g, Err: err}
	if h := g.ActiveHand(); h != nil && h.ActingPlayerID != "" {
		res.Directive = NextToAct
		res.ActingPlayerID = h.ActingPlayerID
		res.Actions = h.legalActions(g, h.ActingPlayerID)
	}
	return res
}
