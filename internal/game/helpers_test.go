package game

import (
	"io"
	"strconv"
	"testing"
	"time"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"github.com/stretchr/testify/require"

	"github.com/pradprat/poker-in-place/poker"
)

var testEpoch = time.UnixMilli(1_700_000_000_000)

func testEngine(t *testing.T, opts ...Option) *Engine {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(testEpoch)
	return NewEngine(append([]Option{WithClock(clock), WithLogger(log.New(io.Discard))}, opts...)...)
}

// testGame seats players "0", "1", ... in that order with the given stacks.
func testGame(t *testing.T, bigBlind int64, stacks ...int64) *Game {
	t.Helper()
	g := NewGame("g1", WithBlinds(Blinds{Starting: bigBlind}), WithSeed(42))
	for i, stack := range stacks {
		id := strconv.Itoa(i)
		require.NoError(t, g.AddPlayer(id, "Player "+id, i))
		g.Players[id].Stack = stack
		g.Players[id].Contributed = stack
	}
	return g
}

// stackDeck deals the hole cards to players in order starting left of the
// dealer, then the board.
func stackDeck(holes []string, board string) Option {
	var first, second []poker.Card
	for _, h := range holes {
		cards := poker.MustParseCards(h)
		first = append(first, cards[0])
		second = append(second, cards[1])
	}
	top := append(append(first, second...), poker.MustParseCards(board)...)
	return WithDeckSource(func(int64) *poker.Deck {
		return poker.NewStackedDeck(top...)
	})
}

type move struct {
	player string
	action ActionType
	total  int64
}

// play applies each move, checking it is that player's turn.
func play(t *testing.T, e *Engine, res Result, moves ...move) Result {
	t.Helper()
	for _, m := range moves {
		require.Equal(t, m.player, res.ActingPlayerID, "turn order before %s %s", m.player, m.action)
		a := NewAction(m.player, m.action, m.total)
		res = e.AdvanceHand(res.Game, &a)
		require.NoError(t, res.Err, "%s %s %d", m.player, m.action, m.total)
	}
	return res
}

// runOut advances without actions until the hand is paid.
func runOut(t *testing.T, e *Engine, res Result) Result {
	t.Helper()
	for range 10 {
		if res.Directive == HandPayout || res.Directive == ShortHandPayout {
			return res
		}
		require.Empty(t, res.ActingPlayerID, "hand is waiting on a player")
		res = e.AdvanceHand(res.Game, nil)
		require.NoError(t, res.Err)
	}
	t.Fatalf("hand did not finish, last directive %s", res.Directive)
	return res
}

func payoutAmounts(h *Hand) map[string]int64 {
	amounts := make(map[string]int64, len(h.Payouts))
	for _, p := range h.Payouts {
		amounts[p.PlayerID] = p.Amount
	}
	return amounts
}

func sumStacks(g *Game) int64 {
	var total int64
	for _, p := range g.Players {
		total += p.Stack
	}
	return total
}

type seat struct {
	id           string
	hole         string
	contribution int64
	folded       bool
}

// fixtureHand builds a hand ready for showdown with each seat's money on the
// pre-flop street and the whole board dealt. The first seat is the dealer.
func fixtureHand(t *testing.T, board string, seats ...seat) (*Game, *Hand) {
	t.Helper()
	g := NewGame("fixture")
	h := &Hand{
		ID:           "fixture-1",
		Number:       1,
		DealerID:     seats[0].id,
		BigBlind:     20,
		PlayerStates: make(map[string]*PlayerState),
		ActiveRound:  StreetRiver,
	}
	pre := &Round{Type: StreetPreFlop}
	for i, s := range seats {
		require.NoError(t, g.AddPlayer(s.id, s.id, i))
		h.PlayerIDs = append(h.PlayerIDs, s.id)
		h.PlayerStates[s.id] = &PlayerState{Cards: poker.MustParseCards(s.hole), Folded: s.folded}
		pre.Actions = append(pre.Actions, Action{
			PlayerID:     s.id,
			Type:         Call,
			Contribution: s.contribution,
			Total:        s.contribution,
			Voluntary:    true,
			Conforming:   true,
		})
	}
	cards := poker.MustParseCards(board)
	h.Rounds = []*Round{
		pre,
		{Type: StreetFlop, Cards: cards[:3]},
		{Type: StreetTurn, Cards: cards[3:4]},
		{Type: StreetRiver, Cards: cards[4:], Active: true},
	}
	g.Hands = []*Hand{h}
	g.ActiveHandID = h.ID
	return g, h
}
