package game

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMinimumReraiseMatchesLastRaise(t *testing.T) {
	t.Parallel()

	e := testEngine(t)
	res := e.AdvanceHand(testGame(t, 100, 1000, 1000, 1000), nil)
	res = play(t, e, res, move{"0", Raise, 300})

	require.Equal(t, "1", res.ActingPlayerID)
	call, ok := findAction(res.Actions, Call)
	require.True(t, ok)
	assert.Equal(t, int64(250), call.Contribution, "small blind already posted 50")

	raise, ok := findAction(res.Actions, Raise)
	require.True(t, ok)
	assert.Equal(t, int64(500), raise.Total)
	assert.Equal(t, int64(200), raise.Raise)
	assert.Equal(t, int64(450), raise.Contribution)

	allIn, ok := findAction(res.Actions, AllIn)
	require.True(t, ok)
	assert.Equal(t, int64(1000), allIn.Total)
	assert.True(t, allIn.Conforming)

	short := NewAction("1", Raise, 450)
	assert.ErrorIs(t, e.AdvanceHand(res.Game, &short).Err, ErrRaiseTooSmall)
}

func TestBigBlindGetsOption(t *testing.T) {
	t.Parallel()

	e := testEngine(t)
	res := e.AdvanceHand(testGame(t, 100, 1000, 1000, 1000), nil)
	res = play(t, e, res, move{"0", Call, 0}, move{"1", Call, 0})

	require.Equal(t, "2", res.ActingPlayerID)
	assert.Equal(t, []ActionType{Fold, Check, Raise, AllIn}, actionTypes(res.Actions))
}

func TestCallForLessIsAllIn(t *testing.T) {
	t.Parallel()

	e := testEngine(t)
	res := e.AdvanceHand(testGame(t, 100, 1000, 1000, 200, 1000), nil)
	res = play(t, e, res, move{"3", Raise, 400}, move{"0", Call, 0})

	require.Equal(t, "1", res.ActingPlayerID)
	res = play(t, e, res, move{"1", Fold, 0})

	// Player 2 has 100 behind the big blind, short of the 300 to call.
	require.Equal(t, "2", res.ActingPlayerID)
	call, ok := findAction(res.Actions, Call)
	require.True(t, ok)
	assert.Equal(t, int64(100), call.Contribution)
	assert.True(t, call.AllIn)
	_, ok = findAction(res.Actions, Raise)
	assert.False(t, ok)
}

func TestBetMinimumIsBigBlind(t *testing.T) {
	t.Parallel()

	e := testEngine(t)
	res := e.AdvanceHand(testGame(t, 100, 1000, 1000), nil)
	res = play(t, e, res, move{"0", Call, 0}, move{"1", Check, 0})

	small := NewAction("1", Bet, 50)
	assert.ErrorIs(t, e.AdvanceHand(res.Game, &small).Err, ErrBetTooSmall)

	raise := NewAction("1", Raise, 200)
	assert.ErrorIs(t, e.AdvanceHand(res.Game, &raise).Err, ErrInvalidAction)

	nothing := NewAction("1", Call, 0)
	assert.ErrorIs(t, e.AdvanceHand(res.Game, &nothing).Err, ErrNothingToCall)
}
