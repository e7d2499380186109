package simulator

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/coder/quartz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/randutil"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	clock := quartz.NewMock(t)
	clock.Set(time.UnixMilli(1_700_000_000_000))
	return Config{
		Games:     16,
		Players:   5,
		Seed:      7,
		MaxRebuys: 1,
		Clock:     clock,
		GameOptions: []game.GameOption{
			game.WithType(game.TypeTournament),
			game.WithBuyIn(1000),
			game.WithBlinds(game.Blinds{Starting: 20, Interval: 5}),
			game.WithRebuys(true),
		},
	}
}

func TestRunPlaysEveryGameToTheEnd(t *testing.T) {
	t.Parallel()

	report, err := New(testConfig(t)).Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Games, 16)

	for _, g := range report.Games {
		assert.NotEmpty(t, g.Winner, g.ID)
		assert.Positive(t, g.Hands, g.ID)
		require.Len(t, g.Players, 5)

		var stacks, contributed int64
		for _, p := range g.Players {
			stacks += p.Stack
			contributed += p.Contributed
		}
		assert.Equal(t, contributed, stacks, g.ID)
	}
	assert.Positive(t, report.Showdowns)
	assert.Positive(t, report.Rebuys)
}

func TestRunIsDeterministic(t *testing.T) {
	t.Parallel()

	a, err := New(testConfig(t)).Run(context.Background())
	require.NoError(t, err)

	cfg := testConfig(t)
	cfg.Concurrency = 1
	b, err := New(cfg).Run(context.Background())
	require.NoError(t, err)

	assert.Equal(t, a, b)
}

func TestRunWithEachAgent(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"call", "rand", "maniac"} {
		t.Run(name, func(t *testing.T) {
			t.Parallel()
			agent, err := NewAgent(name)
			require.NoError(t, err)

			cfg := testConfig(t)
			cfg.Games = 4
			cfg.Agent = agent
			_, err = New(cfg).Run(context.Background())
			require.NoError(t, err)
		})
	}

	_, err := NewAgent("shark")
	assert.Error(t, err)
}

func TestOnHandSeesEveryPaidHand(t *testing.T) {
	t.Parallel()

	var hands atomic.Int64
	cfg := testConfig(t)
	cfg.OnHand = func(_ *game.Game, h *game.Hand) error {
		if !h.PayoutsApplied {
			return errors.New("hand not paid")
		}
		hands.Add(1)
		return nil
	}

	report, err := New(cfg).Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(report.Hands), hands.Load())
}

func TestOnHandErrorStopsTheRun(t *testing.T) {
	t.Parallel()

	boom := errors.New("boom")
	cfg := testConfig(t)
	cfg.OnHand = func(*game.Game, *game.Hand) error { return boom }

	_, err := New(cfg).Run(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestStepLimit(t *testing.T) {
	t.Parallel()

	cfg := testConfig(t)
	cfg.MaxSteps = 3
	_, err := New(cfg).Run(context.Background())
	assert.ErrorIs(t, err, ErrStepLimit)
}

func TestCancelledContext(t *testing.T) {
	t.Parallel()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := New(testConfig(t)).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestAgents(t *testing.T) {
	t.Parallel()

	facing := []game.Action{
		{Type: game.Fold},
		{Type: game.Call, Contribution: 40},
		{Type: game.Raise, Total: 120, Raise: 80, Conforming: true},
		{Type: game.AllIn, Total: 500, Raise: 460, Conforming: true, AllIn: true},
	}
	unopened := []game.Action{
		{Type: game.Fold},
		{Type: game.Check},
		{Type: game.Bet, Total: 20, Conforming: true},
		{Type: game.AllIn, Total: 500, Conforming: true, AllIn: true},
	}
	rng := randutil.New(1)

	assert.Equal(t, game.NewAction("p1", game.Call, 0), CallAgent{}.Act("p1", facing, rng))
	assert.Equal(t, game.NewAction("p1", game.Check, 0), CallAgent{}.Act("p1", unopened, rng))
	assert.Equal(t, game.NewAction("p1", game.Raise, 120), ManiacAgent{}.Act("p1", facing, rng))
	assert.Equal(t, game.NewAction("p1", game.Bet, 20), ManiacAgent{}.Act("p1", unopened, rng))

	for range 200 {
		a := RandomAgent{}.Act("p1", unopened, rng)
		assert.NotEqual(t, game.Fold, a.Type, "never folds when checking is free")
		if a.Type == game.Bet {
			assert.GreaterOrEqual(t, a.Total, int64(20))
			assert.Less(t, a.Total, int64(500))
		}
	}
}
