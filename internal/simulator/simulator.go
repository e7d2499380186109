// Package simulator plays whole games through the engine with scripted agents
// and checks every paid hand for pot conservation.
package simulator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"runtime"
	"slices"

	"github.com/charmbracelet/log"
	"github.com/coder/quartz"
	"golang.org/x/sync/errgroup"

	"github.com/pradprat/poker-in-place/internal/game"
	"github.com/pradprat/poker-in-place/internal/randutil"
)

var (
	// ErrStepLimit is returned when a game has not ended within MaxSteps transitions.
	ErrStepLimit = errors.New("simulator: step limit reached")

	// ErrChipsNotConserved is returned when the chips at the table at the end of
	// a game differ from everything that was bought in.
	ErrChipsNotConserved = errors.New("simulator: chips not conserved")
)

// Config holds configuration for running simulations. Agents are shared
// between concurrent games and must not keep per-game state.
type Config struct {
	Games       int
	Players     int
	Seed        int64
	MaxSteps    int
	MaxRebuys   int
	Concurrency int
	Agent       Agent

	// GameOptions configure every simulated game. The seed is always
	// derived from Seed and the game's index.
	GameOptions []game.GameOption

	// OnHand is called for every paid hand. It may be called from several
	// goroutines at once.
	OnHand func(g *game.Game, h *game.Hand) error

	Clock  quartz.Clock
	Logger *log.Logger
}

// GameResult summarises one simulated game.
type GameResult struct {
	ID        string
	Seed      int64
	Hands     int
	Showdowns int
	Rebuys    int
	MaxPot    int64
	Winner    string
	Players   []game.Player
}

// Report summarises a simulation.
type Report struct {
	Games     []GameResult
	Hands     int
	Showdowns int
	Rebuys    int
	MaxPot    int64
}

// Simulator runs games with the same configuration over many seeds.
type Simulator struct {
	config Config
	engine *game.Engine
}

// New creates a new simulator with the given configuration
func New(config Config) *Simulator {
	if config.Games <= 0 {
		config.Games = 1
	}
	if config.Players < 2 {
		config.Players = 6
	}
	if config.MaxSteps <= 0 {
		config.MaxSteps = 100_000
	}
	if config.Concurrency <= 0 {
		config.Concurrency = runtime.GOMAXPROCS(0)
	}
	if config.Agent == nil {
		config.Agent = RandomAgent{}
	}
	if config.Clock == nil {
		config.Clock = quartz.NewReal()
	}
	if config.Logger == nil {
		config.Logger = log.New(io.Discard)
	}
	return &Simulator{
		config: config,
		engine: game.NewEngine(
			game.WithClock(config.Clock),
			game.WithLogger(config.Logger.WithPrefix("engine")),
		),
	}
}

// Run plays every game and stops at the first failure.
func (s *Simulator) Run(ctx context.Context) (*Report, error) {
	results := make([]GameResult, s.config.Games)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(s.config.Concurrency)
	for i := range s.config.Games {
		g.Go(func() error {
			res, err := s.playGame(ctx, i)
			if err != nil {
				return err
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	report := &Report{Games: results}
	for _, r := range results {
		report.Hands += r.Hands
		report.Showdowns += r.Showdowns
		report.Rebuys += r.Rebuys
		report.MaxPot = max(report.MaxPot, r.MaxPot)
	}
	return report, nil
}

// playGame runs one game from the first deal until the engine reports End.
func (s *Simulator) playGame(ctx context.Context, index int) (GameResult, error) {
	seed := randutil.Derive(s.config.Seed, index)
	rng := randutil.New(seed)
	logger := s.config.Logger.With("game", index)

	opts := append(slices.Clone(s.config.GameOptions), game.WithSeed(seed))
	g := game.NewGame(fmt.Sprintf("sim-%d", index), opts...)
	for i := range s.config.Players {
		id := fmt.Sprintf("p%d", i+1)
		if err := g.AddPlayer(id, fmt.Sprintf("Bot %d", i+1), i); err != nil {
			return GameResult{}, err
		}
	}

	result := GameResult{ID: g.ID, Seed: seed}
	res := game.Result{Game: g}
	var action *game.Action
	for step := 0; step < s.config.MaxSteps; step++ {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		res = s.engine.AdvanceHand(res.Game, action)
		action = nil
		if res.Err != nil {
			return result, fmt.Errorf("game %s step %d: %w", g.ID, step, res.Err)
		}

		switch res.Directive {
		case game.HandPayout, game.ShortHandPayout:
			if err := s.checkHand(res.Game, &result, res.Directive == game.HandPayout); err != nil {
				return result, err
			}
		case game.RebuyOption:
			next, err := s.offerRebuy(res.Game, res.ActingPlayerID)
			if err != nil {
				return result, err
			}
			res.Game = next
		case game.EliminatePlayer:
			logger.Debug("eliminated", "player", res.ActingPlayerID, "hand", len(res.Game.Hands))
		case game.End:
			return s.finish(res.Game, result)
		default:
			if res.ActingPlayerID != "" {
				a := s.config.Agent.Act(res.ActingPlayerID, res.Actions, rng)
				action = &a
			}
		}
	}
	return result, fmt.Errorf("%w: game %s after %d steps", ErrStepLimit, g.ID, s.config.MaxSteps)
}

func (s *Simulator) checkHand(g *game.Game, result *GameResult, showdown bool) error {
	h := g.LastHand()
	if err := game.ValidateHand(h); err != nil {
		var paid int64
		for _, p := range h.Payouts {
			paid += p.Amount
		}
		s.config.Logger.Error("sum < 0", "hand", h.ID, "seed", h.Seed, "pot", h.Pot(), "paid", paid)
		return fmt.Errorf("game %s: %w", g.ID, err)
	}

	result.Hands++
	if showdown {
		result.Showdowns++
	}
	result.MaxPot = max(result.MaxPot, h.Pot())

	if s.config.OnHand != nil {
		if err := s.config.OnHand(g, h); err != nil {
			return fmt.Errorf("hand %s: %w", h.ID, err)
		}
	}
	return nil
}

// offerRebuy buys the player back in for the game's buy-in until they have
// used MaxRebuys, and declines after that.
func (s *Simulator) offerRebuy(g *game.Game, playerID string) (*game.Game, error) {
	now := s.config.Clock.Now().UnixMilli()
	if p := g.Players[playerID]; p != nil && len(p.Rebuys) < s.config.MaxRebuys {
		return game.Rebuy(g, playerID, g.BuyIn, now)
	}
	return game.DeclineRebuy(g, playerID, now)
}

func (s *Simulator) finish(g *game.Game, result GameResult) (GameResult, error) {
	var stacks, contributed int64
	best := int64(-1)
	for _, p := range g.SortedPlayers() {
		stacks += p.Stack
		contributed += p.Contributed
		result.Rebuys += len(p.Rebuys)
		result.Players = append(result.Players, *p)
		if p.Stack > best {
			best, result.Winner = p.Stack, p.ID
		}
	}
	if stacks != contributed {
		return result, fmt.Errorf("%w: game %s holds %d of %d", ErrChipsNotConserved, g.ID, stacks, contributed)
	}

	s.config.Logger.Debug("game finished", "game", g.ID, "hands", result.Hands, "winner", result.Winner)
	return result, nil
}
