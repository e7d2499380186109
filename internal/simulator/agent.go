package simulator

import (
	"fmt"
	"math/rand/v2"

	"github.com/pradprat/poker-in-place/internal/game"
)

// Agent chooses an action from the legal templates offered by the engine.
type Agent interface {
	Act(playerID string, legal []game.Action, rng *rand.Rand) game.Action
}

// NewAgent returns the agent registered under name.
func NewAgent(name string) (Agent, error) {
	switch name {
	case "call":
		return CallAgent{}, nil
	case "rand":
		return RandomAgent{}, nil
	case "maniac":
		return ManiacAgent{}, nil
	default:
		return nil, fmt.Errorf("unknown agent %q", name)
	}
}

// CallAgent checks when it can and calls otherwise.
type CallAgent struct{}

func (CallAgent) Act(playerID string, legal []game.Action, _ *rand.Rand) game.Action {
	if a, ok := find(legal, game.Check); ok {
		return take(playerID, a)
	}
	if a, ok := find(legal, game.Call); ok {
		return take(playerID, a)
	}
	return game.NewAction(playerID, game.Fold, 0)
}

// RandomAgent folds, calls and raises at random, sizing raises anywhere
// between the minimum and all-in.
type RandomAgent struct{}

func (RandomAgent) Act(playerID string, legal []game.Action, rng *rand.Rand) game.Action {
	raise, canRaise := raiseTemplate(legal)
	allIn, canShove := find(legal, game.AllIn)

	switch roll := rng.IntN(100); {
	case roll < 15:
		if _, ok := find(legal, game.Check); !ok {
			return game.NewAction(playerID, game.Fold, 0)
		}
	case roll < 30 && canRaise:
		total := raise.Total
		if canShove && allIn.Total > raise.Total {
			total += rng.Int64N(allIn.Total - raise.Total)
		}
		return game.NewAction(playerID, raise.Type, total)
	case roll < 33 && canShove:
		return take(playerID, allIn)
	}
	return CallAgent{}.Act(playerID, legal, rng)
}

// ManiacAgent raises the minimum whenever it can.
type ManiacAgent struct{}

func (ManiacAgent) Act(playerID string, legal []game.Action, rng *rand.Rand) game.Action {
	if a, ok := raiseTemplate(legal); ok {
		return take(playerID, a)
	}
	if a, ok := find(legal, game.AllIn); ok && a.Conforming {
		return take(playerID, a)
	}
	return CallAgent{}.Act(playerID, legal, rng)
}

func find(legal []game.Action, t game.ActionType) (game.Action, bool) {
	for _, a := range legal {
		if a.Type == t {
			return a, true
		}
	}
	return game.Action{}, false
}

func raiseTemplate(legal []game.Action) (game.Action, bool) {
	if a, ok := find(legal, game.Raise); ok {
		return a, true
	}
	return find(legal, game.Bet)
}

func take(playerID string, template game.Action) game.Action {
	return game.NewAction(playerID, template.Type, template.Total)
}
