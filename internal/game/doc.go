// Package game implements the Texas Hold'em hand engine.
//
// The engine is a single transition function. An orchestrator calls
// Engine.AdvanceHand with the current Game and, when a player has decided,
// the Action they took. The engine never mutates its input: it returns a new
// Game together with a Directive describing what happened and whose turn it is.
//
// # Basic Usage
//
//	e := game.NewEngine(game.WithLogger(logger))
//	g := game.NewGame("table-1", game.WithBlinds(game.Blinds{Starting: 20}), game.WithSeed(42))
//	_ = g.AddPlayer("alice", "Alice", 0)
//	_ = g.AddPlayer("bob", "Bob", 1)
//
//	res := e.AdvanceHand(g, nil) // deals the first hand
//	for res.Directive != game.End {
//	    var a *game.Action
//	    if res.ActingPlayerID != "" {
//	        choice := res.Actions[0] // pick one of the legal templates
//	        a = &choice
//	    }
//	    res = e.AdvanceHand(res.Game, a)
//	}
//
// Calling AdvanceHand with no action while a player is pending returns the
// same state, which makes it safe to poll and to retry.
//
// # Determinism
//
// Every hand stores its own seed, derived from Game.Seed and the hand number.
// The deck is rebuilt from that seed whenever cards are needed, so replaying
// the same actions against the same game always produces the same hands.
// Timestamps come from an injected quartz.Clock.
//
// # Pots
//
// CalculateHandWinners splits a hand's contributions into a main pot and side
// pots by contribution level and awards each to the best eligible hand. All
// chip arithmetic is integral; odd chips from split pots go one at a time to
// the tied winners in seat order starting left of the dealer.
package game
