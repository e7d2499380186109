package game

// ActionType is a player's decision.
type ActionType string

const (
	Call  ActionType = "call"
	Check ActionType = "check"
	Fold  ActionType = "fold"
	Raise ActionType = "raise"
	Bet   ActionType = "bet"
	AllIn ActionType = "all-in"
)

// Action is one decision recorded in a round.
type Action struct {
	PlayerID string     `json:"playerId"`
	Type     ActionType `json:"type"`

	// Contribution is what this action added to the pot. Total is the
	// player's commitment on the street after the action and Raise is how
	// far Total exceeds the previous highest commitment.
	Contribution int64 `json:"contribution"`
	Total        int64 `json:"total"`
	Raise        int64 `json:"raise"`

	// Voluntary is false for blinds and for actions taken on a player's
	// behalf, such as a fold on timeout.
	Voluntary  bool  `json:"voluntary"`
	AllIn      bool  `json:"allIn"`
	Conforming bool  `json:"conforming"`
	Timestamp  int64 `json:"timestamp"`
}

// NewAction returns a player's decision. total is the street commitment for a
// bet or raise and is ignored by the other action types.
func NewAction(playerID string, t ActionType, total int64) Action {
	return Action{PlayerID: playerID, Type: t, Total: total, Voluntary: true}
}

// ForcedAction returns an action the orchestrator takes on a player's behalf.
// Only check, call and fold can be forced.
func ForcedAction(playerID string, t ActionType) Action {
	return Action{PlayerID: playerID, Type: t}
}

// blind reports whether a was posted as a blind rather than decided.
func (a Action) blind() bool {
	return !a.Voluntary && (a.Type == Bet || a.Type == Raise)
}
