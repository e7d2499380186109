package game

import "errors"

var (
	//lint:ignore ST1005 message is shown to players as is
	ErrNotYourTurn       = errors.New("Not your turn to act")
	ErrInvalidAction     = errors.New("invalid action")
	ErrCannotCheck       = errors.New("cannot check facing a bet")
	ErrNothingToCall     = errors.New("nothing to call")
	ErrBetNotAllowed     = errors.New("cannot bet facing a bet")
	ErrRaiseNotAllowed   = errors.New("betting is not open to this player")
	ErrBetTooSmall       = errors.New("bet below minimum")
	ErrRaiseTooSmall     = errors.New("raise below minimum")
	ErrInsufficientChips = errors.New("insufficient chips")
	ErrInvalidAmount     = errors.New("invalid amount")
	ErrGamePaused        = errors.New("game is paused")
	ErrUnknownPlayer     = errors.New("unknown player")
	ErrDuplicatePlayer   = errors.New("player already seated")
	ErrSeatTaken         = errors.New("seat taken")
	ErrRebuysDisabled    = errors.New("rebuys are not allowed")
	ErrPlayerEliminated  = errors.New("player eliminated")
	ErrHandInProgress    = errors.New("player is in a hand")
	ErrPotMismatch       = errors.New("payouts do not match contributions")
)
