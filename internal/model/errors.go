package model

import "errors"

// Common errors used across the application. A rejected command surfaces
// exactly one of these to the invoking actor and leaves session state
// untouched.
var (
	// Session errors
	ErrSessionNotFound = errors.New("session not found")
	ErrPlayerNotFound  = errors.New("player not found")
	ErrNameTaken       = errors.New("display name is already connected")
	ErrHostExists      = errors.New("session already has a host")

	// Authorization errors
	ErrNotHost = errors.New("only the host can perform this action")

	// Phase errors
	ErrWrongPhase       = errors.New("command not valid in current phase")
	ErrNoActiveQuestion = errors.New("no question is in play")

	// Turn errors
	ErrNotYourTurn   = errors.New("not this player's turn")
	ErrAlreadyFolded = errors.New("player has already folded")
	ErrPlayerAllIn   = errors.New("player is all-in and cannot act")

	// Funds errors
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrRaiseTooSmall       = errors.New("raise is below the minimum raise")

	// Validation errors
	ErrInvalidName   = errors.New("invalid display name")
	ErrInvalidAmount = errors.New("invalid amount")
	ErrInvalidAnswer = errors.New("invalid answer")
	ErrInvalidAction = errors.New("unknown action")

	// Data errors
	ErrNoQuestions         = errors.New("no questions available")
	ErrNoHintsRemaining    = errors.New("no more hints available")
	ErrInsufficientPlayers = errors.New("not enough participants to start")
	ErrNoContenders        = errors.New("no non-folded players for showdown")
)
