package models

import "errors"

// Sentinel errors for the lifecycle and referential failure taxonomy.
// Engines wrap these with fmt.Errorf("...: %w", ...) so messages stay
// human-readable while callers can still match with errors.Is.
var (
	ErrAlreadyStarted        = errors.New("tournament already started")
	ErrNotStarted            = errors.New("tournament not started")
	ErrAlreadyCompleted      = errors.New("tournament already completed")
	ErrNotEnoughParticipants = errors.New("not enough participants")
	ErrMatchNotFound         = errors.New("match not found")
	ErrMatchCompleted        = errors.New("match already completed")
	ErrMatchNotPlayable      = errors.New("match does not have two participants")
	ErrInvalidResult         = errors.New("invalid match result")
	ErrInvalidOptions        = errors.New("invalid tournament options")
	ErrTournamentNotFound    = errors.New("tournament not found")
)
