package tournament

import (
	"fmt"

	"github.com/openbracket/competition/models"
	"github.com/openbracket/competition/points"
)

// New creates a fresh engine of the requested format in the
// not-started state. Option values that fail validation are rejected;
// the roster minimum is only enforced by Start.
func New(opts models.Options) (models.Engine, error) {
	if errs := validateFormatOptions(opts); len(errs) > 0 {
		return nil, fmt.Errorf("%w: %s", models.ErrInvalidOptions, errs[0])
	}
	switch opts.Type {
	case models.TournamentType_SINGLE_ELIMINATION:
		return NewSingleElimination(opts), nil
	case models.TournamentType_DOUBLE_ELIMINATION:
		return NewDoubleElimination(opts), nil
	case models.TournamentType_ROUND_ROBIN:
		return NewRoundRobin(opts), nil
	case models.TournamentType_SWISS:
		return NewSwiss(opts), nil
	case models.TournamentType_FREE_FOR_ALL:
		return NewFreeForAll(opts), nil
	}
	return nil, fmt.Errorf("%w: unknown tournament type %d", models.ErrInvalidOptions, opts.Type)
}

// Restore reconstructs an engine from a persisted state document,
// dispatching on the format tag. Derived bookkeeping such as loss
// counters and score tables is rebuilt by replaying the stored match
// results, not re-derived from options alone.
func Restore(state models.State) (models.Engine, error) {
	switch state.Type {
	case models.TournamentType_SINGLE_ELIMINATION:
		return restoreSingleElimination(state)
	case models.TournamentType_DOUBLE_ELIMINATION:
		return restoreDoubleElimination(state)
	case models.TournamentType_ROUND_ROBIN:
		return restoreRoundRobin(state)
	case models.TournamentType_SWISS:
		return restoreSwiss(state)
	case models.TournamentType_FREE_FOR_ALL:
		return restoreFreeForAll(state)
	}
	return nil, fmt.Errorf("%w: unknown tournament type %d", models.ErrInvalidOptions, state.Type)
}

// DefaultOptions returns the baseline configuration for a format
func DefaultOptions(t models.TournamentType) models.Options {
	opts := models.Options{Type: t}
	switch t {
	case models.TournamentType_ROUND_ROBIN:
		opts.Rounds = 1
		opts.RankingMode = models.RankingMode_WINS
		opts.PlayersPerMatch = 2
	case models.TournamentType_SWISS:
		opts.PointsPerWin = 1
		opts.PointsPerTie = 0.5
		opts.PointsPerBye = 1
	case models.TournamentType_FREE_FOR_ALL:
		opts.ParticipantsPerMatch = 4
		opts.WinnerOnly = true
	}
	return opts
}

// ValidateOptions checks a full option set the way a creation dialog
// would and returns human-readable problems; an empty list means valid.
func ValidateOptions(opts models.Options) []string {
	var errs []string
	if opts.Name == "" {
		errs = append(errs, "tournament name must not be empty")
	}
	if len(opts.Participants) < 2 {
		errs = append(errs, "at least 2 participants are required")
	}
	seen := map[string]bool{}
	for _, name := range opts.Participants {
		if name == "" {
			errs = append(errs, "participant names must not be empty")
			continue
		}
		if seen[name] {
			errs = append(errs, fmt.Sprintf("duplicate participant name %q", name))
		}
		seen[name] = true
	}
	errs = append(errs, validateFormatOptions(opts)...)
	errs = append(errs, validateRosterBound(opts)...)
	return errs
}

// validateFormatOptions holds the roster-independent constraints
// shared by New and ValidateOptions
func validateFormatOptions(opts models.Options) []string {
	var errs []string
	switch opts.Type {
	case models.TournamentType_ROUND_ROBIN:
		if opts.Rounds != 0 && (opts.Rounds < 1 || opts.Rounds > 3) {
			errs = append(errs, "round robin rounds must be between 1 and 3")
		}
		if opts.MultiPlayer && opts.PlayersPerMatch < 2 {
			errs = append(errs, "players per match must be at least 2")
		}
	case models.TournamentType_SWISS:
		if opts.PointsPerWin < 0 || opts.PointsPerTie < 0 || opts.PointsPerBye < 0 {
			errs = append(errs, "swiss point values must not be negative")
		}
		if opts.MaxRounds < 0 {
			errs = append(errs, "swiss rounds must not be negative")
		}
	case models.TournamentType_FREE_FOR_ALL:
		if opts.ParticipantsPerMatch != 0 && opts.ParticipantsPerMatch < 2 {
			errs = append(errs, "participants per match must be at least 2")
		}
		if !opts.WinnerOnly && opts.AdvancingPerMatch >= opts.ParticipantsPerMatch && opts.ParticipantsPerMatch >= 2 {
			errs = append(errs, "advancing count must be smaller than participants per match")
		}
	}
	if opts.PointsSystem != "" {
		if _, err := points.GeneratePointsArray(opts.PointsSystem, opts.CustomPoints, 2); err != nil {
			errs = append(errs, err.Error())
		}
	}
	return errs
}

// validateRosterBound holds the constraints that relate option values
// to the proposed roster size
func validateRosterBound(opts models.Options) []string {
	var errs []string
	n := len(opts.Participants)
	if n < 2 {
		return nil
	}
	switch opts.Type {
	case models.TournamentType_ROUND_ROBIN:
		if opts.MultiPlayer && opts.PlayersPerMatch > n {
			errs = append(errs, "players per match must not exceed the number of participants")
		}
	case models.TournamentType_FREE_FOR_ALL:
		if opts.ParticipantsPerMatch > n {
			errs = append(errs, "participants per match must not exceed the number of participants")
		}
	}
	return errs
}
