package models

// Status is the basic status for tournaments and matches
type Status int32

const (
	Status_PENDING    Status = 0
	Status_INPROGRESS Status = 1
	Status_COMPLETED  Status = 2
)

// TournamentType is used to discern between the supported competition formats
type TournamentType int32

const (
	TournamentType_SINGLE_ELIMINATION TournamentType = 0
	TournamentType_DOUBLE_ELIMINATION TournamentType = 1
	TournamentType_ROUND_ROBIN        TournamentType = 2
	TournamentType_SWISS              TournamentType = 3
	TournamentType_FREE_FOR_ALL       TournamentType = 4
)

// String returns the display name of a tournament type
func (t TournamentType) String() string {
	switch t {
	case TournamentType_SINGLE_ELIMINATION:
		return "single elimination"
	case TournamentType_DOUBLE_ELIMINATION:
		return "double elimination"
	case TournamentType_ROUND_ROBIN:
		return "round robin"
	case TournamentType_SWISS:
		return "swiss"
	case TournamentType_FREE_FOR_ALL:
		return "free for all"
	}
	return "unknown"
}

// Engine runs a single tournament of one format. An engine owns its
// structural state exclusively; every method completes or fails
// synchronously, and standings are never cached across mutations.
type Engine interface {
	GetID() string
	GetName() string
	GetType() TournamentType
	GetParticipants() []Participant

	// Roster management, only allowed before Start
	AddParticipant(name string) (Participant, error)
	RemoveParticipant(id string) error

	// Start freezes the roster and generates the initial structure
	Start() error
	IsStarted() bool
	IsCompleted() bool

	// RecordMatchResult completes the match and advances the structure
	RecordMatchResult(matchID string, result MatchResult) error

	// GetCurrentMatches returns matches that are playable now and not completed
	GetCurrentMatches() []Match

	// GetStandings recomputes standings from the full match history
	GetStandings() []Standing

	// Reset clears all recorded results and regenerates the structure
	Reset() error

	// Export produces a snapshot that round-trips through Restore
	Export() State
}

// StorageEngine is a backing that stores tournament state documents
// keyed by tournament id. Values are whole documents, never partial
// updates, and the store never interprets bracket internals.
type StorageEngine interface {
	SaveTournament(state State) error
	GetTournament(id string) (State, error)
	GetTournaments() ([]State, error)
	DeleteTournament(id string) error
	Close() error
}
