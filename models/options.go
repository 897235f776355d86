package models

// RankingMode selects how round robin standings are ordered
type RankingMode string

const (
	RankingMode_WINS   RankingMode = "wins"
	RankingMode_POINTS RankingMode = "points"
)

// Options holds the per-format configuration a tournament is created
// from. Fields outside the common block only apply to their format and
// are ignored elsewhere.
type Options struct {
	Type         TournamentType `json:"type"`
	Name         string         `json:"name"`
	Participants []string       `json:"participants,omitempty"`

	// Single and double elimination
	ThirdPlaceMatch bool `json:"thirdPlaceMatch,omitempty"` // single elimination only
	SplitStart      bool `json:"splitStart,omitempty"`      // double elimination only

	// Round robin
	Rounds          int         `json:"rounds,omitempty"` // repeat rounds, 1-3
	RankingMode     RankingMode `json:"rankingMode,omitempty"`
	MultiPlayer     bool        `json:"multiPlayer,omitempty"`
	PlayersPerMatch int         `json:"playersPerMatch,omitempty"`

	// Swiss
	MaxRounds    int     `json:"maxRounds,omitempty"` // 0 means ceil(log2 N)
	PointsPerWin float64 `json:"pointsPerWin,omitempty"`
	PointsPerTie float64 `json:"pointsPerTie,omitempty"`
	PointsPerBye float64 `json:"pointsPerBye,omitempty"`

	// Free for all
	ParticipantsPerMatch int  `json:"participantsPerMatch,omitempty"`
	WinnerOnly           bool `json:"winnerOnly,omitempty"`
	AdvancingPerMatch    int  `json:"advancingPerMatch,omitempty"` // top-N when not winner-only

	// Points system, interpreted by the points package
	PointsSystem string    `json:"pointsSystem,omitempty"`
	CustomPoints []float64 `json:"customPoints,omitempty"`
}
