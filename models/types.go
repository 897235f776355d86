package models

// Participant is a single entrant in a tournament. The seed is 1-based
// and re-assigned contiguously whenever the roster changes before start.
type Participant struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Seed     int    `json:"seed"`
	NonHuman bool   `json:"nonHuman,omitempty"`
}

// Match is a single competitive event. A match transitions from
// pending to completed exactly once; a match with fewer than 2
// participants is not playable (it is either unfilled or a bye).
type Match struct {
	ID           string       `json:"id"`
	Status       Status       `json:"status"`
	Participants []string     `json:"participants"`
	Round        int          `json:"round,omitempty"`
	MatchNumber  int          `json:"matchNumber,omitempty"`
	Result       *MatchResult `json:"result,omitempty"`
}

// IsPlayable reports whether the match has enough participants to be played
func (m *Match) IsPlayable() bool {
	return len(m.Participants) >= 2
}

// HasParticipant reports whether the given participant is part of the match
func (m *Match) HasParticipant(id string) bool {
	for _, p := range m.Participants {
		if p == id {
			return true
		}
	}
	return false
}

// Placement is one entry of a full match ranking
type Placement struct {
	ParticipantID string `json:"participantId"`
	Position      int    `json:"position"`
}

// MatchResult is the recorded outcome of a match. Exactly one shape is
// used per format: a winner id for head-to-head play, a per-participant
// score map, or a full 1..K ranking for multi-participant matches.
type MatchResult struct {
	Winner  string         `json:"winner,omitempty"`
	Loser   string         `json:"loser,omitempty"`
	Tie     bool           `json:"tie,omitempty"`
	Scores  map[string]int `json:"scores,omitempty"`
	Ranking []Placement    `json:"ranking,omitempty"`
}

// Standing is a computed, never persisted, ranking summary for one
// participant. Rank 0 means unranked.
type Standing struct {
	ParticipantID  string  `json:"participantId"`
	Name           string  `json:"name"`
	Rank           int     `json:"rank"`
	Wins           int     `json:"wins"`
	Losses         int     `json:"losses"`
	Ties           int     `json:"ties"`
	Points         float64 `json:"points,omitempty"`
	GamesWon       int     `json:"gamesWon,omitempty"`
	GamesLost      int     `json:"gamesLost,omitempty"`
	MatchesPlayed  int     `json:"matchesPlayed"`
	Eliminated     bool    `json:"eliminated,omitempty"`
	RoundsSurvived int     `json:"roundsSurvived,omitempty"`
}
