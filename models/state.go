package models

import "time"

// StateVersion is the schema version of the persisted tournament document
const StateVersion = 1

// State is the persisted unit for one tournament: the format
// discriminator plus the format-specific structural payload. Exactly
// one of the payload pointers is set, selected by Type.
type State struct {
	Version   int            `json:"version"`
	Type      TournamentType `json:"type"`
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
	Started   bool           `json:"started"`
	Completed bool           `json:"completed"`

	Participants []Participant `json:"participants"`
	Options      Options       `json:"options"`

	SingleElimination *SingleEliminationState `json:"singleElimination,omitempty"`
	DoubleElimination *DoubleEliminationState `json:"doubleElimination,omitempty"`
	RoundRobin        *RoundRobinState        `json:"roundRobin,omitempty"`
	Swiss             *SwissState             `json:"swiss,omitempty"`
	FreeForAll        *FreeForAllState        `json:"freeForAll,omitempty"`
}

// SingleEliminationState is a flat match array of bracket size - 1
// entries plus the optional lazily built 3rd place match.
type SingleEliminationState struct {
	Matches    []Match `json:"matches"`
	ThirdPlace *Match  `json:"thirdPlace,omitempty"`
}

// DoubleEliminationState holds the winners bracket (fixed draw), the
// incrementally built losers bracket, and the grand final pair. Loss
// counters are not persisted; they are replayed from match results.
type DoubleEliminationState struct {
	Winners    []Match `json:"winners"`
	Losers     []Match `json:"losers"`
	GrandFinal *Match  `json:"grandFinal,omitempty"`
	ResetMatch *Match  `json:"resetMatch,omitempty"`
}

type RoundRobinState struct {
	Matches      []Match `json:"matches"`
	CurrentRound int     `json:"currentRound"`
}

// SwissScore is the running pairing bookkeeping for one participant.
// It is persisted because future pairings depend on it; display
// standings are still re-derived from the match history.
type SwissScore struct {
	MatchPoints float64  `json:"matchPoints"`
	GamePoints  float64  `json:"gamePoints"`
	GamesWon    int      `json:"gamesWon"`
	GamesLost   int      `json:"gamesLost"`
	Opponents   []string `json:"opponents,omitempty"`
}

type SwissState struct {
	Rounds       [][]Match             `json:"rounds"`
	CurrentRound int                   `json:"currentRound"`
	Scores       map[string]SwissScore `json:"scores"`
}

type FreeForAllState struct {
	Rounds       [][]Match `json:"rounds"`
	CurrentRound int       `json:"currentRound"`
	Eliminated   []string  `json:"eliminated,omitempty"`
}

// ExportDocument is the file exchange envelope for import/export
// between users. The embedded state is exactly the persisted document.
type ExportDocument struct {
	ExportVersion int       `json:"exportVersion"`
	ExportDate    time.Time `json:"exportDate"`
	State         State     `json:"state"`
}

// Clone returns a deep copy of the state so that no mutable structure
// escapes the owning engine.
func (s State) Clone() State {
	out := s
	out.Participants = append([]Participant(nil), s.Participants...)
	out.Options.Participants = append([]string(nil), s.Options.Participants...)
	out.Options.CustomPoints = append([]float64(nil), s.Options.CustomPoints...)

	if s.SingleElimination != nil {
		se := &SingleEliminationState{Matches: CloneMatches(s.SingleElimination.Matches)}
		se.ThirdPlace = CloneMatch(s.SingleElimination.ThirdPlace)
		out.SingleElimination = se
	}
	if s.DoubleElimination != nil {
		de := &DoubleEliminationState{
			Winners:    CloneMatches(s.DoubleElimination.Winners),
			Losers:     CloneMatches(s.DoubleElimination.Losers),
			GrandFinal: CloneMatch(s.DoubleElimination.GrandFinal),
			ResetMatch: CloneMatch(s.DoubleElimination.ResetMatch),
		}
		out.DoubleElimination = de
	}
	if s.RoundRobin != nil {
		out.RoundRobin = &RoundRobinState{
			Matches:      CloneMatches(s.RoundRobin.Matches),
			CurrentRound: s.RoundRobin.CurrentRound,
		}
	}
	if s.Swiss != nil {
		sw := &SwissState{CurrentRound: s.Swiss.CurrentRound}
		for _, round := range s.Swiss.Rounds {
			sw.Rounds = append(sw.Rounds, CloneMatches(round))
		}
		if s.Swiss.Scores != nil {
			sw.Scores = make(map[string]SwissScore, len(s.Swiss.Scores))
			for id, sc := range s.Swiss.Scores {
				sc.Opponents = append([]string(nil), sc.Opponents...)
				sw.Scores[id] = sc
			}
		}
		out.Swiss = sw
	}
	if s.FreeForAll != nil {
		ffa := &FreeForAllState{
			CurrentRound: s.FreeForAll.CurrentRound,
			Eliminated:   append([]string(nil), s.FreeForAll.Eliminated...),
		}
		for _, round := range s.FreeForAll.Rounds {
			ffa.Rounds = append(ffa.Rounds, CloneMatches(round))
		}
		out.FreeForAll = ffa
	}
	return out
}

func CloneMatch(m *Match) *Match {
	if m == nil {
		return nil
	}
	c := *m
	c.Participants = append([]string(nil), m.Participants...)
	if m.Result != nil {
		r := *m.Result
		r.Ranking = append([]Placement(nil), m.Result.Ranking...)
		if m.Result.Scores != nil {
			r.Scores = make(map[string]int, len(m.Result.Scores))
			for id, sc := range m.Result.Scores {
				r.Scores[id] = sc
			}
		}
		c.Result = &r
	}
	return &c
}

func CloneMatches(ms []Match) []Match {
	if ms == nil {
		return nil
	}
	out := make([]Match, len(ms))
	for i := range ms {
		out[i] = *CloneMatch(&ms[i])
	}
	return out
}
