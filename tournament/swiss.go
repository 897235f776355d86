package tournament

import (
	"fmt"
	"sort"

	"github.com/openbracket/competition/models"
)

// Swiss provides round-by-round pairing driven by running score and
// opponent history. Rounds are generated incrementally: the next round
// only exists once every match of the previous one is recorded.
type Swiss struct {
	base
}

func NewSwiss(opts models.Options) *Swiss {
	if opts.PointsPerWin == 0 {
		opts.PointsPerWin = 1
	}
	return &Swiss{newBase(models.TournamentType_SWISS, opts)}
}

func restoreSwiss(state models.State) (*Swiss, error) {
	if state.Started && state.Swiss == nil {
		return nil, fmt.Errorf("swiss state missing rounds: %w", models.ErrInvalidOptions)
	}
	sw := &Swiss{restoreBase(state)}
	if state.Started {
		// Rebuild the running pairing bookkeeping from the stored match
		// results rather than trusting the snapshot copy
		sw.replayScores()
	}
	return sw, nil
}

func (s *Swiss) rounds() *models.SwissState {
	return s.st.Swiss
}

// maxRounds defaults to ceil(log2 N) when not configured
func (s *Swiss) maxRounds() int {
	if s.st.Options.MaxRounds > 0 {
		return s.st.Options.MaxRounds
	}
	return bracketRounds(len(s.st.Participants))
}

func (s *Swiss) Start() error {
	if err := s.startCheck(2); err != nil {
		return err
	}
	s.st.Swiss = &models.SwissState{Scores: map[string]models.SwissScore{}}
	for _, p := range s.st.Participants {
		s.st.Swiss.Scores[p.ID] = models.SwissScore{}
	}
	s.nextRound()
	return nil
}

// Reset drops all rounds and scores and pairs a fresh first round
func (s *Swiss) Reset() error {
	if !s.st.Started {
		return models.ErrNotStarted
	}
	s.st.Swiss = &models.SwissState{Scores: map[string]models.SwissScore{}}
	for _, p := range s.st.Participants {
		s.st.Swiss.Scores[p.ID] = models.SwissScore{}
	}
	s.st.Completed = false
	s.nextRound()
	s.touch()
	return nil
}

// nextRound pairs the unpaired participant with the best running score
// against the next one they have not already played, falling back to a
// repeat opponent only when every candidate is exhausted. An odd
// participant out receives an automatic bye.
func (s *Swiss) nextRound() {
	sw := s.rounds()
	sw.CurrentRound++
	round := sw.CurrentRound

	unpaired := make([]string, 0, len(s.st.Participants))
	for _, p := range s.st.Participants {
		unpaired = append(unpaired, p.ID)
	}
	sort.SliceStable(unpaired, func(i, j int) bool {
		a, b := sw.Scores[unpaired[i]], sw.Scores[unpaired[j]]
		if a.MatchPoints != b.MatchPoints {
			return a.MatchPoints > b.MatchPoints
		}
		return a.GamePoints > b.GamePoints
	})

	var matches []models.Match
	number := 0
	for len(unpaired) >= 2 {
		top := unpaired[0]
		pick := 1
		for j := 1; j < len(unpaired); j++ {
			if !s.havePlayed(top, unpaired[j]) {
				pick = j
				break
			}
		}
		number++
		m := newMatch(round, number)
		m.Participants = []string{top, unpaired[pick]}
		matches = append(matches, m)
		unpaired = append(unpaired[1:pick:pick], unpaired[pick+1:]...)
	}

	if len(unpaired) == 1 {
		// Automatic bye: a completed match with no opponent awarding
		// the configured bye points
		id := unpaired[0]
		number++
		m := newMatch(round, number)
		m.Participants = []string{id}
		complete(&m, models.MatchResult{Winner: id})
		matches = append(matches, m)
		sc := sw.Scores[id]
		sc.MatchPoints += s.st.Options.PointsPerBye
		sw.Scores[id] = sc
	}

	sw.Rounds = append(sw.Rounds, matches)
}

func (s *Swiss) havePlayed(a, b string) bool {
	for _, opp := range s.rounds().Scores[a].Opponents {
		if opp == b {
			return true
		}
	}
	return false
}

func (s *Swiss) findMatch(id string) *models.Match {
	sw := s.rounds()
	for r := range sw.Rounds {
		for i := range sw.Rounds[r] {
			if sw.Rounds[r][i].ID == id {
				return &sw.Rounds[r][i]
			}
		}
	}
	return nil
}

// RecordMatchResult requires explicit per-participant scores; the
// winner, loser or tie is derived by comparing them
func (s *Swiss) RecordMatchResult(matchID string, result models.MatchResult) error {
	if err := s.recordCheck(); err != nil {
		return err
	}
	m := s.findMatch(matchID)
	if m == nil {
		return fmt.Errorf("match %s: %w", matchID, models.ErrMatchNotFound)
	}
	if m.Status == models.Status_COMPLETED {
		return fmt.Errorf("match %s: %w", matchID, models.ErrMatchCompleted)
	}
	result, err := scoredResult(m, result)
	if err != nil {
		return err
	}
	complete(m, result)
	s.applyScores(m)

	sw := s.rounds()
	done := true
	for i := range sw.Rounds[sw.CurrentRound-1] {
		if sw.Rounds[sw.CurrentRound-1][i].Status != models.Status_COMPLETED {
			done = false
			break
		}
	}
	if done {
		if sw.CurrentRound >= s.maxRounds() {
			s.st.Completed = true
		} else {
			s.nextRound()
		}
	}
	s.touch()
	return nil
}

// applyScores folds one completed match into the running pairing
// bookkeeping: match points per the configured win and tie values,
// game points weighted by the recorded score, and opponent history
func (s *Swiss) applyScores(m *models.Match) {
	sw := s.rounds()
	a, b := m.Participants[0], m.Participants[1]
	sa, sb := sw.Scores[a], sw.Scores[b]

	switch {
	case m.Result.Tie:
		sa.MatchPoints += s.st.Options.PointsPerTie
		sb.MatchPoints += s.st.Options.PointsPerTie
	case m.Result.Winner == a:
		sa.MatchPoints += s.st.Options.PointsPerWin
	default:
		sb.MatchPoints += s.st.Options.PointsPerWin
	}
	sa.GamePoints += float64(m.Result.Scores[a])
	sb.GamePoints += float64(m.Result.Scores[b])
	sa.GamesWon += m.Result.Scores[a]
	sa.GamesLost += m.Result.Scores[b]
	sb.GamesWon += m.Result.Scores[b]
	sb.GamesLost += m.Result.Scores[a]
	sa.Opponents = append(sa.Opponents, b)
	sb.Opponents = append(sb.Opponents, a)

	sw.Scores[a] = sa
	sw.Scores[b] = sb
}

// replayScores reconstructs the score table by replaying every stored
// match result in order
func (s *Swiss) replayScores() {
	sw := s.rounds()
	sw.Scores = map[string]models.SwissScore{}
	for _, p := range s.st.Participants {
		sw.Scores[p.ID] = models.SwissScore{}
	}
	for r := range sw.Rounds {
		for i := range sw.Rounds[r] {
			m := &sw.Rounds[r][i]
			if m.Status != models.Status_COMPLETED || m.Result == nil {
				continue
			}
			if models.IsByeMatch(m) {
				sc := sw.Scores[m.Participants[0]]
				sc.MatchPoints += s.st.Options.PointsPerBye
				sw.Scores[m.Participants[0]] = sc
				continue
			}
			s.applyScores(m)
		}
	}
}

func (s *Swiss) GetCurrentMatches() []models.Match {
	if !s.st.Started {
		return nil
	}
	sw := s.rounds()
	var out []models.Match
	for r := range sw.Rounds {
		for i := range sw.Rounds[r] {
			m := &sw.Rounds[r][i]
			if m.Status != models.Status_COMPLETED && m.IsPlayable() {
				out = append(out, *cloneForOutput(m))
			}
		}
	}
	return out
}

// GetStandings re-derives wins, losses and points from the stored
// match results, independent of the running pairing bookkeeping
func (s *Swiss) GetStandings() []models.Standing {
	byID := map[string]*models.Standing{}
	standings := make([]models.Standing, 0, len(s.st.Participants))
	for _, p := range s.st.Participants {
		standings = append(standings, models.Standing{ParticipantID: p.ID, Name: p.Name})
	}
	for i := range standings {
		byID[standings[i].ParticipantID] = &standings[i]
	}

	if s.st.Started {
		for _, round := range s.rounds().Rounds {
			for i := range round {
				m := &round[i]
				if m.Status != models.Status_COMPLETED || m.Result == nil {
					continue
				}
				if models.IsByeMatch(m) {
					st := byID[m.Participants[0]]
					st.MatchesPlayed++
					st.Points += s.st.Options.PointsPerBye
					continue
				}
				for _, id := range m.Participants {
					byID[id].MatchesPlayed++
					byID[id].GamesWon += m.Result.Scores[id]
				}
				a, b := m.Participants[0], m.Participants[1]
				byID[a].GamesLost += m.Result.Scores[b]
				byID[b].GamesLost += m.Result.Scores[a]
				switch {
				case m.Result.Tie:
					byID[a].Ties++
					byID[b].Ties++
					byID[a].Points += s.st.Options.PointsPerTie
					byID[b].Points += s.st.Options.PointsPerTie
				default:
					byID[m.Result.Winner].Wins++
					byID[m.Result.Winner].Points += s.st.Options.PointsPerWin
					byID[m.Result.Loser].Losses++
				}
			}
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		if a.GamesLost != b.GamesLost {
			return a.GamesLost < b.GamesLost
		}
		return a.Name < b.Name
	})
	shareRanks(standings, func(a, b models.Standing) bool {
		return a.Points == b.Points && a.GamesWon == b.GamesWon && a.GamesLost == b.GamesLost
	})
	return standings
}
