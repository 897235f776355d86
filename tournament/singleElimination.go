package tournament

import (
	"fmt"
	"sort"

	"github.com/openbracket/competition/models"
)

// SingleElimination provides the logic for running a knockout bracket
// with byes and an optional 3rd place match.
type SingleElimination struct {
	base
}

// NewSingleElimination creates a new single elimination tournament in
// the not-started state
func NewSingleElimination(opts models.Options) *SingleElimination {
	return &SingleElimination{newBase(models.TournamentType_SINGLE_ELIMINATION, opts)}
}

func restoreSingleElimination(state models.State) (*SingleElimination, error) {
	if state.Started && state.SingleElimination == nil {
		return nil, fmt.Errorf("single elimination state missing bracket: %w", models.ErrInvalidOptions)
	}
	return &SingleElimination{restoreBase(state)}, nil
}

func (s *SingleElimination) bracket() *models.SingleEliminationState {
	return s.st.SingleElimination
}

func (s *SingleElimination) Start() error {
	if err := s.startCheck(2); err != nil {
		return err
	}
	s.generate()
	return nil
}

func (s *SingleElimination) generate() {
	s.st.SingleElimination = &models.SingleEliminationState{
		Matches: buildEliminationBracket(s.st.Participants),
	}
}

// Reset regenerates a fresh bracket, clearing all recorded results
func (s *SingleElimination) Reset() error {
	if !s.st.Started {
		return models.ErrNotStarted
	}
	s.generate()
	s.st.Completed = false
	s.touch()
	return nil
}

func (s *SingleElimination) findMatch(id string) *models.Match {
	br := s.bracket()
	for i := range br.Matches {
		if br.Matches[i].ID == id {
			return &br.Matches[i]
		}
	}
	if br.ThirdPlace != nil && br.ThirdPlace.ID == id {
		return br.ThirdPlace
	}
	return nil
}

func (s *SingleElimination) RecordMatchResult(matchID string, result models.MatchResult) error {
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
	result, err := winnerResult(m, result)
	if err != nil {
		return err
	}
	complete(m, result)

	br := s.bracket()
	total := len(br.Matches)
	final := total - 1

	if m != br.ThirdPlace {
		idx := -1
		for i := range br.Matches {
			if &br.Matches[i] == m {
				idx = i
				break
			}
		}
		if idx < final {
			target := &br.Matches[advanceIndex(total, idx)]
			target.Participants = append(target.Participants, result.Winner)
		}
	}

	s.maybeBuildThirdPlace()
	s.st.Completed = s.bracketComplete()
	s.touch()
	return nil
}

// semifinalFeeders returns the semifinal matches that can produce a
// loser. A round 1 semifinal left empty by a bye never fills, so it
// is excluded rather than awaited.
func (s *SingleElimination) semifinalFeeders() []*models.Match {
	br := s.bracket()
	total := len(br.Matches)
	if total < 3 {
		return nil
	}
	var semis []*models.Match
	for _, m := range []*models.Match{&br.Matches[total-3], &br.Matches[total-2]} {
		if m.Round == 1 && !m.IsPlayable() {
			continue
		}
		semis = append(semis, m)
	}
	return semis
}

// maybeBuildThirdPlace builds the 3rd place match lazily from the two
// semifinal losers once both semifinals are complete. With fewer than
// two semifinal losers available there is nobody to pair and no match
// is built.
func (s *SingleElimination) maybeBuildThirdPlace() {
	br := s.bracket()
	if !s.st.Options.ThirdPlaceMatch || br.ThirdPlace != nil {
		return
	}
	semis := s.semifinalFeeders()
	if len(semis) < 2 {
		return
	}
	var losers []string
	for _, semi := range semis {
		if semi.Status != models.Status_COMPLETED || semi.Result == nil {
			return
		}
		losers = append(losers, semi.Result.Loser)
	}
	total := len(br.Matches)
	tp := newMatch(br.Matches[total-1].Round, total+1)
	tp.Participants = losers
	br.ThirdPlace = &tp
}

func (s *SingleElimination) bracketComplete() bool {
	br := s.bracket()
	if br.Matches[len(br.Matches)-1].Status != models.Status_COMPLETED {
		return false
	}
	if s.st.Options.ThirdPlaceMatch && len(s.semifinalFeeders()) >= 2 {
		return br.ThirdPlace != nil && br.ThirdPlace.Status == models.Status_COMPLETED
	}
	return true
}

func (s *SingleElimination) GetCurrentMatches() []models.Match {
	if !s.st.Started {
		return nil
	}
	br := s.bracket()
	var out []models.Match
	for i := range br.Matches {
		m := &br.Matches[i]
		if m.Status != models.Status_COMPLETED && m.IsPlayable() {
			out = append(out, *cloneForOutput(m))
		}
	}
	if br.ThirdPlace != nil && br.ThirdPlace.Status != models.Status_COMPLETED {
		out = append(out, *cloneForOutput(br.ThirdPlace))
	}
	return out
}

func (s *SingleElimination) GetStandings() []models.Standing {
	standings := make([]models.Standing, 0, len(s.st.Participants))
	wins := map[string]int{}
	losses := map[string]int{}
	played := map[string]int{}
	if s.st.Started {
		for _, m := range s.allCompleted() {
			wins[m.Result.Winner]++
			losses[m.Result.Loser]++
			for _, id := range m.Participants {
				played[id]++
			}
		}
	}

	ranked := s.podium()
	for _, p := range s.st.Participants {
		standings = append(standings, models.Standing{
			ParticipantID: p.ID,
			Name:          p.Name,
			Rank:          ranked[p.ID],
			Wins:          wins[p.ID],
			Losses:        losses[p.ID],
			MatchesPlayed: played[p.ID],
			Eliminated:    losses[p.ID] > 0,
		})
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if (a.Rank == 0) != (b.Rank == 0) {
			return a.Rank != 0
		}
		if a.Rank != b.Rank {
			return a.Rank < b.Rank
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Name < b.Name
	})
	return standings
}

// podium maps participant ids to their final placement: 1 and 2 from
// the final, 3 and 4 from the 3rd place match when present. Everyone
// else stays unranked.
func (s *SingleElimination) podium() map[string]int {
	ranked := map[string]int{}
	if !s.st.Started {
		return ranked
	}
	br := s.bracket()
	final := &br.Matches[len(br.Matches)-1]
	if final.Status == models.Status_COMPLETED {
		ranked[final.Result.Winner] = 1
		ranked[final.Result.Loser] = 2
	}
	if br.ThirdPlace != nil && br.ThirdPlace.Status == models.Status_COMPLETED {
		ranked[br.ThirdPlace.Result.Winner] = 3
		ranked[br.ThirdPlace.Result.Loser] = 4
	}
	return ranked
}

func (s *SingleElimination) allCompleted() []models.Match {
	br := s.bracket()
	var out []models.Match
	for _, m := range br.Matches {
		if m.Status == models.Status_COMPLETED && m.Result != nil {
			out = append(out, m)
		}
	}
	if br.ThirdPlace != nil && br.ThirdPlace.Status == models.Status_COMPLETED {
		out = append(out, *br.ThirdPlace)
	}
	return out
}
