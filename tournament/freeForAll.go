package tournament

import (
	"fmt"
	"sort"

	"github.com/openbracket/competition/models"
	"github.com/openbracket/competition/points"
)

// FreeForAll provides the logic for multi-participant rounds with
// configurable advancement: each round splits the survivors into
// fixed-size groups, the top ranks of every group advance, and the
// field shrinks until a single final match decides the champion.
type FreeForAll struct {
	base
}

func NewFreeForAll(opts models.Options) *FreeForAll {
	if opts.ParticipantsPerMatch < 2 {
		opts.ParticipantsPerMatch = 2
	}
	return &FreeForAll{newBase(models.TournamentType_FREE_FOR_ALL, opts)}
}

func restoreFreeForAll(state models.State) (*FreeForAll, error) {
	if state.Started && state.FreeForAll == nil {
		return nil, fmt.Errorf("free for all state missing rounds: %w", models.ErrInvalidOptions)
	}
	return &FreeForAll{restoreBase(state)}, nil
}

func (f *FreeForAll) rounds() *models.FreeForAllState {
	return f.st.FreeForAll
}

// threshold is the highest rank that still advances from a match
func (f *FreeForAll) threshold() int {
	if f.st.Options.WinnerOnly || f.st.Options.AdvancingPerMatch < 1 {
		return 1
	}
	return f.st.Options.AdvancingPerMatch
}

func (f *FreeForAll) Start() error {
	if err := f.startCheck(f.st.Options.ParticipantsPerMatch); err != nil {
		return err
	}
	f.st.FreeForAll = &models.FreeForAllState{}
	ids := make([]string, 0, len(f.st.Participants))
	for _, p := range bySeed(f.st.Participants) {
		ids = append(ids, p.ID)
	}
	f.makeRound(ids)
	return nil
}

// Reset clears all rounds and the eliminated set and regenerates the
// first round from the full roster
func (f *FreeForAll) Reset() error {
	if !f.st.Started {
		return models.ErrNotStarted
	}
	f.st.FreeForAll = &models.FreeForAllState{}
	f.st.Completed = false
	ids := make([]string, 0, len(f.st.Participants))
	for _, p := range bySeed(f.st.Participants) {
		ids = append(ids, p.ID)
	}
	f.makeRound(ids)
	f.touch()
	return nil
}

// makeRound splits ids into groups of the configured size. A lone
// leftover gets a single-entry bye match pre-completed with rank 1.
func (f *FreeForAll) makeRound(ids []string) {
	ffa := f.rounds()
	ffa.CurrentRound++
	round := ffa.CurrentRound
	var matches []models.Match
	for i, group := range chunkIDs(ids, f.st.Options.ParticipantsPerMatch) {
		m := newMatch(round, i+1)
		m.Participants = append([]string(nil), group...)
		if len(group) == 1 {
			complete(&m, models.MatchResult{
				Winner:  group[0],
				Ranking: []models.Placement{{ParticipantID: group[0], Position: 1}},
			})
		}
		matches = append(matches, m)
	}
	ffa.Rounds = append(ffa.Rounds, matches)
}

func (f *FreeForAll) findMatch(id string) *models.Match {
	ffa := f.rounds()
	for r := range ffa.Rounds {
		for i := range ffa.Rounds[r] {
			if ffa.Rounds[r][i].ID == id {
				return &ffa.Rounds[r][i]
			}
		}
	}
	return nil
}

// RecordMatchResult requires a full contiguous 1..K ranking. Everyone
// ranked below the advancement threshold is eliminated; once the round
// completes the advancing ids seed the next round, or a single final
// match, or end the tournament.
func (f *FreeForAll) RecordMatchResult(matchID string, result models.MatchResult) error {
	if err := f.recordCheck(); err != nil {
		return err
	}
	m := f.findMatch(matchID)
	if m == nil {
		return fmt.Errorf("match %s: %w", matchID, models.ErrMatchNotFound)
	}
	if m.Status == models.Status_COMPLETED {
		return fmt.Errorf("match %s: %w", matchID, models.ErrMatchCompleted)
	}
	if err := models.ValidateRanking(result.Ranking, m.Participants); err != nil {
		return fmt.Errorf("match %s needs a full ranking: %w", matchID, err)
	}
	for _, pl := range result.Ranking {
		if pl.Position == 1 {
			result.Winner = pl.ParticipantID
		}
	}
	complete(m, result)
	f.markEliminated(m)

	ffa := f.rounds()
	current := ffa.Rounds[ffa.CurrentRound-1]
	for i := range current {
		if current[i].Status != models.Status_COMPLETED {
			f.touch()
			return nil
		}
	}
	f.finishRound(current)
	f.touch()
	return nil
}

func (f *FreeForAll) markEliminated(m *models.Match) {
	ffa := f.rounds()
	for _, pl := range m.Result.Ranking {
		if pl.Position <= f.threshold() {
			continue
		}
		already := false
		for _, id := range ffa.Eliminated {
			if id == pl.ParticipantID {
				already = true
				break
			}
		}
		if !already {
			ffa.Eliminated = append(ffa.Eliminated, pl.ParticipantID)
		}
	}
}

// finishRound collects the advancing ids of a completed round and
// either ends the tournament, generates the final match, or generates
// the next full round
func (f *FreeForAll) finishRound(current []models.Match) {
	ffa := f.rounds()
	if f.isFinalRound(ffa.CurrentRound) {
		f.st.Completed = true
		return
	}
	var advancing []string
	for i := range current {
		for _, pl := range current[i].Result.Ranking {
			if pl.Position <= f.threshold() {
				advancing = append(advancing, pl.ParticipantID)
			}
		}
	}
	if len(advancing) < 2 {
		f.st.Completed = true
		return
	}
	f.makeRound(advancing)
}

// isFinalRound reports whether the round was generated as the single
// deciding match. Only rounds after the first can be final: a round
// built from advancers that fit one match always has exactly one.
func (f *FreeForAll) isFinalRound(round int) bool {
	ffa := f.rounds()
	return round > 1 && len(ffa.Rounds[round-1]) == 1
}

func (f *FreeForAll) GetCurrentMatches() []models.Match {
	if !f.st.Started {
		return nil
	}
	ffa := f.rounds()
	var out []models.Match
	for r := range ffa.Rounds {
		for i := range ffa.Rounds[r] {
			m := &ffa.Rounds[r][i]
			if m.Status != models.Status_COMPLETED && m.IsPlayable() {
				out = append(out, *cloneForOutput(m))
			}
		}
	}
	return out
}

// champion is the participant who survived undefeated to the final
// round's single match, or the lone advancer when the field collapsed
// below two
func (f *FreeForAll) champion() string {
	if !f.st.Completed {
		return ""
	}
	ffa := f.rounds()
	last := ffa.Rounds[ffa.CurrentRound-1]
	if f.isFinalRound(ffa.CurrentRound) {
		return last[0].Result.Winner
	}
	var advancing []string
	for i := range last {
		for _, pl := range last[i].Result.Ranking {
			if pl.Position <= f.threshold() {
				advancing = append(advancing, pl.ParticipantID)
			}
		}
	}
	if len(advancing) == 1 {
		return advancing[0]
	}
	return ""
}

func (f *FreeForAll) GetStandings() []models.Standing {
	byID := map[string]*models.Standing{}
	standings := make([]models.Standing, 0, len(f.st.Participants))
	for _, p := range f.st.Participants {
		standings = append(standings, models.Standing{ParticipantID: p.ID, Name: p.Name})
	}
	for i := range standings {
		byID[standings[i].ParticipantID] = &standings[i]
	}

	championID := ""
	if f.st.Started {
		championID = f.champion()
		ffa := f.rounds()
		var table []float64
		for _, round := range ffa.Rounds {
			for i := range round {
				m := &round[i]
				for _, id := range m.Participants {
					st := byID[id]
					if m.Round > st.RoundsSurvived {
						st.RoundsSurvived = m.Round
					}
				}
				if m.Status != models.Status_COMPLETED || m.Result == nil {
					continue
				}
				if f.st.Options.PointsSystem != "" {
					table, _ = points.GeneratePointsArray(f.st.Options.PointsSystem, f.st.Options.CustomPoints, len(m.Participants))
				}
				for _, id := range m.Participants {
					byID[id].MatchesPlayed++
				}
				for _, pl := range m.Result.Ranking {
					st := byID[pl.ParticipantID]
					if pl.Position == 1 {
						st.Wins++
					}
					if pl.Position > f.threshold() {
						st.Losses++
					}
					if table != nil {
						st.Points += points.GetPointsForPlacement(table, pl.Position)
					}
				}
			}
		}
		for _, id := range ffa.Eliminated {
			byID[id].Eliminated = true
		}
	}

	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if (a.ParticipantID == championID) != (b.ParticipantID == championID) {
			return a.ParticipantID == championID
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.RoundsSurvived != b.RoundsSurvived {
			return a.RoundsSurvived > b.RoundsSurvived
		}
		return a.Name < b.Name
	})
	shareRanks(standings, func(a, b models.Standing) bool {
		if a.ParticipantID == championID || b.ParticipantID == championID {
			return false
		}
		return a.Wins == b.Wins && a.RoundsSurvived == b.RoundsSurvived
	})
	return standings
}
