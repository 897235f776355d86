package tournament

import (
	"fmt"
	"sort"

	"github.com/openbracket/competition/models"
	"github.com/openbracket/competition/points"
)

// RoundRobin provides the logic for tournaments where every
// participant plays every other participant, once per configured
// repeat round. The optional multi-player mode partitions the field
// into rotated fixed-size groups per round instead of pairs.
type RoundRobin struct {
	base
}

func NewRoundRobin(opts models.Options) *RoundRobin {
	if opts.Rounds == 0 {
		opts.Rounds = 1
	}
	if opts.RankingMode == "" {
		opts.RankingMode = models.RankingMode_WINS
	}
	return &RoundRobin{newBase(models.TournamentType_ROUND_ROBIN, opts)}
}

func restoreRoundRobin(state models.State) (*RoundRobin, error) {
	if state.Started && state.RoundRobin == nil {
		return nil, fmt.Errorf("round robin state missing schedule: %w", models.ErrInvalidOptions)
	}
	return &RoundRobin{restoreBase(state)}, nil
}

func (c *RoundRobin) schedule() *models.RoundRobinState {
	return c.st.RoundRobin
}

func (c *RoundRobin) Start() error {
	min := 2
	if c.st.Options.MultiPlayer && c.st.Options.PlayersPerMatch > min {
		min = c.st.Options.PlayersPerMatch
	}
	if err := c.startCheck(min); err != nil {
		return err
	}
	c.generate()
	return nil
}

func (c *RoundRobin) generate() {
	rr := &models.RoundRobinState{CurrentRound: 1}
	if c.st.Options.MultiPlayer {
		rr.Matches = c.generateGroups()
	} else {
		rr.Matches = c.generatePairs()
	}
	c.st.RoundRobin = rr
}

// generatePairs schedules one match per unordered pair of participants
// for every repeat round
func (c *RoundRobin) generatePairs() []models.Match {
	var matches []models.Match
	number := 0
	for r := 1; r <= c.st.Options.Rounds; r++ {
		for i := 0; i < len(c.st.Participants); i++ {
			for j := i + 1; j < len(c.st.Participants); j++ {
				number++
				m := newMatch(r, number)
				m.Participants = []string{c.st.Participants[i].ID, c.st.Participants[j].ID}
				matches = append(matches, m)
			}
		}
	}
	return matches
}

// generateGroups partitions the field into fixed-size groups per
// round. The grouping is rotated each round by a cyclic offset of
// (round-1) times half the field size, counting rounds from zero so
// the first round keeps roster order; the offset scheme is heuristic,
// not a proven balanced design.
func (c *RoundRobin) generateGroups() []models.Match {
	n := len(c.st.Participants)
	size := c.st.Options.PlayersPerMatch
	var matches []models.Match
	number := 0
	for r := 1; r <= c.st.Options.Rounds; r++ {
		offset := (r - 1) * (n / 2) % n
		rotated := make([]string, n)
		for i := range rotated {
			rotated[i] = c.st.Participants[(i+offset)%n].ID
		}
		groups := chunkIDs(rotated, size)
		// a lone leftover joins the previous group
		if len(groups) > 1 && len(groups[len(groups)-1]) == 1 {
			lone := groups[len(groups)-1][0]
			groups = groups[:len(groups)-1]
			groups[len(groups)-1] = append(append([]string(nil), groups[len(groups)-1]...), lone)
		}
		for _, g := range groups {
			number++
			m := newMatch(r, number)
			m.Participants = append([]string(nil), g...)
			matches = append(matches, m)
		}
	}
	return matches
}

// Reset regenerates the full schedule, clearing all recorded results
func (c *RoundRobin) Reset() error {
	if !c.st.Started {
		return models.ErrNotStarted
	}
	c.generate()
	c.st.Completed = false
	c.touch()
	return nil
}

func (c *RoundRobin) findMatch(id string) *models.Match {
	rr := c.schedule()
	for i := range rr.Matches {
		if rr.Matches[i].ID == id {
			return &rr.Matches[i]
		}
	}
	return nil
}

func (c *RoundRobin) RecordMatchResult(matchID string, result models.MatchResult) error {
	if err := c.recordCheck(); err != nil {
		return err
	}
	m := c.findMatch(matchID)
	if m == nil {
		return fmt.Errorf("match %s: %w", matchID, models.ErrMatchNotFound)
	}
	if m.Status == models.Status_COMPLETED {
		return fmt.Errorf("match %s: %w", matchID, models.ErrMatchCompleted)
	}

	var err error
	switch {
	case c.st.Options.MultiPlayer:
		if err = models.ValidateRanking(result.Ranking, m.Participants); err != nil {
			return fmt.Errorf("match %s needs a full ranking: %w", matchID, err)
		}
	case c.st.Options.RankingMode == models.RankingMode_POINTS:
		result, err = scoredResult(m, result)
		if err != nil {
			return err
		}
	default:
		result, err = headToHeadResult(m, result)
		if err != nil {
			return err
		}
	}
	complete(m, result)
	c.advanceRound()
	c.touch()
	return nil
}

// headToHeadResult accepts an explicit winner or a tie
func headToHeadResult(m *models.Match, result models.MatchResult) (models.MatchResult, error) {
	if !m.IsPlayable() {
		return result, fmt.Errorf("match %s: %w", m.ID, models.ErrMatchNotPlayable)
	}
	if result.Tie {
		result.Winner, result.Loser = "", ""
		return result, nil
	}
	return winnerResult(m, result)
}

// scoredResult derives the winner, loser or tie by comparing the two
// recorded scores
func scoredResult(m *models.Match, result models.MatchResult) (models.MatchResult, error) {
	if !m.IsPlayable() {
		return result, fmt.Errorf("match %s: %w", m.ID, models.ErrMatchNotPlayable)
	}
	if len(result.Scores) != len(m.Participants) {
		return result, fmt.Errorf("match %s needs a score per participant: %w", m.ID, models.ErrInvalidResult)
	}
	for _, id := range m.Participants {
		if _, ok := result.Scores[id]; !ok {
			return result, fmt.Errorf("match %s is missing a score for %s: %w", m.ID, id, models.ErrInvalidResult)
		}
	}
	a, b := m.Participants[0], m.Participants[1]
	switch {
	case result.Scores[a] > result.Scores[b]:
		result.Winner, result.Loser, result.Tie = a, b, false
	case result.Scores[b] > result.Scores[a]:
		result.Winner, result.Loser, result.Tie = b, a, false
	default:
		result.Winner, result.Loser, result.Tie = "", "", true
	}
	return result, nil
}

// advanceRound moves the round counter forward once every match of the
// current round is completed, and completes the tournament after the
// last round
func (c *RoundRobin) advanceRound() {
	rr := c.schedule()
	for {
		done := true
		last := true
		for i := range rr.Matches {
			if rr.Matches[i].Round == rr.CurrentRound && rr.Matches[i].Status != models.Status_COMPLETED {
				done = false
			}
			if rr.Matches[i].Round > rr.CurrentRound {
				last = false
			}
		}
		if !done {
			return
		}
		if last {
			c.st.Completed = true
			return
		}
		rr.CurrentRound++
	}
}

func (c *RoundRobin) GetCurrentMatches() []models.Match {
	if !c.st.Started {
		return nil
	}
	rr := c.schedule()
	var out []models.Match
	for i := range rr.Matches {
		m := &rr.Matches[i]
		if m.Round <= rr.CurrentRound && m.Status != models.Status_COMPLETED && m.IsPlayable() {
			out = append(out, *cloneForOutput(m))
		}
	}
	return out
}

func (c *RoundRobin) GetStandings() []models.Standing {
	byID := map[string]*models.Standing{}
	standings := make([]models.Standing, 0, len(c.st.Participants))
	for _, p := range c.st.Participants {
		standings = append(standings, models.Standing{ParticipantID: p.ID, Name: p.Name})
	}
	for i := range standings {
		byID[standings[i].ParticipantID] = &standings[i]
	}

	if c.st.Started {
		for _, m := range c.schedule().Matches {
			if m.Status != models.Status_COMPLETED || m.Result == nil {
				continue
			}
			for _, id := range m.Participants {
				byID[id].MatchesPlayed++
			}
			if c.st.Options.MultiPlayer {
				c.tallyGroupMatch(m, byID)
				continue
			}
			switch {
			case m.Result.Tie:
				for _, id := range m.Participants {
					byID[id].Ties++
				}
			default:
				byID[m.Result.Winner].Wins++
				byID[m.Result.Loser].Losses++
			}
			for id, score := range m.Result.Scores {
				byID[id].Points += float64(score)
			}
		}
	}

	pointsRanked := c.st.Options.RankingMode == models.RankingMode_POINTS
	sort.Slice(standings, func(i, j int) bool {
		a, b := standings[i], standings[j]
		if pointsRanked && a.Points != b.Points {
			return a.Points > b.Points
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		return a.Name < b.Name
	})
	shareRanks(standings, func(a, b models.Standing) bool {
		if pointsRanked {
			return a.Points == b.Points && a.Wins == b.Wins
		}
		return a.Wins == b.Wins
	})
	return standings
}

// tallyGroupMatch counts a first place as a win and a last place as a
// loss, and converts placements into points when a points system is
// selected
func (c *RoundRobin) tallyGroupMatch(m models.Match, byID map[string]*models.Standing) {
	var table []float64
	if c.st.Options.RankingMode == models.RankingMode_POINTS && c.st.Options.PointsSystem != "" {
		table, _ = points.GeneratePointsArray(c.st.Options.PointsSystem, c.st.Options.CustomPoints, len(m.Participants))
	}
	for _, pl := range m.Result.Ranking {
		st := byID[pl.ParticipantID]
		if pl.Position == 1 {
			st.Wins++
		}
		if pl.Position == len(m.Participants) {
			st.Losses++
		}
		if table != nil {
			st.Points += points.GetPointsForPlacement(table, pl.Position)
		}
	}
}
