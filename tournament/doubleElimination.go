package tournament

import (
	"fmt"
	"sort"

	"github.com/openbracket/competition/models"
)

// DoubleElimination provides the logic for running a winners plus
// losers bracket tournament with a grand final and the bracket reset
// rule. The winners bracket is a fixed draw; the losers bracket is
// built incrementally, so its pairing order depends on completion
// order. Losing twice is implicit: the structure stops admitting a
// twice-beaten participant to new matches.
type DoubleElimination struct {
	base
	lossCount map[string]int
}

func NewDoubleElimination(opts models.Options) *DoubleElimination {
	return &DoubleElimination{base: newBase(models.TournamentType_DOUBLE_ELIMINATION, opts)}
}

func restoreDoubleElimination(state models.State) (*DoubleElimination, error) {
	if state.Started && state.DoubleElimination == nil {
		return nil, fmt.Errorf("double elimination state missing brackets: %w", models.ErrInvalidOptions)
	}
	d := &DoubleElimination{base: restoreBase(state)}
	if state.Started {
		d.replayLossCounts()
	}
	return d, nil
}

func (d *DoubleElimination) brackets() *models.DoubleEliminationState {
	return d.st.DoubleElimination
}

func (d *DoubleElimination) Start() error {
	min := 2
	if d.st.Options.SplitStart {
		min = 4
	}
	if err := d.startCheck(min); err != nil {
		return err
	}
	d.generate()
	return nil
}

func (d *DoubleElimination) generate() {
	d.lossCount = map[string]int{}
	de := &models.DoubleEliminationState{}
	seeded := bySeed(d.st.Participants)

	if d.st.Options.SplitStart {
		// Half the field starts in the losers bracket with one loss
		half := (len(seeded) + 1) / 2
		upper, lower := seeded[:half], seeded[half:]
		de.Winners = buildEliminationBracket(upper)
		for j := 0; j < (len(lower)+1)/2; j++ {
			m := newMatch(1, j+1)
			m.Participants = append(m.Participants, lower[j].ID)
			if back := len(lower) - 1 - j; back != j {
				m.Participants = append(m.Participants, lower[back].ID)
			}
			de.Losers = append(de.Losers, m)
		}
		for _, p := range lower {
			d.lossCount[p.ID] = 1
		}
	} else {
		de.Winners = buildEliminationBracket(seeded)
	}
	d.st.DoubleElimination = de
}

// Reset clears both brackets, the grand final, the reset match and the
// loss counters, then regenerates the initial structure
func (d *DoubleElimination) Reset() error {
	if !d.st.Started {
		return models.ErrNotStarted
	}
	d.generate()
	d.st.Completed = false
	d.touch()
	return nil
}

// replayLossCounts reconstructs the per-participant loss counters from
// the stored match results instead of persisting them
func (d *DoubleElimination) replayLossCounts() {
	d.lossCount = map[string]int{}
	if d.st.Options.SplitStart {
		seeded := bySeed(d.st.Participants)
		for _, p := range seeded[(len(seeded)+1)/2:] {
			d.lossCount[p.ID] = 1
		}
	}
	de := d.brackets()
	countLoss := func(m *models.Match) {
		if m != nil && m.Status == models.Status_COMPLETED && m.Result != nil && m.Result.Loser != "" {
			d.lossCount[m.Result.Loser]++
		}
	}
	for i := range de.Winners {
		countLoss(&de.Winners[i])
	}
	for i := range de.Losers {
		countLoss(&de.Losers[i])
	}
	countLoss(de.GrandFinal)
	countLoss(de.ResetMatch)
}

type deSection int

const (
	sectionWinners deSection = iota
	sectionLosers
	sectionGrandFinal
	sectionReset
)

func (d *DoubleElimination) findMatch(id string) (*models.Match, deSection, int) {
	de := d.brackets()
	for i := range de.Winners {
		if de.Winners[i].ID == id {
			return &de.Winners[i], sectionWinners, i
		}
	}
	for i := range de.Losers {
		if de.Losers[i].ID == id {
			return &de.Losers[i], sectionLosers, i
		}
	}
	if de.GrandFinal != nil && de.GrandFinal.ID == id {
		return de.GrandFinal, sectionGrandFinal, 0
	}
	if de.ResetMatch != nil && de.ResetMatch.ID == id {
		return de.ResetMatch, sectionReset, 0
	}
	return nil, 0, 0
}

func (d *DoubleElimination) RecordMatchResult(matchID string, result models.MatchResult) error {
	if err := d.recordCheck(); err != nil {
		return err
	}
	m, section, idx := d.findMatch(matchID)
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

	switch section {
	case sectionWinners:
		complete(m, result)
		d.lossCount[result.Loser]++
		de := d.brackets()
		if idx == len(de.Winners)-1 {
			// Winners final: winner to the grand final, loser drops down
			d.grandFinalEntrant(result.Winner)
			d.pushToLosers(result.Loser)
		} else {
			target := &de.Winners[advanceIndex(len(de.Winners), idx)]
			target.Participants = append(target.Participants, result.Winner)
			d.pushToLosers(result.Loser)
		}
	case sectionLosers:
		complete(m, result)
		d.lossCount[result.Loser]++
		d.routeLosersWinner(result.Winner)
	case sectionGrandFinal:
		// The losers bracket entrant arrived carrying one loss; if they
		// win, both finalists are tied at one loss and a single bracket
		// reset match decides it.
		winnerHadLoss := d.lossCount[result.Winner] >= 1
		complete(m, result)
		d.lossCount[result.Loser]++
		if winnerHadLoss {
			de := d.brackets()
			reset := newMatch(m.Round+1, m.MatchNumber+1)
			reset.Participants = append([]string(nil), m.Participants...)
			de.ResetMatch = &reset
		} else {
			d.st.Completed = true
		}
	case sectionReset:
		complete(m, result)
		d.lossCount[result.Loser]++
		d.st.Completed = true
	}

	d.settleLosers()
	d.touch()
	return nil
}

func (d *DoubleElimination) grandFinalEntrant(id string) {
	de := d.brackets()
	if de.GrandFinal == nil {
		gf := newMatch(0, len(de.Winners)+len(de.Losers)+1)
		de.GrandFinal = &gf
	}
	de.GrandFinal.Participants = append(de.GrandFinal.Participants, id)
}

// pushToLosers drops a freshly beaten participant into the first
// losers bracket match with an open slot, or opens a new match
func (d *DoubleElimination) pushToLosers(id string) {
	de := d.brackets()
	for i := range de.Losers {
		m := &de.Losers[i]
		if m.Status != models.Status_COMPLETED && len(m.Participants) < 2 {
			m.Participants = append(m.Participants, id)
			return
		}
	}
	m := newMatch(0, len(de.Losers)+1)
	m.Participants = append(m.Participants, id)
	de.Losers = append(de.Losers, m)
}

// routeLosersWinner keeps a losers bracket winner in the bracket while
// the winners bracket can still feed it or incomplete losers matches
// remain, otherwise moves them to the grand final
func (d *DoubleElimination) routeLosersWinner(id string) {
	de := d.brackets()
	if de.Winners[len(de.Winners)-1].Status != models.Status_COMPLETED {
		d.pushToLosers(id)
		return
	}
	for i := range de.Losers {
		if de.Losers[i].Status != models.Status_COMPLETED {
			d.pushToLosers(id)
			return
		}
	}
	d.grandFinalEntrant(id)
}

// settleLosers resolves a stranded lone entrant once the winners
// bracket can no longer feed the losers bracket. The lone participant
// takes a bye and moves on.
func (d *DoubleElimination) settleLosers() {
	de := d.brackets()
	if len(de.Winners) == 0 || de.Winners[len(de.Winners)-1].Status != models.Status_COMPLETED {
		return
	}
	for {
		var lone *models.Match
		for i := range de.Losers {
			m := &de.Losers[i]
			if m.Status == models.Status_COMPLETED {
				continue
			}
			if len(m.Participants) >= 2 {
				return // a playable match will fill the open slot
			}
			lone = m
		}
		if lone == nil || len(lone.Participants) != 1 {
			return
		}
		complete(lone, models.MatchResult{Winner: lone.Participants[0]})
		d.routeLosersWinner(lone.Participants[0])
	}
}

func (d *DoubleElimination) GetCurrentMatches() []models.Match {
	if !d.st.Started {
		return nil
	}
	de := d.brackets()
	var out []models.Match
	collect := func(m *models.Match) {
		if m != nil && m.Status != models.Status_COMPLETED && m.IsPlayable() {
			out = append(out, *cloneForOutput(m))
		}
	}
	for i := range de.Winners {
		collect(&de.Winners[i])
	}
	for i := range de.Losers {
		collect(&de.Losers[i])
	}
	collect(de.GrandFinal)
	collect(de.ResetMatch)
	return out
}

func (d *DoubleElimination) GetStandings() []models.Standing {
	wins := map[string]int{}
	losses := map[string]int{}
	played := map[string]int{}
	if d.st.Started {
		de := d.brackets()
		tally := func(m *models.Match) {
			if m == nil || m.Status != models.Status_COMPLETED || m.Result == nil {
				return
			}
			wins[m.Result.Winner]++
			if m.Result.Loser != "" {
				losses[m.Result.Loser]++
			}
			for _, id := range m.Participants {
				played[id]++
			}
		}
		for i := range de.Winners {
			tally(&de.Winners[i])
		}
		for i := range de.Losers {
			tally(&de.Losers[i])
		}
		tally(de.GrandFinal)
		tally(de.ResetMatch)
	}

	ranked := d.podium()
	standings := make([]models.Standing, 0, len(d.st.Participants))
	for _, p := range d.st.Participants {
		standings = append(standings, models.Standing{
			ParticipantID: p.ID,
			Name:          p.Name,
			Rank:          ranked[p.ID],
			Wins:          wins[p.ID],
			Losses:        losses[p.ID],
			MatchesPlayed: played[p.ID],
			Eliminated:    d.lossCount[p.ID] >= 2,
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

// podium takes the champion and runner-up from the deciding match: the
// reset match when it was played, the grand final otherwise
func (d *DoubleElimination) podium() map[string]int {
	ranked := map[string]int{}
	if !d.st.Started || !d.st.Completed {
		return ranked
	}
	de := d.brackets()
	deciding := de.GrandFinal
	if de.ResetMatch != nil {
		deciding = de.ResetMatch
	}
	if deciding != nil && deciding.Status == models.Status_COMPLETED {
		ranked[deciding.Result.Winner] = 1
		ranked[deciding.Result.Loser] = 2
	}
	return ranked
}
