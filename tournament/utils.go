package tournament

import (
	"math"
	"sort"

	"github.com/rs/xid"

	"github.com/openbracket/competition/models"
)

func newMatch(round, number int) models.Match {
	return models.Match{
		ID:          xid.New().String(),
		Status:      models.Status_PENDING,
		Round:       round,
		MatchNumber: number,
	}
}

// bracketRounds gets the number of rounds needed for n entrants,
// rounding the bracket up to the next power of 2
func bracketRounds(n int) int {
	if n < 2 {
		return 1
	}
	return int(math.Ceil(math.Log2(float64(n))))
}

func bySeed(ps []models.Participant) []models.Participant {
	out := append([]models.Participant(nil), ps...)
	sort.Slice(out, func(i, j int) bool { return out[i].Seed < out[j].Seed })
	return out
}

// buildEliminationBracket constructs the full flat single elimination
// structure for the given seeded participants: bracket size - 1
// matches, indexed round by round. The top seeds receive the byes and
// are injected directly into round 2 (two per match, in seed order);
// the remaining participants are paired first seed against last and
// placed in the trailing round 1 slots so that each winner routes into
// an open round 2 slot.
func buildEliminationBracket(ps []models.Participant) []models.Match {
	seeded := bySeed(ps)
	n := len(seeded)
	rounds := bracketRounds(n)
	size := 1 << uint(rounds)
	byes := size - n
	total := size - 1

	matches := make([]models.Match, total)
	idx := 0
	for r := 1; r <= rounds; r++ {
		inRound := size >> uint(r)
		for i := 0; i < inRound; i++ {
			matches[idx] = newMatch(r, idx+1)
			idx++
		}
	}

	// Byes go straight into the second round
	round2 := size / 2
	for k, p := range seeded[:byes] {
		m := &matches[round2+k/2]
		m.Participants = append(m.Participants, p.ID)
	}

	// Everyone else plays round 1, highest remaining seed against lowest
	playing := seeded[byes:]
	pairs := len(playing) / 2
	first := size/2 - pairs
	for j := 0; j < pairs; j++ {
		m := &matches[first+j]
		m.Participants = append(m.Participants, playing[j].ID, playing[len(playing)-1-j].ID)
	}

	return matches
}

// advanceIndex computes the flat index a winner moves to after
// completing the non-final match at index i
func advanceIndex(total, i int) int {
	return total - (total-i)/2
}

// chunkIDs splits ids into groups of the given size, keeping a
// trailing short group
func chunkIDs(ids []string, size int) [][]string {
	var groups [][]string
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		groups = append(groups, ids[start:end])
	}
	return groups
}

// cloneForOutput hands a copy to callers so the engine's structures
// never escape
func cloneForOutput(m *models.Match) *models.Match {
	return models.CloneMatch(m)
}

// shareRanks assigns 1-based ranks to already sorted standings. Equal
// performers (per the sameRank predicate) share the lowest rank of
// their tied block.
func shareRanks(standings []models.Standing, sameRank func(a, b models.Standing) bool) {
	for start := 0; start < len(standings); {
		end := start
		for end+1 < len(standings) && sameRank(standings[end], standings[end+1]) {
			end++
		}
		for i := start; i <= end; i++ {
			standings[i].Rank = end + 1
		}
		start = end + 1
	}
}
