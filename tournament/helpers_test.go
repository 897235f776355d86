package tournament

import (
	"fmt"
	"testing"

	"github.com/openbracket/competition/models"
)

// roster builds n participant names in seed order
func roster(n int) []string {
	names := make([]string, n)
	for i := range names {
		names[i] = fmt.Sprintf("Player %d", i+1)
	}
	return names
}

// idsByName maps participant names to their generated ids
func idsByName(t *testing.T, e models.Engine) map[string]string {
	t.Helper()
	out := map[string]string{}
	for _, p := range e.GetParticipants() {
		out[p.Name] = p.ID
	}
	return out
}

// namesOf maps a standings slice back to participant names, in order
func namesOf(standings []models.Standing) []string {
	out := make([]string, len(standings))
	for i, s := range standings {
		out[i] = s.Name
	}
	return out
}

func win(id string) models.MatchResult {
	return models.MatchResult{Winner: id}
}

func scores(a string, sa int, b string, sb int) models.MatchResult {
	return models.MatchResult{Scores: map[string]int{a: sa, b: sb}}
}

func ranking(ids ...string) models.MatchResult {
	r := models.MatchResult{}
	for i, id := range ids {
		r.Ranking = append(r.Ranking, models.Placement{ParticipantID: id, Position: i + 1})
	}
	return r
}
