package models

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestStateCloneIsDeep(t *testing.T) {
	orig := State{
		Version: StateVersion,
		Type:    TournamentType_SWISS,
		ID:      "t1",
		Name:    "clone me",
		Started: true,
		Participants: []Participant{
			{ID: "a", Name: "Alice", Seed: 1},
			{ID: "b", Name: "Bob", Seed: 2},
		},
		Options: Options{Participants: []string{"Alice", "Bob"}},
		Swiss: &SwissState{
			CurrentRound: 1,
			Rounds: [][]Match{{
				{
					ID:           "m1",
					Status:       Status_COMPLETED,
					Participants: []string{"a", "b"},
					Round:        1,
					MatchNumber:  1,
					Result: &MatchResult{
						Winner: "a",
						Loser:  "b",
						Scores: map[string]int{"a": 2, "b": 1},
					},
				},
			}},
			Scores: map[string]SwissScore{
				"a": {MatchPoints: 1, GamePoints: 2, GamesWon: 2, GamesLost: 1, Opponents: []string{"b"}},
				"b": {GamePoints: 1, GamesWon: 1, GamesLost: 2, Opponents: []string{"a"}},
			},
		},
	}

	clone := orig.Clone()
	if diff := cmp.Diff(orig, clone); diff != "" {
		t.Fatalf("clone differs (-orig +clone):\n%s", diff)
	}

	// Mutating the clone must never reach the original
	clone.Participants[0].Name = "tampered"
	clone.Swiss.Rounds[0][0].Result.Scores["a"] = 9
	clone.Swiss.Rounds[0][0].Participants[0] = "tampered"
	sc := clone.Swiss.Scores["a"]
	sc.Opponents[0] = "tampered"

	assert.Equal(t, "Alice", orig.Participants[0].Name)
	assert.Equal(t, 2, orig.Swiss.Rounds[0][0].Result.Scores["a"])
	assert.Equal(t, "a", orig.Swiss.Rounds[0][0].Participants[0])
	assert.Equal(t, []string{"b"}, orig.Swiss.Scores["a"].Opponents)
}

func TestCloneMatchNil(t *testing.T) {
	assert.Nil(t, CloneMatch(nil))
	assert.Nil(t, CloneMatches(nil))
}
