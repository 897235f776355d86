package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbracket/competition/models"
)

func startFreeForAll(t *testing.T, opts models.Options) (*FreeForAll, map[string]string) {
	t.Helper()
	opts.Type = models.TournamentType_FREE_FOR_ALL
	e := NewFreeForAll(opts)
	require.NoError(t, e.Start())
	return e, idsByName(t, e)
}

func TestFreeForAllWinnerOnly(t *testing.T) {
	e, ids := startFreeForAll(t, models.Options{
		Name:                 "battle royale",
		Participants:         roster(9),
		ParticipantsPerMatch: 4,
		WinnerOnly:           true,
	})

	// 9 players in groups of 4: two full matches plus a lone bye
	ffa := e.Export().FreeForAll
	require.Len(t, ffa.Rounds, 1)
	require.Len(t, ffa.Rounds[0], 3)
	bye := ffa.Rounds[0][2]
	assert.Equal(t, []string{ids["Player 9"]}, bye.Participants)
	assert.Equal(t, models.Status_COMPLETED, bye.Status)
	assert.Len(t, e.GetCurrentMatches(), 2)

	first := ffa.Rounds[0][0]
	require.NoError(t, e.RecordMatchResult(first.ID, ranking(
		ids["Player 1"], ids["Player 2"], ids["Player 3"], ids["Player 4"])))

	// Elimination is immediate and permanent for everyone below the cut
	ffa = e.Export().FreeForAll
	assert.ElementsMatch(t,
		[]string{ids["Player 2"], ids["Player 3"], ids["Player 4"]},
		ffa.Eliminated)

	second := ffa.Rounds[0][1]
	require.NoError(t, e.RecordMatchResult(second.ID, ranking(
		ids["Player 5"], ids["Player 6"], ids["Player 7"], ids["Player 8"])))

	// The three survivors fit a single match: the final
	ffa = e.Export().FreeForAll
	require.Len(t, ffa.Rounds, 2)
	require.Len(t, ffa.Rounds[1], 1)
	final := ffa.Rounds[1][0]
	assert.ElementsMatch(t,
		[]string{ids["Player 1"], ids["Player 5"], ids["Player 9"]},
		final.Participants)

	require.NoError(t, e.RecordMatchResult(final.ID, ranking(
		ids["Player 9"], ids["Player 1"], ids["Player 5"])))
	require.True(t, e.IsCompleted())

	ffa = e.Export().FreeForAll
	assert.Len(t, ffa.Eliminated, 8)
	assert.NotContains(t, ffa.Eliminated, ids["Player 9"])

	standings := e.GetStandings()
	assert.Equal(t, "Player 9", standings[0].Name)
	assert.Equal(t, 1, standings[0].Rank)
	assert.False(t, standings[0].Eliminated)
	assert.Equal(t, 2, standings[0].Wins) // bye plus final

	// The beaten finalists share the next rank
	assert.ElementsMatch(t, []string{"Player 1", "Player 5"}, namesOf(standings[1:3]))
	assert.Equal(t, 3, standings[1].Rank)
	assert.Equal(t, 3, standings[2].Rank)
	assert.Equal(t, 2, standings[1].RoundsSurvived)
	for _, s := range standings[1:] {
		assert.True(t, s.Eliminated, s.Name)
	}
}

func TestFreeForAllTopNAdvancement(t *testing.T) {
	e, ids := startFreeForAll(t, models.Options{
		Name:                 "heats",
		Participants:         roster(8),
		ParticipantsPerMatch: 4,
		AdvancingPerMatch:    2,
	})

	ffa := e.Export().FreeForAll
	require.Len(t, ffa.Rounds[0], 2)

	require.NoError(t, e.RecordMatchResult(ffa.Rounds[0][0].ID, ranking(
		ids["Player 1"], ids["Player 2"], ids["Player 3"], ids["Player 4"])))
	require.NoError(t, e.RecordMatchResult(ffa.Rounds[0][1].ID, ranking(
		ids["Player 5"], ids["Player 6"], ids["Player 7"], ids["Player 8"])))

	// Top two of each heat meet in the final
	ffa = e.Export().FreeForAll
	require.Len(t, ffa.Rounds, 2)
	require.Len(t, ffa.Rounds[1], 1)
	final := ffa.Rounds[1][0]
	assert.ElementsMatch(t,
		[]string{ids["Player 1"], ids["Player 2"], ids["Player 5"], ids["Player 6"]},
		final.Participants)

	require.NoError(t, e.RecordMatchResult(final.ID, ranking(
		ids["Player 2"], ids["Player 5"], ids["Player 1"], ids["Player 6"])))
	require.True(t, e.IsCompleted())
	assert.Equal(t, "Player 2", e.GetStandings()[0].Name)

	// The runner-up finished above the cut and is never marked eliminated
	eliminated := e.Export().FreeForAll.Eliminated
	assert.Len(t, eliminated, 6)
	assert.NotContains(t, eliminated, ids["Player 5"])
}

func TestFreeForAllRankingValidation(t *testing.T) {
	e, ids := startFreeForAll(t, models.Options{
		Name:                 "strict",
		Participants:         roster(4),
		ParticipantsPerMatch: 4,
		WinnerOnly:           true,
	})

	m := e.GetCurrentMatches()[0]

	// Partial ranking
	err := e.RecordMatchResult(m.ID, ranking(ids["Player 1"], ids["Player 2"]))
	assert.ErrorIs(t, err, models.ErrInvalidResult)

	// Duplicate position
	bad := ranking(m.Participants...)
	bad.Ranking[1].Position = 1
	err = e.RecordMatchResult(m.ID, bad)
	assert.ErrorIs(t, err, models.ErrInvalidResult)

	// Outsider in the ranking
	bad = ranking(m.Participants...)
	bad.Ranking[3].ParticipantID = "stranger"
	err = e.RecordMatchResult(m.ID, bad)
	assert.ErrorIs(t, err, models.ErrInvalidResult)

	// Winner is derived from position 1, not taken from the result
	good := ranking(ids["Player 3"], ids["Player 1"], ids["Player 2"], ids["Player 4"])
	require.NoError(t, e.RecordMatchResult(m.ID, good))
	require.True(t, e.IsCompleted())
	assert.Equal(t, "Player 3", e.GetStandings()[0].Name)
}

func TestFreeForAllPointsSystem(t *testing.T) {
	e, ids := startFreeForAll(t, models.Options{
		Name:                 "grand prix",
		Participants:         roster(4),
		ParticipantsPerMatch: 4,
		WinnerOnly:           true,
		PointsSystem:         "formula1",
	})

	m := e.GetCurrentMatches()[0]
	require.NoError(t, e.RecordMatchResult(m.ID, ranking(
		ids["Player 1"], ids["Player 2"], ids["Player 3"], ids["Player 4"])))
	require.True(t, e.IsCompleted())

	points := map[string]float64{}
	for _, s := range e.GetStandings() {
		points[s.Name] = s.Points
	}
	assert.Equal(t, 25.0, points["Player 1"])
	assert.Equal(t, 18.0, points["Player 2"])
	assert.Equal(t, 15.0, points["Player 3"])
	assert.Equal(t, 12.0, points["Player 4"])
}
