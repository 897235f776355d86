package tournament

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbracket/competition/models"
)

func TestRosterManagement(t *testing.T) {
	e := NewSingleElimination(models.Options{
		Type: models.TournamentType_SINGLE_ELIMINATION,
		Name: "roster",
	})

	a, err := e.AddParticipant("Alice")
	require.NoError(t, err)
	b, err := e.AddParticipant("Bob")
	require.NoError(t, err)
	_, err = e.AddParticipant("Carol")
	require.NoError(t, err)

	assert.Equal(t, 1, a.Seed)
	assert.Equal(t, 2, b.Seed)

	_, err = e.AddParticipant("")
	assert.ErrorIs(t, err, models.ErrInvalidOptions)
	_, err = e.AddParticipant("Alice")
	assert.ErrorIs(t, err, models.ErrInvalidOptions)

	// Removing re-numbers the remaining seeds contiguously
	require.NoError(t, e.RemoveParticipant(b.ID))
	ps := e.GetParticipants()
	require.Len(t, ps, 2)
	assert.Equal(t, "Alice", ps[0].Name)
	assert.Equal(t, 1, ps[0].Seed)
	assert.Equal(t, "Carol", ps[1].Name)
	assert.Equal(t, 2, ps[1].Seed)

	err = e.RemoveParticipant("missing")
	assert.ErrorIs(t, err, models.ErrTournamentNotFound)

	require.NoError(t, e.Start())
	err = e.RemoveParticipant(a.ID)
	assert.ErrorIs(t, err, models.ErrAlreadyStarted)
}

func TestParticipantsCopyDoesNotAliasState(t *testing.T) {
	e := NewSingleElimination(models.Options{
		Type:         models.TournamentType_SINGLE_ELIMINATION,
		Name:         "alias",
		Participants: roster(2),
	})

	ps := e.GetParticipants()
	ps[0].Name = "tampered"
	assert.Equal(t, "Player 1", e.GetParticipants()[0].Name)

	require.NoError(t, e.Start())
	current := e.GetCurrentMatches()
	current[0].Participants[0] = "tampered"
	assert.NotContains(t, e.GetCurrentMatches()[0].Participants, "tampered")
}
