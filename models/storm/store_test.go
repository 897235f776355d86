package storm

import (
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openbracket/competition/models"
	"github.com/openbracket/competition/tournament"
)

func newTestStore(t *testing.T) models.StorageEngine {
	t.Helper()
	s, err := NewStorageEngine(filepath.Join(t.TempDir(), "competition.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func newTestState(t *testing.T, name string) models.State {
	t.Helper()
	e, err := tournament.New(models.Options{
		Type:         models.TournamentType_SINGLE_ELIMINATION,
		Name:         name,
		Participants: []string{"Alice", "Bob", "Carol"},
	})
	require.NoError(t, err)
	require.NoError(t, e.Start())
	return e.Export()
}

func TestSaveAndGetTournament(t *testing.T) {
	s := newTestStore(t)
	state := newTestState(t, "stored")

	require.NoError(t, s.SaveTournament(state))

	got, err := s.GetTournament(state.ID)
	require.NoError(t, err)
	if diff := cmp.Diff(state, got); diff != "" {
		t.Errorf("stored state differs (-want +got):\n%s", diff)
	}

	// Saving again under the same id overwrites the document
	state.Name = "renamed"
	require.NoError(t, s.SaveTournament(state))
	got, err = s.GetTournament(state.ID)
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.Name)
}

func TestSaveRejectsMissingID(t *testing.T) {
	s := newTestStore(t)
	err := s.SaveTournament(models.State{Name: "no id"})
	assert.ErrorIs(t, err, models.ErrInvalidOptions)
}

func TestGetTournamentNotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.GetTournament("missing")
	assert.ErrorIs(t, err, models.ErrTournamentNotFound)
}

func TestGetTournaments(t *testing.T) {
	s := newTestStore(t)

	// An empty store lists cleanly
	states, err := s.GetTournaments()
	require.NoError(t, err)
	assert.Empty(t, states)

	first := newTestState(t, "first")
	second := newTestState(t, "second")
	require.NoError(t, s.SaveTournament(first))
	require.NoError(t, s.SaveTournament(second))

	states, err = s.GetTournaments()
	require.NoError(t, err)
	require.Len(t, states, 2)

	// Listed oldest change first
	assert.Equal(t, "first", states[0].Name)
	assert.Equal(t, "second", states[1].Name)
}

func TestDeleteTournament(t *testing.T) {
	s := newTestStore(t)
	state := newTestState(t, "doomed")
	require.NoError(t, s.SaveTournament(state))

	require.NoError(t, s.DeleteTournament(state.ID))
	_, err := s.GetTournament(state.ID)
	assert.ErrorIs(t, err, models.ErrTournamentNotFound)

	err = s.DeleteTournament(state.ID)
	assert.ErrorIs(t, err, models.ErrTournamentNotFound)
}
