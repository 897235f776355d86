package competition

import (
	"github.com/openbracket/competition/models"
	"github.com/openbracket/competition/tournament"
)

// Organizer ties the engine factory to a StorageEngine. Engines own
// their state in memory during a session; Save writes the whole
// document back under the tournament id.
type Organizer struct {
	store models.StorageEngine
}

func NewOrganizer(store models.StorageEngine) *Organizer {
	return &Organizer{store: store}
}

// CreateTournament builds a fresh engine from options and persists its
// initial state
func (o *Organizer) CreateTournament(opts models.Options) (models.Engine, error) {
	e, err := tournament.New(opts)
	if err != nil {
		return nil, err
	}
	if err := o.store.SaveTournament(e.Export()); err != nil {
		return nil, err
	}
	return e, nil
}

// LoadTournament restores an engine from the stored state document
func (o *Organizer) LoadTournament(id string) (models.Engine, error) {
	state, err := o.store.GetTournament(id)
	if err != nil {
		return nil, err
	}
	return tournament.Restore(state)
}

// SaveTournament persists the engine's current state
func (o *Organizer) SaveTournament(e models.Engine) error {
	return o.store.SaveTournament(e.Export())
}

// GetTournaments lists all stored state documents
func (o *Organizer) GetTournaments() ([]models.State, error) {
	return o.store.GetTournaments()
}

// DeleteTournament removes the stored document; the in-memory engine,
// if any, is unaffected
func (o *Organizer) DeleteTournament(id string) error {
	return o.store.DeleteTournament(id)
}
