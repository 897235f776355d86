// Package storm provides a StorageEngine backed by a storm database.
// Tournament state documents are stored whole, keyed by tournament id;
// the store never interprets bracket internals. Concurrent writers are
// not coordinated: the last writer wins.
package storm

import (
	"fmt"

	"github.com/asdine/storm"
	"github.com/asdine/storm/codec/json"

	"github.com/openbracket/competition/models"
)

type store struct {
	db *storm.DB
}

// tournamentRecord wraps a state document with the indexed id key
type tournamentRecord struct {
	ID      string `storm:"id"`
	Updated int64  `storm:"index"`
	State   models.State
}

// NewStorageEngine creates and returns a StorageEngine using a storm
// db backend at the given path. The JSON codec keeps the stored value
// identical to the export document payload.
func NewStorageEngine(path string) (models.StorageEngine, error) {
	db, err := storm.Open(path, storm.Codec(json.Codec))
	if err != nil {
		return nil, fmt.Errorf("unable to open storage engine: %w", err)
	}
	return &store{db: db}, nil
}

func (s *store) SaveTournament(state models.State) error {
	if state.ID == "" {
		return fmt.Errorf("tournament state has no id: %w", models.ErrInvalidOptions)
	}
	rec := tournamentRecord{
		ID:      state.ID,
		Updated: state.UpdatedAt.UnixNano(),
		State:   state,
	}
	if err := s.db.Save(&rec); err != nil {
		return fmt.Errorf("unable to save tournament %s: %w", state.ID, err)
	}
	return nil
}

func (s *store) GetTournament(id string) (models.State, error) {
	var rec tournamentRecord
	err := s.db.One("ID", id, &rec)
	if err == storm.ErrNotFound {
		return models.State{}, fmt.Errorf("tournament %s: %w", id, models.ErrTournamentNotFound)
	}
	if err != nil {
		return models.State{}, fmt.Errorf("unable to load tournament %s: %w", id, err)
	}
	return rec.State, nil
}

func (s *store) GetTournaments() ([]models.State, error) {
	var recs []tournamentRecord
	err := s.db.AllByIndex("Updated", &recs)
	if err != nil && err != storm.ErrNotFound {
		return nil, fmt.Errorf("unable to list tournaments: %w", err)
	}
	states := make([]models.State, 0, len(recs))
	for _, rec := range recs {
		states = append(states, rec.State)
	}
	return states, nil
}

func (s *store) DeleteTournament(id string) error {
	err := s.db.DeleteStruct(&tournamentRecord{ID: id})
	if err == storm.ErrNotFound {
		return fmt.Errorf("tournament %s: %w", id, models.ErrTournamentNotFound)
	}
	if err != nil {
		return fmt.Errorf("unable to delete tournament %s: %w", id, err)
	}
	return nil
}

func (s *store) Close() error {
	return s.db.Close()
}
