package tournament

import (
	"fmt"
	"time"

	"github.com/rs/xid"

	"github.com/openbracket/competition/models"
)

// base carries the state and lifecycle operations shared by every
// format engine. Engines embed it and add their structure generation,
// result recording, and standings on top.
type base struct {
	st models.State
}

func newBase(t models.TournamentType, opts models.Options) base {
	now := time.Now().UTC()
	b := base{st: models.State{
		Version:   models.StateVersion,
		Type:      t,
		ID:        xid.New().String(),
		Name:      opts.Name,
		CreatedAt: now,
		UpdatedAt: now,
		Options:   opts,
	}}
	for _, name := range opts.Participants {
		b.st.Participants = append(b.st.Participants, models.Participant{
			ID:   xid.New().String(),
			Name: name,
			Seed: len(b.st.Participants) + 1,
		})
	}
	return b
}

func restoreBase(state models.State) base {
	return base{st: state.Clone()}
}

func (b *base) GetID() string                  { return b.st.ID }
func (b *base) GetName() string                { return b.st.Name }
func (b *base) GetType() models.TournamentType { return b.st.Type }
func (b *base) IsStarted() bool                { return b.st.Started }
func (b *base) IsCompleted() bool              { return b.st.Completed }

func (b *base) GetParticipants() []models.Participant {
	return append([]models.Participant(nil), b.st.Participants...)
}

func (b *base) Export() models.State {
	return b.st.Clone()
}

// touch updates the modification timestamp on every mutation
func (b *base) touch() {
	b.st.UpdatedAt = time.Now().UTC()
}

func (b *base) AddParticipant(name string) (models.Participant, error) {
	if b.st.Started {
		return models.Participant{}, fmt.Errorf("cannot add participant: %w", models.ErrAlreadyStarted)
	}
	if name == "" {
		return models.Participant{}, fmt.Errorf("participant name must not be empty: %w", models.ErrInvalidOptions)
	}
	for _, p := range b.st.Participants {
		if p.Name == name {
			return models.Participant{}, fmt.Errorf("duplicate participant name %q: %w", name, models.ErrInvalidOptions)
		}
	}
	p := models.Participant{
		ID:   xid.New().String(),
		Name: name,
		Seed: len(b.st.Participants) + 1,
	}
	b.st.Participants = append(b.st.Participants, p)
	b.touch()
	return p, nil
}

func (b *base) RemoveParticipant(id string) error {
	if b.st.Started {
		return fmt.Errorf("cannot remove participant: %w", models.ErrAlreadyStarted)
	}
	idx := -1
	for i, p := range b.st.Participants {
		if p.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("participant %s: %w", id, models.ErrTournamentNotFound)
	}
	b.st.Participants = append(b.st.Participants[:idx], b.st.Participants[idx+1:]...)
	// Re-number remaining seeds contiguously from 1
	for i := range b.st.Participants {
		b.st.Participants[i].Seed = i + 1
	}
	b.touch()
	return nil
}

// startCheck enforces the not-started state and the format's minimum
// participant count, then flips the tournament to started.
func (b *base) startCheck(minParticipants int) error {
	if b.st.Started {
		return models.ErrAlreadyStarted
	}
	if len(b.st.Participants) < minParticipants {
		return fmt.Errorf("%w: need at least %d, have %d",
			models.ErrNotEnoughParticipants, minParticipants, len(b.st.Participants))
	}
	b.st.Started = true
	b.touch()
	return nil
}

// recordCheck enforces the common preconditions of result recording
func (b *base) recordCheck() error {
	if !b.st.Started {
		return models.ErrNotStarted
	}
	if b.st.Completed {
		return models.ErrAlreadyCompleted
	}
	return nil
}

// winnerResult validates a head-to-head result that must name an
// explicit winner among the match participants. Ties are rejected.
func winnerResult(m *models.Match, result models.MatchResult) (models.MatchResult, error) {
	if !m.IsPlayable() {
		return result, fmt.Errorf("match %s: %w", m.ID, models.ErrMatchNotPlayable)
	}
	if result.Tie {
		return result, fmt.Errorf("ties are not allowed here: %w", models.ErrInvalidResult)
	}
	if result.Winner == "" {
		return result, fmt.Errorf("result needs a winner: %w", models.ErrInvalidResult)
	}
	if !m.HasParticipant(result.Winner) {
		return result, fmt.Errorf("winner %s is not in match %s: %w", result.Winner, m.ID, models.ErrInvalidResult)
	}
	for _, id := range m.Participants {
		if id != result.Winner {
			result.Loser = id
		}
	}
	return result, nil
}

// complete marks a match as played and stamps its result
func complete(m *models.Match, result models.MatchResult) {
	m.Result = &result
	m.Status = models.Status_COMPLETED
}
