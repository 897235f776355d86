package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsByeMatch(t *testing.T) {
	assert.True(t, IsByeMatch(nil))
	assert.True(t, IsByeMatch(&Match{}))
	assert.True(t, IsByeMatch(&Match{Participants: []string{"a"}}))
	assert.False(t, IsByeMatch(&Match{Participants: []string{"a", "b"}}))
}

func TestValidateRanking(t *testing.T) {
	participants := []string{"a", "b", "c"}

	ok := []Placement{
		{ParticipantID: "b", Position: 1},
		{ParticipantID: "a", Position: 2},
		{ParticipantID: "c", Position: 3},
	}
	assert.NoError(t, ValidateRanking(ok, participants))

	tests := []struct {
		name    string
		ranking []Placement
	}{
		{"too short", []Placement{{ParticipantID: "a", Position: 1}}},
		{"outsider", []Placement{
			{ParticipantID: "a", Position: 1},
			{ParticipantID: "b", Position: 2},
			{ParticipantID: "x", Position: 3},
		}},
		{"duplicate participant", []Placement{
			{ParticipantID: "a", Position: 1},
			{ParticipantID: "a", Position: 2},
			{ParticipantID: "c", Position: 3},
		}},
		{"duplicate position", []Placement{
			{ParticipantID: "a", Position: 1},
			{ParticipantID: "b", Position: 1},
			{ParticipantID: "c", Position: 3},
		}},
		{"position gap", []Placement{
			{ParticipantID: "a", Position: 1},
			{ParticipantID: "b", Position: 2},
			{ParticipantID: "c", Position: 4},
		}},
		{"zero position", []Placement{
			{ParticipantID: "a", Position: 0},
			{ParticipantID: "b", Position: 1},
			{ParticipantID: "c", Position: 2},
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, ValidateRanking(tt.ranking, participants), ErrInvalidResult)
		})
	}
}
