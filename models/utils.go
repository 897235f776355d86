package models

// IsByeMatch determines if a match is a bye. Engines indicate this by a
// match holding a single participant that advances without playing.
func IsByeMatch(m *Match) bool {
	if m == nil {
		return true
	}
	return len(m.Participants) < 2
}

// ValidateRanking checks that a ranking covers exactly the given
// participants with a contiguous 1..K permutation of positions.
func ValidateRanking(ranking []Placement, participants []string) error {
	if len(ranking) != len(participants) {
		return ErrInvalidResult
	}
	seen := make(map[string]bool, len(ranking))
	positions := make(map[int]bool, len(ranking))
	for _, pl := range ranking {
		found := false
		for _, id := range participants {
			if id == pl.ParticipantID {
				found = true
				break
			}
		}
		if !found || seen[pl.ParticipantID] {
			return ErrInvalidResult
		}
		seen[pl.ParticipantID] = true
		if pl.Position < 1 || pl.Position > len(ranking) || positions[pl.Position] {
			return ErrInvalidResult
		}
		positions[pl.Position] = true
	}
	return nil
}
