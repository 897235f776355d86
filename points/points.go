// Package points converts finish positions into scores for
// multi-placement formats. All functions are pure.
package points

import "fmt"

// System names select how a placement maps to points
const (
	SystemFormula1     = "formula1"
	SystemMotoGP       = "motogp"
	SystemLinear       = "linear"
	SystemWinnerDouble = "winnerDouble"
	SystemCustom       = "custom"
)

// Predefined points tables, 1st place first
var (
	Formula1Table = []float64{25, 18, 15, 12, 10, 8, 6, 4, 2, 1}
	MotoGPTable   = []float64{25, 20, 16, 13, 11, 10, 9, 8, 7, 6, 5, 4, 3, 2, 1}
)

// Presets maps preset names to their fixed tables
var Presets = map[string][]float64{
	SystemFormula1: Formula1Table,
	SystemMotoGP:   MotoGPTable,
}

// GeneratePointsArray produces a points array of exactly
// participantCount entries, 1-indexed by finish position. Fixed tables
// are truncated or zero-padded to fit; the linear formula awards
// N..1, and winnerDouble is linear with a doubled first place.
func GeneratePointsArray(system string, custom []float64, participantCount int) ([]float64, error) {
	if participantCount < 1 {
		return nil, fmt.Errorf("points: participant count must be positive, got %d", participantCount)
	}

	switch system {
	case SystemFormula1, SystemMotoGP:
		return fitTable(Presets[system], participantCount), nil
	case SystemLinear:
		out := make([]float64, participantCount)
		for i := range out {
			out[i] = float64(participantCount - i)
		}
		return out, nil
	case SystemWinnerDouble:
		out := make([]float64, participantCount)
		for i := range out {
			out[i] = float64(participantCount - i)
		}
		out[0] = float64(participantCount) * 2
		return out, nil
	case SystemCustom:
		if err := ValidateCustom(custom); err != nil {
			return nil, err
		}
		return fitTable(custom, participantCount), nil
	}
	return nil, fmt.Errorf("points: unknown points system %q", system)
}

// GetPointsForPlacement looks up the points for a 1-based finish
// position. Out-of-range positions return 0, never an error.
func GetPointsForPlacement(table []float64, position int) float64 {
	if position < 1 || position > len(table) {
		return 0
	}
	return table[position-1]
}

// ValidateCustom rejects empty tables and negative entries
func ValidateCustom(table []float64) error {
	if len(table) == 0 {
		return fmt.Errorf("points: custom table must not be empty")
	}
	for i, v := range table {
		if v < 0 {
			return fmt.Errorf("points: custom table entry %d is negative", i+1)
		}
	}
	return nil
}

// IsUnusualCustom reports whether a custom table is non-descending.
// Such tables are accepted but worth surfacing to the caller.
func IsUnusualCustom(table []float64) bool {
	for i := 1; i < len(table); i++ {
		if table[i] > table[i-1] {
			return true
		}
	}
	return false
}

func fitTable(table []float64, n int) []float64 {
	out := make([]float64, n)
	copy(out, table)
	return out
}
