package tiers

import (
	"testing"

	"github.com/stretchr/testify/assert"

	types "mazdady-market/internal/types/market"
)

func smallTable() []types.UserTier {
	return []types.UserTier{
		{Level: "normal", Requirements: types.TierRequirements{MinRating: 0}},
		{Level: "bronze", Requirements: types.TierRequirements{MinRating: 4.0}},
		{Level: "silver", Requirements: types.TierRequirements{MinRating: 4.2}},
	}
}

func TestEvaluate(t *testing.T) {
	tbl := smallTable()

	tests := []struct {
		name     string
		current  string
		rating   float64
		expected string
	}{
		{
			// rating satisfies silver too, but promotion moves one rung only
			name:     "promotion is single step",
			current:  "normal",
			rating:   4.9,
			expected: "bronze",
		},
		{
			name:     "second evaluation takes the next rung",
			current:  "bronze",
			rating:   4.9,
			expected: "silver",
		},
		{
			name:     "no change inside the band",
			current:  "bronze",
			rating:   4.1,
			expected: "bronze",
		},
		{
			name:     "lowest rung never demotes",
			current:  "normal",
			rating:   1.0,
			expected: "normal",
		},
		{
			name:     "bronze below threshold drops to normal",
			current:  "bronze",
			rating:   3.5,
			expected: "normal",
		},
		{
			name:     "top rung has nowhere to go",
			current:  "silver",
			rating:   5.0,
			expected: "silver",
		},
		{
			name:     "unknown tier is returned unchanged",
			current:  "wat",
			rating:   5.0,
			expected: "wat",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, Evaluate(tt.current, tt.rating, tbl))
		})
	}
}

func TestEvaluate_DemotionMayDropSeveralRungs(t *testing.T) {
	tbl := []types.UserTier{
		{Level: "normal", Requirements: types.TierRequirements{MinRating: 0}},
		{Level: "bronze", Requirements: types.TierRequirements{MinRating: 4.0}},
		{Level: "silver", Requirements: types.TierRequirements{MinRating: 4.2}},
		{Level: "gold", Requirements: types.TierRequirements{MinRating: 4.5}},
	}

	// collapse from gold straight past silver and bronze
	assert.Equal(t, "normal", Evaluate("gold", 1.0, tbl))

	// partial collapse lands on the highest rung still satisfied
	assert.Equal(t, "bronze", Evaluate("gold", 4.1, tbl))
}

func TestEvaluate_DefaultTableOrder(t *testing.T) {
	tbl := types.DefaultTiers()

	// a flawless seller still climbs one rung per evaluation
	level := "normal"
	for _, expected := range []string{"bronze", "silver", "gold", "platinum", "diamond", "su_diamond", "MAZ"} {
		level = Evaluate(level, 5.0, tbl)
		assert.Equal(t, expected, level)
	}
}
