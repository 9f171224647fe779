package tiers

import (
	types "mazdady-market/internal/types/market"
)

// Evaluate returns the tier level a seller should hold after their
// aggregate rating changed. The table is the ordered rules source:
//
//   - promotion moves up at most one rung per evaluation, even when the
//     rating would satisfy a higher one;
//   - demotion scans downward and lands on the highest rung whose
//     MinRating is still satisfied, falling back to the lowest rung;
//   - an unknown current level is returned unchanged.
//
// Only MinRating is consulted. MinTransactions and MinActivity exist in the
// schema but are not part of the decision yet.
func Evaluate(current string, rating float64, table []types.UserTier) string {
	idx := indexOf(current, table)
	if idx < 0 {
		return current
	}

	// promotion: one rung at a time
	if idx+1 < len(table) && rating >= table[idx+1].Requirements.MinRating {
		return table[idx+1].Level
	}

	// demotion: only when the current rung is no longer satisfied
	if idx > 0 && rating < table[idx].Requirements.MinRating {
		for i := idx - 1; i >= 0; i-- {
			if rating >= table[i].Requirements.MinRating {
				return table[i].Level
			}
		}
		return table[0].Level
	}

	return current
}

func indexOf(level string, table []types.UserTier) int {
	for i, t := range table {
		if t.Level == level {
			return i
		}
	}
	return -1
}
