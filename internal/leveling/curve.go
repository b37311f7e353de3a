// Package leveling implements the triangular level curve shared by every
// XP display in the bot: level 1 is cleared after 100 XP, level 2 after a
// further 200 XP, level n after a further n*100 XP.
package leveling

import "github.com/halcyonforge/habitbot/internal/domain"

// BaseLevel is the level of a record with zero XP. The curve is 1-based:
// new users start at level 1 with 100 XP to the next level.
const BaseLevel = 1

// XPPerLevelStep is the amount by which the per-level requirement grows.
const XPPerLevelStep = 100

// Evaluate converts a cumulative XP total into the reached level, progress
// into that level, and the requirement for the next one. Accumulators are
// stored as whole XP (multipliers are floored at grant time), so the input
// is an int. Negative inputs clamp to zero.
//
// Runs in O(sqrt(totalXP)) steps: the requirement grows by 100 each level,
// so the loop count is bounded by the triangular root of the total.
func Evaluate(totalXP int) domain.LevelResult {
	if totalXP < 0 {
		totalXP = 0
	}

	level := BaseLevel
	required := BaseLevel * XPPerLevelStep
	remaining := totalXP

	for remaining >= required {
		remaining -= required
		level++
		required = level * XPPerLevelStep
	}

	return domain.LevelResult{
		Level:       level,
		CurrentXP:   remaining,
		NextLevelXP: required,
	}
}

// CumulativeXP reconstructs the total XP represented by a LevelResult: the
// sum of all cleared thresholds plus the progress into the current level.
// Evaluate and CumulativeXP round-trip exactly.
func CumulativeXP(r domain.LevelResult) int {
	total := r.CurrentXP
	for l := BaseLevel; l < r.Level; l++ {
		total += l * XPPerLevelStep
	}
	return total
}
