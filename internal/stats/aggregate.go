// Package stats derives per-stat and total XP views from a persisted stat
// sheet. It never mutates the sheet.
package stats

import "github.com/halcyonforge/habitbot/internal/domain"

// TotalXP sums the top-level stat accumulators. Sub-stats are deliberately
// excluded: soma is maintained as a running sum of its children at write
// time, so adding agility and strength here would count them twice.
func TotalXP(sheet *domain.StatSheet) int {
	if sheet == nil {
		return 0
	}

	total := 0
	for _, name := range domain.TopLevelStats {
		total += sheet.Stat(name)
	}
	return total
}

// StatXP returns the accumulator for one stat. Missing or unknown stats
// read as zero, which keeps records from older schemas valid.
func StatXP(sheet *domain.StatSheet, name string) int {
	if sheet == nil {
		return 0
	}
	return sheet.Stat(name)
}
