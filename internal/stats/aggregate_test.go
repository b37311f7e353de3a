package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halcyonforge/habitbot/internal/domain"
)

func TestTotalXP(t *testing.T) {
	t.Run("sums top-level stats only", func(t *testing.T) {
		// Soma already includes the agility and strength contributions
		// (30 + 20); the sub-stat accumulators must not be added again.
		sheet := &domain.StatSheet{
			Soma:       50,
			Knowledge:  10,
			Perception: 5,
			Work:       0,
			Agility:    30,
			Strength:   20,
		}

		assert.Equal(t, 65, TotalXP(sheet))
	})

	t.Run("empty sheet totals zero", func(t *testing.T) {
		assert.Equal(t, 0, TotalXP(&domain.StatSheet{}))
	})

	t.Run("nil sheet totals zero", func(t *testing.T) {
		assert.Equal(t, 0, TotalXP(nil))
	})
}

func TestStatXP(t *testing.T) {
	sheet := &domain.StatSheet{Soma: 7, Agility: 3}

	assert.Equal(t, 7, StatXP(sheet, domain.StatSoma))
	assert.Equal(t, 3, StatXP(sheet, domain.StatAgility))
	assert.Equal(t, 0, StatXP(sheet, domain.StatWork))

	// Unknown stat names read as zero for schema back-compat.
	assert.Equal(t, 0, StatXP(sheet, "charisma"))
	assert.Equal(t, 0, StatXP(nil, domain.StatSoma))
}
