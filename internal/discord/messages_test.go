package discord

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/halcyonforge/habitbot/internal/activity"
	"github.com/halcyonforge/habitbot/internal/domain"
)

func TestFormatLogLine(t *testing.T) {
	t.Run("unit multiplier omitted", func(t *testing.T) {
		line := domain.LogLine{
			Activity:   activity.Workout,
			Stat:       domain.StatSoma,
			Minutes:    30,
			Multiplier: 1.0,
			XPGained:   30,
		}
		assert.Equal(t, "Workout: 30 min → +30 XP (Soma)", formatLogLine(line))
	})

	t.Run("fractional multiplier shown", func(t *testing.T) {
		line := domain.LogLine{
			Activity:   activity.Video,
			Stat:       domain.StatKnowledge,
			Minutes:    10,
			Multiplier: 0.7,
			XPGained:   7,
		}
		assert.Equal(t, "Video: 10 min x0.7 → +7 XP (Knowledge)", formatLogLine(line))
	})
}

func TestFormatLogResult(t *testing.T) {
	result := &domain.LogResult{
		Lines: []domain.LogLine{
			{Activity: activity.Workout, Stat: domain.StatSoma, Minutes: 30, Multiplier: 1.0, XPGained: 30},
		},
		TotalXP: 130,
		Level:   domain.LevelResult{Level: 2, CurrentXP: 30, NextLevelXP: 200},
	}

	got := formatLogResult("alice", result)
	assert.Contains(t, got, "**alice** logged:")
	assert.Contains(t, got, "Workout: 30 min → +30 XP (Soma)")
	assert.Contains(t, got, "Total Level 2 (30/200 XP)")
}

func TestStatsEmbed(t *testing.T) {
	report := &domain.StatsReport{
		TotalXP: 50,
		Level:   domain.LevelResult{Level: 1, CurrentXP: 50, NextLevelXP: 100},
		Stats: []domain.StatLevel{
			{Name: domain.StatSoma, XP: 50, Level: domain.LevelResult{Level: 1, CurrentXP: 50, NextLevelXP: 100}},
			{Name: domain.StatAgility, XP: 20, Level: domain.LevelResult{Level: 1, CurrentXP: 20, NextLevelXP: 100}, SubLevel: true},
		},
	}

	embed := statsEmbed("alice", report)
	assert.Equal(t, "alice's Stats", embed.Title)
	assert.Equal(t, "Total Level 1 (50/100 XP)", embed.Description)
	assert.Len(t, embed.Fields, 2)
	assert.Equal(t, "Soma", embed.Fields[0].Name)
	assert.Equal(t, "Level 1 (50/100 XP)", embed.Fields[0].Value)
	assert.Equal(t, "↳ Agility", embed.Fields[1].Name)
}

func TestFormatVoiceAward(t *testing.T) {
	award := domain.VoiceAward{
		ChannelID: "chan-1",
		Minutes:   45,
		XPGained:  45,
		Level:     domain.LevelResult{Level: 2, CurrentXP: 45, NextLevelXP: 200},
	}

	got := formatVoiceAward("alice", award)
	assert.Equal(t, "**alice** earned **45 Work XP** from <#chan-1>!\nTotal Level 2 (45/200 XP)", got)
}

func TestDisplayNameFallsBackToID(t *testing.T) {
	assert.Equal(t, "Workout", displayName(activity.Workout))
	assert.Equal(t, "mystery", displayName("mystery"))
}
