package discord

import (
	"fmt"
	"strings"

	"github.com/bwmarrin/discordgo"

	"github.com/halcyonforge/habitbot/internal/activity"
	"github.com/halcyonforge/habitbot/internal/domain"
)

// User-facing message constants
const (
	MsgNoActivity       = "Log at least one activity with a positive number of minutes."
	MsgStoreUnavailable = "The stat store is unavailable right now. Please try again later."
	MsgInternalError    = "Something went wrong processing the command."
)

// displayNames maps internal identifiers to the names shown in responses.
var displayNames = map[string]string{
	activity.Workout:       "Workout",
	activity.Video:         "Video",
	activity.Reading:       "Reading",
	activity.Writing:       "Writing",
	activity.Meditation:    "Meditation",
	activity.BackgroundMed: "Background Meditation",
	activity.Work:          "Work",
	activity.Agility:       "Agility",
	activity.Strength:      "Strength",
	activity.WorkVoice:     "Voice Work",

	domain.StatSoma:       "Soma",
	domain.StatKnowledge:  "Knowledge",
	domain.StatPerception: "Perception",
}

// displayName returns the user-facing name for an activity or stat.
func displayName(id string) string {
	if n, ok := displayNames[id]; ok {
		return n
	}
	return id
}

// formatLogLine renders one breakdown line of a log response. Activities
// with a 1x multiplier omit it.
func formatLogLine(line domain.LogLine) string {
	if line.Multiplier == 1.0 {
		return fmt.Sprintf("%s: %d min → +%d XP (%s)",
			displayName(line.Activity), line.Minutes, line.XPGained, displayName(line.Stat))
	}
	return fmt.Sprintf("%s: %d min x%.1f → +%d XP (%s)",
		displayName(line.Activity), line.Minutes, line.Multiplier, line.XPGained, displayName(line.Stat))
}

// formatLogResult renders the full log response: per-activity breakdown
// followed by the updated total level.
func formatLogResult(username string, result *domain.LogResult) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s** logged:\n", username)
	for _, line := range result.Lines {
		b.WriteString(formatLogLine(line))
		b.WriteByte('\n')
	}
	fmt.Fprintf(&b, "Total Level %d (%d/%d XP)",
		result.Level.Level, result.Level.CurrentXP, result.Level.NextLevelXP)
	return b.String()
}

// statsEmbed builds the stats response embed: one field per stat, sub-stats
// marked with an arrow.
func statsEmbed(username string, report *domain.StatsReport) *discordgo.MessageEmbed {
	fields := make([]*discordgo.MessageEmbedField, 0, len(report.Stats))
	for _, s := range report.Stats {
		name := displayName(s.Name)
		if s.SubLevel {
			name = "↳ " + name
		}
		fields = append(fields, &discordgo.MessageEmbedField{
			Name:   name,
			Value:  fmt.Sprintf("Level %d (%d/%d XP)", s.Level.Level, s.Level.CurrentXP, s.Level.NextLevelXP),
			Inline: true,
		})
	}

	return &discordgo.MessageEmbed{
		Title: fmt.Sprintf("%s's Stats", username),
		Description: fmt.Sprintf("Total Level %d (%d/%d XP)",
			report.Level.Level, report.Level.CurrentXP, report.Level.NextLevelXP),
		Color:  0x3498db, // Blue
		Fields: fields,
	}
}

// formatVoiceAward renders the public announcement for a credited voice
// session. The channel is rendered as a mention so it stays correct when
// the channel is renamed.
func formatVoiceAward(username string, award domain.VoiceAward) string {
	return fmt.Sprintf("**%s** earned **%d Work XP** from <#%s>!\nTotal Level %d (%d/%d XP)",
		username, award.XPGained, award.ChannelID,
		award.Level.Level, award.Level.CurrentXP, award.Level.NextLevelXP)
}
