package discord

import (
	"testing"

	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
)

func TestCommandsEqual(t *testing.T) {
	logCmd := &discordgo.ApplicationCommand{
		Name:        "log",
		Description: "Log activity minutes and earn XP",
		Options: []*discordgo.ApplicationCommandOption{
			{Type: discordgo.ApplicationCommandOptionInteger, Name: "workout", Description: "Any physical activity (1x Soma)"},
		},
	}
	statsCmd := &discordgo.ApplicationCommand{
		Name:        "stats",
		Description: "Show stat levels and XP progress",
	}

	t.Run("identical sets match", func(t *testing.T) {
		existing := []*discordgo.ApplicationCommand{logCmd, statsCmd}
		desired := []*discordgo.ApplicationCommand{statsCmd, logCmd}
		assert.True(t, commandsEqual(existing, desired))
	})

	t.Run("missing command differs", func(t *testing.T) {
		existing := []*discordgo.ApplicationCommand{logCmd}
		desired := []*discordgo.ApplicationCommand{logCmd, statsCmd}
		assert.False(t, commandsEqual(existing, desired))
	})

	t.Run("changed description differs", func(t *testing.T) {
		changed := &discordgo.ApplicationCommand{
			Name:        "stats",
			Description: "Show stats",
		}
		existing := []*discordgo.ApplicationCommand{logCmd, statsCmd}
		desired := []*discordgo.ApplicationCommand{logCmd, changed}
		assert.False(t, commandsEqual(existing, desired))
	})

	t.Run("changed option differs", func(t *testing.T) {
		changed := &discordgo.ApplicationCommand{
			Name:        "log",
			Description: "Log activity minutes and earn XP",
			Options: []*discordgo.ApplicationCommandOption{
				{Type: discordgo.ApplicationCommandOptionInteger, Name: "workout", Description: "different", Required: true},
			},
		}
		existing := []*discordgo.ApplicationCommand{logCmd}
		desired := []*discordgo.ApplicationCommand{changed}
		assert.False(t, commandsEqual(existing, desired))
	})
}

func TestRegistryRegister(t *testing.T) {
	r := NewCommandRegistry()
	cmd := &discordgo.ApplicationCommand{Name: "stats"}
	r.Register(cmd, func(s *discordgo.Session, i *discordgo.InteractionCreate) {})

	assert.Contains(t, r.Commands, "stats")
	assert.Contains(t, r.Handlers, "stats")
}
