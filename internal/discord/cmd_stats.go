package discord

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/logger"
)

// StatsCommand returns the /stats command definition and handler. Read-only:
// it creates the sheet if needed but never grants XP.
func StatsCommand(b *Bot) (*discordgo.ApplicationCommand, CommandHandler) {
	cmd := &discordgo.ApplicationCommand{
		Name:        "stats",
		Description: "Show stat levels and XP progress",
		Options: []*discordgo.ApplicationCommandOption{
			{
				Type:        discordgo.ApplicationCommandOptionUser,
				Name:        "user",
				Description: "User to look up (defaults to you)",
				Required:    false,
			},
		},
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())

		target := interactionUser(i)
		for _, opt := range i.ApplicationCommandData().Options {
			if opt.Name == "user" {
				target = opt.UserValue(s)
			}
		}
		if target == nil {
			respondEphemeral(s, i, MsgInternalError)
			return
		}

		report, err := b.habits.GetStats(ctx, target.ID, i.GuildID)
		if err != nil {
			slog.Error("Stats command failed", "error", err, "user_id", target.ID)
			if errors.Is(err, domain.ErrStoreUnavailable) {
				respondEphemeral(s, i, MsgStoreUnavailable)
			} else {
				respondEphemeral(s, i, MsgInternalError)
			}
			return
		}

		respondEmbed(s, i, statsEmbed(target.Username, report))
	}

	return cmd, handler
}
