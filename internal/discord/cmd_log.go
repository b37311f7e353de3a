package discord

import (
	"context"
	"errors"
	"log/slog"

	"github.com/bwmarrin/discordgo"

	"github.com/halcyonforge/habitbot/internal/activity"
	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/logger"
	"github.com/halcyonforge/habitbot/internal/worker"
)

// LogCommand returns the /log command definition and handler. One integer
// option per loggable activity, all optional; at least one must be positive.
func LogCommand(b *Bot) (*discordgo.ApplicationCommand, CommandHandler) {
	var minValue float64 = 1

	options := make([]*discordgo.ApplicationCommandOption, 0, len(activity.Names))
	for _, name := range activity.Names {
		entry, _ := activity.Lookup(name)
		options = append(options, &discordgo.ApplicationCommandOption{
			Type:        discordgo.ApplicationCommandOptionInteger,
			Name:        name,
			Description: entry.Description,
			Required:    false,
			MinValue:    &minValue,
		})
	}

	cmd := &discordgo.ApplicationCommand{
		Name:        "log",
		Description: "Log activity minutes and earn XP",
		Options:     options,
	}

	handler := func(s *discordgo.Session, i *discordgo.InteractionCreate) {
		ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
		user := interactionUser(i)
		if user == nil {
			respondEphemeral(s, i, MsgInternalError)
			return
		}

		minutes := make(map[string]int)
		for _, opt := range i.ApplicationCommandData().Options {
			minutes[opt.Name] = int(opt.IntValue())
		}

		result, err := b.habits.LogActivities(ctx, user.ID, i.GuildID, minutes)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoActivity), errors.Is(err, domain.ErrInvalidMinutes):
				respondEphemeral(s, i, MsgNoActivity)
			case errors.Is(err, domain.ErrStoreUnavailable):
				slog.Error("Log command failed", "error", err, "user_id", user.ID)
				respondEphemeral(s, i, MsgStoreUnavailable)
			default:
				slog.Error("Log command failed", "error", err, "user_id", user.ID)
				respondEphemeral(s, i, MsgInternalError)
			}
			return
		}

		respond(s, i, formatLogResult(user.Username, result))

		// Nickname rewrite happens off the interaction path.
		level := result.Level.Level
		guildID := i.GuildID
		userID := user.ID
		if guildID != "" {
			ok := b.pool.Enqueue(worker.JobFunc(func(ctx context.Context) error {
				b.nicknames.Apply(ctx, guildID, userID, level)
				return nil
			}))
			if !ok {
				slog.Warn("Worker queue full, skipping nickname update", "user_id", userID)
			}
		}
	}

	return cmd, handler
}
