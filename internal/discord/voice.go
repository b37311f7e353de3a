package discord

import (
	"context"

	"github.com/bwmarrin/discordgo"

	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/logger"
	"github.com/halcyonforge/habitbot/internal/worker"
)

// voiceStateUpdate bridges gateway voice events into the session tracker.
// The previous channel only arrives when the gateway cached the old state;
// after a reconnect BeforeUpdate is nil and a bare leave is a no-op.
func (b *Bot) voiceStateUpdate(s *discordgo.Session, vs *discordgo.VoiceStateUpdate) {
	if b.tracker == nil || vs.UserID == s.State.User.ID {
		return
	}

	oldChannelID := ""
	if vs.BeforeUpdate != nil {
		oldChannelID = vs.BeforeUpdate.ChannelID
	}

	ctx := logger.WithRequestID(context.Background(), logger.GenerateRequestID())
	b.tracker.HandleUpdate(ctx, vs.UserID, vs.GuildID, oldChannelID, vs.ChannelID)
}

// Announcer returns the tracker callback that posts voice awards to the
// announcement channel and refreshes the member's nickname. Both side
// effects run on the worker pool so the gateway handler never blocks.
func (b *Bot) Announcer() func(ctx context.Context, award domain.VoiceAward) {
	return func(ctx context.Context, award domain.VoiceAward) {
		log := logger.FromContext(ctx)

		ok := b.pool.Enqueue(worker.JobFunc(func(ctx context.Context) error {
			username := award.UserID
			if member, err := b.Session.GuildMember(award.GuildID, award.UserID); err == nil {
				username = member.User.Username
			}

			if b.announceC != "" {
				msg := formatVoiceAward(username, award)
				if _, err := b.Session.ChannelMessageSend(b.announceC, msg); err != nil {
					log.Warn("Failed to post voice announcement", "error", err, "user_id", award.UserID)
				}
			}

			b.nicknames.Apply(ctx, award.GuildID, award.UserID, award.Level.Level)
			return nil
		}))
		if !ok {
			log.Warn("Worker queue full, dropping voice announcement", "user_id", award.UserID)
		}
	}
}
