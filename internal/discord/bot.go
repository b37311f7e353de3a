// Package discord is the chat-platform adapter: slash commands, voice-state
// events, nickname side effects and announcements. All accounting goes
// through the habit service; nothing in here touches storage directly.
package discord

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/bwmarrin/discordgo"

	"github.com/halcyonforge/habitbot/internal/habit"
	"github.com/halcyonforge/habitbot/internal/voice"
	"github.com/halcyonforge/habitbot/internal/worker"
)

// Config holds the bot configuration
type Config struct {
	Token                 string
	AppID                 string
	AnnouncementChannelID string
}

// Bot represents the Discord bot
type Bot struct {
	Session  *discordgo.Session
	AppID    string
	Registry *CommandRegistry

	habits    habit.Service
	tracker   *voice.Tracker
	pool      *worker.Pool
	announceC string
	nicknames *NicknameWriter
}

// New creates a new Discord bot. The voice tracker is constructed by the
// caller so its announcer can close over this bot's session.
func New(cfg Config, habits habit.Service, pool *worker.Pool) (*Bot, error) {
	s, err := discordgo.New("Bot " + cfg.Token)
	if err != nil {
		return nil, fmt.Errorf("error creating Discord session: %w", err)
	}

	s.Identify.Intents = discordgo.IntentsGuilds |
		discordgo.IntentsGuildMembers |
		discordgo.IntentsGuildVoiceStates

	b := &Bot{
		Session:   s,
		AppID:     cfg.AppID,
		Registry:  NewCommandRegistry(),
		habits:    habits,
		pool:      pool,
		announceC: cfg.AnnouncementChannelID,
		nicknames: NewNicknameWriter(s),
	}

	b.Registry.Register(LogCommand(b))
	b.Registry.Register(StatsCommand(b))

	return b, nil
}

// SetTracker wires the voice tracker after construction.
func (b *Bot) SetTracker(t *voice.Tracker) {
	b.tracker = t
}

// Start opens the gateway connection and installs event handlers.
func (b *Bot) Start() error {
	b.Session.AddHandler(b.ready)
	b.Session.AddHandler(b.interactionCreate)
	b.Session.AddHandler(b.voiceStateUpdate)

	if err := b.Session.Open(); err != nil {
		return fmt.Errorf("error opening connection: %w", err)
	}

	slog.Info("Discord bot is now running. Press CTRL-C to exit.")
	return nil
}

// Stop closes the gateway connection.
func (b *Bot) Stop() {
	_ = b.Session.Close()
}

// Run runs the bot until a signal is received
func (b *Bot) Run() error {
	if err := b.Start(); err != nil {
		return err
	}
	defer b.Stop()

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	return nil
}

func (b *Bot) ready(s *discordgo.Session, r *discordgo.Ready) {
	slog.Info("Bot is ready", "user", s.State.User.Username)
}

func (b *Bot) interactionCreate(s *discordgo.Session, i *discordgo.InteractionCreate) {
	if i.Type != discordgo.InteractionApplicationCommand {
		return
	}
	b.Registry.Handle(s, i)
}
