package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/halcyonforge/habitbot/internal/config"
	"github.com/halcyonforge/habitbot/internal/database"
	"github.com/halcyonforge/habitbot/internal/database/jsonfile"
	"github.com/halcyonforge/habitbot/internal/database/postgres"
	"github.com/halcyonforge/habitbot/internal/database/restapi"
	"github.com/halcyonforge/habitbot/internal/discord"
	"github.com/halcyonforge/habitbot/internal/habit"
	"github.com/halcyonforge/habitbot/internal/ledger"
	"github.com/halcyonforge/habitbot/internal/repository"
	"github.com/halcyonforge/habitbot/internal/server"
	"github.com/halcyonforge/habitbot/internal/voice"
	"github.com/halcyonforge/habitbot/internal/worker"
)

// Connection pool tuning for the postgres backend
const (
	dbMaxConns = 10
	dbMaxIdle  = 5 * time.Minute
	dbMaxLife  = 30 * time.Minute
)

const shutdownTimeout = 10 * time.Second

// ledgerStore is the full storage contract every backend satisfies.
type ledgerStore interface {
	repository.Ledger
	repository.ActivityLog
	repository.Pinger
}

func main() {
	if err := run(); err != nil {
		slog.Error("Fatal error", "error", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("configuration failed: %w", err)
	}

	initLogger(cfg)
	slog.Info("Starting habitbot",
		"version", cfg.Version,
		"environment", cfg.Environment,
		"store_backend", cfg.StoreBackend)

	store, cleanup, err := openStore(cfg)
	if err != nil {
		return fmt.Errorf("failed to open store: %w", err)
	}
	defer cleanup()

	ledgerService := ledger.NewService(store)
	habitService := habit.NewService(ledgerService, store)

	pool := worker.NewPool(worker.DefaultWorkers, worker.DefaultQueueSize)
	pool.Start()
	defer pool.Stop()

	bot, err := discord.New(discord.Config{
		Token:                 cfg.DiscordToken,
		AppID:                 cfg.DiscordAppID,
		AnnouncementChannelID: cfg.AnnouncementChannelID,
	}, habitService, pool)
	if err != nil {
		return fmt.Errorf("failed to create bot: %w", err)
	}

	tracker := voice.NewTracker(habitService, cfg.TrackedVoiceChannels, bot.Announcer())
	bot.SetTracker(tracker)

	srv := server.NewServer(cfg.Port, cfg.APIKey, store, habitService)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("HTTP server failed", "error", err)
		}
	}()

	if err := bot.Start(); err != nil {
		return fmt.Errorf("failed to start bot: %w", err)
	}
	defer bot.Stop()

	forceUpdate := os.Getenv("DISCORD_FORCE_COMMAND_UPDATE") == "true"
	if err := bot.RegisterCommands(forceUpdate); err != nil {
		// The bot can still serve already-registered commands.
		slog.Error("Failed to register commands", "error", err)
	}

	sc := make(chan os.Signal, 1)
	signal.Notify(sc, syscall.SIGINT, syscall.SIGTERM, os.Interrupt)
	<-sc

	slog.Info("Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Stop(ctx); err != nil {
		slog.Error("HTTP server shutdown failed", "error", err)
	}

	return nil
}

// openStore builds the configured storage backend. The cleanup function
// releases backend resources and is safe to call once.
func openStore(cfg *config.Config) (ledgerStore, func(), error) {
	switch cfg.StoreBackend {
	case config.BackendPostgres:
		pool, err := database.NewPool(cfg.GetDBConnString(), dbMaxConns, dbMaxIdle, dbMaxLife)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewLedgerRepository(pool), pool.Close, nil

	case config.BackendRESTAPI:
		repo := restapi.NewLedgerRepository(cfg.RESTBaseURL, cfg.RESTAPIKey)
		return repo, func() {}, nil

	case config.BackendJSONFile:
		store, err := jsonfile.Open(cfg.JSONFilePath)
		if err != nil {
			return nil, nil, err
		}
		return store, func() {}, nil

	default:
		return nil, nil, fmt.Errorf("unknown store backend: %s", cfg.StoreBackend)
	}
}
