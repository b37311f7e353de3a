// Package ledger owns the persisted per-(user, guild) XP counters. It wraps
// a storage adapter with the accounting-core semantics: idempotent
// get-or-create, atomic accumulate, and derived total reads.
package ledger

import (
	"context"
	"fmt"

	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/logger"
	"github.com/halcyonforge/habitbot/internal/metrics"
	"github.com/halcyonforge/habitbot/internal/repository"
	"github.com/halcyonforge/habitbot/internal/stats"
)

// Service defines the interface for ledger operations.
type Service interface {
	// GetOrCreate returns the stat sheet for the key, creating a zeroed
	// record on first interaction.
	GetOrCreate(ctx context.Context, userID, guildID string) (*domain.StatSheet, error)

	// Accumulate adds non-negative increments to one or more accumulators
	// in a single atomic storage operation.
	Accumulate(ctx context.Context, userID, guildID string, deltas domain.StatDeltas) error

	// ReadSheet returns the current persisted sheet without creating one.
	ReadSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, error)

	// ReadTotal returns the aggregated total XP for the key.
	ReadTotal(ctx context.Context, userID, guildID string) (int, error)
}

type service struct {
	repo repository.Ledger
}

// NewService creates a new ledger service over the given storage adapter.
func NewService(repo repository.Ledger) Service {
	return &service{repo: repo}
}

func (s *service) GetOrCreate(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	log := logger.FromContext(ctx)

	sheet, err := s.repo.GetOrCreate(ctx, userID, guildID)
	if err != nil {
		metrics.StoreErrors.Inc()
		log.Error("Failed to get or create stat sheet", "error", err, "user_id", userID, "guild_id", guildID)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	return sheet, nil
}

func (s *service) Accumulate(ctx context.Context, userID, guildID string, deltas domain.StatDeltas) error {
	log := logger.FromContext(ctx)

	for stat, delta := range deltas {
		if delta < 0 {
			return fmt.Errorf("negative delta %d for stat %s", delta, stat)
		}
	}

	if err := s.repo.AddXP(ctx, userID, guildID, deltas); err != nil {
		metrics.StoreErrors.Inc()
		log.Error("Failed to accumulate XP", "error", err, "user_id", userID, "guild_id", guildID)
		return fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}

	for stat, delta := range deltas {
		metrics.XPGranted.WithLabelValues(stat).Add(float64(delta))
	}
	log.Debug("XP accumulated", "user_id", userID, "guild_id", guildID, "deltas", fmt.Sprint(deltas))
	return nil
}

func (s *service) ReadSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	sheet, err := s.repo.GetSheet(ctx, userID, guildID)
	if err != nil {
		metrics.StoreErrors.Inc()
		logger.FromContext(ctx).Error("Failed to read stat sheet", "error", err, "user_id", userID, "guild_id", guildID)
		return nil, fmt.Errorf("%w: %v", domain.ErrStoreUnavailable, err)
	}
	return sheet, nil
}

func (s *service) ReadTotal(ctx context.Context, userID, guildID string) (int, error) {
	sheet, err := s.ReadSheet(ctx, userID, guildID)
	if err != nil {
		return 0, err
	}
	return stats.TotalXP(sheet), nil
}
