// Package habit implements the command-facing accounting operations: logging
// activity minutes into the ledger and producing read-only stat breakdowns.
package habit

import (
	"context"
	"fmt"
	"time"

	"github.com/halcyonforge/habitbot/internal/activity"
	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/ledger"
	"github.com/halcyonforge/habitbot/internal/leveling"
	"github.com/halcyonforge/habitbot/internal/logger"
	"github.com/halcyonforge/habitbot/internal/metrics"
	"github.com/halcyonforge/habitbot/internal/repository"
	"github.com/halcyonforge/habitbot/internal/stats"
)

// Service defines the interface for habit-tracking operations.
type Service interface {
	// LogActivities grants XP for every positive activity field in minutes
	// and returns the per-activity breakdown plus the updated total level.
	// Returns domain.ErrNoActivity when no field is positive.
	LogActivities(ctx context.Context, userID, guildID string, minutes map[string]int) (*domain.LogResult, error)

	// LogVoiceSession credits a closed voice session as work XP and
	// returns the award for announcement formatting.
	LogVoiceSession(ctx context.Context, userID, guildID, channelID string, sessionMinutes int) (*domain.VoiceAward, error)

	// GetStats returns the stat breakdown for a user. Read-only.
	GetStats(ctx context.Context, userID, guildID string) (*domain.StatsReport, error)
}

type service struct {
	ledger      ledger.Service
	activityLog repository.ActivityLog
}

// NewService creates a new habit service.
func NewService(ledgerSvc ledger.Service, activityLog repository.ActivityLog) Service {
	return &service{
		ledger:      ledgerSvc,
		activityLog: activityLog,
	}
}

// LogActivities applies each positive field in catalog order. Writes across
// fields are not transactional: a storage fault mid-way leaves the earlier
// grants applied and reports the failure. This matches the historical
// behavior of the bot and is documented as a known gap.
func (s *service) LogActivities(ctx context.Context, userID, guildID string, minutes map[string]int) (*domain.LogResult, error) {
	log := logger.FromContext(ctx)

	if _, err := s.ledger.GetOrCreate(ctx, userID, guildID); err != nil {
		return nil, err
	}

	var lines []domain.LogLine
	for _, name := range activity.Names {
		mins, ok := minutes[name]
		if !ok || mins <= 0 {
			continue
		}

		entry, _ := activity.Lookup(name)
		xp, err := activity.GrantedXP(name, mins)
		if err != nil {
			return nil, err
		}

		deltas, err := activity.Deltas(name, xp)
		if err != nil {
			return nil, err
		}
		if err := s.ledger.Accumulate(ctx, userID, guildID, deltas); err != nil {
			return nil, err
		}

		s.appendLog(ctx, userID, guildID, name, mins, xp)
		metrics.ActivitiesLogged.WithLabelValues(name).Inc()

		lines = append(lines, domain.LogLine{
			Activity:   name,
			Stat:       entry.Stat,
			Minutes:    mins,
			Multiplier: entry.Multiplier,
			XPGained:   xp,
		})
	}

	if len(lines) == 0 {
		return nil, domain.ErrNoActivity
	}

	totalXP, err := s.ledger.ReadTotal(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	result := &domain.LogResult{
		Lines:   lines,
		TotalXP: totalXP,
		Level:   leveling.Evaluate(totalXP),
	}

	log.Info("Activities logged",
		"user_id", userID,
		"guild_id", guildID,
		"activities", len(lines),
		"total_xp", totalXP,
		"level", result.Level.Level)
	return result, nil
}

func (s *service) LogVoiceSession(ctx context.Context, userID, guildID, channelID string, sessionMinutes int) (*domain.VoiceAward, error) {
	if sessionMinutes <= 0 {
		return nil, fmt.Errorf("%w: voice session", domain.ErrInvalidMinutes)
	}

	if _, err := s.ledger.GetOrCreate(ctx, userID, guildID); err != nil {
		return nil, err
	}

	xp, err := activity.GrantedXP(activity.WorkVoice, sessionMinutes)
	if err != nil {
		return nil, err
	}
	deltas, err := activity.Deltas(activity.WorkVoice, xp)
	if err != nil {
		return nil, err
	}
	if err := s.ledger.Accumulate(ctx, userID, guildID, deltas); err != nil {
		return nil, err
	}

	s.appendLog(ctx, userID, guildID, activity.WorkVoice, sessionMinutes, xp)
	metrics.ActivitiesLogged.WithLabelValues(activity.WorkVoice).Inc()

	totalXP, err := s.ledger.ReadTotal(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	return &domain.VoiceAward{
		UserID:    userID,
		GuildID:   guildID,
		ChannelID: channelID,
		Minutes:   sessionMinutes,
		XPGained:  xp,
		TotalXP:   totalXP,
		Level:     leveling.Evaluate(totalXP),
	}, nil
}

func (s *service) GetStats(ctx context.Context, userID, guildID string) (*domain.StatsReport, error) {
	// Read-only: looking up an arbitrary member must not create a record
	// for them. Missing sheets read as zeroed.
	sheet, err := s.ledger.ReadSheet(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}

	totalXP := stats.TotalXP(sheet)
	report := &domain.StatsReport{
		UserID:  userID,
		GuildID: guildID,
		TotalXP: totalXP,
		Level:   leveling.Evaluate(totalXP),
	}

	for _, name := range domain.TopLevelStats {
		xp := stats.StatXP(sheet, name)
		report.Stats = append(report.Stats, domain.StatLevel{
			Name:  name,
			XP:    xp,
			Level: leveling.Evaluate(xp),
		})
	}
	for _, name := range domain.SubStats {
		xp := stats.StatXP(sheet, name)
		report.Stats = append(report.Stats, domain.StatLevel{
			Name:     name,
			XP:       xp,
			Level:    leveling.Evaluate(xp),
			SubLevel: true,
		})
	}

	return report, nil
}

// appendLog writes the audit record for one grant. The trail is
// informational, so a failed append is logged and does not fail the grant.
func (s *service) appendLog(ctx context.Context, userID, guildID, name string, mins, xp int) {
	if s.activityLog == nil {
		return
	}

	entry := domain.ActivityLogEntry{
		UserID:    userID,
		GuildID:   guildID,
		Activity:  name,
		Minutes:   mins,
		XPGained:  xp,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.activityLog.Append(ctx, entry); err != nil {
		logger.FromContext(ctx).Warn("Failed to append activity log entry",
			"error", err, "user_id", userID, "activity", name)
	}
}
