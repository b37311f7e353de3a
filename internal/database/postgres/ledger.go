// Package postgres implements the storage adapter interfaces on PostgreSQL
// via pgx. Atomicity of accumulate calls comes from single-statement
// upsert-with-increment, never from in-process locking: multiple bot
// instances may share the database.
package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/halcyonforge/habitbot/internal/domain"
)

// statColumns lists every accumulator column in insert order. Kept in one
// place so the upsert builder and the row scanner cannot drift apart.
var statColumns = []string{
	domain.StatSoma,
	domain.StatKnowledge,
	domain.StatPerception,
	domain.StatWork,
	domain.StatAgility,
	domain.StatStrength,
}

// LedgerRepository implements repository.Ledger and repository.ActivityLog
// for PostgreSQL.
type LedgerRepository struct {
	db *pgxpool.Pool
}

// NewLedgerRepository creates a new LedgerRepository
func NewLedgerRepository(db *pgxpool.Pool) *LedgerRepository {
	return &LedgerRepository{db: db}
}

// GetOrCreate returns the stat sheet for (userID, guildID), inserting a
// zeroed row if none exists. The primary key on (user_id, guild_id) makes
// repeated calls safe: ON CONFLICT DO NOTHING never resets counters.
func (r *LedgerRepository) GetOrCreate(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	query := `
		INSERT INTO user_stats (user_id, guild_id, created_at, updated_at)
		VALUES ($1, $2, NOW(), NOW())
		ON CONFLICT (user_id, guild_id) DO NOTHING
	`
	if _, err := r.db.Exec(ctx, query, userID, guildID); err != nil {
		return nil, fmt.Errorf("failed to ensure stat sheet: %w", err)
	}

	return r.GetSheet(ctx, userID, guildID)
}

// AddXP applies every delta in one upsert statement, so the increments for
// a sub-stat and its parent land atomically and concurrent writers never
// lose updates.
func (r *LedgerRepository) AddXP(ctx context.Context, userID, guildID string, deltas domain.StatDeltas) error {
	if len(deltas) == 0 {
		return nil
	}

	cols := []string{"user_id", "guild_id"}
	vals := []string{"$1", "$2"}
	sets := []string{"updated_at = NOW()"}
	args := []interface{}{userID, guildID}

	for _, col := range statColumns {
		delta, ok := deltas[col]
		if !ok || delta == 0 {
			continue
		}
		args = append(args, delta)
		ph := fmt.Sprintf("$%d", len(args))
		cols = append(cols, col)
		vals = append(vals, ph)
		sets = append(sets, fmt.Sprintf("%s = user_stats.%s + EXCLUDED.%s", col, col, col))
	}

	query := fmt.Sprintf(`
		INSERT INTO user_stats (%s, created_at, updated_at)
		VALUES (%s, NOW(), NOW())
		ON CONFLICT (user_id, guild_id) DO UPDATE
		SET %s`,
		strings.Join(cols, ", "),
		strings.Join(vals, ", "),
		strings.Join(sets, ", "),
	)

	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return fmt.Errorf("failed to add xp: %w", err)
	}
	return nil
}

// GetSheet returns the persisted sheet, or a zeroed sheet when the record
// does not exist yet.
func (r *LedgerRepository) GetSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	query := `
		SELECT soma, knowledge, perception, work, agility, strength, created_at, updated_at
		FROM user_stats
		WHERE user_id = $1 AND guild_id = $2
	`

	sheet := &domain.StatSheet{UserID: userID, GuildID: guildID}
	err := r.db.QueryRow(ctx, query, userID, guildID).Scan(
		&sheet.Soma,
		&sheet.Knowledge,
		&sheet.Perception,
		&sheet.Work,
		&sheet.Agility,
		&sheet.Strength,
		&sheet.CreatedAt,
		&sheet.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return sheet, nil
		}
		return nil, fmt.Errorf("failed to get stat sheet: %w", err)
	}

	return sheet, nil
}

// Append writes one activity log record. The trail is append-only and never
// read back by the accounting core.
func (r *LedgerRepository) Append(ctx context.Context, entry domain.ActivityLogEntry) error {
	query := `
		INSERT INTO activity_logs (user_id, guild_id, activity, minutes, xp_gained, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.Exec(ctx, query,
		entry.UserID,
		entry.GuildID,
		entry.Activity,
		entry.Minutes,
		entry.XPGained,
		entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to append activity log: %w", err)
	}
	return nil
}

// Ping reports database connectivity for readiness checks.
func (r *LedgerRepository) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
