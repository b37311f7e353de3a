// Package repository defines the storage adapter interfaces the accounting
// core depends on. Each backend (postgres, restapi, jsonfile) implements
// them; the core never names a concrete backend.
package repository

import (
	"context"

	"github.com/halcyonforge/habitbot/internal/domain"
)

// Ledger is the capability interface for per-(user, guild) XP persistence.
type Ledger interface {
	// GetOrCreate returns the stat sheet for the key, creating a zeroed
	// record if none exists. Safe to call repeatedly: a uniqueness
	// constraint at the storage layer prevents duplicates, not
	// application-level locking.
	GetOrCreate(ctx context.Context, userID, guildID string) (*domain.StatSheet, error)

	// AddXP applies the given non-negative increments atomically. The
	// record is created if absent. Implementations must use a native
	// upsert-with-increment (or equivalent single-writer discipline) so
	// concurrent commands and voice-session closes never lose updates.
	AddXP(ctx context.Context, userID, guildID string, deltas domain.StatDeltas) error

	// GetSheet returns the current persisted sheet, or a zeroed sheet if
	// the record does not exist.
	GetSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, error)
}

// ActivityLog is the append-only audit trail of logging events. Entries are
// informational: the core writes them and never reads them back.
type ActivityLog interface {
	Append(ctx context.Context, entry domain.ActivityLogEntry) error
}

// Pinger reports storage connectivity for readiness checks.
type Pinger interface {
	Ping(ctx context.Context) error
}
