package ledger

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/halcyonforge/habitbot/internal/domain"
)

// FakeRepository is a stateful in-memory implementation of
// repository.Ledger and repository.ActivityLog for testing. It mirrors the
// atomic upsert-increment semantics of the real backends under a mutex.
type FakeRepository struct {
	mu      sync.Mutex
	sheets  map[string]*domain.StatSheet
	Entries []domain.ActivityLogEntry

	// FailNext makes the next storage call return an error, simulating an
	// unavailable store.
	FailNext bool

	// FailAfter fails every call once the counter reaches zero. Use it to
	// exercise partial application of multi-field updates. Negative means
	// disabled.
	FailAfter int
}

// NewFakeRepository creates an empty fake store.
func NewFakeRepository() *FakeRepository {
	return &FakeRepository{
		sheets:    make(map[string]*domain.StatSheet),
		FailAfter: -1,
	}
}

func key(userID, guildID string) string {
	return guildID + ":" + userID
}

func (f *FakeRepository) fail() bool {
	if f.FailNext {
		f.FailNext = false
		return true
	}
	if f.FailAfter == 0 {
		return true
	}
	if f.FailAfter > 0 {
		f.FailAfter--
	}
	return false
}

func (f *FakeRepository) GetOrCreate(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail() {
		return nil, errors.New("connection refused")
	}

	if sheet, ok := f.sheets[key(userID, guildID)]; ok {
		cp := *sheet
		return &cp, nil
	}

	sheet := &domain.StatSheet{UserID: userID, GuildID: guildID, CreatedAt: time.Now()}
	f.sheets[key(userID, guildID)] = sheet
	cp := *sheet
	return &cp, nil
}

func (f *FakeRepository) AddXP(ctx context.Context, userID, guildID string, deltas domain.StatDeltas) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail() {
		return errors.New("connection refused")
	}

	sheet, ok := f.sheets[key(userID, guildID)]
	if !ok {
		sheet = &domain.StatSheet{UserID: userID, GuildID: guildID, CreatedAt: time.Now()}
		f.sheets[key(userID, guildID)] = sheet
	}
	for stat, delta := range deltas {
		sheet.AddStat(stat, delta)
	}
	sheet.UpdatedAt = time.Now()
	return nil
}

func (f *FakeRepository) GetSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail() {
		return nil, errors.New("connection refused")
	}

	if sheet, ok := f.sheets[key(userID, guildID)]; ok {
		cp := *sheet
		return &cp, nil
	}
	return &domain.StatSheet{UserID: userID, GuildID: guildID}, nil
}

func (f *FakeRepository) Append(ctx context.Context, entry domain.ActivityLogEntry) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail() {
		return errors.New("connection refused")
	}

	f.Entries = append(f.Entries, entry)
	return nil
}

// HasSheet reports whether a record exists for the key. Test observer.
func (f *FakeRepository) HasSheet(userID, guildID string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	_, ok := f.sheets[key(userID, guildID)]
	return ok
}

func (f *FakeRepository) Ping(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.fail() {
		return errors.New("connection refused")
	}
	return nil
}
