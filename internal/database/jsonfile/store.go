// Package jsonfile implements the storage adapter interfaces on a flat JSON
// file, for single-instance deployments without a database. A process-wide
// mutex provides the single-writer discipline that the hosted backends get
// from their storage layer, and every mutation is persisted with a
// write-temp-then-rename so a crash never leaves a torn file.
package jsonfile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/halcyonforge/habitbot/internal/domain"
)

// Store implements repository.Ledger and repository.ActivityLog on one
// JSON file.
type Store struct {
	mu   sync.Mutex
	path string
	data fileData
}

type fileData struct {
	Sheets  map[string]*domain.StatSheet `json:"sheets"`
	Entries []domain.ActivityLogEntry    `json:"activity_log"`
}

// Open loads (or initializes) the store at path.
func Open(path string) (*Store, error) {
	s := &Store{
		path: path,
		data: fileData{Sheets: make(map[string]*domain.StatSheet)},
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.data); err != nil {
			return nil, fmt.Errorf("failed to parse store file: %w", err)
		}
	}
	if s.data.Sheets == nil {
		s.data.Sheets = make(map[string]*domain.StatSheet)
	}
	return s, nil
}

func key(userID, guildID string) string {
	return guildID + ":" + userID
}

func (s *Store) GetOrCreate(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sheet, ok := s.data.Sheets[key(userID, guildID)]; ok {
		cp := *sheet
		return &cp, nil
	}

	sheet := &domain.StatSheet{
		UserID:    userID,
		GuildID:   guildID,
		CreatedAt: time.Now().UTC(),
	}
	s.data.Sheets[key(userID, guildID)] = sheet
	if err := s.persist(); err != nil {
		delete(s.data.Sheets, key(userID, guildID))
		return nil, err
	}

	cp := *sheet
	return &cp, nil
}

// AddXP applies the deltas to a copy of the sheet and swaps it in only
// after the file write succeeds, so a failed persist leaves no phantom XP
// for a retry to double-count.
func (s *Store) AddXP(ctx context.Context, userID, guildID string, deltas domain.StatDeltas) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, existed := s.data.Sheets[key(userID, guildID)]

	var next *domain.StatSheet
	if existed {
		cp := *prev
		next = &cp
	} else {
		next = &domain.StatSheet{
			UserID:    userID,
			GuildID:   guildID,
			CreatedAt: time.Now().UTC(),
		}
	}

	for stat, delta := range deltas {
		next.AddStat(stat, delta)
	}
	next.UpdatedAt = time.Now().UTC()

	s.data.Sheets[key(userID, guildID)] = next
	if err := s.persist(); err != nil {
		if existed {
			s.data.Sheets[key(userID, guildID)] = prev
		} else {
			delete(s.data.Sheets, key(userID, guildID))
		}
		return err
	}
	return nil
}

func (s *Store) GetSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if sheet, ok := s.data.Sheets[key(userID, guildID)]; ok {
		cp := *sheet
		return &cp, nil
	}
	return &domain.StatSheet{UserID: userID, GuildID: guildID}, nil
}

func (s *Store) Append(ctx context.Context, entry domain.ActivityLogEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data.Entries = append(s.data.Entries, entry)
	if err := s.persist(); err != nil {
		s.data.Entries = s.data.Entries[:len(s.data.Entries)-1]
		return err
	}
	return nil
}

// Ping checks that the store directory is still writable.
func (s *Store) Ping(ctx context.Context) error {
	dir := filepath.Dir(s.path)
	info, err := os.Stat(dir)
	if err != nil {
		return fmt.Errorf("store directory unavailable: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("store path parent %s is not a directory", dir)
	}
	return nil
}

// persist writes the full dataset to a temp file and renames it over the
// store path. Callers hold the mutex.
func (s *Store) persist() error {
	raw, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode store: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write store file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace store file: %w", err)
	}
	return nil
}
