// Package restapi implements the storage adapter interfaces against a
// PostgREST-compatible endpoint (the hosted-datastore deployment). Atomic
// increments are delegated to a database-side RPC so concurrent writers
// never lose updates.
package restapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/halcyonforge/habitbot/internal/domain"
)

const defaultTimeout = 10 * time.Second

// LedgerRepository implements repository.Ledger and repository.ActivityLog
// over a PostgREST-style REST API.
type LedgerRepository struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewLedgerRepository creates a client for the given endpoint. The API key
// is sent both as apikey and bearer token, as the hosted datastore expects.
func NewLedgerRepository(baseURL, apiKey string) *LedgerRepository {
	return &LedgerRepository{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: defaultTimeout},
	}
}

// sheetRow is the wire form of one user_stats row.
type sheetRow struct {
	UserID     string `json:"user_id"`
	GuildID    string `json:"guild_id"`
	Soma       int    `json:"soma"`
	Knowledge  int    `json:"knowledge"`
	Perception int    `json:"perception"`
	Work       int    `json:"work"`
	Agility    int    `json:"agility"`
	Strength   int    `json:"strength"`
}

func (r *LedgerRepository) GetOrCreate(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	sheet, found, err := r.fetchSheet(ctx, userID, guildID)
	if err != nil {
		return nil, err
	}
	if found {
		return sheet, nil
	}

	// Create a zeroed row. A concurrent creator wins the unique constraint
	// race; merge-duplicates makes that a no-op instead of an error.
	row := sheetRow{UserID: userID, GuildID: guildID}
	if err := r.do(ctx, http.MethodPost, "user_stats", "", row, "resolution=merge-duplicates", nil); err != nil {
		return nil, err
	}

	sheet, _, err = r.fetchSheet(ctx, userID, guildID)
	return sheet, err
}

// AddXP calls the add_user_xp database function through the RPC endpoint.
// The function performs the upsert-with-increment server side, keeping the
// multi-column update atomic.
func (r *LedgerRepository) AddXP(ctx context.Context, userID, guildID string, deltas domain.StatDeltas) error {
	payload := map[string]interface{}{
		"p_user_id":  userID,
		"p_guild_id": guildID,
		"p_deltas":   deltas,
	}
	return r.do(ctx, http.MethodPost, "rpc/add_user_xp", "", payload, "", nil)
}

func (r *LedgerRepository) GetSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, error) {
	sheet, _, err := r.fetchSheet(ctx, userID, guildID)
	return sheet, err
}

func (r *LedgerRepository) Append(ctx context.Context, entry domain.ActivityLogEntry) error {
	return r.do(ctx, http.MethodPost, "activity_logs", "", entry, "", nil)
}

// Ping verifies the endpoint answers with any status below 500.
func (r *LedgerRepository) Ping(ctx context.Context) error {
	return r.do(ctx, http.MethodGet, "user_stats", "limit=1", nil, "", nil)
}

func (r *LedgerRepository) fetchSheet(ctx context.Context, userID, guildID string) (*domain.StatSheet, bool, error) {
	filter := fmt.Sprintf("user_id=eq.%s&guild_id=eq.%s&select=*",
		url.QueryEscape(userID), url.QueryEscape(guildID))

	var rows []sheetRow
	if err := r.do(ctx, http.MethodGet, "user_stats", filter, nil, "", &rows); err != nil {
		return nil, false, err
	}

	sheet := &domain.StatSheet{UserID: userID, GuildID: guildID}
	if len(rows) == 0 {
		return sheet, false, nil
	}

	row := rows[0]
	sheet.Soma = row.Soma
	sheet.Knowledge = row.Knowledge
	sheet.Perception = row.Perception
	sheet.Work = row.Work
	sheet.Agility = row.Agility
	sheet.Strength = row.Strength
	return sheet, true, nil
}

// do executes one REST call. Non-2xx responses and transport failures are
// both storage faults for the caller to map.
func (r *LedgerRepository) do(ctx context.Context, method, endpoint, query string, body interface{}, prefer string, out interface{}) error {
	u := r.baseURL + "/rest/v1/" + endpoint
	if query != "" {
		u += "?" + query
	}

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("apikey", r.apiKey)
	req.Header.Set("Authorization", "Bearer "+r.apiKey)
	req.Header.Set("Content-Type", "application/json")
	if prefer != "" {
		req.Header.Set("Prefer", prefer)
	}

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		data, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("unexpected status %d from %s: %s", resp.StatusCode, endpoint, string(data))
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}
	return nil
}
