package restapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonforge/habitbot/internal/domain"
)

func TestGetSheetParsesRow(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/user_stats", r.URL.Path)
		assert.Equal(t, "test-key", r.Header.Get("apikey"))
		assert.Equal(t, "Bearer test-key", r.Header.Get("Authorization"))
		assert.Equal(t, "eq.user-1", r.URL.Query().Get("user_id"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"user_id":"user-1","guild_id":"guild-1","soma":50,"knowledge":10,"perception":5,"work":0,"agility":30,"strength":20}]`))
	}))
	defer srv.Close()

	repo := NewLedgerRepository(srv.URL, "test-key")

	sheet, err := repo.GetSheet(context.Background(), "user-1", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, 50, sheet.Soma)
	assert.Equal(t, 10, sheet.Knowledge)
	assert.Equal(t, 30, sheet.Agility)
}

func TestGetSheetMissingRowIsZeroed(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := NewLedgerRepository(srv.URL, "test-key")

	sheet, err := repo.GetSheet(context.Background(), "user-1", "guild-1")
	require.NoError(t, err)
	assert.Equal(t, &domain.StatSheet{UserID: "user-1", GuildID: "guild-1"}, sheet)
}

func TestGetOrCreateInsertsWhenAbsent(t *testing.T) {
	var posted bool
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPost {
			posted = true
			assert.Equal(t, "resolution=merge-duplicates", r.Header.Get("Prefer"))
			w.WriteHeader(http.StatusCreated)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	repo := NewLedgerRepository(srv.URL, "test-key")

	_, err := repo.GetOrCreate(context.Background(), "user-1", "guild-1")
	require.NoError(t, err)
	assert.True(t, posted, "missing row must be created")
}

func TestAddXPCallsIncrementRPC(t *testing.T) {
	var payload map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/rpc/add_user_xp", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&payload))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	repo := NewLedgerRepository(srv.URL, "test-key")

	err := repo.AddXP(context.Background(), "user-1", "guild-1", domain.StatDeltas{
		domain.StatStrength: 20,
		domain.StatSoma:     20,
	})
	require.NoError(t, err)

	assert.Equal(t, "user-1", payload["p_user_id"])
	deltas := payload["p_deltas"].(map[string]interface{})
	assert.Equal(t, float64(20), deltas["strength"])
	assert.Equal(t, float64(20), deltas["soma"])
}

func TestServerErrorIsSurfaced(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "permission denied", http.StatusForbidden)
	}))
	defer srv.Close()

	repo := NewLedgerRepository(srv.URL, "test-key")

	_, err := repo.GetSheet(context.Background(), "user-1", "guild-1")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "403")
}

func TestAppendPostsLogEntry(t *testing.T) {
	var entry domain.ActivityLogEntry
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/rest/v1/activity_logs", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&entry))
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	repo := NewLedgerRepository(srv.URL, "test-key")

	err := repo.Append(context.Background(), domain.ActivityLogEntry{
		UserID: "user-1", GuildID: "guild-1", Activity: "reading", Minutes: 45, XPGained: 45,
	})
	require.NoError(t, err)
	assert.Equal(t, "reading", entry.Activity)
	assert.Equal(t, 45, entry.XPGained)
}
