package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/halcyonforge/habitbot/internal/habit"
	"github.com/halcyonforge/habitbot/internal/ledger"
)

func newTestService(t *testing.T) (habit.Service, *ledger.FakeRepository) {
	t.Helper()
	repo := ledger.NewFakeRepository()
	return habit.NewService(ledger.NewService(repo), repo), repo
}

func TestHandleLogActivities(t *testing.T) {
	svc, _ := newTestService(t)
	handler := HandleLogActivities(svc)

	body, _ := json.Marshal(LogActivitiesRequest{
		UserID:  "user-1",
		GuildID: "guild-1",
		Minutes: map[string]int{"workout": 30, "video": 10},
	})

	req := httptest.NewRequest(http.MethodPost, "/api/v1/log", bytes.NewReader(body))
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalXP int `json:"total_xp"`
			Lines   []struct {
				Activity string `json:"activity"`
				XPGained int    `json:"xp_gained"`
			} `json:"lines"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 37, resp.Data.TotalXP)
	assert.Len(t, resp.Data.Lines, 2)
}

func TestHandleLogActivitiesValidation(t *testing.T) {
	svc, _ := newTestService(t)
	handler := HandleLogActivities(svc)

	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "malformed JSON", body: `{`, want: http.StatusBadRequest},
		{name: "missing user_id", body: `{"guild_id":"g","minutes":{"workout":10}}`, want: http.StatusBadRequest},
		{name: "zero minutes", body: `{"user_id":"u","guild_id":"g","minutes":{"workout":0}}`, want: http.StatusBadRequest},
		{name: "unknown activity", body: `{"user_id":"u","guild_id":"g","minutes":{"sleeping":10}}`, want: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodPost, "/api/v1/log", bytes.NewReader([]byte(tt.body)))
			w := httptest.NewRecorder()
			handler(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestHandleLogActivitiesStoreUnavailable(t *testing.T) {
	svc, repo := newTestService(t)
	handler := HandleLogActivities(svc)

	repo.FailNext = true

	body := `{"user_id":"u","guild_id":"g","minutes":{"workout":10}}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/log", bytes.NewReader([]byte(body)))
	w := httptest.NewRecorder()
	handler(w, req)

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestHandleGetStats(t *testing.T) {
	svc, _ := newTestService(t)

	// Seed some XP first.
	logHandler := HandleLogActivities(svc)
	body := `{"user_id":"user-1","guild_id":"guild-1","minutes":{"workout":120}}`
	seedReq := httptest.NewRequest(http.MethodPost, "/api/v1/log", bytes.NewReader([]byte(body)))
	seedW := httptest.NewRecorder()
	logHandler(seedW, seedReq)
	require.Equal(t, http.StatusOK, seedW.Code)

	handler := HandleGetStats(svc)
	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?user_id=user-1&guild_id=guild-1", nil)
	w := httptest.NewRecorder()
	handler(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data struct {
			TotalXP int `json:"total_xp"`
			Level   struct {
				Level int `json:"level"`
			} `json:"level"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, 120, resp.Data.TotalXP)
	assert.Equal(t, 2, resp.Data.Level.Level)
}

func TestHandleGetStatsMissingParams(t *testing.T) {
	svc, _ := newTestService(t)
	handler := HandleGetStats(svc)

	req := httptest.NewRequest(http.MethodGet, "/api/v1/stats?guild_id=g", nil)
	w := httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/v1/stats?user_id=u", nil)
	w = httptest.NewRecorder()
	handler(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
