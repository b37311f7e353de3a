package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/habit"
	"github.com/halcyonforge/habitbot/internal/logger"
)

// LogActivitiesRequest represents the request to log activity minutes.
// Keys of Minutes are catalog activity names; unknown names are rejected by
// the service.
type LogActivitiesRequest struct {
	UserID  string         `json:"user_id" validate:"required"`
	GuildID string         `json:"guild_id" validate:"required"`
	Minutes map[string]int `json:"minutes" validate:"required,dive,min=1"`
}

// HandleLogActivities grants XP for the logged minutes and returns the
// per-activity breakdown with the updated total level.
func HandleLogActivities(habitService habit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		var req LogActivitiesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Error("Failed to decode log request", "error", err)
			respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
			return
		}

		if err := GetValidator().ValidateStruct(req); err != nil {
			log.Warn("Invalid log request", "error", err)
			respondJSON(w, http.StatusBadRequest, map[string]interface{}{
				"error":  ErrMsgInvalidRequest,
				"fields": FormatValidationError(err),
			})
			return
		}

		result, err := habitService.LogActivities(r.Context(), req.UserID, req.GuildID, req.Minutes)
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNoActivity),
				errors.Is(err, domain.ErrUnknownActivity),
				errors.Is(err, domain.ErrInvalidMinutes):
				log.Warn("Rejected log request", "error", err, "user_id", req.UserID)
				respondError(w, http.StatusBadRequest, ErrMsgNoActivity)
			case errors.Is(err, domain.ErrStoreUnavailable):
				log.Error("Store unavailable", "error", err, "user_id", req.UserID)
				respondError(w, http.StatusServiceUnavailable, ErrMsgStoreUnavailable)
			default:
				log.Error("Failed to log activities", "error", err, "user_id", req.UserID)
				respondError(w, http.StatusInternalServerError, ErrMsgLogFailed)
			}
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: result})
	}
}

// HandleGetStats returns the read-only stat breakdown for a user.
func HandleGetStats(habitService habit.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := logger.FromContext(r.Context())

		userID := r.URL.Query().Get("user_id")
		if userID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "user_id"))
			return
		}
		guildID := r.URL.Query().Get("guild_id")
		if guildID == "" {
			respondError(w, http.StatusBadRequest, fmt.Sprintf(ErrMsgMissingQueryParam, "guild_id"))
			return
		}

		report, err := habitService.GetStats(r.Context(), userID, guildID)
		if err != nil {
			if errors.Is(err, domain.ErrStoreUnavailable) {
				log.Error("Store unavailable", "error", err, "user_id", userID)
				respondError(w, http.StatusServiceUnavailable, ErrMsgStoreUnavailable)
				return
			}
			log.Error("Failed to get stats", "error", err, "user_id", userID)
			respondError(w, http.StatusInternalServerError, ErrMsgGetStatsFailed)
			return
		}

		respondJSON(w, http.StatusOK, DataResponse{Data: report})
	}
}
