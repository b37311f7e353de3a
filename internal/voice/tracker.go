// Package voice tracks occupancy of configured voice channels and converts
// closed sessions into work XP. Open sessions live only in process memory:
// a restart forfeits any partial session, which is accepted loss.
package voice

import (
	"context"
	"sync"
	"time"

	"github.com/halcyonforge/habitbot/internal/domain"
	"github.com/halcyonforge/habitbot/internal/habit"
	"github.com/halcyonforge/habitbot/internal/logger"
	"github.com/halcyonforge/habitbot/internal/metrics"
)

// Announcer receives the award for a credited session close. Implementations
// post the announcement and rewrite the member's nickname; they must not
// block the caller for long.
type Announcer func(ctx context.Context, award domain.VoiceAward)

// Tracker is the per-(user, guild) session state machine. Each key is either
// absent (no open session) or open (join timestamp recorded).
type Tracker struct {
	mu       sync.Mutex
	sessions map[string]time.Time

	habits   habit.Service
	tracked  map[string]struct{}
	announce Announcer

	// now is injected for tests; defaults to time.Now.
	now func() time.Time
}

// NewTracker creates a tracker for the given tracked channel IDs.
func NewTracker(habits habit.Service, trackedChannelIDs []string, announce Announcer) *Tracker {
	tracked := make(map[string]struct{}, len(trackedChannelIDs))
	for _, id := range trackedChannelIDs {
		tracked[id] = struct{}{}
	}

	return &Tracker{
		sessions: make(map[string]time.Time),
		habits:   habits,
		tracked:  tracked,
		announce: announce,
		now:      time.Now,
	}
}

// SetClock overrides the wall clock. Test hook.
func (t *Tracker) SetClock(now func() time.Time) {
	t.now = now
}

// Tracked reports whether the channel is configured for time tracking. An
// empty ID (no channel) is never tracked.
func (t *Tracker) Tracked(channelID string) bool {
	if channelID == "" {
		return false
	}
	_, ok := t.tracked[channelID]
	return ok
}

// OpenSessions returns the number of currently open sessions.
func (t *Tracker) OpenSessions() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.sessions)
}

// HandleUpdate processes one channel-membership change for a user. Only the
// tracked/untracked edge matters: moves between two tracked channels or two
// untracked channels do not touch the session.
func (t *Tracker) HandleUpdate(ctx context.Context, userID, guildID, oldChannelID, newChannelID string) {
	wasTracked := t.Tracked(oldChannelID)
	isTracked := t.Tracked(newChannelID)

	if !wasTracked && isTracked {
		t.open(ctx, userID, guildID, newChannelID)
		return
	}
	if wasTracked && !isTracked {
		t.close(ctx, userID, guildID, oldChannelID)
	}
}

func (t *Tracker) open(ctx context.Context, userID, guildID, channelID string) {
	t.mu.Lock()
	t.sessions[sessionKey(userID, guildID)] = t.now()
	t.mu.Unlock()

	metrics.VoiceSessionsOpened.Inc()
	logger.FromContext(ctx).Debug("Voice session opened",
		"user_id", userID, "guild_id", guildID, "channel_id", channelID)
}

func (t *Tracker) close(ctx context.Context, userID, guildID, channelID string) {
	log := logger.FromContext(ctx)

	t.mu.Lock()
	joined, ok := t.sessions[sessionKey(userID, guildID)]
	if ok {
		delete(t.sessions, sessionKey(userID, guildID))
	}
	elapsed := t.now().Sub(joined)
	t.mu.Unlock()

	if !ok {
		// Session opened before a restart, or an out-of-order event.
		log.Debug("Voice session close without open", "user_id", userID, "guild_id", guildID)
		return
	}

	minutes := int(elapsed / time.Minute)
	if minutes < 1 {
		// Short visits do not count: no XP, no announcement.
		metrics.VoiceSessionsDropped.Inc()
		log.Debug("Voice session dropped",
			"user_id", userID, "guild_id", guildID, "elapsed", elapsed.String())
		return
	}

	award, err := t.habits.LogVoiceSession(ctx, userID, guildID, channelID, minutes)
	if err != nil {
		log.Error("Failed to credit voice session",
			"error", err, "user_id", userID, "guild_id", guildID, "minutes", minutes)
		return
	}

	metrics.VoiceSessionsClosed.Inc()
	log.Info("Voice session credited",
		"user_id", userID, "guild_id", guildID, "minutes", minutes, "level", award.Level.Level)

	if t.announce != nil {
		t.announce(ctx, *award)
	}
}

func sessionKey(userID, guildID string) string {
	return guildID + ":" + userID
}
