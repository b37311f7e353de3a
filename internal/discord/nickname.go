package discord

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/bwmarrin/discordgo"
	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/halcyonforge/habitbot/internal/logger"
	"github.com/halcyonforge/habitbot/internal/metrics"
)

// Nickname rewrite outcomes, used as metric labels.
const (
	NicknameApplied = "applied"
	NicknameSkipped = "skipped"
	NicknameDenied  = "denied"
	NicknameFailed  = "failed"
)

// Discord caps nicknames at 32 characters.
const maxNicknameLen = 32

// levelSuffixRe matches a level tag at the end of a nickname.
var levelSuffixRe = regexp.MustCompile(`\s*\[Lvl \d+\]$`)

// nicknameCacheSize bounds the last-applied-level cache. Entries are tiny;
// eviction just means one extra REST read for a cold member.
const nicknameCacheSize = 2048

// NicknameWriter rewrites guild nicknames to carry the member's total level.
// It remembers the last level it applied per member and skips redundant
// rewrites, since nickname PATCHes are heavily rate limited.
type NicknameWriter struct {
	session *discordgo.Session
	applied *lru.Cache[string, int]
}

// NewNicknameWriter creates a nickname writer backed by the given session.
func NewNicknameWriter(s *discordgo.Session) *NicknameWriter {
	cache, _ := lru.New[string, int](nicknameCacheSize)
	return &NicknameWriter{session: s, applied: cache}
}

// stripLevelSuffix removes an existing level tag from a nickname.
func stripLevelSuffix(nick string) string {
	return levelSuffixRe.ReplaceAllString(nick, "")
}

// composeNickname appends the level tag to the base name, truncating the
// base so the result fits Discord's 32-character limit. The limit counts
// characters, not bytes, so the base is cut on rune boundaries.
func composeNickname(base string, level int) string {
	suffix := fmt.Sprintf(" [Lvl %d]", level)
	runes := []rune(strings.TrimSpace(base))
	if limit := maxNicknameLen - len(suffix); len(runes) > limit {
		runes = runes[:limit]
	}
	return strings.TrimSpace(string(runes)) + suffix
}

// Apply rewrites the member's nickname to show the given level. Permission
// errors are expected for server owners and higher-role members and are
// recorded without logging noise.
func (w *NicknameWriter) Apply(ctx context.Context, guildID, userID string, level int) {
	log := logger.FromContext(ctx)
	key := guildID + ":" + userID

	if last, ok := w.applied.Get(key); ok && last == level {
		metrics.NicknameRewrites.WithLabelValues(NicknameSkipped).Inc()
		return
	}

	member, err := w.session.GuildMember(guildID, userID)
	if err != nil {
		log.Warn("Failed to fetch member for nickname update", "error", err, "user_id", userID)
		metrics.NicknameRewrites.WithLabelValues(NicknameFailed).Inc()
		return
	}

	base := member.Nick
	if base == "" {
		base = member.User.Username
	}
	next := composeNickname(stripLevelSuffix(base), level)

	if next == member.Nick {
		w.applied.Add(key, level)
		metrics.NicknameRewrites.WithLabelValues(NicknameSkipped).Inc()
		return
	}

	if err := w.session.GuildMemberNickname(guildID, userID, next); err != nil {
		if isPermissionDenied(err) {
			log.Debug("Nickname update denied", "user_id", userID, "guild_id", guildID)
			metrics.NicknameRewrites.WithLabelValues(NicknameDenied).Inc()
			return
		}
		log.Warn("Failed to update nickname", "error", err, "user_id", userID)
		metrics.NicknameRewrites.WithLabelValues(NicknameFailed).Inc()
		return
	}

	w.applied.Add(key, level)
	metrics.NicknameRewrites.WithLabelValues(NicknameApplied).Inc()
	log.Info("Nickname updated", "user_id", userID, "guild_id", guildID, "level", level)
}

// isPermissionDenied reports whether the REST error means the bot lacks
// permission to rename this member (owner or higher role).
func isPermissionDenied(err error) bool {
	var restErr *discordgo.RESTError
	if !errors.As(err, &restErr) {
		return false
	}
	if restErr.Response != nil && restErr.Response.StatusCode == 403 {
		return true
	}
	return restErr.Message != nil && restErr.Message.Code == discordgo.ErrCodeMissingPermissions
}
