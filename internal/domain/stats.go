package domain

import "time"

// Stat internal name constants - stable identifiers for XP accumulators.
// Soma, Knowledge, Perception and Work are top-level stats; Agility and
// Strength are sub-stats that also feed Soma.
const (
	StatSoma       = "soma"
	StatKnowledge  = "knowledge"
	StatPerception = "perception"
	StatWork       = "work"
	StatAgility    = "agility"
	StatStrength   = "strength"
)

// TopLevelStats lists the stats that participate in the total XP sum.
// Sub-stats are excluded: their contribution is already carried by the
// parent accumulator, so summing them here would double count.
var TopLevelStats = []string{StatSoma, StatKnowledge, StatPerception, StatWork}

// SubStats lists the stats that feed a parent accumulator in addition to
// their own.
var SubStats = []string{StatAgility, StatStrength}

// StatSheet is the persisted per-(user, guild) XP record. Every accumulator
// is a non-negative, monotonically non-decreasing whole-XP counter. A sheet
// is created lazily on first interaction and never destroyed.
type StatSheet struct {
	UserID     string    `json:"user_id"`
	GuildID    string    `json:"guild_id"`
	Soma       int       `json:"soma"`
	Knowledge  int       `json:"knowledge"`
	Perception int       `json:"perception"`
	Work       int       `json:"work"`
	Agility    int       `json:"agility"`
	Strength   int       `json:"strength"`
	CreatedAt  time.Time `json:"created_at,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// Stat returns the accumulator for the named stat. Unknown names read as
// zero, which keeps old records valid when the stat schema grows.
func (s *StatSheet) Stat(name string) int {
	switch name {
	case StatSoma:
		return s.Soma
	case StatKnowledge:
		return s.Knowledge
	case StatPerception:
		return s.Perception
	case StatWork:
		return s.Work
	case StatAgility:
		return s.Agility
	case StatStrength:
		return s.Strength
	default:
		return 0
	}
}

// AddStat adds delta to the named accumulator. Unknown names are ignored.
func (s *StatSheet) AddStat(name string, delta int) {
	switch name {
	case StatSoma:
		s.Soma += delta
	case StatKnowledge:
		s.Knowledge += delta
	case StatPerception:
		s.Perception += delta
	case StatWork:
		s.Work += delta
	case StatAgility:
		s.Agility += delta
	case StatStrength:
		s.Strength += delta
	}
}

// StatDeltas maps stat names to non-negative XP increments. A single
// accumulate call may touch several accumulators (a sub-stat and its
// parent) and must be applied atomically by the storage layer.
type StatDeltas map[string]int

// LevelResult is the derived view of a cumulative XP amount: the level
// reached, progress into that level, and the threshold for the next one.
// It is never stored.
type LevelResult struct {
	Level       int `json:"level"`
	CurrentXP   int `json:"current_xp"`
	NextLevelXP int `json:"next_level_xp"`
}

// ActivityLogEntry is one append-only audit record of a logging event.
// Entries are written once and never read back by the accounting core.
type ActivityLogEntry struct {
	UserID    string    `json:"user_id"`
	GuildID   string    `json:"guild_id"`
	Activity  string    `json:"activity"`
	Minutes   int       `json:"minutes"`
	XPGained  int       `json:"xp_gained"`
	CreatedAt time.Time `json:"created_at"`
}

// VoiceAward summarizes the XP granted when a tracked voice session closes.
type VoiceAward struct {
	UserID    string      `json:"user_id"`
	GuildID   string      `json:"guild_id"`
	ChannelID string      `json:"channel_id"`
	Minutes   int         `json:"minutes"`
	XPGained  int         `json:"xp_gained"`
	TotalXP   int         `json:"total_xp"`
	Level     LevelResult `json:"level"`
}

// LogLine is the per-activity breakdown of one log command.
type LogLine struct {
	Activity   string  `json:"activity"`
	Stat       string  `json:"stat"`
	Minutes    int     `json:"minutes"`
	Multiplier float64 `json:"multiplier"`
	XPGained   int     `json:"xp_gained"`
}

// LogResult is the response payload of a successful log command.
type LogResult struct {
	Lines   []LogLine   `json:"lines"`
	TotalXP int         `json:"total_xp"`
	Level   LevelResult `json:"level"`
}

// StatLevel pairs a stat with its level breakdown for the stats command.
type StatLevel struct {
	Name     string      `json:"name"`
	XP       int         `json:"xp"`
	Level    LevelResult `json:"level"`
	SubLevel bool        `json:"sub_level"`
}

// StatsReport is the read-only response payload of the stats command.
type StatsReport struct {
	UserID  string      `json:"user_id"`
	GuildID string      `json:"guild_id"`
	TotalXP int         `json:"total_xp"`
	Level   LevelResult `json:"level"`
	Stats   []StatLevel `json:"stats"`
}
