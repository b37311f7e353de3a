// Package activity holds the static catalog mapping loggable activities to
// the stat they feed and the XP multiplier applied to logged minutes.
package activity

import (
	"fmt"
	"math"

	"github.com/halcyonforge/habitbot/internal/domain"
)

// Activity name constants - stable identifiers used by the command surface
// and the activity log.
const (
	Workout       = "workout"
	Video         = "video"
	Reading       = "reading"
	Writing       = "writing"
	Meditation    = "meditation"
	BackgroundMed = "background_med"
	Work          = "work"
	Agility       = "agility"
	Strength      = "strength"

	// WorkVoice is the synthetic activity recorded for tracked voice
	// sessions. It is not loggable via the command surface.
	WorkVoice = "work_voice"
)

// Entry describes one catalog activity: the stat it credits, an optional
// parent stat credited with the same amount, and the minutes-to-XP
// multiplier.
type Entry struct {
	Stat        string
	Parent      string
	Multiplier  float64
	Description string
}

var catalog = map[string]Entry{
	Workout:       {Stat: domain.StatSoma, Multiplier: 1.0, Description: "Any physical activity (1x Soma)"},
	Video:         {Stat: domain.StatKnowledge, Multiplier: 0.7, Description: "Video/audiobooks (0.7x Knowledge)"},
	Reading:       {Stat: domain.StatKnowledge, Multiplier: 1.0, Description: "Reading (1x Knowledge)"},
	Writing:       {Stat: domain.StatKnowledge, Multiplier: 1.2, Description: "Writing (1.2x Knowledge)"},
	Meditation:    {Stat: domain.StatPerception, Multiplier: 1.0, Description: "Meditation (1x Perception)"},
	BackgroundMed: {Stat: domain.StatPerception, Multiplier: 0.2, Description: "Background meditation (0.2x Perception)"},
	Work:          {Stat: domain.StatWork, Multiplier: 1.0, Description: "Work (1x Work)"},
	Agility:       {Stat: domain.StatAgility, Parent: domain.StatSoma, Multiplier: 1.0, Description: "Agility training (1x Agility + Soma)"},
	Strength:      {Stat: domain.StatStrength, Parent: domain.StatSoma, Multiplier: 1.0, Description: "Strength training (1x Strength + Soma)"},

	// Voice-session time is credited through the same path as logged work
	// but is excluded from Names so it cannot be logged by hand.
	WorkVoice: {Stat: domain.StatWork, Multiplier: 1.0, Description: "Tracked voice channel time (1x Work)"},
}

// Names lists the loggable activities in command-option order.
var Names = []string{
	Workout,
	Video,
	Reading,
	Writing,
	Meditation,
	BackgroundMed,
	Work,
	Agility,
	Strength,
}

// Lookup returns the catalog entry for an activity name.
func Lookup(name string) (Entry, bool) {
	e, ok := catalog[name]
	return e, ok
}

// GrantedXP converts logged minutes into whole XP for the named activity.
// The product is floored, never rounded: 10 minutes of video (0.7x) grant
// 7 XP, 4 minutes of background meditation (0.2x) grant 0. A zero grant is
// still a valid outcome, not an error.
func GrantedXP(name string, minutes int) (int, error) {
	e, ok := catalog[name]
	if !ok {
		return 0, fmt.Errorf("%w: %s", domain.ErrUnknownActivity, name)
	}
	if minutes <= 0 {
		return 0, fmt.Errorf("%w: %s", domain.ErrInvalidMinutes, name)
	}
	return int(math.Floor(float64(minutes) * e.Multiplier)), nil
}

// Deltas expands a grant into the stat increments it produces: the target
// stat, plus the parent stat for sub-stat activities. The parent carries
// the same amount so it stays a running sum of its children.
func Deltas(name string, xp int) (domain.StatDeltas, error) {
	e, ok := catalog[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownActivity, name)
	}

	deltas := domain.StatDeltas{e.Stat: xp}
	if e.Parent != "" {
		deltas[e.Parent] = xp
	}
	return deltas, nil
}
