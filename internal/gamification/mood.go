package gamification

import (
	"time"

	"kindSparkAPI/internal/pet"
)

// DeriveMood maps the time since the pet was last fed onto its mood.
// A pet that has never been fed is neutral. Callers refresh the stored
// mood lazily on read; nothing recomputes it on a timer.
func DeriveMood(lastFedAt *time.Time, now time.Time) pet.Mood {
	if lastFedAt == nil {
		return pet.MoodNeutral
	}

	hours := now.Sub(*lastFedAt).Hours()
	switch {
	case hours < 12:
		return pet.MoodHappy
	case hours < 24:
		return pet.MoodNeutral
	case hours < 48:
		return pet.MoodSad
	default:
		return pet.MoodSleeping
	}
}
