package event

import (
	"kindSparkAPI/internal/achievement"
	"kindSparkAPI/internal/pet"
)

// CompletionResult is the payload returned by a completed event: the pet
// after both XP passes, the full XP breakdown and any achievements that
// unlocked during this completion.
type CompletionResult struct {
	Participation   *Participation             `json:"participation"`
	Pet             *pet.Pet                   `json:"pet"`
	XPEarned        int                        `json:"xpEarned"`
	StreakBonus     int                        `json:"streakBonus"`
	NewAchievements []*achievement.Achievement `json:"newAchievements"`
}
