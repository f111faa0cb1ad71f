package gamification

import (
	"strings"

	"github.com/google/uuid"

	"kindSparkAPI/internal/achievement"
)

// Progress aggregates everything achievement conditions are judged
// against. The counts only ever grow, so an earned achievement can
// never be un-earned.
type Progress struct {
	EventsCompleted int
	CategoryCounts  map[string]int
	StreakDays      int
	Level           int
}

// Evaluate returns the catalog achievements whose condition now holds
// and that the user has not earned yet, in catalog order. Recording the
// awards is the caller's job; already-earned entries are skipped here,
// not treated as an error.
func Evaluate(progress Progress, catalog []*achievement.Achievement, earned map[uuid.UUID]bool) []*achievement.Achievement {
	var newlyEarned []*achievement.Achievement

	for _, a := range catalog {
		if earned[a.ID] {
			continue
		}

		met := false
		switch {
		case a.ConditionType == achievement.ConditionEventsCompleted:
			met = progress.EventsCompleted >= a.ConditionValue
		case a.ConditionType == achievement.ConditionStreak:
			met = progress.StreakDays >= a.ConditionValue
		case a.ConditionType == achievement.ConditionLevel:
			met = progress.Level >= a.ConditionValue
		case strings.HasPrefix(string(a.ConditionType), achievement.CategoryConditionPrefix):
			cat := strings.TrimPrefix(string(a.ConditionType), achievement.CategoryConditionPrefix)
			met = progress.CategoryCounts[cat] >= a.ConditionValue
		}

		if met {
			newlyEarned = append(newlyEarned, a)
		}
	}

	return newlyEarned
}
