package achievement

import (
	"time"

	"github.com/google/uuid"
)

type ConditionType string

const (
	ConditionEventsCompleted ConditionType = "events_completed"
	ConditionStreak          ConditionType = "streak"
	ConditionLevel           ConditionType = "level"

	// Per-category conditions are "category_<name>", e.g. "category_ecology".
	CategoryConditionPrefix = "category_"
)

type Achievement struct {
	ID             uuid.UUID     `json:"id" db:"id"`
	Key            string        `json:"key" db:"key"`
	Title          string        `json:"title" db:"title"`
	Description    string        `json:"description" db:"description"`
	Icon           string        `json:"icon" db:"icon"`
	XPBonus        int           `json:"xpBonus" db:"xp_bonus"`
	ConditionType  ConditionType `json:"conditionType" db:"condition_type"`
	ConditionValue int           `json:"conditionValue" db:"condition_value"`
	CreatedAt      time.Time     `json:"createdAt" db:"created_at"`
}

type UserAchievement struct {
	ID            uuid.UUID `json:"id" db:"id"`
	UserID        uuid.UUID `json:"user_id" db:"user_id"`
	AchievementID uuid.UUID `json:"achievement_id" db:"achievement_id"`
	EarnedAt      time.Time `json:"earned_at" db:"earned_at"`
}

type AchievementList struct {
	Earned    []*Achievement `json:"earned"`
	Available []*Achievement `json:"available"`
}
