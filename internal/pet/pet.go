package pet

import (
	"time"

	"github.com/google/uuid"
)

type Mood string

const (
	MoodHappy    Mood = "happy"
	MoodNeutral  Mood = "neutral"
	MoodSad      Mood = "sad"
	MoodSleeping Mood = "sleeping"
)

// Evolution stages: 1=egg, 2=baby, 3=teen, 4=adult
type Pet struct {
	ID             uuid.UUID  `json:"id" db:"id"`
	UserID         uuid.UUID  `json:"userId" db:"user_id"`
	Name           string     `json:"name" db:"name"`
	Mood           Mood       `json:"mood" db:"mood"`
	Level          int        `json:"level" db:"level"`
	XP             int        `json:"xp" db:"xp"`
	XPToNextLevel  int        `json:"xpToNextLevel" db:"xp_to_next_level"`
	EvolutionStage int        `json:"evolutionStage" db:"evolution_stage"`
	LastFedAt      *time.Time `json:"lastFedAt,omitempty" db:"last_fed_at"`
	StreakDays     int        `json:"streakDays" db:"streak_days"`
	StreakLastDate *string    `json:"streakLastDate,omitempty" db:"streak_last_date"` // YYYY-MM-DD
	CreatedAt      time.Time  `json:"createdAt" db:"created_at"`
	UpdatedAt      time.Time  `json:"updatedAt" db:"updated_at"`
}

type UpdatePetRequest struct {
	Name string `json:"name"`
}
