package event

import (
	"time"

	"github.com/google/uuid"
)

type Category string

const (
	CategoryEcology   Category = "ecology"
	CategorySocial    Category = "social"
	CategoryAnimals   Category = "animals"
	CategoryEducation Category = "education"
)

type ParticipationStatus string

const (
	StatusJoined    ParticipationStatus = "joined"
	StatusCompleted ParticipationStatus = "completed"
	StatusCancelled ParticipationStatus = "cancelled"
)

type Event struct {
	ID              uuid.UUID  `json:"id" db:"id"`
	Title           string     `json:"title" db:"title"`
	Description     string     `json:"description" db:"description"`
	Category        Category   `json:"category" db:"category"`
	Latitude        float64    `json:"latitude" db:"latitude"`
	Longitude       float64    `json:"longitude" db:"longitude"`
	Address         string     `json:"address" db:"address"`
	StartTime       time.Time  `json:"startTime" db:"start_time"`
	EndTime         *time.Time `json:"endTime,omitempty" db:"end_time"`
	XPReward        int        `json:"xpReward" db:"xp_reward"`
	MaxParticipants *int       `json:"maxParticipants,omitempty" db:"max_participants"`
	ImageURL        *string    `json:"imageUrl,omitempty" db:"image_url"`
	CreatedAt       time.Time  `json:"createdAt" db:"created_at"`
}

type EventWithCount struct {
	Event
	ParticipantsCount int `json:"participantsCount"`
}

type EventDetail struct {
	EventWithCount
	IsJoined    bool `json:"isJoined"`
	IsCompleted bool `json:"isCompleted"`
}

type Participation struct {
	ID          uuid.UUID           `json:"id" db:"id"`
	UserID      uuid.UUID           `json:"userId" db:"user_id"`
	EventID     uuid.UUID           `json:"eventId" db:"event_id"`
	Status      ParticipationStatus `json:"status" db:"status"`
	JoinedAt    time.Time           `json:"joinedAt" db:"joined_at"`
	CompletedAt *time.Time          `json:"completedAt,omitempty" db:"completed_at"`
}
