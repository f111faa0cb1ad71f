package stats

import "time"

type LeaderboardEntry struct {
	Rank              int    `json:"rank"`
	Username          string `json:"username"`
	Level             int    `json:"level"`
	XP                int    `json:"xp"`
	PetName           string `json:"petName"`
	PetEvolutionStage int    `json:"petEvolutionStage"`
}

type LeaderboardResponse struct {
	Leaderboard []*LeaderboardEntry `json:"leaderboard"`
}

type ProfileStats struct {
	EventsCompleted int            `json:"events_completed"`
	TotalXP         int            `json:"total_xp"`
	StreakDays      int            `json:"streak_days"`
	Level           int            `json:"level"`
	CategoryCounts  map[string]int `json:"category_counts"`
}

type DayActivity struct {
	Weekday int    `json:"weekday"` // 0=Monday .. 6=Sunday, labels are a client concern
	Date    string `json:"date"`    // YYYY-MM-DD
	Count   int    `json:"count"`
	XP      int    `json:"xp"`
}

type WeeklyActivity struct {
	WeeklyActivity    []*DayActivity `json:"weekly_activity"`
	ThisWeekEvents    int            `json:"this_week_events"`
	ThisWeekXP        int            `json:"this_week_xp"`
	CategoryBreakdown map[string]int `json:"category_breakdown"`
}

type RecentCompletion struct {
	Username    string     `json:"username"`
	EventTitle  string     `json:"event_title"`
	Category    string     `json:"category"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

type Impact struct {
	TotalVolunteers      int                 `json:"total_volunteers"`
	TotalEventsCompleted int                 `json:"total_events_completed"`
	TotalXPEarned        int                 `json:"total_xp_earned"`
	CategoryBreakdown    map[string]int      `json:"category_breakdown"`
	RecentCompletions    []*RecentCompletion `json:"recent_completions"`
}
