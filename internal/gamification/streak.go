package gamification

import (
	"time"

	"kindSparkAPI/internal/pet"
)

const (
	streakBonusPerDay = 5
	streakBonusCap    = 50
)

const dateLayout = "2006-01-02"

// UpdateStreak credits today's activity against the pet's daily streak
// and returns the bonus XP it earned: 5 per consecutive day, capped at 50.
//
// A streak is credited at most once per UTC calendar day. The second
// completion on the same day returns 0 and changes nothing, which keeps
// repeated same-day completions from farming bonus XP. A one-day gap
// extends the streak; anything longer resets it to 1.
func UpdateStreak(p *pet.Pet, today time.Time) int {
	todayStr := today.UTC().Format(dateLayout)
	yesterdayStr := today.UTC().AddDate(0, 0, -1).Format(dateLayout)

	if p.StreakLastDate != nil && *p.StreakLastDate == todayStr {
		return 0
	}

	if p.StreakLastDate != nil && *p.StreakLastDate == yesterdayStr {
		p.StreakDays++
	} else {
		p.StreakDays = 1
	}

	p.StreakLastDate = &todayStr

	bonus := p.StreakDays * streakBonusPerDay
	if bonus > streakBonusCap {
		bonus = streakBonusCap
	}
	return bonus
}
