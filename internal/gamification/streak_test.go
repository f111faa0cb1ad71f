package gamification

import (
	"testing"
	"time"

	"kindSparkAPI/internal/pet"
)

var streakToday = time.Date(2026, 3, 10, 15, 30, 0, 0, time.UTC)

func dateStr(t time.Time) *string {
	s := t.UTC().Format("2006-01-02")
	return &s
}

func TestUpdateStreakFirstEver(t *testing.T) {
	p := &pet.Pet{}

	bonus := UpdateStreak(p, streakToday)

	if p.StreakDays != 1 {
		t.Errorf("expected streak 1, got %d", p.StreakDays)
	}
	if bonus != 5 {
		t.Errorf("expected bonus 5, got %d", bonus)
	}
	if p.StreakLastDate == nil || *p.StreakLastDate != "2026-03-10" {
		t.Errorf("expected streakLastDate 2026-03-10, got %v", p.StreakLastDate)
	}
}

func TestUpdateStreakConsecutiveDay(t *testing.T) {
	p := &pet.Pet{StreakDays: 2, StreakLastDate: dateStr(streakToday.AddDate(0, 0, -1))}

	bonus := UpdateStreak(p, streakToday)

	if p.StreakDays != 3 {
		t.Errorf("expected streak 3, got %d", p.StreakDays)
	}
	if bonus != 15 {
		t.Errorf("expected bonus 15, got %d", bonus)
	}
}

func TestUpdateStreakSameDayIdempotent(t *testing.T) {
	p := &pet.Pet{StreakDays: 2, StreakLastDate: dateStr(streakToday.AddDate(0, 0, -1))}

	first := UpdateStreak(p, streakToday)
	second := UpdateStreak(p, streakToday)

	if first != 15 {
		t.Errorf("expected first bonus 15, got %d", first)
	}
	if second != 0 {
		t.Errorf("expected second same-day call to yield 0, got %d", second)
	}
	if p.StreakDays != 3 {
		t.Errorf("expected streak unchanged at 3, got %d", p.StreakDays)
	}
}

func TestUpdateStreakGapResets(t *testing.T) {
	p := &pet.Pet{StreakDays: 9, StreakLastDate: dateStr(streakToday.AddDate(0, 0, -3))}

	bonus := UpdateStreak(p, streakToday)

	if p.StreakDays != 1 {
		t.Errorf("expected streak reset to 1, got %d", p.StreakDays)
	}
	if bonus != 5 {
		t.Errorf("expected bonus 5 after reset, got %d", bonus)
	}
}

func TestUpdateStreakBonusCap(t *testing.T) {
	p := &pet.Pet{StreakDays: 14, StreakLastDate: dateStr(streakToday.AddDate(0, 0, -1))}

	bonus := UpdateStreak(p, streakToday)

	if p.StreakDays != 15 {
		t.Errorf("expected streak 15, got %d", p.StreakDays)
	}
	if bonus != 50 {
		t.Errorf("expected bonus capped at 50, got %d", bonus)
	}
}
