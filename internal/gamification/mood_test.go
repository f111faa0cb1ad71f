package gamification

import (
	"testing"
	"time"

	"kindSparkAPI/internal/pet"
)

func TestDeriveMoodNeverFed(t *testing.T) {
	if got := DeriveMood(nil, time.Now()); got != pet.MoodNeutral {
		t.Errorf("expected neutral for never-fed pet, got %s", got)
	}
}

func TestDeriveMoodBoundaries(t *testing.T) {
	now := time.Date(2026, 3, 10, 18, 0, 0, 0, time.UTC)

	cases := []struct {
		name    string
		elapsed time.Duration
		want    pet.Mood
	}{
		{"just fed", 0, pet.MoodHappy},
		{"under 12h", 11*time.Hour + 59*time.Minute, pet.MoodHappy},
		{"exactly 12h", 12 * time.Hour, pet.MoodNeutral},
		{"under 24h", 23 * time.Hour, pet.MoodNeutral},
		{"exactly 24h", 24 * time.Hour, pet.MoodSad},
		{"under 48h", 47 * time.Hour, pet.MoodSad},
		{"exactly 48h", 48 * time.Hour, pet.MoodSleeping},
		{"days later", 100 * time.Hour, pet.MoodSleeping},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			fedAt := now.Add(-tc.elapsed)
			if got := DeriveMood(&fedAt, now); got != tc.want {
				t.Errorf("elapsed %s: expected %s, got %s", tc.elapsed, tc.want, got)
			}
		})
	}
}
