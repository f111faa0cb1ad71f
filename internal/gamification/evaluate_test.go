package gamification

import (
	"testing"

	"github.com/google/uuid"

	"kindSparkAPI/internal/achievement"
)

func testCatalog() []*achievement.Achievement {
	return []*achievement.Achievement{
		{ID: uuid.New(), Key: "first_event", XPBonus: 20, ConditionType: achievement.ConditionEventsCompleted, ConditionValue: 1},
		{ID: uuid.New(), Key: "five_events", XPBonus: 50, ConditionType: achievement.ConditionEventsCompleted, ConditionValue: 5},
		{ID: uuid.New(), Key: "streak_3", XPBonus: 30, ConditionType: achievement.ConditionStreak, ConditionValue: 3},
		{ID: uuid.New(), Key: "level_3", XPBonus: 25, ConditionType: achievement.ConditionLevel, ConditionValue: 3},
		{ID: uuid.New(), Key: "eco_3", XPBonus: 40, ConditionType: "category_ecology", ConditionValue: 3},
	}
}

func keysOf(list []*achievement.Achievement) []string {
	keys := make([]string, 0, len(list))
	for _, a := range list {
		keys = append(keys, a.Key)
	}
	return keys
}

func TestEvaluateNoProgress(t *testing.T) {
	got := Evaluate(Progress{}, testCatalog(), nil)
	if len(got) != 0 {
		t.Errorf("expected nothing earned, got %v", keysOf(got))
	}
}

func TestEvaluateSingleCondition(t *testing.T) {
	progress := Progress{EventsCompleted: 1, Level: 1, StreakDays: 1}

	got := Evaluate(progress, testCatalog(), nil)

	if len(got) != 1 || got[0].Key != "first_event" {
		t.Errorf("expected [first_event], got %v", keysOf(got))
	}
}

func TestEvaluateMultipleAtOnce(t *testing.T) {
	// One completion can cross count, streak and level thresholds together.
	progress := Progress{
		EventsCompleted: 5,
		StreakDays:      3,
		Level:           3,
		CategoryCounts:  map[string]int{"ecology": 3},
	}

	got := Evaluate(progress, testCatalog(), nil)

	want := []string{"first_event", "five_events", "streak_3", "level_3", "eco_3"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, keysOf(got))
	}
	for i, key := range want {
		if got[i].Key != key {
			t.Errorf("position %d: expected %s (catalog order), got %s", i, key, got[i].Key)
		}
	}
}

func TestEvaluateAtMostOnce(t *testing.T) {
	catalog := testCatalog()
	progress := Progress{EventsCompleted: 2, StreakDays: 1, Level: 1}

	first := Evaluate(progress, catalog, nil)
	if len(first) != 1 {
		t.Fatalf("expected one new achievement, got %v", keysOf(first))
	}

	earned := map[uuid.UUID]bool{first[0].ID: true}
	second := Evaluate(progress, catalog, earned)
	if len(second) != 0 {
		t.Errorf("expected empty on re-evaluation with identical progress, got %v", keysOf(second))
	}
}

func TestEvaluateMissingCategoryIsZero(t *testing.T) {
	progress := Progress{EventsCompleted: 0, CategoryCounts: map[string]int{"social": 10}}

	got := Evaluate(progress, testCatalog(), nil)

	for _, a := range got {
		if a.Key == "eco_3" {
			t.Error("eco_3 should not be earned when the ecology count is absent")
		}
	}
}
