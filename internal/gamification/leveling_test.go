package gamification

import (
	"testing"
	"time"

	"kindSparkAPI/internal/pet"
)

func newTestPet() *pet.Pet {
	return &pet.Pet{
		Name:           "Spark",
		Mood:           pet.MoodNeutral,
		Level:          1,
		XP:             0,
		XPToNextLevel:  100,
		EvolutionStage: 1,
	}
}

func TestApplyXPNoLevelUp(t *testing.T) {
	p := newTestPet()
	now := time.Now()

	ApplyXP(p, 40, now, DefaultEvolutionTable())

	if p.Level != 1 || p.XP != 40 || p.XPToNextLevel != 100 {
		t.Errorf("unexpected state: level=%d xp=%d next=%d", p.Level, p.XP, p.XPToNextLevel)
	}
	if p.Mood != pet.MoodHappy {
		t.Errorf("expected happy after feeding, got %s", p.Mood)
	}
	if p.LastFedAt == nil || !p.LastFedAt.Equal(now) {
		t.Error("expected lastFedAt to be refreshed")
	}
}

func TestApplyXPSingleLevelUp(t *testing.T) {
	p := newTestPet()
	p.XP = 90

	ApplyXP(p, 75, time.Now(), DefaultEvolutionTable())

	if p.Level != 2 {
		t.Errorf("expected level 2, got %d", p.Level)
	}
	if p.XP != 65 {
		t.Errorf("expected 65 xp remaining, got %d", p.XP)
	}
	if p.XPToNextLevel != 200 {
		t.Errorf("expected next threshold 200, got %d", p.XPToNextLevel)
	}
}

func TestApplyXPCascadingLevelUps(t *testing.T) {
	p := newTestPet()

	// 100+200+300 = 600 to reach level 4, plus 50 left over.
	ApplyXP(p, 650, time.Now(), DefaultEvolutionTable())

	if p.Level != 4 {
		t.Errorf("expected level 4 from one grant, got %d", p.Level)
	}
	if p.XP != 50 {
		t.Errorf("expected 50 xp remaining, got %d", p.XP)
	}
	if p.EvolutionStage != 2 {
		t.Errorf("expected stage 2 (crossed level 3), got %d", p.EvolutionStage)
	}
}

func TestApplyXPInvariant(t *testing.T) {
	amounts := []int{0, 1, 99, 100, 101, 250, 999, 5000, 123456}
	for _, amount := range amounts {
		p := newTestPet()
		ApplyXP(p, amount, time.Now(), DefaultEvolutionTable())
		if p.XP < 0 || p.XP >= p.XPToNextLevel {
			t.Errorf("amount %d: invariant violated, xp=%d next=%d", amount, p.XP, p.XPToNextLevel)
		}
	}
}

func TestApplyXPAdditivity(t *testing.T) {
	splits := []struct{ a, b int }{
		{0, 160}, {60, 100}, {100, 60}, {159, 1}, {500, 777},
	}

	for _, s := range splits {
		once := newTestPet()
		twice := newTestPet()
		now := time.Now()

		ApplyXP(once, s.a+s.b, now, DefaultEvolutionTable())
		ApplyXP(twice, s.a, now, DefaultEvolutionTable())
		ApplyXP(twice, s.b, now, DefaultEvolutionTable())

		if once.Level != twice.Level || once.XP != twice.XP || once.EvolutionStage != twice.EvolutionStage {
			t.Errorf("split %d+%d: one call got level=%d xp=%d stage=%d, two calls got level=%d xp=%d stage=%d",
				s.a, s.b, once.Level, once.XP, once.EvolutionStage, twice.Level, twice.XP, twice.EvolutionStage)
		}
	}
}

func TestApplyXPEvolutionThresholds(t *testing.T) {
	cases := []struct {
		targetLevel int
		wantStage   int
	}{
		{2, 1},
		{3, 2},
		{4, 2}, // not in the table, stage unchanged
		{5, 2},
		{6, 3},
		{9, 3},
		{10, 4},
		{12, 4},
	}

	for _, tc := range cases {
		p := newTestPet()
		// Cumulative XP to reach level n from 1: sum of k*100 for k=1..n-1.
		total := 0
		for k := 1; k < tc.targetLevel; k++ {
			total += k * 100
		}
		ApplyXP(p, total, time.Now(), DefaultEvolutionTable())

		if p.Level != tc.targetLevel {
			t.Fatalf("expected level %d, got %d", tc.targetLevel, p.Level)
		}
		if p.EvolutionStage != tc.wantStage {
			t.Errorf("level %d: expected stage %d, got %d", tc.targetLevel, tc.wantStage, p.EvolutionStage)
		}
	}
}

func TestApplyXPAlternateTable(t *testing.T) {
	table := EvolutionTable{{Level: 1, Stage: 1}, {Level: 2, Stage: 7}}
	p := newTestPet()

	ApplyXP(p, 100, time.Now(), table)

	if p.EvolutionStage != 7 {
		t.Errorf("expected stage 7 from alternate table, got %d", p.EvolutionStage)
	}
}

func TestApplyXPZeroAmountRefreshesOnly(t *testing.T) {
	p := newTestPet()
	p.Mood = pet.MoodSleeping
	now := time.Now()

	ApplyXP(p, 0, now, DefaultEvolutionTable())

	if p.Level != 1 || p.XP != 0 {
		t.Errorf("zero grant changed progress: level=%d xp=%d", p.Level, p.XP)
	}
	if p.Mood != pet.MoodHappy || p.LastFedAt == nil {
		t.Error("zero grant should still refresh mood and feeding time")
	}
}

func TestApplyXPNegativeAmountIgnored(t *testing.T) {
	p := newTestPet()
	p.XP = 42

	ApplyXP(p, -100, time.Now(), DefaultEvolutionTable())

	if p.XP != 42 || p.Level != 1 {
		t.Errorf("negative grant mutated progress: level=%d xp=%d", p.Level, p.XP)
	}
}

func TestApplyXPLargeGrantTerminates(t *testing.T) {
	p := newTestPet()

	// ~10M XP is a few hundred level-ups; the loop must stay bounded.
	ApplyXP(p, 10_000_000, time.Now(), DefaultEvolutionTable())

	if p.XP < 0 || p.XP >= p.XPToNextLevel {
		t.Errorf("invariant violated after large grant: xp=%d next=%d", p.XP, p.XPToNextLevel)
	}
	if p.EvolutionStage != 4 {
		t.Errorf("expected final stage after large grant, got %d", p.EvolutionStage)
	}
}
