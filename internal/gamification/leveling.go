package gamification

import (
	"time"

	"kindSparkAPI/internal/pet"
)

// EvolutionStep maps a level threshold to an evolution stage.
type EvolutionStep struct {
	Level int
	Stage int
}

// EvolutionTable is an ordered level→stage mapping, ascending by level.
// It is passed into ApplyXP explicitly so alternate curves can be tested.
type EvolutionTable []EvolutionStep

// DefaultEvolutionTable returns the production curve:
// egg at 1, baby at 3, teen at 6, adult at 10.
func DefaultEvolutionTable() EvolutionTable {
	return EvolutionTable{
		{Level: 1, Stage: 1},
		{Level: 3, Stage: 2},
		{Level: 6, Stage: 3},
		{Level: 10, Stage: 4},
	}
}

func (t EvolutionTable) stageFor(level int) (int, bool) {
	for _, step := range t {
		if step.Level == level {
			return step.Stage, true
		}
	}
	return 0, false
}

// ApplyXP adds amount XP to the pet and applies cascading level-ups.
// Each level requires level*100 XP, so a single large grant can jump
// several levels. Gaining XP always leaves the pet happy and refreshes
// its feeding time, regardless of the mood decay clock.
//
// Invariant on return: 0 <= pet.XP < pet.XPToNextLevel.
func ApplyXP(p *pet.Pet, amount int, now time.Time, table EvolutionTable) {
	if amount < 0 {
		amount = 0
	}

	p.XP += amount
	p.LastFedAt = &now

	for p.XP >= p.XPToNextLevel {
		p.XP -= p.XPToNextLevel
		p.Level++
		p.XPToNextLevel = p.Level * 100

		if stage, ok := table.stageFor(p.Level); ok {
			p.EvolutionStage = stage
		}
	}

	p.Mood = pet.MoodHappy
}
