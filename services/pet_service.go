package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindSparkAPI/internal/gamification"
	"kindSparkAPI/internal/pet"
)

// XP granted by a direct feed outside event completion.
const feedXPAmount = 10

type PetService struct {
	db        *pgxpool.Pool
	evolution gamification.EvolutionTable
}

func NewPetService(db *pgxpool.Pool) *PetService {
	return &PetService{db: db, evolution: gamification.DefaultEvolutionTable()}
}

const petColumns = `id, user_id, name, mood, level, xp, xp_to_next_level, evolution_stage, last_fed_at, streak_days, streak_last_date, created_at, updated_at`

func scanPet(row pgx.Row) (*pet.Pet, error) {
	p := &pet.Pet{}
	err := row.Scan(
		&p.ID,
		&p.UserID,
		&p.Name,
		&p.Mood,
		&p.Level,
		&p.XP,
		&p.XPToNextLevel,
		&p.EvolutionStage,
		&p.LastFedAt,
		&p.StreakDays,
		&p.StreakLastDate,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPetByUserID returns the user's pet with its mood recomputed from the
// feeding clock. A changed mood is written back opportunistically on read.
func (s *PetService) GetPetByUserID(ctx context.Context, userID uuid.UUID) (*pet.Pet, error) {
	query := `SELECT ` + petColumns + ` FROM pets WHERE user_id = $1`

	p, err := scanPet(s.db.QueryRow(ctx, query, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}

	newMood := gamification.DeriveMood(p.LastFedAt, time.Now().UTC())
	if newMood != p.Mood {
		p.Mood = newMood
		_, err = s.db.Exec(ctx, `UPDATE pets SET mood = $2, updated_at = NOW() WHERE id = $1`, p.ID, p.Mood)
		if err != nil {
			return nil, fmt.Errorf("failed to refresh pet mood: %w", err)
		}
	}

	return p, nil
}

func (s *PetService) RenamePet(ctx context.Context, userID uuid.UUID, name string) (*pet.Pet, error) {
	query := `
	UPDATE pets
	SET name = $2, updated_at = NOW()
	WHERE user_id = $1
	RETURNING ` + petColumns

	p, err := scanPet(s.db.QueryRow(ctx, query, userID, name))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to rename pet: %w", err)
	}

	return p, nil
}

// FeedPet grants a small fixed XP amount outside of event completion.
func (s *PetService) FeedPet(ctx context.Context, userID uuid.UUID) (*pet.Pet, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	p, err := scanPet(tx.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}

	gamification.ApplyXP(p, feedXPAmount, time.Now().UTC(), s.evolution)

	if err := savePetTx(ctx, tx, p); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit feed: %w", err)
	}

	return p, nil
}

func savePetTx(ctx context.Context, tx pgx.Tx, p *pet.Pet) error {
	query := `
	UPDATE pets
	SET mood = $2,
		level = $3,
		xp = $4,
		xp_to_next_level = $5,
		evolution_stage = $6,
		last_fed_at = $7,
		streak_days = $8,
		streak_last_date = $9,
		updated_at = NOW()
	WHERE id = $1
	`

	_, err := tx.Exec(ctx, query,
		p.ID,
		p.Mood,
		p.Level,
		p.XP,
		p.XPToNextLevel,
		p.EvolutionStage,
		p.LastFedAt,
		p.StreakDays,
		p.StreakLastDate,
	)
	if err != nil {
		return fmt.Errorf("failed to save pet: %w", err)
	}
	return nil
}
