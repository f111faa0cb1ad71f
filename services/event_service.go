package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindSparkAPI/internal/achievement"
	"kindSparkAPI/internal/event"
	"kindSparkAPI/internal/gamification"
	"kindSparkAPI/middleware"
)

type EventService struct {
	db        *pgxpool.Pool
	evolution gamification.EvolutionTable
}

func NewEventService(db *pgxpool.Pool) *EventService {
	return &EventService{db: db, evolution: gamification.DefaultEvolutionTable()}
}

const eventColumns = `id, title, description, category, latitude, longitude, address, start_time, end_time, xp_reward, max_participants, image_url, created_at`

func scanEvent(row pgx.Row, ev *event.Event) error {
	return row.Scan(
		&ev.ID,
		&ev.Title,
		&ev.Description,
		&ev.Category,
		&ev.Latitude,
		&ev.Longitude,
		&ev.Address,
		&ev.StartTime,
		&ev.EndTime,
		&ev.XPReward,
		&ev.MaxParticipants,
		&ev.ImageURL,
		&ev.CreatedAt,
	)
}

func (s *EventService) GetEvents(ctx context.Context, category string) ([]*event.EventWithCount, error) {
	query := `
	SELECT e.id, e.title, e.description, e.category, e.latitude, e.longitude, e.address,
		e.start_time, e.end_time, e.xp_reward, e.max_participants, e.image_url, e.created_at,
		COUNT(p.id) FILTER (WHERE p.status IN ('joined', 'completed')) AS participants_count
	FROM events e
	LEFT JOIN event_participations p ON p.event_id = e.id
	WHERE ($1 = '' OR e.category = $1)
	GROUP BY e.id
	ORDER BY e.start_time
	`

	rows, err := s.db.Query(ctx, query, category)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch events: %w", err)
	}
	defer rows.Close()

	var events []*event.EventWithCount
	for rows.Next() {
		ev := &event.EventWithCount{}
		err := rows.Scan(
			&ev.ID,
			&ev.Title,
			&ev.Description,
			&ev.Category,
			&ev.Latitude,
			&ev.Longitude,
			&ev.Address,
			&ev.StartTime,
			&ev.EndTime,
			&ev.XPReward,
			&ev.MaxParticipants,
			&ev.ImageURL,
			&ev.CreatedAt,
			&ev.ParticipantsCount,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan event: %w", err)
		}
		events = append(events, ev)
	}

	return events, nil
}

func (s *EventService) GetEventDetail(ctx context.Context, eventID, userID uuid.UUID) (*event.EventDetail, error) {
	detail := &event.EventDetail{}

	query := `
	SELECT e.id, e.title, e.description, e.category, e.latitude, e.longitude, e.address,
		e.start_time, e.end_time, e.xp_reward, e.max_participants, e.image_url, e.created_at,
		COUNT(p.id) FILTER (WHERE p.status IN ('joined', 'completed')) AS participants_count
	FROM events e
	LEFT JOIN event_participations p ON p.event_id = e.id
	WHERE e.id = $1
	GROUP BY e.id
	`

	err := s.db.QueryRow(ctx, query, eventID).Scan(
		&detail.ID,
		&detail.Title,
		&detail.Description,
		&detail.Category,
		&detail.Latitude,
		&detail.Longitude,
		&detail.Address,
		&detail.StartTime,
		&detail.EndTime,
		&detail.XPReward,
		&detail.MaxParticipants,
		&detail.ImageURL,
		&detail.CreatedAt,
		&detail.ParticipantsCount,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	var status event.ParticipationStatus
	err = s.db.QueryRow(ctx,
		`SELECT status FROM event_participations WHERE event_id = $1 AND user_id = $2`,
		eventID, userID,
	).Scan(&status)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}

	detail.IsJoined = status == event.StatusJoined || status == event.StatusCompleted
	detail.IsCompleted = status == event.StatusCompleted

	return detail, nil
}

// JoinEvent records a 'joined' participation. Joining twice is a no-op
// that returns the existing row.
func (s *EventService) JoinEvent(ctx context.Context, eventID, userID uuid.UUID) (*event.Participation, error) {
	var exists bool
	err := s.db.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM events WHERE id = $1)`, eventID).Scan(&exists)
	if err != nil {
		return nil, fmt.Errorf("failed to check event: %w", err)
	}
	if !exists {
		return nil, ErrNotFound
	}

	p := &event.Participation{}
	query := `
	INSERT INTO event_participations (id, user_id, event_id, status, joined_at)
	VALUES ($1, $2, $3, 'joined', NOW())
	ON CONFLICT (user_id, event_id) DO UPDATE SET user_id = event_participations.user_id
	RETURNING id, user_id, event_id, status, joined_at, completed_at
	`

	err = s.db.QueryRow(ctx, query, uuid.New(), userID, eventID).Scan(
		&p.ID,
		&p.UserID,
		&p.EventID,
		&p.Status,
		&p.JoinedAt,
		&p.CompletedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to join event: %w", err)
	}

	return p, nil
}

// CompleteEvent runs the whole completion as one transaction: credit the
// streak, apply event + streak XP, evaluate achievements against the
// updated aggregates and apply their bonus XP in a second pass.
//
// The pet row is locked FOR UPDATE, which serializes completions per
// user; cross-user completions proceed in parallel. Nothing is observable
// outside the transaction until commit, so a failure at any step leaves
// no partial state behind.
func (s *EventService) CompleteEvent(ctx context.Context, eventID, userID uuid.UUID) (*event.CompletionResult, error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	p := &event.Participation{}
	err = tx.QueryRow(ctx, `
	SELECT id, user_id, event_id, status, joined_at, completed_at
	FROM event_participations
	WHERE event_id = $1 AND user_id = $2
	FOR UPDATE
	`, eventID, userID).Scan(&p.ID, &p.UserID, &p.EventID, &p.Status, &p.JoinedAt, &p.CompletedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotEligible
		}
		return nil, fmt.Errorf("failed to get participation: %w", err)
	}
	if p.Status != event.StatusJoined {
		return nil, ErrNotEligible
	}

	ev := &event.Event{}
	err = scanEvent(tx.QueryRow(ctx, `SELECT `+eventColumns+` FROM events WHERE id = $1`, eventID), ev)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get event: %w", err)
	}

	now := time.Now().UTC()
	_, err = tx.Exec(ctx,
		`UPDATE event_participations SET status = 'completed', completed_at = $2 WHERE id = $1`,
		p.ID, now,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to complete participation: %w", err)
	}
	p.Status = event.StatusCompleted
	p.CompletedAt = &now

	// Row lock: at most one in-flight completion per user.
	pt, err := scanPet(tx.QueryRow(ctx, `SELECT `+petColumns+` FROM pets WHERE user_id = $1 FOR UPDATE`, userID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pet: %w", err)
	}

	streakBonus := gamification.UpdateStreak(pt, now)
	totalXP := ev.XPReward + streakBonus
	gamification.ApplyXP(pt, totalXP, now, s.evolution)

	progress, err := loadProgressTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}
	progress.StreakDays = pt.StreakDays
	progress.Level = pt.Level

	catalog, err := loadCatalogTx(ctx, tx)
	if err != nil {
		return nil, err
	}

	earned, err := loadEarnedTx(ctx, tx, userID)
	if err != nil {
		return nil, err
	}

	candidates := gamification.Evaluate(progress, catalog, earned)

	// Awards are at-most-once per (user, achievement): only rows this
	// insert actually created are reported and credited.
	newAchievements := []*achievement.Achievement{}
	for _, a := range candidates {
		tag, err := tx.Exec(ctx, `
		INSERT INTO user_achievements (id, user_id, achievement_id, earned_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, achievement_id) DO NOTHING
		`, uuid.New(), userID, a.ID, now)
		if err != nil {
			return nil, fmt.Errorf("failed to record achievement: %w", err)
		}
		if tag.RowsAffected() > 0 {
			newAchievements = append(newAchievements, a)
		}
	}

	// Second leveling pass. Achievements unlocked by this pass itself are
	// picked up on the next completion, not re-evaluated here.
	achievementXP := 0
	for _, a := range newAchievements {
		achievementXP += a.XPBonus
	}
	if achievementXP > 0 {
		gamification.ApplyXP(pt, achievementXP, now, s.evolution)
	}

	if err := savePetTx(ctx, tx, pt); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("failed to commit completion: %w", err)
	}

	middleware.RecordCompletion(string(ev.Category))
	log.Printf("CompleteEvent: user %s completed event %s (+%d xp, streak %d, %d new achievements)",
		userID, eventID, totalXP+achievementXP, pt.StreakDays, len(newAchievements))

	return &event.CompletionResult{
		Participation:   p,
		Pet:             pt,
		XPEarned:        totalXP + achievementXP,
		StreakBonus:     streakBonus,
		NewAchievements: newAchievements,
	}, nil
}

func loadProgressTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (gamification.Progress, error) {
	progress := gamification.Progress{CategoryCounts: map[string]int{}}

	err := tx.QueryRow(ctx, `
	SELECT COUNT(*) FROM event_participations
	WHERE user_id = $1 AND status = 'completed'
	`, userID).Scan(&progress.EventsCompleted)
	if err != nil {
		return progress, fmt.Errorf("failed to count completions: %w", err)
	}

	rows, err := tx.Query(ctx, `
	SELECT e.category, COUNT(p.id)
	FROM event_participations p
	JOIN events e ON e.id = p.event_id
	WHERE p.user_id = $1 AND p.status = 'completed'
	GROUP BY e.category
	`, userID)
	if err != nil {
		return progress, fmt.Errorf("failed to count category completions: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return progress, fmt.Errorf("failed to scan category count: %w", err)
		}
		progress.CategoryCounts[category] = count
	}

	return progress, nil
}

func loadCatalogTx(ctx context.Context, tx pgx.Tx) ([]*achievement.Achievement, error) {
	rows, err := tx.Query(ctx, `
	SELECT id, key, title, description, icon, xp_bonus, condition_type, condition_value, created_at
	FROM achievements
	ORDER BY created_at, key
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievement catalog: %w", err)
	}
	defer rows.Close()

	var catalog []*achievement.Achievement
	for rows.Next() {
		a := &achievement.Achievement{}
		err := rows.Scan(
			&a.ID,
			&a.Key,
			&a.Title,
			&a.Description,
			&a.Icon,
			&a.XPBonus,
			&a.ConditionType,
			&a.ConditionValue,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}
		catalog = append(catalog, a)
	}

	return catalog, nil
}

func loadEarnedTx(ctx context.Context, tx pgx.Tx, userID uuid.UUID) (map[uuid.UUID]bool, error) {
	rows, err := tx.Query(ctx, `SELECT achievement_id FROM user_achievements WHERE user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch earned achievements: %w", err)
	}
	defer rows.Close()

	earned := make(map[uuid.UUID]bool)
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("failed to scan earned achievement: %w", err)
		}
		earned[id] = true
	}

	return earned, nil
}
