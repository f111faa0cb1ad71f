package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindSparkAPI/internal/stats"
)

type GamificationService struct {
	db *pgxpool.Pool
}

func NewGamificationService(db *pgxpool.Pool) *GamificationService {
	return &GamificationService{db: db}
}

func (s *GamificationService) GetLeaderboard(ctx context.Context) (*stats.LeaderboardResponse, error) {
	query := `
	SELECT u.username, p.level, p.xp, p.name, p.evolution_stage
	FROM pets p
	JOIN users u ON u.id = p.user_id
	ORDER BY p.level DESC, p.xp DESC
	LIMIT 50
	`

	rows, err := s.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []*stats.LeaderboardEntry{}
	rank := 0
	for rows.Next() {
		rank++
		entry := &stats.LeaderboardEntry{Rank: rank}
		err := rows.Scan(
			&entry.Username,
			&entry.Level,
			&entry.XP,
			&entry.PetName,
			&entry.PetEvolutionStage,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leaderboard entry: %w", err)
		}
		entries = append(entries, entry)
	}

	return &stats.LeaderboardResponse{Leaderboard: entries}, nil
}

func (s *GamificationService) GetProfileStats(ctx context.Context, userID uuid.UUID) (*stats.ProfileStats, error) {
	result := &stats.ProfileStats{CategoryCounts: map[string]int{}, Level: 1}

	var level, xp int
	err := s.db.QueryRow(ctx,
		`SELECT level, xp, streak_days FROM pets WHERE user_id = $1`,
		userID,
	).Scan(&level, &xp, &result.StreakDays)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get pet stats: %w", err)
	}
	result.Level = level

	// Cumulative XP: sum of k*100 for k=1..level-1, plus current progress.
	result.TotalXP = (level-1)*level*50 + xp

	err = s.db.QueryRow(ctx, `
	SELECT COUNT(*) FROM event_participations
	WHERE user_id = $1 AND status = 'completed'
	`, userID).Scan(&result.EventsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	rows, err := s.db.Query(ctx, `
	SELECT e.category, COUNT(p.id)
	FROM event_participations p
	JOIN events e ON e.id = p.event_id
	WHERE p.user_id = $1 AND p.status = 'completed'
	GROUP BY e.category
	`, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category counts: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category count: %w", err)
		}
		result.CategoryCounts[category] = count
	}

	return result, nil
}

// GetWeeklyActivity returns per-day completion counts and XP for the
// last 7 days plus the week's category breakdown. Days carry an ISO date
// and a Monday-based weekday index; naming the days is a client concern.
func (s *GamificationService) GetWeeklyActivity(ctx context.Context, userID uuid.UUID) (*stats.WeeklyActivity, error) {
	today := time.Now().UTC().Truncate(24 * time.Hour)
	weekStart := today.AddDate(0, 0, -6)

	rows, err := s.db.Query(ctx, `
	SELECT CAST(p.completed_at AS date) AS day, COUNT(p.id), COALESCE(SUM(e.xp_reward), 0)
	FROM event_participations p
	JOIN events e ON e.id = p.event_id
	WHERE p.user_id = $1
		AND p.status = 'completed'
		AND p.completed_at IS NOT NULL
		AND CAST(p.completed_at AS date) >= $2
	GROUP BY CAST(p.completed_at AS date)
	`, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch daily activity: %w", err)
	}
	defer rows.Close()

	type dayInfo struct {
		count int
		xp    int
	}
	daily := map[string]dayInfo{}
	for rows.Next() {
		var day time.Time
		var info dayInfo
		if err := rows.Scan(&day, &info.count, &info.xp); err != nil {
			return nil, fmt.Errorf("failed to scan daily activity: %w", err)
		}
		daily[day.Format("2006-01-02")] = info
	}

	activity := &stats.WeeklyActivity{
		WeeklyActivity:    []*stats.DayActivity{},
		CategoryBreakdown: map[string]int{},
	}

	for i := 0; i < 7; i++ {
		d := weekStart.AddDate(0, 0, i)
		info := daily[d.Format("2006-01-02")]
		activity.WeeklyActivity = append(activity.WeeklyActivity, &stats.DayActivity{
			Weekday: (int(d.Weekday()) + 6) % 7,
			Date:    d.Format("2006-01-02"),
			Count:   info.count,
			XP:      info.xp,
		})
		activity.ThisWeekEvents += info.count
		activity.ThisWeekXP += info.xp
	}

	catRows, err := s.db.Query(ctx, `
	SELECT e.category, COUNT(p.id)
	FROM event_participations p
	JOIN events e ON e.id = p.event_id
	WHERE p.user_id = $1
		AND p.status = 'completed'
		AND p.completed_at IS NOT NULL
		AND CAST(p.completed_at AS date) >= $2
	GROUP BY e.category
	`, userID, weekStart)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category breakdown: %w", err)
	}
	defer catRows.Close()

	for catRows.Next() {
		var category string
		var count int
		if err := catRows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category breakdown: %w", err)
		}
		activity.CategoryBreakdown[category] = count
	}

	return activity, nil
}

func (s *GamificationService) GetImpact(ctx context.Context) (*stats.Impact, error) {
	impact := &stats.Impact{
		CategoryBreakdown: map[string]int{},
		RecentCompletions: []*stats.RecentCompletion{},
	}

	err := s.db.QueryRow(ctx, `
	SELECT COUNT(DISTINCT user_id) FROM event_participations WHERE status = 'completed'
	`).Scan(&impact.TotalVolunteers)
	if err != nil {
		return nil, fmt.Errorf("failed to count volunteers: %w", err)
	}

	err = s.db.QueryRow(ctx, `
	SELECT COUNT(*) FROM event_participations WHERE status = 'completed'
	`).Scan(&impact.TotalEventsCompleted)
	if err != nil {
		return nil, fmt.Errorf("failed to count completions: %w", err)
	}

	err = s.db.QueryRow(ctx, `
	SELECT COALESCE(SUM((level - 1) * level * 50 + xp), 0) FROM pets
	`).Scan(&impact.TotalXPEarned)
	if err != nil {
		return nil, fmt.Errorf("failed to sum xp: %w", err)
	}

	rows, err := s.db.Query(ctx, `
	SELECT e.category, COUNT(p.id)
	FROM event_participations p
	JOIN events e ON e.id = p.event_id
	WHERE p.status = 'completed'
	GROUP BY e.category
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch category breakdown: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var category string
		var count int
		if err := rows.Scan(&category, &count); err != nil {
			return nil, fmt.Errorf("failed to scan category breakdown: %w", err)
		}
		impact.CategoryBreakdown[category] = count
	}

	recentRows, err := s.db.Query(ctx, `
	SELECT u.username, e.title, e.category, p.completed_at
	FROM event_participations p
	JOIN users u ON u.id = p.user_id
	JOIN events e ON e.id = p.event_id
	WHERE p.status = 'completed'
	ORDER BY p.completed_at DESC
	LIMIT 10
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch recent completions: %w", err)
	}
	defer recentRows.Close()

	for recentRows.Next() {
		rc := &stats.RecentCompletion{}
		if err := recentRows.Scan(&rc.Username, &rc.EventTitle, &rc.Category, &rc.CompletedAt); err != nil {
			return nil, fmt.Errorf("failed to scan recent completion: %w", err)
		}
		impact.RecentCompletions = append(impact.RecentCompletions, rc)
	}

	return impact, nil
}
