package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"kindSparkAPI/internal/achievement"
)

type AchievementService struct {
	db *pgxpool.Pool
}

func NewAchievementService(db *pgxpool.Pool) *AchievementService {
	return &AchievementService{db: db}
}

// GetAchievements splits the catalog into what the user has earned and
// what is still available.
func (s *AchievementService) GetAchievements(ctx context.Context, userID uuid.UUID) (*achievement.AchievementList, error) {
	query := `
	SELECT
		a.id,
		a.key,
		a.title,
		a.description,
		a.icon,
		a.xp_bonus,
		a.condition_type,
		a.condition_value,
		a.created_at,
		CASE WHEN ua.id IS NOT NULL THEN true ELSE false END AS earned
	FROM achievements a
	LEFT JOIN user_achievements ua ON a.id = ua.achievement_id AND ua.user_id = $1
	ORDER BY a.created_at, a.key
	`

	rows, err := s.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch achievements: %w", err)
	}
	defer rows.Close()

	list := &achievement.AchievementList{
		Earned:    []*achievement.Achievement{},
		Available: []*achievement.Achievement{},
	}

	for rows.Next() {
		a := &achievement.Achievement{}
		var earned bool
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
			&earned,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan achievement: %w", err)
		}

		if earned {
			list.Earned = append(list.Earned, a)
		} else {
			list.Available = append(list.Available, a)
		}
	}

	return list, nil
}
