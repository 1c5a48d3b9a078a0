package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres"
)

// ActivityRepository is the per-day activity log behind daily goals
// and streaks. One row per (user, calendar day).
type ActivityRepository struct {
	db postgres.DBTX
}

func NewActivityRepository(db postgres.DBTX) *ActivityRepository {
	return &ActivityRepository{db: db}
}

// IncrementAnswered bumps today's answered counter and refreshes the
// goal_met flag against the given goal, atomically.
func (r *ActivityRepository) IncrementAnswered(ctx context.Context, userID uuid.UUID, date time.Time, goal int) error {
	query := `
		INSERT INTO daily_activity (user_id, activity_date, answered, goal_met)
		VALUES ($1, $2, 1, 1 >= $3)
		ON CONFLICT (user_id, activity_date) DO UPDATE SET
			answered = daily_activity.answered + 1,
			goal_met = daily_activity.answered + 1 >= $3
	`

	if _, err := postgres.Conn(ctx, r.db).Exec(ctx, query, userID, date, goal); err != nil {
		return fmt.Errorf("increment answered: %w", err)
	}

	return nil
}

// Get retrieves one activity row; a missing row reads as zero activity.
func (r *ActivityRepository) Get(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.DailyActivity, error) {
	query := `
		SELECT user_id, activity_date, answered, goal_met
		FROM daily_activity
		WHERE user_id = $1 AND activity_date = $2
	`

	var a entities.DailyActivity
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, date).Scan(&a.UserID, &a.Date, &a.Answered, &a.GoalMet)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entities.DailyActivity{UserID: userID, Date: date}, nil
		}
		return nil, fmt.Errorf("get activity: %w", err)
	}

	return &a, nil
}

// GetRecent retrieves the most recent activity rows, newest first.
func (r *ActivityRepository) GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entities.DailyActivity, error) {
	query := `
		SELECT user_id, activity_date, answered, goal_met
		FROM daily_activity
		WHERE user_id = $1
		ORDER BY activity_date DESC
		LIMIT $2
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("get recent activity: %w", err)
	}
	defer rows.Close()

	var out []entities.DailyActivity
	for rows.Next() {
		var a entities.DailyActivity
		if err := rows.Scan(&a.UserID, &a.Date, &a.Answered, &a.GoalMet); err != nil {
			return nil, fmt.Errorf("scan activity: %w", err)
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

// LongestGoalStreak computes the longest run of consecutive goal-met
// days over the whole activity log.
func (r *ActivityRepository) LongestGoalStreak(ctx context.Context, userID uuid.UUID) (int, error) {
	// Group consecutive goal-met days by the difference between the
	// date and its row number, then take the largest group.
	query := `
		SELECT COALESCE(MAX(streak), 0) FROM (
			SELECT COUNT(*) AS streak
			FROM (
				SELECT activity_date,
				       activity_date - (ROW_NUMBER() OVER (ORDER BY activity_date))::int AS grp
				FROM daily_activity
				WHERE user_id = $1 AND goal_met
			) runs
			GROUP BY grp
		) s
	`

	var n int
	if err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("longest goal streak: %w", err)
	}

	return n, nil
}
