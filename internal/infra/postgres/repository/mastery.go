package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/infra/postgres"
)

// MasteryRepository is the durable log of mastered days. The queue
// entry itself is deleted on mastery, so this log is the only way to
// tell "mastered" apart from "never started".
type MasteryRepository struct {
	db postgres.DBTX
}

func NewMasteryRepository(db postgres.DBTX) *MasteryRepository {
	return &MasteryRepository{db: db}
}

// Add records a mastered day. Re-recording the same day is a no-op.
func (r *MasteryRepository) Add(ctx context.Context, userID uuid.UUID, day int, masteredAt time.Time) error {
	query := `
		INSERT INTO review_mastery (user_id, day, mastered_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, day) DO NOTHING
	`

	if _, err := postgres.Conn(ctx, r.db).Exec(ctx, query, userID, day, masteredAt); err != nil {
		return fmt.Errorf("add mastery record: %w", err)
	}

	return nil
}

// GetDays retrieves the mastered day numbers of a user in ascending order.
func (r *MasteryRepository) GetDays(ctx context.Context, userID uuid.UUID) ([]int, error) {
	query := `
		SELECT day FROM review_mastery
		WHERE user_id = $1
		ORDER BY day
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get mastered days: %w", err)
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan mastered day: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}
