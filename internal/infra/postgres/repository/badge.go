package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres"
)

// BadgeRepository stores awarded badges.
type BadgeRepository struct {
	db postgres.DBTX
}

func NewBadgeRepository(db postgres.DBTX) *BadgeRepository {
	return &BadgeRepository{db: db}
}

// Award grants a badge. Awarding an already-held badge is a no-op;
// the returned bool reports whether the badge was newly granted.
func (r *BadgeRepository) Award(ctx context.Context, userID uuid.UUID, code entities.BadgeCode, awardedAt time.Time) (bool, error) {
	query := `
		INSERT INTO user_badges (user_id, badge_code, awarded_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, badge_code) DO NOTHING
	`

	tag, err := r.db.Exec(ctx, query, userID, string(code), awardedAt)
	if err != nil {
		return false, fmt.Errorf("award badge: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetByUserID retrieves the badges a user holds, oldest first.
func (r *BadgeRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entities.UserBadge, error) {
	query := `
		SELECT user_id, badge_code, awarded_at
		FROM user_badges
		WHERE user_id = $1
		ORDER BY awarded_at
	`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get badges: %w", err)
	}
	defer rows.Close()

	var out []entities.UserBadge
	for rows.Next() {
		var b entities.UserBadge
		var code string
		if err := rows.Scan(&b.UserID, &code, &b.AwardedAt); err != nil {
			return nil, fmt.Errorf("scan badge: %w", err)
		}
		b.Code = entities.BadgeCode(code)
		out = append(out, b)
	}

	return out, rows.Err()
}
