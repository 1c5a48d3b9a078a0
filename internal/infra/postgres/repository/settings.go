package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres"
)

var ErrSettingsNotFound = errors.New("settings not found")

// SettingsRepository provides access to user settings data in the database.
type SettingsRepository struct {
	db postgres.DBTX
}

// NewSettingsRepository creates a new SettingsRepository with the provided database handle.
func NewSettingsRepository(db postgres.DBTX) *SettingsRepository {
	return &SettingsRepository{db: db}
}

// Create creates default settings for a user.
func (r *SettingsRepository) Create(ctx context.Context, userID uuid.UUID) error {
	defaults := entities.NewUserSettings(userID)

	query := `
		INSERT INTO user_settings (
			user_id, difficulty, daily_goal, small_talk_sets, created_at, updated_at
		) VALUES ($1, $2, $3, $4, NOW(), NOW())
		ON CONFLICT (user_id) DO NOTHING
	`

	_, err := r.db.Exec(ctx, query, userID, int(defaults.Difficulty), defaults.DailyGoal, defaults.SmallTalkSets)
	if err != nil {
		return fmt.Errorf("create settings: %w", err)
	}

	return nil
}

// GetByUserID retrieves settings for a user.
func (r *SettingsRepository) GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	query := `
		SELECT user_id, difficulty, daily_goal, small_talk_sets, created_at, updated_at
		FROM user_settings
		WHERE user_id = $1
	`

	var settings entities.UserSettings
	var difficulty int
	err := r.db.QueryRow(ctx, query, userID).Scan(
		&settings.UserID,
		&difficulty,
		&settings.DailyGoal,
		&settings.SmallTalkSets,
		&settings.CreatedAt,
		&settings.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("get settings: %w", err)
	}

	settings.Difficulty = entities.Difficulty(difficulty).Normalize()
	return &settings, nil
}

// Update rewrites the mutable settings fields.
func (r *SettingsRepository) Update(ctx context.Context, settings *entities.UserSettings) error {
	query := `
		UPDATE user_settings
		SET difficulty = $2, daily_goal = $3, small_talk_sets = $4, updated_at = NOW()
		WHERE user_id = $1
	`

	tag, err := r.db.Exec(
		ctx,
		query,
		settings.UserID,
		int(settings.Difficulty),
		settings.DailyGoal,
		settings.SmallTalkSets,
	)
	if err != nil {
		return fmt.Errorf("update settings: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrSettingsNotFound
	}

	return nil
}
