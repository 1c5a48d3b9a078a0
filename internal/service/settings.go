package service

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
)

type SettingsService struct {
	repository SettingsRepository
}

func NewSettingsService(repository SettingsRepository) *SettingsService {
	return &SettingsService{repository: repository}
}

// GetOrCreate returns the user's settings, creating the defaults on
// first access.
func (s *SettingsService) GetOrCreate(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error) {
	settings, err := s.repository.GetByUserID(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrSettingsNotFound) {
			// Create default settings.
			if err := s.repository.Create(ctx, userID); err != nil {
				return nil, err
			}
			// Retrieve newly created settings.
			return s.repository.GetByUserID(ctx, userID)
		}
		return nil, err
	}

	return settings, nil
}

// Update validates and stores new settings values.
func (s *SettingsService) Update(ctx context.Context, settings *entities.UserSettings) error {
	if settings.UserID == uuid.Nil {
		return ErrInvalidInput
	}
	if settings.DailyGoal < 1 || settings.DailyGoal > 200 {
		return ErrInvalidInput
	}
	if settings.SmallTalkSets < 1 || settings.SmallTalkSets > 5 {
		return ErrInvalidInput
	}
	settings.Difficulty = settings.Difficulty.Normalize()

	return s.repository.Update(ctx, settings)
}
