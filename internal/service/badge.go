package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

// BadgeService evaluates award rules after learning events. Badge
// awarding is cosmetic and must never fail a learner-facing request,
// so rule evaluation logs failures instead of returning them.
type BadgeService struct {
	badgeRepo    BadgeRepository
	progressRepo ProgressRepository
	logger       *zap.Logger

	now func() time.Time
}

func NewBadgeService(
	badgeRepo BadgeRepository,
	progressRepo ProgressRepository,
	logger *zap.Logger,
) *BadgeService {
	return &BadgeService{
		badgeRepo:    badgeRepo,
		progressRepo: progressRepo,
		logger:       logger,
		now:          time.Now,
	}
}

// Catalog returns the fixed badge catalog.
func (s *BadgeService) Catalog() []entities.Badge {
	return entities.BadgeCatalog
}

// UserBadges returns the badges a user holds.
func (s *BadgeService) UserBadges(ctx context.Context, userID uuid.UUID) ([]entities.UserBadge, error) {
	return s.badgeRepo.GetByUserID(ctx, userID)
}

// AfterDayCompleted runs award rules fired by finishing a day of
// content for the first time.
func (s *BadgeService) AfterDayCompleted(ctx context.Context, userID uuid.UUID) {
	s.award(ctx, userID, entities.BadgeFirstDay)
}

// AfterReview runs award rules fired by a completed review session.
func (s *BadgeService) AfterReview(ctx context.Context, userID uuid.UUID, outcome entities.ReviewOutcome) {
	if outcome.Action == entities.ReviewCompleted {
		s.award(ctx, userID, entities.BadgeFirstMastery)
	}

	total, err := s.progressRepo.TotalAttempts(ctx, userID)
	if err != nil {
		s.logger.Warn("badge rule: total attempts", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	if total >= 100 {
		s.award(ctx, userID, entities.BadgeHundredAnswers)
	}
}

// AfterAnswer runs award rules fired by a single practice answer.
func (s *BadgeService) AfterAnswer(ctx context.Context, userID uuid.UUID) {
	total, err := s.progressRepo.TotalAttempts(ctx, userID)
	if err != nil {
		s.logger.Warn("badge rule: total attempts", zap.String("user_id", userID.String()), zap.Error(err))
		return
	}
	if total >= 100 {
		s.award(ctx, userID, entities.BadgeHundredAnswers)
	}
}

// AfterGoalMet runs award rules fired by meeting the daily goal.
func (s *BadgeService) AfterGoalMet(ctx context.Context, userID uuid.UUID, currentStreak int) {
	if currentStreak >= 7 {
		s.award(ctx, userID, entities.BadgeWeekStreak)
	}
}

func (s *BadgeService) award(ctx context.Context, userID uuid.UUID, code entities.BadgeCode) {
	granted, err := s.badgeRepo.Award(ctx, userID, code, s.now())
	if err != nil {
		s.logger.Warn("award badge",
			zap.String("user_id", userID.String()),
			zap.String("badge", string(code)),
			zap.Error(err),
		)
		return
	}
	if granted {
		s.logger.Info("badge awarded",
			zap.String("user_id", userID.String()),
			zap.String("badge", string(code)),
		)
	}
}
