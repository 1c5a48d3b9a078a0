package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
)

// GoalService keeps the daily activity log and computes goal and
// streak projections from it. Days are calendar days in UTC.
type GoalService struct {
	activityRepo ActivityRepository
	settingsRepo SettingsRepository
	badges       *BadgeService

	now func() time.Time
}

func NewGoalService(activityRepo ActivityRepository, settingsRepo SettingsRepository, badges *BadgeService) *GoalService {
	return &GoalService{
		activityRepo: activityRepo,
		settingsRepo: settingsRepo,
		badges:       badges,
		now:          time.Now,
	}
}

// RecordAnswer bumps today's activity counter by one and re-evaluates
// the goal flag.
func (s *GoalService) RecordAnswer(ctx context.Context, userID uuid.UUID, at time.Time) error {
	goal := entities.NewUserSettings(userID).DailyGoal
	if settings, err := s.settingsRepo.GetByUserID(ctx, userID); err == nil {
		goal = settings.DailyGoal
	} else if !errors.Is(err, repository.ErrSettingsNotFound) {
		return err
	}

	date := midnightUTC(at)
	if err := s.activityRepo.IncrementAnswered(ctx, userID, date, goal); err != nil {
		return err
	}

	activity, err := s.activityRepo.Get(ctx, userID, date)
	if err != nil {
		return err
	}
	if activity.GoalMet && s.badges != nil {
		streak, err := s.currentStreak(ctx, userID, date)
		if err != nil {
			return err
		}
		s.badges.AfterGoalMet(ctx, userID, streak)
	}

	return nil
}

// Status returns today's goal standing and the user's streaks.
func (s *GoalService) Status(ctx context.Context, userID uuid.UUID) (*entities.GoalStatus, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	goal := entities.NewUserSettings(userID).DailyGoal
	if settings, err := s.settingsRepo.GetByUserID(ctx, userID); err == nil {
		goal = settings.DailyGoal
	} else if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, err
	}

	today := midnightUTC(s.now())
	activity, err := s.activityRepo.Get(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	current, err := s.currentStreak(ctx, userID, today)
	if err != nil {
		return nil, err
	}

	longest, err := s.activityRepo.LongestGoalStreak(ctx, userID)
	if err != nil {
		return nil, err
	}
	if current > longest {
		longest = current
	}

	return &entities.GoalStatus{
		Date:          today,
		Goal:          goal,
		Answered:      activity.Answered,
		GoalMet:       activity.GoalMet,
		CurrentStreak: current,
		LongestStreak: longest,
	}, nil
}

// currentStreak counts consecutive goal-met days ending today, or
// ending yesterday when today's goal is still open.
func (s *GoalService) currentStreak(ctx context.Context, userID uuid.UUID, today time.Time) (int, error) {
	recent, err := s.activityRepo.GetRecent(ctx, userID, 366)
	if err != nil {
		return 0, err
	}

	met := make(map[time.Time]bool, len(recent))
	for _, a := range recent {
		met[midnightUTC(a.Date)] = a.GoalMet
	}

	streak := 0
	day := today
	if !met[day] {
		day = day.AddDate(0, 0, -1) // today still open, count from yesterday
	}
	for met[day] {
		streak++
		day = day.AddDate(0, 0, -1)
	}

	return streak, nil
}

func midnightUTC(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
