package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
)

// AnswerOutcome is returned for one graded practice answer.
type AnswerOutcome struct {
	Grading      entities.GradingResult `json:"grading"`
	DayCompleted bool                   `json:"day_completed"` // every question of the day now attempted
	DayScheduled bool                   `json:"day_scheduled"` // the day was enqueued for review just now
}

// ProgressService handles the learn-first-time path: grading practice
// answers, tracking per-question progress, detecting day completion
// and handing completed days to the review scheduler.
type ProgressService struct {
	grader       *Grader
	questionRepo QuestionRepository
	progressRepo ProgressRepository
	settingsRepo SettingsRepository
	activityRepo ActivityRepository
	scheduler    *ReviewScheduler
	goals        *GoalService
	badges       *BadgeService

	now func() time.Time
}

func NewProgressService(
	grader *Grader,
	questionRepo QuestionRepository,
	progressRepo ProgressRepository,
	settingsRepo SettingsRepository,
	activityRepo ActivityRepository,
	scheduler *ReviewScheduler,
	goals *GoalService,
	badges *BadgeService,
) *ProgressService {
	return &ProgressService{
		grader:       grader,
		questionRepo: questionRepo,
		progressRepo: progressRepo,
		settingsRepo: settingsRepo,
		activityRepo: activityRepo,
		scheduler:    scheduler,
		goals:        goals,
		badges:       badges,
		now:          time.Now,
	}
}

// SubmitAnswer grades one practice answer and records its outcome.
// When the answer completes the day (every question attempted at least
// once), the day is scheduled for spaced review; scheduling is
// idempotent so re-answering a finished day never resets review
// progress.
func (s *ProgressService) SubmitAnswer(ctx context.Context, userID uuid.UUID, questionID int64, answer, answerB string) (*AnswerOutcome, error) {
	if userID == uuid.Nil || questionID < 1 {
		return nil, ErrInvalidInput
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	difficulty := question.Difficulty
	if settings, err := s.settingsRepo.GetByUserID(ctx, userID); err == nil {
		difficulty = settings.Difficulty
	} else if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, err
	}

	var grading entities.GradingResult
	if question.Track == entities.TrackSmallTalk && answerB != "" {
		grading = s.grader.GradeDialogue(answer, answerB, question.Keywords, difficulty)
	} else {
		grading = s.grader.Grade(answer, question.Keywords, difficulty)
	}

	now := s.now()
	attempt := &entities.QuestionProgress{
		UserID:      userID,
		QuestionID:  question.ID,
		Day:         question.Day,
		LastScore:   grading.Score,
		LastCorrect: grading.IsCorrect,
		LastAnswer:  answer,
		AnsweredAt:  &now,
	}
	if err := s.progressRepo.RecordAttempt(ctx, attempt); err != nil {
		return nil, err
	}

	if s.goals != nil {
		if err := s.goals.RecordAnswer(ctx, userID, now); err != nil {
			return nil, err
		}
	}
	if s.badges != nil {
		s.badges.AfterAnswer(ctx, userID)
	}

	outcome := &AnswerOutcome{Grading: grading}

	total, err := s.questionRepo.CountByDay(ctx, question.Day)
	if err != nil {
		return nil, err
	}
	answered, err := s.progressRepo.CountAnsweredInDay(ctx, userID, question.Day)
	if err != nil {
		return nil, err
	}
	if total > 0 && answered >= total {
		outcome.DayCompleted = true
		created, err := s.scheduler.ScheduleDayForReview(ctx, userID, question.Day)
		if err != nil {
			return nil, fmt.Errorf("schedule day %d for review: %w", question.Day, err)
		}
		outcome.DayScheduled = created
		if created && s.badges != nil {
			s.badges.AfterDayCompleted(ctx, userID)
		}
	}

	return outcome, nil
}

// GradePractice grades an answer without recording anything, for
// try-before-submit previews. The user's difficulty setting applies,
// exactly as in SubmitAnswer.
func (s *ProgressService) GradePractice(ctx context.Context, userID uuid.UUID, questionID int64, answer, answerB string) (*entities.GradingResult, error) {
	if userID == uuid.Nil || questionID < 1 {
		return nil, ErrInvalidInput
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return nil, err
	}

	difficulty := question.Difficulty
	if settings, err := s.settingsRepo.GetByUserID(ctx, userID); err == nil {
		difficulty = settings.Difficulty
	} else if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, err
	}

	var grading entities.GradingResult
	if question.Track == entities.TrackSmallTalk && answerB != "" {
		grading = s.grader.GradeDialogue(answer, answerB, question.Keywords, difficulty)
	} else {
		grading = s.grader.Grade(answer, question.Keywords, difficulty)
	}

	return &grading, nil
}

// DayProgress returns the user's standing on one day of content.
func (s *ProgressService) DayProgress(ctx context.Context, userID uuid.UUID, day int) (*entities.DayProgress, error) {
	if userID == uuid.Nil || day < 1 {
		return nil, ErrInvalidInput
	}

	total, err := s.questionRepo.CountByDay(ctx, day)
	if err != nil {
		return nil, err
	}

	return s.progressRepo.GetDayProgress(ctx, userID, day, total)
}

// WrongAnswers lists the questions whose latest attempt failed.
func (s *ProgressService) WrongAnswers(ctx context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error) {
	return s.progressRepo.ListWrongAnswers(ctx, userID)
}

// Favorites lists the questions the user has flagged.
func (s *ProgressService) Favorites(ctx context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error) {
	return s.progressRepo.ListFavorites(ctx, userID)
}

// SetFavorite flags or unflags a question.
func (s *ProgressService) SetFavorite(ctx context.Context, userID uuid.UUID, questionID int64, favorite bool) error {
	if userID == uuid.Nil || questionID < 1 {
		return ErrInvalidInput
	}

	question, err := s.questionRepo.GetByID(ctx, questionID)
	if err != nil {
		return err
	}

	return s.progressRepo.SetFavorite(ctx, userID, questionID, question.Day, favorite)
}
