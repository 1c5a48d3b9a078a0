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

// SessionAnswer is one learner answer inside a day review session.
// AnswerB carries the second party's line for dialogue questions and
// stays empty otherwise.
type SessionAnswer struct {
	QuestionID int64  `json:"question_id"`
	Answer     string `json:"answer"`
	AnswerB    string `json:"answer_b,omitempty"`
}

// SessionQuestionResult pairs a graded answer with its question.
type SessionQuestionResult struct {
	QuestionID int64                  `json:"question_id"`
	Grading    entities.GradingResult `json:"grading"`
}

// SessionResult is the outcome of a submitted day review session.
type SessionResult struct {
	Day       int                     `json:"day"`
	Results   []SessionQuestionResult `json:"results"`
	IsCorrect bool                    `json:"is_correct"`
	Outcome   entities.ReviewOutcome  `json:"outcome"`
}

// ReviewSessionService drives the live review flow for a due day:
// sample the questions, grade each answer, fold the per-question
// verdicts into the single correctness bit the scheduler consumes.
//
// Aggregation rule: the day counts as correct only when every graded
// answer in the session passes individually. One failed question sends
// the whole day back to the first ladder rung.
type ReviewSessionService struct {
	scheduler    *ReviewScheduler
	selector     *QuestionSelector
	grader       *Grader
	questionRepo QuestionRepository
	settingsRepo SettingsRepository
	progressRepo ProgressRepository
	badges       *BadgeService

	now func() time.Time
}

func NewReviewSessionService(
	scheduler *ReviewScheduler,
	selector *QuestionSelector,
	grader *Grader,
	questionRepo QuestionRepository,
	settingsRepo SettingsRepository,
	progressRepo ProgressRepository,
	badges *BadgeService,
) *ReviewSessionService {
	return &ReviewSessionService{
		scheduler:    scheduler,
		selector:     selector,
		grader:       grader,
		questionRepo: questionRepo,
		settingsRepo: settingsRepo,
		progressRepo: progressRepo,
		badges:       badges,
		now:          time.Now,
	}
}

// StartSession samples the question set for a day review. The sample
// is drawn fresh on every call, so restarting a session may present
// different questions for the same day.
func (s *ReviewSessionService) StartSession(ctx context.Context, userID uuid.UUID, day int) ([]entities.Question, error) {
	if userID == uuid.Nil || day < 1 {
		return nil, ErrInvalidInput
	}

	comp := DefaultReviewComposition
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err == nil {
		comp.SmallTalkSets = settings.SmallTalkSets
	} else if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, err
	}

	return s.selector.SelectReviewQuestions(ctx, day, comp)
}

// SubmitSession grades every answer of a finished session, records the
// per-question attempts, and feeds the aggregate verdict into the
// scheduler.
func (s *ReviewSessionService) SubmitSession(ctx context.Context, userID uuid.UUID, day int, answers []SessionAnswer) (*SessionResult, error) {
	if userID == uuid.Nil || day < 1 || len(answers) == 0 {
		return nil, ErrInvalidInput
	}

	difficulty := entities.DifficultyIntermediate
	settings, err := s.settingsRepo.GetByUserID(ctx, userID)
	if err == nil {
		difficulty = settings.Difficulty
	} else if !errors.Is(err, repository.ErrSettingsNotFound) {
		return nil, err
	}

	now := s.now()
	result := &SessionResult{Day: day, IsCorrect: true}

	for _, a := range answers {
		question, err := s.questionRepo.GetByID(ctx, a.QuestionID)
		if err != nil {
			return nil, fmt.Errorf("load question %d: %w", a.QuestionID, err)
		}

		var grading entities.GradingResult
		if question.Track == entities.TrackSmallTalk && a.AnswerB != "" {
			grading = s.grader.GradeDialogue(a.Answer, a.AnswerB, question.Keywords, difficulty)
		} else {
			grading = s.grader.Grade(a.Answer, question.Keywords, difficulty)
		}

		if !grading.IsCorrect {
			result.IsCorrect = false
		}
		result.Results = append(result.Results, SessionQuestionResult{
			QuestionID: question.ID,
			Grading:    grading,
		})

		attempt := &entities.QuestionProgress{
			UserID:      userID,
			QuestionID:  question.ID,
			Day:         question.Day,
			LastScore:   grading.Score,
			LastCorrect: grading.IsCorrect,
			LastAnswer:  a.Answer,
			AnsweredAt:  &now,
		}
		if err := s.progressRepo.RecordAttempt(ctx, attempt); err != nil {
			return nil, err
		}
	}

	outcome, err := s.scheduler.CompleteReview(ctx, userID, day, result.IsCorrect)
	if err != nil {
		return nil, err
	}
	result.Outcome = outcome

	if s.badges != nil {
		s.badges.AfterReview(ctx, userID, outcome)
	}

	return result, nil
}
