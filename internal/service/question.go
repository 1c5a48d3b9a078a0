package service

import (
	"context"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

// QuestionService exposes read access to the content store.
type QuestionService struct {
	questionRepo QuestionRepository
}

func NewQuestionService(questionRepo QuestionRepository) *QuestionService {
	return &QuestionService{questionRepo: questionRepo}
}

func (s *QuestionService) GetByID(ctx context.Context, id int64) (*entities.Question, error) {
	return s.questionRepo.GetByID(ctx, id)
}

func (s *QuestionService) GetByDay(ctx context.Context, day int) ([]entities.Question, error) {
	if day < 1 {
		return nil, ErrInvalidInput
	}
	return s.questionRepo.GetByDay(ctx, day)
}

func (s *QuestionService) GetByDayAndTrack(ctx context.Context, day int, track entities.Track) ([]entities.Question, error) {
	if day < 1 || !track.Valid() {
		return nil, ErrInvalidInput
	}
	return s.questionRepo.GetByDayAndTrack(ctx, day, track)
}

func (s *QuestionService) GetDialogueSets(ctx context.Context, day int) ([]entities.DialogueSet, error) {
	if day < 1 {
		return nil, ErrInvalidInput
	}
	return s.questionRepo.GetDialogueSets(ctx, day)
}

func (s *QuestionService) ListDays(ctx context.Context) ([]int, error) {
	return s.questionRepo.ListDays(ctx)
}
