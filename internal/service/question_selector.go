package service

import (
	"context"
	"math/rand"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

// ReviewComposition fixes how many items of each track a review
// session samples. The small-talk count is the one knob that differs
// between call sites; the other two are constant.
type ReviewComposition struct {
	ModelExamples int
	SmallTalkSets int // dialogue sets, not single questions
	CasesInPoint  int
}

// DefaultReviewComposition is the 3 / 2 / 1 sample used by the general
// review endpoint.
var DefaultReviewComposition = ReviewComposition{
	ModelExamples: 3,
	SmallTalkSets: 2,
	CasesInPoint:  1,
}

// QuestionSelector draws the concrete question sample for a day's
// review session. Selection is uniform without replacement within each
// track and deliberately not memoized: repeat exposures of the same
// day see different samples, which keeps review varied. Sampling uses
// the top-level math/rand functions, so a single selector is safe to
// share across request goroutines.
type QuestionSelector struct {
	questionRepo QuestionRepository
}

// NewQuestionSelector creates a new QuestionSelector.
func NewQuestionSelector(questionRepo QuestionRepository) *QuestionSelector {
	return &QuestionSelector{questionRepo: questionRepo}
}

// SelectReviewQuestions samples questions for one day: model examples
// first, then small-talk dialogue sets (kept whole, in dialogue
// order), then cases in point. A track with fewer items than its quota
// contributes everything it has; there is no padding and no error.
func (s *QuestionSelector) SelectReviewQuestions(ctx context.Context, day int, comp ReviewComposition) ([]entities.Question, error) {
	if day < 1 {
		return nil, ErrInvalidInput
	}

	model, err := s.questionRepo.GetByDayAndTrack(ctx, day, entities.TrackModelExample)
	if err != nil {
		return nil, err
	}

	sets, err := s.questionRepo.GetDialogueSets(ctx, day)
	if err != nil {
		return nil, err
	}

	cases, err := s.questionRepo.GetByDayAndTrack(ctx, day, entities.TrackCasesInPoint)
	if err != nil {
		return nil, err
	}

	var out []entities.Question
	out = append(out, sampleQuestions(model, comp.ModelExamples)...)
	for _, set := range sampleSets(sets, comp.SmallTalkSets) {
		out = append(out, set.Questions...)
	}
	out = append(out, sampleQuestions(cases, comp.CasesInPoint)...)

	return out, nil
}

// sampleQuestions picks n questions uniformly without replacement, or
// all of them when fewer than n exist.
func sampleQuestions(qs []entities.Question, n int) []entities.Question {
	if n <= 0 || len(qs) == 0 {
		return nil
	}
	if len(qs) <= n {
		return qs
	}

	out := append([]entities.Question(nil), qs...)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:n]
}

// sampleSets picks n dialogue sets uniformly without replacement,
// keeping each set intact.
func sampleSets(sets []entities.DialogueSet, n int) []entities.DialogueSet {
	if n <= 0 || len(sets) == 0 {
		return nil
	}
	if len(sets) <= n {
		return sets
	}

	out := append([]entities.DialogueSet(nil), sets...)
	rand.Shuffle(len(out), func(i, j int) { out[i], out[j] = out[j], out[i] })
	return out[:n]
}
