package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

type sessionFixture struct {
	service      *ReviewSessionService
	scheduler    *ReviewScheduler
	queueRepo    *fakeQueueRepo
	questionRepo *fakeQuestionRepo
	progressRepo *fakeProgressRepo
	settingsRepo *fakeSettingsRepo
	masteryRepo  *fakeMasteryRepo
	userID       uuid.UUID
}

func newSessionFixture(t *testing.T, at time.Time) *sessionFixture {
	t.Helper()

	f := &sessionFixture{
		queueRepo:    newFakeQueueRepo(),
		questionRepo: newFakeQuestionRepo(),
		progressRepo: newFakeProgressRepo(),
		settingsRepo: newFakeSettingsRepo(),
		masteryRepo:  newFakeMasteryRepo(),
		userID:       uuid.New(),
	}

	f.scheduler = NewReviewScheduler(f.queueRepo, f.masteryRepo, fakeTransactor{})
	f.scheduler.now = func() time.Time { return at }

	badges := NewBadgeService(newFakeBadgeRepo(), f.progressRepo, zap.NewNop())

	f.service = NewReviewSessionService(
		f.scheduler,
		NewQuestionSelector(f.questionRepo),
		NewGrader(),
		f.questionRepo,
		f.settingsRepo,
		f.progressRepo,
		badges,
	)
	f.service.now = func() time.Time { return at }

	return f
}

func TestReviewSessionService_SubmitSession_AllCorrectAdvances(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)
	ctx := context.Background()

	f.questionRepo.add(entities.Question{ID: 1, Day: 3, Track: entities.TrackModelExample, Keywords: []string{"hello"}})
	f.questionRepo.add(entities.Question{ID: 2, Day: 3, Track: entities.TrackCasesInPoint, Keywords: []string{"goodbye"}})

	_, err := f.scheduler.ScheduleDayForReview(ctx, f.userID, 3)
	require.NoError(t, err)

	result, err := f.service.SubmitSession(ctx, f.userID, 3, []SessionAnswer{
		{QuestionID: 1, Answer: "hello there"},
		{QuestionID: 2, Answer: "goodbye then"},
	})
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Equal(t, entities.ReviewAdvanced, result.Outcome.Action)
	assert.Equal(t, 3, result.Outcome.NextInterval)
	require.Len(t, result.Results, 2)
}

func TestReviewSessionService_SubmitSession_OneFailureResetsDay(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)
	ctx := context.Background()

	f.questionRepo.add(entities.Question{ID: 1, Day: 3, Track: entities.TrackModelExample, Keywords: []string{"hello"}})
	f.questionRepo.add(entities.Question{ID: 2, Day: 3, Track: entities.TrackCasesInPoint, Keywords: []string{"goodbye"}})

	_, err := f.scheduler.ScheduleDayForReview(ctx, f.userID, 3)
	require.NoError(t, err)
	_, err = f.scheduler.CompleteReview(ctx, f.userID, 3, true)
	require.NoError(t, err)

	result, err := f.service.SubmitSession(ctx, f.userID, 3, []SessionAnswer{
		{QuestionID: 1, Answer: "hello there"},
		{QuestionID: 2, Answer: "something unrelated"},
	})
	require.NoError(t, err)

	assert.False(t, result.IsCorrect, "one failed answer fails the whole day")
	assert.Equal(t, entities.ReviewReset, result.Outcome.Action)
	assert.Equal(t, 1, result.Outcome.NextInterval)
}

func TestReviewSessionService_SubmitSession_DialogueUsesBothAnswers(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)
	ctx := context.Background()

	f.questionRepo.add(entities.Question{
		ID: 1, Day: 3, Track: entities.TrackSmallTalk, SetID: 1,
		Keywords: []string{"weekend", "hiking"},
	})

	_, err := f.scheduler.ScheduleDayForReview(ctx, f.userID, 3)
	require.NoError(t, err)

	result, err := f.service.SubmitSession(ctx, f.userID, 3, []SessionAnswer{
		{QuestionID: 1, Answer: "how was your weekend", AnswerB: "great, I went hiking"},
	})
	require.NoError(t, err)

	assert.True(t, result.IsCorrect)
	assert.Equal(t, 100, result.Results[0].Grading.Score)
}

func TestReviewSessionService_SubmitSession_RecordsAttempts(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)
	ctx := context.Background()

	f.questionRepo.add(entities.Question{ID: 1, Day: 3, Track: entities.TrackModelExample, Keywords: []string{"hello"}})

	_, err := f.scheduler.ScheduleDayForReview(ctx, f.userID, 3)
	require.NoError(t, err)

	_, err = f.service.SubmitSession(ctx, f.userID, 3, []SessionAnswer{
		{QuestionID: 1, Answer: "hello there"},
	})
	require.NoError(t, err)

	progress, err := f.progressRepo.Get(ctx, f.userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, progress.Attempts)
	assert.True(t, progress.LastCorrect)
	assert.Equal(t, "hello there", progress.LastAnswer)
}

func TestReviewSessionService_StartSession_UsesSettingsQuota(t *testing.T) {
	now := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	f := newSessionFixture(t, now)
	ctx := context.Background()

	seedSelectorDay(f.questionRepo, 1)

	require.NoError(t, f.settingsRepo.Create(ctx, f.userID))
	settings, err := f.settingsRepo.GetByUserID(ctx, f.userID)
	require.NoError(t, err)
	settings.SmallTalkSets = 1
	require.NoError(t, f.settingsRepo.Update(ctx, settings))

	questions, err := f.service.StartSession(ctx, f.userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 2, countByTrack(questions)[entities.TrackSmallTalk], "one dialogue set of two questions")
}

func TestReviewSessionService_SubmitSession_InvalidInput(t *testing.T) {
	f := newSessionFixture(t, time.Now())
	ctx := context.Background()

	_, err := f.service.SubmitSession(ctx, uuid.Nil, 1, []SessionAnswer{{QuestionID: 1}})
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = f.service.SubmitSession(ctx, f.userID, 1, nil)
	assert.ErrorIs(t, err, ErrInvalidInput)
}
