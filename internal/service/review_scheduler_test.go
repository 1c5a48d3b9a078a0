package service

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
)

func newTestScheduler(at time.Time) (*ReviewScheduler, *fakeQueueRepo, *fakeMasteryRepo) {
	queueRepo := newFakeQueueRepo()
	masteryRepo := newFakeMasteryRepo()
	s := NewReviewScheduler(queueRepo, masteryRepo, fakeTransactor{})
	s.now = func() time.Time { return at }
	return s, queueRepo, masteryRepo
}

func TestReviewScheduler_ScheduleDayForReview(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, queueRepo, _ := newTestScheduler(now)
	ctx := context.Background()
	userID := uuid.New()

	created, err := s.ScheduleDayForReview(ctx, userID, 5)
	require.NoError(t, err)
	assert.True(t, created)

	entry, err := queueRepo.Get(ctx, userID, 5)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, 1), entry.ScheduledFor)
	assert.Zero(t, entry.ReviewCount)
}

func TestReviewScheduler_ScheduleDayForReview_Idempotent(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, queueRepo, _ := newTestScheduler(now)
	ctx := context.Background()
	userID := uuid.New()

	_, err := s.ScheduleDayForReview(ctx, userID, 5)
	require.NoError(t, err)

	// Advance the entry so a second schedule attempt would be visible
	// as a reset if it were not idempotent.
	_, err = s.CompleteReview(ctx, userID, 5, true)
	require.NoError(t, err)

	created, err := s.ScheduleDayForReview(ctx, userID, 5)
	require.NoError(t, err)
	assert.False(t, created)

	entry, err := queueRepo.Get(ctx, userID, 5)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.IntervalDays, "existing progress must survive a duplicate schedule")
}

func TestReviewScheduler_ScheduleDayForReview_InvalidInput(t *testing.T) {
	s, _, _ := newTestScheduler(time.Now())
	ctx := context.Background()

	_, err := s.ScheduleDayForReview(ctx, uuid.Nil, 1)
	assert.ErrorIs(t, err, ErrInvalidInput)

	_, err = s.ScheduleDayForReview(ctx, uuid.New(), 0)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestReviewScheduler_CompleteReview_Advance(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, queueRepo, _ := newTestScheduler(now)
	ctx := context.Background()
	userID := uuid.New()

	_, err := s.ScheduleDayForReview(ctx, userID, 1)
	require.NoError(t, err)

	outcome, err := s.CompleteReview(ctx, userID, 1, true)
	require.NoError(t, err)
	assert.Equal(t, entities.ReviewAdvanced, outcome.Action)
	assert.Equal(t, 3, outcome.NextInterval)

	entry, err := queueRepo.Get(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 3, entry.IntervalDays)
	assert.Equal(t, now.AddDate(0, 0, 3), entry.ScheduledFor)
	assert.Equal(t, 1, entry.ReviewCount)
	require.NotNil(t, entry.LastReviewed)
}

func TestReviewScheduler_CompleteReview_Reset(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, queueRepo, _ := newTestScheduler(now)
	ctx := context.Background()
	userID := uuid.New()

	_, err := s.ScheduleDayForReview(ctx, userID, 1)
	require.NoError(t, err)

	// Walk two rungs up, then fail.
	_, err = s.CompleteReview(ctx, userID, 1, true)
	require.NoError(t, err)
	_, err = s.CompleteReview(ctx, userID, 1, true)
	require.NoError(t, err)

	outcome, err := s.CompleteReview(ctx, userID, 1, false)
	require.NoError(t, err)
	assert.Equal(t, entities.ReviewReset, outcome.Action)
	assert.Equal(t, 1, outcome.NextInterval)

	entry, err := queueRepo.Get(ctx, userID, 1)
	require.NoError(t, err)
	assert.Equal(t, 1, entry.IntervalDays)
	assert.Equal(t, 2, entry.ReviewCount, "a reset is not a completed review")
}

func TestReviewScheduler_CompleteReview_FullLadderWalk(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s, queueRepo, masteryRepo := newTestScheduler(now)
	ctx := context.Background()
	userID := uuid.New()

	_, err := s.ScheduleDayForReview(ctx, userID, 7)
	require.NoError(t, err)

	// Every correct review after the first rung advances: 1 -> 3 -> 7
	// -> 14 -> 30 -> 60 -> 90 -> 120.
	for _, want := range entities.ReviewLadder[1:] {
		outcome, err := s.CompleteReview(ctx, userID, 7, true)
		require.NoError(t, err)
		require.Equal(t, entities.ReviewAdvanced, outcome.Action)
		require.Equal(t, want, outcome.NextInterval)
	}

	// The correct review on the last rung retires the entry.
	outcome, err := s.CompleteReview(ctx, userID, 7, true)
	require.NoError(t, err)
	assert.Equal(t, entities.ReviewCompleted, outcome.Action)
	assert.Zero(t, outcome.NextInterval)

	_, err = queueRepo.Get(ctx, userID, 7)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)

	days, err := s.MasteredDays(ctx, userID)
	require.NoError(t, err)
	assert.Equal(t, []int{7}, days)
	assert.Equal(t, now, masteryRepo.mastered[masteryKey{userID, 7}])
}

func TestReviewScheduler_CompleteReview_MissingEntry(t *testing.T) {
	s, _, _ := newTestScheduler(time.Now())

	_, err := s.CompleteReview(context.Background(), uuid.New(), 3, true)
	assert.ErrorIs(t, err, repository.ErrEntryNotFound)
}

func TestReviewScheduler_NextDue(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s, queueRepo, _ := newTestScheduler(now)
	ctx := context.Background()
	userID := uuid.New()

	// Nothing scheduled: no review due, no error.
	entry, err := s.NextDue(ctx, userID)
	require.NoError(t, err)
	assert.Nil(t, entry)

	// Two entries due, one in the future.
	for day, offset := range map[int]int{1: -3, 2: -1, 3: 5} {
		e := entities.NewReviewQueueEntry(userID, day, now)
		e.ScheduledFor = now.AddDate(0, 0, offset)
		_, err := queueRepo.Create(ctx, e)
		require.NoError(t, err)
	}

	entry, err = s.NextDue(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.Equal(t, 1, entry.Day, "the earliest due entry wins")
}

func TestReviewScheduler_Schedule_OrderedByDueTime(t *testing.T) {
	now := time.Date(2026, 3, 10, 9, 0, 0, 0, time.UTC)
	s, queueRepo, _ := newTestScheduler(now)
	ctx := context.Background()
	userID := uuid.New()

	for day, offset := range map[int]int{1: 14, 2: 1, 3: 7} {
		e := entities.NewReviewQueueEntry(userID, day, now)
		e.ScheduledFor = now.AddDate(0, 0, offset)
		_, err := queueRepo.Create(ctx, e)
		require.NoError(t, err)
	}

	entries, err := s.Schedule(ctx, userID)
	require.NoError(t, err)
	require.Len(t, entries, 3)
	assert.Equal(t, []int{2, 3, 1}, []int{entries[0].Day, entries[1].Day, entries[2].Day})
}

func TestNextLadderInterval(t *testing.T) {
	tests := []struct {
		current int
		want    int
		ok      bool
	}{
		{1, 3, true},
		{3, 7, true},
		{7, 14, true},
		{14, 30, true},
		{30, 60, true},
		{60, 90, true},
		{90, 120, true},
		{120, 0, false},
		{500, 0, false},
	}

	for _, tt := range tests {
		got, ok := entities.NextLadderInterval(tt.current)
		assert.Equal(t, tt.want, got, "current %d", tt.current)
		assert.Equal(t, tt.ok, ok, "current %d", tt.current)
	}
}
