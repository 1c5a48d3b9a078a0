package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
)

var ErrInvalidInput = errors.New("invalid input")

// ReviewScheduler owns the spaced-repetition queue: one entry per
// (user, day), walking the interval ladder on correct reviews,
// resetting on failed ones, retiring entries that finish the ladder.
// Due entries are discovered lazily on read; there is no background
// scheduling loop.
type ReviewScheduler struct {
	queueRepo   ReviewQueueRepository
	masteryRepo MasteryRepository
	tx          Transactor

	now func() time.Time
}

func NewReviewScheduler(queueRepo ReviewQueueRepository, masteryRepo MasteryRepository, tx Transactor) *ReviewScheduler {
	return &ReviewScheduler{
		queueRepo:   queueRepo,
		masteryRepo: masteryRepo,
		tx:          tx,
		now:         time.Now,
	}
}

// ScheduleDayForReview enqueues a day the user just completed for the
// first time: interval 1, due tomorrow. Idempotent: if an entry for
// (user, day) already exists nothing changes and created is false, so
// a double-submitted completion never resets progress.
func (s *ReviewScheduler) ScheduleDayForReview(ctx context.Context, userID uuid.UUID, day int) (bool, error) {
	if userID == uuid.Nil || day < 1 {
		return false, ErrInvalidInput
	}

	entry := entities.NewReviewQueueEntry(userID, day, s.now())
	return s.queueRepo.Create(ctx, entry)
}

// NextDue returns the due entry with the earliest scheduled time, or
// nil when no review is waiting. An empty queue is a normal result,
// not an error.
func (s *ReviewScheduler) NextDue(ctx context.Context, userID uuid.UUID) (*entities.ReviewQueueEntry, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	entry, err := s.queueRepo.GetNextDue(ctx, userID, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrEntryNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return entry, nil
}

// CompleteReview applies the outcome of one finished review session
// for a day. The read-modify-write runs in a single transaction with
// the entry row locked, so two concurrent completions of the same
// (user, day) serialize instead of producing an inconsistent interval.
//
// A correct review advances the entry to the next ladder rung; on the
// last rung it deletes the entry and writes the mastery log instead. A
// failed review resets the entry to the first rung without counting as
// a completion. A missing entry is a caller error surfaced as
// repository.ErrEntryNotFound.
func (s *ReviewScheduler) CompleteReview(ctx context.Context, userID uuid.UUID, day int, isCorrect bool) (entities.ReviewOutcome, error) {
	if userID == uuid.Nil || day < 1 {
		return entities.ReviewOutcome{}, ErrInvalidInput
	}

	now := s.now()
	var outcome entities.ReviewOutcome

	err := s.tx.WithinTx(ctx, func(ctx context.Context) error {
		entry, err := s.queueRepo.GetForUpdate(ctx, userID, day)
		if err != nil {
			return err
		}

		if !isCorrect {
			entry.Reset(now)
			outcome = entities.ReviewOutcome{Action: entities.ReviewReset, NextInterval: entry.IntervalDays}
			return s.queueRepo.Update(ctx, entry)
		}

		if mastered := entry.Advance(now); mastered {
			if err := s.queueRepo.Delete(ctx, userID, day); err != nil {
				return err
			}
			outcome = entities.ReviewOutcome{Action: entities.ReviewCompleted}
			return s.masteryRepo.Add(ctx, userID, day, now)
		}

		outcome = entities.ReviewOutcome{Action: entities.ReviewAdvanced, NextInterval: entry.IntervalDays}
		return s.queueRepo.Update(ctx, entry)
	})
	if err != nil {
		return entities.ReviewOutcome{}, err
	}

	return outcome, nil
}

// Schedule returns all queue entries of a user ordered by due time.
func (s *ReviewScheduler) Schedule(ctx context.Context, userID uuid.UUID) ([]entities.ReviewQueueEntry, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	return s.queueRepo.GetByUserID(ctx, userID)
}

// Stats aggregates the user's queue: total successful reviews, entries
// due now, average interval and entries near the end of the ladder.
func (s *ReviewScheduler) Stats(ctx context.Context, userID uuid.UUID) (*entities.ReviewStats, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	return s.queueRepo.GetStats(ctx, userID, s.now())
}

// MasteredDays lists the days the user has carried through the full
// ladder, from the durable mastery log.
func (s *ReviewScheduler) MasteredDays(ctx context.Context, userID uuid.UUID) ([]int, error) {
	if userID == uuid.Nil {
		return nil, ErrInvalidInput
	}

	return s.masteryRepo.GetDays(ctx, userID)
}
