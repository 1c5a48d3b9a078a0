package entities

import (
	"time"

	"github.com/google/uuid"
)

// ReviewLadder is the fixed ordered sequence of review intervals in
// days. A correct review advances an entry to the next rung; a correct
// review on the last rung retires the entry for good.
var ReviewLadder = []int{1, 3, 7, 14, 30, 60, 90, 120}

// NextLadderInterval returns the first ladder value strictly greater
// than current, or 0 and false when current is at or beyond the last
// rung.
func NextLadderInterval(current int) (int, bool) {
	for _, v := range ReviewLadder {
		if v > current {
			return v, true
		}
	}
	return 0, false
}

// ReviewAction describes what CompleteReview did to a queue entry.
type ReviewAction string

const (
	ReviewAdvanced  ReviewAction = "advanced"
	ReviewReset     ReviewAction = "reset"
	ReviewCompleted ReviewAction = "completed"
)

// ReviewOutcome is returned by CompleteReview.
type ReviewOutcome struct {
	Action       ReviewAction `json:"action"`
	NextInterval int          `json:"next_interval,omitempty"` // zero when completed
}

// ReviewQueueEntry is one spaced-repetition queue row per (user, day).
// Absence of a row means the day was either never completed or already
// mastered; the mastery log keeps that distinction durable.
type ReviewQueueEntry struct {
	UserID       uuid.UUID
	Day          int
	IntervalDays int        // current rung of the ladder
	ScheduledFor time.Time  // when the entry becomes due
	ReviewCount  int        // successful advances so far
	AddedAt      time.Time
	LastReviewed *time.Time // nullable
}

// NewReviewQueueEntry creates an entry at the first ladder rung, due
// one day from now.
func NewReviewQueueEntry(userID uuid.UUID, day int, now time.Time) *ReviewQueueEntry {
	return &ReviewQueueEntry{
		UserID:       userID,
		Day:          day,
		IntervalDays: ReviewLadder[0],
		ScheduledFor: now.AddDate(0, 0, ReviewLadder[0]),
		AddedAt:      now,
	}
}

// Due reports whether the entry is due at the given time.
func (e *ReviewQueueEntry) Due(now time.Time) bool {
	return !e.ScheduledFor.After(now)
}

// Advance moves the entry to the next ladder rung after a correct
// review. It returns true when the entry was already on the last rung,
// in which case the caller retires it instead of rescheduling.
func (e *ReviewQueueEntry) Advance(now time.Time) (mastered bool) {
	next, ok := NextLadderInterval(e.IntervalDays)
	if !ok {
		return true
	}
	e.IntervalDays = next
	e.ScheduledFor = now.AddDate(0, 0, next)
	e.ReviewCount++
	e.LastReviewed = &now
	return false
}

// Reset sends the entry back to the first rung after a failed review.
// ReviewCount is not incremented: a reset is not a completion.
func (e *ReviewQueueEntry) Reset(now time.Time) {
	e.IntervalDays = ReviewLadder[0]
	e.ScheduledFor = now.AddDate(0, 0, ReviewLadder[0])
	e.LastReviewed = &now
}

// ReviewStats is an aggregate projection over a user's queue entries.
type ReviewStats struct {
	TotalReviews    int     `json:"total_reviews"`
	DueNow          int     `json:"due_now"`
	AvgIntervalDays float64 `json:"avg_interval_days"`
	NearCompletion  int     `json:"near_completion"`
}

// MasteredDay is one row of the durable mastery log, written when an
// entry finishes the ladder and its queue row is deleted.
type MasteredDay struct {
	UserID     uuid.UUID
	Day        int
	MasteredAt time.Time
}
