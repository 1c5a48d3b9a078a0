package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres"
)

var ErrEntryNotFound = errors.New("review queue entry not found")

// ReviewQueueRepository provides access to spaced-repetition queue
// entries, one row per (user, day).
type ReviewQueueRepository struct {
	db postgres.DBTX
}

// NewReviewQueueRepository creates a new ReviewQueueRepository with the provided database handle.
func NewReviewQueueRepository(db postgres.DBTX) *ReviewQueueRepository {
	return &ReviewQueueRepository{db: db}
}

// Create inserts a new queue entry. It is an atomic insert-if-absent:
// when an entry for (user, day) already exists nothing changes and
// created is false.
func (r *ReviewQueueRepository) Create(ctx context.Context, e *entities.ReviewQueueEntry) (bool, error) {
	query := `
		INSERT INTO review_queue (
			user_id, day, interval_days, scheduled_for, review_count, added_at, last_reviewed
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		ON CONFLICT (user_id, day) DO NOTHING
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(
		ctx,
		query,
		e.UserID,
		e.Day,
		e.IntervalDays,
		e.ScheduledFor,
		e.ReviewCount,
		e.AddedAt,
		e.LastReviewed,
	)
	if err != nil {
		return false, fmt.Errorf("create review queue entry: %w", err)
	}

	return tag.RowsAffected() > 0, nil
}

// GetForUpdate retrieves one entry and locks its row for the duration
// of the surrounding transaction, serializing concurrent completions
// of the same (user, day).
func (r *ReviewQueueRepository) GetForUpdate(ctx context.Context, userID uuid.UUID, day int) (*entities.ReviewQueueEntry, error) {
	query := `
		SELECT user_id, day, interval_days, scheduled_for, review_count, added_at, last_reviewed
		FROM review_queue
		WHERE user_id = $1 AND day = $2
		FOR UPDATE
	`

	return r.scanOne(postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, day))
}

// Get retrieves one entry without locking.
func (r *ReviewQueueRepository) Get(ctx context.Context, userID uuid.UUID, day int) (*entities.ReviewQueueEntry, error) {
	query := `
		SELECT user_id, day, interval_days, scheduled_for, review_count, added_at, last_reviewed
		FROM review_queue
		WHERE user_id = $1 AND day = $2
	`

	return r.scanOne(postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, day))
}

// Update rewrites the mutable scheduling fields of an entry.
func (r *ReviewQueueRepository) Update(ctx context.Context, e *entities.ReviewQueueEntry) error {
	query := `
		UPDATE review_queue
		SET interval_days = $3, scheduled_for = $4, review_count = $5, last_reviewed = $6
		WHERE user_id = $1 AND day = $2
	`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, e.UserID, e.Day, e.IntervalDays, e.ScheduledFor, e.ReviewCount, e.LastReviewed)
	if err != nil {
		return fmt.Errorf("update review queue entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// Delete removes an entry permanently. Used when a day is mastered.
func (r *ReviewQueueRepository) Delete(ctx context.Context, userID uuid.UUID, day int) error {
	query := `DELETE FROM review_queue WHERE user_id = $1 AND day = $2`

	tag, err := postgres.Conn(ctx, r.db).Exec(ctx, query, userID, day)
	if err != nil {
		return fmt.Errorf("delete review queue entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrEntryNotFound
	}

	return nil
}

// GetNextDue retrieves the due entry with the earliest scheduled_for,
// or ErrEntryNotFound when nothing is due.
func (r *ReviewQueueRepository) GetNextDue(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.ReviewQueueEntry, error) {
	query := `
		SELECT user_id, day, interval_days, scheduled_for, review_count, added_at, last_reviewed
		FROM review_queue
		WHERE user_id = $1 AND scheduled_for <= $2
		ORDER BY scheduled_for
		LIMIT 1
	`

	return r.scanOne(postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, now))
}

// GetByUserID retrieves all queue entries of a user ordered by due time.
func (r *ReviewQueueRepository) GetByUserID(ctx context.Context, userID uuid.UUID) ([]entities.ReviewQueueEntry, error) {
	query := `
		SELECT user_id, day, interval_days, scheduled_for, review_count, added_at, last_reviewed
		FROM review_queue
		WHERE user_id = $1
		ORDER BY scheduled_for
	`

	rows, err := postgres.Conn(ctx, r.db).Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("get review queue: %w", err)
	}
	defer rows.Close()

	var out []entities.ReviewQueueEntry
	for rows.Next() {
		var e entities.ReviewQueueEntry
		if err := rows.Scan(
			&e.UserID, &e.Day, &e.IntervalDays, &e.ScheduledFor,
			&e.ReviewCount, &e.AddedAt, &e.LastReviewed,
		); err != nil {
			return nil, fmt.Errorf("scan review queue entry: %w", err)
		}
		out = append(out, e)
	}

	return out, rows.Err()
}

// GetStats aggregates the queue entries of a user in one query.
func (r *ReviewQueueRepository) GetStats(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.ReviewStats, error) {
	query := `
		SELECT
			COALESCE(SUM(review_count), 0),
			COUNT(*) FILTER (WHERE scheduled_for <= $2),
			COALESCE(AVG(interval_days), 0),
			COUNT(*) FILTER (WHERE interval_days >= 120)
		FROM review_queue
		WHERE user_id = $1
	`

	var stats entities.ReviewStats
	err := postgres.Conn(ctx, r.db).QueryRow(ctx, query, userID, now).Scan(
		&stats.TotalReviews,
		&stats.DueNow,
		&stats.AvgIntervalDays,
		&stats.NearCompletion,
	)
	if err != nil {
		return nil, fmt.Errorf("get review stats: %w", err)
	}

	return &stats, nil
}

func (r *ReviewQueueRepository) scanOne(row pgx.Row) (*entities.ReviewQueueEntry, error) {
	var e entities.ReviewQueueEntry
	err := row.Scan(
		&e.UserID, &e.Day, &e.IntervalDays, &e.ScheduledFor,
		&e.ReviewCount, &e.AddedAt, &e.LastReviewed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrEntryNotFound
		}
		return nil, fmt.Errorf("get review queue entry: %w", err)
	}

	return &e, nil
}
