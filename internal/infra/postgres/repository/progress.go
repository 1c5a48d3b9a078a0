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

var ErrProgressNotFound = errors.New("progress not found")

const progressColumns = `
	user_id, question_id, day, attempts, last_score, last_correct,
	wrong_answer, favorite, last_answer, answered_at
`

// ProgressRepository provides access to per-question progress rows:
// attempt outcomes, wrong-answer flags and favorites.
type ProgressRepository struct {
	db postgres.DBTX
}

// NewProgressRepository creates a new ProgressRepository with the provided database handle.
func NewProgressRepository(db postgres.DBTX) *ProgressRepository {
	return &ProgressRepository{db: db}
}

// RecordAttempt upserts the outcome of one graded answer. The
// wrong-answer flag follows the latest outcome: set on fail, cleared
// on pass.
func (r *ProgressRepository) RecordAttempt(ctx context.Context, p *entities.QuestionProgress) error {
	query := `
		INSERT INTO question_progress (
			user_id, question_id, day, attempts, last_score, last_correct,
			wrong_answer, favorite, last_answer, answered_at
		) VALUES ($1, $2, $3, 1, $4, $5, $6, false, $7, $8)
		ON CONFLICT (user_id, question_id) DO UPDATE SET
			attempts = question_progress.attempts + 1,
			last_score = EXCLUDED.last_score,
			last_correct = EXCLUDED.last_correct,
			wrong_answer = EXCLUDED.wrong_answer,
			last_answer = EXCLUDED.last_answer,
			answered_at = EXCLUDED.answered_at
	`

	_, err := r.db.Exec(
		ctx,
		query,
		p.UserID,
		p.QuestionID,
		p.Day,
		p.LastScore,
		p.LastCorrect,
		!p.LastCorrect,
		p.LastAnswer,
		p.AnsweredAt,
	)
	if err != nil {
		return fmt.Errorf("record attempt: %w", err)
	}

	return nil
}

// Get retrieves one progress row.
func (r *ProgressRepository) Get(ctx context.Context, userID uuid.UUID, questionID int64) (*entities.QuestionProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM question_progress WHERE user_id = $1 AND question_id = $2`

	p, err := scanProgress(r.db.QueryRow(ctx, query, userID, questionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrProgressNotFound
		}
		return nil, fmt.Errorf("get progress: %w", err)
	}

	return p, nil
}

// CountAnsweredInDay returns how many distinct questions of a day the
// user has attempted at least once.
func (r *ProgressRepository) CountAnsweredInDay(ctx context.Context, userID uuid.UUID, day int) (int, error) {
	query := `SELECT COUNT(*) FROM question_progress WHERE user_id = $1 AND day = $2`

	var n int
	if err := r.db.QueryRow(ctx, query, userID, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("count answered in day: %w", err)
	}

	return n, nil
}

// GetDayProgress aggregates a user's standing on one day.
func (r *ProgressRepository) GetDayProgress(ctx context.Context, userID uuid.UUID, day int, totalQuestions int) (*entities.DayProgress, error) {
	query := `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE last_correct)
		FROM question_progress
		WHERE user_id = $1 AND day = $2
	`

	dp := entities.DayProgress{Day: day, Total: totalQuestions}
	if err := r.db.QueryRow(ctx, query, userID, day).Scan(&dp.Answered, &dp.Correct); err != nil {
		return nil, fmt.Errorf("get day progress: %w", err)
	}
	dp.Completed = totalQuestions > 0 && dp.Answered >= totalQuestions

	return &dp, nil
}

// TotalAttempts returns the number of graded answers a user has
// submitted across all questions.
func (r *ProgressRepository) TotalAttempts(ctx context.Context, userID uuid.UUID) (int, error) {
	query := `SELECT COALESCE(SUM(attempts), 0) FROM question_progress WHERE user_id = $1`

	var n int
	if err := r.db.QueryRow(ctx, query, userID).Scan(&n); err != nil {
		return 0, fmt.Errorf("total attempts: %w", err)
	}

	return n, nil
}

// SetFavorite sets or clears the favorite flag, creating the progress
// row if the question has never been attempted.
func (r *ProgressRepository) SetFavorite(ctx context.Context, userID uuid.UUID, questionID int64, day int, favorite bool) error {
	query := `
		INSERT INTO question_progress (
			user_id, question_id, day, attempts, last_score, last_correct,
			wrong_answer, favorite, last_answer, answered_at
		) VALUES ($1, $2, $3, 0, 0, false, false, $4, '', NULL)
		ON CONFLICT (user_id, question_id) DO UPDATE SET favorite = EXCLUDED.favorite
	`

	if _, err := r.db.Exec(ctx, query, userID, questionID, day, favorite); err != nil {
		return fmt.Errorf("set favorite: %w", err)
	}

	return nil
}

// ListWrongAnswers retrieves progress rows currently flagged as wrong.
func (r *ProgressRepository) ListWrongAnswers(ctx context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM question_progress WHERE user_id = $1 AND wrong_answer ORDER BY answered_at DESC`

	return r.queryMany(ctx, query, userID)
}

// ListFavorites retrieves progress rows flagged as favorite.
func (r *ProgressRepository) ListFavorites(ctx context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error) {
	query := `SELECT ` + progressColumns + ` FROM question_progress WHERE user_id = $1 AND favorite ORDER BY question_id`

	return r.queryMany(ctx, query, userID)
}

func (r *ProgressRepository) queryMany(ctx context.Context, query string, args ...any) ([]entities.QuestionProgress, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query progress: %w", err)
	}
	defer rows.Close()

	var out []entities.QuestionProgress
	for rows.Next() {
		p, err := scanProgress(rows)
		if err != nil {
			return nil, fmt.Errorf("scan progress: %w", err)
		}
		out = append(out, *p)
	}

	return out, rows.Err()
}

func scanProgress(row pgx.Row) (*entities.QuestionProgress, error) {
	var p entities.QuestionProgress
	var answeredAt *time.Time
	err := row.Scan(
		&p.UserID, &p.QuestionID, &p.Day, &p.Attempts, &p.LastScore,
		&p.LastCorrect, &p.WrongAnswer, &p.Favorite, &p.LastAnswer, &answeredAt,
	)
	if err != nil {
		return nil, err
	}
	p.AnsweredAt = answeredAt

	return &p, nil
}
