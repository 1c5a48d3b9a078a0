package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres"
)

var ErrQuestionNotFound = errors.New("question not found")

const questionColumns = `
	id, day, track, set_id, speaker, prompt, reference_answer,
	keywords, difficulty, created_at
`

// QuestionRepository provides read access to the question content store.
type QuestionRepository struct {
	db postgres.DBTX
}

// NewQuestionRepository creates a new QuestionRepository with the provided database handle.
func NewQuestionRepository(db postgres.DBTX) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// GetByID retrieves a single question.
func (r *QuestionRepository) GetByID(ctx context.Context, id int64) (*entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE id = $1`

	q, err := scanQuestion(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrQuestionNotFound
		}
		return nil, fmt.Errorf("get question: %w", err)
	}

	return q, nil
}

// GetByDay retrieves all questions of a day across every track.
func (r *QuestionRepository) GetByDay(ctx context.Context, day int) ([]entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE day = $1 ORDER BY track, set_id, id`

	return r.queryMany(ctx, query, day)
}

// GetByDayAndTrack retrieves the questions of one track within a day.
func (r *QuestionRepository) GetByDayAndTrack(ctx context.Context, day int, track entities.Track) ([]entities.Question, error) {
	query := `SELECT ` + questionColumns + ` FROM questions WHERE day = $1 AND track = $2 ORDER BY set_id, id`

	return r.queryMany(ctx, query, day, string(track))
}

// GetDialogueSets retrieves the small-talk questions of a day grouped
// into dialogue sets.
func (r *QuestionRepository) GetDialogueSets(ctx context.Context, day int) ([]entities.DialogueSet, error) {
	questions, err := r.GetByDayAndTrack(ctx, day, entities.TrackSmallTalk)
	if err != nil {
		return nil, err
	}

	bySet := make(map[int64]*entities.DialogueSet)
	var order []int64
	for _, q := range questions {
		set, ok := bySet[q.SetID]
		if !ok {
			set = &entities.DialogueSet{SetID: q.SetID, Day: day}
			bySet[q.SetID] = set
			order = append(order, q.SetID)
		}
		set.Questions = append(set.Questions, q)
	}

	out := make([]entities.DialogueSet, 0, len(order))
	for _, id := range order {
		out = append(out, *bySet[id])
	}

	return out, nil
}

// ListDays retrieves the distinct day numbers that have content.
func (r *QuestionRepository) ListDays(ctx context.Context) ([]int, error) {
	query := `SELECT DISTINCT day FROM questions ORDER BY day`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list days: %w", err)
	}
	defer rows.Close()

	var days []int
	for rows.Next() {
		var d int
		if err := rows.Scan(&d); err != nil {
			return nil, fmt.Errorf("scan day: %w", err)
		}
		days = append(days, d)
	}

	return days, rows.Err()
}

// CountByDay returns how many questions a day has.
func (r *QuestionRepository) CountByDay(ctx context.Context, day int) (int, error) {
	query := `SELECT COUNT(*) FROM questions WHERE day = $1`

	var n int
	if err := r.db.QueryRow(ctx, query, day).Scan(&n); err != nil {
		return 0, fmt.Errorf("count questions: %w", err)
	}

	return n, nil
}

func (r *QuestionRepository) queryMany(ctx context.Context, query string, args ...any) ([]entities.Question, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query questions: %w", err)
	}
	defer rows.Close()

	var out []entities.Question
	for rows.Next() {
		q, err := scanQuestion(rows)
		if err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		out = append(out, *q)
	}

	return out, rows.Err()
}

func scanQuestion(row pgx.Row) (*entities.Question, error) {
	var q entities.Question
	var track string
	var difficulty int

	err := row.Scan(
		&q.ID, &q.Day, &track, &q.SetID, &q.Speaker, &q.Prompt,
		&q.ReferenceAnswer, &q.Keywords, &difficulty, &q.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	q.Track = entities.Track(track)
	q.Difficulty = entities.Difficulty(difficulty).Normalize()
	return &q, nil
}
