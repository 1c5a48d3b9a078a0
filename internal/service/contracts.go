package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

type ReviewQueueRepository interface {
	Create(ctx context.Context, e *entities.ReviewQueueEntry) (bool, error)
	Get(ctx context.Context, userID uuid.UUID, day int) (*entities.ReviewQueueEntry, error)
	GetForUpdate(ctx context.Context, userID uuid.UUID, day int) (*entities.ReviewQueueEntry, error)
	Update(ctx context.Context, e *entities.ReviewQueueEntry) error
	Delete(ctx context.Context, userID uuid.UUID, day int) error
	GetNextDue(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.ReviewQueueEntry, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entities.ReviewQueueEntry, error)
	GetStats(ctx context.Context, userID uuid.UUID, now time.Time) (*entities.ReviewStats, error)
}

type MasteryRepository interface {
	Add(ctx context.Context, userID uuid.UUID, day int, masteredAt time.Time) error
	GetDays(ctx context.Context, userID uuid.UUID) ([]int, error)
}

type QuestionRepository interface {
	GetByID(ctx context.Context, id int64) (*entities.Question, error)
	GetByDay(ctx context.Context, day int) ([]entities.Question, error)
	GetByDayAndTrack(ctx context.Context, day int, track entities.Track) ([]entities.Question, error)
	GetDialogueSets(ctx context.Context, day int) ([]entities.DialogueSet, error)
	ListDays(ctx context.Context) ([]int, error)
	CountByDay(ctx context.Context, day int) (int, error)
}

type UserRepository interface {
	Create(ctx context.Context, u *entities.User) error
	GetByEmail(ctx context.Context, email string) (*entities.User, error)
	GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error)
	UpdateAvatar(ctx context.Context, id uuid.UUID, avatarID int) error
}

type RefreshTokenRepository interface {
	Create(ctx context.Context, t *entities.RefreshToken) error
	GetByHash(ctx context.Context, hash string, now time.Time) (*entities.RefreshToken, error)
	DeleteByHash(ctx context.Context, hash string) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type SettingsRepository interface {
	Create(ctx context.Context, userID uuid.UUID) error
	GetByUserID(ctx context.Context, userID uuid.UUID) (*entities.UserSettings, error)
	Update(ctx context.Context, settings *entities.UserSettings) error
}

type ProgressRepository interface {
	RecordAttempt(ctx context.Context, p *entities.QuestionProgress) error
	Get(ctx context.Context, userID uuid.UUID, questionID int64) (*entities.QuestionProgress, error)
	CountAnsweredInDay(ctx context.Context, userID uuid.UUID, day int) (int, error)
	TotalAttempts(ctx context.Context, userID uuid.UUID) (int, error)
	GetDayProgress(ctx context.Context, userID uuid.UUID, day int, totalQuestions int) (*entities.DayProgress, error)
	SetFavorite(ctx context.Context, userID uuid.UUID, questionID int64, day int, favorite bool) error
	ListWrongAnswers(ctx context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error)
	ListFavorites(ctx context.Context, userID uuid.UUID) ([]entities.QuestionProgress, error)
}

type ActivityRepository interface {
	IncrementAnswered(ctx context.Context, userID uuid.UUID, date time.Time, goal int) error
	Get(ctx context.Context, userID uuid.UUID, date time.Time) (*entities.DailyActivity, error)
	GetRecent(ctx context.Context, userID uuid.UUID, limit int) ([]entities.DailyActivity, error)
	LongestGoalStreak(ctx context.Context, userID uuid.UUID) (int, error)
}

type BadgeRepository interface {
	Award(ctx context.Context, userID uuid.UUID, code entities.BadgeCode, awardedAt time.Time) (bool, error)
	GetByUserID(ctx context.Context, userID uuid.UUID) ([]entities.UserBadge, error)
}

// Transactor runs a function inside one database transaction.
type Transactor interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenBlacklist is a shared expiring store of revoked access tokens.
type TokenBlacklist interface {
	Revoke(ctx context.Context, jti string, ttl time.Duration) error
	IsRevoked(ctx context.Context, jti string) (bool, error)
}
