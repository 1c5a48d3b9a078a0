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

var ErrTokenNotFound = errors.New("refresh token not found")

// RefreshTokenRepository stores hashed refresh tokens.
type RefreshTokenRepository struct {
	db postgres.DBTX
}

func NewRefreshTokenRepository(db postgres.DBTX) *RefreshTokenRepository {
	return &RefreshTokenRepository{db: db}
}

// Create inserts a refresh token record.
func (r *RefreshTokenRepository) Create(ctx context.Context, t *entities.RefreshToken) error {
	query := `
		INSERT INTO refresh_tokens (user_id, token_hash, expires_at, created_at)
		VALUES ($1, $2, $3, NOW())
	`

	if _, err := r.db.Exec(ctx, query, t.UserID, t.TokenHash, t.ExpiresAt); err != nil {
		return fmt.Errorf("create refresh token: %w", err)
	}

	return nil
}

// GetByHash retrieves a non-expired token record by its hash.
func (r *RefreshTokenRepository) GetByHash(ctx context.Context, hash string, now time.Time) (*entities.RefreshToken, error) {
	query := `
		SELECT id, user_id, token_hash, expires_at, created_at
		FROM refresh_tokens
		WHERE token_hash = $1 AND expires_at > $2
	`

	var t entities.RefreshToken
	err := r.db.QueryRow(ctx, query, hash, now).Scan(
		&t.ID, &t.UserID, &t.TokenHash, &t.ExpiresAt, &t.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTokenNotFound
		}
		return nil, fmt.Errorf("get refresh token: %w", err)
	}

	return &t, nil
}

// DeleteByHash removes one token record, used on rotation.
func (r *RefreshTokenRepository) DeleteByHash(ctx context.Context, hash string) error {
	query := `DELETE FROM refresh_tokens WHERE token_hash = $1`

	if _, err := r.db.Exec(ctx, query, hash); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}

	return nil
}

// DeleteExpired removes token records past their expiry and reports
// how many were purged.
func (r *RefreshTokenRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	query := `DELETE FROM refresh_tokens WHERE expires_at <= $1`

	tag, err := r.db.Exec(ctx, query, now)
	if err != nil {
		return 0, fmt.Errorf("delete expired refresh tokens: %w", err)
	}

	return tag.RowsAffected(), nil
}

// DeleteByUserID removes all token records of a user, used on logout.
func (r *RefreshTokenRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	query := `DELETE FROM refresh_tokens WHERE user_id = $1`

	if _, err := r.db.Exec(ctx, query, userID); err != nil {
		return fmt.Errorf("delete refresh tokens: %w", err)
	}

	return nil
}
