package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or expired token")
)

// TokenPair is what a successful login or refresh returns.
type TokenPair struct {
	AccessToken  string    `json:"access_token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

// AuthService issues HS256 access tokens with rotated server-side
// refresh tokens. Revoked access tokens go to a shared expiring
// blacklist keyed by JTI, so revocation holds across instances.
type AuthService struct {
	userRepo     UserRepository
	tokenRepo    RefreshTokenRepository
	settingsRepo SettingsRepository
	blacklist    TokenBlacklist

	secret     []byte
	accessTTL  time.Duration
	refreshTTL time.Duration

	now func() time.Time
}

func NewAuthService(
	userRepo UserRepository,
	tokenRepo RefreshTokenRepository,
	settingsRepo SettingsRepository,
	blacklist TokenBlacklist,
	secret string,
	accessTTL, refreshTTL time.Duration,
) *AuthService {
	return &AuthService{
		userRepo:     userRepo,
		tokenRepo:    tokenRepo,
		settingsRepo: settingsRepo,
		blacklist:    blacklist,
		secret:       []byte(secret),
		accessTTL:    accessTTL,
		refreshTTL:   refreshTTL,
		now:          time.Now,
	}
}

// Register creates an account with default settings and a catalog
// avatar.
func (s *AuthService) Register(ctx context.Context, email, password, displayName string) (*entities.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if !strings.Contains(email, "@") || len(password) < 8 {
		return nil, ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := entities.NewUser(email, string(hash), strings.TrimSpace(displayName))
	user.AvatarID = 1 + int(user.ID[0])%len(entities.AvatarCatalog)

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, err
	}
	if err := s.settingsRepo.Create(ctx, user.ID); err != nil {
		return nil, err
	}

	return user, nil
}

// Login verifies credentials and issues a fresh token pair.
func (s *AuthService) Login(ctx context.Context, email, password string) (*TokenPair, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return s.issuePair(ctx, user.ID)
}

// Refresh rotates a refresh token: the presented token is consumed and
// a new pair is issued.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*TokenPair, error) {
	hash := hashToken(refreshToken)

	record, err := s.tokenRepo.GetByHash(ctx, hash, s.now())
	if err != nil {
		if errors.Is(err, repository.ErrTokenNotFound) {
			return nil, ErrInvalidToken
		}
		return nil, err
	}

	if err := s.tokenRepo.DeleteByHash(ctx, hash); err != nil {
		return nil, err
	}

	return s.issuePair(ctx, record.UserID)
}

// Logout revokes the presented access token and drops every refresh
// token of the user.
func (s *AuthService) Logout(ctx context.Context, userID uuid.UUID, claims *jwt.RegisteredClaims) error {
	if claims != nil && claims.ID != "" && claims.ExpiresAt != nil {
		ttl := claims.ExpiresAt.Sub(s.now())
		if err := s.blacklist.Revoke(ctx, claims.ID, ttl); err != nil {
			return err
		}
	}

	return s.tokenRepo.DeleteByUserID(ctx, userID)
}

// ValidateAccessToken parses and verifies an access token, including
// the revocation check, and returns the authenticated user ID.
func (s *AuthService) ValidateAccessToken(ctx context.Context, tokenString string) (uuid.UUID, *jwt.RegisteredClaims, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %q", t.Method.Alg())
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return uuid.Nil, nil, ErrInvalidToken
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, nil, ErrInvalidToken
	}

	revoked, err := s.blacklist.IsRevoked(ctx, claims.ID)
	if err != nil {
		return uuid.Nil, nil, err
	}
	if revoked {
		return uuid.Nil, nil, ErrInvalidToken
	}

	return userID, claims, nil
}

func (s *AuthService) issuePair(ctx context.Context, userID uuid.UUID) (*TokenPair, error) {
	now := s.now()
	expiresAt := now.Add(s.accessTTL)

	claims := jwt.RegisteredClaims{
		Subject:   userID.String(),
		ID:        uuid.NewString(),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(expiresAt),
	}

	accessToken, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("sign access token: %w", err)
	}

	refreshToken := uuid.NewString()
	record := &entities.RefreshToken{
		UserID:    userID,
		TokenHash: hashToken(refreshToken),
		ExpiresAt: now.Add(s.refreshTTL),
	}
	if err := s.tokenRepo.Create(ctx, record); err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		ExpiresAt:    expiresAt,
	}, nil
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
