package entities

import (
	"time"

	"github.com/google/uuid"
)

type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string
	DisplayName  string
	AvatarID     int // index into the avatar catalog
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func NewUser(email, passwordHash, displayName string) *User {
	return &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		DisplayName:  displayName,
	}
}

// RefreshToken is a server-side refresh token record. Only the SHA-256
// hash of the token is persisted.
type RefreshToken struct {
	ID        int64
	UserID    uuid.UUID
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
