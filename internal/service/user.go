package service

import (
	"context"

	"github.com/google/uuid"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

// UserService covers profile reads and avatar selection.
type UserService struct {
	userRepo UserRepository
}

func NewUserService(userRepo UserRepository) *UserService {
	return &UserService{userRepo: userRepo}
}

func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*entities.User, error) {
	return s.userRepo.GetByID(ctx, id)
}

// Avatars returns the selectable avatar catalog.
func (s *UserService) Avatars() []entities.Avatar {
	return entities.AvatarCatalog
}

// SelectAvatar sets the user's avatar to a catalog entry.
func (s *UserService) SelectAvatar(ctx context.Context, userID uuid.UUID, avatarID int) error {
	if _, ok := entities.AvatarByID(avatarID); !ok {
		return ErrInvalidInput
	}

	return s.userRepo.UpdateAvatar(ctx, userID, avatarID)
}
