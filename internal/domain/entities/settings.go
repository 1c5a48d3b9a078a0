package entities

import (
	"time"

	"github.com/google/uuid"
)

type UserSettings struct {
	UserID        uuid.UUID
	Difficulty    Difficulty // grading tier applied to this user's answers
	DailyGoal     int        // target answered questions per day
	SmallTalkSets int        // dialogue sets per review session
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewUserSettings returns the default settings for a user.
func NewUserSettings(userID uuid.UUID) *UserSettings {
	return &UserSettings{
		UserID:        userID,
		Difficulty:    DifficultyIntermediate,
		DailyGoal:     10,
		SmallTalkSets: 2,
	}
}
