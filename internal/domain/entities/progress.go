package entities

import (
	"time"

	"github.com/google/uuid"
)

// QuestionProgress tracks a user's standing on a single question:
// latest grading outcome, wrong-answer flag and favorite flag.
type QuestionProgress struct {
	UserID       uuid.UUID
	QuestionID   int64
	Day          int
	Attempts     int
	LastScore    int
	LastCorrect  bool
	WrongAnswer  bool // set on a failed attempt, cleared on a later pass
	Favorite     bool
	LastAnswer   string
	AnsweredAt   *time.Time
}

// DayProgress summarizes a user's standing on one Day of content.
type DayProgress struct {
	Day       int  `json:"day"`
	Total     int  `json:"total"`     // questions in the day
	Answered  int  `json:"answered"`  // questions attempted at least once
	Correct   int  `json:"correct"`   // questions whose latest attempt passed
	Completed bool `json:"completed"` // every question attempted
}

// DailyActivity is one row of the per-day activity log used for goals
// and streaks.
type DailyActivity struct {
	UserID     uuid.UUID
	Date       time.Time // midnight UTC of the activity day
	Answered   int       // answers submitted that day
	GoalMet    bool
}

// GoalStatus is what the dashboard shows for today's goal.
type GoalStatus struct {
	Date          time.Time `json:"date"`
	Goal          int       `json:"goal"`
	Answered      int       `json:"answered"`
	GoalMet       bool      `json:"goal_met"`
	CurrentStreak int       `json:"current_streak"`
	LongestStreak int       `json:"longest_streak"`
}
