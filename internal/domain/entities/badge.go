package entities

import (
	"time"

	"github.com/google/uuid"
)

// BadgeCode identifies a badge in the fixed catalog.
type BadgeCode string

const (
	BadgeFirstDay      BadgeCode = "first_day"       // completed a first day of content
	BadgeWeekStreak    BadgeCode = "week_streak"     // met the daily goal 7 days in a row
	BadgeFirstMastery  BadgeCode = "first_mastery"   // mastered a day through the full ladder
	BadgeHundredAnswers BadgeCode = "hundred_answers" // 100 graded answers submitted
)

type Badge struct {
	Code        BadgeCode `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

// BadgeCatalog is the fixed set of badges the backend can award.
var BadgeCatalog = []Badge{
	{Code: BadgeFirstDay, Title: "First Steps", Description: "Complete your first day of content"},
	{Code: BadgeWeekStreak, Title: "On a Roll", Description: "Meet your daily goal seven days in a row"},
	{Code: BadgeFirstMastery, Title: "Mastered", Description: "Carry a day through the whole review ladder"},
	{Code: BadgeHundredAnswers, Title: "Centurion", Description: "Submit one hundred graded answers"},
}

type UserBadge struct {
	UserID    uuid.UUID
	Code      BadgeCode
	AwardedAt time.Time
}

// Avatar is one entry of the fixed avatar catalog.
type Avatar struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url"`
}

// AvatarCatalog lists the selectable avatars. Selection is stored as
// the catalog ID on the user row.
var AvatarCatalog = []Avatar{
	{ID: 1, Name: "Fox", URL: "/static/avatars/fox.png"},
	{ID: 2, Name: "Owl", URL: "/static/avatars/owl.png"},
	{ID: 3, Name: "Panda", URL: "/static/avatars/panda.png"},
	{ID: 4, Name: "Koala", URL: "/static/avatars/koala.png"},
	{ID: 5, Name: "Tiger", URL: "/static/avatars/tiger.png"},
	{ID: 6, Name: "Whale", URL: "/static/avatars/whale.png"},
}

// AvatarByID returns the catalog entry for id, or false when no such
// avatar exists.
func AvatarByID(id int) (Avatar, bool) {
	for _, a := range AvatarCatalog {
		if a.ID == id {
			return a, true
		}
	}
	return Avatar{}, false
}
