package httpapi

import (
	"time"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
)

// QuestionDTO is the client-facing shape of a question. Grading
// keywords stay server-side.
type QuestionDTO struct {
	ID              int64  `json:"id"`
	Day             int    `json:"day"`
	Track           string `json:"track"`
	SetID           int64  `json:"set_id,omitempty"`
	Speaker         string `json:"speaker,omitempty"`
	Prompt          string `json:"prompt"`
	ReferenceAnswer string `json:"reference_answer"`
	Difficulty      string `json:"difficulty"`
}

func toQuestionDTO(q entities.Question) QuestionDTO {
	return QuestionDTO{
		ID:              q.ID,
		Day:             q.Day,
		Track:           string(q.Track),
		SetID:           q.SetID,
		Speaker:         q.Speaker,
		Prompt:          q.Prompt,
		ReferenceAnswer: q.ReferenceAnswer,
		Difficulty:      q.Difficulty.String(),
	}
}

func toQuestionDTOs(questions []entities.Question) []QuestionDTO {
	out := make([]QuestionDTO, 0, len(questions))
	for _, q := range questions {
		out = append(out, toQuestionDTO(q))
	}
	return out
}

type DialogueSetDTO struct {
	SetID     int64         `json:"set_id"`
	Day       int           `json:"day"`
	Questions []QuestionDTO `json:"questions"`
}

func toDialogueSetDTOs(sets []entities.DialogueSet) []DialogueSetDTO {
	out := make([]DialogueSetDTO, 0, len(sets))
	for _, s := range sets {
		out = append(out, DialogueSetDTO{
			SetID:     s.SetID,
			Day:       s.Day,
			Questions: toQuestionDTOs(s.Questions),
		})
	}
	return out
}

type QueueEntryDTO struct {
	Day          int        `json:"day"`
	IntervalDays int        `json:"interval_days"`
	ScheduledFor time.Time  `json:"scheduled_for"`
	ReviewCount  int        `json:"review_count"`
	AddedAt      time.Time  `json:"added_at"`
	LastReviewed *time.Time `json:"last_reviewed,omitempty"`
}

func toQueueEntryDTO(e *entities.ReviewQueueEntry) QueueEntryDTO {
	return QueueEntryDTO{
		Day:          e.Day,
		IntervalDays: e.IntervalDays,
		ScheduledFor: e.ScheduledFor,
		ReviewCount:  e.ReviewCount,
		AddedAt:      e.AddedAt,
		LastReviewed: e.LastReviewed,
	}
}

func toQueueEntryDTOs(entries []entities.ReviewQueueEntry) []QueueEntryDTO {
	out := make([]QueueEntryDTO, 0, len(entries))
	for i := range entries {
		out = append(out, toQueueEntryDTO(&entries[i]))
	}
	return out
}

type ProgressDTO struct {
	QuestionID  int64      `json:"question_id"`
	Day         int        `json:"day"`
	Attempts    int        `json:"attempts"`
	LastScore   int        `json:"last_score"`
	LastCorrect bool       `json:"last_correct"`
	WrongAnswer bool       `json:"wrong_answer"`
	Favorite    bool       `json:"favorite"`
	LastAnswer  string     `json:"last_answer"`
	AnsweredAt  *time.Time `json:"answered_at,omitempty"`
}

func toProgressDTOs(items []entities.QuestionProgress) []ProgressDTO {
	out := make([]ProgressDTO, 0, len(items))
	for _, p := range items {
		out = append(out, ProgressDTO{
			QuestionID:  p.QuestionID,
			Day:         p.Day,
			Attempts:    p.Attempts,
			LastScore:   p.LastScore,
			LastCorrect: p.LastCorrect,
			WrongAnswer: p.WrongAnswer,
			Favorite:    p.Favorite,
			LastAnswer:  p.LastAnswer,
			AnsweredAt:  p.AnsweredAt,
		})
	}
	return out
}

type SettingsDTO struct {
	Difficulty    int `json:"difficulty"`
	DailyGoal     int `json:"daily_goal"`
	SmallTalkSets int `json:"small_talk_sets"`
}

func toSettingsDTO(s *entities.UserSettings) SettingsDTO {
	return SettingsDTO{
		Difficulty:    int(s.Difficulty),
		DailyGoal:     s.DailyGoal,
		SmallTalkSets: s.SmallTalkSets,
	}
}

type UserDTO struct {
	ID          string          `json:"id"`
	Email       string          `json:"email"`
	DisplayName string          `json:"display_name"`
	Avatar      entities.Avatar `json:"avatar"`
	CreatedAt   time.Time       `json:"created_at"`
}

func toUserDTO(u *entities.User) UserDTO {
	avatar, _ := entities.AvatarByID(u.AvatarID)
	return UserDTO{
		ID:          u.ID.String(),
		Email:       u.Email,
		DisplayName: u.DisplayName,
		Avatar:      avatar,
		CreatedAt:   u.CreatedAt,
	}
}

type UserBadgeDTO struct {
	Code        string    `json:"code"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	AwardedAt   time.Time `json:"awarded_at"`
}

func toUserBadgeDTOs(badges []entities.UserBadge) []UserBadgeDTO {
	out := make([]UserBadgeDTO, 0, len(badges))
	for _, b := range badges {
		dto := UserBadgeDTO{Code: string(b.Code), AwardedAt: b.AwardedAt}
		for _, cat := range entities.BadgeCatalog {
			if cat.Code == b.Code {
				dto.Title = cat.Title
				dto.Description = cat.Description
				break
			}
		}
		out = append(out, dto)
	}
	return out
}
