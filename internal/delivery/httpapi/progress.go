package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingoday/lingoday-backend/internal/service"
)

// ProgressHandler covers the learn-first-time flow: answer submission,
// day progress, wrong answers and favorites.
type ProgressHandler struct {
	progress *service.ProgressService
}

func NewProgressHandler(progress *service.ProgressService) *ProgressHandler {
	return &ProgressHandler{progress: progress}
}

type submitAnswerRequest struct {
	QuestionID int64  `json:"question_id" binding:"required"`
	Answer     string `json:"answer"`
	AnswerB    string `json:"answer_b"`
}

// SubmitAnswer grades one practice answer and records the attempt.
func (h *ProgressHandler) SubmitAnswer(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	outcome, err := h.progress.SubmitAnswer(c.Request.Context(), userIDFrom(c), req.QuestionID, req.Answer, req.AnswerB)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, outcome)
}

// GradePractice grades an answer without recording it.
func (h *ProgressHandler) GradePractice(c *gin.Context) {
	var req submitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	grading, err := h.progress.GradePractice(c.Request.Context(), userIDFrom(c), req.QuestionID, req.Answer, req.AnswerB)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, grading)
}

// DayProgress returns the user's standing on one day of content.
func (h *ProgressHandler) DayProgress(c *gin.Context) {
	day, err := dayParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_day", err)
		return
	}

	progress, err := h.progress.DayProgress(c.Request.Context(), userIDFrom(c), day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, progress)
}

// WrongAnswers lists questions whose latest attempt failed.
func (h *ProgressHandler) WrongAnswers(c *gin.Context) {
	items, err := h.progress.WrongAnswers(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"items": toProgressDTOs(items)})
}

// Favorites lists the user's bookmarked questions.
func (h *ProgressHandler) Favorites(c *gin.Context) {
	items, err := h.progress.Favorites(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"items": toProgressDTOs(items)})
}

type setFavoriteRequest struct {
	QuestionID int64 `json:"question_id" binding:"required"`
	Favorite   *bool `json:"favorite" binding:"required"`
}

// SetFavorite bookmarks or unbookmarks a question.
func (h *ProgressHandler) SetFavorite(c *gin.Context) {
	var req setFavoriteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if err := h.progress.SetFavorite(c.Request.Context(), userIDFrom(c), req.QuestionID, *req.Favorite); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"question_id": req.QuestionID, "favorite": *req.Favorite})
}
