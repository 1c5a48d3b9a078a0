package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingoday/lingoday-backend/internal/service"
)

// ReviewHandler exposes the spaced-repetition queue and the review
// session flow.
type ReviewHandler struct {
	scheduler *service.ReviewScheduler
	sessions  *service.ReviewSessionService
}

func NewReviewHandler(scheduler *service.ReviewScheduler, sessions *service.ReviewSessionService) *ReviewHandler {
	return &ReviewHandler{scheduler: scheduler, sessions: sessions}
}

// NextDue returns the earliest due queue entry, or entry=null when
// nothing is due.
func (h *ReviewHandler) NextDue(c *gin.Context) {
	entry, err := h.scheduler.NextDue(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if entry == nil {
		respondOK(c, gin.H{"entry": nil})
		return
	}
	respondOK(c, gin.H{"entry": toQueueEntryDTO(entry)})
}

// Schedule returns the full queue ordered by due time.
func (h *ReviewHandler) Schedule(c *gin.Context) {
	entries, err := h.scheduler.Schedule(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"entries": toQueueEntryDTOs(entries)})
}

// Stats returns aggregate queue statistics.
func (h *ReviewHandler) Stats(c *gin.Context) {
	stats, err := h.scheduler.Stats(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, stats)
}

// MasteredDays returns the days retired through the full ladder.
func (h *ReviewHandler) MasteredDays(c *gin.Context) {
	days, err := h.scheduler.MasteredDays(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"days": days})
}

// StartSession samples and returns the question set for reviewing a
// day.
func (h *ReviewHandler) StartSession(c *gin.Context) {
	day, err := dayParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_day", err)
		return
	}

	questions, err := h.sessions.StartSession(c.Request.Context(), userIDFrom(c), day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"day": day, "questions": toQuestionDTOs(questions)})
}

type submitSessionRequest struct {
	Answers []service.SessionAnswer `json:"answers" binding:"required"`
}

// SubmitSession grades a finished session and applies the scheduling
// outcome.
func (h *ReviewHandler) SubmitSession(c *gin.Context) {
	day, err := dayParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_day", err)
		return
	}

	var req submitSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	result, err := h.sessions.SubmitSession(c.Request.Context(), userIDFrom(c), day, req.Answers)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, result)
}
