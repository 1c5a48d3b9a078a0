package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/service"
)

// QuestionHandler serves the day/track content catalog.
type QuestionHandler struct {
	questions *service.QuestionService
}

func NewQuestionHandler(questions *service.QuestionService) *QuestionHandler {
	return &QuestionHandler{questions: questions}
}

// ListDays returns every day number that has content.
func (h *QuestionHandler) ListDays(c *gin.Context) {
	days, err := h.questions.ListDays(c.Request.Context())
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"days": days})
}

// GetByID returns one question.
func (h *QuestionHandler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_id", err)
		return
	}

	question, err := h.questions.GetByID(c.Request.Context(), id)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toQuestionDTO(*question))
}

// GetDay returns the questions of one day, optionally filtered by
// track via the ?track= query parameter.
func (h *QuestionHandler) GetDay(c *gin.Context) {
	day, err := dayParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_day", err)
		return
	}

	var questions []entities.Question
	if track := c.Query("track"); track != "" {
		questions, err = h.questions.GetByDayAndTrack(c.Request.Context(), day, entities.Track(track))
	} else {
		questions, err = h.questions.GetByDay(c.Request.Context(), day)
	}
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"day": day, "questions": toQuestionDTOs(questions)})
}

// GetDialogueSets returns the small-talk dialogue sets of one day.
func (h *QuestionHandler) GetDialogueSets(c *gin.Context) {
	day, err := dayParam(c)
	if err != nil {
		respondError(c, http.StatusBadRequest, "invalid_day", err)
		return
	}

	sets, err := h.questions.GetDialogueSets(c.Request.Context(), day)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"day": day, "sets": toDialogueSetDTOs(sets)})
}

func dayParam(c *gin.Context) (int, error) {
	return strconv.Atoi(c.Param("day"))
}
