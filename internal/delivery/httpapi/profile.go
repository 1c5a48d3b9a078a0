package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingoday/lingoday-backend/internal/domain/entities"
	"github.com/lingoday/lingoday-backend/internal/service"
)

// ProfileHandler covers the authenticated user's profile, avatar
// selection, settings, goals and badges.
type ProfileHandler struct {
	users    *service.UserService
	settings *service.SettingsService
	goals    *service.GoalService
	badges   *service.BadgeService
}

func NewProfileHandler(
	users *service.UserService,
	settings *service.SettingsService,
	goals *service.GoalService,
	badges *service.BadgeService,
) *ProfileHandler {
	return &ProfileHandler{
		users:    users,
		settings: settings,
		goals:    goals,
		badges:   badges,
	}
}

func (h *ProfileHandler) GetMe(c *gin.Context) {
	user, err := h.users.GetByID(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toUserDTO(user))
}

func (h *ProfileHandler) ListAvatars(c *gin.Context) {
	respondOK(c, gin.H{"avatars": h.users.Avatars()})
}

type selectAvatarRequest struct {
	AvatarID int `json:"avatar_id" binding:"required"`
}

func (h *ProfileHandler) SelectAvatar(c *gin.Context) {
	var req selectAvatarRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	if err := h.users.SelectAvatar(c.Request.Context(), userIDFrom(c), req.AvatarID); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"avatar_id": req.AvatarID})
}

func (h *ProfileHandler) GetSettings(c *gin.Context) {
	settings, err := h.settings.GetOrCreate(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toSettingsDTO(settings))
}

type updateSettingsRequest struct {
	Difficulty    int `json:"difficulty"`
	DailyGoal     int `json:"daily_goal"`
	SmallTalkSets int `json:"small_talk_sets"`
}

// UpdateSettings replaces the user's settings. Missing fields fall
// back to the current stored values.
func (h *ProfileHandler) UpdateSettings(c *gin.Context) {
	var req updateSettingsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}

	ctx := c.Request.Context()
	userID := userIDFrom(c)

	settings, err := h.settings.GetOrCreate(ctx, userID)
	if err != nil {
		respondServiceError(c, err)
		return
	}

	if req.Difficulty != 0 {
		settings.Difficulty = entities.Difficulty(req.Difficulty)
	}
	if req.DailyGoal != 0 {
		settings.DailyGoal = req.DailyGoal
	}
	if req.SmallTalkSets != 0 {
		settings.SmallTalkSets = req.SmallTalkSets
	}

	if err := h.settings.Update(ctx, settings); err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, toSettingsDTO(settings))
}

func (h *ProfileHandler) GoalStatus(c *gin.Context) {
	status, err := h.goals.Status(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, status)
}

func (h *ProfileHandler) BadgeCatalog(c *gin.Context) {
	respondOK(c, gin.H{"badges": h.badges.Catalog()})
}

func (h *ProfileHandler) MyBadges(c *gin.Context) {
	badges, err := h.badges.UserBadges(c.Request.Context(), userIDFrom(c))
	if err != nil {
		respondServiceError(c, err)
		return
	}

	respondOK(c, gin.H{"badges": toUserBadgeDTOs(badges)})
}
