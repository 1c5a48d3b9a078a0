package httpapi

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
	"github.com/lingoday/lingoday-backend/internal/service"
)

// APIError is the wire shape of one error.
type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ErrorEnvelope wraps every error response.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func respondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func respondCreated(c *gin.Context, payload any) {
	c.JSON(http.StatusCreated, payload)
}

func respondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{Error: APIError{Message: msg, Code: code}})
}

// respondServiceError maps domain sentinel errors to HTTP statuses.
// Anything unrecognized becomes a 500 with a generic message, so
// internals never leak to clients.
func respondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		respondError(c, http.StatusBadRequest, "invalid_input", err)
	case errors.Is(err, service.ErrInvalidCredentials),
		errors.Is(err, service.ErrInvalidToken):
		respondError(c, http.StatusUnauthorized, "unauthorized", err)
	case errors.Is(err, repository.ErrEmailTaken):
		respondError(c, http.StatusConflict, "email_taken", err)
	case errors.Is(err, repository.ErrUserNotFound),
		errors.Is(err, repository.ErrQuestionNotFound),
		errors.Is(err, repository.ErrEntryNotFound),
		errors.Is(err, repository.ErrSettingsNotFound),
		errors.Is(err, repository.ErrProgressNotFound),
		errors.Is(err, repository.ErrTokenNotFound):
		respondError(c, http.StatusNotFound, "not_found", err)
	default:
		respondError(c, http.StatusInternalServerError, "internal", errors.New("internal server error"))
	}
}
