package httpapi

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lingoday/lingoday-backend/internal/service"
)

const ctxUserIDKey = "userID"

// AuthMiddleware guards protected routes with bearer-token auth.
type AuthMiddleware struct {
	auth   *service.AuthService
	logger *zap.Logger
}

func NewAuthMiddleware(auth *service.AuthService, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{auth: auth, logger: logger}
}

// RequireAuth validates the Authorization header and stores the
// authenticated user ID on the request context.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := extractBearerToken(c)
		if tokenString == "" {
			respondError(c, http.StatusUnauthorized, "unauthorized", errors.New("missing or invalid token"))
			c.Abort()
			return
		}

		userID, claims, err := m.auth.ValidateAccessToken(c.Request.Context(), tokenString)
		if err != nil {
			if !errors.Is(err, service.ErrInvalidToken) {
				m.logger.Error("token validation failed", zap.Error(err))
			}
			respondError(c, http.StatusUnauthorized, "unauthorized", service.ErrInvalidToken)
			c.Abort()
			return
		}

		c.Set(ctxUserIDKey, userID)
		c.Set("claims", claims)
		c.Next()
	}
}

func extractBearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return header[7:]
	}
	return ""
}

// userIDFrom returns the authenticated user ID set by RequireAuth.
func userIDFrom(c *gin.Context) uuid.UUID {
	v, ok := c.Get(ctxUserIDKey)
	if !ok {
		return uuid.Nil
	}
	id, _ := v.(uuid.UUID)
	return id
}

// RequestLogger logs one structured line per request.
func RequestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		logger.Info("http request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}
