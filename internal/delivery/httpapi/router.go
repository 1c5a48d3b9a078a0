package httpapi

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RouterConfig carries everything the router wires together.
type RouterConfig struct {
	Logger          *zap.Logger
	AuthMiddleware  *AuthMiddleware
	AuthHandler     *AuthHandler
	QuestionHandler *QuestionHandler
	ReviewHandler   *ReviewHandler
	ProgressHandler *ProgressHandler
	ProfileHandler  *ProfileHandler
	AllowedOrigins  []string
}

// NewRouter builds the gin engine with all routes mounted.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestLogger(cfg.Logger))

	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"http://localhost:3000"}
	}
	router.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowHeaders:     []string{"Authorization", "Content-Type", "X-Requested-With"},
		AllowCredentials: true,
	}))

	router.GET("/healthcheck", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := router.Group("/api")

	auth := api.Group("/auth")
	{
		auth.POST("/register", cfg.AuthHandler.Register)
		auth.POST("/login", cfg.AuthHandler.Login)
		auth.POST("/refresh", cfg.AuthHandler.Refresh)
	}

	protected := api.Group("/")
	protected.Use(cfg.AuthMiddleware.RequireAuth())
	{
		protected.POST("/auth/logout", cfg.AuthHandler.Logout)

		protected.GET("/me", cfg.ProfileHandler.GetMe)
		protected.GET("/avatars", cfg.ProfileHandler.ListAvatars)
		protected.PUT("/me/avatar", cfg.ProfileHandler.SelectAvatar)
		protected.GET("/settings", cfg.ProfileHandler.GetSettings)
		protected.PUT("/settings", cfg.ProfileHandler.UpdateSettings)
		protected.GET("/goals/today", cfg.ProfileHandler.GoalStatus)
		protected.GET("/badges", cfg.ProfileHandler.BadgeCatalog)
		protected.GET("/me/badges", cfg.ProfileHandler.MyBadges)

		protected.GET("/days", cfg.QuestionHandler.ListDays)
		protected.GET("/questions/:id", cfg.QuestionHandler.GetByID)
		protected.GET("/days/:day/questions", cfg.QuestionHandler.GetDay)
		protected.GET("/days/:day/dialogues", cfg.QuestionHandler.GetDialogueSets)

		protected.POST("/answers", cfg.ProgressHandler.SubmitAnswer)
		protected.POST("/grade", cfg.ProgressHandler.GradePractice)
		protected.GET("/days/:day/progress", cfg.ProgressHandler.DayProgress)
		protected.GET("/wrong-answers", cfg.ProgressHandler.WrongAnswers)
		protected.GET("/favorites", cfg.ProgressHandler.Favorites)
		protected.PUT("/favorites", cfg.ProgressHandler.SetFavorite)

		protected.GET("/review/next", cfg.ReviewHandler.NextDue)
		protected.GET("/review/schedule", cfg.ReviewHandler.Schedule)
		protected.GET("/review/stats", cfg.ReviewHandler.Stats)
		protected.GET("/review/mastered", cfg.ReviewHandler.MasteredDays)
		protected.POST("/review/day/:day/start", cfg.ReviewHandler.StartSession)
		protected.POST("/review/day/:day/submit", cfg.ReviewHandler.SubmitSession)
	}

	return router
}
