package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/lingoday/lingoday-backend/internal/config"
	"github.com/lingoday/lingoday-backend/internal/delivery/httpapi"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres"
	"github.com/lingoday/lingoday-backend/internal/infra/postgres/repository"
	"github.com/lingoday/lingoday-backend/internal/infra/redis"
	"github.com/lingoday/lingoday-backend/internal/logger"
	"github.com/lingoday/lingoday-backend/internal/service"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	zapLogger, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer func() { _ = zapLogger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	dsn, err := cfg.DB.DSN()
	if err != nil {
		zapLogger.Fatal("database configuration", zap.Error(err))
	}

	pool, err := postgres.NewPool(ctx, dsn, postgres.PoolConfig{
		MaxConns:        int32(cfg.DB.MaxConnections),
		MaxConnLifetime: cfg.DB.MaxConnLifetime,
	})
	if err != nil {
		zapLogger.Fatal("connect postgres", zap.Error(err))
	}
	defer pool.Close()

	redisClient, err := redis.NewClient(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		zapLogger.Fatal("connect redis", zap.Error(err))
	}
	defer func() { _ = redisClient.Close() }()

	transactor := postgres.NewTransactor(pool)
	blacklist := redis.NewTokenBlacklist(redisClient)

	userRepo := repository.NewUserRepository(pool)
	tokenRepo := repository.NewRefreshTokenRepository(pool)
	settingsRepo := repository.NewSettingsRepository(pool)
	questionRepo := repository.NewQuestionRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	activityRepo := repository.NewActivityRepository(pool)
	queueRepo := repository.NewReviewQueueRepository(pool)
	masteryRepo := repository.NewMasteryRepository(pool)
	badgeRepo := repository.NewBadgeRepository(pool)

	grader := service.NewGrader()
	scheduler := service.NewReviewScheduler(queueRepo, masteryRepo, transactor)
	selector := service.NewQuestionSelector(questionRepo)
	badges := service.NewBadgeService(badgeRepo, progressRepo, zapLogger)
	goals := service.NewGoalService(activityRepo, settingsRepo, badges)
	questions := service.NewQuestionService(questionRepo)
	settings := service.NewSettingsService(settingsRepo)
	users := service.NewUserService(userRepo)
	progress := service.NewProgressService(
		grader, questionRepo, progressRepo, settingsRepo, activityRepo,
		scheduler, goals, badges,
	)
	sessions := service.NewReviewSessionService(
		scheduler, selector, grader, questionRepo, settingsRepo, progressRepo, badges,
	)
	auth := service.NewAuthService(
		userRepo, tokenRepo, settingsRepo, blacklist,
		cfg.Auth.JWTSecret, cfg.Auth.AccessTTL, cfg.Auth.RefreshTTL,
	)
	maintenance := service.NewMaintenanceService(tokenRepo, zapLogger)

	router := httpapi.NewRouter(httpapi.RouterConfig{
		Logger:          zapLogger,
		AuthMiddleware:  httpapi.NewAuthMiddleware(auth, zapLogger),
		AuthHandler:     httpapi.NewAuthHandler(auth),
		QuestionHandler: httpapi.NewQuestionHandler(questions),
		ReviewHandler:   httpapi.NewReviewHandler(scheduler, sessions),
		ProgressHandler: httpapi.NewProgressHandler(progress),
		ProfileHandler:  httpapi.NewProfileHandler(users, settings, goals, badges),
		AllowedOrigins:  cfg.HTTP.AllowedOrigins,
	})

	go maintenance.Start(ctx)

	server := &http.Server{
		Addr:    cfg.HTTP.Addr,
		Handler: router,
	}

	go func() {
		zapLogger.Info("http server started", zap.String("addr", cfg.HTTP.Addr))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zapLogger.Fatal("http server", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zapLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		zapLogger.Error("http server shutdown", zap.Error(err))
	}
}
