package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// MaintenanceService runs periodic housekeeping jobs.
type MaintenanceService struct {
	tokenRepo RefreshTokenRepository
	logger    *zap.Logger
}

func NewMaintenanceService(tokenRepo RefreshTokenRepository, logger *zap.Logger) *MaintenanceService {
	return &MaintenanceService{
		tokenRepo: tokenRepo,
		logger:    logger,
	}
}

// Start begins the maintenance loop and blocks until ctx is cancelled.
func (s *MaintenanceService) Start(ctx context.Context) {
	s.logger.Info("maintenance service started")

	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc("0 3 * * *", func() {
		if err := s.purgeExpiredTokens(ctx); err != nil {
			s.logger.Error("failed to purge expired refresh tokens", zap.Error(err))
		}
	})
	if err != nil {
		s.logger.Error("failed to add cron job", zap.Error(err))
		return
	}

	c.Start()
	s.logger.Info("cron scheduler started")

	<-ctx.Done()

	c.Stop()
	s.logger.Info("maintenance service stopped")
}

func (s *MaintenanceService) purgeExpiredTokens(ctx context.Context) error {
	purged, err := s.tokenRepo.DeleteExpired(ctx, time.Now().UTC())
	if err != nil {
		return err
	}

	if purged > 0 {
		s.logger.Info("purged expired refresh tokens", zap.Int64("count", purged))
	}

	return nil
}
