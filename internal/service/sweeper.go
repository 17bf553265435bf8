package service

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// IdleSweeper ends abandoned sessions.
type IdleSweeper interface {
	SweepIdle(ctx context.Context, now time.Time) int
}

// SweeperService runs the idle session sweep on a cron schedule.
type SweeperService struct {
	games    IdleSweeper
	schedule string
	logger   *zap.Logger
}

func NewSweeperService(games IdleSweeper, schedule string, logger *zap.Logger) *SweeperService {
	return &SweeperService{
		games:    games,
		schedule: schedule,
		logger:   logger,
	}
}

// Start runs the sweeper until ctx is cancelled.
func (s *SweeperService) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	_, err := c.AddFunc(s.schedule, func() {
		if n := s.games.SweepIdle(ctx, time.Now()); n > 0 {
			s.logger.Info("idle sessions ended", zap.Int("count", n))
		}
	})
	if err != nil {
		return fmt.Errorf("add sweep job %q: %w", s.schedule, err)
	}

	c.Start()
	s.logger.Info("session sweeper started", zap.String("schedule", s.schedule))

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}
