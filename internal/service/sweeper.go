package service

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// SessionSweeper periodically drops idle sessions. It never touches the
// word store, so an expired session only loses unsaved drill progress.
type SessionSweeper struct {
	schedule string
	idleTTL  time.Duration
	targets  []Expirer
	logger   *zap.Logger
	now      func() time.Time
}

// NewSessionSweeper creates a sweeper that runs on a cron schedule such as
// "@every 1m" and expires sessions idle for longer than idleTTL.
func NewSessionSweeper(schedule string, idleTTL time.Duration, logger *zap.Logger, targets ...Expirer) *SessionSweeper {
	return &SessionSweeper{
		schedule: schedule,
		idleTTL:  idleTTL,
		targets:  targets,
		logger:   logger,
		now:      time.Now,
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (s *SessionSweeper) Start(ctx context.Context) error {
	c := cron.New(cron.WithLocation(time.UTC))

	if _, err := c.AddFunc(s.schedule, func() { s.Sweep() }); err != nil {
		return err
	}

	c.Start()
	s.logger.Info("session sweeper started",
		zap.String("schedule", s.schedule),
		zap.Duration("idle_ttl", s.idleTTL),
	)

	<-ctx.Done()

	<-c.Stop().Done()
	s.logger.Info("session sweeper stopped")
	return nil
}

// Sweep expires idle sessions once and returns how many were dropped.
func (s *SessionSweeper) Sweep() int {
	before := s.now().Add(-s.idleTTL)

	expired := 0
	for _, t := range s.targets {
		expired += t.Expire(before)
	}

	if expired > 0 {
		s.logger.Info("idle sessions expired", zap.Int("count", expired))
	}
	return expired
}
