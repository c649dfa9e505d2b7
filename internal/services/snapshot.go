package services

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"
	"go.uber.org/zap"
)

// Saver persists the current aggregate. Implemented by the stats use case.
type Saver interface {
	Save(ctx context.Context) error
}

// SnapshotConfig controls how often the aggregate is persisted.
type SnapshotConfig struct {
	Interval time.Duration
	Timeout  time.Duration
}

// SnapshotService periodically saves the in-memory aggregate through the
// configured storage backend. Failed cycles are logged and retried on
// the next tick; there is no in-cycle retry.
type SnapshotService struct {
	saver  Saver
	logger *zap.Logger
	cron   *cron.Cron
	cfg    SnapshotConfig
}

func NewSnapshotService(saver Saver, logger *zap.Logger, cfg SnapshotConfig) *SnapshotService {
	if cfg.Interval <= 0 {
		cfg.Interval = 5 * time.Minute
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &SnapshotService{
		saver:  saver,
		logger: logger,
		cfg:    cfg,
		cron:   cron.New(cron.WithSeconds()),
	}

	schedule := fmt.Sprintf("@every %ds", int(cfg.Interval.Seconds()))
	_, _ = s.cron.AddFunc(schedule, s.run)

	return s
}

// Start launches the cron scheduler.
func (s *SnapshotService) Start() {
	if s == nil || s.cron == nil {
		return
	}
	s.cron.Start()
	s.logger.Info("snapshot service started", zap.Duration("interval", s.cfg.Interval))
}

// Stop halts the scheduler, waiting for a running snapshot to finish.
func (s *SnapshotService) Stop(ctx context.Context) {
	if s == nil || s.cron == nil {
		return
	}
	stopCtx := s.cron.Stop()
	select {
	case <-stopCtx.Done():
	case <-ctx.Done():
	}
	s.logger.Info("snapshot service stopped")
}

func (s *SnapshotService) run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.cfg.Timeout)
	defer cancel()

	started := time.Now()
	if err := s.saver.Save(ctx); err != nil {
		s.logger.Error("snapshot failed", zap.Error(err))
		return
	}
	s.logger.Info("snapshot saved", zap.Duration("took", time.Since(started)))
}
