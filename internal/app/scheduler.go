package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/match-insights/internal/platform/logging"
	"github.com/riskibarqy/match-insights/internal/usecase"
	"github.com/robfig/cron/v3"
)

// warmupRunTimeout bounds one scheduled warm-up so a stuck run cannot block the next tick.
const warmupRunTimeout = 30 * time.Minute

type warmupRunner interface {
	Run(ctx context.Context, req usecase.WarmupRequest) (usecase.WarmupResult, error)
}

// WarmupScheduler triggers the insights warm-up on a cron schedule.
type WarmupScheduler struct {
	cron    *cron.Cron
	runner  warmupRunner
	request usecase.WarmupRequest
	logger  *logging.Logger
}

func NewWarmupScheduler(schedule string, runner warmupRunner, req usecase.WarmupRequest, logger *logging.Logger) (*WarmupScheduler, error) {
	if logger == nil {
		logger = logging.Default()
	}

	cronLogger := cronLogAdapter{logger: logger}
	s := &WarmupScheduler{
		cron: cron.New(
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger), cron.SkipIfStillRunning(cronLogger)),
		),
		runner:  runner,
		request: req,
		logger:  logger,
	}

	if _, err := s.cron.AddFunc(schedule, s.runOnce); err != nil {
		return nil, fmt.Errorf("add warm-up schedule %q: %w", schedule, err)
	}
	return s, nil
}

func (s *WarmupScheduler) Start() {
	s.cron.Start()
	s.logger.Info("insights warm-up scheduler started", "targets", len(s.request.Targets))
}

// Stop prevents new runs and waits for a running one until ctx is done.
func (s *WarmupScheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("insights warm-up scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("insights warm-up scheduler stop timed out", "error", ctx.Err())
	}
}

func (s *WarmupScheduler) runOnce() {
	ctx, cancel := context.WithTimeout(context.Background(), warmupRunTimeout)
	defer cancel()

	result, err := s.runner.Run(ctx, s.request)
	if err != nil {
		s.logger.ErrorContext(ctx, "scheduled insights warm-up failed", "error", err)
		return
	}
	s.logger.InfoContext(ctx, "scheduled insights warm-up completed",
		"run_id", result.RunID,
		"fixtures", result.Fixtures,
		"warmed", result.Warmed,
		"failed", result.Failed,
		"duration_ms", result.DurationMs,
	)
}

type cronLogAdapter struct {
	logger *logging.Logger
}

func (a cronLogAdapter) Info(msg string, keysAndValues ...any) {
	a.logger.Debug("cron: "+msg, keysAndValues...)
}

func (a cronLogAdapter) Error(err error, msg string, keysAndValues ...any) {
	a.logger.Error("cron: "+msg, append(keysAndValues, "error", err)...)
}
