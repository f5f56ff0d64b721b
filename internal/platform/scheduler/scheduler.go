package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	portssvc "github.com/SscSPs/finance_tracker/internal/core/ports/services"
	"github.com/SscSPs/finance_tracker/internal/middleware"
	"github.com/robfig/cron/v3"
)

// Scheduler runs the recurring pass on a cron schedule.
type Scheduler struct {
	cron      *cron.Cron
	recurring portssvc.RecurringSvc
	logger    *slog.Logger
	clock     func() time.Time
}

// New registers the recurring pass under schedule, a standard five-field cron
// expression or a descriptor such as "@hourly". Jobs do not overlap.
func New(schedule string, recurring portssvc.RecurringSvc, logger *slog.Logger) (*Scheduler, error) {
	cl := cronLogger{logger: logger}
	s := &Scheduler{
		cron: cron.New(
			cron.WithLocation(time.UTC),
			cron.WithLogger(cl),
			cron.WithChain(cron.Recover(cl), cron.SkipIfStillRunning(cl)),
		),
		recurring: recurring,
		logger:    logger,
		clock:     func() time.Time { return time.Now().UTC() },
	}
	if _, err := s.cron.AddFunc(schedule, func() { s.RunOnce(context.Background()) }); err != nil {
		return nil, fmt.Errorf("invalid recurring schedule %q: %w", schedule, err)
	}
	return s, nil
}

// RunOnce performs a single recurring pass synchronously.
func (s *Scheduler) RunOnce(ctx context.Context) portssvc.RecurringReport {
	ctx = middleware.WithLogger(ctx, s.logger.With(slog.String("job", "recurring")))
	report, err := s.recurring.Run(ctx, s.clock())
	if err != nil {
		s.logger.Error("Recurring pass failed", slog.String("error", err.Error()))
	}
	return report
}

// Start begins running scheduled jobs in the background.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("Recurring scheduler started", slog.Int("entries", len(s.cron.Entries())))
}

// Stop halts the scheduler and waits for a running pass to finish, up to ctx.
func (s *Scheduler) Stop(ctx context.Context) {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.logger.Info("Recurring scheduler stopped")
	case <-ctx.Done():
		s.logger.Warn("Recurring scheduler stop timed out")
	}
}

// cronLogger adapts slog to cron.Logger.
type cronLogger struct {
	logger *slog.Logger
}

func (l cronLogger) Info(msg string, keysAndValues ...interface{}) {
	l.logger.Debug(msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...interface{}) {
	l.logger.Error(msg, append([]interface{}{slog.String("error", err.Error())}, keysAndValues...)...)
}
