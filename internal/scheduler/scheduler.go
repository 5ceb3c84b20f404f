// Package scheduler fires a job on a cron schedule inside the API process.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
)

// Job is the unit of work run on every tick.
type Job func(ctx context.Context) error

// Scheduler runs a single Job on a standard five-field cron schedule.
// Runs are not coordinated with each other or with other processes.
type Scheduler struct {
	name     string
	cron     *cron.Cron
	schedule cron.Schedule
	loc      *time.Location
	job      Job
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// New parses spec (e.g. "0 8 * * *" or "@daily") and prepares a scheduler that
// evaluates it in loc. The scheduler does nothing until Start is called.
func New(name, spec string, loc *time.Location, job Job, logger *slog.Logger) (*Scheduler, error) {
	schedule, err := cron.ParseStandard(spec)
	if err != nil {
		return nil, fmt.Errorf("parse cron spec %q: %w", spec, err)
	}
	if loc == nil {
		loc = time.Local
	}
	logger = logger.With("job", name)
	cronLogger := cron.PrintfLogger(slog.NewLogLogger(logger.Handler(), slog.LevelDebug))

	ctx, cancel := context.WithCancel(context.Background())
	s := &Scheduler{
		name:     name,
		schedule: schedule,
		loc:      loc,
		job:      job,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithLogger(cronLogger),
			cron.WithChain(cron.Recover(cronLogger)),
		),
	}
	s.cron.Schedule(schedule, cron.FuncJob(s.run))
	return s, nil
}

func (s *Scheduler) run() {
	start := time.Now()
	s.logger.Info("scheduled job started")
	if err := s.job(s.ctx); err != nil {
		s.logger.Error("scheduled job failed", "err", err, "duration_ms", time.Since(start).Milliseconds())
		return
	}
	s.logger.Info("scheduled job finished", "duration_ms", time.Since(start).Milliseconds())
}

// RunNow runs the job once on the caller's goroutine, outside the schedule.
func (s *Scheduler) RunNow(ctx context.Context) error {
	return s.job(ctx)
}

// Start begins firing the job in a background goroutine.
func (s *Scheduler) Start() {
	s.cron.Start()
	s.logger.Info("scheduler started", "next_run", s.NextRun(time.Now()))
}

// NextRun returns the first activation strictly after the given instant.
func (s *Scheduler) NextRun(after time.Time) time.Time {
	return s.schedule.Next(after.In(s.loc))
}

// Stop prevents further runs and waits for a running job to finish. If ctx
// expires first, the running job's context is cancelled and ctx.Err is returned.
func (s *Scheduler) Stop(ctx context.Context) error {
	done := s.cron.Stop()
	select {
	case <-done.Done():
		s.cancel()
		return nil
	case <-ctx.Done():
		s.cancel()
		return ctx.Err()
	}
}
