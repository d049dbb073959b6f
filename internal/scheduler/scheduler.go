// Package scheduler runs alert executors at their configured intervals
// and watches the configuration for changes.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"

	"github.com/robfig/cron/v3"
)

// Executor is the slice of the alert executor the scheduler needs.
type Executor interface {
	Execute(ctx context.Context)
	Interval() int
}

// Scheduler runs each registered executor every Interval() minutes.
type Scheduler struct {
	cron   *cron.Cron
	logger *slog.Logger
}

func New(logger *slog.Logger) *Scheduler {
	return &Scheduler{
		cron:   cron.New(),
		logger: logger,
	}
}

// Add schedules an executor. The interval is already clamped to a minimum
// of one minute by the executor itself.
func (s *Scheduler) Add(name string, exec Executor) error {
	j := &job{name: name, exec: exec, logger: s.logger}
	if _, err := s.cron.AddJob(fmt.Sprintf("@every %dm", exec.Interval()), j); err != nil {
		return fmt.Errorf("scheduling %s: %w", name, err)
	}
	s.logger.Info("alert scheduled", "alert", name, "interval_min", exec.Interval())
	return nil
}

// Start begins running scheduled executors in their own goroutines.
func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop stops scheduling and returns a context that is done once in-flight
// runs have finished.
func (s *Scheduler) Stop() context.Context {
	return s.cron.Stop()
}

// job wraps one executor. The running flag keeps at most one Execute in
// flight per instance; the executor's internal state is unsynchronized.
type job struct {
	name    string
	exec    Executor
	logger  *slog.Logger
	running atomic.Bool
}

func (j *job) Run() {
	if !j.running.CompareAndSwap(false, true) {
		j.logger.Warn("previous run still in flight, skipping", "alert", j.name)
		return
	}
	defer j.running.Store(false)

	j.exec.Execute(context.Background())
}
