// Package scheduler triggers the reconciliation jobs on their cron cadences.
// Registration is idempotent per job name, entries run in the configured
// time zone, and a job still running when its next tick fires is skipped
// rather than overlapped.
package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/robfig/cron/v3"

	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/internal/jobs"
)

type Scheduler struct {
	cron *cron.Cron

	mu      sync.Mutex
	entries map[string]cron.EntryID
}

func New(loc *time.Location) *Scheduler {
	if loc == nil {
		loc = time.UTC
	}
	return &Scheduler{
		cron: cron.New(
			cron.WithLocation(loc),
			cron.WithChain(
				cron.Recover(cron.DiscardLogger),
				cron.SkipIfStillRunning(cron.DiscardLogger),
			),
		),
		entries: make(map[string]cron.EntryID),
	}
}

// Register schedules a job under its name. Registering the same name again
// replaces the previous schedule instead of adding a second one.
func (s *Scheduler) Register(ctx context.Context, job jobs.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[job.Name()]; ok {
		s.cron.Remove(existing)
	}

	entryID, err := s.cron.AddFunc(job.Schedule(), func() {
		s.runJob(ctx, job)
	})
	if err != nil {
		return fmt.Errorf("registering job %s (%q): %w", job.Name(), job.Schedule(), err)
	}

	s.entries[job.Name()] = entryID
	slog.InfoContext(ctx, "job registered", "job", job.Name(), "schedule", job.Schedule())
	return nil
}

// Registered reports whether a job name currently has a schedule entry.
func (s *Scheduler) Registered(name string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.entries[name]
	return ok
}

// Entries returns the number of live schedule entries.
func (s *Scheduler) Entries() int {
	return len(s.cron.Entries())
}

func (s *Scheduler) Start() {
	s.cron.Start()
}

// Stop halts triggering and waits for running jobs to finish, bounded by ctx.
func (s *Scheduler) Stop(ctx context.Context) error {
	stopped := s.cron.Stop()
	select {
	case <-stopped.Done():
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// runJob is the per-tick wrapper: span, enriched logging, and error
// containment. A failed run is logged and dropped; the predicates are
// idempotent, so the next tick retries the same work.
func (s *Scheduler) runJob(ctx context.Context, job jobs.Job) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Job:       job.Name(),
		Component: "stride.scheduler",
	})

	sc := logger.StartSpan(ctx, "jobs."+job.Name())
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()
	slog.DebugContext(ctx, "job run started")

	if err := job.Run(ctx); err != nil {
		sc.RecordError(err)
		slog.ErrorContext(ctx, "job run failed",
			"error", err,
			"duration_ms", time.Since(start).Milliseconds())
		return
	}

	slog.DebugContext(ctx, "job run finished",
		"duration_ms", time.Since(start).Milliseconds())
}
