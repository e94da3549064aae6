// Package jobs contains the periodic reconciliation jobs that bring
// persisted entity state in line with the current time: meeting lifecycle,
// task overdue detection, project lifecycle, reminder fan-out, and cleanup
// sweeps. Each job is independently scheduled and safe to re-run from
// scratch: its predicates only match rows still needing the transition.
package jobs

import "context"

// Job defines a periodic background task.
type Job interface {
	// Name returns a unique identifier for this job (used for logging and
	// idempotent schedule registration).
	Name() string

	// Schedule returns a 5-field cron expression (e.g., "*/10 * * * *").
	Schedule() string

	// Run executes one reconciliation pass. Implementations should check
	// ctx.Done() for graceful cancellation. A returned error aborts the
	// remainder of the pass; the scheduler retries on its next tick.
	Run(ctx context.Context) error
}
