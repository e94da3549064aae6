package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/service"
)

// TaskOverdueJob flags tasks whose end date has passed. Tasks already
// over_due or completed are excluded by the query, so re-runs are free.
// Reminders about overdue work are a separate concern; this job only
// mutates state.
type TaskOverdueJob struct {
	tx       service.TxRunner
	schedule string
	now      func() time.Time
}

func NewTaskOverdueJob(tx service.TxRunner, schedule string) *TaskOverdueJob {
	return &TaskOverdueJob{tx: tx, schedule: schedule, now: time.Now}
}

func (j *TaskOverdueJob) Name() string { return "task-overdue" }

func (j *TaskOverdueJob) Schedule() string { return j.schedule }

func (j *TaskOverdueJob) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Job:       j.Name(),
		Component: "stride.jobs.task_overdue",
	})

	now := j.now().UTC()

	flagged := 0
	err := j.tx.WithTx(ctx, func(sp service.StoreProvider) error {
		tasks, err := sp.Tasks().ListOverdueCandidates(ctx, now)
		if err != nil {
			return fmt.Errorf("listing overdue candidates: %w", err)
		}

		for i := range tasks {
			t := &tasks[i]
			prior := t.Status
			t.Status = model.TaskStatusOverDue
			t.UpdatedAt = now
			if err := sp.Tasks().Update(ctx, t); err != nil {
				return fmt.Errorf("flagging task %d: %w", t.ID, err)
			}
			slog.DebugContext(ctx, "task flagged overdue",
				"task_id", t.ID,
				"prior_status", prior)
			flagged++
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("flagging overdue tasks: %w", err)
	}

	if flagged > 0 {
		slog.InfoContext(ctx, "overdue tasks flagged", "count", flagged)
	}
	return nil
}
