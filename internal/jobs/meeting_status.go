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

// MeetingStatusJob advances the meeting lifecycle: scheduled meetings whose
// start time has passed go ongoing, and ongoing meetings with no end time go
// finished an hour after they started. Each phase commits before the next
// one queries, so phase 2 always sees phase 1's transitions.
type MeetingStatusJob struct {
	tx       service.TxRunner
	schedule string
	now      func() time.Time
}

func NewMeetingStatusJob(tx service.TxRunner, schedule string) *MeetingStatusJob {
	return &MeetingStatusJob{tx: tx, schedule: schedule, now: time.Now}
}

func (j *MeetingStatusJob) Name() string { return "meeting-status" }

func (j *MeetingStatusJob) Schedule() string { return j.schedule }

func (j *MeetingStatusJob) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Job:       j.Name(),
		Component: "stride.jobs.meeting_status",
	})

	// One clock read per run; both phases reason about the same instant.
	now := j.now().UTC()

	started, err := j.startDueMeetings(ctx, now)
	if err != nil {
		return fmt.Errorf("starting due meetings: %w", err)
	}

	finished, err := j.finishElapsedMeetings(ctx, now)
	if err != nil {
		return fmt.Errorf("finishing elapsed meetings: %w", err)
	}

	if started > 0 || finished > 0 {
		slog.InfoContext(ctx, "meeting statuses reconciled",
			"started", started,
			"finished", finished)
	}
	return nil
}

func (j *MeetingStatusJob) startDueMeetings(ctx context.Context, now time.Time) (int, error) {
	started := 0
	err := j.tx.WithTx(ctx, func(sp service.StoreProvider) error {
		meetings, err := sp.Meetings().ListScheduledDue(ctx, now)
		if err != nil {
			return fmt.Errorf("listing due meetings: %w", err)
		}

		for i := range meetings {
			m := &meetings[i]
			m.Status = model.MeetingStatusOngoing
			m.UpdatedAt = now
			if err := sp.Meetings().Update(ctx, m); err != nil {
				return fmt.Errorf("starting meeting %d: %w", m.ID, err)
			}
			started++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return started, nil
}

func (j *MeetingStatusJob) finishElapsedMeetings(ctx context.Context, now time.Time) (int, error) {
	cutoff := now.Add(-model.AutoFinishAfter)

	finished := 0
	err := j.tx.WithTx(ctx, func(sp service.StoreProvider) error {
		meetings, err := sp.Meetings().ListOngoingElapsed(ctx, cutoff)
		if err != nil {
			return fmt.Errorf("listing elapsed meetings: %w", err)
		}

		for i := range meetings {
			m := &meetings[i]
			end := now
			m.Status = model.MeetingStatusFinished
			m.EndTime = &end
			m.UpdatedAt = now
			if err := sp.Meetings().Update(ctx, m); err != nil {
				return fmt.Errorf("finishing meeting %d: %w", m.ID, err)
			}
			finished++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return finished, nil
}
