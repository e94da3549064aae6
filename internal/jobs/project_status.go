package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/common/window"
	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/service"
)

// ProjectStatusJob advances projects whose start date has arrived and warns
// owners and members about projects approaching their end date. A project
// still in progress near its deadline is warned again on every daily run;
// that bounded repetition is intended, not a dedup bug.
type ProjectStatusJob struct {
	tx       service.TxRunner
	stores   service.StoreProvider
	notifier service.NotificationService
	schedule string
	horizon  time.Duration
	now      func() time.Time
}

func NewProjectStatusJob(
	tx service.TxRunner,
	stores service.StoreProvider,
	notifier service.NotificationService,
	schedule string,
	horizon time.Duration,
) *ProjectStatusJob {
	return &ProjectStatusJob{
		tx:       tx,
		stores:   stores,
		notifier: notifier,
		schedule: schedule,
		horizon:  horizon,
		now:      time.Now,
	}
}

func (j *ProjectStatusJob) Name() string { return "project-status" }

func (j *ProjectStatusJob) Schedule() string { return j.schedule }

func (j *ProjectStatusJob) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Job:       j.Name(),
		Component: "stride.jobs.project_status",
	})

	now := j.now().UTC()

	advanced, err := j.startDueProjects(ctx, now)
	if err != nil {
		return fmt.Errorf("starting due projects: %w", err)
	}
	if advanced > 0 {
		slog.InfoContext(ctx, "projects advanced to in_progress", "count", advanced)
	}

	if err := j.warnApproachingDeadlines(ctx, now); err != nil {
		return fmt.Errorf("warning approaching deadlines: %w", err)
	}
	return nil
}

func (j *ProjectStatusJob) startDueProjects(ctx context.Context, now time.Time) (int, error) {
	advanced := 0
	err := j.tx.WithTx(ctx, func(sp service.StoreProvider) error {
		projects, err := sp.Projects().ListNotStartedDue(ctx, now)
		if err != nil {
			return fmt.Errorf("listing due projects: %w", err)
		}

		for i := range projects {
			p := &projects[i]
			p.Status = model.ProjectStatusInProgress
			p.UpdatedAt = now
			if err := sp.Projects().Update(ctx, p); err != nil {
				return fmt.Errorf("advancing project %d: %w", p.ID, err)
			}
			advanced++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return advanced, nil
}

// warnApproachingDeadlines is read-then-notify; it mutates nothing, so it
// runs outside a transaction. One recipient's failure never aborts the rest.
func (j *ProjectStatusJob) warnApproachingDeadlines(ctx context.Context, now time.Time) error {
	rng := window.DeadlineWarning(now, j.horizon)

	projects, err := j.stores.Projects().ListEndingBetween(ctx, rng.From, rng.To)
	if err != nil {
		return fmt.Errorf("listing projects near deadline: %w", err)
	}

	for i := range projects {
		p := &projects[i]
		pctx := logger.WithLogFields(ctx, logger.LogFields{ProjectID: logger.Ptr(p.ID)})

		recipients, err := j.projectRecipients(pctx, p)
		if err != nil {
			slog.ErrorContext(pctx, "failed to resolve project recipients", "error", err)
			continue
		}

		notified := 0
		for _, userID := range recipients {
			if err := j.warnRecipient(pctx, p, userID); err != nil {
				slog.ErrorContext(pctx, "failed to warn recipient",
					"error", err,
					"recipient_id", userID)
				continue
			}
			notified++
		}

		slog.InfoContext(pctx, "project deadline warning sent",
			"end_date", p.EndDate,
			"recipients", notified)
	}
	return nil
}

// projectRecipients returns the owner plus all members, owner first,
// without duplicates.
func (j *ProjectStatusJob) projectRecipients(ctx context.Context, p *model.Project) ([]int64, error) {
	memberIDs, err := j.stores.Projects().ListMemberIDs(ctx, p.ID)
	if err != nil {
		return nil, fmt.Errorf("listing project members: %w", err)
	}

	recipients := []int64{p.OwnerID}
	for _, id := range memberIDs {
		if id != p.OwnerID {
			recipients = append(recipients, id)
		}
	}
	return recipients, nil
}

func (j *ProjectStatusJob) warnRecipient(ctx context.Context, p *model.Project, userID int64) error {
	data := map[string]string{
		"project_id":   fmt.Sprintf("%d", p.ID),
		"project_name": p.Name,
	}
	if p.EndDate != nil {
		data["end_date"] = p.EndDate.Format(time.RFC3339)
	}

	_, err := j.notifier.CreateInAppNotification(ctx, service.CreateNotificationRequest{
		UserID:   userID,
		Title:    "Project deadline approaching",
		Message:  fmt.Sprintf("Project %q reaches its end date soon.", p.Name),
		Type:     model.NotificationTypeProjectDeadline,
		EntityID: logger.Ptr(p.ID),
		Data:     data,
	})
	return err
}
