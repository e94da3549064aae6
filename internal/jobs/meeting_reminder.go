package jobs

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"stridehq.app/backend/common/logger"
	"stridehq.app/backend/common/window"
	"stridehq.app/backend/internal/mail"
	"stridehq.app/backend/internal/model"
	"stridehq.app/backend/internal/service"
)

// MeetingReminderJob notifies every attendee of a scheduled meeting starting
// roughly an hour out. The window is wider than the cadence on purpose:
// adjacent runs overlap, so a reminder survives a missed tick at the cost of
// an occasional duplicate. Dedup is deliberately not done here.
//
// The job mutates nothing; all its writes go through the notification
// gateway, and each attendee and each meeting fails independently.
type MeetingReminderJob struct {
	stores   service.StoreProvider
	notifier service.NotificationService
	schedule string
	lead     time.Duration
	width    time.Duration
	loc      *time.Location
	now      func() time.Time
}

func NewMeetingReminderJob(
	stores service.StoreProvider,
	notifier service.NotificationService,
	schedule string,
	lead, width time.Duration,
	loc *time.Location,
) *MeetingReminderJob {
	if loc == nil {
		loc = time.UTC
	}
	return &MeetingReminderJob{
		stores:   stores,
		notifier: notifier,
		schedule: schedule,
		lead:     lead,
		width:    width,
		loc:      loc,
		now:      time.Now,
	}
}

func (j *MeetingReminderJob) Name() string { return "meeting-reminder" }

func (j *MeetingReminderJob) Schedule() string { return j.schedule }

func (j *MeetingReminderJob) Run(ctx context.Context) error {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Job:       j.Name(),
		Component: "stride.jobs.meeting_reminder",
	})

	now := j.now().UTC()
	rng := window.Reminder(now, j.lead, j.width)

	meetings, err := j.stores.Meetings().ListScheduledStartingBetween(ctx, rng.From, rng.To)
	if err != nil {
		return fmt.Errorf("listing upcoming meetings: %w", err)
	}

	for i := range meetings {
		m := &meetings[i]
		mctx := logger.WithLogFields(ctx, logger.LogFields{MeetingID: logger.Ptr(m.ID)})

		if err := j.remindMeeting(mctx, m); err != nil {
			slog.ErrorContext(mctx, "failed to process meeting reminder", "error", err)
			continue
		}
	}
	return nil
}

func (j *MeetingReminderJob) remindMeeting(ctx context.Context, m *model.Meeting) error {
	attendeeIDs, err := j.stores.Meetings().ListAttendeeIDs(ctx, m.ID)
	if err != nil {
		return fmt.Errorf("listing attendees: %w", err)
	}

	// The creator gets a reminder too, whether or not they added themselves.
	recipients := attendeeIDs
	if !containsID(attendeeIDs, m.CreatorID) {
		recipients = append(recipients, m.CreatorID)
	}

	if len(recipients) == 0 {
		slog.WarnContext(ctx, "meeting has no one to remind", "title", m.Title)
		return nil
	}

	var projectName string
	project, err := j.stores.Projects().GetByID(ctx, m.ProjectID)
	if err != nil {
		// The reminder is still worth sending without the project name.
		slog.WarnContext(ctx, "failed to resolve meeting project", "error", err)
	} else {
		projectName = project.Name
	}

	users, err := j.stores.Users().ListByIDs(ctx, recipients)
	if err != nil {
		return fmt.Errorf("loading recipients: %w", err)
	}

	for i := range users {
		u := &users[i]
		if err := j.remindAttendee(ctx, m, u, projectName); err != nil {
			slog.ErrorContext(ctx, "failed to remind attendee",
				"error", err,
				"attendee_id", u.ID)
			continue
		}
	}
	return nil
}

func (j *MeetingReminderJob) remindAttendee(ctx context.Context, m *model.Meeting, u *model.User, projectName string) error {
	localStart := m.StartTime.In(j.loc).Format("Mon, 02 Jan 2006 15:04 MST")

	_, err := j.notifier.CreateInAppNotification(ctx, service.CreateNotificationRequest{
		UserID:   u.ID,
		Title:    "Upcoming meeting",
		Message:  fmt.Sprintf("%q starts at %s", m.Title, localStart),
		Type:     model.NotificationTypeMeetingReminder,
		EntityID: logger.Ptr(m.ID),
		Data: map[string]string{
			"meeting_id":   fmt.Sprintf("%d", m.ID),
			"title":        m.Title,
			"start_time":   m.StartTime.Format(time.RFC3339),
			"project_id":   fmt.Sprintf("%d", m.ProjectID),
			"project_name": projectName,
			"reminder":     string(model.NotificationTypeMeetingReminder),
		},
	})
	if err != nil {
		return fmt.Errorf("creating notification: %w", err)
	}

	if u.Email == "" {
		return nil
	}

	body, err := mail.RenderMeetingReminder(mail.MeetingReminderData{
		RecipientName: u.Name,
		MeetingTitle:  m.Title,
		StartTime:     localStart,
		ProjectName:   projectName,
	})
	if err != nil {
		return err
	}

	subject := fmt.Sprintf("Reminder: %s", m.Title)
	if err := j.notifier.SendEmail(ctx, u.Email, subject, body); err != nil {
		return fmt.Errorf("enqueueing reminder email: %w", err)
	}
	return nil
}

func containsID(ids []int64, id int64) bool {
	for _, v := range ids {
		if v == id {
			return true
		}
	}
	return false
}
