package model

import "time"

type MeetingStatus string

const (
	MeetingStatusScheduled MeetingStatus = "scheduled"
	MeetingStatusOngoing   MeetingStatus = "ongoing"
	MeetingStatusFinished  MeetingStatus = "finished"
	MeetingStatusCancelled MeetingStatus = "cancelled"
)

// AutoFinishAfter is how long an ongoing meeting with no explicit end time
// runs before the status job closes it.
const AutoFinishAfter = time.Hour

type Meeting struct {
	ID          int64         `json:"id"`
	Title       string        `json:"title"`
	Description string        `json:"description"`
	StartTime   time.Time     `json:"start_time"`
	EndTime     *time.Time    `json:"end_time,omitempty"`
	Status      MeetingStatus `json:"status"`
	CreatorID   int64         `json:"creator_id"`
	ProjectID   int64         `json:"project_id"`
	MilestoneID *int64        `json:"milestone_id,omitempty"`
	Deleted     bool          `json:"-"`
	CreatedAt   time.Time     `json:"created_at"`
	UpdatedAt   time.Time     `json:"updated_at"`
}

// ShouldStart reports whether a scheduled meeting is due to go ongoing.
func (m *Meeting) ShouldStart(now time.Time) bool {
	return m.Status == MeetingStatusScheduled && !m.StartTime.After(now)
}

// ShouldFinish reports whether an ongoing meeting with no end time has run
// past the auto-finish cutoff.
func (m *Meeting) ShouldFinish(now time.Time) bool {
	return m.Status == MeetingStatusOngoing && m.EndTime == nil &&
		!m.StartTime.Add(AutoFinishAfter).After(now)
}
