package model

import "time"

type TaskStatus string

const (
	TaskStatusTodo          TaskStatus = "todo"
	TaskStatusInProgress    TaskStatus = "in_progress"
	TaskStatusReadyToReview TaskStatus = "ready_to_review"
	TaskStatusDone          TaskStatus = "done"
	TaskStatusReOpened      TaskStatus = "re_opened"
	TaskStatusOverDue       TaskStatus = "over_due"
	TaskStatusCompleted     TaskStatus = "completed"
)

type ProjectTask struct {
	ID         int64      `json:"id"`
	Title      string     `json:"title"`
	Status     TaskStatus `json:"status"`
	StartDate  *time.Time `json:"start_date,omitempty"`
	EndDate    *time.Time `json:"end_date,omitempty"`
	ProjectID  int64      `json:"project_id"`
	AssigneeID *int64     `json:"assignee_id,omitempty"`
	Deleted    bool       `json:"-"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

// IsOverdue reports whether the task's end date has passed and the task is in
// a status the overdue sweep still acts on.
func (t *ProjectTask) IsOverdue(now time.Time) bool {
	if t.EndDate == nil {
		return false
	}
	if t.Status == TaskStatusOverDue || t.Status == TaskStatusCompleted {
		return false
	}
	return t.EndDate.Before(now)
}
