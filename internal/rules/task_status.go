// Package rules holds the pure decision tables for the task workflow:
// status-transition legality, task/project date bounds, and the
// assignee-change role gate. Nothing here touches storage or the clock.
package rules

import (
	"fmt"
	"time"

	"stridehq.app/backend/internal/model"
)

// forbiddenTransitions lists, per current status, the target statuses a task
// may not move to directly. Anything not listed is allowed; a same-status
// "transition" is always allowed. Statuses absent as keys (ready_to_review
// onward flows, over_due, completed) carry no restriction.
var forbiddenTransitions = map[model.TaskStatus][]model.TaskStatus{
	model.TaskStatusTodo:          {model.TaskStatusReadyToReview, model.TaskStatusDone, model.TaskStatusReOpened},
	model.TaskStatusInProgress:    {model.TaskStatusDone, model.TaskStatusReOpened},
	model.TaskStatusReadyToReview: {model.TaskStatusTodo},
	model.TaskStatusReOpened:      {model.TaskStatusReadyToReview, model.TaskStatusDone, model.TaskStatusTodo},
}

// IsValidStatusTransition reports whether a task may move from current to
// target in one step.
func IsValidStatusTransition(current, target model.TaskStatus) bool {
	if current == target {
		return true
	}
	for _, forbidden := range forbiddenTransitions[current] {
		if target == forbidden {
			return false
		}
	}
	return true
}

// StatusTransitionError renders the rejection message for an invalid
// transition. Callers should only invoke it after IsValidStatusTransition
// returned false.
func StatusTransitionError(current, target model.TaskStatus) string {
	return fmt.Sprintf("a task in status %q cannot move directly to %q", current, target)
}

// Date validation messages, surfaced verbatim to the caller.
const (
	msgEndBeforeStart     = "task end date must not be before its start date"
	msgStartBeforeProject = "task start date must not be before the project start date"
	msgEndAfterProject    = "task end date must not be after the project end date"
)

// ValidateTaskDates checks a task's date range against itself and against the
// parent project's bounds. Validation is skipped entirely when either task
// date is absent. Project bounds are only enforced when set. Returns the
// first violated rule's message.
func ValidateTaskDates(taskStart, taskEnd, projectStart, projectEnd *time.Time) (bool, string) {
	if taskStart == nil || taskEnd == nil {
		return true, ""
	}
	if taskEnd.Before(*taskStart) {
		return false, msgEndBeforeStart
	}
	if projectStart != nil && taskStart.Before(*projectStart) {
		return false, msgStartBeforeProject
	}
	if projectEnd != nil && taskEnd.After(*projectEnd) {
		return false, msgEndAfterProject
	}
	return true, ""
}

// CanChangeAssignee reports whether a project role may reassign a task.
func CanChangeAssignee(role model.ProjectRole) bool {
	return role == model.ProjectRoleProjectManager || role == model.ProjectRoleAdmin
}
